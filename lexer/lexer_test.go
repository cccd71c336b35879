package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	require.NotEmpty(t, tokens)
	require.Equal(t, T_EOF, tokens[len(tokens)-1].Type)
	return tokens[:len(tokens)-1]
}

func kinds(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestTokenize_Punctuators(t *testing.T) {
	tokens := tokenize(t, "a >>>= b ?? c?.d ... => !== **")
	assert.Equal(t, []TokenType{
		T_IDENTIFIER, TOKEN_USHR_ASSIGN, T_IDENTIFIER, TOKEN_COALESCE,
		T_IDENTIFIER, TOKEN_QUESTION_DOT, T_IDENTIFIER,
		TOKEN_ELLIPSIS, TOKEN_ARROW, TOKEN_NE_STRICT, TOKEN_POW,
	}, kinds(tokens))
}

func TestTokenize_QuestionDotBeforeDigit(t *testing.T) {
	// a?.5:b 是三目表达式：? 与 . 分开发出
	tokens := tokenize(t, "a?.5:b")
	assert.Equal(t, []TokenType{
		T_IDENTIFIER, TOKEN_QUESTION, T_NUMBER, TOKEN_COLON, T_IDENTIFIER,
	}, kinds(tokens))
}

func TestTokenize_Keywords(t *testing.T) {
	tokens := tokenize(t, "function class let async of await yield")
	assert.Equal(t, []TokenType{
		T_FUNCTION, T_CLASS,
		// 上下文关键字保持标识符
		T_IDENTIFIER, T_IDENTIFIER, T_IDENTIFIER, T_IDENTIFIER, T_IDENTIFIER,
	}, kinds(tokens))
}

func TestTokenize_EscapedKeywordRejected(t *testing.T) {
	_, err := Tokenize("cl\\u0061ss A {}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escape")
}

func TestTokenize_EscapedIdentifier(t *testing.T) {
	tokens := tokenize(t, "o\\u0066")
	require.Len(t, tokens, 1)
	assert.Equal(t, T_IDENTIFIER, tokens[0].Type)
	assert.Equal(t, "of", tokens[0].Lexeme)
	assert.True(t, tokens[0].HasEscape())

	plain := tokenize(t, "of")
	assert.False(t, plain[0].HasEscape())
}

func TestTokenize_Numbers(t *testing.T) {
	cases := []struct {
		src   string
		value float64
	}{
		{"42", 42},
		{"0x1f", 31},
		{"0o17", 15},
		{"0b101", 5},
		{"1_000_000", 1000000},
		{".5", 0.5},
		{"1e3", 1000},
		{"1.5e-2", 0.015},
	}
	for _, c := range cases {
		tokens := tokenize(t, c.src)
		require.Len(t, tokens, 1, c.src)
		assert.Equal(t, T_NUMBER, tokens[0].Type, c.src)
		assert.Equal(t, c.value, tokens[0].Number, c.src)
	}
}

func TestTokenize_LegacyOctal(t *testing.T) {
	tokens := tokenize(t, "012")
	assert.Equal(t, float64(10), tokens[0].Number)
	assert.True(t, tokens[0].LegacyOctal)

	// 含 8/9 时按十进制取值，仍带遗留标志
	tokens = tokenize(t, "089")
	assert.Equal(t, float64(89), tokens[0].Number)
	assert.True(t, tokens[0].LegacyOctal)

	tokens = tokenize(t, "0")
	assert.False(t, tokens[0].LegacyOctal)
}

func TestTokenize_BigInt(t *testing.T) {
	tokens := tokenize(t, "123n")
	assert.Equal(t, T_BIGINT, tokens[0].Type)
	assert.Equal(t, "123", tokens[0].BigInt)

	// 基数归一化为十进制
	tokens = tokenize(t, "0x10n")
	assert.Equal(t, "16", tokens[0].BigInt)

	_, err := Tokenize("1.5n")
	require.Error(t, err)
	_, err = Tokenize("01n")
	require.Error(t, err)
}

func TestTokenize_NumberBoundary(t *testing.T) {
	_, err := Tokenize("3in x")
	require.Error(t, err)
}

func TestTokenize_Strings(t *testing.T) {
	tokens := tokenize(t, `"a\nb"`)
	assert.Equal(t, "a\nb", tokens[0].String)

	tokens = tokenize(t, `'\x41B\u{43}'`)
	assert.Equal(t, "ABC", tokens[0].String)

	tokens = tokenize(t, `"\101"`)
	assert.Equal(t, "A", tokens[0].String)
	assert.True(t, tokens[0].LegacyOctal)

	tokens = tokenize(t, `"\8"`)
	assert.Equal(t, "8", tokens[0].String)
	assert.True(t, tokens[0].NonOctalEscape)

	// 孤立的 \0 是 NUL，不算遗留八进制
	tokens = tokenize(t, `"\0"`)
	assert.Equal(t, "\x00", tokens[0].String)
	assert.False(t, tokens[0].LegacyOctal)

	_, err := Tokenize(`"abc`)
	require.Error(t, err)
	_, err = Tokenize("\"a\nb\"")
	require.Error(t, err)
}

func TestTokenize_SurrogatePairs(t *testing.T) {
	tokens := tokenize(t, `"😀"`)
	assert.Equal(t, "😀", tokens[0].String)
	assert.False(t, tokens[0].UnpairedSurrogate)

	tokens = tokenize(t, `"\uD800"`)
	assert.True(t, tokens[0].UnpairedSurrogate)
}

func TestTokenize_Templates(t *testing.T) {
	tokens := tokenize(t, "`abc`")
	require.Len(t, tokens, 1)
	assert.Equal(t, T_TEMPLATE_STRING, tokens[0].Type)
	assert.Equal(t, "abc", tokens[0].String)

	tokens = tokenize(t, "`a${b}c${d}e`")
	assert.Equal(t, []TokenType{
		T_TEMPLATE_HEAD, T_IDENTIFIER, T_TEMPLATE_MIDDLE, T_IDENTIFIER, T_TEMPLATE_TAIL,
	}, kinds(tokens))
	assert.Equal(t, "a", tokens[0].String)
	assert.Equal(t, "c", tokens[2].String)
	assert.Equal(t, "e", tokens[4].String)
}

func TestTokenize_TemplateNestedBraces(t *testing.T) {
	tokens := tokenize(t, "`a${ {x: 1} }b`")
	assert.Equal(t, T_TEMPLATE_HEAD, tokens[0].Type)
	assert.Equal(t, T_TEMPLATE_TAIL, tokens[len(tokens)-1].Type)
}

func TestTokenize_TemplateInvalidEscape(t *testing.T) {
	// 模板中的无效转义不是词法错误，cooked 置空标志
	tokens := tokenize(t, "`\\u{ZZ}`")
	require.Len(t, tokens, 1)
	assert.True(t, tokens[0].CookedInvalid)
}

func TestTokenize_RegexVersusDivision(t *testing.T) {
	tokens := tokenize(t, "a = /ab+c/gi")
	require.Equal(t, T_REGEX, tokens[2].Type)
	assert.Equal(t, "ab+c", tokens[2].Pattern)
	assert.Equal(t, "gi", tokens[2].Flags)

	tokens = tokenize(t, "a / b / c")
	assert.Equal(t, []TokenType{
		T_IDENTIFIER, TOKEN_SLASH, T_IDENTIFIER, TOKEN_SLASH, T_IDENTIFIER,
	}, kinds(tokens))

	// 字符类中的 / 不结束正则
	tokens = tokenize(t, "x = /[/]/")
	assert.Equal(t, T_REGEX, tokens[2].Type)
}

func TestTokenize_RegexInvalidFlags(t *testing.T) {
	_, err := Tokenize("x = /a/gg")
	require.Error(t, err)
	_, err = Tokenize("x = /a/uv")
	require.Error(t, err)
}

func TestTokenize_PrivateName(t *testing.T) {
	tokens := tokenize(t, "this.#field")
	assert.Equal(t, T_PRIVATE_NAME, tokens[2].Type)
	assert.Equal(t, "#field", tokens[2].Lexeme)
}

func TestTokenize_Hashbang(t *testing.T) {
	tokens := tokenize(t, "#!/usr/bin/env node\nlet x")
	assert.Equal(t, []TokenType{T_IDENTIFIER, T_IDENTIFIER}, kinds(tokens))
}

func TestTokenize_Comments(t *testing.T) {
	tokens := tokenize(t, "a // line\n/* block\nmore */ b")
	require.Len(t, tokens, 2)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 3, tokens[1].Line)
}

func TestTokenize_Positions(t *testing.T) {
	tokens := tokenize(t, "ab\n  cd")
	require.Len(t, tokens, 2)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 0, tokens[0].Column)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 2, tokens[1].Column)
	assert.Equal(t, 5, tokens[1].Start)
	assert.Equal(t, 7, tokens[1].End)
}

func TestTokenize_UnterminatedConstructs(t *testing.T) {
	for _, src := range []string{"`abc", "/* abc", "x = /abc"} {
		_, err := Tokenize(src)
		require.Error(t, err, src)
	}
}

func TestLineIndex_Position(t *testing.T) {
	ix := NewLineIndex("ab\ncde\n\nf")
	line, col := ix.Position(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 0, col)
	line, col = ix.Position(4)
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)
	line, col = ix.Position(8)
	assert.Equal(t, 4, line)
	assert.Equal(t, 0, col)
}
