// Package lexer implements the ECMAScript tokenizer. It scans a full source
// text into a token vector that the parser consumes with random access.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"github.com/wudi/js-parser/errors"
)

// Lexer 词法分析器
type Lexer struct {
	source    string
	pos       int
	line      int // 当前行号（从1开始）
	lineStart int // 当前行起始偏移

	// 当前 Token 的起始位置，在分发前记录
	tokLine int
	tokCol  int

	tokens []Token
	index  *LineIndex // 错误定位用，惰性构建

	// 模板插值的花括号深度栈。进入 `${` 压入0，遇 { 加一，遇 } 减一；
	// 顶层深度为0的 } 恢复模板扫描。
	templateBraces []int
}

// New 创建词法分析器
func New(source string) *Lexer {
	return &Lexer{source: source, line: 1}
}

// Tokenize scans the whole source into a token vector terminated by a T_EOF
// sentinel. The first lexical violation aborts the scan.
func Tokenize(source string) ([]Token, error) {
	return New(source).Tokenize()
}

// Tokenize 扫描整个源文件
func (l *Lexer) Tokenize() ([]Token, error) {
	l.skipHashbang()
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
		if tok.Type == T_EOF {
			return l.tokens, nil
		}
	}
}

// skipHashbang 跳过开头的 #! 行
func (l *Lexer) skipHashbang() {
	if len(l.source) >= 2 && l.source[0] == '#' && l.source[1] == '!' {
		for l.pos < len(l.source) && !isLineTerminatorAt(l.source, l.pos) {
			l.pos++
		}
	}
}

func (l *Lexer) next() (Token, error) {
	if err := l.skipWhitespace(); err != nil {
		return Token{}, err
	}
	l.tokLine = l.line
	l.tokCol = l.pos - l.lineStart

	if l.pos >= len(l.source) {
		return l.makeToken(T_EOF, l.pos, ""), nil
	}

	start := l.pos
	c := l.source[l.pos]

	// 深度为0的 } 结束一段插值，恢复模板扫描
	if c == '}' && len(l.templateBraces) > 0 && l.templateBraces[len(l.templateBraces)-1] == 0 {
		l.templateBraces = l.templateBraces[:len(l.templateBraces)-1]
		l.pos++
		return l.scanTemplate(start, false)
	}

	switch {
	case c == '"' || c == '\'':
		return l.scanString()
	case c == '`':
		l.pos++
		return l.scanTemplate(start, true)
	case c >= '0' && c <= '9':
		return l.scanNumber()
	case c == '.' && l.pos+1 < len(l.source) && isDigit(l.source[l.pos+1]):
		return l.scanNumber()
	case c == '#':
		return l.scanPrivateName()
	case c == '/' && l.regexAllowed():
		return l.scanRegex()
	}

	if isIdentStartByte(c) || c >= utf8.RuneSelf || c == '\\' {
		return l.scanIdentifier()
	}

	return l.scanPunctuator()
}

// skipWhitespace 跳过空白与注释
func (l *Lexer) skipWhitespace() error {
	for l.pos < len(l.source) {
		c := l.source[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\v' || c == '\f':
			l.pos++
		case c == '\n' || c == '\r':
			l.consumeLineTerminator()
		case c == '/' && l.pos+1 < len(l.source) && l.source[l.pos+1] == '/':
			l.pos += 2
			for l.pos < len(l.source) && !isLineTerminatorAt(l.source, l.pos) {
				l.pos++
			}
		case c == '/' && l.pos+1 < len(l.source) && l.source[l.pos+1] == '*':
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(l.source[l.pos:])
			if r == 0x2028 || r == 0x2029 {
				l.consumeLineTerminator()
			} else if unicode.IsSpace(r) || r == 0xFEFF {
				l.pos += size
			} else {
				return nil
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) skipBlockComment() error {
	start := l.pos
	l.pos += 2
	for l.pos < len(l.source) {
		if l.source[l.pos] == '*' && l.pos+1 < len(l.source) && l.source[l.pos+1] == '/' {
			l.pos += 2
			return nil
		}
		if isLineTerminatorAt(l.source, l.pos) {
			l.consumeLineTerminator()
			continue
		}
		l.pos++
	}
	return l.lexError(start, "unterminated block comment")
}

// consumeLineTerminator 消费当前位置的行终结符并更新行信息
func (l *Lexer) consumeLineTerminator() {
	c := l.source[l.pos]
	switch c {
	case '\r':
		l.pos++
		if l.pos < len(l.source) && l.source[l.pos] == '\n' {
			l.pos++
		}
	case '\n':
		l.pos++
	default:
		_, size := utf8.DecodeRuneInString(l.source[l.pos:])
		l.pos += size
	}
	l.line++
	l.lineStart = l.pos
}

// regexAllowed decides whether a leading '/' starts a regular expression or a
// division, from the previous significant token.
func (l *Lexer) regexAllowed() bool {
	if len(l.tokens) == 0 {
		return true
	}
	prev := l.tokens[len(l.tokens)-1]
	switch prev.Type {
	case T_IDENTIFIER, T_PRIVATE_NAME, T_NUMBER, T_BIGINT, T_STRING, T_REGEX,
		T_TEMPLATE_STRING, T_TEMPLATE_TAIL,
		T_THIS, T_SUPER, T_TRUE, T_FALSE, T_NULL, T_IMPORT,
		TOKEN_RPAREN, TOKEN_RBRACKET, TOKEN_INC, TOKEN_DEC:
		return false
	}
	return true
}

// scanIdentifier 扫描标识符或关键字，处理 \u 转义
func (l *Lexer) scanIdentifier() (Token, error) {
	start := l.pos
	name, hadEscape, err := l.scanIdentName()
	if err != nil {
		return Token{}, err
	}
	tok := l.makeToken(T_IDENTIFIER, start, name)
	if !hadEscape {
		if kw := LookupKeyword(name); kw != T_IDENTIFIER {
			tok.Type = kw
		}
	} else if LookupKeyword(name) != T_IDENTIFIER {
		return Token{}, l.lexError(start, "keyword must not contain escape sequences")
	}
	return tok, nil
}

// scanIdentName 扫描一个标识符名并解码其中的 \u 转义
func (l *Lexer) scanIdentName() (string, bool, error) {
	var name []rune
	hadEscape := false
	first := true
	for l.pos < len(l.source) {
		c := l.source[l.pos]
		if c == '\\' {
			escStart := l.pos
			if l.pos+1 >= len(l.source) || l.source[l.pos+1] != 'u' {
				return "", false, l.lexError(l.pos, "invalid character in identifier")
			}
			l.pos += 2
			r, err := l.scanUnicodeEscape(escStart)
			if err != nil {
				return "", false, err
			}
			if (first && !isIdentStartRune(r)) || (!first && !isIdentPartRune(r)) {
				return "", false, l.lexError(escStart, "invalid identifier escape")
			}
			name = append(name, r)
			hadEscape = true
		} else if c < utf8.RuneSelf {
			if (first && !isIdentStartByte(c)) || (!first && !isIdentPartByte(c)) {
				break
			}
			name = append(name, rune(c))
			l.pos++
		} else {
			r, size := utf8.DecodeRuneInString(l.source[l.pos:])
			if (first && !isIdentStartRune(r)) || (!first && !isIdentPartRune(r)) {
				break
			}
			name = append(name, r)
			l.pos += size
		}
		first = false
	}
	if first {
		return "", false, l.lexError(l.pos, "unexpected character")
	}
	return string(name), hadEscape, nil
}

// scanPrivateName 扫描 #name
func (l *Lexer) scanPrivateName() (Token, error) {
	start := l.pos
	l.pos++ // '#'
	name, _, err := l.scanIdentName()
	if err != nil {
		return Token{}, err
	}
	return l.makeToken(T_PRIVATE_NAME, start, "#"+name), nil
}

// scanPunctuator 扫描标点符号，最长匹配
func (l *Lexer) scanPunctuator() (Token, error) {
	start := l.pos
	src := l.source

	try := func(s string, t TokenType) *Token {
		if len(src)-l.pos >= len(s) && src[l.pos:l.pos+len(s)] == s {
			l.pos += len(s)
			tok := l.makeToken(t, start, s)
			return &tok
		}
		return nil
	}

	// 四字符
	if tok := try(">>>=", TOKEN_USHR_ASSIGN); tok != nil {
		return *tok, nil
	}
	// 三字符
	for _, p := range [...]struct {
		s string
		t TokenType
	}{
		{"...", TOKEN_ELLIPSIS}, {"===", TOKEN_EQ_STRICT}, {"!==", TOKEN_NE_STRICT},
		{"**=", TOKEN_POW_ASSIGN}, {"<<=", TOKEN_SHL_ASSIGN}, {">>=", TOKEN_SHR_ASSIGN},
		{">>>", TOKEN_USHR}, {"&&=", TOKEN_AND_ASSIGN}, {"||=", TOKEN_OR_ASSIGN},
		{"??=", TOKEN_COALESCE_ASSIGN},
	} {
		if tok := try(p.s, p.t); tok != nil {
			return *tok, nil
		}
	}
	// ?. 后跟数字时按 ? 处理（a?.5:b 是三目表达式）
	if len(src)-l.pos >= 2 && src[l.pos] == '?' && src[l.pos+1] == '.' {
		if len(src)-l.pos < 3 || !isDigit(src[l.pos+2]) {
			l.pos += 2
			return l.makeToken(TOKEN_QUESTION_DOT, start, "?."), nil
		}
	}
	// 二字符
	for _, p := range [...]struct {
		s string
		t TokenType
	}{
		{"=>", TOKEN_ARROW}, {"==", TOKEN_EQ}, {"!=", TOKEN_NE},
		{"<=", TOKEN_LE}, {">=", TOKEN_GE}, {"<<", TOKEN_SHL}, {">>", TOKEN_SHR},
		{"&&", TOKEN_AND}, {"||", TOKEN_OR}, {"??", TOKEN_COALESCE},
		{"++", TOKEN_INC}, {"--", TOKEN_DEC}, {"**", TOKEN_POW},
		{"+=", TOKEN_PLUS_ASSIGN}, {"-=", TOKEN_MINUS_ASSIGN}, {"*=", TOKEN_STAR_ASSIGN},
		{"/=", TOKEN_SLASH_ASSIGN}, {"%=", TOKEN_PERCENT_ASSIGN},
		{"&=", TOKEN_AMP_ASSIGN}, {"|=", TOKEN_PIPE_ASSIGN}, {"^=", TOKEN_CARET_ASSIGN},
	} {
		if tok := try(p.s, p.t); tok != nil {
			return *tok, nil
		}
	}
	// 单字符
	c := src[l.pos]
	if t, ok := singlePunctuators[c]; ok {
		l.pos++
		tok := l.makeToken(t, start, string(c))
		l.trackBrace(t)
		return tok, nil
	}
	return Token{}, l.lexError(l.pos, "unexpected character")
}

var singlePunctuators = map[byte]TokenType{
	'{': TOKEN_LBRACE, '}': TOKEN_RBRACE, '(': TOKEN_LPAREN, ')': TOKEN_RPAREN,
	'[': TOKEN_LBRACKET, ']': TOKEN_RBRACKET, ';': TOKEN_SEMICOLON, ',': TOKEN_COMMA,
	':': TOKEN_COLON, '.': TOKEN_DOT, '?': TOKEN_QUESTION, '+': TOKEN_PLUS,
	'-': TOKEN_MINUS, '*': TOKEN_STAR, '/': TOKEN_SLASH, '%': TOKEN_PERCENT,
	'<': TOKEN_LT, '>': TOKEN_GT, '&': TOKEN_AMPERSAND, '|': TOKEN_PIPE,
	'^': TOKEN_CARET, '~': TOKEN_TILDE, '!': TOKEN_NOT, '=': TOKEN_ASSIGN,
}

// trackBrace 维护模板插值内的花括号深度。深度为0的 } 在 next 中被拦截，
// 这里只会看到嵌套层。
func (l *Lexer) trackBrace(t TokenType) {
	if len(l.templateBraces) == 0 {
		return
	}
	top := len(l.templateBraces) - 1
	switch t {
	case TOKEN_LBRACE:
		l.templateBraces[top]++
	case TOKEN_RBRACE:
		l.templateBraces[top]--
	}
}

// makeToken 以 [start, l.pos) 为跨度构造 Token
func (l *Lexer) makeToken(t TokenType, start int, lexeme string) Token {
	return Token{
		Type:      t,
		Lexeme:    lexeme,
		Start:     start,
		End:       l.pos,
		Line:      l.tokLine,
		Column:    l.tokCol,
		EndLine:   l.line,
		EndColumn: l.pos - l.lineStart,
	}
}

func (l *Lexer) lexError(offset int, msg string) error {
	if l.index == nil {
		l.index = NewLineIndex(l.source)
	}
	line, col := l.index.Position(offset)
	return errors.NewLexicalError(msg, errors.Position{Line: line, Column: col, Offset: offset})
}

// ---- 字符分类 ----

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStartByte(c byte) bool {
	return c == '$' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPartByte(c byte) bool {
	return isIdentStartByte(c) || isDigit(c)
}

func isIdentStartRune(r rune) bool {
	if r < utf8.RuneSelf {
		return isIdentStartByte(byte(r))
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

func isIdentPartRune(r rune) bool {
	if r < utf8.RuneSelf {
		return isIdentPartByte(byte(r))
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) ||
		unicode.Is(unicode.Nd, r) || unicode.Is(unicode.Pc, r) ||
		r == 0x200C || r == 0x200D
}

func isLineTerminatorAt(s string, i int) bool {
	c := s[i]
	if c == '\n' || c == '\r' {
		return true
	}
	if c >= utf8.RuneSelf {
		r, _ := utf8.DecodeRuneInString(s[i:])
		return r == 0x2028 || r == 0x2029
	}
	return false
}
