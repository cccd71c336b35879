package lexer

import "fmt"

// TokenType 表示 ECMAScript Token 类型
type TokenType int

// Position 表示 Token 在源代码中的位置
type Position struct {
	Line   int // 行号（从1开始）
	Column int // 列号（从0开始，按 ESTree 约定）
	Offset int // 字节偏移（从0开始）
}

// Token 表示一个词法单元
type Token struct {
	Type   TokenType // Token 类型
	Lexeme string    // 解码后的文本（标识符已处理 \u 转义）
	Start  int       // 起始字节偏移
	End    int       // 结束字节偏移（不含）

	Line      int // 起始行（从1开始）
	Column    int // 起始列（从0开始）
	EndLine   int // 结束行
	EndColumn int // 结束列

	// 字面量载荷
	Number  float64 // T_NUMBER 的数值
	BigInt  string  // T_BIGINT 的十进制文本（基数已归一化）
	String  string  // 字符串/模板的解码值（cooked）
	Pattern string  // T_REGEX 的模式体
	Flags   string  // T_REGEX 的标志

	// 延迟校验标志
	LegacyOctal       bool // 0 开头的遗留数字字面量（0123，或含 8/9 的 089），或字符串中的 \1..\7、\0<digit> 转义
	NonOctalEscape    bool // 字符串中的 \8 或 \9 转义
	CookedInvalid     bool // 模板片段含无法解码的转义（cooked 为 null）
	UnpairedSurrogate bool // 解码后的字符串值含未配对的代理项
}

// Pos 返回 Token 的起始位置
func (t Token) Pos() Position {
	return Position{Line: t.Line, Column: t.Column, Offset: t.Start}
}

// EndPos 返回 Token 的结束位置
func (t Token) EndPos() Position {
	return Position{Line: t.EndLine, Column: t.EndColumn, Offset: t.End}
}

// HasEscape reports whether the token was written with escape sequences, by
// comparing the source span against the decoded text. Only meaningful for
// identifier-like tokens, where Lexeme holds the decoded name.
func (t Token) HasEscape() bool {
	return t.End-t.Start != len(t.Lexeme)
}

// Describe 返回 Token 的字符串表示
func (t Token) Describe() string {
	return fmt.Sprintf("Token{Type: %s, Lexeme: %q, Pos: %d:%d}",
		TokenNames[t.Type], t.Lexeme, t.Line, t.Column)
}

// Token 类型常量。关键字与字面量使用 T_ 前缀，标点符号使用 TOKEN_ 前缀。
const (
	T_EOF TokenType = iota

	// 字面量与名字
	T_IDENTIFIER      // foo, let, async, of, ...（上下文关键字保持标识符）
	T_PRIVATE_NAME    // #name
	T_NUMBER          // 123, 0x1f, 1_000, .5
	T_BIGINT          // 123n
	T_STRING          // "abc", 'abc'
	T_TEMPLATE_STRING // `abc`（无插值）
	T_TEMPLATE_HEAD   // `abc${
	T_TEMPLATE_MIDDLE // }abc${
	T_TEMPLATE_TAIL   // }abc`
	T_REGEX           // /ab+c/gi

	// 无条件保留字
	T_BREAK
	T_CASE
	T_CATCH
	T_CLASS
	T_CONST
	T_CONTINUE
	T_DEBUGGER
	T_DEFAULT
	T_DELETE
	T_DO
	T_ELSE
	T_ENUM
	T_EXPORT
	T_EXTENDS
	T_FALSE
	T_FINALLY
	T_FOR
	T_FUNCTION
	T_IF
	T_IMPORT
	T_IN
	T_INSTANCEOF
	T_NEW
	T_NULL
	T_RETURN
	T_SUPER
	T_SWITCH
	T_THIS
	T_THROW
	T_TRUE
	T_TRY
	T_TYPEOF
	T_VAR
	T_VOID
	T_WHILE
	T_WITH

	// 括号与分隔符
	TOKEN_LBRACE    // {
	TOKEN_RBRACE    // }
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_LBRACKET  // [
	TOKEN_RBRACKET  // ]
	TOKEN_SEMICOLON // ;
	TOKEN_COMMA     // ,
	TOKEN_COLON     // :
	TOKEN_DOT       // .
	TOKEN_ELLIPSIS  // ...
	TOKEN_ARROW     // =>
	TOKEN_QUESTION  // ?

	// 成员与可选链
	TOKEN_QUESTION_DOT // ?.

	// 算术
	TOKEN_PLUS    // +
	TOKEN_MINUS   // -
	TOKEN_STAR    // *
	TOKEN_SLASH   // /
	TOKEN_PERCENT // %
	TOKEN_POW     // **
	TOKEN_INC     // ++
	TOKEN_DEC     // --

	// 比较
	TOKEN_LT        // <
	TOKEN_GT        // >
	TOKEN_LE        // <=
	TOKEN_GE        // >=
	TOKEN_EQ        // ==
	TOKEN_NE        // !=
	TOKEN_EQ_STRICT // ===
	TOKEN_NE_STRICT // !==

	// 位移
	TOKEN_SHL  // <<
	TOKEN_SHR  // >>
	TOKEN_USHR // >>>

	// 位运算
	TOKEN_AMPERSAND // &
	TOKEN_PIPE      // |
	TOKEN_CARET     // ^
	TOKEN_TILDE     // ~

	// 逻辑
	TOKEN_NOT      // !
	TOKEN_AND      // &&
	TOKEN_OR       // ||
	TOKEN_COALESCE // ??

	// 赋值
	TOKEN_ASSIGN          // =
	TOKEN_PLUS_ASSIGN     // +=
	TOKEN_MINUS_ASSIGN    // -=
	TOKEN_STAR_ASSIGN     // *=
	TOKEN_SLASH_ASSIGN    // /=
	TOKEN_PERCENT_ASSIGN  // %=
	TOKEN_POW_ASSIGN      // **=
	TOKEN_SHL_ASSIGN      // <<=
	TOKEN_SHR_ASSIGN      // >>=
	TOKEN_USHR_ASSIGN     // >>>=
	TOKEN_AMP_ASSIGN      // &=
	TOKEN_PIPE_ASSIGN     // |=
	TOKEN_CARET_ASSIGN    // ^=
	TOKEN_AND_ASSIGN      // &&=
	TOKEN_OR_ASSIGN       // ||=
	TOKEN_COALESCE_ASSIGN // ??=
)

// TokenNames Token 类型到名称的映射
var TokenNames = map[TokenType]string{
	T_EOF:             "EOF",
	T_IDENTIFIER:      "identifier",
	T_PRIVATE_NAME:    "private name",
	T_NUMBER:          "number",
	T_BIGINT:          "bigint",
	T_STRING:          "string",
	T_TEMPLATE_STRING: "template string",
	T_TEMPLATE_HEAD:   "template head",
	T_TEMPLATE_MIDDLE: "template middle",
	T_TEMPLATE_TAIL:   "template tail",
	T_REGEX:           "regular expression",

	T_BREAK:      "break",
	T_CASE:       "case",
	T_CATCH:      "catch",
	T_CLASS:      "class",
	T_CONST:      "const",
	T_CONTINUE:   "continue",
	T_DEBUGGER:   "debugger",
	T_DEFAULT:    "default",
	T_DELETE:     "delete",
	T_DO:         "do",
	T_ELSE:       "else",
	T_ENUM:       "enum",
	T_EXPORT:     "export",
	T_EXTENDS:    "extends",
	T_FALSE:      "false",
	T_FINALLY:    "finally",
	T_FOR:        "for",
	T_FUNCTION:   "function",
	T_IF:         "if",
	T_IMPORT:     "import",
	T_IN:         "in",
	T_INSTANCEOF: "instanceof",
	T_NEW:        "new",
	T_NULL:       "null",
	T_RETURN:     "return",
	T_SUPER:      "super",
	T_SWITCH:     "switch",
	T_THIS:       "this",
	T_THROW:      "throw",
	T_TRUE:       "true",
	T_TRY:        "try",
	T_TYPEOF:     "typeof",
	T_VAR:        "var",
	T_VOID:       "void",
	T_WHILE:      "while",
	T_WITH:       "with",

	TOKEN_LBRACE:    "'{'",
	TOKEN_RBRACE:    "'}'",
	TOKEN_LPAREN:    "'('",
	TOKEN_RPAREN:    "')'",
	TOKEN_LBRACKET:  "'['",
	TOKEN_RBRACKET:  "']'",
	TOKEN_SEMICOLON: "';'",
	TOKEN_COMMA:     "','",
	TOKEN_COLON:     "':'",
	TOKEN_DOT:       "'.'",
	TOKEN_ELLIPSIS:  "'...'",
	TOKEN_ARROW:     "'=>'",
	TOKEN_QUESTION:  "'?'",

	TOKEN_QUESTION_DOT: "'?.'",

	TOKEN_PLUS:    "'+'",
	TOKEN_MINUS:   "'-'",
	TOKEN_STAR:    "'*'",
	TOKEN_SLASH:   "'/'",
	TOKEN_PERCENT: "'%'",
	TOKEN_POW:     "'**'",
	TOKEN_INC:     "'++'",
	TOKEN_DEC:     "'--'",

	TOKEN_LT:        "'<'",
	TOKEN_GT:        "'>'",
	TOKEN_LE:        "'<='",
	TOKEN_GE:        "'>='",
	TOKEN_EQ:        "'=='",
	TOKEN_NE:        "'!='",
	TOKEN_EQ_STRICT: "'==='",
	TOKEN_NE_STRICT: "'!=='",

	TOKEN_SHL:  "'<<'",
	TOKEN_SHR:  "'>>'",
	TOKEN_USHR: "'>>>'",

	TOKEN_AMPERSAND: "'&'",
	TOKEN_PIPE:      "'|'",
	TOKEN_CARET:     "'^'",
	TOKEN_TILDE:     "'~'",

	TOKEN_NOT:      "'!'",
	TOKEN_AND:      "'&&'",
	TOKEN_OR:       "'||'",
	TOKEN_COALESCE: "'??'",

	TOKEN_ASSIGN:          "'='",
	TOKEN_PLUS_ASSIGN:     "'+='",
	TOKEN_MINUS_ASSIGN:    "'-='",
	TOKEN_STAR_ASSIGN:     "'*='",
	TOKEN_SLASH_ASSIGN:    "'/='",
	TOKEN_PERCENT_ASSIGN:  "'%='",
	TOKEN_POW_ASSIGN:      "'**='",
	TOKEN_SHL_ASSIGN:      "'<<='",
	TOKEN_SHR_ASSIGN:      "'>>='",
	TOKEN_USHR_ASSIGN:     "'>>>='",
	TOKEN_AMP_ASSIGN:      "'&='",
	TOKEN_PIPE_ASSIGN:     "'|='",
	TOKEN_CARET_ASSIGN:    "'^='",
	TOKEN_AND_ASSIGN:      "'&&='",
	TOKEN_OR_ASSIGN:       "'||='",
	TOKEN_COALESCE_ASSIGN: "'??='",
}

// Name 返回 Token 类型的可读名称
func (t TokenType) Name() string {
	if n, ok := TokenNames[t]; ok {
		return n
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// keywords 无条件保留字表。上下文关键字（let、async、of、static、get、set、
// as、from、yield、await、target、meta）不在其中，由解析器按位置识别。
var keywords = map[string]TokenType{
	"break":      T_BREAK,
	"case":       T_CASE,
	"catch":      T_CATCH,
	"class":      T_CLASS,
	"const":      T_CONST,
	"continue":   T_CONTINUE,
	"debugger":   T_DEBUGGER,
	"default":    T_DEFAULT,
	"delete":     T_DELETE,
	"do":         T_DO,
	"else":       T_ELSE,
	"enum":       T_ENUM,
	"export":     T_EXPORT,
	"extends":    T_EXTENDS,
	"false":      T_FALSE,
	"finally":    T_FINALLY,
	"for":        T_FOR,
	"function":   T_FUNCTION,
	"if":         T_IF,
	"import":     T_IMPORT,
	"in":         T_IN,
	"instanceof": T_INSTANCEOF,
	"new":        T_NEW,
	"null":       T_NULL,
	"return":     T_RETURN,
	"super":      T_SUPER,
	"switch":     T_SWITCH,
	"this":       T_THIS,
	"throw":      T_THROW,
	"true":       T_TRUE,
	"try":        T_TRY,
	"typeof":     T_TYPEOF,
	"var":        T_VAR,
	"void":       T_VOID,
	"while":      T_WHILE,
	"with":       T_WITH,
}

// LookupKeyword 返回标识符文本对应的保留字类型；非保留字返回 T_IDENTIFIER。
func LookupKeyword(name string) TokenType {
	if tok, ok := keywords[name]; ok {
		return tok
	}
	return T_IDENTIFIER
}

// IsKeyword reports whether the token type is an unconditional reserved word.
func (t TokenType) IsKeyword() bool {
	return t >= T_BREAK && t <= T_WITH
}

// IsAssignOp reports whether the token type is an assignment operator.
func (t TokenType) IsAssignOp() bool {
	return t >= TOKEN_ASSIGN && t <= TOKEN_COALESCE_ASSIGN
}
