// Package parser implements the ECMAScript syntactic analyzer: a Pratt
// expression parser interlocked with a recursive statement parser, enforcing
// the language's early-error rules. The parser is fail-fast; the first
// violation surfaces as a *errors.Error and no partial AST is produced.
package parser

import (
	"fmt"

	"github.com/wudi/js-parser/ast"
	"github.com/wudi/js-parser/errors"
	"github.com/wudi/js-parser/lexer"
)

// Options 解析配置。这是唯二可识别的开关。
type Options struct {
	Module bool // 以模块解析；蕴含严格模式，启用模块专属语法
	Strict bool // 脚本也从严格模式开始
}

// Precedence levels: COMMA=1 up through POSTFIX=17.
type Precedence int

const (
	_ Precedence = iota
	COMMA
	ASSIGNMENT
	TERNARY
	COALESCE
	LOGICAL_OR
	LOGICAL_AND
	BITWISE_OR
	BITWISE_XOR
	BITWISE_AND
	EQUALITY
	RELATIONAL
	SHIFT
	ADDITIVE
	MULTIPLICATIVE
	EXPONENTIAL
	UNARY
	POSTFIX
)

// precedenceMap binding power of every infix operator token.
var precedenceMap = map[lexer.TokenType]Precedence{
	lexer.TOKEN_COMMA: COMMA,

	lexer.TOKEN_ASSIGN:          ASSIGNMENT,
	lexer.TOKEN_PLUS_ASSIGN:     ASSIGNMENT,
	lexer.TOKEN_MINUS_ASSIGN:    ASSIGNMENT,
	lexer.TOKEN_STAR_ASSIGN:     ASSIGNMENT,
	lexer.TOKEN_SLASH_ASSIGN:    ASSIGNMENT,
	lexer.TOKEN_PERCENT_ASSIGN:  ASSIGNMENT,
	lexer.TOKEN_POW_ASSIGN:      ASSIGNMENT,
	lexer.TOKEN_SHL_ASSIGN:      ASSIGNMENT,
	lexer.TOKEN_SHR_ASSIGN:      ASSIGNMENT,
	lexer.TOKEN_USHR_ASSIGN:     ASSIGNMENT,
	lexer.TOKEN_AMP_ASSIGN:      ASSIGNMENT,
	lexer.TOKEN_PIPE_ASSIGN:     ASSIGNMENT,
	lexer.TOKEN_CARET_ASSIGN:    ASSIGNMENT,
	lexer.TOKEN_AND_ASSIGN:      ASSIGNMENT,
	lexer.TOKEN_OR_ASSIGN:       ASSIGNMENT,
	lexer.TOKEN_COALESCE_ASSIGN: ASSIGNMENT,

	lexer.TOKEN_QUESTION: TERNARY,

	lexer.TOKEN_COALESCE: COALESCE,
	lexer.TOKEN_OR:       LOGICAL_OR,
	lexer.TOKEN_AND:      LOGICAL_AND,

	lexer.TOKEN_PIPE:      BITWISE_OR,
	lexer.TOKEN_CARET:     BITWISE_XOR,
	lexer.TOKEN_AMPERSAND: BITWISE_AND,

	lexer.TOKEN_EQ:        EQUALITY,
	lexer.TOKEN_NE:        EQUALITY,
	lexer.TOKEN_EQ_STRICT: EQUALITY,
	lexer.TOKEN_NE_STRICT: EQUALITY,

	lexer.TOKEN_LT:     RELATIONAL,
	lexer.TOKEN_GT:     RELATIONAL,
	lexer.TOKEN_LE:     RELATIONAL,
	lexer.TOKEN_GE:     RELATIONAL,
	lexer.T_INSTANCEOF: RELATIONAL,
	lexer.T_IN:         RELATIONAL,

	lexer.TOKEN_SHL:  SHIFT,
	lexer.TOKEN_SHR:  SHIFT,
	lexer.TOKEN_USHR: SHIFT,

	lexer.TOKEN_PLUS:  ADDITIVE,
	lexer.TOKEN_MINUS: ADDITIVE,

	lexer.TOKEN_STAR:    MULTIPLICATIVE,
	lexer.TOKEN_SLASH:   MULTIPLICATIVE,
	lexer.TOKEN_PERCENT: MULTIPLICATIVE,

	lexer.TOKEN_POW: EXPONENTIAL,

	lexer.TOKEN_INC: POSTFIX,
	lexer.TOKEN_DEC: POSTFIX,

	lexer.TOKEN_DOT:          POSTFIX,
	lexer.TOKEN_LBRACKET:     POSTFIX,
	lexer.TOKEN_LPAREN:       POSTFIX,
	lexer.TOKEN_QUESTION_DOT: POSTFIX,

	lexer.T_TEMPLATE_STRING: POSTFIX,
	lexer.T_TEMPLATE_HEAD:   POSTFIX,
}

// rightAssociative 右结合的中缀操作符
var rightAssociative = map[lexer.TokenType]bool{
	lexer.TOKEN_POW: true,
}

// 前缀解析函数类型
type prefixParseFn func() ast.Expression

// 中缀解析函数类型
type infixParseFn func(left ast.Expression) ast.Expression

// Parser 解析器结构体。每次解析一个源文件，用后即弃。
type Parser struct {
	source string
	tokens []lexer.Token
	pos    int

	opts Options
	ctx  parsingContext

	// 前缀/中缀解析函数表
	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn

	// 作用域与标签
	scopes     []*scopeFrame
	labels     map[string]bool // 标签名 → 是否迭代标签
	loopDepth  int
	switchDepth int

	// 私有名环境
	privateStack   []map[string]*privateNameInfo
	pendingPrivate []pendingRef

	// 模块导出
	exportedNames  map[string]bool
	pendingExports []pendingRef

	// cover grammar 侧信道
	parenNonSimple int             // 最近一个带括号的非简单目标的起始偏移；-1 表示无
	coverInitPos   *lexer.Token    // 首个未转换的 {x = v} 简写
	protoDupPos    *lexer.Token    // 首个未转换字面量中的重复 __proto__
	parenized      map[ast.Node]bool // 被括号包裹过的表达式节点
	spreadNotLast  map[ast.Node]bool // 展开元素之后还有内容（或尾随逗号）的字面量
	chainActive    bool              // 当前成员/调用链中出现过 ?.

	index *lexer.LineIndex
}

// pendingRef 等待延迟校验的引用（私有名或导出绑定）
type pendingRef struct {
	name  string
	token lexer.Token
	depth int
}

// New 创建解析器。词法分析在 ParseProgram 中进行，词法错误由它返回。
func New(source string, opts Options) *Parser {
	p := &Parser{
		source:         source,
		opts:           opts,
		labels:         map[string]bool{},
		exportedNames:  map[string]bool{},
		parenNonSimple: -1,
		parenized:      map[ast.Node]bool{},
		spreadNotLast:  map[ast.Node]bool{},
		index:          lexer.NewLineIndex(source),
	}
	p.registerPrefixParsers()
	p.registerInfixParsers()
	return p
}

// Parse 一次性解析入口
func Parse(source string, opts Options) (*ast.Program, error) {
	return New(source, opts).ParseProgram()
}

// ParseProgram 解析整个程序。任何违例都会以 *errors.Error 返回。
func (p *Parser) ParseProgram() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*errors.Error); ok {
				prog, err = nil, e
				return
			}
			panic(r)
		}
	}()

	tokens, lerr := lexer.Tokenize(p.source)
	if lerr != nil {
		return nil, lerr
	}
	p.tokens = tokens

	p.ctx.Strict = p.opts.Strict || p.opts.Module
	p.ctx.AllowIn = true
	p.pushScope(true)

	sourceType := "script"
	if p.opts.Module {
		sourceType = "module"
	}

	body := p.parseStatementList(lexer.T_EOF, true)

	// 延迟校验：私有名引用必须落在某个类的私有名集合内
	if len(p.pendingPrivate) > 0 {
		ref := p.pendingPrivate[0]
		p.failAt(ref.token, fmt.Sprintf("private name #%s is not defined", ref.name))
	}
	// 延迟校验：export { x } 的本地名必须是模块顶层绑定
	p.resolvePendingExports()
	p.popScope()

	endLine, endCol := p.index.Position(len(p.source))
	return &ast.Program{
		Span: ast.Span{
			Start: 0,
			End:   len(p.source),
			Loc: ast.SourceLocation{
				Start: ast.Position{Line: 1, Column: 0},
				End:   ast.Position{Line: endLine, Column: endCol},
			},
		},
		Body:       body,
		SourceType: sourceType,
	}, nil
}

// ============= TOKEN CURSOR =============

// peek 返回当前 Token（不消费）
func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

// peekAt 返回当前位置之后第 offset 个 Token
func (p *Parser) peekAt(offset int) lexer.Token {
	if p.pos+offset >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF 哨兵
	}
	return p.tokens[p.pos+offset]
}

// advance 消费并返回当前 Token
func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// previous 返回上一个已消费的 Token
func (p *Parser) previous() lexer.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

// check 判断当前 Token 类型
func (p *Parser) check(t lexer.TokenType) bool {
	return p.peek().Type == t
}

// match 若当前 Token 是给定类型之一则消费
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume 断言并消费指定类型的 Token
func (p *Parser) consume(t lexer.TokenType, msg string) lexer.Token {
	if !p.check(t) {
		p.fail(msg)
	}
	return p.advance()
}

// lineBreakBefore 当前 Token 与上一个 Token 之间是否跨行
func (p *Parser) lineBreakBefore() bool {
	if p.pos == 0 {
		return false
	}
	return p.tokens[p.pos].Line > p.tokens[p.pos-1].EndLine
}

// lineBreakBetween 两个 Token 之间是否跨行
func lineBreakBetween(a, b lexer.Token) bool {
	return b.Line > a.EndLine
}

// isContextual 当前 Token 是无转义的给定上下文关键字
func (p *Parser) isContextual(name string) bool {
	t := p.peek()
	return t.Type == lexer.T_IDENTIFIER && t.Lexeme == name && !t.HasEscape()
}

// isContextualAt 偏移处 Token 是无转义的给定上下文关键字
func (p *Parser) isContextualAt(offset int, name string) bool {
	t := p.peekAt(offset)
	return t.Type == lexer.T_IDENTIFIER && t.Lexeme == name && !t.HasEscape()
}

// matchContextual 消费无转义的上下文关键字
func (p *Parser) matchContextual(name string) bool {
	if p.isContextual(name) {
		p.advance()
		return true
	}
	return false
}

// consumeContextual 断言并消费上下文关键字
func (p *Parser) consumeContextual(name string) lexer.Token {
	if !p.isContextual(name) {
		p.fail(fmt.Sprintf("expected '%s'", name))
	}
	return p.advance()
}

// ============= 错误与跨度 =============

// fail 在当前 Token 处抛出语法错误
func (p *Parser) fail(msg string) {
	p.failAt(p.peek(), msg)
}

// failAt 在指定 Token 处抛出语法错误
func (p *Parser) failAt(tok lexer.Token, msg string) {
	panic(errors.NewSyntaxError(msg, errors.Position{
		Line:   tok.Line,
		Column: tok.Column,
		Offset: tok.Start,
	}))
}

// failAtWithContext 带上下文标签的语法错误
func (p *Parser) failAtWithContext(tok lexer.Token, msg, context string) {
	panic(errors.NewSyntaxError(msg, errors.Position{
		Line:   tok.Line,
		Column: tok.Column,
		Offset: tok.Start,
	}).WithContext(context))
}

// spanFrom 以 start Token 起、上一个已消费 Token 止构造跨度
func (p *Parser) spanFrom(start lexer.Token) ast.Span {
	end := p.previous()
	return ast.Span{
		Start: start.Start,
		End:   end.End,
		Loc: ast.SourceLocation{
			Start: ast.Position{Line: start.Line, Column: start.Column},
			End:   ast.Position{Line: end.EndLine, Column: end.EndColumn},
		},
	}
}

// spanBetween 以两个节点为界构造跨度
func spanBetween(a, b ast.Node) ast.Span {
	start, _ := a.Range()
	_, end := b.Range()
	return ast.Span{
		Start: start,
		End:   end,
		Loc: ast.SourceLocation{
			Start: a.Location().Start,
			End:   b.Location().End,
		},
	}
}

// spanOfToken 单个 Token 的跨度
func spanOfToken(t lexer.Token) ast.Span {
	return ast.Span{
		Start: t.Start,
		End:   t.End,
		Loc: ast.SourceLocation{
			Start: ast.Position{Line: t.Line, Column: t.Column},
			End:   ast.Position{Line: t.EndLine, Column: t.EndColumn},
		},
	}
}

// raw 返回节点覆盖的原始源文本
func (p *Parser) raw(start, end int) string {
	return p.source[start:end]
}
