package parser

import (
	"github.com/wudi/js-parser/ast"
	"github.com/wudi/js-parser/lexer"
)

// ============= PARSER FUNCTION REGISTRATION =============

func (p *Parser) registerPrefixParsers() {
	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.T_NUMBER:          p.parseNumberLiteral,
		lexer.T_BIGINT:          p.parseBigIntLiteral,
		lexer.T_STRING:          p.parseStringLiteral,
		lexer.T_REGEX:           p.parseRegexLiteral,
		lexer.T_TRUE:            p.parseKeywordLiteral,
		lexer.T_FALSE:           p.parseKeywordLiteral,
		lexer.T_NULL:            p.parseKeywordLiteral,
		lexer.T_IDENTIFIER:      p.parseIdentifierExpression,
		lexer.T_THIS:            p.parseThisExpression,
		lexer.T_SUPER:           p.parseSuperExpression,
		lexer.T_PRIVATE_NAME:    p.parsePrivateNameExpression,
		lexer.TOKEN_LPAREN:      p.parseGroupedExpression,
		lexer.TOKEN_LBRACKET:    p.parseArrayLiteral,
		lexer.TOKEN_LBRACE:      p.parseObjectLiteral,
		lexer.T_FUNCTION:        p.parsePlainFunctionExpression,
		lexer.T_CLASS:           p.parseClassExpression,
		lexer.T_NEW:             p.parseNewExpression,
		lexer.T_IMPORT:          p.parseImportExpressionOrMeta,
		lexer.T_TEMPLATE_STRING: p.parseUntaggedTemplate,
		lexer.T_TEMPLATE_HEAD:   p.parseUntaggedTemplate,

		lexer.TOKEN_NOT:   p.parseUnaryExpression,
		lexer.TOKEN_TILDE: p.parseUnaryExpression,
		lexer.TOKEN_PLUS:  p.parseUnaryExpression,
		lexer.TOKEN_MINUS: p.parseUnaryExpression,
		lexer.T_TYPEOF:    p.parseUnaryExpression,
		lexer.T_VOID:      p.parseUnaryExpression,
		lexer.T_DELETE:    p.parseUnaryExpression,

		lexer.TOKEN_INC: p.parsePrefixUpdateExpression,
		lexer.TOKEN_DEC: p.parsePrefixUpdateExpression,
	}
}

func (p *Parser) registerInfixParsers() {
	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.TOKEN_COMMA: p.parseSequenceLED,

		lexer.TOKEN_QUESTION: p.parseTernaryLED,

		lexer.TOKEN_AND:      p.parseLogicalLED,
		lexer.TOKEN_OR:       p.parseLogicalLED,
		lexer.TOKEN_COALESCE: p.parseLogicalLED,

		lexer.TOKEN_INC: p.parsePostfixUpdateLED,
		lexer.TOKEN_DEC: p.parsePostfixUpdateLED,

		lexer.TOKEN_DOT:          p.parseMemberDotLED,
		lexer.TOKEN_LBRACKET:     p.parseComputedMemberLED,
		lexer.TOKEN_LPAREN:       p.parseCallLED,
		lexer.TOKEN_QUESTION_DOT: p.parseOptionalChainLED,

		lexer.T_TEMPLATE_STRING: p.parseTaggedTemplateLED,
		lexer.T_TEMPLATE_HEAD:   p.parseTaggedTemplateLED,
	}
	// 赋值操作符共用一个处理器
	for t := lexer.TOKEN_ASSIGN; t <= lexer.TOKEN_COALESCE_ASSIGN; t++ {
		p.infixParseFns[t] = p.parseAssignmentLED
	}
	// 其余二元操作符
	for _, t := range []lexer.TokenType{
		lexer.TOKEN_EQ, lexer.TOKEN_NE, lexer.TOKEN_EQ_STRICT, lexer.TOKEN_NE_STRICT,
		lexer.TOKEN_LT, lexer.TOKEN_GT, lexer.TOKEN_LE, lexer.TOKEN_GE,
		lexer.T_INSTANCEOF, lexer.T_IN,
		lexer.TOKEN_SHL, lexer.TOKEN_SHR, lexer.TOKEN_USHR,
		lexer.TOKEN_PLUS, lexer.TOKEN_MINUS,
		lexer.TOKEN_STAR, lexer.TOKEN_SLASH, lexer.TOKEN_PERCENT,
		lexer.TOKEN_POW,
		lexer.TOKEN_PIPE, lexer.TOKEN_CARET, lexer.TOKEN_AMPERSAND,
	} {
		p.infixParseFns[t] = p.parseBinaryLED
	}
}

// ============= PRATT CORE =============

// LOWEST 语句级入口的最小绑定力：连逗号表达式一起吃掉
const LOWEST Precedence = 0

// parseExpression 核心 Pratt 循环
func (p *Parser) parseExpression(minBp Precedence) ast.Expression {
	left := p.parsePrefix()
	return p.parseInfix(left, minBp)
}

// parseAssignExpr 解析一个 AssignmentExpression（在逗号处停下）
func (p *Parser) parseAssignExpr() ast.Expression {
	return p.parseExpression(COMMA)
}

// parseIsolatedAssign 解析一个不可能再被转换为模式的 AssignmentExpression
// （调用实参、计算键、模板插值等），就地结算 cover grammar 的待定错误。
func (p *Parser) parseIsolatedAssign() ast.Expression {
	savedCover, savedProto := p.coverInitPos, p.protoDupPos
	p.coverInitPos, p.protoDupPos = nil, nil
	e := p.parseAssignExpr()
	p.checkCoverInit()
	p.checkProtoDup()
	p.coverInitPos, p.protoDupPos = savedCover, savedProto
	return e
}

// parseIsolatedExpression 同上，但吃掉逗号表达式
func (p *Parser) parseIsolatedExpression() ast.Expression {
	savedCover, savedProto := p.coverInitPos, p.protoDupPos
	p.coverInitPos, p.protoDupPos = nil, nil
	e := p.parseExpression(LOWEST)
	p.checkCoverInit()
	p.checkProtoDup()
	p.coverInitPos, p.protoDupPos = savedCover, savedProto
	return e
}

// parsePrefix NUD 分发，yield/await/箭头函数优先于普通前缀处理
func (p *Parser) parsePrefix() ast.Expression {
	if p.isContextual("yield") && p.ctx.InGenerator {
		if p.ctx.InFormalParameters {
			p.failAtWithContext(p.peek(), "yield expression cannot be used here", "in formal parameters")
		}
		return p.parseYieldExpression()
	}
	if p.isContextual("await") && p.awaitExpressionAllowed() {
		return p.parseAwaitExpression()
	}
	if p.isArrowFunctionAhead() {
		return p.parseArrowFunction()
	}

	prefix := p.prefixParseFns[p.peek().Type]
	if prefix == nil {
		p.fail("unexpected token " + p.peek().Type.Name())
	}
	return prefix()
}

// awaitExpressionAllowed await 作为表达式是否可用：async 上下文或模块顶层
func (p *Parser) awaitExpressionAllowed() bool {
	if p.ctx.InAsync {
		return true
	}
	return p.opts.Module && !p.ctx.InFunction && !p.ctx.InStaticBlock && !p.ctx.InFieldInitializer
}

// isChainToken 成员/调用链的延续 Token
func isChainToken(t lexer.TokenType) bool {
	switch t {
	case lexer.TOKEN_DOT, lexer.TOKEN_QUESTION_DOT, lexer.TOKEN_LBRACKET,
		lexer.TOKEN_LPAREN, lexer.T_TEMPLATE_STRING, lexer.T_TEMPLATE_HEAD:
		return true
	}
	return false
}

// wrapChain 链上出现过 ?. 时以 ChainExpression 收尾
func (p *Parser) wrapChain(e ast.Expression) ast.Expression {
	p.chainActive = false
	start, end := e.Range()
	return &ast.ChainExpression{
		Span:       ast.Span{Start: start, End: end, Loc: e.Location()},
		Expression: e,
	}
}

// parseInfix LED 循环
func (p *Parser) parseInfix(left ast.Expression, minBp Precedence) ast.Expression {
	savedChain := p.chainActive
	p.chainActive = false

	for {
		t := p.peek()

		// 链结束：出现非延续 Token 时包一层 ChainExpression
		if p.chainActive && !isChainToken(t.Type) {
			left = p.wrapChain(left)
		}

		// 块体箭头函数之后换行再跟 ( 或 [：ASI 截断
		if t.Type == lexer.TOKEN_LPAREN || t.Type == lexer.TOKEN_LBRACKET {
			if arrow, ok := left.(*ast.ArrowFunctionExpression); ok && !arrow.Expression &&
				!p.parenized[left] && p.lineBreakBefore() {
				break
			}
		}

		bp := precedenceMap[t.Type]
		if bp == 0 || bp <= minBp {
			break
		}
		// for 头的 init 中 in 不是操作符
		if t.Type == lexer.T_IN && !p.ctx.AllowIn {
			break
		}
		// 后缀 ++/-- 不得跨行
		if (t.Type == lexer.TOKEN_INC || t.Type == lexer.TOKEN_DEC) && p.lineBreakBefore() {
			break
		}
		// yield 和箭头函数只在赋值层级：更紧的操作符不能直接挂在上面
		if bp > ASSIGNMENT && !p.parenized[left] {
			switch left.(type) {
			case *ast.YieldExpression, *ast.ArrowFunctionExpression:
				p.fail("unexpected token " + t.Type.Name())
			}
		}

		infix := p.infixParseFns[t.Type]
		if infix == nil {
			break
		}
		left = infix(left)
	}

	p.chainActive = savedChain
	return left
}

// ============= PREFIX PARSERS =============

func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.advance()
	p.checkStrictNumber(tok)
	return &ast.Literal{Span: spanOfToken(tok), Value: tok.Number, Raw: p.raw(tok.Start, tok.End)}
}

func (p *Parser) parseBigIntLiteral() ast.Expression {
	tok := p.advance()
	return &ast.Literal{Span: spanOfToken(tok), Value: nil, Raw: p.raw(tok.Start, tok.End), BigInt: tok.BigInt}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.advance()
	p.checkStrictString(tok)
	return &ast.Literal{Span: spanOfToken(tok), Value: tok.String, Raw: p.raw(tok.Start, tok.End)}
}

func (p *Parser) parseRegexLiteral() ast.Expression {
	tok := p.advance()
	return &ast.Literal{
		Span:  spanOfToken(tok),
		Value: nil,
		Raw:   p.raw(tok.Start, tok.End),
		Regex: &ast.RegexLiteral{Pattern: tok.Pattern, Flags: tok.Flags},
	}
}

func (p *Parser) parseKeywordLiteral() ast.Expression {
	tok := p.advance()
	var value any
	switch tok.Type {
	case lexer.T_TRUE:
		value = true
	case lexer.T_FALSE:
		value = false
	case lexer.T_NULL:
		value = nil
	}
	return &ast.Literal{Span: spanOfToken(tok), Value: value, Raw: p.raw(tok.Start, tok.End)}
}

// parseIdentifierExpression 标识符引用；async function 表达式也从这里进入
func (p *Parser) parseIdentifierExpression() ast.Expression {
	tok := p.advance()
	if tok.Lexeme == "async" && !tok.HasEscape() && p.check(lexer.T_FUNCTION) && !p.lineBreakBefore() {
		return p.parseFunctionExpressionTail(tok, true)
	}
	p.validateIdentifierReference(tok.Lexeme, tok)
	return &ast.Identifier{Span: spanOfToken(tok), Name: tok.Lexeme}
}

func (p *Parser) parseThisExpression() ast.Expression {
	tok := p.advance()
	return &ast.ThisExpression{Span: spanOfToken(tok)}
}

// parseSuperExpression super 只能出现在成员访问或调用位置
func (p *Parser) parseSuperExpression() ast.Expression {
	tok := p.advance()
	switch p.peek().Type {
	case lexer.TOKEN_DOT, lexer.TOKEN_LBRACKET:
		if !p.ctx.AllowSuperProperty {
			p.failAt(tok, "'super' property access is only allowed in methods")
		}
	case lexer.TOKEN_LPAREN:
		if !p.ctx.AllowSuperCall {
			p.failAt(tok, "'super' call is only allowed in derived class constructors")
		}
	case lexer.TOKEN_QUESTION_DOT:
		p.failAt(tok, "'super' cannot be used with optional chaining")
	default:
		p.failAt(tok, "'super' must be followed by a property access or call")
	}
	return &ast.Super{Span: spanOfToken(tok)}
}

// parsePrivateNameExpression 裸私有名只允许作为 `#x in obj` 的左操作数
func (p *Parser) parsePrivateNameExpression() ast.Expression {
	tok := p.advance()
	if !p.check(lexer.T_IN) {
		p.failAt(tok, "private name can only be used on the left of an 'in' expression")
	}
	name := tok.Lexeme[1:]
	p.recordPrivateReference(name, tok)
	return &ast.PrivateIdentifier{Span: spanOfToken(tok), Name: name}
}

// parseGroupedExpression 括号表达式（箭头参数表已由前瞻探测分流）
func (p *Parser) parseGroupedExpression() ast.Expression {
	lparen := p.advance()
	savedIn := p.ctx.AllowIn
	p.ctx.AllowIn = true
	savedCover, savedProto := p.coverInitPos, p.protoDupPos
	p.coverInitPos, p.protoDupPos = nil, nil

	if p.check(lexer.TOKEN_RPAREN) {
		p.fail("unexpected token ')'")
	}
	expr := p.parseExpression(LOWEST)
	p.consume(lexer.TOKEN_RPAREN, "expected ')'")

	p.checkCoverInit()
	p.checkProtoDup()
	p.coverInitPos, p.protoDupPos = savedCover, savedProto
	p.ctx.AllowIn = savedIn

	if !isSimpleAssignTarget(expr) {
		p.parenNonSimple = lparen.Start
	}
	p.parenized[expr] = true
	return expr
}

// parseArrayLiteral 数组字面量
func (p *Parser) parseArrayLiteral() ast.Expression {
	start := p.advance()
	savedIn := p.ctx.AllowIn
	p.ctx.AllowIn = true

	var elements []ast.Expression
	spreadInterior := false
	for {
		if p.check(lexer.TOKEN_RBRACKET) {
			break
		}
		if p.check(lexer.TOKEN_COMMA) {
			p.advance()
			elements = append(elements, nil) // 洞
			continue
		}
		var el ast.Expression
		if p.check(lexer.TOKEN_ELLIPSIS) {
			s := p.advance()
			arg := p.parseAssignExpr()
			el = &ast.SpreadElement{Span: p.spanFrom(s), Argument: arg}
			if p.check(lexer.TOKEN_COMMA) {
				spreadInterior = true
			}
		} else {
			el = p.parseAssignExpr()
		}
		elements = append(elements, el)
		if !p.check(lexer.TOKEN_RBRACKET) {
			p.consume(lexer.TOKEN_COMMA, "expected ',' or ']'")
		}
	}
	p.consume(lexer.TOKEN_RBRACKET, "expected ']'")
	p.ctx.AllowIn = savedIn

	arr := &ast.ArrayExpression{Span: p.spanFrom(start), Elements: elements}
	if spreadInterior {
		p.spreadNotLast[arr] = true
	}
	return arr
}

// parseObjectLiteral 对象字面量
func (p *Parser) parseObjectLiteral() ast.Expression {
	start := p.advance()
	savedIn := p.ctx.AllowIn
	p.ctx.AllowIn = true

	var props []ast.Node
	protoCount := 0
	spreadInterior := false
	for !p.check(lexer.TOKEN_RBRACE) {
		if p.check(lexer.TOKEN_ELLIPSIS) {
			s := p.advance()
			arg := p.parseAssignExpr()
			props = append(props, &ast.SpreadElement{Span: p.spanFrom(s), Argument: arg})
			if p.check(lexer.TOKEN_COMMA) {
				spreadInterior = true
			}
		} else {
			props = append(props, p.parseObjectProperty(&protoCount))
		}
		if !p.check(lexer.TOKEN_RBRACE) {
			p.consume(lexer.TOKEN_COMMA, "expected ',' or '}'")
		}
	}
	p.consume(lexer.TOKEN_RBRACE, "expected '}'")
	p.ctx.AllowIn = savedIn

	obj := &ast.ObjectExpression{Span: p.spanFrom(start), Properties: props}
	if spreadInterior {
		p.spreadNotLast[obj] = true
	}
	return obj
}

// isPropertyModifierStop async/get/set 之后跟这些 Token 时它们是键而不是修饰符
func isPropertyModifierStop(t lexer.TokenType) bool {
	switch t {
	case lexer.TOKEN_COLON, lexer.TOKEN_COMMA, lexer.TOKEN_RBRACE,
		lexer.TOKEN_LPAREN, lexer.TOKEN_ASSIGN:
		return true
	}
	return false
}

// parseObjectProperty 对象字面量中的一个属性（普通、简写、方法、访问器）
func (p *Parser) parseObjectProperty(protoCount *int) *ast.Property {
	startTok := p.peek()

	isAsync := false
	isGenerator := false
	if p.isContextual("async") && !isPropertyModifierStop(p.peekAt(1).Type) &&
		!lineBreakBetween(startTok, p.peekAt(1)) {
		p.advance()
		isAsync = true
	}
	if p.check(lexer.TOKEN_STAR) {
		p.advance()
		isGenerator = true
	}

	// 访问器
	if !isAsync && !isGenerator && (p.isContextual("get") || p.isContextual("set")) &&
		!isPropertyModifierStop(p.peekAt(1).Type) {
		kind := p.advance().Lexeme
		key, computed := p.parsePropertyKey()
		fn := p.parseMethodFunction(false, false, kind, false)
		return &ast.Property{
			Span:     p.spanFrom(startTok),
			Key:      key,
			Value:    fn,
			PropKind: kind,
			Computed: computed,
		}
	}

	key, computed := p.parsePropertyKey()

	// 方法
	if p.check(lexer.TOKEN_LPAREN) {
		fn := p.parseMethodFunction(isAsync, isGenerator, "", false)
		return &ast.Property{
			Span:     p.spanFrom(startTok),
			Key:      key,
			Value:    fn,
			PropKind: "init",
			Method:   true,
			Computed: computed,
		}
	}
	if isAsync || isGenerator {
		p.fail("expected '(' after method name")
	}

	// 普通属性
	if p.check(lexer.TOKEN_COLON) {
		p.advance()
		value := p.parseAssignExpr()
		if !computed && isProtoKey(key) {
			*protoCount++
			if *protoCount > 1 && p.protoDupPos == nil {
				tok := startTok
				p.protoDupPos = &tok
			}
		}
		return &ast.Property{
			Span:     p.spanFrom(startTok),
			Key:      key,
			Value:    value,
			PropKind: "init",
			Computed: computed,
		}
	}

	// 简写
	id, ok := key.(*ast.Identifier)
	if !ok || computed || startTok.Type != lexer.T_IDENTIFIER {
		p.fail("expected ':', '(' or '}' after property name")
	}
	p.validateIdentifierReference(id.Name, startTok)
	var value ast.Node = id
	if p.check(lexer.TOKEN_ASSIGN) {
		// cover grammar：只有整个字面量后续被转换为解构模式才合法
		if p.coverInitPos == nil {
			tok := p.peek()
			p.coverInitPos = &tok
		}
		p.advance()
		def := p.parseAssignExpr()
		value = &ast.AssignmentPattern{Span: p.spanFromNode(id), Left: id, Right: def}
	}
	return &ast.Property{
		Span:      p.spanFrom(startTok),
		Key:       key,
		Value:     value,
		PropKind:  "init",
		Shorthand: true,
	}
}

// isProtoKey 非计算键 __proto__（标识符或字符串）
func isProtoKey(key ast.Expression) bool {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Name == "__proto__"
	case *ast.Literal:
		s, ok := k.Value.(string)
		return ok && s == "__proto__"
	}
	return false
}

// parsePropertyKey 属性名：标识符名（含关键字）、字符串、数字、计算键
func (p *Parser) parsePropertyKey() (ast.Expression, bool) {
	t := p.peek()
	switch {
	case t.Type == lexer.TOKEN_LBRACKET:
		p.advance()
		savedIn := p.ctx.AllowIn
		p.ctx.AllowIn = true
		key := p.parseIsolatedAssign()
		p.ctx.AllowIn = savedIn
		p.consume(lexer.TOKEN_RBRACKET, "expected ']'")
		return key, true
	case t.Type == lexer.T_STRING:
		p.advance()
		p.checkStrictString(t)
		return &ast.Literal{Span: spanOfToken(t), Value: t.String, Raw: p.raw(t.Start, t.End)}, false
	case t.Type == lexer.T_NUMBER:
		p.advance()
		p.checkStrictNumber(t)
		return &ast.Literal{Span: spanOfToken(t), Value: t.Number, Raw: p.raw(t.Start, t.End)}, false
	case t.Type == lexer.T_BIGINT:
		p.advance()
		return &ast.Literal{Span: spanOfToken(t), Value: nil, Raw: p.raw(t.Start, t.End), BigInt: t.BigInt}, false
	case t.Type == lexer.T_IDENTIFIER || t.Type.IsKeyword():
		p.advance()
		return &ast.Identifier{Span: spanOfToken(t), Name: t.Lexeme}, false
	}
	p.fail("expected a property name")
	return nil, false
}

// parseUnaryExpression 前缀一元表达式
func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.advance()
	op := tok.Lexeme
	arg := p.parseExpression(UNARY)

	if tok.Type == lexer.T_DELETE {
		if _, isIdent := arg.(*ast.Identifier); isIdent && p.ctx.Strict {
			p.failAt(tok, "cannot delete an unqualified identifier in strict mode")
		}
		target := arg
		if chain, ok := target.(*ast.ChainExpression); ok {
			target = chain.Expression
		}
		if m, ok := target.(*ast.MemberExpression); ok && !m.Computed {
			if _, priv := m.Property.(*ast.PrivateIdentifier); priv {
				p.failAt(tok, "private members cannot be deleted")
			}
		}
	}
	return &ast.UnaryExpression{
		Span:     p.spanFrom(tok),
		Operator: op,
		Argument: arg,
		Prefix:   true,
	}
}

// parsePrefixUpdateExpression ++x / --x
func (p *Parser) parsePrefixUpdateExpression() ast.Expression {
	tok := p.advance()
	arg := p.parseExpression(UNARY)
	p.validateSimpleAssignmentTarget(arg, "update expression")
	return &ast.UpdateExpression{
		Span:     p.spanFrom(tok),
		Operator: tok.Lexeme,
		Argument: arg,
		Prefix:   true,
	}
}

// parseYieldExpression yield / yield* （仅生成器内）
func (p *Parser) parseYieldExpression() ast.Expression {
	tok := p.advance()
	delegate := false
	if p.check(lexer.TOKEN_STAR) && !p.lineBreakBefore() {
		p.advance()
		delegate = true
	}
	var arg ast.Expression
	if delegate {
		arg = p.parseAssignExpr()
	} else if !p.lineBreakBefore() && p.prefixParseFns[p.peek().Type] != nil {
		arg = p.parseAssignExpr()
	}
	return &ast.YieldExpression{Span: p.spanFrom(tok), Argument: arg, Delegate: delegate}
}

// parseAwaitExpression await （async 上下文或模块顶层）
func (p *Parser) parseAwaitExpression() ast.Expression {
	tok := p.advance()
	if p.ctx.InFormalParameters {
		p.failAtWithContext(tok, "await expression cannot be used here", "in formal parameters")
	}
	arg := p.parseExpression(UNARY)
	return &ast.AwaitExpression{Span: p.spanFrom(tok), Argument: arg}
}

// parseImportExpressionOrMeta 动态 import(...) 或 import.meta
func (p *Parser) parseImportExpressionOrMeta() ast.Expression {
	tok := p.advance()
	if p.match(lexer.TOKEN_DOT) {
		metaProp := p.consumeContextual("meta")
		if !p.opts.Module {
			p.failAt(tok, "import.meta is only allowed in modules")
		}
		return &ast.MetaProperty{
			Span:     p.spanFrom(tok),
			Meta:     &ast.Identifier{Span: spanOfToken(tok), Name: "import"},
			Property: &ast.Identifier{Span: spanOfToken(metaProp), Name: "meta"},
		}
	}
	p.consume(lexer.TOKEN_LPAREN, "expected '(' or '.' after 'import'")
	savedIn := p.ctx.AllowIn
	p.ctx.AllowIn = true
	source := p.parseIsolatedAssign()
	var options ast.Expression
	if p.match(lexer.TOKEN_COMMA) {
		if !p.check(lexer.TOKEN_RPAREN) {
			options = p.parseIsolatedAssign()
			p.match(lexer.TOKEN_COMMA)
		}
	}
	p.ctx.AllowIn = savedIn
	p.consume(lexer.TOKEN_RPAREN, "expected ')'")
	return &ast.ImportExpression{Span: p.spanFrom(tok), Source: source, Options: options}
}

// parseNewExpression new 表达式与 new.target
func (p *Parser) parseNewExpression() ast.Expression {
	newTok := p.advance()
	if p.match(lexer.TOKEN_DOT) {
		targetTok := p.consumeContextual("target")
		if !p.ctx.AllowNewTarget {
			p.failAt(newTok, "new.target is only allowed in functions and class initializers")
		}
		return &ast.MetaProperty{
			Span:     p.spanFrom(newTok),
			Meta:     &ast.Identifier{Span: spanOfToken(newTok), Name: "new"},
			Property: &ast.Identifier{Span: spanOfToken(targetTok), Name: "target"},
		}
	}

	var callee ast.Expression
	if p.check(lexer.T_NEW) {
		callee = p.parseNewExpression()
	} else {
		callee = p.parseNewCallee()
	}
	if p.check(lexer.TOKEN_QUESTION_DOT) {
		p.fail("optional chaining cannot be used in the callee of 'new'")
	}
	var args []ast.Expression
	if p.check(lexer.TOKEN_LPAREN) {
		args = p.parseArguments()
	}
	return &ast.NewExpression{Span: p.spanFrom(newTok), Callee: callee, Arguments: args}
}

// parseNewCallee new 的被调方：成员访问链，不吃调用与可选链
func (p *Parser) parseNewCallee() ast.Expression {
	switch p.peek().Type {
	case lexer.TOKEN_NOT, lexer.TOKEN_TILDE, lexer.TOKEN_PLUS, lexer.TOKEN_MINUS,
		lexer.TOKEN_INC, lexer.TOKEN_DEC, lexer.T_DELETE, lexer.T_TYPEOF, lexer.T_VOID:
		p.fail("invalid callee in 'new' expression")
	}
	prefix := p.prefixParseFns[p.peek().Type]
	if prefix == nil {
		p.fail("unexpected token " + p.peek().Type.Name())
	}
	left := prefix()
	for {
		switch p.peek().Type {
		case lexer.TOKEN_DOT:
			left = p.parseMemberDotLED(left)
		case lexer.TOKEN_LBRACKET:
			left = p.parseComputedMemberLED(left)
		case lexer.T_TEMPLATE_STRING, lexer.T_TEMPLATE_HEAD:
			left = p.parseTaggedTemplateLED(left)
		default:
			return left
		}
	}
}

// ============= INFIX PARSERS =============

// parseSequenceLED 逗号表达式
func (p *Parser) parseSequenceLED(left ast.Expression) ast.Expression {
	p.advance()
	right := p.parseAssignExpr()
	if seq, ok := left.(*ast.SequenceExpression); ok && !p.parenized[left] {
		seq.Expressions = append(seq.Expressions, right)
		seq.Span = spanBetween(seq, right)
		return seq
	}
	return &ast.SequenceExpression{
		Span:        spanBetween(left, right),
		Expressions: []ast.Expression{left, right},
	}
}

// parseTernaryLED 三目表达式
func (p *Parser) parseTernaryLED(left ast.Expression) ast.Expression {
	p.advance()
	savedIn := p.ctx.AllowIn
	p.ctx.AllowIn = true
	consequent := p.parseAssignExpr()
	p.consume(lexer.TOKEN_COLON, "expected ':'")
	p.ctx.AllowIn = savedIn
	alternate := p.parseAssignExpr()
	return &ast.ConditionalExpression{
		Span:       spanBetween(left, alternate),
		Test:       left,
		Consequent: consequent,
		Alternate:  alternate,
	}
}

// parseLogicalLED && || ?? ，并强制 ?? 与 &&/|| 不得无括号混用
func (p *Parser) parseLogicalLED(left ast.Expression) ast.Expression {
	opTok := p.advance()
	op := opTok.Lexeme
	bp := precedenceMap[opTok.Type]
	right := p.parseExpression(bp)

	if op == "??" {
		p.checkNoLogicalMix(left, "&&", "||")
		p.checkNoLogicalMix(right, "&&", "||")
	} else {
		p.checkNoLogicalMix(left, "??", "??")
		p.checkNoLogicalMix(right, "??", "??")
	}
	return &ast.LogicalExpression{
		Span:     spanBetween(left, right),
		Operator: op,
		Left:     left,
		Right:    right,
	}
}

// checkNoLogicalMix 操作数是未加括号的指定逻辑操作符时报错
func (p *Parser) checkNoLogicalMix(e ast.Expression, op1, op2 string) {
	if le, ok := e.(*ast.LogicalExpression); ok && !p.parenized[e] {
		if le.Operator == op1 || le.Operator == op2 {
			p.failAtNode(e, "cannot mix '??' with '&&' or '||' without parentheses")
		}
	}
}

// parseBinaryLED 普通二元操作符
func (p *Parser) parseBinaryLED(left ast.Expression) ast.Expression {
	opTok := p.advance()
	bp := precedenceMap[opTok.Type]

	// ** 左侧的一元表达式必须加括号
	if opTok.Type == lexer.TOKEN_POW && !p.parenized[left] {
		switch left.(type) {
		case *ast.UnaryExpression, *ast.AwaitExpression:
			p.failAt(opTok, "unary operand of '**' must be parenthesized")
		}
	}

	rightBp := bp
	if rightAssociative[opTok.Type] {
		rightBp = bp - 1
	}
	right := p.parseExpression(rightBp)

	if opTok.Type == lexer.T_IN {
		if _, isPriv := left.(*ast.PrivateIdentifier); isPriv {
			switch r := right.(type) {
			case *ast.PrivateIdentifier:
				p.failAtNode(r, "unexpected private name")
			case *ast.ArrowFunctionExpression:
				if !p.parenized[right] {
					p.failAtNode(r, "arrow function on the right of '#x in' must be parenthesized")
				}
			}
		}
	}
	return &ast.BinaryExpression{
		Span:     spanBetween(left, right),
		Operator: opTok.Lexeme,
		Left:     left,
		Right:    right,
	}
}

// parseAssignmentLED 赋值表达式
func (p *Parser) parseAssignmentLED(left ast.Expression) ast.Expression {
	opTok := p.advance()
	op := opTok.Lexeme

	var target ast.Node = left
	if opTok.Type == lexer.TOKEN_ASSIGN {
		switch left.(type) {
		case *ast.ObjectExpression, *ast.ArrayExpression:
			p.checkParenthesizedPattern(left)
			target = p.toAssignmentPattern(left, false)
		default:
			p.validateAssignmentTarget(left)
		}
	} else {
		p.validateSimpleAssignmentTarget(left, "assignment")
	}

	right := p.parseExpression(ASSIGNMENT - 1)
	return &ast.AssignmentExpression{
		Span:     spanBetween(left, right),
		Operator: op,
		Left:     target,
		Right:    right,
	}
}

// parsePostfixUpdateLED x++ / x--
func (p *Parser) parsePostfixUpdateLED(left ast.Expression) ast.Expression {
	tok := p.advance()
	p.validateSimpleAssignmentTarget(left, "update expression")
	start, _ := left.Range()
	return &ast.UpdateExpression{
		Span: ast.Span{
			Start: start,
			End:   tok.End,
			Loc: ast.SourceLocation{
				Start: left.Location().Start,
				End:   ast.Position{Line: tok.EndLine, Column: tok.EndColumn},
			},
		},
		Operator: tok.Lexeme,
		Argument: left,
		Prefix:   false,
	}
}

// parseMemberDotLED obj.name / obj.#name
func (p *Parser) parseMemberDotLED(left ast.Expression) ast.Expression {
	p.advance()
	prop := p.parseMemberPropertyName()
	return &ast.MemberExpression{
		Span:     spanBetween(left, prop),
		Object:   left,
		Property: prop,
	}
}

// parseMemberPropertyName 点号后的属性名：IdentifierName（含关键字）或私有名
func (p *Parser) parseMemberPropertyName() ast.Expression {
	t := p.peek()
	switch {
	case t.Type == lexer.T_PRIVATE_NAME:
		p.advance()
		name := t.Lexeme[1:]
		p.recordPrivateReference(name, t)
		return &ast.PrivateIdentifier{Span: spanOfToken(t), Name: name}
	case t.Type == lexer.T_IDENTIFIER || t.Type.IsKeyword():
		p.advance()
		return &ast.Identifier{Span: spanOfToken(t), Name: t.Lexeme}
	}
	p.fail("expected a property name after '.'")
	return nil
}

// parseComputedMemberLED obj[expr]
func (p *Parser) parseComputedMemberLED(left ast.Expression) ast.Expression {
	p.advance()
	savedIn := p.ctx.AllowIn
	p.ctx.AllowIn = true
	prop := p.parseIsolatedExpression()
	p.ctx.AllowIn = savedIn
	end := p.consume(lexer.TOKEN_RBRACKET, "expected ']'")
	start, _ := left.Range()
	return &ast.MemberExpression{
		Span: ast.Span{
			Start: start,
			End:   end.End,
			Loc: ast.SourceLocation{
				Start: left.Location().Start,
				End:   ast.Position{Line: end.EndLine, Column: end.EndColumn},
			},
		},
		Object:   left,
		Property: prop,
		Computed: true,
	}
}

// parseCallLED 调用表达式
func (p *Parser) parseCallLED(left ast.Expression) ast.Expression {
	args := p.parseArguments()
	end := p.previous()
	start, _ := left.Range()
	return &ast.CallExpression{
		Span: ast.Span{
			Start: start,
			End:   end.End,
			Loc: ast.SourceLocation{
				Start: left.Location().Start,
				End:   ast.Position{Line: end.EndLine, Column: end.EndColumn},
			},
		},
		Callee:    left,
		Arguments: args,
	}
}

// parseOptionalChainLED ?. 成员、?.[ 计算成员、?.( 调用
func (p *Parser) parseOptionalChainLED(left ast.Expression) ast.Expression {
	p.advance()
	p.chainActive = true
	switch p.peek().Type {
	case lexer.TOKEN_LPAREN:
		call := p.parseCallLED(left).(*ast.CallExpression)
		call.Optional = true
		return call
	case lexer.TOKEN_LBRACKET:
		member := p.parseComputedMemberLED(left).(*ast.MemberExpression)
		member.Optional = true
		return member
	}
	prop := p.parseMemberPropertyName()
	return &ast.MemberExpression{
		Span:     spanBetween(left, prop),
		Object:   left,
		Property: prop,
		Optional: true,
	}
}

// parseTaggedTemplateLED 标记模板
func (p *Parser) parseTaggedTemplateLED(left ast.Expression) ast.Expression {
	if p.chainActive {
		p.fail("tagged template expressions are not allowed in an optional chain")
	}
	quasi := p.parseTemplateLiteral(true)
	return &ast.TaggedTemplateExpression{
		Span:  spanBetween(left, quasi),
		Tag:   left,
		Quasi: quasi,
	}
}

// parseArguments 实参表（允许展开与尾随逗号）
func (p *Parser) parseArguments() []ast.Expression {
	p.consume(lexer.TOKEN_LPAREN, "expected '('")
	savedIn := p.ctx.AllowIn
	p.ctx.AllowIn = true
	var args []ast.Expression
	for !p.check(lexer.TOKEN_RPAREN) {
		if p.check(lexer.TOKEN_ELLIPSIS) {
			s := p.advance()
			arg := p.parseIsolatedAssign()
			args = append(args, &ast.SpreadElement{Span: p.spanFrom(s), Argument: arg})
		} else {
			args = append(args, p.parseIsolatedAssign())
		}
		if !p.check(lexer.TOKEN_RPAREN) {
			p.consume(lexer.TOKEN_COMMA, "expected ',' or ')'")
		}
	}
	p.consume(lexer.TOKEN_RPAREN, "expected ')'")
	p.ctx.AllowIn = savedIn
	return args
}

// ============= TEMPLATE LITERALS =============

// parseUntaggedTemplate 无标记模板（无效转义是语法错误）
func (p *Parser) parseUntaggedTemplate() ast.Expression {
	return p.parseTemplateLiteral(false)
}

// parseTemplateLiteral 解析模板字面量。tagged 为 true 时容忍无效转义
// （cooked 置 null）。
func (p *Parser) parseTemplateLiteral(tagged bool) *ast.TemplateLiteral {
	first := p.advance()

	if first.Type == lexer.T_TEMPLATE_STRING {
		elem := p.makeTemplateElement(first, true, tagged)
		return &ast.TemplateLiteral{
			Span:   spanOfToken(first),
			Quasis: []*ast.TemplateElement{elem},
		}
	}

	quasis := []*ast.TemplateElement{p.makeTemplateElement(first, false, tagged)}
	var exprs []ast.Expression
	for {
		savedIn := p.ctx.AllowIn
		p.ctx.AllowIn = true
		exprs = append(exprs, p.parseIsolatedExpression())
		p.ctx.AllowIn = savedIn

		t := p.peek()
		switch t.Type {
		case lexer.T_TEMPLATE_MIDDLE:
			p.advance()
			quasis = append(quasis, p.makeTemplateElement(t, false, tagged))
		case lexer.T_TEMPLATE_TAIL:
			p.advance()
			quasis = append(quasis, p.makeTemplateElement(t, true, tagged))
			return &ast.TemplateLiteral{
				Span: ast.Span{
					Start: first.Start,
					End:   t.End,
					Loc: ast.SourceLocation{
						Start: ast.Position{Line: first.Line, Column: first.Column},
						End:   ast.Position{Line: t.EndLine, Column: t.EndColumn},
					},
				},
				Quasis:      quasis,
				Expressions: exprs,
			}
		default:
			p.fail("expected template continuation")
		}
	}
}

// makeTemplateElement 模板元素跨度只覆盖定界符内部，行列用位置索引合成
func (p *Parser) makeTemplateElement(tok lexer.Token, tail, tagged bool) *ast.TemplateElement {
	if tok.CookedInvalid && !tagged {
		p.failAt(tok, "invalid escape sequence in template literal")
	}
	start := tok.Start + 1 // 跳过 ` 或 }
	end := tok.End - 1     // 跳过 `
	if !tail {
		end = tok.End - 2 // 跳过 ${
	}
	startLine, startCol := p.index.Position(start)
	endLine, endCol := p.index.Position(end)

	var cooked *string
	if !tok.CookedInvalid {
		s := tok.String
		cooked = &s
	}
	return &ast.TemplateElement{
		Span: ast.Span{
			Start: start,
			End:   end,
			Loc: ast.SourceLocation{
				Start: ast.Position{Line: startLine, Column: startCol},
				End:   ast.Position{Line: endLine, Column: endCol},
			},
		},
		Value: ast.TemplateValue{Raw: p.raw(start, end), Cooked: cooked},
		Tail:  tail,
	}
}
