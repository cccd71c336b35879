package parser

import (
	"github.com/wudi/js-parser/ast"
	"github.com/wudi/js-parser/lexer"
)

// ============= 箭头函数探测 =============

// isArrowFunctionAhead 前瞻判断当前位置是否是箭头函数的参数表。
// 探测只看 Token 流，不产生任何副作用。
func (p *Parser) isArrowFunctionAhead() bool {
	t := p.peek()
	if t.Type == lexer.T_IDENTIFIER {
		if t.Lexeme == "async" && !t.HasEscape() {
			n1 := p.peekAt(1)
			if !lineBreakBetween(t, n1) {
				if n1.Type == lexer.T_IDENTIFIER {
					n2 := p.peekAt(2)
					if n2.Type == lexer.TOKEN_ARROW && !lineBreakBetween(n1, n2) {
						return true
					}
				}
				if n1.Type == lexer.TOKEN_LPAREN && p.parenAheadIsArrow(1) {
					return true
				}
			}
		}
		n1 := p.peekAt(1)
		return n1.Type == lexer.TOKEN_ARROW && !lineBreakBetween(t, n1)
	}
	if t.Type == lexer.TOKEN_LPAREN {
		return p.parenAheadIsArrow(0)
	}
	return false
}

// parenAheadIsArrow 从偏移 offset 处的 ( 扫描到配对的 )，检查其后是否紧跟
// 同一行上的 =>。
func (p *Parser) parenAheadIsArrow(offset int) bool {
	depth := 0
	i := offset
	for {
		t := p.peekAt(i)
		switch t.Type {
		case lexer.TOKEN_LPAREN, lexer.TOKEN_LBRACKET, lexer.TOKEN_LBRACE:
			depth++
		case lexer.TOKEN_RPAREN, lexer.TOKEN_RBRACKET, lexer.TOKEN_RBRACE:
			depth--
			if depth == 0 && t.Type == lexer.TOKEN_RPAREN {
				arrow := p.peekAt(i + 1)
				return arrow.Type == lexer.TOKEN_ARROW && !lineBreakBetween(t, arrow)
			}
		case lexer.T_EOF:
			return false
		}
		i++
	}
}

// parseArrowFunction 解析箭头函数（探测已经匹配成功）
func (p *Parser) parseArrowFunction() ast.Expression {
	startTok := p.peek()
	async := false
	if p.isContextual("async") {
		n1 := p.peekAt(1)
		if (n1.Type == lexer.T_IDENTIFIER && p.peekAt(2).Type == lexer.TOKEN_ARROW) ||
			(n1.Type == lexer.TOKEN_LPAREN && p.parenAheadIsArrow(1)) {
			p.advance()
			async = true
		}
	}

	saved := p.ctx
	boundary := p.enterFunctionBoundary()
	// 箭头函数继承 new.target、super 与 this；只重置生成器/异步标志
	p.ctx.InGenerator = false
	p.ctx.InAsync = async
	p.ctx.StatementOnly = false
	p.ctx.AllowIn = true
	p.ctx.InStaticBlock = false
	p.ctx.InFieldInitializer = false

	p.pushScope(true)
	var params []ast.Pattern
	simple := true
	if p.check(lexer.T_IDENTIFIER) {
		p.ctx.InFormalParameters = true
		id := p.parseBindingIdentifier()
		p.ctx.InFormalParameters = false
		params = []ast.Pattern{id}
	} else {
		params, simple = p.parseFormalParameters()
	}
	p.declareParams(params)

	p.consume(lexer.TOKEN_ARROW, "expected '=>'")
	p.ctx.InFunction = true
	p.ctx.InFormalParameters = false

	node := &ast.ArrowFunctionExpression{Params: params, Async: async}
	if p.check(lexer.TOKEN_LBRACE) {
		wasStrict := p.ctx.Strict
		body := p.parseFunctionBody(params, simple, true)
		if p.ctx.Strict && !wasStrict {
			p.revalidateParams(params)
		}
		node.Body = body
	} else {
		// 表达式体：箭头函数参数不允许重名
		p.checkDuplicateParams(params, true)
		node.Body = p.parseAssignExpr()
		node.Expression = true
	}

	p.popScope()
	p.exitFunctionBoundary(boundary)
	p.ctx = saved

	node.Span = ast.Span{
		Start: startTok.Start,
		End:   p.previous().End,
		Loc: ast.SourceLocation{
			Start: ast.Position{Line: startTok.Line, Column: startTok.Column},
			End:   ast.Position{Line: p.previous().EndLine, Column: p.previous().EndColumn},
		},
	}
	return node
}

// ============= 形参 =============

// parseFormalParameters 解析 ( 形参表 )；返回参数与是否为简单参数表
func (p *Parser) parseFormalParameters() ([]ast.Pattern, bool) {
	p.consume(lexer.TOKEN_LPAREN, "expected '('")
	savedFP := p.ctx.InFormalParameters
	savedIn := p.ctx.AllowIn
	p.ctx.InFormalParameters = true
	p.ctx.AllowIn = true

	var params []ast.Pattern
	for !p.check(lexer.TOKEN_RPAREN) {
		if p.check(lexer.TOKEN_ELLIPSIS) {
			rest := p.parseRestBindingElement(true)
			params = append(params, rest)
			if p.check(lexer.TOKEN_COMMA) {
				p.fail("rest parameter must be the last parameter")
			}
			break
		}
		params = append(params, p.parseBindingElement())
		if !p.check(lexer.TOKEN_RPAREN) {
			p.consume(lexer.TOKEN_COMMA, "expected ',' or ')'")
		}
	}
	p.consume(lexer.TOKEN_RPAREN, "expected ')'")

	p.ctx.InFormalParameters = savedFP
	p.ctx.AllowIn = savedIn

	simple := true
	for _, param := range params {
		if _, ok := param.(*ast.Identifier); !ok {
			simple = false
			break
		}
	}
	return params, simple
}

// declareParams 形参名进入函数作用域的 var 集合，让体内的词法声明与之冲突
func (p *Parser) declareParams(params []ast.Pattern) {
	var names []*ast.Identifier
	for _, param := range params {
		collectBoundNames(param, &names)
	}
	scope := p.currentScope()
	for _, id := range names {
		scope.vars[id.Name] = true
	}
}

// ============= 函数体 =============

// parseFunctionBody 函数体块：指令序言、语句表、重名形参检查。
// 调用方已压入函数作用域并设好上下文。
func (p *Parser) parseFunctionBody(params []ast.Pattern, simpleParams, requireUniqueParams bool) *ast.BlockStatement {
	lbrace := p.consume(lexer.TOKEN_LBRACE, "expected '{'")

	var body []ast.Statement
	p.parseDirectivePrologue(&body, simpleParams)
	for !p.check(lexer.TOKEN_RBRACE) && !p.check(lexer.T_EOF) {
		body = append(body, p.parseStatementListItem())
	}
	p.consume(lexer.TOKEN_RBRACE, "expected '}'")

	p.checkDuplicateParams(params, requireUniqueParams || p.ctx.Strict || !simpleParams)

	return &ast.BlockStatement{Span: p.spanFrom(lbrace), Body: body}
}

// ============= 函数表达式与方法 =============

// parsePlainFunctionExpression function 关键字开头的函数表达式
func (p *Parser) parsePlainFunctionExpression() ast.Expression {
	tok := p.peek()
	return p.parseFunctionExpressionTail(tok, false)
}

// parseFunctionExpressionTail 解析函数表达式体。async 为 true 时 async
// 记号已被消费，startTok 指向它。
func (p *Parser) parseFunctionExpressionTail(startTok lexer.Token, async bool) ast.Expression {
	p.consume(lexer.T_FUNCTION, "expected 'function'")
	generator := p.match(lexer.TOKEN_STAR)

	saved := p.ctx
	boundary := p.enterFunctionBoundary()
	p.setFunctionContext(generator, async, false)

	// 函数表达式的名字按函数自身的上下文校验，体内指令转严格后再补课
	var id *ast.Identifier
	if p.check(lexer.T_IDENTIFIER) {
		id = p.parseBindingIdentifier()
	}

	p.pushScope(true)
	params, simple := p.parseFormalParameters()
	p.declareParams(params)

	wasStrict := p.ctx.Strict
	body := p.parseFunctionBody(params, simple, false)
	if p.ctx.Strict && !wasStrict {
		p.revalidateParams(params)
		p.revalidateFunctionName(id)
	}
	p.popScope()
	p.exitFunctionBoundary(boundary)
	p.ctx = saved

	return &ast.FunctionExpression{
		Span:      p.spanFrom(startTok),
		Id:        id,
		Params:    params,
		Body:      body,
		Generator: generator,
		Async:     async,
	}
}

// setFunctionContext 进入函数或方法时的上下文设置；method 为 true 时允许 super 属性访问
func (p *Parser) setFunctionContext(generator, async, method bool) {
	p.ctx.InFunction = true
	p.ctx.InGenerator = generator
	p.ctx.InAsync = async
	p.ctx.AllowNewTarget = true
	p.ctx.AllowSuperProperty = method
	p.ctx.AllowSuperCall = false
	p.ctx.InStaticBlock = false
	p.ctx.InFieldInitializer = false
	p.ctx.InFormalParameters = false
	p.ctx.StatementOnly = false
	p.ctx.AllowIn = true
}

// parseMethodFunction 解析方法体（对象字面量与类共用）。
// accessorKind 为 "get"/"set" 时校验参数个数；derivedCtor 打开 super()。
func (p *Parser) parseMethodFunction(async, generator bool, accessorKind string, derivedCtor bool) *ast.FunctionExpression {
	startTok := p.peek()
	saved := p.ctx
	boundary := p.enterFunctionBoundary()
	p.setFunctionContext(generator, async, true)
	p.ctx.AllowSuperCall = derivedCtor

	p.pushScope(true)
	params, simple := p.parseFormalParameters()
	p.declareParams(params)

	switch accessorKind {
	case "get":
		if len(params) != 0 {
			p.failAt(startTok, "getter must not have any formal parameters")
		}
	case "set":
		if len(params) != 1 {
			p.failAt(startTok, "setter must have exactly one formal parameter")
		} else if _, isRest := params[0].(*ast.RestElement); isRest {
			p.failAt(startTok, "setter parameter must not be a rest parameter")
		}
	}

	wasStrict := p.ctx.Strict
	body := p.parseFunctionBody(params, simple, true)
	if p.ctx.Strict && !wasStrict {
		p.revalidateParams(params)
	}
	p.popScope()
	p.exitFunctionBoundary(boundary)
	p.ctx = saved

	return &ast.FunctionExpression{
		Span:      p.spanFrom(startTok),
		Params:    params,
		Body:      body,
		Generator: generator,
		Async:     async,
	}
}
