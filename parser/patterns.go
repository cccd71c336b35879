package parser

import (
	"github.com/wudi/js-parser/ast"
	"github.com/wudi/js-parser/lexer"
)

// ============= 绑定模式 =============

// parseBindingPattern 解析一个绑定模式：标识符、数组模式或对象模式
func (p *Parser) parseBindingPattern() ast.Pattern {
	switch p.peek().Type {
	case lexer.T_IDENTIFIER:
		return p.parseBindingIdentifier()
	case lexer.TOKEN_LBRACKET:
		return p.parseArrayBindingPattern()
	case lexer.TOKEN_LBRACE:
		return p.parseObjectBindingPattern()
	}
	p.fail("expected a binding pattern")
	return nil
}

// parseBindingIdentifier 解析并校验一个绑定标识符
func (p *Parser) parseBindingIdentifier() *ast.Identifier {
	tok := p.consume(lexer.T_IDENTIFIER, "expected an identifier")
	p.validateBindingName(tok.Lexeme, tok)
	return &ast.Identifier{Span: spanOfToken(tok), Name: tok.Lexeme}
}

// parseBindingElement 绑定模式加可选的默认值
func (p *Parser) parseBindingElement() ast.Pattern {
	pat := p.parseBindingPattern()
	if p.check(lexer.TOKEN_ASSIGN) {
		p.advance()
		def := p.parseAssignExpr()
		return &ast.AssignmentPattern{Span: p.spanFromNode(pat), Left: pat, Right: def}
	}
	return pat
}

// parseArrayBindingPattern [a, , [b], ...c]
func (p *Parser) parseArrayBindingPattern() *ast.ArrayPattern {
	start := p.consume(lexer.TOKEN_LBRACKET, "expected '['")
	var elements []ast.Pattern
	for !p.check(lexer.TOKEN_RBRACKET) {
		if p.match(lexer.TOKEN_COMMA) {
			elements = append(elements, nil) // 洞
			continue
		}
		if p.check(lexer.TOKEN_ELLIPSIS) {
			rest := p.parseRestBindingElement(true)
			elements = append(elements, rest)
			if p.check(lexer.TOKEN_COMMA) {
				p.fail("rest element must be the last element")
			}
			break
		}
		elements = append(elements, p.parseBindingElement())
		if !p.check(lexer.TOKEN_RBRACKET) {
			p.consume(lexer.TOKEN_COMMA, "expected ',' or ']'")
		}
	}
	p.consume(lexer.TOKEN_RBRACKET, "expected ']'")
	return &ast.ArrayPattern{Span: p.spanFrom(start), Elements: elements}
}

// parseRestBindingElement ...pattern。对象模式里只允许 ...identifier。
func (p *Parser) parseRestBindingElement(allowPattern bool) *ast.RestElement {
	start := p.consume(lexer.TOKEN_ELLIPSIS, "expected '...'")
	var arg ast.Pattern
	if allowPattern {
		arg = p.parseBindingPattern()
	} else {
		arg = p.parseBindingIdentifier()
	}
	if p.check(lexer.TOKEN_ASSIGN) {
		p.fail("rest element may not have a default initializer")
	}
	return &ast.RestElement{Span: p.spanFrom(start), Argument: arg}
}

// parseObjectBindingPattern {a, b: c, [k]: d = 1, ...rest}
func (p *Parser) parseObjectBindingPattern() *ast.ObjectPattern {
	start := p.consume(lexer.TOKEN_LBRACE, "expected '{'")
	var props []ast.Node
	for !p.check(lexer.TOKEN_RBRACE) {
		if p.check(lexer.TOKEN_ELLIPSIS) {
			rest := p.parseRestBindingElement(false)
			props = append(props, rest)
			if p.check(lexer.TOKEN_COMMA) {
				p.fail("rest element must be the last element")
			}
			break
		}
		props = append(props, p.parseBindingProperty())
		if !p.check(lexer.TOKEN_RBRACE) {
			p.consume(lexer.TOKEN_COMMA, "expected ',' or '}'")
		}
	}
	p.consume(lexer.TOKEN_RBRACE, "expected '}'")
	return &ast.ObjectPattern{Span: p.spanFrom(start), Properties: props}
}

// parseBindingProperty 对象绑定模式中的一项
func (p *Parser) parseBindingProperty() *ast.Property {
	startTok := p.peek()
	computed := false
	var key ast.Expression

	switch {
	case p.check(lexer.TOKEN_LBRACKET):
		computed = true
		p.advance()
		key = p.parseAssignExpr()
		p.consume(lexer.TOKEN_RBRACKET, "expected ']'")
	case p.check(lexer.T_STRING):
		tok := p.advance()
		p.checkStrictString(tok)
		key = &ast.Literal{Span: spanOfToken(tok), Value: tok.String, Raw: p.raw(tok.Start, tok.End)}
	case p.check(lexer.T_NUMBER):
		tok := p.advance()
		p.checkStrictNumber(tok)
		key = &ast.Literal{Span: spanOfToken(tok), Value: tok.Number, Raw: p.raw(tok.Start, tok.End)}
	case p.peek().Type == lexer.T_IDENTIFIER || p.peek().Type.IsKeyword():
		tok := p.advance()
		key = &ast.Identifier{Span: spanOfToken(tok), Name: tok.Lexeme}
	default:
		p.fail("expected a property name")
	}

	// 简写：{a} 或 {a = 1}
	if !computed && !p.check(lexer.TOKEN_COLON) {
		id, ok := key.(*ast.Identifier)
		if !ok || startTok.Type != lexer.T_IDENTIFIER {
			p.fail("expected ':'")
		}
		p.validateBindingName(id.Name, startTok)
		var value ast.Pattern = id
		if p.check(lexer.TOKEN_ASSIGN) {
			p.advance()
			def := p.parseAssignExpr()
			value = &ast.AssignmentPattern{Span: p.spanFromNode(id), Left: id, Right: def}
		}
		return &ast.Property{
			Span:      p.spanFromNode(key),
			Key:       key,
			Value:     value,
			PropKind:  "init",
			Shorthand: true,
		}
	}

	p.consume(lexer.TOKEN_COLON, "expected ':'")
	value := p.parseBindingElement()
	return &ast.Property{
		Span:     p.spanFromNode(key),
		Key:      key,
		Value:    value,
		PropKind: "init",
		Computed: computed,
	}
}

// spanFromNode 以节点起点、上一个已消费 Token 终点构造跨度
func (p *Parser) spanFromNode(n ast.Node) ast.Span {
	start, _ := n.Range()
	end := p.previous()
	return ast.Span{
		Start: start,
		End:   end.End,
		Loc: ast.SourceLocation{
			Start: n.Location().Start,
			End:   ast.Position{Line: end.EndLine, Column: end.EndColumn},
		},
	}
}

// ============= 表达式到模式的转换 =============

// toAssignmentPattern 把 cover grammar 解析出的表达式转换为赋值模式。
// binding 为 true 时按绑定语境校验名字（箭头函数参数路径）。
func (p *Parser) toAssignmentPattern(e ast.Expression, binding bool) ast.Pattern {
	switch t := e.(type) {
	case *ast.Identifier:
		if binding {
			p.validateBindingName(t.Name, lexer.Token{Lexeme: t.Name, Line: t.Loc.Start.Line, Column: t.Loc.Start.Column, Start: t.Start})
		} else if p.ctx.Strict && (t.Name == "eval" || t.Name == "arguments") {
			p.failAtNode(t, "cannot assign to '"+t.Name+"' in strict mode")
		}
		return t

	case *ast.MemberExpression:
		if binding {
			p.failAtNode(t, "member expressions are not valid in binding patterns")
		}
		if t.Optional {
			p.failAtNode(t, "invalid assignment target")
		}
		return t

	case *ast.ArrayExpression:
		return p.arrayExprToPattern(t, binding)

	case *ast.ObjectExpression:
		return p.objectExprToPattern(t, binding)

	case *ast.AssignmentExpression:
		if t.Operator != "=" {
			p.failAtNode(t, "invalid destructuring assignment target")
		}
		left, ok := t.Left.(ast.Pattern)
		if !ok {
			leftExpr, okExpr := t.Left.(ast.Expression)
			if !okExpr {
				p.failAtNode(t, "invalid destructuring assignment target")
			}
			left = p.toAssignmentPattern(leftExpr, binding)
		} else if binding {
			if id, isID := left.(*ast.Identifier); isID {
				p.validateBindingName(id.Name, lexer.Token{Lexeme: id.Name, Line: id.Loc.Start.Line, Column: id.Loc.Start.Column, Start: id.Start})
			}
		}
		return &ast.AssignmentPattern{Span: t.Span, Left: left, Right: t.Right}

	case *ast.SpreadElement:
		p.failAtNode(t, "spread element is not valid here")

	case *ast.ChainExpression:
		p.failAtNode(t, "optional chains are not valid assignment targets")

	case *ast.MetaProperty:
		p.failAtNode(t, "invalid assignment target")
	}
	p.failAtNode(e, "invalid assignment target")
	return nil
}

// arrayExprToPattern 数组字面量 → 数组模式
func (p *Parser) arrayExprToPattern(arr *ast.ArrayExpression, binding bool) *ast.ArrayPattern {
	var elements []ast.Pattern
	for i, el := range arr.Elements {
		if el == nil {
			elements = append(elements, nil)
			continue
		}
		if spread, ok := el.(*ast.SpreadElement); ok {
			if i != len(arr.Elements)-1 || p.spreadNotLast[arr] {
				p.failAtNode(spread, "rest element must be the last element")
			}
			if _, isAssign := spread.Argument.(*ast.AssignmentExpression); isAssign {
				p.failAtNode(spread, "rest element may not have a default initializer")
			}
			arg := p.toAssignmentPattern(spread.Argument, binding)
			elements = append(elements, &ast.RestElement{Span: spread.Span, Argument: arg})
			continue
		}
		elements = append(elements, p.toAssignmentPattern(el, binding))
	}
	p.clearCoverStateWithin(arr)
	return &ast.ArrayPattern{Span: arr.Span, Elements: elements}
}

// objectExprToPattern 对象字面量 → 对象模式
func (p *Parser) objectExprToPattern(obj *ast.ObjectExpression, binding bool) *ast.ObjectPattern {
	var props []ast.Node
	for i, prop := range obj.Properties {
		switch t := prop.(type) {
		case *ast.SpreadElement:
			if i != len(obj.Properties)-1 || p.spreadNotLast[obj] {
				p.failAtNode(t, "rest element must be the last element")
			}
			arg := p.toAssignmentPattern(t.Argument, binding)
			switch arg.(type) {
			case *ast.Identifier:
			case *ast.MemberExpression:
				// 赋值语境允许 ({...a.b} = x)
			default:
				p.failAtNode(t, "invalid rest element in object pattern")
			}
			props = append(props, &ast.RestElement{Span: t.Span, Argument: arg})

		case *ast.Property:
			if t.PropKind != "init" {
				p.failAtNode(t, "object patterns cannot contain getters or setters")
			}
			if t.Method {
				p.failAtNode(t, "object patterns cannot contain methods")
			}
			var value ast.Pattern
			if pat, ok := t.Value.(*ast.AssignmentPattern); ok {
				// {x = v} 简写在解析时已经构造为 AssignmentPattern
				if binding {
					var names []*ast.Identifier
					collectBoundNames(pat.Left, &names)
					for _, id := range names {
						p.validateBindingName(id.Name, lexer.Token{Lexeme: id.Name, Line: id.Loc.Start.Line, Column: id.Loc.Start.Column, Start: id.Start})
					}
				}
				value = pat
			} else if expr, ok := t.Value.(ast.Expression); ok {
				value = p.toAssignmentPattern(expr, binding)
			} else {
				value = t.Value.(ast.Pattern)
			}
			props = append(props, &ast.Property{
				Span:      t.Span,
				Key:       t.Key,
				Value:     value,
				PropKind:  "init",
				Method:    false,
				Shorthand: t.Shorthand,
				Computed:  t.Computed,
			})

		default:
			p.failAtNode(prop, "invalid property in object pattern")
		}
	}
	p.clearCoverStateWithin(obj)
	return &ast.ObjectPattern{Span: obj.Span, Properties: props}
}

// clearCoverStateWithin 字面量被成功转换为模式后，清除落在其跨度内的
// cover grammar 待定错误（{x = v} 简写、重复 __proto__）。
func (p *Parser) clearCoverStateWithin(n ast.Node) {
	start, end := n.Range()
	if p.coverInitPos != nil && p.coverInitPos.Start >= start && p.coverInitPos.Start < end {
		p.coverInitPos = nil
	}
	if p.protoDupPos != nil && p.protoDupPos.Start >= start && p.protoDupPos.Start < end {
		p.protoDupPos = nil
	}
}
