package parser

import (
	"github.com/wudi/js-parser/ast"
	"github.com/wudi/js-parser/lexer"
)

// ============= 变量声明 =============

// parseVariableDeclaration var/let/const 语句（含结尾分号）
func (p *Parser) parseVariableDeclaration(kind string) ast.Statement {
	start := p.advance()
	var decls []*ast.VariableDeclarator
	for {
		declStart := p.peek()
		pat := p.parseBindingPattern()

		var init ast.Expression
		if p.match(lexer.TOKEN_ASSIGN) {
			init = p.parseIsolatedAssign()
		} else {
			if kind == "const" {
				p.failAt(declStart, "missing initializer in const declaration")
			}
			if _, isID := pat.(*ast.Identifier); !isID {
				p.failAt(declStart, "missing initializer in destructuring declaration")
			}
		}
		decls = append(decls, &ast.VariableDeclarator{
			Span: p.spanFrom(declStart),
			Id:   pat,
			Init: init,
		})
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	decl := &ast.VariableDeclaration{
		Span:         p.spanFrom(start),
		Declarations: decls,
		DeclKind:     kind,
	}
	p.declareVariableDeclaration(decl)
	p.consumeSemicolon()
	decl.Span = p.spanFrom(start)
	return decl
}

// declareVariableDeclaration 把声明的名字登记进作用域
func (p *Parser) declareVariableDeclaration(decl *ast.VariableDeclaration) {
	var names []*ast.Identifier
	for _, d := range decl.Declarations {
		collectBoundNames(d.Id, &names)
	}
	lexical := decl.DeclKind != "var"
	seen := map[string]bool{}
	for _, id := range names {
		tok := lexer.Token{Lexeme: id.Name, Line: id.Loc.Start.Line, Column: id.Loc.Start.Column, Start: id.Start}
		if lexical {
			if id.Name == "let" {
				p.failAtNode(id, "'let' is not allowed as a lexically bound name")
			}
			if seen[id.Name] {
				p.failAtNode(id, "identifier '"+id.Name+"' has already been declared")
			}
			seen[id.Name] = true
			p.declareLexical(id.Name, tok)
		} else {
			p.declareVar(id.Name, tok)
		}
	}
}

// ============= 函数声明 =============

// parseFunctionDeclaration 函数声明。async 为 true 时当前 Token 是 async。
func (p *Parser) parseFunctionDeclaration(async bool) ast.Statement {
	return p.parseFunctionDeclarationTail(async, false, false)
}

// parseFunctionDeclarationTail annexB 为 true 时（sloppy 单语句上下文）
// 名字不进入外层作用域；nameOptional 为 true 时允许匿名（export default）。
func (p *Parser) parseFunctionDeclarationTail(async, annexB, nameOptional bool) ast.Statement {
	startTok := p.peek()
	if async {
		p.advance() // async
	}
	p.consume(lexer.T_FUNCTION, "expected 'function'")
	generator := p.match(lexer.TOKEN_STAR)

	// 名字绑定在外层作用域，按外层上下文校验
	var id *ast.Identifier
	if p.check(lexer.T_IDENTIFIER) || !nameOptional {
		nameTok := p.consume(lexer.T_IDENTIFIER, "expected a function name")
		p.validateBindingName(nameTok.Lexeme, nameTok)
		id = &ast.Identifier{Span: spanOfToken(nameTok), Name: nameTok.Lexeme}
		if !annexB {
			p.declareFunction(nameTok.Lexeme, nameTok, !generator && !async)
		}
	}

	saved := p.ctx
	boundary := p.enterFunctionBoundary()
	p.setFunctionContext(generator, async, false)

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

	return &ast.FunctionDeclaration{
		Span:      p.spanFrom(startTok),
		Id:        id,
		Params:    params,
		Body:      body,
		Generator: generator,
		Async:     async,
	}
}

// ============= 类 =============

// parseClassDeclaration 类声明
func (p *Parser) parseClassDeclaration() ast.Statement {
	return p.parseClassDeclarationTail(false)
}

// parseClassDeclarationTail nameOptional 为 true 时允许匿名（export default）
func (p *Parser) parseClassDeclarationTail(nameOptional bool) ast.Statement {
	start := p.advance()

	// 类名与类体都在严格模式下解析
	saved := p.ctx
	p.ctx.Strict = true
	var id *ast.Identifier
	if p.check(lexer.T_IDENTIFIER) {
		id = p.parseBindingIdentifier()
	} else if !nameOptional {
		p.fail("expected a class name")
	}
	p.ctx = saved

	if id != nil {
		p.declareLexical(id.Name, lexer.Token{Lexeme: id.Name, Line: id.Loc.Start.Line, Column: id.Loc.Start.Column, Start: id.Start})
	}

	superClass, body := p.parseClassTail()
	return &ast.ClassDeclaration{
		Span:       p.spanFrom(start),
		Id:         id,
		SuperClass: superClass,
		Body:       body,
	}
}

// parseClassExpression 类表达式（名字不进入外层作用域）
func (p *Parser) parseClassExpression() ast.Expression {
	start := p.advance()
	var id *ast.Identifier
	if p.check(lexer.T_IDENTIFIER) {
		saved := p.ctx
		p.ctx.Strict = true
		id = p.parseBindingIdentifier()
		p.ctx = saved
	}
	superClass, body := p.parseClassTail()
	return &ast.ClassExpression{
		Span:       p.spanFrom(start),
		Id:         id,
		SuperClass: superClass,
		Body:       body,
	}
}

// parseClassTail extends 子句与类体。heritage 在推入私有名帧之前解析，
// 它里面的私有名引用对照外层帧校验。
func (p *Parser) parseClassTail() (ast.Expression, *ast.ClassBody) {
	saved := p.ctx
	p.ctx.Strict = true

	var superClass ast.Expression
	if p.match(lexer.T_EXTENDS) {
		superClass = p.parseExpression(POSTFIX - 1)
	}
	p.ctx.InDerivedClass = superClass != nil

	p.pushPrivateFrame()
	bodyStart := p.consume(lexer.TOKEN_LBRACE, "expected '{' before class body")

	var elements []ast.Node
	sawConstructor := false
	for !p.check(lexer.TOKEN_RBRACE) {
		if p.match(lexer.TOKEN_SEMICOLON) {
			continue
		}
		elements = append(elements, p.parseClassElement(&sawConstructor))
	}
	p.consume(lexer.TOKEN_RBRACE, "expected '}' after class body")

	p.popPrivateFrame()
	body := &ast.ClassBody{Span: p.spanFrom(bodyStart), Body: elements}
	p.ctx = saved
	return superClass, body
}

// classKeyInfo 类元素键的解析结果
type classKeyInfo struct {
	key      ast.Expression
	computed bool
	private  bool
	name     string // 非计算键的名字（标识符名、字符串值或数字文本）
}

// parseClassElementKey 类元素的键：标识符名、字符串、数字、计算键或私有名
func (p *Parser) parseClassElementKey() classKeyInfo {
	t := p.peek()
	if t.Type == lexer.T_PRIVATE_NAME {
		p.advance()
		name := t.Lexeme[1:]
		if name == "constructor" {
			p.failAt(t, "classes cannot have a private member named #constructor")
		}
		return classKeyInfo{
			key:     &ast.PrivateIdentifier{Span: spanOfToken(t), Name: name},
			private: true,
			name:    name,
		}
	}
	key, computed := p.parsePropertyKey()
	info := classKeyInfo{key: key, computed: computed}
	if !computed {
		switch k := key.(type) {
		case *ast.Identifier:
			info.name = k.Name
		case *ast.Literal:
			if s, ok := k.Value.(string); ok {
				info.name = s
			}
		}
	}
	return info
}

// isClassKeyStop static/async/get/set/* 之后跟这些 Token 时它们本身是键
func isClassKeyStop(t lexer.TokenType) bool {
	switch t {
	case lexer.TOKEN_LPAREN, lexer.TOKEN_ASSIGN, lexer.TOKEN_SEMICOLON, lexer.TOKEN_RBRACE:
		return true
	}
	return false
}

// parseClassElement 方法、访问器、字段或静态块
func (p *Parser) parseClassElement(sawConstructor *bool) ast.Node {
	startTok := p.peek()

	static := false
	if p.isContextual("static") && !isClassKeyStop(p.peekAt(1).Type) {
		p.advance()
		static = true
		if p.check(lexer.TOKEN_LBRACE) {
			return p.parseStaticBlock(startTok)
		}
	}

	isAsync := false
	isGenerator := false
	accessor := ""

	if p.isContextual("async") && !isClassKeyStop(p.peekAt(1).Type) &&
		!lineBreakBetween(p.peek(), p.peekAt(1)) {
		p.advance()
		isAsync = true
	}
	if p.check(lexer.TOKEN_STAR) {
		p.advance()
		isGenerator = true
	}
	if !isAsync && !isGenerator &&
		(p.isContextual("get") || p.isContextual("set")) && !isClassKeyStop(p.peekAt(1).Type) {
		accessor = p.advance().Lexeme
	}

	info := p.parseClassElementKey()

	// 方法
	if p.check(lexer.TOKEN_LPAREN) {
		return p.parseClassMethod(startTok, info, static, isAsync, isGenerator, accessor, sawConstructor)
	}
	if isAsync || isGenerator || accessor != "" {
		p.fail("expected '(' after method name")
	}

	// 字段
	return p.parseClassField(startTok, info, static)
}

// parseClassMethod 类方法定义与其早期错误
func (p *Parser) parseClassMethod(startTok lexer.Token, info classKeyInfo, static, isAsync, isGenerator bool, accessor string, sawConstructor *bool) ast.Node {
	kind := "method"
	if accessor != "" {
		kind = accessor
	}

	isCtor := !static && !info.computed && !info.private && info.name == "constructor"
	if isCtor {
		if accessor != "" {
			p.failAt(startTok, "class constructor may not be an accessor")
		}
		if isGenerator {
			p.failAt(startTok, "class constructor may not be a generator")
		}
		if isAsync {
			p.failAt(startTok, "class constructor may not be async")
		}
		if *sawConstructor {
			p.failAt(startTok, "a class may only have one constructor")
		}
		*sawConstructor = true
		kind = "constructor"
	}
	if static && !info.computed && !info.private && info.name == "prototype" {
		p.failAt(startTok, "classes may not have a static method named 'prototype'")
	}
	if info.private {
		p.declarePrivateName(info.name, kind, static, startTok)
	}

	derivedCtor := isCtor && p.ctx.InDerivedClass
	fn := p.parseMethodFunction(isAsync, isGenerator, accessor, derivedCtor)

	return &ast.MethodDefinition{
		Span:       p.spanFrom(startTok),
		Key:        info.key,
		Value:      fn,
		MethodKind: kind,
		Computed:   info.computed,
		Static:     static,
	}
}

// parseClassField 类字段定义与其早期错误
func (p *Parser) parseClassField(startTok lexer.Token, info classKeyInfo, static bool) ast.Node {
	if !info.computed && (info.name == "constructor") {
		p.failAt(startTok, "classes may not have a field named 'constructor'")
	}
	if static && !info.computed && info.name == "prototype" {
		p.failAt(startTok, "classes may not have a static field named 'prototype'")
	}
	if info.private {
		p.declarePrivateName(info.name, "field", static, startTok)
	}

	var value ast.Expression
	if p.match(lexer.TOKEN_ASSIGN) {
		saved := p.ctx
		boundary := p.enterFunctionBoundary()
		p.ctx.InFieldInitializer = true
		p.ctx.InFunction = false
		p.ctx.InGenerator = false
		p.ctx.InAsync = false
		p.ctx.AllowNewTarget = true
		p.ctx.AllowSuperProperty = true
		p.ctx.AllowSuperCall = false
		p.ctx.StatementOnly = false
		p.ctx.AllowIn = true
		value = p.parseIsolatedAssign()
		p.exitFunctionBoundary(boundary)
		p.ctx = saved
	}
	p.consumeClassFieldSemicolon()

	return &ast.PropertyDefinition{
		Span:     p.spanFrom(startTok),
		Key:      info.key,
		Value:    value,
		Computed: info.computed,
		Static:   static,
	}
}

// consumeClassFieldSemicolon 字段定义的 ASI：分号、}、或换行
func (p *Parser) consumeClassFieldSemicolon() {
	if p.match(lexer.TOKEN_SEMICOLON) {
		return
	}
	if p.check(lexer.TOKEN_RBRACE) || p.check(lexer.T_EOF) {
		return
	}
	if p.lineBreakBefore() {
		return
	}
	p.fail("expected ';' after class field")
}

// parseStaticBlock static { ... } 静态初始化块
func (p *Parser) parseStaticBlock(startTok lexer.Token) ast.Node {
	saved := p.ctx
	boundary := p.enterFunctionBoundary()
	p.ctx.InStaticBlock = true
	p.ctx.InFunction = false
	p.ctx.InGenerator = false
	p.ctx.InAsync = false
	p.ctx.AllowNewTarget = true
	p.ctx.AllowSuperProperty = true
	p.ctx.AllowSuperCall = false
	p.ctx.StatementOnly = false
	p.ctx.AllowIn = true

	p.consume(lexer.TOKEN_LBRACE, "expected '{'")
	p.pushScope(true)
	body := p.parseStatementList(lexer.TOKEN_RBRACE, false)
	p.popScope()
	p.consume(lexer.TOKEN_RBRACE, "expected '}'")

	p.exitFunctionBoundary(boundary)
	p.ctx = saved
	return &ast.StaticBlock{Span: p.spanFrom(startTok), Body: body}
}
