package parser

import (
	"github.com/wudi/js-parser/ast"
	"github.com/wudi/js-parser/lexer"
)

// ============= 语句序列与指令序言 =============

// parseStatementList 解析到 end 为止的语句序列。prologue 为 true 时先处理
// 指令序言（程序顶层）。
func (p *Parser) parseStatementList(end lexer.TokenType, prologue bool) []ast.Statement {
	var body []ast.Statement
	if prologue {
		p.parseDirectivePrologue(&body, true)
	}
	for !p.check(end) && !p.check(lexer.T_EOF) {
		body = append(body, p.parseStatementListItem())
	}
	if end != lexer.T_EOF && !p.check(end) {
		p.fail("unexpected end of input")
	}
	return body
}

// parseDirectivePrologue 处理指令序言。识别到 "use strict" 时立即进入严格
// 模式，并回头校验序言里已经解析过的字符串字面量的八进制转义。
func (p *Parser) parseDirectivePrologue(body *[]ast.Statement, simpleParams bool) {
	var directiveTokens []lexer.Token
	for p.check(lexer.T_STRING) {
		strTok := p.peek()
		stmt := p.parseExpressionStatement()
		*body = append(*body, stmt)

		lit, ok := stmt.Expression.(*ast.Literal)
		if !ok || lit.Start != strTok.Start || lit.End != strTok.End {
			// 括号或延续表达式：序言到此为止
			return
		}
		raw := p.raw(lit.Start+1, lit.End-1)
		stmt.Directive = raw
		directiveTokens = append(directiveTokens, strTok)

		if raw == "use strict" {
			if !simpleParams {
				p.failAt(strTok, "'use strict' directive is not allowed in a function with a non-simple parameter list")
			}
			p.ctx.Strict = true
			// 回头补课：序言中先于指令出现的遗留八进制转义
			for _, t := range directiveTokens {
				if t.LegacyOctal || t.NonOctalEscape {
					p.failAt(t, "octal escape sequences are not allowed in strict mode")
				}
			}
		}
	}
}

// parseStatementListItem 语句或声明（块级位置）
func (p *Parser) parseStatementListItem() ast.Statement {
	p.parenNonSimple = -1

	switch p.peek().Type {
	case lexer.T_CLASS:
		return p.parseClassDeclaration()
	case lexer.T_FUNCTION:
		return p.parseFunctionDeclaration(false)
	case lexer.T_CONST:
		return p.parseVariableDeclaration("const")
	case lexer.T_IMPORT:
		n1 := p.peekAt(1)
		if n1.Type != lexer.TOKEN_LPAREN && n1.Type != lexer.TOKEN_DOT {
			return p.parseImportDeclaration()
		}
	case lexer.T_EXPORT:
		return p.parseExportDeclaration()
	case lexer.T_IDENTIFIER:
		if p.isContextual("async") && p.peekAt(1).Type == lexer.T_FUNCTION &&
			!lineBreakBetween(p.peek(), p.peekAt(1)) {
			return p.parseFunctionDeclaration(true)
		}
		if p.isLetDeclaration() {
			return p.parseVariableDeclaration("let")
		}
	}
	return p.parseStatement()
}

// isLetDeclaration let 的歧义消解：驱动于下一个 Token 的种类、转义与同行测试
func (p *Parser) isLetDeclaration() bool {
	if !p.isContextual("let") {
		return false
	}
	n1 := p.peekAt(1)
	switch n1.Type {
	case lexer.TOKEN_LBRACKET:
		// let [ 在语句起始处永远是声明
		return true
	case lexer.TOKEN_LBRACE, lexer.T_IDENTIFIER:
		if p.ctx.StatementOnly && lineBreakBetween(p.peek(), n1) {
			// 语句专用上下文里跨行：ASI 把 let 留给表达式语句
			return false
		}
		return true
	}
	return false
}

// parseStatement 语句（非声明位置也会被单语句上下文直接调用）
func (p *Parser) parseStatement() ast.Statement {
	p.parenNonSimple = -1

	switch p.peek().Type {
	case lexer.TOKEN_LBRACE:
		return p.parseBlockStatement()
	case lexer.TOKEN_SEMICOLON:
		tok := p.advance()
		return &ast.EmptyStatement{Span: spanOfToken(tok)}
	case lexer.T_IF:
		return p.parseIfStatement()
	case lexer.T_WHILE:
		return p.parseWhileStatement()
	case lexer.T_DO:
		return p.parseDoWhileStatement()
	case lexer.T_FOR:
		return p.parseForStatement()
	case lexer.T_SWITCH:
		return p.parseSwitchStatement()
	case lexer.T_RETURN:
		return p.parseReturnStatement()
	case lexer.T_BREAK, lexer.T_CONTINUE:
		return p.parseBreakContinueStatement()
	case lexer.T_THROW:
		return p.parseThrowStatement()
	case lexer.T_TRY:
		return p.parseTryStatement()
	case lexer.T_DEBUGGER:
		tok := p.advance()
		p.consumeSemicolon()
		return &ast.DebuggerStatement{Span: p.spanFrom(tok)}
	case lexer.T_WITH:
		return p.parseWithStatement()
	case lexer.T_VAR:
		return p.parseVariableDeclaration("var")
	case lexer.T_CLASS, lexer.T_CONST:
		// 只会从单语句上下文到达这里
		p.fail("lexical declarations cannot appear in a single-statement context")
	case lexer.T_FUNCTION:
		return p.parseAnnexBFunctionDeclaration()
	case lexer.T_IDENTIFIER:
		if p.ctx.StatementOnly {
			if p.isContextual("async") && p.peekAt(1).Type == lexer.T_FUNCTION &&
				!lineBreakBetween(p.peek(), p.peekAt(1)) {
				p.fail("async function declarations cannot appear in a single-statement context")
			}
			if p.isLetDeclaration() {
				p.fail("lexical declarations cannot appear in a single-statement context")
			}
		}
		// 标签语句
		if p.peekAt(1).Type == lexer.TOKEN_COLON {
			return p.parseLabeledStatement()
		}
	}
	return p.parseExpressionStatement()
}

// parseNestedStatement 单语句上下文中的语句体（if/while/for 体、标签体）
func (p *Parser) parseNestedStatement() ast.Statement {
	saved := p.ctx.StatementOnly
	p.ctx.StatementOnly = true
	stmt := p.parseStatement()
	p.ctx.StatementOnly = saved
	return stmt
}

// parseAnnexBFunctionDeclaration 单语句上下文中的函数声明：仅 sloppy 模式
// 接受普通函数，且不进入词法声明集合、不提升。
func (p *Parser) parseAnnexBFunctionDeclaration() ast.Statement {
	if !p.ctx.StatementOnly {
		return p.parseFunctionDeclaration(false)
	}
	if p.ctx.Strict {
		p.fail("function declarations cannot appear in a single-statement context in strict mode")
	}
	if p.peekAt(1).Type == lexer.TOKEN_STAR {
		p.fail("generator declarations cannot appear in a single-statement context")
	}
	return p.parseFunctionDeclarationTail(false, true, false)
}

// ============= ASI =============

// consumeSemicolon 消费语句结尾的分号，按 ASI 规则允许省略
func (p *Parser) consumeSemicolon() {
	if p.match(lexer.TOKEN_SEMICOLON) {
		return
	}
	t := p.peek()
	if t.Type == lexer.TOKEN_RBRACE || t.Type == lexer.T_EOF {
		return
	}
	if p.lineBreakBefore() {
		return
	}
	// 新语句的起始关键字也允许自动插入
	switch t.Type {
	case lexer.T_IMPORT, lexer.T_EXPORT, lexer.T_FUNCTION, lexer.T_CLASS,
		lexer.T_CONST, lexer.T_VAR:
		return
	case lexer.T_IDENTIFIER:
		if p.isContextual("let") {
			return
		}
	}
	p.fail("expected ';'")
}

// ============= 简单语句 =============

// parseExpressionStatement 表达式语句
func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	start := p.peek()
	expr := p.parseExpression(LOWEST)
	p.checkCoverInit()
	p.checkProtoDup()
	p.consumeSemicolon()
	return &ast.ExpressionStatement{Span: p.spanFrom(start), Expression: expr}
}

// parseBlockStatement 块语句，携带自己的作用域帧。块体不是单语句上下文。
func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	start := p.consume(lexer.TOKEN_LBRACE, "expected '{'")
	savedOnly := p.ctx.StatementOnly
	p.ctx.StatementOnly = false
	p.pushScope(false)
	body := p.parseStatementList(lexer.TOKEN_RBRACE, false)
	p.popScope()
	p.ctx.StatementOnly = savedOnly
	p.consume(lexer.TOKEN_RBRACE, "expected '}'")
	return &ast.BlockStatement{Span: p.spanFrom(start), Body: body}
}

// parseIfStatement if 语句
func (p *Parser) parseIfStatement() ast.Statement {
	start := p.advance()
	p.consume(lexer.TOKEN_LPAREN, "expected '(' after 'if'")
	test := p.parseIsolatedExpression()
	p.consume(lexer.TOKEN_RPAREN, "expected ')'")
	consequent := p.parseNestedStatement()
	var alternate ast.Statement
	if p.match(lexer.T_ELSE) {
		alternate = p.parseNestedStatement()
	}
	return &ast.IfStatement{
		Span:       p.spanFrom(start),
		Test:       test,
		Consequent: consequent,
		Alternate:  alternate,
	}
}

// parseWhileStatement while 循环
func (p *Parser) parseWhileStatement() ast.Statement {
	start := p.advance()
	p.consume(lexer.TOKEN_LPAREN, "expected '(' after 'while'")
	test := p.parseIsolatedExpression()
	p.consume(lexer.TOKEN_RPAREN, "expected ')'")
	p.loopDepth++
	body := p.parseNestedStatement()
	p.loopDepth--
	return &ast.WhileStatement{Span: p.spanFrom(start), Test: test, Body: body}
}

// parseDoWhileStatement do-while 循环。) 之后无条件允许 ASI。
func (p *Parser) parseDoWhileStatement() ast.Statement {
	start := p.advance()
	p.loopDepth++
	body := p.parseNestedStatement()
	p.loopDepth--
	p.consume(lexer.T_WHILE, "expected 'while' after do body")
	p.consume(lexer.TOKEN_LPAREN, "expected '('")
	test := p.parseIsolatedExpression()
	p.consume(lexer.TOKEN_RPAREN, "expected ')'")
	p.match(lexer.TOKEN_SEMICOLON)
	return &ast.DoWhileStatement{Span: p.spanFrom(start), Body: body, Test: test}
}

// parseWithStatement with 语句（严格模式禁止）
func (p *Parser) parseWithStatement() ast.Statement {
	start := p.advance()
	if p.ctx.Strict {
		p.failAt(start, "'with' statements are not allowed in strict mode")
	}
	p.consume(lexer.TOKEN_LPAREN, "expected '(' after 'with'")
	object := p.parseIsolatedExpression()
	p.consume(lexer.TOKEN_RPAREN, "expected ')'")
	body := p.parseNestedStatement()
	return &ast.WithStatement{Span: p.spanFrom(start), Object: object, Body: body}
}

// parseReturnStatement return 语句（受限产生式：参数不跨行）
func (p *Parser) parseReturnStatement() ast.Statement {
	start := p.advance()
	if !p.ctx.InFunction {
		p.failAt(start, "'return' outside of function")
	}
	var arg ast.Expression
	if !p.check(lexer.TOKEN_SEMICOLON) && !p.check(lexer.TOKEN_RBRACE) &&
		!p.check(lexer.T_EOF) && !p.lineBreakBefore() {
		arg = p.parseIsolatedExpression()
	}
	p.consumeSemicolon()
	return &ast.ReturnStatement{Span: p.spanFrom(start), Argument: arg}
}

// parseThrowStatement throw 语句（参数必须同行）
func (p *Parser) parseThrowStatement() ast.Statement {
	start := p.advance()
	if p.lineBreakBefore() {
		p.failAt(start, "newline is not allowed between 'throw' and its argument")
	}
	arg := p.parseIsolatedExpression()
	p.consumeSemicolon()
	return &ast.ThrowStatement{Span: p.spanFrom(start), Argument: arg}
}

// parseBreakContinueStatement break/continue，标签不跨行（ASI 受限产生式）
func (p *Parser) parseBreakContinueStatement() ast.Statement {
	start := p.advance()
	isBreak := start.Type == lexer.T_BREAK

	var label *ast.Identifier
	if p.check(lexer.T_IDENTIFIER) && !p.lineBreakBefore() {
		tok := p.advance()
		label = &ast.Identifier{Span: spanOfToken(tok), Name: tok.Lexeme}
		if isBreak {
			p.checkBreakLabel(tok.Lexeme, tok)
		} else {
			p.checkContinueLabel(tok.Lexeme, tok)
		}
	} else {
		if isBreak {
			if p.loopDepth == 0 && p.switchDepth == 0 {
				p.failAt(start, "'break' outside of a loop or switch")
			}
		} else if p.loopDepth == 0 {
			p.failAt(start, "'continue' outside of a loop")
		}
	}
	p.consumeSemicolon()

	if isBreak {
		return &ast.BreakStatement{Span: p.spanFrom(start), Label: label}
	}
	return &ast.ContinueStatement{Span: p.spanFrom(start), Label: label}
}

// parseLabeledStatement 标签语句
func (p *Parser) parseLabeledStatement() ast.Statement {
	tok := p.advance()
	p.validateIdentifierReference(tok.Lexeme, tok)
	p.consume(lexer.TOKEN_COLON, "expected ':'")

	// 穿过后续标签看语句体是否为迭代语句
	i := 0
	for p.peekAt(i).Type == lexer.T_IDENTIFIER && p.peekAt(i+1).Type == lexer.TOKEN_COLON {
		i += 2
	}
	iteration := false
	switch p.peekAt(i).Type {
	case lexer.T_WHILE, lexer.T_DO, lexer.T_FOR:
		iteration = true
	}

	p.declareLabel(tok.Lexeme, iteration, tok)
	body := p.parseNestedStatement()
	p.removeLabel(tok.Lexeme)

	return &ast.LabeledStatement{
		Span:  p.spanFrom(tok),
		Label: &ast.Identifier{Span: spanOfToken(tok), Name: tok.Lexeme},
		Body:  body,
	}
}

// parseSwitchStatement switch 语句；整个 case 序列共享一个块作用域
func (p *Parser) parseSwitchStatement() ast.Statement {
	start := p.advance()
	p.consume(lexer.TOKEN_LPAREN, "expected '(' after 'switch'")
	discriminant := p.parseIsolatedExpression()
	p.consume(lexer.TOKEN_RPAREN, "expected ')'")
	p.consume(lexer.TOKEN_LBRACE, "expected '{'")

	savedOnly := p.ctx.StatementOnly
	p.ctx.StatementOnly = false
	p.pushScope(false)
	p.switchDepth++
	var cases []*ast.SwitchCase
	sawDefault := false
	for !p.check(lexer.TOKEN_RBRACE) {
		caseTok := p.peek()
		var test ast.Expression
		switch caseTok.Type {
		case lexer.T_CASE:
			p.advance()
			test = p.parseIsolatedExpression()
		case lexer.T_DEFAULT:
			if sawDefault {
				p.failAt(caseTok, "multiple default clauses in switch statement")
			}
			sawDefault = true
			p.advance()
		default:
			p.fail("expected 'case' or 'default'")
		}
		p.consume(lexer.TOKEN_COLON, "expected ':'")
		var consequent []ast.Statement
		for !p.check(lexer.T_CASE) && !p.check(lexer.T_DEFAULT) &&
			!p.check(lexer.TOKEN_RBRACE) && !p.check(lexer.T_EOF) {
			consequent = append(consequent, p.parseStatementListItem())
		}
		cases = append(cases, &ast.SwitchCase{
			Span:       p.spanFrom(caseTok),
			Test:       test,
			Consequent: consequent,
		})
	}
	p.switchDepth--
	p.popScope()
	p.ctx.StatementOnly = savedOnly
	p.consume(lexer.TOKEN_RBRACE, "expected '}'")

	return &ast.SwitchStatement{Span: p.spanFrom(start), Discriminant: discriminant, Cases: cases}
}

// parseTryStatement try/catch/finally
func (p *Parser) parseTryStatement() ast.Statement {
	start := p.advance()
	block := p.parseBlockStatement()

	var handler *ast.CatchClause
	if p.check(lexer.T_CATCH) {
		handler = p.parseCatchClause()
	}
	var finalizer *ast.BlockStatement
	if p.match(lexer.T_FINALLY) {
		finalizer = p.parseBlockStatement()
	}
	if handler == nil && finalizer == nil {
		p.fail("missing 'catch' or 'finally' after 'try'")
	}
	return &ast.TryStatement{
		Span:      p.spanFrom(start),
		Block:     block,
		Handler:   handler,
		Finalizer: finalizer,
	}
}

// parseCatchClause catch 子句。参数与块体共享一个作用域帧。
func (p *Parser) parseCatchClause() *ast.CatchClause {
	start := p.advance()
	p.pushScope(false)

	var param ast.Pattern
	if p.match(lexer.TOKEN_LPAREN) {
		param = p.parseBindingPattern()
		p.consume(lexer.TOKEN_RPAREN, "expected ')'")

		_, simple := param.(*ast.Identifier)
		var names []*ast.Identifier
		collectBoundNames(param, &names)
		seen := map[string]bool{}
		scope := p.currentScope()
		for _, id := range names {
			if seen[id.Name] {
				p.failAtNode(id, "duplicate catch parameter name")
			}
			seen[id.Name] = true
			scope.lexical[id.Name] = true
			if simple && !p.ctx.Strict {
				// AnnexB：sloppy 模式允许 var 重新声明简单 catch 参数
				scope.catchParams[id.Name] = true
			}
		}
	}

	// 块体与参数同帧，词法声明与参数名冲突即报错
	lbrace := p.consume(lexer.TOKEN_LBRACE, "expected '{'")
	savedOnly := p.ctx.StatementOnly
	p.ctx.StatementOnly = false
	body := p.parseStatementList(lexer.TOKEN_RBRACE, false)
	p.ctx.StatementOnly = savedOnly
	p.consume(lexer.TOKEN_RBRACE, "expected '}'")
	p.popScope()

	return &ast.CatchClause{
		Span:  p.spanFrom(start),
		Param: param,
		Body:  &ast.BlockStatement{Span: p.spanFrom(lbrace), Body: body},
	}
}

// ============= for 族 =============

// parseForStatement for / for-in / for-of / for await
func (p *Parser) parseForStatement() ast.Statement {
	start := p.advance()

	isAwait := false
	if p.isContextual("await") {
		if !p.awaitExpressionAllowed() {
			p.fail("'for await' is only allowed in async functions and at module top level")
		}
		p.advance()
		isAwait = true
	}

	p.consume(lexer.TOKEN_LPAREN, "expected '(' after 'for'")

	// for-of 专属歧义：( 后的头两个字面 Token 是 async of
	plainAsyncOf := !isAwait && p.isContextual("async") && p.isContextualAt(1, "of")

	// 声明头引入自己的词法作用域，体内 var 向上传播到这里即会冲突
	headScope := false
	defer func() {
		if headScope {
			p.popScope()
		}
	}()

	savedIn := p.ctx.AllowIn
	p.ctx.AllowIn = false

	var init ast.Node
	switch {
	case p.check(lexer.TOKEN_SEMICOLON):
		// 空 init
	case p.check(lexer.T_VAR):
		init = p.parseForDeclaration("var")
	case p.check(lexer.T_CONST):
		p.pushScope(false)
		headScope = true
		init = p.parseForDeclaration("const")
	case p.isContextual("let") && p.letStartsForDeclaration():
		p.pushScope(false)
		headScope = true
		init = p.parseForDeclaration("let")
	default:
		expr := p.parseExpression(LOWEST)
		init = expr
	}
	p.ctx.AllowIn = savedIn

	// for-in / for-of 分派
	if decl, isDecl := init.(*ast.VariableDeclaration); isDecl {
		if p.check(lexer.T_IN) {
			return p.parseForInOf(start, decl, false, isAwait, true)
		}
		if p.isContextual("of") {
			return p.parseForInOf(start, decl, true, isAwait, true)
		}
	} else if init != nil {
		if p.check(lexer.T_IN) {
			return p.parseForInOf(start, init, false, isAwait, false)
		}
		if p.isContextual("of") {
			if plainAsyncOf {
				p.fail("'async' cannot be the left-hand side of a 'for-of' loop without parentheses")
			}
			return p.parseForInOf(start, init, true, isAwait, false)
		}
	}

	if isAwait {
		p.fail("'for await' is only valid with for-of loops")
	}

	// C 风格 for
	if _, isExpr := init.(ast.Expression); isExpr {
		p.checkCoverInit()
		p.checkProtoDup()
	}
	if decl, isDecl := init.(*ast.VariableDeclaration); isDecl {
		for _, d := range decl.Declarations {
			if d.Init != nil {
				continue
			}
			if decl.DeclKind == "const" {
				p.failAtNode(d, "missing initializer in const declaration")
			}
			if _, isID := d.Id.(*ast.Identifier); !isID {
				p.failAtNode(d, "missing initializer in destructuring declaration")
			}
		}
	}
	p.consume(lexer.TOKEN_SEMICOLON, "expected ';'")
	var test ast.Expression
	if !p.check(lexer.TOKEN_SEMICOLON) {
		test = p.parseIsolatedExpression()
	}
	p.consume(lexer.TOKEN_SEMICOLON, "expected ';'")
	var update ast.Expression
	if !p.check(lexer.TOKEN_RPAREN) {
		update = p.parseIsolatedExpression()
	}
	p.consume(lexer.TOKEN_RPAREN, "expected ')'")

	p.loopDepth++
	body := p.parseNestedStatement()
	p.loopDepth--

	return &ast.ForStatement{
		Span:   p.spanFrom(start),
		Init:   init,
		Test:   test,
		Update: update,
		Body:   body,
	}
}

// letStartsForDeclaration for 头中 let 是否开始声明
func (p *Parser) letStartsForDeclaration() bool {
	switch p.peekAt(1).Type {
	case lexer.TOKEN_LBRACKET, lexer.TOKEN_LBRACE, lexer.T_IDENTIFIER:
		return true
	}
	return false
}

// parseForDeclaration for 头里的 var/let/const 声明（不消费分号）
func (p *Parser) parseForDeclaration(kind string) *ast.VariableDeclaration {
	start := p.advance()
	var decls []*ast.VariableDeclarator
	for {
		declStart := p.peek()
		pat := p.parseBindingPattern()
		var init ast.Expression
		if p.match(lexer.TOKEN_ASSIGN) {
			init = p.parseAssignExpr()
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
	return decl
}

// parseForInOf for-in 与 for-of 的共同尾部
func (p *Parser) parseForInOf(start lexer.Token, left ast.Node, isOf, isAwait, isDecl bool) ast.Statement {
	if isDecl {
		decl := left.(*ast.VariableDeclaration)
		if len(decl.Declarations) != 1 {
			p.failAtNode(decl, "for-in/for-of loop heads may only declare one binding")
		}
		d := decl.Declarations[0]
		if d.Init != nil {
			// AnnexB：仅 sloppy 的 for-in 允许 var 带初始化器，且须是简单绑定
			_, simpleID := d.Id.(*ast.Identifier)
			if isOf || decl.DeclKind != "var" || p.ctx.Strict || !simpleID {
				p.failAtNode(d, "for-in/for-of loop heads may not have an initializer")
			}
		}
	} else {
		expr := left.(ast.Expression)
		switch expr.(type) {
		case *ast.ObjectExpression, *ast.ArrayExpression:
			p.checkParenthesizedPattern(expr)
			left = p.toAssignmentPattern(expr, false)
		default:
			p.validateAssignmentTarget(expr)
		}
		p.checkCoverInit()
		p.checkProtoDup()
	}

	var right ast.Expression
	if isOf {
		p.consumeContextual("of")
		right = p.parseIsolatedAssign()
	} else {
		p.consume(lexer.T_IN, "expected 'in'")
		right = p.parseIsolatedExpression()
	}
	p.consume(lexer.TOKEN_RPAREN, "expected ')'")

	p.loopDepth++
	body := p.parseNestedStatement()
	p.loopDepth--

	if isOf {
		return &ast.ForOfStatement{
			Span:  p.spanFrom(start),
			Await: isAwait,
			Left:  left,
			Right: right,
			Body:  body,
		}
	}
	return &ast.ForInStatement{
		Span:  p.spanFrom(start),
		Left:  left,
		Right: right,
		Body:  body,
	}
}
