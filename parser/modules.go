package parser

import (
	"github.com/wudi/js-parser/ast"
	"github.com/wudi/js-parser/lexer"
)

// ============= 模块声明 =============

// requireModuleTopLevel import/export 只接受在模块顶层（作用域深度1）
func (p *Parser) requireModuleTopLevel(tok lexer.Token, what string) {
	if !p.opts.Module {
		p.failAt(tok, "'"+what+"' declarations may only appear in a module")
	}
	if len(p.scopes) != 1 || p.ctx.InFunction || p.ctx.StatementOnly {
		p.failAt(tok, "'"+what+"' declarations may only appear at the top level of a module")
	}
}

// parseModuleSpecifier 模块名字符串；未配对代理项是语法错误
func (p *Parser) parseModuleSpecifier() *ast.Literal {
	tok := p.consume(lexer.T_STRING, "expected a module specifier string")
	if tok.UnpairedSurrogate {
		p.failAt(tok, "module specifier contains an unpaired surrogate")
	}
	return &ast.Literal{Span: spanOfToken(tok), Value: tok.String, Raw: p.raw(tok.Start, tok.End)}
}

// parseImportDeclaration import 声明
func (p *Parser) parseImportDeclaration() ast.Statement {
	start := p.advance()
	p.requireModuleTopLevel(start, "import")

	// import "m"
	if p.check(lexer.T_STRING) {
		source := p.parseModuleSpecifier()
		attrs := p.parseImportAttributes()
		p.consumeSemicolon()
		return &ast.ImportDeclaration{
			Span:       p.spanFrom(start),
			Specifiers: nil,
			Source:     source,
			Attributes: attrs,
		}
	}

	var specifiers []ast.Node
	needNamed := true

	if p.check(lexer.T_IDENTIFIER) {
		// 默认导入
		local := p.parseImportedBinding()
		specifiers = append(specifiers, &ast.ImportDefaultSpecifier{Span: local.Span, Local: local})
		if !p.match(lexer.TOKEN_COMMA) {
			needNamed = false
		}
	}

	if needNamed {
		switch {
		case p.check(lexer.TOKEN_STAR):
			starTok := p.advance()
			p.consumeContextual("as")
			local := p.parseImportedBinding()
			specifiers = append(specifiers, &ast.ImportNamespaceSpecifier{
				Span:  p.spanFrom(starTok),
				Local: local,
			})
		case p.check(lexer.TOKEN_LBRACE):
			specifiers = append(specifiers, p.parseNamedImports()...)
		default:
			p.fail("expected '{', '*' or a module specifier after 'import'")
		}
	}

	p.consumeContextual("from")
	source := p.parseModuleSpecifier()
	attrs := p.parseImportAttributes()
	p.consumeSemicolon()

	return &ast.ImportDeclaration{
		Span:       p.spanFrom(start),
		Specifiers: specifiers,
		Source:     source,
		Attributes: attrs,
	}
}

// parseImportedBinding 导入的本地绑定：校验并登记为词法声明
func (p *Parser) parseImportedBinding() *ast.Identifier {
	tok := p.consume(lexer.T_IDENTIFIER, "expected an identifier")
	p.validateBindingName(tok.Lexeme, tok)
	p.declareLexical(tok.Lexeme, tok)
	return &ast.Identifier{Span: spanOfToken(tok), Name: tok.Lexeme}
}

// parseNamedImports { a, b as c, "str" as d, default as e }
func (p *Parser) parseNamedImports() []ast.Node {
	p.consume(lexer.TOKEN_LBRACE, "expected '{'")
	var specs []ast.Node
	for !p.check(lexer.TOKEN_RBRACE) {
		startTok := p.peek()
		var imported ast.Node
		importedIsBindable := false
		switch {
		case p.check(lexer.T_STRING):
			tok := p.advance()
			if tok.UnpairedSurrogate {
				p.failAt(tok, "module export name contains an unpaired surrogate")
			}
			imported = &ast.Literal{Span: spanOfToken(tok), Value: tok.String, Raw: p.raw(tok.Start, tok.End)}
		case p.check(lexer.T_IDENTIFIER) || p.peek().Type.IsKeyword():
			tok := p.advance()
			imported = &ast.Identifier{Span: spanOfToken(tok), Name: tok.Lexeme}
			importedIsBindable = tok.Type == lexer.T_IDENTIFIER
		default:
			p.fail("expected an import name")
		}

		var local *ast.Identifier
		if p.matchContextual("as") {
			local = p.parseImportedBinding()
		} else {
			if !importedIsBindable {
				p.failAt(startTok, "this import name requires an 'as' clause")
			}
			id := imported.(*ast.Identifier)
			tok := lexer.Token{Lexeme: id.Name, Line: id.Loc.Start.Line, Column: id.Loc.Start.Column, Start: id.Start}
			p.validateBindingName(id.Name, tok)
			p.declareLexical(id.Name, tok)
			local = id
		}
		specs = append(specs, &ast.ImportSpecifier{
			Span:     p.spanFrom(startTok),
			Imported: imported,
			Local:    local,
		})
		if !p.check(lexer.TOKEN_RBRACE) {
			p.consume(lexer.TOKEN_COMMA, "expected ',' or '}'")
		}
	}
	p.consume(lexer.TOKEN_RBRACE, "expected '}'")
	return specs
}

// parseImportAttributes with { type: "json" }
func (p *Parser) parseImportAttributes() []*ast.ImportAttribute {
	if !p.check(lexer.T_WITH) {
		return nil
	}
	p.advance()
	p.consume(lexer.TOKEN_LBRACE, "expected '{' after 'with'")

	var attrs []*ast.ImportAttribute
	seen := map[string]bool{}
	for !p.check(lexer.TOKEN_RBRACE) {
		startTok := p.peek()
		var key ast.Node
		var keyName string
		switch {
		case p.check(lexer.T_STRING):
			tok := p.advance()
			key = &ast.Literal{Span: spanOfToken(tok), Value: tok.String, Raw: p.raw(tok.Start, tok.End)}
			keyName = tok.String
		case p.check(lexer.T_IDENTIFIER) || p.peek().Type.IsKeyword():
			tok := p.advance()
			key = &ast.Identifier{Span: spanOfToken(tok), Name: tok.Lexeme}
			keyName = tok.Lexeme
		default:
			p.fail("expected an attribute key")
		}
		if seen[keyName] {
			p.failAt(startTok, "duplicate import attribute key '"+keyName+"'")
		}
		seen[keyName] = true

		p.consume(lexer.TOKEN_COLON, "expected ':'")
		valTok := p.consume(lexer.T_STRING, "import attribute values must be string literals")
		value := &ast.Literal{Span: spanOfToken(valTok), Value: valTok.String, Raw: p.raw(valTok.Start, valTok.End)}

		attrs = append(attrs, &ast.ImportAttribute{
			Span:  p.spanFrom(startTok),
			Key:   key,
			Value: value,
		})
		if !p.check(lexer.TOKEN_RBRACE) {
			p.consume(lexer.TOKEN_COMMA, "expected ',' or '}'")
		}
	}
	p.consume(lexer.TOKEN_RBRACE, "expected '}'")
	return attrs
}

// parseExportDeclaration export 声明
func (p *Parser) parseExportDeclaration() ast.Statement {
	start := p.advance()
	p.requireModuleTopLevel(start, "export")

	switch {
	case p.check(lexer.TOKEN_STAR):
		return p.parseExportAll(start)
	case p.check(lexer.T_DEFAULT):
		return p.parseExportDefault(start)
	case p.check(lexer.TOKEN_LBRACE):
		return p.parseExportNamed(start)
	}
	return p.parseExportDeclarationForm(start)
}

// parseExportAll export * from "m" / export * as ns from "m"
func (p *Parser) parseExportAll(start lexer.Token) ast.Statement {
	p.advance() // *
	var exported ast.Node
	if p.matchContextual("as") {
		name, tok := p.parseModuleExportName()
		exported = name
		p.declareExportName(moduleExportNameString(name), tok)
	}
	p.consumeContextual("from")
	source := p.parseModuleSpecifier()
	attrs := p.parseImportAttributes()
	p.consumeSemicolon()
	return &ast.ExportAllDeclaration{
		Span:       p.spanFrom(start),
		Exported:   exported,
		Source:     source,
		Attributes: attrs,
	}
}

// parseExportDefault export default ...
func (p *Parser) parseExportDefault(start lexer.Token) ast.Statement {
	defTok := p.advance()
	p.declareExportName("default", defTok)

	var declaration ast.Node
	switch {
	case p.check(lexer.T_FUNCTION):
		declaration = p.parseFunctionDeclarationTail(false, false, true)
	case p.isContextual("async") && p.peekAt(1).Type == lexer.T_FUNCTION &&
		!lineBreakBetween(p.peek(), p.peekAt(1)):
		declaration = p.parseFunctionDeclarationTail(true, false, true)
	case p.check(lexer.T_CLASS):
		declaration = p.parseClassDeclarationTail(true)
	default:
		declaration = p.parseIsolatedAssign()
		p.consumeSemicolon()
	}
	return &ast.ExportDefaultDeclaration{Span: p.spanFrom(start), Declaration: declaration}
}

// parseExportNamed export { a, b as c } [from "m"]
func (p *Parser) parseExportNamed(start lexer.Token) ast.Statement {
	p.consume(lexer.TOKEN_LBRACE, "expected '{'")

	type rawSpec struct {
		spec       *ast.ExportSpecifier
		localTok   lexer.Token
		localIsStr bool
	}
	var raw []rawSpec
	for !p.check(lexer.TOKEN_RBRACE) {
		startTok := p.peek()
		local, localTok := p.parseModuleExportName()
		exported := local
		exportedTok := localTok
		if p.matchContextual("as") {
			exported, exportedTok = p.parseModuleExportName()
		}
		p.declareExportName(moduleExportNameString(exported), exportedTok)
		_, localIsStr := local.(*ast.Literal)
		raw = append(raw, rawSpec{
			spec: &ast.ExportSpecifier{
				Span:     p.spanFrom(startTok),
				Local:    local,
				Exported: exported,
			},
			localTok:   localTok,
			localIsStr: localIsStr,
		})
		if !p.check(lexer.TOKEN_RBRACE) {
			p.consume(lexer.TOKEN_COMMA, "expected ',' or '}'")
		}
	}
	p.consume(lexer.TOKEN_RBRACE, "expected '}'")

	var source *ast.Literal
	var attrs []*ast.ImportAttribute
	if p.matchContextual("from") {
		source = p.parseModuleSpecifier()
		attrs = p.parseImportAttributes()
	} else {
		// 本地导出：本地名必须在模块顶层解析结束时可解析
		for _, r := range raw {
			if r.localIsStr {
				p.failAt(r.localTok, "string export names require a 'from' clause")
			}
			p.recordExportBinding(moduleExportNameString(r.spec.Local), r.localTok)
		}
	}
	p.consumeSemicolon()

	specs := make([]*ast.ExportSpecifier, len(raw))
	for i, r := range raw {
		specs[i] = r.spec
	}
	return &ast.ExportNamedDeclaration{
		Span:       p.spanFrom(start),
		Specifiers: specs,
		Source:     source,
		Attributes: attrs,
	}
}

// parseModuleExportName 导出名：IdentifierName 或字符串
func (p *Parser) parseModuleExportName() (ast.Node, lexer.Token) {
	t := p.peek()
	switch {
	case t.Type == lexer.T_STRING:
		p.advance()
		if t.UnpairedSurrogate {
			p.failAt(t, "module export name contains an unpaired surrogate")
		}
		return &ast.Literal{Span: spanOfToken(t), Value: t.String, Raw: p.raw(t.Start, t.End)}, t
	case t.Type == lexer.T_IDENTIFIER || t.Type.IsKeyword():
		p.advance()
		return &ast.Identifier{Span: spanOfToken(t), Name: t.Lexeme}, t
	}
	p.fail("expected an export name")
	return nil, t
}

// moduleExportNameString 导出名的字符串形式
func moduleExportNameString(n ast.Node) string {
	switch t := n.(type) {
	case *ast.Identifier:
		return t.Name
	case *ast.Literal:
		s, _ := t.Value.(string)
		return s
	}
	return ""
}

// parseExportDeclarationForm export var/let/const/function/class
func (p *Parser) parseExportDeclarationForm(start lexer.Token) ast.Statement {
	var decl ast.Statement
	switch {
	case p.check(lexer.T_VAR):
		decl = p.parseVariableDeclaration("var")
	case p.check(lexer.T_CONST):
		decl = p.parseVariableDeclaration("const")
	case p.isContextual("let") && p.isLetDeclaration():
		decl = p.parseVariableDeclaration("let")
	case p.check(lexer.T_FUNCTION):
		decl = p.parseFunctionDeclaration(false)
	case p.isContextual("async") && p.peekAt(1).Type == lexer.T_FUNCTION &&
		!lineBreakBetween(p.peek(), p.peekAt(1)):
		decl = p.parseFunctionDeclaration(true)
	case p.check(lexer.T_CLASS):
		decl = p.parseClassDeclaration()
	default:
		p.fail("unexpected token after 'export'")
	}

	for _, id := range declaredNamesOf(decl) {
		tok := lexer.Token{Lexeme: id.Name, Line: id.Loc.Start.Line, Column: id.Loc.Start.Column, Start: id.Start}
		p.declareExportName(id.Name, tok)
	}
	return &ast.ExportNamedDeclaration{Span: p.spanFrom(start), Declaration: decl}
}

// declaredNamesOf 声明语句绑定的名字
func declaredNamesOf(stmt ast.Statement) []*ast.Identifier {
	var names []*ast.Identifier
	switch t := stmt.(type) {
	case *ast.VariableDeclaration:
		for _, d := range t.Declarations {
			collectBoundNames(d.Id, &names)
		}
	case *ast.FunctionDeclaration:
		if t.Id != nil {
			names = append(names, t.Id)
		}
	case *ast.ClassDeclaration:
		if t.Id != nil {
			names = append(names, t.Id)
		}
	}
	return names
}
