package parser

import (
	"fmt"

	"github.com/wudi/js-parser/ast"
	"github.com/wudi/js-parser/errors"
	"github.com/wudi/js-parser/lexer"
)

// strictReservedWords 严格模式下追加的保留字
var strictReservedWords = map[string]bool{
	"implements": true,
	"interface":  true,
	"package":    true,
	"private":    true,
	"protected":  true,
	"public":     true,
	"static":     true,
	"let":        true,
	"yield":      true,
}

// failAtNode 在节点起点处抛出语法错误
func (p *Parser) failAtNode(n ast.Node, msg string) {
	start, _ := n.Range()
	loc := n.Location()
	panic(errors.NewSyntaxError(msg, errors.Position{
		Line:   loc.Start.Line,
		Column: loc.Start.Column,
		Offset: start,
	}))
}

// awaitIsReserved await 作为标识符是否被禁用
func (p *Parser) awaitIsReserved() bool {
	return p.opts.Module || p.ctx.InAsync || p.ctx.InStaticBlock
}

// validateBindingName 校验绑定位置上的名字（声明、形参、catch 参数、模式）
func (p *Parser) validateBindingName(name string, tok lexer.Token) {
	switch name {
	case "eval", "arguments":
		if p.ctx.Strict {
			p.failAt(tok, fmt.Sprintf("'%s' cannot be bound in strict mode", name))
		}
	case "yield":
		if p.ctx.Strict || p.ctx.InGenerator {
			p.failAt(tok, "'yield' cannot be used as a binding name here")
		}
	case "await":
		if p.awaitIsReserved() {
			p.failAt(tok, "'await' cannot be used as a binding name here")
		}
	default:
		if p.ctx.Strict && strictReservedWords[name] {
			p.failAt(tok, fmt.Sprintf("'%s' is reserved in strict mode", name))
		}
	}
}

// validateIdentifierReference 校验表达式位置上的标识符引用
func (p *Parser) validateIdentifierReference(name string, tok lexer.Token) {
	switch name {
	case "yield":
		if p.ctx.Strict || p.ctx.InGenerator {
			p.failAt(tok, "'yield' cannot be used as an identifier here")
		}
	case "await":
		if p.awaitIsReserved() {
			p.failAt(tok, "'await' cannot be used as an identifier here")
		}
	case "arguments":
		if p.ctx.InFieldInitializer || p.ctx.InStaticBlock {
			p.failAt(tok, "'arguments' is not allowed here")
		}
	default:
		if p.ctx.Strict && strictReservedWords[name] {
			p.failAt(tok, fmt.Sprintf("'%s' is reserved in strict mode", name))
		}
	}
}

// isSimpleAssignTarget 标识符或非可选成员访问
func isSimpleAssignTarget(e ast.Expression) bool {
	switch t := e.(type) {
	case *ast.Identifier:
		return true
	case *ast.MemberExpression:
		return !t.Optional
	}
	return false
}

// validateAssignmentTarget 校验 = 左侧（解构字面量由调用方转换）
func (p *Parser) validateAssignmentTarget(e ast.Expression) {
	switch t := e.(type) {
	case *ast.Identifier:
		if p.ctx.Strict && (t.Name == "eval" || t.Name == "arguments") {
			p.failAtNode(t, fmt.Sprintf("cannot assign to '%s' in strict mode", t.Name))
		}
	case *ast.MemberExpression:
		if t.Optional {
			p.failAtNode(t, "invalid assignment target")
		}
	case *ast.ChainExpression:
		p.failAtNode(t, "optional chains are not valid assignment targets")
	default:
		p.failAtNode(e, "invalid assignment target")
	}
}

// validateSimpleAssignmentTarget 复合赋值与自增自减只接受简单目标
func (p *Parser) validateSimpleAssignmentTarget(e ast.Expression, what string) {
	switch t := e.(type) {
	case *ast.Identifier:
		if p.ctx.Strict && (t.Name == "eval" || t.Name == "arguments") {
			p.failAtNode(t, fmt.Sprintf("cannot assign to '%s' in strict mode", t.Name))
		}
	case *ast.MemberExpression:
		if t.Optional {
			p.failAtNode(t, "invalid "+what+" target")
		}
	default:
		p.failAtNode(e, "invalid "+what+" target")
	}
}

// checkParenthesizedPattern 带括号的对象/数组字面量不能作为解构目标：
// 最近记录的括号起点落在 LHS 起点之前（含相等）即拒绝。
func (p *Parser) checkParenthesizedPattern(left ast.Expression) {
	switch left.(type) {
	case *ast.ObjectExpression, *ast.ArrayExpression:
		start, _ := left.Range()
		if p.parenNonSimple >= 0 && p.parenNonSimple <= start {
			p.failAtNode(left, "parenthesized pattern cannot be a destructuring target")
		}
	}
}

// checkCoverInit 未被转换为解构模式的 {x = v} 简写是语法错误
func (p *Parser) checkCoverInit() {
	if p.coverInitPos != nil {
		tok := *p.coverInitPos
		p.coverInitPos = nil
		p.failAt(tok, "shorthand property initializer is only valid in destructuring")
	}
}

// checkProtoDup 未被转换为解构模式的重复 __proto__ 是语法错误
func (p *Parser) checkProtoDup() {
	if p.protoDupPos != nil {
		tok := *p.protoDupPos
		p.protoDupPos = nil
		p.failAt(tok, "duplicate __proto__ property")
	}
}

// checkStrictNumber 严格模式拒绝遗留八进制数字字面量
func (p *Parser) checkStrictNumber(tok lexer.Token) {
	if p.ctx.Strict && tok.LegacyOctal {
		p.failAt(tok, "octal literals are not allowed in strict mode")
	}
}

// checkStrictString 严格模式拒绝字符串中的八进制与 \8 \9 转义
func (p *Parser) checkStrictString(tok lexer.Token) {
	if p.ctx.Strict && (tok.LegacyOctal || tok.NonOctalEscape) {
		p.failAt(tok, "octal escape sequences are not allowed in strict mode")
	}
}

// collectBoundNames 收集模式中声明的全部名字
func collectBoundNames(pat ast.Pattern, out *[]*ast.Identifier) {
	switch t := pat.(type) {
	case *ast.Identifier:
		*out = append(*out, t)
	case *ast.ArrayPattern:
		for _, el := range t.Elements {
			if el != nil {
				collectBoundNames(el, out)
			}
		}
	case *ast.ObjectPattern:
		for _, prop := range t.Properties {
			switch pt := prop.(type) {
			case *ast.Property:
				if v, ok := pt.Value.(ast.Pattern); ok {
					collectBoundNames(v, out)
				}
			case *ast.RestElement:
				collectBoundNames(pt.Argument, out)
			}
		}
	case *ast.AssignmentPattern:
		collectBoundNames(t.Left, out)
	case *ast.RestElement:
		collectBoundNames(t.Argument, out)
	}
}

// checkDuplicateParams 形参重名检查。requireUnique 为 false 时（sloppy 简单
// 参数表）允许重名。
func (p *Parser) checkDuplicateParams(params []ast.Pattern, requireUnique bool) {
	if !requireUnique {
		return
	}
	var names []*ast.Identifier
	for _, param := range params {
		collectBoundNames(param, &names)
	}
	seen := map[string]bool{}
	for _, id := range names {
		if seen[id.Name] {
			p.failAtNode(id, fmt.Sprintf("duplicate parameter name '%s'", id.Name))
		}
		seen[id.Name] = true
	}
}

// revalidateParams 函数体指令把严格模式打开之后，对已解析的参数名补课
func (p *Parser) revalidateParams(params []ast.Pattern) {
	var names []*ast.Identifier
	for _, param := range params {
		collectBoundNames(param, &names)
	}
	for _, id := range names {
		switch id.Name {
		case "eval", "arguments":
			p.failAtNode(id, fmt.Sprintf("'%s' cannot be bound in strict mode", id.Name))
		case "yield":
			p.failAtNode(id, "'yield' cannot be used as a binding name here")
		default:
			if strictReservedWords[id.Name] {
				p.failAtNode(id, fmt.Sprintf("'%s' is reserved in strict mode", id.Name))
			}
		}
	}
	p.checkDuplicateParams(params, true)
}

// revalidateFunctionName 同上，对函数名补课
func (p *Parser) revalidateFunctionName(id *ast.Identifier) {
	if id == nil {
		return
	}
	if id.Name == "eval" || id.Name == "arguments" || strictReservedWords[id.Name] {
		p.failAtNode(id, fmt.Sprintf("'%s' cannot name a strict mode function", id.Name))
	}
}
