package parser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/js-parser/ast"
	"github.com/wudi/js-parser/errors"
)

func parseScript(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src, Options{})
	require.NoError(t, err, "source: %s", src)
	return prog
}

func parseModule(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src, Options{Module: true})
	require.NoError(t, err, "source: %s", src)
	return prog
}

func expectScriptError(t *testing.T, src, contains string) *errors.Error {
	t.Helper()
	prog, err := Parse(src, Options{})
	require.Error(t, err, "source: %s", src)
	require.Nil(t, prog)
	perr, ok := err.(*errors.Error)
	require.True(t, ok, "error must be *errors.Error, got %T", err)
	if contains != "" {
		assert.Contains(t, perr.Message, contains, "source: %s", src)
	}
	return perr
}

func expectModuleError(t *testing.T, src, contains string) *errors.Error {
	t.Helper()
	prog, err := Parse(src, Options{Module: true})
	require.Error(t, err, "source: %s", src)
	require.Nil(t, prog)
	perr, ok := err.(*errors.Error)
	require.True(t, ok, "error must be *errors.Error, got %T", err)
	if contains != "" {
		assert.Contains(t, perr.Message, contains, "source: %s", src)
	}
	return perr
}

func firstExpression(t *testing.T, prog *ast.Program) ast.Expression {
	t.Helper()
	require.NotEmpty(t, prog.Body)
	stmt, ok := prog.Body[0].(*ast.ExpressionStatement)
	require.True(t, ok, "first statement is %T, not an expression statement", prog.Body[0])
	return stmt.Expression
}

func TestParse_EmptyProgram(t *testing.T) {
	prog := parseScript(t, "")
	assert.Equal(t, "script", prog.SourceType)
	assert.Empty(t, prog.Body)

	prog = parseModule(t, "")
	assert.Equal(t, "module", prog.SourceType)
}

func TestParse_SimpleStatements(t *testing.T) {
	prog := parseScript(t, "var x = 1; let y = 2; const z = 3;")
	require.Len(t, prog.Body, 3)
	kinds := []string{"var", "let", "const"}
	for i, stmt := range prog.Body {
		decl := stmt.(*ast.VariableDeclaration)
		assert.Equal(t, kinds[i], decl.DeclKind)
		require.Len(t, decl.Declarations, 1)
		assert.NotNil(t, decl.Declarations[0].Init)
	}
}

// 每个节点的跨度有序，位置先后一致
func TestParse_SpanInvariant(t *testing.T) {
	srcs := []string{
		"let x = a + b * c;",
		"function f(a, {b = 1}, ...c) { return a ? b : c }",
		"class A extends B { #x = 1; static m() {} get y() { return this.#x } }",
		"for (let i = 0; i < 3; i++) { x += i }",
		"`head${x}middle${y}tail`",
		"try { f() } catch ({message}) { g() } finally { h() }",
	}
	for _, src := range srcs {
		prog := parseScript(t, src)
		ast.Walk(ast.VisitorFunc(func(n ast.Node) bool {
			start, end := n.Range()
			assert.LessOrEqual(t, start, end, "%s: %s", src, n.Kind())
			loc := n.Location()
			if loc.Start.Line == loc.End.Line {
				assert.LessOrEqual(t, loc.Start.Column, loc.End.Column, "%s: %s", src, n.Kind())
			} else {
				assert.Less(t, loc.Start.Line, loc.End.Line, "%s: %s", src, n.Kind())
			}
			return true
		}), prog)
	}
}

// 同一源码重复解析并序列化得到相同的 JSON
func TestParse_JSONIdempotence(t *testing.T) {
	src := `
"use strict";
class Point {
  #x = 0;
  constructor(x) { this.#x = x }
  get x() { return this.#x }
}
const p = new Point(1), q = [...[1, 2]].map(n => n ** 2);
`
	first, err := Parse(src, Options{})
	require.NoError(t, err)
	second, err := Parse(src, Options{})
	require.NoError(t, err)

	a, err := ast.ToJSON(first)
	require.NoError(t, err)
	b, err := ast.ToJSON(second)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(a, b))
}

// 在会自动补分号的位置写上显式分号，得到同构的语法树
func TestParse_ASIEquivalence(t *testing.T) {
	pairs := [][2]string{
		{"a\nb", "a;b;"},
		{"x = 1\ny = 2", "x = 1; y = 2;"},
		{"return", "return;"},
		{"do {} while (0) x = 1", "do {} while (0); x = 1;"},
	}
	for _, pair := range pairs {
		src := pair[0]
		if src == "return" {
			continue // 单独在函数中测试
		}
		left := parseScript(t, pair[0])
		right := parseScript(t, pair[1])
		require.Len(t, left.Body, len(right.Body), "source: %s", pair[0])
		for i := range left.Body {
			assert.Equal(t, right.Body[i].Kind(), left.Body[i].Kind(), "source: %s", pair[0])
		}
	}

	left := parseScript(t, "function f() { return\n1 }")
	body := left.Body[0].(*ast.FunctionDeclaration).Body.Body
	require.Len(t, body, 2)
	ret := body[0].(*ast.ReturnStatement)
	assert.Nil(t, ret.Argument)
}

func TestParse_Directives(t *testing.T) {
	prog := parseScript(t, "'use strict'; 'another'; f()")
	stmt := prog.Body[0].(*ast.ExpressionStatement)
	assert.Equal(t, "use strict", stmt.Directive)
	stmt = prog.Body[1].(*ast.ExpressionStatement)
	assert.Equal(t, "another", stmt.Directive)
	stmt = prog.Body[2].(*ast.ExpressionStatement)
	assert.Empty(t, stmt.Directive)
}

func TestParse_ParenthesizedDirectiveIsNotADirective(t *testing.T) {
	// ("use strict") 不是指令，with 仍然合法
	prog := parseScript(t, "('use strict'); with (o) {}")
	require.Len(t, prog.Body, 2)
	stmt := prog.Body[0].(*ast.ExpressionStatement)
	assert.Empty(t, stmt.Directive)
}

func TestParse_ErrorPositions(t *testing.T) {
	perr := expectScriptError(t, "let x = 1;\nlet x = 2;", "already been declared")
	assert.Equal(t, 2, perr.Position.Line)

	perr = expectScriptError(t, "a @ b", "")
	assert.Equal(t, errors.LexicalError, perr.Type)
}

func TestParse_FreshParserPerParse(t *testing.T) {
	// 失败的解析不会影响新实例
	_, err := Parse("let x = ;", Options{})
	require.Error(t, err)
	prog, err := Parse("let x = 1;", Options{})
	require.NoError(t, err)
	require.Len(t, prog.Body, 1)
}

func TestParse_NodeCount(t *testing.T) {
	prog := parseScript(t, "a + b")
	// Program, ExpressionStatement, BinaryExpression, 2×Identifier
	assert.Equal(t, 5, ast.Count(prog))
}
