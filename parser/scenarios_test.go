package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/js-parser/ast"
)

// 端到端场景：每个用例都是一段完整程序与其预期结果

func TestScenario_DuplicateLexicalDeclaration(t *testing.T) {
	expectScriptError(t, "let x = 1; let x = 2;", "'x' has already been declared")
}

func TestScenario_ForHeadBodyConflict(t *testing.T) {
	parseScript(t, "for (let i = 0; i < 3; i++) { var j = i }")
	expectScriptError(t, "for (let i = 0; ; ) { var i = 1 }", "'i' has already been declared")
}

func TestScenario_DeferredPrivateName(t *testing.T) {
	expectScriptError(t, "class A { #x; method() { return this.#y } }", "#y is not defined")
}

func TestScenario_CoalesceMixing(t *testing.T) {
	expectScriptError(t, "a ?? b || c", "cannot mix")
	parseScript(t, "(a ?? b) || c")
	parseScript(t, "a ?? (b || c)")
}

func TestScenario_StrictWith(t *testing.T) {
	expectScriptError(t, `"use strict"; with (o) {}`, "strict mode")
	expectScriptError(t, `function f(){ "use strict"; with(o){} }`, "strict mode")
}

func TestScenario_ParenthesizedDestructuring(t *testing.T) {
	prog := parseScript(t, "({a} = x)")
	assign := firstExpression(t, prog).(*ast.AssignmentExpression)
	left, ok := assign.Left.(*ast.ObjectPattern)
	require.True(t, ok)
	require.Len(t, left.Properties, 1)

	expectScriptError(t, "({a}) = x", "parenthesized pattern")
}

func TestScenario_DestructuringAssignmentShapes(t *testing.T) {
	assign := firstExpression(t, parseScript(t, "[a, {b: c = 1}, ...rest] = xs")).(*ast.AssignmentExpression)
	arr := assign.Left.(*ast.ArrayPattern)
	require.Len(t, arr.Elements, 3)
	_, isRest := arr.Elements[2].(*ast.RestElement)
	assert.True(t, isRest)

	obj := arr.Elements[1].(*ast.ObjectPattern)
	prop := obj.Properties[0].(*ast.Property)
	_, isDefault := prop.Value.(*ast.AssignmentPattern)
	assert.True(t, isDefault)
}

func TestScenario_PatternConversionRejections(t *testing.T) {
	expectScriptError(t, "[a + b] = x", "invalid assignment target")
	expectScriptError(t, "({ m() {} } = x)", "method")
	expectScriptError(t, "({ get g() {} } = x)", "getter")
	expectScriptError(t, "[...a, b] = x", "last")
	expectScriptError(t, "[...a = 1] = x", "default")
	expectScriptError(t, "function f() { (new.target) = x }", "invalid assignment target")
}
