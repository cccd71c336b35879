package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wudi/js-parser/ast"
)

func TestStrict_DirectiveEnablesImmediately(t *testing.T) {
	expectScriptError(t, "'use strict'; with (o) {}", "strict mode")
	// 指令之后的序言字符串也按严格模式校验
	expectScriptError(t, "'use strict'; '\\012';", "octal")
}

func TestStrict_FunctionBodyDirective(t *testing.T) {
	expectScriptError(t, "function f() { 'use strict'; with (o) {} }", "strict mode")
	// 外层不受影响
	parseScript(t, "function f() { 'use strict' } with (o) {}")
}

func TestStrict_RetroactiveOctalValidation(t *testing.T) {
	// 指令之前的序言字符串回头校验
	expectScriptError(t, "function f() { '\\012'; 'use strict' }", "octal")
	expectScriptError(t, "'\\8'; 'use strict';", "octal")
	// 没有指令则 sloppy 合法
	parseScript(t, "function f() { '\\012' }")
}

func TestStrict_NonSimpleParamsWithDirective(t *testing.T) {
	expectScriptError(t, "function f(a = 1) { 'use strict' }", "non-simple")
	expectScriptError(t, "function f({a}) { 'use strict' }", "non-simple")
	expectScriptError(t, "function f(...a) { 'use strict' }", "non-simple")
	expectScriptError(t, "(a = 1) => { 'use strict' }", "non-simple")
	parseScript(t, "function f(a) { 'use strict' }")
}

func TestStrict_OctalLiterals(t *testing.T) {
	expectScriptError(t, "'use strict'; 012", "octal")
	expectScriptError(t, "'use strict'; 089", "octal")
	parseScript(t, "'use strict'; 0o12")
	parseScript(t, "012")
}

func TestStrict_ReservedWords(t *testing.T) {
	for _, word := range []string{"implements", "interface", "package", "private", "protected", "public", "static", "yield", "let"} {
		expectScriptError(t, "'use strict'; var "+word+" = 1", "")
		parseScript(t, "var "+word+" = 1")
	}
}

func TestStrict_EvalArguments(t *testing.T) {
	expectScriptError(t, "'use strict'; var eval = 1", "eval")
	expectScriptError(t, "'use strict'; let arguments = 1", "arguments")
	expectScriptError(t, "'use strict'; eval = 1", "eval")
	expectScriptError(t, "'use strict'; arguments++", "arguments")
	expectScriptError(t, "'use strict'; function eval() {}", "eval")
	expectScriptError(t, "'use strict'; function f(eval) {}", "eval")
	// 引用是合法的
	parseScript(t, "'use strict'; f(eval, arguments)")
	parseScript(t, "var eval = 1")
}

func TestStrict_DuplicateParams(t *testing.T) {
	parseScript(t, "function f(a, a) {}")
	expectScriptError(t, "'use strict'; function f(a, a) {}", "duplicate parameter")
	expectScriptError(t, "function f(a, a) { 'use strict' }", "duplicate parameter")
	// 非简单参数表即使 sloppy 也不许重名
	expectScriptError(t, "function f(a, a, b = 1) {}", "duplicate parameter")
	expectScriptError(t, "function f(a, [a]) {}", "duplicate parameter")
}

func TestStrict_DirectiveRevalidatesFunctionName(t *testing.T) {
	parseScript(t, "(function yield() {})")
	expectScriptError(t, "(function yield() { 'use strict' })", "strict mode function")
	expectScriptError(t, "(function eval() { 'use strict' })", "strict mode function")
	expectScriptError(t, "function interface() { 'use strict' }", "strict mode function")
}

func TestStrict_ModuleIsStrict(t *testing.T) {
	expectModuleError(t, "with (o) {}", "strict mode")
	expectModuleError(t, "var eval = 1", "eval")
	expectModuleError(t, "012", "octal")
}

func TestStrict_ForceStrictOption(t *testing.T) {
	_, err := Parse("with (o) {}", Options{Strict: true})
	assert.Error(t, err)
	prog, err := Parse("f()", Options{Strict: true})
	assert.NoError(t, err)
	assert.Equal(t, "script", prog.SourceType)
}

func TestStrict_DeleteAndYield(t *testing.T) {
	expectScriptError(t, "'use strict'; delete x", "unqualified")
	expectScriptError(t, "'use strict'; f(yield)", "")
	parseScript(t, "delete x; f(yield)")
}

func TestStrict_DirectiveMustBeExact(t *testing.T) {
	// 带转义的 "use strict" 不是指令
	prog := parseScript(t, "'use \\u0073trict'; with (o) {}")
	_, isWith := prog.Body[1].(*ast.WithStatement)
	assert.True(t, isWith)
}
