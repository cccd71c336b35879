package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/js-parser/ast"
)

func TestStmt_LetDisambiguation(t *testing.T) {
	// let [ 在语句起始处永远是声明
	decl := parseScript(t, "let [a] = x").Body[0].(*ast.VariableDeclaration)
	assert.Equal(t, "let", decl.DeclKind)

	// let 作为普通标识符
	prog := parseScript(t, "let = 1")
	_, isAssign := prog.Body[0].(*ast.ExpressionStatement).Expression.(*ast.AssignmentExpression)
	assert.True(t, isAssign)

	prog = parseScript(t, "let(x)")
	_, isCall := prog.Body[0].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	assert.True(t, isCall)

	// let[x] 在语句起始是声明而非下标
	expectScriptError(t, "while (0) let [a] = x", "single-statement")

	// 语句专用上下文 + 跨行：ASI 把 let 留作标识符表达式
	prog = parseScript(t, "while (0) let\nx = 1")
	require.Len(t, prog.Body, 2)

	// 不跨行则是被拒绝的词法声明
	expectScriptError(t, "while (0) let x = 1", "single-statement")

	// 转义的 let 永远不是声明关键字
	expectScriptError(t, "l\\u0065t x = 1", "")
}

func TestStmt_SingleStatementContexts(t *testing.T) {
	expectScriptError(t, "if (a) const x = 1", "single-statement")
	expectScriptError(t, "if (a) class C {}", "single-statement")
	expectScriptError(t, "while (a) function* g() {}", "single-statement")
	expectScriptError(t, "if (a) async function f() {}", "single-statement")
	expectScriptError(t, "'use strict'; if (a) function f() {}", "strict")

	// AnnexB：sloppy 模式允许普通函数声明
	prog := parseScript(t, "if (a) function f() {}")
	ifStmt := prog.Body[0].(*ast.IfStatement)
	_, isFunc := ifStmt.Consequent.(*ast.FunctionDeclaration)
	assert.True(t, isFunc)

	// 它不进入词法声明集合，与 let 不冲突
	parseScript(t, "if (a) function f() {}\nlet f = 1")
}

func TestStmt_VarHoistingConflicts(t *testing.T) {
	expectScriptError(t, "let x; { var x }", "already been declared")
	expectScriptError(t, "{ let x; { var x } }", "already been declared")
	parseScript(t, "var x; { let x }")
	parseScript(t, "{ let x } var x")
	parseScript(t, "function f() { var x; var x }")
}

func TestStmt_FunctionRedeclaration(t *testing.T) {
	// 顶层函数是 var 作用域的
	parseScript(t, "function f() {} function f() {}")
	parseScript(t, "function f() {} var f")
	expectScriptError(t, "function f() {} let f", "already been declared")
	// 块级：sloppy 容忍普通函数同名（AnnexB）
	parseScript(t, "{ function f() {} function f() {} }")
	expectScriptError(t, "'use strict'; { function f() {} function f() {} }", "already been declared")
	expectScriptError(t, "{ function* f() {} function* f() {} }", "already been declared")
	// 顶层函数声明是 var 作用域的，严格模式也可重复；模块顶层则是词法的
	parseScript(t, "'use strict'; function f() {} function f() {}")
	expectModuleError(t, "function f() {} function f() {}", "already been declared")
}

func TestStmt_Labels(t *testing.T) {
	parseScript(t, "outer: for (;;) { continue outer }")
	parseScript(t, "outer: inner: for (;;) { continue outer }")
	parseScript(t, "block: { break block }")
	expectScriptError(t, "block: { continue block }", "iteration")
	expectScriptError(t, "for (;;) { continue missing }", "undefined label")
	expectScriptError(t, "x: x: for (;;) {}", "already been declared")
	expectScriptError(t, "continue", "outside of a loop")
	expectScriptError(t, "break", "outside of a loop")
	parseScript(t, "for (;;) break")
	parseScript(t, "switch (x) { case 1: break }")
}

func TestStmt_LabelNotCrossingFunctions(t *testing.T) {
	expectScriptError(t, "outer: for (;;) { function f() { break outer } }", "undefined label")
	expectScriptError(t, "outer: for (;;) { const f = () => { continue outer } }", "undefined label")
}

func TestStmt_Switch(t *testing.T) {
	prog := parseScript(t, "switch (x) { case 1: f(); break; default: g() }")
	sw := prog.Body[0].(*ast.SwitchStatement)
	require.Len(t, sw.Cases, 2)
	assert.Nil(t, sw.Cases[1].Test)

	expectScriptError(t, "switch (x) { default: a; default: b }", "default")
	// case 子句共享一个块作用域
	expectScriptError(t, "switch (x) { case 1: let a; case 2: let a }", "already been declared")
}

func TestStmt_TryCatch(t *testing.T) {
	prog := parseScript(t, "try { f() } catch (e) { g(e) } finally { h() }")
	try := prog.Body[0].(*ast.TryStatement)
	assert.NotNil(t, try.Handler)
	assert.NotNil(t, try.Finalizer)

	// 可省略绑定
	prog = parseScript(t, "try { f() } catch { g() }")
	assert.Nil(t, prog.Body[0].(*ast.TryStatement).Handler.Param)

	expectScriptError(t, "try { f() }", "catch")
	expectScriptError(t, "try {} catch (e) { let e }", "already been declared")
	expectScriptError(t, "try {} catch ([a, a]) {}", "duplicate catch parameter")
	// AnnexB：sloppy 简单参数允许 var 重声明
	parseScript(t, "try {} catch (e) { var e }")
	expectScriptError(t, "try {} catch ([e]) { var e }", "already been declared")
}

func TestStmt_ForLoops(t *testing.T) {
	prog := parseScript(t, "for (let i = 0, n = 10; i < n; i++) f(i)")
	forStmt := prog.Body[0].(*ast.ForStatement)
	assert.NotNil(t, forStmt.Init)
	assert.NotNil(t, forStmt.Test)
	assert.NotNil(t, forStmt.Update)

	prog = parseScript(t, "for (;;) {}")
	forStmt = prog.Body[0].(*ast.ForStatement)
	assert.Nil(t, forStmt.Init)

	expectScriptError(t, "for (const x;;) {}", "missing initializer")
	expectScriptError(t, "for (let [a];;) {}", "missing initializer")
}

func TestStmt_ForIn(t *testing.T) {
	prog := parseScript(t, "for (const k in obj) f(k)")
	forIn := prog.Body[0].(*ast.ForInStatement)
	_, isDecl := forIn.Left.(*ast.VariableDeclaration)
	assert.True(t, isDecl)

	// 表达式 LHS 转换为模式
	prog = parseScript(t, "for ({a, b} in obj) {}")
	forIn = prog.Body[0].(*ast.ForInStatement)
	_, isPattern := forIn.Left.(*ast.ObjectPattern)
	assert.True(t, isPattern)

	// AnnexB：sloppy 的 for-in var 允许初始化器
	parseScript(t, "for (var x = 1 in obj) {}")
	expectScriptError(t, "'use strict'; for (var x = 1 in obj) {}", "initializer")
	expectScriptError(t, "for (let x = 1 in obj) {}", "initializer")
	expectScriptError(t, "for (var [a] = b in obj) {}", "initializer")
	expectScriptError(t, "for (let a, b in obj) {}", "one binding")
}

func TestStmt_ForOf(t *testing.T) {
	prog := parseScript(t, "for (const x of xs) f(x)")
	forOf := prog.Body[0].(*ast.ForOfStatement)
	assert.False(t, forOf.Await)

	expectScriptError(t, "for (var x = 1 of xs) {}", "initializer")
	// `of` 作为普通标识符仍可用
	parseScript(t, "for (of of of) {}")

	// async 不能裸作 for-of 的 LHS
	expectScriptError(t, "for (async of xs) {}", "async")
	parseScript(t, "for (async.x of xs) {}")
}

func TestStmt_ForAwait(t *testing.T) {
	prog := parseScript(t, "async function f() { for await (const x of xs) {} }")
	body := prog.Body[0].(*ast.FunctionDeclaration).Body.Body
	forOf := body[0].(*ast.ForOfStatement)
	assert.True(t, forOf.Await)

	parseModule(t, "for await (const x of xs) {}")
	expectScriptError(t, "function f() { for await (const x of xs) {} }", "async")
	expectScriptError(t, "async function f() { for await (x;;) {} }", "for-of")
}

func TestStmt_ForHeadScopeConflict(t *testing.T) {
	parseScript(t, "for (let i = 0; i < 3; i++) { var j = i }")
	expectScriptError(t, "for (let i = 0; ; ) { var i = 1 }", "already been declared")
	expectScriptError(t, "for (const k in o) { var k }", "already been declared")
}

func TestStmt_InOperatorInForInit(t *testing.T) {
	// for 头 init 中 in 不是操作符：var x = a 之后的 in 开启 for-in（AnnexB）
	prog := parseScript(t, "for (var x = a in b) {}")
	_, isForIn := prog.Body[0].(*ast.ForInStatement)
	assert.True(t, isForIn)

	// 括号里恢复
	prog = parseScript(t, "for (var x = (a in b);;) {}")
	decl := prog.Body[0].(*ast.ForStatement).Init.(*ast.VariableDeclaration)
	_, isBin := decl.Declarations[0].Init.(*ast.BinaryExpression)
	assert.True(t, isBin)
}

func TestStmt_RestrictedProductions(t *testing.T) {
	expectScriptError(t, "throw\nx", "newline")
	expectScriptError(t, "return 1", "outside of function")

	// break/continue 的标签不跨行
	prog := parseScript(t, "outer: for (;;) { break\nouter }")
	forBody := prog.Body[0].(*ast.LabeledStatement).Body.(*ast.ForStatement).Body.(*ast.BlockStatement)
	require.Len(t, forBody.Body, 2)
	br := forBody.Body[0].(*ast.BreakStatement)
	assert.Nil(t, br.Label)
}

func TestStmt_ASIStatementStarters(t *testing.T) {
	// 无换行也允许在新语句关键字前自动补分号
	parseScript(t, "x = 1 var y")
	parseScript(t, "f() class C {}")
}

func TestStmt_WithStatement(t *testing.T) {
	prog := parseScript(t, "with (o) { f() }")
	_, isWith := prog.Body[0].(*ast.WithStatement)
	assert.True(t, isWith)
	expectScriptError(t, "'use strict'; with (o) {}", "strict mode")
	expectModuleError(t, "with (o) {}", "strict mode")
}

func TestStmt_DebuggerAndEmpty(t *testing.T) {
	prog := parseScript(t, "debugger; ;")
	_, isDebugger := prog.Body[0].(*ast.DebuggerStatement)
	assert.True(t, isDebugger)
	_, isEmpty := prog.Body[1].(*ast.EmptyStatement)
	assert.True(t, isEmpty)
}

func TestStmt_VariableDeclarationErrors(t *testing.T) {
	expectScriptError(t, "const x", "missing initializer")
	expectScriptError(t, "let [a]", "missing initializer")
	expectScriptError(t, "let x, x", "already been declared")
	expectScriptError(t, "let let = 1", "let")
	parseScript(t, "var let = 1")
	expectScriptError(t, "'use strict'; var let = 1", "reserved")
}

func TestStmt_Destructuring(t *testing.T) {
	prog := parseScript(t, "let {a, b: {c}, d = 1, ...rest} = obj")
	decl := prog.Body[0].(*ast.VariableDeclaration)
	pat := decl.Declarations[0].Id.(*ast.ObjectPattern)
	require.Len(t, pat.Properties, 4)
	_, isRest := pat.Properties[3].(*ast.RestElement)
	assert.True(t, isRest)

	prog = parseScript(t, "let [a, , [b], ...c] = xs")
	arr := prog.Body[0].(*ast.VariableDeclaration).Declarations[0].Id.(*ast.ArrayPattern)
	require.Len(t, arr.Elements, 4)
	assert.Nil(t, arr.Elements[1])

	expectScriptError(t, "let [...a, b] = xs", "last")
	expectScriptError(t, "let [...a = 1] = xs", "default")
	expectScriptError(t, "let {...{a}} = x", "")
}
