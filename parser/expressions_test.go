package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/js-parser/ast"
)

func TestExpr_Precedence(t *testing.T) {
	expr := firstExpression(t, parseScript(t, "2 + 3 * 4"))
	add := expr.(*ast.BinaryExpression)
	assert.Equal(t, "+", add.Operator)
	mul := add.Right.(*ast.BinaryExpression)
	assert.Equal(t, "*", mul.Operator)

	// 括号改变嵌套
	expr = firstExpression(t, parseScript(t, "(2 + 3) * 4"))
	mul = expr.(*ast.BinaryExpression)
	assert.Equal(t, "*", mul.Operator)
	add = mul.Left.(*ast.BinaryExpression)
	assert.Equal(t, "+", add.Operator)
}

func TestExpr_ExponentRightAssociative(t *testing.T) {
	expr := firstExpression(t, parseScript(t, "a ** b ** c"))
	outer := expr.(*ast.BinaryExpression)
	assert.Equal(t, "**", outer.Operator)
	_, leftIsIdent := outer.Left.(*ast.Identifier)
	assert.True(t, leftIsIdent)
	inner := outer.Right.(*ast.BinaryExpression)
	assert.Equal(t, "**", inner.Operator)
}

func TestExpr_UnaryBeforeExponentRequiresParens(t *testing.T) {
	expectScriptError(t, "-a ** b", "parenthesized")
	expectScriptError(t, "typeof a ** b", "parenthesized")
	parseScript(t, "(-a) ** b")
	parseScript(t, "-(a ** b)")
	// 前缀自增不是一元表达式，无需括号
	parseScript(t, "++a ** b")
}

func TestExpr_AwaitBeforeExponent(t *testing.T) {
	expectScriptError(t, "async function f() { await a ** b }", "parenthesized")
	parseScript(t, "async function f() { (await a) ** b }")
}

func TestExpr_AssignmentRightAssociative(t *testing.T) {
	expr := firstExpression(t, parseScript(t, "a = b = c"))
	outer := expr.(*ast.AssignmentExpression)
	inner := outer.Right.(*ast.AssignmentExpression)
	assert.Equal(t, "=", inner.Operator)
}

func TestExpr_CompoundAssignmentTargets(t *testing.T) {
	parseScript(t, "a += 1")
	parseScript(t, "a.b **= 2")
	parseScript(t, "a &&= b")
	parseScript(t, "a ??= b")
	expectScriptError(t, "{a} += x", "")
	expectScriptError(t, "a + b = c", "invalid assignment target")
	expectScriptError(t, "a?.b = 1", "")
}

func TestExpr_SequenceExpression(t *testing.T) {
	expr := firstExpression(t, parseScript(t, "a, b, c"))
	seq := expr.(*ast.SequenceExpression)
	assert.Len(t, seq.Expressions, 3)
}

func TestExpr_Conditional(t *testing.T) {
	expr := firstExpression(t, parseScript(t, "a ? b = 1 : c, d"))
	seq := expr.(*ast.SequenceExpression)
	require.Len(t, seq.Expressions, 2)
	_, ok := seq.Expressions[0].(*ast.ConditionalExpression)
	assert.True(t, ok)
}

func TestExpr_CoalesceMixing(t *testing.T) {
	expectScriptError(t, "a ?? b || c", "cannot mix")
	expectScriptError(t, "a || b ?? c", "cannot mix")
	expectScriptError(t, "a && b ?? c", "cannot mix")
	parseScript(t, "(a ?? b) || c")
	parseScript(t, "a ?? (b || c)")
	parseScript(t, "a ?? b ?? c")
	parseScript(t, "a || b || c")
}

func TestExpr_OptionalChaining(t *testing.T) {
	expr := firstExpression(t, parseScript(t, "a?.b.c"))
	chain := expr.(*ast.ChainExpression)
	outer := chain.Expression.(*ast.MemberExpression)
	assert.False(t, outer.Optional)
	inner := outer.Object.(*ast.MemberExpression)
	assert.True(t, inner.Optional)

	expr = firstExpression(t, parseScript(t, "a?.(1)"))
	chain = expr.(*ast.ChainExpression)
	call := chain.Expression.(*ast.CallExpression)
	assert.True(t, call.Optional)

	// 括号截断链
	expr = firstExpression(t, parseScript(t, "(a?.b).c"))
	member := expr.(*ast.MemberExpression)
	_, isChain := member.Object.(*ast.ChainExpression)
	assert.True(t, isChain)
}

func TestExpr_OptionalChainRestrictions(t *testing.T) {
	expectScriptError(t, "a?.b = 1", "")
	expectScriptError(t, "a?.b++", "")
	expectScriptError(t, "a?.b`tpl`", "optional chain")
	expectScriptError(t, "new a?.b()", "optional chaining")
	expectScriptError(t, "super?.x", "")
}

func TestExpr_UpdateExpressions(t *testing.T) {
	expr := firstExpression(t, parseScript(t, "a++"))
	upd := expr.(*ast.UpdateExpression)
	assert.False(t, upd.Prefix)

	expr = firstExpression(t, parseScript(t, "--a.b"))
	upd = expr.(*ast.UpdateExpression)
	assert.True(t, upd.Prefix)

	expectScriptError(t, "1++", "")
	expectScriptError(t, "(a + b)++", "")
}

func TestExpr_PostfixNoLineTerminator(t *testing.T) {
	// a 后换行再 ++b：后缀解析被 ASI 阻断
	prog := parseScript(t, "a\n++b")
	require.Len(t, prog.Body, 2)
	upd := prog.Body[1].(*ast.ExpressionStatement).Expression.(*ast.UpdateExpression)
	assert.True(t, upd.Prefix)
}

func TestExpr_Delete(t *testing.T) {
	parseScript(t, "delete a.b")
	parseScript(t, "delete a")
	expectScriptError(t, "'use strict'; delete a", "unqualified")
	expectScriptError(t, "class A { #x; m() { delete this.#x } }", "deleted")
}

func TestExpr_NewExpressions(t *testing.T) {
	expr := firstExpression(t, parseScript(t, "new A"))
	ne := expr.(*ast.NewExpression)
	assert.Empty(t, ne.Arguments)

	expr = firstExpression(t, parseScript(t, "new a.b(1, 2)"))
	ne = expr.(*ast.NewExpression)
	require.Len(t, ne.Arguments, 2)
	_, isMember := ne.Callee.(*ast.MemberExpression)
	assert.True(t, isMember)

	// new new X()() 内层先拿到第一组实参
	expr = firstExpression(t, parseScript(t, "new new X()()"))
	outer := expr.(*ast.NewExpression)
	_, isNew := outer.Callee.(*ast.NewExpression)
	assert.True(t, isNew)

	// new X().m() 调用挂在 new 之外
	expr = firstExpression(t, parseScript(t, "new X().m()"))
	_, isCall := expr.(*ast.CallExpression)
	assert.True(t, isCall)
}

func TestExpr_NewTarget(t *testing.T) {
	prog := parseScript(t, "function f() { return new.target }")
	ret := prog.Body[0].(*ast.FunctionDeclaration).Body.Body[0].(*ast.ReturnStatement)
	meta := ret.Argument.(*ast.MetaProperty)
	assert.Equal(t, "new", meta.Meta.Name)
	assert.Equal(t, "target", meta.Property.Name)

	expectScriptError(t, "new.target", "new.target")
}

func TestExpr_DynamicImport(t *testing.T) {
	expr := firstExpression(t, parseScript(t, "import('mod')"))
	imp := expr.(*ast.ImportExpression)
	assert.Nil(t, imp.Options)

	expr = firstExpression(t, parseModule(t, "import('mod', { with: { type: 'json' } })"))
	imp = expr.(*ast.ImportExpression)
	assert.NotNil(t, imp.Options)
}

func TestExpr_ImportMeta(t *testing.T) {
	expr := firstExpression(t, parseModule(t, "import.meta.url"))
	member := expr.(*ast.MemberExpression)
	_, isMeta := member.Object.(*ast.MetaProperty)
	assert.True(t, isMeta)

	expectScriptError(t, "import.meta", "module")
}

func TestExpr_TemplateLiterals(t *testing.T) {
	expr := firstExpression(t, parseScript(t, "`a${x}b${y}c`"))
	tpl := expr.(*ast.TemplateLiteral)
	require.Len(t, tpl.Quasis, 3)
	require.Len(t, tpl.Expressions, 2)
	assert.Equal(t, "a", *tpl.Quasis[0].Value.Cooked)
	assert.Equal(t, "a", tpl.Quasis[0].Value.Raw)
	assert.False(t, tpl.Quasis[0].Tail)
	assert.True(t, tpl.Quasis[2].Tail)
}

func TestExpr_TaggedTemplates(t *testing.T) {
	expr := firstExpression(t, parseScript(t, "tag`a${x}b`"))
	tagged := expr.(*ast.TaggedTemplateExpression)
	_, isIdent := tagged.Tag.(*ast.Identifier)
	assert.True(t, isIdent)

	// 标记模板容忍无效转义：cooked 为 null
	expr = firstExpression(t, parseScript(t, "tag`\\u{ZZ}`"))
	tagged = expr.(*ast.TaggedTemplateExpression)
	assert.Nil(t, tagged.Quasi.Quasis[0].Value.Cooked)

	// 未标记模板不容忍
	expectScriptError(t, "`\\u{ZZ}`", "invalid escape")
}

func TestExpr_ObjectLiterals(t *testing.T) {
	expr := firstExpression(t, parseScript(t, "({a: 1, 'b': 2, 3: c, [k]: d, e, m() {}, get g() { return 1 }, set g(v) {}, ...rest})"))
	obj := expr.(*ast.ObjectExpression)
	require.Len(t, obj.Properties, 9)

	shorthand := obj.Properties[4].(*ast.Property)
	assert.True(t, shorthand.Shorthand)
	method := obj.Properties[5].(*ast.Property)
	assert.True(t, method.Method)
	getter := obj.Properties[6].(*ast.Property)
	assert.Equal(t, "get", getter.PropKind)
	_, isSpread := obj.Properties[8].(*ast.SpreadElement)
	assert.True(t, isSpread)
}

func TestExpr_ObjectDuplicateProto(t *testing.T) {
	expectScriptError(t, "({__proto__: a, __proto__: b})", "__proto__")
	expectScriptError(t, "({__proto__: a, '__proto__': b})", "__proto__")
	// 解构目标中允许
	parseScript(t, "({__proto__: a, __proto__: b} = x)")
	// 简写、方法与计算键不参与判重
	parseScript(t, "({__proto__: a, ['__proto__']: b})")
	parseScript(t, "({__proto__, __proto__: a})")
}

func TestExpr_CoverInitializedName(t *testing.T) {
	expectScriptError(t, "({a = 1})", "destructuring")
	expectScriptError(t, "f({a = 1})", "destructuring")
	expectScriptError(t, "x = [{a = 1}.y]", "destructuring")
	parseScript(t, "({a = 1} = x)")
	parseScript(t, "[{a = 1}] = x")
	parseScript(t, "({a = 1}) => a")
}

func TestExpr_Yield(t *testing.T) {
	prog := parseScript(t, "function* g() { yield; yield 1; yield* inner() }")
	body := prog.Body[0].(*ast.FunctionDeclaration).Body.Body
	require.Len(t, body, 3)
	y0 := body[0].(*ast.ExpressionStatement).Expression.(*ast.YieldExpression)
	assert.Nil(t, y0.Argument)
	y1 := body[1].(*ast.ExpressionStatement).Expression.(*ast.YieldExpression)
	assert.NotNil(t, y1.Argument)
	y2 := body[2].(*ast.ExpressionStatement).Expression.(*ast.YieldExpression)
	assert.True(t, y2.Delegate)

	// 换行阻断参数
	prog = parseScript(t, "function* g() { yield\n1 }")
	body = prog.Body[0].(*ast.FunctionDeclaration).Body.Body
	require.Len(t, body, 2)

	// 生成器形参默认值里禁止 yield 表达式
	expectScriptError(t, "function* g(a = yield) {}", "yield")
	// sloppy 非生成器中 yield 是普通标识符
	parseScript(t, "var yield = 1; f(yield)")
}

func TestExpr_Await(t *testing.T) {
	prog := parseScript(t, "async function f() { await g() }")
	body := prog.Body[0].(*ast.FunctionDeclaration).Body.Body
	_, isAwait := body[0].(*ast.ExpressionStatement).Expression.(*ast.AwaitExpression)
	assert.True(t, isAwait)

	// 模块顶层 await
	prog = parseModule(t, "await g()")
	_, isAwait = prog.Body[0].(*ast.ExpressionStatement).Expression.(*ast.AwaitExpression)
	assert.True(t, isAwait)

	// async 形参里禁止 await 表达式和 await 形参名
	expectScriptError(t, "async function f(a = await b) {}", "await")
	expectScriptError(t, "async function f(await) {}", "await")
	expectScriptError(t, "async (await) => 1", "await")
	// 模块中 await 不能作标识符
	expectModuleError(t, "var await = 1", "await")
	// sloppy 脚本中 await 是普通标识符
	parseScript(t, "var await = 1")
}

func TestExpr_ArrowFunctions(t *testing.T) {
	expr := firstExpression(t, parseScript(t, "x => x * 2"))
	arrow := expr.(*ast.ArrowFunctionExpression)
	assert.True(t, arrow.Expression)
	require.Len(t, arrow.Params, 1)

	expr = firstExpression(t, parseScript(t, "(a, {b}, ...c) => { return a }"))
	arrow = expr.(*ast.ArrowFunctionExpression)
	assert.False(t, arrow.Expression)
	require.Len(t, arrow.Params, 3)

	expr = firstExpression(t, parseScript(t, "async (a) => a"))
	arrow = expr.(*ast.ArrowFunctionExpression)
	assert.True(t, arrow.Async)

	expr = firstExpression(t, parseScript(t, "async x => x"))
	arrow = expr.(*ast.ArrowFunctionExpression)
	assert.True(t, arrow.Async)

	// () 后必须同一行跟 =>
	expectScriptError(t, "()", "")
	prog := parseScript(t, "async\nx => x")
	// ASI：async 自成一句，x => x 是第二句
	require.Len(t, prog.Body, 2)
}

func TestExpr_ArrowParamRules(t *testing.T) {
	expectScriptError(t, "(a, a) => 1", "duplicate parameter")
	expectScriptError(t, "(a, ...b, c) => 1", "")
	expectScriptError(t, "(...a = 1) => 1", "")
	parseScript(t, "({a = 1, b: [c]}, d = 2) => a + c + d")
}

func TestExpr_ArrowBlockBodyASI(t *testing.T) {
	// 块体箭头函数后换行的 ( 不是调用
	prog := parseScript(t, "let f = () => {}\n(1)")
	require.Len(t, prog.Body, 2)

	// 同一行则直接报错（箭头函数不能当调用目标）
	expectScriptError(t, "let f = () => {} (1)", "")
}

func TestExpr_AsyncCallVersusArrow(t *testing.T) {
	// async(…) 是普通调用
	expr := firstExpression(t, parseScript(t, "async(1, 2)"))
	_, isCall := expr.(*ast.CallExpression)
	assert.True(t, isCall)

	expr = firstExpression(t, parseScript(t, "async(a) => a"))
	_, isArrow := expr.(*ast.ArrowFunctionExpression)
	assert.True(t, isArrow)
}

func TestExpr_PrivateIn(t *testing.T) {
	parseScript(t, "class A { #x; has(o) { return #x in o } }")
	expectScriptError(t, "class A { #x; #y; m(o) { return #x in #y in o } }", "")
	expectScriptError(t, "class A { #x; m(o) { return #x in x => x } }", "parenthesized")
	parseScript(t, "class A { #x; m(o) { return #x in (x => x) }}")
	expectScriptError(t, "#x in o", "")
}

func TestExpr_SuperRestrictions(t *testing.T) {
	parseScript(t, "class A extends B { constructor() { super(); super.x = 1 } }")
	parseScript(t, "class A { m() { return super.x } }")
	parseScript(t, "({ m() { return super.x } })")
	expectScriptError(t, "class A { constructor() { super() } }", "derived")
	expectScriptError(t, "function f() { super.x }", "")
	expectScriptError(t, "super.x", "")
	expectScriptError(t, "class A extends B { constructor() { super } }", "")
}

func TestExpr_RegexLiteral(t *testing.T) {
	expr := firstExpression(t, parseScript(t, "/ab+c/gi"))
	lit := expr.(*ast.Literal)
	require.NotNil(t, lit.Regex)
	assert.Equal(t, "ab+c", lit.Regex.Pattern)
	assert.Equal(t, "gi", lit.Regex.Flags)
	assert.Equal(t, "/ab+c/gi", lit.Raw)
}

func TestExpr_BigIntLiteral(t *testing.T) {
	expr := firstExpression(t, parseScript(t, "123n"))
	lit := expr.(*ast.Literal)
	assert.Equal(t, "123", lit.BigInt)
	assert.Equal(t, "123n", lit.Raw)
}

func TestExpr_ParenthesizedAssignTargets(t *testing.T) {
	parseScript(t, "(a) = 1")
	parseScript(t, "(a.b) = 1")
	expectScriptError(t, "(a + b) = 1", "invalid assignment target")
}
