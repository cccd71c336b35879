package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/js-parser/ast"
)

func classBody(t *testing.T, src string) *ast.ClassBody {
	t.Helper()
	prog := parseScript(t, src)
	decl, ok := prog.Body[0].(*ast.ClassDeclaration)
	require.True(t, ok)
	return decl.Body
}

func TestClass_Elements(t *testing.T) {
	body := classBody(t, `class A {
  constructor(x) { this.x = x }
  m() {}
  static s() {}
  get g() { return 1 }
  set g(v) {}
  *gen() {}
  async am() {}
  async *ag() {}
  [computed]() {}
  f = 1;
  bare
  static sf = 2
  static { init() }
}`)
	require.Len(t, body.Body, 13)

	ctor := body.Body[0].(*ast.MethodDefinition)
	assert.Equal(t, "constructor", ctor.MethodKind)
	static := body.Body[2].(*ast.MethodDefinition)
	assert.True(t, static.Static)
	getter := body.Body[3].(*ast.MethodDefinition)
	assert.Equal(t, "get", getter.MethodKind)
	gen := body.Body[5].(*ast.MethodDefinition)
	assert.True(t, gen.Value.Generator)
	am := body.Body[6].(*ast.MethodDefinition)
	assert.True(t, am.Value.Async)
	ag := body.Body[7].(*ast.MethodDefinition)
	assert.True(t, ag.Value.Async)
	assert.True(t, ag.Value.Generator)
	computed := body.Body[8].(*ast.MethodDefinition)
	assert.True(t, computed.Computed)

	field := body.Body[9].(*ast.PropertyDefinition)
	assert.NotNil(t, field.Value)
	bare := body.Body[10].(*ast.PropertyDefinition)
	assert.Nil(t, bare.Value)
	sf := body.Body[11].(*ast.PropertyDefinition)
	assert.True(t, sf.Static)
	_, isStaticBlock := body.Body[12].(*ast.StaticBlock)
	assert.True(t, isStaticBlock)
}

func TestClass_ConstructorRestrictions(t *testing.T) {
	expectScriptError(t, "class A { constructor() {} constructor() {} }", "one constructor")
	expectScriptError(t, "class A { *constructor() {} }", "generator")
	expectScriptError(t, "class A { async constructor() {} }", "async")
	expectScriptError(t, "class A { get constructor() {} }", "accessor")
	expectScriptError(t, "class A { 'constructor'() {} 'constructor'() {} }", "one constructor")
	// 计算键不算 constructor
	parseScript(t, "class A { ['constructor']() {} constructor() {} }")
	// 静态方法可以叫 constructor
	parseScript(t, "class A { static constructor() {} constructor() {} }")
}

func TestClass_PrototypeRestrictions(t *testing.T) {
	expectScriptError(t, "class A { static prototype() {} }", "prototype")
	expectScriptError(t, "class A { static prototype = 1 }", "prototype")
	parseScript(t, "class A { prototype() {} }")
}

func TestClass_FieldNamedConstructor(t *testing.T) {
	expectScriptError(t, "class A { constructor = 1 }", "field named 'constructor'")
	expectScriptError(t, "class A { 'constructor' }", "field named 'constructor'")
}

func TestClass_PrivateNames(t *testing.T) {
	parseScript(t, "class A { #x = 1; m() { return this.#x } }")
	parseScript(t, "class A { get #x() { return 1 } set #x(v) {} }")
	parseScript(t, "class A { static get #x() {} static set #x(v) {} }")

	expectScriptError(t, "class A { #x; #x }", "already been declared")
	expectScriptError(t, "class A { #x; #x() {} }", "already been declared")
	expectScriptError(t, "class A { get #x() {} get #x() {} }", "already been declared")
	// getter/setter 静态性不一致不可配对
	expectScriptError(t, "class A { get #x() {} static set #x(v) {} }", "already been declared")
	expectScriptError(t, "class A { #constructor }", "#constructor")
}

func TestClass_DeferredPrivateReference(t *testing.T) {
	// 解析期通过，类体闭合时延迟报错
	perr := expectScriptError(t, "class A { #x; method() { return this.#y } }", "#y is not defined")
	assert.NotNil(t, perr)

	// 嵌套类：内层引用外层的私有名合法
	parseScript(t, "class A { #x; m() { return class B { n() { return this.#x } } } }")
	// 外层引用内层的不合法
	expectScriptError(t, "class A { m() { class B { #inner } return this.#inner } }", "#inner is not defined")
}

func TestClass_HeritagePrivateScope(t *testing.T) {
	// heritage 表达式对照外层作用域校验：自己的私有名还不可见
	expectScriptError(t, "class A extends (o => o.#p) { #p }", "#p is not defined")
	// 外层类的私有名在 heritage 里可见
	parseScript(t, "class Out { #p; m() { return class In extends (o => o.#p) {} } }")
}

func TestClass_FieldInitializerRestrictions(t *testing.T) {
	expectScriptError(t, "class A { f = arguments }", "arguments")
	expectScriptError(t, "class A { static { arguments } }", "arguments")
	expectScriptError(t, "class A { static { return } }", "outside of function")
	parseScript(t, "class A { f = new.target }")
	parseScript(t, "class A { f = super.x }")
	expectScriptError(t, "class A extends B { f = super() }", "derived")
}

func TestClass_StrictBody(t *testing.T) {
	// 类体隐含严格模式
	expectScriptError(t, "class A { m() { with (o) {} } }", "strict mode")
	expectScriptError(t, "class A { m(eval) {} }", "strict mode")
	expectScriptError(t, "class let {}", "reserved")
}

func TestClass_Heritage(t *testing.T) {
	prog := parseScript(t, "class A extends mixin(B, C) {}")
	decl := prog.Body[0].(*ast.ClassDeclaration)
	_, isCall := decl.SuperClass.(*ast.CallExpression)
	assert.True(t, isCall)

	expr := firstExpression(t, parseScript(t, "(class extends B {})"))
	ce := expr.(*ast.ClassExpression)
	assert.Nil(t, ce.Id)
	assert.NotNil(t, ce.SuperClass)
}

func TestClass_KeywordsAsMemberNames(t *testing.T) {
	parseScript(t, "class A { if() {} delete() {} static() {} get() {} set() {} async() {} }")
	parseScript(t, "class A { static static() {} }")
}

func TestClass_Redeclaration(t *testing.T) {
	expectScriptError(t, "class A {}; class A {}", "already been declared")
	expectScriptError(t, "class A {}; var A", "already been declared")
}

func TestClass_MethodParamsAlwaysUnique(t *testing.T) {
	expectScriptError(t, "({ m(a, a) {} })", "duplicate parameter")
	expectScriptError(t, "class A { m(a, a) {} }", "duplicate parameter")
	// sloppy 普通函数允许
	parseScript(t, "function f(a, a) {}")
}
