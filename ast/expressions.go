package ast

// ============= 表达式节点 =============

// Identifier 标识符。既是表达式也是绑定模式。
type Identifier struct {
	Span
	Name string `json:"name"`
}

func (*Identifier) Kind() NodeKind  { return KindIdentifier }
func (*Identifier) expressionNode() {}
func (*Identifier) patternNode()    {}

// PrivateIdentifier 私有名 #x
type PrivateIdentifier struct {
	Span
	Name string `json:"name"` // 不含 #
}

func (*PrivateIdentifier) Kind() NodeKind  { return KindPrivateIdentifier }
func (*PrivateIdentifier) expressionNode() {}

// RegexLiteral 正则字面量的载荷
type RegexLiteral struct {
	Pattern string `json:"pattern"`
	Flags   string `json:"flags"`
}

// Literal 字面量。Value 为 nil、bool、float64 或 string。
// 正则字面量带 Regex，BigInt 字面量带十进制文本 BigInt。
type Literal struct {
	Span
	Value  any           `json:"value"`
	Raw    string        `json:"raw"`
	Regex  *RegexLiteral `json:"regex,omitempty"`
	BigInt string        `json:"bigint,omitempty"`
}

func (*Literal) Kind() NodeKind  { return KindLiteral }
func (*Literal) expressionNode() {}

// ThisExpression this
type ThisExpression struct {
	Span
}

func (*ThisExpression) Kind() NodeKind  { return KindThisExpression }
func (*ThisExpression) expressionNode() {}

// Super super（仅作为成员对象或调用被调方出现）
type Super struct {
	Span
}

func (*Super) Kind() NodeKind  { return KindSuper }
func (*Super) expressionNode() {}

// ArrayExpression 数组字面量。洞以 nil 元素表示。
type ArrayExpression struct {
	Span
	Elements []Expression `json:"elements"`
}

func (*ArrayExpression) Kind() NodeKind  { return KindArrayExpression }
func (*ArrayExpression) expressionNode() {}

// ObjectExpression 对象字面量。属性为 Property 或 SpreadElement。
type ObjectExpression struct {
	Span
	Properties []Node `json:"properties"`
}

func (*ObjectExpression) Kind() NodeKind  { return KindObjectExpression }
func (*ObjectExpression) expressionNode() {}

// Property 对象字面量属性或对象模式属性
type Property struct {
	Span
	Key       Expression `json:"key"`
	Value     Node       `json:"value"` // 表达式；在模式中为 Pattern
	PropKind  string     `json:"kind"`  // "init" | "get" | "set"
	Method    bool       `json:"method"`
	Shorthand bool       `json:"shorthand"`
	Computed  bool       `json:"computed"`
}

func (*Property) Kind() NodeKind { return KindProperty }

// FunctionExpression 函数表达式（也承载方法定义的函数体）
type FunctionExpression struct {
	Span
	Id        *Identifier     `json:"id"`
	Params    []Pattern       `json:"params"`
	Body      *BlockStatement `json:"body"`
	Generator bool            `json:"generator"`
	Async     bool            `json:"async"`
}

func (*FunctionExpression) Kind() NodeKind  { return KindFunctionExpression }
func (*FunctionExpression) expressionNode() {}

// ArrowFunctionExpression 箭头函数。表达式体时 Expression 为 true，
// Body 为表达式节点。
type ArrowFunctionExpression struct {
	Span
	Params     []Pattern `json:"params"`
	Body       Node      `json:"body"` // BlockStatement 或 Expression
	Expression bool      `json:"expression"`
	Async      bool      `json:"async"`
}

func (*ArrowFunctionExpression) Kind() NodeKind  { return KindArrowFunctionExpression }
func (*ArrowFunctionExpression) expressionNode() {}

// ClassExpression 类表达式
type ClassExpression struct {
	Span
	Id         *Identifier `json:"id"`
	SuperClass Expression  `json:"superClass"`
	Body       *ClassBody  `json:"body"`
}

func (*ClassExpression) Kind() NodeKind  { return KindClassExpression }
func (*ClassExpression) expressionNode() {}

// TemplateValue 模板元素的 raw/cooked 值对。无法解码时 Cooked 为 nil。
type TemplateValue struct {
	Raw    string  `json:"raw"`
	Cooked *string `json:"cooked"`
}

// TemplateElement 模板字面量的静态片段
type TemplateElement struct {
	Span
	Value TemplateValue `json:"value"`
	Tail  bool          `json:"tail"`
}

func (*TemplateElement) Kind() NodeKind { return KindTemplateElement }

// TemplateLiteral 模板字面量
type TemplateLiteral struct {
	Span
	Quasis      []*TemplateElement `json:"quasis"`
	Expressions []Expression       `json:"expressions"`
}

func (*TemplateLiteral) Kind() NodeKind  { return KindTemplateLiteral }
func (*TemplateLiteral) expressionNode() {}

// TaggedTemplateExpression 标记模板
type TaggedTemplateExpression struct {
	Span
	Tag   Expression       `json:"tag"`
	Quasi *TemplateLiteral `json:"quasi"`
}

func (*TaggedTemplateExpression) Kind() NodeKind  { return KindTaggedTemplateExpression }
func (*TaggedTemplateExpression) expressionNode() {}

// MemberExpression 成员访问。作为赋值目标时也是 Pattern。
type MemberExpression struct {
	Span
	Object   Expression `json:"object"`
	Property Expression `json:"property"` // 计算访问为任意表达式，否则 Identifier/PrivateIdentifier
	Computed bool       `json:"computed"`
	Optional bool       `json:"optional"`
}

func (*MemberExpression) Kind() NodeKind  { return KindMemberExpression }
func (*MemberExpression) expressionNode() {}
func (*MemberExpression) patternNode()    {}

// CallExpression 调用表达式
type CallExpression struct {
	Span
	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
	Optional  bool         `json:"optional"`
}

func (*CallExpression) Kind() NodeKind  { return KindCallExpression }
func (*CallExpression) expressionNode() {}

// NewExpression new 表达式
type NewExpression struct {
	Span
	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func (*NewExpression) Kind() NodeKind  { return KindNewExpression }
func (*NewExpression) expressionNode() {}

// MetaProperty new.target 或 import.meta
type MetaProperty struct {
	Span
	Meta     *Identifier `json:"meta"`
	Property *Identifier `json:"property"`
}

func (*MetaProperty) Kind() NodeKind  { return KindMetaProperty }
func (*MetaProperty) expressionNode() {}

// ImportExpression 动态 import()，第二参数为 Options
type ImportExpression struct {
	Span
	Source  Expression `json:"source"`
	Options Expression `json:"options,omitempty"`
}

func (*ImportExpression) Kind() NodeKind  { return KindImportExpression }
func (*ImportExpression) expressionNode() {}

// UpdateExpression ++ / --
type UpdateExpression struct {
	Span
	Operator string     `json:"operator"`
	Argument Expression `json:"argument"`
	Prefix   bool       `json:"prefix"`
}

func (*UpdateExpression) Kind() NodeKind  { return KindUpdateExpression }
func (*UpdateExpression) expressionNode() {}

// UnaryExpression 一元表达式
type UnaryExpression struct {
	Span
	Operator string     `json:"operator"`
	Argument Expression `json:"argument"`
	Prefix   bool       `json:"prefix"` // 恒为 true
}

func (*UnaryExpression) Kind() NodeKind  { return KindUnaryExpression }
func (*UnaryExpression) expressionNode() {}

// BinaryExpression 二元表达式。`#x in obj` 的 Left 为 PrivateIdentifier。
type BinaryExpression struct {
	Span
	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func (*BinaryExpression) Kind() NodeKind  { return KindBinaryExpression }
func (*BinaryExpression) expressionNode() {}

// LogicalExpression && || ??
type LogicalExpression struct {
	Span
	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func (*LogicalExpression) Kind() NodeKind  { return KindLogicalExpression }
func (*LogicalExpression) expressionNode() {}

// ConditionalExpression 三目表达式
type ConditionalExpression struct {
	Span
	Test       Expression `json:"test"`
	Consequent Expression `json:"consequent"`
	Alternate  Expression `json:"alternate"`
}

func (*ConditionalExpression) Kind() NodeKind  { return KindConditionalExpression }
func (*ConditionalExpression) expressionNode() {}

// AssignmentExpression 赋值表达式。Operator 为 = 且左侧为解构时，
// Left 为转换后的模式节点。
type AssignmentExpression struct {
	Span
	Operator string     `json:"operator"`
	Left     Node       `json:"left"`
	Right    Expression `json:"right"`
}

func (*AssignmentExpression) Kind() NodeKind  { return KindAssignmentExpression }
func (*AssignmentExpression) expressionNode() {}

// SequenceExpression 逗号表达式
type SequenceExpression struct {
	Span
	Expressions []Expression `json:"expressions"`
}

func (*SequenceExpression) Kind() NodeKind  { return KindSequenceExpression }
func (*SequenceExpression) expressionNode() {}

// YieldExpression yield / yield*
type YieldExpression struct {
	Span
	Argument Expression `json:"argument"`
	Delegate bool       `json:"delegate"`
}

func (*YieldExpression) Kind() NodeKind  { return KindYieldExpression }
func (*YieldExpression) expressionNode() {}

// AwaitExpression await
type AwaitExpression struct {
	Span
	Argument Expression `json:"argument"`
}

func (*AwaitExpression) Kind() NodeKind  { return KindAwaitExpression }
func (*AwaitExpression) expressionNode() {}

// SpreadElement 展开元素（表达式位置；模式中对应 RestElement）
type SpreadElement struct {
	Span
	Argument Expression `json:"argument"`
}

func (*SpreadElement) Kind() NodeKind  { return KindSpreadElement }
func (*SpreadElement) expressionNode() {}

// ChainExpression 包裹含 ?. 的成员/调用链
type ChainExpression struct {
	Span
	Expression Expression `json:"expression"`
}

func (*ChainExpression) Kind() NodeKind  { return KindChainExpression }
func (*ChainExpression) expressionNode() {}
