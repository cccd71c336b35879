package ast

// ============= 语句节点 =============

// ExpressionStatement 表达式语句。位于指令序言中的字符串语句带 Directive。
type ExpressionStatement struct {
	Span
	Expression Expression `json:"expression"`
	Directive  string     `json:"directive,omitempty"`
}

func (*ExpressionStatement) Kind() NodeKind { return KindExpressionStatement }
func (*ExpressionStatement) statementNode() {}

// BlockStatement 块语句
type BlockStatement struct {
	Span
	Body []Statement `json:"body"`
}

func (*BlockStatement) Kind() NodeKind { return KindBlockStatement }
func (*BlockStatement) statementNode() {}

// EmptyStatement 空语句
type EmptyStatement struct {
	Span
}

func (*EmptyStatement) Kind() NodeKind { return KindEmptyStatement }
func (*EmptyStatement) statementNode() {}

// DebuggerStatement debugger 语句
type DebuggerStatement struct {
	Span
}

func (*DebuggerStatement) Kind() NodeKind { return KindDebuggerStatement }
func (*DebuggerStatement) statementNode() {}

// WithStatement with 语句（严格模式禁止）
type WithStatement struct {
	Span
	Object Expression `json:"object"`
	Body   Statement  `json:"body"`
}

func (*WithStatement) Kind() NodeKind { return KindWithStatement }
func (*WithStatement) statementNode() {}

// ReturnStatement return 语句
type ReturnStatement struct {
	Span
	Argument Expression `json:"argument"`
}

func (*ReturnStatement) Kind() NodeKind { return KindReturnStatement }
func (*ReturnStatement) statementNode() {}

// LabeledStatement 标签语句
type LabeledStatement struct {
	Span
	Label *Identifier `json:"label"`
	Body  Statement   `json:"body"`
}

func (*LabeledStatement) Kind() NodeKind { return KindLabeledStatement }
func (*LabeledStatement) statementNode() {}

// BreakStatement break 语句
type BreakStatement struct {
	Span
	Label *Identifier `json:"label"`
}

func (*BreakStatement) Kind() NodeKind { return KindBreakStatement }
func (*BreakStatement) statementNode() {}

// ContinueStatement continue 语句
type ContinueStatement struct {
	Span
	Label *Identifier `json:"label"`
}

func (*ContinueStatement) Kind() NodeKind { return KindContinueStatement }
func (*ContinueStatement) statementNode() {}

// IfStatement if 语句
type IfStatement struct {
	Span
	Test       Expression `json:"test"`
	Consequent Statement  `json:"consequent"`
	Alternate  Statement  `json:"alternate"`
}

func (*IfStatement) Kind() NodeKind { return KindIfStatement }
func (*IfStatement) statementNode() {}

// SwitchStatement switch 语句
type SwitchStatement struct {
	Span
	Discriminant Expression    `json:"discriminant"`
	Cases        []*SwitchCase `json:"cases"`
}

func (*SwitchStatement) Kind() NodeKind { return KindSwitchStatement }
func (*SwitchStatement) statementNode() {}

// SwitchCase 一个 case 或 default 子句。default 的 Test 为 nil。
type SwitchCase struct {
	Span
	Test       Expression  `json:"test"`
	Consequent []Statement `json:"consequent"`
}

func (*SwitchCase) Kind() NodeKind { return KindSwitchCase }

// ThrowStatement throw 语句
type ThrowStatement struct {
	Span
	Argument Expression `json:"argument"`
}

func (*ThrowStatement) Kind() NodeKind { return KindThrowStatement }
func (*ThrowStatement) statementNode() {}

// TryStatement try 语句
type TryStatement struct {
	Span
	Block     *BlockStatement `json:"block"`
	Handler   *CatchClause    `json:"handler"`
	Finalizer *BlockStatement `json:"finalizer"`
}

func (*TryStatement) Kind() NodeKind { return KindTryStatement }
func (*TryStatement) statementNode() {}

// CatchClause catch 子句。无参 catch 的 Param 为 nil。
type CatchClause struct {
	Span
	Param Pattern         `json:"param"`
	Body  *BlockStatement `json:"body"`
}

func (*CatchClause) Kind() NodeKind { return KindCatchClause }

// WhileStatement while 循环
type WhileStatement struct {
	Span
	Test Expression `json:"test"`
	Body Statement  `json:"body"`
}

func (*WhileStatement) Kind() NodeKind { return KindWhileStatement }
func (*WhileStatement) statementNode() {}

// DoWhileStatement do-while 循环
type DoWhileStatement struct {
	Span
	Body Statement  `json:"body"`
	Test Expression `json:"test"`
}

func (*DoWhileStatement) Kind() NodeKind { return KindDoWhileStatement }
func (*DoWhileStatement) statementNode() {}

// ForStatement 经典 for 循环。Init 为 VariableDeclaration 或 Expression。
type ForStatement struct {
	Span
	Init   Node       `json:"init"`
	Test   Expression `json:"test"`
	Update Expression `json:"update"`
	Body   Statement  `json:"body"`
}

func (*ForStatement) Kind() NodeKind { return KindForStatement }
func (*ForStatement) statementNode() {}

// ForInStatement for-in 循环。Left 为 VariableDeclaration 或 Pattern。
type ForInStatement struct {
	Span
	Left  Node       `json:"left"`
	Right Expression `json:"right"`
	Body  Statement  `json:"body"`
}

func (*ForInStatement) Kind() NodeKind { return KindForInStatement }
func (*ForInStatement) statementNode() {}

// ForOfStatement for-of 循环
type ForOfStatement struct {
	Span
	Await bool       `json:"await"`
	Left  Node       `json:"left"`
	Right Expression `json:"right"`
	Body  Statement  `json:"body"`
}

func (*ForOfStatement) Kind() NodeKind { return KindForOfStatement }
func (*ForOfStatement) statementNode() {}

// ============= 声明节点 =============

// VariableDeclaration var/let/const 声明
type VariableDeclaration struct {
	Span
	Declarations []*VariableDeclarator `json:"declarations"`
	DeclKind     string                `json:"kind"` // "var" | "let" | "const"
}

func (*VariableDeclaration) Kind() NodeKind { return KindVariableDeclaration }
func (*VariableDeclaration) statementNode() {}

// VariableDeclarator 单个声明符
type VariableDeclarator struct {
	Span
	Id   Pattern    `json:"id"`
	Init Expression `json:"init"`
}

func (*VariableDeclarator) Kind() NodeKind { return KindVariableDeclarator }

// FunctionDeclaration 函数声明
type FunctionDeclaration struct {
	Span
	Id        *Identifier     `json:"id"` // export default 的匿名函数为 nil
	Params    []Pattern       `json:"params"`
	Body      *BlockStatement `json:"body"`
	Generator bool            `json:"generator"`
	Async     bool            `json:"async"`
}

func (*FunctionDeclaration) Kind() NodeKind { return KindFunctionDeclaration }
func (*FunctionDeclaration) statementNode() {}

// ClassDeclaration 类声明
type ClassDeclaration struct {
	Span
	Id         *Identifier `json:"id"` // export default 的匿名类为 nil
	SuperClass Expression  `json:"superClass"`
	Body       *ClassBody  `json:"body"`
}

func (*ClassDeclaration) Kind() NodeKind { return KindClassDeclaration }
func (*ClassDeclaration) statementNode() {}

// ClassBody 类体，元素为 MethodDefinition、PropertyDefinition 或 StaticBlock
type ClassBody struct {
	Span
	Body []Node `json:"body"`
}

func (*ClassBody) Kind() NodeKind { return KindClassBody }

// MethodDefinition 方法定义
type MethodDefinition struct {
	Span
	Key        Expression          `json:"key"` // 计算键为任意表达式，否则 Identifier/Literal/PrivateIdentifier
	Value      *FunctionExpression `json:"value"`
	MethodKind string              `json:"kind"` // "constructor" | "method" | "get" | "set"
	Computed   bool                `json:"computed"`
	Static     bool                `json:"static"`
}

func (*MethodDefinition) Kind() NodeKind { return KindMethodDefinition }

// PropertyDefinition 类字段
type PropertyDefinition struct {
	Span
	Key      Expression `json:"key"`
	Value    Expression `json:"value"`
	Computed bool       `json:"computed"`
	Static   bool       `json:"static"`
}

func (*PropertyDefinition) Kind() NodeKind { return KindPropertyDefinition }

// StaticBlock 类静态初始化块
type StaticBlock struct {
	Span
	Body []Statement `json:"body"`
}

func (*StaticBlock) Kind() NodeKind { return KindStaticBlock }

// ============= 模块节点 =============

// ImportDeclaration import 声明
type ImportDeclaration struct {
	Span
	Specifiers []Node             `json:"specifiers"`
	Source     *Literal           `json:"source"`
	Attributes []*ImportAttribute `json:"attributes"`
}

func (*ImportDeclaration) Kind() NodeKind { return KindImportDeclaration }
func (*ImportDeclaration) statementNode() {}

// ImportSpecifier import { a as b }
type ImportSpecifier struct {
	Span
	Imported Node        `json:"imported"` // Identifier 或字符串 Literal
	Local    *Identifier `json:"local"`
}

func (*ImportSpecifier) Kind() NodeKind { return KindImportSpecifier }

// ImportDefaultSpecifier import a
type ImportDefaultSpecifier struct {
	Span
	Local *Identifier `json:"local"`
}

func (*ImportDefaultSpecifier) Kind() NodeKind { return KindImportDefaultSpecifier }

// ImportNamespaceSpecifier import * as a
type ImportNamespaceSpecifier struct {
	Span
	Local *Identifier `json:"local"`
}

func (*ImportNamespaceSpecifier) Kind() NodeKind { return KindImportNamespaceSpecifier }

// ExportNamedDeclaration export { a } / export const x = 1 / export { a } from "m"
type ExportNamedDeclaration struct {
	Span
	Declaration Statement          `json:"declaration"`
	Specifiers  []*ExportSpecifier `json:"specifiers"`
	Source      *Literal           `json:"source"`
	Attributes  []*ImportAttribute `json:"attributes"`
}

func (*ExportNamedDeclaration) Kind() NodeKind { return KindExportNamedDeclaration }
func (*ExportNamedDeclaration) statementNode() {}

// ExportSpecifier export { local as exported }
type ExportSpecifier struct {
	Span
	Local    Node `json:"local"`    // Identifier，re-export 时可为字符串 Literal
	Exported Node `json:"exported"` // Identifier 或字符串 Literal
}

func (*ExportSpecifier) Kind() NodeKind { return KindExportSpecifier }

// ExportDefaultDeclaration export default ...
type ExportDefaultDeclaration struct {
	Span
	Declaration Node `json:"declaration"` // 声明或表达式
}

func (*ExportDefaultDeclaration) Kind() NodeKind { return KindExportDefaultDeclaration }
func (*ExportDefaultDeclaration) statementNode() {}

// ExportAllDeclaration export * from "m" / export * as ns from "m"
type ExportAllDeclaration struct {
	Span
	Exported   Node               `json:"exported"` // nil、Identifier 或字符串 Literal
	Source     *Literal           `json:"source"`
	Attributes []*ImportAttribute `json:"attributes"`
}

func (*ExportAllDeclaration) Kind() NodeKind { return KindExportAllDeclaration }
func (*ExportAllDeclaration) statementNode() {}

// ImportAttribute with { type: "json" } 中的一项
type ImportAttribute struct {
	Span
	Key   Node     `json:"key"` // Identifier 或字符串 Literal
	Value *Literal `json:"value"`
}

func (*ImportAttribute) Kind() NodeKind { return KindImportAttribute }
