package ast

// Visitor 访问者。Visit 返回 false 时不再深入该节点的子树。
type Visitor interface {
	Visit(node Node) bool
}

// VisitorFunc 函数式访问者
type VisitorFunc func(node Node) bool

// Visit 实现 Visitor
func (f VisitorFunc) Visit(node Node) bool { return f(node) }

// Walk 深度优先遍历以 node 为根的子树
func Walk(v Visitor, node Node) {
	if node == nil || !v.Visit(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		for _, s := range n.Body {
			Walk(v, s)
		}
	case *ExpressionStatement:
		Walk(v, n.Expression)
	case *BlockStatement:
		for _, s := range n.Body {
			Walk(v, s)
		}
	case *WithStatement:
		Walk(v, n.Object)
		Walk(v, n.Body)
	case *ReturnStatement:
		walkNilable(v, n.Argument)
	case *LabeledStatement:
		Walk(v, n.Label)
		Walk(v, n.Body)
	case *BreakStatement:
		if n.Label != nil {
			Walk(v, n.Label)
		}
	case *ContinueStatement:
		if n.Label != nil {
			Walk(v, n.Label)
		}
	case *IfStatement:
		Walk(v, n.Test)
		Walk(v, n.Consequent)
		walkNilable(v, n.Alternate)
	case *SwitchStatement:
		Walk(v, n.Discriminant)
		for _, c := range n.Cases {
			Walk(v, c)
		}
	case *SwitchCase:
		walkNilable(v, n.Test)
		for _, s := range n.Consequent {
			Walk(v, s)
		}
	case *ThrowStatement:
		Walk(v, n.Argument)
	case *TryStatement:
		Walk(v, n.Block)
		if n.Handler != nil {
			Walk(v, n.Handler)
		}
		if n.Finalizer != nil {
			Walk(v, n.Finalizer)
		}
	case *CatchClause:
		walkNilable(v, n.Param)
		Walk(v, n.Body)
	case *WhileStatement:
		Walk(v, n.Test)
		Walk(v, n.Body)
	case *DoWhileStatement:
		Walk(v, n.Body)
		Walk(v, n.Test)
	case *ForStatement:
		walkNilable(v, n.Init)
		walkNilable(v, n.Test)
		walkNilable(v, n.Update)
		Walk(v, n.Body)
	case *ForInStatement:
		Walk(v, n.Left)
		Walk(v, n.Right)
		Walk(v, n.Body)
	case *ForOfStatement:
		Walk(v, n.Left)
		Walk(v, n.Right)
		Walk(v, n.Body)
	case *VariableDeclaration:
		for _, d := range n.Declarations {
			Walk(v, d)
		}
	case *VariableDeclarator:
		Walk(v, n.Id)
		walkNilable(v, n.Init)
	case *FunctionDeclaration:
		if n.Id != nil {
			Walk(v, n.Id)
		}
		for _, p := range n.Params {
			Walk(v, p)
		}
		Walk(v, n.Body)
	case *ClassDeclaration:
		if n.Id != nil {
			Walk(v, n.Id)
		}
		walkNilable(v, n.SuperClass)
		Walk(v, n.Body)
	case *ClassBody:
		for _, e := range n.Body {
			Walk(v, e)
		}
	case *MethodDefinition:
		Walk(v, n.Key)
		Walk(v, n.Value)
	case *PropertyDefinition:
		Walk(v, n.Key)
		walkNilable(v, n.Value)
	case *StaticBlock:
		for _, s := range n.Body {
			Walk(v, s)
		}
	case *ArrayExpression:
		for _, e := range n.Elements {
			walkNilable(v, e)
		}
	case *ObjectExpression:
		for _, p := range n.Properties {
			Walk(v, p)
		}
	case *Property:
		Walk(v, n.Key)
		Walk(v, n.Value)
	case *FunctionExpression:
		if n.Id != nil {
			Walk(v, n.Id)
		}
		for _, p := range n.Params {
			Walk(v, p)
		}
		Walk(v, n.Body)
	case *ArrowFunctionExpression:
		for _, p := range n.Params {
			Walk(v, p)
		}
		Walk(v, n.Body)
	case *ClassExpression:
		if n.Id != nil {
			Walk(v, n.Id)
		}
		walkNilable(v, n.SuperClass)
		Walk(v, n.Body)
	case *TemplateLiteral:
		for _, q := range n.Quasis {
			Walk(v, q)
		}
		for _, e := range n.Expressions {
			Walk(v, e)
		}
	case *TaggedTemplateExpression:
		Walk(v, n.Tag)
		Walk(v, n.Quasi)
	case *MemberExpression:
		Walk(v, n.Object)
		Walk(v, n.Property)
	case *CallExpression:
		Walk(v, n.Callee)
		for _, a := range n.Arguments {
			Walk(v, a)
		}
	case *NewExpression:
		Walk(v, n.Callee)
		for _, a := range n.Arguments {
			Walk(v, a)
		}
	case *MetaProperty:
		Walk(v, n.Meta)
		Walk(v, n.Property)
	case *ImportExpression:
		Walk(v, n.Source)
		walkNilable(v, n.Options)
	case *UpdateExpression:
		Walk(v, n.Argument)
	case *UnaryExpression:
		Walk(v, n.Argument)
	case *BinaryExpression:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *LogicalExpression:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *ConditionalExpression:
		Walk(v, n.Test)
		Walk(v, n.Consequent)
		Walk(v, n.Alternate)
	case *AssignmentExpression:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *SequenceExpression:
		for _, e := range n.Expressions {
			Walk(v, e)
		}
	case *YieldExpression:
		walkNilable(v, n.Argument)
	case *AwaitExpression:
		Walk(v, n.Argument)
	case *SpreadElement:
		Walk(v, n.Argument)
	case *ChainExpression:
		Walk(v, n.Expression)
	case *ArrayPattern:
		for _, e := range n.Elements {
			walkNilable(v, e)
		}
	case *ObjectPattern:
		for _, p := range n.Properties {
			Walk(v, p)
		}
	case *AssignmentPattern:
		Walk(v, n.Left)
		Walk(v, n.Right)
	case *RestElement:
		Walk(v, n.Argument)
	case *ImportDeclaration:
		for _, s := range n.Specifiers {
			Walk(v, s)
		}
		Walk(v, n.Source)
		for _, a := range n.Attributes {
			Walk(v, a)
		}
	case *ImportSpecifier:
		Walk(v, n.Imported)
		Walk(v, n.Local)
	case *ImportDefaultSpecifier:
		Walk(v, n.Local)
	case *ImportNamespaceSpecifier:
		Walk(v, n.Local)
	case *ExportNamedDeclaration:
		walkNilable(v, n.Declaration)
		for _, s := range n.Specifiers {
			Walk(v, s)
		}
		if n.Source != nil {
			Walk(v, n.Source)
		}
		for _, a := range n.Attributes {
			Walk(v, a)
		}
	case *ExportSpecifier:
		Walk(v, n.Local)
		Walk(v, n.Exported)
	case *ExportDefaultDeclaration:
		Walk(v, n.Declaration)
	case *ExportAllDeclaration:
		walkNilable(v, n.Exported)
		Walk(v, n.Source)
		for _, a := range n.Attributes {
			Walk(v, a)
		}
	case *ImportAttribute:
		Walk(v, n.Key)
		Walk(v, n.Value)
	}
}

// walkNilable 跳过接口值为 nil 的子节点
func walkNilable[T Node](v Visitor, n T) {
	if Node(n) != nil {
		Walk(v, n)
	}
}

// Count 统计子树中的节点数
func Count(root Node) int {
	n := 0
	Walk(VisitorFunc(func(Node) bool { n++; return true }), root)
	return n
}
