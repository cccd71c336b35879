package ast

// NodeKind 定义 AST 节点类型，名称与 ESTree 规范保持一致
type NodeKind uint16

const (
	KindProgram NodeKind = iota

	// 语句
	KindExpressionStatement
	KindBlockStatement
	KindEmptyStatement
	KindDebuggerStatement
	KindWithStatement
	KindReturnStatement
	KindLabeledStatement
	KindBreakStatement
	KindContinueStatement
	KindIfStatement
	KindSwitchStatement
	KindSwitchCase
	KindThrowStatement
	KindTryStatement
	KindCatchClause
	KindWhileStatement
	KindDoWhileStatement
	KindForStatement
	KindForInStatement
	KindForOfStatement

	// 声明
	KindVariableDeclaration
	KindVariableDeclarator
	KindFunctionDeclaration
	KindClassDeclaration
	KindClassBody
	KindMethodDefinition
	KindPropertyDefinition
	KindStaticBlock

	// 表达式
	KindIdentifier
	KindPrivateIdentifier
	KindLiteral
	KindThisExpression
	KindSuper
	KindArrayExpression
	KindObjectExpression
	KindProperty
	KindFunctionExpression
	KindArrowFunctionExpression
	KindClassExpression
	KindTemplateLiteral
	KindTemplateElement
	KindTaggedTemplateExpression
	KindMemberExpression
	KindCallExpression
	KindNewExpression
	KindMetaProperty
	KindImportExpression
	KindUpdateExpression
	KindUnaryExpression
	KindBinaryExpression
	KindLogicalExpression
	KindConditionalExpression
	KindAssignmentExpression
	KindSequenceExpression
	KindYieldExpression
	KindAwaitExpression
	KindSpreadElement
	KindChainExpression

	// 模式
	KindArrayPattern
	KindObjectPattern
	KindAssignmentPattern
	KindRestElement

	// 模块
	KindImportDeclaration
	KindImportSpecifier
	KindImportDefaultSpecifier
	KindImportNamespaceSpecifier
	KindExportNamedDeclaration
	KindExportSpecifier
	KindExportDefaultDeclaration
	KindExportAllDeclaration
	KindImportAttribute
)

var kindNames = [...]string{
	KindProgram: "Program",

	KindExpressionStatement: "ExpressionStatement",
	KindBlockStatement:      "BlockStatement",
	KindEmptyStatement:      "EmptyStatement",
	KindDebuggerStatement:   "DebuggerStatement",
	KindWithStatement:       "WithStatement",
	KindReturnStatement:     "ReturnStatement",
	KindLabeledStatement:    "LabeledStatement",
	KindBreakStatement:      "BreakStatement",
	KindContinueStatement:   "ContinueStatement",
	KindIfStatement:         "IfStatement",
	KindSwitchStatement:     "SwitchStatement",
	KindSwitchCase:          "SwitchCase",
	KindThrowStatement:      "ThrowStatement",
	KindTryStatement:        "TryStatement",
	KindCatchClause:         "CatchClause",
	KindWhileStatement:      "WhileStatement",
	KindDoWhileStatement:    "DoWhileStatement",
	KindForStatement:        "ForStatement",
	KindForInStatement:      "ForInStatement",
	KindForOfStatement:      "ForOfStatement",

	KindVariableDeclaration: "VariableDeclaration",
	KindVariableDeclarator:  "VariableDeclarator",
	KindFunctionDeclaration: "FunctionDeclaration",
	KindClassDeclaration:    "ClassDeclaration",
	KindClassBody:           "ClassBody",
	KindMethodDefinition:    "MethodDefinition",
	KindPropertyDefinition:  "PropertyDefinition",
	KindStaticBlock:         "StaticBlock",

	KindIdentifier:               "Identifier",
	KindPrivateIdentifier:        "PrivateIdentifier",
	KindLiteral:                  "Literal",
	KindThisExpression:           "ThisExpression",
	KindSuper:                    "Super",
	KindArrayExpression:          "ArrayExpression",
	KindObjectExpression:         "ObjectExpression",
	KindProperty:                 "Property",
	KindFunctionExpression:       "FunctionExpression",
	KindArrowFunctionExpression:  "ArrowFunctionExpression",
	KindClassExpression:          "ClassExpression",
	KindTemplateLiteral:          "TemplateLiteral",
	KindTemplateElement:          "TemplateElement",
	KindTaggedTemplateExpression: "TaggedTemplateExpression",
	KindMemberExpression:         "MemberExpression",
	KindCallExpression:           "CallExpression",
	KindNewExpression:            "NewExpression",
	KindMetaProperty:             "MetaProperty",
	KindImportExpression:         "ImportExpression",
	KindUpdateExpression:         "UpdateExpression",
	KindUnaryExpression:          "UnaryExpression",
	KindBinaryExpression:         "BinaryExpression",
	KindLogicalExpression:        "LogicalExpression",
	KindConditionalExpression:    "ConditionalExpression",
	KindAssignmentExpression:     "AssignmentExpression",
	KindSequenceExpression:       "SequenceExpression",
	KindYieldExpression:          "YieldExpression",
	KindAwaitExpression:          "AwaitExpression",
	KindSpreadElement:            "SpreadElement",
	KindChainExpression:          "ChainExpression",

	KindArrayPattern:      "ArrayPattern",
	KindObjectPattern:     "ObjectPattern",
	KindAssignmentPattern: "AssignmentPattern",
	KindRestElement:       "RestElement",

	KindImportDeclaration:        "ImportDeclaration",
	KindImportSpecifier:          "ImportSpecifier",
	KindImportDefaultSpecifier:   "ImportDefaultSpecifier",
	KindImportNamespaceSpecifier: "ImportNamespaceSpecifier",
	KindExportNamedDeclaration:   "ExportNamedDeclaration",
	KindExportSpecifier:          "ExportSpecifier",
	KindExportDefaultDeclaration: "ExportDefaultDeclaration",
	KindExportAllDeclaration:     "ExportAllDeclaration",
	KindImportAttribute:          "ImportAttribute",
}

// String 返回节点类型的 ESTree 名称
func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}
