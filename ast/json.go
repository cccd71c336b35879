package ast

import "encoding/json"

// ToJSON 把节点序列化为 ESTree 形状的 JSON
func ToJSON(n Node) ([]byte, error) {
	return json.Marshal(encode(n))
}

// ToJSONIndent 带缩进的 ESTree JSON
func ToJSONIndent(n Node) ([]byte, error) {
	return json.MarshalIndent(encode(n), "", "  ")
}

func encodeBase(n Node) map[string]any {
	start, end := n.Range()
	loc := n.Location()
	return map[string]any{
		"type":  n.Kind().String(),
		"start": start,
		"end":   end,
		"loc": map[string]any{
			"start": map[string]any{"line": loc.Start.Line, "column": loc.Start.Column},
			"end":   map[string]any{"line": loc.End.Line, "column": loc.End.Column},
		},
	}
}

func encodeNilable(n Node) any {
	if n == nil {
		return nil
	}
	return encode(n)
}

func encodeStatements(list []Statement) []any {
	out := make([]any, len(list))
	for i, s := range list {
		out[i] = encode(s)
	}
	return out
}

func encodeExpressions(list []Expression) []any {
	out := make([]any, len(list))
	for i, e := range list {
		if e == nil {
			out[i] = nil // 数组洞
		} else {
			out[i] = encode(e)
		}
	}
	return out
}

func encodePatterns(list []Pattern) []any {
	out := make([]any, len(list))
	for i, p := range list {
		if p == nil {
			out[i] = nil
		} else {
			out[i] = encode(p)
		}
	}
	return out
}

func encodeNodes(list []Node) []any {
	out := make([]any, len(list))
	for i, n := range list {
		out[i] = encode(n)
	}
	return out
}

func encodeAttributes(list []*ImportAttribute) []any {
	out := make([]any, len(list))
	for i, a := range list {
		out[i] = encode(a)
	}
	return out
}

// encode 把节点转换为 JSON 友好的 map 树
func encode(node Node) any {
	if node == nil {
		return nil
	}
	m := encodeBase(node)
	switch n := node.(type) {
	case *Program:
		m["body"] = encodeStatements(n.Body)
		m["sourceType"] = n.SourceType
	case *ExpressionStatement:
		m["expression"] = encode(n.Expression)
		if n.Directive != "" {
			m["directive"] = n.Directive
		}
	case *BlockStatement:
		m["body"] = encodeStatements(n.Body)
	case *EmptyStatement, *DebuggerStatement, *ThisExpression, *Super:
	case *WithStatement:
		m["object"] = encode(n.Object)
		m["body"] = encode(n.Body)
	case *ReturnStatement:
		m["argument"] = encodeNilable(n.Argument)
	case *LabeledStatement:
		m["label"] = encode(n.Label)
		m["body"] = encode(n.Body)
	case *BreakStatement:
		if n.Label != nil {
			m["label"] = encode(n.Label)
		} else {
			m["label"] = nil
		}
	case *ContinueStatement:
		if n.Label != nil {
			m["label"] = encode(n.Label)
		} else {
			m["label"] = nil
		}
	case *IfStatement:
		m["test"] = encode(n.Test)
		m["consequent"] = encode(n.Consequent)
		m["alternate"] = encodeNilable(n.Alternate)
	case *SwitchStatement:
		m["discriminant"] = encode(n.Discriminant)
		cases := make([]any, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = encode(c)
		}
		m["cases"] = cases
	case *SwitchCase:
		m["test"] = encodeNilable(n.Test)
		m["consequent"] = encodeStatements(n.Consequent)
	case *ThrowStatement:
		m["argument"] = encode(n.Argument)
	case *TryStatement:
		m["block"] = encode(n.Block)
		m["handler"] = encodeNilable(nodeOrNil(n.Handler))
		m["finalizer"] = encodeNilable(nodeOrNil(n.Finalizer))
	case *CatchClause:
		m["param"] = encodeNilable(n.Param)
		m["body"] = encode(n.Body)
	case *WhileStatement:
		m["test"] = encode(n.Test)
		m["body"] = encode(n.Body)
	case *DoWhileStatement:
		m["body"] = encode(n.Body)
		m["test"] = encode(n.Test)
	case *ForStatement:
		m["init"] = encodeNilable(n.Init)
		m["test"] = encodeNilable(n.Test)
		m["update"] = encodeNilable(n.Update)
		m["body"] = encode(n.Body)
	case *ForInStatement:
		m["left"] = encode(n.Left)
		m["right"] = encode(n.Right)
		m["body"] = encode(n.Body)
	case *ForOfStatement:
		m["await"] = n.Await
		m["left"] = encode(n.Left)
		m["right"] = encode(n.Right)
		m["body"] = encode(n.Body)
	case *VariableDeclaration:
		decls := make([]any, len(n.Declarations))
		for i, d := range n.Declarations {
			decls[i] = encode(d)
		}
		m["declarations"] = decls
		m["kind"] = n.DeclKind
	case *VariableDeclarator:
		m["id"] = encode(n.Id)
		m["init"] = encodeNilable(n.Init)
	case *FunctionDeclaration:
		m["id"] = encodeNilable(nodeOrNil(n.Id))
		m["params"] = encodePatterns(n.Params)
		m["body"] = encode(n.Body)
		m["generator"] = n.Generator
		m["async"] = n.Async
	case *ClassDeclaration:
		m["id"] = encodeNilable(nodeOrNil(n.Id))
		m["superClass"] = encodeNilable(n.SuperClass)
		m["body"] = encode(n.Body)
	case *ClassBody:
		m["body"] = encodeNodes(n.Body)
	case *MethodDefinition:
		m["key"] = encode(n.Key)
		m["value"] = encode(n.Value)
		m["kind"] = n.MethodKind
		m["computed"] = n.Computed
		m["static"] = n.Static
	case *PropertyDefinition:
		m["key"] = encode(n.Key)
		m["value"] = encodeNilable(n.Value)
		m["computed"] = n.Computed
		m["static"] = n.Static
	case *StaticBlock:
		m["body"] = encodeStatements(n.Body)
	case *Identifier:
		m["name"] = n.Name
	case *PrivateIdentifier:
		m["name"] = n.Name
	case *Literal:
		m["value"] = n.Value
		m["raw"] = n.Raw
		if n.Regex != nil {
			m["regex"] = map[string]any{"pattern": n.Regex.Pattern, "flags": n.Regex.Flags}
		}
		if n.BigInt != "" {
			m["bigint"] = n.BigInt
		}
	case *ArrayExpression:
		m["elements"] = encodeExpressions(n.Elements)
	case *ObjectExpression:
		m["properties"] = encodeNodes(n.Properties)
	case *Property:
		m["key"] = encode(n.Key)
		m["value"] = encode(n.Value)
		m["kind"] = n.PropKind
		m["method"] = n.Method
		m["shorthand"] = n.Shorthand
		m["computed"] = n.Computed
	case *FunctionExpression:
		m["id"] = encodeNilable(nodeOrNil(n.Id))
		m["params"] = encodePatterns(n.Params)
		m["body"] = encode(n.Body)
		m["generator"] = n.Generator
		m["async"] = n.Async
	case *ArrowFunctionExpression:
		m["params"] = encodePatterns(n.Params)
		m["body"] = encode(n.Body)
		m["expression"] = n.Expression
		m["async"] = n.Async
	case *ClassExpression:
		m["id"] = encodeNilable(nodeOrNil(n.Id))
		m["superClass"] = encodeNilable(n.SuperClass)
		m["body"] = encode(n.Body)
	case *TemplateLiteral:
		quasis := make([]any, len(n.Quasis))
		for i, q := range n.Quasis {
			quasis[i] = encode(q)
		}
		m["quasis"] = quasis
		m["expressions"] = encodeExpressions(n.Expressions)
	case *TemplateElement:
		var cooked any
		if n.Value.Cooked != nil {
			cooked = *n.Value.Cooked
		}
		m["value"] = map[string]any{"raw": n.Value.Raw, "cooked": cooked}
		m["tail"] = n.Tail
	case *TaggedTemplateExpression:
		m["tag"] = encode(n.Tag)
		m["quasi"] = encode(n.Quasi)
	case *MemberExpression:
		m["object"] = encode(n.Object)
		m["property"] = encode(n.Property)
		m["computed"] = n.Computed
		m["optional"] = n.Optional
	case *CallExpression:
		m["callee"] = encode(n.Callee)
		m["arguments"] = encodeExpressions(n.Arguments)
		m["optional"] = n.Optional
	case *NewExpression:
		m["callee"] = encode(n.Callee)
		m["arguments"] = encodeExpressions(n.Arguments)
	case *MetaProperty:
		m["meta"] = encode(n.Meta)
		m["property"] = encode(n.Property)
	case *ImportExpression:
		m["source"] = encode(n.Source)
		if n.Options != nil {
			m["options"] = encode(n.Options)
		}
	case *UpdateExpression:
		m["operator"] = n.Operator
		m["argument"] = encode(n.Argument)
		m["prefix"] = n.Prefix
	case *UnaryExpression:
		m["operator"] = n.Operator
		m["argument"] = encode(n.Argument)
		m["prefix"] = n.Prefix
	case *BinaryExpression:
		m["operator"] = n.Operator
		m["left"] = encode(n.Left)
		m["right"] = encode(n.Right)
	case *LogicalExpression:
		m["operator"] = n.Operator
		m["left"] = encode(n.Left)
		m["right"] = encode(n.Right)
	case *ConditionalExpression:
		m["test"] = encode(n.Test)
		m["consequent"] = encode(n.Consequent)
		m["alternate"] = encode(n.Alternate)
	case *AssignmentExpression:
		m["operator"] = n.Operator
		m["left"] = encode(n.Left)
		m["right"] = encode(n.Right)
	case *SequenceExpression:
		m["expressions"] = encodeExpressions(n.Expressions)
	case *YieldExpression:
		m["argument"] = encodeNilable(n.Argument)
		m["delegate"] = n.Delegate
	case *AwaitExpression:
		m["argument"] = encode(n.Argument)
	case *SpreadElement:
		m["argument"] = encode(n.Argument)
	case *ChainExpression:
		m["expression"] = encode(n.Expression)
	case *ArrayPattern:
		m["elements"] = encodePatterns(n.Elements)
	case *ObjectPattern:
		m["properties"] = encodeNodes(n.Properties)
	case *AssignmentPattern:
		m["left"] = encode(n.Left)
		m["right"] = encode(n.Right)
	case *RestElement:
		m["argument"] = encode(n.Argument)
	case *ImportDeclaration:
		m["specifiers"] = encodeNodes(n.Specifiers)
		m["source"] = encode(n.Source)
		m["attributes"] = encodeAttributes(n.Attributes)
	case *ImportSpecifier:
		m["imported"] = encode(n.Imported)
		m["local"] = encode(n.Local)
	case *ImportDefaultSpecifier:
		m["local"] = encode(n.Local)
	case *ImportNamespaceSpecifier:
		m["local"] = encode(n.Local)
	case *ExportNamedDeclaration:
		m["declaration"] = encodeNilable(n.Declaration)
		specs := make([]any, len(n.Specifiers))
		for i, s := range n.Specifiers {
			specs[i] = encode(s)
		}
		m["specifiers"] = specs
		m["source"] = encodeNilable(nodeOrNil(n.Source))
		m["attributes"] = encodeAttributes(n.Attributes)
	case *ExportSpecifier:
		m["local"] = encode(n.Local)
		m["exported"] = encode(n.Exported)
	case *ExportDefaultDeclaration:
		m["declaration"] = encode(n.Declaration)
	case *ExportAllDeclaration:
		m["exported"] = encodeNilable(n.Exported)
		m["source"] = encode(n.Source)
		m["attributes"] = encodeAttributes(n.Attributes)
	case *ImportAttribute:
		m["key"] = encode(n.Key)
		m["value"] = encode(n.Value)
	}
	return m
}

// nodeOrNil 把可能为 nil 的具体指针转成 Node 接口，避免非 nil 的空接口值
func nodeOrNil[T Node](p T) Node {
	var zero T
	if any(p) == any(zero) {
		return nil
	}
	return p
}
