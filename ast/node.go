// Package ast defines the ESTree-shaped syntax tree produced by the parser.
package ast

// Position 源代码中的一个点（行从1开始，列从0开始）
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SourceLocation 节点覆盖的源代码区间
type SourceLocation struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Span 所有节点共有的跨度信息
type Span struct {
	Start int            `json:"start"` // 起始字节偏移
	End   int            `json:"end"`   // 结束字节偏移（不含）
	Loc   SourceLocation `json:"loc"`
}

// Range 返回节点的字节跨度
func (s *Span) Range() (start, end int) { return s.Start, s.End }

// Location 返回节点的行列区间
func (s *Span) Location() SourceLocation { return s.Loc }

// Node 表示抽象语法树中的节点接口
type Node interface {
	// Kind 返回节点的 ESTree 类型
	Kind() NodeKind
	// Range 返回节点的字节跨度
	Range() (start, end int)
	// Location 返回节点的行列区间
	Location() SourceLocation
}

// Statement 表示语句节点
type Statement interface {
	Node
	statementNode()
}

// Expression 表示表达式节点
type Expression interface {
	Node
	expressionNode()
}

// Pattern 表示绑定模式或赋值目标
type Pattern interface {
	Node
	patternNode()
}

// Program 表示整个程序
type Program struct {
	Span
	Body       []Statement `json:"body"`
	SourceType string      `json:"sourceType"` // "script" | "module"
}

func (*Program) Kind() NodeKind { return KindProgram }
