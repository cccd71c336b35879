package lexer

import "sort"

// LineIndex 行偏移索引，把字节偏移映射为 (行, 列)
type LineIndex struct {
	source string
	starts []int // 每一行的起始偏移，starts[0] == 0
}

// NewLineIndex 扫描源文件构建行索引
func NewLineIndex(source string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(source); {
		if isLineTerminatorAt(source, i) {
			if source[i] == '\r' && i+1 < len(source) && source[i+1] == '\n' {
				i += 2
			} else if source[i] == '\r' || source[i] == '\n' {
				i++
			} else {
				i += 3 // U+2028 / U+2029 在 UTF-8 中为三字节
			}
			starts = append(starts, i)
			continue
		}
		i++
	}
	return &LineIndex{source: source, starts: starts}
}

// Position returns the 1-based line and 0-based column of a byte offset, by
// binary search over the line-start table.
func (ix *LineIndex) Position(offset int) (line, column int) {
	i := sort.Search(len(ix.starts), func(i int) bool { return ix.starts[i] > offset }) - 1
	return i + 1, offset - ix.starts[i]
}
