package parser

import (
	"fmt"

	"github.com/wudi/js-parser/lexer"
)

// parsingContext 解析过程中的上下文标志。进入函数、类、静态块、箭头函数体、
// catch 子句、for 头时整体快照，退出（含错误回卷丢弃）时恢复。
type parsingContext struct {
	Strict bool // 严格模式

	InFunction         bool // 在函数体内（return 合法）
	InGenerator        bool // yield 是表达式
	InAsync            bool // await 是表达式
	InFormalParameters bool // 形参默认值中禁止 yield/await 表达式

	AllowNewTarget     bool // new.target 可用
	AllowSuperProperty bool // super.x 可用
	AllowSuperCall     bool // super() 可用
	InDerivedClass     bool // 处于有 extends 的类中
	InStaticBlock      bool // 静态初始化块中
	InFieldInitializer bool // 类字段初始化器中

	AllowIn bool // for 头的 init 中为 false

	StatementOnly bool // 单语句上下文（if/while/for 体），词法声明非法
}

// scopeFrame 一个作用域帧。lexical 与 vars、functions 互不相交（AnnexB 下
// 简单 catch 参数可与 var 同名）；plainFunctions 是 functions 的子集；函数帧
// 中的函数声明同时记入 vars。sloppy 模式下块级普通函数可以重名（AnnexB）。
type scopeFrame struct {
	isFunctionScope bool
	lexical         map[string]bool // let/const/class/import
	vars            map[string]bool // var（向上传播到函数帧）
	functions       map[string]bool // 全部函数声明
	plainFunctions  map[string]bool // 非生成器、非异步的函数声明
	catchParams     map[string]bool // 简单 catch 参数（AnnexB 容许 var 重声明）
}

func newScopeFrame(isFunction bool) *scopeFrame {
	return &scopeFrame{
		isFunctionScope: isFunction,
		lexical:         map[string]bool{},
		vars:            map[string]bool{},
		functions:       map[string]bool{},
		plainFunctions:  map[string]bool{},
		catchParams:     map[string]bool{},
	}
}

// pushScope 进入一个作用域（isFunction 标记函数体/程序顶层帧）
func (p *Parser) pushScope(isFunction bool) {
	p.scopes = append(p.scopes, newScopeFrame(isFunction))
}

// popScope 离开当前作用域
func (p *Parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *Parser) currentScope() *scopeFrame {
	return p.scopes[len(p.scopes)-1]
}

// declareLexical 登记 let/const/class/import 绑定
func (p *Parser) declareLexical(name string, tok lexer.Token) {
	s := p.currentScope()
	if s.lexical[name] || s.vars[name] || s.functions[name] {
		p.failAt(tok, fmt.Sprintf("identifier '%s' has already been declared", name))
	}
	s.lexical[name] = true
}

// declareVar 登记 var 绑定并向上传播到最近的函数帧
func (p *Parser) declareVar(name string, tok lexer.Token) {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		s := p.scopes[i]
		if s.lexical[name] && !s.catchParams[name] {
			p.failAt(tok, fmt.Sprintf("identifier '%s' has already been declared", name))
		}
		// 块级函数声明与穿越它的 var 冲突；AnnexB 容忍普通函数。
		// 模块顶层的函数声明是词法作用域的，同样与 var 冲突。
		if !s.isFunctionScope && s.functions[name] && !(!p.ctx.Strict && s.plainFunctions[name]) {
			p.failAt(tok, fmt.Sprintf("identifier '%s' has already been declared", name))
		}
		if i == 0 && p.opts.Module && s.functions[name] {
			p.failAt(tok, fmt.Sprintf("identifier '%s' has already been declared", name))
		}
		s.vars[name] = true
		if s.isFunctionScope {
			return
		}
	}
}

// declareFunction 登记函数声明。函数帧顶层按 var 语义，块级按词法语义，
// sloppy 模式下两个普通函数声明可以同名共存（AnnexB）。
func (p *Parser) declareFunction(name string, tok lexer.Token, plain bool) {
	s := p.currentScope()
	if s.lexical[name] {
		p.failAt(tok, fmt.Sprintf("identifier '%s' has already been declared", name))
	}
	if s.isFunctionScope {
		// 脚本与函数体顶层的函数声明是 var 作用域的，可以重复；
		// 模块顶层的函数声明是词法作用域的
		if p.opts.Module && s == p.scopes[0] && (s.vars[name] || s.functions[name]) {
			p.failAt(tok, fmt.Sprintf("identifier '%s' has already been declared", name))
		}
	} else {
		if s.vars[name] {
			p.failAt(tok, fmt.Sprintf("identifier '%s' has already been declared", name))
		}
		if s.functions[name] {
			dupOK := !p.ctx.Strict && plain && s.plainFunctions[name]
			if !dupOK {
				p.failAt(tok, fmt.Sprintf("identifier '%s' has already been declared", name))
			}
		}
	}
	s.functions[name] = true
	if plain {
		s.plainFunctions[name] = true
	}
	if s.isFunctionScope {
		s.vars[name] = true
	}
}

// ============= 标签 =============

// declareLabel 登记标签；重复标签是语法错误
func (p *Parser) declareLabel(name string, iteration bool, tok lexer.Token) {
	if _, ok := p.labels[name]; ok {
		p.failAt(tok, fmt.Sprintf("label '%s' has already been declared", name))
	}
	p.labels[name] = iteration
}

func (p *Parser) removeLabel(name string) {
	delete(p.labels, name)
}

// checkBreakLabel break 可引用任意可见标签
func (p *Parser) checkBreakLabel(name string, tok lexer.Token) {
	if _, ok := p.labels[name]; !ok {
		p.failAt(tok, fmt.Sprintf("undefined label '%s'", name))
	}
}

// checkContinueLabel continue 只能引用迭代语句的标签
func (p *Parser) checkContinueLabel(name string, tok lexer.Token) {
	iter, ok := p.labels[name]
	if !ok {
		p.failAt(tok, fmt.Sprintf("undefined label '%s'", name))
	}
	if !iter {
		p.failAt(tok, fmt.Sprintf("label '%s' does not denote an iteration statement", name))
	}
}

// ============= 私有名 =============

// privateNameInfo 一个私有名的声明情况，用于访问器配对判定
type privateNameInfo struct {
	getSeen bool
	setSeen bool
	plain   bool // 字段或方法
	static  bool
}

// pushPrivateFrame 进入一个类体
func (p *Parser) pushPrivateFrame() {
	p.privateStack = append(p.privateStack, map[string]*privateNameInfo{})
}

// declarePrivateName 在当前类登记私有名。同名仅允许 getter/setter 配对，
// 且二者静态性必须一致。
func (p *Parser) declarePrivateName(name string, kind string, static bool, tok lexer.Token) {
	frame := p.privateStack[len(p.privateStack)-1]
	info := frame[name]
	if info == nil {
		info = &privateNameInfo{static: static}
		switch kind {
		case "get":
			info.getSeen = true
		case "set":
			info.setSeen = true
		default:
			info.plain = true
		}
		frame[name] = info
		return
	}
	ok := false
	switch kind {
	case "get":
		ok = !info.plain && !info.getSeen && info.setSeen && info.static == static
		info.getSeen = true
	case "set":
		ok = !info.plain && !info.setSeen && info.getSeen && info.static == static
		info.setSeen = true
	}
	if !ok {
		p.failAt(tok, fmt.Sprintf("private name #%s has already been declared", name))
	}
}

// recordPrivateReference 记录一次私有名引用，延迟到类体闭合时校验
func (p *Parser) recordPrivateReference(name string, tok lexer.Token) {
	p.pendingPrivate = append(p.pendingPrivate, pendingRef{
		name:  name,
		token: tok,
		depth: len(p.privateStack),
	})
}

// popPrivateFrame 类体闭合：本类内新增的引用对照本帧校验，命中即移除，
// 未命中的留给外层类；最外层类闭合时仍有未解析的引用即报错。逆序遍历，
// 移除元素不影响尚未访问的下标。
func (p *Parser) popPrivateFrame() {
	frameIndex := len(p.privateStack) - 1
	frame := p.privateStack[frameIndex]
	for i := len(p.pendingPrivate) - 1; i >= 0; i-- {
		ref := &p.pendingPrivate[i]
		if ref.depth <= frameIndex {
			continue
		}
		if frame[ref.name] != nil {
			p.pendingPrivate = append(p.pendingPrivate[:i], p.pendingPrivate[i+1:]...)
		} else {
			ref.depth = frameIndex
		}
	}
	p.privateStack = p.privateStack[:frameIndex]
	if frameIndex == 0 && len(p.pendingPrivate) > 0 {
		ref := p.pendingPrivate[0]
		p.failAt(ref.token, fmt.Sprintf("private name #%s is not defined", ref.name))
	}
}

// ============= 导出绑定 =============

// declareExportName 导出名查重（本地导出、重导出与 export default 共用一个
// 导出名集合；导入绑定不在其中）
func (p *Parser) declareExportName(name string, tok lexer.Token) {
	if p.exportedNames[name] {
		p.failAt(tok, fmt.Sprintf("duplicate export of '%s'", name))
	}
	p.exportedNames[name] = true
}

// recordExportBinding 记录 export { x } 的本地名，模块解析完成后校验
func (p *Parser) recordExportBinding(name string, tok lexer.Token) {
	p.pendingExports = append(p.pendingExports, pendingRef{name: name, token: tok})
}

// resolvePendingExports 对照模块顶层作用域校验所有待定的导出绑定
func (p *Parser) resolvePendingExports() {
	if len(p.pendingExports) == 0 {
		return
	}
	top := p.scopes[0]
	for _, ref := range p.pendingExports {
		if !top.lexical[ref.name] && !top.vars[ref.name] && !top.functions[ref.name] {
			p.failAt(ref.token, fmt.Sprintf("export '%s' is not defined", ref.name))
		}
	}
	p.pendingExports = nil
}

// ============= 函数边界的上下文切换 =============

// functionBoundaryState 进入函数时需要清零、退出时恢复的周边状态
type functionBoundaryState struct {
	labels      map[string]bool
	loopDepth   int
	switchDepth int
}

// enterFunctionBoundary 清空标签表与循环/分支深度（标签不可跨函数）
func (p *Parser) enterFunctionBoundary() functionBoundaryState {
	saved := functionBoundaryState{
		labels:      p.labels,
		loopDepth:   p.loopDepth,
		switchDepth: p.switchDepth,
	}
	p.labels = map[string]bool{}
	p.loopDepth = 0
	p.switchDepth = 0
	return saved
}

// exitFunctionBoundary 恢复函数外的标签表与深度
func (p *Parser) exitFunctionBoundary(saved functionBoundaryState) {
	p.labels = saved.labels
	p.loopDepth = saved.loopDepth
	p.switchDepth = saved.switchDepth
}
