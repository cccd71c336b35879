package lexer

import (
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ============= 字符串 =============

// scanString 扫描单引号或双引号字符串
func (l *Lexer) scanString() (Token, error) {
	start := l.pos
	quote := l.source[l.pos]
	l.pos++

	var b strings.Builder
	var legacyOctal, nonOctal, unpaired bool

	for {
		if l.pos >= len(l.source) {
			return Token{}, l.lexError(start, "unterminated string literal")
		}
		c := l.source[l.pos]
		switch {
		case c == quote:
			l.pos++
			tok := l.makeToken(T_STRING, start, l.source[start:l.pos])
			tok.String = b.String()
			tok.LegacyOctal = legacyOctal
			tok.NonOctalEscape = nonOctal
			tok.UnpairedSurrogate = unpaired
			return tok, nil
		case c == '\\':
			l.pos++
			oct, dec, unp, err := l.scanEscape(&b, false)
			if err != nil {
				return Token{}, err
			}
			legacyOctal = legacyOctal || oct
			nonOctal = nonOctal || dec
			unpaired = unpaired || unp
		case c == '\n' || c == '\r':
			return Token{}, l.lexError(l.pos, "unterminated string literal")
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(l.source[l.pos:])
			if r == 0x2028 || r == 0x2029 {
				// 行分隔符在字符串中合法
				b.WriteRune(r)
				l.consumeLineTerminator()
			} else {
				b.WriteRune(r)
				l.pos += size
			}
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
}

// scanEscape 解码一个反斜杠转义，l.pos 指向反斜杠之后。
// template 为 true 时八进制与 \8 \9 视为无效转义（由调用方置 CookedInvalid）。
func (l *Lexer) scanEscape(b *strings.Builder, template bool) (legacyOctal, nonOctal, unpaired bool, err error) {
	if l.pos >= len(l.source) {
		return false, false, false, l.lexError(l.pos, "unterminated escape sequence")
	}
	c := l.source[l.pos]
	switch c {
	case 'n':
		b.WriteByte('\n')
		l.pos++
	case 't':
		b.WriteByte('\t')
		l.pos++
	case 'r':
		b.WriteByte('\r')
		l.pos++
	case 'b':
		b.WriteByte('\b')
		l.pos++
	case 'f':
		b.WriteByte('\f')
		l.pos++
	case 'v':
		b.WriteByte('\v')
		l.pos++
	case 'x':
		escStart := l.pos - 1
		l.pos++
		if l.pos+2 > len(l.source) {
			return false, false, false, l.lexError(escStart, "invalid hexadecimal escape sequence")
		}
		hi, ok1 := hexValue(l.source[l.pos])
		lo, ok2 := hexValue(l.source[l.pos+1])
		if !ok1 || !ok2 {
			return false, false, false, l.lexError(escStart, "invalid hexadecimal escape sequence")
		}
		b.WriteRune(rune(hi<<4 | lo))
		l.pos += 2
	case 'u':
		escStart := l.pos - 1
		l.pos++
		r, uerr := l.scanUnicodeEscape(escStart)
		if uerr != nil {
			return false, false, false, uerr
		}
		if r >= 0xD800 && r <= 0xDBFF {
			// 高代理项：尝试与紧随的 \uDC00..\uDFFF 配对
			if l.pos+1 < len(l.source) && l.source[l.pos] == '\\' && l.source[l.pos+1] == 'u' {
				save := l.pos
				l.pos += 2
				r2, uerr2 := l.scanUnicodeEscape(save)
				if uerr2 == nil && r2 >= 0xDC00 && r2 <= 0xDFFF {
					b.WriteRune(0x10000 + (r-0xD800)<<10 + (r2 - 0xDC00))
					return false, false, false, nil
				}
				l.pos = save
			}
			b.WriteRune(utf8.RuneError)
			return false, false, true, nil
		}
		if r >= 0xDC00 && r <= 0xDFFF {
			b.WriteRune(utf8.RuneError)
			return false, false, true, nil
		}
		b.WriteRune(r)
	case '0', '1', '2', '3', '4', '5', '6', '7':
		if c == '0' && (l.pos+1 >= len(l.source) || !isDigit(l.source[l.pos+1])) {
			// 孤立的 \0 是 NUL，不算遗留八进制
			b.WriteByte(0)
			l.pos++
			return false, false, false, nil
		}
		if template {
			return false, false, false, l.lexError(l.pos-1, "octal escape sequences are not allowed in template strings")
		}
		val := 0
		digits := 0
		max := 3
		if c >= '4' {
			max = 2
		}
		for digits < max && l.pos < len(l.source) && l.source[l.pos] >= '0' && l.source[l.pos] <= '7' {
			val = val<<3 | int(l.source[l.pos]-'0')
			l.pos++
			digits++
		}
		b.WriteRune(rune(val))
		return true, false, false, nil
	case '8', '9':
		if template {
			return false, false, false, l.lexError(l.pos-1, "\\8 and \\9 are not allowed in template strings")
		}
		b.WriteByte(c)
		l.pos++
		return false, true, false, nil
	case '\n', '\r':
		// 行延续
		l.consumeLineTerminator()
	default:
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(l.source[l.pos:])
			if r == 0x2028 || r == 0x2029 {
				l.consumeLineTerminator()
				return false, false, false, nil
			}
			b.WriteRune(r)
			l.pos += size
		} else {
			b.WriteByte(c)
			l.pos++
		}
	}
	return false, false, false, nil
}

// scanUnicodeEscape 解码 \uXXXX 或 \u{...}，l.pos 指向 u 之后
func (l *Lexer) scanUnicodeEscape(escStart int) (rune, error) {
	if l.pos < len(l.source) && l.source[l.pos] == '{' {
		l.pos++
		val := 0
		digits := 0
		for l.pos < len(l.source) && l.source[l.pos] != '}' {
			v, ok := hexValue(l.source[l.pos])
			if !ok {
				return 0, l.lexError(escStart, "invalid Unicode escape sequence")
			}
			val = val<<4 | v
			if val > 0x10FFFF {
				return 0, l.lexError(escStart, "Unicode code point out of range")
			}
			l.pos++
			digits++
		}
		if digits == 0 || l.pos >= len(l.source) {
			return 0, l.lexError(escStart, "invalid Unicode escape sequence")
		}
		l.pos++ // '}'
		return rune(val), nil
	}
	if l.pos+4 > len(l.source) {
		return 0, l.lexError(escStart, "invalid Unicode escape sequence")
	}
	val := 0
	for i := 0; i < 4; i++ {
		v, ok := hexValue(l.source[l.pos])
		if !ok {
			return 0, l.lexError(escStart, "invalid Unicode escape sequence")
		}
		val = val<<4 | v
		l.pos++
	}
	return rune(val), nil
}

func hexValue(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

// ============= 模板字面量 =============

// scanTemplate 扫描一段模板。head 为 true 表示从 ` 开始，否则从结束插值的 }
// 开始。产出 T_TEMPLATE_STRING / HEAD / MIDDLE / TAIL 之一。
func (l *Lexer) scanTemplate(start int, head bool) (Token, error) {
	var b strings.Builder
	invalid := false

	for {
		if l.pos >= len(l.source) {
			return Token{}, l.lexError(start, "unterminated template literal")
		}
		c := l.source[l.pos]
		switch {
		case c == '`':
			l.pos++
			t := T_TEMPLATE_TAIL
			if head {
				t = T_TEMPLATE_STRING
			}
			tok := l.makeToken(t, start, l.source[start:l.pos])
			tok.String = b.String()
			tok.CookedInvalid = invalid
			return tok, nil
		case c == '$' && l.pos+1 < len(l.source) && l.source[l.pos+1] == '{':
			l.pos += 2
			l.templateBraces = append(l.templateBraces, 0)
			t := T_TEMPLATE_MIDDLE
			if head {
				t = T_TEMPLATE_HEAD
			}
			tok := l.makeToken(t, start, l.source[start:l.pos])
			tok.String = b.String()
			tok.CookedInvalid = invalid
			return tok, nil
		case c == '\\':
			l.pos++
			if _, _, _, err := l.scanEscape(&b, true); err != nil {
				// 模板中的无效转义不是词法错误：cooked 置空，由解析器
				// 对未标记模板报错
				invalid = true
			}
		case c == '\r' || c == '\n':
			// cooked 值中 \r 与 \r\n 归一化为 \n
			b.WriteByte('\n')
			l.consumeLineTerminator()
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(l.source[l.pos:])
			if r == 0x2028 || r == 0x2029 {
				b.WriteRune(r)
				l.consumeLineTerminator()
			} else {
				b.WriteRune(r)
				l.pos += size
			}
		default:
			b.WriteByte(c)
			l.pos++
		}
	}
}

// ============= 数字 =============

// scanNumber 扫描数字字面量（十进制、0x/0o/0b、遗留八进制、BigInt）
func (l *Lexer) scanNumber() (Token, error) {
	start := l.pos
	src := l.source

	if src[l.pos] == '0' && l.pos+1 < len(src) {
		switch src[l.pos+1] {
		case 'x', 'X':
			return l.scanRadixNumber(start, 16)
		case 'o', 'O':
			return l.scanRadixNumber(start, 8)
		case 'b', 'B':
			return l.scanRadixNumber(start, 2)
		}
		if isDigit(src[l.pos+1]) {
			return l.scanLegacyOctal(start)
		}
	}

	// 十进制
	digits, err := l.scanDigits(10, true)
	if err != nil {
		return Token{}, err
	}
	isInt := true
	if l.pos < len(src) && src[l.pos] == '.' {
		isInt = false
		l.pos++
		if l.pos < len(src) && isDigit(src[l.pos]) {
			frac, err := l.scanDigits(10, true)
			if err != nil {
				return Token{}, err
			}
			digits += "." + frac
		} else {
			digits += "."
		}
	}
	if l.pos < len(src) && (src[l.pos] == 'e' || src[l.pos] == 'E') {
		isInt = false
		expStart := l.pos
		l.pos++
		sign := ""
		if l.pos < len(src) && (src[l.pos] == '+' || src[l.pos] == '-') {
			sign = string(src[l.pos])
			l.pos++
		}
		if l.pos >= len(src) || !isDigit(src[l.pos]) {
			return Token{}, l.lexError(expStart, "invalid number literal")
		}
		exp, err := l.scanDigits(10, true)
		if err != nil {
			return Token{}, err
		}
		digits += "e" + sign + exp
	}

	// BigInt 后缀
	if l.pos < len(src) && src[l.pos] == 'n' {
		if !isInt || (len(digits) > 1 && digits[0] == '0') {
			return Token{}, l.lexError(start, "invalid BigInt literal")
		}
		l.pos++
		if err := l.checkNumberBoundary(); err != nil {
			return Token{}, err
		}
		tok := l.makeToken(T_BIGINT, start, src[start:l.pos])
		tok.BigInt = normalizeBigInt(digits, 10)
		return tok, nil
	}

	if err := l.checkNumberBoundary(); err != nil {
		return Token{}, err
	}
	val, perr := strconv.ParseFloat(digits, 64)
	if perr != nil {
		return Token{}, l.lexError(start, "invalid number literal")
	}
	tok := l.makeToken(T_NUMBER, start, src[start:l.pos])
	tok.Number = val
	return tok, nil
}

// scanRadixNumber 扫描 0x/0o/0b 前缀数字
func (l *Lexer) scanRadixNumber(start int, radix int) (Token, error) {
	l.pos += 2
	digits, err := l.scanDigits(radix, true)
	if err != nil {
		return Token{}, err
	}
	if digits == "" {
		return Token{}, l.lexError(start, "invalid number literal")
	}

	if l.pos < len(l.source) && l.source[l.pos] == 'n' {
		l.pos++
		if err := l.checkNumberBoundary(); err != nil {
			return Token{}, err
		}
		tok := l.makeToken(T_BIGINT, start, l.source[start:l.pos])
		tok.BigInt = normalizeBigInt(digits, radix)
		return tok, nil
	}

	if err := l.checkNumberBoundary(); err != nil {
		return Token{}, err
	}
	i := new(big.Int)
	if _, ok := i.SetString(digits, radix); !ok {
		return Token{}, l.lexError(start, "invalid number literal")
	}
	f, _ := new(big.Float).SetInt(i).Float64()
	tok := l.makeToken(T_NUMBER, start, l.source[start:l.pos])
	tok.Number = f
	return tok, nil
}

// scanLegacyOctal 扫描 0 开头的遗留八进制（或含 8/9 的十进制）
func (l *Lexer) scanLegacyOctal(start int) (Token, error) {
	l.pos++ // '0'
	octal := true
	for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
		if l.source[l.pos] >= '8' {
			octal = false
		}
		l.pos++
	}
	if err := l.checkNumberBoundary(); err != nil {
		return Token{}, err
	}
	text := l.source[start:l.pos]
	var val float64
	if octal {
		i := new(big.Int)
		i.SetString(text[1:], 8)
		val, _ = new(big.Float).SetInt(i).Float64()
	} else {
		val, _ = strconv.ParseFloat(text, 64)
	}
	tok := l.makeToken(T_NUMBER, start, text)
	tok.Number = val
	tok.LegacyOctal = true
	return tok, nil
}

// scanDigits 扫描一串数字，处理数字分隔符 _
func (l *Lexer) scanDigits(radix int, allowSep bool) (string, error) {
	var b strings.Builder
	lastSep := false
	any := false
	for l.pos < len(l.source) {
		c := l.source[l.pos]
		if c == '_' {
			if !allowSep || !any || lastSep {
				return "", l.lexError(l.pos, "invalid numeric separator")
			}
			lastSep = true
			l.pos++
			continue
		}
		var ok bool
		switch {
		case radix == 16:
			_, ok = hexValue(c)
		case radix == 10:
			ok = isDigit(c)
		case radix == 8:
			ok = c >= '0' && c <= '7'
		case radix == 2:
			ok = c == '0' || c == '1'
		}
		if !ok {
			break
		}
		b.WriteByte(c)
		lastSep = false
		any = true
		l.pos++
	}
	if lastSep {
		return "", l.lexError(l.pos-1, "invalid numeric separator")
	}
	return b.String(), nil
}

// checkNumberBoundary 数字后不得紧跟标识符起始字符或数字
func (l *Lexer) checkNumberBoundary() error {
	if l.pos >= len(l.source) {
		return nil
	}
	c := l.source[l.pos]
	if isIdentStartByte(c) || isDigit(c) {
		return l.lexError(l.pos, "identifier starts immediately after numeric literal")
	}
	if c >= utf8.RuneSelf {
		r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
		if isIdentStartRune(r) {
			return l.lexError(l.pos, "identifier starts immediately after numeric literal")
		}
	}
	return nil
}

// normalizeBigInt 把任意进制的 BigInt 文本归一化为十进制字符串
func normalizeBigInt(digits string, radix int) string {
	i := new(big.Int)
	i.SetString(digits, radix)
	return i.String()
}

// ============= 正则表达式 =============

// scanRegex 扫描正则字面量，l.pos 指向开头的 /
func (l *Lexer) scanRegex() (Token, error) {
	start := l.pos
	l.pos++
	inClass := false
	for {
		if l.pos >= len(l.source) || isLineTerminatorAt(l.source, l.pos) {
			return Token{}, l.lexError(start, "unterminated regular expression")
		}
		c := l.source[l.pos]
		if c == '\\' {
			l.pos++
			if l.pos >= len(l.source) || isLineTerminatorAt(l.source, l.pos) {
				return Token{}, l.lexError(start, "unterminated regular expression")
			}
			l.pos++
			continue
		}
		if c == '[' {
			inClass = true
		} else if c == ']' {
			inClass = false
		} else if c == '/' && !inClass {
			break
		}
		if c >= utf8.RuneSelf {
			_, size := utf8.DecodeRuneInString(l.source[l.pos:])
			l.pos += size
		} else {
			l.pos++
		}
	}
	bodyEnd := l.pos
	l.pos++ // closing '/'

	flagStart := l.pos
	for l.pos < len(l.source) {
		c := l.source[l.pos]
		if c < utf8.RuneSelf && isIdentPartByte(c) {
			l.pos++
			continue
		}
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(l.source[l.pos:])
			if isIdentPartRune(r) {
				l.pos += size
				continue
			}
		}
		break
	}
	flags := l.source[flagStart:l.pos]
	if err := l.validateRegexFlags(flags, flagStart); err != nil {
		return Token{}, err
	}

	tok := l.makeToken(T_REGEX, start, l.source[start:l.pos])
	tok.Pattern = l.source[start+1 : bodyEnd]
	tok.Flags = flags
	return tok, nil
}

func (l *Lexer) validateRegexFlags(flags string, offset int) error {
	seen := map[rune]bool{}
	for _, r := range flags {
		if !strings.ContainsRune("dgimsuvy", r) || seen[r] {
			return l.lexError(offset, "invalid regular expression flags")
		}
		seen[r] = true
	}
	if seen['u'] && seen['v'] {
		return l.lexError(offset, "invalid regular expression flags")
	}
	return nil
}
