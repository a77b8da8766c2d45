package vargen

import (
	"math"
	"math/bits"
	"strings"
	"unicode"
)

const (
	openBracket  = '['
	closeBracket = ']'
	separator    = '|'
)

// ═══════════════════════════════════════════════════════════════════════════
// 语法扫描
// ═══════════════════════════════════════════════════════════════════════════

// MatchBracket 返回 text[open] 处 "[" 的配对 "]" 下标。
//
// 每个 "[" 深度加一，每个 "]" 深度减一，深度回到零的位置即为配对位置。
// 找不到配对时返回 -1；open 不指向 "[" 时同样返回 -1。
func MatchBracket(text string, open int) int {
	if open < 0 || open >= len(text) || text[open] != openBracket {
		return -1
	}

	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case openBracket:
			depth++
		case closeBracket:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// Alternatives 按顶层 "|" 拆分备选组内容。
//
// 嵌套 "[...]" 内部的 "|" 不参与拆分。返回切片至少包含一个元素，
// 空备选项保留为空串，例如 "a||b" 拆分为 ["a", "", "b"]。
func Alternatives(body string) []string {
	alts := make([]string, 0, strings.Count(body, string(separator))+1)

	depth, start := 0, 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case openBracket:
			depth++
		case closeBracket:
			depth--
		case separator:
			if depth == 0 {
				alts = append(alts, body[start:i])
				start = i + 1
			}
		}
	}

	return append(alts, body[start:])
}

// group 定位 text 中最左侧的备选组。
//
// ok 为 false 表示没有可展开的组：要么不存在 "["，要么最左侧的 "[" 无法配对。
func group(text string) (prefix, body, suffix string, ok bool) {
	open := strings.IndexByte(text, openBracket)
	if open < 0 {
		return "", "", "", false
	}

	end := MatchBracket(text, open)
	if end < 0 {
		return "", "", "", false
	}

	return text[:open], text[open+1 : end], text[end+1:], true
}

// ═══════════════════════════════════════════════════════════════════════════
// 展开
// ═══════════════════════════════════════════════════════════════════════════

// expand 递归展开 text，不做空白归一化。
//
// 子串共享 text 的底层存储，递归过程中只有拼接结果时才分配。
func expand(text string) []string {
	prefix, body, suffix, ok := group(text)
	if !ok {
		return []string{text}
	}

	tails := expand(suffix)

	var out []string
	for _, alt := range Alternatives(body) {
		for _, head := range expand(alt) {
			for _, tail := range tails {
				out = append(out, prefix+head+tail)
			}
		}
	}

	return out
}

// Expand 返回模板的全部变体。
//
// 对最左侧备选组的每个备选项，递归展开该备选项与组后的剩余文本，
// 二者做笛卡尔积并拼接前缀。结果顺序：先按最左侧组的备选项序号，
// 再按剩余文本的展开顺序；重复结果保留。
//
// 每个结果最后经过 [Normalize]。任何输入都不会失败，空串展开为 [""]。
func Expand(template string) []string {
	variations := expand(template)
	for i, v := range variations {
		variations[i] = Normalize(v)
	}

	return variations
}

// Normalize 将连续空格合并为一个，并去掉首尾空白。
//
// 仅合并空格字符 ' '，制表符等其他空白只在首尾被去除。
// 首尾去除的空白除 Unicode 空白外还包括信息分隔符 U+001C–U+001F。
// 对结果再次调用 Normalize 不会产生变化。
func Normalize(s string) string {
	if !strings.Contains(s, "  ") {
		return strings.TrimFunc(s, isTrimSpace)
	}

	var buf strings.Builder
	buf.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == ' ' && i > 0 && s[i-1] == ' ' {
			continue
		}
		buf.WriteByte(s[i])
	}

	return strings.TrimFunc(buf.String(), isTrimSpace)
}

// isTrimSpace 在 unicode.IsSpace 之外把信息分隔符 U+001C–U+001F 也视为空白。
func isTrimSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// ═══════════════════════════════════════════════════════════════════════════
// 规模评估
// ═══════════════════════════════════════════════════════════════════════════

// Count 返回 [Expand] 将产生的变体数量，但不实际生成变体。
//
// 结果超出 uint64 范围时饱和为 math.MaxUint64。
func Count(template string) uint64 {
	_, body, suffix, ok := group(template)
	if !ok {
		return 1
	}

	tails := Count(suffix)

	var total uint64
	for _, alt := range Alternatives(body) {
		total = addSat(total, mulSat(Count(alt), tails))
	}

	return total
}

func addSat(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return math.MaxUint64
	}

	return sum
}

func mulSat(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return math.MaxUint64
	}

	return lo
}
