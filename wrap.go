package main

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// cells measures display width the same way in every locale.
var cells = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// wrapTree packs tokens joined by '|' into lines of at most width cells.
// The first line starts with first, the rest with cont. A token too wide for
// an empty line is cut and marked with an ellipsis.
func wrapTree(tokens []string, width int, first, cont string) string {
	if len(tokens) == 0 {
		return ""
	}

	var lines []string
	var line strings.Builder
	prefix := first
	budget := width - cells.StringWidth(first)
	used := 0

	for i, tok := range tokens {
		item := tok
		if i < len(tokens)-1 {
			item += "|"
		}
		w := cells.StringWidth(item)

		if used > 0 && used+w > budget {
			lines = append(lines, prefix+line.String())
			line.Reset()
			used = 0
			prefix = cont
			budget = width - cells.StringWidth(cont)
		}
		if w > budget {
			item = cells.Truncate(item, budget, ellipsis)
			w = cells.StringWidth(item)
		}

		line.WriteString(item)
		used += w
	}
	lines = append(lines, prefix+line.String())

	return strings.Join(lines, "\n")
}

// wrapInline renders items as `a`, `b`, `c` over as many lines as needed,
// each line starting with indent.
func wrapInline(items []string, width int, indent string) string {
	if len(items) == 0 {
		return ""
	}

	var lines []string
	var line strings.Builder
	budget := width - cells.StringWidth(indent)
	used := 0

	flush := func() {
		lines = append(lines, indent+strings.TrimRight(line.String(), " "))
		line.Reset()
		used = 0
	}

	for i, it := range items {
		item := "`" + it + "`"
		if i < len(items)-1 {
			item += ", "
		}
		fit := cells.StringWidth(strings.TrimRight(item, " "))

		if used > 0 && used+fit > budget {
			flush()
		}
		line.WriteString(item)
		used += cells.StringWidth(item)
	}
	flush()

	return strings.Join(lines, "\n")
}
