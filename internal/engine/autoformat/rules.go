package autoformat

import (
	"regexp"
	"unicode"

	"github.com/dshills/scribe/internal/engine/surface"
)

// BlockRule converts the caret's block when the text before the caret
// matches Pattern. The matched text is consumed.
type BlockRule struct {
	Name    string
	Pattern *regexp.Regexp
	Command surface.FormatCommand
	// Value derives the command value from the submatches. Nil means "".
	Value func(match []string) string
}

func (r BlockRule) value(match []string) string {
	if r.Value == nil {
		return ""
	}
	return r.Value(match)
}

// InlineRule formats the text between a pair of delimiters. Both delimiters
// are consumed.
type InlineRule struct {
	Name      string
	Delimiter string
	Command   surface.FormatCommand
}

var headingLevels = map[int]string{
	1: surface.BlockHeading1,
	2: surface.BlockHeading2,
	3: surface.BlockHeading3,
}

// DefaultBlockRules returns the heading and list shorthands. Only the literal
// "1. " starts a numbered list.
func DefaultBlockRules() []BlockRule {
	return []BlockRule{
		{
			Name:    "heading",
			Pattern: regexp.MustCompile(`^(#{1,3}) $`),
			Command: surface.CmdFormatBlock,
			Value: func(m []string) string {
				return headingLevels[len(m[1])]
			},
		},
		{
			Name:    "bulleted-list",
			Pattern: regexp.MustCompile(`^- $`),
			Command: surface.CmdInsertUnorderedList,
		},
		{
			Name:    "numbered-list",
			Pattern: regexp.MustCompile(`^1\. $`),
			Command: surface.CmdInsertOrderedList,
		},
	}
}

// DefaultInlineRules returns the inline shorthands in precedence order.
func DefaultInlineRules() []InlineRule {
	return []InlineRule{
		{Name: "bold", Delimiter: "**", Command: surface.CmdBold},
		{Name: "strikethrough", Delimiter: "~~", Command: surface.CmdStrikethrough},
		{Name: "italic", Delimiter: "*", Command: surface.CmdItalic},
	}
}

// findSpan locates an inline span closed by delim at the end of before. It
// returns the offset of the opening delimiter.
//
// A single-character delimiter never closes on the second character of a
// doubled delimiter and never opens right after another copy of itself.
func findSpan(before, delim []rune) (int, bool) {
	d := len(delim)
	n := len(before)
	if d == 0 || n < 2*d || !hasSuffix(before, delim) {
		return 0, false
	}
	closing := n - d
	single := d == 1
	if single && closing > 0 && before[closing-1] == delim[0] {
		return 0, false
	}
	open := lastIndex(before[:closing], delim)
	if open < 0 {
		return 0, false
	}
	if single && open > 0 && before[open-1] == delim[0] {
		return 0, false
	}
	if isBlank(before[open+d : closing]) {
		return 0, false
	}
	return open, true
}

func hasSuffix(s, suffix []rune) bool {
	if len(suffix) > len(s) {
		return false
	}
	off := len(s) - len(suffix)
	for i, r := range suffix {
		if s[off+i] != r {
			return false
		}
	}
	return true
}

func lastIndex(s, sub []rune) int {
outer:
	for i := len(s) - len(sub); i >= 0; i-- {
		for j, r := range sub {
			if s[i+j] != r {
				continue outer
			}
		}
		return i
	}
	return -1
}

func isBlank(s []rune) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
