package compose

import (
	"strings"

	"golang.org/x/text/width"
)

// verticalForms maps punctuation to its dedicated vertical-orientation
// glyph variant (Unicode vertical forms and CJK brackets). Characters
// without an entry render unchanged.
var verticalForms = map[rune]rune{
	'，': '︐',
	'、': '︑',
	'。': '︒',
	'：': '︓',
	'；': '︔',
	'！': '︕',
	'？': '︖',
	'（': '︵',
	'）': '︶',
	'｛': '︷',
	'｝': '︸',
	'「': '﹁',
	'」': '﹂',
	'『': '﹃',
	'』': '﹄',
	'《': '︽',
	'》': '︾',
	'〈': '︿',
	'〉': '﹀',
	'【': '︻',
	'】': '︼',
	'—': '︱',
	'…': '︙',
}

// titleBracketOpen and titleBracketClose wrap the title column.
const (
	titleBracketOpen  = '﹁'
	titleBracketClose = '﹂'
)

// toVertical substitutes vertical-orientation glyph variants into s.
func toVertical(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if v, ok := verticalForms[r]; ok {
			b.WriteRune(v)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// clauseEnders are the sentence-ending and separator punctuation the
// vertical layout splits the main text at.
var clauseEnders = map[rune]bool{
	'。': true,
	'！': true,
	'？': true,
	'；': true,
	'，': true,
	'、': true,
	'\n': true,
}

// splitClauses splits text into clause-level fragments. Ending
// punctuation stays attached to its clause; newlines split silently.
func splitClauses(text string) []string {
	var clauses []string
	var cur []rune

	for _, r := range text {
		if r == '\n' {
			if len(cur) > 0 {
				clauses = append(clauses, string(cur))
				cur = cur[:0]
			}
			continue
		}
		cur = append(cur, r)
		if clauseEnders[r] {
			clauses = append(clauses, string(cur))
			cur = cur[:0]
		}
	}
	if len(cur) > 0 {
		clauses = append(clauses, string(cur))
	}
	return clauses
}

// runeEm returns the em-square width of a rune: 1 for fullwidth and wide
// characters, 0.5 for everything else.
func runeEm(r rune) float64 {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianFullwidth, width.EastAsianWide:
		return 1
	default:
		return 0.5
	}
}
