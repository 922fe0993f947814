package pipeline

import (
	"regexp"

	"actdex/internal"
	"actdex/internal/util"
)

// Two heading families exist in the register: ActHead1..9 on current
// documents and LegHead1..9 on pre-2000 compilations. The trailing digit is
// the nominal level; 9 is a legacy deep-nesting marker that carries
// section-level headings and folds into level 5. Any other class suffix is
// not a heading at all.
var headingPattern = regexp.MustCompile(
	`(?s)<(?:p|h[1-6]|div)[^>]*class="[^"]*\b((?:ActHead|LegHead)([1-9]))\b[^"]*"[^>]*>(.*?)</(?:p|h[1-6]|div)>`)

// ScanHeadings returns every recognized heading marker in document order,
// with normalized text and the byte span of the full matched marker. It
// never fails; markup with no headings yields an empty slice.
func ScanHeadings(markup string) []internal.Heading {
	matches := headingPattern.FindAllStringSubmatchIndex(markup, -1)
	out := make([]internal.Heading, 0, len(matches))
	for _, m := range matches {
		class := markup[m[2]:m[3]]
		level := int(markup[m[4]]) - '0'
		if level == 9 {
			level = 5
		}
		out = append(out, internal.Heading{
			Class: class,
			Level: level,
			Text:  util.CleanFragment(markup[m[6]:m[7]]),
			Start: m[0],
			End:   m[1],
		})
	}
	return out
}
