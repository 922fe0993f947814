package pipeline

import (
	"regexp"
	"strings"

	"actdex/internal/util"
)

const (
	maxContentLen  = 8000
	minFragmentLen = 3
	minFallbackLen = 11
)

// Style classes whose fragments count as body content. The first group is
// the current register format, the second the legacy one; both are checked
// at this single point so a new era only needs a new row here.
var contentClasses = []string{
	"subsection", "subsection2", "paragraph", "paragraphsub",
	"Definition", "penalty", "notetext", "notemore",
	"Tabletext", "TableHeading",

	"Indent", "Indenta", "Item", "ItemHead", "Emphasis", "Defn",
}

var contentFragmentPattern = fragmentPattern(contentClasses)

// fragmentPattern builds the scanner for block-level fragments carrying one
// of the given style classes. The raw inner markup is captured so that
// entity decoding stays with the Text Normalizer; inline tags inside a
// fragment never terminate the match.
func fragmentPattern(classes []string) *regexp.Regexp {
	return regexp.MustCompile(
		`(?s)<(?:p|div|td|th|li)[^>]*class="[^"]*\b(?:` + strings.Join(classes, "|") + `)\b[^"]*"[^>]*>(.*?)</(?:p|div|td|th|li)>`)
}

// ExtractContent assembles a section's content text from its body span.
// Recognized-class fragments are normalized and joined in discovery order;
// fragments of two characters or fewer are noise and dropped. When the body
// has no recognized fragment at all, the whole span normalized is used as a
// degraded fallback, accepted only above ten characters. The result is
// capped at 8000 characters.
func ExtractContent(body string) string {
	parts := []string{}
	for _, m := range contentFragmentPattern.FindAllStringSubmatch(body, -1) {
		text := util.CleanFragment(m[1])
		if len([]rune(text)) < minFragmentLen {
			continue
		}
		parts = append(parts, text)
	}

	content := strings.Join(parts, " ")
	if len(parts) == 0 {
		if whole := util.CleanFragment(body); len([]rune(whole)) >= minFallbackLen {
			content = whole
		}
	}
	return util.Truncate(content, maxContentLen)
}
