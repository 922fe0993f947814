package pipeline

import (
	"regexp"
	"strings"

	"actdex/internal"
	"actdex/internal/util"
)

const (
	maxDefinitionLen = 4000
	maxTermLen       = 100
)

var definitionClasses = []string{"Definition", "Defn"}

var definitionFragmentPattern = fragmentPattern(definitionClasses)

// First emphasized span of a fragment: a b/i/em/strong element, or a span
// whose inline style carries an italic font-style declaration.
var emphasisPattern = regexp.MustCompile(
	`(?is)<(?:b|i|em|strong)(?:\s[^>]*)?>(.*?)</(?:b|i|em|strong)>|<span[^>]*style="[^"]*font-style:\s*italic[^"]*"[^>]*>(.*?)</span>`)

// IsDefinitionsSection reports whether a section title signals a
// definitions section.
func IsDefinitionsSection(title string) bool {
	t := strings.ToLower(title)
	return strings.Contains(t, "interpretation") || strings.Contains(t, "definition")
}

// ExtractDefinitions pulls (term, definition) pairs out of the
// definition-class fragments of a section body. The definition text is the
// whole normalized fragment; the term is the first emphasized span inside
// it. Fragments without an emphasized span, or whose term is a single
// character or 100 characters and over, contribute nothing. Pairs are not
// deduplicated.
func ExtractDefinitions(body, sourceRef string) []internal.Definition {
	out := []internal.Definition{}
	for _, m := range definitionFragmentPattern.FindAllStringSubmatch(body, -1) {
		raw := m[1]
		term := firstEmphasizedTerm(raw)
		if n := len([]rune(term)); n <= 1 || n >= maxTermLen {
			continue
		}
		out = append(out, internal.Definition{
			Term:            term,
			Definition:      util.Truncate(util.CleanFragment(raw), maxDefinitionLen),
			SourceProvision: sourceRef,
		})
	}
	return out
}

func firstEmphasizedTerm(raw string) string {
	m := emphasisPattern.FindStringSubmatchIndex(raw)
	if m == nil {
		return ""
	}
	if m[2] >= 0 {
		return util.CleanFragment(raw[m[2]:m[3]])
	}
	return util.CleanFragment(raw[m[4]:m[5]])
}
