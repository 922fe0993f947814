package util

import (
	"regexp"
	"strings"
)

var (
	reTag        = regexp.MustCompile(`<[^>]*>`)
	reNumericRef = regexp.MustCompile(`&#x?[0-9a-fA-F]{1,7};`)
	reSpaces     = regexp.MustCompile(`[\s\x{00A0}]+`)
)

// The register serves a fixed set of named and numeric character
// references; anything numeric outside this table decodes to a space.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ", "&#160;", " ", "&#xA0;", " ",
	"&mdash;", "—", "&#8212;", "—",
	"&ndash;", "–", "&#8211;", "–",
	"&lsquo;", "‘", "&#8216;", "‘",
	"&rsquo;", "’", "&#8217;", "’",
	"&ldquo;", "“", "&#8220;", "“",
	"&rdquo;", "”", "&#8221;", "”",
	"&amp;", "&", "&#38;", "&",
	"&lt;", "<", "&#60;", "<",
	"&gt;", ">", "&#62;", ">",
	"&quot;", `"`, "&#34;", `"`,
	"&apos;", "'", "&#39;", "'",
)

// CleanFragment turns a raw markup fragment into plain text: tags stripped,
// character references decoded, whitespace collapsed. Total: any input
// yields a (possibly empty) string.
func CleanFragment(raw string) string {
	s := reTag.ReplaceAllString(raw, " ")
	s = entityReplacer.Replace(s)
	s = reNumericRef.ReplaceAllString(s, " ")
	return CollapseSpace(s)
}

// CollapseSpace squeezes runs of whitespace, decoded non-breaking spaces
// included, to a single ASCII space and trims the ends.
func CollapseSpace(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// Truncate caps a string at max characters, not bytes.
func Truncate(input string, max int) string {
	r := []rune(input)
	if len(r) <= max {
		return input
	}
	return string(r[:max])
}

func StringPtr(v string) *string { return &v }
