package pipeline

import (
	"regexp"
	"strings"

	"actdex/internal"
)

// Covers section numbers like 6, 2A, 476.2, 3LA.
var sectionNumberPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?[A-Za-z]*)\s+(.+)$`)

// SegmentResult carries the section units plus the texts of section-level
// headings that failed the number pattern. Skipped headings contribute no
// section; they are surfaced for logging only.
type SegmentResult struct {
	Sections []internal.Section
	Skipped  []string
}

// SegmentSections folds over the heading stream in a single forward pass.
// Levels 1-2 set the current part and clear the division, levels 3-4 set
// the division, level 5 emits a section carrying the context snapshot as it
// stood before the heading. A section's body runs from the end of its own
// marker to the start of the next marker of any level, or end of document.
func SegmentSections(markup string, headings []internal.Heading) SegmentResult {
	res := SegmentResult{}
	ctx := internal.StructuralContext{}

	for i, h := range headings {
		switch {
		case h.Level <= 2:
			ctx.Part = h.Text
			ctx.Division = ""
		case h.Level <= 4:
			ctx.Division = h.Text
		case h.Level == 5:
			m := sectionNumberPattern.FindStringSubmatch(h.Text)
			if m == nil {
				res.Skipped = append(res.Skipped, h.Text)
				continue
			}
			bodyEnd := len(markup)
			if i+1 < len(headings) {
				bodyEnd = headings[i+1].Start
			}
			res.Sections = append(res.Sections, internal.Section{
				Number:    m[1],
				Title:     strings.TrimSpace(m[2]),
				BodyStart: h.End,
				BodyEnd:   bodyEnd,
				Context:   ctx,
				Position:  len(res.Sections),
			})
		}
	}
	return res
}
