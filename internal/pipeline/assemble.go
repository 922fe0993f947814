package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"actdex/internal"
	"actdex/internal/util"
)

const minProvisionLen = 5

// Lifecycle status strings as the register reports them, mapped to the
// four-valued enum. Anything unrecognized is treated as in force.
var statusLookup = map[string]internal.DocumentStatus{
	"in force":           internal.StatusInForce,
	"in_force":           internal.StatusInForce,
	"current":            internal.StatusInForce,
	"amended":            internal.StatusAmended,
	"superseded":         internal.StatusAmended,
	"repealed":           internal.StatusRepealed,
	"ceased":             internal.StatusRepealed,
	"no longer in force": internal.StatusRepealed,
	"not_yet_in_force":   internal.StatusNotYetInForce,
	"not yet in force":   internal.StatusNotYetInForce,
	"not yet commenced":  internal.StatusNotYetInForce,
	"forthcoming":        internal.StatusNotYetInForce,
}

func MapStatus(raw string) internal.DocumentStatus {
	if s, ok := statusLookup[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return internal.StatusInForce
}

var trailingYearPattern = regexp.MustCompile(`\s+\d{4}$`)

// BuildAct runs the full parse: heading scan, segmentation, per-section
// content extraction, conditional definition extraction, and assembly into
// the normalized record. It is total over its input: any markup string
// yields a valid, possibly empty, record. Duplicate provision references
// keep the first occurrence only; sections whose content falls below five
// characters are dropped entirely.
func BuildAct(markup string, doc internal.DocumentDescriptor, ver *internal.VersionMeta) internal.Act {
	headings := ScanHeadings(markup)
	seg := SegmentSections(markup, headings)

	act := internal.Act{
		ID:                    doc.ID,
		Type:                  "statute",
		Title:                 doc.Title,
		TitleInSourceLanguage: doc.Title,
		ShortName:             trailingYearPattern.ReplaceAllString(doc.Title, ""),
		SourceURL:             doc.SourceURL,
		Provisions:            []internal.Provision{},
		Definitions:           []internal.Definition{},
	}

	status := doc.Status
	issued := util.NormalizeDate("", doc.Year)
	inForce := issued
	registerID, compilation := "unknown", "unknown"
	if ver != nil {
		if ver.Status != nil {
			status = MapStatus(*ver.Status)
		}
		if ver.MakingDate != nil {
			issued = util.NormalizeDate(*ver.MakingDate, doc.Year)
		}
		if ver.StartDate != nil {
			inForce = util.NormalizeDate(*ver.StartDate, doc.Year)
		}
		if ver.RegisterID != nil {
			registerID = *ver.RegisterID
		}
		if ver.CompilationNo != nil {
			compilation = *ver.CompilationNo
		}
	}
	act.Status = status
	act.IssuedDate = issued
	act.InForceDate = inForce
	act.Description = fmt.Sprintf("%s (register id %s, compilation %s)", doc.Title, registerID, compilation)

	seen := map[string]struct{}{}
	for _, sec := range seg.Sections {
		ref := "s" + sec.Number
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}

		body := markup[sec.BodyStart:sec.BodyEnd]
		content := ExtractContent(body)
		if len([]rune(content)) < minProvisionLen {
			continue
		}

		act.Provisions = append(act.Provisions, internal.Provision{
			Ref:     ref,
			Chapter: sec.Context.Label(),
			Section: sec.Number,
			Title:   sec.Title,
			Content: content,
		})
		if IsDefinitionsSection(sec.Title) {
			act.Definitions = append(act.Definitions, ExtractDefinitions(body, ref)...)
		}
	}
	return act
}
