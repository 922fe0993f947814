package pipeline

import (
	"strings"
	"testing"
)

func TestExtractContentJoinsFragments(t *testing.T) {
	body := `<p class="subsection">(1) A person must not do the thing.</p>` +
		`<p class="paragraph">(a) unless permitted; or</p>` +
		`<p class="penalty">Penalty: 50 penalty units.</p>` +
		`<div class="decoration">ignored, wrong class</div>`
	got := ExtractContent(body)
	want := "(1) A person must not do the thing. (a) unless permitted; or Penalty: 50 penalty units."
	if got != want {
		t.Fatalf("got %q", got)
	}
}

func TestExtractContentDropsNoiseFragments(t *testing.T) {
	body := `<p class="subsection">..</p><p class="subsection">real content here</p>`
	if got := ExtractContent(body); got != "real content here" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractContentLegacyClasses(t *testing.T) {
	body := `<p class="Indent">Access to data is unauthorised.</p><p class="Item">Item text.</p>`
	if got := ExtractContent(body); got != "Access to data is unauthorised. Item text." {
		t.Fatalf("got %q", got)
	}
}

func TestExtractContentUnknownNumericReference(t *testing.T) {
	// unrecognized numeric character references inside a class fragment
	// decode to a single space, same as everywhere else
	if got := ExtractContent(`<p class="subsection">a &#99999; b</p>`); got != "a b" {
		t.Fatalf("got %q", got)
	}
}

func TestExtractContentLegacyDefnClass(t *testing.T) {
	body := `<p class="Defn"><b>agency</b> means a Department.</p><p>unrelated filler text</p>`
	if got := ExtractContent(body); got != "agency means a Department." {
		t.Fatalf("got %q", got)
	}
}

func TestExtractContentFallback(t *testing.T) {
	// 50 chars of plain paragraph, no recognized class anywhere
	body := `<p>This plain paragraph is fifty characters long ok.</p>`
	got := ExtractContent(body)
	if got != "This plain paragraph is fifty characters long ok." {
		t.Fatalf("got %q", got)
	}

	// below the 10-character fallback floor
	if got := ExtractContent(`<p>tiny one</p>`); got != "" {
		t.Fatalf("short fallback accepted: %q", got)
	}
}

func TestExtractContentCap(t *testing.T) {
	body := `<p class="subsection">` + strings.Repeat("x", 9000) + `</p>`
	if got := ExtractContent(body); len([]rune(got)) != 8000 {
		t.Fatalf("len=%d", len([]rune(got)))
	}
}

func TestExtractContentEmptyBody(t *testing.T) {
	if got := ExtractContent(""); got != "" {
		t.Fatalf("got %q", got)
	}
}
