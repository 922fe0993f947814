package util

import "testing"

func TestCleanFragment(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`<p class="subsection">Hello <b>world</b></p>`, "Hello world"},
		{"Part&nbsp;I&#8212;Preliminary", "Part I—Preliminary"},
		{"&ldquo;quoted&rdquo; &amp; &lt;escaped&gt;", "“quoted” & <escaped>"},
		{"a &#99999; b", "a b"},
		{"  lots \t of \n space  ", "lots of space"},
		{"", ""},
		{"<br/><hr/>", ""},
	}
	for _, c := range cases {
		if got := CleanFragment(c.in); got != c.want {
			t.Fatalf("CleanFragment(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanFragmentDecodedNbspCollapses(t *testing.T) {
	if got := CleanFragment("6&nbsp;&nbsp;Interpretation"); got != "6 Interpretation" {
		t.Fatalf("got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 4); got != "abcd" {
		t.Fatalf("got %q", got)
	}
	if got := Truncate("abc", 4); got != "abc" {
		t.Fatalf("got %q", got)
	}
	// rune boundary, not byte boundary
	if got := Truncate("ééééé", 3); got != "ééé" {
		t.Fatalf("got %q", got)
	}
}
