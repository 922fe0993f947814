package util

import (
	"fmt"
	"strings"
	"time"
)

// Date formats observed across register vintages.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2 January 2006",
	"02 January 2006",
	"2 Jan 2006",
}

// NormalizeDate renders a source date string as YYYY-MM-DD. Unparseable or
// empty input falls back to the first of January of fallbackYear.
func NormalizeDate(input string, fallbackYear int) string {
	s := strings.TrimSpace(input)
	if s != "" {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format("2006-01-02")
			}
		}
	}
	return fmt.Sprintf("%04d-01-01", fallbackYear)
}
