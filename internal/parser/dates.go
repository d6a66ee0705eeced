// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"fmt"
	"regexp"
	"time"
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizeDate converts a variable-precision numeric date string into an
// ISO calendar date. Eight or more digits read as YYYYMMDD, six as YYYYMM,
// four as YYYY; missing precision fills with January the 1st. Anything
// shorter falls back to January 1st of the current year. Best-effort and
// lossy: it never fails and always returns a well-formed date string.
func NormalizeDate(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")

	switch {
	case len(digits) >= 8:
		return fmt.Sprintf("%s-%s-%s", digits[:4], digits[4:6], digits[6:8])
	case len(digits) >= 6:
		return fmt.Sprintf("%s-%s-01", digits[:4], digits[4:6])
	case len(digits) >= 4:
		return fmt.Sprintf("%s-01-01", digits[:4])
	default:
		return DefaultDate()
	}
}

// DefaultDate returns January 1st of the current year, the fallback for
// absent or unusable source dates.
func DefaultDate() string {
	return fmt.Sprintf("%d-01-01", time.Now().Year())
}
