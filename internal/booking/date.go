package booking

import "time"

const dateLayout = "2/1/2006"

const minYear = 1900

// ValidDate reports whether s is a calendar-valid d/m/yyyy date with a
// four-digit year of 1900 or later. Day and month may be one or two digits.
func ValidDate(s string) bool {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return false
	}

	return t.Year() >= minYear
}
