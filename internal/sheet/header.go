package sheet

import "strings"

// CollapseSpaces trims a header and squeezes internal whitespace runs
// (including non-breaking spaces) down to single spaces.
func CollapseSpaces(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

// Slugify lowercases a header and replaces every run of
// non-alphanumeric characters with a single underscore, with no
// leading or trailing underscore. "Company Name " -> "company_name".
func Slugify(s string) string {
	var b strings.Builder
	gap := false
	for _, r := range strings.ToLower(s) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			gap = true
			continue
		}
		if gap && b.Len() > 0 {
			b.WriteByte('_')
		}
		gap = false
		b.WriteRune(r)
	}
	return b.String()
}
