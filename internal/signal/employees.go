package signal

import (
	"regexp"
	"strings"
)

// Employee is one entry of the numbered senior-team listing some
// sheets pack into the senior_employee_linkedin_profile column:
//
//	1. First name: Ada  Linkedin url: https://...  Current Title: CTO
type Employee struct {
	Name     string `json:"name"`
	Linkedin string `json:"linkedin"`
	Title    string `json:"title"`
}

var (
	employeeStart = regexp.MustCompile(`(?i)\d+\.\s*First name\s*:`)
	employeeBody  = regexp.MustCompile(`(?is)^\s*(.+?)\s*Linkedin url\s*:\s*(https?://\S+)\s*Current Title\s*:\s*(.+?)\s*$`)
)

// ParseEmployees extracts employee entries from the free-text column.
// Text that doesn't follow the numbered format yields nil; callers
// fall back to showing the raw text.
func ParseEmployees(text string) []Employee {
	if text == "" {
		return nil
	}

	starts := employeeStart.FindAllStringIndex(text, -1)
	var out []Employee
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		m := employeeBody.FindStringSubmatch(text[loc[1]:end])
		if m == nil {
			continue
		}
		out = append(out, Employee{
			Name:     strings.TrimSpace(m[1]),
			Linkedin: strings.TrimSpace(m[2]),
			Title:    strings.TrimSpace(m[3]),
		})
	}
	return out
}
