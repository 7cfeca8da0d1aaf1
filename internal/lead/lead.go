// Package lead holds the typed record for the general scraping sheet
// (12 canonical columns) and its header mapping.
package lead

import (
	"strings"

	"github.com/2024eb03012-afk/recruitment-os/internal/sheet"
)

// Canonical field keys for the lead sheet.
const (
	KeyCompanyName        = "companyName"
	KeyJobType            = "jobType"
	KeyCity               = "city"
	KeyJD                 = "jd"
	KeyCompanyJobURL      = "companyJobUrl"
	KeySalary             = "salary"
	KeyCompanyDescription = "companyDescription"
	KeyTitle              = "title"
	KeyMatchScore         = "matchScore"
	KeyWebsite            = "website"
	KeyDecisionMakerEmail = "decisionMakerEmail"
	KeyOutreachEmailText  = "outreachEmailText"
)

// Columns lists the canonical keys in sheet column order.
var Columns = []string{
	KeyCompanyName,
	KeyJobType,
	KeyCity,
	KeyJD,
	KeyCompanyJobURL,
	KeySalary,
	KeyCompanyDescription,
	KeyTitle,
	KeyMatchScore,
	KeyWebsite,
	KeyDecisionMakerEmail,
	KeyOutreachEmailText,
}

// headerToKey maps sheet display headers (trimmed, spaces collapsed)
// to canonical keys. Headers not listed here pass through with their
// cleaned text as the key, so extra sheet columns survive.
var headerToKey = map[string]string{
	"Company name":         KeyCompanyName,
	"Job type":             KeyJobType,
	"City":                 KeyCity,
	"JD":                   KeyJD,
	"Company job url":      KeyCompanyJobURL,
	"Salary":               KeySalary,
	"Company descriptions": KeyCompanyDescription,
	"Title":                KeyTitle,
	"Match score analysis": KeyMatchScore,
	"Website":              KeyWebsite,
	"Decision maker email": KeyDecisionMakerEmail,
	"Outreach email text":  KeyOutreachEmailText,
}

// Lead is one mapped row of the general scraping sheet. All fields are
// strings; numeric interpretation of the match score happens at
// aggregation/render time.
type Lead struct {
	CompanyName        string `json:"companyName"`
	JobType            string `json:"jobType"`
	City               string `json:"city"`
	JD                 string `json:"jd"`
	CompanyJobURL      string `json:"companyJobUrl"`
	Salary             string `json:"salary"`
	CompanyDescription string `json:"companyDescription"`
	Title              string `json:"title"`
	MatchScore         string `json:"matchScore"`
	Website            string `json:"website"`
	DecisionMakerEmail string `json:"decisionMakerEmail"`
	OutreachEmailText  string `json:"outreachEmailText"`

	// Extra keeps values of unmapped sheet columns, keyed by their
	// cleaned header text.
	Extra map[string]string `json:"extra,omitempty"`
}

// Key identifies the lead for edit-overlay matching.
func (l *Lead) Key() string {
	return l.CompanyName + "|" + l.Title
}

// Field returns the value of a canonical (or extra) field.
func (l *Lead) Field(name string) string {
	switch name {
	case KeyCompanyName:
		return l.CompanyName
	case KeyJobType:
		return l.JobType
	case KeyCity:
		return l.City
	case KeyJD:
		return l.JD
	case KeyCompanyJobURL:
		return l.CompanyJobURL
	case KeySalary:
		return l.Salary
	case KeyCompanyDescription:
		return l.CompanyDescription
	case KeyTitle:
		return l.Title
	case KeyMatchScore:
		return l.MatchScore
	case KeyWebsite:
		return l.Website
	case KeyDecisionMakerEmail:
		return l.DecisionMakerEmail
	case KeyOutreachEmailText:
		return l.OutreachEmailText
	}
	return l.Extra[name]
}

// SetField assigns a canonical field; unknown names land in Extra so
// open-ended sheet columns are preserved. Returns false only for an
// empty name.
func (l *Lead) SetField(name, value string) bool {
	switch name {
	case "":
		return false
	case KeyCompanyName:
		l.CompanyName = value
	case KeyJobType:
		l.JobType = value
	case KeyCity:
		l.City = value
	case KeyJD:
		l.JD = value
	case KeyCompanyJobURL:
		l.CompanyJobURL = value
	case KeySalary:
		l.Salary = value
	case KeyCompanyDescription:
		l.CompanyDescription = value
	case KeyTitle:
		l.Title = value
	case KeyMatchScore:
		l.MatchScore = value
	case KeyWebsite:
		l.Website = value
	case KeyDecisionMakerEmail:
		l.DecisionMakerEmail = value
	case KeyOutreachEmailText:
		l.OutreachEmailText = value
	default:
		if l.Extra == nil {
			l.Extra = make(map[string]string)
		}
		l.Extra[name] = value
	}
	return true
}

// MapRows converts parsed CSV rows into leads. The first row is the
// header row. A data row is kept only if at least one of its mapped
// values is non-empty after trimming; fewer than two rows yield no
// records, not an error.
func MapRows(rows [][]string) []*Lead {
	if len(rows) < 2 {
		return nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = sheet.CollapseSpaces(h)
	}

	var out []*Lead
	for _, row := range rows[1:] {
		l := &Lead{}
		any := false
		for i, h := range headers {
			key, ok := headerToKey[h]
			if !ok {
				key = h
			}
			var v string
			if i < len(row) {
				v = row[i]
			}
			l.SetField(key, v)
			if strings.TrimSpace(v) != "" {
				any = true
			}
		}
		if any {
			out = append(out, l)
		}
	}
	return out
}
