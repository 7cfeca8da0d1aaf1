// Package signal holds the typed record for the hiring-signal sheet
// (16 columns, slug-mapped headers) and its column mapping.
package signal

import (
	"strings"

	"github.com/2024eb03012-afk/recruitment-os/internal/sheet"
)

// Canonical field keys for the hiring-signal sheet.
const (
	KeyCompanyName         = "companyName"
	KeyCompanyWebsite      = "companyWebsite"
	KeyFundingAmount       = "fundingAmount"
	KeyFundingDate         = "fundingDate"
	KeyCompanySize         = "companySize"
	KeyIndustry            = "industry"
	KeyCompanyDescription  = "companyDescription"
	KeyTargetDecisionMaker = "targetDecisionMaker"
	KeyContactEmail        = "contactEmail"
	KeyCompanyLinkedin     = "companyLinkedin"
	KeyCompanyRecentNews   = "companyRecentNews"
	KeyOutreachMessage     = "outreachMessage"
	KeyHiringScore         = "hiringScore"
	KeyImpactLevel         = "impactLevel"
	KeyImpactType          = "impactType"
	KeySeniorLinkedin      = "seniorLinkedin"
)

// Column pairs a source header slug with its canonical key.
type Column struct {
	Slug string
	Key  string
}

// Columns lists the sheet columns in order. The comapany_recent_news
// slug reproduces the sheet's own header typo; fixing it here would
// silently blank the column.
var Columns = []Column{
	{"company_name", KeyCompanyName},
	{"company_website", KeyCompanyWebsite},
	{"funding_amount", KeyFundingAmount},
	{"funding_date", KeyFundingDate},
	{"company_size", KeyCompanySize},
	{"industry", KeyIndustry},
	{"company_description", KeyCompanyDescription},
	{"target_decision_maker", KeyTargetDecisionMaker},
	{"contact_email", KeyContactEmail},
	{"url_company_linkedin", KeyCompanyLinkedin},
	{"comapany_recent_news", KeyCompanyRecentNews},
	{"outreach_message", KeyOutreachMessage},
	{"predicted_hiring_score", KeyHiringScore},
	{"hiring_impact_level", KeyImpactLevel},
	{"hiring_impact_type", KeyImpactType},
	{"senior_employee_linkedin_profile", KeySeniorLinkedin},
}

// Signal is one mapped row of the hiring-signal sheet.
type Signal struct {
	CompanyName         string `json:"companyName"`
	CompanyWebsite      string `json:"companyWebsite"`
	FundingAmount       string `json:"fundingAmount"`
	FundingDate         string `json:"fundingDate"`
	CompanySize         string `json:"companySize"`
	Industry            string `json:"industry"`
	CompanyDescription  string `json:"companyDescription"`
	TargetDecisionMaker string `json:"targetDecisionMaker"`
	ContactEmail        string `json:"contactEmail"`
	CompanyLinkedin     string `json:"companyLinkedin"`
	CompanyRecentNews   string `json:"companyRecentNews"`
	OutreachMessage     string `json:"outreachMessage"`
	HiringScore         string `json:"hiringScore"`
	ImpactLevel         string `json:"impactLevel"`
	ImpactType          string `json:"impactType"`
	SeniorLinkedin      string `json:"seniorLinkedin"`
}

// Key identifies the signal for overlay matching. Signals have no job
// title, so the contact email stands in as the second key part.
func (s *Signal) Key() string {
	return s.CompanyName + "|" + s.ContactEmail
}

// Field returns the value of a canonical field, or "" for unknown
// names.
func (s *Signal) Field(name string) string {
	switch name {
	case KeyCompanyName:
		return s.CompanyName
	case KeyCompanyWebsite:
		return s.CompanyWebsite
	case KeyFundingAmount:
		return s.FundingAmount
	case KeyFundingDate:
		return s.FundingDate
	case KeyCompanySize:
		return s.CompanySize
	case KeyIndustry:
		return s.Industry
	case KeyCompanyDescription:
		return s.CompanyDescription
	case KeyTargetDecisionMaker:
		return s.TargetDecisionMaker
	case KeyContactEmail:
		return s.ContactEmail
	case KeyCompanyLinkedin:
		return s.CompanyLinkedin
	case KeyCompanyRecentNews:
		return s.CompanyRecentNews
	case KeyOutreachMessage:
		return s.OutreachMessage
	case KeyHiringScore:
		return s.HiringScore
	case KeyImpactLevel:
		return s.ImpactLevel
	case KeyImpactType:
		return s.ImpactType
	case KeySeniorLinkedin:
		return s.SeniorLinkedin
	}
	return ""
}

// SetField assigns a canonical field. Unknown names are rejected: the
// signal shape is closed, unlike the lead shape.
func (s *Signal) SetField(name, value string) bool {
	switch name {
	case KeyCompanyName:
		s.CompanyName = value
	case KeyCompanyWebsite:
		s.CompanyWebsite = value
	case KeyFundingAmount:
		s.FundingAmount = value
	case KeyFundingDate:
		s.FundingDate = value
	case KeyCompanySize:
		s.CompanySize = value
	case KeyIndustry:
		s.Industry = value
	case KeyCompanyDescription:
		s.CompanyDescription = value
	case KeyTargetDecisionMaker:
		s.TargetDecisionMaker = value
	case KeyContactEmail:
		s.ContactEmail = value
	case KeyCompanyLinkedin:
		s.CompanyLinkedin = value
	case KeyCompanyRecentNews:
		s.CompanyRecentNews = value
	case KeyOutreachMessage:
		s.OutreachMessage = value
	case KeyHiringScore:
		s.HiringScore = value
	case KeyImpactLevel:
		s.ImpactLevel = value
	case KeyImpactType:
		s.ImpactType = value
	case KeySeniorLinkedin:
		s.SeniorLinkedin = value
	default:
		return false
	}
	return true
}

// MapRows converts parsed CSV rows into signals. Header slugs are
// matched by name; a source column whose slug drifted away from the
// expected one simply leaves its mapped field empty, never an error.
// Every non-blank data line is kept.
func MapRows(rows [][]string) []*Signal {
	if len(rows) < 2 {
		return nil
	}

	slugs := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		slugs[i] = sheet.Slugify(h)
	}

	out := make([]*Signal, 0, len(rows)-1)
	for _, row := range rows[1:] {
		raw := make(map[string]string, len(slugs))
		for i, slug := range slugs {
			var v string
			if i < len(row) {
				v = strings.TrimSpace(row[i])
			}
			raw[slug] = v
		}
		s := &Signal{}
		for _, col := range Columns {
			s.SetField(col.Key, raw[col.Slug])
		}
		out = append(out, s)
	}
	return out
}

// Reverse flips the slice in place. The hiring-signal lane bakes
// newest-first into the stored order at load time, unlike the lead
// lane which reverses at render time.
func Reverse(rows []*Signal) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
