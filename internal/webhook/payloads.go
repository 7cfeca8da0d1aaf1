package webhook

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// SalaryRange carries optional salary bounds on a scrape request.
// Nil means the bound was left blank.
type SalaryRange struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// ScrapeRequest is the payload posted to the scrape automation flow.
type ScrapeRequest struct {
	JobTitle         string      `json:"jobTitle"`
	JobTypes         []string    `json:"jobTypes"`
	Location         string      `json:"location"`
	Country          string      `json:"country"`
	NumJobs          int         `json:"numJobs"`
	Platforms        []string    `json:"platforms"`
	LinkedinKeywords string      `json:"linkedinKeywords"`
	CompanySize      []string    `json:"companySize"`
	SalaryRange      SalaryRange `json:"salaryRange"`
	Timestamp        string      `json:"timestamp"`
}

// Validate applies the submission rules the scrape form enforces.
func (r *ScrapeRequest) Validate() error {
	if strings.TrimSpace(r.JobTitle) == "" {
		return fmt.Errorf("job title is required")
	}
	if r.NumJobs < 1 {
		return fmt.Errorf("number of jobs must be at least 1")
	}
	for _, p := range r.Platforms {
		if p == "linkedin_post" && strings.TrimSpace(r.LinkedinKeywords) == "" {
			return fmt.Errorf("linkedin keywords are required for linkedin_post")
		}
	}
	return nil
}

// Stamp fills the timestamp if the caller left it empty.
func (r *ScrapeRequest) Stamp(now time.Time) {
	if r.Timestamp == "" {
		r.Timestamp = now.UTC().Format(time.RFC3339)
	}
}

// LeadEmail is the payload of an outreach send from the lead table.
type LeadEmail struct {
	Title     string `json:"title"`
	Email     string `json:"email"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
}

// SignalEmail is the payload of an outreach send from the signals
// table. Subject and message come from SplitOutreach.
type SignalEmail struct {
	Email       string `json:"email"`
	Message     string `json:"message"`
	Subject     string `json:"subject"`
	CompanyName string `json:"companyName"`
}

// SplitOutreach unpacks an outreach message that may be a JSON
// envelope with subject and body (or message) fields. Anything that
// does not parse as such falls back to the default subject with the
// raw text as body.
func SplitOutreach(content string) (subject, body string) {
	subject = "Outreach"
	body = content
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return
	}
	var env struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return
	}
	if env.Subject != "" {
		subject = env.Subject
	}
	if env.Body != "" {
		body = env.Body
	} else if env.Message != "" {
		body = env.Message
	}
	return
}

var (
	profileURLRe = regexp.MustCompile(`^https://www\.linkedin\.com/in/[\w-]+/?$`)
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	looseURLRe   = regexp.MustCompile(`https://www\.linkedin\.com/in/[\w-]+/?`)
)

// TrackingRequest is the payload posted to the job-change tracking
// flow.
type TrackingRequest struct {
	EmailRecipients      []string `json:"email_recipients"`
	ProfileURLs          []string `json:"profile_urls"`
	SignalConfigurations []string `json:"signal_configurations"`
}

// Normalize trims, drops blanks, and deduplicates both lists while
// keeping first-seen order.
func (r *TrackingRequest) Normalize() {
	r.EmailRecipients = uniq(r.EmailRecipients)
	r.ProfileURLs = uniq(r.ProfileURLs)
	if len(r.SignalConfigurations) == 0 {
		r.SignalConfigurations = []string{"job_change"}
	}
}

// Validate requires at least one valid profile URL and recipient.
func (r *TrackingRequest) Validate() error {
	if len(r.ProfileURLs) == 0 {
		return fmt.Errorf("at least one profile url is required")
	}
	if len(r.EmailRecipients) == 0 {
		return fmt.Errorf("at least one email recipient is required")
	}
	for _, u := range r.ProfileURLs {
		if !profileURLRe.MatchString(u) {
			return fmt.Errorf("invalid linkedin profile url: %s", u)
		}
	}
	for _, e := range r.EmailRecipients {
		if !emailRe.MatchString(e) {
			return fmt.Errorf("invalid email recipient: %s", e)
		}
	}
	return nil
}

// ExtractProfileURLs pulls valid profile URLs out of bulk-pasted
// text. Lines split on newlines and commas; only exact matches
// survive, deduplicated in first-seen order.
func ExtractProfileURLs(text string) []string {
	lines := strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == ',' })
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && profileURLRe.MatchString(line) {
			out = append(out, line)
		}
	}
	return uniq(out)
}

// CountProfileURLs counts loose URL matches in bulk text, the live
// counter shown while the user is still typing.
func CountProfileURLs(text string) int {
	return len(looseURLRe.FindAllString(text, -1))
}

func uniq(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// TrackingResult is the flow's response, either a bare object or the
// first element of a one-element array.
type TrackingResult struct {
	Timestamp         string   `json:"timestamp"`
	ProfilesProcessed int      `json:"profiles_processed"`
	ChangesDetected   int      `json:"changes_detected"`
	RunID             string   `json:"run_id"`
	Errors            []string `json:"errors,omitempty"`
}
