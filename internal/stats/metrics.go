// Package stats derives summary metrics and grouped counts from the
// current lead and signal records.
package stats

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/2024eb03012-afk/recruitment-os/internal/lead"
)

// Metrics is the lead summary block shown at the top of the dashboard.
type Metrics struct {
	TotalJobs       int    `json:"totalJobs"`
	UniqueCompanies int    `json:"uniqueCompanies"`
	TopJobType      string `json:"topJobType"`
	UniqueCities    int    `json:"uniqueCities"`
	AvgMatchScore   int    `json:"avgMatchScore"`
	OutreachReady   int    `json:"outreachReady"`
}

var numericPrefix = regexp.MustCompile(`^[+-]?\d+(\.\d+)?`)

// ParseScore extracts the leading numeric prefix of a score field, so
// "85", "85.5" and "85%" all read as scores while "high" does not.
func ParseScore(s string) (float64, bool) {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ComputeMetrics aggregates the lead metrics over the given records.
// Empty input yields all zeros with TopJobType "N/A".
func ComputeMetrics(rows []*lead.Lead) Metrics {
	m := Metrics{TopJobType: "N/A"}
	m.TotalJobs = len(rows)

	companies := make(map[string]struct{})
	cities := make(map[string]struct{})
	typeCounts := make(map[string]int)
	typeOrder := make([]string, 0)

	var scoreSum float64
	var scoreN int

	for _, r := range rows {
		if c := strings.TrimSpace(r.CompanyName); c != "" {
			companies[c] = struct{}{}
		}
		if c := strings.TrimSpace(r.City); c != "" {
			cities[c] = struct{}{}
		}
		t := strings.TrimSpace(r.JobType)
		if t == "" {
			t = "Other"
		}
		if _, seen := typeCounts[t]; !seen {
			typeOrder = append(typeOrder, t)
		}
		typeCounts[t]++
		if v, ok := ParseScore(r.MatchScore); ok {
			scoreSum += v
			scoreN++
		}
		if strings.TrimSpace(r.DecisionMakerEmail) != "" {
			m.OutreachReady++
		}
	}

	m.UniqueCompanies = len(companies)
	m.UniqueCities = len(cities)

	// Ties resolve to the first job type encountered in record order.
	best := 0
	for _, t := range typeOrder {
		if typeCounts[t] > best {
			best = typeCounts[t]
			m.TopJobType = t
		}
	}

	if scoreN > 0 {
		m.AvgMatchScore = int(math.Round(scoreSum / float64(scoreN)))
	}
	return m
}
