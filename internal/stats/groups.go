package stats

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/2024eb03012-afk/recruitment-os/internal/lead"
	"github.com/2024eb03012-afk/recruitment-os/internal/signal"
)

// GroupCount is one labelled bucket of a chart series.
type GroupCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// GroupCounts tallies records by keyFn and returns the buckets sorted
// by descending count. The sort is stable over first-encounter order
// so equal counts keep a deterministic ordering.
func GroupCounts[R any](rows []R, keyFn func(R) string) []GroupCount {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range rows {
		k := keyFn(r)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	out := make([]GroupCount, 0, len(order))
	for _, k := range order {
		out = append(out, GroupCount{Label: k, Count: counts[k]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// TopN keeps at most n buckets.
func TopN(groups []GroupCount, n int) []GroupCount {
	if len(groups) <= n {
		return groups
	}
	return groups[:n]
}

// ByCompany tallies leads per company name.
func ByCompany(rows []*lead.Lead) []GroupCount {
	return GroupCounts(rows, func(r *lead.Lead) string { return strings.TrimSpace(r.CompanyName) })
}

// ByJobType tallies leads per job type; blank types fold into "Other".
func ByJobType(rows []*lead.Lead) []GroupCount {
	return GroupCounts(rows, func(r *lead.Lead) string {
		t := strings.TrimSpace(r.JobType)
		if t == "" {
			return "Other"
		}
		return t
	})
}

// NormalizeCity title-cases each word of a city name. Blank cities
// become "Remote/Unknown".
func NormalizeCity(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Remote/Unknown"
	}
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ByCity tallies leads per normalized city.
func ByCity(rows []*lead.Lead) []GroupCount {
	return GroupCounts(rows, func(r *lead.Lead) string { return NormalizeCity(r.City) })
}

// sortDesc orders buckets by descending count, ties keeping the
// incoming label order.
func sortDesc(out []GroupCount) []GroupCount {
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// ScoreBuckets splits leads into the four fixed score ranges. Records
// without a numeric score are not counted.
func ScoreBuckets(rows []*lead.Lead) []GroupCount {
	out := []GroupCount{
		{Label: "0-60"},
		{Label: "61-75"},
		{Label: "76-85"},
		{Label: "86-100"},
	}
	for _, r := range rows {
		v, ok := ParseScore(r.MatchScore)
		if !ok {
			continue
		}
		switch {
		case v <= 60:
			out[0].Count++
		case v <= 75:
			out[1].Count++
		case v <= 85:
			out[2].Count++
		default:
			out[3].Count++
		}
	}
	return sortDesc(out)
}

// EmailCoverage splits leads by presence of a decision-maker email.
func EmailCoverage(rows []*lead.Lead) []GroupCount {
	out := []GroupCount{{Label: "With Email"}, {Label: "Without Email"}}
	for _, r := range rows {
		if strings.TrimSpace(r.DecisionMakerEmail) != "" {
			out[0].Count++
		} else {
			out[1].Count++
		}
	}
	return sortDesc(out)
}

// RoleCategory maps a job title to its coarse category. The checks
// run in priority order; the first keyword hit wins.
func RoleCategory(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "seo"):
		return "SEO"
	case strings.Contains(t, "software engineer"), strings.Contains(t, "swe"):
		return "Software Engineer"
	case strings.Contains(t, "backend"):
		return "Backend"
	case strings.Contains(t, "founding engineer"):
		return "Founding Engineer"
	default:
		return "Other"
	}
}

// RoleCategories tallies leads over the five fixed role categories.
// Categories with zero hits stay in the series.
func RoleCategories(rows []*lead.Lead) []GroupCount {
	out := []GroupCount{
		{Label: "SEO"},
		{Label: "Software Engineer"},
		{Label: "Backend"},
		{Label: "Founding Engineer"},
		{Label: "Other"},
	}
	idx := make(map[string]int, len(out))
	for i, g := range out {
		idx[g.Label] = i
	}
	for _, r := range rows {
		out[idx[RoleCategory(r.Title)]].Count++
	}
	return sortDesc(out)
}

// SignalStats is the summary block for the hiring-signals view. Trend
// strings render as "↑ N%" when the share is nonzero.
type SignalStats struct {
	Total          int    `json:"total"`
	News           int    `json:"news"`
	Funded         int    `json:"funded"`
	JobChanges     int    `json:"jobChanges"`
	NewsTrend      string `json:"newsTrend"`
	FundedTrend    string `json:"fundedTrend"`
	JobChangeTrend string `json:"jobChangeTrend"`
}

func present(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && v != "-"
}

func hasNews(r *signal.Signal) bool   { return present(r.CompanyRecentNews) }
func hasFunded(r *signal.Signal) bool { return present(r.FundingAmount) }

func hasJobChange(r *signal.Signal) bool {
	if strings.Contains(strings.ToLower(r.ImpactType), "job") {
		return true
	}
	return present(r.SeniorLinkedin)
}

func trend(part, total int) string {
	if total == 0 {
		return "—"
	}
	return fmt.Sprintf("↑ %d%%", int(math.Round(float64(part)/float64(total)*100)))
}

// ComputeSignalStats aggregates the signal summary over the records.
func ComputeSignalStats(rows []*signal.Signal) SignalStats {
	s := SignalStats{Total: len(rows)}
	for _, r := range rows {
		if hasNews(r) {
			s.News++
		}
		if hasFunded(r) {
			s.Funded++
		}
		if hasJobChange(r) {
			s.JobChanges++
		}
	}
	s.NewsTrend = trend(s.News, s.Total)
	s.FundedTrend = trend(s.Funded, s.Total)
	s.JobChangeTrend = trend(s.JobChanges, s.Total)
	return s
}

// FilterSignals keeps the records matching the named filter. Unknown
// or empty filters pass everything through.
func FilterSignals(rows []*signal.Signal, filter string) []*signal.Signal {
	var pred func(*signal.Signal) bool
	switch filter {
	case "news":
		pred = hasNews
	case "funded":
		pred = hasFunded
	case "jobchange":
		pred = hasJobChange
	default:
		return rows
	}
	out := make([]*signal.Signal, 0, len(rows))
	for _, r := range rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
