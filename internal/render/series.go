package render

import (
	"github.com/2024eb03012-afk/recruitment-os/internal/lead"
	"github.com/2024eb03012-afk/recruitment-os/internal/stats"
)

// Series is one chart feed handed to the frontend charting library:
// parallel labels and values plus the bar color.
type Series struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Color  string   `json:"color"`
}

// ChartSet carries every chart series for the lead dashboard.
type ChartSet struct {
	Companies Series `json:"companies"`
	JobTypes  Series `json:"jobTypes"`
	Cities    Series `json:"cities"`
	Scores    Series `json:"scores"`
	Outreach  Series `json:"outreach"`
	Roles     Series `json:"roles"`
}

func toSeries(groups []stats.GroupCount, color string) Series {
	s := Series{
		Labels: make([]string, len(groups)),
		Values: make([]int, len(groups)),
		Color:  color,
	}
	for i, g := range groups {
		s.Labels[i] = g.Label
		s.Values[i] = g.Count
	}
	return s
}

// Charts derives the six chart series from the lead records. Company
// and city series keep only their top ten buckets.
func Charts(rows []*lead.Lead) ChartSet {
	return ChartSet{
		Companies: toSeries(stats.TopN(stats.ByCompany(rows), 10), "#6366f1"),
		JobTypes:  toSeries(stats.ByJobType(rows), "#f59e0b"),
		Cities:    toSeries(stats.TopN(stats.ByCity(rows), 10), "#10b981"),
		Scores:    toSeries(stats.ScoreBuckets(rows), "#8b5cf6"),
		Outreach:  toSeries(stats.EmailCoverage(rows), "#ef4444"),
		Roles:     toSeries(stats.RoleCategories(rows), "#06b6d4"),
	}
}
