package stats

import (
	"testing"

	"github.com/2024eb03012-afk/recruitment-os/internal/lead"
	"github.com/stretchr/testify/assert"
)

func TestParseScore(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"85", 85, true},
		{"85.5", 85.5, true},
		{"85%", 85, true},
		{" 92 / 100", 92, true},
		{"-3", -3, true},
		{"high", 0, false},
		{"", 0, false},
		{"N/A", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseScore(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestComputeMetrics_Empty(t *testing.T) {
	m := ComputeMetrics(nil)

	assert.Equal(t, 0, m.TotalJobs)
	assert.Equal(t, 0, m.AvgMatchScore)
	assert.Equal(t, 0, m.OutreachReady)
	assert.Equal(t, "N/A", m.TopJobType)
}

func TestComputeMetrics(t *testing.T) {
	rows := []*lead.Lead{
		{CompanyName: "Acme", JobType: "Full-time", City: "Austin", MatchScore: "80", DecisionMakerEmail: "x@acme.dev"},
		{CompanyName: "Acme", JobType: "Full-time", City: "Denver", MatchScore: "90"},
		{CompanyName: "Beta", JobType: "Contract", City: "Austin", MatchScore: "nope"},
	}
	m := ComputeMetrics(rows)

	assert.Equal(t, 3, m.TotalJobs)
	assert.Equal(t, 2, m.UniqueCompanies)
	assert.Equal(t, 2, m.UniqueCities)
	assert.Equal(t, "Full-time", m.TopJobType)
	assert.Equal(t, 85, m.AvgMatchScore)
	assert.Equal(t, 1, m.OutreachReady)
}

func TestComputeMetrics_TopJobTypeTieBreak(t *testing.T) {
	// Counts {A:2, B:2} in encounter order A-then-B resolve to A.
	rows := []*lead.Lead{
		{JobType: "A"}, {JobType: "B"}, {JobType: "A"}, {JobType: "B"},
	}
	assert.Equal(t, "A", ComputeMetrics(rows).TopJobType)
}

func TestComputeMetrics_BlankJobTypeIsOther(t *testing.T) {
	rows := []*lead.Lead{{JobType: ""}, {JobType: ""}, {JobType: "Contract"}}
	assert.Equal(t, "Other", ComputeMetrics(rows).TopJobType)
}

func TestComputeMetrics_AvgRounds(t *testing.T) {
	rows := []*lead.Lead{{MatchScore: "80"}, {MatchScore: "81"}}
	assert.Equal(t, 81, ComputeMetrics(rows).AvgMatchScore)
}
