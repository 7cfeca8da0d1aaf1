package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunLog(t *testing.T) {
	db, err := Open()
	assert.NoError(t, err)
	defer db.Close()

	assert.NoError(t, Migrate(db.Pool))
	// second migrate is a no-op thanks to the version guard
	assert.NoError(t, Migrate(db.Pool))

	ctx := context.Background()

	first := &Run{Source: "leads", StartedAt: "2025-06-01T10:00:00Z", Records: 12, AvgScore: 81}
	assert.NoError(t, InsertRun(ctx, db.Pool, first))
	assert.NotEmpty(t, first.ID)

	second := &Run{Source: "signals", StartedAt: "2025-06-01T11:00:00Z", Records: 4, Error: "fetch failed"}
	assert.NoError(t, InsertRun(ctx, db.Pool, second))

	runs, err := ListRuns(ctx, db.Pool, 10)
	assert.NoError(t, err)
	assert.Len(t, runs, 2)

	assert.Equal(t, "signals", runs[0].Source)
	assert.Equal(t, "fetch failed", runs[0].Error)
	assert.Equal(t, "leads", runs[1].Source)
	assert.Equal(t, 12, runs[1].Records)
	assert.Equal(t, float64(81), runs[1].AvgScore)
}

func TestInsertRunFillsTimestamp(t *testing.T) {
	db, err := Open()
	assert.NoError(t, err)
	defer db.Close()
	assert.NoError(t, Migrate(db.Pool))

	r := &Run{Source: "leads"}
	assert.NoError(t, InsertRun(context.Background(), db.Pool, r))
	assert.NotEmpty(t, r.StartedAt)
}

func TestListRuns_LimitDefaults(t *testing.T) {
	db, err := Open()
	assert.NoError(t, err)
	defer db.Close()
	assert.NoError(t, Migrate(db.Pool))

	runs, err := ListRuns(context.Background(), db.Pool, -1)
	assert.NoError(t, err)
	assert.Empty(t, runs)
}
