package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/storypath/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractReport(id string, created time.Time) *domain.Report {
	c := domain.Choice{ID: 1, Text: "go", Destination: "end"}
	best := domain.Path{}.Extend("start", nil, []string{"m1"}).Choose(c).Extend("end", nil, []string{"m2"}).Complete("best")
	return &domain.Report{
		ID:        id,
		Story:     "Contract Story",
		CreatedAt: created,
		Goal:      domain.Goal{Mode: domain.ModeOptimal, Ending: "best"},
		Outcome:   domain.OutcomeFound,
		Best:      &best,
		Explored:  3,
		Complete:  1,
		Top:       []domain.Path{best},
	}
}

// RunReportStoreContract runs a suite of tests to verify that a ReportStore
// implementation adheres to the defined interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	reportID := "contract-report-" + time.Now().Format("20060102150405")
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("Save and Load", func(t *testing.T) {
		report := contractReport(reportID, now)

		err := store.Save(ctx, report)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report.ID, loaded.ID)
		assert.Equal(t, report.Story, loaded.Story)
		assert.Equal(t, report.Goal, loaded.Goal)
		assert.Equal(t, report.Outcome, loaded.Outcome)
		assert.True(t, report.CreatedAt.Equal(loaded.CreatedAt))
		require.NotNil(t, loaded.Best)
		assert.True(t, report.Best.Equal(*loaded.Best))
		assert.Equal(t, 70, loaded.Best.Score())
		require.Len(t, loaded.Top, 1)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, contractReport(reportID, now))
		require.NoError(t, err)

		err = store.Delete(ctx, reportID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")

		assert.NoError(t, store.Delete(ctx, reportID), "Delete of a missing report should succeed")
	})

	t.Run("List", func(t *testing.T) {
		older := reportID + "-1"
		newer := reportID + "-2"
		_ = store.Save(ctx, contractReport(older, now.Add(-time.Hour)))
		_ = store.Save(ctx, contractReport(newer, now))

		defer func() {
			_ = store.Delete(ctx, older)
			_ = store.Delete(ctx, newer)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, older)
		assert.Contains(t, ids, newer)

		var posOlder, posNewer int
		for i, id := range ids {
			switch id {
			case older:
				posOlder = i
			case newer:
				posNewer = i
			}
		}
		assert.Less(t, posNewer, posOlder, "newest report should be listed first")
	})
}
