package progress

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugendimant/vivalingo/internal/database"
	"github.com/eugendimant/vivalingo/pkg/models"
)

func newTestService(t *testing.T) (*Service, *sqlx.DB) {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.InitializeSchema(db))

	s := NewService(
		database.NewProgressRepository(db),
		database.NewExposureRepository(db),
		database.NewVocabRepository(db),
		database.NewGrammarRepository(db),
		database.NewMistakeRepository(db),
	)
	return s, db
}

func TestCountDue(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()

	vocab := database.NewVocabRepository(db)
	require.NoError(t, vocab.Upsert(ctx, &models.VocabItem{ProfileID: 1, Term: "plazo"}))
	require.NoError(t, vocab.Upsert(ctx, &models.VocabItem{ProfileID: 1, Term: "alquiler"}))

	grammar := database.NewGrammarRepository(db)
	require.NoError(t, grammar.Upsert(ctx, &models.GrammarPattern{ProfileID: 1, PatternName: "drill", Category: "copula"}))

	counts, err := s.CountDue(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Vocab)
	assert.Equal(t, 1, counts.Grammar)
	assert.Equal(t, 0, counts.Mistakes)
	assert.Equal(t, 3, counts.Total())
}

func TestDashboard(t *testing.T) {
	s, db := newTestService(t)
	ctx := context.Background()

	vocab := database.NewVocabRepository(db)
	require.NoError(t, vocab.Upsert(ctx, &models.VocabItem{ProfileID: 1, Term: "plazo", Domain: "trabajo"}))
	_, err := db.Exec(`UPDATE vocab_items SET status = 'learning'`)
	require.NoError(t, err)

	metrics := database.NewProgressRepository(db)
	require.NoError(t, metrics.AddToday(ctx, 1, database.MetricVocabReviewed, 4))

	exposure := database.NewExposureRepository(db)
	require.NoError(t, exposure.Touch(ctx, 1, "trabajo"))

	dash, err := s.Dashboard(ctx, 1, 6)
	require.NoError(t, err)

	assert.Equal(t, 1, dash.Streak)
	assert.Equal(t, 1, dash.ActiveVocab)
	assert.Equal(t, 1, dash.Due.Vocab)
	assert.Equal(t, 6, dash.WeeklyGoalDays)
	assert.Equal(t, 1, dash.WeeklyActiveDays)
	require.NotNil(t, dash.Today)
	assert.Equal(t, 4, dash.Today.VocabReviewed)
	assert.Equal(t, 1, dash.Today.ActiveVocabCount)
	require.Len(t, dash.Domains, 1)
	assert.Equal(t, 1, dash.Domains[0].TotalItems)
	assert.Equal(t, 4, dash.Totals.VocabReviewed)
	assert.NotEmpty(t, dash.WeakDomains)
}
