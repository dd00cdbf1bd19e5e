package database

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugendimant/vivalingo/pkg/models"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, InitializeSchema(db))
	return db
}

func fixedClock(date string) func() time.Time {
	return func() time.Time {
		ts, _ := time.Parse("2006-01-02", date)
		return ts
	}
}

func TestVocabUpsertAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewVocabRepository(db)
	ctx := context.Background()

	err := repo.Upsert(ctx, &models.VocabItem{
		ProfileID: 1,
		Term:      "plazo",
		Meaning:   "deadline",
		Domain:    "trabajo",
	})
	require.NoError(t, err)

	item, err := repo.GetByTerm(ctx, 1, "plazo")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "deadline", item.Meaning)
	assert.Equal(t, 2.5, item.EaseFactor)
	assert.Equal(t, 1, item.IntervalDays)
	assert.Nil(t, item.NextReview)
	assert.Equal(t, "new", item.Status)

	// second upsert updates the payload without resetting scheduling
	err = repo.Upsert(ctx, &models.VocabItem{ProfileID: 1, Term: "plazo", Meaning: "deadline, term"})
	require.NoError(t, err)

	item, err = repo.GetByTerm(ctx, 1, "plazo")
	require.NoError(t, err)
	assert.Equal(t, "deadline, term", item.Meaning)

	missing, err := repo.GetByTerm(ctx, 1, "nunca")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestVocabGetDueOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewVocabRepository(db)
	repo.now = fixedClock("2026-03-10")
	ctx := context.Background()

	seed := []struct {
		term string
		next *string
		ease float64
	}{
		{"nuevo", nil, 2.5},
		{"vencido", ptr("2026-03-01"), 2.5},
		{"dificil", ptr("2026-03-01"), 1.5},
		{"hoy", ptr("2026-03-10"), 2.5},
		{"futuro", ptr("2026-03-20"), 2.5},
	}
	for _, s := range seed {
		require.NoError(t, repo.Upsert(ctx, &models.VocabItem{ProfileID: 1, Term: s.term}))
		_, err := db.Exec(
			`UPDATE vocab_items SET next_review = ?, ease_factor = ? WHERE term = ?`,
			s.next, s.ease, s.term,
		)
		require.NoError(t, err)
	}

	due, err := repo.GetDue(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, due, 4)

	// never-scheduled first, then by date, hardest first within a date
	assert.Equal(t, "nuevo", due[0].Term)
	assert.Equal(t, "dificil", due[1].Term)
	assert.Equal(t, "vencido", due[2].Term)
	assert.Equal(t, "hoy", due[3].Term)

	count, err := repo.CountDue(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	limited, err := repo.GetDue(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestVocabRecordReview(t *testing.T) {
	db := newTestDB(t)
	repo := NewVocabRepository(db)
	repo.now = fixedClock("2026-03-10")
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.VocabItem{ProfileID: 1, Term: "plazo"}))

	update, err := repo.RecordReview(ctx, 1, "plazo", 5)
	require.NoError(t, err)
	require.NotNil(t, update)
	assert.Equal(t, 6, update.NewInterval) // first success jumps to six days
	assert.InDelta(t, 2.6, update.NewEase, 0.0001)
	assert.Equal(t, "2026-03-16", update.NextReview)

	item, err := repo.GetByTerm(ctx, 1, "plazo")
	require.NoError(t, err)
	assert.Equal(t, 1, item.ExposureCount)
	assert.Equal(t, "learning", item.Status)
	require.NotNil(t, item.LastReviewed)
	assert.Equal(t, "2026-03-10", *item.LastReviewed)
	require.NotNil(t, item.NextReview)
	assert.Equal(t, "2026-03-16", *item.NextReview)

	// failure resets the interval but keeps the ease
	update, err = repo.RecordReview(ctx, 1, "plazo", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, update.NewInterval)
	assert.InDelta(t, 2.6, update.NewEase, 0.0001)
}

func TestVocabRecordReviewMastery(t *testing.T) {
	db := newTestDB(t)
	repo := NewVocabRepository(db)
	repo.now = fixedClock("2026-03-10")
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.VocabItem{ProfileID: 1, Term: "plazo"}))
	_, err := db.Exec(`UPDATE vocab_items SET interval_days = 15 WHERE term = 'plazo'`)
	require.NoError(t, err)

	update, err := repo.RecordReview(ctx, 1, "plazo", 5)
	require.NoError(t, err)
	assert.Greater(t, update.NewInterval, 21)

	item, err := repo.GetByTerm(ctx, 1, "plazo")
	require.NoError(t, err)
	assert.Equal(t, "mastered", item.Status)
}

func TestVocabRecordReviewUnknownTerm(t *testing.T) {
	db := newTestDB(t)
	repo := NewVocabRepository(db)

	update, err := repo.RecordReview(context.Background(), 1, "fantasma", 4)
	require.NoError(t, err)
	assert.Nil(t, update)
}

func TestVocabListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewVocabRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.VocabItem{ProfileID: 1, Term: "plazo", Domain: "trabajo"}))
	require.NoError(t, repo.Upsert(ctx, &models.VocabItem{ProfileID: 1, Term: "alquiler", Domain: "vivienda"}))
	require.NoError(t, repo.Upsert(ctx, &models.VocabItem{ProfileID: 2, Term: "plazo", Domain: "trabajo"}))

	all, err := repo.List(ctx, 1, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	work, err := repo.List(ctx, 1, "trabajo", "")
	require.NoError(t, err)
	require.Len(t, work, 1)
	assert.Equal(t, "plazo", work[0].Term)
}

func TestGrammarRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGrammarRepository(db)
	repo.now = fixedClock("2026-03-10")
	ctx := context.Background()

	err := repo.Upsert(ctx, &models.GrammarPattern{
		ProfileID:   1,
		PatternName: "ser_estar_estado",
		Category:    "copula",
		Prompt:      "La sopa ___ fria.",
		Options:     `["es","esta"]`,
		Answer:      "esta",
		Examples:    `["La sopa esta fria."]`,
	})
	require.NoError(t, err)

	due, err := repo.GetDue(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, []string{"es", "esta"}, due[0].OptionList())

	update, err := repo.RecordReview(ctx, 1, "ser_estar_estado", 4)
	require.NoError(t, err)
	require.NotNil(t, update)
	assert.Equal(t, 6, update.NewInterval)

	// no longer due after a successful review
	due, err = repo.GetDue(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	update, err = repo.RecordReview(ctx, 1, "desconocido", 4)
	require.NoError(t, err)
	assert.Nil(t, update)
}

func TestGrammarWeakestCategories(t *testing.T) {
	db := newTestDB(t)
	repo := NewGrammarRepository(db)
	ctx := context.Background()

	drills := []struct {
		name, category string
		ease           float64
		exposures      int
	}{
		{"a", "copula", 1.4, 3},
		{"b", "copula", 1.6, 2},
		{"c", "agreement", 2.5, 5},
		{"d", "subjunctive", 2.0, 0}, // never reviewed, excluded
	}
	for _, d := range drills {
		require.NoError(t, repo.Upsert(ctx, &models.GrammarPattern{ProfileID: 1, PatternName: d.name, Category: d.category}))
		_, err := db.Exec(`UPDATE grammar_patterns SET ease_factor = ?, exposure_count = ? WHERE pattern_name = ?`,
			d.ease, d.exposures, d.name)
		require.NoError(t, err)
	}

	weakest, err := repo.WeakestCategories(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"copula", "agreement"}, weakest)
}

func TestMistakeRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewMistakeRepository(db)
	repo.now = fixedClock("2026-03-10")
	ctx := context.Background()

	id, err := repo.Log(ctx, &models.Mistake{
		ProfileID:     1,
		UserText:      "la problema es grave",
		CorrectedText: "el problema es grave",
		ErrorType:     "grammar",
		ErrorTag:      "gender",
		Pattern:       "la problema",
		Confidence:    0.9,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	due, err := repo.GetDue(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)

	update, err := repo.RecordReview(ctx, 1, id, 4)
	require.NoError(t, err)
	require.NotNil(t, update)
	assert.Equal(t, "2026-03-16", update.NextReview)

	m, err := repo.GetByID(ctx, 1, id)
	require.NoError(t, err)
	assert.Equal(t, 1, m.ReviewCount)

	update, err = repo.RecordReview(ctx, 1, 9999, 4)
	require.NoError(t, err)
	assert.Nil(t, update)
}

func TestMistakeStatsByType(t *testing.T) {
	db := newTestDB(t)
	repo := NewMistakeRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Log(ctx, &models.Mistake{ProfileID: 1, UserText: "x", CorrectedText: "y", ErrorType: "grammar"})
		require.NoError(t, err)
	}
	_, err := repo.Log(ctx, &models.Mistake{ProfileID: 1, UserText: "x", CorrectedText: "y", ErrorType: "calque"})
	require.NoError(t, err)

	stats, err := repo.StatsByType(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "grammar", stats[0].ErrorType)
	assert.Equal(t, 3, stats[0].Count)
	assert.InDelta(t, 2.5, stats[0].AvgEase, 0.0001)
}

func TestVerbRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewVerbRepository(db)
	repo.now = fixedClock("2026-03-10")
	ctx := context.Background()

	err := repo.Upsert(ctx, &models.VerbConjugation{
		ProfileID:  1,
		Infinitive: "tener",
		Meaning:    "to have",
		Tense:      "presente",
		Person:     "yo",
		Form:       "teno", // deliberately wrong, fixed by the next upsert
		Irregular:  true,
	})
	require.NoError(t, err)

	// reseeding fixes the payload without resetting scheduling
	err = repo.Upsert(ctx, &models.VerbConjugation{
		ProfileID: 1, Infinitive: "tener", Meaning: "to have",
		Tense: "presente", Person: "yo", Form: "tengo", Irregular: true,
	})
	require.NoError(t, err)

	due, err := repo.GetDue(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "tengo", due[0].Form)
	assert.True(t, due[0].Irregular)
	assert.Equal(t, 2.5, due[0].EaseFactor)

	update, err := repo.RecordReview(ctx, 1, due[0].ID, 4)
	require.NoError(t, err)
	require.NotNil(t, update)
	assert.Equal(t, 6, update.NewInterval)
	assert.Equal(t, "2026-03-16", update.NextReview)

	v, err := repo.GetByID(ctx, 1, due[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, v.ExposureCount)
	assert.Equal(t, "learning", v.Status)

	// no longer due after a successful review
	count, err := repo.CountDue(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	update, err = repo.RecordReview(ctx, 1, 9999, 4)
	require.NoError(t, err)
	assert.Nil(t, update)
}

func TestVerbListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewVerbRepository(db)
	ctx := context.Background()

	seed := []models.VerbConjugation{
		{ProfileID: 1, Infinitive: "ser", Tense: "presente", Person: "yo", Form: "soy"},
		{ProfileID: 1, Infinitive: "ser", Tense: "indefinido", Person: "el", Form: "fue"},
		{ProfileID: 1, Infinitive: "hablar", Tense: "presente", Person: "yo", Form: "hablo"},
		{ProfileID: 2, Infinitive: "ser", Tense: "presente", Person: "yo", Form: "soy"},
	}
	for i := range seed {
		require.NoError(t, repo.Upsert(ctx, &seed[i]))
	}

	all, err := repo.List(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "hablar", all[0].Infinitive)

	ser, err := repo.List(ctx, 1, "ser")
	require.NoError(t, err)
	assert.Len(t, ser, 2)
}

func TestProfileLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	first, err := repo.Create(ctx, &models.Profile{
		Name:        "Eugen",
		Level:       "C1",
		WeeklyGoal:  6,
		FocusAreas:  `["negociacion"]`,
		GradingMode: "balanced",
		IsActive:    true,
	})
	require.NoError(t, err)

	second, err := repo.Create(ctx, &models.Profile{Name: "Prueba", Level: "B2", GradingMode: "lenient"})
	require.NoError(t, err)

	active, err := repo.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, first, active.ID)

	require.NoError(t, repo.SetActive(ctx, second))

	active, err = repo.GetActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, active.ID)

	// only one profile is ever active
	all, err := repo.List(ctx)
	require.NoError(t, err)
	activeCount := 0
	for _, p := range all {
		if p.IsActive {
			activeCount++
		}
	}
	assert.Equal(t, 1, activeCount)

	require.NoError(t, repo.RecordPlacement(ctx, second, 0.82, "C1"))
	p, err := repo.GetByID(ctx, second)
	require.NoError(t, err)
	assert.True(t, p.PlacementCompleted)
	require.NotNil(t, p.PlacementScore)
	assert.InDelta(t, 0.82, *p.PlacementScore, 0.0001)
	assert.Equal(t, "C1", p.Level)
}

func TestProgressMetricsAndStreak(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)
	repo.now = fixedClock("2026-03-10")
	ctx := context.Background()

	require.NoError(t, repo.AddToday(ctx, 1, MetricVocabReviewed, 5))
	require.NoError(t, repo.AddToday(ctx, 1, MetricVocabReviewed, 3))
	require.NoError(t, repo.AddToday(ctx, 1, MetricWritingWords, 120))
	require.NoError(t, repo.AddToday(ctx, 1, MetricVerbsReviewed, 2))
	require.NoError(t, repo.SetActiveVocabCount(ctx, 1, 42))

	day, err := repo.GetDay(ctx, 1, "2026-03-10")
	require.NoError(t, err)
	require.NotNil(t, day)
	assert.Equal(t, 8, day.VocabReviewed)
	assert.Equal(t, 120, day.WritingWords)
	assert.Equal(t, 2, day.VerbsReviewed)
	assert.Equal(t, 42, day.ActiveVocabCount)

	assert.Error(t, repo.AddToday(ctx, 1, "vocab_reviewed; DROP TABLE profiles", 1))

	// backfill earlier days: 03-08 and 03-09 active, 03-06 breaks the chain
	for _, d := range []string{"2026-03-09", "2026-03-08", "2026-03-06"} {
		_, err := db.Exec(`INSERT INTO progress_metrics (profile_id, metric_date, vocab_reviewed) VALUES (1, ?, 1)`, d)
		require.NoError(t, err)
	}

	streak, err := repo.Streak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)

	totals, err := repo.GetTotals(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 11, totals.VocabReviewed)
	assert.Equal(t, 4, totals.ActiveDays)
}

func TestProgressStreakSurvivesUntilEndOfDay(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)
	repo.now = fixedClock("2026-03-10")
	ctx := context.Background()

	// nothing recorded today, but yesterday and the day before were active
	for _, d := range []string{"2026-03-09", "2026-03-08"} {
		_, err := db.Exec(`INSERT INTO progress_metrics (profile_id, metric_date, vocab_reviewed) VALUES (1, ?, 1)`, d)
		require.NoError(t, err)
	}

	streak, err := repo.Streak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, streak)
}

func TestExposureRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewExposureRepository(db)
	repo.now = fixedClock("2026-03-10")
	vocab := NewVocabRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Touch(ctx, 1, "trabajo"))
	require.NoError(t, repo.Touch(ctx, 1, "trabajo"))
	require.NoError(t, repo.Touch(ctx, 1, "vivienda"))

	require.NoError(t, vocab.Upsert(ctx, &models.VocabItem{ProfileID: 1, Term: "plazo", Domain: "trabajo"}))
	require.NoError(t, vocab.Upsert(ctx, &models.VocabItem{ProfileID: 1, Term: "nomina", Domain: "trabajo"}))
	_, err := db.Exec(`UPDATE vocab_items SET status = 'mastered' WHERE term = 'nomina'`)
	require.NoError(t, err)
	require.NoError(t, repo.SyncCounts(ctx, 1))

	rows, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "trabajo", rows[0].Domain)
	assert.Equal(t, 2, rows[0].ExposureCount)
	assert.Equal(t, 2, rows[0].TotalItems)
	assert.Equal(t, 1, rows[0].MasteredItems)
	require.NotNil(t, rows[0].LastExposure)
	assert.Equal(t, "2026-03-10", *rows[0].LastExposure)

	least, err := repo.LeastPracticed(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"vivienda"}, least)
}

func TestConversationRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	id, err := repo.Create(ctx, &models.Conversation{
		ProfileID:     1,
		ScenarioTitle: "Negociar el alquiler",
		HiddenTargets: `["usar subjuntivo"]`,
		Messages:      `[]`,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	messages := `[{"role":"user","content":"Buenas tardes."}]`
	require.NoError(t, repo.UpdateTranscript(ctx, 1, id, messages, `[]`))
	require.NoError(t, repo.Complete(ctx, 1, id, "Buen trabajo."))

	c, err := repo.GetByID(ctx, 1, id)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.True(t, c.Completed)
	assert.Equal(t, "Buen trabajo.", c.Feedback)
	require.Len(t, c.MessageList(), 1)
	assert.Equal(t, "user", c.MessageList()[0].Role)

	list, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMissionRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewMissionRepository(db)
	ctx := context.Background()

	none, err := repo.GetByDate(ctx, 1, "2026-03-10")
	require.NoError(t, err)
	assert.Nil(t, none)

	mission := &models.DailyMission{
		ProfileID:   1,
		MissionDate: "2026-03-10",
		MissionType: "writing",
		Title:       "El correo dificil",
		Prompt:      "Escribe un correo pidiendo un aplazamiento.",
		Constraints: `["Usa 2 mitigadores"]`,
	}
	require.NoError(t, repo.Create(ctx, mission))

	// one mission per day per profile
	assert.Error(t, repo.Create(ctx, mission))

	require.NoError(t, repo.Complete(ctx, 1, "2026-03-10", "Estimado senor...", "Bien.", 0.8))

	got, err := repo.GetByDate(ctx, 1, "2026-03-10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Completed)
	require.NotNil(t, got.Score)
	assert.InDelta(t, 0.8, *got.Score, 0.0001)
	assert.Equal(t, []string{"Usa 2 mitigadores"}, got.ConstraintList())
}

func ptr(s string) *string { return &s }
