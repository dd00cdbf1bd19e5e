package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugendimant/vivalingo/internal/grading"
	"github.com/eugendimant/vivalingo/pkg/models"
)

type fakeProgress struct {
	counts map[string]float64
}

func (f *fakeProgress) AddToday(_ context.Context, _ int64, metric string, amount float64) error {
	if f.counts == nil {
		f.counts = make(map[string]float64)
	}
	f.counts[metric] += amount
	return nil
}

type fakeExposure struct {
	touches map[string]int
}

func (f *fakeExposure) Touch(_ context.Context, _ int64, domain string) error {
	if f.touches == nil {
		f.touches = make(map[string]int)
	}
	f.touches[domain]++
	return nil
}

func TestSessionAnswerFlow(t *testing.T) {
	v := &fakeVocab{due: []models.VocabItem{
		{Term: "plazo", Meaning: "deadline", Collocations: "[]"},
		{Term: "quiza", Meaning: "maybe", Collocations: "[]"},
	}}
	b := newTestBuilder(v, &fakeGrammar{}, &fakeMistakes{})
	progress := &fakeProgress{}
	r := NewRunner(b, progress, nil)
	ctx := context.Background()

	s, err := r.Start(ctx, 1, ModeVocab, 10, grading.ModeBalanced)
	require.NoError(t, err)
	require.Len(t, s.Cards, 2)
	assert.Equal(t, "plazo", s.Current().Key)

	res, err := r.SubmitAnswer(ctx, s.ID, "plazo")
	require.NoError(t, err)
	assert.Equal(t, "correct", res.Verdict)
	assert.False(t, res.Done)
	require.NotNil(t, res.Next)
	assert.Equal(t, "quiza", res.Next.Key)
	require.NotNil(t, res.Update)
	assert.Equal(t, 4, res.Update.Quality)

	res, err = r.SubmitAnswer(ctx, s.ID, "totalmente mal")
	require.NoError(t, err)
	assert.Equal(t, "incorrect", res.Verdict)
	assert.True(t, res.Done)
	require.NotNil(t, res.Summary)
	assert.Equal(t, 2, res.Summary.Total)
	assert.Equal(t, 1, res.Summary.Correct)
	assert.Equal(t, 1, res.Summary.Incorrect)
	assert.Equal(t, 2, res.Summary.Vocab)
	assert.Zero(t, res.Summary.Grammar)
	assert.Zero(t, res.Summary.Verbs)
	assert.Zero(t, res.Summary.Mistakes)
	assert.InDelta(t, 0.5, res.Summary.Accuracy, 0.0001)

	// the store saw quality 4 then 1
	require.Len(t, v.reviews, 2)
	assert.Equal(t, 4, v.reviews[0].quality)
	assert.Equal(t, 1, v.reviews[1].quality)

	assert.Equal(t, 2.0, progress.counts["vocab_reviewed"])

	// finished sessions are gone
	_, err = r.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionCloseAnswer(t *testing.T) {
	v := &fakeVocab{due: []models.VocabItem{{Term: "quizá", Meaning: "maybe", Collocations: "[]"}}}
	b := newTestBuilder(v, &fakeGrammar{}, &fakeMistakes{})
	r := NewRunner(b, nil, nil)
	ctx := context.Background()

	s, err := r.Start(ctx, 1, ModeVocab, 5, grading.ModeBalanced)
	require.NoError(t, err)

	// accent slip rates as close, quality 2
	res, err := r.SubmitAnswer(ctx, s.ID, "quiza")
	require.NoError(t, err)
	assert.Equal(t, "close", res.Verdict)
	require.Len(t, v.reviews, 1)
	assert.Equal(t, 2, v.reviews[0].quality)
}

func TestSessionRatingFlow(t *testing.T) {
	m := &fakeMistakes{due: []models.Mistake{
		{ID: 1, UserText: "la problema", CorrectedText: "el problema", Examples: "[]"},
		{ID: 2, UserText: "dependen en", CorrectedText: "dependen de", Examples: "[]"},
	}}
	b := newTestBuilder(&fakeVocab{}, &fakeGrammar{}, m)
	progress := &fakeProgress{}
	r := NewRunner(b, progress, nil)
	ctx := context.Background()

	s, err := r.Start(ctx, 1, ModeMistakes, 10, grading.ModeBalanced)
	require.NoError(t, err)

	res, err := r.SubmitRating(ctx, s.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, "correct", res.Verdict)

	res, err = r.SubmitRating(ctx, s.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "incorrect", res.Verdict)
	assert.True(t, res.Done)

	// only the passed rating counts as a fixed error
	assert.Equal(t, 1.0, progress.counts["errors_fixed"])
}

func TestSessionVerbFlow(t *testing.T) {
	vb := &fakeVerbs{due: []models.VerbConjugation{
		{ID: 9, Infinitive: "tener", Meaning: "to have", Tense: "presente", Person: "yo", Form: "tengo", Irregular: true},
	}}
	b := newTestBuilderWithVerbs(&fakeVocab{}, &fakeGrammar{}, &fakeMistakes{}, vb)
	progress := &fakeProgress{}
	r := NewRunner(b, progress, nil)
	ctx := context.Background()

	s, err := r.Start(ctx, 1, ModeVerbs, 5, grading.ModeBalanced)
	require.NoError(t, err)
	require.Len(t, s.Cards, 1)

	res, err := r.SubmitAnswer(ctx, s.ID, "tengo")
	require.NoError(t, err)
	assert.Equal(t, "correct", res.Verdict)
	assert.True(t, res.Done)
	require.NotNil(t, res.Summary)
	assert.Equal(t, 1, res.Summary.Verbs)

	require.Len(t, vb.reviews, 1)
	assert.Equal(t, recordedReview{key: "9", quality: 4}, vb.reviews[0])
	assert.Equal(t, 1.0, progress.counts["verbs_reviewed"])
}

func TestSessionRecordsDomainExposure(t *testing.T) {
	v := &fakeVocab{due: []models.VocabItem{
		{Term: "plazo", Meaning: "deadline", Domain: "trabajo", Collocations: "[]"},
		{Term: "informe", Meaning: "report", Domain: "trabajo", Collocations: "[]"},
		{Term: "hola", Meaning: "hello", Collocations: "[]"},
	}}
	b := newTestBuilder(v, &fakeGrammar{}, &fakeMistakes{})
	exposure := &fakeExposure{}
	r := NewRunner(b, nil, exposure)
	ctx := context.Background()

	s, err := r.Start(ctx, 1, ModeVocab, 10, grading.ModeBalanced)
	require.NoError(t, err)
	for range s.Cards {
		_, err := r.SubmitRating(ctx, s.ID, 4)
		require.NoError(t, err)
	}

	// domain-less cards don't ping the coverage tracker
	assert.Equal(t, map[string]int{"trabajo": 2}, exposure.touches)
}

func TestSessionEmptyQueue(t *testing.T) {
	b := newTestBuilder(&fakeVocab{}, &fakeGrammar{}, &fakeMistakes{})
	r := NewRunner(b, nil, nil)

	s, err := r.Start(context.Background(), 1, ModeMixed, 10, grading.ModeBalanced)
	require.NoError(t, err)
	assert.True(t, s.Finished())
	assert.Nil(t, s.Current())

	_, err = r.SubmitAnswer(context.Background(), s.ID, "hola")
	assert.Error(t, err)
}

func TestSessionUnknownID(t *testing.T) {
	r := NewRunner(newTestBuilder(&fakeVocab{}, &fakeGrammar{}, &fakeMistakes{}), nil, nil)
	_, err := r.SubmitAnswer(context.Background(), "no-such-session", "hola")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
