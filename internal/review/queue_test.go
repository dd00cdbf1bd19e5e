package review

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eugendimant/vivalingo/pkg/models"
)

type recordedReview struct {
	key     string
	quality int
}

type fakeVocab struct {
	due       []models.VocabItem
	lastLimit int
	reviews   []recordedReview
	err       error
}

func (f *fakeVocab) GetDue(_ context.Context, _ int64, limit int) ([]models.VocabItem, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	if limit < len(f.due) {
		return f.due[:limit], nil
	}
	return f.due, nil
}

func (f *fakeVocab) RecordReview(_ context.Context, _ int64, term string, quality int) (*models.ReviewUpdate, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.reviews = append(f.reviews, recordedReview{key: term, quality: quality})
	return &models.ReviewUpdate{Quality: quality, NewEase: 2.5, NewInterval: 6, NextReview: "2026-03-16"}, nil
}

type fakeGrammar struct {
	due       []models.GrammarPattern
	lastLimit int
	reviews   []recordedReview
}

func (f *fakeGrammar) GetDue(_ context.Context, _ int64, limit int) ([]models.GrammarPattern, error) {
	f.lastLimit = limit
	if limit < len(f.due) {
		return f.due[:limit], nil
	}
	return f.due, nil
}

func (f *fakeGrammar) RecordReview(_ context.Context, _ int64, name string, quality int) (*models.ReviewUpdate, error) {
	f.reviews = append(f.reviews, recordedReview{key: name, quality: quality})
	return &models.ReviewUpdate{Quality: quality}, nil
}

type fakeMistakes struct {
	due       []models.Mistake
	lastLimit int
	reviews   []recordedReview
}

func (f *fakeMistakes) GetDue(_ context.Context, _ int64, limit int) ([]models.Mistake, error) {
	f.lastLimit = limit
	if limit < len(f.due) {
		return f.due[:limit], nil
	}
	return f.due, nil
}

func (f *fakeMistakes) RecordReview(_ context.Context, _ int64, id int64, quality int) (*models.ReviewUpdate, error) {
	f.reviews = append(f.reviews, recordedReview{key: strconv.FormatInt(id, 10), quality: quality})
	return &models.ReviewUpdate{Quality: quality}, nil
}

type fakeVerbs struct {
	due       []models.VerbConjugation
	lastLimit int
	reviews   []recordedReview
}

func (f *fakeVerbs) GetDue(_ context.Context, _ int64, limit int) ([]models.VerbConjugation, error) {
	f.lastLimit = limit
	if limit < len(f.due) {
		return f.due[:limit], nil
	}
	return f.due, nil
}

func (f *fakeVerbs) RecordReview(_ context.Context, _ int64, id int64, quality int) (*models.ReviewUpdate, error) {
	f.reviews = append(f.reviews, recordedReview{key: strconv.FormatInt(id, 10), quality: quality})
	return &models.ReviewUpdate{Quality: quality}, nil
}

func vocabDue(n int) []models.VocabItem {
	items := make([]models.VocabItem, n)
	for i := range items {
		items[i] = models.VocabItem{Term: fmt.Sprintf("palabra%d", i), Meaning: "meaning", Collocations: "[]"}
	}
	return items
}

func grammarDue(n int) []models.GrammarPattern {
	items := make([]models.GrammarPattern, n)
	for i := range items {
		items[i] = models.GrammarPattern{
			PatternName: fmt.Sprintf("drill%d", i),
			Prompt:      "___",
			Options:     `["a","b"]`,
			Answer:      "a",
			Examples:    "[]",
		}
	}
	return items
}

func mistakesDue(n int) []models.Mistake {
	items := make([]models.Mistake, n)
	for i := range items {
		items[i] = models.Mistake{ID: i + 1, UserText: "mal", CorrectedText: "bien", Examples: "[]"}
	}
	return items
}

func verbsDue(n int) []models.VerbConjugation {
	items := make([]models.VerbConjugation, n)
	for i := range items {
		items[i] = models.VerbConjugation{
			ID:         int64(i + 1),
			Infinitive: "hablar",
			Meaning:    "to speak",
			Tense:      "presente",
			Person:     "yo",
			Form:       "hablo",
		}
	}
	return items
}

func newTestBuilder(v *fakeVocab, g *fakeGrammar, m *fakeMistakes) *Builder {
	return newTestBuilderWithVerbs(v, g, m, &fakeVerbs{})
}

func newTestBuilderWithVerbs(v *fakeVocab, g *fakeGrammar, m *fakeMistakes, vb *fakeVerbs) *Builder {
	b := NewBuilder(v, g, m, vb)
	b.rng = rand.New(rand.NewSource(1))
	return b
}

func TestBuildSingleKindModes(t *testing.T) {
	v := &fakeVocab{due: vocabDue(3)}
	g := &fakeGrammar{due: grammarDue(2)}
	m := &fakeMistakes{due: mistakesDue(1)}
	b := newTestBuilder(v, g, m)
	ctx := context.Background()

	cards, err := b.Build(ctx, 1, ModeVocab, 10)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, KindVocab, cards[0].Kind)
	assert.Equal(t, "palabra0", cards[0].Key)
	assert.Equal(t, "palabra0", cards[0].Answer)

	cards, err = b.Build(ctx, 1, ModeGrammar, 10)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, []string{"a", "b"}, cards[0].Options)

	cards, err = b.Build(ctx, 1, ModeMistakes, 10)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "1", cards[0].Key)
	assert.Equal(t, "bien", cards[0].Answer)
}

func TestBuildVerbsMode(t *testing.T) {
	vb := &fakeVerbs{due: []models.VerbConjugation{
		{ID: 3, Infinitive: "ser", Meaning: "to be", Tense: "presente", Person: "yo", Form: "soy", Irregular: true},
		{ID: 4, Infinitive: "hablar", Meaning: "to speak", Tense: "presente", Person: "tu", Form: "hablas"},
	}}
	b := newTestBuilderWithVerbs(&fakeVocab{}, &fakeGrammar{}, &fakeMistakes{}, vb)

	cards, err := b.Build(context.Background(), 1, ModeVerbs, 10)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, KindVerb, cards[0].Kind)
	assert.Equal(t, "3", cards[0].Key)
	assert.Equal(t, "ser: presente, yo", cards[0].Prompt)
	assert.Equal(t, "soy", cards[0].Answer)
	assert.Equal(t, "to be (irregular)", cards[0].Hint)
	assert.Equal(t, "to speak", cards[1].Hint)
}

func TestVerbsStayOutOfMixed(t *testing.T) {
	vb := &fakeVerbs{due: verbsDue(20)}
	b := newTestBuilderWithVerbs(&fakeVocab{due: vocabDue(20)}, &fakeGrammar{due: grammarDue(20)}, &fakeMistakes{due: mistakesDue(20)}, vb)

	cards, err := b.Build(context.Background(), 1, ModeMixed, 12)
	require.NoError(t, err)
	assert.Zero(t, vb.lastLimit)
	for _, c := range cards {
		assert.NotEqual(t, KindVerb, c.Kind)
	}
}

func TestBuildMixedProportions(t *testing.T) {
	v := &fakeVocab{due: vocabDue(20)}
	g := &fakeGrammar{due: grammarDue(20)}
	m := &fakeMistakes{due: mistakesDue(20)}
	b := newTestBuilder(v, g, m)

	cards, err := b.Build(context.Background(), 1, ModeMixed, 10)
	require.NoError(t, err)

	// draws length/2 + length/2 + length/3, then truncates to length
	assert.Equal(t, 5, v.lastLimit)
	assert.Equal(t, 5, g.lastLimit)
	assert.Equal(t, 3, m.lastLimit)
	assert.Len(t, cards, 10)
}

func TestBuildMixedNoPadding(t *testing.T) {
	v := &fakeVocab{due: vocabDue(1)}
	g := &fakeGrammar{}
	m := &fakeMistakes{due: mistakesDue(1)}
	b := newTestBuilder(v, g, m)

	cards, err := b.Build(context.Background(), 1, ModeMixed, 10)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestBuildMixedShuffles(t *testing.T) {
	v := &fakeVocab{due: vocabDue(10)}
	g := &fakeGrammar{due: grammarDue(10)}
	m := &fakeMistakes{due: mistakesDue(6)}
	b := newTestBuilder(v, g, m)

	cards, err := b.Build(context.Background(), 1, ModeMixed, 20)
	require.NoError(t, err)
	require.Len(t, cards, 20)

	// a shuffled pool shouldn't keep all vocab cards in front
	allVocabFirst := true
	for i := 0; i < 10; i++ {
		if cards[i].Kind != KindVocab {
			allVocabFirst = false
			break
		}
	}
	assert.False(t, allVocabFirst)
}

func TestBuildUnknownMode(t *testing.T) {
	b := newTestBuilder(&fakeVocab{}, &fakeGrammar{}, &fakeMistakes{})
	_, err := b.Build(context.Background(), 1, "listening", 10)
	assert.Error(t, err)
}

func TestBuildZeroLength(t *testing.T) {
	b := newTestBuilder(&fakeVocab{due: vocabDue(3)}, &fakeGrammar{}, &fakeMistakes{})
	cards, err := b.Build(context.Background(), 1, ModeMixed, 0)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestBuildPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("database is locked")
	b := newTestBuilder(&fakeVocab{err: storeErr}, &fakeGrammar{}, &fakeMistakes{})

	_, err := b.Build(context.Background(), 1, ModeMixed, 10)
	assert.ErrorIs(t, err, storeErr)
}

func TestRecordOutcomeRouting(t *testing.T) {
	v := &fakeVocab{}
	g := &fakeGrammar{}
	m := &fakeMistakes{}
	vb := &fakeVerbs{}
	b := newTestBuilderWithVerbs(v, g, m, vb)
	ctx := context.Background()

	_, err := b.RecordOutcome(ctx, 1, Card{Kind: KindVocab, Key: "plazo"}, 4)
	require.NoError(t, err)
	_, err = b.RecordOutcome(ctx, 1, Card{Kind: KindGrammar, Key: "drill0"}, 2)
	require.NoError(t, err)
	_, err = b.RecordOutcome(ctx, 1, Card{Kind: KindVerb, Key: "3"}, 3)
	require.NoError(t, err)
	_, err = b.RecordOutcome(ctx, 1, Card{Kind: KindMistake, Key: "7"}, 5)
	require.NoError(t, err)

	assert.Equal(t, []recordedReview{{key: "plazo", quality: 4}}, v.reviews)
	assert.Equal(t, []recordedReview{{key: "drill0", quality: 2}}, g.reviews)
	assert.Equal(t, []recordedReview{{key: "3", quality: 3}}, vb.reviews)
	assert.Equal(t, []recordedReview{{key: "7", quality: 5}}, m.reviews)

	_, err = b.RecordOutcome(ctx, 1, Card{Kind: KindMistake, Key: "not-a-number"}, 4)
	assert.Error(t, err)

	_, err = b.RecordOutcome(ctx, 1, Card{Kind: KindVerb, Key: "not-a-number"}, 4)
	assert.Error(t, err)
}
