// Package review builds review queues over the reviewable kinds
// (vocabulary, grammar drills, verb conjugations, logged mistakes) and
// runs the card sessions that feed outcomes back into the scheduler.
package review

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/eugendimant/vivalingo/pkg/models"
)

// Queue modes
const (
	ModeVocab    = "vocab"
	ModeGrammar  = "grammar"
	ModeVerbs    = "verbs"
	ModeMistakes = "mistakes"
	ModeMixed    = "mixed"
)

// Card kinds
const (
	KindVocab   = "vocab"
	KindGrammar = "grammar"
	KindVerb    = "verb"
	KindMistake = "mistake"
)

// Card is one review prompt, flattened from whichever kind it came from.
// Key identifies the item inside its own store: the term for vocab, the
// pattern name for grammar, the row id for verbs and mistakes.
type Card struct {
	Kind        string   `json:"kind"`
	Key         string   `json:"key"`
	Prompt      string   `json:"prompt"`
	Answer      string   `json:"answer"`
	Options     []string `json:"options,omitempty"` // multiple choice, grammar only
	Hint        string   `json:"hint,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	Examples    []string `json:"examples,omitempty"`
	Domain      string   `json:"domain,omitempty"` // topic domain, vocab only
}

// VocabSource is the slice of the vocab store the queue needs
type VocabSource interface {
	GetDue(ctx context.Context, profileID int64, limit int) ([]models.VocabItem, error)
	RecordReview(ctx context.Context, profileID int64, term string, quality int) (*models.ReviewUpdate, error)
}

// GrammarSource is the slice of the grammar store the queue needs
type GrammarSource interface {
	GetDue(ctx context.Context, profileID int64, limit int) ([]models.GrammarPattern, error)
	RecordReview(ctx context.Context, profileID int64, patternName string, quality int) (*models.ReviewUpdate, error)
}

// MistakeSource is the slice of the mistake store the queue needs
type MistakeSource interface {
	GetDue(ctx context.Context, profileID int64, limit int) ([]models.Mistake, error)
	RecordReview(ctx context.Context, profileID, id int64, quality int) (*models.ReviewUpdate, error)
}

// VerbSource is the slice of the conjugation store the queue needs
type VerbSource interface {
	GetDue(ctx context.Context, profileID int64, limit int) ([]models.VerbConjugation, error)
	RecordReview(ctx context.Context, profileID, id int64, quality int) (*models.ReviewUpdate, error)
}

// Builder assembles review queues from the per-kind stores
type Builder struct {
	vocab    VocabSource
	grammar  GrammarSource
	mistakes MistakeSource
	verbs    VerbSource
	rng      *rand.Rand
}

// NewBuilder creates a queue builder
func NewBuilder(vocab VocabSource, grammar GrammarSource, mistakes MistakeSource, verbs VerbSource) *Builder {
	return &Builder{
		vocab:    vocab,
		grammar:  grammar,
		mistakes: mistakes,
		verbs:    verbs,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Build returns at most length cards for the given mode. Single-kind modes
// take the due items straight from that store. Mixed mode draws length/2
// vocab, length/2 grammar and length/3 mistakes, shuffles the pool and
// truncates to length; when fewer items are due the queue is simply
// shorter, never padded.
func (b *Builder) Build(ctx context.Context, profileID int64, mode string, length int) ([]Card, error) {
	if length <= 0 {
		return nil, nil
	}

	switch mode {
	case ModeVocab:
		items, err := b.vocab.GetDue(ctx, profileID, length)
		if err != nil {
			return nil, err
		}
		return vocabCards(items), nil
	case ModeGrammar:
		items, err := b.grammar.GetDue(ctx, profileID, length)
		if err != nil {
			return nil, err
		}
		return grammarCards(items), nil
	case ModeVerbs:
		items, err := b.verbs.GetDue(ctx, profileID, length)
		if err != nil {
			return nil, err
		}
		return verbCards(items), nil
	case ModeMistakes:
		items, err := b.mistakes.GetDue(ctx, profileID, length)
		if err != nil {
			return nil, err
		}
		return mistakeCards(items), nil
	case ModeMixed:
		return b.buildMixed(ctx, profileID, length)
	default:
		return nil, fmt.Errorf("unknown review mode %q", mode)
	}
}

func (b *Builder) buildMixed(ctx context.Context, profileID int64, length int) ([]Card, error) {
	vocabItems, err := b.vocab.GetDue(ctx, profileID, length/2)
	if err != nil {
		return nil, err
	}
	grammarItems, err := b.grammar.GetDue(ctx, profileID, length/2)
	if err != nil {
		return nil, err
	}
	mistakeItems, err := b.mistakes.GetDue(ctx, profileID, length/3)
	if err != nil {
		return nil, err
	}

	cards := vocabCards(vocabItems)
	cards = append(cards, grammarCards(grammarItems)...)
	cards = append(cards, mistakeCards(mistakeItems)...)

	b.rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	if len(cards) > length {
		cards = cards[:length]
	}
	return cards, nil
}

// RecordOutcome routes one graded card back to the store it came from.
// A stale key is a silent no-op, mirroring the stores.
func (b *Builder) RecordOutcome(ctx context.Context, profileID int64, card Card, quality int) (*models.ReviewUpdate, error) {
	switch card.Kind {
	case KindVocab:
		return b.vocab.RecordReview(ctx, profileID, card.Key, quality)
	case KindGrammar:
		return b.grammar.RecordReview(ctx, profileID, card.Key, quality)
	case KindVerb:
		id, err := strconv.ParseInt(card.Key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad verb card key %q: %w", card.Key, err)
		}
		return b.verbs.RecordReview(ctx, profileID, id, quality)
	case KindMistake:
		id, err := strconv.ParseInt(card.Key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad mistake card key %q: %w", card.Key, err)
		}
		return b.mistakes.RecordReview(ctx, profileID, id, quality)
	default:
		return nil, fmt.Errorf("unknown card kind %q", card.Kind)
	}
}

func vocabCards(items []models.VocabItem) []Card {
	cards := make([]Card, 0, len(items))
	for i := range items {
		v := &items[i]
		cards = append(cards, Card{
			Kind:        KindVocab,
			Key:         v.Term,
			Prompt:      v.Meaning,
			Answer:      v.Term,
			Hint:        v.PartOfSpeech,
			Explanation: v.Example,
			Examples:    v.CollocationList(),
			Domain:      v.Domain,
		})
	}
	return cards
}

func grammarCards(items []models.GrammarPattern) []Card {
	cards := make([]Card, 0, len(items))
	for i := range items {
		g := &items[i]
		cards = append(cards, Card{
			Kind:        KindGrammar,
			Key:         g.PatternName,
			Prompt:      g.Prompt,
			Answer:      g.Answer,
			Options:     g.OptionList(),
			Hint:        g.Category,
			Explanation: g.Explanation,
			Examples:    g.ExampleList(),
		})
	}
	return cards
}

func verbCards(items []models.VerbConjugation) []Card {
	cards := make([]Card, 0, len(items))
	for i := range items {
		v := &items[i]
		hint := v.Meaning
		if v.Irregular {
			hint += " (irregular)"
		}
		cards = append(cards, Card{
			Kind:   KindVerb,
			Key:    strconv.FormatInt(v.ID, 10),
			Prompt: fmt.Sprintf("%s: %s, %s", v.Infinitive, v.Tense, v.Person),
			Answer: v.Form,
			Hint:   hint,
		})
	}
	return cards
}

func mistakeCards(items []models.Mistake) []Card {
	cards := make([]Card, 0, len(items))
	for i := range items {
		m := &items[i]
		cards = append(cards, Card{
			Kind:        KindMistake,
			Key:         strconv.FormatInt(int64(m.ID), 10),
			Prompt:      m.UserText,
			Answer:      m.CorrectedText,
			Hint:        m.ErrorTag,
			Explanation: m.Explanation,
			Examples:    m.ExampleList(),
		})
	}
	return cards
}
