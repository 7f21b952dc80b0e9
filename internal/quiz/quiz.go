// Package quiz builds randomized question sets from a phrase folder and
// grades free-text answers against them.
package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/example/engstudy/internal/database"
	"github.com/example/engstudy/pkg/models"
)

// Direction selects which side of a phrase is shown as the prompt.
type Direction string

const (
	// SourceToTarget shows the source text and expects the target text.
	SourceToTarget Direction = "source_to_target"
	// TargetToSource shows the target text and expects the source text.
	TargetToSource Direction = "target_to_source"
)

// ErrNoPhrases is returned when a quiz is requested for a folder that has no
// phrases. Callers must refuse to build the quiz and tell the user.
var ErrNoPhrases = errors.New("folder has no phrases")

// Item is one quiz question: a prompt and its gold answer, projected from a
// phrase by the chosen direction. Items are never persisted.
type Item struct {
	PhraseID int64  `json:"phrase_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Generator samples quiz items from the phrase store.
type Generator struct {
	phrases *database.PhraseRepository
	rnd     *rand.Rand
}

// NewGenerator creates a generator. Pass a nil rnd for a time-seeded source;
// tests inject a fixed-seed one to pin the shuffle order.
func NewGenerator(phrases *database.PhraseRepository, rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{phrases: phrases, rnd: rnd}
}

// Build loads the folder's phrases and samples up to count items in a fresh
// random order.
func (g *Generator) Build(folder string, direction Direction, count int) ([]Item, error) {
	phrases, err := g.phrases.GetByFolder(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to load phrases: %w", err)
	}
	return g.BuildFrom(phrases, direction, count)
}

// BuildFrom samples items from an already-loaded phrase set. The whole set is
// shuffled, then truncated to min(count, available); no item appears twice
// and short folders are never padded.
func (g *Generator) BuildFrom(phrases []models.Phrase, direction Direction, count int) ([]Item, error) {
	if len(phrases) == 0 {
		return nil, ErrNoPhrases
	}
	if count < 1 {
		return nil, fmt.Errorf("question count must be positive, got %d", count)
	}

	shuffled := make([]models.Phrase, len(phrases))
	copy(shuffled, phrases)
	g.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if count > len(shuffled) {
		count = len(shuffled)
	}
	shuffled = shuffled[:count]

	items := make([]Item, 0, len(shuffled))
	for _, p := range shuffled {
		item := Item{PhraseID: p.ID}
		if direction == TargetToSource {
			item.Question = p.TargetText
			item.Answer = p.SourceText
		} else {
			item.Question = p.SourceText
			item.Answer = p.TargetText
		}
		items = append(items, item)
	}
	return items, nil
}
