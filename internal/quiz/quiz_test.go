package quiz

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/example/engstudy/pkg/models"
)

func testPhrases(n int) []models.Phrase {
	phrases := make([]models.Phrase, n)
	for i := range phrases {
		phrases[i] = models.Phrase{
			ID:         int64(i + 1),
			Folder:     "test",
			SourceText: "src",
			TargetText: "tgt",
		}
	}
	return phrases
}

func seededGenerator(seed int64) *Generator {
	return NewGenerator(nil, rand.New(rand.NewSource(seed)))
}

func TestBuildFromEmptyFolder(t *testing.T) {
	g := seededGenerator(1)
	_, err := g.BuildFrom(nil, SourceToTarget, 10)
	if !errors.Is(err, ErrNoPhrases) {
		t.Errorf("expected ErrNoPhrases, got %v", err)
	}
}

func TestBuildFromInvalidCount(t *testing.T) {
	g := seededGenerator(1)
	if _, err := g.BuildFrom(testPhrases(3), SourceToTarget, 0); err == nil {
		t.Error("expected error for non-positive count")
	}
}

func TestBuildFromTruncatesToAvailable(t *testing.T) {
	g := seededGenerator(1)
	items, err := g.BuildFrom(testPhrases(4), SourceToTarget, 100)
	if err != nil {
		t.Fatalf("BuildFrom failed: %v", err)
	}
	if len(items) != 4 {
		t.Errorf("expected exactly 4 items, got %d", len(items))
	}
}

func TestBuildFromNoDuplicates(t *testing.T) {
	g := seededGenerator(42)
	items, err := g.BuildFrom(testPhrases(20), SourceToTarget, 20)
	if err != nil {
		t.Fatalf("BuildFrom failed: %v", err)
	}
	seen := map[int64]bool{}
	for _, it := range items {
		if seen[it.PhraseID] {
			t.Fatalf("phrase %d sampled twice", it.PhraseID)
		}
		seen[it.PhraseID] = true
	}
}

func TestBuildFromLimitsCount(t *testing.T) {
	g := seededGenerator(7)
	items, err := g.BuildFrom(testPhrases(20), SourceToTarget, 5)
	if err != nil {
		t.Fatalf("BuildFrom failed: %v", err)
	}
	if len(items) != 5 {
		t.Errorf("expected 5 items, got %d", len(items))
	}
}

func TestBuildFromDirection(t *testing.T) {
	phrases := []models.Phrase{{
		ID:         1,
		SourceText: "こんにちは",
		TargetText: "hello",
	}}

	t.Run("source to target", func(t *testing.T) {
		items, err := seededGenerator(1).BuildFrom(phrases, SourceToTarget, 1)
		if err != nil {
			t.Fatalf("BuildFrom failed: %v", err)
		}
		if items[0].Question != "こんにちは" || items[0].Answer != "hello" {
			t.Errorf("unexpected projection: %+v", items[0])
		}
	})

	t.Run("target to source", func(t *testing.T) {
		items, err := seededGenerator(1).BuildFrom(phrases, TargetToSource, 1)
		if err != nil {
			t.Fatalf("BuildFrom failed: %v", err)
		}
		if items[0].Question != "hello" || items[0].Answer != "こんにちは" {
			t.Errorf("unexpected projection: %+v", items[0])
		}
	})
}

func TestBuildFromDoesNotMutateInput(t *testing.T) {
	phrases := testPhrases(10)
	ids := make([]int64, len(phrases))
	for i, p := range phrases {
		ids[i] = p.ID
	}

	if _, err := seededGenerator(99).BuildFrom(phrases, SourceToTarget, 10); err != nil {
		t.Fatalf("BuildFrom failed: %v", err)
	}

	for i, p := range phrases {
		if p.ID != ids[i] {
			t.Fatal("input slice was reordered")
		}
	}
}

func TestSeededShuffleIsDeterministic(t *testing.T) {
	a, err := seededGenerator(5).BuildFrom(testPhrases(15), SourceToTarget, 15)
	if err != nil {
		t.Fatalf("BuildFrom failed: %v", err)
	}
	b, err := seededGenerator(5).BuildFrom(testPhrases(15), SourceToTarget, 15)
	if err != nil {
		t.Fatalf("BuildFrom failed: %v", err)
	}
	for i := range a {
		if a[i].PhraseID != b[i].PhraseID {
			t.Fatal("same seed produced different orders")
		}
	}
}
