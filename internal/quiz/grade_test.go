package quiz

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"trims and lowercases", "  Hello World  ", "hello world"},
		{"collapses whitespace runs", "a \t\n b", "a b"},
		{"strips punctuation", "That's a great idea.", "that's a great idea"},
		{"keeps hyphen and apostrophe", "well-known don't", "well-known don't"},
		{"keeps kana and kanji", "それは素晴らしい考えです。", "それは素晴らしい考えです"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.input); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestGradeExactMatch(t *testing.T) {
	res := Grade("That's a great idea.", "that's a great idea")
	if !res.Correct {
		t.Error("expected case/punctuation-insensitive match to be correct")
	}
	if res.Ratio != 1.0 {
		t.Errorf("expected ratio 1.0, got %v", res.Ratio)
	}
}

func TestGradeTokenSetsEqual(t *testing.T) {
	res := Grade("I like apples and oranges", "I like oranges and apples")
	if res.Ratio != 1.0 {
		t.Errorf("expected ratio 1.0 for equal token sets, got %v", res.Ratio)
	}
	if !res.Correct {
		t.Error("expected equal token sets to be correct")
	}
}

func TestGradeBelowThreshold(t *testing.T) {
	res := Grade("I like apples", "I like oranges")
	if math.Abs(res.Ratio-0.5) > 1e-9 {
		t.Errorf("expected ratio 0.5, got %v", res.Ratio)
	}
	if res.Correct {
		t.Error("expected 0.5 overlap to be incorrect")
	}
}

func TestGradeJapaneseExact(t *testing.T) {
	res := Grade("それは素晴らしい考えです。", "それは素晴らしい考えです")
	if !res.Correct || res.Ratio != 1.0 {
		t.Errorf("expected exact CJK match, got %+v", res)
	}
}

func TestGradeJapaneseMismatch(t *testing.T) {
	res := Grade("全然違う答え", "それは素晴らしい考えです")
	if res.Correct || res.Ratio != 0.0 {
		t.Errorf("expected CJK mismatch to score zero, got %+v", res)
	}
}

func TestGradeEmptyStrings(t *testing.T) {
	t.Run("both empty", func(t *testing.T) {
		res := Grade("", "")
		if !res.Correct || res.Ratio != 1.0 {
			t.Errorf("two empty answers should match, got %+v", res)
		}
	})

	t.Run("one empty", func(t *testing.T) {
		res := Grade("", "some answer")
		if res.Correct || res.Ratio != 0.0 {
			t.Errorf("empty answer should not match, got %+v", res)
		}
	})
}

func TestGradeIsIdempotent(t *testing.T) {
	first := Grade("I like apples", "I like oranges")
	second := Grade("I like apples", "I like oranges")
	if first != second {
		t.Errorf("grading is not stable: %+v vs %+v", first, second)
	}
}
