package quiz

import (
	"regexp"
	"strings"
)

// overlapThreshold is the lexical-overlap score at or above which a non-exact
// answer still counts as correct.
const overlapThreshold = 0.8

var (
	spaceRE = regexp.MustCompile(`\s+`)
	// everything outside word characters, whitespace, hyphen and apostrophe
	// is stripped; CJK ideographs and kana are letters and survive untouched
	nonWordRE = regexp.MustCompile(`[^\p{L}\p{N}_\s'-]`)
	tokenRE   = regexp.MustCompile(`[a-zA-Z']+`)
)

// Result is the outcome of grading one answer.
type Result struct {
	Checked bool    `json:"checked"`
	Correct bool    `json:"correct"`
	Ratio   float64 `json:"ratio"`
}

// Normalize flattens case, whitespace and punctuation differences so that
// trivially different renderings of the same answer compare equal.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = spaceRE.ReplaceAllString(s, " ")
	s = nonWordRE.ReplaceAllString(s, "")
	return strings.ToLower(s)
}

// Grade compares a free-text answer to the gold answer. An answer is correct
// on an exact normalized match, or when the word-level Jaccard overlap
// reaches the threshold. Grading is pure: no state is touched.
func Grade(userAnswer, goldAnswer string) Result {
	exact := Normalize(userAnswer) == Normalize(goldAnswer)
	ratio := overlapRatio(userAnswer, goldAnswer)
	return Result{
		Checked: true,
		Correct: exact || ratio >= overlapThreshold,
		Ratio:   ratio,
	}
}

// overlapRatio is the Jaccard similarity between the two answers' Latin word
// token sets. Inputs with no Latin tokens (pure CJK) fall back to all-or-
// nothing on the normalized forms.
func overlapRatio(a, b string) float64 {
	an := Normalize(a)
	bn := Normalize(b)
	if an == "" || bn == "" {
		if an == bn {
			return 1.0
		}
		return 0.0
	}

	aw := tokenSet(an)
	bw := tokenSet(bn)
	if len(aw) == 0 || len(bw) == 0 {
		if an == bn {
			return 1.0
		}
		return 0.0
	}

	intersection := 0
	for tok := range aw {
		if bw[tok] {
			intersection++
		}
	}
	union := len(aw) + len(bw) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := map[string]bool{}
	for _, tok := range tokenRE.FindAllString(s, -1) {
		set[tok] = true
	}
	return set
}
