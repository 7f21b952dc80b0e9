package quiz

import "testing"

func TestSessionReplaceClearsResults(t *testing.T) {
	s := NewSession()
	s.Replace("A", SourceToTarget, []Item{{PhraseID: 1}, {PhraseID: 2}})
	s.Record(0, Result{Checked: true, Correct: true, Ratio: 1.0})

	s.Replace("B", TargetToSource, []Item{{PhraseID: 3}})
	if len(s.Results) != 0 {
		t.Error("expected results to be cleared on replace")
	}
	if s.Folder != "B" || len(s.Items) != 1 {
		t.Errorf("unexpected session state: %+v", s)
	}
}

func TestSessionResetResultsKeepsItems(t *testing.T) {
	s := NewSession()
	s.Replace("A", SourceToTarget, []Item{{PhraseID: 1}})
	s.Record(0, Result{Checked: true, Correct: false, Ratio: 0.2})

	s.ResetResults()
	if len(s.Results) != 0 {
		t.Error("expected results to be cleared")
	}
	if len(s.Items) != 1 {
		t.Error("expected items to survive a result reset")
	}
}

func TestSessionRecordOverwrites(t *testing.T) {
	s := NewSession()
	s.Replace("A", SourceToTarget, []Item{{PhraseID: 1}})
	s.Record(0, Result{Checked: true, Correct: false, Ratio: 0.2})
	s.Record(0, Result{Checked: true, Correct: true, Ratio: 1.0})

	if !s.Results[0].Correct {
		t.Error("expected re-grade to overwrite the prior result")
	}
	answered, correct := s.Score()
	if answered != 1 || correct != 1 {
		t.Errorf("unexpected score: answered=%d correct=%d", answered, correct)
	}
}

func TestSessionScore(t *testing.T) {
	s := NewSession()
	s.Replace("A", SourceToTarget, []Item{{}, {}, {}})
	s.Record(0, Result{Checked: true, Correct: true, Ratio: 1.0})
	s.Record(2, Result{Checked: true, Correct: false, Ratio: 0.3})

	answered, correct := s.Score()
	if answered != 2 {
		t.Errorf("expected 2 answered, got %d", answered)
	}
	if correct != 1 {
		t.Errorf("expected 1 correct, got %d", correct)
	}
}

func TestSessionClear(t *testing.T) {
	s := NewSession()
	s.Replace("A", SourceToTarget, []Item{{PhraseID: 1}})
	s.Record(0, Result{Checked: true})

	s.Clear()
	if s.Items != nil || len(s.Results) != 0 || s.Folder != "" {
		t.Errorf("expected empty session after clear, got %+v", s)
	}
}
