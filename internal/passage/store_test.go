package passage

import (
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "passages.json"))
}

func TestMissingFileIsEmpty(t *testing.T) {
	s := testStore(t)

	passages, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(passages) != 0 {
		t.Errorf("expected empty store, got %d passages", len(passages))
	}

	next, err := s.NextWeekNum()
	if err != nil {
		t.Fatalf("NextWeekNum failed: %v", err)
	}
	if next != 1 {
		t.Errorf("expected first week to be 1, got %d", next)
	}
}

func TestAddAndListSorted(t *testing.T) {
	s := testStore(t)

	for _, week := range []int{3, 1, 2} {
		err := s.Add(Passage{WeekNum: week, EnglishText: "text", JapaneseText: "訳"})
		if err != nil {
			t.Fatalf("Add week %d failed: %v", week, err)
		}
	}

	passages, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(passages) != 3 {
		t.Fatalf("expected 3 passages, got %d", len(passages))
	}
	for i, p := range passages {
		if p.WeekNum != i+1 {
			t.Errorf("position %d holds week %d", i, p.WeekNum)
		}
	}

	next, err := s.NextWeekNum()
	if err != nil {
		t.Fatalf("NextWeekNum failed: %v", err)
	}
	if next != 4 {
		t.Errorf("expected next week 4, got %d", next)
	}
}

func TestAddReplacesSameWeek(t *testing.T) {
	s := testStore(t)

	if err := s.Add(Passage{WeekNum: 1, EnglishText: "old"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Add(Passage{WeekNum: 1, EnglishText: "new"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	p, err := s.Get(1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p.EnglishText != "new" {
		t.Errorf("expected replacement, got %q", p.EnglishText)
	}

	passages, _ := s.List()
	if len(passages) != 1 {
		t.Errorf("expected 1 passage after replace, got %d", len(passages))
	}
}

func TestSetAudio(t *testing.T) {
	s := testStore(t)

	if err := s.Add(Passage{WeekNum: 2, EnglishText: "text"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.SetAudio(2, "week_2.mp3"); err != nil {
		t.Fatalf("SetAudio failed: %v", err)
	}

	p, err := s.Get(2)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p.AudioFile != "week_2.mp3" {
		t.Errorf("audio file not recorded: %+v", p)
	}

	if err := s.SetAudio(9, "nope.mp3"); err == nil {
		t.Error("expected error for unknown week")
	}
}

func TestGetUnknownWeek(t *testing.T) {
	s := testStore(t)
	if _, err := s.Get(5); err == nil {
		t.Error("expected error for unknown week")
	}
}
