package quiz

// Session holds the interactive quiz state: the current question set and the
// per-question results. It is the single owner of that state; nothing in it
// is ever written back to the store.
type Session struct {
	Folder    string         `json:"folder"`
	Direction Direction      `json:"direction"`
	Items     []Item         `json:"items"`
	Results   map[int]Result `json:"results"`
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{Results: map[int]Result{}}
}

// Replace swaps in a freshly built question set. Items and results are
// replaced together so no stale result can refer to a new question.
func (s *Session) Replace(folder string, direction Direction, items []Item) {
	s.Folder = folder
	s.Direction = direction
	s.Items = items
	s.Results = map[int]Result{}
}

// Clear discards both the question set and the results.
func (s *Session) Clear() {
	s.Folder = ""
	s.Direction = ""
	s.Items = nil
	s.Results = map[int]Result{}
}

// ResetResults wipes the scores but keeps the question set, for re-answering
// the same quiz.
func (s *Session) ResetResults() {
	s.Results = map[int]Result{}
}

// Record stores the result for a question index, overwriting any prior grade
// for the same index.
func (s *Session) Record(index int, result Result) {
	s.Results[index] = result
}

// Score aggregates the session: how many questions were graded and how many
// of those were correct.
func (s *Session) Score() (answered, correct int) {
	for _, r := range s.Results {
		if !r.Checked {
			continue
		}
		answered++
		if r.Correct {
			correct++
		}
	}
	return answered, correct
}
