package domain

// OptionCount is the fixed multiple-choice contract: every question carries
// exactly four options. Layout math and hit-testing assume it.
const OptionCount = 4

// NoIndex marks an unset selected/correct index in a QuestionView.
const NoIndex = -1

// Question is the content delivered by a question source for one language.
type Question struct {
	ID       string   `json:"id"`
	Language string   `json:"language"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	// CorrectIndex is NoIndex when the source withholds the answer and the
	// session must go through an AnswerVerifier instead.
	CorrectIndex int `json:"correctIndex"`
}

// QuestionView is what the render surface draws: the question plus the
// session's selection/reveal progress. Options is a fixed array so the
// exactly-four invariant holds by construction past the boundary guard.
type QuestionView struct {
	Text          string              `json:"text"`
	Options       [OptionCount]string `json:"options"`
	SelectedIndex int                 `json:"selectedIndex"`
	CorrectIndex  int                 `json:"correctIndex"`
	// Revealed turns on correct/incorrect styling. It can be true while
	// CorrectIndex is still NoIndex: an external verifier reported the
	// selection wrong without disclosing the right option.
	Revealed bool `json:"revealed"`
}

// NewQuestionView validates the four-option contract and builds the initial
// view with no selection and no reveal.
func NewQuestionView(q Question) (QuestionView, error) {
	if len(q.Options) != OptionCount {
		return QuestionView{}, ErrInvalidQuestionData
	}
	view := QuestionView{
		Text:          q.Text,
		SelectedIndex: NoIndex,
		CorrectIndex:  NoIndex,
	}
	copy(view.Options[:], q.Options)
	return view, nil
}

// HasSelection reports whether the user picked an option.
func (v QuestionView) HasSelection() bool { return v.SelectedIndex != NoIndex }

// VerificationResult is the outcome of an external answer check.
type VerificationResult struct {
	QuestionID string `json:"questionId"`
	IsCorrect  bool   `json:"isCorrect"`
}
