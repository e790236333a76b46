package domain

import "errors"

var (
	// ErrInvalidQuestionData is returned when a question does not carry
	// exactly four options.
	ErrInvalidQuestionData = errors.New("question must have exactly four options")
	// ErrInvalidDuration is returned when a countdown is started with a
	// non-positive duration.
	ErrInvalidDuration = errors.New("countdown duration must be positive")
	// ErrQuestionNotFound indicates a question ID could not be resolved.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrNoQuestions indicates a language has no questions to serve.
	ErrNoQuestions = errors.New("no questions available for language")
)
