// Package quiz declares the interfaces the interaction engine consumes from
// the question/translation service. Implementations live under internal/infra.
package quiz

import (
	"context"

	"vr-quiz-engine/internal/domain"
)

// QuestionSource hands out the next question for a language. Selection
// strategy (random, sequential) is the implementation's concern.
type QuestionSource interface {
	Question(ctx context.Context, language string) (domain.Question, error)
}

// QuestionRepository extends QuestionSource with by-ID lookup, which answer
// verification needs.
type QuestionRepository interface {
	QuestionSource
	QuestionByID(ctx context.Context, language, id string) (domain.Question, error)
}

// AnswerVerifier checks a selected option against the authoritative answer.
// Used when a question arrives without its correct index; failures are
// recovered locally by the session (no reveal, log only).
type AnswerVerifier interface {
	CheckAnswer(ctx context.Context, questionID, selectedOption, language string) (domain.VerificationResult, error)
}
