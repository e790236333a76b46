package quiz

import (
	"context"
	"fmt"

	"vr-quiz-engine/internal/domain"
)

// RepositoryVerifier answers CheckAnswer from any QuestionRepository: the
// selected option text is compared against the stored correct option.
type RepositoryVerifier struct {
	repo QuestionRepository
}

func NewRepositoryVerifier(repo QuestionRepository) *RepositoryVerifier {
	return &RepositoryVerifier{repo: repo}
}

func (v *RepositoryVerifier) CheckAnswer(ctx context.Context, questionID, selectedOption, language string) (domain.VerificationResult, error) {
	q, err := v.repo.QuestionByID(ctx, language, questionID)
	if err != nil {
		return domain.VerificationResult{}, fmt.Errorf("check answer: %w", err)
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return domain.VerificationResult{}, fmt.Errorf("check answer: %w", domain.ErrQuestionNotFound)
	}
	return domain.VerificationResult{
		QuestionID: questionID,
		IsCorrect:  q.Options[q.CorrectIndex] == selectedOption,
	}, nil
}
