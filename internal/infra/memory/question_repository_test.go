package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"vr-quiz-engine/internal/domain"
)

func TestQuestionRepositoryCaches(t *testing.T) {
	loader := &countingLoader{
		QuestionLoader: NewStaticQuestionLoader(map[string][]domain.Question{
			"en": sampleQuestions(),
		}),
	}
	repo := NewQuestionRepository(loader, time.Minute)

	if _, err := repo.Question(context.Background(), "en"); err != nil {
		t.Fatalf("get question: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.Question(context.Background(), "en"); err != nil {
		t.Fatalf("get question 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuestionByID(t *testing.T) {
	repo := NewQuestionRepository(NewStaticQuestionLoader(map[string][]domain.Question{
		"en": sampleQuestions(),
	}), time.Minute)

	q, err := repo.QuestionByID(context.Background(), "en", "q2")
	if err != nil {
		t.Fatalf("by id: %v", err)
	}
	if q.Text != "What is the largest ocean on Earth?" {
		t.Fatalf("wrong question resolved: %+v", q)
	}

	if _, err := repo.QuestionByID(context.Background(), "en", "missing"); err != domain.ErrQuestionNotFound {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestUnknownLanguage(t *testing.T) {
	repo := NewQuestionRepository(NewStaticQuestionLoader(map[string][]domain.Question{
		"en": sampleQuestions(),
	}), time.Minute)

	if _, err := repo.Question(context.Background(), "fr"); err != domain.ErrNoQuestions {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

// One repository serves every connection, so random question picks run
// concurrently. Run with -race.
func TestConcurrentQuestionReads(t *testing.T) {
	repo := NewQuestionRepository(NewStaticQuestionLoader(map[string][]domain.Question{
		"en": sampleQuestions(),
	}), time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if _, err := repo.Question(context.Background(), "en"); err != nil {
					t.Errorf("get question: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

type countingLoader struct {
	QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestions(ctx context.Context, language string) ([]domain.Question, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestions(ctx, language)
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:           "q1",
			Language:     "en",
			Text:         "Which planet is known as the Red Planet?",
			Options:      []string{"Venus", "Mars", "Jupiter", "Mercury"},
			CorrectIndex: 1,
		},
		{
			ID:           "q2",
			Language:     "en",
			Text:         "What is the largest ocean on Earth?",
			Options:      []string{"Atlantic", "Indian", "Pacific", "Arctic"},
			CorrectIndex: 2,
		},
	}
}
