package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"vr-quiz-engine/internal/domain"
)

// QuestionLoader fetches a language's question set from a backing store
// (e.g., document DB).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, language string) ([]domain.Question, error)
}

// QuestionRepository caches per-language question sets with TTL to avoid
// repeated store hits, and serves random questions from the cached set.
type QuestionRepository struct {
	loader QuestionLoader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu    sync.RWMutex
	cache map[string]cachedSet
}

type cachedSet struct {
	questions []domain.Question
	expiresAt time.Time
}

func NewQuestionRepository(loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		cache:  make(map[string]cachedSet),
	}
}

// Question returns a random question for the language.
func (r *QuestionRepository) Question(ctx context.Context, language string) (domain.Question, error) {
	set, err := r.questions(ctx, language)
	if err != nil {
		return domain.Question{}, err
	}
	if len(set) == 0 {
		return domain.Question{}, domain.ErrNoQuestions
	}
	// The repository is shared across connections; the top-level rand
	// functions are safe for concurrent use, a *rand.Rand is not.
	return set[rand.Intn(len(set))], nil
}

// QuestionByID resolves a question for answer verification.
func (r *QuestionRepository) QuestionByID(ctx context.Context, language, id string) (domain.Question, error) {
	set, err := r.questions(ctx, language)
	if err != nil {
		return domain.Question{}, err
	}
	for _, q := range set {
		if q.ID == id {
			return q, nil
		}
	}
	return domain.Question{}, domain.ErrQuestionNotFound
}

func (r *QuestionRepository) questions(ctx context.Context, language string) ([]domain.Question, error) {
	now := r.clock()

	r.mu.RLock()
	if entry, ok := r.cache[language]; ok && entry.expiresAt.After(now) {
		r.mu.RUnlock()
		return entry.questions, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(language, func() (interface{}, error) {
		now := r.clock()
		r.mu.RLock()
		if entry, ok := r.cache[language]; ok && entry.expiresAt.After(now) {
			r.mu.RUnlock()
			return entry.questions, nil
		}
		r.mu.RUnlock()

		questions, err := r.loader.LoadQuestions(ctx, language)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[language] = cachedSet{
			questions: questions,
			expiresAt: now.Add(r.ttlWithJitter()),
		}
		r.mu.Unlock()
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// StaticQuestionLoader is a loader backed by an in-memory map, useful for
// tests and demo runs without a database.
type StaticQuestionLoader struct {
	questions map[string][]domain.Question
}

func NewStaticQuestionLoader(questions map[string][]domain.Question) *StaticQuestionLoader {
	return &StaticQuestionLoader{questions: questions}
}

func (l *StaticQuestionLoader) LoadQuestions(_ context.Context, language string) ([]domain.Question, error) {
	if set, ok := l.questions[language]; ok {
		return set, nil
	}
	return nil, domain.ErrNoQuestions
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(rand.Int63n(jitterMax+1))
}
