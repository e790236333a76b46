package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"vr-quiz-engine/internal/domain"
)

// QuestionLoader fetches a language's question set from a backing store
// (e.g., document DB).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context, language string) ([]domain.Question, error)
}

// QuestionRepository caches questions in Redis (hash per language) and falls
// back to a loader on cache miss.
// Questions are stored as: HSET questions:{language} {questionID} {JSON}
type QuestionRepository struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group
}

func NewQuestionRepository(client *redis.Client, loader QuestionLoader, ttl time.Duration) *QuestionRepository {
	return &QuestionRepository{
		client: client,
		loader: loader,
		ttl:    ttl,
	}
}

// Question returns a random question for the language, filling the cache
// from the loader when empty.
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
	raw, err := r.client.HGet(ctx, r.key(language), id).Result()
	if err == nil {
		return decodeQuestion([]byte(raw))
	}

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
	key := r.key(language)

	cached, err := r.client.HGetAll(ctx, key).Result()
	if err == nil && len(cached) > 0 {
		return decodeSet(cached)
	}

	result, err, _ := r.sf.Do(language, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		cached, err := r.client.HGetAll(ctx, key).Result()
		if err == nil && len(cached) > 0 {
			return decodeSet(cached)
		}

		questions, err := r.loader.LoadQuestions(ctx, language)
		if err != nil {
			return nil, err
		}

		ttl := r.ttlWithJitter()
		pipe := r.client.Pipeline()
		for _, q := range questions {
			raw, err := json.Marshal(q)
			if err != nil {
				return nil, err
			}
			pipe.HSet(ctx, key, q.ID, raw)
		}
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		_, _ = pipe.Exec(ctx)

		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (r *QuestionRepository) key(language string) string {
	return "questions:" + language
}

func decodeSet(cached map[string]string) ([]domain.Question, error) {
	questions := make([]domain.Question, 0, len(cached))
	for _, raw := range cached {
		q, err := decodeQuestion([]byte(raw))
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func decodeQuestion(raw []byte) (domain.Question, error) {
	var q domain.Question
	if err := json.Unmarshal(raw, &q); err != nil {
		return domain.Question{}, err
	}
	return q, nil
}

func (r *QuestionRepository) ttlWithJitter() time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(rand.Int63n(jitterMax+1))
}
