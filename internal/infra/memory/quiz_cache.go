package memory

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"quiztaker/internal/domain"
	"golang.org/x/sync/singleflight"
)

// QuizSource fetches quiz content from its origin (normally the backend API).
type QuizSource interface {
	GetQuiz(ctx context.Context, quizID int) (domain.Quiz, error)
}

// QuizCache caches quizzes with TTL so repeated attempts in one process hit
// the network once per quiz.
type QuizCache struct {
	source QuizSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu    sync.RWMutex
	cache map[int]cachedQuiz
}

type cachedQuiz struct {
	quiz      domain.Quiz
	expiresAt time.Time
}

func NewQuizCache(source QuizSource, ttl time.Duration) *QuizCache {
	return &QuizCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[int]cachedQuiz),
	}
}

func (c *QuizCache) GetQuiz(ctx context.Context, quizID int) (domain.Quiz, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[quizID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.quiz, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(strconv.Itoa(quizID), func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[quizID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.quiz, nil
		}
		c.mu.RUnlock()

		quiz, err := c.source.GetQuiz(ctx, quizID)
		if err != nil {
			return domain.Quiz{}, err
		}

		c.mu.Lock()
		c.cache[quizID] = cachedQuiz{
			quiz:      quiz,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

// StaticQuizSource is a simple source backed by an in-memory map (useful for
// tests/demos).
type StaticQuizSource struct {
	quizzes map[int]domain.Quiz
}

func NewStaticQuizSource(quizzes map[int]domain.Quiz) *StaticQuizSource {
	return &StaticQuizSource{quizzes: quizzes}
}

func (s *StaticQuizSource) GetQuiz(_ context.Context, quizID int) (domain.Quiz, error) {
	if quiz, ok := s.quizzes[quizID]; ok {
		return quiz, nil
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
