package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"simulado/api/internal/generator"
	"simulado/api/internal/ids"
	"simulado/api/internal/models"
	"simulado/api/internal/quota"
)

var (
	ErrProviderFailure    = errors.New("generation provider failure")
	ErrPersistenceFailure = errors.New("history persistence failure")
)

const (
	historyCacheKey = "history:recent"
	historyCacheTTL = 30 * time.Second
)

// TextGenerator is the external generation collaborator: one prompt in, raw
// text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// HistoryStore is the slice of the ledger the orchestrator needs.
type HistoryStore interface {
	Create(ctx context.Context, record models.GenerationRecord) error
	List(ctx context.Context) ([]models.GenerationRecord, error)
}

// ExamService orchestrates a generation request: quota gate, provider call,
// output parsing, annotation, and the history write. The steps are strictly
// sequential; failure at any step aborts the rest, so a parse failure after
// a successful provider call still leaves the ledger untouched.
type ExamService struct {
	history   HistoryStore
	generator TextGenerator
	policy    quota.Policy
	cache     *redis.Client
	log       zerolog.Logger
}

func NewExamService(history HistoryStore, gen TextGenerator, policy quota.Policy, cache *redis.Client, log zerolog.Logger) *ExamService {
	return &ExamService{
		history:   history,
		generator: gen,
		policy:    policy,
		cache:     cache,
		log:       log,
	}
}

type GenerateInput struct {
	Subject    string
	Difficulty string
	Count      int
}

// Generate produces input.Count questions for the authenticated user. The
// quota check reads the user's live role and runs before any provider cost
// is incurred; over-limit requests return *quota.LimitError.
func (s *ExamService) Generate(ctx context.Context, user models.User, examID string, input GenerateInput) ([]models.Question, error) {
	if err := s.policy.Check(input.Count, user.Role); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("username", user.Username).
		Str("role", string(user.Role)).
		Str("exam", examID).
		Int("count", input.Count).
		Msg("generating exam")

	prompt := generator.BuildPrompt(generator.PromptSpec{
		Exam:       examID,
		Subject:    input.Subject,
		Difficulty: input.Difficulty,
		Count:      input.Count,
	})

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}

	questions, err := generator.ParseQuestions(generator.StripFences(raw))
	if err != nil {
		return nil, err
	}

	exam := strings.ToUpper(examID)
	for i := range questions {
		questions[i].Exam = exam
		questions[i].Subject = input.Subject
		questions[i].Difficulty = input.Difficulty
	}

	record := models.GenerationRecord{
		ID:            ids.New(),
		Exam:          examID,
		Subject:       input.Subject,
		Difficulty:    input.Difficulty,
		QuestionCount: input.Count,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.history.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	s.invalidateHistoryCache(ctx)

	return questions, nil
}

// History lists the ledger newest-first. An empty store yields an empty
// list. Results are cached briefly; the cache is dropped on every write.
func (s *ExamService) History(ctx context.Context) ([]models.GenerationRecord, error) {
	if records, ok := s.cachedHistory(ctx); ok {
		return records, nil
	}

	records, err := s.history.List(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.GenerationRecord{}
	}

	s.storeHistoryCache(ctx, records)
	return records, nil
}

func (s *ExamService) cachedHistory(ctx context.Context) ([]models.GenerationRecord, bool) {
	if s.cache == nil {
		return nil, false
	}

	payload, err := s.cache.Get(ctx, historyCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("history cache read failed")
		}
		return nil, false
	}

	var records []models.GenerationRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		s.log.Warn().Err(err).Msg("history cache decode failed")
		return nil, false
	}
	return records, true
}

func (s *ExamService) storeHistoryCache(ctx context.Context, records []models.GenerationRecord) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, historyCacheKey, payload, historyCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("history cache write failed")
	}
}

func (s *ExamService) invalidateHistoryCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, historyCacheKey).Err(); err != nil {
		s.log.Warn().Err(err).Msg("history cache invalidation failed")
	}
}
