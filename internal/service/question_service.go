package service

import (
	"context"
	"encoding/json"
	"time"

	"roadcode_backend/internal/model"
	"roadcode_backend/internal/repository"
	"roadcode_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	poolCacheKey = "questions:pool"
	poolCacheTTL = 10 * time.Minute
)

// QuestionService wraps the question bank with a Redis-backed pool cache.
// Exam starts and training reads hit the cache; any admin write invalidates
// it. It implements QuestionProvider for the exam engine.
type QuestionService struct {
	Repo  *repository.QuestionRepository
	Redis *redis.Client
}

func NewQuestionService(repo *repository.QuestionRepository, rdb *redis.Client) *QuestionService {
	return &QuestionService{Repo: repo, Redis: rdb}
}

// Pool returns the full question bank, served from Redis when possible.
func (s *QuestionService) Pool(ctx context.Context) ([]model.Question, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, poolCacheKey).Result()
		if err == nil {
			var pool []model.Question
			if jsonErr := json.Unmarshal([]byte(val), &pool); jsonErr == nil {
				return pool, nil
			}
			// A corrupt cache entry falls through to the database.
			s.Redis.Del(ctx, poolCacheKey)
		} else if err != redis.Nil {
			logger.Log.Warn("question pool cache read failed", zap.Error(err))
		}
	}

	pool, err := s.Repo.FindAll()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(pool); err == nil {
			if err := s.Redis.Set(ctx, poolCacheKey, data, poolCacheTTL).Err(); err != nil {
				logger.Log.Warn("question pool cache write failed", zap.Error(err))
			}
		}
	}

	return pool, nil
}

func (s *QuestionService) ByID(ctx context.Context, id string) (*model.Question, error) {
	return s.Repo.FindByID(id)
}

func (s *QuestionService) ByIDs(ctx context.Context, ids []string) ([]model.Question, error) {
	return s.Repo.FindByIDs(ids)
}

func (s *QuestionService) List(category string, limit int) ([]model.Question, error) {
	return s.Repo.List(category, limit)
}

func (s *QuestionService) Categories() ([]string, error) {
	return s.Repo.Categories()
}

func (s *QuestionService) Create(ctx context.Context, q *model.Question) error {
	for i := range q.Options {
		if q.Options[i].ID == "" {
			q.Options[i].ID = model.GenerateUUID()
		}
	}
	if err := s.Repo.Create(q); err != nil {
		return err
	}
	s.invalidatePool(ctx)
	return nil
}

func (s *QuestionService) Update(ctx context.Context, q *model.Question) error {
	for i := range q.Options {
		if q.Options[i].ID == "" {
			q.Options[i].ID = model.GenerateUUID()
		}
	}
	if err := s.Repo.Update(q); err != nil {
		return err
	}
	s.invalidatePool(ctx)
	return nil
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidatePool(ctx)
	return nil
}

func (s *QuestionService) invalidatePool(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, poolCacheKey).Err(); err != nil {
		logger.Log.Warn("question pool cache invalidation failed", zap.Error(err))
	}
}
