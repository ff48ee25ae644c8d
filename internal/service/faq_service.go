package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sparksupport/helpdesk/internal/domain"
	"github.com/sparksupport/helpdesk/internal/repository"
	apperrors "github.com/sparksupport/helpdesk/pkg/util"
)

const faqCacheKey = "faq:active"

// FAQService manages knowledge-base entries. The public listing is served
// through a Redis read-through cache invalidated on every admin write.
type FAQService struct {
	faqs     repository.FAQRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewFAQService constructs the service. cache may be nil, in which case every
// public listing hits the database.
func NewFAQService(faqs repository.FAQRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *FAQService {
	return &FAQService{faqs: faqs, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// CreateFAQ adds a new entry, active by default.
func (s *FAQService) CreateFAQ(ctx context.Context, question, answer string, createdBy *string) (*domain.FAQ, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return nil, apperrors.NewValidationError("question and answer are required", nil)
	}
	faq := &domain.FAQ{
		Question:  question,
		Answer:    answer,
		Active:    true,
		CreatedBy: createdBy,
	}
	if err := s.faqs.Create(ctx, faq); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return faq, nil
}

// UpdateFAQ rewrites question and answer of an existing entry.
func (s *FAQService) UpdateFAQ(ctx context.Context, id, question, answer string) (*domain.FAQ, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return nil, apperrors.NewValidationError("question and answer are required", nil)
	}
	faq, err := s.faqs.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	faq.Question = question
	faq.Answer = answer
	if err := s.faqs.Update(ctx, faq); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidateCache(ctx)
	return faq, nil
}

// ToggleFAQ flips the active flag.
func (s *FAQService) ToggleFAQ(ctx context.Context, id string) (*domain.FAQ, error) {
	faq, err := s.faqs.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	faq.Active = !faq.Active
	if err := s.faqs.Update(ctx, faq); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidateCache(ctx)
	return faq, nil
}

// DeleteFAQ removes the entry.
func (s *FAQService) DeleteFAQ(ctx context.Context, id string) error {
	if err := s.faqs.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.invalidateCache(ctx)
	return nil
}

// GetFAQ returns one entry regardless of its active flag.
func (s *FAQService) GetFAQ(ctx context.Context, id string) (*domain.FAQ, error) {
	faq, err := s.faqs.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return faq, nil
}

// ListAllFAQs returns every entry, including inactive ones (admin view).
func (s *FAQService) ListAllFAQs(ctx context.Context) ([]domain.FAQ, error) {
	return s.faqs.List(ctx, false)
}

// ListActiveFAQs returns the public listing, cached when Redis is available.
func (s *FAQService) ListActiveFAQs(ctx context.Context) ([]domain.FAQ, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, faqCacheKey).Bytes(); err == nil {
			var cached []domain.FAQ
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	faqs, err := s.faqs.List(ctx, true)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(faqs); err == nil {
			if err := s.cache.Set(ctx, faqCacheKey, raw, s.cacheTTL).Err(); err != nil && s.logger != nil {
				s.logger.Warn("faq cache set failed", zap.Error(err))
			}
		}
	}
	return faqs, nil
}

func (s *FAQService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, faqCacheKey).Err(); err != nil && s.logger != nil {
		s.logger.Warn("faq cache invalidation failed", zap.Error(err))
	}
}
