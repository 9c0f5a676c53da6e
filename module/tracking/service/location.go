package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
	"github.com/Patrice250/MyCabinet/module/tracking/internal/repository/database"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

// LatestFixCache mirrors the most recent fix in a fast store. It is
// optional; a nil cache disables it.
type LatestFixCache interface {
	Set(ctx context.Context, fix *domain.Fix) error
	Get(ctx context.Context) (*domain.Fix, error)
}

type LocationService struct {
	repo   database.FixRepository
	cache  LatestFixCache
	logger *zap.Logger
}

func NewLocationService(repo database.FixRepository, cache LatestFixCache, logger *zap.Logger) *LocationService {
	return &LocationService{repo: repo, cache: cache, logger: logger}
}

// Append durably stores a fix, then refreshes the latest-fix cache.
// The cache write is best-effort; postgres is the source of truth.
func (s *LocationService) Append(ctx context.Context, fix *domain.Fix) error {
	if err := s.repo.Insert(ctx, fix); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, fix); err != nil {
			s.logger.Warn("latest fix cache write failed", zap.Error(err))
		}
	}
	return nil
}

// Latest returns the most recently appended fix, or domain.ErrNotFound on
// an empty log. Callers substitute the documented zero default.
func (s *LocationService) Latest(ctx context.Context) (*domain.Fix, error) {
	if s.cache != nil {
		if fix, err := s.cache.Get(ctx); err == nil {
			return fix, nil
		} else if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("latest fix cache read failed", zap.Error(err))
		}
	}

	fix, err := s.repo.GetLatest(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, fix); err != nil {
			s.logger.Warn("latest fix cache backfill failed", zap.Error(err))
		}
	}
	return fix, nil
}

func (s *LocationService) History(ctx context.Context, limit int) ([]domain.Fix, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.repo.GetHistory(ctx, limit)
}
