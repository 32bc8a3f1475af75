// Package retention purges ledger rows older than the configured window.
package retention

import (
	"context"
	"log"
	"time"
)

type Purger interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Service struct {
	repo Purger
	keep time.Duration
	now  func() time.Time
}

func NewService(repo Purger, keepDays int) *Service {
	return &Service{
		repo: repo,
		keep: time.Duration(keepDays) * 24 * time.Hour,
		now:  time.Now,
	}
}

func (s *Service) Run(ctx context.Context) {
	if s.keep <= 0 {
		return
	}
	cutoff := s.now().UTC().Add(-s.keep)
	deleted, err := s.repo.DeleteBefore(ctx, cutoff)
	if err != nil {
		log.Printf("[retention] purge failed: %v", err)
		return
	}
	log.Printf("[retention] purged %d leads older than %s", deleted, cutoff.Format(time.RFC3339))
}
