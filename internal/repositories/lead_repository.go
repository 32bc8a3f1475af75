package repositories

import (
	"context"
	"time"

	"visionnaires-go/internal/model"
)

// LeadRepository is the local ledger of teaser email captures.
type LeadRepository interface {
	CreateIfNotExists(ctx context.Context, input model.LeadCreate) (model.Lead, bool, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
