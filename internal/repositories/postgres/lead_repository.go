package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"visionnaires-go/internal/model"
)

// DB is the subset of pgxpool.Pool the repository uses.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const createLeadIfNotExists = `
INSERT INTO teaser_leads (id, email, project_id, project_name)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email, project_id) DO NOTHING
RETURNING id, email, project_id, project_name, created_at`

const deleteLeadsBefore = `DELETE FROM teaser_leads WHERE created_at < $1`

type LeadRepository struct {
	db DB
}

func NewLeadRepository(db DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// CreateIfNotExists stores a lead unless the same email already asked for
// the same project. The bool reports whether a row was inserted.
func (r *LeadRepository) CreateIfNotExists(ctx context.Context, input model.LeadCreate) (model.Lead, bool, error) {
	var lead model.Lead
	err := r.db.QueryRow(ctx, createLeadIfNotExists,
		uuid.NewString(), input.Email, input.ProjectID, input.ProjectName,
	).Scan(&lead.ID, &lead.Email, &lead.ProjectID, &lead.ProjectName, &lead.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Lead{}, false, nil
	}
	if err != nil {
		return model.Lead{}, false, err
	}
	return lead, true, nil
}

func (r *LeadRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteLeadsBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
