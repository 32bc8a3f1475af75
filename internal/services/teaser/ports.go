package teaser

import (
	"context"
	"net/http"

	"visionnaires-go/internal/content"
	"visionnaires-go/internal/model"
)

type Gateway interface {
	Configured() bool
	ListCollection(ctx context.Context, collectionID string, sort *content.SortSpec) []model.Record
	AppendRecord(ctx context.Context, collectionID string, properties map[string]model.Property) (model.Record, error)
}

// Doer fetches teaser files from wherever the record points.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// LeadRecorder mirrors captured emails outside the content service.
type LeadRecorder interface {
	CreateIfNotExists(ctx context.Context, input model.LeadCreate) (model.Lead, bool, error)
}

type Notifier interface {
	SendLead(lead model.Lead)
}
