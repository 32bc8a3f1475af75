package content

import (
	"context"

	"visionnaires-go/internal/model"
	"visionnaires-go/internal/notion"
)

// Source is the raw content service API the gateway wraps.
type Source interface {
	QueryDatabase(ctx context.Context, databaseID string, req notion.QueryRequest) (notion.QueryResponse, error)
	RetrievePage(ctx context.Context, pageID string) (model.Record, error)
	ListBlockChildren(ctx context.Context, blockID, cursor string) (notion.BlocksResponse, error)
	CreatePage(ctx context.Context, databaseID string, properties map[string]model.Property) (model.Record, error)
}
