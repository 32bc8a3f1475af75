package listing

import (
	"context"

	"visionnaires-go/internal/content"
	"visionnaires-go/internal/model"
)

type Gateway interface {
	ListCollection(ctx context.Context, collectionID string, sort *content.SortSpec) []model.Record
	GetRecord(ctx context.Context, recordID string) (model.Record, bool)
	GetRecordBlocks(ctx context.Context, recordID string) []model.Block
}

// BodyRenderer turns a record's blocks into HTML.
type BodyRenderer func(blocks []model.Block) (string, error)
