// Package content isolates every call to the content service. Reads degrade
// to empty results so pages still render; the single write reports its
// failure to the caller.
package content

import (
	"context"
	"errors"
	"fmt"
	"log"

	"visionnaires-go/internal/model"
	"visionnaires-go/internal/notion"
)

// maxPages bounds cursor following for a single listing.
const maxPages = 20

var ErrNoSource = errors.New("content service credential not configured")

type SortDirection string

const (
	Ascending  SortDirection = "ascending"
	Descending SortDirection = "descending"
)

type SortSpec struct {
	Property  string
	Direction SortDirection
}

type Gateway struct {
	source Source
}

// NewGateway wraps source. A nil source yields a gateway whose reads are
// empty and whose writes fail with ErrNoSource.
func NewGateway(source Source) *Gateway {
	return &Gateway{source: source}
}

func (g *Gateway) Configured() bool {
	return g.source != nil
}

// ListCollection returns every record of a collection, optionally sorted.
func (g *Gateway) ListCollection(ctx context.Context, collectionID string, sort *SortSpec) []model.Record {
	if g.source == nil || collectionID == "" {
		return []model.Record{}
	}

	req := notion.QueryRequest{}
	if sort != nil {
		req.Sorts = []notion.Sort{{Property: sort.Property, Direction: string(sort.Direction)}}
	}

	records := []model.Record{}
	for page := 0; page < maxPages; page++ {
		resp, err := g.source.QueryDatabase(ctx, collectionID, req)
		if err != nil {
			log.Printf("[content] query %s failed: %v", collectionID, err)
			return []model.Record{}
		}
		records = append(records, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			return records
		}
		req.StartCursor = resp.NextCursor
	}
	log.Printf("[content] query %s truncated after %d pages", collectionID, maxPages)
	return records
}

// GetRecord retrieves one record. It reports false when the record does not
// exist or the call failed.
func (g *Gateway) GetRecord(ctx context.Context, recordID string) (model.Record, bool) {
	if g.source == nil || recordID == "" {
		return model.Record{}, false
	}
	rec, err := g.source.RetrievePage(ctx, recordID)
	if err != nil {
		if !errors.Is(err, notion.ErrNotFound) {
			log.Printf("[content] retrieve %s failed: %v", recordID, err)
		}
		return model.Record{}, false
	}
	return rec, true
}

// GetRecordBlocks returns the top-level body blocks of a record.
func (g *Gateway) GetRecordBlocks(ctx context.Context, recordID string) []model.Block {
	if g.source == nil || recordID == "" {
		return []model.Block{}
	}

	blocks := []model.Block{}
	cursor := ""
	for page := 0; page < maxPages; page++ {
		resp, err := g.source.ListBlockChildren(ctx, recordID, cursor)
		if err != nil {
			log.Printf("[content] blocks %s failed: %v", recordID, err)
			return []model.Block{}
		}
		blocks = append(blocks, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}
	return blocks
}

// AppendRecord creates a record in a collection.
func (g *Gateway) AppendRecord(ctx context.Context, collectionID string, properties map[string]model.Property) (model.Record, error) {
	if g.source == nil {
		return model.Record{}, ErrNoSource
	}
	rec, err := g.source.CreatePage(ctx, collectionID, properties)
	if err != nil {
		return model.Record{}, fmt.Errorf("append to %s: %w", collectionID, err)
	}
	return rec, nil
}
