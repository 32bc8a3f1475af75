package listing

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/errgroup"

	"visionnaires-go/internal/content"
	"visionnaires-go/internal/model"
	"visionnaires-go/internal/normalizer"
)

var (
	ErrNotConfigured = errors.New("collection id not configured")
	ErrNotFound      = errors.New("record not found")
)

var trackRecordOrder = content.SortSpec{Property: "Order", Direction: content.Ascending}

type Collections struct {
	TrackRecords     string
	LiveTransactions string
}

type Service struct {
	gateway     Gateway
	collections Collections
	render      BodyRenderer
}

func NewService(gateway Gateway, collections Collections, render BodyRenderer) *Service {
	return &Service{gateway: gateway, collections: collections, render: render}
}

type CurrentTransactions struct {
	Records []model.Record
	Entries []model.ListingEntry
}

type TrackRecords struct {
	Records []model.Record
	Entries []model.TrackRecordEntry
}

type TrackRecordDetail struct {
	Record model.Record
	Blocks []model.Block
	Entry  model.TrackRecordEntry
	HTML   string
}

// CurrentTransactions lists live deals with their teaser files stripped.
func (s *Service) CurrentTransactions(ctx context.Context) (CurrentTransactions, error) {
	if s.collections.LiveTransactions == "" {
		log.Printf("[listing] live transactions collection not set")
		return CurrentTransactions{}, ErrNotConfigured
	}

	records := s.gateway.ListCollection(ctx, s.collections.LiveTransactions, nil)
	out := CurrentTransactions{
		Records: make([]model.Record, 0, len(records)),
		Entries: make([]model.ListingEntry, 0, len(records)),
	}
	for i, rec := range records {
		entry := normalizer.ListingEntry(rec, i)
		entry.AttachmentURL = ""
		out.Entries = append(out.Entries, entry)
		out.Records = append(out.Records, Sanitize(rec))
	}
	return out, nil
}

// Sanitize removes the teaser file reference from a live transaction and
// replaces it with a flag saying whether one exists.
func Sanitize(rec model.Record) model.Record {
	_, hasTeaser := normalizer.Attachment(rec.Property(normalizer.PropTeaser))

	props := make(map[string]model.Property, len(rec.Properties)+1)
	for name, p := range rec.Properties {
		if name == normalizer.PropTeaser {
			continue
		}
		props[name] = p
	}
	props[normalizer.PropHasTeaser] = model.CheckboxProperty(hasTeaser)
	return rec.WithProperties(props)
}

// TrackRecords lists completed deals in their configured order.
func (s *Service) TrackRecords(ctx context.Context) (TrackRecords, error) {
	if s.collections.TrackRecords == "" {
		log.Printf("[listing] track records collection not set")
		return TrackRecords{}, ErrNotConfigured
	}

	sort := trackRecordOrder
	records := s.gateway.ListCollection(ctx, s.collections.TrackRecords, &sort)
	return TrackRecords{
		Records: records,
		Entries: normalizer.TrackRecordEntries(records),
	}, nil
}

// TrackRecord fetches one record together with its body.
func (s *Service) TrackRecord(ctx context.Context, id string) (TrackRecordDetail, error) {
	if id == "" {
		return TrackRecordDetail{}, ErrNotFound
	}

	var (
		rec    model.Record
		found  bool
		blocks []model.Block
	)
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		rec, found = s.gateway.GetRecord(gctx, id)
		return nil
	})
	group.Go(func() error {
		blocks = s.gateway.GetRecordBlocks(gctx, id)
		return nil
	})
	_ = group.Wait()

	if !found {
		return TrackRecordDetail{}, ErrNotFound
	}

	detail := TrackRecordDetail{
		Record: rec,
		Blocks: blocks,
		Entry:  normalizer.TrackRecordEntry(rec, 0),
	}
	if s.render != nil {
		html, err := s.render(blocks)
		if err != nil {
			log.Printf("[listing] render %s failed: %v", id, err)
		}
		detail.HTML = html
	}
	return detail, nil
}

// Portfolio finds the item whose name slugifies to slug, searching track
// records before live transactions.
func (s *Service) Portfolio(ctx context.Context, slug string) (model.PortfolioDetail, error) {
	if slug == "" {
		return model.PortfolioDetail{}, ErrNotFound
	}

	var track, live []model.Record
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		sort := trackRecordOrder
		track = s.gateway.ListCollection(gctx, s.collections.TrackRecords, &sort)
		return nil
	})
	group.Go(func() error {
		live = s.gateway.ListCollection(gctx, s.collections.LiveTransactions, nil)
		return nil
	})
	_ = group.Wait()

	for _, rec := range track {
		if detail := normalizer.PortfolioDetail(rec, model.SourceTrack); detail.Slug == slug {
			return detail, nil
		}
	}
	for _, rec := range live {
		if detail := normalizer.PortfolioDetail(rec, model.SourceLive); detail.Slug == slug {
			return detail, nil
		}
	}
	return model.PortfolioDetail{}, ErrNotFound
}
