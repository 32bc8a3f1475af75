package model

import "encoding/json"

// ListingEntry is a live transaction as shown on the listing page.
type ListingEntry struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ValueLabel    string `json:"value"`
	Description   string `json:"description"`
	AttachmentURL string `json:"attachmentUrl,omitempty"`
	HasAttachment bool   `json:"hasAttachment"`
}

type TrackRecordEntry struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	DealType         string `json:"dealType"`
	LogoA            string `json:"logoA,omitempty"`
	CaptionA         string `json:"captionA,omitempty"`
	LogoB            string `json:"logoB,omitempty"`
	CaptionB         string `json:"captionB,omitempty"`
	TransactionValue string `json:"transactionValue,omitempty"`
	Country          string `json:"country,omitempty"`
	Year             string `json:"year,omitempty"`
	Explanation      string `json:"explanation,omitempty"`
}

// Attachment is a resolved file reference.
type Attachment struct {
	URL  string
	Name string
}

type SourceKind string

const (
	SourceTrack SourceKind = "track"
	SourceLive  SourceKind = "live"
)

// DetailSource carries the facts specific to the collection a portfolio
// item came from. It is implemented by TrackSource and LiveSource only.
type DetailSource interface {
	Kind() SourceKind
	isDetailSource()
}

type TrackSource struct {
	Date     string
	DealSize string
	Type     string
}

func (TrackSource) Kind() SourceKind { return SourceTrack }
func (TrackSource) isDetailSource()  {}

type LiveSource struct {
	Industry    string
	Location    string
	Type        string
	EBITDARange string
}

func (LiveSource) Kind() SourceKind { return SourceLive }
func (LiveSource) isDetailSource()  {}

type Fact struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PortfolioDetail is the single-item portfolio view.
type PortfolioDetail struct {
	Slug        string
	Name        string
	Description string
	Brief       string
	Thumbnail   string
	Source      DetailSource
}

// Facts lists the label/value pairs shown for the item.
func (d PortfolioDetail) Facts() []Fact {
	switch src := d.Source.(type) {
	case TrackSource:
		return []Fact{
			{Label: "Client", Value: d.Name},
			{Label: "Date", Value: src.Date},
			{Label: "Deal Size", Value: src.DealSize},
			{Label: "Type", Value: src.Type},
		}
	case LiveSource:
		return []Fact{
			{Label: "Client", Value: d.Name},
			{Label: "Industry", Value: src.Industry},
			{Label: "Location", Value: src.Location},
			{Label: "Type", Value: src.Type},
			{Label: "EBITDA Range", Value: src.EBITDARange},
		}
	default:
		return []Fact{}
	}
}

func (d PortfolioDetail) MarshalJSON() ([]byte, error) {
	var kind SourceKind
	if d.Source != nil {
		kind = d.Source.Kind()
	}
	return json.Marshal(struct {
		Slug        string     `json:"slug"`
		Name        string     `json:"name"`
		Description string     `json:"description"`
		Brief       string     `json:"brief"`
		Fields      []Fact     `json:"fields"`
		Thumbnail   string     `json:"thumbnail,omitempty"`
		Source      SourceKind `json:"source"`
	}{
		Slug:        d.Slug,
		Name:        d.Name,
		Description: d.Description,
		Brief:       d.Brief,
		Fields:      d.Facts(),
		Thumbnail:   d.Thumbnail,
		Source:      kind,
	})
}
