package normalizer

import (
	"regexp"
	"strings"

	"visionnaires-go/internal/model"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lower-cases name and collapses every run of other characters into a
// single dash.
func Slug(name string) string {
	s := nonSlugRun.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// PortfolioDetail normalizes a record from either collection into the
// detail view. The collection decides which facts are extracted.
func PortfolioDetail(r model.Record, kind model.SourceKind) model.PortfolioDetail {
	name := Text(r.Property("Name"))

	detail := model.PortfolioDetail{
		Slug:        Slug(name),
		Name:        name,
		Description: Text(r.Property("Description")),
		Brief:       Text(r.Property("Brief")),
	}

	switch kind {
	case model.SourceLive:
		detail.Source = model.LiveSource{
			Industry:    Text(r.Property("Industry")),
			Location:    Text(r.Property("Location")),
			Type:        Text(r.Property("Type")),
			EBITDARange: ebitdaRange(r),
		}
	default:
		detail.Source = model.TrackSource{
			Date:     Text(r.Property("Date")),
			DealSize: Text(r.Property("Deal Size")),
			Type:     Text(r.Property("Type")),
		}
	}

	if att, ok := Attachment(r.Property("Thumbnail")); ok {
		detail.Thumbnail = att.URL
	} else {
		detail.Thumbnail = Thumbnail(name, detail.Source.Kind())
	}
	return detail
}

// ebitdaRange reads Value only when the record labels it as an EBITDA range.
func ebitdaRange(r model.Record) string {
	label := r.Property("Label")
	value := r.Property(PropValue)
	if label.Kind != model.KindSelect || Text(label) != "EBITDA Range" {
		return "N/A"
	}
	if value.Kind != model.KindRichText || len(value.RichText) == 0 {
		return "N/A"
	}
	return value.RichText[0].String()
}
