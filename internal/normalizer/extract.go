// Package normalizer turns loosely typed collection records into the view
// models the site renders. Every function here is pure and tolerates any
// missing or mistyped property.
package normalizer

import (
	"strconv"

	"visionnaires-go/internal/model"
)

// Text returns the first meaningful value a property carries as a string.
func Text(p model.Property) string {
	switch p.Kind {
	case model.KindTitle:
		return firstRun(p.Title)
	case model.KindRichText:
		return firstRun(p.RichText)
	case model.KindSelect:
		if p.Select != nil {
			return p.Select.Name
		}
		return ""
	case model.KindMultiSelect:
		if len(p.MultiSelect) > 0 {
			return p.MultiSelect[0].Name
		}
		return ""
	case model.KindFiles:
		return FileURL(p)
	case model.KindNumber:
		if p.Number != nil {
			return formatNumber(*p.Number)
		}
		return ""
	case model.KindCheckbox:
		return strconv.FormatBool(p.Checkbox)
	case model.KindURL:
		return p.URL
	case model.KindUnknown:
		return ""
	}
	return ""
}

// FileURL returns the URL of the first file of a files property. An
// externally hosted URL wins over a service-hosted one.
func FileURL(p model.Property) string {
	att, ok := Attachment(p)
	if !ok {
		return ""
	}
	return att.URL
}

// Attachment resolves the first file entry of a files property. It reports
// false when the property is not a files property, has no entries, or its
// first entry carries neither URL.
func Attachment(p model.Property) (model.Attachment, bool) {
	if p.Kind != model.KindFiles || len(p.Files) == 0 {
		return model.Attachment{}, false
	}
	first := p.Files[0]
	url := first.ExternalURL
	if url == "" {
		url = first.HostedURL
	}
	if url == "" {
		return model.Attachment{}, false
	}
	return model.Attachment{URL: url, Name: first.Name}, true
}

func firstRun(runs []model.RichText) string {
	if len(runs) == 0 {
		return ""
	}
	return runs[0].String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func placeholderName(index int) string {
	return "Project " + strconv.Itoa(index+1)
}
