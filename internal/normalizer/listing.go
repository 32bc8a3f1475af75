package normalizer

import (
	"strconv"

	"visionnaires-go/internal/model"
)

// Property names of the live transactions collection.
const (
	PropName        = "Name"
	PropValue       = "Value"
	PropDescription = "Description"
	PropTeaser      = "Teaser"
	PropHasTeaser   = "HasTeaser"
)

// ListingEntry normalizes a live transaction. index is the record's
// zero-based position in the batch and names records that have no title.
func ListingEntry(r model.Record, index int) model.ListingEntry {
	name := Text(r.Property(PropName))
	if name == "" {
		name = placeholderName(index)
	}
	id := r.ID
	if id == "" {
		id = strconv.Itoa(index + 1)
	}

	entry := model.ListingEntry{
		ID:          id,
		Name:        name,
		ValueLabel:  Text(r.Property(PropValue)),
		Description: Text(r.Property(PropDescription)),
	}
	if att, ok := Attachment(r.Property(PropTeaser)); ok {
		entry.AttachmentURL = att.URL
		entry.HasAttachment = true
	} else if hasTeaser := r.Property(PropHasTeaser); hasTeaser.Kind == model.KindCheckbox {
		entry.HasAttachment = hasTeaser.Checkbox
	}
	return entry
}

func ListingEntries(records []model.Record) []model.ListingEntry {
	out := make([]model.ListingEntry, 0, len(records))
	for i, r := range records {
		out = append(out, ListingEntry(r, i))
	}
	return out
}
