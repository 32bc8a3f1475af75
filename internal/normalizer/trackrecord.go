package normalizer

import "visionnaires-go/internal/model"

// TrackRecordEntry normalizes a completed deal. Missing names get the same
// positional placeholder as live transactions.
func TrackRecordEntry(r model.Record, index int) model.TrackRecordEntry {
	name := Text(r.Property("Name"))
	if name == "" {
		name = placeholderName(index)
	}
	return model.TrackRecordEntry{
		ID:               r.ID,
		Name:             name,
		DealType:         Text(r.Property("Type")),
		LogoA:            FileURL(r.Property("Logo 1")),
		CaptionA:         Text(r.Property("Text 1")),
		LogoB:            FileURL(r.Property("Logo 2")),
		CaptionB:         Text(r.Property("Text 2")),
		TransactionValue: Text(r.Property("Transaction Value")),
		Country:          Text(r.Property("Country")),
		Year:             Text(r.Property("Year")),
		Explanation:      Text(r.Property("Explanation")),
	}
}

func TrackRecordEntries(records []model.Record) []model.TrackRecordEntry {
	out := make([]model.TrackRecordEntry, 0, len(records))
	for i, r := range records {
		out = append(out, TrackRecordEntry(r, i))
	}
	return out
}
