package model

import (
	"encoding/json"
)

// PropertyKind is the declared type of a record property.
type PropertyKind string

const (
	KindUnknown     PropertyKind = ""
	KindTitle       PropertyKind = "title"
	KindRichText    PropertyKind = "rich_text"
	KindSelect      PropertyKind = "select"
	KindMultiSelect PropertyKind = "multi_select"
	KindFiles       PropertyKind = "files"
	KindNumber      PropertyKind = "number"
	KindCheckbox    PropertyKind = "checkbox"
	KindURL         PropertyKind = "url"
)

type TextContent struct {
	Content string `json:"content"`
}

// RichText is one run of styled text.
type RichText struct {
	Type      string       `json:"type,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
	Href      string       `json:"href,omitempty"`
}

// String returns the run's plain text, falling back to the raw text content
// for runs built locally that have not been round-tripped through the service.
func (r RichText) String() string {
	if r.PlainText != "" {
		return r.PlainText
	}
	if r.Text != nil {
		return r.Text.Content
	}
	return ""
}

func PlainRun(s string) RichText {
	return RichText{Type: "text", Text: &TextContent{Content: s}}
}

type SelectOption struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// FileRef is one entry of a files property. Exactly one of ExternalURL or
// HostedURL is set for a well-formed entry.
type FileRef struct {
	Name        string
	ExternalURL string
	HostedURL   string
}

type urlRef struct {
	URL string `json:"url"`
}

type fileWire struct {
	Name     string  `json:"name"`
	Type     string  `json:"type,omitempty"`
	External *urlRef `json:"external,omitempty"`
	File     *urlRef `json:"file,omitempty"`
}

func (f FileRef) MarshalJSON() ([]byte, error) {
	w := fileWire{Name: f.Name}
	switch {
	case f.ExternalURL != "":
		w.Type = "external"
		w.External = &urlRef{URL: f.ExternalURL}
	case f.HostedURL != "":
		w.Type = "file"
		w.File = &urlRef{URL: f.HostedURL}
	}
	return json.Marshal(w)
}

func (f *FileRef) UnmarshalJSON(data []byte) error {
	var w fileWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*f = FileRef{Name: w.Name}
	if w.External != nil {
		f.ExternalURL = w.External.URL
	}
	if w.File != nil {
		f.HostedURL = w.File.URL
	}
	return nil
}

// Property is a tagged union over the property kinds the site reads. Only
// the field matching Kind is meaningful.
type Property struct {
	Kind        PropertyKind
	Title       []RichText
	RichText    []RichText
	Select      *SelectOption
	MultiSelect []SelectOption
	Files       []FileRef
	Number      *float64
	Checkbox    bool
	URL         string

	raw json.RawMessage
}

func TitleProperty(s string) Property {
	return Property{Kind: KindTitle, Title: []RichText{PlainRun(s)}}
}

func CheckboxProperty(v bool) Property {
	return Property{Kind: KindCheckbox, Checkbox: v}
}

type propertyWire struct {
	Type        string          `json:"type"`
	Title       []RichText      `json:"title"`
	RichText    []RichText      `json:"rich_text"`
	Select      *SelectOption   `json:"select"`
	MultiSelect []SelectOption  `json:"multi_select"`
	Files       []FileRef       `json:"files"`
	Number      *float64        `json:"number"`
	Checkbox    bool            `json:"checkbox"`
	URL         json.RawMessage `json:"url"`
}

// UnmarshalJSON never fails on a well-formed JSON value: a property whose
// payload does not match its declared kind decodes as KindUnknown and is
// kept verbatim for re-encoding.
func (p *Property) UnmarshalJSON(data []byte) error {
	raw := append(json.RawMessage(nil), data...)
	var w propertyWire
	if err := json.Unmarshal(data, &w); err != nil {
		if !json.Valid(data) {
			return err
		}
		*p = Property{raw: raw}
		return nil
	}

	*p = Property{Kind: PropertyKind(w.Type), raw: raw}
	switch p.Kind {
	case KindTitle:
		p.Title = w.Title
	case KindRichText:
		p.RichText = w.RichText
	case KindSelect:
		p.Select = w.Select
	case KindMultiSelect:
		p.MultiSelect = w.MultiSelect
	case KindFiles:
		p.Files = w.Files
	case KindNumber:
		p.Number = w.Number
	case KindCheckbox:
		p.Checkbox = w.Checkbox
	case KindURL:
		var s string
		if len(w.URL) > 0 && json.Unmarshal(w.URL, &s) == nil {
			p.URL = s
		}
	default:
		p.Kind = KindUnknown
	}
	return nil
}

func (p Property) MarshalJSON() ([]byte, error) {
	if p.raw != nil {
		return p.raw, nil
	}

	out := map[string]any{"type": string(p.Kind)}
	switch p.Kind {
	case KindTitle:
		out["title"] = nonNil(p.Title)
	case KindRichText:
		out["rich_text"] = nonNil(p.RichText)
	case KindSelect:
		out["select"] = p.Select
	case KindMultiSelect:
		if p.MultiSelect == nil {
			out["multi_select"] = []SelectOption{}
		} else {
			out["multi_select"] = p.MultiSelect
		}
	case KindFiles:
		if p.Files == nil {
			out["files"] = []FileRef{}
		} else {
			out["files"] = p.Files
		}
	case KindNumber:
		out["number"] = p.Number
	case KindCheckbox:
		out["checkbox"] = p.Checkbox
	case KindURL:
		out["url"] = p.URL
	default:
		return []byte("null"), nil
	}
	return json.Marshal(out)
}

func nonNil(runs []RichText) []RichText {
	if runs == nil {
		return []RichText{}
	}
	return runs
}

// Record is one item of a collection. Top-level fields the site does not
// model are retained and re-emitted unchanged.
type Record struct {
	ID         string
	URL        string
	Properties map[string]Property

	fields map[string]json.RawMessage
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	rec := Record{fields: fields}
	_ = json.Unmarshal(fields["id"], &rec.ID)
	_ = json.Unmarshal(fields["url"], &rec.URL)
	if props, ok := fields["properties"]; ok {
		if err := json.Unmarshal(props, &rec.Properties); err != nil {
			rec.Properties = nil
		}
	}
	*r = rec
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(r.fields)+3)
	for k, v := range r.fields {
		out[k] = v
	}

	id, err := json.Marshal(r.ID)
	if err != nil {
		return nil, err
	}
	out["id"] = id
	if r.URL != "" {
		u, err := json.Marshal(r.URL)
		if err != nil {
			return nil, err
		}
		out["url"] = u
	}

	props := r.Properties
	if props == nil {
		props = map[string]Property{}
	}
	encoded, err := json.Marshal(props)
	if err != nil {
		return nil, err
	}
	out["properties"] = encoded

	return json.Marshal(out)
}

// Property returns the named property, or the zero Property when absent.
func (r Record) Property(name string) Property {
	if r.Properties == nil {
		return Property{}
	}
	return r.Properties[name]
}

// WithProperties returns a copy of r carrying props instead of its own
// properties. Retained top-level fields are shared, they are never mutated.
func (r Record) WithProperties(props map[string]Property) Record {
	r.Properties = props
	return r
}
