package model

import "encoding/json"

type BlockType string

const (
	BlockParagraph        BlockType = "paragraph"
	BlockHeading1         BlockType = "heading_1"
	BlockHeading2         BlockType = "heading_2"
	BlockHeading3         BlockType = "heading_3"
	BlockBulletedListItem BlockType = "bulleted_list_item"
	BlockNumberedListItem BlockType = "numbered_list_item"
	BlockQuote            BlockType = "quote"
	BlockImage            BlockType = "image"
	BlockDivider          BlockType = "divider"
)

// Block is one piece of a record's long-form body.
type Block struct {
	ID          string
	Type        BlockType
	HasChildren bool
	Text        []RichText
	ImageURL    string
	Caption     []RichText

	raw json.RawMessage
}

type blockHeader struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	HasChildren bool   `json:"has_children"`
}

type blockPayload struct {
	RichText []RichText `json:"rich_text"`
	Caption  []RichText `json:"caption"`
	External *urlRef    `json:"external"`
	File     *urlRef    `json:"file"`
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var head blockHeader
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	blk := Block{
		ID:          head.ID,
		Type:        BlockType(head.Type),
		HasChildren: head.HasChildren,
		raw:         append(json.RawMessage(nil), data...),
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err == nil {
		var payload blockPayload
		if body, ok := fields[head.Type]; ok && json.Unmarshal(body, &payload) == nil {
			blk.Text = payload.RichText
			blk.Caption = payload.Caption
			switch {
			case payload.External != nil && payload.External.URL != "":
				blk.ImageURL = payload.External.URL
			case payload.File != nil:
				blk.ImageURL = payload.File.URL
			}
		}
	}

	*b = blk
	return nil
}

func (b Block) MarshalJSON() ([]byte, error) {
	if b.raw != nil {
		return b.raw, nil
	}
	payload := map[string]any{"rich_text": nonNil(b.Text)}
	if b.Type == BlockImage {
		payload = map[string]any{
			"type":     "external",
			"external": urlRef{URL: b.ImageURL},
			"caption":  nonNil(b.Caption),
		}
	}
	return json.Marshal(map[string]any{
		"object":       "block",
		"id":           b.ID,
		"type":         string(b.Type),
		"has_children": b.HasChildren,
		string(b.Type): payload,
	})
}

// PlainText joins every run of the block's text.
func (b Block) PlainText() string {
	return JoinRuns(b.Text)
}

func JoinRuns(runs []RichText) string {
	out := ""
	for _, r := range runs {
		out += r.String()
	}
	return out
}
