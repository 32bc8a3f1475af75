// Package render turns record body blocks into an HTML fragment.
package render

import (
	"html/template"
	"strings"

	"visionnaires-go/internal/model"
)

type node struct {
	Kind    model.BlockType
	Text    string
	Items   []string
	Ordered bool
	Image   string
	Caption string
}

const listKind model.BlockType = "list"

var blocksTmpl = template.Must(template.New("blocks").Parse(`
{{- range . -}}
{{- if eq .Kind "paragraph"}}<p>{{.Text}}</p>
{{- else if eq .Kind "heading_1"}}<h1>{{.Text}}</h1>
{{- else if eq .Kind "heading_2"}}<h2>{{.Text}}</h2>
{{- else if eq .Kind "heading_3"}}<h3>{{.Text}}</h3>
{{- else if eq .Kind "quote"}}<blockquote>{{.Text}}</blockquote>
{{- else if eq .Kind "divider"}}<hr>
{{- else if eq .Kind "image"}}<figure><img src="{{.Image}}" alt="{{if .Caption}}{{.Caption}}{{else}}Image{{end}}">{{if .Caption}}<figcaption>{{.Caption}}</figcaption>{{end}}</figure>
{{- else if eq .Kind "list"}}{{if .Ordered}}<ol>{{else}}<ul>{{end}}{{range .Items}}<li>{{.}}</li>{{end}}{{if .Ordered}}</ol>{{else}}</ul>{{end}}
{{- end}}
{{- end -}}
`))

// Blocks renders blocks as HTML. Consecutive list items of the same kind
// share one list element; unsupported block types are skipped.
func Blocks(blocks []model.Block) (string, error) {
	var sb strings.Builder
	if err := blocksTmpl.Execute(&sb, group(blocks)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func group(blocks []model.Block) []node {
	nodes := make([]node, 0, len(blocks))
	for _, b := range blocks {
		switch b.Type {
		case model.BlockBulletedListItem, model.BlockNumberedListItem:
			ordered := b.Type == model.BlockNumberedListItem
			if n := len(nodes); n > 0 && nodes[n-1].Kind == listKind && nodes[n-1].Ordered == ordered {
				nodes[n-1].Items = append(nodes[n-1].Items, b.PlainText())
				continue
			}
			nodes = append(nodes, node{Kind: listKind, Ordered: ordered, Items: []string{b.PlainText()}})
		case model.BlockImage:
			if b.ImageURL == "" {
				continue
			}
			nodes = append(nodes, node{Kind: b.Type, Image: b.ImageURL, Caption: model.JoinRuns(b.Caption)})
		case model.BlockParagraph, model.BlockHeading1, model.BlockHeading2, model.BlockHeading3,
			model.BlockQuote, model.BlockDivider:
			nodes = append(nodes, node{Kind: b.Type, Text: b.PlainText()})
		}
	}
	return nodes
}
