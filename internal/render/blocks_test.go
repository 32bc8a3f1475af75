package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visionnaires-go/internal/model"
)

func textBlock(kind model.BlockType, text string) model.Block {
	return model.Block{Type: kind, Text: []model.RichText{{PlainText: text}}}
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestBlocksRendersSupportedTypes(t *testing.T) {
	html, err := Blocks([]model.Block{
		textBlock(model.BlockHeading1, "Deal"),
		textBlock(model.BlockHeading2, "Background"),
		textBlock(model.BlockHeading3, "Scope"),
		textBlock(model.BlockParagraph, "We advised <the buyer>."),
		textBlock(model.BlockQuote, "Great partner"),
		{Type: model.BlockDivider},
		{Type: model.BlockImage, ImageURL: "https://cdn/sign.png", Caption: []model.RichText{{PlainText: "Signing"}}},
		{Type: "table"},
	})
	require.NoError(t, err)

	doc := parse(t, html)
	assert.Equal(t, "Deal", doc.Find("h1").Text())
	assert.Equal(t, "Background", doc.Find("h2").Text())
	assert.Equal(t, "Scope", doc.Find("h3").Text())
	assert.Equal(t, "We advised <the buyer>.", doc.Find("p").Text())
	assert.Equal(t, "Great partner", doc.Find("blockquote").Text())
	assert.Equal(t, 1, doc.Find("hr").Length())

	src, ok := doc.Find("figure img").Attr("src")
	require.True(t, ok)
	assert.Equal(t, "https://cdn/sign.png", src)
	assert.Equal(t, "Signing", doc.Find("figcaption").Text())
	assert.NotContains(t, html, "<the buyer>")
}

func TestBlocksGroupsConsecutiveListItems(t *testing.T) {
	html, err := Blocks([]model.Block{
		textBlock(model.BlockBulletedListItem, "one"),
		textBlock(model.BlockBulletedListItem, "two"),
		textBlock(model.BlockNumberedListItem, "first"),
		textBlock(model.BlockParagraph, "break"),
		textBlock(model.BlockBulletedListItem, "three"),
	})
	require.NoError(t, err)

	doc := parse(t, html)
	require.Equal(t, 2, doc.Find("ul").Length())
	assert.Equal(t, 2, doc.Find("ul").First().Find("li").Length())
	assert.Equal(t, 1, doc.Find("ol li").Length())
	assert.Equal(t, "first", doc.Find("ol li").Text())
}

func TestBlocksImageWithoutCaption(t *testing.T) {
	html, err := Blocks([]model.Block{
		{Type: model.BlockImage, ImageURL: "https://cdn/x.png"},
		{Type: model.BlockImage},
	})
	require.NoError(t, err)

	doc := parse(t, html)
	require.Equal(t, 1, doc.Find("img").Length())
	alt, _ := doc.Find("img").Attr("alt")
	assert.Equal(t, "Image", alt)
	assert.Equal(t, 0, doc.Find("figcaption").Length())
}

func TestBlocksEmpty(t *testing.T) {
	html, err := Blocks(nil)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(html))
}
