package normalizer

import (
	"encoding/base64"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"visionnaires-go/internal/model"
)

type gradient struct{ start, end string }

var sourceGradients = map[model.SourceKind]gradient{
	model.SourceTrack: {start: "#6B7280", end: "#374151"},
	model.SourceLive:  {start: "#3B82F6", end: "#1E40AF"},
}

const thumbnailSVG = `<svg width="400" height="300" xmlns="http://www.w3.org/2000/svg">` +
	`<defs><linearGradient id="grad" x1="0%%" y1="0%%" x2="100%%" y2="100%%">` +
	`<stop offset="0%%" style="stop-color:%s;stop-opacity:1" />` +
	`<stop offset="100%%" style="stop-color:%s;stop-opacity:1" />` +
	`</linearGradient></defs>` +
	`<rect width="400" height="300" fill="url(#grad)"/>` +
	`<text x="200" y="150" text-anchor="middle" dominant-baseline="middle" fill="white" font-family="Arial, sans-serif" font-size="48" font-weight="bold">%s</text>` +
	`<text x="200" y="200" text-anchor="middle" dominant-baseline="middle" fill="white" font-family="Arial, sans-serif" font-size="16" opacity="0.8">%s</text>` +
	`</svg>`

// Thumbnail renders a placeholder image as a data URI: the first two
// letters of name over a gradient picked by source.
func Thumbnail(name string, source model.SourceKind) string {
	g, ok := sourceGradients[source]
	if !ok {
		g = sourceGradients[model.SourceTrack]
	}

	svg := fmt.Sprintf(thumbnailSVG, g.start, g.end,
		html.EscapeString(initials(name)),
		html.EscapeString(truncate(name, 25)),
	)
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
}

func initials(name string) string {
	runes := []rune(name)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}
