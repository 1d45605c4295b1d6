package feed

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// SummaryLength is the character budget of a post card.
const SummaryLength = 120

// StripMarkup returns the visible text of an HTML fragment with runs of
// whitespace collapsed. Script and style bodies are dropped.
func StripMarkup(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Summary strips markup, cuts to limit runes and appends an ellipsis.
func Summary(fragment string, limit int) string {
	text := []rune(StripMarkup(fragment))
	if len(text) > limit {
		text = text[:limit]
	}
	return string(text) + "..."
}

var dateLayouts = []string{
	bridgeTimeLayout,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// FormatDate renders a pubDate as "Jan 2, 2006". Unparseable input is
// returned unchanged.
func FormatDate(pubDate string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, pubDate); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return pubDate
}

// Card is a post prepared for rendering.
type Card struct {
	Post
	Date    string
	Summary string
}

// Cards prepares posts for rendering, keeping feed order.
func Cards(posts []Post) []Card {
	cards := make([]Card, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, Card{
			Post:    p,
			Date:    FormatDate(p.PubDate),
			Summary: Summary(p.Description, SummaryLength),
		})
	}
	return cards
}
