package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// bridgeTimeLayout is the pubDate format the bridge emits; RSS posts are
// normalised to it so both sources render the same way.
const bridgeTimeLayout = "2006-01-02 15:04:05"

// RSSClient reads the feed directly and maps it into bridge-shaped posts.
type RSSClient struct {
	feedURL string
	client  *http.Client
}

// NewRSSClient creates a direct RSS client. client may be nil.
func NewRSSClient(feedURL string, client *http.Client) *RSSClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &RSSClient{feedURL: feedURL, client: client}
}

// Fetch performs exactly one request.
func (r *RSSClient) Fetch(ctx context.Context) ([]Post, error) {
	parser := gofeed.NewParser()
	parser.Client = r.client
	parser.UserAgent = userAgent

	parsed, err := parser.ParseURLWithContext(r.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", r.feedURL, err)
	}

	posts := make([]Post, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		posts = append(posts, convertItem(item))
	}
	return posts, nil
}

func convertItem(item *gofeed.Item) Post {
	post := Post{
		Title:       item.Title,
		Link:        item.Link,
		PubDate:     item.Published,
		Description: item.Description,
		Categories:  item.Categories,
	}
	// Medium puts the body in content:encoded and leaves description empty.
	if item.Content != "" {
		post.Description = item.Content
	}
	if item.PublishedParsed != nil {
		post.PubDate = item.PublishedParsed.UTC().Format(bridgeTimeLayout)
	}
	if post.Categories == nil {
		post.Categories = []string{}
	}
	post.Thumbnail = findThumbnail(item, post.Description)
	return post
}

// findThumbnail checks, in order: the item image, image enclosures,
// media:thumbnail, then the first <img> in the body.
func findThumbnail(item *gofeed.Item, body string) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	if media, ok := item.Extensions["media"]; ok {
		for _, thumb := range media["thumbnail"] {
			if u := thumb.Attrs["url"]; u != "" {
				return u
			}
		}
	}
	return firstImage(body)
}

func firstImage(body string) string {
	if !strings.Contains(body, "<img") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return src
}
