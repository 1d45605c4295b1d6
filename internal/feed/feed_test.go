package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bridgeOK = `{
  "status": "ok",
  "feed": {"title": "Stories"},
  "items": [
    {"title": "First", "link": "https://medium.com/p/1", "pubDate": "2024-05-01 10:00:00",
     "thumbnail": "https://cdn/1.png", "description": "<p>Hello <b>world</b></p>", "categories": ["go", "devops"]},
    {"title": "Second", "link": "https://medium.com/p/2", "pubDate": "2024-04-01 10:00:00",
     "thumbnail": "", "description": "<p>Later</p>", "categories": []}
  ]
}`

const rssDoc = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
  <title>Stories</title>
  <link>https://medium.com/@ada</link>
  <item>
    <title>Terraform notes</title>
    <link>https://medium.com/p/tf</link>
    <pubDate>Wed, 01 May 2024 10:00:00 GMT</pubDate>
    <category>terraform</category>
    <content:encoded><![CDATA[<figure><img src="https://cdn/tf.png"/></figure><p>Modules &amp; state</p>]]></content:encoded>
  </item>
</channel>
</rss>`

type stubSource struct {
	posts []Post
	err   error
	calls int
}

func (s *stubSource) Fetch(ctx context.Context) ([]Post, error) {
	s.calls++
	return s.posts, s.err
}

func TestBridgeClient_Fetch(t *testing.T) {
	var gotFeed string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFeed = r.URL.Query().Get("rss_url")
		w.Write([]byte(bridgeOK))
	}))
	defer srv.Close()

	client := NewBridgeClient(srv.URL+"/v1/api.json", "https://medium.com/feed/@ada", srv.Client())
	posts, err := client.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://medium.com/feed/@ada", gotFeed)
	require.Len(t, posts, 2)
	assert.Equal(t, "First", posts[0].Title)
	assert.Equal(t, "Second", posts[1].Title)
	assert.Equal(t, []string{"go", "devops"}, posts[0].Categories)
}

func TestBridgeClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"rss_url parameter is required."}`))
	}))
	defer srv.Close()

	_, err := NewBridgeClient(srv.URL, "x", srv.Client()).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, IsStatus(err))
}

func TestBridgeClient_SingleAttempt(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	_, err := NewBridgeClient(srv.URL, "x", srv.Client()).Fetch(context.Background())
	require.Error(t, err)
	assert.False(t, IsStatus(err))
	assert.Equal(t, 1, calls)
}

func TestRSSClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssDoc))
	}))
	defer srv.Close()

	posts, err := NewRSSClient(srv.URL, srv.Client()).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)

	p := posts[0]
	assert.Equal(t, "Terraform notes", p.Title)
	assert.Equal(t, "https://medium.com/p/tf", p.Link)
	assert.Equal(t, "2024-05-01 10:00:00", p.PubDate)
	assert.Equal(t, "https://cdn/tf.png", p.Thumbnail)
	assert.Equal(t, []string{"terraform"}, p.Categories)
	assert.Contains(t, p.Description, "Modules")
}

func TestLoad_TriState(t *testing.T) {
	ok := Load(context.Background(), &stubSource{posts: []Post{{Title: "a"}}})
	assert.Equal(t, StateLoaded, ok.State)
	assert.Len(t, ok.Posts, 1)

	bad := Load(context.Background(), &stubSource{err: &StatusError{Status: "error"}})
	assert.Equal(t, StateFailed, bad.State)
	assert.Equal(t, MessageStatus, bad.Message)

	down := Load(context.Background(), &stubSource{err: errors.New("dial tcp: refused")})
	assert.Equal(t, StateFailed, down.State)
	assert.Equal(t, MessageFetch, down.Message)

	var pending Result
	assert.Equal(t, StateLoading, pending.State)
	assert.Equal(t, "loading", pending.State.String())
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Hello world...", Summary("<p>Hello <b>world</b></p>", SummaryLength))
	assert.Equal(t, "a & b...", Summary("<p>a &amp; b</p><script>alert(1)</script>", SummaryLength))

	long := "<p>" + strings.Repeat("x", 300) + "</p>"
	got := Summary(long, SummaryLength)
	assert.Equal(t, strings.Repeat("x", SummaryLength)+"...", got)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "May 1, 2024", FormatDate("2024-05-01 10:00:00"))
	assert.Equal(t, "May 1, 2024", FormatDate("Wed, 01 May 2024 10:00:00 GMT"))
	assert.Equal(t, "someday", FormatDate("someday"))
}

func TestCards_KeepOrder(t *testing.T) {
	cards := Cards([]Post{
		{Title: "one", PubDate: "2024-05-01 10:00:00", Description: "<i>x</i>"},
		{Title: "two"},
	})
	require.Len(t, cards, 2)
	assert.Equal(t, "one", cards[0].Title)
	assert.Equal(t, "May 1, 2024", cards[0].Date)
	assert.Equal(t, "x...", cards[0].Summary)
	assert.Equal(t, "two", cards[1].Title)
}
