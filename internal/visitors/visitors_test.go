package visitors

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tracker, err := NewTracker(context.Background(), db, "test-salt", zap.NewNop())
	require.NoError(t, err)
	return tracker
}

func TestHashIP(t *testing.T) {
	tracker := newTestTracker(t)

	h := tracker.HashIP("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, tracker.HashIP("203.0.113.7"))
	assert.NotEqual(t, h, tracker.HashIP("203.0.113.8"))
	assert.NotContains(t, h, "203")

	other := &Tracker{salt: "another-salt"}
	assert.NotEqual(t, h, other.HashIP("203.0.113.7"))
}

func TestRecordAndStats(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	at := func(ts time.Time, ip, path string) {
		tracker.now = func() time.Time { return ts }
		require.NoError(t, tracker.Record(ctx, ip, "test-agent", path))
	}
	at(now, "1.1.1.1", "/")
	at(now.Add(-time.Hour), "1.1.1.1", "/medium")
	at(now.Add(-time.Hour), "2.2.2.2", "/")
	at(now.AddDate(0, 0, -3), "3.3.3.3", "/architectures")
	at(now.AddDate(0, 0, -30), "3.3.3.3", "/")
	tracker.now = func() time.Time { return now }

	stats, err := tracker.Stats(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 5, stats.TotalViews)
	assert.EqualValues(t, 3, stats.UniqueVisitors)
	assert.EqualValues(t, 3, stats.ViewsToday)
	assert.EqualValues(t, 4, stats.ViewsThisWeek)

	require.NotEmpty(t, stats.TopPaths)
	assert.Equal(t, PathCount{Path: "/", Views: 3}, stats.TopPaths[0])

	require.Len(t, stats.RecentViews, 5)
	assert.Equal(t, "/", stats.RecentViews[0].Path)
	assert.True(t, stats.RecentViews[0].Timestamp.Equal(now))
	assert.Equal(t, tracker.HashIP("1.1.1.1"), stats.RecentViews[0].HashedIP)
}

func TestCleanup(t *testing.T) {
	tracker := newTestTracker(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tracker.now = func() time.Time { return now.AddDate(-1, 0, -1) }
	require.NoError(t, tracker.Record(ctx, "1.1.1.1", "", "/old"))
	tracker.now = func() time.Time { return now.AddDate(0, -11, 0) }
	require.NoError(t, tracker.Record(ctx, "1.1.1.1", "", "/recent"))

	tracker.now = func() time.Time { return now }
	removed, err := tracker.Cleanup(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	views, err := tracker.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "/recent", views[0].Path)
}

func TestTrackable(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		headers map[string]string
		want    bool
	}{
		{"page", http.MethodGet, "/", nil, true},
		{"gallery page", http.MethodGet, "/architectures", nil, true},
		{"static asset", http.MethodGet, "/static/css/site.css", nil, false},
		{"diagram", http.MethodGet, "/diagrams/a.png", nil, false},
		{"event stream", http.MethodGet, "/events/clock", nil, false},
		{"resume pdf", http.MethodGet, "/resume/resume.pdf", nil, false},
		{"action post", http.MethodPost, "/gallery/next", nil, false},
		{"fragment", http.MethodGet, "/sections/home", map[string]string{"HX-Request": "true"}, false},
		{"do not track", http.MethodGet, "/", map[string]string{"DNT": "1"}, false},
		{"dnt off", http.MethodGet, "/", map[string]string{"DNT": "0"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, Trackable(req))
		})
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracker := newTestTracker(t)

	r := gin.New()
	r.Use(tracker.Middleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "home") })
	r.GET("/missing", func(c *gin.Context) { c.String(http.StatusNotFound, "nope") })

	send := func(path string, dnt bool) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if dnt {
			req.Header.Set("DNT", "1")
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
	}
	send("/", false)
	send("/", true)
	send("/missing", false)

	views, err := tracker.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "/", views[0].Path)
}

func TestRunRetentionStopsWithContext(t *testing.T) {
	tracker := newTestTracker(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tracker.RunRetention(ctx, 10*time.Millisecond) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("retention loop did not stop")
	}
}
