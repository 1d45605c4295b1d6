// Package visitors is the privacy-conscious page view tracker: visitor IPs
// are stored only as salted hashes, Do Not Track is honoured and records
// older than a year are swept.
package visitors

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// timeLayout matches SQLite's datetime() output so range queries compare
// as plain strings.
const timeLayout = "2006-01-02 15:04:05"

// PageView is one recorded request.
type PageView struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// PathCount is the number of views of one path.
type PathCount struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// Stats summarises recorded views.
type Stats struct {
	TotalViews     int64       `json:"total_views"`
	UniqueVisitors int64       `json:"unique_visitors"`
	ViewsToday     int64       `json:"views_today"`
	ViewsThisWeek  int64       `json:"views_this_week"`
	TopPaths       []PathCount `json:"top_paths"`
	RecentViews    []PageView  `json:"recent_views"`
}

// Tracker records and reports page views.
type Tracker struct {
	db     *sql.DB
	salt   string
	logger *zap.Logger
	now    func() time.Time
}

// Open opens the SQLite database at path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open stats database: %w", err)
	}
	// SQLite serialises writers anyway; one connection also keeps
	// ":memory:" databases shared.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open stats database: %w", err)
	}
	return db, nil
}

// NewTracker creates the schema if needed. An empty salt gets a random
// one, which makes hashes stable only for the life of the process.
func NewTracker(ctx context.Context, db *sql.DB, salt string, logger *zap.Logger) (*Tracker, error) {
	if salt == "" {
		var err error
		if salt, err = randomSalt(); err != nil {
			return nil, err
		}
	}
	t := &Tracker{db: db, salt: salt, logger: logger, now: time.Now}
	if err := t.migrate(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tracker) migrate(ctx context.Context) error {
	_, err := t.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS visitors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT,
		path TEXT,
		timestamp TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create visitors table: %w", err)
	}
	_, err = t.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS visitors_timestamp ON visitors (timestamp)`)
	if err != nil {
		return fmt.Errorf("create visitors index: %w", err)
	}
	return nil
}

func randomSalt() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashIP returns a salted, truncated SHA-256 of ip. The same ip always
// maps to the same hash for a given salt.
func (t *Tracker) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + t.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Record stores one page view.
func (t *Tracker) Record(ctx context.Context, ip, userAgent, path string) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, t.HashIP(ip), userAgent, path, t.now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("record page view: %w", err)
	}
	return nil
}

// Cleanup deletes views older than twelve months and returns how many
// were removed.
func (t *Tracker) Cleanup(ctx context.Context) (int64, error) {
	cutoff := t.now().UTC().AddDate(-1, 0, 0).Format(timeLayout)
	result, err := t.db.ExecContext(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("clean up old page views: %w", err)
	}
	removed, _ := result.RowsAffected()
	if removed > 0 {
		t.logger.Info("privacy cleanup removed old page views", zap.Int64("removed", removed))
	}
	return removed, nil
}

// Stats computes the summary shown by the stats command.
func (t *Tracker) Stats(ctx context.Context) (*Stats, error) {
	now := t.now().UTC()
	today := now.Format("2006-01-02")
	weekAgo := now.AddDate(0, 0, -7).Format(timeLayout)

	stats := &Stats{}
	counts := []struct {
		dest  *int64
		query string
		args  []any
	}{
		{&stats.TotalViews, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.ViewsToday, `SELECT COUNT(*) FROM visitors WHERE substr(timestamp, 1, 10) = ?`, []any{today}},
		{&stats.ViewsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{weekAgo}},
	}
	for _, c := range counts {
		if err := t.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("count page views: %w", err)
		}
	}

	var err error
	if stats.TopPaths, err = t.topPaths(ctx, 10); err != nil {
		return nil, err
	}
	if stats.RecentViews, err = t.Recent(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}

func (t *Tracker) topPaths(ctx context.Context, limit int) ([]PathCount, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS views
		FROM visitors
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top paths: %w", err)
	}
	defer rows.Close()

	var paths []PathCount
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Views); err != nil {
			return nil, fmt.Errorf("scan top path: %w", err)
		}
		paths = append(paths, pc)
	}
	return paths, rows.Err()
}

// Recent returns the latest views, newest first.
func (t *Tracker) Recent(ctx context.Context, limit int) ([]PageView, error) {
	rows, err := t.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent views: %w", err)
	}
	defer rows.Close()

	var views []PageView
	for rows.Next() {
		var v PageView
		var ts string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scan recent view: %w", err)
		}
		if v.Timestamp, err = time.Parse(timeLayout, ts); err != nil {
			t.logger.Warn("skipping view with bad timestamp", zap.Int("id", v.ID), zap.String("timestamp", ts))
			continue
		}
		views = append(views, v)
	}
	return views, rows.Err()
}
