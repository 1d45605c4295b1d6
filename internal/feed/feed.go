// Package feed fetches blog posts for the feed page, either through an
// RSS-to-JSON bridge or by parsing the RSS document directly.
//
// A fetch is a single attempt. Callers get a tri-state Result: loading
// (the zero value, before the fetch resolves), failed, or loaded.
package feed

import (
	"context"
	"errors"
	"fmt"
)

// Post is one feed entry, in the shape the bridge returns.
type Post struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	PubDate     string   `json:"pubDate"`
	Thumbnail   string   `json:"thumbnail"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
}

// Source fetches the posts of one feed.
type Source interface {
	Fetch(ctx context.Context) ([]Post, error)
}

// StatusError is returned when the bridge answers with a status other
// than "ok".
type StatusError struct {
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("feed bridge status %q: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("feed bridge status %q", e.Status)
}

// IsStatus checks if an error is a StatusError
func IsStatus(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}

type State int

const (
	StateLoading State = iota
	StateFailed
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateFailed:
		return "failed"
	case StateLoaded:
		return "loaded"
	default:
		return "loading"
	}
}

// Messages rendered for each non-loaded state.
const (
	MessageLoading = "Loading Medium posts..."
	MessageStatus  = "Failed to load Medium posts."
	MessageFetch   = "Failed to fetch Medium feed."
)

// Result is the outcome of one fetch.
type Result struct {
	State   State
	Posts   []Post
	Message string
	Err     error
}

// Load performs one fetch and folds it into a Result. A bridge that
// reports a bad status and a transport failure render different messages.
func Load(ctx context.Context, src Source) Result {
	posts, err := src.Fetch(ctx)
	switch {
	case err == nil:
		return Result{State: StateLoaded, Posts: posts}
	case IsStatus(err):
		return Result{State: StateFailed, Message: MessageStatus, Err: err}
	default:
		return Result{State: StateFailed, Message: MessageFetch, Err: err}
	}
}
