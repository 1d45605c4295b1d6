// Package session keeps each visitor's UI state in server memory: their
// gallery controller and terminal widget. Nothing is shared between
// visitors and nothing is persisted; idle sessions expire.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/Zachkp/terminal-portfolio/internal/gallery"
	"github.com/Zachkp/terminal-portfolio/internal/terminal"
)

// Session is one visitor's private state. Lock it around every access.
type Session struct {
	ID string

	mu       sync.Mutex
	gallery  *gallery.Controller
	terminal *terminal.Terminal
	limiter  *rate.Limiter
}

// Do runs fn with the session locked.
func (s *Session) Do(fn func(s *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{Gallery: s.gallery, Terminal: s.terminal}
	fn(&st)
	s.gallery = st.Gallery
	s.terminal = st.Terminal
}

// Allow reports whether the visitor may perform another action now.
func (s *Session) Allow() bool {
	return s.limiter.Allow()
}

// State is the mutable part of a session handed to Do. Either field may
// be nil until the matching view is first loaded.
type State struct {
	Gallery  *gallery.Controller
	Terminal *terminal.Terminal
}

// Store holds sessions keyed by ID with a sliding TTL.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
	limit rate.Limit
	burst int
}

// NewStore creates a store whose sessions expire after ttl without use.
// Each session may perform rps actions per second with the given burst.
func NewStore(ttl time.Duration, rps float64, burst int) *Store {
	return &Store{
		cache: cache.New(ttl, ttl/2),
		ttl:   ttl,
		limit: rate.Limit(rps),
		burst: burst,
	}
}

// Get returns the live session for id and extends its TTL.
func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	v, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	sess := v.(*Session)
	s.cache.Set(id, sess, s.ttl)
	return sess, true
}

// Create starts a new empty session.
func (s *Store) Create() *Session {
	sess := &Session{
		ID:      uuid.NewString(),
		limiter: rate.NewLimiter(s.limit, s.burst),
	}
	s.cache.Set(sess.ID, sess, s.ttl)
	return sess
}

// GetOrCreate returns the session for id, or a new one when id is unknown
// or expired. created reports which.
func (s *Store) GetOrCreate(id string) (sess *Session, created bool) {
	if sess, ok := s.Get(id); ok {
		return sess, false
	}
	return s.Create(), true
}

// Delete forgets a session.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Count returns the number of sessions, including expired ones not yet
// swept.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}

// TTL is the idle lifetime of a session.
func (s *Store) TTL() time.Duration { return s.ttl }
