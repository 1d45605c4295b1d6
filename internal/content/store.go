package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// FetchError reports a failed read of one of the static documents.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsFetchError checks if an error is a FetchError
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// Store reads the content document and the diagram manifest. A source is
// either a filesystem path or an http(s) URL.
type Store struct {
	source   string
	manifest string
	client   *http.Client
}

// NewStore creates a store. client is used for URL sources and may be nil.
func NewStore(source, manifest string, client *http.Client) *Store {
	if client == nil {
		client = http.DefaultClient
	}
	return &Store{source: source, manifest: manifest, client: client}
}

// Load reads and decodes the content document.
func (s *Store) Load(ctx context.Context) (*Content, error) {
	var c Content
	if err := s.readJSON(ctx, s.source, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadManifest reads and decodes the diagram manifest.
func (s *Store) LoadManifest(ctx context.Context) (Manifest, error) {
	var m Manifest
	if err := s.readJSON(ctx, s.manifest, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Store) readJSON(ctx context.Context, source string, v any) error {
	body, err := s.open(ctx, source)
	if err != nil {
		return &FetchError{Source: source, Err: err}
	}
	defer body.Close()

	if err := json.NewDecoder(body).Decode(v); err != nil {
		return &FetchError{Source: source, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

func (s *Store) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !IsURL(source) {
		return os.Open(source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// IsURL reports whether source is fetched over http(s) rather than read
// from disk.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
