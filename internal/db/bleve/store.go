// Package bleve implements db.Store on an embedded bleve full-text
// index. Field values are stored so documents can be read back whole.
package bleve

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	index "github.com/blevesearch/bleve_index_api"

	"github.com/calder-search/docdex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds parameters for a bleve store.
type Config struct {
	// Path is the index directory. Empty means an in-memory index.
	Path string
}

// Store implements db.Store via an embedded bleve index.
type Store struct {
	mu     sync.RWMutex
	index  bleve.Index
	closed bool
}

// NewStore opens or creates a bleve index at cfg.Path.
func NewStore(cfg Config) (*Store, error) {
	m := bleve.NewIndexMapping()

	var idx bleve.Index
	var err error
	switch {
	case cfg.Path == "":
		idx, err = bleve.NewMemOnly(m)
	default:
		idx, err = bleve.Open(cfg.Path)
		if err == bleve.ErrorIndexPathDoesNotExist {
			idx, err = bleve.New(cfg.Path, m)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open bleve index: %w", err)
	}

	return &Store{index: idx}, nil
}

// Put indexes the field map under key, replacing any previous document.
func (s *Store) Put(_ context.Context, key string, fields map[string]string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.index.Index(key, fields); err != nil {
		return &db.Error{Op: db.OpPut, Err: err}
	}
	return nil
}

// Get reads back the stored field values of a document.
func (s *Store) Get(_ context.Context, key string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.index.Document(key)
	if err != nil {
		return nil, &db.Error{Op: db.OpGet, Err: err}
	}
	if doc == nil {
		return nil, db.ErrKeyNotFound
	}

	fields := map[string]string{}
	doc.VisitFields(func(f index.Field) {
		fields[f.Name()] = string(f.Value())
	})
	return fields, nil
}

// Delete removes a document from the index.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.index.Delete(key); err != nil {
		return &db.Error{Op: db.OpDelete, Err: err}
	}
	return nil
}

// Exists checks whether a document is indexed under key.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.Get(ctx, key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of indexed documents.
func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, err := s.index.DocCount()
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return int(n), nil
}

// Ping reports whether the index is open.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return &db.Error{Op: db.OpPing, Err: fmt.Errorf("index closed")}
	}
	return nil
}

// Close closes the underlying index.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	_ = s.index.Close()
}

// WaitForReady is immediate for an embedded index.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}
