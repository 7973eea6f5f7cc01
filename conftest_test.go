package docdex

import (
	"context"
	"sync"
	"time"

	"github.com/calder-search/docdex/internal/db"
)

// memStore is an in-memory db.Store for client and index tests.
type memStore struct {
	mu     sync.Mutex
	docs   map[string]map[string]string
	closed bool
}

var _ db.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{docs: map[string]map[string]string{}}
}

func (s *memStore) Ping(context.Context) error { return nil }

func (s *memStore) Put(_ context.Context, key string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	s.docs[key] = cp
	return nil
}

func (s *memStore) Get(_ context.Context, key string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fields, ok := s.docs[key]
	if !ok {
		return nil, &db.Error{Op: db.OpGet, Err: db.ErrKeyNotFound}
	}
	return fields, nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key)
	return nil
}

func (s *memStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.docs[key]
	return ok, nil
}

func (s *memStore) Count(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs), nil
}

func (s *memStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *memStore) WaitForReady(context.Context, time.Duration) error { return nil }
