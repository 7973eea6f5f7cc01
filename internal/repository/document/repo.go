// Package document persists flat documents in a db.Store.
package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/calder-search/docdex/internal/db"
	"github.com/calder-search/docdex/internal/domain"
	domdoc "github.com/calder-search/docdex/internal/domain/document"
)

// store is the consumer interface for documents (ISP).
type store interface {
	Put(ctx context.Context, key string, fields map[string]string) error
	Get(ctx context.Context, key string) (map[string]string, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// Repo implements usecase/document.Repository.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert stores a document under id. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, id string, doc *domdoc.Document) (bool, error) {
	exists, err := r.store.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", id, err)
	}

	if err := r.store.Put(ctx, id, buildHashFields(doc)); err != nil {
		return false, fmt.Errorf("put %s: %w", id, err)
	}
	return !exists, nil
}

// Get returns the document stored under id.
func (r *Repo) Get(ctx context.Context, id string) (*domdoc.Document, error) {
	fields, err := r.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	return parseHashFields(fields), nil
}

// Delete removes the document stored under id.
func (r *Repo) Delete(ctx context.Context, id string) error {
	exists, err := r.store.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", id, err)
	}
	if !exists {
		return domain.ErrDocumentNotFound
	}
	if err := r.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

// Count returns the number of stored documents.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}
