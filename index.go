package docdex

import (
	"context"
	"fmt"
)

// TypedIndex ties a registered model type to a client's document store:
// models go in through the mapping engine, come back out fully typed.
type TypedIndex[T any] struct {
	client *Client
	reg    *Registry
}

// NewIndex creates a typed index handle. T must already be registered.
func NewIndex[T any](client *Client, reg *Registry) (*TypedIndex[T], error) {
	if _, err := reg.configFor(typeOf[T]()); err != nil {
		return nil, fmt.Errorf("new index: %w", err)
	}
	return &TypedIndex[T]{client: client, reg: reg}, nil
}

// Put maps an item to a flat document and stores it under id.
// Returns true if created.
func (idx *TypedIndex[T]) Put(ctx context.Context, id string, item T) (bool, error) {
	doc, err := GetDocument(idx.reg, item)
	if err != nil {
		return false, fmt.Errorf("put %q: %w", id, err)
	}
	return idx.client.Documents().Upsert(ctx, id, doc)
}

// Get retrieves a typed item by ID.
func (idx *TypedIndex[T]) Get(ctx context.Context, id string) (T, error) {
	doc, err := idx.client.Documents().Get(ctx, id)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("get %q: %w", id, err)
	}
	item, err := GetModel[T](idx.reg, doc)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("get %q: %w", id, err)
	}
	return item, nil
}

// Delete removes an item by ID.
func (idx *TypedIndex[T]) Delete(ctx context.Context, id string) error {
	return idx.client.Documents().Delete(ctx, id)
}

// Count returns the number of stored documents.
func (idx *TypedIndex[T]) Count(ctx context.Context) (int, error) {
	return idx.client.Documents().Count(ctx)
}
