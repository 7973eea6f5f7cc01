package docdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/calder-search/docdex/internal/db"
	dbBleve "github.com/calder-search/docdex/internal/db/bleve"
	dbRedis "github.com/calder-search/docdex/internal/db/redis"
	documentrepo "github.com/calder-search/docdex/internal/repository/document"
	documentuc "github.com/calder-search/docdex/internal/usecase/document"
)

const defaultReadinessTimeout = 10 * time.Second

// Store is the opaque document store contract a Client persists into.
// Custom backends implement it and are wired with WithStore.
type Store = db.Store

// Client is the docdex SDK entry point: a document store plus the
// services persisting flat documents into it.
type Client struct {
	store  db.Store
	docSvc *documentuc.Service
}

// New creates a docdex Client and connects to the configured store.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("docdex: store not ready: %w", err)
	}

	return &Client{
		store:  store,
		docSvc: documentuc.New(documentrepo.New(store)),
	}, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	if cfg.store != nil {
		return cfg.store, nil
	}
	switch cfg.driver {
	case "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.addrs,
			Username:  cfg.username,
			Password:  cfg.password,
			DB:        cfg.dbNum,
			KeyPrefix: cfg.keyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("docdex: create redis store: %w", err)
		}
		return s, nil
	case "bleve":
		s, err := dbBleve.NewStore(dbBleve.Config{Path: cfg.path})
		if err != nil {
			return nil, fmt.Errorf("docdex: create bleve store: %w", err)
		}
		return s, nil
	case "":
		return nil, errors.New("docdex: store required (use WithRedis, WithBleve or WithStore)")
	default:
		return nil, fmt.Errorf("docdex: unknown driver %q", cfg.driver)
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Documents returns the raw flat-document service.
func (c *Client) Documents() *DocumentService {
	return &DocumentService{svc: c.docSvc}
}

// DocumentService stores and retrieves raw flat documents by ID.
type DocumentService struct {
	svc *documentuc.Service
}

// Upsert stores a document under id. Returns true if created.
func (s *DocumentService) Upsert(ctx context.Context, id string, doc *Document) (bool, error) {
	return s.svc.Upsert(ctx, id, doc)
}

// Get retrieves the document stored under id.
func (s *DocumentService) Get(ctx context.Context, id string) (*Document, error) {
	return s.svc.Get(ctx, id)
}

// Delete removes the document stored under id.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	return s.svc.Delete(ctx, id)
}

// Count returns the number of stored documents.
func (s *DocumentService) Count(ctx context.Context) (int, error) {
	return s.svc.Count(ctx)
}
