// Package document handles stored-document CRUD on top of a repository.
package document

import (
	"context"
	"fmt"
	"regexp"

	"github.com/calder-search/docdex/internal/domain"
	domdoc "github.com/calder-search/docdex/internal/domain/document"
)

var (
	idRegex     = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	reservedIDs = map[string]bool{"documents": true, "healthz": true, "metrics": true}
)

// MaxIDLength is the maximum document ID length.
const MaxIDLength = 256

// Service validates IDs and delegates persistence to the repository.
type Service struct {
	repo Repository
}

// New creates a document service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert stores a document under id. Returns true if created.
func (s *Service) Upsert(ctx context.Context, id string, doc *domdoc.Document) (bool, error) {
	if err := validateID(id); err != nil {
		return false, err
	}
	created, err := s.repo.Upsert(ctx, id, doc)
	if err != nil {
		return false, fmt.Errorf("upsert document: %w", err)
	}
	return created, nil
}

// Get returns the document stored under id.
func (s *Service) Get(ctx context.Context, id string) (*domdoc.Document, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// Delete removes the document stored under id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Count returns the number of stored documents.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// validateID checks the document ID shape:
// ^[a-zA-Z0-9_-]+$, 1-256 chars, not reserved.
func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("document ID is required: %w", domain.ErrInvalidDocumentID)
	}
	if len(id) > MaxIDLength {
		return fmt.Errorf("document ID too long (max %d): %w", MaxIDLength, domain.ErrInvalidDocumentID)
	}
	if !idRegex.MatchString(id) {
		return fmt.Errorf("document ID must be alphanumeric with underscores and hyphens: %w", domain.ErrInvalidDocumentID)
	}
	if reservedIDs[id] {
		return fmt.Errorf("document ID %q is reserved: %w", id, domain.ErrInvalidDocumentID)
	}
	return nil
}
