package document

import (
	"context"

	domdoc "github.com/calder-search/docdex/internal/domain/document"
)

// Repository persists flat documents by ID.
type Repository interface {
	Upsert(ctx context.Context, id string, doc *domdoc.Document) (bool, error)
	Get(ctx context.Context, id string) (*domdoc.Document, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
