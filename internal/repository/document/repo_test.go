package document

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/calder-search/docdex/internal/db"
	"github.com/calder-search/docdex/internal/domain"
	domdoc "github.com/calder-search/docdex/internal/domain/document"
)

func TestUpsertCreated(t *testing.T) {
	tests := []struct {
		name        string
		exists      bool
		wantCreated bool
	}{
		{"new document", false, true},
		{"existing document", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var putKey string
			repo := New(&mockStore{
				exists: func(_ context.Context, key string) (bool, error) { return tt.exists, nil },
				put: func(_ context.Context, key string, fields map[string]string) error {
					putKey = key
					if fields["A"] != "1" {
						t.Errorf("fields = %v", fields)
					}
					return nil
				},
			})

			doc := domdoc.New()
			doc.Add("A", "1", domdoc.Flags{})
			created, err := repo.Upsert(context.Background(), "doc-1", doc)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if created != tt.wantCreated {
				t.Errorf("created = %v, want %v", created, tt.wantCreated)
			}
			if putKey != "doc-1" {
				t.Errorf("put key = %q", putKey)
			}
		})
	}
}

func TestUpsertPutFailure(t *testing.T) {
	boom := fmt.Errorf("boom")
	repo := New(&mockStore{
		exists: func(context.Context, string) (bool, error) { return false, nil },
		put:    func(context.Context, string, map[string]string) error { return boom },
	})

	_, err := repo.Upsert(context.Background(), "doc-1", domdoc.New())
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want wrapped boom", err)
	}
}

func TestGetNotFound(t *testing.T) {
	repo := New(&mockStore{
		get: func(context.Context, string) (map[string]string, error) {
			return nil, &db.Error{Op: db.OpGet, Err: db.ErrKeyNotFound}
		},
	})

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("error = %v, want ErrDocumentNotFound", err)
	}
}

func TestGetParsesHash(t *testing.T) {
	repo := New(&mockStore{
		get: func(context.Context, string) (map[string]string, error) {
			return map[string]string{"Filename": "report.txt", "__empty:Size": "1"}, nil
		},
	})

	doc, err := repo.Get(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := doc.Extract("Filename"); !ok || v != "report.txt" {
		t.Errorf("Filename = %q (%v)", v, ok)
	}
	if !doc.IsEmpty("Size") {
		t.Error("empty marker lost")
	}
}

func TestDeleteMissing(t *testing.T) {
	repo := New(&mockStore{
		exists: func(context.Context, string) (bool, error) { return false, nil },
	})

	err := repo.Delete(context.Background(), "missing")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("error = %v, want ErrDocumentNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	var deleted string
	repo := New(&mockStore{
		exists: func(context.Context, string) (bool, error) { return true, nil },
		del: func(_ context.Context, key string) error {
			deleted = key
			return nil
		},
	})

	if err := repo.Delete(context.Background(), "doc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != "doc-1" {
		t.Errorf("deleted = %q", deleted)
	}
}

func TestCount(t *testing.T) {
	repo := New(&mockStore{
		count: func(context.Context) (int, error) { return 7, nil },
	})

	n, err := repo.Count(context.Background())
	if err != nil || n != 7 {
		t.Errorf("Count = %d (%v), want 7", n, err)
	}
}
