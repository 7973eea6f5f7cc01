package docdex

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNewRequiresStore(t *testing.T) {
	_, err := New()
	if err == nil || !strings.Contains(err.Error(), "store required") {
		t.Fatalf("error = %v, want store required", err)
	}
}

func TestCreateStoreUnknownDriver(t *testing.T) {
	_, err := createStore(&clientConfig{driver: "etcd"})
	if err == nil || !strings.Contains(err.Error(), "unknown driver") {
		t.Fatalf("error = %v, want unknown driver", err)
	}
}

func TestClientDocumentLifecycle(t *testing.T) {
	store := newMemStore()
	client, err := New(WithStore(store))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer client.Close()
	ctx := context.Background()

	doc := NewDocument()
	doc.Add("Filename", "report.txt", Flags{Stored: true})
	doc.Add("Text", "alpha beta", Flags{Analyzed: true})

	created, err := client.Documents().Upsert(ctx, "doc-1", doc)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !created {
		t.Error("first upsert must report created")
	}

	created, err = client.Documents().Upsert(ctx, "doc-1", doc)
	if err != nil {
		t.Fatalf("Upsert again: %v", err)
	}
	if created {
		t.Error("second upsert must report replaced")
	}

	got, err := client.Documents().Get(ctx, "doc-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v, ok := got.Extract("Filename"); !ok || v != "report.txt" {
		t.Errorf("Filename = %q (%v)", v, ok)
	}

	n, err := client.Documents().Count(ctx)
	if err != nil || n != 1 {
		t.Errorf("Count = %d (%v), want 1", n, err)
	}

	if err := client.Documents().Delete(ctx, "doc-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := client.Documents().Get(ctx, "doc-1"); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("Get after delete = %v, want ErrDocumentNotFound", err)
	}
	if err := client.Documents().Delete(ctx, "doc-1"); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("Delete missing = %v, want ErrDocumentNotFound", err)
	}
}

func TestClientRejectsInvalidIDs(t *testing.T) {
	client, err := New(WithStore(newMemStore()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer client.Close()
	ctx := context.Background()

	for _, id := range []string{"", "has space", "héllo", "metrics", strings.Repeat("x", 300)} {
		if _, err := client.Documents().Upsert(ctx, id, NewDocument()); !errors.Is(err, ErrInvalidDocumentID) {
			t.Errorf("Upsert(%q) = %v, want ErrInvalidDocumentID", id, err)
		}
	}
}

func TestClientBleveInMemory(t *testing.T) {
	client, err := New(WithBleve(""))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer client.Close()
	ctx := context.Background()

	if err := client.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	doc := NewDocument()
	doc.Add("Filename", "report.txt", Flags{Stored: true})
	if _, err := client.Documents().Upsert(ctx, "doc-1", doc); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := client.Documents().Get(ctx, "doc-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v, ok := got.Extract("Filename"); !ok || v != "report.txt" {
		t.Errorf("Filename = %q (%v)", v, ok)
	}
}
