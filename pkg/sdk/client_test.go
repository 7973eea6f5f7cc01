package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, WithHTTPClient(srv.Client()))
}

func TestPut(t *testing.T) {
	var gotPath, gotMethod string
	var gotDoc Document
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		if err := json.NewDecoder(r.Body).Decode(&gotDoc); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{"id": "doc-1", "created": true})
	})

	created, err := client.Put(context.Background(), "doc-1", Document{
		Fields: []Field{{Name: "Filename", Value: "report.txt", Stored: true}},
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !created {
		t.Error("created = false, want true")
	}
	if gotMethod != http.MethodPut || gotPath != "/documents/doc-1" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if len(gotDoc.Fields) != 1 || gotDoc.Fields[0].Name != "Filename" {
		t.Errorf("sent document = %+v", gotDoc)
	}
}

func TestPutEscapesID(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		json.NewEncoder(w).Encode(map[string]any{"created": true})
	})

	if _, err := client.Put(context.Background(), "a/b", Document{}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if gotPath != "/documents/a%2Fb" {
		t.Errorf("path = %q, want escaped ID", gotPath)
	}
}

func TestGet(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Document{
			Fields: []Field{{Name: "Filename", Value: "report.txt"}},
			Counts: map[string][]int{"Tags": {2}},
			Empty:  []string{"Size"},
			Boost:  2,
		})
	})

	doc, err := client.Get(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(doc.Fields) != 1 || doc.Fields[0].Value != "report.txt" {
		t.Errorf("fields = %+v", doc.Fields)
	}
	if doc.Counts["Tags"][0] != 2 || doc.Empty[0] != "Size" || doc.Boost != 2 {
		t.Errorf("document = %+v", doc)
	}
}

func TestGetNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "document not found"})
	})

	_, err := client.Get(context.Background(), "missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "document not found" {
		t.Errorf("api error = %+v", apiErr)
	}
}

func TestDelete(t *testing.T) {
	var gotMethod string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.Delete(context.Background(), "doc-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %q", gotMethod)
	}
}

func TestCount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]int{"count": 42})
	})

	n, err := client.Count(context.Background())
	if err != nil || n != 42 {
		t.Errorf("Count = %d (%v), want 42", n, err)
	}
}

func TestHealth(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}
