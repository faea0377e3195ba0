package httpfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHeadReturnsContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	contentType, err := New(time.Second).Head(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("head failed: %v", err)
	}
	if contentType != "image/png" {
		t.Fatalf("content type = %q", contentType)
	}
}

func TestHeadNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := New(time.Second).Head(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestHeadUnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	url := server.URL
	server.Close()

	if _, err := New(time.Second).Head(context.Background(), url); err == nil {
		t.Fatal("expected error for closed server")
	}
}

func TestHeadHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := New(time.Minute).Head(ctx, server.URL); err == nil {
		t.Fatal("expected context deadline error")
	}
}
