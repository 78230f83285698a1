package storage_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"presskit/internal/services"
	"presskit/internal/storage"
	"presskit/internal/testsupport"
)

func newClient(t *testing.T, handler http.Handler) *storage.HTTPClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := testsupport.NewConfig(t, testsupport.WithStorageBaseURL(server.URL))
	return storage.NewHTTPClient(cfg, nil)
}

func TestPutAssetSuccess(t *testing.T) {
	var gotAuth, gotFilename string
	var gotBody []byte
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotFilename = r.Header.Get("X-Asset-Filename")
		gotBody, _ = io.ReadAll(r.Body)
		json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example/a", "id": "asset-1"})
	}))

	payload := []byte("fake audio bytes")
	var reported []int64
	location, err := client.PutAsset(context.Background(), storage.PutRequest{
		Body:      bytes.NewReader(payload),
		SizeBytes: int64(len(payload)),
		Filename:  "track.wav",
		MIMEType:  "audio/x-wav",
		Progress:  func(sent int64) { reported = append(reported, sent) },
	})
	if err != nil {
		t.Fatalf("PutAsset failed: %v", err)
	}
	if location.ID != "asset-1" || location.URL != "https://cdn.example/a" {
		t.Fatalf("unexpected location: %+v", location)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotFilename != "track.wav" {
		t.Fatalf("unexpected filename header %q", gotFilename)
	}
	if !bytes.Equal(gotBody, payload) {
		t.Fatal("body was not streamed intact")
	}
	if len(reported) == 0 || reported[len(reported)-1] != int64(len(payload)) {
		t.Fatalf("expected cumulative progress up to %d, got %v", len(payload), reported)
	}
}

func TestPutAssetUnauthorized(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.PutAsset(context.Background(), storage.PutRequest{
		Body: bytes.NewReader([]byte("x")), SizeBytes: 1, Filename: "a.wav",
	})
	if !errors.Is(err, services.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestPutAssetRateLimited(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.PutAsset(context.Background(), storage.PutRequest{
		Body: bytes.NewReader([]byte("x")), SizeBytes: 1, Filename: "a.wav",
	})
	if !errors.Is(err, services.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestPutAssetRejectedResponse(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "virus scan failed", http.StatusUnprocessableEntity)
	}))

	_, err := client.PutAsset(context.Background(), storage.PutRequest{
		Body: bytes.NewReader([]byte("x")), SizeBytes: 1, Filename: "a.wav",
	})
	if !errors.Is(err, services.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
}

func TestPutAssetMalformedResponse(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"url": ""})
	}))

	_, err := client.PutAsset(context.Background(), storage.PutRequest{
		Body: bytes.NewReader([]byte("x")), SizeBytes: 1, Filename: "a.wav",
	})
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}
}
