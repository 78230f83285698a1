package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"presskit/internal/catalog"
	"presskit/internal/services"
	"presskit/internal/testsupport"
)

func newClient(t *testing.T, handler http.Handler) *catalog.HTTPClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := testsupport.NewConfig(t, testsupport.WithCatalogBaseURL(server.URL))
	return catalog.NewHTTPClient(cfg, nil)
}

func samplePayload() catalog.ReleasePayload {
	return catalog.ReleasePayload{
		ArtistID:      "artist-42",
		Type:          "single",
		Title:         "Night Drive",
		PrimaryArtist: "The Mainsprings",
		Genres:        []string{"Electronic"},
		ReleaseDate:   "2026-10-02",
		CoverArtURL:   "https://cdn.example/cover",
		Tracks: []catalog.TrackPayload{{
			Position: 1, Title: "Night Drive", AudioURL: "https://cdn.example/a",
			AudioAssetID: "asset-1", LegalName: "Jordan Smith",
		}},
	}
}

func TestCreateReleaseSuccess(t *testing.T) {
	var gotAuth string
	var gotPayload catalog.ReleasePayload
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotPayload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"release_id": "rel-100"})
	}))

	releaseID, err := client.CreateRelease(context.Background(), "token-abc", samplePayload())
	if err != nil {
		t.Fatalf("CreateRelease failed: %v", err)
	}
	if releaseID != "rel-100" {
		t.Fatalf("unexpected release id %s", releaseID)
	}
	if gotAuth != "Bearer token-abc" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotPayload.Title != "Night Drive" || len(gotPayload.Tracks) != 1 {
		t.Fatalf("payload not transmitted intact: %+v", gotPayload)
	}
}

func TestCreateReleaseFieldRejection(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"errors": map[string]string{"release_date": "must be in the future"},
		})
	}))

	_, err := client.CreateRelease(context.Background(), "token-abc", samplePayload())
	if !errors.Is(err, services.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	var rejection *catalog.RejectionError
	if !errors.As(err, &rejection) {
		t.Fatalf("expected RejectionError, got %v", err)
	}
	if rejection.FieldErrors["release_date"] != "must be in the future" {
		t.Fatalf("unexpected field errors: %v", rejection.FieldErrors)
	}
}

func TestCreateReleaseMalformedRejectionBody(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "release invalid", http.StatusBadRequest)
	}))

	_, err := client.CreateRelease(context.Background(), "token-abc", samplePayload())
	if !errors.Is(err, services.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
	var rejection *catalog.RejectionError
	if !errors.As(err, &rejection) || len(rejection.FieldErrors) == 0 {
		t.Fatalf("expected fallback field errors, got %v", err)
	}
}

func TestCreateReleaseUnauthorized(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.CreateRelease(context.Background(), "expired", samplePayload())
	if !errors.Is(err, services.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestCreateReleaseServerError(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.CreateRelease(context.Background(), "token-abc", samplePayload())
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected ErrTransient, got %v", err)
	}
	if !services.Retryable(err) {
		t.Fatal("transient catalog failures should be retryable")
	}
}
