package testsupport

import (
	"path/filepath"
	"testing"

	"presskit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Storage.BaseURL = "http://127.0.0.1:0"
	cfgVal.Storage.Token = "test-token"
	cfgVal.Catalog.BaseURL = "http://127.0.0.1:0"

	builder := &configBuilder{
		t:   t,
		cfg: &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStorageBaseURL points the test config at a live storage endpoint.
func WithStorageBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.BaseURL = url
	}
}

// WithCatalogBaseURL points the test config at a live catalog endpoint.
func WithCatalogBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.BaseURL = url
	}
}

// WithUploadConcurrency overrides the worker pool size on the test config.
func WithUploadConcurrency(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Uploads.Concurrency = n
	}
}
