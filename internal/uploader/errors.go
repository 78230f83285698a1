package uploader

import (
	"fmt"
	"strings"

	"presskit/internal/release"
)

// FailedAsset records one asset whose upload attempt failed.
type FailedAsset struct {
	AssetID string
	Kind    release.AssetKind
	Name    string
	Err     error
}

// UploadError aggregates every failed asset from one upload pass. Assets that
// succeeded in the same pass stay resolved; only the listed assets need a
// retry.
type UploadError struct {
	Failures []FailedAsset
}

func (e *UploadError) Error() string {
	if len(e.Failures) == 0 {
		return "upload failed"
	}
	parts := make([]string, 0, len(e.Failures))
	for _, failure := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", failure.Name, failure.Err))
	}
	return fmt.Sprintf("%d upload(s) failed: %s", len(e.Failures), strings.Join(parts, "; "))
}
