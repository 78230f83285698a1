package release

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Asset tracks a single binary file belonging to a draft.
//
// An asset starts pending: it points at a validated local file that has not
// been uploaded. A successful upload resolves it to a durable remote
// reference; a failed upload records the error and leaves it pending so a
// retry can pick it up. Resolution is final — MarkFailed on a resolved asset
// is ignored.
type Asset struct {
	mu sync.Mutex

	ID        string
	Kind      AssetKind
	LocalPath string
	SizeBytes int64
	MIMEType  string
	RemoteURL string
	RemoteID  string
	LastError string
}

func newAsset(kind AssetKind, localPath string, sizeBytes int64, mimeType string) *Asset {
	return &Asset{
		ID:        uuid.NewString(),
		Kind:      kind,
		LocalPath: localPath,
		SizeBytes: sizeBytes,
		MIMEType:  mimeType,
	}
}

// Resolved reports whether the asset has a durable remote reference.
func (a *Asset) Resolved() bool {
	if a == nil {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.RemoteID != ""
}

// Pending reports whether the asset still needs an upload.
func (a *Asset) Pending() bool {
	return a != nil && !a.Resolved()
}

// Resolve records a successful upload. Calling Resolve on an already
// resolved asset keeps the first reference.
func (a *Asset) Resolve(remoteURL, remoteID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.RemoteID != "" {
		return
	}
	a.RemoteURL = remoteURL
	a.RemoteID = remoteID
	a.LastError = ""
}

// MarkFailed records an upload failure on a pending asset. Resolved assets
// are unaffected.
func (a *Asset) MarkFailed(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.RemoteID != "" {
		return
	}
	if err != nil {
		a.LastError = err.Error()
	} else {
		a.LastError = "unknown failure"
	}
}

// RemoteRef returns the remote URL and ID for a resolved asset.
func (a *Asset) RemoteRef() (url, id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.RemoteURL, a.RemoteID
}

// DisplayName is the filename shown in progress output and error listings.
func (a *Asset) DisplayName() string {
	if a == nil {
		return ""
	}
	if name := filepath.Base(strings.TrimSpace(a.LocalPath)); name != "" && name != "." {
		return name
	}
	return a.ID
}
