package assetcheck

import (
	"os"

	"presskit/internal/config"
)

// headerSniffBytes is how much of a file is read for container signature
// matching. filetype needs at most 262 bytes; a little extra is harmless.
const headerSniffBytes = 512

// AudioInfo describes a validated audio file.
type AudioInfo struct {
	Format          string
	MIMEType        string
	SizeBytes       int64
	DurationSeconds float64
	EmbeddedTitle   string
	EmbeddedArtist  string
}

// ImageInfo describes a validated image file.
type ImageInfo struct {
	Format    string
	MIMEType  string
	SizeBytes int64
	Width     int
	Height    int
}

// Checker applies the asset validation rules. The zero value is not usable;
// construct with NewChecker or NewCheckerFromConfig.
type Checker struct {
	maxAudioBytes int64
	maxImageBytes int64
	minCoverArtPx int
}

// NewChecker builds a Checker with explicit ceilings.
func NewChecker(maxAudioBytes, maxImageBytes int64, minCoverArtPx int) *Checker {
	return &Checker{
		maxAudioBytes: maxAudioBytes,
		maxImageBytes: maxImageBytes,
		minCoverArtPx: minCoverArtPx,
	}
}

// NewCheckerFromConfig builds a Checker from the uploads config section.
func NewCheckerFromConfig(cfg *config.Config) *Checker {
	return NewChecker(cfg.MaxAudioBytes(), cfg.MaxImageBytes(), cfg.Uploads.MinCoverArtPx)
}

func statCandidate(path string) (int64, *ValidationError) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, reject(KindCorruptFile, "cannot read %q: %v", path, err)
	}
	if info.IsDir() {
		return 0, reject(KindCorruptFile, "%q is a directory, not a file", path)
	}
	return info.Size(), nil
}

func sniffHeader(path string) ([]byte, *ValidationError) {
	file, err := os.Open(path)
	if err != nil {
		return nil, reject(KindCorruptFile, "cannot open %q: %v", path, err)
	}
	defer file.Close()

	head := make([]byte, headerSniffBytes)
	n, err := file.Read(head)
	if n == 0 {
		if err != nil {
			return nil, reject(KindCorruptFile, "cannot read %q: %v", path, err)
		}
		return nil, reject(KindCorruptFile, "%q is empty", path)
	}
	return head[:n], nil
}
