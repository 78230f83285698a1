package assetcheck

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/h2non/filetype"
)

// CheckImage validates a candidate cover art file: allow-listed raster format,
// size ceiling, square aspect, and minimum dimensions.
func (c *Checker) CheckImage(path string) (ImageInfo, error) {
	size, verr := statCandidate(path)
	if verr != nil {
		return ImageInfo{}, verr
	}
	if c.maxImageBytes > 0 && size > c.maxImageBytes {
		return ImageInfo{}, reject(KindTooLarge,
			"image file is %d MiB, ceiling is %d MiB", size/(1024*1024), c.maxImageBytes/(1024*1024))
	}

	head, verr := sniffHeader(path)
	if verr != nil {
		return ImageInfo{}, verr
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return ImageInfo{}, reject(KindUnsupportedFormat,
			"unrecognized image format in %q; accepted formats: png, jpg", path)
	}
	switch kind.Extension {
	case "png", "jpg":
	default:
		return ImageInfo{}, reject(KindUnsupportedFormat,
			"%s is not an accepted cover art format; accepted formats: png, jpg", kind.Extension)
	}

	file, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, reject(KindCorruptFile, "cannot open %q: %v", path, err)
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return ImageInfo{}, reject(KindCorruptFile, "cannot decode image header of %q: %v", path, err)
	}

	if cfg.Width != cfg.Height {
		return ImageInfo{}, reject(KindBadDimensions,
			"cover art must be square, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Width < c.minCoverArtPx {
		return ImageInfo{}, reject(KindBadDimensions,
			"cover art must be at least %dx%d, got %dx%d", c.minCoverArtPx, c.minCoverArtPx, cfg.Width, cfg.Height)
	}

	return ImageInfo{
		Format:    kind.Extension,
		MIMEType:  kind.MIME.Value,
		SizeBytes: size,
		Width:     cfg.Width,
		Height:    cfg.Height,
	}, nil
}
