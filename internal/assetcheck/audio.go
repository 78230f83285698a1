package assetcheck

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	mp4 "github.com/abema/go-mp4"
	"github.com/dhowden/tag"
	"github.com/h2non/filetype"
)

// CheckAudio validates a candidate audio file and reports its duration and any
// embedded title metadata. The result depends only on the file's bytes.
func (c *Checker) CheckAudio(path string) (AudioInfo, error) {
	size, verr := statCandidate(path)
	if verr != nil {
		return AudioInfo{}, verr
	}
	if c.maxAudioBytes > 0 && size > c.maxAudioBytes {
		return AudioInfo{}, reject(KindTooLarge,
			"audio file is %d MiB, ceiling is %d MiB", size/(1024*1024), c.maxAudioBytes/(1024*1024))
	}

	head, verr := sniffHeader(path)
	if verr != nil {
		return AudioInfo{}, verr
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return AudioInfo{}, reject(KindUnsupportedFormat,
			"unrecognized audio container in %q; accepted formats: wav, flac, m4a", path)
	}

	info := AudioInfo{Format: kind.Extension, MIMEType: kind.MIME.Value, SizeBytes: size}

	file, err := os.Open(path)
	if err != nil {
		return AudioInfo{}, reject(KindCorruptFile, "cannot open %q: %v", path, err)
	}
	defer file.Close()

	var duration float64
	var durErr error
	switch kind.Extension {
	case "wav":
		duration, durErr = wavDuration(file)
	case "flac":
		duration, durErr = flacDuration(file)
	case "m4a", "mp4":
		duration, durErr = mp4Duration(file)
	default:
		return AudioInfo{}, reject(KindUnsupportedFormat,
			"%s is not an accepted master format; accepted formats: wav, flac, m4a", kind.Extension)
	}
	if durErr != nil {
		return AudioInfo{}, reject(KindCorruptFile, "cannot read duration from %q: %v", path, durErr)
	}
	if duration <= 0 {
		return AudioInfo{}, reject(KindCorruptFile, "%q reports a zero-length audio stream", path)
	}
	info.DurationSeconds = duration

	// Embedded tags are a convenience, never a gate.
	if _, err := file.Seek(0, io.SeekStart); err == nil {
		if meta, err := tag.ReadFrom(file); err == nil {
			info.EmbeddedTitle = meta.Title()
			info.EmbeddedArtist = meta.Artist()
		}
	}

	return info, nil
}

// wavDuration walks RIFF chunks and divides the data chunk length by the
// byte rate declared in the fmt chunk.
func wavDuration(r io.ReadSeeker) (float64, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	header := make([]byte, 12)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, fmt.Errorf("riff header: %w", err)
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return 0, fmt.Errorf("not a RIFF/WAVE stream")
	}

	var byteRate uint32
	var dataSize uint32
	chunkHeader := make([]byte, 8)
	for {
		if _, err := io.ReadFull(r, chunkHeader); err != nil {
			break
		}
		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return 0, fmt.Errorf("fmt chunk too small: %d bytes", chunkSize)
			}
			fmtChunk := make([]byte, 16)
			if _, err := io.ReadFull(r, fmtChunk); err != nil {
				return 0, fmt.Errorf("fmt chunk: %w", err)
			}
			byteRate = binary.LittleEndian.Uint32(fmtChunk[8:12])
			if skip := int64(chunkSize) - 16; skip > 0 {
				if _, err := r.Seek(skip, io.SeekCurrent); err != nil {
					return 0, err
				}
			}
		case "data":
			dataSize = chunkSize
			if _, err := r.Seek(int64(chunkSize), io.SeekCurrent); err != nil {
				return 0, err
			}
		default:
			if _, err := r.Seek(int64(chunkSize), io.SeekCurrent); err != nil {
				return 0, err
			}
		}
		// Chunks are word aligned.
		if chunkSize%2 == 1 {
			if _, err := r.Seek(1, io.SeekCurrent); err != nil {
				return 0, err
			}
		}
		if byteRate > 0 && dataSize > 0 {
			break
		}
	}

	if byteRate == 0 {
		return 0, fmt.Errorf("missing or invalid fmt chunk")
	}
	if dataSize == 0 {
		return 0, fmt.Errorf("missing data chunk")
	}
	return float64(dataSize) / float64(byteRate), nil
}

// flacDuration reads sample rate and total samples from the mandatory
// STREAMINFO block.
func flacDuration(r io.ReadSeeker) (float64, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}

	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil {
		return 0, fmt.Errorf("flac magic: %w", err)
	}
	if string(magic) != "fLaC" {
		return 0, fmt.Errorf("not a FLAC stream")
	}

	blockHeader := make([]byte, 4)
	if _, err := io.ReadFull(r, blockHeader); err != nil {
		return 0, fmt.Errorf("metadata block header: %w", err)
	}
	if blockHeader[0]&0x7F != 0 {
		return 0, fmt.Errorf("first metadata block is not STREAMINFO")
	}
	blockLen := int(blockHeader[1])<<16 | int(blockHeader[2])<<8 | int(blockHeader[3])
	if blockLen < 34 {
		return 0, fmt.Errorf("STREAMINFO block too small: %d bytes", blockLen)
	}

	streamInfo := make([]byte, 34)
	if _, err := io.ReadFull(r, streamInfo); err != nil {
		return 0, fmt.Errorf("STREAMINFO block: %w", err)
	}

	sampleRate := uint32(streamInfo[10])<<12 | uint32(streamInfo[11])<<4 | uint32(streamInfo[12])>>4
	totalSamples := uint64(streamInfo[13]&0x0F)<<32 |
		uint64(streamInfo[14])<<24 |
		uint64(streamInfo[15])<<16 |
		uint64(streamInfo[16])<<8 |
		uint64(streamInfo[17])
	if sampleRate == 0 {
		return 0, fmt.Errorf("STREAMINFO declares zero sample rate")
	}
	if totalSamples == 0 {
		return 0, fmt.Errorf("STREAMINFO declares zero total samples")
	}
	return float64(totalSamples) / float64(sampleRate), nil
}

// mp4Duration probes the moov/mvhd box without decoding any media data.
func mp4Duration(r io.ReadSeeker) (float64, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	info, err := mp4.Probe(r)
	if err != nil {
		return 0, fmt.Errorf("mp4 probe: %w", err)
	}
	if info.Timescale == 0 {
		return 0, fmt.Errorf("mp4 declares zero timescale")
	}
	return float64(info.Duration) / float64(info.Timescale), nil
}
