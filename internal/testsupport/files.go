package testsupport

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := int64(chunkSize)
		if remaining < toWrite {
			toWrite = remaining
		}
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// WriteWAV writes a minimal PCM WAV file with the requested duration. The
// stream is 8 kHz mono 8-bit, so fixtures stay small.
func WriteWAV(t testing.TB, path string, durationSeconds float64) {
	t.Helper()

	const (
		sampleRate = 8000
		byteRate   = sampleRate // mono, 8 bits per sample
	)
	dataSize := uint32(durationSeconds * byteRate)

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // block align
	binary.Write(&buf, binary.LittleEndian, uint16(8)) // bits per sample

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, dataSize)
	buf.Write(make([]byte, dataSize))

	writeBytes(t, path, buf.Bytes())
}

// WriteFLAC writes a FLAC header whose STREAMINFO block declares the
// requested duration at 44.1 kHz. No audio frames follow the header.
func WriteFLAC(t testing.TB, path string, durationSeconds float64) {
	t.Helper()

	const sampleRate = 44100
	totalSamples := uint64(durationSeconds * sampleRate)

	streamInfo := make([]byte, 34)
	binary.BigEndian.PutUint16(streamInfo[0:2], 4096) // min block size
	binary.BigEndian.PutUint16(streamInfo[2:4], 4096) // max block size
	// Sample rate occupies 20 bits starting at byte 10.
	streamInfo[10] = byte(sampleRate >> 12)
	streamInfo[11] = byte((sampleRate >> 4) & 0xFF)
	streamInfo[12] = byte(sampleRate&0x0F) << 4
	streamInfo[13] = byte((totalSamples >> 32) & 0x0F)
	streamInfo[14] = byte(totalSamples >> 24)
	streamInfo[15] = byte(totalSamples >> 16)
	streamInfo[16] = byte(totalSamples >> 8)
	streamInfo[17] = byte(totalSamples)

	var buf bytes.Buffer
	buf.WriteString("fLaC")
	buf.Write([]byte{0x80, 0, 0, 34}) // last metadata block, type STREAMINFO
	buf.Write(streamInfo)

	writeBytes(t, path, buf.Bytes())
}

// WritePNG writes a solid-color PNG with the given dimensions.
func WritePNG(t testing.TB, path string, width, height int) {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(width, height)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	writeBytes(t, path, buf.Bytes())
}

// WriteJPEG writes a solid-color JPEG with the given dimensions.
func WriteJPEG(t testing.TB, path string, width, height int) {
	t.Helper()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(width, height), &jpeg.Options{Quality: 60}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	writeBytes(t, path, buf.Bytes())
}

func testImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fill := color.RGBA{R: 0x20, G: 0x60, B: 0xA0, A: 0xFF}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, fill)
		}
	}
	return img
}

func writeBytes(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
