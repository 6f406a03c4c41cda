package audio

import (
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// Validation and conversion failures surfaced by the upload pipeline.
var (
	ErrFileTooLarge           = errors.New("file exceeds the upload size limit")
	ErrUnsupportedFormat      = errors.New("unsupported audio format")
	ErrConversionFailed       = errors.New("audio conversion failed")
	ErrTooLargeForDiarization = errors.New("file exceeds the 25 MiB diarization limit")
	ErrUnknownDuration        = errors.New("cannot determine audio duration")
)

// Blob is an uploaded audio file: raw bytes plus the declared filename.
// It is never mutated after creation.
type Blob struct {
	Name string
	Data []byte
}

// Size returns the byte length of the blob.
func (b Blob) Size() int64 { return int64(len(b.Data)) }

// Ext returns the lowercased filename extension without the dot.
func (b Blob) Ext() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(b.Name)), ".")
}

// Waveform is a decoded PCM16 audio buffer with a fixed sample rate.
// Segment extraction produces sub-slices; the buffer itself is never
// modified in place.
type Waveform struct {
	SampleRate int
	Channels   int
	Data       []byte // interleaved little-endian PCM16
}

// blockAlign is the byte size of one frame across all channels.
func (w Waveform) blockAlign() int { return 2 * w.Channels }

// Frames returns the number of sample frames in the waveform.
func (w Waveform) Frames() int {
	if w.Channels == 0 {
		return 0
	}
	return len(w.Data) / w.blockAlign()
}

// Duration returns the total play time of the waveform.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate == 0 {
		return 0
	}
	return time.Duration(w.Frames()) * time.Second / time.Duration(w.SampleRate)
}

// Segment is a contiguous sub-range of a waveform, bounded by
// [StartMs, EndMs). Segments are ordered; reassembly relies on Index.
type Segment struct {
	Index   int
	StartMs int64
	EndMs   int64
	Audio   Waveform
}

// WAV encodes the segment as a standalone WAV buffer ready for upload.
func (s Segment) WAV() []byte { return EncodeWAV(s.Audio) }
