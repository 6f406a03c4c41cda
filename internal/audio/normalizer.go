package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
)

// Target waveform parameters for the transcription service.
const (
	TargetSampleRate = 16000
	TargetChannels   = 1
)

// NormalizeMode selects how an upload is prepared for transcription.
type NormalizeMode int

const (
	// NormalizeAuto converts only when the container needs it.
	NormalizeAuto NormalizeMode = iota
	// NormalizeAlways re-encodes every upload to mono 16 kHz WAV.
	NormalizeAlways
	// NormalizePassthrough forwards the raw upload bytes unchanged. This
	// is the cheap path for containers the service accepts natively.
	NormalizePassthrough
)

// NeedsConversion reports whether the service is unlikely to accept the
// container as-is, forcing a local transcode.
func NeedsConversion(ext string) bool {
	return ext == "aac" || ext == "amr"
}

// Normalizer converts uploaded audio into a decoder-friendly mono 16 kHz
// waveform by invoking an external ffmpeg process.
type Normalizer struct {
	// FFmpegPath overrides the ffmpeg binary; empty means PATH lookup.
	FFmpegPath string
}

func (n *Normalizer) binary() string {
	if n.FFmpegPath != "" {
		return n.FFmpegPath
	}
	return "ffmpeg"
}

// Available returns true if the transcoder binary can be found.
func (n *Normalizer) Available() bool {
	_, err := exec.LookPath(n.binary())
	return err == nil
}

// Convert transcodes raw audio bytes of the given extension to mono
// 16 kHz WAV. Input and output go through transient files that are removed
// on every exit path, whatever the transcoder's exit status.
func (n *Normalizer) Convert(ctx context.Context, data []byte, ext string) ([]byte, error) {
	if !n.Available() {
		return nil, fmt.Errorf("%w: transcoder %q not found", ErrConversionFailed, n.binary())
	}

	in, err := os.CreateTemp("", "recap_in_*."+ext)
	if err != nil {
		return nil, fmt.Errorf("create temp input: %w", err)
	}
	inPath := in.Name()
	outPath := inPath + "_converted.wav"
	defer func() {
		os.Remove(inPath)
		os.Remove(outPath)
	}()

	if _, err := in.Write(data); err != nil {
		in.Close()
		return nil, fmt.Errorf("write temp input: %w", err)
	}
	if err := in.Close(); err != nil {
		return nil, fmt.Errorf("close temp input: %w", err)
	}

	slog.Debug("converting audio", "ext", ext, "size", len(data))

	cmd := exec.CommandContext(ctx, n.binary(),
		"-y",
		"-i", inPath,
		"-ac", strconv.Itoa(TargetChannels),
		"-ar", strconv.Itoa(TargetSampleRate),
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%w: %v\n%s", ErrConversionFailed, err, tail(out, 512))
	}

	wav, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("%w: no transcoder output: %v", ErrConversionFailed, err)
	}
	return wav, nil
}

// ToWaveform decodes an upload into a mono 16 kHz waveform, transcoding
// unless the blob is already WAV in the target layout.
func (n *Normalizer) ToWaveform(ctx context.Context, blob Blob) (Waveform, error) {
	if blob.Ext() == "wav" {
		if w, err := DecodeWAV(blob.Data); err == nil &&
			w.Channels == TargetChannels && w.SampleRate == TargetSampleRate {
			return w, nil
		}
	}

	wav, err := n.Convert(ctx, blob.Data, blob.Ext())
	if err != nil {
		return Waveform{}, err
	}
	w, err := DecodeWAV(wav)
	if err != nil {
		return Waveform{}, fmt.Errorf("%w: bad transcoder output: %v", ErrConversionFailed, err)
	}
	return w, nil
}

func tail(b []byte, n int) []byte {
	if len(b) > n {
		return b[len(b)-n:]
	}
	return b
}
