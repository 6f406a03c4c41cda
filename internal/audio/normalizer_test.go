package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// leftoverTempFiles counts transient conversion files in the temp directory.
func leftoverTempFiles(t *testing.T) int {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "recap_in_*"))
	if err != nil {
		t.Fatalf("glob temp dir: %v", err)
	}
	return len(matches)
}

func TestNormalizer_ConvertFailureCleansUp(t *testing.T) {
	before := leftoverTempFiles(t)

	// /bin/false accepts any arguments and exits non-zero.
	n := &Normalizer{FFmpegPath: "/bin/false"}
	_, err := n.Convert(context.Background(), []byte("not audio"), "amr")
	if !errors.Is(err, ErrConversionFailed) {
		t.Fatalf("got %v, want ErrConversionFailed", err)
	}

	if after := leftoverTempFiles(t); after != before {
		t.Errorf("transient files left on disk after failed conversion: %d -> %d", before, after)
	}
}

func TestNormalizer_TranscoderMissing(t *testing.T) {
	n := &Normalizer{FFmpegPath: "/nonexistent/transcoder"}
	if n.Available() {
		t.Fatal("expected Available() == false")
	}
	_, err := n.Convert(context.Background(), []byte("x"), "aac")
	if !errors.Is(err, ErrConversionFailed) {
		t.Errorf("got %v, want ErrConversionFailed", err)
	}
}

func TestNormalizer_ConvertWithStubTranscoder(t *testing.T) {
	dir := t.TempDir()

	// The stub ignores its input and copies a pre-built WAV to the output
	// path, which ffmpeg-style invocations pass as the last argument.
	want := EncodeWAV(Waveform{
		SampleRate: TargetSampleRate,
		Channels:   TargetChannels,
		Data:       bytes.Repeat([]byte{0x10, 0x20}, 800),
	})
	wavPath := filepath.Join(dir, "canned.wav")
	if err := os.WriteFile(wavPath, want, 0o644); err != nil {
		t.Fatal(err)
	}

	stub := filepath.Join(dir, "transcoder")
	script := fmt.Sprintf("#!/bin/sh\nfor a; do last=$a; done\ncp %q \"$last\"\n", wavPath)
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	before := leftoverTempFiles(t)

	n := &Normalizer{FFmpegPath: stub}
	got, err := n.Convert(context.Background(), []byte("raw amr bytes"), "amr")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Error("converted bytes differ from transcoder output")
	}
	if after := leftoverTempFiles(t); after != before {
		t.Errorf("transient files left on disk after successful conversion: %d -> %d", before, after)
	}

	w, err := n.ToWaveform(context.Background(), Blob{Name: "memo.amr", Data: []byte("raw amr bytes")})
	if err != nil {
		t.Fatalf("ToWaveform: %v", err)
	}
	if w.SampleRate != TargetSampleRate || w.Channels != TargetChannels {
		t.Errorf("waveform layout = %d Hz / %d ch, want %d Hz / %d ch",
			w.SampleRate, w.Channels, TargetSampleRate, TargetChannels)
	}
}

func TestNormalizer_WAVInTargetLayoutSkipsTranscode(t *testing.T) {
	wav := EncodeWAV(Waveform{
		SampleRate: TargetSampleRate,
		Channels:   TargetChannels,
		Data:       make([]byte, 640),
	})

	// A broken transcoder proves the direct parse path never invokes it.
	n := &Normalizer{FFmpegPath: "/bin/false"}
	w, err := n.ToWaveform(context.Background(), Blob{Name: "ready.wav", Data: wav})
	if err != nil {
		t.Fatalf("ToWaveform: %v", err)
	}
	if w.Frames() != 320 {
		t.Errorf("Frames = %d, want 320", w.Frames())
	}
}

func TestNeedsConversion(t *testing.T) {
	for ext, want := range map[string]bool{
		"aac": true, "amr": true,
		"mp3": false, "wav": false, "m4a": false,
	} {
		if got := NeedsConversion(ext); got != want {
			t.Errorf("NeedsConversion(%q) = %v, want %v", ext, got, want)
		}
	}
}
