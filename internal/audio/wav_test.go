package audio

import (
	"bytes"
	"testing"
)

func TestWAV_RoundTrip(t *testing.T) {
	src := Waveform{
		SampleRate: 16000,
		Channels:   1,
		Data:       bytes.Repeat([]byte{0x01, 0x02}, 16000), // one second
	}

	decoded, err := DecodeWAV(EncodeWAV(src))
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}
	if decoded.SampleRate != src.SampleRate {
		t.Errorf("SampleRate = %d, want %d", decoded.SampleRate, src.SampleRate)
	}
	if decoded.Channels != src.Channels {
		t.Errorf("Channels = %d, want %d", decoded.Channels, src.Channels)
	}
	if !bytes.Equal(decoded.Data, src.Data) {
		t.Error("decoded data differs from source")
	}
	if decoded.Frames() != 16000 {
		t.Errorf("Frames = %d, want 16000", decoded.Frames())
	}
}

func TestDecodeWAV_RejectsGarbage(t *testing.T) {
	if _, err := DecodeWAV([]byte("definitely not audio")); err == nil {
		t.Error("expected error for non-RIFF input")
	}
	if _, err := DecodeWAV(nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestDecodeWAV_RejectsNonPCM(t *testing.T) {
	// Build a WAV and rewrite its format code to 3 (IEEE float).
	b := EncodeWAV(Waveform{SampleRate: 16000, Channels: 1, Data: make([]byte, 32)})
	b[20] = 3
	if _, err := DecodeWAV(b); err == nil {
		t.Error("expected error for non-PCM format code")
	}
}

func TestWaveform_Duration(t *testing.T) {
	w := Waveform{SampleRate: 16000, Channels: 1, Data: make([]byte, 2*16000*3)}
	if got := w.Duration().Seconds(); got != 3 {
		t.Errorf("Duration = %vs, want 3s", got)
	}
}
