package audio

import (
	"errors"
	"testing"
	"time"
)

func TestBlobDuration_WAV(t *testing.T) {
	// Two seconds of mono 16 kHz PCM16.
	wav := EncodeWAV(Waveform{
		SampleRate: 16000,
		Channels:   1,
		Data:       make([]byte, 2*16000*2),
	})

	d, err := BlobDuration(Blob{Name: "clip.wav", Data: wav})
	if err != nil {
		t.Fatalf("BlobDuration: %v", err)
	}
	if d != 2*time.Second {
		t.Errorf("duration = %v, want 2s", d)
	}
}

func TestBlobDuration_UnknownContainer(t *testing.T) {
	_, err := BlobDuration(Blob{Name: "memo.amr", Data: []byte("opaque")})
	if !errors.Is(err, ErrUnknownDuration) {
		t.Errorf("got %v, want ErrUnknownDuration", err)
	}
}

func TestBlobDuration_CorruptWAV(t *testing.T) {
	_, err := BlobDuration(Blob{Name: "clip.wav", Data: []byte("RIFFxxxx")})
	if !errors.Is(err, ErrUnknownDuration) {
		t.Errorf("got %v, want ErrUnknownDuration", err)
	}
}
