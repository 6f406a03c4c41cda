package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"time"

	"github.com/tcolgate/mp3"
)

// BlobDuration estimates the play time of an un-decoded upload. WAV headers
// are read directly; mp3 is measured by decoding frame headers. Other
// containers need a transcode or ffprobe.
func BlobDuration(blob Blob) (time.Duration, error) {
	switch blob.Ext() {
	case "wav":
		w, err := DecodeWAV(blob.Data)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrUnknownDuration, err)
		}
		return w.Duration(), nil
	case "mp3":
		return mp3Duration(blob.Data)
	}
	return 0, fmt.Errorf("%w: .%s", ErrUnknownDuration, blob.Ext())
}

// mp3Duration sums per-frame durations across the whole stream.
func mp3Duration(data []byte) (time.Duration, error) {
	d := mp3.NewDecoder(bytes.NewReader(data))
	var (
		frame   mp3.Frame
		skipped int
		total   time.Duration
	)
	for {
		if err := d.Decode(&frame, &skipped); err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("%w: %v", ErrUnknownDuration, err)
		}
		total += frame.Duration()
	}
	return total, nil
}

// probeOutput mirrors ffprobe JSON structure.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeFile uses ffprobe to get the duration of a media file on disk.
func ProbeFile(ctx context.Context, path string) (time.Duration, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return 0, fmt.Errorf("%w: ffprobe not found", ErrUnknownDuration)
	}

	cmd := exec.CommandContext(ctx,
		"ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("%w: ffprobe failed: %v", ErrUnknownDuration, err)
	}

	var probe probeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return 0, fmt.Errorf("%w: ffprobe JSON parse error: %v", ErrUnknownDuration, err)
	}
	sec, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnknownDuration, err)
	}
	return time.Duration(sec * float64(time.Second)), nil
}
