// Package worker drives transcription runs: validation, normalization,
// segmentation, and one or more service calls assembled into a single
// ordered transcript.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pierrepierremaker/recapv1/internal/audio"
	"github.com/pierrepierremaker/recapv1/internal/config"
	"github.com/pierrepierremaker/recapv1/internal/transcript"
)

// Transcriber is the external service surface the orchestrator drives.
// *api.Client implements it; tests substitute fakes.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename, language string) (string, error)
	TranscribeDiarized(ctx context.Context, audio []byte, filename string) ([]transcript.Segment, error)
}

// TranscriptionError reports a failed service call and which segment it
// was. Earlier segments' partial results are discarded with the run.
type TranscriptionError struct {
	Index int
	Total int
	Err   error
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("transcription failed on segment %d/%d: %v", e.Index+1, e.Total, e.Err)
}

func (e *TranscriptionError) Unwrap() error { return e.Err }

// ProgressFunc is called with (completed, total) as each segment finishes.
type ProgressFunc func(completed, total int)

// Options configures one transcription run.
type Options struct {
	Language     string
	ChunkMinutes int
	Normalize    audio.NormalizeMode
	Diarize      bool

	// Concurrent enables bounded concurrent dispatch with
	// reassembly-by-index. Off by default: the base design submits
	// segments strictly in sequence.
	Concurrent      bool
	MaxConcurrent   int
	MaxRetries      int
	RateLimitPerMin int

	Progress ProgressFunc
	Limits   config.Limits

	CostPerMinuteUSD float64
}

// Result is the artifact of a completed run.
type Result struct {
	// Text is the finished transcript handed to the summarizer.
	Text string
	// Segments holds the speaker-labelled segments (diarized mode only).
	Segments []transcript.Segment
	// Duration is the recording length, zero when it could not be probed.
	Duration time.Duration
	// EstimatedCostUSD is duration × per-minute rate.
	EstimatedCostUSD float64
	// SegmentCount is how many service requests the transcript took.
	SegmentCount int
}

func (o Options) progress(done, total int) {
	if o.Progress != nil {
		o.Progress(done, total)
	}
}

// Run executes one transcription run end to end. The blob is validated
// before any expensive work; validation failures abort with no partial
// state committed.
func Run(ctx context.Context, tr Transcriber, norm *audio.Normalizer, blob audio.Blob, opts Options) (*Result, error) {
	mode := audio.ModePlain
	if opts.Diarize {
		mode = audio.ModeDiarized
	}
	if err := audio.CheckUpload(blob, mode, opts.Limits); err != nil {
		return nil, err
	}

	if opts.Diarize {
		return runDiarized(ctx, tr, blob, opts)
	}
	return runPlain(ctx, tr, norm, blob, opts)
}

// runDiarized submits the whole upload once. The service does not support
// multi-part diarization reassembly, so there is no segmentation fallback;
// oversize uploads were already rejected by the gatekeeper.
func runDiarized(ctx context.Context, tr Transcriber, blob audio.Blob, opts Options) (*Result, error) {
	slog.Info("transcribing with diarization", "file", blob.Name, "size", blob.Size())

	segments, err := tr.TranscribeDiarized(ctx, blob.Data, blob.Name)
	if err != nil {
		return nil, &TranscriptionError{Index: 0, Total: 1, Err: err}
	}
	opts.progress(1, 1)

	res := &Result{
		Text:         transcript.FormatDiarized(segments),
		Segments:     segments,
		SegmentCount: 1,
	}
	res.fillEstimates(blob, opts)
	return res, nil
}

// runPlain picks between the cheap passthrough path (raw upload forwarded
// in one request) and local normalize-and-segment, then assembles the
// ordered transcript.
func runPlain(ctx context.Context, tr Transcriber, norm *audio.Normalizer, blob audio.Blob, opts Options) (*Result, error) {
	if usePassthrough(blob, opts) {
		slog.Info("forwarding upload as-is", "file", blob.Name, "size", blob.Size())

		text, err := tr.Transcribe(ctx, blob.Data, blob.Name, opts.Language)
		if err != nil {
			return nil, &TranscriptionError{Index: 0, Total: 1, Err: err}
		}
		opts.progress(1, 1)

		res := &Result{Text: text, SegmentCount: 1}
		res.fillEstimates(blob, opts)
		return res, nil
	}

	wave, err := norm.ToWaveform(ctx, blob)
	if err != nil {
		return nil, err
	}

	maxChunkMs := int64(opts.ChunkMinutes) * 60 * 1000
	segments := audio.Split(wave, maxChunkMs)
	if len(segments) == 0 {
		return nil, fmt.Errorf("decoded waveform is empty")
	}
	slog.Info("split into segments", "count", len(segments), "chunk_minutes", opts.ChunkMinutes)

	var parts []string
	if opts.Concurrent && len(segments) > 1 {
		parts, err = transcribeConcurrent(ctx, tr, segments, opts)
	} else {
		parts, err = transcribeSequential(ctx, tr, segments, opts)
	}
	if err != nil {
		return nil, err
	}

	minutes := wave.Duration().Minutes()
	return &Result{
		Text:             transcript.JoinParts(parts),
		Duration:         wave.Duration(),
		EstimatedCostUSD: audio.EstimateCost(minutes, opts.CostPerMinuteUSD),
		SegmentCount:     len(segments),
	}, nil
}

// usePassthrough decides the plain path: explicit passthrough always
// forwards; auto forwards when the container is natively accepted and fits
// in a single request; NormalizeAlways never forwards.
func usePassthrough(blob audio.Blob, opts Options) bool {
	switch opts.Normalize {
	case audio.NormalizePassthrough:
		return true
	case audio.NormalizeAlways:
		return false
	default:
		return !audio.NeedsConversion(blob.Ext()) && blob.Size() <= opts.Limits.MaxDiarizeBytes
	}
}

// fillEstimates sets duration and cost from an un-decoded blob, best
// effort: some containers cannot be measured without a transcode.
func (r *Result) fillEstimates(blob audio.Blob, opts Options) {
	d, err := audio.BlobDuration(blob)
	if err != nil {
		return
	}
	r.Duration = d
	r.EstimatedCostUSD = audio.EstimateCost(d.Minutes(), opts.CostPerMinuteUSD)
}
