package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pierrepierremaker/recapv1/internal/api"
	"github.com/pierrepierremaker/recapv1/internal/audio"
)

// transcribeSequential submits segments one at a time, in order, blocking
// on each round trip. Order is what makes reassembly correct: part i of the
// result is always segment i's text.
func transcribeSequential(ctx context.Context, tr Transcriber, segments []audio.Segment, opts Options) ([]string, error) {
	total := len(segments)
	parts := make([]string, 0, total)

	for i, seg := range segments {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		slog.Info("transcribing segment",
			"segment", fmt.Sprintf("%d/%d", i+1, total),
			"start_ms", seg.StartMs, "end_ms", seg.EndMs)

		var text string
		err := api.WithRetry(ctx, opts.MaxRetries, func() error {
			var callErr error
			text, callErr = tr.Transcribe(ctx, seg.WAV(), segmentName(i), opts.Language)
			return callErr
		})
		if err != nil {
			return nil, &TranscriptionError{Index: i, Total: total, Err: err}
		}

		parts = append(parts, text)
		opts.progress(i+1, total)
	}

	return parts, nil
}

func segmentName(i int) string {
	return fmt.Sprintf("chunk_%03d.wav", i)
}
