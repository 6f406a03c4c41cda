package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/pierrepierremaker/recapv1/internal/api"
	"github.com/pierrepierremaker/recapv1/internal/audio"
)

// transcribeConcurrent dispatches segments with bounded parallelism and
// rate limiting. Results land in a slice indexed by segment, so the
// assembled transcript has exactly the same order as sequential dispatch
// regardless of completion order.
func transcribeConcurrent(ctx context.Context, tr Transcriber, segments []audio.Segment, opts Options) ([]string, error) {
	total := len(segments)
	maxConcurrent := opts.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	slog.Info("starting concurrent transcription",
		"segments", total,
		"max_concurrent", maxConcurrent,
		"rate_limit_rpm", opts.RateLimitPerMin)

	var limiter *rate.Limiter
	if opts.RateLimitPerMin > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opts.RateLimitPerMin)/60.0), 1)
	}

	var (
		mu        sync.Mutex
		completed int
	)
	parts := make([]string, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, seg := range segments {
		i, seg := i, seg
		g.Go(func() error {
			if limiter != nil {
				if err := limiter.Wait(gctx); err != nil {
					return fmt.Errorf("rate limiter: %w", err)
				}
			}

			var text string
			err := api.WithRetry(gctx, opts.MaxRetries, func() error {
				var callErr error
				text, callErr = tr.Transcribe(gctx, seg.WAV(), segmentName(i), opts.Language)
				return callErr
			})
			if err != nil {
				return &TranscriptionError{Index: i, Total: total, Err: err}
			}

			mu.Lock()
			parts[i] = text
			completed++
			done := completed
			mu.Unlock()

			slog.Info("segment completed", "segment", fmt.Sprintf("%d/%d", i+1, total))
			opts.progress(done, total)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}
