package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pierrepierremaker/recapv1/internal/api"
	"github.com/pierrepierremaker/recapv1/internal/audio"
	"github.com/pierrepierremaker/recapv1/internal/config"
	"github.com/pierrepierremaker/recapv1/internal/worker"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Transcribe a meeting recording to text",
	Long: `Transcribe a meeting recording using the OpenAI speech API. Long recordings
are normalized to mono 16 kHz WAV and split into bounded segments that are
submitted in order; with --diarize the whole file is submitted once and the
transcript carries speaker labels.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

var (
	language      string
	output        string
	diarize       bool
	chunkMinutes  int
	normalizeMode string
	concurrent    bool
	maxConcurrent int
	maxRetries    int
	rateLimit     int
)

func init() {
	defaults := config.Default()

	transcribeCmd.Flags().StringVarP(&language, "language", "l", defaults.Language, "language hint for transcription")
	transcribeCmd.Flags().StringVarP(&output, "output", "o", "", "output transcript path (default: <input>.txt)")
	transcribeCmd.Flags().BoolVar(&diarize, "diarize", false, "request speaker-diarized transcription (25 MiB max)")
	transcribeCmd.Flags().IntVar(&chunkMinutes, "chunk-minutes", defaults.ChunkMinutes, "max segment length in minutes (5-20, steps of 5)")
	transcribeCmd.Flags().StringVar(&normalizeMode, "normalize", "auto", "audio preparation: auto, always, passthrough")
	transcribeCmd.Flags().BoolVar(&concurrent, "concurrent", false, "submit segments concurrently (reassembled by index)")
	transcribeCmd.Flags().IntVarP(&maxConcurrent, "max-concurrent", "j", defaults.MaxConcurrentChunks, "max concurrent segment uploads")
	transcribeCmd.Flags().IntVar(&maxRetries, "max-retries", 0, "retries per segment request (0 = no retry)")
	transcribeCmd.Flags().IntVar(&rateLimit, "rate-limit", defaults.APIRateLimitPerMin, "API requests per minute in concurrent mode")

	rootCmd.AddCommand(transcribeCmd)
}

// loadBlob reads an input file into an upload blob.
func loadBlob(path string) (audio.Blob, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return audio.Blob{}, fmt.Errorf("resolve path: %w", err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return audio.Blob{}, fmt.Errorf("read input: %w", err)
	}
	return audio.Blob{Name: filepath.Base(absPath), Data: data}, nil
}

// newClient builds the service client from the environment credential.
func newClient(cfg *config.Config) (*api.Client, error) {
	key, err := config.APIKey()
	if err != nil {
		return nil, err
	}
	return api.NewClient(key, cfg)
}

func parseNormalizeMode(s string) (audio.NormalizeMode, error) {
	switch s {
	case "auto", "":
		return audio.NormalizeAuto, nil
	case "always":
		return audio.NormalizeAlways, nil
	case "passthrough":
		return audio.NormalizePassthrough, nil
	}
	return 0, fmt.Errorf("unknown normalize mode %q (want auto, always, or passthrough)", s)
}

func transcribeOptions(cfg *config.Config) (worker.Options, error) {
	if chunkMinutes < 5 || chunkMinutes > 20 || chunkMinutes%5 != 0 {
		return worker.Options{}, fmt.Errorf("chunk-minutes must be 5, 10, 15, or 20 (got %d)", chunkMinutes)
	}
	norm, err := parseNormalizeMode(normalizeMode)
	if err != nil {
		return worker.Options{}, err
	}

	return worker.Options{
		Language:         language,
		ChunkMinutes:     chunkMinutes,
		Normalize:        norm,
		Diarize:          diarize,
		Concurrent:       concurrent,
		MaxConcurrent:    maxConcurrent,
		MaxRetries:       maxRetries,
		RateLimitPerMin:  rateLimit,
		Limits:           cfg.Limits,
		CostPerMinuteUSD: cfg.CostPerMinuteUSD,
		Progress: func(done, total int) {
			slog.Info("progress", "segments", fmt.Sprintf("%d/%d", done, total))
		},
	}, nil
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	cfg.Language = language

	blob, err := loadBlob(args[0])
	if err != nil {
		return err
	}
	opts, err := transcribeOptions(cfg)
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Best-effort cost preview before any network work.
	if d, err := audio.ProbeFile(ctx, args[0]); err == nil {
		cost := audio.EstimateCost(d.Minutes(), cfg.CostPerMinuteUSD)
		slog.Info("input probed",
			"duration_min", fmt.Sprintf("%.1f", d.Minutes()),
			"estimated_cost_usd", fmt.Sprintf("%.4f", cost))
	}

	res, err := worker.Run(ctx, client, &audio.Normalizer{}, blob, opts)
	if err != nil {
		return err
	}

	outPath := output
	if outPath == "" {
		outPath = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".txt"
	}
	if err := os.WriteFile(outPath, []byte(res.Text+"\n"), 0o644); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	slog.Info("transcript saved", "path", outPath, "segments", res.SegmentCount)
	return nil
}
