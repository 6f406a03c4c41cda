package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pierrepierremaker/recapv1/internal/api"
	"github.com/pierrepierremaker/recapv1/internal/audio"
	"github.com/pierrepierremaker/recapv1/internal/config"
	"github.com/pierrepierremaker/recapv1/internal/export"
	"github.com/pierrepierremaker/recapv1/internal/worker"
)

var reportCmd = &cobra.Command{
	Use:   "report <audio-file>",
	Short: "Transcribe a recording and produce a meeting report in one run",
	Long: `Run the full pipeline: transcribe the recording, summarize the transcript
into a structured French meeting report, and export it. The intermediate
transcript is kept next to the report.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

var keepTranscript bool

func init() {
	reportCmd.Flags().StringVarP(&language, "language", "l", config.Default().Language, "language hint for transcription")
	reportCmd.Flags().BoolVar(&diarize, "diarize", false, "request speaker-diarized transcription (25 MiB max)")
	reportCmd.Flags().IntVar(&chunkMinutes, "chunk-minutes", config.Default().ChunkMinutes, "max segment length in minutes (5-20, steps of 5)")
	reportCmd.Flags().StringVar(&normalizeMode, "normalize", "auto", "audio preparation: auto, always, passthrough")
	reportCmd.Flags().StringVarP(&summaryStyle, "style", "s", string(api.StyleProfessional), "report style: professional, bullets, detailed")
	reportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "export format: md, docx, pdf")
	reportCmd.Flags().StringVarP(&summaryOut, "output", "o", "", "report path (default: compte_rendu.<format>)")
	reportCmd.Flags().BoolVar(&keepTranscript, "keep-transcript", true, "also write the raw transcript next to the report")
	reportCmd.Flags().StringVar(&metaTitle, "title", "", "meeting title")
	reportCmd.Flags().StringVar(&metaDate, "date", "", "meeting date")
	reportCmd.Flags().StringVar(&metaLocation, "location", "", "meeting location")
	reportCmd.Flags().StringVar(&metaParticipants, "participants", "", "meeting participants")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
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

	res, err := worker.Run(ctx, client, &audio.Normalizer{}, blob, opts)
	if err != nil {
		return err
	}
	slog.Info("transcription done",
		"segments", res.SegmentCount,
		"duration_min", fmt.Sprintf("%.1f", res.Duration.Minutes()),
		"estimated_cost_usd", fmt.Sprintf("%.4f", res.EstimatedCostUSD))

	meta := meetingInfoFromFlags()
	summary, err := client.Summarize(ctx, res.Text, api.ParseStyle(summaryStyle), meta)
	if err != nil {
		return err
	}

	body, _, err := export.Render(exportFormat, summary, meta)
	if err != nil {
		return err
	}

	outPath := summaryOut
	if outPath == "" {
		outPath = "compte_rendu." + exportFormat
	}
	if err := os.WriteFile(outPath, body, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if keepTranscript {
		txtPath := strings.TrimSuffix(outPath, "."+exportFormat) + ".txt"
		if err := os.WriteFile(txtPath, []byte(res.Text+"\n"), 0o644); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
	}

	slog.Info("report saved", "path", outPath, "format", exportFormat)
	return nil
}
