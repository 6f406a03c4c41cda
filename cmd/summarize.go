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
	"github.com/pierrepierremaker/recapv1/internal/config"
	"github.com/pierrepierremaker/recapv1/internal/export"
	"github.com/pierrepierremaker/recapv1/internal/transcript"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <transcript-file>",
	Short: "Turn a transcript into a structured meeting report",
	Long: `Generate a structured French meeting report from a plain-text transcript
and write it as markdown, DOCX, or PDF. Metadata flags are rendered as a
header block and given to the model as meeting context.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

var (
	summaryStyle string
	exportFormat string
	summaryOut   string

	metaTitle        string
	metaDate         string
	metaLocation     string
	metaParticipants string
)

func init() {
	summarizeCmd.Flags().StringVarP(&summaryStyle, "style", "s", string(api.StyleProfessional), "report style: professional, bullets, detailed")
	summarizeCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "export format: md, docx, pdf")
	summarizeCmd.Flags().StringVarP(&summaryOut, "output", "o", "", "output path (default: compte_rendu.<format>)")
	summarizeCmd.Flags().StringVar(&metaTitle, "title", "", "meeting title")
	summarizeCmd.Flags().StringVar(&metaDate, "date", "", "meeting date")
	summarizeCmd.Flags().StringVar(&metaLocation, "location", "", "meeting location")
	summarizeCmd.Flags().StringVar(&metaParticipants, "participants", "", "meeting participants")

	rootCmd.AddCommand(summarizeCmd)
}

func meetingInfoFromFlags() transcript.MeetingInfo {
	return transcript.MeetingInfo{
		Title:        metaTitle,
		Date:         metaDate,
		Location:     metaLocation,
		Participants: metaParticipants,
	}
}

func runSummarize(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return fmt.Errorf("transcript %s is empty", args[0])
	}

	cfg := config.Default()
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	meta := meetingInfoFromFlags()
	summary, err := client.Summarize(ctx, text, api.ParseStyle(summaryStyle), meta)
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

	slog.Info("report saved", "path", filepath.Clean(outPath), "format", exportFormat)
	return nil
}
