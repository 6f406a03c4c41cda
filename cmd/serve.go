package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pierrepierremaker/recapv1/internal/audio"
	"github.com/pierrepierremaker/recapv1/internal/config"
	"github.com/pierrepierremaker/recapv1/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Expose the pipeline over HTTP: session creation, audio upload and
transcription, summarization, and report export.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var listenAddr string

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "listen address")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	srv := server.New(client, &audio.Normalizer{}, cfg)
	slog.Info("listening", "addr", listenAddr)
	return srv.Listen(listenAddr)
}
