// Package server exposes the pipeline over HTTP: upload a recording,
// transcribe it, generate a report, download it. All state is
// per-session and in memory.
package server

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/pierrepierremaker/recapv1/internal/api"
	"github.com/pierrepierremaker/recapv1/internal/audio"
	"github.com/pierrepierremaker/recapv1/internal/config"
	"github.com/pierrepierremaker/recapv1/internal/transcript"
	"github.com/pierrepierremaker/recapv1/internal/worker"
)

// Service is the external API surface the server depends on.
type Service interface {
	worker.Transcriber
	Summarize(ctx context.Context, transcriptText string, style api.SummaryStyle, meta transcript.MeetingInfo) (string, error)
}

// Server wires the HTTP routes to the pipeline.
type Server struct {
	app   *fiber.App
	store *Store
	svc   Service
	norm  *audio.Normalizer
	cfg   *config.Config
}

// New builds the fiber app and registers routes.
func New(svc Service, norm *audio.Normalizer, cfg *config.Config) *Server {
	s := &Server{
		store: NewStore(),
		svc:   svc,
		norm:  norm,
		cfg:   cfg,
	}
	s.app = fiber.New(fiber.Config{
		// Leave room for multipart overhead on top of the upload ceiling.
		BodyLimit: int(cfg.MaxUploadBytes) + 1<<20,
	})

	s.app.Post("/api/sessions", s.handleCreateSession)
	s.app.Post("/api/sessions/:id/transcribe", s.handleTranscribe)
	s.app.Get("/api/sessions/:id/transcript", s.handleGetTranscript)
	s.app.Post("/api/sessions/:id/summary", s.handleSummarize)
	s.app.Get("/api/sessions/:id/export", s.handleExport)

	return s
}

// Listen blocks serving HTTP on the given address.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
