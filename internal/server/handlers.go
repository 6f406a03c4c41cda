package server

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/pierrepierremaker/recapv1/internal/api"
	"github.com/pierrepierremaker/recapv1/internal/audio"
	"github.com/pierrepierremaker/recapv1/internal/config"
	"github.com/pierrepierremaker/recapv1/internal/export"
	"github.com/pierrepierremaker/recapv1/internal/transcript"
	"github.com/pierrepierremaker/recapv1/internal/worker"
)

func (s *Server) handleCreateSession(c *fiber.Ctx) error {
	sess := s.store.Create()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": sess.ID})
}

func (s *Server) session(c *fiber.Ctx) (*Session, error) {
	sess, ok := s.store.Get(c.Params("id"))
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "unknown session")
	}
	return sess, nil
}

// errorStatus maps pipeline failures to HTTP statuses. Every failure keeps
// its stage and underlying message for display to the end user.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, audio.ErrUnsupportedFormat):
		return fiber.StatusUnsupportedMediaType
	case errors.Is(err, audio.ErrFileTooLarge),
		errors.Is(err, audio.ErrTooLargeForDiarization):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, config.ErrUnconfigured):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadGateway
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
}

func (s *Server) handleTranscribe(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing file upload")
	}
	f, err := fh.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("open upload: %v", err))
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("read upload: %v", err))
	}

	opts := s.runOptions(c)
	blob := audio.Blob{Name: fh.Filename, Data: data}

	res, err := worker.Run(c.Context(), s.svc, s.norm, blob, opts)
	if err != nil {
		return fail(c, err)
	}

	// Replace the transcript wholesale; a stale summary would describe the
	// previous recording.
	sess.SetTranscript(res.Text)

	return c.JSON(fiber.Map{
		"transcript":         res.Text,
		"segments":           res.SegmentCount,
		"duration_minutes":   res.Duration.Minutes(),
		"estimated_cost_usd": res.EstimatedCostUSD,
	})
}

// runOptions builds worker options from request form values, falling back
// to configured defaults.
func (s *Server) runOptions(c *fiber.Ctx) worker.Options {
	opts := worker.Options{
		Language:         s.cfg.Language,
		ChunkMinutes:     s.cfg.ChunkMinutes,
		MaxConcurrent:    s.cfg.MaxConcurrentChunks,
		MaxRetries:       s.cfg.MaxRetries,
		RateLimitPerMin:  s.cfg.APIRateLimitPerMin,
		Limits:           s.cfg.Limits,
		CostPerMinuteUSD: s.cfg.CostPerMinuteUSD,
	}

	if v := c.FormValue("language"); v != "" {
		opts.Language = v
	}
	if v := c.FormValue("chunk_minutes"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 5 && n <= 20 {
			opts.ChunkMinutes = n
		}
	}
	opts.Diarize = c.FormValue("diarize") == "true"
	opts.Concurrent = c.FormValue("concurrent") == "true"
	switch c.FormValue("normalize") {
	case "always":
		opts.Normalize = audio.NormalizeAlways
	case "passthrough":
		opts.Normalize = audio.NormalizePassthrough
	default:
		opts.Normalize = audio.NormalizeAuto
	}
	return opts
}

func (s *Server) handleGetTranscript(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	text := sess.Transcript()
	if text == "" {
		return fiber.NewError(fiber.StatusConflict, "no transcript yet: transcribe a recording first")
	}
	return c.JSON(fiber.Map{"transcript": text})
}

type summaryRequest struct {
	Style        string `json:"style"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	Location     string `json:"location"`
	Participants string `json:"participants"`
}

func (s *Server) handleSummarize(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	text := sess.Transcript()
	if text == "" {
		return fiber.NewError(fiber.StatusConflict, "no transcript yet: transcribe a recording first")
	}

	var req summaryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("bad request body: %v", err))
	}
	meta := transcript.MeetingInfo{
		Title:        req.Title,
		Date:         req.Date,
		Location:     req.Location,
		Participants: req.Participants,
	}

	summary, err := s.svc.Summarize(c.Context(), text, api.ParseStyle(req.Style), meta)
	if err != nil {
		return fail(c, err)
	}
	sess.SetSummary(summary, meta)

	return c.JSON(fiber.Map{"summary": summary})
}

func (s *Server) handleExport(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return err
	}
	summary, meta := sess.Summary()
	if summary == "" {
		return fiber.NewError(fiber.StatusConflict, "no report yet: generate a summary first")
	}

	format := c.Query("format", "md")
	body, contentType, err := export.Render(format, summary, meta)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="compte_rendu.%s"`, format))
	return c.Send(body)
}
