// Package api wraps the OpenAI speech and language endpoints used by the
// pipeline: plain transcription, diarized transcription, and meeting-report
// generation.
package api

import (
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pierrepierremaker/recapv1/internal/config"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client is the single externally-configured service client. It is built
// once from the environment credential and injected into every component
// that talks to the service.
type Client struct {
	cfg     *config.Config
	oa      *openai.Client
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// NewClient builds a Client from an API key. An empty key maps to
// config.ErrUnconfigured rather than a nil client handed around.
func NewClient(apiKey string, cfg *config.Config) (*Client, error) {
	if apiKey == "" {
		return nil, config.ErrUnconfigured
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &Client{
		cfg:     cfg,
		oa:      openai.NewClient(apiKey),
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{},
	}, nil
}
