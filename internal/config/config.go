package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ErrUnconfigured is returned when no OpenAI API key is available.
var ErrUnconfigured = errors.New("no OpenAI API key configured (set OPENAI_API_KEY)")

// Limits holds upload validation ceilings.
type Limits struct {
	// MaxDiarizeBytes is the hard single-request ceiling of the diarized
	// transcription endpoint.
	MaxDiarizeBytes int64
	// MaxUploadBytes is the soft ceiling for the segmented plain path,
	// which re-encodes and chunks locally.
	MaxUploadBytes int64
}

// Config holds the full application configuration.
type Config struct {
	Limits

	Language            string
	ChunkMinutes        int
	WhisperModel        string
	DiarizeModel        string
	SummaryModel        string
	CostPerMinuteUSD    float64
	MaxConcurrentChunks int
	MaxRetries          int
	APIRateLimitPerMin  int
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Limits: Limits{
			MaxDiarizeBytes: 25 * 1024 * 1024,
			MaxUploadBytes:  200 * 1024 * 1024,
		},
		Language:            "fr",
		ChunkMinutes:        10,
		WhisperModel:        "whisper-1",
		DiarizeModel:        "gpt-4o-transcribe-diarize",
		SummaryModel:        "gpt-4o-mini",
		CostPerMinuteUSD:    0.006,
		MaxConcurrentChunks: 3,
		MaxRetries:          3,
		APIRateLimitPerMin:  30,
	}
}

// APIKey loads the OpenAI API key from the environment, reading a local
// .env file first when present.
func APIKey() (string, error) {
	_ = godotenv.Load()

	key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if key == "" {
		return "", ErrUnconfigured
	}
	return key, nil
}
