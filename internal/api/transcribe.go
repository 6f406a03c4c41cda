package api

import (
	"bytes"
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Transcribe submits one audio buffer to the plain speech-to-text endpoint
// and returns the transcript text. The filename's extension tells the
// service which container it is receiving.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename, language string) (string, error) {
	req := openai.AudioRequest{
		Model:    c.cfg.WhisperModel,
		FilePath: filename,
		Reader:   bytes.NewReader(audio),
		Language: language,
	}

	resp, err := c.oa.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}
	return resp.Text, nil
}
