package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pierrepierremaker/recapv1/internal/transcript"
)

// ErrSummarizationFailed wraps any failure of the report-generation call.
var ErrSummarizationFailed = errors.New("summarization failed")

// SummaryStyle selects one of the recognized report presets. Each maps to a
// distinct instruction string; the request shape is identical.
type SummaryStyle string

const (
	StyleProfessional SummaryStyle = "professional"
	StyleBullets      SummaryStyle = "bullets"
	StyleDetailed     SummaryStyle = "detailed"
)

// ParseStyle maps a user-supplied style name to a preset, defaulting to the
// professional/neutral style.
func ParseStyle(s string) SummaryStyle {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bullets", "bullet", "puces":
		return StyleBullets
	case "detailed", "minutes", "proces-verbal":
		return StyleDetailed
	default:
		return StyleProfessional
	}
}

func (s SummaryStyle) instruction() string {
	switch s {
	case StyleBullets:
		return "Fais un résumé très synthétique sous forme de listes à puces, en français, " +
			"en mettant surtout en avant les idées clés et les chiffres importants."
	case StyleDetailed:
		return "Rédige un compte rendu détaillé, proche d'un procès-verbal, en français, " +
			"en respectant fidèlement le contenu sans inventer de faits."
	default:
		return "Rédige un compte rendu professionnel, neutre, bien structuré, en français, " +
			"avec des titres et sous-titres clairs."
	}
}

const summarySystemMsg = "Tu es un assistant chargé de rédiger des comptes rendus de réunions à partir de transcriptions. " +
	"Tu dois être clair, structuré, fidèle au contenu, et ne pas inventer de décisions ou de chiffres. " +
	"Lorsque la transcription contient des étiquettes de locuteur comme 'Speaker A' ou 'Speaker B', " +
	"explique dans le compte rendu qui semble être qui (ex : intervieweur, invité, expert...), " +
	"sans inventer d'identité réelle."

// Summarize turns a finished transcript into a structured meeting report
// using the selected style preset. Meeting metadata, when present, is
// offered to the model as context.
func (c *Client) Summarize(ctx context.Context, transcriptText string, style SummaryStyle, meta transcript.MeetingInfo) (string, error) {
	var sb strings.Builder
	sb.WriteString(style.instruction())
	sb.WriteString("\n\n")
	if !meta.Empty() {
		sb.WriteString("Informations sur la réunion :\n")
		for _, line := range meta.HeaderLines() {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("Voici la transcription de l'échange (avec éventuellement des labels de locuteurs) :\n\n")
	sb.WriteString(transcriptText)
	sb.WriteString("\n\nProduit maintenant le compte rendu demandé.")

	resp, err := c.oa.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.SummaryModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemMsg},
			{Role: openai.ChatMessageRoleUser, Content: sb.String()},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSummarizationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrSummarizationFailed)
	}
	return resp.Choices[0].Message.Content, nil
}
