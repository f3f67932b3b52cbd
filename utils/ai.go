package utils

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

func NewAIClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	return genai.NewClient(ctx, option.WithAPIKey(apiKey))
}

type GenOptions struct {
	System      string
	Temperature float32
	MaxTokens   int32
	JSONOutput  bool
}

// GenerateText sends one prompt to the model and concatenates every text
// part of every candidate. An empty string with a nil error means the
// model produced no content.
func GenerateText(ctx context.Context, client *genai.Client, model, prompt string, opts GenOptions) (string, error) {
	m := client.GenerativeModel(model)
	m.SetTemperature(opts.Temperature)
	if opts.MaxTokens > 0 {
		m.SetMaxOutputTokens(opts.MaxTokens)
	}
	if opts.System != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(opts.System)}}
	}
	if opts.JSONOutput {
		m.ResponseMIMEType = "application/json"
	}
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if resp != nil {
		for _, c := range resp.Candidates {
			if c == nil || c.Content == nil {
				continue
			}
			for _, p := range c.Content.Parts {
				if t, ok := p.(genai.Text); ok {
					b.WriteString(string(t))
				}
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}
