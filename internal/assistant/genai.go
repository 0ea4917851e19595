package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GenAIResponder answers with a Gemini model.
type GenAIResponder struct {
	client *genai.Client
	model  string
}

// NewGenAIResponder creates a Gemini-backed responder.
func NewGenAIResponder(ctx context.Context, apiKey, model string) (*GenAIResponder, error) {
	if apiKey == "" {
		return nil, errors.New("GenAI API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAIResponder{client: client, model: model}, nil
}

// Name implements Responder.
func (r *GenAIResponder) Name() string {
	return "genai:" + r.model
}

// Respond implements Responder.
func (r *GenAIResponder) Respond(ctx context.Context, history []Message, prompt string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, msg := range history {
		role := genai.Role(genai.RoleUser)
		if msg.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))

	resp, err := r.client.Models.GenerateContent(ctx, r.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("GenAI returned an empty reply")
	}
	return text, nil
}
