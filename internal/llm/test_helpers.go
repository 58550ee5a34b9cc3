package llm

import (
	"context"

	"google.golang.org/genai"
)

// TestLLMClient is a ChatClient whose behavior is supplied by function fields.
type TestLLMClient struct {
	GenerateResponseFn func(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	ModelName          string
}

func (t *TestLLMClient) GenerateResponse(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if t.GenerateResponseFn != nil {
		return t.GenerateResponseFn(ctx, prompt, config)
	}
	return nil, nil
}

func (t *TestLLMClient) Model() string {
	if t.ModelName == "" {
		return "test-model"
	}
	return t.ModelName
}

// TextResponse builds a single-candidate response carrying text.
func TextResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []*genai.Part{{Text: text}},
				},
			},
		},
	}
}
