package vision

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is used when a request does not name one.
const DefaultModel = "gemini-2.5-pro"

// DefaultImageModel is used for image generation requests.
const DefaultImageModel = "gemini-2.0-flash-preview-image-generation"

// Gemini implements Backend on the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// GeminiConfig configures the Gemini backend.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// NewGemini creates a Gemini backend.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: missing API key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Gemini{client: client, model: model}, nil
}

// Generate runs one multimodal call and returns the raw text response.
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	model := req.Model
	if model == "" {
		model = g.model
	}

	parts := make([]*genai.Part, 0, len(req.Images)+1)
	for _, img := range req.Images {
		mime := img.MIME
		if mime == "" {
			mime = "image/png"
		}
		parts = append(parts, genai.NewPartFromBytes(img.Data, mime))
	}
	parts = append(parts, genai.NewPartFromText(req.Instruction))

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = req.MaxOutputTokens
	}
	if req.JSONResponse {
		cfg.ResponseMIMEType = "application/json"
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}

// GenerateImage runs one image generation call and returns the first
// image in the response along with any accompanying model notes.
func (g *Gemini) GenerateImage(ctx context.Context, req ImageRequest) (*GeneratedImage, error) {
	model := req.Model
	if model == "" {
		model = DefaultImageModel
	}

	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}
	if req.AspectRatio != "" {
		cfg.ImageConfig = &genai.ImageConfig{AspectRatio: req.AspectRatio}
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(req.Prompt)}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: generate image: %w", err)
	}

	out := &GeneratedImage{}
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				out.Data = part.InlineData.Data
				out.MIME = part.InlineData.MIMEType
			} else if part.Text != "" {
				out.Notes += part.Text
			}
		}
	}
	if len(out.Data) == 0 {
		return nil, fmt.Errorf("gemini: no image in response")
	}
	if out.MIME == "" {
		out.MIME = "image/png"
	}
	return out, nil
}
