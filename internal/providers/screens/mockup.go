package screens

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/DesignOS/backend/internal/session"
	"github.com/GriffinCanCode/DesignOS/backend/internal/types"
	"github.com/GriffinCanCode/DesignOS/backend/internal/vision"
)

// designInstructions steer the image model per mockup kind.
var designInstructions = map[string]string{
	"ui_mockup":        "Create a high-fidelity UI mockup with realistic interface elements, proper spacing, and modern design patterns.",
	"marketing_banner": "Create a compelling marketing banner with strong visual hierarchy, engaging copy placement, and eye-catching design.",
	"landing_page":     "Create a complete landing page design with hero section, clear CTAs, and conversion-focused layout.",
	"icon_set":         "Create a cohesive icon set with consistent style, appropriate sizing, and clear visual metaphors.",
	"user_flow":        "Create a user flow diagram showing the journey through screens with annotations and connections.",
	"dashboard":        "Create a data-rich dashboard design with charts, metrics, and well-organized information panels.",
}

var mockupAspectRatios = map[string]bool{
	"1:1":  true,
	"16:9": true,
	"9:16": true,
	"4:3":  true,
}

func (p *Provider) mockup(ctx context.Context, sess *session.Session, params map[string]interface{}) (*types.Result, error) {
	images, ok := p.backend.(vision.ImageBackend)
	if !ok {
		return failure("image generation not supported by this backend")
	}

	prompt := getString(params, "prompt")
	if prompt == "" {
		return failure("prompt is required")
	}
	designType := getString(params, "design_type")
	if designType == "" {
		designType = "ui_mockup"
	}
	instruction, ok := designInstructions[designType]
	if !ok {
		known := make([]string, 0, len(designInstructions))
		for k := range designInstructions {
			known = append(known, k)
		}
		return failure(fmt.Sprintf("unknown design_type %q (known: %v)", designType, known))
	}
	ratio := getString(params, "aspect_ratio")
	if ratio == "" {
		ratio = "1:1"
	}
	if !mockupAspectRatios[ratio] {
		return failure(fmt.Sprintf("unsupported aspect_ratio %q (use 1:1, 16:9, 9:16 or 4:3)", ratio))
	}

	full := fmt.Sprintf("%s\n\nDesign brief: %s", instruction, prompt)
	if dnaCtx, _ := dnaContext(sess); dnaCtx != "" {
		full += "\n\nMatch this established design system:\n" + dnaCtx
	}

	p.logger.Info("generating design mockup",
		zap.String("design_type", designType),
		zap.String("aspect_ratio", ratio))

	generated, err := images.GenerateImage(ctx, vision.ImageRequest{
		Prompt:      full,
		AspectRatio: ratio,
	})
	if err != nil {
		if errors.Is(err, vision.ErrImageUnsupported) {
			return failure("image generation not supported by this backend")
		}
		if vision.IsRateLimit(err) {
			return retryableFailure("rate limit reached, wait a moment and try again")
		}
		return failure(fmt.Sprintf("mockup generation failed: %v", err))
	}

	mockup := sess.AddMockup(prompt, designType, generated)
	return success(map[string]interface{}{
		"mockup_id":    mockup.ID,
		"design_type":  mockup.DesignType,
		"mime_type":    mockup.MIME,
		"image_base64": base64.StdEncoding.EncodeToString(mockup.Data),
		"notes":        mockup.Notes,
		"prompt":       mockup.Prompt,
	})
}

func (p *Provider) mockups(sess *session.Session) (*types.Result, error) {
	stored := sess.Mockups()
	items := make([]map[string]interface{}, 0, len(stored))
	for _, m := range stored {
		prompt := m.Prompt
		if len(prompt) > 100 {
			prompt = prompt[:100] + "..."
		}
		items = append(items, map[string]interface{}{
			"mockup_id":   m.ID,
			"design_type": m.DesignType,
			"prompt":      prompt,
			"created_at":  m.CreatedAt,
		})
	}
	return success(map[string]interface{}{
		"mockups": items,
		"count":   len(items),
	})
}

func (p *Provider) mockupGet(sess *session.Session, params map[string]interface{}) (*types.Result, error) {
	ref := strings.TrimSpace(getString(params, "mockup_id"))
	if ref == "" {
		return failure("mockup_id is required")
	}
	mockup, err := sess.Mockup(ref)
	if err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{
		"mockup_id":    mockup.ID,
		"design_type":  mockup.DesignType,
		"mime_type":    mockup.MIME,
		"image_base64": base64.StdEncoding.EncodeToString(mockup.Data),
		"notes":        mockup.Notes,
		"prompt":       mockup.Prompt,
		"created_at":   mockup.CreatedAt,
	})
}
