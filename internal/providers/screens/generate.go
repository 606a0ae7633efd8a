package screens

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	core "github.com/GriffinCanCode/DesignOS/backend/internal/dna"
	"github.com/GriffinCanCode/DesignOS/backend/internal/session"
	"github.com/GriffinCanCode/DesignOS/backend/internal/types"
	"github.com/GriffinCanCode/DesignOS/backend/internal/vision"
)

// codeResult is the structured payload generation calls return.
type codeResult struct {
	Code           string `json:"code"`
	ComponentName  string `json:"component_name"`
	Description    string `json:"description"`
	ChangesSummary string `json:"changes_summary"`
}

// decodeCodeResult parses model output. A response that is not valid
// JSON is treated as bare code so a formatting slip never loses work.
func decodeCodeResult(text string) *codeResult {
	stripped := core.StripFences(text)
	var result codeResult
	if err := json.Unmarshal([]byte(stripped), &result); err == nil && result.Code != "" {
		return &result
	}
	return &codeResult{Code: stripped}
}

func (p *Provider) fromImage(ctx context.Context, sess *session.Session, params map[string]interface{}) (*types.Result, error) {
	componentName := getString(params, "component_name")
	if componentName == "" {
		componentName = "GeneratedUI"
	}
	index, _ := getIndex(params, "image_index")
	instructions := getString(params, "instructions")

	images := sess.Images()
	if len(images) == 0 {
		return failure("no images found, upload a reference image first")
	}
	if index < 0 || index >= len(images) {
		return failure(fmt.Sprintf("invalid image_index %d, have %d images (use 0-%d)", index, len(images), len(images)-1))
	}

	dnaCtx, _ := dnaContext(sess)
	prompt := conversionPrompt(componentName, dnaCtx, instructions)

	p.logger.Info("converting image to code",
		zap.String("component", componentName),
		zap.Int("image_index", index))

	text, err := p.backend.Generate(ctx, vision.Request{
		Model:           p.model,
		Images:          []vision.Image{images[index]},
		Instruction:     prompt,
		Temperature:     0.3,
		MaxOutputTokens: 16384,
		JSONResponse:    true,
	})
	if err != nil {
		if vision.IsRateLimit(err) {
			return retryableFailure("rate limit reached, wait a moment and try again")
		}
		return failure(fmt.Sprintf("code generation failed: %v", err))
	}

	result := decodeCodeResult(text)
	if result.ComponentName != "" {
		componentName = result.ComponentName
	}

	data := map[string]interface{}{
		"code":           result.Code,
		"component_name": componentName,
		"model_used":     p.model,
		"image_used":     index,
		"total_images":   len(images),
	}

	saved, err := p.store.Create(ctx, componentName, result.Code, instructions)
	if err != nil {
		p.logger.Warn("sandbox save failed", zap.Error(err))
		data["saved"] = false
	} else {
		data["saved"] = true
		data["component_id"] = saved.Component.ID
		data["preview_url"] = saved.PreviewURL
		data["file_path"] = saved.FilePath
	}
	return success(data)
}

func (p *Provider) generate(ctx context.Context, sess *session.Session, params map[string]interface{}) (*types.Result, error) {
	name := getString(params, "name")
	description := getString(params, "description")
	if name == "" || description == "" {
		return failure("name and description parameters required")
	}

	dnaCtx, hasTemplates := dnaContext(sess)
	in := generationInputs{
		Name:           name,
		Description:    description,
		DNAContext:     dnaCtx,
		StyleReference: getString(params, "style_reference"),
		HasTemplates:   hasTemplates,
	}

	// An existing screen can anchor the style.
	if refID := getString(params, "reference_screen_id"); refID != "" {
		if ref, err := p.store.Get(ctx, refID); err == nil {
			in.ReferenceCode = ref.Code
		} else {
			p.logger.Warn("reference screen not found, generating without",
				zap.String("screen_id", refID))
		}
	}

	var refImages []vision.Image
	if index, ok := getIndex(params, "reference_image_index"); ok {
		images := sess.Images()
		if index < 0 || index >= len(images) {
			return failure(fmt.Sprintf("invalid reference_image_index %d, have %d images", index, len(images)))
		}
		refImages = []vision.Image{images[index]}
		in.HasImage = true
	}

	p.logger.Info("generating screen", zap.String("name", name), zap.Bool("with_image", in.HasImage))

	text, err := p.backend.Generate(ctx, vision.Request{
		Model:           p.model,
		Images:          refImages,
		Instruction:     generationPrompt(in),
		Temperature:     0.3,
		MaxOutputTokens: 16384,
		JSONResponse:    true,
	})
	if err != nil {
		if vision.IsRateLimit(err) {
			return retryableFailure("rate limit reached, wait a moment and try again")
		}
		return failure(fmt.Sprintf("screen generation failed: %v", err))
	}

	result := decodeCodeResult(text)
	componentName := result.ComponentName
	if componentName == "" {
		componentName = name
	}

	promptSummary := description
	if len(promptSummary) > 200 {
		promptSummary = promptSummary[:200]
	}

	data := map[string]interface{}{
		"code":           result.Code,
		"component_name": componentName,
		"description":    result.Description,
		"model_used":     p.model,
	}
	if in.HasImage {
		index, _ := getIndex(params, "reference_image_index")
		data["reference_image_used"] = index
	}

	saved, err := p.store.Create(ctx, componentName, result.Code, promptSummary)
	if err != nil {
		p.logger.Warn("sandbox save failed", zap.Error(err))
		data["saved"] = false
	} else {
		data["saved"] = true
		data["component_id"] = saved.Component.ID
		data["preview_url"] = saved.PreviewURL
		data["file_path"] = saved.FilePath
	}
	return success(data)
}

func (p *Provider) modify(ctx context.Context, sess *session.Session, params map[string]interface{}) (*types.Result, error) {
	request := getString(params, "request")
	if request == "" {
		return failure("request parameter required")
	}

	// Resolve the code to modify: stored screen by id, then by name,
	// then inline code.
	var (
		codeToModify string
		existingID   string
		existingName string
	)
	switch {
	case getString(params, "screen_id") != "":
		screenID := getString(params, "screen_id")
		comp, err := p.store.Get(ctx, screenID)
		if err != nil {
			return failure(fmt.Sprintf("screen %q not found", screenID))
		}
		codeToModify, existingID, existingName = comp.Code, comp.ID, comp.Name
	case getString(params, "screen_name") != "":
		screenName := getString(params, "screen_name")
		comp, err := p.store.GetByName(ctx, screenName)
		if err != nil {
			return failure(fmt.Sprintf("screen %q not found", screenName))
		}
		codeToModify, existingID, existingName = comp.Code, comp.ID, comp.Name
	case getString(params, "code") != "":
		codeToModify = getString(params, "code")
	default:
		return failure("one of screen_id, screen_name or code is required")
	}

	dnaCtx, _ := dnaContext(sess)
	prompt := modificationPrompt(request, codeToModify, dnaCtx, getString(params, "selected_element"))

	p.logger.Info("modifying screen", zap.String("screen_id", existingID))

	text, err := p.backend.Generate(ctx, vision.Request{
		Model:           p.model,
		Instruction:     prompt,
		Temperature:     0.3,
		MaxOutputTokens: 16384,
		JSONResponse:    true,
	})
	if err != nil {
		if vision.IsRateLimit(err) {
			return retryableFailure("rate limit reached, wait a moment and try again")
		}
		return failure(fmt.Sprintf("code modification failed: %v", err))
	}

	result := decodeCodeResult(text)
	summary := result.ChangesSummary
	if summary == "" {
		summary = "code modified"
	}

	data := map[string]interface{}{
		"code":       result.Code,
		"changes":    summary,
		"model_used": p.model,
	}

	if existingID != "" {
		saved, err := p.store.Update(ctx, existingID, result.Code, "", request)
		if err != nil {
			p.logger.Warn("sandbox update failed", zap.Error(err))
			data["saved"] = false
		} else {
			data["saved"] = true
			data["component_id"] = saved.Component.ID
			data["component_name"] = existingName
			data["preview_url"] = saved.PreviewURL
		}
	} else {
		saved, err := p.store.Create(ctx, "Modified", result.Code, request)
		if err != nil {
			p.logger.Warn("sandbox save failed", zap.Error(err))
			data["saved"] = false
		} else {
			data["saved"] = true
			data["component_id"] = saved.Component.ID
			data["component_name"] = saved.Component.Name
			data["preview_url"] = saved.PreviewURL
		}
	}
	return success(data)
}
