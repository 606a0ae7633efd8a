// Package dna exposes design DNA extraction and style management as a
// tool service.
package dna

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	core "github.com/GriffinCanCode/DesignOS/backend/internal/dna"
	"github.com/GriffinCanCode/DesignOS/backend/internal/logging"
	"github.com/GriffinCanCode/DesignOS/backend/internal/session"
	"github.com/GriffinCanCode/DesignOS/backend/internal/types"
	"github.com/GriffinCanCode/DesignOS/backend/internal/vision"
)

// Provider implements DNA extraction and saved styles
type Provider struct {
	sessions  *session.Manager
	extractor *core.Extractor
	logger    *logging.Logger
}

// NewProvider creates a DNA provider
func NewProvider(sessions *session.Manager, extractor *core.Extractor, logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.NewDefault()
	}
	return &Provider{sessions: sessions, extractor: extractor, logger: logger}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "dna",
		Name:        "Business DNA",
		Description: "Extract design DNA from reference images and manage saved styles",
		Category:    types.CategoryDesign,
		Capabilities: []string{
			"extraction",
			"template_synthesis",
			"style_analysis",
			"saved_styles",
			"style_comparison",
		},
		Tools: []types.Tool{
			{
				ID:          "dna.analyze",
				Name:        "Analyze References",
				Description: "Extract a design system from reference screenshots",
				Parameters: []types.Parameter{
					{Name: "images", Type: "array", Description: "Base64-encoded reference images", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "dna.current",
				Name:        "Current DNA",
				Description: "Get the active design DNA and its generation prompt",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "dna.clear",
				Name:        "Clear DNA",
				Description: "Drop the extracted DNA and reference images",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "dna.style",
				Name:        "Analyze Style",
				Description: "Run a focused style analysis on one attached reference image",
				Parameters: []types.Parameter{
					{Name: "focus", Type: "string", Description: "comprehensive, colors, typography, layout, or branding", Required: false},
					{Name: "image_index", Type: "number", Description: "Which attached image to analyze (default: most recent)", Required: false},
					{Name: "name", Type: "string", Description: "Name to store the analysis under", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "dna.save",
				Name:        "Save Style",
				Description: "Snapshot the current DNA under a name",
				Parameters: []types.Parameter{
					{Name: "name", Type: "string", Description: "Style name", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "dna.styles",
				Name:        "List Styles",
				Description: "List saved style snapshots",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
			{
				ID:          "dna.compare",
				Name:        "Compare Styles",
				Description: "Diff two saved styles section by section",
				Parameters: []types.Parameter{
					{Name: "a", Type: "string", Description: "First style name or id", Required: true},
					{Name: "b", Type: "string", Description: "Second style name or id", Required: true},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs a DNA operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sess := p.sessions.Resolve(appCtx)

	switch toolID {
	case "dna.analyze":
		return p.analyze(ctx, sess, params)
	case "dna.current":
		return p.current(sess)
	case "dna.clear":
		sess.ClearDNA()
		return success(map[string]interface{}{"cleared": true})
	case "dna.style":
		return p.analyzeStyle(ctx, sess, params)
	case "dna.save":
		return p.saveStyle(sess, params)
	case "dna.styles":
		return p.listStyles(sess)
	case "dna.compare":
		return p.compare(sess, params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) analyze(ctx context.Context, sess *session.Session, params map[string]interface{}) (*types.Result, error) {
	raw, ok := params["images"].([]interface{})
	if !ok || len(raw) == 0 {
		return failure("images parameter required")
	}

	images := make([]vision.Image, 0, len(raw))
	for i, entry := range raw {
		encoded, ok := entry.(string)
		if !ok {
			return failure(fmt.Sprintf("images[%d] must be a base64 string", i))
		}
		data, err := decodeImage(encoded)
		if err != nil {
			return failure(fmt.Sprintf("images[%d]: %v", i, err))
		}
		img, err := sess.AddImage(data)
		if err != nil {
			return failure(fmt.Sprintf("images[%d]: %v", i, err))
		}
		images = append(images, img)
	}

	outcome, err := p.extractor.Extract(ctx, images)
	if err != nil {
		if vision.IsRateLimit(err) {
			return retryableFailure(err.Error())
		}
		return failure(err.Error())
	}

	sess.SetDNA(outcome.Doc, outcome.Templates, outcome.DecodeKind)

	return success(map[string]interface{}{
		"analyzed":    true,
		"image_count": len(images),
		"extraction":  outcome.DecodeKind.String(),
		"summary":     outcome.Doc.Summary(),
		"prompt":      core.Format(outcome.Doc, outcome.Templates),
		"templates":   outcome.TemplateNames,
	})
}

func (p *Provider) current(sess *session.Session) (*types.Result, error) {
	doc, kind, err := sess.DNA()
	if err != nil {
		return failure(err.Error())
	}

	templates := sess.Templates()
	data := map[string]interface{}{
		"dna":        doc,
		"extraction": kind.String(),
		"summary":    doc.Summary(),
		"prompt":     core.Format(doc, templates),
	}
	if templates != nil {
		data["templates"] = templates.Names()
	}
	return success(data)
}

// analyzeStyle runs a focused single-image analysis and stores the
// result as a named style for later comparison.
func (p *Provider) analyzeStyle(ctx context.Context, sess *session.Session, params map[string]interface{}) (*types.Result, error) {
	focusParam, _ := params["focus"].(string)
	focus, err := core.ParseFocus(focusParam)
	if err != nil {
		return failure(err.Error())
	}

	images := sess.Images()
	if len(images) == 0 {
		return failure("no reference images attached")
	}

	index := len(images) - 1
	if raw, ok := params["image_index"].(float64); ok {
		index = int(raw)
	}
	if index < 0 || index >= len(images) {
		return failure(fmt.Sprintf("image_index out of range: %d images attached", len(images)))
	}

	analysis, err := p.extractor.AnalyzeStyle(ctx, images[index], focus)
	if err != nil {
		if vision.IsRateLimit(err) {
			return retryableFailure(err.Error())
		}
		return failure(err.Error())
	}

	name, _ := params["name"].(string)
	if name == "" {
		name = "unnamed"
	}
	style := sess.SaveAnalysis(name, analysis.Doc, string(focus))

	return success(map[string]interface{}{
		"style_id":   style.ID,
		"name":       style.Name,
		"focus":      string(focus),
		"extraction": analysis.DecodeKind.String(),
		"analysis":   analysis.Doc,
		"summary":    analysis.Doc.Summary(),
	})
}

func (p *Provider) saveStyle(sess *session.Session, params map[string]interface{}) (*types.Result, error) {
	name, ok := params["name"].(string)
	if !ok || name == "" {
		return failure("name parameter required")
	}

	style, err := sess.SaveStyle(name)
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"saved": true,
		"style": styleInfo(style),
	})
}

func (p *Provider) listStyles(sess *session.Session) (*types.Result, error) {
	styles := sess.Styles()
	entries := make([]interface{}, len(styles))
	for i, style := range styles {
		entries[i] = styleInfo(style)
	}
	return success(map[string]interface{}{"styles": entries, "count": len(entries)})
}

func (p *Provider) compare(sess *session.Session, params map[string]interface{}) (*types.Result, error) {
	refA, okA := params["a"].(string)
	refB, okB := params["b"].(string)
	if !okA || !okB || refA == "" || refB == "" {
		return failure("a and b parameters required")
	}

	styleA, err := sess.Style(refA)
	if err != nil {
		return failure(err.Error())
	}
	styleB, err := sess.Style(refB)
	if err != nil {
		return failure(err.Error())
	}

	diff, count := diffDocuments(styleA.Doc, styleB.Doc)
	return success(map[string]interface{}{
		"a":           styleA.Name,
		"b":           styleB.Name,
		"identical":   count == 0,
		"differences": diff,
		"count":       count,
	})
}

func styleInfo(style *session.Style) map[string]interface{} {
	info := map[string]interface{}{
		"id":         style.ID,
		"name":       style.Name,
		"created_at": style.CreatedAt,
		"summary":    style.Doc.Summary(),
	}
	if style.Focus != "" {
		info["focus"] = style.Focus
	}
	return info
}

// decodeImage accepts plain or data-URI base64 payloads.
func decodeImage(encoded string) ([]byte, error) {
	if idx := strings.Index(encoded, ";base64,"); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err == nil {
		return data, nil
	}
	data, rawErr := base64.RawStdEncoding.DecodeString(encoded)
	if rawErr == nil {
		return data, nil
	}
	return nil, errors.New("invalid base64 image data")
}

// Helper functions
func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{Success: false, Error: &errMsg}, nil
}

func retryableFailure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{
		Success: false,
		Error:   &errMsg,
		Data:    map[string]interface{}{"retry": true},
	}, nil
}
