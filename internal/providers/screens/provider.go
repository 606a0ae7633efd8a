// Package screens generates, modifies and manages React screen
// components. Generation goes through the vision backend, storage
// goes through the sandbox component store.
package screens

import (
	"context"
	"fmt"

	core "github.com/GriffinCanCode/DesignOS/backend/internal/dna"
	"github.com/GriffinCanCode/DesignOS/backend/internal/logging"
	"github.com/GriffinCanCode/DesignOS/backend/internal/sandbox"
	"github.com/GriffinCanCode/DesignOS/backend/internal/session"
	"github.com/GriffinCanCode/DesignOS/backend/internal/types"
	"github.com/GriffinCanCode/DesignOS/backend/internal/vision"
)

// Provider implements screen generation and management
type Provider struct {
	sessions *session.Manager
	backend  vision.Backend
	model    string
	store    *sandbox.Client
	logger   *logging.Logger
}

// NewProvider creates a screens provider
func NewProvider(sessions *session.Manager, backend vision.Backend, model string, store *sandbox.Client, logger *logging.Logger) *Provider {
	if model == "" {
		model = vision.DefaultModel
	}
	if logger == nil {
		logger = logging.NewDefault()
	}
	return &Provider{
		sessions: sessions,
		backend:  backend,
		model:    model,
		store:    store,
		logger:   logger,
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "screens",
		Name:        "Screen Generator",
		Description: "Generate and manage React screens with consistent design",
		Category:    types.CategoryScreens,
		Capabilities: []string{
			"image_to_code",
			"text_to_screen",
			"modification",
			"variants",
			"mockups",
			"component_store",
		},
		Tools: []types.Tool{
			{
				ID:          "screens.from_image",
				Name:        "Image to Code",
				Description: "Convert an uploaded UI screenshot into a React component",
				Parameters: []types.Parameter{
					{Name: "component_name", Type: "string", Description: "Name for the component (default GeneratedUI)", Required: false},
					{Name: "image_index", Type: "number", Description: "Which uploaded image to convert, 0-based", Required: false},
					{Name: "instructions", Type: "string", Description: "Extra generation instructions", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "screens.generate",
				Name:        "Generate Screen",
				Description: "Generate a screen from a text description, applying the active design DNA",
				Parameters: []types.Parameter{
					{Name: "name", Type: "string", Description: "Component name", Required: true},
					{Name: "description", Type: "string", Description: "What the screen should show", Required: true},
					{Name: "style_reference", Type: "string", Description: "Text description of the visual style", Required: false},
					{Name: "reference_screen_id", Type: "string", Description: "Existing screen whose style to match", Required: false},
					{Name: "reference_image_index", Type: "number", Description: "Uploaded image to use as visual reference", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "screens.modify",
				Name:        "Modify Screen",
				Description: "Apply a natural-language modification to existing code",
				Parameters: []types.Parameter{
					{Name: "request", Type: "string", Description: "The modification to apply", Required: true},
					{Name: "screen_id", Type: "string", Description: "Screen to load and update in place", Required: false},
					{Name: "screen_name", Type: "string", Description: "Screen name to load if no id given", Required: false},
					{Name: "code", Type: "string", Description: "Code to modify when no stored screen is referenced", Required: false},
					{Name: "selected_element", Type: "string", Description: "Element the modification targets", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "screens.list",
				Name:        "List Screens",
				Description: "List all screens in the component store",
				Parameters:  []types.Parameter{},
				Returns:     "array",
			},
			{
				ID:          "screens.load",
				Name:        "Load Screen",
				Description: "Load a screen's code by id or name",
				Parameters: []types.Parameter{
					{Name: "screen_id", Type: "string", Description: "Screen id", Required: false},
					{Name: "screen_name", Type: "string", Description: "Screen name", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "screens.update",
				Name:        "Update Screen",
				Description: "Replace a screen's code in place",
				Parameters: []types.Parameter{
					{Name: "screen_id", Type: "string", Description: "Screen id", Required: true},
					{Name: "code", Type: "string", Description: "Complete replacement code", Required: true},
					{Name: "description", Type: "string", Description: "What changed", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "screens.create",
				Name:        "Create Screen",
				Description: "Store a new screen with the given code",
				Parameters: []types.Parameter{
					{Name: "name", Type: "string", Description: "Screen name", Required: true},
					{Name: "code", Type: "string", Description: "Complete React code", Required: true},
					{Name: "description", Type: "string", Description: "What the screen does", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "screens.delete",
				Name:        "Delete Screen",
				Description: "Remove a screen from the store",
				Parameters: []types.Parameter{
					{Name: "screen_id", Type: "string", Description: "Screen id", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "screens.variant",
				Name:        "Create Variant",
				Description: "Copy a screen under a variant name for divergent edits",
				Parameters: []types.Parameter{
					{Name: "source_screen_id", Type: "string", Description: "Screen to branch from", Required: true},
					{Name: "variant_name", Type: "string", Description: "Variant suffix (e.g. Wizard, Compact)", Required: true},
					{Name: "modifications", Type: "string", Description: "What makes this variant different", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "screens.variants",
				Name:        "List Variants",
				Description: "List variants of a base screen name",
				Parameters: []types.Parameter{
					{Name: "base_name", Type: "string", Description: "Base screen name", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "screens.mockup",
				Name:        "Generate Mockup",
				Description: "Generate a design mockup image from a text description",
				Parameters: []types.Parameter{
					{Name: "prompt", Type: "string", Description: "What the mockup should show", Required: true},
					{Name: "design_type", Type: "string", Description: "ui_mockup, marketing_banner, landing_page, icon_set, user_flow or dashboard", Required: false},
					{Name: "aspect_ratio", Type: "string", Description: "1:1, 16:9, 9:16 or 4:3 (default 1:1)", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "screens.mockups",
				Name:        "List Mockups",
				Description: "List generated mockups in this session",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "screens.mockup_get",
				Name:        "Get Mockup",
				Description: "Retrieve a generated mockup's image data by id",
				Parameters: []types.Parameter{
					{Name: "mockup_id", Type: "string", Description: "Mockup id", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "screens.compare",
				Name:        "Compare Screens",
				Description: "Load 2-4 screens with code for side-by-side analysis",
				Parameters: []types.Parameter{
					{Name: "screen_ids", Type: "array", Description: "Screen ids to compare", Required: true},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs a screen operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sess := p.sessions.Resolve(appCtx)

	switch toolID {
	case "screens.from_image":
		return p.fromImage(ctx, sess, params)
	case "screens.generate":
		return p.generate(ctx, sess, params)
	case "screens.modify":
		return p.modify(ctx, sess, params)
	case "screens.list":
		return p.list(ctx)
	case "screens.load":
		return p.load(ctx, params)
	case "screens.update":
		return p.update(ctx, params)
	case "screens.create":
		return p.create(ctx, params)
	case "screens.delete":
		return p.delete(ctx, params)
	case "screens.variant":
		return p.variant(ctx, params)
	case "screens.variants":
		return p.variants(ctx, params)
	case "screens.mockup":
		return p.mockup(ctx, sess, params)
	case "screens.mockups":
		return p.mockups(sess)
	case "screens.mockup_get":
		return p.mockupGet(sess, params)
	case "screens.compare":
		return p.compare(ctx, params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

// dnaContext renders the session's DNA as a prompt section, empty when
// nothing was extracted.
func dnaContext(sess *session.Session) (string, bool) {
	doc, _, err := sess.DNA()
	if err != nil {
		return "", false
	}
	templates := sess.Templates()
	return "\n" + core.Format(doc, templates) + "\n", templates != nil && !templates.Empty()
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

func getString(params map[string]interface{}, key string) string {
	val, _ := params[key].(string)
	return val
}

func getIndex(params map[string]interface{}, key string) (int, bool) {
	switch v := params[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
