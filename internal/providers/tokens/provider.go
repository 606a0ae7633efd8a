// Package tokens exposes the per-session design token store as a
// tool service.
package tokens

import (
	"context"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/DesignOS/backend/internal/dna"
	"github.com/GriffinCanCode/DesignOS/backend/internal/session"
	"github.com/GriffinCanCode/DesignOS/backend/internal/types"
)

// Provider implements design token management
type Provider struct {
	sessions *session.Manager
}

// NewProvider creates a token provider
func NewProvider(sessions *session.Manager) *Provider {
	return &Provider{sessions: sessions}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "tokens",
		Name:        "Design Tokens",
		Description: "Read and update the active design token system",
		Category:    types.CategoryDesign,
		Capabilities: []string{
			"get",
			"update",
			"reset",
			"css_export",
			"theme_export",
		},
		Tools: []types.Tool{
			{
				ID:          "tokens.get",
				Name:        "Get Tokens",
				Description: "Get all design tokens or a single category",
				Parameters: []types.Parameter{
					{Name: "category", Type: "string", Description: "Token category (colors, typography, spacing, borders, shadows, components)", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "tokens.update",
				Name:        "Update Tokens",
				Description: "Merge or replace values in a token category",
				Parameters: []types.Parameter{
					{Name: "category", Type: "string", Description: "Token category to update", Required: true},
					{Name: "updates", Type: "object", Description: "Values to apply", Required: true},
					{Name: "merge", Type: "boolean", Description: "Merge into existing values instead of replacing (default true)", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "tokens.reset",
				Name:        "Reset Tokens",
				Description: "Restore the default token system",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
			{
				ID:          "tokens.css",
				Name:        "Export CSS Variables",
				Description: "Render tokens as a :root CSS variable block",
				Parameters:  []types.Parameter{},
				Returns:     "string",
			},
			{
				ID:          "tokens.theme",
				Name:        "Export Theme Extension",
				Description: "Render tokens as a Tailwind theme extension",
				Parameters:  []types.Parameter{},
				Returns:     "object",
			},
		},
	}
}

// Execute runs a token operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	store := p.sessions.Resolve(appCtx).Tokens()

	switch toolID {
	case "tokens.get":
		return p.get(store, params)
	case "tokens.update":
		return p.update(store, params)
	case "tokens.reset":
		return p.reset(store)
	case "tokens.css":
		return success(map[string]interface{}{"css": dna.CSSVariables(store.All())})
	case "tokens.theme":
		return success(map[string]interface{}{"theme": dna.ThemeExtension(store.All())})
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) get(store *dna.TokenStore, params map[string]interface{}) (*types.Result, error) {
	category, _ := params["category"].(string)
	if category == "" {
		return success(map[string]interface{}{"tokens": store.All()})
	}

	values, err := store.Get(category)
	if err != nil {
		var unknown *dna.UnknownCategoryError
		if errors.As(err, &unknown) {
			return failure(fmt.Sprintf("unknown category %q (known: %v)", unknown.Category, unknown.Known))
		}
		return failure(err.Error())
	}
	return success(map[string]interface{}{"category": category, "tokens": values})
}

func (p *Provider) update(store *dna.TokenStore, params map[string]interface{}) (*types.Result, error) {
	category, ok := params["category"].(string)
	if !ok || category == "" {
		return failure("category parameter required")
	}

	updates, ok := params["updates"].(map[string]interface{})
	if !ok {
		return failure("updates parameter must be an object")
	}

	merge := true
	if v, ok := params["merge"].(bool); ok {
		merge = v
	}

	values, err := store.Update(category, updates, merge)
	if err != nil {
		var unknown *dna.UnknownCategoryError
		if errors.As(err, &unknown) {
			return failure(fmt.Sprintf("unknown category %q (known: %v)", unknown.Category, unknown.Known))
		}
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"updated":  true,
		"category": category,
		"tokens":   values,
		"merged":   merge,
	})
}

func (p *Provider) reset(store *dna.TokenStore) (*types.Result, error) {
	store.Reset()
	return success(map[string]interface{}{"reset": true, "tokens": store.All()})
}

// Helper functions
func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{Success: false, Error: &errMsg}, nil
}
