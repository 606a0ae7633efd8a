package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/DesignOS/backend/internal/sandbox"
	"github.com/GriffinCanCode/DesignOS/backend/internal/types"
)

const (
	minCompare = 2
	maxCompare = 4
)

func screenInfo(comp *sandbox.Component) map[string]interface{} {
	return map[string]interface{}{
		"id":       comp.ID,
		"name":     comp.Name,
		"filename": comp.Filename,
	}
}

func (p *Provider) list(ctx context.Context) (*types.Result, error) {
	components, err := p.store.List(ctx, false)
	if err != nil {
		return failure(err.Error())
	}

	screens := make([]interface{}, len(components))
	for i := range components {
		entry := screenInfo(&components[i])
		entry["createdAt"] = components[i].CreatedAt
		if prompt := components[i].Prompt; prompt != "" {
			if len(prompt) > 100 {
				prompt = prompt[:100] + "..."
			}
			entry["prompt"] = prompt
		}
		screens[i] = entry
	}
	return success(map[string]interface{}{"screens": screens, "count": len(screens)})
}

func (p *Provider) load(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	screenID := getString(params, "screen_id")
	screenName := getString(params, "screen_name")
	if screenID == "" && screenName == "" {
		return failure("either screen_id or screen_name must be provided")
	}

	var (
		comp *sandbox.Component
		err  error
	)
	if screenID != "" {
		comp, err = p.store.Get(ctx, screenID)
	} else {
		comp, err = p.store.GetByName(ctx, screenName)
	}
	if err != nil {
		return p.notFound(ctx, screenID+screenName)
	}

	return success(map[string]interface{}{
		"screen": screenInfo(comp),
		"code":   comp.Code,
	})
}

// notFound reports a missing screen together with the names that exist.
func (p *Provider) notFound(ctx context.Context, ref string) (*types.Result, error) {
	msg := fmt.Sprintf("screen not found: %s", ref)
	components, err := p.store.List(ctx, false)
	if err != nil {
		return failure(msg)
	}
	names := make([]interface{}, len(components))
	for i := range components {
		names[i] = components[i].Name
	}
	errMsg := msg
	return &types.Result{
		Success: false,
		Error:   &errMsg,
		Data:    map[string]interface{}{"available_screens": names},
	}, nil
}

func (p *Provider) update(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	screenID := getString(params, "screen_id")
	code := getString(params, "code")
	if screenID == "" {
		return failure("screen_id is required")
	}
	if code == "" {
		return failure("code is required")
	}

	saved, err := p.store.Update(ctx, screenID, code, "", getString(params, "description"))
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"screen":      screenInfo(saved.Component),
		"code":        code,
		"preview_url": saved.PreviewURL,
		"file_path":   saved.FilePath,
	})
}

func (p *Provider) create(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	name := getString(params, "name")
	code := getString(params, "code")
	if name == "" {
		return failure("name is required")
	}
	if code == "" {
		return failure("code is required")
	}

	saved, err := p.store.Create(ctx, name, code, getString(params, "description"))
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"screen":      screenInfo(saved.Component),
		"preview_url": saved.PreviewURL,
		"file_path":   saved.FilePath,
	})
}

func (p *Provider) delete(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	screenID := getString(params, "screen_id")
	if screenID == "" {
		return failure("screen_id is required")
	}

	if err := p.store.Delete(ctx, screenID); err != nil {
		return failure(err.Error())
	}
	return success(map[string]interface{}{"deleted": true, "id": screenID})
}

func (p *Provider) variant(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	sourceID := getString(params, "source_screen_id")
	variantName := getString(params, "variant_name")
	if sourceID == "" || variantName == "" {
		return failure("source_screen_id and variant_name are required")
	}

	source, err := p.store.Get(ctx, sourceID)
	if err != nil {
		return failure(fmt.Sprintf("could not load source screen: %v", err))
	}

	newName := fmt.Sprintf("%s_%s", source.Name, variantName)
	description := fmt.Sprintf("Variant of %s: %s", source.Name, variantName)
	if mods := getString(params, "modifications"); mods != "" {
		description = fmt.Sprintf("Variant of %s: %s", source.Name, mods)
	}

	saved, err := p.store.Create(ctx, newName, source.Code, description)
	if err != nil {
		return failure(err.Error())
	}

	return success(map[string]interface{}{
		"original":    screenInfo(source),
		"variant":     screenInfo(saved.Component),
		"preview_url": saved.PreviewURL,
		"file_path":   saved.FilePath,
	})
}

func (p *Provider) variants(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	baseName := getString(params, "base_name")
	if baseName == "" {
		return failure("base_name is required")
	}

	components, err := p.store.List(ctx, false)
	if err != nil {
		return failure(err.Error())
	}

	var baseScreen interface{}
	variants := make([]interface{}, 0)
	prefix := baseName + "_"
	for i := range components {
		switch {
		case components[i].Name == baseName:
			baseScreen = screenInfo(&components[i])
		case strings.HasPrefix(components[i].Name, prefix):
			entry := screenInfo(&components[i])
			entry["variant_name"] = strings.TrimPrefix(components[i].Name, prefix)
			variants = append(variants, entry)
		}
	}

	return success(map[string]interface{}{
		"base_screen": baseScreen,
		"variants":    variants,
		"count":       len(variants),
	})
}

func (p *Provider) compare(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	raw, ok := params["screen_ids"].([]interface{})
	if !ok || len(raw) < minCompare {
		return failure(fmt.Sprintf("at least %d screen ids are required for comparison", minCompare))
	}
	if len(raw) > maxCompare {
		return failure(fmt.Sprintf("maximum %d screens can be compared at once", maxCompare))
	}

	screens := make([]interface{}, 0, len(raw))
	loaded := 0
	for _, entry := range raw {
		screenID, ok := entry.(string)
		if !ok {
			return failure("screen_ids must be strings")
		}
		comp, err := p.store.Get(ctx, screenID)
		if err != nil {
			screens = append(screens, map[string]interface{}{
				"id":    screenID,
				"error": err.Error(),
			})
			continue
		}
		loaded++
		screens = append(screens, map[string]interface{}{
			"id":          comp.ID,
			"name":        comp.Name,
			"code":        comp.Code,
			"code_length": len(comp.Code),
		})
	}

	return &types.Result{
		Success: loaded >= minCompare,
		Data: map[string]interface{}{
			"screens":      screens,
			"loaded_count": loaded,
		},
	}, nil
}
