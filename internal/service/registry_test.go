package service

import (
	"context"
	"testing"

	"github.com/GriffinCanCode/DesignOS/backend/internal/types"
)

type mockProvider struct {
	id string
}

func (m *mockProvider) Definition() types.Service {
	return types.Service{
		ID:           m.id,
		Name:         "Mock Service",
		Description:  "A mock service for testing",
		Category:     types.CategoryKnowledge,
		Capabilities: []string{"read", "write"},
		Tools: []types.Tool{
			{
				ID:          m.id + ".test",
				Name:        "Test Tool",
				Description: "A test tool",
				Returns:     "string",
			},
		},
	}
}

func (m *mockProvider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	return &types.Result{
		Success: true,
		Data:    map[string]interface{}{"result": "success"},
	}, nil
}

func TestRegister(t *testing.T) {
	r := NewRegistry()
	p := &mockProvider{id: "test"}

	if err := r.Register(p); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, ok := r.Get("test"); !ok {
		t.Error("Service should be registered")
	}
}

func TestRegisterEmptyID(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&mockProvider{id: ""}); err == nil {
		t.Error("Register should reject empty service IDs")
	}
}

func TestList(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "test1"})
	r.Register(&mockProvider{id: "test2"})

	services := r.List(nil)
	if len(services) != 2 {
		t.Errorf("Expected 2 services, got %d", len(services))
	}

	cat := types.CategoryKnowledge
	filtered := r.List(&cat)
	if len(filtered) != 2 {
		t.Errorf("Expected 2 knowledge services, got %d", len(filtered))
	}

	other := types.CategoryScreens
	empty := r.List(&other)
	if len(empty) != 0 {
		t.Errorf("Expected 0 screens services, got %d", len(empty))
	}
}

func TestDiscover(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "knowledge"})

	results := r.Discover("knowledge read write", 5)
	if len(results) == 0 {
		t.Error("Should discover knowledge service")
	}

	if results[0].ID != "knowledge" {
		t.Errorf("Expected knowledge service, got %s", results[0].ID)
	}
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "test"})

	ctx := context.Background()
	result, err := r.Execute(ctx, "test.test", map[string]interface{}{}, nil)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !result.Success {
		t.Error("Expected successful execution")
	}
}

func TestExecuteUnknownService(t *testing.T) {
	r := NewRegistry()

	result, err := r.Execute(context.Background(), "ghost.test", map[string]interface{}{}, nil)
	if err == nil {
		t.Error("Expected error for unknown service")
	}
	if result.Success {
		t.Error("Result should not be successful")
	}
}

func TestExecuteMalformedToolID(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "test"})

	if _, err := r.Execute(context.Background(), "notool", map[string]interface{}{}, nil); err == nil {
		t.Error("Expected error for tool ID without service prefix")
	}
}

func TestStats(t *testing.T) {
	r := NewRegistry()
	r.Register(&mockProvider{id: "test1"})
	r.Register(&mockProvider{id: "test2"})

	stats := r.Stats()
	totalServices := stats["total_services"].(int)
	if totalServices != 2 {
		t.Errorf("Expected 2 total services, got %d", totalServices)
	}

	totalTools := stats["total_tools"].(int)
	if totalTools != 2 {
		t.Errorf("Expected 2 total tools, got %d", totalTools)
	}
}
