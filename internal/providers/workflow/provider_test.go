package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/DesignOS/backend/internal/sandbox"
	"github.com/GriffinCanCode/DesignOS/backend/internal/session"
	"github.com/GriffinCanCode/DesignOS/backend/internal/types"
	core "github.com/GriffinCanCode/DesignOS/backend/internal/workflow"
)

type fakeStore struct {
	components map[string]*sandbox.Component
	nextID     int
	failing    bool
}

func (s *fakeStore) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.failing {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodPost:
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			s.nextID++
			comp := &sandbox.Component{
				ID:       fmt.Sprintf("comp-%d", s.nextID),
				Name:     body["name"],
				Filename: body["name"] + ".tsx",
				Code:     body["code"],
				Prompt:   body["prompt"],
			}
			s.components[comp.ID] = comp
			json.NewEncoder(w).Encode(sandbox.SaveResult{Success: true, Component: comp})
		case http.MethodGet:
			list := make([]sandbox.Component, 0, len(s.components))
			for _, comp := range s.components {
				list = append(list, *comp)
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"components": list})
		case http.MethodPut:
			id := r.URL.Query().Get("id")
			old, ok := s.components[id]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(sandbox.SaveResult{Error: "no such component"})
				return
			}
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			s.nextID++
			updated := *old
			updated.ID = fmt.Sprintf("comp-%d", s.nextID)
			updated.Code = body["code"]
			delete(s.components, id)
			s.components[updated.ID] = &updated
			json.NewEncoder(w).Encode(sandbox.SaveResult{Success: true, Component: &updated})
		}
	})
}

type fixture struct {
	provider *Provider
	sessions *session.Manager
	store    *fakeStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := &fakeStore{components: make(map[string]*sandbox.Component)}
	server := httptest.NewServer(store.handler())
	t.Cleanup(server.Close)

	sessions := session.NewManager()
	client := sandbox.New(sandbox.Config{BaseURL: server.URL})
	return &fixture{
		provider: NewProvider(sessions, client, nil),
		sessions: sessions,
		store:    store,
	}
}

func (f *fixture) exec(t *testing.T, toolID string, params map[string]interface{}) *types.Result {
	t.Helper()
	result, err := f.provider.Execute(context.Background(), toolID, params, nil)
	require.NoError(t, err)
	return result
}

func (f *fixture) createPlan(t *testing.T, steps ...interface{}) string {
	t.Helper()
	result := f.exec(t, "workflow.plan", map[string]interface{}{
		"task_description": "banking screens",
		"steps":            steps,
	})
	require.True(t, result.Success, "error: %v", result.Error)
	return result.Data["workflow_id"].(string)
}

func TestPlanCreatesArtifact(t *testing.T) {
	f := newFixture(t)

	result := f.exec(t, "workflow.plan", map[string]interface{}{
		"task_description": "user management flow",
		"steps":            []interface{}{"Login", "Dashboard"},
	})
	require.True(t, result.Success)
	assert.Equal(t, 2, result.Data["step_count"])
	assert.Equal(t, true, result.Data["saved"])
	assert.NotEmpty(t, result.Data["workflow_id"])

	steps := result.Data["steps"].([]interface{})
	assert.Equal(t, "step-1", steps[0].(map[string]interface{})["id"])
	assert.Equal(t, "Login", steps[0].(map[string]interface{})["title"])

	// The progress view is stored under its stable name.
	require.Len(t, f.store.components, 1)
	for _, comp := range f.store.components {
		assert.Equal(t, core.ArtifactName, comp.Name)
		assert.Contains(t, comp.Code, "user management flow")
	}
}

func TestPlanRequiredParams(t *testing.T) {
	f := newFixture(t)

	result := f.exec(t, "workflow.plan", map[string]interface{}{"steps": []interface{}{"A"}})
	assert.False(t, result.Success)

	result = f.exec(t, "workflow.plan", map[string]interface{}{"task_description": "x"})
	assert.False(t, result.Success)
}

func TestPlanSurvivesStoreOutage(t *testing.T) {
	f := newFixture(t)
	f.store.failing = true

	result := f.exec(t, "workflow.plan", map[string]interface{}{
		"task_description": "task",
		"steps":            []interface{}{"A"},
	})
	require.True(t, result.Success, "plan must succeed even when the preview cannot be written")
	assert.Equal(t, false, result.Data["saved"])
	assert.NotEmpty(t, result.Data["workflow_id"])
}

func TestStepUpdateRendersProgress(t *testing.T) {
	f := newFixture(t)
	workflowID := f.createPlan(t, "Login", "Dashboard", "Settings")

	result := f.exec(t, "workflow.step", map[string]interface{}{
		"workflow_id":           workflowID,
		"step_id":               "step-1",
		"linked_component_id":   "comp-login",
		"linked_component_name": "LoginScreen",
	})
	require.True(t, result.Success, "error: %v", result.Error)
	assert.Equal(t, "complete", result.Data["new_status"], "default status is complete")
	assert.Equal(t, 33, result.Data["progress"])
	assert.Equal(t, 1, result.Data["completed_steps"])
	assert.Equal(t, 3, result.Data["total_steps"])

	// The artifact was rewritten with the completed step embedded.
	require.Len(t, f.store.components, 1)
	for _, comp := range f.store.components {
		assert.Contains(t, comp.Code, `"linkedComponentName": "LoginScreen"`)
	}
}

func TestStepRegressionIgnored(t *testing.T) {
	f := newFixture(t)
	workflowID := f.createPlan(t, "A", "B")

	f.exec(t, "workflow.step", map[string]interface{}{
		"workflow_id": workflowID,
		"step_id":     "step-1",
		"status":      "complete",
	})
	result := f.exec(t, "workflow.step", map[string]interface{}{
		"workflow_id": workflowID,
		"step_id":     "step-1",
		"status":      "in_progress",
	})
	require.True(t, result.Success)
	assert.Equal(t, true, result.Data["regression_ignored"])
	assert.Equal(t, "complete", result.Data["new_status"])
	assert.Equal(t, 1, result.Data["completed_steps"])
}

func TestStepUnknownWorkflowListsKnown(t *testing.T) {
	f := newFixture(t)
	workflowID := f.createPlan(t, "A")

	result := f.exec(t, "workflow.step", map[string]interface{}{
		"workflow_id": "missing",
		"step_id":     "step-1",
	})
	require.False(t, result.Success)
	assert.Contains(t, result.Data["available_workflows"], interface{}(workflowID))
}

func TestStepUnknownStepListsKnown(t *testing.T) {
	f := newFixture(t)
	workflowID := f.createPlan(t, "A", "B")

	result := f.exec(t, "workflow.step", map[string]interface{}{
		"workflow_id": workflowID,
		"step_id":     "step-9",
	})
	require.False(t, result.Success)
	assert.Equal(t, []interface{}{"step-1", "step-2"}, result.Data["available_steps"])
}

func TestStepInvalidStatus(t *testing.T) {
	f := newFixture(t)
	workflowID := f.createPlan(t, "A")

	result := f.exec(t, "workflow.step", map[string]interface{}{
		"workflow_id": workflowID,
		"step_id":     "step-1",
		"status":      "done",
	})
	require.False(t, result.Success)
	assert.Contains(t, *result.Error, "invalid status")
}

func TestArtifactUpsertedNotDuplicated(t *testing.T) {
	f := newFixture(t)
	workflowID := f.createPlan(t, "A", "B")

	f.exec(t, "workflow.step", map[string]interface{}{"workflow_id": workflowID, "step_id": "step-1"})
	f.exec(t, "workflow.step", map[string]interface{}{"workflow_id": workflowID, "step_id": "step-2"})

	assert.Len(t, f.store.components, 1, "updates reuse the WorkflowPlan record")
}

func TestSessionIsolation(t *testing.T) {
	f := newFixture(t)
	workflowID := f.createPlan(t, "A")

	otherSession := "other-session"
	result, err := f.provider.Execute(context.Background(), "workflow.step", map[string]interface{}{
		"workflow_id": workflowID,
		"step_id":     "step-1",
	}, &types.Context{SessionID: &otherSession})
	require.NoError(t, err)
	assert.False(t, result.Success, "plans are scoped to the session that created them")
}
