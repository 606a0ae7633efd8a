// Package workflow exposes the plan tracker as tools. Plans drive
// multi-screen generation: the agent creates a plan up front, then
// reports each step as it lands. Every change re-renders the progress
// artifact into the sandbox so the preview panel stays current.
package workflow

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/DesignOS/backend/internal/logging"
	"github.com/GriffinCanCode/DesignOS/backend/internal/sandbox"
	"github.com/GriffinCanCode/DesignOS/backend/internal/session"
	"github.com/GriffinCanCode/DesignOS/backend/internal/types"
	core "github.com/GriffinCanCode/DesignOS/backend/internal/workflow"
)

// Provider implements workflow plan tools
type Provider struct {
	sessions *session.Manager
	store    *sandbox.Client
	logger   *logging.Logger
}

// NewProvider creates a workflow provider
func NewProvider(sessions *session.Manager, store *sandbox.Client, logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.NewDefault()
	}
	return &Provider{sessions: sessions, store: store, logger: logger}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "workflow",
		Name:        "Workflow Tracker",
		Description: "Plan multi-screen generation tasks and track step progress",
		Category:    types.CategoryWorkflow,
		Capabilities: []string{
			"planning",
			"progress_tracking",
			"progress_artifact",
		},
		Tools: []types.Tool{
			{
				ID:          "workflow.plan",
				Name:        "Create Plan",
				Description: "Create a workflow plan before generating multiple screens",
				Parameters: []types.Parameter{
					{Name: "task_description", Type: "string", Description: "What the overall task accomplishes", Required: true},
					{Name: "steps", Type: "array", Description: "Step or screen names in order", Required: true},
					{Name: "step_descriptions", Type: "array", Description: "Optional description per step", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "workflow.step",
				Name:        "Update Step",
				Description: "Report progress on a plan step after completing a screen",
				Parameters: []types.Parameter{
					{Name: "workflow_id", Type: "string", Description: "Plan id from workflow.plan", Required: true},
					{Name: "step_id", Type: "string", Description: "Step id, e.g. step-1", Required: true},
					{Name: "status", Type: "string", Description: "pending, in_progress or complete (default complete)", Required: false},
					{Name: "linked_component_id", Type: "string", Description: "Generated component to link to the step", Required: false},
					{Name: "linked_component_name", Type: "string", Description: "Display name of the linked component", Required: false},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs a workflow operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	sess := p.sessions.Resolve(appCtx)

	switch toolID {
	case "workflow.plan":
		return p.plan(ctx, sess, params)
	case "workflow.step":
		return p.step(ctx, sess, params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) plan(ctx context.Context, sess *session.Session, params map[string]interface{}) (*types.Result, error) {
	task := getString(params, "task_description")
	if task == "" {
		return failure("task_description parameter required")
	}
	stepNames := getStringSlice(params, "steps")
	if len(stepNames) == 0 {
		return failure("steps parameter required")
	}
	stepDescs := getStringSlice(params, "step_descriptions")

	plan := sess.Workflows().Create(task, stepNames, stepDescs)

	p.logger.Info("workflow plan created",
		zap.String("workflow_id", plan.ID),
		zap.Int("steps", len(plan.Steps)))

	steps := make([]interface{}, len(plan.Steps))
	for i, s := range plan.Steps {
		steps[i] = map[string]interface{}{"id": s.ID, "title": s.Title}
	}
	data := map[string]interface{}{
		"workflow_id": plan.ID,
		"steps":       steps,
		"step_count":  len(plan.Steps),
	}

	saved := p.publishArtifact(ctx, sess, plan, fmt.Sprintf("Workflow plan for: %s", task))
	data["saved"] = saved != nil
	if saved != nil {
		data["component_id"] = saved.Component.ID
		data["preview_url"] = saved.PreviewURL
		data["file_path"] = saved.FilePath
	}
	return success(data)
}

func (p *Provider) step(ctx context.Context, sess *session.Session, params map[string]interface{}) (*types.Result, error) {
	workflowID := getString(params, "workflow_id")
	stepID := getString(params, "step_id")
	if workflowID == "" || stepID == "" {
		return failure("workflow_id and step_id parameters required")
	}
	status := getString(params, "status")
	if status == "" {
		status = string(core.StatusComplete)
	}

	result, err := sess.Workflows().Update(
		workflowID,
		stepID,
		core.Status(status),
		getString(params, "linked_component_id"),
		getString(params, "linked_component_name"),
	)
	if err != nil {
		var planErr *core.PlanNotFoundError
		var stepErr *core.StepNotFoundError
		switch {
		case errors.As(err, &planErr):
			return failureWithData(err.Error(), map[string]interface{}{
				"available_workflows": toInterfaces(planErr.Known),
			})
		case errors.As(err, &stepErr):
			return failureWithData(err.Error(), map[string]interface{}{
				"available_steps": toInterfaces(stepErr.Known),
			})
		default:
			return failure(err.Error())
		}
	}

	data := map[string]interface{}{
		"step_updated":    stepID,
		"new_status":      string(result.Step.Status),
		"progress":        result.Percent,
		"completed_steps": result.Completed,
		"total_steps":     len(result.Plan.Steps),
	}
	if result.Outcome == core.IgnoredTerminal {
		data["regression_ignored"] = true
		p.logger.Warn("step status regression prevented",
			zap.String("workflow_id", workflowID),
			zap.String("step_id", stepID),
			zap.String("requested", status))
	}

	saved := p.publishArtifact(ctx, sess, result.Plan, "Workflow plan update")
	data["saved"] = saved != nil
	return success(data)
}

// publishArtifact re-renders the progress view and writes it to the
// sandbox under its logical name. Failures are logged, never fatal: a
// broken preview must not block the generation flow.
func (p *Provider) publishArtifact(ctx context.Context, sess *session.Session, plan *core.Plan, prompt string) *sandbox.SaveResult {
	code, err := core.ArtifactCode(plan)
	if err != nil {
		p.logger.Warn("artifact render failed", zap.Error(err))
		return nil
	}

	saved, err := sandbox.NewHandle(p.store, core.ArtifactName).Upsert(ctx, code, prompt)
	if err != nil {
		p.logger.Warn("artifact save failed", zap.Error(err))
		return nil
	}
	sess.Workflows().SetComponentID(plan.ID, saved.Component.ID)
	return saved
}

// Helper functions
func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{Success: false, Error: &errMsg}, nil
}

func failureWithData(message string, data map[string]interface{}) (*types.Result, error) {
	errMsg := message
	return &types.Result{Success: false, Error: &errMsg, Data: data}, nil
}

func getString(params map[string]interface{}, key string) string {
	val, _ := params[key].(string)
	return val
}

func getStringSlice(params map[string]interface{}, key string) []string {
	raw, ok := params[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
