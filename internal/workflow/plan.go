// Package workflow tracks multi-screen generation plans and renders the
// progress artifact shown alongside generated screens.
package workflow

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/GriffinCanCode/DesignOS/backend/internal/shared/id"
)

// Status is a workflow step state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusComplete:
		return true
	}
	return false
}

// Terminal reports whether s accepts no further status changes.
func (s Status) Terminal() bool {
	return s == StatusComplete
}

// TransitionOutcome is the result of applying a status change.
type TransitionOutcome int

const (
	// Applied means the status change took effect.
	Applied TransitionOutcome = iota
	// IgnoredTerminal means the step was already complete and kept its
	// status. Linked-component metadata on the request is still applied.
	IgnoredTerminal
)

// Step is one unit of a workflow plan.
type Step struct {
	ID                  string `json:"id"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	Status              Status `json:"status"`
	LinkedComponentID   string `json:"linkedComponentId,omitempty"`
	LinkedComponentName string `json:"linkedComponentName,omitempty"`
}

// apply runs the status transition table and attaches metadata.
// Metadata accompanies progress reports even when the transition is
// rejected, so a late-arriving completion record still links its screen.
func (s *Step) apply(status Status, linkedID, linkedName string) TransitionOutcome {
	outcome := Applied
	if s.Status.Terminal() && status != s.Status {
		outcome = IgnoredTerminal
	} else {
		s.Status = status
	}
	if linkedID != "" {
		s.LinkedComponentID = linkedID
	}
	if linkedName != "" {
		s.LinkedComponentName = linkedName
	}
	return outcome
}

// Plan is an active workflow plan.
type Plan struct {
	ID              string  `json:"id"`
	TaskDescription string  `json:"task_description"`
	Steps           []*Step `json:"steps"`
	ComponentID     string  `json:"component_id,omitempty"`
}

// Progress returns completed count and rounded completion percentage.
func (p *Plan) Progress() (completed int, percent int) {
	for _, s := range p.Steps {
		if s.Status == StatusComplete {
			completed++
		}
	}
	if len(p.Steps) == 0 {
		return 0, 0
	}
	percent = int(math.Round(float64(completed) / float64(len(p.Steps)) * 100))
	return completed, percent
}

// StepIDs returns the ids of all steps in order.
func (p *Plan) StepIDs() []string {
	ids := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		ids[i] = s.ID
	}
	return ids
}

func (p *Plan) step(stepID string) *Step {
	for _, s := range p.Steps {
		if s.ID == stepID {
			return s
		}
	}
	return nil
}

// PlanNotFoundError reports an unknown plan id with the known ids.
type PlanNotFoundError struct {
	ID    string
	Known []string
}

func (e *PlanNotFoundError) Error() string {
	return fmt.Sprintf("workflow %q not found", e.ID)
}

// StepNotFoundError reports an unknown step id with the known ids.
type StepNotFoundError struct {
	ID    string
	Known []string
}

func (e *StepNotFoundError) Error() string {
	return fmt.Sprintf("step %q not found in workflow", e.ID)
}

// InvalidStatusError reports a status outside the known set.
type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q", e.Status)
}

// Tracker holds the active plans for one session.
type Tracker struct {
	mu    sync.RWMutex
	plans map[string]*Plan
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{plans: make(map[string]*Plan)}
}

// Create builds a plan with every step pending. Missing descriptions are
// synthesized from the step name and its position in the flow.
func (t *Tracker) Create(task string, stepNames, stepDescs []string) *Plan {
	steps := make([]*Step, len(stepNames))
	for i, name := range stepNames {
		desc := ""
		if i < len(stepDescs) && stepDescs[i] != "" {
			desc = stepDescs[i]
		} else {
			desc = describeStep(task, stepNames, i)
		}
		steps[i] = &Step{
			ID:          fmt.Sprintf("step-%d", i+1),
			Title:       name,
			Description: desc,
			Status:      StatusPending,
		}
	}

	plan := &Plan{
		ID:              id.NewPlanID().String(),
		TaskDescription: task,
		Steps:           steps,
	}

	t.mu.Lock()
	t.plans[plan.ID] = plan
	t.mu.Unlock()
	return plan
}

// Get returns a plan by id.
func (t *Tracker) Get(planID string) (*Plan, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	plan, ok := t.plans[planID]
	if !ok {
		return nil, &PlanNotFoundError{ID: planID, Known: t.idsLocked()}
	}
	return plan, nil
}

// UpdateResult describes the effect of one step update.
type UpdateResult struct {
	Plan      *Plan
	Step      *Step
	Outcome   TransitionOutcome
	Completed int
	Percent   int
}

// Update applies a status change to one step. Completed steps never
// regress; the rejection is reported in the result, not as an error.
func (t *Tracker) Update(planID, stepID string, status Status, linkedID, linkedName string) (*UpdateResult, error) {
	if !status.Valid() {
		return nil, &InvalidStatusError{Status: string(status)}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	plan, ok := t.plans[planID]
	if !ok {
		return nil, &PlanNotFoundError{ID: planID, Known: t.idsLocked()}
	}
	step := plan.step(stepID)
	if step == nil {
		return nil, &StepNotFoundError{ID: stepID, Known: plan.StepIDs()}
	}

	outcome := step.apply(status, linkedID, linkedName)
	completed, percent := plan.Progress()

	return &UpdateResult{
		Plan:      plan,
		Step:      step,
		Outcome:   outcome,
		Completed: completed,
		Percent:   percent,
	}, nil
}

// SetComponentID records the sandbox component backing a plan's artifact.
func (t *Tracker) SetComponentID(planID, componentID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if plan, ok := t.plans[planID]; ok {
		plan.ComponentID = componentID
	}
}

func (t *Tracker) idsLocked() []string {
	ids := make([]string, 0, len(t.plans))
	for k := range t.plans {
		ids = append(ids, k)
	}
	sort.Strings(ids)
	return ids
}
