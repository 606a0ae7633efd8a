package workflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAllPending(t *testing.T) {
	tracker := NewTracker()

	plan := tracker.Create("user management flow",
		[]string{"Login", "Dashboard", "Settings"},
		[]string{"custom login description"})

	require.Len(t, plan.Steps, 3)
	assert.NotEmpty(t, plan.ID)
	for i, step := range plan.Steps {
		assert.Equal(t, StatusPending, step.Status)
		assert.NotEmpty(t, step.Description, "step %d", i)
	}
	assert.Equal(t, []string{"step-1", "step-2", "step-3"}, plan.StepIDs())
	assert.Equal(t, "custom login description", plan.Steps[0].Description)
}

func TestDescribeStepPosition(t *testing.T) {
	names := []string{"Login", "Transfers", "Handover"}

	first := describeStep("migration flow", names, 0)
	assert.Contains(t, first, "first screen in 'migration flow'")
	assert.Contains(t, first, "visual foundation")

	middle := describeStep("migration flow", names, 1)
	assert.Contains(t, middle, "Following 'Login'")

	last := describeStep("migration flow", names, 2)
	assert.Contains(t, last, "final step of 'migration flow'")
}

func TestDescribeStepKeywords(t *testing.T) {
	cases := map[string]string{
		"Login Page":     "email/password fields",
		"Main Dashboard": "key metrics",
		"File Sync":      "progress indicators",
		"Weekly Report":  "charts, metrics",
		"Mystery Screen": "Include all UI elements appropriate for a 'Mystery Screen' screen",
		// "data" outranks "transfer" in the hint order, so a transfer
		// screen named after its data gets the table guidance.
		"Data Transfer": "structured table format",
	}
	for name, want := range cases {
		desc := describeStep("task", []string{"A", name, "C"}, 1)
		assert.Contains(t, desc, want, "step %q", name)
		assert.True(t, strings.HasSuffix(desc, "Match the exact colors, shadows, and button styles from the Business DNA."))
	}
}

func TestUpdateProgress(t *testing.T) {
	tracker := NewTracker()
	plan := tracker.Create("task", []string{"A", "B", "C"}, nil)

	result, err := tracker.Update(plan.ID, "step-1", StatusComplete, "comp-1", "ScreenA")
	require.NoError(t, err)
	assert.Equal(t, Applied, result.Outcome)
	assert.Equal(t, 1, result.Completed)
	assert.Equal(t, 33, result.Percent)
	assert.Equal(t, "comp-1", result.Step.LinkedComponentID)
	assert.Equal(t, "ScreenA", result.Step.LinkedComponentName)

	result, err = tracker.Update(plan.ID, "step-2", StatusComplete, "", "")
	require.NoError(t, err)
	assert.Equal(t, 67, result.Percent)
}

func TestUpdateRegressionKeepsMetadata(t *testing.T) {
	tracker := NewTracker()
	plan := tracker.Create("task", []string{"A", "B"}, nil)

	_, err := tracker.Update(plan.ID, "step-1", StatusComplete, "", "")
	require.NoError(t, err)

	// A late in_progress report must not turn the step grey again,
	// but its component link still lands.
	result, err := tracker.Update(plan.ID, "step-1", StatusInProgress, "comp-9", "LateScreen")
	require.NoError(t, err)
	assert.Equal(t, IgnoredTerminal, result.Outcome)
	assert.Equal(t, StatusComplete, result.Step.Status)
	assert.Equal(t, "comp-9", result.Step.LinkedComponentID)
	assert.Equal(t, "LateScreen", result.Step.LinkedComponentName)
	assert.Equal(t, 1, result.Completed)
}

func TestUpdateCompleteToCompleteApplies(t *testing.T) {
	tracker := NewTracker()
	plan := tracker.Create("task", []string{"A"}, nil)

	_, err := tracker.Update(plan.ID, "step-1", StatusComplete, "", "")
	require.NoError(t, err)

	result, err := tracker.Update(plan.ID, "step-1", StatusComplete, "", "")
	require.NoError(t, err)
	assert.Equal(t, Applied, result.Outcome)
}

func TestUpdateUnknownIDs(t *testing.T) {
	tracker := NewTracker()
	plan := tracker.Create("task", []string{"A"}, nil)

	_, err := tracker.Update("missing", "step-1", StatusComplete, "", "")
	var planErr *PlanNotFoundError
	require.ErrorAs(t, err, &planErr)
	assert.Equal(t, []string{plan.ID}, planErr.Known)

	_, err = tracker.Update(plan.ID, "step-99", StatusComplete, "", "")
	var stepErr *StepNotFoundError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, []string{"step-1"}, stepErr.Known)
}

func TestUpdateInvalidStatus(t *testing.T) {
	tracker := NewTracker()
	plan := tracker.Create("task", []string{"A"}, nil)

	_, err := tracker.Update(plan.ID, "step-1", Status("done"), "", "")
	var statusErr *InvalidStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "done", statusErr.Status)
}

func TestProgressEmptyPlan(t *testing.T) {
	plan := &Plan{}
	completed, percent := plan.Progress()
	assert.Zero(t, completed)
	assert.Zero(t, percent)
}

func TestArtifactCodeEmbedsSteps(t *testing.T) {
	tracker := NewTracker()
	plan := tracker.Create("Banking screens", []string{"Login", "Transfers"}, nil)
	_, err := tracker.Update(plan.ID, "step-1", StatusComplete, "comp-1", "LoginScreen")
	require.NoError(t, err)

	code, err := ArtifactCode(plan)
	require.NoError(t, err)
	assert.Contains(t, code, "Workflow Plan: Banking screens")
	assert.Contains(t, code, `"status": "complete"`)
	assert.Contains(t, code, `"linkedComponentName": "LoginScreen"`)
	assert.Contains(t, code, `"status": "pending"`)
	assert.Contains(t, code, "export default")
}

func TestSetComponentID(t *testing.T) {
	tracker := NewTracker()
	plan := tracker.Create("task", []string{"A"}, nil)

	tracker.SetComponentID(plan.ID, "comp-42")
	got, err := tracker.Get(plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "comp-42", got.ComponentID)
}
