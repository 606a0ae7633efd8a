package workflow

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"text/template"
)

// ArtifactName is the logical sandbox name of the progress artifact.
// Lookups always go by this name because physical ids churn on update.
const ArtifactName = "WorkflowPlan"

//go:embed artifact.tsx.tmpl
var artifactTemplate string

var artifactTmpl = template.Must(template.New("artifact").Parse(artifactTemplate))

// ArtifactCode renders the self-contained progress view for a plan. The
// step list is embedded as data, so updating the plan means regenerating
// the component and upserting it by name.
func ArtifactCode(plan *Plan) (string, error) {
	stepsJSON, err := json.MarshalIndent(plan.Steps, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode steps: %w", err)
	}

	var buf bytes.Buffer
	err = artifactTmpl.Execute(&buf, struct {
		Title     string
		StepsJSON string
	}{
		Title:     plan.TaskDescription,
		StepsJSON: string(stepsJSON),
	})
	if err != nil {
		return "", fmt.Errorf("render artifact: %w", err)
	}
	return buf.String(), nil
}
