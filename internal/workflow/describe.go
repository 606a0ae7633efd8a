package workflow

import (
	"fmt"
	"strings"
)

// contentHints map step-name keywords to content guidance. Matched in
// order; the first hit wins.
var contentHints = []struct {
	keywords []string
	guidance string
}{
	{[]string{"login", "signin", "sign-in", "auth"},
		"Include email/password fields, submit button with primary accent color, and any branding elements. "},
	{[]string{"dashboard", "home", "overview"},
		"Display key metrics, status cards, and quick action buttons. Use the table and card patterns from the reference. "},
	{[]string{"settings", "config", "preferences"},
		"Organize settings into logical groups with clear labels. Include toggles, inputs, and save/cancel actions. "},
	{[]string{"profile", "account", "user"},
		"Show user avatar, editable profile fields, and account management options. "},
	{[]string{"list", "table", "data"},
		"Present data in a structured table format with headers, sorting, and action buttons per row. "},
	{[]string{"form", "create", "add", "new"},
		"Include input fields with proper labels, validation states, and submit/cancel buttons. "},
	{[]string{"detail", "view", "info"},
		"Display detailed information with clear hierarchy, related data, and edit/action options. "},
	{[]string{"transfer", "sync", "export", "import"},
		"Show progress indicators, status badges, and control buttons (start/pause/stop). "},
	{[]string{"analysis", "report", "analytics"},
		"Display charts, metrics, and analysis results with filtering options. "},
	{[]string{"test", "acceptance", "review"},
		"Include checklist items, approval buttons, and status tracking elements. "},
	{[]string{"scope", "plan", "project"},
		"Show project structure, scope items, and management controls. "},
	{[]string{"deploy", "implementation", "phase"},
		"Display deployment status, system selection, and phase management controls. "},
	{[]string{"handover", "complete", "final"},
		"Include summary information, completion confirmation, and next steps guidance. "},
}

// describeStep synthesizes a step description from position in the flow
// and keywords in the step name.
func describeStep(task string, stepNames []string, index int) string {
	name := stepNames[index]
	total := len(stepNames)

	var position, flow string
	switch {
	case index == 0:
		position = fmt.Sprintf("As the first screen in '%s', this establishes the visual foundation. ", task)
		flow = "All subsequent screens will inherit the header, navigation styling, and color palette defined here."
	case index == total-1:
		position = fmt.Sprintf("As the final step of '%s', this screen concludes the workflow. ", task)
		flow = "It should provide clear completion feedback and any summary/result information."
	default:
		position = fmt.Sprintf("Following '%s' in the '%s' flow, this screen continues the user journey. ", stepNames[index-1], task)
		flow = fmt.Sprintf("It maintains visual consistency while presenting the '%s' functionality.", name)
	}

	guidance := fmt.Sprintf("Include all UI elements appropriate for a '%s' screen based on the design references. ", name)
	lower := strings.ToLower(name)
	for _, hint := range contentHints {
		matched := false
		for _, kw := range hint.keywords {
			if strings.Contains(lower, kw) {
				matched = true
				break
			}
		}
		if matched {
			guidance = hint.guidance
			break
		}
	}

	return fmt.Sprintf("%s%s %sMatch the exact colors, shadows, and button styles from the Business DNA.", position, flow, guidance)
}
