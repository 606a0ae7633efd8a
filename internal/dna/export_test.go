package dna

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSSVariablesFromStore(t *testing.T) {
	store := NewTokenStore()
	_, err := store.Update("colors", map[string]interface{}{"primary": "#4263EB"}, true)
	require.NoError(t, err)

	css := CSSVariables(store.All())
	assert.True(t, strings.HasPrefix(css, ":root {"))
	assert.True(t, strings.HasSuffix(css, "}"))
	assert.Contains(t, css, "--color-primary: #4263EB;")
	assert.Contains(t, css, "--color-background: #0f172a;")
	assert.Contains(t, css, "--font-family: Inter, system-ui, sans-serif;")
	assert.Contains(t, css, "--space-md: 16px;")
	assert.Contains(t, css, "--radius-lg: 12px;")
}

func TestCSSVariablesFallbacks(t *testing.T) {
	css := CSSVariables(map[string]interface{}{})
	assert.Contains(t, css, "--color-primary: #3b82f6;")
	assert.Contains(t, css, "--font-family-mono: monospace;")
}

func TestThemeExtensionShape(t *testing.T) {
	theme := ThemeExtension(NewTokenStore().All())

	colors := theme["colors"].(map[string]interface{})
	assert.Equal(t, "#3b82f6", colors["primary"])
	assert.Equal(t, "#94a3b8", colors["muted"])

	fonts := theme["fontFamily"].(map[string]interface{})
	assert.Equal(t, []string{"Inter, system-ui, sans-serif"}, fonts["sans"])

	radius := theme["borderRadius"].(map[string]interface{})
	assert.Equal(t, "8px", radius["md"])

	spacing := theme["spacing"].(map[string]interface{})
	assert.Equal(t, "32px", spacing["xl"])
}
