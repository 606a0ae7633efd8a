package dna

import (
	"fmt"
	"strings"
)

// CSSVariables renders the token set as a :root custom-property block.
// Read-only projection; missing tokens fall back to the defaults.
func CSSVariables(tokens map[string]interface{}) string {
	colors := section(tokens, "colors")
	typo := section(tokens, "typography")
	spacing := section(tokens, "spacing")
	borders := section(tokens, "borders")

	var b strings.Builder
	b.WriteString(":root {\n")
	b.WriteString("  /* Colors */\n")
	fmt.Fprintf(&b, "  --color-primary: %s;\n", str(colors, "primary", "#3b82f6"))
	fmt.Fprintf(&b, "  --color-secondary: %s;\n", str(colors, "secondary", "#6366f1"))
	fmt.Fprintf(&b, "  --color-accent: %s;\n", str(colors, "accent", "#8b5cf6"))
	fmt.Fprintf(&b, "  --color-background: %s;\n", str(colors, "background", "#0f172a"))
	fmt.Fprintf(&b, "  --color-surface: %s;\n", str(colors, "surface", "#1e293b"))
	fmt.Fprintf(&b, "  --color-text: %s;\n", str(colors, "text", "#f8fafc"))
	fmt.Fprintf(&b, "  --color-text-muted: %s;\n", str(colors, "text_muted", "#94a3b8"))
	b.WriteString("\n  /* Typography */\n")
	fmt.Fprintf(&b, "  --font-family: %s;\n", str(typo, "font_family", "Inter, system-ui, sans-serif"))
	fmt.Fprintf(&b, "  --font-family-mono: %s;\n", str(typo, "font_family_mono", "monospace"))
	b.WriteString("\n  /* Spacing */\n")
	fmt.Fprintf(&b, "  --space-xs: %s;\n", str(spacing, "xs", "4px"))
	fmt.Fprintf(&b, "  --space-sm: %s;\n", str(spacing, "sm", "8px"))
	fmt.Fprintf(&b, "  --space-md: %s;\n", str(spacing, "md", "16px"))
	fmt.Fprintf(&b, "  --space-lg: %s;\n", str(spacing, "lg", "24px"))
	fmt.Fprintf(&b, "  --space-xl: %s;\n", str(spacing, "xl", "32px"))
	b.WriteString("\n  /* Borders */\n")
	fmt.Fprintf(&b, "  --radius-sm: %s;\n", str(borders, "radius_sm", "4px"))
	fmt.Fprintf(&b, "  --radius-md: %s;\n", str(borders, "radius_md", "8px"))
	fmt.Fprintf(&b, "  --radius-lg: %s;\n", str(borders, "radius_lg", "12px"))
	b.WriteString("}")
	return b.String()
}

// ThemeExtension renders the token set as a theme-extension object in
// the shape a tailwind.config.js extend block expects.
func ThemeExtension(tokens map[string]interface{}) map[string]interface{} {
	colors := section(tokens, "colors")
	typo := section(tokens, "typography")
	spacing := section(tokens, "spacing")
	borders := section(tokens, "borders")

	return map[string]interface{}{
		"colors": map[string]interface{}{
			"primary":    colors["primary"],
			"secondary":  colors["secondary"],
			"accent":     colors["accent"],
			"background": colors["background"],
			"surface":    colors["surface"],
			"muted":      colors["text_muted"],
		},
		"fontFamily": map[string]interface{}{
			"sans": []string{str(typo, "font_family", "Inter")},
			"mono": []string{str(typo, "font_family_mono", "monospace")},
		},
		"borderRadius": map[string]interface{}{
			"sm": borders["radius_sm"],
			"md": borders["radius_md"],
			"lg": borders["radius_lg"],
		},
		"spacing": map[string]interface{}{
			"xs": spacing["xs"],
			"sm": spacing["sm"],
			"md": spacing["md"],
			"lg": spacing["lg"],
			"xl": spacing["xl"],
		},
	}
}

func section(tokens map[string]interface{}, name string) map[string]interface{} {
	if m, ok := tokens[name].(map[string]interface{}); ok {
		return m
	}
	return map[string]interface{}{}
}

func str(m map[string]interface{}, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
