package dna

import (
	"fmt"
	"strings"
)

// Document is an extracted design DNA keyed by category. Values mirror
// the JSON the vision backend returns, so sections are nested maps.
type Document map[string]interface{}

// Metadata keys attached to every extracted document.
const (
	MetadataKey     = "_metadata"
	RawAnalysisKey  = "raw_analysis"
	ExtractionExact = "pixel_perfect"
)

// Section returns a named category as a map, or nil if absent or not a map.
func (d Document) Section(name string) map[string]interface{} {
	if d == nil {
		return nil
	}
	if m, ok := d[name].(map[string]interface{}); ok {
		return m
	}
	return nil
}

// Has reports whether a category is present.
func (d Document) Has(name string) bool {
	_, ok := d[name]
	return ok
}

// IsRaw reports whether the document is an unparsed fallback.
func (d Document) IsRaw() bool {
	_, ok := d[RawAnalysisKey]
	return ok
}

// Summary renders a short human-readable digest of the document.
func (d Document) Summary() string {
	var parts []string

	if colors := d.Section("colors"); colors != nil {
		parts = append(parts, fmt.Sprintf("Colors: primary %s, secondary %s",
			stringOr(colors, "primary", "N/A"), stringOr(colors, "secondary", "N/A")))
	}
	if typo := d.Section("typography"); typo != nil {
		parts = append(parts, fmt.Sprintf("Typography: %s, headings %s",
			stringOr(typo, "font_family", "sans-serif"), stringOr(typo, "heading_weight", "bold")))
	}
	if comp := d.Section("components"); comp != nil {
		parts = append(parts, fmt.Sprintf("Components: %s, %s",
			stringOr(comp, "border_radius", "rounded"), stringOr(comp, "shadow", "shadow-md")))
	}
	if layout := d.Section("layout_template"); layout != nil {
		structure := stringOr(layout, "page_structure", "unknown")
		sidebar := ""
		if sb, ok := layout["sidebar"].(map[string]interface{}); ok {
			if exists, _ := sb["exists"].(bool); exists {
				sidebar = fmt.Sprintf(", sidebar %s", stringOr(sb, "position", "left"))
			}
		}
		parts = append(parts, fmt.Sprintf("Layout: %s%s", structure, sidebar))
	}
	if patterns := d.Section("common_patterns"); patterns != nil {
		parts = append(parts, fmt.Sprintf("Patterns: %s cards, %s data",
			stringOr(patterns, "card_layout", "grid"), stringOr(patterns, "data_display", "tables")))
	}
	if mood := d.Section("mood"); mood != nil {
		parts = append(parts, fmt.Sprintf("Mood: %s - %s",
			stringOr(mood, "overall", "modern"), stringOr(mood, "feeling", "")))
	}

	if len(parts) == 0 {
		return "Design DNA extracted (see full details)"
	}
	return strings.Join(parts, "\n")
}

func stringOr(m map[string]interface{}, key, fallback string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// TemplateSet holds reusable component templates synthesized from the
// reference images. Fields are independently optional.
type TemplateSet struct {
	HeaderCode string `json:"header_code,omitempty"`
	NavbarCode string `json:"navbar_code,omitempty"`
	LayoutCode string `json:"layout_code,omitempty"`
}

// Names returns the populated template keys in canonical order.
func (t *TemplateSet) Names() []string {
	if t == nil {
		return nil
	}
	var names []string
	if t.HeaderCode != "" {
		names = append(names, "header_code")
	}
	if t.NavbarCode != "" {
		names = append(names, "navbar_code")
	}
	if t.LayoutCode != "" {
		names = append(names, "layout_code")
	}
	return names
}

// Empty reports whether no template field is populated.
func (t *TemplateSet) Empty() bool {
	return t == nil || (t.HeaderCode == "" && t.NavbarCode == "" && t.LayoutCode == "")
}
