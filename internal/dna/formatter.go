package dna

import (
	"fmt"
	"sort"
	"strings"
)

// Fallback values for the rules that are always emitted. Generated
// screens break visibly when these drift, so the rules carry defaults
// even for a sparse document.
const (
	fallbackPrimaryBG   = "#4263EB"
	fallbackDangerBG    = "#DC2626"
	fallbackAddBG       = "#1A1A1F"
	fallbackAddBorder   = "#3F3F46"
	fallbackAddText     = "#9CA3AF"
	fallbackButtonText  = "#FFFFFF"
	sectionDividerWidth = 60
)

// Format renders the design constraint block injected into every
// generation prompt. Pure and deterministic: the same document and
// templates always produce byte-identical output. Sections backed by
// absent categories are omitted; the critical color rules are always
// present, falling back to known-good constants.
func Format(doc Document, templates *TemplateSet) string {
	if len(doc) == 0 && templates.Empty() {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n=== 🧬 BUSINESS DNA - APPLY THIS DESIGN SYSTEM! ===\n\n")
	b.WriteString("You MUST use these exact design specifications from the uploaded reference images:\n")

	writeColorTable(&b, doc)
	writeCriticalRules(&b, doc)
	writeTypography(&b, doc)
	writeSpacing(&b, doc)
	writeComponents(&b, doc)
	writeLayoutTemplate(&b, doc)
	writeCommonPatterns(&b, doc)
	writeUIPatterns(&b, doc)
	writeMood(&b, doc)

	b.WriteString("\n=== END BUSINESS DNA ===\n")

	writeTemplates(&b, templates)
	writeClosingChecklist(&b, templates)

	return b.String()
}

func writeColorTable(b *strings.Builder, doc Document) {
	colors := doc.Section("colors")
	if colors == nil {
		return
	}
	b.WriteString("\n📎 COLOR PALETTE (use these EXACT hex codes in Tailwind):\n")
	for _, name := range sortedKeys(colors) {
		if v, ok := colors[name].(string); ok && strings.HasPrefix(v, "#") {
			fmt.Fprintf(b, "  - %s: %s → use bg-[%s], text-[%s], border-[%s]\n", name, v, v, v, v)
		}
	}
}

func writeCriticalRules(b *strings.Builder, doc Document) {
	b.WriteString("\n\n🚨 CRITICAL COLOR RULES - MUST FOLLOW EXACTLY 🚨\n")
	b.WriteString(strings.Repeat("=", sectionDividerWidth) + "\n")

	variants := doc.Section("button_variants")
	components := doc.Section("components")

	b.WriteString("\n🔵 PRIMARY BUTTONS (action buttons like 'Start', 'Create', 'Submit'):\n")
	primaryBG := fallbackPrimaryBG
	var primaryGradient string
	if variants != nil {
		if primary, ok := variants["primary"].(map[string]interface{}); ok {
			if bg, ok := primary["bg"].(string); ok && bg != "" {
				primaryBG = bg
			} else if colors := doc.Section("colors"); colors != nil {
				if accent, ok := colors["primary_accent"].(string); ok && accent != "" {
					primaryBG = accent
				}
			}
			primaryGradient, _ = primary["gradient"].(string)
		}
	} else if components != nil {
		if bg, ok := components["button_primary_bg"].(string); ok && bg != "" {
			primaryBG = bg
		}
	}
	fmt.Fprintf(b, "   → Background: bg-[%s] - MUST be blue/accent, NEVER white!\n", primaryBG)
	b.WriteString("   → Text: text-white - ALWAYS white on colored buttons!\n")
	if primaryGradient != "" {
		fmt.Fprintf(b, "   → Gradient: %s\n", primaryGradient)
	}

	b.WriteString("\n🔴 DANGER BUTTONS (destructive actions):\n")
	dangerBG := fallbackDangerBG
	var dangerGradient, dangerShadow string
	if variants != nil {
		if danger, ok := variants["danger"].(map[string]interface{}); ok {
			if bg, ok := danger["bg"].(string); ok && bg != "" {
				dangerBG = bg
			}
			dangerGradient, _ = danger["bg_gradient"].(string)
			dangerShadow, _ = danger["shadow"].(string)
		}
	} else if components != nil {
		if bg, ok := components["button_danger_bg"].(string); ok && bg != "" {
			dangerBG = bg
		}
		dangerGradient, _ = components["button_danger_gradient"].(string)
	}
	fmt.Fprintf(b, "   → Background: bg-[%s]\n", dangerBG)
	if dangerGradient != "" {
		fmt.Fprintf(b, "   → Gradient: bg-gradient-to-r %s\n", dangerGradient)
	}
	b.WriteString("   → Text: text-white\n")
	if dangerShadow != "" {
		fmt.Fprintf(b, "   → Shadow/Glow: %s\n", dangerShadow)
	}

	b.WriteString("\n➕ ADD/CREATE BUTTONS (often have dashed borders):\n")
	addBG, addBorder, addStyle, addText := fallbackAddBG, fallbackAddBorder, "dashed", fallbackAddText
	if variants != nil {
		if add, ok := variants["add_button"].(map[string]interface{}); ok {
			if v, ok := add["bg"].(string); ok && v != "" {
				addBG = v
			}
			if v, ok := add["border"].(string); ok && v != "" {
				addBorder = stripBorderPrefix(v)
			}
			if v, ok := add["border_style"].(string); ok && v != "" {
				addStyle = v
			}
			if v, ok := add["text"].(string); ok && v != "" {
				addText = v
			}
		}
	} else if components != nil {
		if v, ok := components["button_add_bg"].(string); ok && v != "" {
			addBG = v
		}
		if v, ok := components["button_add_border"].(string); ok && v != "" {
			addBorder = stripBorderPrefix(v)
		}
		if v, ok := components["button_add_border_style"].(string); ok && v != "" {
			addStyle = v
		}
		if v, ok := components["button_add_text"].(string); ok && v != "" {
			addText = v
		}
	}
	fmt.Fprintf(b, "   → Background: bg-[%s]\n", addBG)
	fmt.Fprintf(b, "   → Border: border-%s border-[%s]\n", addStyle, addBorder)
	fmt.Fprintf(b, "   → Text: text-[%s]\n", addText)

	if navbar := doc.Section("navbar"); navbar != nil {
		b.WriteString("\n📍 NAVBAR ACTIVE STATE (CRITICAL for visual consistency):\n")
		if v, ok := navbar["item_bg_active"].(string); ok && v != "" {
			fmt.Fprintf(b, "   → Active item background: bg-[%s]\n", v)
		}
		if v, ok := navbar["item_text_active"].(string); ok && v != "" {
			fmt.Fprintf(b, "   → Active item text: text-[%s]\n", v)
		}
		if v, ok := navbar["active_border_bottom"].(string); ok && v != "" && v != "none" {
			fmt.Fprintf(b, "   → Active indicator (bottom border): %s\n", v)
			b.WriteString("   → Use: border-b-2 border-[#...] on active tab\n")
		}
		if v, ok := navbar["active_glow"].(string); ok && v != "" {
			fmt.Fprintf(b, "   → Active glow effect: %s\n", v)
		}
	}

	if effects := doc.Section("effects"); effects != nil {
		b.WriteString("\n🌑 SHADOWS (important for depth and visual hierarchy):\n")
		if v, ok := effects["header_drop_shadow"].(string); ok && v != "" {
			fmt.Fprintf(b, "   → Header shadow: shadow-[%s]\n", v)
			b.WriteString("   → MUST add shadow below header to separate from content!\n")
		}
		if v, ok := effects["card_shadow"].(string); ok && v != "" {
			fmt.Fprintf(b, "   → Card shadow: shadow-[%s]\n", v)
		}
	}

	if header := doc.Section("header"); header != nil {
		b.WriteString("\n🔝 HEADER STYLING:\n")
		if v, ok := header["drop_shadow"].(string); ok && v != "" {
			fmt.Fprintf(b, "   → Drop shadow: %s\n", v)
			b.WriteString("   → Add shadow-[0_4px_12px_rgba(0,0,0,0.5)] or similar!\n")
		}
		if v, ok := header["notification_badge_color"].(string); ok && v != "" {
			fmt.Fprintf(b, "   → Notification badge: bg-[%s]\n", v)
		}
		if v, ok := header["user_avatar_bg"].(string); ok && v != "" {
			fmt.Fprintf(b, "   → Avatar background: bg-[%s]\n", v)
		}
	}

	if accents := doc.Section("accent_colors"); accents != nil {
		b.WriteString("\n🎨 ACCENT COLOR QUICK REFERENCE:\n")
		for _, entry := range []struct{ key, label string }{
			{"primary_blue", "Primary (buttons, active)"},
			{"danger_red", "Danger (destructive actions)"},
			{"success_green", "Success (confirmations)"},
			{"purple_accent", "Purple (avatars, badges)"},
		} {
			if v, ok := accents[entry.key].(string); ok && v != "" {
				fmt.Fprintf(b, "   → %s: %s\n", entry.label, v)
			}
		}
	}

	b.WriteString("\n" + strings.Repeat("=", sectionDividerWidth) + "\n")
	b.WriteString("END CRITICAL COLOR RULES\n")
}

func writeTypography(b *strings.Builder, doc Document) {
	typo := doc.Section("typography")
	if typo == nil {
		return
	}
	b.WriteString("\n📝 TYPOGRAPHY:\n")
	for _, entry := range []struct{ key, label string }{
		{"font_family", "Font family"},
		{"heading_weight", "Heading weight"},
		{"body_weight", "Body weight"},
		{"body_size", "Body size"},
	} {
		if v, ok := typo[entry.key].(string); ok && v != "" {
			fmt.Fprintf(b, "  - %s: %s\n", entry.label, v)
		}
	}
	if sizes, ok := typo["heading_sizes"].(map[string]interface{}); ok {
		b.WriteString("  - Heading sizes:\n")
		for _, level := range sortedKeys(sizes) {
			fmt.Fprintf(b, "      %s: %v\n", level, sizes[level])
		}
	}
}

func writeSpacing(b *strings.Builder, doc Document) {
	spacing := doc.Section("spacing")
	if spacing == nil {
		return
	}
	b.WriteString("\n📏 SPACING:\n")
	for _, name := range sortedKeys(spacing) {
		fmt.Fprintf(b, "  - %s: %v\n", titleCase(name), spacing[name])
	}
}

func writeComponents(b *strings.Builder, doc Document) {
	comp := doc.Section("components")
	if comp == nil {
		return
	}
	b.WriteString("\n🔲 COMPONENT STYLING:\n")
	for _, name := range sortedKeys(comp) {
		fmt.Fprintf(b, "  - %s: %v\n", titleCase(name), comp[name])
	}
}

func writeLayoutTemplate(b *strings.Builder, doc Document) {
	layout := doc.Section("layout_template")
	if layout == nil {
		return
	}
	b.WriteString("\n📐 LAYOUT TEMPLATE (CRITICAL - follow this structure!):\n")
	if v, ok := layout["page_structure"].(string); ok && v != "" {
		fmt.Fprintf(b, "  - Page structure: %s\n", v)
	}
	if sidebar, ok := layout["sidebar"].(map[string]interface{}); ok {
		if exists, _ := sidebar["exists"].(bool); exists {
			fmt.Fprintf(b, "  - SIDEBAR: %s side, width %s, %s style\n",
				stringOr(sidebar, "position", "left"),
				stringOr(sidebar, "width", "w-64"),
				stringOr(sidebar, "style", "dark"))
			if has, _ := sidebar["has_logo"].(bool); has {
				b.WriteString("    • Include logo/branding at top of sidebar\n")
			}
			if has, _ := sidebar["has_nav_items"].(bool); has {
				b.WriteString("    • Include navigation menu items\n")
			}
		} else {
			b.WriteString("  - SIDEBAR: None (no sidebar in this design)\n")
		}
	}
	if header, ok := layout["header"].(map[string]interface{}); ok {
		if exists, _ := header["exists"].(bool); exists {
			fmt.Fprintf(b, "  - HEADER: height %s, position %s\n",
				stringOr(header, "height", "h-16"), stringOr(header, "style", "sticky"))
			var features []string
			if has, _ := header["has_breadcrumbs"].(bool); has {
				features = append(features, "breadcrumbs")
			}
			if has, _ := header["has_search"].(bool); has {
				features = append(features, "search bar")
			}
			if has, _ := header["has_user_menu"].(bool); has {
				features = append(features, "user menu/avatar")
			}
			if len(features) > 0 {
				fmt.Fprintf(b, "    • Header should include: %s\n", strings.Join(features, ", "))
			}
		}
	}
	if content, ok := layout["content_area"].(map[string]interface{}); ok {
		fmt.Fprintf(b, "  - CONTENT AREA: max-width %s, padding %s\n",
			stringOr(content, "max_width", "max-w-7xl"), stringOr(content, "padding", "p-6"))
	}
}

func writeCommonPatterns(b *strings.Builder, doc Document) {
	patterns := doc.Section("common_patterns")
	if patterns == nil {
		return
	}
	b.WriteString("\n🧩 COMMON UI PATTERNS (use these patterns!):\n")
	for _, entry := range []struct{ key, label string }{
		{"card_layout", "Card arrangement"},
		{"grid_columns", "Grid columns"},
		{"table_style", "Table style"},
		{"form_layout", "Form layout"},
		{"section_headers", "Section headers"},
		{"empty_states", "Empty states"},
		{"loading_states", "Loading states"},
	} {
		if v, ok := patterns[entry.key]; ok && v != nil && v != "" {
			fmt.Fprintf(b, "  - %s: %v\n", entry.label, v)
		}
	}
}

func writeUIPatterns(b *strings.Builder, doc Document) {
	ui := doc.Section("ui_patterns")
	if ui == nil {
		return
	}
	b.WriteString("\n🎯 UI ELEMENT PATTERNS:\n")
	for _, entry := range []struct{ key, label string }{
		{"navigation_style", "Navigation style"},
		{"data_display", "Data display method"},
		{"action_placement", "Action button placement"},
		{"status_indicators", "Status indicators"},
		{"icon_style", "Icon style"},
	} {
		if v, ok := ui[entry.key]; ok && v != nil && v != "" {
			fmt.Fprintf(b, "  - %s: %v\n", entry.label, v)
		}
	}
}

func writeMood(b *strings.Builder, doc Document) {
	mood := doc.Section("mood")
	if mood == nil {
		return
	}
	b.WriteString("\n✨ DESIGN MOOD:\n")
	if v, ok := mood["overall"].(string); ok && v != "" {
		fmt.Fprintf(b, "  - Overall style: %s\n", v)
	}
	if v, ok := mood["feeling"].(string); ok && v != "" {
		fmt.Fprintf(b, "  - Feeling: %s\n", v)
	}
}

func writeTemplates(b *strings.Builder, templates *TemplateSet) {
	if templates.Empty() {
		return
	}
	b.WriteString("\n=== 🎨 COMPONENT TEMPLATES - USE THESE EXACT COMPONENTS! ===\n\n")
	b.WriteString("These templates are extracted from the uploaded designs. USE THEM EXACTLY.\n")

	if templates.HeaderCode != "" {
		b.WriteString("\n### HEADER TEMPLATE (include this EXACTLY in your component):\n")
		b.WriteString("```tsx\n" + templates.HeaderCode + "\n```\n")
	}
	if templates.NavbarCode != "" {
		b.WriteString("\n### NAVBAR TEMPLATE (include this EXACTLY, pass activeStep prop):\n")
		b.WriteString("```tsx\n" + templates.NavbarCode + "\n```\n")
	}
	if templates.LayoutCode != "" {
		b.WriteString("\n### LAYOUT WRAPPER (your content goes in the {children} slot):\n")
		b.WriteString("```tsx\n" + templates.LayoutCode + "\n```\n")
	}

	b.WriteString("\n=== END COMPONENT TEMPLATES ===\n")
	b.WriteString("\nCRITICAL: Your generated screen MUST:\n")
	b.WriteString("1. Use the EXACT HeaderTemplate code - don't modify it\n")
	b.WriteString("2. Use the EXACT NavbarTemplate code - only change activeStep prop\n")
	b.WriteString("3. Put your screen content inside the LayoutTemplate\n")
	b.WriteString("4. The header and navbar must look IDENTICAL to the reference images\n")
}

func writeClosingChecklist(b *strings.Builder, templates *TemplateSet) {
	b.WriteString("\nCRITICAL INSTRUCTIONS:\n")
	b.WriteString("1. Use the EXACT hex color codes provided, not generic Tailwind colors\n")
	b.WriteString("2. Follow the LAYOUT TEMPLATE structure exactly (sidebar position, header style, etc.)\n")
	b.WriteString("3. Apply the UI PATTERNS consistently (card layouts, navigation style, etc.)\n")
	if !templates.Empty() {
		b.WriteString("4. USE THE COMPONENT TEMPLATES EXACTLY - they ensure visual consistency\n")
	}
}

func stripBorderPrefix(border string) string {
	for _, prefix := range []string{"1px dashed ", "1px dotted ", "1px solid "} {
		border = strings.ReplaceAll(border, prefix, "")
	}
	return border
}

func titleCase(snake string) string {
	words := strings.Split(snake, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
