package dna

import (
	"context"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/DesignOS/backend/internal/logging"
	"github.com/GriffinCanCode/DesignOS/backend/internal/vision"
	"go.uber.org/zap"
)

// ErrNoImages is returned when extraction is attempted without images.
var ErrNoImages = errors.New("no reference images")

// Extractor runs the full-batch DNA extraction against the vision backend.
type Extractor struct {
	backend vision.Backend
	model   string
	logger  *logging.Logger
}

// NewExtractor creates an extractor bound to a backend.
func NewExtractor(backend vision.Backend, model string, logger *logging.Logger) *Extractor {
	if model == "" {
		model = vision.DefaultModel
	}
	if logger == nil {
		logger = &logging.Logger{Logger: zap.NewNop()}
	}
	return &Extractor{backend: backend, model: model, logger: logger}
}

// Outcome is the result of one extraction run.
type Outcome struct {
	Doc           Document
	Templates     *TemplateSet
	TemplateNames []string
	DecodeKind    Kind
}

// Extract analyzes every image in one multimodal call and decodes the
// result. Template synthesis runs afterwards against the same batch; its
// failure degrades the outcome but never fails the extraction.
func (e *Extractor) Extract(ctx context.Context, images []vision.Image) (*Outcome, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	e.logger.Info("extracting design DNA", zap.Int("images", len(images)))

	text, err := e.backend.Generate(ctx, vision.Request{
		Model:           e.model,
		Images:          images,
		Instruction:     extractionInstruction,
		Temperature:     0.1,
		MaxOutputTokens: 8192,
	})
	if err != nil {
		return nil, fmt.Errorf("dna extraction: %w", err)
	}

	decoded := Decode(text)
	doc := decoded.Doc
	doc[MetadataKey] = map[string]interface{}{
		"image_count":     len(images),
		"model":           e.model,
		"extraction_type": ExtractionExact,
	}

	out := &Outcome{Doc: doc, DecodeKind: decoded.Kind}

	set, err := e.synthesize(ctx, doc, images)
	if err != nil {
		e.logger.Warn("template synthesis failed", zap.Error(err))
		return out, nil
	}
	out.Templates = set
	out.TemplateNames = set.Names()
	return out, nil
}

func (e *Extractor) synthesize(ctx context.Context, doc Document, images []vision.Image) (*TemplateSet, error) {
	syn := NewSynthesizer(e.backend, e.model, e.logger)
	return syn.Synthesize(ctx, doc, images)
}

// extractionInstruction asks for exact, pixel-sampled values across the
// fixed category schema. Wording is deliberate: the granularity of the
// request drives the granularity of the response.
const extractionInstruction = `You are an expert UI designer extracting PIXEL-PERFECT design specifications.

Analyze ALL provided images as a SINGLE app design system. Extract EXACT values - not approximations.
Sample colors DIRECTLY from the pixels. Do not guess or use defaults.

Return a STRICT JSON with these EXACT specifications:

{
    "colors": {
        "header_bg": "#EXACT_HEX - header background color",
        "sidebar_bg": "#EXACT_HEX - sidebar/navbar background",
        "content_bg": "#EXACT_HEX - main content area background",
        "card_bg": "#EXACT_HEX - card/panel background",
        "primary_accent": "#EXACT_HEX - main accent color (buttons, active states) - usually BLUE",
        "primary_accent_glow": "#EXACT_HEX with alpha - glow effect color (e.g., #4263EB33)",
        "secondary_accent": "#EXACT_HEX - secondary accent if present",
        "danger_accent": "#EXACT_HEX - red/danger color for destructive actions or warnings",
        "danger_accent_gradient": "linear-gradient(...) if gradient visible on danger buttons",
        "success_accent": "#EXACT_HEX - green/success color",
        "text_primary": "#EXACT_HEX - main text color (usually white on dark)",
        "text_secondary": "#EXACT_HEX - secondary/muted text",
        "text_label": "#EXACT_HEX - label/caption text",
        "border_default": "#EXACT_HEX - default border color",
        "border_active": "#EXACT_HEX - active/focused border",
        "icon_default": "#EXACT_HEX - default icon color",
        "icon_active": "#EXACT_HEX - active icon color"
    },
    "dimensions": {
        "header_height": "64px or exact value",
        "sidebar_width": "72px or 280px - exact value",
        "content_max_width": "1280px or exact value",
        "content_padding": "32px or exact value",
        "card_padding": "24px or exact value",
        "card_border_radius": "8px or exact value",
        "button_border_radius": "6px or exact value",
        "input_border_radius": "6px or exact value",
        "button_padding_x": "16px",
        "button_padding_y": "8px",
        "input_height": "40px",
        "avatar_size": "32px",
        "icon_size_sm": "16px",
        "icon_size_md": "20px",
        "icon_size_lg": "24px"
    },
    "typography": {
        "font_family": "Inter or exact font name",
        "font_family_mono": "JetBrains Mono or exact",
        "heading_1_size": "32px",
        "heading_1_weight": "700",
        "heading_2_size": "24px",
        "heading_2_weight": "600",
        "heading_3_size": "18px",
        "heading_3_weight": "600",
        "body_size": "14px",
        "body_weight": "400",
        "body_line_height": "1.5",
        "label_size": "12px",
        "label_weight": "500",
        "label_transform": "uppercase or none",
        "button_size": "14px",
        "button_weight": "500"
    },
    "effects": {
        "card_shadow": "0 1px 3px rgba(0,0,0,0.3) or exact CSS shadow",
        "card_border": "1px solid #HEX or none",
        "button_shadow": "none or exact CSS shadow",
        "active_glow": "0 0 20px rgba(66,99,235,0.3) - blue glow for active tabs",
        "active_border_bottom": "2px solid #4263EB - active tab indicator at bottom",
        "active_border_top": "none or 2px solid #HEX if indicator at top",
        "hover_bg_change": "#HEX - background on hover",
        "focus_ring": "2px solid #HEX - focus outline",
        "header_drop_shadow": "0 4px 12px rgba(0,0,0,0.5) - shadow BELOW header separating it from content - IMPORTANT!",
        "section_divider_shadow": "inset shadow or border between sections if visible",
        "inset_shadow": "inset 0 1px 2px rgba(0,0,0,0.1) if visible on inputs/cards"
    },
    "button_variants": {
        "primary": {
            "bg": "#EXACT_HEX - primary button background (MUST be blue/accent like #4263EB or #3B5BDB)",
            "bg_hover": "#EXACT_HEX - slightly darker on hover",
            "text": "#FFFFFF or exact - text MUST be white on colored buttons",
            "border": "none or border style",
            "shadow": "none or shadow style",
            "gradient": "linear-gradient(...) if button has gradient"
        },
        "secondary": {
            "bg": "#EXACT_HEX - secondary button background (often transparent or dark gray)",
            "text": "#EXACT_HEX - secondary button text",
            "border": "1px solid #HEX - exact border color",
            "shadow": "none or shadow"
        },
        "ghost": {
            "bg": "transparent",
            "text": "#EXACT_HEX",
            "border": "none",
            "hover_bg": "#EXACT_HEX with low opacity"
        },
        "outline": {
            "bg": "transparent",
            "text": "#EXACT_HEX",
            "border": "1px solid #HEX"
        },
        "danger": {
            "bg": "#EXACT_HEX - red/danger button background (e.g., #DC2626 or #EF4444)",
            "bg_gradient": "linear-gradient(135deg, #DC2626, #B91C1C) - if gradient visible",
            "text": "#FFFFFF",
            "border": "none",
            "shadow": "0 4px 14px rgba(220,38,38,0.4) - if glow/shadow visible"
        },
        "success": {
            "bg": "#EXACT_HEX - green/success button background",
            "text": "#FFFFFF",
            "border": "none"
        },
        "add_button": {
            "bg": "#EXACT_HEX - lighter gray for add/create buttons",
            "text": "#EXACT_HEX",
            "border": "1px dashed #HEX - EXACT border style (dashed/dotted/solid)",
            "border_style": "dashed or dotted or solid",
            "icon": "plus icon style"
        },
        "icon_button": {
            "bg": "transparent or #EXACT_HEX",
            "text": "#EXACT_HEX",
            "hover_bg": "#EXACT_HEX",
            "size": "32px or 40px"
        }
    },
    "header": {
        "exists": true,
        "position": "fixed or sticky",
        "bg_color": "#EXACT_HEX",
        "border_bottom": "1px solid #HEX or none",
        "drop_shadow": "0 4px 12px rgba(0,0,0,0.5) - shadow below header - CRITICAL for visual separation",
        "logo_position": "left",
        "logo_text": "exact logo text if visible",
        "logo_bg_color": "#EXACT_HEX - background of logo container if present",
        "logo_icon_color": "#EXACT_HEX",
        "has_notifications": true,
        "notification_badge_color": "#EXACT_HEX - red badge color",
        "notification_badge_position": "top-right of bell icon",
        "has_settings": true,
        "has_user_menu": true,
        "user_avatar_bg": "#EXACT_HEX - avatar background color (often purple like #7C3AED)",
        "user_avatar_text": "#EXACT_HEX - avatar text/initials color",
        "user_avatar_ring": "ring-2 ring-#HEX if visible",
        "company_selector": true,
        "company_icon": "building or castle icon style"
    },
    "navbar": {
        "type": "horizontal_stepper or sidebar or tabs",
        "bg_color": "#EXACT_HEX",
        "item_bg_inactive": "#EXACT_HEX - background of inactive items",
        "item_bg_active": "#EXACT_HEX - background of active item (often blue like #3B5BDB)",
        "item_bg_completed": "#EXACT_HEX - background of completed items",
        "item_text_inactive": "#EXACT_HEX - text color of inactive items",
        "item_text_active": "#FFFFFF - text color of active item",
        "item_text_completed": "#EXACT_HEX - text color of completed items",
        "active_indicator_type": "background_fill or bottom_border or top_border or glow",
        "active_indicator_color": "#EXACT_HEX - color of the active indicator",
        "active_border_bottom": "2px solid #EXACT_HEX - EXACT border if present at bottom of active tab",
        "active_border_top": "none or 2px solid #EXACT_HEX",
        "active_glow": "shadow-[inset_0_0_12px_rgba(255,255,255,0.1)] - if glow visible",
        "has_checkmark_icon": true,
        "checkmark_color": "#EXACT_HEX",
        "item_padding": "px-3 py-2 or exact",
        "item_gap": "gap-[1px] or exact",
        "steps": ["STEP 1 NAME", "STEP 2 NAME", "etc - EXACT step names visible"]
    },
    "layout": {
        "structure": "header_top_with_content or sidebar_left or full_width",
        "main_bg": "#EXACT_HEX",
        "sidebar_exists": false,
        "sidebar_width": "0 or exact if exists",
        "content_layout": "grid or single_column or split",
        "grid_columns": "3 or 2 - typical grid columns",
        "section_gap": "32px or exact",
        "card_gap": "16px or exact"
    },
    "components": {
        "button_primary_bg": "#EXACT_HEX - MUST be the accent/brand color (BLUE like #4263EB or #3B5BDB), NEVER white",
        "button_primary_text": "#FFFFFF - MUST be white on blue buttons",
        "button_primary_hover": "#EXACT_HEX - darker shade on hover",
        "button_danger_bg": "#EXACT_HEX - red for danger buttons (e.g., #DC2626)",
        "button_danger_gradient": "linear-gradient(135deg, #DC2626, #B91C1C) if gradient",
        "button_danger_text": "#FFFFFF",
        "button_success_bg": "#EXACT_HEX - green for success",
        "button_secondary_bg": "#EXACT_HEX - usually darker gray or transparent",
        "button_secondary_text": "#EXACT_HEX - usually light gray",
        "button_secondary_border": "#EXACT_HEX - border color",
        "button_ghost_bg": "transparent",
        "button_ghost_text": "#EXACT_HEX",
        "button_ghost_hover_bg": "#EXACT_HEX with alpha - subtle highlight",
        "button_add_bg": "#EXACT_HEX - lighter shade for add/create buttons",
        "button_add_border": "1px dashed #HEX or 1px dotted #HEX - often DASHED for add buttons",
        "button_add_border_style": "dashed or dotted or solid",
        "button_add_text": "#EXACT_HEX",
        "input_bg": "#EXACT_HEX",
        "input_border": "#EXACT_HEX",
        "input_text": "#EXACT_HEX",
        "input_placeholder": "#EXACT_HEX",
        "select_bg": "#EXACT_HEX",
        "select_border": "#EXACT_HEX",
        "card_bg": "#EXACT_HEX",
        "card_border": "#EXACT_HEX or none",
        "card_shadow": "exact CSS shadow if visible",
        "badge_bg": "#EXACT_HEX",
        "badge_text": "#EXACT_HEX",
        "progress_bar_bg": "#EXACT_HEX - background track",
        "progress_bar_fill": "#EXACT_HEX - filled portion (often teal/cyan like #10B981)",
        "table_header_bg": "#EXACT_HEX",
        "table_row_hover": "#EXACT_HEX",
        "table_border": "#EXACT_HEX"
    },
    "accent_colors": {
        "primary_blue": "#EXACT_HEX - main blue accent (e.g., #4263EB, #3B5BDB)",
        "primary_blue_glow": "0 0 20px rgba(66,99,235,0.3)",
        "danger_red": "#EXACT_HEX - red for danger/destructive (e.g., #DC2626, #EF4444)",
        "danger_red_gradient": "linear-gradient(135deg, #DC2626, #B91C1C) if visible",
        "danger_red_glow": "0 4px 14px rgba(220,38,38,0.4) if visible",
        "success_green": "#EXACT_HEX - green for success (e.g., #10B981, #22C55E)",
        "warning_yellow": "#EXACT_HEX - yellow for warnings",
        "info_blue": "#EXACT_HEX - info/secondary blue",
        "purple_accent": "#EXACT_HEX - purple if used (e.g., #7C3AED for avatars)"
    },
    "brand": {
        "logo_text": "exact text",
        "logo_colors": ["#HEX1", "#HEX2"],
        "logo_bg_shape": "circle or rounded-square",
        "logo_bg_color": "#EXACT_HEX",
        "company_name_visible": "Company Name if visible",
        "tagline": "any visible tagline"
    }
}

CRITICAL INSTRUCTIONS - READ CAREFULLY:

1. **EXACT HEX CODES**: Sample colors DIRECTLY from the image pixels. Do not use generic colors.

2. **BUTTONS ARE CRITICAL**:
   - Primary action buttons (like "START ANALYSIS", "CREATE", "SUBMIT") MUST use the accent color (usually BLUE like #4263EB or #3B5BDB), NEVER white background
   - Button text on colored backgrounds MUST be white (#FFFFFF)
   - Danger buttons (red) often have gradients - capture the full gradient if visible
   - Add/Create buttons often have DASHED or DOTTED borders - note the exact border-style

3. **NAVBAR ACTIVE STATE IS CRITICAL**:
   - Active tab often has colored background (blue) or bottom border
   - If there's a bottom border on active tab, capture the exact color and width (e.g., "2px solid #4263EB")
   - If there's a glow effect, capture it

4. **SHADOWS ARE IMPORTANT**:
   - Header MUST have drop shadow separating it from content
   - Capture exact shadow values (e.g., "0 4px 12px rgba(0,0,0,0.5)")
   - Note any inset shadows on cards or inputs

5. **ACCENT COLORS**:
   - Capture ALL accent colors: blue, red/danger, green/success
   - If danger buttons have gradients (like "START ALL ANALYSIS"), capture the gradient

6. **DASHED/DOTTED BORDERS**:
   - Add buttons often have dashed or dotted borders
   - Capture the border-style explicitly (dashed, dotted, or solid)

7. Output must be valid JSON`
