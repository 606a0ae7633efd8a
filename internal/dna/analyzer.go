package dna

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/DesignOS/backend/internal/vision"
)

// Focus narrows a single-image style analysis to one design aspect.
type Focus string

const (
	FocusComprehensive Focus = "comprehensive"
	FocusColors        Focus = "colors"
	FocusTypography    Focus = "typography"
	FocusLayout        Focus = "layout"
	FocusBranding      Focus = "branding"
)

// ParseFocus validates a focus string. Empty means comprehensive.
func ParseFocus(s string) (Focus, error) {
	switch Focus(s) {
	case "":
		return FocusComprehensive, nil
	case FocusComprehensive, FocusColors, FocusTypography, FocusLayout, FocusBranding:
		return Focus(s), nil
	default:
		return "", fmt.Errorf("unknown focus %q: expected comprehensive, colors, typography, layout, or branding", s)
	}
}

// StyleAnalysis is the result of one focused analysis call.
type StyleAnalysis struct {
	Doc        Document
	DecodeKind Kind
	Focus      Focus
}

// AnalyzeStyle runs a focused analysis on a single image. Unlike the
// full-batch extraction this reads one reference in isolation, with a
// looser schema, so it suits exploratory "what is this design doing"
// questions rather than system extraction.
func (e *Extractor) AnalyzeStyle(ctx context.Context, img vision.Image, focus Focus) (*StyleAnalysis, error) {
	instruction, ok := focusInstructions[focus]
	if !ok {
		instruction = focusInstructions[FocusComprehensive]
	}

	e.logger.Info("analyzing design style", zap.String("focus", string(focus)))

	text, err := e.backend.Generate(ctx, vision.Request{
		Model:           e.model,
		Images:          []vision.Image{img},
		Instruction:     instruction,
		Temperature:     0.3,
		MaxOutputTokens: 4096,
	})
	if err != nil {
		return nil, fmt.Errorf("style analysis: %w", err)
	}

	decoded := Decode(text)
	return &StyleAnalysis{Doc: decoded.Doc, DecodeKind: decoded.Kind, Focus: focus}, nil
}

// focusInstructions are the per-focus analysis prompts.
var focusInstructions = map[Focus]string{
	FocusComprehensive: `Analyze this design comprehensively and extract:

1. COLOR PALETTE:
   - Primary color (hex code)
   - Secondary colors (hex codes)
   - Accent colors (hex codes)
   - Background colors
   - Text colors
   - How colors are used (buttons, headers, accents, etc.)

2. TYPOGRAPHY:
   - Heading style (estimated font family, weight, size relationship)
   - Body text style
   - Caption/small text style
   - Text hierarchy and emphasis patterns

3. LAYOUT & SPACING:
   - Grid system (if apparent)
   - Spacing scale (tight, normal, loose)
   - Component arrangement patterns
   - Visual hierarchy

4. DESIGN ELEMENTS:
   - Border radius style (sharp, rounded, pill)
   - Shadow usage
   - Icon style (outlined, filled, duotone)
   - Image treatment

5. OVERALL STYLE:
   - Design era/trend (modern, minimal, playful, corporate, etc.)
   - Mood/feeling
   - Target audience impression

Provide the analysis in a structured JSON format.`,

	FocusColors: `Focus specifically on the color palette in this design:

1. List ALL colors you can identify with their hex codes
2. Categorize each color's role (primary, secondary, accent, background, text)
3. Describe the color relationships (complementary, analogous, etc.)
4. Note any gradients or color transitions
5. Identify the overall color mood (warm, cool, vibrant, muted)

Return as structured JSON with hex codes.`,

	FocusTypography: `Analyze the typography in this design:

1. Identify font characteristics (serif, sans-serif, display, monospace)
2. Describe the type scale (heading sizes relative to body)
3. Note font weights used
4. Analyze line heights and letter spacing
5. Describe text alignment patterns
6. Identify any decorative text treatments

Return as structured JSON.`,

	FocusLayout: `Analyze the layout and composition:

1. Identify the grid system or layout structure
2. Measure approximate spacing patterns
3. Describe component arrangement
4. Note alignment principles used
5. Analyze visual hierarchy and flow
6. Identify responsive design hints

Return as structured JSON.`,

	FocusBranding: `Extract brand identity elements:

1. Logo characteristics and placement
2. Brand colors and their application
3. Consistent design motifs or patterns
4. Brand personality conveyed
5. Unique stylistic elements that define the brand

Return as structured JSON.`,
}
