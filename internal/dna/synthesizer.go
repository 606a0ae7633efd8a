package dna

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/GriffinCanCode/DesignOS/backend/internal/logging"
	"github.com/GriffinCanCode/DesignOS/backend/internal/vision"
	"go.uber.org/zap"
)

// ErrNoTemplates is returned when no usable template could be recovered.
var ErrNoTemplates = errors.New("no templates extracted")

// Synthesizer generates reusable header/navbar/layout components from
// the first reference image constrained by the extracted DNA.
type Synthesizer struct {
	backend vision.Backend
	model   string
	logger  *logging.Logger
}

// NewSynthesizer creates a synthesizer bound to a backend.
func NewSynthesizer(backend vision.Backend, model string, logger *logging.Logger) *Synthesizer {
	if model == "" {
		model = vision.DefaultModel
	}
	if logger == nil {
		logger = &logging.Logger{Logger: zap.NewNop()}
	}
	return &Synthesizer{backend: backend, model: model, logger: logger}
}

// Synthesize runs one model call with the first image as visual anchor
// and the full DNA document as constraint.
func (s *Synthesizer) Synthesize(ctx context.Context, doc Document, images []vision.Image) (*TemplateSet, error) {
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	dnaJSON, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode dna: %w", err)
	}

	text, err := s.backend.Generate(ctx, vision.Request{
		Model:           s.model,
		Images:          images[:1],
		Instruction:     synthesisInstruction(string(dnaJSON)),
		Temperature:     0.2,
		MaxOutputTokens: 16384,
	})
	if err != nil {
		return nil, fmt.Errorf("template synthesis: %w", err)
	}

	set, kind := DecodeTemplates(text)
	if set == nil {
		return nil, ErrNoTemplates
	}
	if kind == Partial {
		s.logger.Warn("template JSON parse failed, recovered named blocks",
			zap.Strings("templates", set.Names()))
	}
	return set, nil
}

func synthesisInstruction(dnaJSON string) string {
	return fmt.Sprintf(`You are an expert React developer. Generate EXACT pixel-perfect React component code.

DESIGN DNA (use these EXACT values):
%s

Using the image and DNA above, generate THREE separate React components that can be REUSED across all screens:

1. **HeaderTemplate** - The EXACT header from the image:
   - Use exact colors from DNA (header_bg, text colors, etc.)
   - Include logo/brand (position, colors from DNA brand section)
   - Include notification bell with badge if present
   - Include settings icon if present
   - Include user avatar/menu (use avatar colors from DNA)
   - Include any company selector dropdown

2. **NavbarTemplate** - The EXACT navigation/stepper from the image:
   - Use exact colors from DNA (navbar section)
   - Include ALL step names from DNA (navbar.steps)
   - Include active state styling (glow, border, background from DNA)
   - Include completion checkmarks if present
   - Pass activeStep as a prop to highlight current step

3. **LayoutTemplate** - The shell that wraps content:
   - Use exact background colors from DNA
   - Include HeaderTemplate at top
   - Include NavbarTemplate below header
   - Include a {children} slot for page content
   - Use exact padding/spacing from DNA dimensions

Return as JSON with this structure:
{
    "header_code": "// Full React component code for HeaderTemplate with exact Tailwind classes using DNA colors",
    "navbar_code": "// Full React component code for NavbarTemplate with activeStep prop",
    "layout_code": "// Full React component code for LayoutTemplate that uses Header and Navbar"
}

CRITICAL RULES:
1. Use EXACT hex codes from DNA in Tailwind arbitrary values: bg-[#111318], text-[#F8F9FA]
2. Use EXACT dimensions: h-[64px], w-[72px], p-[32px]
3. Include ALL icons from lucide-react that are visible
4. The header and navbar must look IDENTICAL to the screenshot
5. Make components self-contained with all imports
6. Use TypeScript with proper types
7. Export each component as default`, dnaJSON)
}
