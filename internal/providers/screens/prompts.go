package screens

import (
	"fmt"
	"strings"
)

// shadcnComponents is the component allowlist shared with the sandbox
// build. Components outside this list fail the frontend build.
const shadcnComponents = `
AVAILABLE shadcn/ui COMPONENTS (ONLY use these - others will cause build errors!):
- Button (from @/components/ui/button)
- Card, CardHeader, CardTitle, CardDescription, CardContent, CardFooter (from @/components/ui/card)
- Input (from @/components/ui/input)
- Textarea (from @/components/ui/textarea)
- Label (from @/components/ui/label)
- Checkbox (from @/components/ui/checkbox)
- Switch (from @/components/ui/switch)
- Slider (from @/components/ui/slider)
- Select, SelectTrigger, SelectContent, SelectItem, SelectValue (from @/components/ui/select)
- Badge (from @/components/ui/badge)
- Avatar, AvatarImage, AvatarFallback (from @/components/ui/avatar)
- Progress (from @/components/ui/progress)
- Skeleton (from @/components/ui/skeleton)
- Table, TableHeader, TableBody, TableRow, TableHead, TableCell (from @/components/ui/table)
- Tabs, TabsList, TabsTrigger, TabsContent (from @/components/ui/tabs)
- Dialog, DialogTrigger, DialogContent, DialogHeader, DialogTitle, DialogDescription (from @/components/ui/dialog)
- DropdownMenu, DropdownMenuTrigger, DropdownMenuContent, DropdownMenuItem (from @/components/ui/dropdown-menu)
- Tooltip, TooltipTrigger, TooltipContent, TooltipProvider (from @/components/ui/tooltip)
- HoverCard, HoverCardTrigger, HoverCardContent (from @/components/ui/hover-card)
- ScrollArea (from @/components/ui/scroll-area)
- Separator (from @/components/ui/separator)
- Alert, AlertTitle, AlertDescription (from @/components/ui/alert)

DO NOT USE these components (not installed, will cause build errors):
- Collapsible, Accordion, Command, Popover, Sheet, Toast, Toaster, Menubar, NavigationMenu
- RadioGroup, Form, Calendar, DatePicker, Combobox, Carousel, Drawer, Resizable
`

// systemPrompt frames every image-to-code conversion.
const systemPrompt = `You are an expert frontend developer specializing in React, Tailwind CSS, and shadcn/ui components.

Your task is to convert UI screenshots into pixel-perfect React code. Follow these rules:

1. **Accuracy**: Replicate the UI as closely as possible - same layout, colors, spacing, typography
2. **Technology Stack**:
   - React functional components with TypeScript
   - Tailwind CSS for all styling (no inline styles or CSS files)
   - shadcn/ui components where applicable (Button, Card, Input, Badge, etc.)
3. **Code Quality**:
   - Clean, readable code with proper indentation
   - Semantic HTML elements
   - Responsive considerations where obvious
4. **Color Matching**: Extract exact colors from the image and use them (hex codes in Tailwind arbitrary values like ` + "`bg-[#1a1a2e]`" + `)
5. **Typography**: Match font sizes, weights, and spacing precisely
6. **Layout**: Use Flexbox/Grid appropriately, match padding/margins exactly
7. **CRITICAL - JSX Syntax**:
   - In JSX text content, special characters like ` + "`>`" + ` and ` + "`<`" + ` MUST be escaped
   - Use ` + "`{'>'}`" + ` or ` + "`&gt;`" + ` instead of ` + "`>`" + ` in text content
   - Use ` + "`{'<'}`" + ` or ` + "`&lt;`" + ` instead of ` + "`<`" + ` in text content
   - Example: ` + "`<div>{'>'} Connecting...</div>`" + ` NOT ` + "`<div>> Connecting...</div>`" + `
   - This prevents parsing errors and ensures the code compiles correctly
` + shadcnComponents + `
The code should be complete and runnable with a default export.

Always return JSON: {"code": "...", "component_name": "...", "description": "..."}`

// jsxRules restates the escaping constraint for modification prompts.
const jsxRules = `CRITICAL - JSX Syntax Rules:
- In JSX text content, special characters like ` + "`>`" + ` and ` + "`<`" + ` MUST be escaped
- Use ` + "`{'>'}`" + ` or ` + "`&gt;`" + ` instead of ` + "`>`" + ` in text content
- Use ` + "`{'<'}`" + ` or ` + "`&lt;`" + ` instead of ` + "`<`" + ` in text content
- Example: ` + "`<div>{'>'} Connecting...</div>`" + ` NOT ` + "`<div>> Connecting...</div>`" + `
- This prevents parsing errors and ensures the code compiles correctly`

// sceneDecomposition keeps generation from cloning reference content.
// The reference supplies style only, the description supplies content.
func sceneDecomposition(name, description string) string {
	short := description
	if len(short) > 100 {
		short = short[:100] + "..."
	}
	return fmt.Sprintf(`
VISUAL REFERENCE IMAGE PROVIDED - CRITICAL INSTRUCTIONS:

STYLE EXTRACTION (DO this):
- Extract the EXACT color palette (header bg, button colors, text colors, borders)
- Match the EXACT typography (font sizes, weights, letter spacing)
- Copy the EXACT spacing patterns (padding, margins, gaps between elements)
- Replicate the EXACT component styling (button radius, shadows, borders)
- Match the header, navbar, and layout structure PIXEL-PERFECTLY

SCENE DECOMPOSITION (DO NOT simply copy content):
The reference image shows a specific screen state. DO NOT just rebuild what you see!
Instead:
1. EXTRACT the visual STYLE (colors, fonts, spacing, shadows)
2. APPLY that style to the DESCRIPTION provided ("%s" - "%s")
3. Generate NEW content that matches the description while using the extracted style

Example of WRONG approach:
- Image shows a "History Analysis" screen -> You generate "History Analysis" even if description says "Settings"
- Image shows 3 table rows -> You copy those exact 3 rows

Example of CORRECT approach:
- Image shows a "History Analysis" screen with blue headers and rounded tables
- Description says "Settings page with user preferences"
- You generate a SETTINGS PAGE using the same blue headers, rounded tables, and visual style

YOUR TASK:
1. From the image: Extract colors, fonts, shadows, borders, spacing, layout patterns
2. From the description: Understand what content/functionality to build
3. Generate: A screen that LOOKS like it belongs to the same app (matching style) but shows the content described

The generated screen must be VISUALLY INDISTINGUISHABLE from the reference app in terms of:
- Header appearance (same background, logo position, icons)
- Navigation styling (same active states, borders, colors)
- Button colors (EXACT hex codes - primary buttons MUST use the accent color)
- Typography (same sizes, weights, colors)
- Shadows and borders (EXACT CSS shadow values)
- Overall dark/light theme`, name, short)
}

// templateUsage is appended when layout templates were synthesized.
const templateUsage = `
CRITICAL - TEMPLATE USAGE:
Component templates have been extracted from the reference images. Your generated component MUST:
1. Include the EXACT HeaderTemplate code at the top of your component
2. Include the EXACT NavbarTemplate code below the header
3. Put your unique screen content below the navbar
4. The header and navbar must be PIXEL-PERFECT matches to the reference images
5. DO NOT modify the header or navbar - only generate the main content area differently

The templates are included in the BUSINESS DNA section above. Copy them EXACTLY into your component.
`

func conversionPrompt(componentName, dnaContext, instructions string) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	fmt.Fprintf(&b, "\n\nAnalyze this UI screenshot and convert it to a React component named %q.\n", componentName)
	b.WriteString("\nGenerate complete, runnable React + Tailwind CSS code that replicates this UI exactly.\n")
	b.WriteString(dnaContext)
	b.WriteString(`
Requirements:
- Use TypeScript
- Use Tailwind CSS for ALL styling
- Match colors, spacing, and layout precisely
- Use shadcn/ui components where appropriate (Button, Card, Input, Badge, Tabs, etc.)
- Include all visible text content
- Make interactive elements look clickable`)
	if instructions != "" {
		fmt.Fprintf(&b, "\n\nAdditional instructions: %s", instructions)
	}
	b.WriteString("\n\nReturn the code in the structured JSON format specified.")
	return b.String()
}

func modificationPrompt(request, code, dnaContext, selectedElement string) string {
	var b strings.Builder
	b.WriteString(`You are an expert React developer. Modify the given code according to the user's request.
Keep the code structure intact and only change what's necessary.
Maintain the same coding style and conventions.
Output only the complete modified code, no explanations.
`)
	b.WriteString(dnaContext)
	b.WriteString("\n")
	b.WriteString(jsxRules)
	b.WriteString("\n")
	b.WriteString(shadcnComponents)
	fmt.Fprintf(&b, "\nHere is the current React component code:\n\n```tsx\n%s\n```\n\nModification request: %s", code, request)
	if selectedElement != "" {
		fmt.Fprintf(&b, "\n\nThe user has selected this element: %s", selectedElement)
		b.WriteString("\nApply the modification specifically to this element.")
	}
	b.WriteString(`

Apply the requested modification and return the complete updated code.
Keep all other parts of the code unchanged.
Return JSON: {"code": "...", "changes_summary": "..."}`)
	return b.String()
}

type generationInputs struct {
	Name           string
	Description    string
	DNAContext     string
	StyleReference string
	ReferenceCode  string
	HasImage       bool
	HasTemplates   bool
}

func generationPrompt(in generationInputs) string {
	var b strings.Builder
	b.WriteString("You are an expert frontend developer specializing in React, Tailwind CSS, and shadcn/ui components.\n\n")
	b.WriteString("Generate a STATIC React component based on this description:\n\n")
	fmt.Fprintf(&b, "COMPONENT NAME: %s\n\nDESCRIPTION:\n%s\n", in.Name, in.Description)
	b.WriteString(in.DNAContext)

	if in.StyleReference != "" {
		fmt.Fprintf(&b, "\n\nSTYLE REQUIREMENTS:\n%s", in.StyleReference)
	}

	if in.ReferenceCode != "" {
		fmt.Fprintf(&b, `

STYLE REFERENCE CODE:
You must match the visual style (colors, typography, spacing, component patterns) of this existing screen:

`+"```tsx\n%s\n```"+`

Extract and reuse:
- Color scheme (exact hex codes)
- Typography styles (font sizes, weights)
- Spacing patterns (padding, margins, gaps)
- Component styling patterns (cards, buttons, etc.)
- Layout patterns (grids, flex layouts)
`, in.ReferenceCode)
	}

	if in.HasImage {
		b.WriteString(sceneDecomposition(in.Name, in.Description))
	}
	if in.HasTemplates {
		b.WriteString(templateUsage)
	}

	b.WriteString(`
REQUIREMENTS:
1. React functional component with TypeScript
2. Tailwind CSS for ALL styling (no inline styles or CSS files)
3. shadcn/ui components where applicable (Button, Card, Input, Badge, etc.)
4. Static component - use mock data, no state management needed
5. Complete, runnable code with default export
6. CRITICAL - JSX Syntax:
   - In JSX text content, special characters like ` + "`>`" + ` and ` + "`<`" + ` MUST be escaped
   - Use ` + "`{'>'}`" + ` or ` + "`&gt;`" + ` instead of ` + "`>`" + ` in text content
   - Use ` + "`{'<'}`" + ` or ` + "`&lt;`" + ` instead of ` + "`<`" + ` in text content
7. If COMPONENT TEMPLATES are provided above, you MUST include them EXACTLY
   - Copy the header and navbar code exactly as provided
   - Only change the main content area based on the description
   - This ensures all screens look like they're from the same app
8. CRITICAL - COLOR ACCURACY:
   - Primary buttons MUST use the accent color (blue like #4263EB or #3B5BDB), NEVER white background
   - Button text on colored backgrounds MUST be white
   - Danger buttons (red) should use exact red from DNA
   - Apply ALL shadows from the Business DNA (especially header drop shadow)
9. If a reference image is provided:
   - Extract and use the EXACT visual style from the image
   - Generate content based on the DESCRIPTION, not the image content
   - The screen should look like it belongs to the same app as the reference
` + shadcnComponents + `
Return JSON: {"code": "...", "component_name": "...", "description": "..."}`)
	return b.String()
}
