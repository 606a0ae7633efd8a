package dna

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/bytedance/sonic"
)

// Kind tags the outcome of decoding a model response.
type Kind int

const (
	// Structured means the response parsed as the expected JSON.
	Structured Kind = iota
	// Partial means JSON parsing failed but named blocks were recovered.
	Partial
	// Raw means nothing parseable was found; the raw text is preserved.
	Raw
)

func (k Kind) String() string {
	switch k {
	case Structured:
		return "structured"
	case Partial:
		return "partial"
	default:
		return "raw"
	}
}

// Decoded is the result of decoding a model response.
type Decoded struct {
	Kind Kind
	Doc  Document
	Raw  string
}

// sonic is used for large model payloads, matching the size threshold
// used elsewhere for JSON handling.
const sonicThreshold = 10240

// Decode strips Markdown fences and parses the response as JSON. A
// response that does not parse is preserved verbatim under raw_analysis;
// decoding never fails.
func Decode(text string) Decoded {
	cleaned := StripFences(text)

	var doc Document
	if err := unmarshalJSON(cleaned, &doc); err == nil && doc != nil {
		return Decoded{Kind: Structured, Doc: doc, Raw: text}
	}

	return Decoded{
		Kind: Raw,
		Doc:  Document{RawAnalysisKey: text},
		Raw:  text,
	}
}

var (
	headerBlockRe = regexp.MustCompile(`(?s)header_code["\s:]+[` + "`" + `'"]*(.*?)[` + "`" + `'"]*(?:,\s*["']navbar|$)`)
	navbarBlockRe = regexp.MustCompile(`(?s)navbar_code["\s:]+[` + "`" + `'"]*(.*?)[` + "`" + `'"]*(?:,\s*["']layout|$)`)
	layoutBlockRe = regexp.MustCompile(`(?s)layout_code["\s:]+[` + "`" + `'"]*(.*?)[` + "`" + `'"]*(?:\s*}|$)`)
)

// DecodeTemplates parses a template synthesis response. JSON first, then
// a best-effort scan for the three named code blocks. Fields are
// independently optional, so a partial recovery is still usable.
func DecodeTemplates(text string) (*TemplateSet, Kind) {
	cleaned := StripFences(text)

	var set TemplateSet
	if err := unmarshalJSON(cleaned, &set); err == nil && !set.Empty() {
		return &set, Structured
	}

	recovered := &TemplateSet{}
	if m := headerBlockRe.FindStringSubmatch(text); m != nil {
		recovered.HeaderCode = strings.TrimSpace(m[1])
	}
	if m := navbarBlockRe.FindStringSubmatch(text); m != nil {
		recovered.NavbarCode = strings.TrimSpace(m[1])
	}
	if m := layoutBlockRe.FindStringSubmatch(text); m != nil {
		recovered.LayoutCode = strings.TrimSpace(m[1])
	}
	if !recovered.Empty() {
		return recovered, Partial
	}
	return nil, Raw
}

// StripFences removes a surrounding Markdown code fence, preferring a
// ```json fence when both appear in the text.
func StripFences(text string) string {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(text)
}

func unmarshalJSON(text string, v interface{}) error {
	if len(text) > sonicThreshold {
		return sonic.Unmarshal([]byte(text), v)
	}
	return json.Unmarshal([]byte(text), v)
}
