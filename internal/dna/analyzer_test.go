package dna

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFocus(t *testing.T) {
	tests := []struct {
		in   string
		want Focus
		ok   bool
	}{
		{"", FocusComprehensive, true},
		{"comprehensive", FocusComprehensive, true},
		{"colors", FocusColors, true},
		{"typography", FocusTypography, true},
		{"layout", FocusLayout, true},
		{"branding", FocusBranding, true},
		{"vibes", "", false},
	}
	for _, tt := range tests {
		got, err := ParseFocus(tt.in)
		if tt.ok {
			require.NoError(t, err, "focus %q", tt.in)
			assert.Equal(t, tt.want, got)
		} else {
			assert.Error(t, err, "focus %q", tt.in)
		}
	}
}

func TestAnalyzeStyleStructured(t *testing.T) {
	backend := &scriptedBackend{responses: []string{
		`{"color_palette": {"primary": "#4263EB"}, "color_mood": "cool"}`,
	}}
	extractor := NewExtractor(backend, "", nil)

	analysis, err := extractor.AnalyzeStyle(context.Background(), testImages(1)[0], FocusColors)
	require.NoError(t, err)
	assert.Equal(t, Structured, analysis.DecodeKind)
	assert.Equal(t, FocusColors, analysis.Focus)
	assert.Equal(t, "#4263EB", analysis.Doc.Section("color_palette")["primary"])

	// Single image, focus-specific instruction, looser temperature
	// than the batch extraction.
	req := backend.requests[0]
	assert.Len(t, req.Images, 1)
	assert.Contains(t, req.Instruction, "color palette")
	assert.InDelta(t, 0.3, req.Temperature, 0.001)
}

func TestAnalyzeStyleFocusSelectsInstruction(t *testing.T) {
	for focus, marker := range map[Focus]string{
		FocusComprehensive: "COLOR PALETTE",
		FocusTypography:    "font characteristics",
		FocusLayout:        "grid system",
		FocusBranding:      "Logo characteristics",
	} {
		backend := &scriptedBackend{responses: []string{`{}`}}
		extractor := NewExtractor(backend, "", nil)

		_, err := extractor.AnalyzeStyle(context.Background(), testImages(1)[0], focus)
		require.NoError(t, err)
		assert.Contains(t, backend.requests[0].Instruction, marker, "focus %q", focus)
	}
}

func TestAnalyzeStyleDegradesOnRawText(t *testing.T) {
	backend := &scriptedBackend{responses: []string{"a prose answer, no JSON"}}
	extractor := NewExtractor(backend, "", nil)

	analysis, err := extractor.AnalyzeStyle(context.Background(), testImages(1)[0], FocusComprehensive)
	require.NoError(t, err)
	assert.Equal(t, Raw, analysis.DecodeKind)
	assert.Equal(t, "a prose answer, no JSON", analysis.Doc[RawAnalysisKey])
}

func TestAnalyzeStyleBackendError(t *testing.T) {
	backend := &scriptedBackend{err: errors.New("backend down")}
	extractor := NewExtractor(backend, "", nil)

	_, err := extractor.AnalyzeStyle(context.Background(), testImages(1)[0], FocusComprehensive)
	assert.ErrorContains(t, err, "style analysis")
}
