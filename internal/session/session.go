// Package session holds per-session design state. Each session owns
// its token store, extracted DNA, workflow plans, reference images,
// and saved styles, so concurrent sessions never see each other's
// state.
package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/GriffinCanCode/DesignOS/backend/internal/dna"
	"github.com/GriffinCanCode/DesignOS/backend/internal/shared/id"
	"github.com/GriffinCanCode/DesignOS/backend/internal/vision"
	"github.com/GriffinCanCode/DesignOS/backend/internal/workflow"
)

// ErrNoDNA is returned when an operation needs extracted DNA and the
// session has none.
var ErrNoDNA = fmt.Errorf("no design DNA extracted yet")

// UnsupportedImageError reports a reference upload that is not a
// recognized image format.
type UnsupportedImageError struct {
	Detected string
}

func (e *UnsupportedImageError) Error() string {
	return fmt.Sprintf("unsupported image type: %s", e.Detected)
}

// StyleNotFoundError reports a missing saved style and lists the ones
// that exist.
type StyleNotFoundError struct {
	Ref   string
	Known []string
}

func (e *StyleNotFoundError) Error() string {
	return fmt.Sprintf("style %q not found (known: %v)", e.Ref, e.Known)
}

// Style is a named snapshot of extracted DNA.
type Style struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Doc       dna.Document     `json:"dna"`
	Templates *dna.TemplateSet `json:"templates,omitempty"`
	Focus     string           `json:"focus,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// MockupNotFoundError reports a missing generated mockup and lists
// the ids that exist.
type MockupNotFoundError struct {
	Ref   string
	Known []string
}

func (e *MockupNotFoundError) Error() string {
	return fmt.Sprintf("mockup %q not found (known: %v)", e.Ref, e.Known)
}

// Mockup is a generated design image kept in the session.
type Mockup struct {
	ID         string    `json:"id"`
	Prompt     string    `json:"prompt"`
	DesignType string    `json:"design_type"`
	Data       []byte    `json:"-"`
	MIME       string    `json:"mime_type"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Session is the unit of isolation for design state.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.RWMutex
	tokens     *dna.TokenStore
	doc        dna.Document
	templates  *dna.TemplateSet
	decodeKind dna.Kind
	workflows  *workflow.Tracker
	images     []vision.Image
	styles     map[string]*Style
	mockups    []*Mockup
}

func newSession(sessionID string) *Session {
	return &Session{
		ID:        sessionID,
		CreatedAt: time.Now(),
		tokens:    dna.NewTokenStore(),
		workflows: workflow.NewTracker(),
		styles:    make(map[string]*Style),
	}
}

// Tokens returns the session's design token store.
func (s *Session) Tokens() *dna.TokenStore { return s.tokens }

// Workflows returns the session's plan tracker.
func (s *Session) Workflows() *workflow.Tracker { return s.workflows }

// SetDNA installs a freshly extracted document and absorbs its values
// into the token store.
func (s *Session) SetDNA(doc dna.Document, templates *dna.TemplateSet, kind dna.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.templates = templates
	s.decodeKind = kind
	if doc != nil && !doc.IsRaw() {
		s.tokens.Absorb(doc)
	}
}

// DNA returns the current document, or ErrNoDNA if none was extracted.
func (s *Session) DNA() (dna.Document, dna.Kind, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, 0, ErrNoDNA
	}
	return s.doc, s.decodeKind, nil
}

// Templates returns the synthesized layout templates, which may be nil.
func (s *Session) Templates() *dna.TemplateSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.templates
}

// ClearDNA removes the extracted document, templates and reference
// images. Saved styles and tokens survive.
func (s *Session) ClearDNA() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = nil
	s.templates = nil
	s.decodeKind = 0
	s.images = nil
}

// AddImage sniffs and stores a reference image for later generation
// calls. Only raster web formats are accepted.
func (s *Session) AddImage(data []byte) (vision.Image, error) {
	kind := mimetype.Detect(data)
	switch kind.String() {
	case "image/png", "image/jpeg", "image/webp", "image/gif":
	default:
		return vision.Image{}, &UnsupportedImageError{Detected: kind.String()}
	}

	img := vision.Image{Data: data, MIME: kind.String()}
	s.mu.Lock()
	s.images = append(s.images, img)
	s.mu.Unlock()
	return img, nil
}

// ClearImages drops the stored reference images. Extracted DNA and
// saved styles survive.
func (s *Session) ClearImages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.images)
	s.images = nil
	return n
}

// Images returns the stored reference images.
func (s *Session) Images() []vision.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]vision.Image, len(s.images))
	copy(out, s.images)
	return out
}

// SaveStyle snapshots the current DNA under a name. Re-saving a name
// replaces the snapshot but keeps a fresh id.
func (s *Session) SaveStyle(name string) (*Style, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil, ErrNoDNA
	}

	style := &Style{
		ID:        id.NewStyleID().String(),
		Name:      name,
		Doc:       s.doc,
		Templates: s.templates,
		CreatedAt: time.Now(),
	}
	s.styles[name] = style
	return style, nil
}

// SaveAnalysis stores a focused style analysis under a name. It does
// not require extracted DNA; the analysis carries its own document.
// Re-using a name replaces the previous analysis.
func (s *Session) SaveAnalysis(name string, doc dna.Document, focus string) *Style {
	s.mu.Lock()
	defer s.mu.Unlock()

	style := &Style{
		ID:        id.NewStyleID().String(),
		Name:      name,
		Doc:       doc,
		Focus:     focus,
		CreatedAt: time.Now(),
	}
	s.styles[name] = style
	return style
}

// Styles lists saved styles sorted by name.
func (s *Session) Styles() []*Style {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Style, 0, len(s.styles))
	for _, style := range s.styles {
		out = append(out, style)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Style looks up a saved style by name or id.
func (s *Session) Style(ref string) (*Style, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if style, ok := s.styles[ref]; ok {
		return style, nil
	}
	for _, style := range s.styles {
		if style.ID == ref {
			return style, nil
		}
	}
	return nil, &StyleNotFoundError{Ref: ref, Known: s.styleNamesLocked()}
}

// DeleteStyle removes a saved style by name or id.
func (s *Session) DeleteStyle(ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.styles[ref]; ok {
		delete(s.styles, ref)
		return nil
	}
	for name, style := range s.styles {
		if style.ID == ref {
			delete(s.styles, name)
			return nil
		}
	}
	return &StyleNotFoundError{Ref: ref, Known: s.styleNamesLocked()}
}

// AddMockup stores a generated image and assigns it an id.
func (s *Session) AddMockup(prompt, designType string, img *vision.GeneratedImage) *Mockup {
	s.mu.Lock()
	defer s.mu.Unlock()

	mockup := &Mockup{
		ID:         id.NewMockupID().String(),
		Prompt:     prompt,
		DesignType: designType,
		Data:       img.Data,
		MIME:       img.MIME,
		Notes:      img.Notes,
		CreatedAt:  time.Now(),
	}
	s.mockups = append(s.mockups, mockup)
	return mockup
}

// Mockup looks up a generated image by id.
func (s *Session) Mockup(ref string) (*Mockup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.mockups {
		if m.ID == ref {
			return m, nil
		}
	}
	known := make([]string, 0, len(s.mockups))
	for _, m := range s.mockups {
		known = append(known, m.ID)
	}
	return nil, &MockupNotFoundError{Ref: ref, Known: known}
}

// Mockups lists generated images in creation order.
func (s *Session) Mockups() []*Mockup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Mockup, len(s.mockups))
	copy(out, s.mockups)
	return out
}

func (s *Session) styleNamesLocked() []string {
	names := make([]string, 0, len(s.styles))
	for name := range s.styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
