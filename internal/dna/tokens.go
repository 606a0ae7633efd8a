package dna

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
)

//go:embed defaults.yaml
var defaultTokensYAML []byte

var defaultTokens map[string]interface{}

func init() {
	if err := yaml.Unmarshal(defaultTokensYAML, &defaultTokens); err != nil {
		panic(fmt.Sprintf("dna: invalid default tokens: %v", err))
	}
}

// UnknownCategoryError is returned for a category the store does not know.
type UnknownCategoryError struct {
	Category string
	Known    []string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category: %s", e.Category)
}

// TokenStore holds the canonical design tokens for a session. Categories
// are fixed at creation and never deleted; updates mutate values only.
type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]interface{}
	now    func() time.Time
}

// NewTokenStore creates a store seeded with the default dark theme.
func NewTokenStore() *TokenStore {
	return &TokenStore{
		tokens: deepCopyMap(defaultTokens),
		now:    time.Now,
	}
}

// Categories returns the known category names, sorted.
func (s *TokenStore) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categoriesLocked()
}

func (s *TokenStore) categoriesLocked() []string {
	cats := make([]string, 0, len(s.tokens))
	for k := range s.tokens {
		cats = append(cats, k)
	}
	sort.Strings(cats)
	return cats
}

// All returns a deep copy of every category.
func (s *TokenStore) All() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deepCopyMap(s.tokens)
}

// Get returns a deep copy of one category.
func (s *TokenStore) Get(category string) (interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.tokens[category]
	if !ok {
		return nil, &UnknownCategoryError{Category: category, Known: s.categoriesLocked()}
	}
	return deepCopyValue(v), nil
}

// Update applies updates to a category. With merge, keys are merged one
// level deep into the existing map; otherwise the category value is
// replaced wholesale. Returns a deep copy of the resulting category.
func (s *TokenStore) Update(category string, updates map[string]interface{}, merge bool) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tokens[category]
	if !ok {
		return nil, &UnknownCategoryError{Category: category, Known: s.categoriesLocked()}
	}

	if merge {
		if m, isMap := existing.(map[string]interface{}); isMap {
			for k, v := range updates {
				m[k] = deepCopyValue(v)
			}
		} else {
			s.tokens[category] = deepCopyMap(updates)
		}
	} else {
		s.tokens[category] = deepCopyMap(updates)
	}

	s.touchLocked()
	return deepCopyValue(s.tokens[category]), nil
}

// Reset restores the default token set.
func (s *TokenStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens = deepCopyMap(defaultTokens)
	s.touchLocked()
}

// Absorb folds recognized values from an extracted DNA document into the
// store so plain token reads reflect the latest extraction. Only a small,
// well-known set of fields maps onto canonical tokens.
func (s *TokenStore) Absorb(doc Document) map[string]interface{} {
	extracted := make(map[string]interface{})

	if colors := doc.Section("colors"); colors != nil {
		// Ordered so the more specific extracted field wins.
		picked := make(map[string]interface{})
		for _, pair := range [][2]string{
			{"primary", "primary"},
			{"primary_accent", "primary"},
			{"secondary", "secondary"},
			{"accent", "accent"},
			{"background", "background"},
			{"content_bg", "background"},
			{"surface", "surface"},
			{"card_bg", "surface"},
			{"text", "text"},
			{"text_primary", "text"},
			{"text_secondary", "text_muted"},
		} {
			if v, ok := colors[pair[0]].(string); ok && v != "" {
				picked[pair[1]] = v
			}
		}
		if len(picked) > 0 {
			s.mergeCategory("colors", picked)
			extracted["colors"] = picked
		}
	}

	if typo := doc.Section("typography"); typo != nil {
		picked := make(map[string]interface{})
		for _, key := range []string{"font_family", "font_family_mono", "heading_weight", "body_weight"} {
			if v, ok := typo[key].(string); ok && v != "" {
				picked[key] = v
			}
		}
		if len(picked) > 0 {
			s.mergeCategory("typography", picked)
			extracted["typography"] = picked
		}
	}

	if len(extracted) > 0 {
		s.mu.Lock()
		if meta, ok := s.tokens["metadata"].(map[string]interface{}); ok {
			meta["description"] = "Extracted from design references"
		}
		s.touchLocked()
		s.mu.Unlock()
	}
	return extracted
}

func (s *TokenStore) mergeCategory(category string, updates map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.tokens[category].(map[string]interface{}); ok {
		for k, v := range updates {
			m[k] = v
		}
	}
}

func (s *TokenStore) touchLocked() {
	if meta, ok := s.tokens["metadata"].(map[string]interface{}); ok {
		meta["last_updated"] = s.now().UTC().Format(time.RFC3339)
	}
}

func deepCopyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return deepCopyMap(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}
