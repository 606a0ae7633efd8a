// Package knowledge stores reference documents that inform design
// generation: brand guidelines, feature specs, UX documentation. The
// store is in-memory and keyword-searched; documents are small and the
// agent loop reads back whole entries.
package knowledge

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GriffinCanCode/DesignOS/backend/internal/shared/id"
)

// Known document types. Type is free-form but these are the categories
// the tools advertise.
const (
	TypeGuideline = "guideline"
	TypeSpec      = "spec"
	TypeUXDoc     = "ux_doc"
	TypeReference = "reference"
)

// Document is one stored knowledge entry.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	DocType   string    `json:"doc_type"`
	Tags      []string  `json:"tags,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	contentHash string
}

// Match is one search hit with its relevance score.
type Match struct {
	Document *Document
	Score    int
}

// NotFoundError reports an unknown document id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document %q not found", e.ID)
}

// Store holds documents keyed by id.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document
	now  func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{docs: make(map[string]*Document), now: time.Now}
}

// Put stores a document. Re-storing identical content under the same
// type replaces the existing entry instead of duplicating it.
func (s *Store) Put(content, title, docType string, tags []string) *Document {
	hash := contentHash(content)

	s.mu.Lock()
	defer s.mu.Unlock()

	docID := ""
	for _, existing := range s.docs {
		if existing.DocType == docType && existing.contentHash == hash {
			docID = existing.ID
			break
		}
	}
	if docID == "" {
		docID = id.NewKnowledgeID().String()
	}

	doc := &Document{
		ID:          docID,
		Title:       title,
		DocType:     docType,
		Tags:        tags,
		Content:     content,
		CreatedAt:   s.now().UTC(),
		contentHash: hash,
	}
	s.docs[docID] = doc
	return doc
}

// Get returns a document by id.
func (s *Store) Get(docID string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[docID]
	if !ok {
		return nil, &NotFoundError{ID: docID}
	}
	return doc, nil
}

// Delete removes a document by id.
func (s *Store) Delete(docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[docID]; !ok {
		return &NotFoundError{ID: docID}
	}
	delete(s.docs, docID)
	return nil
}

// List returns all documents sorted newest first, ties broken by id.
func (s *Store) List() []*Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]*Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		}
		return docs[i].ID < docs[j].ID
	})
	return docs
}

// Count returns the number of stored documents.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Search scores documents by how many query words their content and
// title contain. A document matches when any word hits or the whole
// query appears verbatim. Results are sorted by score, capped at limit.
func (s *Store) Search(query, docType string, limit int) []Match {
	if limit <= 0 {
		limit = 5
	}
	queryLower := strings.ToLower(query)
	words := strings.Fields(queryLower)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []Match
	for _, doc := range s.docs {
		if docType != "" && doc.DocType != docType {
			continue
		}
		haystack := strings.ToLower(doc.Content + " " + doc.Title)
		score := 0
		for _, w := range words {
			if strings.Contains(haystack, w) {
				score++
			}
		}
		if score > 0 || strings.Contains(haystack, queryLower) {
			matches = append(matches, Match{Document: doc, Score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Document.ID < matches[j].Document.ID
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func contentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:8])
}
