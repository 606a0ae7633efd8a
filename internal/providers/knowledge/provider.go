// Package knowledge exposes the document store as tools for uploading
// and retrieving design context.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	core "github.com/GriffinCanCode/DesignOS/backend/internal/knowledge"
	"github.com/GriffinCanCode/DesignOS/backend/internal/types"
)

// Provider implements knowledge document tools
type Provider struct {
	store *core.Store
}

// NewProvider creates a knowledge provider
func NewProvider(store *core.Store) *Provider {
	if store == nil {
		store = core.NewStore()
	}
	return &Provider{store: store}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "knowledge",
		Name:        "Knowledge Store",
		Description: "Store and retrieve brand guidelines, specs and UX documentation",
		Category:    types.CategoryKnowledge,
		Capabilities: []string{
			"document_storage",
			"keyword_search",
		},
		Tools: []types.Tool{
			{
				ID:          "knowledge.store",
				Name:        "Store Document",
				Description: "Store text content that should inform design generation",
				Parameters: []types.Parameter{
					{Name: "content", Type: "string", Description: "Full text content to store", Required: true},
					{Name: "title", Type: "string", Description: "Descriptive document title", Required: true},
					{Name: "doc_type", Type: "string", Description: "guideline, spec, ux_doc or reference (default guideline)", Required: false},
					{Name: "tags", Type: "string", Description: "Comma-separated tags", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "knowledge.search",
				Name:        "Search Documents",
				Description: "Find stored documents relevant to a query",
				Parameters: []types.Parameter{
					{Name: "query", Type: "string", Description: "What information is needed", Required: true},
					{Name: "doc_type", Type: "string", Description: "Filter by document type", Required: false},
					{Name: "max_results", Type: "number", Description: "Result cap (default 5)", Required: false},
				},
				Returns: "object",
			},
			{
				ID:          "knowledge.get",
				Name:        "Get Document",
				Description: "Load a document's full content by id",
				Parameters: []types.Parameter{
					{Name: "doc_id", Type: "string", Description: "Document id", Required: true},
				},
				Returns: "object",
			},
			{
				ID:          "knowledge.delete",
				Name:        "Delete Document",
				Description: "Remove a stored document",
				Parameters: []types.Parameter{
					{Name: "doc_id", Type: "string", Description: "Document id", Required: true},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs a knowledge operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "knowledge.store":
		return p.storeDoc(params)
	case "knowledge.search":
		return p.search(params)
	case "knowledge.get":
		return p.get(params)
	case "knowledge.delete":
		return p.delete(params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) storeDoc(params map[string]interface{}) (*types.Result, error) {
	content := getString(params, "content")
	title := getString(params, "title")
	if content == "" || title == "" {
		return failure("content and title parameters required")
	}
	docType := getString(params, "doc_type")
	if docType == "" {
		docType = core.TypeGuideline
	}

	doc := p.store.Put(content, title, docType, splitTags(getString(params, "tags")))

	return success(map[string]interface{}{
		"doc_id":   doc.ID,
		"title":    doc.Title,
		"doc_type": doc.DocType,
		"message":  fmt.Sprintf("Document %q stored. Use knowledge.search to find it.", doc.Title),
	})
}

func (p *Provider) search(params map[string]interface{}) (*types.Result, error) {
	query := getString(params, "query")
	if query == "" {
		return failure("query parameter required")
	}
	limit := 5
	if v, ok := params["max_results"].(float64); ok && v > 0 {
		limit = int(v)
	}

	matches := p.store.Search(query, getString(params, "doc_type"), limit)

	results := make([]interface{}, len(matches))
	for i, m := range matches {
		results[i] = map[string]interface{}{
			"doc_id":          m.Document.ID,
			"title":           m.Document.Title,
			"doc_type":        m.Document.DocType,
			"content":         m.Document.Content,
			"relevance_score": m.Score,
		}
	}

	data := map[string]interface{}{
		"query":         query,
		"results":       results,
		"results_count": len(results),
	}
	if p.store.Count() == 0 {
		data["message"] = "No documents stored yet. Use knowledge.store to add documents."
	}
	return success(data)
}

func (p *Provider) get(params map[string]interface{}) (*types.Result, error) {
	docID := getString(params, "doc_id")
	if docID == "" {
		return failure("doc_id parameter required")
	}

	doc, err := p.store.Get(docID)
	if err != nil {
		return notFound(err, p.store)
	}

	return success(map[string]interface{}{
		"doc_id":     doc.ID,
		"title":      doc.Title,
		"doc_type":   doc.DocType,
		"tags":       doc.Tags,
		"content":    doc.Content,
		"created_at": doc.CreatedAt,
	})
}

func (p *Provider) delete(params map[string]interface{}) (*types.Result, error) {
	docID := getString(params, "doc_id")
	if docID == "" {
		return failure("doc_id parameter required")
	}

	if err := p.store.Delete(docID); err != nil {
		return notFound(err, p.store)
	}
	return success(map[string]interface{}{
		"deleted": true,
		"doc_id":  docID,
	})
}

// notFound reports an unknown id together with the ids that exist.
func notFound(err error, store *core.Store) (*types.Result, error) {
	var nf *core.NotFoundError
	if !errors.As(err, &nf) {
		return failure(err.Error())
	}
	docs := store.List()
	known := make([]interface{}, len(docs))
	for i, doc := range docs {
		known[i] = map[string]interface{}{"doc_id": doc.ID, "title": doc.Title}
	}
	errMsg := err.Error()
	return &types.Result{
		Success: false,
		Error:   &errMsg,
		Data:    map[string]interface{}{"available_documents": known},
	}, nil
}

// Helper functions
func success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

func failure(message string) (*types.Result, error) {
	errMsg := message
	return &types.Result{Success: false, Error: &errMsg}, nil
}

func getString(params map[string]interface{}, key string) string {
	val, _ := params[key].(string)
	return val
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
