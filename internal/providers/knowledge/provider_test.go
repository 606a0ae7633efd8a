package knowledge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/DesignOS/backend/internal/types"
)

func exec(t *testing.T, p *Provider, toolID string, params map[string]interface{}) *types.Result {
	t.Helper()
	result, err := p.Execute(context.Background(), toolID, params, nil)
	require.NoError(t, err)
	return result
}

func storeDoc(t *testing.T, p *Provider, title, content string) string {
	t.Helper()
	result := exec(t, p, "knowledge.store", map[string]interface{}{
		"content": content,
		"title":   title,
	})
	require.True(t, result.Success)
	return result.Data["doc_id"].(string)
}

func TestStoreAndGet(t *testing.T) {
	p := NewProvider(nil)

	result := exec(t, p, "knowledge.store", map[string]interface{}{
		"content":  "Primary actions are blue.",
		"title":    "Brand Colors",
		"doc_type": "guideline",
		"tags":     "branding, colors,",
	})
	require.True(t, result.Success)
	docID := result.Data["doc_id"].(string)
	assert.Equal(t, "guideline", result.Data["doc_type"])

	got := exec(t, p, "knowledge.get", map[string]interface{}{"doc_id": docID})
	require.True(t, got.Success)
	assert.Equal(t, "Primary actions are blue.", got.Data["content"])
	assert.Equal(t, []string{"branding", "colors"}, got.Data["tags"])
}

func TestStoreRequiredParams(t *testing.T) {
	p := NewProvider(nil)

	result := exec(t, p, "knowledge.store", map[string]interface{}{"title": "No Content"})
	assert.False(t, result.Success)
}

func TestStoreDefaultsToGuideline(t *testing.T) {
	p := NewProvider(nil)

	result := exec(t, p, "knowledge.store", map[string]interface{}{
		"content": "text",
		"title":   "Untyped",
	})
	require.True(t, result.Success)
	assert.Equal(t, "guideline", result.Data["doc_type"])
}

func TestSearchRanksResults(t *testing.T) {
	p := NewProvider(nil)
	storeDoc(t, p, "Button Colors", "Primary buttons use the blue accent.")
	storeDoc(t, p, "Onboarding", "Four screens guide the user in.")

	result := exec(t, p, "knowledge.search", map[string]interface{}{"query": "blue button"})
	require.True(t, result.Success)
	assert.Equal(t, 1, result.Data["results_count"])

	hits := result.Data["results"].([]interface{})
	top := hits[0].(map[string]interface{})
	assert.Equal(t, "Button Colors", top["title"])
	assert.Equal(t, 2, top["relevance_score"])
}

func TestSearchEmptyStore(t *testing.T) {
	p := NewProvider(nil)

	result := exec(t, p, "knowledge.search", map[string]interface{}{"query": "anything"})
	require.True(t, result.Success)
	assert.Equal(t, 0, result.Data["results_count"])
	assert.Contains(t, result.Data["message"], "No documents stored yet")
}

func TestSearchMaxResults(t *testing.T) {
	p := NewProvider(nil)
	for _, title := range []string{"A", "B", "C"} {
		storeDoc(t, p, title, "blue "+title)
	}

	result := exec(t, p, "knowledge.search", map[string]interface{}{
		"query":       "blue",
		"max_results": float64(2),
	})
	require.True(t, result.Success)
	assert.Equal(t, 2, result.Data["results_count"])
}

func TestGetMissingListsKnown(t *testing.T) {
	p := NewProvider(nil)
	docID := storeDoc(t, p, "Known Doc", "content")

	result := exec(t, p, "knowledge.get", map[string]interface{}{"doc_id": "know_missing"})
	require.False(t, result.Success)
	known := result.Data["available_documents"].([]interface{})
	require.Len(t, known, 1)
	assert.Equal(t, docID, known[0].(map[string]interface{})["doc_id"])
}

func TestDeleteDocument(t *testing.T) {
	p := NewProvider(nil)
	docID := storeDoc(t, p, "Doomed", "content")

	result := exec(t, p, "knowledge.delete", map[string]interface{}{"doc_id": docID})
	require.True(t, result.Success)
	assert.Equal(t, true, result.Data["deleted"])

	again := exec(t, p, "knowledge.delete", map[string]interface{}{"doc_id": docID})
	assert.False(t, again.Success)
}

func TestUnknownTool(t *testing.T) {
	p := NewProvider(nil)

	result := exec(t, p, "knowledge.nope", map[string]interface{}{})
	assert.False(t, result.Success)
	assert.Contains(t, *result.Error, "unknown tool")
}
