// Package brand scrapes brand signal from a website: colors, fonts,
// logo imagery and descriptive copy, shaped for use as generation
// context alongside an extracted design DNA.
package brand

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/saintfish/chardet"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/GriffinCanCode/DesignOS/backend/internal/logging"
	"github.com/GriffinCanCode/DesignOS/backend/internal/types"
)

// MaxHTMLSize limits fetched pages to 10MB to prevent memory exhaustion.
const MaxHTMLSize = 10 * 1024 * 1024

const fetchTimeout = 30 * time.Second

// Provider implements brand scraping
type Provider struct {
	client    *resty.Client
	sanitizer *bluemonday.Policy
	detector  *chardet.Detector
	logger    *logging.Logger
}

// NewProvider creates a brand provider
func NewProvider(logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.NewDefault()
	}
	return &Provider{
		client: resty.New().
			SetTimeout(fetchTimeout).
			SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)),
		sanitizer: bluemonday.UGCPolicy(),
		detector:  chardet.NewTextDetector(),
		logger:    logger,
	}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "brand",
		Name:        "Brand Scraper",
		Description: "Extract brand colors, fonts and imagery from a website",
		Category:    types.CategoryScraper,
		Capabilities: []string{
			"url_scraping",
			"brand_extraction",
		},
		Tools: []types.Tool{
			{
				ID:          "brand.scrape",
				Name:        "Scrape Brand",
				Description: "Scrape a URL for brand colors, typography hints, logo candidates and page copy",
				Parameters: []types.Parameter{
					{Name: "url", Type: "string", Description: "Website URL to analyze", Required: true},
					{Name: "extract_images", Type: "boolean", Description: "Collect image URLs from the page (default true)", Required: false},
				},
				Returns: "object",
			},
		},
	}
}

// Execute runs a brand operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "brand.scrape":
		return p.scrape(ctx, params)
	default:
		return failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) scrape(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	rawURL := getString(params, "url")
	if rawURL == "" {
		return failure("url parameter required")
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	pageURL, err := url.Parse(rawURL)
	if err != nil || pageURL.Host == "" {
		return failure(fmt.Sprintf("invalid url: %s", rawURL))
	}
	extractImages := true
	if v, ok := params["extract_images"].(bool); ok {
		extractImages = v
	}

	p.logger.Info("scraping brand", zap.String("url", pageURL.String()))

	html, err := p.fetch(ctx, pageURL.String())
	if err != nil {
		return failure(fmt.Sprintf("failed to scrape URL: %v", err))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return failure(fmt.Sprintf("parse page: %v", err))
	}

	h := extractHints(html, doc)
	title := strings.TrimSpace(doc.Find("title").First().Text())
	description, _ := doc.Find(`meta[name="description"]`).Attr("content")

	sanitized, err := goquery.NewDocumentFromReader(strings.NewReader(p.sanitizer.Sanitize(html)))
	if err != nil {
		sanitized = doc
	}

	data := map[string]interface{}{
		"url":          pageURL.String(),
		"title":        title,
		"description":  description,
		"company_name": companyName(title),
		"content":      pageText(sanitized),
		"brand_hints": map[string]interface{}{
			"colors":          toInterfaces(h.Colors),
			"fonts":           toInterfaces(h.Fonts),
			"logo_candidates": toInterfaces(h.LogoCandidates),
			"style_keywords":  toInterfaces(h.StyleKeywords),
		},
		"style_guide": styleGuide(title, pageURL.String(), h),
	}
	if extractImages {
		data["images"] = toInterfaces(imageURLs(doc, pageURL))
	}
	return success(data)
}

// fetch loads the page and decodes it to UTF-8. The declared charset
// wins; pages without one go through byte-level detection.
func (p *Provider) fetch(ctx context.Context, pageURL string) (string, error) {
	resp, err := p.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status())
	}
	body := resp.Body()
	if len(body) > MaxHTMLSize {
		return "", fmt.Errorf("page exceeds %d bytes", MaxHTMLSize)
	}

	contentType := resp.Header().Get("Content-Type")
	if !strings.Contains(contentType, "charset") {
		if detected, err := p.detector.DetectBest(body); err == nil && detected.Charset != "" {
			contentType = fmt.Sprintf("text/html; charset=%s", detected.Charset)
		}
	}

	reader, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return string(body), nil
	}
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return string(body), nil
	}
	return string(decoded), nil
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

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
