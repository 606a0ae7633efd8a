package brand

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	hexColorRe   = regexp.MustCompile(`#(?:[0-9a-fA-F]{3}){1,2}\b`)
	rgbColorRe   = regexp.MustCompile(`rgba?\s*\(\s*\d+\s*,\s*\d+\s*,\s*\d+(?:\s*,\s*[\d.]+)?\s*\)`)
	fontFamilyRe = regexp.MustCompile(`font-family\s*:\s*([^;}"']+)`)
	spaceRe      = regexp.MustCompile(`\s+`)
)

const (
	maxColors     = 10
	maxRGBColors  = 5
	maxFonts      = 5
	maxLogos      = 5
	maxKeywords   = 10
	maxImages     = 20
	maxContentLen = 5000
)

// hints is the brand-relevant signal pulled out of a page.
type hints struct {
	Colors         []string
	Fonts          []string
	LogoCandidates []string
	StyleKeywords  []string
}

// extractHints scans raw HTML for color values and font declarations,
// and the parsed document for logo imagery and meta keywords. Order of
// first appearance is preserved so the dominant values come first.
func extractHints(html string, doc *goquery.Document) hints {
	h := hints{
		Colors: dedupe(hexColorRe.FindAllString(html, -1), maxColors),
		Fonts:  dedupe(captureGroups(fontFamilyRe, html), maxFonts),
	}
	h.Colors = append(h.Colors, dedupe(rgbColorRe.FindAllString(html, -1), maxRGBColors)...)

	doc.Find("img").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, ok := sel.Attr("src")
		if !ok || src == "" {
			return true
		}
		marker := strings.ToLower(src + " " + sel.AttrOr("alt", "") + " " + sel.AttrOr("class", "") + " " + sel.AttrOr("id", ""))
		for _, kw := range []string{"logo", "brand", "icon"} {
			if strings.Contains(marker, kw) {
				h.LogoCandidates = append(h.LogoCandidates, src)
				break
			}
		}
		return len(h.LogoCandidates) < maxLogos
	})

	if keywords, ok := doc.Find(`meta[name="keywords"]`).Attr("content"); ok {
		for _, kw := range strings.Split(keywords, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				h.StyleKeywords = append(h.StyleKeywords, kw)
			}
			if len(h.StyleKeywords) == maxKeywords {
				break
			}
		}
	}
	return h
}

// imageURLs collects img sources as absolute URLs, skipping inline data.
func imageURLs(doc *goquery.Document, base *url.URL) []string {
	var images []string
	seen := make(map[string]bool)

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok || src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		} else if ref, err := url.Parse(src); err == nil {
			src = base.ResolveReference(ref).String()
		} else {
			return
		}
		if !seen[src] && len(images) < maxImages {
			seen[src] = true
			images = append(images, src)
		}
	})
	return images
}

// pageText flattens the body to whitespace-squashed text.
func pageText(doc *goquery.Document) string {
	text := spaceRe.ReplaceAllString(strings.TrimSpace(doc.Find("body").Text()), " ")
	if len(text) > maxContentLen {
		text = text[:maxContentLen]
	}
	return text
}

// companyName takes the first segment of a title like "Acme | Home".
func companyName(title string) string {
	name := title
	for _, sep := range []string{"|", "-", "–"} {
		if idx := strings.Index(name, sep); idx >= 0 {
			name = name[:idx]
		}
	}
	return strings.TrimSpace(name)
}

// styleGuide renders the scraped signal as a compact prompt block.
func styleGuide(title, pageURL string, h hints) string {
	colors := "Not detected"
	if len(h.Colors) > 0 {
		colors = strings.Join(firstN(h.Colors, 5), ", ")
	}
	fonts := "System fonts"
	if len(h.Fonts) > 0 {
		fonts = strings.Join(firstN(h.Fonts, 3), ", ")
	}
	return strings.Join([]string{
		"Brand: " + title,
		"Colors: " + colors,
		"Fonts: " + fonts,
		"Style: Modern web design based on " + pageURL,
	}, "\n")
}

func captureGroups(re *regexp.Regexp, text string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = append(out, strings.TrimSpace(m[1]))
	}
	return out
}

func dedupe(values []string, limit int) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}
