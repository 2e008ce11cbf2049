// Package document synthesizes the final HTML document served to
// non-interactive agents.
package document

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"github.com/civiclens/prerender/internal/seo"
)

// Image describes the social-card image declared in meta tags.
type Image struct {
	URL    string
	Width  int
	Height int
	Alt    string
}

// Meta carries everything the template interpolates besides the body fragment.
type Meta struct {
	Lang         string
	Title        string
	Description  string
	CanonicalURL string
	Robots       string
	SiteName     string
	Image        Image
	Alternates   []seo.Alternate
	Graphs       []any
	AppURL       string
	FooterNote   string
}

// ogLocales maps site languages to Open Graph locale identifiers.
var ogLocales = map[string]string{
	"pl": "pl_PL",
	"en": "en_US",
	"de": "de_DE",
	"uk": "uk_UA",
}

const licenseURL = "https://creativecommons.org/licenses/by-nc-sa/4.0/"

// Synthesize renders the full document. It is a deterministic string
// template: the only branching is omitting a tag whose source field is empty.
// Every interpolated value is escaped except the body fragment, which is
// composed of already-escaped pieces by its producer.
func Synthesize(meta Meta, bodyFragment string) string {
	robots := meta.Robots
	if robots == "" {
		robots = "index, follow"
	}

	var b strings.Builder
	b.Grow(4096 + len(bodyFragment))

	b.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(&b, "<html lang=\"%s\">\n<head>\n<meta charset=\"utf-8\">\n", esc(meta.Lang))
	fmt.Fprintf(&b, "<title>%s</title>\n", esc(meta.Title))
	metaName(&b, "description", meta.Description)
	metaName(&b, "robots", robots)
	if meta.CanonicalURL != "" {
		fmt.Fprintf(&b, "<link rel=\"canonical\" href=\"%s\">\n", esc(meta.CanonicalURL))
	}

	metaProp(&b, "og:type", "article")
	metaProp(&b, "og:site_name", meta.SiteName)
	metaProp(&b, "og:title", meta.Title)
	metaProp(&b, "og:description", meta.Description)
	metaProp(&b, "og:url", meta.CanonicalURL)
	metaProp(&b, "og:locale", ogLocale(meta.Lang))
	if meta.Image.URL != "" {
		metaProp(&b, "og:image", meta.Image.URL)
		if meta.Image.Width > 0 {
			metaProp(&b, "og:image:width", fmt.Sprintf("%d", meta.Image.Width))
		}
		if meta.Image.Height > 0 {
			metaProp(&b, "og:image:height", fmt.Sprintf("%d", meta.Image.Height))
		}
		metaProp(&b, "og:image:alt", meta.Image.Alt)
	}

	metaName(&b, "twitter:card", "summary_large_image")
	metaName(&b, "twitter:title", meta.Title)
	metaName(&b, "twitter:description", meta.Description)
	metaName(&b, "twitter:image", meta.Image.URL)

	for _, alt := range meta.Alternates {
		fmt.Fprintf(&b, "<link rel=\"alternate\" hreflang=\"%s\" href=\"%s\">\n", esc(alt.Lang), esc(alt.URL))
	}
	fmt.Fprintf(&b, "<link rel=\"license\" href=\"%s\">\n", licenseURL)

	for _, graph := range meta.Graphs {
		payload, err := json.Marshal(graph)
		if err != nil {
			// Structured data is additive; a bad graph is dropped, never fatal.
			continue
		}
		b.WriteString("<script type=\"application/ld+json\">")
		b.Write(payload)
		b.WriteString("</script>\n")
	}

	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", esc(meta.Title))
	if meta.Description != "" {
		fmt.Fprintf(&b, "<p class=\"lead\">%s</p>\n", esc(meta.Description))
	}
	if bodyFragment != "" {
		b.WriteString("<div class=\"capsule\">\n")
		b.WriteString(bodyFragment)
		b.WriteString("\n</div>\n")
	}
	b.WriteString("<footer>\n")
	fmt.Fprintf(&b, "<p>%s — <a href=\"%s\">CC BY-NC-SA 4.0</a></p>\n", esc(meta.SiteName), licenseURL)
	if meta.FooterNote != "" {
		fmt.Fprintf(&b, "<p>%s</p>\n", esc(meta.FooterNote))
	}
	b.WriteString("</footer>\n")

	if meta.AppURL != "" {
		if target, err := json.Marshal(meta.AppURL); err == nil {
			fmt.Fprintf(&b, "<script>window.location.replace(%s)</script>\n", target)
		}
	}

	b.WriteString("</body>\n</html>\n")
	return b.String()
}

func ogLocale(lang string) string {
	if locale, ok := ogLocales[lang]; ok {
		return locale
	}
	return lang
}

func metaName(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "<meta name=\"%s\" content=\"%s\">\n", esc(name), esc(value))
}

func metaProp(b *strings.Builder, property, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "<meta property=\"%s\" content=\"%s\">\n", esc(property), esc(value))
}

func esc(s string) string {
	return html.EscapeString(s)
}
