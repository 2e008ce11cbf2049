package render

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/civiclens/prerender/internal/content"
	"github.com/civiclens/prerender/internal/metrics"
	"github.com/civiclens/prerender/internal/schema"
	"github.com/civiclens/prerender/internal/seo"
	"github.com/civiclens/prerender/internal/sitedata"
)

var (
	itemPathRe         = regexp.MustCompile(`^/(event|brief|column|blog)/([A-Za-z0-9_-]+)(?:/([a-z0-9-]+))?/?$`)
	topicCountryPathRe = regexp.MustCompile(`^/topic/([^/]+)/country/([^/]+)/?$`)
	topicPathRe        = regexp.MustCompile(`^/topic/([^/]+)/?$`)
	countryPathRe      = regexp.MustCompile(`^/country/([^/]+)/?$`)
	legislatorPathRe   = regexp.MustCompile(`^/legislator/([A-Za-z0-9_-]+)(?:/([a-z0-9-]+))?/?$`)
)

const listingLimit = 20

// matchItem handles the four article-like record types. The second path
// segment is always the record ID; any trailing segment is a decorative slug
// that is verified against the canonical one and corrected with a 301.
func (rd *Renderer) matchItem(w http.ResponseWriter, r *http.Request, lang, path string) bool {
	m := itemPathRe.FindStringSubmatch(path)
	if m == nil {
		return false
	}
	kind, id := m[1], m[2]
	ctx := r.Context()

	var (
		fields content.ArticleFields
		extras []string
	)
	switch kind {
	case "event":
		rec, err := rd.client.Event(ctx, id, lang)
		if err != nil {
			return false
		}
		fields = rec.ArticleFields
		if rec.Location != "" {
			extras = append(extras, esc(rec.Location))
		}
	case "brief":
		rec, err := rd.client.Brief(ctx, id, lang)
		if err != nil {
			return false
		}
		fields = rec.ArticleFields
		if rec.BriefDate != "" {
			extras = append(extras, esc(rec.BriefDate))
		}
	case "column":
		rec, err := rd.client.Column(ctx, id, lang)
		if err != nil {
			return false
		}
		fields = rec.ArticleFields
		if rec.Author != "" {
			extras = append(extras, esc(rec.Author))
		}
	case "blog":
		rec, err := rd.client.BlogPost(ctx, id, lang)
		if err != nil {
			return false
		}
		fields = rec.ArticleFields
		if len(rec.Tags) > 0 {
			extras = append(extras, esc(strings.Join(rec.Tags, ", ")))
		}
	}

	basePath := "/" + kind + "/" + id
	slug := seo.Slugify(fields.SlugTitle())
	if slug != "" && !seo.HasSlug(path, slug) {
		http.Redirect(w, r, rd.pageLink(lang, basePath, slug), http.StatusMovedPermanently)
		metrics.ObserveRender(kind, "redirect")
		return true
	}

	canonical := rd.pageLink(lang, basePath, slug)
	graphs := []any{schema.NewArticle(fields, canonical, rd.site.SiteName, rd.site.Domain, lang)}
	if faq := schema.NewFAQ(fields.FAQ); faq != nil {
		graphs = append(graphs, faq)
	}
	if bc := rd.breadcrumbs(lang, basePath); bc != nil {
		graphs = append(graphs, bc)
	}

	meta := rd.pageMeta(lang, metaTitle(fields), metaDescription(fields), basePath, slug, "", graphs)
	rd.writeDocument(w, http.StatusOK, meta, rd.articleCapsule(ctx, fields, extras, lang))
	metrics.ObserveRender(kind, "ok")
	return true
}

func (rd *Renderer) matchNews(w http.ResponseWriter, r *http.Request, lang, path string) bool {
	if strings.TrimRight(path, "/") != "/news" {
		return false
	}
	items, err := rd.client.List(r.Context(), content.ListQuery{Limit: listingLimit}, lang)
	if err != nil {
		return false
	}
	rd.renderListing(w, lang, "/news", label(lang, "latest"), "", items)
	return true
}

func (rd *Renderer) matchTopicCountry(w http.ResponseWriter, r *http.Request, lang, path string) bool {
	m := topicCountryPathRe.FindStringSubmatch(path)
	if m == nil {
		return false
	}
	topic, ok := sitedata.ResolveTopic(m[1])
	if !ok {
		return false
	}
	countries := resolveCountries(m[2])
	if len(countries) == 0 {
		return false
	}
	items, err := rd.client.List(r.Context(), content.ListQuery{Category: topic, Countries: countries, Limit: listingLimit}, lang)
	if err != nil {
		return false
	}
	title := sitedata.TopicName(lang, topic) + ": " + countryNames(lang, countries)
	canonicalPath := "/topic/" + topic + "/country/" + strings.Join(countries, "+")
	rd.renderListing(w, lang, canonicalPath, title, "", items)
	return true
}

func (rd *Renderer) matchTopic(w http.ResponseWriter, r *http.Request, lang, path string) bool {
	m := topicPathRe.FindStringSubmatch(path)
	if m == nil {
		return false
	}
	topic, ok := sitedata.ResolveTopic(m[1])
	if !ok {
		return false
	}
	items, err := rd.client.List(r.Context(), content.ListQuery{Category: topic, Limit: listingLimit}, lang)
	if err != nil {
		return false
	}
	rd.renderListing(w, lang, "/topic/"+topic, sitedata.TopicName(lang, topic), "", items)
	return true
}

func (rd *Renderer) matchCountry(w http.ResponseWriter, r *http.Request, lang, path string) bool {
	m := countryPathRe.FindStringSubmatch(path)
	if m == nil {
		return false
	}
	countries := resolveCountries(m[1])
	if len(countries) == 0 {
		return false
	}
	items, err := rd.client.List(r.Context(), content.ListQuery{Countries: countries, Limit: listingLimit}, lang)
	if err != nil {
		return false
	}
	canonicalPath := "/country/" + strings.Join(countries, "+")
	rd.renderListing(w, lang, canonicalPath, countryNames(lang, countries), "", items)
	return true
}

func (rd *Renderer) matchLegislator(w http.ResponseWriter, r *http.Request, lang, path string) bool {
	m := legislatorPathRe.FindStringSubmatch(path)
	if m == nil {
		return false
	}
	id := m[1]
	ctx := r.Context()
	rec, err := rd.client.Legislator(ctx, id)
	if err != nil {
		return false
	}

	basePath := "/legislator/" + id
	slug := seo.Slugify(rec.FullName)
	if slug != "" && !seo.HasSlug(path, slug) {
		http.Redirect(w, r, rd.pageLink(lang, basePath, slug), http.StatusMovedPermanently)
		metrics.ObserveRender("legislator", "redirect")
		return true
	}

	canonical := rd.pageLink(lang, basePath, slug)
	graphs := []any{schema.NewPerson(rec, canonical, rd.site.SiteName, rd.site.Domain)}
	if bc := rd.breadcrumbs(lang, basePath); bc != nil {
		graphs = append(graphs, bc)
	}

	description := rec.Bio
	if description == "" {
		description = strings.TrimSpace(rec.Role + " " + rec.Party)
	}
	meta := rd.pageMeta(lang, rec.FullName, truncate(description, descriptionLimit), basePath, slug, "", graphs)
	rd.writeDocument(w, http.StatusOK, meta, rd.legislatorCapsule(ctx, rec, lang))
	metrics.ObserveRender("legislator", "ok")
	return true
}

func (rd *Renderer) matchStatic(w http.ResponseWriter, r *http.Request, lang, path string) bool {
	normalized := strings.TrimRight(path, "/")
	if normalized == "" {
		normalized = "/"
	}
	page, ok := sitedata.StaticPage(normalized, lang)
	if !ok {
		return false
	}

	var graphs []any
	if normalized == "/" {
		graphs = append(graphs, schema.NewOrganization(rd.site.Domain, rd.site.SiteName, rd.site.ImageURL))
	}
	if bc := rd.breadcrumbs(lang, normalized); bc != nil {
		graphs = append(graphs, bc)
	}

	meta := rd.pageMeta(lang, page.Title, page.Description, normalized, "", "", graphs)
	rd.writeDocument(w, http.StatusOK, meta, rd.staticCapsule(lang))
	metrics.ObserveRender("static", "ok")
	return true
}

// renderListing writes a listing document shared by the news feed and the
// topic and country facets.
func (rd *Renderer) renderListing(w http.ResponseWriter, lang, path, title, description string, items []content.ListItem) {
	var graphs []any
	if bc := rd.breadcrumbs(lang, path); bc != nil {
		graphs = append(graphs, bc)
	}
	meta := rd.pageMeta(lang, title, description, path, "", "", graphs)
	rd.writeDocument(w, http.StatusOK, meta, rd.listingCapsule(lang, items))
	metrics.ObserveRender("listing", "ok")
}

// resolveCountries maps a plus-joined token list to deduplicated canonical
// keys, preserving first-seen order. Unknown tokens are dropped.
func resolveCountries(raw string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, token := range strings.Split(raw, "+") {
		key, ok := sitedata.ResolveCountry(token)
		if !ok || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}

func countryNames(lang string, keys []string) string {
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = sitedata.CountryName(lang, key)
	}
	return strings.Join(names, ", ")
}

const descriptionLimit = 160

func metaTitle(fields content.ArticleFields) string {
	if fields.SEO != nil && fields.SEO.Title != "" {
		return fields.SEO.Title
	}
	return fields.Title
}

func metaDescription(fields content.ArticleFields) string {
	if fields.SEO != nil && fields.SEO.Description != "" {
		return fields.SEO.Description
	}
	return truncate(fields.Lead, descriptionLimit)
}

// truncate shortens s to at most limit runes, cutting at a word boundary
// where one exists and appending an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	cut := string(runes[:limit])
	if i := strings.LastIndexByte(cut, ' '); i > limit/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

func navItem(b *strings.Builder, href, text string) {
	fmt.Fprintf(b, "<li><a href=\"%s\">%s</a></li>\n", href, esc(text))
}
