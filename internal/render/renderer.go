// Package render orchestrates the crawler-facing pipeline: it gates on the
// agent classifier, matches the request path against an ordered set of
// content-type matchers, fetches backing records, and synthesizes the final
// document. Browsers pass through to the interactive application.
package render

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/civiclens/prerender/internal/botdetect"
	"github.com/civiclens/prerender/internal/config"
	"github.com/civiclens/prerender/internal/content"
	"github.com/civiclens/prerender/internal/document"
	"github.com/civiclens/prerender/internal/metrics"
	"github.com/civiclens/prerender/internal/schema"
	"github.com/civiclens/prerender/internal/seo"
	"github.com/civiclens/prerender/internal/sitedata"
)

// matcher inspects one path shape. It returns true when it produced a
// response; false falls through to the next matcher. Matchers never write an
// error response: an upstream failure is indistinguishable from "not my path".
type matcher func(w http.ResponseWriter, r *http.Request, lang, path string) bool

// Renderer holds the matcher chain and its collaborators.
type Renderer struct {
	site          config.SiteConfig
	client        *content.Client
	counter       *botdetect.Counter
	enrichTimeout time.Duration
	logger        *zap.Logger
	matchers      []matcher
}

// New builds a Renderer. The matcher list is priority-ordered and evaluated
// top to bottom with early return, so adding a content type means inserting
// one entry rather than re-deriving nested fallthrough conditions.
func New(site config.SiteConfig, client *content.Client, counter *botdetect.Counter, enrichTimeout time.Duration, logger *zap.Logger) *Renderer {
	rd := &Renderer{
		site:          site,
		client:        client,
		counter:       counter,
		enrichTimeout: enrichTimeout,
		logger:        logger,
	}
	rd.matchers = []matcher{
		rd.matchItem,
		rd.matchNews,
		rd.matchTopicCountry,
		rd.matchTopic,
		rd.matchCountry,
		rd.matchLegislator,
		rd.matchStatic,
	}
	return rd
}

// Render serves one request. Interactive browsers are redirected to the
// application origin; everything else gets a prerendered document or the
// generic 404 document, never an error page.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request) {
	agent := botdetect.Classify(r.UserAgent())
	if !agent.NonInteractive() {
		http.Redirect(w, r, rd.appTarget(r.URL.Path), http.StatusTemporaryRedirect)
		return
	}

	// Advisory telemetry only; must never influence or fail the pipeline.
	rd.counter.RecordVisit(agent.BotName, r.URL.Path)
	metrics.ObserveBotVisit(agent.BotName)

	lang, path := rd.splitLanguage(r.URL.Path)
	for _, match := range rd.matchers {
		if match(w, r, lang, path) {
			return
		}
	}
	rd.renderNotFound(w, lang)
}

// splitLanguage strips a leading supported-language segment from the path.
// The default language carries no prefix.
func (rd *Renderer) splitLanguage(path string) (string, string) {
	trimmed := strings.TrimPrefix(path, "/")
	seg, rest, _ := strings.Cut(trimmed, "/")
	for _, lang := range rd.site.Languages {
		if lang == rd.site.DefaultLanguage {
			continue
		}
		if seg == lang {
			if rest == "" {
				return lang, "/"
			}
			return lang, "/" + rest
		}
	}
	return rd.site.DefaultLanguage, path
}

func (rd *Renderer) appTarget(path string) string {
	if path == "" || path == "/" {
		return rd.site.AppURL
	}
	return strings.TrimRight(rd.site.AppURL, "/") + path
}

// pageMeta assembles the document metadata shared by all rendered pages.
func (rd *Renderer) pageMeta(lang, title, description, path, slug, robots string, graphs []any) document.Meta {
	if title != "" && rd.site.SiteName != "" {
		title = title + " | " + rd.site.SiteName
	}
	canonicalPath := path
	if slug != "" {
		canonicalPath = strings.TrimRight(path, "/") + "/" + slug
	}
	return document.Meta{
		Lang:         lang,
		Title:        title,
		Description:  description,
		CanonicalURL: seo.PageURL(rd.site.Domain, lang, rd.site.DefaultLanguage, path, slug),
		Robots:       robots,
		SiteName:     rd.site.SiteName,
		Image: document.Image{
			URL:    rd.site.ImageURL,
			Width:  rd.site.ImageWidth,
			Height: rd.site.ImageHeight,
			Alt:    rd.site.SiteName,
		},
		Alternates: seo.Alternates(rd.site.Domain, rd.site.Languages, rd.site.DefaultLanguage, path, slug),
		Graphs:     graphs,
		AppURL:     rd.appTarget(prefixLang(lang, rd.site.DefaultLanguage, canonicalPath)),
		FooterNote: label(lang, "attribution"),
	}
}

func prefixLang(lang, defaultLang, path string) string {
	if lang == defaultLang {
		return path
	}
	if path == "/" {
		return "/" + lang
	}
	return "/" + lang + path
}

func (rd *Renderer) breadcrumbs(lang, path string) *schema.BreadcrumbList {
	return schema.NewBreadcrumbs(rd.site.Domain, path, func(segment, fullPath string) string {
		if page, ok := sitedata.StaticPage(fullPath, lang); ok && page.Title != "" {
			return page.Title
		}
		return sitedata.SegmentName(lang, segment)
	})
}

func (rd *Renderer) writeDocument(w http.ResponseWriter, status int, meta document.Meta, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(document.Synthesize(meta, body))); err != nil {
		rd.logger.Warn("write document failed", zap.Error(err))
	}
}

// renderNotFound emits the generic 404 document: noindex plus a short
// navigational link list, never a framework error page.
func (rd *Renderer) renderNotFound(w http.ResponseWriter, lang string) {
	var b strings.Builder
	b.WriteString("<nav><ul>\n")
	navItem(&b, rd.pageLink(lang, "/", ""), label(lang, "home"))
	navItem(&b, rd.pageLink(lang, "/news", ""), sitedata.SegmentName(lang, "news"))
	for _, topic := range []string{"politics", "economy"} {
		navItem(&b, rd.pageLink(lang, "/topic/"+topic, ""), sitedata.TopicName(lang, topic))
	}
	b.WriteString("</ul></nav>")

	meta := rd.pageMeta(lang, label(lang, "notFound"), label(lang, "notFoundLead"), "/", "", "noindex, follow", nil)
	// A missing page has no canonical target to advertise.
	meta.CanonicalURL = ""
	meta.Alternates = nil
	rd.writeDocument(w, http.StatusNotFound, meta, b.String())
	metrics.ObserveRender("unknown", "not_found")
}

func (rd *Renderer) pageLink(lang, path, slug string) string {
	return seo.PageURL(rd.site.Domain, lang, rd.site.DefaultLanguage, path, slug)
}
