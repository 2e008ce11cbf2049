// Package schema builds the typed structured-data graphs (schema.org JSON-LD)
// attached to rendered documents. Every builder is a pure function over a
// content record plus caller-supplied canonical URL and localized strings.
package schema

import (
	"sort"
	"strings"
	"time"

	"github.com/civiclens/prerender/internal/content"
)

const (
	contextURL = "https://schema.org"
	// LicenseURL is constant across all article-kind graphs.
	LicenseURL = "https://creativecommons.org/licenses/by-nc-sa/4.0/"

	maxLiveUpdates = 20
)

// liveTiers are the freshness tiers that select the live article variant.
var liveTiers = map[string]bool{
	"breaking": true,
	"hot":      true,
}

// Organization is a schema.org Organization node.
type Organization struct {
	Context string `json:"@context,omitempty"`
	Type    string `json:"@type"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Logo    string `json:"logo,omitempty"`
}

// Speakable declares which body regions suit voice read-aloud.
type Speakable struct {
	Type        string   `json:"@type"`
	CSSSelector []string `json:"cssSelector"`
}

// Update is one embedded live-article update entry.
type Update struct {
	Type          string `json:"@type"`
	Headline      string `json:"headline"`
	URL           string `json:"url,omitempty"`
	DatePublished string `json:"datePublished,omitempty"`
	Publisher     string `json:"publisher,omitempty"`
}

// Article is a schema.org NewsArticle or LiveBlogPosting node.
type Article struct {
	Context           string       `json:"@context"`
	Type              string       `json:"@type"`
	Headline          string       `json:"headline"`
	Description       string       `json:"description,omitempty"`
	URL               string       `json:"url"`
	MainEntityOfPage  string       `json:"mainEntityOfPage"`
	InLanguage        string       `json:"inLanguage"`
	DatePublished     string       `json:"datePublished"`
	DateModified      string       `json:"dateModified"`
	License           string       `json:"license"`
	Keywords          []string     `json:"keywords,omitempty"`
	Publisher         Organization `json:"publisher"`
	Speakable         *Speakable   `json:"speakable,omitempty"`
	CoverageStartTime string       `json:"coverageStartTime,omitempty"`
	LiveBlogUpdate    []Update     `json:"liveBlogUpdate,omitempty"`
}

// Question is one FAQPage entry.
type Question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

// Answer holds a question's accepted answer text.
type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// FAQPage is a schema.org FAQPage node.
type FAQPage struct {
	Context    string     `json:"@context"`
	Type       string     `json:"@type"`
	MainEntity []Question `json:"mainEntity"`
}

// Crumb is one BreadcrumbList element.
type Crumb struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

// BreadcrumbList is a schema.org BreadcrumbList node.
type BreadcrumbList struct {
	Context         string  `json:"@context"`
	Type            string  `json:"@type"`
	ItemListElement []Crumb `json:"itemListElement"`
}

// Person is a schema.org Person node.
type Person struct {
	Context     string        `json:"@context"`
	Type        string        `json:"@type"`
	Name        string        `json:"name"`
	JobTitle    string        `json:"jobTitle,omitempty"`
	Affiliation *Organization `json:"affiliation,omitempty"`
	Description string        `json:"description,omitempty"`
	Image       string        `json:"image,omitempty"`
	URL         string        `json:"url"`
}

// NewOrganization builds the publisher node for the site itself.
func NewOrganization(domain, siteName, logoURL string) Organization {
	return Organization{
		Context: contextURL,
		Type:    "Organization",
		Name:    siteName,
		URL:     domain,
		Logo:    logoURL,
	}
}

// NewArticle builds the article graph for a record. The live variant is
// selected when the record's freshness tier marks an ongoing event and it
// carries at least one cited source; it embeds up to 20 of the most recently
// published sources, newest first. Both variants always carry published and
// modified timestamps and the speakable augmentation.
func NewArticle(rec content.ArticleFields, canonicalURL, siteName, domain, lang string) Article {
	published := rec.CreatedAt
	modified := rec.UpdatedAt
	if modified.IsZero() {
		modified = published
	}

	a := Article{
		Context:          contextURL,
		Type:             "NewsArticle",
		Headline:         rec.Title,
		Description:      rec.Lead,
		URL:              canonicalURL,
		MainEntityOfPage: canonicalURL,
		InLanguage:       lang,
		DatePublished:    formatTime(published),
		DateModified:     formatTime(modified),
		License:          LicenseURL,
		Publisher: Organization{
			Type: "Organization",
			Name: siteName,
			URL:  domain,
		},
		Speakable: &Speakable{
			Type:        "SpeakableSpecification",
			CSSSelector: []string{".lead", ".capsule"},
		},
	}
	if rec.SEO != nil && len(rec.SEO.Keywords) > 0 {
		a.Keywords = rec.SEO.Keywords
	}

	if liveTiers[rec.FreshnessTier] && len(rec.Sources) > 0 {
		a.Type = "LiveBlogPosting"
		a.CoverageStartTime = formatTime(published)
		a.LiveBlogUpdate = liveUpdates(rec.Sources)
	}
	return a
}

func liveUpdates(sources []content.Source) []Update {
	sorted := make([]content.Source, len(sources))
	copy(sorted, sources)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})
	if len(sorted) > maxLiveUpdates {
		sorted = sorted[:maxLiveUpdates]
	}
	updates := make([]Update, 0, len(sorted))
	for _, src := range sorted {
		u := Update{
			Type:      "BlogPosting",
			Headline:  src.Title,
			URL:       src.URL,
			Publisher: src.Publisher,
		}
		if !src.PublishedAt.IsZero() {
			u.DatePublished = formatTime(src.PublishedAt)
		}
		updates = append(updates, u)
	}
	return updates
}

// NewFAQ builds an FAQPage graph, or nil for an empty question list so the
// caller omits the graph entirely instead of emitting a vacuous one.
func NewFAQ(pairs []content.QA) *FAQPage {
	if len(pairs) == 0 {
		return nil
	}
	questions := make([]Question, 0, len(pairs))
	for _, qa := range pairs {
		if qa.Question == "" {
			continue
		}
		questions = append(questions, Question{
			Type: "Question",
			Name: qa.Question,
			AcceptedAnswer: Answer{
				Type: "Answer",
				Text: qa.Answer,
			},
		})
	}
	if len(questions) == 0 {
		return nil
	}
	return &FAQPage{
		Context:    contextURL,
		Type:       "FAQPage",
		MainEntity: questions,
	}
}

// NewBreadcrumbs walks the path segment by segment, resolving each segment's
// display name through the caller-supplied resolver. Returns nil for the root
// or an empty path.
func NewBreadcrumbs(domain, path string, nameFor func(segment, fullPath string) string) *BreadcrumbList {
	trimmed := splitPath(path)
	if len(trimmed) == 0 {
		return nil
	}
	crumbs := make([]Crumb, 0, len(trimmed))
	accumulated := ""
	for i, segment := range trimmed {
		accumulated += "/" + segment
		crumbs = append(crumbs, Crumb{
			Type:     "ListItem",
			Position: i + 1,
			Name:     nameFor(segment, accumulated),
			Item:     domain + accumulated,
		})
	}
	return &BreadcrumbList{
		Context:         contextURL,
		Type:            "BreadcrumbList",
		ItemListElement: crumbs,
	}
}

// NewPerson builds the Person graph for a legislator profile.
func NewPerson(rec content.Legislator, canonicalURL, siteName, domain string) Person {
	p := Person{
		Context:     contextURL,
		Type:        "Person",
		Name:        rec.FullName,
		JobTitle:    rec.Role,
		Description: rec.Bio,
		Image:       rec.PhotoURL,
		URL:         canonicalURL,
	}
	if rec.Party != "" {
		p.Affiliation = &Organization{
			Type: "Organization",
			Name: rec.Party,
			URL:  domain,
		}
	}
	return p
}

func splitPath(path string) []string {
	var out []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
