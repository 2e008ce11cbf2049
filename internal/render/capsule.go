package render

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/civiclens/prerender/internal/content"
	"github.com/civiclens/prerender/internal/markup"
	"github.com/civiclens/prerender/internal/seo"
	"github.com/civiclens/prerender/internal/sitedata"
)

func esc(s string) string {
	return html.EscapeString(s)
}

// articleCapsule builds the crawler-readable body of an article page. The
// related-items lookup runs concurrently with the main assembly under its own
// deadline; when it misses, the section is simply absent.
func (rd *Renderer) articleCapsule(ctx context.Context, fields content.ArticleFields, extras []string, lang string) string {
	related := make(chan []content.ListItem, 1)
	go func() {
		items, err := rd.client.Similar(ctx, fields.ID, lang)
		if err != nil {
			items = nil
		}
		related <- items
	}()

	var b strings.Builder
	if len(extras) > 0 {
		fmt.Fprintf(&b, "<p class=\"byline\">%s</p>\n", strings.Join(extras, " · "))
	}
	if fields.Lead != "" {
		fmt.Fprintf(&b, "<p>%s</p>\n", esc(fields.Lead))
	}
	if len(fields.KeyPoints) > 0 {
		fmt.Fprintf(&b, "<h2>%s</h2>\n<ul>\n", esc(label(lang, "keyPoints")))
		for _, point := range fields.KeyPoints {
			fmt.Fprintf(&b, "<li>%s</li>\n", esc(point))
		}
		b.WriteString("</ul>\n")
	}

	body := fields.AnnotatedBody
	if body == "" {
		body = fields.Body
	}
	writeParagraphs(&b, markup.Interpret(body))

	if len(fields.FAQ) > 0 {
		fmt.Fprintf(&b, "<h2>%s</h2>\n<dl>\n", esc(label(lang, "faq")))
		for _, qa := range fields.FAQ {
			if qa.Question == "" {
				continue
			}
			fmt.Fprintf(&b, "<dt>%s</dt>\n<dd>%s</dd>\n", esc(qa.Question), esc(qa.Answer))
		}
		b.WriteString("</dl>\n")
	}
	if len(fields.Sources) > 0 {
		fmt.Fprintf(&b, "<h2>%s</h2>\n<ul>\n", esc(label(lang, "sources")))
		for _, src := range fields.Sources {
			name := src.Title
			if name == "" {
				name = src.Publisher
			}
			if src.URL != "" {
				fmt.Fprintf(&b, "<li><a href=\"%s\" rel=\"nofollow\">%s</a></li>\n", esc(src.URL), esc(name))
			} else {
				fmt.Fprintf(&b, "<li>%s</li>\n", esc(name))
			}
		}
		b.WriteString("</ul>\n")
	}

	var items []content.ListItem
	select {
	case items = <-related:
	case <-time.After(rd.enrichTimeout):
	case <-ctx.Done():
	}
	if len(items) > 0 {
		fmt.Fprintf(&b, "<h2>%s</h2>\n", esc(label(lang, "related")))
		rd.writeItemList(&b, lang, items)
	}
	return b.String()
}

// legislatorCapsule builds the body of a person profile. The voting-history
// lookup is bounded by the enrichment deadline so a slow registry cannot
// stall the page.
func (rd *Renderer) legislatorCapsule(ctx context.Context, rec content.Legislator, lang string) string {
	var b strings.Builder
	details := joinPresent(" · ", rec.Role, rec.Party, rec.District)
	if details != "" {
		fmt.Fprintf(&b, "<p class=\"byline\">%s</p>\n", esc(details))
	}
	if rec.Bio != "" {
		writeParagraphs(&b, rec.Bio)
	}

	historyCtx, cancel := context.WithTimeout(ctx, rd.enrichTimeout)
	defer cancel()
	votes, err := rd.client.LegislatorHistory(historyCtx, rec.ID)
	if err == nil && len(votes) > 0 {
		fmt.Fprintf(&b, "<h2>%s</h2>\n<ul>\n", esc(label(lang, "votes")))
		for _, v := range votes {
			fmt.Fprintf(&b, "<li>%s: %s (%s)</li>\n",
				esc(v.BillTitle), esc(v.Vote), v.VotedAt.Format("2006-01-02"))
		}
		b.WriteString("</ul>\n")
	}
	return b.String()
}

// listingCapsule builds the body of a feed or facet page.
func (rd *Renderer) listingCapsule(lang string, items []content.ListItem) string {
	var b strings.Builder
	rd.writeItemList(&b, lang, items)
	return b.String()
}

// staticCapsule builds the navigational body shared by the static pages.
func (rd *Renderer) staticCapsule(lang string) string {
	var b strings.Builder
	b.WriteString("<nav><ul>\n")
	navItem(&b, rd.pageLink(lang, "/news", ""), sitedata.SegmentName(lang, "news"))
	for _, topic := range []string{"politics", "economy", "society", "foreign-affairs"} {
		navItem(&b, rd.pageLink(lang, "/topic/"+topic, ""), sitedata.TopicName(lang, topic))
	}
	b.WriteString("</ul></nav>\n")
	return b.String()
}

func (rd *Renderer) writeItemList(b *strings.Builder, lang string, items []content.ListItem) {
	b.WriteString("<ul>\n")
	for _, item := range items {
		if item.ID == "" || item.Type == "" {
			continue
		}
		href := rd.pageLink(lang, "/"+item.Type+"/"+item.ID, seo.Slugify(item.SlugTitle()))
		b.WriteString("<li>")
		fmt.Fprintf(b, "<a href=\"%s\">%s</a>", esc(href), esc(item.Title))
		if item.Lead != "" {
			fmt.Fprintf(b, "<p>%s</p>", esc(item.Lead))
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n")
}

// writeParagraphs splits interpreted plain text on blank lines and emits one
// paragraph element per block, preserving single line breaks.
func writeParagraphs(b *strings.Builder, text string) {
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		escaped := strings.ReplaceAll(esc(block), "\n", "<br>\n")
		fmt.Fprintf(b, "<p>%s</p>\n", escaped)
	}
}

func joinPresent(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
