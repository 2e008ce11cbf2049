// Package content fetches read-only record projections from the upstream
// content API and the legislator registry.
package content

import "time"

// Source is one cited source item attached to a record.
type Source struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Publisher   string    `json:"publisher"`
	PublishedAt time.Time `json:"published_at"`
}

// Mention is a geographic, person, or organization reference in a record.
type Mention struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

// SEOOverride is the optional editorial override bundle for page metadata.
type SEOOverride struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// QA is one question/answer pair used for FAQ structured data.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ArticleFields is the shared shape of all article-like records.
type ArticleFields struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	ShortTitle    string       `json:"short_title"`
	Lead          string       `json:"lead"`
	Body          string       `json:"body"`
	AnnotatedBody string       `json:"annotated_body"`
	Category      string       `json:"category"`
	FreshnessTier string       `json:"freshness_tier"`
	KeyPoints     []string     `json:"key_points"`
	FAQ           []QA         `json:"faq"`
	Sources       []Source     `json:"sources"`
	Mentions      []Mention    `json:"mentions"`
	SEO           *SEOOverride `json:"seo"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// SlugTitle returns the field the canonical slug is derived from.
func (a ArticleFields) SlugTitle() string {
	if a.ShortTitle != "" {
		return a.ShortTitle
	}
	return a.Title
}

// Event is a single tracked parliamentary or political event.
type Event struct {
	ArticleFields
	Location string    `json:"location"`
	StartsAt time.Time `json:"starts_at"`
}

// Brief is a daily editorial brief.
type Brief struct {
	ArticleFields
	BriefDate string `json:"brief_date"`
}

// Column is an opinion column with a named author.
type Column struct {
	ArticleFields
	Author string `json:"author"`
}

// BlogPost is a long-form blog entry.
type BlogPost struct {
	ArticleFields
	Tags []string `json:"tags"`
}

// Legislator is a person record from the registry upstream.
type Legislator struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Party    string `json:"party"`
	District string `json:"district"`
	Role     string `json:"role"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photo_url"`
}

// VoteRecord is one entry in a legislator's voting history.
type VoteRecord struct {
	BillID    string    `json:"bill_id"`
	BillTitle string    `json:"bill_title"`
	Vote      string    `json:"vote"`
	VotedAt   time.Time `json:"voted_at"`
}

// ListItem is a lightweight listing projection of any content record.
type ListItem struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	ShortTitle string    `json:"short_title"`
	Lead       string    `json:"lead"`
	CreatedAt  time.Time `json:"created_at"`
}

// SlugTitle returns the field the canonical slug is derived from.
func (i ListItem) SlugTitle() string {
	if i.ShortTitle != "" {
		return i.ShortTitle
	}
	return i.Title
}
