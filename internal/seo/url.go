package seo

import "strings"

// Alternate is one hreflang link target.
type Alternate struct {
	Lang string
	URL  string
}

// PageURL builds the canonical URL `{domain}[/{lang}]{path}[/{slug}]`.
// The language prefix is omitted for the default language.
func PageURL(domain, lang, defaultLang, path, slug string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(domain, "/"))
	if lang != "" && lang != defaultLang {
		b.WriteString("/")
		b.WriteString(lang)
	}
	if path != "" && path != "/" {
		b.WriteString("/")
		b.WriteString(strings.Trim(path, "/"))
	}
	if slug != "" {
		b.WriteString("/")
		b.WriteString(slug)
	}
	if b.Len() == len(strings.TrimRight(domain, "/")) {
		b.WriteString("/")
	}
	return b.String()
}

// Alternates produces one hreflang link per supported language plus exactly
// one x-default pointing at the default-language target.
func Alternates(domain string, langs []string, defaultLang, path, slug string) []Alternate {
	out := make([]Alternate, 0, len(langs)+1)
	for _, lang := range langs {
		out = append(out, Alternate{
			Lang: lang,
			URL:  PageURL(domain, lang, defaultLang, path, slug),
		})
	}
	out = append(out, Alternate{
		Lang: "x-default",
		URL:  PageURL(domain, defaultLang, defaultLang, path, slug),
	})
	return out
}
