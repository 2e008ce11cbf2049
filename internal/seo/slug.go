// Package seo derives URL-safe slugs and builds canonical and alternate-language
// URLs for rendered documents.
package seo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// digraphs transliterates letters NFD decomposition cannot reduce to ASCII.
var digraphs = map[rune]string{
	'ł': "l", 'Ł': "l",
	'ß': "ss",
	'ä': "ae", 'Ä': "ae",
	'ö': "oe", 'Ö': "oe",
	'ü': "ue", 'Ü': "ue",
	'æ': "ae", 'Æ': "ae",
	'ø': "o", 'Ø': "o",
	'đ': "d", 'Đ': "d",
	'þ': "th", 'Þ': "th",
}

var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives the decorative URL slug from a title: transliterate
// diacritics to ASCII, lower-case, whitespace to hyphens, strip anything
// outside [a-z0-9-], collapse and trim hyphens.
func Slugify(title string) string {
	var pre strings.Builder
	pre.Grow(len(title))
	for _, r := range title {
		if rep, ok := digraphs[r]; ok {
			pre.WriteString(rep)
			continue
		}
		pre.WriteRune(r)
	}

	folded, _, err := transform.String(foldTransform, pre.String())
	if err != nil {
		folded = pre.String()
	}
	folded = strings.ToLower(folded)

	var out strings.Builder
	out.Grow(len(folded))
	lastHyphen := true // suppress leading hyphens
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen {
				out.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(out.String(), "-")
}

// HasSlug reports whether the request path already ends with the slug.
func HasSlug(requestPath, slug string) bool {
	if slug == "" {
		return true
	}
	return strings.HasSuffix(strings.TrimRight(requestPath, "/"), "/"+slug)
}
