// Package markup flattens the annotated editorial markup carried inside
// content records into plain text for crawler-facing answer capsules.
//
// The input is a prose blob mixing literal text with pseudo-tags such as
// <quote autor="..."> or <kluczowa-liczba wartość="...">. Interpret applies a
// single ordered left-to-right rewrite pass; every rule is total, so a
// malformed tag degrades to its best partial rendering instead of failing.
package markup

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// tagAliases maps Polish tag names onto the canonical English set. Alias
// normalization runs before any structural rule so the rules only ever see
// canonical names. Kept as a pure data table.
var tagAliases = []struct{ alias, canonical string }{
	{"cytat", "quote"},
	{"kluczowa-liczba", "stat"},
	{"kontra", "claim"},
	{"werdykt", "verdict"},
	{"porównanie", "compare"},
	{"porownanie", "compare"},
	{"oś-czasu", "timeline"},
	{"os-czasu", "timeline"},
	{"kalendarz", "calendar"},
	{"wykres", "chart"},
	{"sonda", "poll"},
	{"sekcja", "section"},
	{"spektrum", "spectrum"},
	{"przypis", "footnote"},
	{"kontekst", "context"},
}

var attrAliases = []struct{ alias, canonical string }{
	{"autor", "author"},
	{"miejsce", "location"},
	{"wartość", "value"},
	{"wartosc", "value"},
	{"źródło", "source"},
	{"zrodlo", "source"},
	{"tytuł", "title"},
	{"tytul", "title"},
	{"teza", "claim"},
	{"lewa", "left"},
	{"prawa", "right"},
	{"etykieta", "label"},
	{"data", "date"},
}

var (
	tagAliasRes  = buildTagAliasRes()
	attrAliasRes = buildAttrAliasRes()

	brRe       = regexp.MustCompile(`(?i)<br\s*/?>`)
	attrRe     = regexp.MustCompile(`([\p{L}\w-]+)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	pollRe     = regexp.MustCompile(`(?is)<poll(?:\s[^>]*)?>.*?</poll\s*>|<poll(?:\s[^>]*)?/>`)
	unwrapRe   = regexp.MustCompile(`(?is)<(footnote|context)(?:\s[^>]*)?>(.*?)</(footnote|context)\s*>`)
	idRefRe    = regexp.MustCompile(`\s?\((?:#?\d+|[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12})\)`)
	anyTagRe   = regexp.MustCompile(`<[^<>]*>`)
	hspaceRe   = regexp.MustCompile(`[ \t]+`)
	nlPadRe    = regexp.MustCompile(` *\n *`)
	nlRunRe    = regexp.MustCompile(`\n{3,}`)
	boldRe     = regexp.MustCompile(`\*\*([^*]*)\*\*|\*\*`)
	quoteRe    = tagRe("quote")
	statRe     = tagRe("stat")
	claimRe    = tagRe("claim")
	verdictRe  = tagRe("verdict")
	sectionRe  = tagRe("section")
	spectrumRe = tagRe("spectrum")
)

func tagRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<` + name + `((?:\s[^>]*)?)>(.*?)</` + name + `\s*>`)
}

func buildTagAliasRes() []struct {
	re   *regexp.Regexp
	repl string
} {
	out := make([]struct {
		re   *regexp.Regexp
		repl string
	}, 0, len(tagAliases))
	for _, a := range tagAliases {
		re := regexp.MustCompile(`(?i)<(/?)` + regexp.QuoteMeta(a.alias) + `([\s/>])`)
		out = append(out, struct {
			re   *regexp.Regexp
			repl string
		}{re, "<${1}" + a.canonical + "${2}"})
	}
	return out
}

func buildAttrAliasRes() []struct {
	re   *regexp.Regexp
	repl string
} {
	out := make([]struct {
		re   *regexp.Regexp
		repl string
	}, 0, len(attrAliases))
	for _, a := range attrAliases {
		re := regexp.MustCompile(`(?i)(\s)` + regexp.QuoteMeta(a.alias) + `\s*=`)
		out = append(out, struct {
			re   *regexp.Regexp
			repl string
		}{re, "${1}" + a.canonical + "="})
	}
	return out
}

// Interpret converts an annotated markup document to plain text. It is pure,
// total, and idempotent: running it over its own output is a no-op.
func Interpret(s string) string {
	// Entities arrive single- and double-encoded depending on the editor path.
	s = html.UnescapeString(html.UnescapeString(s))
	s = normalizeAliases(s)
	s = brRe.ReplaceAllString(s, "\n")
	s = rewriteQuotes(s)
	s = rewriteStats(s)
	s = rewriteClaims(s)
	s = rewriteVerdicts(s)
	s = rewriteItemized(s)
	s = pollRe.ReplaceAllString(s, "")
	s = rewriteSections(s)
	s = rewriteSpectrums(s)
	s = unwrapRe.ReplaceAllString(s, "$2")
	s = boldRe.ReplaceAllString(s, "$1")
	s = idRefRe.ReplaceAllString(s, "")
	s = anyTagRe.ReplaceAllString(s, "")
	return collapseWhitespace(s)
}

func normalizeAliases(s string) string {
	for _, a := range tagAliasRes {
		s = a.re.ReplaceAllString(s, a.repl)
	}
	for _, a := range attrAliasRes {
		s = a.re.ReplaceAllString(s, a.repl)
	}
	return s
}

func parseAttrs(raw string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrRe.FindAllStringSubmatch(raw, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		attrs[strings.ToLower(m[1])] = strings.TrimSpace(value)
	}
	return attrs
}

func rewriteQuotes(s string) string {
	return quoteRe.ReplaceAllStringFunc(s, func(m string) string {
		attrs, inner := splitTag(quoteRe, m)
		text := strings.TrimSpace(inner)
		author := attrs["author"]
		location := attrs["location"]
		switch {
		case author != "" && location != "":
			return fmt.Sprintf("\"%s\" — %s, %s", text, author, location)
		case author != "":
			return fmt.Sprintf("\"%s\" — %s", text, author)
		default:
			return fmt.Sprintf("\"%s\"", text)
		}
	})
}

func rewriteStats(s string) string {
	return statRe.ReplaceAllStringFunc(s, func(m string) string {
		attrs, inner := splitTag(statRe, m)
		text := strings.TrimSpace(inner)
		if value := attrs["value"]; value != "" {
			return value + " — " + text
		}
		return text
	})
}

func rewriteClaims(s string) string {
	return claimRe.ReplaceAllStringFunc(s, func(m string) string {
		attrs, inner := splitTag(claimRe, m)
		rebuttal := strings.TrimSpace(inner)
		claim := attrs["claim"]
		author := attrs["author"]
		if claim != "" && author != "" {
			return fmt.Sprintf("\"%s\" (%s) — %s", claim, author, rebuttal)
		}
		return rebuttal
	})
}

func rewriteVerdicts(s string) string {
	return verdictRe.ReplaceAllStringFunc(s, func(m string) string {
		attrs, inner := splitTag(verdictRe, m)
		text := strings.TrimSpace(inner)
		verdict := attrs["verdict"]
		source := attrs["source"]
		switch {
		case verdict != "" && source != "":
			return fmt.Sprintf("%s: %s (%s)", verdict, text, source)
		case verdict != "":
			return verdict + ": " + text
		default:
			return text
		}
	})
}

func rewriteSections(s string) string {
	return sectionRe.ReplaceAllStringFunc(s, func(m string) string {
		attrs, inner := splitTag(sectionRe, m)
		body := strings.TrimSpace(inner)
		if title := attrs["title"]; title != "" {
			return title + ". " + body
		}
		return body
	})
}

func rewriteSpectrums(s string) string {
	return spectrumRe.ReplaceAllStringFunc(s, func(m string) string {
		attrs, inner := splitTag(spectrumRe, m)
		left := attrs["left"]
		right := attrs["right"]
		if left != "" || right != "" {
			return left + " | " + right
		}
		return strings.TrimSpace(inner)
	})
}

func splitTag(re *regexp.Regexp, m string) (map[string]string, string) {
	sub := re.FindStringSubmatch(m)
	if sub == nil {
		return map[string]string{}, m
	}
	return parseAttrs(sub[1]), sub[2]
}

// itemizedKinds carry a title attribute and an inner JSON array of rows.
// Each row renders through a kind-specific template; unparseable JSON
// degrades to the title alone.
var itemizedKinds = []struct {
	re     *regexp.Regexp
	render func(row map[string]any) string
}{
	{
		re: tagRe("compare"),
		render: func(row map[string]any) string {
			return joinNonEmpty(": ", field(row, "aspect", "aspekt"),
				joinNonEmpty(" → ", field(row, "before", "przed"), field(row, "after", "po")))
		},
	},
	{
		re: tagRe("timeline"),
		render: func(row map[string]any) string {
			return joinNonEmpty(" — ", field(row, "date"), field(row, "label", "title", "opis"))
		},
	},
	{
		re: tagRe("calendar"),
		render: func(row map[string]any) string {
			return joinNonEmpty(" — ", field(row, "date"), field(row, "title", "label", "opis"))
		},
	},
	{
		re: tagRe("ranking"),
		render: func(row map[string]any) string {
			entry := joinNonEmpty(" — ", field(row, "name", "nazwa", "label"), field(row, "value", "score"))
			if pos := field(row, "position", "pozycja"); pos != "" {
				return pos + ". " + entry
			}
			return entry
		},
	},
	{
		re: tagRe("chart"),
		render: func(row map[string]any) string {
			return joinNonEmpty(": ", field(row, "label", "name", "nazwa"), field(row, "value"))
		},
	},
}

func rewriteItemized(s string) string {
	for _, kind := range itemizedKinds {
		render := kind.render
		s = kind.re.ReplaceAllStringFunc(s, func(m string) string {
			attrs, inner := splitTag(kind.re, m)
			title := attrs["title"]
			var rows []map[string]any
			if err := json.Unmarshal([]byte(strings.TrimSpace(inner)), &rows); err != nil {
				return title
			}
			items := make([]string, 0, len(rows))
			for _, row := range rows {
				if item := render(row); item != "" {
					items = append(items, item)
				}
			}
			if len(items) == 0 {
				return title
			}
			if title == "" {
				return strings.Join(items, "; ")
			}
			return title + ": " + strings.Join(items, "; ")
		})
	}
	return s
}

func field(row map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := row[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(v)
		}
	}
	return ""
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = hspaceRe.ReplaceAllString(s, " ")
	s = nlPadRe.ReplaceAllString(s, "\n")
	s = nlRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
