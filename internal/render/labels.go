package render

// labels holds the small set of fixed interface strings the synthesized
// documents need. Everything editorial comes from the upstream records.
var labels = map[string]map[string]string{
	"pl": {
		"keyPoints":    "Najważniejsze punkty",
		"faq":          "Pytania i odpowiedzi",
		"sources":      "Źródła",
		"related":      "Powiązane materiały",
		"votes":        "Ostatnie głosowania",
		"latest":       "Najnowsze publikacje",
		"home":         "Strona główna",
		"attribution":  "Cytując treści serwisu, podaj źródło.",
		"notFound":     "Nie znaleziono strony",
		"notFoundLead": "Strona o tym adresie nie istnieje. Poniżej znajdziesz działy serwisu.",
	},
	"en": {
		"keyPoints":    "Key points",
		"faq":          "Questions and answers",
		"sources":      "Sources",
		"related":      "Related coverage",
		"votes":        "Recent votes",
		"latest":       "Latest publications",
		"home":         "Home",
		"attribution":  "When quoting our reporting, please credit the source.",
		"notFound":     "Page not found",
		"notFoundLead": "There is no page at this address. The main sections are listed below.",
	},
}

func label(lang, key string) string {
	if m, ok := labels[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return labels["en"][key]
}
