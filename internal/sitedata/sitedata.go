// Package sitedata holds the static lookup tables the render pipeline consults:
// per-language geography and taxonomy slug maps, the static-page table, and
// breadcrumb segment names. The tables are embedded YAML parsed once at init.
package sitedata

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

type facetEntry struct {
	Key   string              `yaml:"key"`
	Names map[string]string   `yaml:"names"`
	Slugs map[string][]string `yaml:"slugs"`
}

type countriesFile struct {
	Countries []facetEntry `yaml:"countries"`
}

type topicsFile struct {
	Topics []facetEntry `yaml:"topics"`
}

type pageEntry struct {
	Path         string            `yaml:"path"`
	Titles       map[string]string `yaml:"titles"`
	Descriptions map[string]string `yaml:"descriptions"`
}

type pagesFile struct {
	Pages []pageEntry `yaml:"pages"`
}

type segmentsFile struct {
	Segments map[string]map[string]string `yaml:"segments"`
}

// Page is the localized metadata of a static page.
type Page struct {
	Title       string
	Description string
}

var (
	countrySlugs map[string]string            // slug (any language) -> key
	countryNames map[string]map[string]string // key -> lang -> display name
	topicSlugs   map[string]string
	topicNames   map[string]map[string]string
	staticPages  map[string]pageEntry // exact path -> entry
	segmentNames map[string]map[string]string
)

func init() {
	var countries countriesFile
	mustLoad("data/countries.yaml", &countries)
	countrySlugs, countryNames = indexFacets(countries.Countries)

	var topics topicsFile
	mustLoad("data/topics.yaml", &topics)
	topicSlugs, topicNames = indexFacets(topics.Topics)

	var pages pagesFile
	mustLoad("data/pages.yaml", &pages)
	staticPages = make(map[string]pageEntry, len(pages.Pages))
	for _, p := range pages.Pages {
		staticPages[p.Path] = p
	}

	var segments segmentsFile
	mustLoad("data/segments.yaml", &segments)
	segmentNames = segments.Segments
}

func mustLoad(name string, out any) {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("sitedata: read %s: %v", name, err))
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		panic(fmt.Sprintf("sitedata: parse %s: %v", name, err))
	}
}

func indexFacets(entries []facetEntry) (map[string]string, map[string]map[string]string) {
	slugs := make(map[string]string)
	names := make(map[string]map[string]string, len(entries))
	for _, e := range entries {
		names[e.Key] = e.Names
		// The key itself always resolves, so canonical URLs round-trip.
		slugs[e.Key] = e.Key
		for _, langSlugs := range e.Slugs {
			for _, s := range langSlugs {
				slugs[strings.ToLower(s)] = e.Key
			}
		}
	}
	return slugs, names
}

// ResolveCountry maps a URL token in any supported language to its canonical
// key. Different language spellings of the same country collapse to one key.
func ResolveCountry(token string) (string, bool) {
	key, ok := countrySlugs[strings.ToLower(strings.TrimSpace(token))]
	return key, ok
}

// CountryName returns the display name of a country key in the given
// language, falling back to the key itself.
func CountryName(lang, key string) string {
	if names, ok := countryNames[key]; ok {
		if name, ok := names[lang]; ok {
			return name
		}
	}
	return key
}

// ResolveTopic maps a taxonomy URL token to its canonical key.
func ResolveTopic(token string) (string, bool) {
	key, ok := topicSlugs[strings.ToLower(strings.TrimSpace(token))]
	return key, ok
}

// TopicName returns the display name of a topic key in the given language.
func TopicName(lang, key string) string {
	if names, ok := topicNames[key]; ok {
		if name, ok := names[lang]; ok {
			return name
		}
	}
	return key
}

// StaticPage looks up the localized title/description for an exact path.
func StaticPage(path, lang string) (Page, bool) {
	entry, ok := staticPages[path]
	if !ok {
		return Page{}, false
	}
	return Page{
		Title:       entry.Titles[lang],
		Description: entry.Descriptions[lang],
	}, true
}

// StaticPaths returns every path present in the static-page table.
func StaticPaths() []string {
	paths := make([]string, 0, len(staticPages))
	for p := range staticPages {
		paths = append(paths, p)
	}
	return paths
}

// SegmentName returns the localized breadcrumb name of a path segment,
// falling back to the segment itself.
func SegmentName(lang, segment string) string {
	if names, ok := segmentNames[segment]; ok {
		if name, ok := names[lang]; ok {
			return name
		}
	}
	return segment
}
