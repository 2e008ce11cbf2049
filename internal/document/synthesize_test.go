package document

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/civiclens/prerender/internal/seo"
)

var ldScriptRe = regexp.MustCompile(`<script type="application/ld\+json">(.*?)</script>`)

func baseMeta() Meta {
	return Meta{
		Lang:         "pl",
		Title:        "Sejm przyjął ustawę",
		Description:  "Nowa ustawa przeszła trzecie czytanie.",
		CanonicalURL: "https://civiclens.pl/event/abc123/sejm-przyjal-ustawe",
		SiteName:     "CivicLens",
		Image:        Image{URL: "https://civiclens.pl/static/card.png", Width: 1200, Height: 630, Alt: "CivicLens"},
		Alternates: []seo.Alternate{
			{Lang: "pl", URL: "https://civiclens.pl/event/abc123/sejm-przyjal-ustawe"},
			{Lang: "en", URL: "https://civiclens.pl/en/event/abc123/sejm-przyjal-ustawe"},
			{Lang: "x-default", URL: "https://civiclens.pl/event/abc123/sejm-przyjal-ustawe"},
		},
		AppURL: "https://app.civiclens.pl/event/abc123",
	}
}

func TestSynthesizeBasicStructure(t *testing.T) {
	t.Parallel()

	doc := Synthesize(baseMeta(), "<p>kapsuła</p>")

	require.Contains(t, doc, `<html lang="pl">`)
	require.Contains(t, doc, "<title>Sejm przyjął ustawę</title>")
	require.Contains(t, doc, `<link rel="canonical" href="https://civiclens.pl/event/abc123/sejm-przyjal-ustawe">`)
	require.Contains(t, doc, `<meta name="robots" content="index, follow">`)
	require.Contains(t, doc, `<meta property="og:locale" content="pl_PL">`)
	require.Contains(t, doc, `<meta property="og:image:width" content="1200">`)
	require.Contains(t, doc, `<meta name="twitter:card" content="summary_large_image">`)
	require.Contains(t, doc, `<link rel="license"`)
	require.Contains(t, doc, "<p>kapsuła</p>")
	require.Contains(t, doc, `window.location.replace("https://app.civiclens.pl/event/abc123")`)
}

func TestSynthesizeEmitsOneScriptPerGraph(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 2, 3} {
		meta := baseMeta()
		for i := 0; i < n; i++ {
			meta.Graphs = append(meta.Graphs, map[string]any{"@type": "Thing", "position": i})
		}
		doc := Synthesize(meta, "")

		matches := ldScriptRe.FindAllStringSubmatch(doc, -1)
		require.Len(t, matches, n)
		for _, m := range matches {
			var decoded any
			require.NoError(t, json.Unmarshal([]byte(m[1]), &decoded))
		}
	}
}

func TestSynthesizeHreflangCoverage(t *testing.T) {
	t.Parallel()

	doc := Synthesize(baseMeta(), "")
	hreflangRe := regexp.MustCompile(`hreflang="([^"]+)" href="([^"]+)"`)
	targets := map[string]string{}
	for _, m := range hreflangRe.FindAllStringSubmatch(doc, -1) {
		targets[m[1]] = m[2]
	}
	require.Len(t, targets, 3)
	require.Equal(t, 1, strings.Count(doc, `hreflang="x-default"`))
	// The x-default target matches the default-language target.
	require.Equal(t, targets["pl"], targets["x-default"])
}

func TestSynthesizeEscapesInterpolatedText(t *testing.T) {
	t.Parallel()

	meta := baseMeta()
	meta.Title = `Ustawa <script> & "cudzysłów"`
	doc := Synthesize(meta, "")

	require.NotContains(t, doc, "<title>Ustawa <script>")
	require.Contains(t, doc, "&lt;script&gt;")
	require.Contains(t, doc, "&amp;")
}

func TestSynthesizeInjectsCapsuleVerbatim(t *testing.T) {
	t.Parallel()

	capsule := `<ul class="key-points"><li>escaped &amp; ready</li></ul>`
	doc := Synthesize(baseMeta(), capsule)
	require.Contains(t, doc, capsule)
}

func TestSynthesizeOmitsEmptyFields(t *testing.T) {
	t.Parallel()

	meta := Meta{Lang: "en", Title: "Bare", SiteName: "CivicLens"}
	doc := Synthesize(meta, "")

	require.NotContains(t, doc, `name="description"`)
	require.NotContains(t, doc, "og:image")
	require.NotContains(t, doc, "window.location.replace")
	require.Contains(t, doc, `<meta name="robots" content="index, follow">`)
	require.Contains(t, doc, `<meta property="og:locale" content="en_US">`)
}

func TestSynthesizeRobotsOverride(t *testing.T) {
	t.Parallel()

	meta := baseMeta()
	meta.Robots = "noindex, follow"
	doc := Synthesize(meta, "")
	require.Contains(t, doc, `<meta name="robots" content="noindex, follow">`)
}
