package sitedata

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveCountryAcrossLanguages(t *testing.T) {
	t.Parallel()

	// Both language spellings collapse to the same canonical key.
	key, ok := ResolveCountry("germany")
	require.True(t, ok)
	require.Equal(t, "germany", key)

	key, ok = ResolveCountry("niemcy")
	require.True(t, ok)
	require.Equal(t, "germany", key)

	key, ok = ResolveCountry("NIEMCY")
	require.True(t, ok)
	require.Equal(t, "germany", key)

	_, ok = ResolveCountry("atlantis")
	require.False(t, ok)
}

func TestResolveCountryAliases(t *testing.T) {
	t.Parallel()

	key, ok := ResolveCountry("usa")
	require.True(t, ok)
	require.Equal(t, "united-states", key)

	key, ok = ResolveCountry("eu")
	require.True(t, ok)
	require.Equal(t, "european-union", key)
}

func TestCountryName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Niemcy", CountryName("pl", "germany"))
	require.Equal(t, "Germany", CountryName("en", "germany"))
	// Unknown language and unknown key both degrade gracefully.
	require.Equal(t, "germany", CountryName("de", "germany"))
	require.Equal(t, "nowhere", CountryName("pl", "nowhere"))
}

func TestResolveTopic(t *testing.T) {
	t.Parallel()

	key, ok := ResolveTopic("polityka")
	require.True(t, ok)
	require.Equal(t, "politics", key)

	key, ok = ResolveTopic("defence")
	require.True(t, ok)
	require.Equal(t, "defense", key)

	require.Equal(t, "Gospodarka", TopicName("pl", "economy"))
}

func TestStaticPage(t *testing.T) {
	t.Parallel()

	page, ok := StaticPage("/about", "en")
	require.True(t, ok)
	require.Equal(t, "About", page.Title)
	require.NotEmpty(t, page.Description)

	home, ok := StaticPage("/", "pl")
	require.True(t, ok)
	require.Contains(t, home.Title, "CivicLens")

	_, ok = StaticPage("/nope", "pl")
	require.False(t, ok)
}

func TestSegmentName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Poseł", SegmentName("pl", "legislator"))
	require.Equal(t, "Legislator", SegmentName("en", "legislator"))
	require.Equal(t, "unknown-seg", SegmentName("pl", "unknown-seg"))
}

func TestStaticPathsNonEmpty(t *testing.T) {
	t.Parallel()

	require.Contains(t, StaticPaths(), "/")
}
