package markup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterpretQuoteWithAuthorAndLocation(t *testing.T) {
	t.Parallel()

	got := Interpret(`<quote author="Jan Nowak" location="Warszawa">Budżet jest zrównoważony</quote>`)
	require.Equal(t, `"Budżet jest zrównoważony" — Jan Nowak, Warszawa`, got)
	require.NotContains(t, got, "<")
}

func TestInterpretQuotePolishAliases(t *testing.T) {
	t.Parallel()

	got := Interpret(`<cytat autor="Jan Nowak" miejsce="Sejm">Nie ma zgody</cytat>`)
	require.Equal(t, `"Nie ma zgody" — Jan Nowak, Sejm`, got)
}

func TestInterpretQuoteWithoutAttributes(t *testing.T) {
	t.Parallel()

	require.Equal(t, `"Sam tekst"`, Interpret(`<quote>Sam tekst</quote>`))
}

func TestInterpretStatPolishAlias(t *testing.T) {
	t.Parallel()

	got := Interpret(`<kluczowa-liczba wartość="3.2 mld">Koszt programu</kluczowa-liczba>`)
	require.Equal(t, "3.2 mld — Koszt programu", got)
}

func TestInterpretStatWithoutValueKeepsText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Koszt programu", Interpret(`<stat>Koszt programu</stat>`))
}

func TestInterpretClaimWithRebuttal(t *testing.T) {
	t.Parallel()

	got := Interpret(`<kontra teza="Podatki spadły" autor="Minister">Dane GUS pokazują wzrost obciążeń.</kontra>`)
	require.Equal(t, `"Podatki spadły" (Minister) — Dane GUS pokazują wzrost obciążeń.`, got)
}

func TestInterpretClaimWithoutAttributesUnwraps(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Sama odpowiedź.", Interpret(`<claim>Sama odpowiedź.</claim>`))
}

func TestInterpretVerdict(t *testing.T) {
	t.Parallel()

	got := Interpret(`<werdykt verdict="Fałsz" źródło="Demagog">Ustawa nie obniża składek</werdykt>`)
	require.Equal(t, "Fałsz: Ustawa nie obniża składek (Demagog)", got)
}

func TestInterpretTimeline(t *testing.T) {
	t.Parallel()

	input := `<oś-czasu tytuł="Proces legislacyjny">[{"date":"2025-03-01","label":"Pierwsze czytanie"},{"date":"2025-04-12","label":"Głosowanie"}]</oś-czasu>`
	got := Interpret(input)
	require.Equal(t, "Proces legislacyjny: 2025-03-01 — Pierwsze czytanie; 2025-04-12 — Głosowanie", got)
}

func TestInterpretComparison(t *testing.T) {
	t.Parallel()

	input := `<porównanie tytuł="Zmiany">[{"aspect":"VAT","before":"23%","after":"22%"}]</porównanie>`
	require.Equal(t, "Zmiany: VAT: 23% → 22%", Interpret(input))
}

func TestInterpretRankingWithNumericValues(t *testing.T) {
	t.Parallel()

	input := `<ranking title="Frekwencja">[{"position":1,"name":"Anna Kowalska","value":98.5},{"position":2,"name":"Jan Nowak","value":97}]</ranking>`
	got := Interpret(input)
	require.Equal(t, "Frekwencja: 1. Anna Kowalska — 98.5; 2. Jan Nowak — 97", got)
}

func TestInterpretChartInvalidJSONDegradesToTitle(t *testing.T) {
	t.Parallel()

	input := `<wykres tytuł="Poparcie partii">[{"label": broken</wykres>`
	require.Equal(t, "Poparcie partii", Interpret(input))
}

func TestInterpretCalendarInvalidJSONWithoutTitle(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", Interpret(`<calendar>[oops]</calendar>`))
}

func TestInterpretPollRemoved(t *testing.T) {
	t.Parallel()

	got := Interpret(`Przed sondą. <sonda tytuł="Kogo poprzesz?">[{"option":"A"}]</sonda> Po sondzie.`)
	require.Equal(t, "Przed sondą. Po sondzie.", got)
}

func TestInterpretSectionHeading(t *testing.T) {
	t.Parallel()

	got := Interpret(`<sekcja tytuł="Tło">Ustawa trafiła do Senatu.</sekcja>`)
	require.Equal(t, "Tło. Ustawa trafiła do Senatu.", got)
}

func TestInterpretSpectrum(t *testing.T) {
	t.Parallel()

	got := Interpret(`<spektrum lewa="Za regulacją" prawa="Przeciw regulacji"></spektrum>`)
	require.Equal(t, "Za regulacją | Przeciw regulacji", got)
}

func TestInterpretFootnoteAndContextUnwrap(t *testing.T) {
	t.Parallel()

	got := Interpret(`Tekst<przypis nr="1"> z przypisem</przypis> i <kontekst>kontekstem</kontekst>.`)
	require.Equal(t, "Tekst z przypisem i kontekstem.", got)
}

func TestInterpretLineBreaksAndEntities(t *testing.T) {
	t.Parallel()

	got := Interpret("Pierwsza linia<br/>druga &amp;quot;cytowana&amp;quot; linia &gt; reszta")
	require.Equal(t, "Pierwsza linia\ndruga \"cytowana\" linia > reszta", got)
}

func TestInterpretStripsBoldMarkers(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Ważny fragment tekstu", Interpret("**Ważny fragment** tekstu"))
}

func TestInterpretRemovesIdentifierReferences(t *testing.T) {
	t.Parallel()

	got := Interpret("Ustawa (12345) przeszła. Projekt (a81bc81b-dead-4e5d-abff-90865d1e13b1) odrzucony.")
	require.Equal(t, "Ustawa przeszła. Projekt odrzucony.", got)
}

func TestInterpretStripsUnknownTags(t *testing.T) {
	t.Parallel()

	require.Equal(t, "treść w środku", Interpret(`<custom-widget data-x="1">treść w środku</custom-widget>`))
}

func TestInterpretCollapsesWhitespace(t *testing.T) {
	t.Parallel()

	got := Interpret("Akapit pierwszy.\n\n\n\n\nAkapit   drugi.\t Koniec.")
	require.Equal(t, "Akapit pierwszy.\n\nAkapit drugi. Koniec.", got)
}

const kitchenSink = `<sekcja tytuł="Podsumowanie">Sejm przyjął ustawę.</sekcja>
<cytat autor="Premier" miejsce="Warszawa">To dobry dzień</cytat>
<kluczowa-liczba wartość="3.2 mld">Koszt programu</kluczowa-liczba>
<oś-czasu tytuł="Kalendarium">[{"date":"2025-01-01","label":"Start"}]</oś-czasu>
<wykres tytuł="Sondaż">[broken</wykres>
<sonda tytuł="Pytanie">[{"option":"A"}]</sonda>
**Analiza** (889921) pokazuje &amp;quot;stabilizację&amp;quot;.<br/>
<unknown attr="x">resztka</unknown>`

func TestInterpretIdempotence(t *testing.T) {
	t.Parallel()

	first := Interpret(kitchenSink)
	second := Interpret(first)
	require.Equal(t, first, second)
	require.NotContains(t, first, "<")
}

func TestInterpretKitchenSinkContents(t *testing.T) {
	t.Parallel()

	got := Interpret(kitchenSink)
	require.Contains(t, got, "Podsumowanie. Sejm przyjął ustawę.")
	require.Contains(t, got, `"To dobry dzień" — Premier, Warszawa`)
	require.Contains(t, got, "3.2 mld — Koszt programu")
	require.Contains(t, got, "Kalendarium: 2025-01-01 — Start")
	require.Contains(t, got, "Sondaż")
	require.NotContains(t, got, "Pytanie")
	require.NotContains(t, got, "889921")
	require.NotContains(t, got, "**")
	require.Contains(t, got, `Analiza pokazuje "stabilizację".`)
	require.Contains(t, got, "resztka")
}
