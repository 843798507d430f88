package ingest

import (
	"context"
	"errors"
	"playerbase/lib/player"
	"playerbase/lib/scrapers/wikipedia"
	"playerbase/lib/testutil"
	"playerbase/services/playerstore"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setupStore(t testing.TB) *playerstore.Store {
	return testutil.SetupStore(t, testutil.StoreParams{Name: "ingest"})
}

const playersCSV = `URL;Name;Full name;Date of birth;Age;City of birth;Country of birth;Position;Current club;National_team
https://en.wikipedia.org/wiki/Pedri;Pedri;Pedro González López;25.11.2002;21;Tegueste;Spain;Midfielder;Barcelona;Spain
https://en.wikipedia.org/wiki/Gavi;Gavi;Pablo Martín Páez Gavira;05.08.2004;19.0;Los Palacios y Villafranca;Spain;Midfielder;FC Barcelona;
;Nobody;;;;;;;;
https://en.wikipedia.org/wiki/Lamine_Yamal;Lamine Yamal;;13.07.2007;unknown;Esplugues de Llobregat;Spain;Winger;Barcelona;Spain
`

func TestParseCSV(t *testing.T) {
	records, skipped, err := ParseCSV(strings.NewReader(playersCSV))
	require.NoError(t, err)
	require.Equal(t, 1, skipped)
	require.Len(t, records, 3)

	require.Equal(t, player.Record{
		URL:            "https://en.wikipedia.org/wiki/Pedri",
		Name:           player.Some("Pedri"),
		FullName:       player.Some("Pedro González López"),
		DateOfBirth:    player.Some("25.11.2002"),
		Age:            player.Some[int64](21),
		PlaceOfBirth:   player.Some("Tegueste"),
		CountryOfBirth: player.Some("Spain"),
		Positions:      player.Some("Midfielder"),
		CurrentClub:    player.Some("Barcelona"),
		NationalTeam:   player.Some("Spain"),
	}, records[0])

	require.Equal(t, player.Some[int64](19), records[1].Age)
	require.False(t, records[1].NationalTeam.Valid)
	require.False(t, records[2].Age.Valid)
	require.False(t, records[2].FullName.Valid)
}

func TestParseCSVRequiresURL(t *testing.T) {
	_, _, err := ParseCSV(strings.NewReader("Name;Age\nPedri;21\n"))
	require.Error(t, err)
	_, _, err = ParseCSV(strings.NewReader(""))
	require.Error(t, err)
}

func TestImportCSVNeverOverwrites(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	scraped := player.Record{
		URL:                    "https://en.wikipedia.org/wiki/Pedri",
		Name:                   player.Some("Pedri"),
		CurrentClub:            player.Some("FC Barcelona"),
		AppearancesCurrentClub: player.Some[int64](150),
		ScrapingTimestamp:      player.Some("2024-08-26T12:30:00Z"),
	}
	require.NoError(t, store.Upsert(ctx, scraped))

	result, err := ImportCSV(ctx, store, strings.NewReader(playersCSV))
	require.NoError(t, err)
	require.Equal(t, ImportResult{Rows: 4, Inserted: 2, Skipped: 1}, result)

	pedri, err := store.Get(ctx, scraped.URL)
	require.NoError(t, err)
	require.Equal(t, scraped, pedri)

	// importing again is a no-op
	result, err = ImportCSV(ctx, store, strings.NewReader(playersCSV))
	require.NoError(t, err)
	require.Equal(t, 0, result.Inserted)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
}

func TestReadURLList(t *testing.T) {
	urls, err := ReadURLList(strings.NewReader("\ufeffhttps://en.wikipedia.org/wiki/Pedri\n\n  https://en.wikipedia.org/wiki/Gavi  \nhttps://en.wikipedia.org/wiki/Lamine_Yamal,extra\n"))
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://en.wikipedia.org/wiki/Pedri",
		"https://en.wikipedia.org/wiki/Gavi",
		"https://en.wikipedia.org/wiki/Lamine_Yamal",
	}, urls)
}

type fakeFetcher struct {
	pages   map[string]string
	fetched []string
	times   []time.Time
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.fetched = append(f.fetched, url)
	f.times = append(f.times, time.Now())
	markup, ok := f.pages[url]
	if !ok {
		return "", &wikipedia.FetchError{URL: url, Status: 404}
	}
	return markup, nil
}

func page(name, club string) string {
	return `<h1 id="firstHeading">` + name + `</h1>
<table class="infobox">
<tr><th>Current team</th><td>` + club + `</td></tr>
</table>`
}

func TestScraperRun(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	fetcher := &fakeFetcher{pages: map[string]string{
		"https://en.wikipedia.org/wiki/Pedri":        page("Pedri", "Barcelona"),
		"https://en.wikipedia.org/wiki/Lamine_Yamal": page("Lamine Yamal", "Barcelona"),
	}}
	delay := 20 * time.Millisecond
	scraper := Scraper{Fetcher: fetcher, Store: store, Delay: delay}

	urls := []string{
		"https://en.wikipedia.org/wiki/Pedri",
		"https://en.wikipedia.org/wiki/Missing",
		"https://en.wikipedia.org/wiki/Lamine_Yamal",
	}
	result := scraper.Run(ctx, urls)

	require.Equal(t, 3, result.Total)
	require.Equal(t, 2, result.Saved)
	require.Len(t, result.Failures, 1)
	require.Equal(t, "https://en.wikipedia.org/wiki/Missing", result.Failures[0].URL)
	var fetchErr *wikipedia.FetchError
	require.True(t, errors.As(result.Failures[0].Err, &fetchErr))
	require.NotEmpty(t, result.RunID)

	require.Equal(t, urls, fetcher.fetched)
	for i := 1; i < len(fetcher.times); i++ {
		// the limiter may fire slightly early relative to our clock reads
		require.GreaterOrEqual(t, fetcher.times[i].Sub(fetcher.times[i-1]), delay-5*time.Millisecond)
	}

	yamal, err := store.Get(ctx, "https://en.wikipedia.org/wiki/Lamine_Yamal")
	require.NoError(t, err)
	require.Equal(t, player.Some("Lamine Yamal"), yamal.Name)
	require.Equal(t, player.Some("Barcelona"), yamal.CurrentClub)
	require.True(t, yamal.ScrapingTimestamp.Valid)

	_, err = store.Get(ctx, "https://en.wikipedia.org/wiki/Missing")
	require.ErrorIs(t, err, playerstore.ErrNotFound)
}

func TestScraperRunCancelled(t *testing.T) {
	store := setupStore(t)
	fetcher := &fakeFetcher{pages: map[string]string{}}
	scraper := Scraper{Fetcher: fetcher, Store: store, Delay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := scraper.Run(ctx, []string{"a", "b"})
	require.Empty(t, fetcher.fetched)
	require.Equal(t, 0, result.Saved)
}
