package wikipedia

import (
	"context"
	"playerbase/lib/player"
	"playerbase/lib/telemetry"
	"playerbase/lib/timezone"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const messiPage = `<html><body>
<h1 id="firstHeading"> Lionel Messi </h1>
<table class="infobox vcard">
<tr><th>Full name</th><td>Lionel Andrés Messi[1]</td></tr>
<tr><th>Date of birth</th><td>1 February 1987 (age 38)</td></tr>
<tr><th>Place of birth</th><td>Rosario, Santa Fe, Argentina[2]</td></tr>
<tr><th>Position(s)</th><td>Forward</td></tr>
<tr><th>Current team</th><td>Inter Miami</td></tr>
<tr><th colspan="4">Senior career<sup>*</sup></th></tr>
<tr><th>Years</th><td>Team</td><td>Apps</td><td>(Gls)</td></tr>
<tr><th>2003–2004</th><td>Barcelona C</td><td>10</td><td>(5)</td></tr>
<tr><th>2004–2021</th><td>Barcelona</td><td>520</td><td>(474)</td></tr>
<tr><th>2021–2023</th><td>Paris Saint-Germain</td><td>58</td><td>(22)</td></tr>
<tr><th>2023–</th><td>Inter Miami</td><td>150</td><td>(42)</td></tr>
<tr><th colspan="4">International career</th></tr>
<tr><td>2004–2005</td><td>2004–2005 Argentina U20</td><td>18</td></tr>
<tr><td>2005–</td><td>2005– Argentina</td><td>191</td></tr>
</table>
</body></html>`

func TestExtract(t *testing.T) {
	telemetry.SetupForTesting(t, "test:wikipedia")

	restore := timezone.SetClock(func() time.Time {
		return time.Date(2024, time.August, 26, 12, 30, 0, 0, time.UTC)
	})
	defer restore()

	record, err := ExtractHTML(context.Background(), messiPage)
	require.NoError(t, err)

	expected := player.Record{
		Name:                   player.Some("Lionel Messi"),
		FullName:               player.Some("Lionel Andrés Messi"),
		DateOfBirth:            player.Some("01.02.1987"),
		Age:                    player.Some[int64](38),
		PlaceOfBirth:           player.Some("Rosario, Santa Fe, Argentina"),
		CountryOfBirth:         player.Some("Argentina"),
		Positions:              player.Some("Forward"),
		CurrentClub:            player.Some("Inter Miami"),
		NationalTeam:           player.Some("Argentina"),
		AppearancesCurrentClub: player.Some[int64](150),
		GoalsCurrentClub:       player.Some[int64](42),
		ScrapingTimestamp:      player.Some("2024-08-26T12:30:00Z"),
	}
	if diff := cmp.Diff(expected, record); diff != "" {
		t.Fatal(diff)
	}
}

func TestExtractWithoutInfobox(t *testing.T) {
	telemetry.SetupForTesting(t, "test:wikipedia")

	record, err := ExtractHTML(context.Background(), `<h1 id="firstHeading">Someone</h1><p>No table here.</p>`)
	require.NoError(t, err)

	require.Equal(t, player.Some("Someone"), record.Name)
	require.True(t, record.ScrapingTimestamp.Valid)
	require.False(t, record.FullName.Valid)
	require.False(t, record.CurrentClub.Valid)
	require.False(t, record.AppearancesCurrentClub.Valid)
}

func TestExtractDegradesBadFields(t *testing.T) {
	telemetry.SetupForTesting(t, "test:wikipedia")

	page := `<table class="infobox">
<tr><th>Date of birth</th><td>sometime in spring (age 25)</td></tr>
<tr><th>Place of birth</th><td>Santa Cruz de Tenerife</td></tr>
<tr><th>Position</th><td>Midfielder / Winger</td></tr>
<tr><th>National team</th><td>Spain[3]</td></tr>
<tr><th>Senior career</th></tr>
<tr><th>2019–</th><td>Barcelona</td><td>n/a</td><td>–</td></tr>
</table>`
	record, err := ExtractHTML(context.Background(), page)
	require.NoError(t, err)

	require.False(t, record.Name.Valid)
	require.False(t, record.DateOfBirth.Valid)
	require.Equal(t, player.Some[int64](25), record.Age)
	require.Equal(t, player.Some("Santa Cruz de Tenerife"), record.CountryOfBirth)
	require.Equal(t, player.Some("Midfielder / Winger"), record.Positions)
	require.False(t, record.AppearancesCurrentClub.Valid)
	require.False(t, record.GoalsCurrentClub.Valid)
}

func TestExtractNationalTeamField(t *testing.T) {
	page := `<table class="infobox">
<tr><th>Current team</th><td>Al Nassr</td></tr>
<tr><th>Full name / national team</th><td>Cristiano Ronaldo</td></tr>
</table>`
	record, err := ExtractHTML(context.Background(), page)
	require.NoError(t, err)

	require.Equal(t, player.Some("Al Nassr"), record.CurrentClub)
	// only the first matching branch applies to a row
	require.Equal(t, player.Some("Cristiano Ronaldo"), record.FullName)
	require.False(t, record.NationalTeam.Valid)
}

func TestParseBirthDate(t *testing.T) {
	testCases := []struct {
		cell     string
		dob      string
		age      int64
		hasAge   bool
		hasError bool
	}{
		{cell: "1 February 1987 (age 38)", dob: "01.02.1987", age: 38, hasAge: true},
		{cell: "1 Feb 1987 (1987-02-01)", dob: "01.02.1987"},
		{cell: "(1987-06-24) 24 June 1987 (age 37)[1]", dob: "24.06.1987", age: 37, hasAge: true},
		{cell: "24 June 1987", dob: "24.06.1987"},
		{cell: "05 November 2002 (Age 21)", dob: "05.11.2002", age: 21, hasAge: true},
		{cell: "1 February 1987 (age\u00a038)", dob: "01.02.1987", age: 38, hasAge: true},
		{cell: "24\u00a0June 1987 (age\u00a037)", dob: "24.06.1987", age: 37, hasAge: true},
		{cell: "sometime in 1987 (age 38)", age: 38, hasAge: true, hasError: true},
		{cell: "(1987-13-45) 45 Smarch 1987", hasError: true},
		{cell: "", hasError: true},
	}

	for _, test := range testCases {
		dob, age, err := ParseBirthDate(test.cell)
		if test.hasError {
			require.Error(t, err, test.cell)
			require.False(t, dob.Valid, test.cell)
		} else {
			require.NoError(t, err, test.cell)
			require.Equal(t, player.Some(test.dob), dob, test.cell)
		}
		require.Equal(t, test.hasAge, age.Valid, test.cell)
		if test.hasAge {
			require.Equal(t, test.age, age.V, test.cell)
		}
	}
}

func TestExtractInfoboxBirthMarkup(t *testing.T) {
	telemetry.SetupForTesting(t, "test:wikipedia")

	page := `<h1 id="firstHeading">Lionel <i>Messi</i></h1>
<table class="infobox vcard">
<tr><th>Date of birth</th><td><span style="display:none"> (<span class="bday">1987-06-24</span>) </span>24 June 1987<span class="noprint ForceAgeToShow"> (age&nbsp;37)</span><sup>[1]</sup></td></tr>
</table>`
	record, err := ExtractHTML(context.Background(), page)
	require.NoError(t, err)

	require.Equal(t, player.Some("Lionel Messi"), record.Name)
	require.Equal(t, player.Some("24.06.1987"), record.DateOfBirth)
	require.Equal(t, player.Some[int64](37), record.Age)
}

func TestYearRangePrefix(t *testing.T) {
	testCases := []struct {
		team     string
		expected string
	}{
		{team: "2005– Argentina", expected: "Argentina"},
		{team: "2004–2005 Argentina U20", expected: "Argentina U20"},
		{team: "2004 Argentina", expected: "Argentina"},
		// only an en-dash separates years
		{team: "2004-2005 Argentina", expected: "-2005 Argentina"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, strings.TrimSpace(yearRangeRegex.ReplaceAllString(test.team, "")), test.team)
	}
}

func TestCountryOf(t *testing.T) {
	require.Equal(t, "Argentina", countryOf("Rosario, Santa Fe, Argentina"))
	require.Equal(t, "Portugal", countryOf("Funchal,Portugal"))
	require.Equal(t, "Madrid", countryOf(" Madrid "))
}
