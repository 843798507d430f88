// Package report renders store and pipeline results as tables for the
// command line.
package report

import (
	"database/sql"
	"fmt"
	"io"
	"playerbase/lib/player"
	"playerbase/services/clubs"
	"playerbase/services/ingest"
	"playerbase/services/playerstore"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

const missing = "-"

func NewTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func formatString(v sql.Null[string]) string {
	if !v.Valid {
		return missing
	}
	return v.V
}

func formatInt(v sql.Null[int64]) string {
	if !v.Valid {
		return missing
	}
	return strconv.FormatInt(v.V, 10)
}

func formatFloat(v sql.Null[float64], precision int) string {
	if !v.Valid {
		return missing
	}
	return strconv.FormatFloat(v.V, 'f', precision, 64)
}

func formatCategory(v sql.Null[player.AgeCategory]) string {
	if !v.Valid {
		return missing
	}
	return string(v.V)
}

func ClubStats(w io.Writer, stats []playerstore.ClubStat) {
	t := NewTable(w)
	t.SetTitle("Club statistics")
	t.AppendHeader(table.Row{"Club", "Players", "Average age", "Average appearances"})
	for _, s := range stats {
		t.AppendRow(table.Row{
			s.Club,
			s.Players,
			formatFloat(s.AvgAge, 1),
			formatFloat(s.AvgAppearances, 1),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

func Comparison(w io.Writer, club string, comparisons []playerstore.Comparison) {
	t := NewTable(w)
	t.SetTitle(fmt.Sprintf("Player comparison for %s", club))
	t.AppendHeader(table.Row{"Name", "Positions", "Age", "Appearances", "Better teammates"})
	for _, c := range comparisons {
		apps := "no data"
		if c.Appearances.Valid {
			apps = strconv.FormatInt(c.Appearances.V, 10)
		}
		t.AppendRow(table.Row{
			formatString(c.Name),
			formatString(c.Positions),
			formatInt(c.Age),
			apps,
			c.Better,
		})
	}
	t.Render()
}

// Player prints every field of a record, one per row. Derived fields are
// computed from the primary ones.
func Player(w io.Writer, record player.Record) {
	record.Derive()

	t := NewTable(w)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"url", record.URL},
		{"name", formatString(record.Name)},
		{"full_name", formatString(record.FullName)},
		{"date_of_birth", formatString(record.DateOfBirth)},
		{"age", formatInt(record.Age)},
		{"place_of_birth", formatString(record.PlaceOfBirth)},
		{"country_of_birth", formatString(record.CountryOfBirth)},
		{"positions", formatString(record.Positions)},
		{"current_club", formatString(record.CurrentClub)},
		{"national_team", formatString(record.NationalTeam)},
		{"appearances_current_club", formatInt(record.AppearancesCurrentClub)},
		{"goals_current_club", formatInt(record.GoalsCurrentClub)},
		{"scraping_timestamp", formatString(record.ScrapingTimestamp)},
		{"age_category", formatCategory(record.AgeCategory)},
		{"goals_per_club_game", formatFloat(record.GoalsPerClubGame, 2)},
	})
	t.Render()
}

func Standardization(w io.Writer, result clubs.Result) {
	t := NewTable(w)
	t.SetTitle("Club names")
	t.AppendHeader(table.Row{"Step", "From", "To"})
	for _, m := range result.Normalized {
		t.AppendRow(table.Row{"normalized", m.Original, m.Canonical})
	}
	for _, m := range result.Merged {
		t.AppendRow(table.Row{"merged", m.Original, m.Canonical})
	}
	t.AppendFooter(table.Row{"", "Changed", len(result.Normalized) + len(result.Merged)})
	t.Render()
}

func Batch(w io.Writer, result ingest.BatchResult) {
	t := NewTable(w)
	t.SetTitle(fmt.Sprintf("Scrape %s: %d/%d saved", result.RunID, result.Saved, result.Total))
	t.AppendHeader(table.Row{"Failed URL", "Error"})
	for _, f := range result.Failures {
		t.AppendRow(table.Row{f.URL, f.Err.Error()})
	}
	t.Render()
}

func Import(w io.Writer, result ingest.ImportResult) {
	t := NewTable(w)
	t.SetTitle("CSV import")
	t.AppendHeader(table.Row{"Rows", "Inserted", "Already stored", "Skipped"})
	t.AppendRow(table.Row{
		result.Rows,
		result.Inserted,
		result.Rows - result.Inserted - result.Skipped,
		result.Skipped,
	})
	t.Render()
}
