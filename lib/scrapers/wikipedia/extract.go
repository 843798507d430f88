package wikipedia

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"playerbase/lib/htmlutil"
	"playerbase/lib/player"
	"playerbase/lib/timezone"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

const birthDateFormat = "02.01.2006"

var (
	citationRegex   = regexp.MustCompile(`\[.*?\]`)
	ageRegex        = regexp.MustCompile(`(?i)age\s*(\d+)`)
	isoDateRegex    = regexp.MustCompile(`\((\d{4}-\d{2}-\d{2})\)`)
	integerRegex    = regexp.MustCompile(`\d+`)
	yearRangeRegex  = regexp.MustCompile(`^\d{4}(–\d{4})?\s*–?\s*`)
	ageGradeRegex   = regexp.MustCompile(`u-?\d+`)
	digitsOnlyRegex = regexp.MustCompile(`^\d+$`)
)

// ParseBirthDate reads a "date of birth" cell. The age is parsed
// independently of the date, so it may be present when err is not nil.
func ParseBirthDate(cell string) (dob sql.Null[string], age sql.Null[int64], err error) {
	// infoboxes render "(age&nbsp;37)", collapsing first lets \s match it
	text := htmlutil.CollapseWhitespace(citationRegex.ReplaceAllString(cell, ""))

	if groups := ageRegex.FindStringSubmatch(text); groups != nil {
		n, err := strconv.ParseInt(groups[1], 10, 64)
		if err == nil {
			age = player.Some(n)
		}
	}

	if groups := isoDateRegex.FindStringSubmatch(text); groups != nil {
		date, err := time.Parse(time.DateOnly, groups[1])
		if err != nil {
			return dob, age, fmt.Errorf("parse birth date %q: %w", groups[1], err)
		}
		return player.Some(date.Format(birthDateFormat)), age, nil
	}

	before, _, _ := strings.Cut(text, "(")
	before = strings.TrimSpace(before)
	date, err := time.Parse("2 January 2006", before)
	if err != nil {
		return dob, age, fmt.Errorf("parse birth date %q: %w", before, err)
	}
	return player.Some(date.Format(birthDateFormat)), age, nil
}

// ExtractHTML parses markup and extracts the player described by it.
func ExtractHTML(ctx context.Context, markup string) (player.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return player.Record{}, err
	}
	return Extract(ctx, doc), nil
}

// Extract reads a player biography page. Fields that cannot be found or
// parsed are left absent; URL is left for the caller to fill in.
func Extract(ctx context.Context, doc *goquery.Document) player.Record {
	ctx, span := tracer.Start(ctx, "Extract")
	defer span.End()

	record := player.Record{
		ScrapingTimestamp: player.Some(timezone.Now().Format(time.RFC3339Nano)),
	}

	heading := doc.Find("h1#firstHeading").First()
	if heading.Length() > 0 {
		record.Name = player.SomeString(strings.TrimSpace(htmlutil.GetText(heading.Get(0))))
	}

	infobox := doc.Find("table.infobox").First()
	if infobox.Length() == 0 {
		span.AddEvent("no infobox")
		return record
	}
	rows := infobox.Find("tr")

	extractFields(ctx, rows, &record)
	extractSeniorCareer(rows, &record)
	extractInternationalCareer(rows, &record)

	span.SetAttributes(
		attribute.String("name", record.Name.V),
		attribute.String("current_club", record.CurrentClub.V),
	)
	return record
}

func extractFields(ctx context.Context, rows *goquery.Selection, record *player.Record) {
	rows.Each(func(_ int, row *goquery.Selection) {
		header := row.Find("th").First()
		cell := row.Find("td").First()
		if header.Length() == 0 || cell.Length() == 0 {
			return
		}

		label := strings.ToLower(strings.TrimSpace(header.Text()))
		value := htmlutil.BeforeCitation(cell.Text())

		switch {
		case strings.Contains(label, "full name"):
			record.FullName = player.SomeString(value)
		case strings.Contains(label, "date of birth"):
			dob, age, err := ParseBirthDate(cell.Text())
			if age.Valid {
				record.Age = age
			}
			record.DateOfBirth = dob
			if err != nil {
				slog.WarnContext(ctx, "failed to parse date of birth", "err", err)
			}
		case strings.Contains(label, "place of birth"):
			record.PlaceOfBirth = player.SomeString(value)
			record.CountryOfBirth = player.SomeString(countryOf(value))
		case strings.Contains(label, "position"):
			record.Positions = player.SomeString(value)
		case strings.Contains(label, "current team"):
			record.CurrentClub = player.SomeString(value)
		case strings.Contains(label, "national team"):
			record.NationalTeam = player.SomeString(value)
		}
	})
}

// countryOf returns the segment after the last comma of a place of birth.
func countryOf(place string) string {
	idx := strings.LastIndex(place, ",")
	if idx < 0 {
		return strings.TrimSpace(place)
	}
	return strings.TrimSpace(place[idx+1:])
}

func headerText(row *goquery.Selection) (string, bool) {
	th := row.Find("th").First()
	if th.Length() == 0 {
		return "", false
	}
	return strings.ToLower(htmlutil.StrippedText(th)), true
}

// extractSeniorCareer keeps the appearances and goals of the last club
// row in the senior career section.
func extractSeniorCareer(rows *goquery.Selection, record *player.Record) {
	inSenior := false
	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if text, ok := headerText(row); ok {
			if strings.Contains(text, "senior career") {
				inSenior = true
				return true
			}
			if inSenior && strings.Contains(text, "international career") {
				return false
			}
		}
		if !inSenior {
			return true
		}

		cells := row.Find("td")
		if cells.Length() < 3 {
			return true
		}
		apps := htmlutil.StrippedText(cells.Eq(cells.Length() - 2))
		goals := htmlutil.StrippedText(cells.Last())

		if digitsOnlyRegex.MatchString(apps) {
			n, err := strconv.ParseInt(apps, 10, 64)
			if err == nil {
				record.AppearancesCurrentClub = player.Some(n)
			}
		}
		if match := integerRegex.FindString(goals); match != "" {
			n, err := strconv.ParseInt(match, 10, 64)
			if err == nil {
				record.GoalsCurrentClub = player.Some(n)
			}
		}
		return true
	})
}

// extractInternationalCareer overwrites the national team with the last
// senior (non age-grade) team listed in the international section.
func extractInternationalCareer(rows *goquery.Selection, record *player.Record) {
	inInternational := false
	rows.Each(func(_ int, row *goquery.Selection) {
		if text, ok := headerText(row); ok {
			if strings.Contains(text, "international career") || strings.Contains(text, "national team") {
				inInternational = true
				return
			}
		}
		if !inInternational {
			return
		}

		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		team := htmlutil.StrippedText(cells.Eq(1))
		team = strings.TrimSpace(yearRangeRegex.ReplaceAllString(team, ""))
		if ageGradeRegex.MatchString(strings.ToLower(team)) {
			return
		}
		record.NationalTeam = player.Some(team)
	})
}
