package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"playerbase/lib/player"
	"strconv"
	"strings"
)

// Inserter stores records without overwriting existing ones.
type Inserter interface {
	InsertAllIfAbsent(ctx context.Context, records []player.Record) (int, error)
}

type ImportResult struct {
	Rows     int
	Inserted int
	// rows without a URL
	Skipped int
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		name = strings.TrimPrefix(name, "\ufeff")
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseAge accepts integers and integral decimals ("27", "27.0"),
// anything else is absent.
func parseAge(value string) (int64, bool) {
	if value == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err == nil {
		return n, n >= 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// ParseCSV reads semicolon separated rows with the header URL, Name,
// Full name, Date of birth, Age, City of birth, Country of birth,
// Position, Current club, National_team. Columns may appear in any order.
func ParseCSV(r io.Reader) ([]player.Record, int, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := readHeader(reader)
	if errors.Is(err, io.EOF) {
		return nil, 0, fmt.Errorf("csv is empty")
	}
	if err != nil {
		return nil, 0, err
	}
	if _, ok := header["url"]; !ok {
		return nil, 0, fmt.Errorf("csv header has no URL column")
	}

	var (
		records []player.Record
		skipped int
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		url := valueAt(header, row, "url")
		if url == "" {
			skipped++
			continue
		}

		record := player.Record{
			URL:            url,
			Name:           player.SomeString(valueAt(header, row, "name")),
			FullName:       player.SomeString(valueAt(header, row, "full name")),
			DateOfBirth:    player.SomeString(valueAt(header, row, "date of birth")),
			PlaceOfBirth:   player.SomeString(valueAt(header, row, "city of birth")),
			CountryOfBirth: player.SomeString(valueAt(header, row, "country of birth")),
			Positions:      player.SomeString(valueAt(header, row, "position")),
			CurrentClub:    player.SomeString(valueAt(header, row, "current club")),
			NationalTeam:   player.SomeString(valueAt(header, row, "national_team")),
		}
		if age, ok := parseAge(valueAt(header, row, "age")); ok {
			record.Age = player.Some(age)
		}
		records = append(records, record)
	}
	return records, skipped, nil
}

// ImportCSV inserts every row whose URL is not stored yet. Existing
// players, including the ones filled in by the scraper, are never
// modified.
func ImportCSV(ctx context.Context, store Inserter, r io.Reader) (ImportResult, error) {
	ctx, span := tracer.Start(ctx, "ImportCSV")
	defer span.End()

	records, skipped, err := ParseCSV(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read csv: %w", err)
	}
	inserted, err := store.InsertAllIfAbsent(ctx, records)
	if err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{
		Rows:     len(records) + skipped,
		Inserted: inserted,
		Skipped:  skipped,
	}
	slog.InfoContext(ctx, "csv import completed",
		"rows", result.Rows,
		"inserted", result.Inserted,
		"skipped", result.Skipped,
	)
	return result, nil
}

func ImportCSVFile(ctx context.Context, store Inserter, path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, err
	}
	defer f.Close()
	return ImportCSV(ctx, store, f)
}
