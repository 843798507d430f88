// Package player holds the consolidated player record shared by the
// scraper, the CSV importer and the store.
package player

import (
	"database/sql"
)

type AgeCategory string

const (
	Young  AgeCategory = "Young"
	MidAge AgeCategory = "MidAge"
	Old    AgeCategory = "Old"
)

// Record is one row of the players table, keyed by URL.
// Absent values are represented by an invalid sql.Null.
type Record struct {
	URL                    string
	Name                   sql.Null[string]
	FullName               sql.Null[string]
	DateOfBirth            sql.Null[string] // DD.MM.YYYY
	Age                    sql.Null[int64]
	PlaceOfBirth           sql.Null[string]
	CountryOfBirth         sql.Null[string]
	Positions              sql.Null[string]
	CurrentClub            sql.Null[string]
	NationalTeam           sql.Null[string]
	AppearancesCurrentClub sql.Null[int64]
	GoalsCurrentClub       sql.Null[int64]
	ScrapingTimestamp      sql.Null[string]

	// derived, recomputed in a separate pass
	AgeCategory      sql.Null[AgeCategory]
	GoalsPerClubGame sql.Null[float64]
}

func Some[T any](v T) sql.Null[T] {
	return sql.Null[T]{V: v, Valid: true}
}

func None[T any]() sql.Null[T] {
	return sql.Null[T]{}
}

// SomeString treats the empty string as absent.
func SomeString(s string) sql.Null[string] {
	if s == "" {
		return sql.Null[string]{}
	}
	return Some(s)
}

func AgeCategoryFor(age sql.Null[int64]) sql.Null[AgeCategory] {
	if !age.Valid {
		return None[AgeCategory]()
	}
	switch {
	case age.V <= 23:
		return Some(Young)
	case age.V <= 32:
		return Some(MidAge)
	default:
		return Some(Old)
	}
}

// GoalsPerGame is absent when appearances are absent or zero, or when
// goals are absent.
func GoalsPerGame(goals, appearances sql.Null[int64]) sql.Null[float64] {
	if !appearances.Valid || appearances.V == 0 || !goals.Valid {
		return None[float64]()
	}
	return Some(float64(goals.V) / float64(appearances.V))
}

// Derive fills the derived fields from the primary ones.
func (r *Record) Derive() {
	r.AgeCategory = AgeCategoryFor(r.Age)
	r.GoalsPerClubGame = GoalsPerGame(r.GoalsCurrentClub, r.AppearancesCurrentClub)
}
