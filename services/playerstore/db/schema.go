package db

import (
	_ "embed"
)

//go:embed schema.sql
var Schema string

// columns added after the initial schema, see Store.EnsureDerivedColumns
var DerivedColumns = []struct {
	Name string
	Type string
}{
	{Name: "age_category", Type: "text"},
	{Name: "goals_per_club_game", Type: "real"},
}
