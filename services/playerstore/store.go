package playerstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"playerbase/lib/player"
	"playerbase/lib/sqliteutil"
	"playerbase/services/playerstore/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("playerbase.services.playerstore")

var ErrNotFound = errors.New("player not found")

// columns that may be read with SelectDistinct and rewritten with UpdateWhere
var textColumns = map[string]struct{}{
	"name":             {},
	"full_name":        {},
	"place_of_birth":   {},
	"country_of_birth": {},
	"positions":        {},
	"current_club":     {},
	"national_team":    {},
}

type Store struct {
	db     *sql.DB
	qry    *db.Queries
	makeTx db.MakeTx
}

// NewStore wraps a database that already has db.Schema applied.
func NewStore(database *sql.DB) *Store {
	return &Store{
		db:     database,
		qry:    db.New(database),
		makeTx: db.NewMakeTx(database),
	}
}

// Open opens the configured database, creating the players table and
// the derived columns when they are missing.
func Open(ctx context.Context, config sqliteutil.Config) (*Store, error) {
	database, err := config.OpenDB(db.Schema)
	if err != nil {
		return nil, fmt.Errorf("open player store: %w", err)
	}
	store := NewStore(database)
	err = store.EnsureDerivedColumns(ctx)
	if err != nil {
		database.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert inserts the record or, if its URL is already stored, replaces
// every scraped field. Derived columns are left untouched.
func (s *Store) Upsert(ctx context.Context, record player.Record) error {
	ctx, span := tracer.Start(ctx, "Upsert")
	defer span.End()
	span.SetAttributes(attribute.String("url", record.URL))

	if record.URL == "" {
		return fmt.Errorf("upsert player: url is required")
	}
	err := s.qry.UpsertPlayer(ctx, db.UpsertPlayerParams{
		Url:                    record.URL,
		Name:                   record.Name,
		FullName:               record.FullName,
		DateOfBirth:            record.DateOfBirth,
		Age:                    record.Age,
		PlaceOfBirth:           record.PlaceOfBirth,
		CountryOfBirth:         record.CountryOfBirth,
		Positions:              record.Positions,
		CurrentClub:            record.CurrentClub,
		NationalTeam:           record.NationalTeam,
		AppearancesCurrentClub: record.AppearancesCurrentClub,
		GoalsCurrentClub:       record.GoalsCurrentClub,
		ScrapingTimestamp:      record.ScrapingTimestamp,
	})
	if err != nil {
		return fmt.Errorf("upsert player %s: %w", record.URL, err)
	}
	return nil
}

func insertParams(record player.Record) db.InsertPlayerIfAbsentParams {
	return db.InsertPlayerIfAbsentParams{
		Url:            record.URL,
		Name:           record.Name,
		FullName:       record.FullName,
		DateOfBirth:    record.DateOfBirth,
		Age:            record.Age,
		PlaceOfBirth:   record.PlaceOfBirth,
		CountryOfBirth: record.CountryOfBirth,
		Positions:      record.Positions,
		CurrentClub:    record.CurrentClub,
		NationalTeam:   record.NationalTeam,
	}
}

// InsertIfAbsent inserts the identity fields of record unless its URL
// is already stored. It reports whether a row was inserted.
func (s *Store) InsertIfAbsent(ctx context.Context, record player.Record) (bool, error) {
	if record.URL == "" {
		return false, fmt.Errorf("insert player: url is required")
	}
	affected, err := s.qry.InsertPlayerIfAbsent(ctx, insertParams(record))
	if err != nil {
		return false, fmt.Errorf("insert player %s: %w", record.URL, err)
	}
	return affected > 0, nil
}

// InsertAllIfAbsent runs InsertIfAbsent for every record inside one
// transaction and returns how many rows were inserted.
func (s *Store) InsertAllIfAbsent(ctx context.Context, records []player.Record) (int, error) {
	ctx, span := tracer.Start(ctx, "InsertAllIfAbsent")
	defer span.End()

	txqry, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		return 0, err
	}
	defer discard()

	inserted := 0
	for _, record := range records {
		if record.URL == "" {
			continue
		}
		affected, err := txqry.InsertPlayerIfAbsent(ctx, insertParams(record))
		if err != nil {
			return 0, fmt.Errorf("insert player %s: %w", record.URL, err)
		}
		if affected > 0 {
			inserted++
		}
	}

	err = commit()
	if err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.Int("inserted", inserted))
	return inserted, nil
}

func checkTextColumn(column string) error {
	if _, ok := textColumns[column]; !ok {
		return fmt.Errorf("column %q cannot be selected or rewritten", column)
	}
	return nil
}

// SelectDistinct returns the distinct non-null values of column in
// ascending order.
func (s *Store) SelectDistinct(ctx context.Context, column string) ([]string, error) {
	err := checkTextColumn(column)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"select distinct %[1]s from players where %[1]s is not null order by %[1]s",
		column,
	)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

// UpdateWhere sets column to newValue on every row where it currently
// equals oldValue and returns the number of rows changed.
func (s *Store) UpdateWhere(ctx context.Context, column, oldValue, newValue string) (int64, error) {
	err := checkTextColumn(column)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("update players set %[1]s = ? where %[1]s = ?", column)
	result, err := s.db.ExecContext(ctx, query, newValue, oldValue)
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", column, err)
	}
	return result.RowsAffected()
}

// EnsureDerivedColumns adds age_category and goals_per_club_game to the
// players table if they do not exist yet. It is safe to call repeatedly.
func (s *Store) EnsureDerivedColumns(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, "pragma table_info(players)")
	if err != nil {
		return err
	}
	existing := make(map[string]struct{})
	for rows.Next() {
		var (
			cid       int64
			name      string
			ctype     string
			notnull   int64
			dfltValue any
			pk        int64
		)
		err = rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk)
		if err != nil {
			rows.Close()
			return err
		}
		existing[name] = struct{}{}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, column := range db.DerivedColumns {
		if _, ok := existing[column.Name]; ok {
			continue
		}
		_, err = s.db.ExecContext(ctx, fmt.Sprintf(
			"alter table players add column %s %s", column.Name, column.Type,
		))
		if err != nil {
			return fmt.Errorf("add column %s: %w", column.Name, err)
		}
		slog.InfoContext(ctx, "added derived column", "column", column.Name)
	}
	return nil
}

// ComputeDerivedColumns recomputes age_category and goals_per_club_game
// for every row and returns the number of rows updated.
func (s *Store) ComputeDerivedColumns(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "ComputeDerivedColumns")
	defer span.End()

	txqry, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		return 0, err
	}
	defer discard()

	updated, err := txqry.ComputeAgeCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("compute age categories: %w", err)
	}
	_, err = txqry.ComputeGoalsPerClubGame(ctx)
	if err != nil {
		return 0, fmt.Errorf("compute goals per club game: %w", err)
	}
	err = commit()
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func toRecord(row db.Player) player.Record {
	record := player.Record{
		URL:                    row.Url,
		Name:                   row.Name,
		FullName:               row.FullName,
		DateOfBirth:            row.DateOfBirth,
		Age:                    row.Age,
		PlaceOfBirth:           row.PlaceOfBirth,
		CountryOfBirth:         row.CountryOfBirth,
		Positions:              row.Positions,
		CurrentClub:            row.CurrentClub,
		NationalTeam:           row.NationalTeam,
		AppearancesCurrentClub: row.AppearancesCurrentClub,
		GoalsCurrentClub:       row.GoalsCurrentClub,
		ScrapingTimestamp:      row.ScrapingTimestamp,
		GoalsPerClubGame:       row.GoalsPerClubGame,
	}
	if row.AgeCategory.Valid {
		record.AgeCategory = player.Some(player.AgeCategory(row.AgeCategory.V))
	}
	return record
}

func toRecords(rows []db.Player) []player.Record {
	records := make([]player.Record, len(rows))
	for i, row := range rows {
		records[i] = toRecord(row)
	}
	return records
}

func (s *Store) Get(ctx context.Context, url string) (player.Record, error) {
	row, err := s.qry.GetPlayer(ctx, url)
	if errors.Is(err, sql.ErrNoRows) {
		return player.Record{}, ErrNotFound
	}
	if err != nil {
		return player.Record{}, err
	}
	return toRecord(row), nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.qry.CountPlayers(ctx)
}

// All returns every stored player in insertion order.
func (s *Store) All(ctx context.Context) ([]player.Record, error) {
	rows, err := s.qry.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	return toRecords(rows), nil
}
