package db

import (
	"context"
	"database/sql"
)

const upsertPlayer = `-- name: UpsertPlayer :exec
insert into players (
    url, name, full_name, date_of_birth, age,
    place_of_birth, country_of_birth, positions,
    current_club, national_team, appearances_current_club,
    goals_current_club, scraping_timestamp
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
on conflict(url) do update set
    name = excluded.name,
    full_name = excluded.full_name,
    date_of_birth = excluded.date_of_birth,
    age = excluded.age,
    place_of_birth = excluded.place_of_birth,
    country_of_birth = excluded.country_of_birth,
    positions = excluded.positions,
    current_club = excluded.current_club,
    national_team = excluded.national_team,
    appearances_current_club = excluded.appearances_current_club,
    goals_current_club = excluded.goals_current_club,
    scraping_timestamp = excluded.scraping_timestamp
`

type UpsertPlayerParams struct {
	Url                    string
	Name                   sql.Null[string]
	FullName               sql.Null[string]
	DateOfBirth            sql.Null[string]
	Age                    sql.Null[int64]
	PlaceOfBirth           sql.Null[string]
	CountryOfBirth         sql.Null[string]
	Positions              sql.Null[string]
	CurrentClub            sql.Null[string]
	NationalTeam           sql.Null[string]
	AppearancesCurrentClub sql.Null[int64]
	GoalsCurrentClub       sql.Null[int64]
	ScrapingTimestamp      sql.Null[string]
}

func (q *Queries) UpsertPlayer(ctx context.Context, arg UpsertPlayerParams) error {
	_, err := q.db.ExecContext(ctx, upsertPlayer,
		arg.Url,
		arg.Name,
		arg.FullName,
		arg.DateOfBirth,
		arg.Age,
		arg.PlaceOfBirth,
		arg.CountryOfBirth,
		arg.Positions,
		arg.CurrentClub,
		arg.NationalTeam,
		arg.AppearancesCurrentClub,
		arg.GoalsCurrentClub,
		arg.ScrapingTimestamp,
	)
	return err
}

const insertPlayerIfAbsent = `-- name: InsertPlayerIfAbsent :execrows
insert into players (
    url, name, full_name, date_of_birth, age,
    place_of_birth, country_of_birth, positions,
    current_club, national_team
) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
on conflict(url) do nothing
`

type InsertPlayerIfAbsentParams struct {
	Url            string
	Name           sql.Null[string]
	FullName       sql.Null[string]
	DateOfBirth    sql.Null[string]
	Age            sql.Null[int64]
	PlaceOfBirth   sql.Null[string]
	CountryOfBirth sql.Null[string]
	Positions      sql.Null[string]
	CurrentClub    sql.Null[string]
	NationalTeam   sql.Null[string]
}

func (q *Queries) InsertPlayerIfAbsent(ctx context.Context, arg InsertPlayerIfAbsentParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, insertPlayerIfAbsent,
		arg.Url,
		arg.Name,
		arg.FullName,
		arg.DateOfBirth,
		arg.Age,
		arg.PlaceOfBirth,
		arg.CountryOfBirth,
		arg.Positions,
		arg.CurrentClub,
		arg.NationalTeam,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const playerColumns = `player_id, url, name, full_name, date_of_birth, age, place_of_birth, country_of_birth, positions, current_club, national_team, appearances_current_club, goals_current_club, scraping_timestamp, age_category, goals_per_club_game`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlayer(row rowScanner) (Player, error) {
	var i Player
	err := row.Scan(
		&i.PlayerID,
		&i.Url,
		&i.Name,
		&i.FullName,
		&i.DateOfBirth,
		&i.Age,
		&i.PlaceOfBirth,
		&i.CountryOfBirth,
		&i.Positions,
		&i.CurrentClub,
		&i.NationalTeam,
		&i.AppearancesCurrentClub,
		&i.GoalsCurrentClub,
		&i.ScrapingTimestamp,
		&i.AgeCategory,
		&i.GoalsPerClubGame,
	)
	return i, err
}

const getPlayer = `-- name: GetPlayer :one
select ` + playerColumns + ` from players where url = ?
`

func (q *Queries) GetPlayer(ctx context.Context, url string) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayer, url)
	return scanPlayer(row)
}

const countPlayers = `-- name: CountPlayers :one
select count(*) from players
`

func (q *Queries) CountPlayers(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPlayers)
	var count int64
	err := row.Scan(&count)
	return count, err
}

func (q *Queries) listPlayers(ctx context.Context, query string, args ...interface{}) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Player
	for rows.Next() {
		i, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listPlayers = `-- name: ListPlayers :many
select ` + playerColumns + ` from players order by player_id
`

func (q *Queries) ListPlayers(ctx context.Context) ([]Player, error) {
	return q.listPlayers(ctx, listPlayers)
}

const listPlayersByClub = `-- name: ListPlayersByClub :many
select ` + playerColumns + ` from players where current_club = ? order by player_id
`

func (q *Queries) ListPlayersByClub(ctx context.Context, currentClub string) ([]Player, error) {
	return q.listPlayers(ctx, listPlayersByClub, currentClub)
}

const computeAgeCategories = `-- name: ComputeAgeCategories :execrows
update players set age_category = case
    when age is null then null
    when age <= 23 then 'Young'
    when age between 24 and 32 then 'MidAge'
    else 'Old'
end
`

func (q *Queries) ComputeAgeCategories(ctx context.Context) (int64, error) {
	result, err := q.db.ExecContext(ctx, computeAgeCategories)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const computeGoalsPerClubGame = `-- name: ComputeGoalsPerClubGame :execrows
update players set goals_per_club_game = case
    when appearances_current_club is null or appearances_current_club = 0 then null
    else cast(goals_current_club as real) / appearances_current_club
end
`

func (q *Queries) ComputeGoalsPerClubGame(ctx context.Context) (int64, error) {
	result, err := q.db.ExecContext(ctx, computeGoalsPerClubGame)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getClubStats = `-- name: GetClubStats :many
select
    current_club,
    count(*) as total_players,
    avg(age) as avg_age,
    avg(appearances_current_club) as avg_appearances
from players
where current_club is not null
group by current_club
order by total_players desc, current_club asc
`

type GetClubStatsRow struct {
	CurrentClub    string
	TotalPlayers   int64
	AvgAge         sql.Null[float64]
	AvgAppearances sql.Null[float64]
}

func (q *Queries) GetClubStats(ctx context.Context) ([]GetClubStatsRow, error) {
	rows, err := q.db.QueryContext(ctx, getClubStats)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetClubStatsRow
	for rows.Next() {
		var i GetClubStatsRow
		if err := rows.Scan(
			&i.CurrentClub,
			&i.TotalPlayers,
			&i.AvgAge,
			&i.AvgAppearances,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
