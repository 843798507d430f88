package db

import (
	"database/sql"
)

type Player struct {
	PlayerID               int64
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
	AgeCategory            sql.Null[string]
	GoalsPerClubGame       sql.Null[float64]
}
