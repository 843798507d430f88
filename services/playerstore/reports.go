package playerstore

import (
	"cmp"
	"context"
	"database/sql"
	"playerbase/lib/textutil"
	"slices"
)

type ClubStat struct {
	Club           string
	Players        int64
	AvgAge         sql.Null[float64]
	AvgAppearances sql.Null[float64]
}

// ClubStats aggregates players per current club, largest squads first.
func (s *Store) ClubStats(ctx context.Context) ([]ClubStat, error) {
	ctx, span := tracer.Start(ctx, "ClubStats")
	defer span.End()

	rows, err := s.qry.GetClubStats(ctx)
	if err != nil {
		return nil, err
	}
	stats := make([]ClubStat, len(rows))
	for i, row := range rows {
		stats[i] = ClubStat{
			Club:           row.CurrentClub,
			Players:        row.TotalPlayers,
			AvgAge:         row.AvgAge,
			AvgAppearances: row.AvgAppearances,
		}
	}
	return stats, nil
}

type Comparison struct {
	Name        sql.Null[string]
	Age         sql.Null[int64]
	Positions   sql.Null[string]
	Appearances sql.Null[int64]
	// teammates with an overlapping position who are younger and have
	// more appearances for the club
	Better int
}

// outperforms is true when other is younger than p and has more
// appearances, with both playing an overlapping position. Any missing
// value makes the comparison false.
func outperforms(other, p Comparison) bool {
	if !other.Positions.Valid || !p.Positions.Valid {
		return false
	}
	if !other.Age.Valid || !p.Age.Valid || other.Age.V >= p.Age.V {
		return false
	}
	if !other.Appearances.Valid || !p.Appearances.Valid || other.Appearances.V <= p.Appearances.V {
		return false
	}
	return textutil.PositionsOverlap(other.Positions.V, p.Positions.V)
}

func compareNull[T cmp.Ordered](a, b sql.Null[T]) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return -1
	case !b.Valid:
		return 1
	}
	return cmp.Compare(a.V, b.V)
}

// ComparePlayers counts, for each player of club, the "better" teammates
// as defined by outperforms. Players are ordered by positions then age,
// with missing values first.
func (s *Store) ComparePlayers(ctx context.Context, club string) ([]Comparison, error) {
	ctx, span := tracer.Start(ctx, "ComparePlayers")
	defer span.End()

	rows, err := s.qry.ListPlayersByClub(ctx, club)
	if err != nil {
		return nil, err
	}

	squad := make([]Comparison, len(rows))
	for i, row := range rows {
		squad[i] = Comparison{
			Name:        row.Name,
			Age:         row.Age,
			Positions:   row.Positions,
			Appearances: row.AppearancesCurrentClub,
		}
	}
	for i := range squad {
		for _, teammate := range squad {
			if outperforms(teammate, squad[i]) {
				squad[i].Better++
			}
		}
	}

	slices.SortStableFunc(squad, func(a, b Comparison) int {
		if c := compareNull(a.Positions, b.Positions); c != 0 {
			return c
		}
		return compareNull(a.Age, b.Age)
	})
	return squad, nil
}
