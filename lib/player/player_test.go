package player

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAgeCategoryFor(t *testing.T) {
	testCases := []struct {
		age      sql.Null[int64]
		expected sql.Null[AgeCategory]
	}{
		{age: None[int64](), expected: None[AgeCategory]()},
		{age: Some[int64](0), expected: Some(Young)},
		{age: Some[int64](23), expected: Some(Young)},
		{age: Some[int64](24), expected: Some(MidAge)},
		{age: Some[int64](32), expected: Some(MidAge)},
		{age: Some[int64](33), expected: Some(Old)},
		{age: Some[int64](41), expected: Some(Old)},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, AgeCategoryFor(test.age), "age %v", test.age)
	}
}

func TestGoalsPerGame(t *testing.T) {
	require.False(t, GoalsPerGame(Some[int64](3), None[int64]()).Valid)
	require.False(t, GoalsPerGame(Some[int64](3), Some[int64](0)).Valid)
	require.False(t, GoalsPerGame(None[int64](), Some[int64](10)).Valid)

	rate := GoalsPerGame(Some[int64](42), Some[int64](150))
	require.True(t, rate.Valid)
	require.InDelta(t, 0.28, rate.V, 1e-9)

	rate = GoalsPerGame(Some[int64](0), Some[int64](7))
	require.True(t, rate.Valid)
	require.Equal(t, 0.0, rate.V)
}

func TestRecordDerive(t *testing.T) {
	r := Record{
		URL:                    "https://en.wikipedia.org/wiki/Someone",
		Age:                    Some[int64](38),
		AppearancesCurrentClub: Some[int64](150),
		GoalsCurrentClub:       Some[int64](42),
	}
	r.Derive()
	require.Equal(t, Some(Old), r.AgeCategory)
	require.InDelta(t, 0.28, r.GoalsPerClubGame.V, 1e-9)
}

func TestSomeString(t *testing.T) {
	require.False(t, SomeString("").Valid)
	require.Equal(t, Some("Barcelona"), SomeString("Barcelona"))
}
