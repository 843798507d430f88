package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizePositions(t *testing.T) {
	require.Equal(t, "centre-back,right-back", NormalizePositions("Centre-back / Right-back"))
	require.Equal(t, "forward", NormalizePositions(" Forward\n"))
	require.Equal(t, "attackingmidfielder,winger", NormalizePositions("Attacking midfielder, Winger"))
}

func TestPositionsOverlap(t *testing.T) {
	testCases := []struct {
		a, b     string
		expected bool
	}{
		{a: "Forward", b: "Forward", expected: true},
		{a: "Forward", b: "Centre-forward", expected: true},
		{a: "Winger / Forward", b: "Forward", expected: true},
		{a: "Winger, Forward", b: "Forward / Winger", expected: false},
		{a: "Centre-back", b: "Right-back", expected: false},
		{a: "Goalkeeper", b: "Midfielder", expected: false},
		{a: "Forward, Winger", b: "Winger", expected: true},
		{a: "Goalkeeper", b: "Defender", expected: false},
		{a: "Defensive midfielder", b: "Midfielder", expected: true},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, PositionsOverlap(test.a, test.b), "%q vs %q", test.a, test.b)
		require.Equal(t, test.expected, PositionsOverlap(test.b, test.a), "%q vs %q", test.b, test.a)
	}
}
