package engine

import "testing"

func TestPotentialReturn(t *testing.T) {
	cases := []struct {
		amount int
		status int
		want   int
	}{
		{100, -15, 85},
		{40, 25, 50},
		{50, -15, 43}, // round(42.5) rounds half up
		{0, 25, 0},
		{10, 0, 10},
		{33, 10, 36},  // 36.3 rounds down
		{35, 10, 39},  // 38.5 rounds half up
		{100, -100, 0},
	}
	for _, tc := range cases {
		if got := PotentialReturn(tc.amount, tc.status); got != tc.want {
			t.Fatalf("PotentialReturn(%d, %d) = %d, want %d", tc.amount, tc.status, got, tc.want)
		}
	}
}
