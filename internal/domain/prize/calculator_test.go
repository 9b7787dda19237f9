package prize

import (
	"testing"

	"github.com/fairdraw/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

var testTable = Table{
	{NormalMatches: 5, SpecialMatch: true, Prize: Prize{FixedAmount: 1000000, Points: 1000}},
	{NormalMatches: 5, SpecialMatch: false, Prize: Prize{FixedAmount: 100000, Points: 500}},
	{NormalMatches: 4, SpecialMatch: true, Prize: Prize{FixedAmount: 5000, Points: 100}},
	{NormalMatches: 4, SpecialMatch: false, Prize: Prize{FixedAmount: 1000, Points: 50}},
	{NormalMatches: 3, SpecialMatch: true, Prize: Prize{FixedAmount: 100, Points: 10}},
	{NormalMatches: 0, SpecialMatch: true, Prize: Prize{FixedAmount: 4, Points: 1}},
}

var winning = []int{1, 2, 3, 4, 5, 6}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		picked []int
		want   Prize
	}{
		{
			name:   "all normals and special",
			picked: []int{1, 2, 3, 4, 5, 6},
			want:   Prize{FixedAmount: 1000000, Points: 1000},
		},
		{
			name:   "all normals, wrong special",
			picked: []int{1, 2, 3, 4, 5, 26},
			want:   Prize{FixedAmount: 100000, Points: 500},
		},
		{
			name:   "normals match as a set",
			picked: []int{5, 4, 3, 2, 1, 6},
			want:   Prize{FixedAmount: 1000000, Points: 1000},
		},
		{
			name:   "four normals with special",
			picked: []int{1, 2, 3, 4, 50, 6},
			want:   Prize{FixedAmount: 5000, Points: 100},
		},
		{
			name:   "special only",
			picked: []int{10, 20, 30, 40, 50, 6},
			want:   Prize{FixedAmount: 4, Points: 1},
		},
		{
			name:   "nothing",
			picked: []int{10, 20, 30, 40, 50, 26},
			want:   Prize{},
		},
		{
			name: "special slot does not count as a normal match",
			// 6 picked as a normal number does not match the special 6.
			picked: []int{6, 20, 30, 40, 50, 26},
			want:   Prize{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Score(tt.picked, winning, testTable))
		})
	}
}

func ticket(drawID int64, ticketID int64, userID string, picked []int) entity.Ticket {
	return entity.Ticket{
		DrawID:        drawID,
		TicketID:      ticketID,
		UserID:        userID,
		PickedNumbers: picked,
	}
}

func TestAggregate(t *testing.T) {
	tickets := []entity.Ticket{
		ticket(1, 1, "alice", []int{1, 2, 3, 4, 5, 6}),
		ticket(1, 2, "alice", []int{10, 20, 30, 40, 50, 6}),
		ticket(1, 3, "bob", []int{1, 2, 3, 4, 5, 26}),
		ticket(1, 4, "carol", []int{10, 20, 30, 40, 50, 26}),
	}

	winners := Aggregate(tickets, winning, testTable)
	require.Len(t, winners, 2)

	require.Equal(t, "alice", winners[0].UserID)
	require.Equal(t, entity.Array[int64]{1, 2}, winners[0].TicketsWon)
	require.Equal(t, int64(1000004), winners[0].FixedAmount)
	require.Equal(t, int64(1001), winners[0].Points)

	require.Equal(t, "bob", winners[1].UserID)
	require.Equal(t, entity.Array[int64]{3}, winners[1].TicketsWon)
	require.Equal(t, int64(100000), winners[1].FixedAmount)
	require.Equal(t, int64(500), winners[1].Points)
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	tickets := []entity.Ticket{
		ticket(1, 1, "bob", []int{1, 2, 3, 4, 5, 26}),
		ticket(1, 2, "alice", []int{1, 2, 3, 4, 5, 6}),
	}
	reversed := []entity.Ticket{tickets[1], tickets[0]}

	a := Aggregate(tickets, winning, testTable)
	b := Aggregate(reversed, winning, testTable)
	require.Equal(t, len(a), len(b))
	for i := range a {
		require.Equal(t, a[i].UserID, b[i].UserID)
		require.Equal(t, a[i].FixedAmount, b[i].FixedAmount)
		require.Equal(t, a[i].Points, b[i].Points)
	}
}

func TestSettleCapsAtPool(t *testing.T) {
	winners := []entity.Winner{
		{UserID: "alice", FixedAmount: 1000000, Points: 1000},
		{UserID: "bob", FixedAmount: 100000, Points: 500},
		{UserID: "carol", FixedAmount: 4, Points: 1},
	}

	const pool = 300000
	Settle(winners, pool)

	var sum int64
	for _, w := range winners {
		sum += w.FinalPrize
		require.LessOrEqual(t, w.FinalPrize, w.FixedAmount)
	}

	require.LessOrEqual(t, sum, int64(pool))

	// alice's proportional share (1000/1501 of the pool) is below her fixed
	// amount, so she gets the share; carol's share exceeds her fixed amount,
	// so she gets the fixed amount.
	aliceShare := float64(1000) / 1501 * pool
	require.Equal(t, int64(aliceShare), winners[0].FinalPrize)
	require.Equal(t, int64(4), winners[2].FinalPrize)
}

func TestSettleRichPool(t *testing.T) {
	winners := []entity.Winner{
		{UserID: "alice", FixedAmount: 500, Points: 10},
		{UserID: "bob", FixedAmount: 700, Points: 10},
	}

	// The pool is large enough that every share exceeds the fixed amount;
	// payouts collapse to the fixed amounts.
	Settle(winners, 1000000)
	require.Equal(t, int64(500), winners[0].FinalPrize)
	require.Equal(t, int64(700), winners[1].FinalPrize)
}

func TestSettleZeroPoints(t *testing.T) {
	winners := []entity.Winner{{UserID: "alice", FixedAmount: 500, Points: 0}}
	Settle(winners, 1000000)
	require.Zero(t, winners[0].FinalPrize)
}
