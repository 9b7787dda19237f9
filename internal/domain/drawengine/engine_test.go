package drawengine

import (
	"fmt"
	"math/big"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		server := NewServerSeed()
		draw := fmt.Sprintf("0xblockhash-%d/1700000000", i)

		numbers := Derive(server, draw)
		require.NoError(t, ValidateNumbers(numbers))
		require.Len(t, numbers, NumberCount)
		require.True(t, sort.IntsAreSorted(numbers[:NormalCount]))
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	server := NewServerSeed()
	draw := "0xabc/1700000000"

	require.Equal(t, Derive(server, draw), Derive(server, draw))
}

func TestVerifyRoundTrip(t *testing.T) {
	for i := 0; i < 100; i++ {
		server := NewServerSeed()
		draw := fmt.Sprintf("entropy-%d", i)

		numbers := Derive(server, draw)
		require.True(t, Verify(server, draw, numbers))

		// The normal numbers are compared as a set, so any permutation of
		// them still verifies.
		permuted := append([]int{}, numbers...)
		permuted[0], permuted[4] = permuted[4], permuted[0]
		require.True(t, Verify(server, draw, permuted))
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	server := NewServerSeed()
	draw := "entropy"
	numbers := Derive(server, draw)

	tampered := append([]int{}, numbers...)
	for i := range tampered[:NormalCount] {
		tampered[i] = tampered[i]%NormalMax + 1
	}
	require.False(t, Verify(server, draw, tampered))

	wrongSpecial := append([]int{}, numbers...)
	wrongSpecial[NormalCount] = wrongSpecial[NormalCount]%SpecialMax + 1
	require.False(t, Verify(server, draw, wrongSpecial))

	require.False(t, Verify(NewServerSeed(), draw, numbers))
	require.False(t, Verify(server, "other entropy", numbers))
	require.False(t, Verify(server, draw, numbers[:NormalCount]))
}

func TestDeriveDistribution(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical test")
	}

	// Distinct seed pairs should almost never map to the same result set.
	// With 10000 trials the birthday bound over the result space allows a
	// small number of collisions; more than a handful means the derivation
	// is not mixing its inputs.
	const trials = 10000
	seen := make(map[string]bool, trials)
	collisions := 0
	for i := 0; i < trials; i++ {
		numbers := Derive(NewServerSeed(), fmt.Sprintf("entropy-%d", i))
		key := fmt.Sprint(numbers)
		if seen[key] {
			collisions++
		}

		seen[key] = true
	}

	require.LessOrEqual(t, collisions, 3)
}

func TestValidateNumbers(t *testing.T) {
	tests := []struct {
		name    string
		numbers []int
		wantErr bool
	}{
		{name: "valid", numbers: []int{1, 2, 3, 4, 5, 6}},
		{name: "special may repeat a normal", numbers: []int{1, 2, 3, 4, 5, 5}},
		{name: "upper bounds", numbers: []int{65, 66, 67, 68, 69, 26}},
		{name: "too short", numbers: []int{1, 2, 3, 4, 5}, wantErr: true},
		{name: "too long", numbers: []int{1, 2, 3, 4, 5, 6, 7}, wantErr: true},
		{name: "duplicated normal", numbers: []int{1, 1, 3, 4, 5, 6}, wantErr: true},
		{name: "normal out of range", numbers: []int{1, 2, 3, 4, 70, 6}, wantErr: true},
		{name: "normal below range", numbers: []int{0, 2, 3, 4, 5, 6}, wantErr: true},
		{name: "special out of range", numbers: []int{1, 2, 3, 4, 5, 27}, wantErr: true},
		{name: "special below range", numbers: []int{1, 2, 3, 4, 5, 0}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNumbers(tt.numbers)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestQuickPickIsValid(t *testing.T) {
	for i := 0; i < 1000; i++ {
		require.NoError(t, ValidateNumbers(QuickPick()))
	}
}

func TestPackWinningData(t *testing.T) {
	numbers := []int{7, 21, 33, 48, 69, 13}
	timestamp := int64(1700000000)

	packed := PackWinningData(numbers, timestamp)

	// The contract reads fixed bit offsets: normals at 0,8,16,24,32, the
	// special number at 40, the timestamp at 48.
	want := new(big.Int)
	want.Or(want, big.NewInt(7))
	want.Or(want, new(big.Int).Lsh(big.NewInt(21), 8))
	want.Or(want, new(big.Int).Lsh(big.NewInt(33), 16))
	want.Or(want, new(big.Int).Lsh(big.NewInt(48), 24))
	want.Or(want, new(big.Int).Lsh(big.NewInt(69), 32))
	want.Or(want, new(big.Int).Lsh(big.NewInt(13), 40))
	want.Or(want, new(big.Int).Lsh(big.NewInt(timestamp), 48))
	require.Zero(t, packed.Cmp(want))

	gotNumbers, gotTimestamp := UnpackWinningData(packed)
	require.Equal(t, numbers, gotNumbers)
	require.Equal(t, timestamp, gotTimestamp)
}
