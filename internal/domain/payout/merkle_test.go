package payout

import (
	"fmt"
	"testing"

	"github.com/fairdraw/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func winnerSet(n int) []entity.Winner {
	winners := make([]entity.Winner, n)
	for i := range winners {
		winners[i] = entity.Winner{
			UserID:        fmt.Sprintf("user-%d", i),
			PayoutAddress: fmt.Sprintf("0x%040x", i+1),
			FinalPrize:    int64((i + 1) * 1000),
		}
	}

	return winners
}

func TestRootIsOrderIndependent(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 8, 17} {
		winners := winnerSet(n)
		root := Root(winners)

		reversed := make([]entity.Winner, n)
		for i, w := range winners {
			reversed[n-1-i] = w
		}

		require.Equal(t, root, Root(reversed), "n=%d", n)
	}
}

func TestRootChangesWithContent(t *testing.T) {
	winners := winnerSet(4)
	root := Root(winners)

	changed := winnerSet(4)
	changed[2].FinalPrize++
	require.NotEqual(t, root, Root(changed))

	require.NotEqual(t, root, Root(winners[:3]))
}

func TestEmptyWinnerSet(t *testing.T) {
	require.NotEmpty(t, Root(nil))
	require.Equal(t, Root(nil), Root([]entity.Winner{}))
}

func TestProofRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 7, 16, 33} {
		winners := winnerSet(n)
		root := Root(winners)

		for _, w := range winners {
			proof, err := Proof(winners, w.PayoutAddress, w.FinalPrize)
			require.NoError(t, err, "n=%d", n)

			leaf := Leaf(w.PayoutAddress, w.FinalPrize)
			require.True(t, VerifyProof(leaf, proof, root), "n=%d addr=%s", n, w.PayoutAddress)
		}
	}
}

func TestProofRejectsWrongAmount(t *testing.T) {
	winners := winnerSet(5)
	root := Root(winners)

	proof, err := Proof(winners, winners[0].PayoutAddress, winners[0].FinalPrize)
	require.NoError(t, err)

	forged := Leaf(winners[0].PayoutAddress, winners[0].FinalPrize+1)
	require.False(t, VerifyProof(forged, proof, root))
}

func TestProofUnknownAddress(t *testing.T) {
	winners := winnerSet(3)
	_, err := Proof(winners, "0x00000000000000000000000000000000000000ff", 1)
	require.Error(t, err)
}
