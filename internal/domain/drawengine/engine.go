// Package drawengine implements the commit-reveal randomness of a draw: seed
// generation and commitment, deterministic winning-number derivation, public
// verification, and the compact on-chain encoding of a draw result.
//
// Two seeds feed every draw. The server seed is random and kept secret until
// finalization; its Keccak-256 commitment is published when the draw opens.
// The draw seed is externally observable entropy captured at the same moment.
// Neither party alone controls the outcome, and anyone who learns the server
// seed after the fact can recompute the winning numbers.
package drawengine

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/fairdraw/backend/pkg/crypto"
)

const (
	// NormalCount normal numbers in [1, NormalMax] plus one special number in
	// [1, SpecialMax] make up a pick or a draw result. The special number is
	// always the last element of the slice.
	NormalCount = 5
	NormalMax   = 69
	SpecialMax  = 26
	NumberCount = NormalCount + 1
)

// Bit offsets of the packed on-chain word. These are fixed by the deployed
// settlement contract and must not change.
const (
	normalBitOffset    = 8
	specialBitOffset   = 40
	timestampBitOffset = 48
)

// NewServerSeed returns a fresh 32-byte secret seed, hex encoded.
func NewServerSeed() string {
	return hexutil.Encode(crypto.RandomBytes(32))
}

// SeedCommitment returns the public commitment of a server seed. It is
// published when the draw opens, before any ticket is sold.
func SeedCommitment(serverSeed string) string {
	return hexutil.Encode(ethcrypto.Keccak256([]byte(serverSeed)))
}

func combinedSeed(serverSeed, drawSeed string) []byte {
	return ethcrypto.Keccak256([]byte(serverSeed), []byte(drawSeed))
}

func numberAt(combined []byte, counter uint64, modulo int64) int {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], counter)
	digest := ethcrypto.Keccak256(combined, buf[:])

	mod := new(big.Int).Mod(new(big.Int).SetBytes(digest), big.NewInt(modulo))
	return int(mod.Int64()) + 1
}

// Derive computes the winning numbers of a draw from its two committed seeds.
// The result has the five normal numbers sorted ascending followed by the
// special number. Counters 0..4 produce the normal numbers and counter 5 the
// special one; a counter that yields a duplicate normal number is retried
// with the next unused counter value, starting at 6 so the special slot stays
// untouched.
func Derive(serverSeed, drawSeed string) []int {
	combined := combinedSeed(serverSeed, drawSeed)

	normals := make([]int, 0, NormalCount)
	seen := make(map[int]bool, NormalCount)
	retry := uint64(NumberCount)
	for counter := uint64(0); counter < NormalCount; counter++ {
		n := numberAt(combined, counter, NormalMax)
		for seen[n] {
			n = numberAt(combined, retry, NormalMax)
			retry++
		}

		seen[n] = true
		normals = append(normals, n)
	}

	sort.Ints(normals)
	return append(normals, numberAt(combined, NormalCount, SpecialMax))
}

// Verify recomputes the winning numbers from the revealed seeds and compares
// them with the claimed result. The five normal numbers are compared as a
// set. This is the public audit function: together with the published seed
// commitment it proves the draw was not steered after tickets were sold.
func Verify(serverSeed, drawSeed string, claimed []int) bool {
	if err := ValidateNumbers(claimed); err != nil {
		return false
	}

	derived := Derive(serverSeed, drawSeed)
	if derived[NormalCount] != claimed[NormalCount] {
		return false
	}

	derivedSet := make(map[int]bool, NormalCount)
	for _, n := range derived[:NormalCount] {
		derivedSet[n] = true
	}

	for _, n := range claimed[:NormalCount] {
		if !derivedSet[n] {
			return false
		}
	}

	return true
}

// ValidateNumbers checks the shape of a pick or a draw result: exactly six
// values, five pairwise-distinct normal numbers in range, and a special
// number in range. The special number may repeat a normal number.
func ValidateNumbers(numbers []int) error {
	if len(numbers) != NumberCount {
		return fmt.Errorf("expected %d numbers, got %d", NumberCount, len(numbers))
	}

	seen := make(map[int]bool, NormalCount)
	for _, n := range numbers[:NormalCount] {
		if n < 1 || n > NormalMax {
			return fmt.Errorf("normal number %d out of range [1, %d]", n, NormalMax)
		}

		if seen[n] {
			return fmt.Errorf("duplicated normal number %d", n)
		}

		seen[n] = true
	}

	if special := numbers[NormalCount]; special < 1 || special > SpecialMax {
		return fmt.Errorf("special number %d out of range [1, %d]", special, SpecialMax)
	}

	return nil
}

// QuickPick generates a random valid pick for users who do not choose their
// own numbers. It draws from the OS entropy source, never from the draw
// seeds, so auto-picked tickets reveal nothing about the fairness proof.
func QuickPick() []int {
	normals := crypto.SampleUnique(NormalCount, 1, NormalMax)
	sort.Ints(normals)
	return append(normals, crypto.RandRange(1, SpecialMax+1))
}

// PackWinningData packs a draw result and its finalization timestamp into a
// single integer for cheap on-chain storage. The i-th normal number sits at
// bit 8*i, the special number at bit 40 and the timestamp at bit 48.
func PackWinningData(winningNumbers []int, timestamp int64) *big.Int {
	packed := new(big.Int)
	for i, n := range winningNumbers[:NormalCount] {
		packed.Or(packed, new(big.Int).Lsh(big.NewInt(int64(n)), uint(i*normalBitOffset)))
	}

	packed.Or(packed, new(big.Int).Lsh(big.NewInt(int64(winningNumbers[NormalCount])), specialBitOffset))
	packed.Or(packed, new(big.Int).Lsh(big.NewInt(timestamp), timestampBitOffset))
	return packed
}

// UnpackWinningData is the inverse of PackWinningData.
func UnpackWinningData(packed *big.Int) ([]int, int64) {
	numbers := make([]int, NumberCount)
	for i := 0; i < NormalCount; i++ {
		b := new(big.Int).Rsh(packed, uint(i*normalBitOffset))
		numbers[i] = int(b.Int64() & 0xff)
	}

	special := new(big.Int).Rsh(packed, specialBitOffset)
	numbers[NormalCount] = int(special.Int64() & 0xff)

	timestamp := new(big.Int).Rsh(packed, timestampBitOffset)
	return numbers, timestamp.Int64()
}
