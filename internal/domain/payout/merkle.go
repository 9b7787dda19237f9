// Package payout anchors a draw's winner set in a Merkle root so the
// settlement contract can verify individual payouts without storing the set.
//
// Leaves are hashed from (payout address, final prize) and sorted before the
// tree is built, so the root only depends on the winner set, not on the order
// winners were computed in. Interior nodes hash their two children sorted by
// byte value, which lets a proof be verified without tracking left/right
// positions.
package payout

import (
	"bytes"
	"fmt"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/fairdraw/backend/internal/entity"
)

// Leaf hashes one winner's payout entry. The encoding matches the contract's
// keccak256(abi.encodePacked(address, uint256 amount)).
func Leaf(payoutAddress string, finalPrize int64) []byte {
	return ethcrypto.Keccak256(
		common.HexToAddress(payoutAddress).Bytes(),
		common.LeftPadBytes(big.NewInt(finalPrize).Bytes(), 32),
	)
}

func hashPair(a, b []byte) []byte {
	if bytes.Compare(a, b) > 0 {
		a, b = b, a
	}

	return ethcrypto.Keccak256(a, b)
}

func sortedLeaves(winners []entity.Winner) [][]byte {
	leaves := make([][]byte, len(winners))
	for i, w := range winners {
		leaves[i] = Leaf(w.PayoutAddress, w.FinalPrize)
	}

	sort.Slice(leaves, func(i, j int) bool {
		return bytes.Compare(leaves[i], leaves[j]) < 0
	})

	return leaves
}

// Root builds the tree over the winner set and returns its root as a hex
// digest. The empty winner set yields the hash of no input, so even a draw
// without winners anchors a well-defined root.
func Root(winners []entity.Winner) string {
	leaves := sortedLeaves(winners)
	if len(leaves) == 0 {
		return hexutil.Encode(ethcrypto.Keccak256())
	}

	for len(leaves) > 1 {
		next := make([][]byte, 0, (len(leaves)+1)/2)
		for i := 0; i+1 < len(leaves); i += 2 {
			next = append(next, hashPair(leaves[i], leaves[i+1]))
		}

		// An unpaired node is carried up unchanged.
		if len(leaves)%2 == 1 {
			next = append(next, leaves[len(leaves)-1])
		}

		leaves = next
	}

	return hexutil.Encode(leaves[0])
}

// Proof returns the sibling path of one winner's leaf. It is computed on
// demand at claim time, never stored.
func Proof(winners []entity.Winner, payoutAddress string, finalPrize int64) ([][]byte, error) {
	leaves := sortedLeaves(winners)
	target := Leaf(payoutAddress, finalPrize)

	index := -1
	for i, leaf := range leaves {
		if bytes.Equal(leaf, target) {
			index = i
			break
		}
	}

	if index < 0 {
		return nil, fmt.Errorf("no payout leaf for address %s", payoutAddress)
	}

	var proof [][]byte
	for len(leaves) > 1 {
		next := make([][]byte, 0, (len(leaves)+1)/2)
		for i := 0; i+1 < len(leaves); i += 2 {
			if i == index || i+1 == index {
				sibling := leaves[i]
				if i == index {
					sibling = leaves[i+1]
				}

				proof = append(proof, sibling)
				index = len(next)
			}

			next = append(next, hashPair(leaves[i], leaves[i+1]))
		}

		if len(leaves)%2 == 1 {
			if index == len(leaves)-1 {
				index = len(next)
			}

			next = append(next, leaves[len(leaves)-1])
		}

		leaves = next
	}

	return proof, nil
}

// VerifyProof folds a leaf up the proof path and compares the result with
// the root. Thanks to sorted-pair hashing the path needs no position bits.
func VerifyProof(leaf []byte, proof [][]byte, root string) bool {
	node := leaf
	for _, sibling := range proof {
		node = hashPair(node, sibling)
	}

	return hexutil.Encode(node) == root
}
