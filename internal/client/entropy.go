package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/ethclient"
)

// EntropySource produces the externally-observable half of a draw's seed
// pair. The value is captured when the draw opens, so the server cannot pick
// it after seeing tickets.
type EntropySource interface {
	DrawSeed(ctx context.Context) (string, error)
}

// blockEntropy derives the draw seed from the latest block of a public
// chain: its hash concatenated with its timestamp. Both are observable by
// anyone and controllable by no single party.
type blockEntropy struct {
	rpcURL string

	once    sync.Once
	client  *ethclient.Client
	dialErr error
}

func NewBlockEntropy(rpcURL string) *blockEntropy {
	return &blockEntropy{rpcURL: rpcURL}
}

func (e *blockEntropy) DrawSeed(ctx context.Context) (string, error) {
	e.once.Do(func() {
		e.client, e.dialErr = ethclient.Dial(e.rpcURL)
	})
	if e.dialErr != nil {
		return "", e.dialErr
	}

	header, err := e.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%d", header.Hash().Hex(), header.Time), nil
}
