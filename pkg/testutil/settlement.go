package testutil

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/fairdraw/backend/internal/client"
)

// MockSettlementCaller fakes the settlement-contract gateway. Every call is
// recorded; behavior is overridden per test through the Func fields, with a
// successful receipt as the default.
type MockSettlementCaller struct {
	FinalizeDrawFunc   func(ctx context.Context, drawID int64, serverSeed, drawSeed, merkleRoot string, packed *big.Int) (*client.TxReceipt, error)
	ClaimWinningsFunc  func(ctx context.Context, drawID int64, payoutAddress string, amount int64, proof [][]byte) (*client.TxReceipt, error)
	GetPoolBalanceFunc func(ctx context.Context) (int64, error)

	mutex         sync.Mutex
	FinalizeCalls int
	ClaimCalls    int
}

func (m *MockSettlementCaller) FinalizeDraw(
	ctx context.Context, drawID int64, serverSeed, drawSeed, merkleRoot string, packed *big.Int,
) (*client.TxReceipt, error) {
	m.mutex.Lock()
	m.FinalizeCalls++
	m.mutex.Unlock()

	if m.FinalizeDrawFunc != nil {
		return m.FinalizeDrawFunc(ctx, drawID, serverSeed, drawSeed, merkleRoot, packed)
	}

	return &client.TxReceipt{TxHash: fmt.Sprintf("0xfinalize-%d", drawID), Status: 1}, nil
}

func (m *MockSettlementCaller) ClaimWinnings(
	ctx context.Context, drawID int64, payoutAddress string, amount int64, proof [][]byte,
) (*client.TxReceipt, error) {
	m.mutex.Lock()
	m.ClaimCalls++
	m.mutex.Unlock()

	if m.ClaimWinningsFunc != nil {
		return m.ClaimWinningsFunc(ctx, drawID, payoutAddress, amount, proof)
	}

	return &client.TxReceipt{TxHash: fmt.Sprintf("0xclaim-%d-%s", drawID, payoutAddress), Status: 1}, nil
}

func (m *MockSettlementCaller) GetPoolBalance(ctx context.Context) (int64, error) {
	if m.GetPoolBalanceFunc != nil {
		return m.GetPoolBalanceFunc(ctx)
	}

	return 1000000, nil
}

func (m *MockSettlementCaller) Close() {}

// MockEntropySource returns a fixed draw seed.
type MockEntropySource struct {
	Seed string
}

func (m *MockEntropySource) DrawSeed(ctx context.Context) (string, error) {
	if m.Seed == "" {
		return "0xmockblockhash/1700000000", nil
	}

	return m.Seed, nil
}

// MockWalletResolver resolves payout addresses from a fixed map.
type MockWalletResolver struct {
	Addresses map[string]string
}

func (m *MockWalletResolver) PayoutAddress(ctx context.Context, userID string) (string, error) {
	if address, ok := m.Addresses[userID]; ok {
		return address, nil
	}

	return "", fmt.Errorf("no payout address for user %s", userID)
}
