package client

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/fairdraw/backend/pkg/xcontext"
)

// TxReceipt is the settlement gateway's view of a confirmed transaction.
type TxReceipt struct {
	TxHash string `json:"tx_hash"`
	Status uint64 `json:"status"`
}

func (r *TxReceipt) Succeeded() bool {
	return r != nil && r.Status == 1
}

// SettlementCaller talks to the settlement-contract gateway. The gateway is
// chain agnostic; this layer only sees opaque receipts. Calls block until the
// transaction is confirmed or the configured timeout passes.
type SettlementCaller interface {
	FinalizeDraw(ctx context.Context, drawID int64, serverSeed, drawSeed, merkleRoot string, packedWinningData *big.Int) (*TxReceipt, error)
	ClaimWinnings(ctx context.Context, drawID int64, payoutAddress string, amount int64, proof [][]byte) (*TxReceipt, error)
	GetPoolBalance(ctx context.Context) (int64, error)
	Close()
}

type settlementCaller struct {
	client *rpc.Client
}

func NewSettlementCaller(client *rpc.Client) *settlementCaller {
	return &settlementCaller{client: client}
}

func (c *settlementCaller) FinalizeDraw(
	ctx context.Context, drawID int64, serverSeed, drawSeed, merkleRoot string, packedWinningData *big.Int,
) (*TxReceipt, error) {
	callCtx, cancel := context.WithTimeout(ctx, xcontext.Configs(ctx).Chain.ConfirmTimeout())
	defer cancel()

	var receipt TxReceipt
	err := c.client.CallContext(callCtx, &receipt, c.fname(ctx, "finalizeDraw"),
		drawID, serverSeed, drawSeed, merkleRoot, hexutil.EncodeBig(packedWinningData))
	if err != nil {
		return nil, err
	}

	return &receipt, nil
}

func (c *settlementCaller) ClaimWinnings(
	ctx context.Context, drawID int64, payoutAddress string, amount int64, proof [][]byte,
) (*TxReceipt, error) {
	callCtx, cancel := context.WithTimeout(ctx, xcontext.Configs(ctx).Chain.ConfirmTimeout())
	defer cancel()

	encodedProof := make([]string, len(proof))
	for i, node := range proof {
		encodedProof[i] = hexutil.Encode(node)
	}

	var receipt TxReceipt
	err := c.client.CallContext(callCtx, &receipt, c.fname(ctx, "claimWinnings"),
		drawID, payoutAddress, amount, encodedProof)
	if err != nil {
		return nil, err
	}

	return &receipt, nil
}

func (c *settlementCaller) GetPoolBalance(ctx context.Context) (int64, error) {
	var balance int64
	err := c.client.CallContext(ctx, &balance, c.fname(ctx, "getPoolBalance"))
	if err != nil {
		return 0, err
	}

	return balance, nil
}

func (c *settlementCaller) Close() {
	c.client.Close()
}

func (c *settlementCaller) fname(ctx context.Context, funcName string) string {
	return fmt.Sprintf("%s_%s", xcontext.Configs(ctx).Chain.RPCName, funcName)
}
