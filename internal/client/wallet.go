package client

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/fairdraw/backend/pkg/xcontext"
)

// WalletResolver maps a user to the payout address registered with the
// external wallet service. Custody and key management live entirely on that
// side.
type WalletResolver interface {
	PayoutAddress(ctx context.Context, userID string) (string, error)
}

type walletResolver struct {
	client *rpc.Client
}

func NewWalletResolver(client *rpc.Client) *walletResolver {
	return &walletResolver{client: client}
}

func (c *walletResolver) PayoutAddress(ctx context.Context, userID string) (string, error) {
	var address string
	err := c.client.CallContext(ctx, &address, c.fname(ctx, "getPayoutAddress"), userID)
	if err != nil {
		return "", err
	}

	return address, nil
}

func (c *walletResolver) fname(ctx context.Context, funcName string) string {
	return fmt.Sprintf("%s_%s", xcontext.Configs(ctx).Chain.RPCName, funcName)
}
