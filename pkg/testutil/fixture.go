package testutil

import (
	"context"

	"github.com/fairdraw/backend/internal/entity"
	"github.com/fairdraw/backend/internal/repository"
)

var (
	User1 = "user1"
	User2 = "user2"
	User3 = "user3"

	User1Address = "0x1111111111111111111111111111111111111111"
	User2Address = "0x2222222222222222222222222222222222222222"
	User3Address = "0x3333333333333333333333333333333333333333"
)

// CreateFixtureDb seeds the context database with spendable balances for the
// fixture users. user3 intentionally starts broke.
func CreateFixtureDb(ctx context.Context) {
	balanceRepo := repository.NewBalanceRepository()

	for _, seed := range []entity.Balance{
		{UserID: User1, ResourceType: "gems", Amount: 100000},
		{UserID: User1, ResourceType: "coins", Amount: 100000},
		{UserID: User2, ResourceType: "gems", Amount: 100000},
		{UserID: User3, ResourceType: "gems", Amount: 0},
	} {
		err := balanceRepo.Deposit(ctx, seed.UserID, seed.ResourceType, seed.Amount)
		if err != nil {
			panic(err)
		}
	}
}

// FixtureAddresses maps the fixture users to payout addresses for the mock
// wallet resolver.
func FixtureAddresses() map[string]string {
	return map[string]string{
		User1: User1Address,
		User2: User2Address,
		User3: User3Address,
	}
}
