package repository_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fairdraw/backend/internal/entity"
	"github.com/fairdraw/backend/internal/repository"
	"github.com/fairdraw/backend/pkg/testutil"
)

func TestNextTicketID(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewDrawRepository()

	draw := &entity.Draw{IsOpen: true, FinalizeAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.CreateDraw(ctx, draw))

	for want := int64(1); want <= 5; want++ {
		got, err := repo.NextTicketID(ctx, draw.ID)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	// A closed draw hands out no more ids.
	require.NoError(t, repo.CloseDraw(ctx, draw.ID))
	_, err := repo.NextTicketID(ctx, draw.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCloseDrawOnlyOnce(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewDrawRepository()

	draw := &entity.Draw{IsOpen: true, FinalizeAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.CreateDraw(ctx, draw))

	require.NoError(t, repo.CloseDraw(ctx, draw.ID))
	require.ErrorIs(t, repo.CloseDraw(ctx, draw.ID), gorm.ErrRecordNotFound)
}

func TestSetWinnerClaimedOnlyOnce(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewDrawRepository()

	draw := &entity.Draw{FinalizeAt: time.Now(), IsFinalized: true}
	require.NoError(t, repo.CreateDraw(ctx, draw))

	winner := &entity.Winner{
		Base:          entity.Base{ID: uuid.NewString()},
		DrawID:        draw.ID,
		UserID:        testutil.User1,
		PayoutAddress: testutil.User1Address,
		FinalPrize:    400,
	}
	require.NoError(t, repo.CreateWinner(ctx, winner))

	require.NoError(t, repo.SetWinnerClaimed(ctx, draw.ID, testutil.User1))

	stored, err := repo.GetWinner(ctx, draw.ID, testutil.User1)
	require.NoError(t, err)
	require.True(t, stored.IsClaimed)

	require.ErrorIs(t, repo.SetWinnerClaimed(ctx, draw.ID, testutil.User1), gorm.ErrRecordNotFound)
}

func TestBalanceWithdraw(t *testing.T) {
	ctx := testutil.MockContext()
	repo := repository.NewBalanceRepository()

	require.NoError(t, repo.Deposit(ctx, testutil.User1, "gems", 100))

	require.NoError(t, repo.Withdraw(ctx, testutil.User1, "gems", 60))
	require.ErrorIs(t, repo.Withdraw(ctx, testutil.User1, "gems", 60), gorm.ErrRecordNotFound)

	balance, err := repo.Get(ctx, testutil.User1, "gems")
	require.NoError(t, err)
	require.Equal(t, int64(40), balance.Amount)

	// Depositing onto an existing row increments it.
	require.NoError(t, repo.Deposit(ctx, testutil.User1, "gems", 20))
	balance, err = repo.Get(ctx, testutil.User1, "gems")
	require.NoError(t, err)
	require.Equal(t, int64(60), balance.Amount)
}
