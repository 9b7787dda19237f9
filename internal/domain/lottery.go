package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"

	"github.com/fairdraw/backend/internal/client"
	"github.com/fairdraw/backend/internal/domain/drawengine"
	"github.com/fairdraw/backend/internal/domain/payout"
	"github.com/fairdraw/backend/internal/domain/prize"
	"github.com/fairdraw/backend/internal/entity"
	"github.com/fairdraw/backend/internal/model"
	"github.com/fairdraw/backend/internal/repository"
	"github.com/fairdraw/backend/pkg/errorx"
	"github.com/fairdraw/backend/pkg/xcontext"
)

type LotteryDomain interface {
	StartDraw(context.Context, *model.StartDrawRequest) (*model.StartDrawResponse, error)
	FinalizeDraw(context.Context, *model.FinalizeDrawRequest) (*model.FinalizeDrawResponse, error)
	BuyTicket(context.Context, *model.BuyTicketRequest) (*model.BuyTicketResponse, error)
	ClaimWinnings(context.Context, *model.ClaimWinningsRequest) (*model.ClaimWinningsResponse, error)
	GetDraw(context.Context, *model.GetDrawRequest) (*model.GetDrawResponse, error)
	GetWinner(context.Context, *model.GetWinnerRequest) (*model.GetWinnerResponse, error)
	VerifyWinningNumbers(context.Context, *model.VerifyWinningNumbersRequest) (*model.VerifyWinningNumbersResponse, error)
}

type lotteryDomain struct {
	drawRepo    repository.DrawRepository
	balanceRepo repository.BalanceRepository

	prizeTable prize.Table
	settlement client.SettlementCaller
	entropy    client.EntropySource
	wallet     client.WalletResolver

	// claimLocks serializes claims per (draw, user), so concurrent duplicate
	// requests cannot both reach the settlement contract.
	claimLocks *xsync.MapOf[string, *sync.Mutex]
}

func NewLotteryDomain(
	drawRepo repository.DrawRepository,
	balanceRepo repository.BalanceRepository,
	prizeTable prize.Table,
	settlement client.SettlementCaller,
	entropy client.EntropySource,
	wallet client.WalletResolver,
) *lotteryDomain {
	return &lotteryDomain{
		drawRepo:    drawRepo,
		balanceRepo: balanceRepo,
		prizeTable:  prizeTable,
		settlement:  settlement,
		entropy:     entropy,
		wallet:      wallet,
		claimLocks:  xsync.NewMapOf[*sync.Mutex](),
	}
}

func (d *lotteryDomain) StartDraw(
	ctx context.Context, req *model.StartDrawRequest,
) (*model.StartDrawResponse, error) {
	_, err := d.drawRepo.GetOpenDraw(ctx)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Still have an open draw")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get the open draw: %v", err)
		return nil, errorx.Unknown
	}

	// The draw seed is captured now, before any ticket exists, so it cannot
	// be chosen with knowledge of late-arriving tickets.
	drawSeed, err := d.entropy.DrawSeed(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot capture draw seed: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Entropy source is unavailable")
	}

	serverSeed := drawengine.NewServerSeed()
	draw := &entity.Draw{
		IsOpen:           true,
		FinalizeAt:       time.Now().Add(xcontext.Configs(ctx).Lottery.DrawDuration),
		ServerSeed:       serverSeed,
		HashedServerSeed: drawengine.SeedCommitment(serverSeed),
		DrawSeed:         drawSeed,
	}

	if err := d.drawRepo.CreateDraw(ctx, draw); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create draw: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.Logger(ctx).Infof("Draw %d opened with commitment %s", draw.ID, draw.HashedServerSeed)
	return &model.StartDrawResponse{
		DrawID:           draw.ID,
		HashedServerSeed: draw.HashedServerSeed,
		DrawSeed:         draw.DrawSeed,
	}, nil
}

func (d *lotteryDomain) BuyTicket(
	ctx context.Context, req *model.BuyTicketRequest,
) (*model.BuyTicketResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Require authentication")
	}

	price, ok := xcontext.Configs(ctx).Lottery.TicketPrice(req.ResourceType)
	if !ok {
		return nil, errorx.New(errorx.BadRequest, "Tickets cannot be bought with %s", req.ResourceType)
	}

	picked := req.PickedNumbers
	if len(picked) == 0 {
		picked = drawengine.QuickPick()
	} else if err := drawengine.ValidateNumbers(picked); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid picked numbers: %v", err)
	}

	draw, err := d.drawRepo.GetOpenDraw(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.DrawNotOpen, "No draw is currently open")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the open draw: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The guarded increment both reserves the ticket id and re-checks that
	// the draw is still open inside the transaction. If the draw was closed
	// after the read above, the purchase fails here with no side effects.
	ticketID, err := d.drawRepo.NextTicketID(ctx, draw.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.DrawNotOpen, "The draw has just closed")
		}

		xcontext.Logger(ctx).Errorf("Cannot reserve ticket id: %v", err)
		return nil, errorx.Unknown
	}

	err = d.balanceRepo.Withdraw(ctx, userID, req.ResourceType, int64(price))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Not enough balance")
		}

		xcontext.Logger(ctx).Errorf("Cannot withdraw balance: %v", err)
		return nil, errorx.Unknown
	}

	ticket := &entity.Ticket{
		Base:          entity.Base{ID: uuid.NewString()},
		DrawID:        draw.ID,
		TicketID:      ticketID,
		UserID:        userID,
		PickedNumbers: picked,
		CostResource:  req.ResourceType,
		CostAmount:    int64(price),
	}

	if err := d.drawRepo.CreateTicket(ctx, ticket); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create ticket: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.BuyTicketResponse{
		DrawID:        draw.ID,
		TicketID:      ticketID,
		PickedNumbers: picked,
	}, nil
}

func (d *lotteryDomain) FinalizeDraw(
	ctx context.Context, req *model.FinalizeDrawRequest,
) (*model.FinalizeDrawResponse, error) {
	draw, err := d.drawRepo.GetOpenDraw(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get the open draw: %v", err)
			return nil, errorx.Unknown
		}

		// No open draw: a finalized draw must not be recomputed, and above
		// all must not re-trigger an on-chain transaction. Return the stored
		// result of the last finalization instead.
		last, err := d.drawRepo.GetLastFinalizedDraw(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found any draw to finalize")
			}

			xcontext.Logger(ctx).Errorf("Cannot get the last finalized draw: %v", err)
			return nil, errorx.Unknown
		}

		return &model.FinalizeDrawResponse{
			DrawID:         last.ID,
			WinningNumbers: last.WinningNumbers,
			MerkleRoot:     last.MerkleRoot,
		}, nil
	}

	// Derivation is a pure function of the two seeds committed at open time,
	// so recomputing it on a retry always yields the same numbers.
	winningNumbers := drawengine.Derive(draw.ServerSeed, draw.DrawSeed)

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// Closing takes the draw row lock inside the transaction. Every purchase
	// admitted before this point is committed and will be scored; every one
	// after it fails its open check.
	if err := d.drawRepo.CloseDraw(ctx, draw.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.AlreadyExists, "The draw is already being finalized")
		}

		xcontext.Logger(ctx).Errorf("Cannot close draw: %v", err)
		return nil, errorx.Unknown
	}

	tickets, err := d.drawRepo.GetTicketsByDrawID(ctx, draw.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get tickets: %v", err)
		return nil, errorx.Unknown
	}

	totalPool, err := d.settlement.GetPoolBalance(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pool balance: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Settlement contract is unavailable")
	}

	winners := prize.Aggregate(tickets, winningNumbers, d.prizeTable)
	prize.Settle(winners, totalPool)

	for i := range winners {
		address, err := d.wallet.PayoutAddress(ctx, winners[i].UserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot resolve payout address of %s: %v", winners[i].UserID, err)
			return nil, errorx.New(errorx.Unavailable, "Wallet service is unavailable")
		}

		winners[i].Base = entity.Base{ID: uuid.NewString()}
		winners[i].PayoutAddress = address
		if err := d.drawRepo.CreateWinner(ctx, &winners[i]); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create winner: %v", err)
			return nil, errorx.Unknown
		}
	}

	merkleRoot := payout.Root(winners)
	if err := d.drawRepo.UpdateDrawOnFinalize(ctx, draw.ID, winningNumbers, merkleRoot); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update draw on finalize: %v", err)
		return nil, errorx.Unknown
	}

	// The on-chain call happens before the local transaction commits. If the
	// chain rejects or times out, everything above rolls back and the draw
	// stays finalizable; the committed seeds make the retry deterministic.
	packed := drawengine.PackWinningData(winningNumbers, time.Now().Unix())
	receipt, err := d.settlement.FinalizeDraw(
		ctx, draw.ID, draw.ServerSeed, draw.DrawSeed, merkleRoot, packed)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot finalize draw on chain: %v", err)
		return nil, errorx.New(errorx.SettlementFailed, "Settlement contract call failed")
	}

	if !receipt.Succeeded() {
		xcontext.Logger(ctx).Errorf("Finalize transaction %s reverted", receipt.TxHash)
		return nil, errorx.New(errorx.SettlementFailed, "Finalize transaction reverted")
	}

	xcontext.WithCommitDBTransaction(ctx)
	xcontext.Logger(ctx).Infof("Draw %d finalized: numbers=%v root=%s tx=%s",
		draw.ID, winningNumbers, merkleRoot, receipt.TxHash)

	return &model.FinalizeDrawResponse{
		DrawID:         draw.ID,
		WinningNumbers: winningNumbers,
		MerkleRoot:     merkleRoot,
	}, nil
}

func (d *lotteryDomain) ClaimWinnings(
	ctx context.Context, req *model.ClaimWinningsRequest,
) (*model.ClaimWinningsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Require authentication")
	}

	drawID := req.DrawID
	if drawID == 0 {
		last, err := d.drawRepo.GetLastFinalizedDraw(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.NotFound, "Not found any finalized draw")
			}

			xcontext.Logger(ctx).Errorf("Cannot get the last finalized draw: %v", err)
			return nil, errorx.Unknown
		}

		drawID = last.ID
	}

	// One settlement call per (draw, user) at a time. The claim is idempotent
	// from the contract's point of view, but two in-flight transactions for
	// the same claim are still two transactions.
	lock, _ := d.claimLocks.LoadOrStore(claimKey(drawID, userID), &sync.Mutex{})
	lock.Lock()
	defer lock.Unlock()

	draw, err := d.drawRepo.GetDrawByID(ctx, drawID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found draw %d", drawID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get draw: %v", err)
		return nil, errorx.Unknown
	}

	if !draw.IsFinalized {
		return nil, errorx.New(errorx.BadRequest, "The draw is not finalized yet")
	}

	winner, err := d.drawRepo.GetWinner(ctx, drawID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not a winner of draw %d", drawID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get winner: %v", err)
		return nil, errorx.Unknown
	}

	if winner.IsClaimed {
		return nil, errorx.New(errorx.AlreadyExists, "User claimed this prize before")
	}

	winners, err := d.drawRepo.GetWinnersByDrawID(ctx, drawID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get winners: %v", err)
		return nil, errorx.Unknown
	}

	proof, err := payout.Proof(winners, winner.PayoutAddress, winner.FinalPrize)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot build payout proof: %v", err)
		return nil, errorx.Unknown
	}

	receipt, err := d.settlement.ClaimWinnings(
		ctx, drawID, winner.PayoutAddress, winner.FinalPrize, proof)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot claim winnings on chain: %v", err)
		return nil, errorx.New(errorx.SettlementFailed, "Settlement contract call failed")
	}

	if !receipt.Succeeded() {
		xcontext.Logger(ctx).Errorf("Claim transaction %s reverted", receipt.TxHash)
		return nil, errorx.New(errorx.SettlementFailed, "Claim transaction reverted")
	}

	// Only a confirmed settlement may flip the claimed flag.
	if err := d.drawRepo.SetWinnerClaimed(ctx, drawID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.AlreadyExists, "User claimed this prize before")
		}

		xcontext.Logger(ctx).Errorf("Cannot set winner claimed: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ClaimWinningsResponse{
		DrawID: drawID,
		Prize:  winner.FinalPrize,
		TxHash: receipt.TxHash,
	}, nil
}

func (d *lotteryDomain) GetDraw(
	ctx context.Context, req *model.GetDrawRequest,
) (*model.GetDrawResponse, error) {
	var draw *entity.Draw
	var err error
	if req.DrawID == 0 {
		draw, err = d.drawRepo.GetOpenDraw(ctx)
	} else {
		draw, err = d.drawRepo.GetDrawByID(ctx, req.DrawID)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found draw")
		}

		xcontext.Logger(ctx).Errorf("Cannot get draw: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetDrawResponse{Draw: convertDraw(draw)}, nil
}

func (d *lotteryDomain) GetWinner(
	ctx context.Context, req *model.GetWinnerRequest,
) (*model.GetWinnerResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Require authentication")
	}

	winner, err := d.drawRepo.GetWinner(ctx, req.DrawID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not a winner of draw %d", req.DrawID)
		}

		xcontext.Logger(ctx).Errorf("Cannot get winner: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetWinnerResponse{Winner: convertWinner(winner)}, nil
}

func (d *lotteryDomain) VerifyWinningNumbers(
	ctx context.Context, req *model.VerifyWinningNumbersRequest,
) (*model.VerifyWinningNumbersResponse, error) {
	return &model.VerifyWinningNumbersResponse{
		Valid: drawengine.Verify(req.ServerSeed, req.DrawSeed, req.WinningNumbers),
	}, nil
}

func claimKey(drawID int64, userID string) string {
	return fmt.Sprintf("%d/%s", drawID, userID)
}
