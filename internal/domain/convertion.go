package domain

import (
	"github.com/fairdraw/backend/internal/entity"
	"github.com/fairdraw/backend/internal/model"
)

func convertDraw(draw *entity.Draw) model.Draw {
	result := model.Draw{
		DrawID:           draw.ID,
		IsOpen:           draw.IsOpen,
		IsFinalized:      draw.IsFinalized,
		CreatedAt:        draw.CreatedAt,
		FinalizeAt:       draw.FinalizeAt,
		HashedServerSeed: draw.HashedServerSeed,
		DrawSeed:         draw.DrawSeed,
		TicketsSold:      draw.TicketSerial,
	}

	// The server seed stays secret until the draw is finalized; afterwards
	// it is public so anyone can verify the outcome.
	if draw.IsFinalized {
		result.ServerSeed = draw.ServerSeed
		result.WinningNumbers = draw.WinningNumbers
		result.MerkleRoot = draw.MerkleRoot
	}

	return result
}

func convertWinner(winner *entity.Winner) model.Winner {
	return model.Winner{
		DrawID:        winner.DrawID,
		UserID:        winner.UserID,
		PayoutAddress: winner.PayoutAddress,
		TicketsWon:    winner.TicketsWon,
		FixedAmount:   winner.FixedAmount,
		Points:        winner.Points,
		FinalPrize:    winner.FinalPrize,
		IsClaimed:     winner.IsClaimed,
	}
}
