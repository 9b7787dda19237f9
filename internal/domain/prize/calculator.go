// Package prize maps tickets against a draw result and aggregates the
// winners' payouts under a shared prize pool.
package prize

import (
	"sort"

	"github.com/fairdraw/backend/internal/domain/drawengine"
	"github.com/fairdraw/backend/internal/entity"
)

// Prize is the pre-settlement value of one tier: a fixed currency amount and
// a number of pool points. The final payout is settled against the pool
// balance in Settle.
type Prize struct {
	FixedAmount int64
	Points      int64
}

func (p Prize) IsZero() bool {
	return p.FixedAmount == 0 && p.Points == 0
}

func (p Prize) add(other Prize) Prize {
	return Prize{
		FixedAmount: p.FixedAmount + other.FixedAmount,
		Points:      p.Points + other.Points,
	}
}

// Tier is one row of the reward table, keyed by how many normal numbers a
// ticket matched and whether its special number matched.
type Tier struct {
	NormalMatches int
	SpecialMatch  bool
	Prize         Prize
}

// Table is the versionable tier lookup. It is supplied by the operator, not
// owned by this package.
type Table []Tier

// Lookup returns the prize of the matching tier, or a zero prize if the
// combination wins nothing.
func (t Table) Lookup(normalMatches int, specialMatch bool) Prize {
	for _, tier := range t {
		if tier.NormalMatches == normalMatches && tier.SpecialMatch == specialMatch {
			return tier.Prize
		}
	}

	return Prize{}
}

// Score matches one pick against the winning numbers. The five normal
// numbers are matched as sets; the special number only against the special
// slot.
func Score(picked, winning []int, table Table) Prize {
	winningSet := make(map[int]bool, drawengine.NormalCount)
	for _, n := range winning[:drawengine.NormalCount] {
		winningSet[n] = true
	}

	normalMatches := 0
	for _, n := range picked[:drawengine.NormalCount] {
		if winningSet[n] {
			normalMatches++
		}
	}

	specialMatch := picked[drawengine.NormalCount] == winning[drawengine.NormalCount]
	return table.Lookup(normalMatches, specialMatch)
}

// Aggregate scores every ticket and groups the winning ones by owner,
// summing fixed amounts and points. Tickets that win nothing are dropped.
// The result is ordered by owner id so repeated runs produce identical
// output.
func Aggregate(tickets []entity.Ticket, winning []int, table Table) []entity.Winner {
	byOwner := make(map[string]*entity.Winner)
	for _, ticket := range tickets {
		won := Score(ticket.PickedNumbers, winning, table)
		if won.IsZero() {
			continue
		}

		winner, ok := byOwner[ticket.UserID]
		if !ok {
			winner = &entity.Winner{DrawID: ticket.DrawID, UserID: ticket.UserID}
			byOwner[ticket.UserID] = winner
		}

		winner.TicketsWon = append(winner.TicketsWon, ticket.TicketID)
		total := Prize{FixedAmount: winner.FixedAmount, Points: winner.Points}.add(won)
		winner.FixedAmount = total.FixedAmount
		winner.Points = total.Points
	}

	winners := make([]entity.Winner, 0, len(byOwner))
	for _, winner := range byOwner {
		winners = append(winners, *winner)
	}

	sort.Slice(winners, func(i, j int) bool {
		return winners[i].UserID < winners[j].UserID
	})

	return winners
}

// Settle computes each winner's FinalPrize against the actual pool balance:
// the pool is split proportionally to points and each payout is capped by the
// winner's fixed amount, so the draw can never pay out more than the pool
// holds even when many tickets hit high tiers at once.
//
// The points total deliberately spans winners only, not all tickets; losing
// tickets contribute nothing to the split.
func Settle(winners []entity.Winner, totalPool int64) {
	var totalPoints int64
	for i := range winners {
		totalPoints += winners[i].Points
	}

	if totalPoints == 0 {
		for i := range winners {
			winners[i].FinalPrize = 0
		}

		return
	}

	for i := range winners {
		pointsValue := float64(winners[i].Points) / float64(totalPoints) * float64(totalPool)
		winners[i].FinalPrize = winners[i].FixedAmount
		if v := int64(pointsValue); v < winners[i].FinalPrize {
			winners[i].FinalPrize = v
		}
	}
}
