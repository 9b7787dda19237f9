package entity

import "time"

// Draw is one instance of the recurring lottery. At most one draw has
// IsOpen=true at a time. WinningNumbers and MerkleRoot are written exactly
// once, when the draw is finalized.
type Draw struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time
	UpdatedAt time.Time

	IsOpen      bool `gorm:"index"`
	IsFinalized bool
	FinalizeAt  time.Time

	// ServerSeed is the secret half of the commit-reveal pair. Its hash is
	// published as HashedServerSeed when the draw opens; the seed itself must
	// not leave the server before finalization.
	ServerSeed       string
	HashedServerSeed string

	// DrawSeed is externally sourced entropy captured when the draw opens.
	DrawSeed string

	WinningNumbers Array[int]
	MerkleRoot     string

	// TicketSerial is the per-draw ticket counter. It is only ever moved by
	// an atomic guarded increment in the repository.
	TicketSerial int64
}

// Ticket is an immutable record of one purchase. TicketID starts at 1 and
// strictly increases within a draw with no gaps.
type Ticket struct {
	Base

	DrawID int64 `gorm:"uniqueIndex:idx_draw_ticket"`
	Draw   Draw  `gorm:"foreignKey:DrawID"`

	TicketID int64  `gorm:"uniqueIndex:idx_draw_ticket"`
	UserID   string `gorm:"index"`

	PickedNumbers Array[int]

	CostResource string
	CostAmount   int64
}

// Winner aggregates all winning tickets of one user in one draw. IsClaimed
// moves from false to true exactly once, after on-chain settlement confirms.
type Winner struct {
	Base

	DrawID int64 `gorm:"uniqueIndex:idx_draw_winner"`
	Draw   Draw  `gorm:"foreignKey:DrawID"`

	UserID        string `gorm:"uniqueIndex:idx_draw_winner"`
	PayoutAddress string

	TicketsWon Array[int64]

	FixedAmount int64
	Points      int64
	FinalPrize  int64

	IsClaimed bool
}
