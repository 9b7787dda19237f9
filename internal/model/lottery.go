package model

import "time"

type Draw struct {
	DrawID           int64      `json:"draw_id"`
	IsOpen           bool       `json:"is_open"`
	IsFinalized      bool       `json:"is_finalized"`
	CreatedAt        time.Time  `json:"created_at"`
	FinalizeAt       time.Time  `json:"finalize_at"`
	HashedServerSeed string     `json:"hashed_server_seed"`
	DrawSeed         string     `json:"draw_seed"`
	ServerSeed       string     `json:"server_seed,omitempty"`
	WinningNumbers   []int      `json:"winning_numbers,omitempty"`
	MerkleRoot       string     `json:"merkle_root,omitempty"`
	TicketsSold      int64      `json:"tickets_sold"`
}

type Winner struct {
	DrawID        int64   `json:"draw_id"`
	UserID        string  `json:"user_id"`
	PayoutAddress string  `json:"payout_address"`
	TicketsWon    []int64 `json:"tickets_won"`
	FixedAmount   int64   `json:"fixed_amount"`
	Points        int64   `json:"points"`
	FinalPrize    int64   `json:"final_prize"`
	IsClaimed     bool    `json:"is_claimed"`
}

type StartDrawRequest struct{}

type StartDrawResponse struct {
	DrawID           int64  `json:"draw_id"`
	HashedServerSeed string `json:"hashed_server_seed"`
	DrawSeed         string `json:"draw_seed"`
}

type FinalizeDrawRequest struct{}

type FinalizeDrawResponse struct {
	DrawID         int64  `json:"draw_id"`
	WinningNumbers []int  `json:"winning_numbers"`
	MerkleRoot     string `json:"merkle_root"`
}

type BuyTicketRequest struct {
	ResourceType  string `json:"resource_type"`
	PickedNumbers []int  `json:"picked_numbers"`
}

type BuyTicketResponse struct {
	DrawID        int64 `json:"draw_id"`
	TicketID      int64 `json:"ticket_id"`
	PickedNumbers []int `json:"picked_numbers"`
}

type ClaimWinningsRequest struct {
	// DrawID selects the draw to claim from; zero means the most recently
	// finalized draw.
	DrawID int64 `json:"draw_id"`
}

type ClaimWinningsResponse struct {
	DrawID int64  `json:"draw_id"`
	Prize  int64  `json:"prize"`
	TxHash string `json:"tx_hash"`
}

type GetDrawRequest struct {
	// DrawID of zero means the currently open draw.
	DrawID int64 `json:"draw_id"`
}

type GetDrawResponse struct {
	Draw Draw `json:"draw"`
}

type GetWinnerRequest struct {
	DrawID int64 `json:"draw_id"`
}

type GetWinnerResponse struct {
	Winner Winner `json:"winner"`
}

type VerifyWinningNumbersRequest struct {
	ServerSeed     string `json:"server_seed"`
	DrawSeed       string `json:"draw_seed"`
	WinningNumbers []int  `json:"winning_numbers"`
}

type VerifyWinningNumbersResponse struct {
	Valid bool `json:"valid"`
}
