package repository

import (
	"context"

	"github.com/fairdraw/backend/internal/entity"
	"github.com/fairdraw/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type DrawRepository interface {
	// Draw
	CreateDraw(ctx context.Context, draw *entity.Draw) error
	GetDrawByID(ctx context.Context, drawID int64) (*entity.Draw, error)
	GetOpenDraw(ctx context.Context) (*entity.Draw, error)
	GetLastFinalizedDraw(ctx context.Context) (*entity.Draw, error)
	CloseDraw(ctx context.Context, drawID int64) error
	UpdateDrawOnFinalize(ctx context.Context, drawID int64, winningNumbers []int, merkleRoot string) error

	// Ticket
	NextTicketID(ctx context.Context, drawID int64) (int64, error)
	CreateTicket(ctx context.Context, ticket *entity.Ticket) error
	GetTicketsByDrawID(ctx context.Context, drawID int64) ([]entity.Ticket, error)

	// Winner
	CreateWinner(ctx context.Context, winner *entity.Winner) error
	GetWinner(ctx context.Context, drawID int64, userID string) (*entity.Winner, error)
	GetWinnersByDrawID(ctx context.Context, drawID int64) ([]entity.Winner, error)
	SetWinnerClaimed(ctx context.Context, drawID int64, userID string) error
}

type drawRepository struct{}

func NewDrawRepository() *drawRepository {
	return &drawRepository{}
}

func (r *drawRepository) CreateDraw(ctx context.Context, draw *entity.Draw) error {
	return xcontext.DB(ctx).Create(draw).Error
}

func (r *drawRepository) GetDrawByID(ctx context.Context, drawID int64) (*entity.Draw, error) {
	var result entity.Draw
	if err := xcontext.DB(ctx).Take(&result, "id=?", drawID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *drawRepository) GetOpenDraw(ctx context.Context) (*entity.Draw, error) {
	var result entity.Draw
	if err := xcontext.DB(ctx).Take(&result, "is_open=?", true).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *drawRepository) GetLastFinalizedDraw(ctx context.Context) (*entity.Draw, error) {
	var result entity.Draw
	err := xcontext.DB(ctx).Where("is_finalized=?", true).
		Order("id DESC").Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// CloseDraw atomically flips the draw from open to closed. It returns
// gorm.ErrRecordNotFound if the draw is not open, so the caller can
// distinguish a lost race from a missing draw. Inside a transaction this
// update also takes the row lock that NextTicketID contends on, which is what
// serializes the close against in-flight purchases.
func (r *drawRepository) CloseDraw(ctx context.Context, drawID int64) error {
	tx := xcontext.DB(ctx).Model(&entity.Draw{}).
		Where("id=? AND is_open=?", drawID, true).
		Update("is_open", false)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *drawRepository) UpdateDrawOnFinalize(
	ctx context.Context, drawID int64, winningNumbers []int, merkleRoot string,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Draw{}).
		Where("id=? AND is_finalized=?", drawID, false).
		Updates(map[string]any{
			"is_finalized":    true,
			"winning_numbers": entity.Array[int](winningNumbers),
			"merkle_root":     merkleRoot,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// NextTicketID increments the per-draw ticket counter and returns the new
// value. The guarded update only succeeds while the draw is open; under
// concurrent purchases the database row lock serializes the increments, so
// ticket ids come out dense and strictly increasing.
func (r *drawRepository) NextTicketID(ctx context.Context, drawID int64) (int64, error) {
	db := xcontext.DB(ctx)
	tx := db.Model(&entity.Draw{}).
		Where("id=? AND is_open=?", drawID, true).
		Update("ticket_serial", gorm.Expr("ticket_serial+?", 1))
	if tx.Error != nil {
		return 0, tx.Error
	}

	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}

	var draw entity.Draw
	if err := db.Take(&draw, "id=?", drawID).Error; err != nil {
		return 0, err
	}

	return draw.TicketSerial, nil
}

func (r *drawRepository) CreateTicket(ctx context.Context, ticket *entity.Ticket) error {
	return xcontext.DB(ctx).Create(ticket).Error
}

func (r *drawRepository) GetTicketsByDrawID(ctx context.Context, drawID int64) ([]entity.Ticket, error) {
	var result []entity.Ticket
	err := xcontext.DB(ctx).Order("ticket_id ASC").
		Find(&result, "draw_id=?", drawID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *drawRepository) CreateWinner(ctx context.Context, winner *entity.Winner) error {
	return xcontext.DB(ctx).Create(winner).Error
}

func (r *drawRepository) GetWinner(ctx context.Context, drawID int64, userID string) (*entity.Winner, error) {
	var result entity.Winner
	err := xcontext.DB(ctx).Take(&result, "draw_id=? AND user_id=?", drawID, userID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *drawRepository) GetWinnersByDrawID(ctx context.Context, drawID int64) ([]entity.Winner, error) {
	var result []entity.Winner
	if err := xcontext.DB(ctx).Find(&result, "draw_id=?", drawID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// SetWinnerClaimed flips is_claimed from false to true exactly once. A second
// call returns gorm.ErrRecordNotFound.
func (r *drawRepository) SetWinnerClaimed(ctx context.Context, drawID int64, userID string) error {
	tx := xcontext.DB(ctx).Model(&entity.Winner{}).
		Where("draw_id=? AND user_id=? AND is_claimed=?", drawID, userID, false).
		Update("is_claimed", true)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
