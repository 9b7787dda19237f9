package repository

import (
	"context"

	"github.com/fairdraw/backend/internal/entity"
	"github.com/fairdraw/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BalanceRepository interface {
	Get(ctx context.Context, userID, resourceType string) (*entity.Balance, error)
	Deposit(ctx context.Context, userID, resourceType string, amount int64) error
	Withdraw(ctx context.Context, userID, resourceType string, amount int64) error
}

type balanceRepository struct{}

func NewBalanceRepository() *balanceRepository {
	return &balanceRepository{}
}

func (r *balanceRepository) Get(ctx context.Context, userID, resourceType string) (*entity.Balance, error) {
	var result entity.Balance
	err := xcontext.DB(ctx).
		Take(&result, "user_id=? AND resource_type=?", userID, resourceType).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *balanceRepository) Deposit(ctx context.Context, userID, resourceType string, amount int64) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "resource_type"}},
		DoUpdates: clause.Assignments(map[string]any{
			"amount": gorm.Expr("amount+?", amount),
		}),
	}).Create(&entity.Balance{
		UserID:       userID,
		ResourceType: resourceType,
		Amount:       amount,
	}).Error
}

// Withdraw atomically debits the balance. It returns gorm.ErrRecordNotFound
// when the balance row is missing or holds less than amount, leaving the row
// untouched.
func (r *balanceRepository) Withdraw(ctx context.Context, userID, resourceType string, amount int64) error {
	tx := xcontext.DB(ctx).Model(&entity.Balance{}).
		Where("user_id=? AND resource_type=? AND amount >= ?", userID, resourceType, amount).
		Update("amount", gorm.Expr("amount-?", amount))
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
