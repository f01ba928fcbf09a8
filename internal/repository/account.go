package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cuongnguyenngoc/web3mail/internal/common"
	"github.com/cuongnguyenngoc/web3mail/internal/model"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByWallet(ctx context.Context, wallet string) (*model.Account, error)
	Debit(ctx context.Context, tx *gorm.DB, wallet string, amount int64) error
	Credit(ctx context.Context, tx *gorm.DB, wallet string, amount int64) error
	SetTier(ctx context.Context, tx *gorm.DB, wallet, tier, features string) error
}

type accountRepoImpl struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepoImpl{
		db: db,
	}
}

func (r *accountRepoImpl) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepoImpl) FindByWallet(ctx context.Context, wallet string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("wallet_address = ?", wallet).
		First(&account).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: account %s", common.ErrNotFound, wallet)
	}
	if err != nil {
		return nil, err
	}

	return &account, nil
}

// Debit decrements the balance by amount iff the balance covers it. The
// guard lives in the WHERE clause so the check and the write are one
// statement; two concurrent debits can never both pass on one credit.
func (r *accountRepoImpl) Debit(ctx context.Context, tx *gorm.DB, wallet string, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: debit amount must be positive", common.ErrInvalidInput)
	}

	result := tx.WithContext(ctx).Model(&model.Account{}).
		Where("wallet_address = ? AND credit_balance >= ?", wallet, amount).
		Updates(map[string]interface{}{
			"credit_balance": gorm.Expr("credit_balance - ?", amount),
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.WithContext(ctx).Model(&model.Account{}).
			Where("wallet_address = ?", wallet).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: account %s", common.ErrNotFound, wallet)
		}
		return common.ErrInsufficientCredit
	}

	return nil
}

func (r *accountRepoImpl) Credit(ctx context.Context, tx *gorm.DB, wallet string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: credit amount must be non-negative", common.ErrInvalidInput)
	}

	result := tx.WithContext(ctx).Model(&model.Account{}).
		Where("wallet_address = ?", wallet).
		Updates(map[string]interface{}{
			"credit_balance": gorm.Expr("credit_balance + ?", amount),
			"updated_at":     time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: account %s", common.ErrNotFound, wallet)
	}

	return nil
}

func (r *accountRepoImpl) SetTier(ctx context.Context, tx *gorm.DB, wallet, tier, features string) error {
	result := tx.WithContext(ctx).Model(&model.Account{}).
		Where("wallet_address = ?", wallet).
		Updates(map[string]interface{}{
			"tier":       tier,
			"features":   features,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: account %s", common.ErrNotFound, wallet)
	}

	return nil
}
