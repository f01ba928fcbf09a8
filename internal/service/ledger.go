package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cuongnguyenngoc/web3mail/internal/common"
	"github.com/cuongnguyenngoc/web3mail/internal/model"
	"github.com/cuongnguyenngoc/web3mail/internal/repository"
	"gorm.io/gorm"
)

// CreditLedger owns per-account entitlement state: the credit balance and
// the subscription tier. Balance mutations are single conditional updates in
// the database, so concurrent callers never act on a stale read.
type CreditLedger interface {
	AuthorizeSend(ctx context.Context, wallet string) (bool, error)
	Debit(ctx context.Context, tx *gorm.DB, wallet string, amount int64) error
	Credit(ctx context.Context, tx *gorm.DB, wallet string, amount int64) error
	SetTier(ctx context.Context, tx *gorm.DB, wallet, tier string) error
	GetAccount(ctx context.Context, wallet string) (*model.Account, error)
}

type creditLedgerImpl struct {
	db          *gorm.DB
	accountRepo repository.AccountRepository
}

func NewCreditLedger(db *gorm.DB, accountRepo repository.AccountRepository) CreditLedger {
	return &creditLedgerImpl{
		db:          db,
		accountRepo: accountRepo,
	}
}

func (l *creditLedgerImpl) AuthorizeSend(ctx context.Context, wallet string) (bool, error) {
	account, err := l.accountRepo.FindByWallet(ctx, wallet)
	if err != nil {
		return false, err
	}

	return account.CreditBalance >= 1, nil
}

func (l *creditLedgerImpl) Debit(ctx context.Context, tx *gorm.DB, wallet string, amount int64) error {
	if tx == nil {
		tx = l.db
	}
	return l.accountRepo.Debit(ctx, tx, wallet, amount)
}

func (l *creditLedgerImpl) Credit(ctx context.Context, tx *gorm.DB, wallet string, amount int64) error {
	if tx == nil {
		tx = l.db
	}
	return l.accountRepo.Credit(ctx, tx, wallet, amount)
}

// SetTier updates the subscription tier and recomputes the account's feature
// set from the tier catalog. It does not grant credits; subscription payments
// combine SetTier with Credit.
func (l *creditLedgerImpl) SetTier(ctx context.Context, tx *gorm.DB, wallet, tier string) error {
	tierDef, ok := model.SubscriptionTiers[tier]
	if !ok {
		return fmt.Errorf("%w: unknown tier %q", common.ErrConfiguration, tier)
	}

	if tx == nil {
		tx = l.db
	}
	return l.accountRepo.SetTier(ctx, tx, wallet, tier, strings.Join(tierDef.Features, ","))
}

func (l *creditLedgerImpl) GetAccount(ctx context.Context, wallet string) (*model.Account, error) {
	return l.accountRepo.FindByWallet(ctx, wallet)
}
