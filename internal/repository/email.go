package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cuongnguyenngoc/web3mail/internal/common"
	"github.com/cuongnguyenngoc/web3mail/internal/model"
	"gorm.io/gorm"
)

type EmailRepository interface {
	Create(ctx context.Context, tx *gorm.DB, record *model.EmailRecord) error
	FindByID(ctx context.Context, id string) (*model.EmailRecord, error)
	ListByWallet(ctx context.Context, wallet string, limit int) ([]*model.EmailRecord, error)
	CountByWallet(ctx context.Context, wallet string) (int64, error)
}

type emailRepoImpl struct {
	db *gorm.DB
}

func NewEmailRepository(db *gorm.DB) EmailRepository {
	return &emailRepoImpl{
		db: db,
	}
}

func (r *emailRepoImpl) Create(ctx context.Context, tx *gorm.DB, record *model.EmailRecord) error {
	return tx.WithContext(ctx).Create(record).Error
}

func (r *emailRepoImpl) FindByID(ctx context.Context, id string) (*model.EmailRecord, error) {
	var record model.EmailRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: email record %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *emailRepoImpl) ListByWallet(ctx context.Context, wallet string, limit int) ([]*model.EmailRecord, error) {
	var records []*model.EmailRecord
	err := r.db.WithContext(ctx).
		Where("wallet_address = ?", wallet).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *emailRepoImpl) CountByWallet(ctx context.Context, wallet string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.EmailRecord{}).
		Where("wallet_address = ?", wallet).
		Count(&count).Error

	return count, err
}
