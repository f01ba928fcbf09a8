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

type PaymentSessionRepository interface {
	Create(ctx context.Context, session *model.PaymentSession) error
	FindBySessionID(ctx context.Context, sessionID string) (*model.PaymentSession, error)
	MarkCompleted(ctx context.Context, tx *gorm.DB, sessionID, paymentIntentID string) (bool, error)
	MarkFailed(ctx context.Context, tx *gorm.DB, sessionID string) (bool, error)
}

type paymentSessionRepoImpl struct {
	db *gorm.DB
}

func NewPaymentSessionRepository(db *gorm.DB) PaymentSessionRepository {
	return &paymentSessionRepoImpl{
		db: db,
	}
}

func (r *paymentSessionRepoImpl) Create(ctx context.Context, session *model.PaymentSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *paymentSessionRepoImpl) FindBySessionID(ctx context.Context, sessionID string) (*model.PaymentSession, error) {
	var session model.PaymentSession
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&session).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: payment session %s", common.ErrNotFound, sessionID)
	}
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// MarkCompleted flips the session PENDING -> COMPLETED. The status guard in
// the WHERE clause is the idempotency barrier: a session can only win this
// update once, no matter how many webhook redeliveries or polls race on it.
// Returns false when the session was already terminal.
func (r *paymentSessionRepoImpl) MarkCompleted(ctx context.Context, tx *gorm.DB, sessionID, paymentIntentID string) (bool, error) {
	now := time.Now()
	result := tx.WithContext(ctx).Model(&model.PaymentSession{}).
		Where("session_id = ? AND status = ?", sessionID, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":            model.PaymentStatusCompleted,
			"payment_intent_id": paymentIntentID,
			"completed_at":      now,
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *paymentSessionRepoImpl) MarkFailed(ctx context.Context, tx *gorm.DB, sessionID string) (bool, error) {
	result := tx.WithContext(ctx).Model(&model.PaymentSession{}).
		Where("session_id = ? AND status = ?", sessionID, model.PaymentStatusPending).
		Update("status", model.PaymentStatusFailed)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
