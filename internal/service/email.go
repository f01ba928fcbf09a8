package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cuongnguyenngoc/web3mail/internal/common"
	"github.com/cuongnguyenngoc/web3mail/internal/dto"
	"github.com/cuongnguyenngoc/web3mail/internal/model"
	"github.com/cuongnguyenngoc/web3mail/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmailService interface {
	Send(ctx context.Context, wallet string, email *dto.EmailData) (*dto.SendEmailResponse, error)
	Verify(email *dto.EmailData, storedHash string) bool
	List(ctx context.Context, wallet string, limit int) ([]*model.EmailRecord, error)
	GetContent(ctx context.Context, wallet, emailID string) (*dto.EmailData, error)
}

type emailServiceImpl struct {
	db        *gorm.DB
	ledger    CreditLedger
	store     *ObjectStore
	stamper   LedgerStamper
	emailRepo repository.EmailRepository
}

func NewEmailService(
	db *gorm.DB,
	ledger CreditLedger,
	store *ObjectStore,
	stamper LedgerStamper,
	emailRepo repository.EmailRepository,
) EmailService {
	return &emailServiceImpl{
		db:        db,
		ledger:    ledger,
		store:     store,
		stamper:   stamper,
		emailRepo: emailRepo,
	}
}

// Send runs the full pipeline for one email: validate against the account's
// tier, authorize, fingerprint, store the encrypted content, debit one
// credit, persist the record. Storage happens before the debit so a backend
// failure never costs credit; the debit is re-checked atomically right
// before the record is committed, closing the window left by the initial
// authorization check.
func (s *emailServiceImpl) Send(ctx context.Context, wallet string, email *dto.EmailData) (*dto.SendEmailResponse, error) {
	if email.FromAddress == "" || len(email.ToAddresses) == 0 {
		return nil, fmt.Errorf("%w: sender and at least one recipient are required", common.ErrInvalidInput)
	}

	account, err := s.ledger.GetAccount(ctx, wallet)
	if err != nil {
		return nil, err
	}
	tier, ok := model.SubscriptionTiers[account.Tier]
	if !ok {
		return nil, fmt.Errorf("%w: account tier %q has no catalog entry", common.ErrConfiguration, account.Tier)
	}

	for _, a := range email.Attachments {
		if int64(len(a.Content)) > tier.MaxAttachmentSize {
			return nil, fmt.Errorf("%w: attachment %q (%d bytes, tier limit %d)",
				common.ErrPayloadTooLarge, a.Name, len(a.Content), tier.MaxAttachmentSize)
		}
	}

	authorized, err := s.ledger.AuthorizeSend(ctx, wallet)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return nil, common.ErrInsufficientCredit
	}

	contentHash := Fingerprint(email)

	payload, err := json.Marshal(email)
	if err != nil {
		return nil, fmt.Errorf("marshal email content: %w", err)
	}
	cid, err := s.store.Put(ctx, payload)
	if err != nil {
		// nothing was debited; storage failures cost nothing
		return nil, err
	}

	stamp, err := s.stamper.Stamp(ctx, contentHash)
	if err != nil {
		return nil, fmt.Errorf("ledger stamp: %w", err)
	}

	metadata, _ := json.Marshal(map[string]interface{}{
		"subject":    email.Subject,
		"recipients": len(email.ToAddresses),
		"simulated":  true,
	})

	record := &model.EmailRecord{
		ID:                uuid.NewString(),
		WalletAddress:     wallet,
		ContentHash:       contentHash,
		StorageCID:        cid,
		LedgerTxID:        stamp.TransactionID,
		LedgerTopicID:     stamp.TopicID,
		SequenceNumber:    stamp.SequenceNumber,
		EncryptionLevel:   tier.EncryptionLevel,
		DeliveryGuarantee: hasFeature(tier, "delivery_guarantee"),
		Metadata:          string(metadata),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ledger.Debit(ctx, tx, wallet, 1); err != nil {
			return err
		}
		if err := s.emailRepo.Create(ctx, tx, record); err != nil {
			return fmt.Errorf("store email record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.ledger.GetAccount(ctx, wallet)
	if err != nil {
		return nil, err
	}

	return &dto.SendEmailResponse{
		EmailID:          record.ID,
		ContentHash:      record.ContentHash,
		StorageCID:       record.StorageCID,
		LedgerTxID:       record.LedgerTxID,
		LedgerTopicID:    record.LedgerTopicID,
		SequenceNumber:   record.SequenceNumber,
		CreditsRemaining: updated.CreditBalance,
	}, nil
}

// Verify recomputes the fingerprint of an email and compares it to a hash
// recorded earlier.
func (s *emailServiceImpl) Verify(email *dto.EmailData, storedHash string) bool {
	return Fingerprint(email) == storedHash
}

func (s *emailServiceImpl) List(ctx context.Context, wallet string, limit int) ([]*model.EmailRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.emailRepo.ListByWallet(ctx, wallet, limit)
}

// GetContent fetches and decrypts an email's stored content. Records owned
// by other wallets are reported as not found.
func (s *emailServiceImpl) GetContent(ctx context.Context, wallet, emailID string) (*dto.EmailData, error) {
	record, err := s.emailRepo.FindByID(ctx, emailID)
	if err != nil {
		return nil, err
	}
	if record.WalletAddress != wallet {
		return nil, fmt.Errorf("%w: email record %s", common.ErrNotFound, emailID)
	}
	if record.StorageCID == "" {
		return nil, fmt.Errorf("%w: email record %s has no stored content", common.ErrNotFound, emailID)
	}

	plaintext, err := s.store.Get(ctx, record.StorageCID)
	if err != nil {
		return nil, err
	}

	var email dto.EmailData
	if err := json.Unmarshal(plaintext, &email); err != nil {
		return nil, fmt.Errorf("decode stored email content: %w", err)
	}

	return &email, nil
}

func hasFeature(tier model.SubscriptionTier, feature string) bool {
	for _, f := range tier.Features {
		if f == feature {
			return true
		}
	}
	return false
}
