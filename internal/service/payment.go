package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cuongnguyenngoc/web3mail/internal/client"
	"github.com/cuongnguyenngoc/web3mail/internal/common"
	"github.com/cuongnguyenngoc/web3mail/internal/dto"
	"github.com/cuongnguyenngoc/web3mail/internal/model"
	"github.com/cuongnguyenngoc/web3mail/internal/repository"
	"gorm.io/gorm"
)

// Observed payment states reported by the provider.
const (
	ObservedPaid   = "paid"
	ObservedFailed = "failed"
)

// ReconcileOutcome reports what a reconciliation attempt did. Applied is
// false when the session was already terminal and the call was a no-op.
type ReconcileOutcome struct {
	SessionID string
	Status    string
	Applied   bool
}

type PaymentService interface {
	CreateSubscriptionCheckout(ctx context.Context, wallet, packageName, originURL string) (*dto.CreatePaymentResponse, error)
	CreateCreditsCheckout(ctx context.Context, wallet, packageName, originURL string) (*dto.CreatePaymentResponse, error)
	Reconcile(ctx context.Context, sessionID, observedStatus, paymentIntentID string) (*ReconcileOutcome, error)
	PollStatus(ctx context.Context, sessionID string) (*ReconcileOutcome, error)
	HandleWebhook(ctx context.Context, body []byte) error
}

type paymentServiceImpl struct {
	db               *gorm.DB
	checkoutClient   client.CheckoutClient
	serviceBaseURL   string
	ledger           CreditLedger
	paymentRepo      repository.PaymentSessionRepository
	webhookEventRepo repository.WebhookEventRepository
}

func NewPaymentService(
	db *gorm.DB,
	checkoutClient client.CheckoutClient,
	serviceBaseURL string,
	ledger CreditLedger,
	paymentRepo repository.PaymentSessionRepository,
	webhookEventRepo repository.WebhookEventRepository,
) PaymentService {
	return &paymentServiceImpl{
		db:               db,
		checkoutClient:   checkoutClient,
		serviceBaseURL:   serviceBaseURL,
		ledger:           ledger,
		paymentRepo:      paymentRepo,
		webhookEventRepo: webhookEventRepo,
	}
}

func (s *paymentServiceImpl) CreateSubscriptionCheckout(ctx context.Context, wallet, packageName, originURL string) (*dto.CreatePaymentResponse, error) {
	tier, ok := model.SubscriptionTiers[packageName]
	if !ok {
		return nil, fmt.Errorf("%w: unknown subscription package %q", common.ErrInvalidInput, packageName)
	}

	return s.createCheckout(ctx, wallet, originURL, &model.PaymentSession{
		WalletAddress:  wallet,
		Amount:         tier.MonthlyPrice,
		Currency:       "USD",
		Status:         model.PaymentStatusPending,
		PackageType:    model.PackageTypeSubscription,
		PackageName:    packageName,
		CreditsToGrant: tier.CreditsPerMonth,
	})
}

func (s *paymentServiceImpl) CreateCreditsCheckout(ctx context.Context, wallet, packageName, originURL string) (*dto.CreatePaymentResponse, error) {
	pkg, ok := model.CreditPackages[packageName]
	if !ok {
		return nil, fmt.Errorf("%w: unknown credit package %q", common.ErrInvalidInput, packageName)
	}

	return s.createCheckout(ctx, wallet, originURL, &model.PaymentSession{
		WalletAddress:  wallet,
		Amount:         pkg.Price,
		Currency:       "USD",
		Status:         model.PaymentStatusPending,
		PackageType:    model.PackageTypeCredits,
		PackageName:    packageName,
		CreditsToGrant: pkg.Credits,
	})
}

func (s *paymentServiceImpl) createCheckout(ctx context.Context, wallet, originURL string, session *model.PaymentSession) (*dto.CreatePaymentResponse, error) {
	resp, err := s.checkoutClient.CreateSession(ctx, &client.CreateSessionRequest{
		Amount:     session.Amount,
		Currency:   session.Currency,
		SuccessURL: fmt.Sprintf("%s/api/payments/status/{CHECKOUT_SESSION_ID}", s.serviceBaseURL),
		CancelURL:  originURL,
		Metadata: map[string]string{
			"wallet_address": wallet,
			"package_type":   session.PackageType,
			"package_name":   session.PackageName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("checkout api create session: %w", err)
	}

	session.SessionID = resp.SessionID
	if err := s.paymentRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("store payment session: %w", err)
	}

	return &dto.CreatePaymentResponse{
		SessionID:   resp.SessionID,
		CheckoutURL: resp.CheckoutURL,
	}, nil
}

// Reconcile applies an observed provider status to a payment session. It is
// the single code path that turns a payment into ledger state, for both
// webhook delivery and status polls, and is safe to invoke any number of
// times per session: the PENDING -> terminal transition is a one-shot
// test-and-set, and the grant rides in the same transaction.
func (s *paymentServiceImpl) Reconcile(ctx context.Context, sessionID, observedStatus, paymentIntentID string) (*ReconcileOutcome, error) {
	session, err := s.paymentRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	switch observedStatus {
	case ObservedPaid:
		applied := false
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			won, err := s.paymentRepo.MarkCompleted(ctx, tx, sessionID, paymentIntentID)
			if err != nil {
				return fmt.Errorf("mark session completed: %w", err)
			}
			if !won {
				return nil // already terminal, nothing to apply
			}

			if session.PackageType == model.PackageTypeSubscription {
				if err := s.ledger.SetTier(ctx, tx, session.WalletAddress, session.PackageName); err != nil {
					return fmt.Errorf("set tier: %w", err)
				}
			}
			if err := s.ledger.Credit(ctx, tx, session.WalletAddress, session.CreditsToGrant); err != nil {
				return fmt.Errorf("grant credits: %w", err)
			}

			applied = true
			return nil
		})
		if err != nil {
			return nil, err
		}

		return &ReconcileOutcome{
			SessionID: sessionID,
			Status:    model.PaymentStatusCompleted,
			Applied:   applied,
		}, nil

	case ObservedFailed:
		marked, err := s.paymentRepo.MarkFailed(ctx, s.db, sessionID)
		if err != nil {
			return nil, fmt.Errorf("mark session failed: %w", err)
		}

		status := model.PaymentStatusFailed
		if !marked {
			status = session.Status
		}
		return &ReconcileOutcome{
			SessionID: sessionID,
			Status:    status,
			Applied:   marked,
		}, nil

	default:
		return &ReconcileOutcome{
			SessionID: sessionID,
			Status:    session.Status,
			Applied:   false,
		}, nil
	}
}

// PollStatus asks the provider for the session's current state and feeds it
// through Reconcile.
func (s *paymentServiceImpl) PollStatus(ctx context.Context, sessionID string) (*ReconcileOutcome, error) {
	status, err := s.checkoutClient.GetSessionStatus(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("checkout api get status: %w", err)
	}

	return s.Reconcile(ctx, sessionID, status.PaymentStatus, status.PaymentIntentID)
}

func (s *paymentServiceImpl) HandleWebhook(ctx context.Context, body []byte) error {
	var event model.CheckoutWebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: decode webhook payload: %v", common.ErrInvalidInput, err)
	}

	// transport-level replay suppression; Reconcile stays idempotent
	// even without it
	if event.ID != "" {
		seen, err := s.webhookEventRepo.Exists(ctx, event.ID)
		if err != nil {
			return fmt.Errorf("check webhook event: %w", err)
		}
		if seen {
			return nil
		}
	}

	switch event.EventType {
	case "checkout.session.completed":
		_, err := s.Reconcile(ctx, event.Data.Object.ID, ObservedPaid, event.Data.Object.PaymentIntent)
		if err != nil && !errors.Is(err, common.ErrAlreadyProcessed) {
			return fmt.Errorf("reconcile completed session: %w", err)
		}
	case "checkout.session.failed", "checkout.session.expired":
		_, err := s.Reconcile(ctx, event.Data.Object.ID, ObservedFailed, "")
		if err != nil {
			return fmt.Errorf("reconcile failed session: %w", err)
		}
	}

	if event.ID != "" {
		if err := s.webhookEventRepo.MarkProcessed(ctx, event.ID, event.EventType); err != nil {
			return fmt.Errorf("mark webhook event processed: %w", err)
		}
	}

	return nil
}
