package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/cuongnguyenngoc/web3mail/internal/client"
	"github.com/cuongnguyenngoc/web3mail/internal/common"
	"github.com/cuongnguyenngoc/web3mail/internal/model"
	"github.com/cuongnguyenngoc/web3mail/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubCheckoutClient answers session creation and status polls from memory.
type stubCheckoutClient struct {
	nextID   int
	statuses map[string]*client.SessionStatus
}

func newStubCheckoutClient() *stubCheckoutClient {
	return &stubCheckoutClient{statuses: map[string]*client.SessionStatus{}}
}

func (c *stubCheckoutClient) CreateSession(ctx context.Context, req *client.CreateSessionRequest) (*client.CheckoutSession, error) {
	c.nextID++
	id := fmt.Sprintf("cs_test_%03d", c.nextID)
	c.statuses[id] = &client.SessionStatus{
		SessionID:     id,
		PaymentStatus: "unpaid",
		Amount:        req.Amount,
		Currency:      req.Currency,
	}
	return &client.CheckoutSession{SessionID: id, CheckoutURL: "https://checkout.example.com/" + id}, nil
}

func (c *stubCheckoutClient) GetSessionStatus(ctx context.Context, sessionID string) (*client.SessionStatus, error) {
	status, ok := c.statuses[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", common.ErrNotFound, sessionID)
	}
	return status, nil
}

type paymentFixture struct {
	db       *gorm.DB
	ledger   CreditLedger
	checkout *stubCheckoutClient
	payments PaymentService
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	db := newTestDB(t)
	ledger := NewCreditLedger(db, repository.NewAccountRepository(db))
	checkout := newStubCheckoutClient()
	payments := NewPaymentService(
		db, checkout, "https://web3mail.example.com",
		ledger,
		repository.NewPaymentSessionRepository(db),
		repository.NewWebhookEventRepository(db),
	)

	return &paymentFixture{db: db, ledger: ledger, checkout: checkout, payments: payments}
}

func (f *paymentFixture) balance(t *testing.T) int64 {
	t.Helper()
	account, err := f.ledger.GetAccount(context.Background(), testWallet)
	require.NoError(t, err)
	return account.CreditBalance
}

func TestPaymentService_CreateCreditsCheckout(t *testing.T) {
	f := newPaymentFixture(t)
	newTestAccount(t, f.db, testWallet, model.TierBasic, 0)
	ctx := context.Background()

	resp, err := f.payments.CreateCreditsCheckout(ctx, testWallet, "medium", "https://example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEmpty(t, resp.CheckoutURL)

	var session model.PaymentSession
	require.NoError(t, f.db.First(&session, "session_id = ?", resp.SessionID).Error)
	assert.Equal(t, model.PaymentStatusPending, session.Status)
	assert.Equal(t, int64(50), session.CreditsToGrant)
	assert.True(t, session.Amount.Equal(decimal.NewFromFloat(19.99)))
}

func TestPaymentService_CreateCheckoutUnknownPackage(t *testing.T) {
	f := newPaymentFixture(t)
	ctx := context.Background()

	_, err := f.payments.CreateCreditsCheckout(ctx, testWallet, "mega", "https://example.com")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = f.payments.CreateSubscriptionCheckout(ctx, testWallet, "platinum", "https://example.com")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestPaymentService_ReconcileGrantsOnce(t *testing.T) {
	f := newPaymentFixture(t)
	newTestAccount(t, f.db, testWallet, model.TierBasic, 3)
	ctx := context.Background()

	resp, err := f.payments.CreateCreditsCheckout(ctx, testWallet, "medium", "https://example.com")
	require.NoError(t, err)

	outcome, err := f.payments.Reconcile(ctx, resp.SessionID, ObservedPaid, "pi_123")
	require.NoError(t, err)
	assert.True(t, outcome.Applied)
	assert.Equal(t, model.PaymentStatusCompleted, outcome.Status)
	assert.Equal(t, int64(53), f.balance(t))

	// redelivery: same session observed paid again and again
	for i := 0; i < 4; i++ {
		outcome, err = f.payments.Reconcile(ctx, resp.SessionID, ObservedPaid, "pi_123")
		require.NoError(t, err)
		assert.False(t, outcome.Applied)
	}
	assert.Equal(t, int64(53), f.balance(t))
}

func TestPaymentService_SubscriptionReconcileSetsTierOnce(t *testing.T) {
	f := newPaymentFixture(t)
	newTestAccount(t, f.db, testWallet, model.TierBasic, 0)
	ctx := context.Background()

	resp, err := f.payments.CreateSubscriptionCheckout(ctx, testWallet, model.TierPro, "https://example.com")
	require.NoError(t, err)

	// simulated webhook redelivery: reconcile twice
	for i := 0; i < 2; i++ {
		_, err = f.payments.Reconcile(ctx, resp.SessionID, ObservedPaid, "pi_sub")
		require.NoError(t, err)
	}

	account, err := f.ledger.GetAccount(ctx, testWallet)
	require.NoError(t, err)
	assert.Equal(t, model.TierPro, account.Tier)
	assert.Equal(t, int64(100), account.CreditBalance)

	var session model.PaymentSession
	require.NoError(t, f.db.First(&session, "session_id = ?", resp.SessionID).Error)
	assert.Equal(t, model.PaymentStatusCompleted, session.Status)
	assert.Equal(t, "pi_sub", session.PaymentIntentID)
	assert.NotNil(t, session.CompletedAt)
}

func TestPaymentService_ReconcileFailedIsTerminal(t *testing.T) {
	f := newPaymentFixture(t)
	newTestAccount(t, f.db, testWallet, model.TierBasic, 0)
	ctx := context.Background()

	resp, err := f.payments.CreateCreditsCheckout(ctx, testWallet, "small", "https://example.com")
	require.NoError(t, err)

	outcome, err := f.payments.Reconcile(ctx, resp.SessionID, ObservedFailed, "")
	require.NoError(t, err)
	assert.True(t, outcome.Applied)
	assert.Equal(t, model.PaymentStatusFailed, outcome.Status)

	// a late "paid" observation after the failure must not grant
	outcome, err = f.payments.Reconcile(ctx, resp.SessionID, ObservedPaid, "pi_late")
	require.NoError(t, err)
	assert.False(t, outcome.Applied)
	assert.Equal(t, int64(0), f.balance(t))
}

func TestPaymentService_ReconcileUnknownSession(t *testing.T) {
	f := newPaymentFixture(t)

	_, err := f.payments.Reconcile(context.Background(), "cs_missing", ObservedPaid, "")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPaymentService_PollStatusAppliesGrant(t *testing.T) {
	f := newPaymentFixture(t)
	newTestAccount(t, f.db, testWallet, model.TierBasic, 0)
	ctx := context.Background()

	resp, err := f.payments.CreateCreditsCheckout(ctx, testWallet, "large", "https://example.com")
	require.NoError(t, err)

	// provider side flips to paid
	f.checkout.statuses[resp.SessionID].PaymentStatus = "paid"
	f.checkout.statuses[resp.SessionID].PaymentIntentID = "pi_poll"

	outcome, err := f.payments.PollStatus(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.True(t, outcome.Applied)
	assert.Equal(t, int64(150), f.balance(t))

	// polling again is a no-op
	outcome, err = f.payments.PollStatus(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.False(t, outcome.Applied)
	assert.Equal(t, int64(150), f.balance(t))
}

func TestPaymentService_WebhookRedelivery(t *testing.T) {
	f := newPaymentFixture(t)
	newTestAccount(t, f.db, testWallet, model.TierBasic, 0)
	ctx := context.Background()

	resp, err := f.payments.CreateCreditsCheckout(ctx, testWallet, "small", "https://example.com")
	require.NoError(t, err)

	payload := fmt.Sprintf(`{
		"id": "evt_001",
		"type": "checkout.session.completed",
		"data": {"object": {"id": %q, "payment_status": "paid", "payment_intent": "pi_wh"}}
	}`, resp.SessionID)

	// same event delivered three times
	for i := 0; i < 3; i++ {
		require.NoError(t, f.payments.HandleWebhook(ctx, []byte(payload)))
	}
	assert.Equal(t, int64(10), f.balance(t))

	// distinct event id for the same session: still no double grant
	redelivered := fmt.Sprintf(`{
		"id": "evt_002",
		"type": "checkout.session.completed",
		"data": {"object": {"id": %q, "payment_status": "paid", "payment_intent": "pi_wh"}}
	}`, resp.SessionID)
	require.NoError(t, f.payments.HandleWebhook(ctx, []byte(redelivered)))
	assert.Equal(t, int64(10), f.balance(t))
}
