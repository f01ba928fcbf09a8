package service

import (
	"context"
	"strings"
	"testing"

	"github.com/cuongnguyenngoc/web3mail/internal/common"
	"github.com/cuongnguyenngoc/web3mail/internal/dto"
	"github.com/cuongnguyenngoc/web3mail/internal/model"
	"github.com/cuongnguyenngoc/web3mail/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) (WalletAuthService, CreditLedger) {
	t.Helper()

	db := newTestDB(t)
	accountRepo := repository.NewAccountRepository(db)
	auth := NewWalletAuthService("test-secret", 30, 600, accountRepo)
	return auth, NewCreditLedger(db, accountRepo)
}

func verifyRequest(auth WalletAuthService, wallet string) *dto.AuthVerifyRequest {
	challenge := auth.CreateChallenge(wallet, "metamask")
	return &dto.AuthVerifyRequest{
		WalletAddress: wallet,
		Signature:     "0x" + strings.Repeat("a", 130),
		ChallengeData: map[string]string{
			"message":   challenge.Message,
			"nonce":     challenge.Nonce,
			"timestamp": challenge.Timestamp,
		},
		WalletType: "metamask",
	}
}

func TestWalletAuth_ChallengeShape(t *testing.T) {
	auth, _ := newTestAuth(t)

	challenge := auth.CreateChallenge(testWallet, "metamask")
	assert.Contains(t, challenge.Message, testWallet)
	assert.Len(t, challenge.Nonce, 16)
	assert.NotEmpty(t, challenge.Timestamp)
}

func TestWalletAuth_AuthenticateIssuesToken(t *testing.T) {
	auth, _ := newTestAuth(t)

	resp, err := auth.Authenticate(context.Background(), verifyRequest(auth, testWallet))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)

	claims, err := auth.VerifyToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, testWallet, claims.WalletAddress)
	assert.Equal(t, "metamask", claims.WalletType)
}

func TestWalletAuth_RejectsBadSignature(t *testing.T) {
	auth, _ := newTestAuth(t)

	req := verifyRequest(auth, testWallet)
	req.Signature = "short"

	_, err := auth.Authenticate(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrInvalidSignature)
}

func TestWalletAuth_RejectsExpiredChallenge(t *testing.T) {
	auth, _ := newTestAuth(t)

	req := verifyRequest(auth, testWallet)
	req.ChallengeData["timestamp"] = "1600000000" // long past

	_, err := auth.Authenticate(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrChallengeExpired)
}

func TestWalletAuth_RejectsBadToken(t *testing.T) {
	auth, _ := newTestAuth(t)

	_, err := auth.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

// First authentication provisions the account with the basic allotment;
// later logins never top the balance back up.
func TestWalletAuth_InitialGrantHappensOnce(t *testing.T) {
	auth, ledger := newTestAuth(t)
	ctx := context.Background()

	_, err := auth.Authenticate(ctx, verifyRequest(auth, testWallet))
	require.NoError(t, err)

	account, err := ledger.GetAccount(ctx, testWallet)
	require.NoError(t, err)
	assert.Equal(t, model.TierBasic, account.Tier)
	assert.Equal(t, model.SubscriptionTiers[model.TierBasic].CreditsPerMonth, account.CreditBalance)

	// spend everything, then log in again
	require.NoError(t, ledger.Debit(ctx, nil, testWallet, account.CreditBalance))

	_, err = auth.Authenticate(ctx, verifyRequest(auth, testWallet))
	require.NoError(t, err)

	account, err = ledger.GetAccount(ctx, testWallet)
	require.NoError(t, err)
	assert.Equal(t, int64(0), account.CreditBalance)
}
