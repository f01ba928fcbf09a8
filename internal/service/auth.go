package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cuongnguyenngoc/web3mail/internal/common"
	"github.com/cuongnguyenngoc/web3mail/internal/dto"
	"github.com/cuongnguyenngoc/web3mail/internal/model"
	"github.com/cuongnguyenngoc/web3mail/internal/repository"
	"github.com/golang-jwt/jwt/v5"
)

type TokenClaims struct {
	WalletAddress string `json:"wallet_address"`
	WalletType    string `json:"wallet_type"`
	jwt.RegisteredClaims
}

// WalletAuthService issues signing challenges and session tokens for wallet
// owners. Signature checking is a placeholder heuristic; real curve
// verification lives with the wallet infrastructure, not here.
type WalletAuthService interface {
	CreateChallenge(wallet, walletType string) *dto.AuthChallengeResponse
	Authenticate(ctx context.Context, req *dto.AuthVerifyRequest) (*dto.AuthVerifyResponse, error)
	VerifyToken(token string) (*TokenClaims, error)
}

type walletAuthServiceImpl struct {
	jwtSecret    []byte
	tokenTTL     time.Duration
	challengeTTL time.Duration
	accountRepo  repository.AccountRepository
}

func NewWalletAuthService(jwtSecret string, tokenTTLMin, challengeTTLSec int, accountRepo repository.AccountRepository) WalletAuthService {
	return &walletAuthServiceImpl{
		jwtSecret:    []byte(jwtSecret),
		tokenTTL:     time.Duration(tokenTTLMin) * time.Minute,
		challengeTTL: time.Duration(challengeTTLSec) * time.Second,
		accountRepo:  accountRepo,
	}
}

func (s *walletAuthServiceImpl) CreateChallenge(wallet, walletType string) *dto.AuthChallengeResponse {
	timestamp := time.Now().Unix()
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s%d", wallet, timestamp)))
	nonce := hex.EncodeToString(sum[:])[:16]

	message := fmt.Sprintf(
		"Sign this message to authenticate with Web3 Email Platform\nAddress: %s\nTimestamp: %d\nNonce: %s",
		wallet, timestamp, nonce,
	)

	return &dto.AuthChallengeResponse{
		Message:   message,
		Nonce:     nonce,
		Timestamp: strconv.FormatInt(timestamp, 10),
	}
}

// verifySignature is a shape-and-length heuristic standing in for real
// signature verification.
func verifySignature(signature, wallet, walletType string) bool {
	if len(signature) <= 50 {
		return false
	}
	switch strings.ToLower(walletType) {
	case "metamask":
		return strings.HasPrefix(wallet, "0x")
	case "hashpack":
		return strings.HasPrefix(wallet, "0.0.")
	default:
		return false
	}
}

func (s *walletAuthServiceImpl) Authenticate(ctx context.Context, req *dto.AuthVerifyRequest) (*dto.AuthVerifyResponse, error) {
	if !verifySignature(req.Signature, req.WalletAddress, req.WalletType) {
		return nil, common.ErrInvalidSignature
	}

	challengeTime, err := strconv.ParseInt(req.ChallengeData["timestamp"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed challenge timestamp", common.ErrInvalidInput)
	}
	if time.Since(time.Unix(challengeTime, 0)) > s.challengeTTL {
		return nil, common.ErrChallengeExpired
	}

	if err := s.ensureAccount(ctx, req.WalletAddress, req.WalletType); err != nil {
		return nil, err
	}

	now := time.Now()
	claims := &TokenClaims{
		WalletAddress: req.WalletAddress,
		WalletType:    req.WalletType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &dto.AuthVerifyResponse{
		AccessToken:   token,
		TokenType:     "bearer",
		WalletAddress: req.WalletAddress,
		WalletType:    req.WalletType,
		ExpiresIn:     int(s.tokenTTL.Seconds()),
	}, nil
}

// ensureAccount creates the account on first authentication with the basic
// tier and its full credit allotment. The grant happens exactly once, at
// creation; later logins never top the balance up.
func (s *walletAuthServiceImpl) ensureAccount(ctx context.Context, wallet, walletType string) error {
	_, err := s.accountRepo.FindByWallet(ctx, wallet)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return err
	}

	basic := model.SubscriptionTiers[model.TierBasic]
	return s.accountRepo.Create(ctx, &model.Account{
		WalletAddress: wallet,
		WalletType:    walletType,
		Tier:          model.TierBasic,
		CreditBalance: basic.CreditsPerMonth,
		Features:      strings.Join(basic.Features, ","),
	})
}

func (s *walletAuthServiceImpl) VerifyToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
