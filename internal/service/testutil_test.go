package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/cuongnguyenngoc/web3mail/internal/common"
	"github.com/cuongnguyenngoc/web3mail/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the shared in-memory db alive and avoids
	// sqlite write lock contention in concurrent tests
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Account{},
		&model.EmailRecord{},
		&model.PaymentSession{},
		&model.WebhookEvent{},
	))

	return db
}

func newTestAccount(t *testing.T, db *gorm.DB, wallet, tier string, balance int64) {
	t.Helper()

	tierDef, ok := model.SubscriptionTiers[tier]
	require.True(t, ok)

	require.NoError(t, db.Create(&model.Account{
		WalletAddress: wallet,
		WalletType:    "metamask",
		Tier:          tier,
		CreditBalance: balance,
		Features:      strings.Join(tierDef.Features, ","),
	}).Error)
}

// memoryBackend is an in-process content-addressed store.
type memoryBackend struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{objects: map[string][]byte{}}
}

func (b *memoryBackend) Add(ctx context.Context, data []byte) (string, error) {
	sum := sha256.Sum256(data)
	cid := hex.EncodeToString(sum[:])

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[cid] = append([]byte(nil), data...)
	return cid, nil
}

func (b *memoryBackend) Cat(ctx context.Context, cid string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, ok := b.objects[cid]
	if !ok {
		return nil, fmt.Errorf("%w: cid %s", common.ErrNotFound, cid)
	}
	return append([]byte(nil), data...), nil
}

// unavailableBackend simulates an unreachable storage node.
type unavailableBackend struct{}

func (unavailableBackend) Add(ctx context.Context, data []byte) (string, error) {
	return "", fmt.Errorf("%w: connection refused", common.ErrStorageUnavailable)
}

func (unavailableBackend) Cat(ctx context.Context, cid string) ([]byte, error) {
	return nil, fmt.Errorf("%w: connection refused", common.ErrStorageUnavailable)
}
