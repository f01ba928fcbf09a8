package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Subscription tiers.
const (
	TierBasic      = "basic"
	TierPro        = "pro"
	TierEnterprise = "enterprise"
)

// Payment session lifecycle. PENDING is the only non-terminal state.
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
)

// Payment package kinds.
const (
	PackageTypeSubscription = "SUBSCRIPTION"
	PackageTypeCredits      = "CREDITS"
)

type Account struct {
	WalletAddress string `gorm:"primaryKey;size:128;not null"`
	WalletType    string `gorm:"size:32;not null"` // metamask, hashpack
	Tier          string `gorm:"size:32;index;not null"`
	CreditBalance int64  `gorm:"not null;default:0"`
	Features      string `gorm:"size:512"` // comma-joined, derived from tier catalog
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type EmailRecord struct {
	ID            string `gorm:"primaryKey;size:64;not null"` // uuid
	WalletAddress string `gorm:"size:128;index;not null"`
	ContentHash   string `gorm:"size:64;index;not null"` // sha-256 hex of canonical content
	StorageCID    string `gorm:"size:128"`               // set once the encrypted body is stored

	// Simulated consensus-ledger reference. Placeholder for a future
	// real submission, see service.LedgerStamper.
	LedgerTxID     string `gorm:"size:64"`
	LedgerTopicID  string `gorm:"size:64"`
	SequenceNumber int64

	EncryptionLevel   string `gorm:"size:32"`
	DeliveryGuarantee bool
	Metadata          string `gorm:"size:2048"` // json object
	CreatedAt         time.Time
}

type PaymentSession struct {
	SessionID       string          `gorm:"primaryKey;size:64;not null"` // provider session id
	WalletAddress   string          `gorm:"size:128;index;not null"`
	Amount          decimal.Decimal `gorm:"type:numeric;not null"`
	Currency        string          `gorm:"size:8;not null"`
	Status          string          `gorm:"size:32;index;not null"`
	PackageType     string          `gorm:"size:32;not null"` // SUBSCRIPTION or CREDITS
	PackageName     string          `gorm:"size:32;not null"`
	CreditsToGrant  int64           `gorm:"not null"`
	PaymentIntentID string          `gorm:"size:128"`
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}
