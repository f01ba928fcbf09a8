package model

import "github.com/shopspring/decimal"

// SubscriptionTier describes one subscription level. The catalog is static
// configuration loaded at startup; runtime code never mutates it.
type SubscriptionTier struct {
	Name              string          `json:"name"`
	MonthlyPrice      decimal.Decimal `json:"monthly_price"`
	CreditsPerMonth   int64           `json:"credits_per_month"`
	Features          []string        `json:"features"`
	MaxAttachmentSize int64           `json:"max_attachment_size"` // bytes
	EncryptionLevel   string          `json:"encryption_level"`
}

// CreditPackage is a flat one-time credit purchase.
type CreditPackage struct {
	Name    string          `json:"name"`
	Credits int64           `json:"credits"`
	Price   decimal.Decimal `json:"price"`
}

const mib = int64(1024 * 1024)

var SubscriptionTiers = map[string]SubscriptionTier{
	TierBasic: {
		Name:              TierBasic,
		MonthlyPrice:      decimal.Zero,
		CreditsPerMonth:   10,
		Features:          []string{"email_timestamping", "content_verification"},
		MaxAttachmentSize: 5 * mib,
		EncryptionLevel:   "standard",
	},
	TierPro: {
		Name:              TierPro,
		MonthlyPrice:      decimal.NewFromFloat(9.99),
		CreditsPerMonth:   100,
		Features:          []string{"email_timestamping", "content_verification", "encrypted_storage", "priority_delivery"},
		MaxAttachmentSize: 25 * mib,
		EncryptionLevel:   "enhanced",
	},
	TierEnterprise: {
		Name:              TierEnterprise,
		MonthlyPrice:      decimal.NewFromFloat(29.99),
		CreditsPerMonth:   1000,
		Features:          []string{"email_timestamping", "content_verification", "encrypted_storage", "priority_delivery", "delivery_guarantee", "dedicated_topic"},
		MaxAttachmentSize: 100 * mib,
		EncryptionLevel:   "maximum",
	},
}

var CreditPackages = map[string]CreditPackage{
	"small":  {Name: "small", Credits: 10, Price: decimal.NewFromFloat(4.99)},
	"medium": {Name: "medium", Credits: 50, Price: decimal.NewFromFloat(19.99)},
	"large":  {Name: "large", Credits: 150, Price: decimal.NewFromFloat(49.99)},
}

// ChainConfig describes one supported network for balance lookups.
type ChainConfig struct {
	ChainID     int64  `json:"chain_id"`
	Name        string `json:"name"`
	RPCURL      string `json:"rpc_url"`
	Explorer    string `json:"explorer"`
	NativeToken string `json:"native_token"`
	Decimals    int    `json:"decimals"`
}

var ChainConfigs = map[string]ChainConfig{
	"ethereum":  {ChainID: 1, Name: "Ethereum Mainnet", RPCURL: "https://mainnet.infura.io/v3/demo", Explorer: "https://etherscan.io", NativeToken: "ETH", Decimals: 18},
	"polygon":   {ChainID: 137, Name: "Polygon", RPCURL: "https://polygon-rpc.com", Explorer: "https://polygonscan.com", NativeToken: "MATIC", Decimals: 18},
	"arbitrum":  {ChainID: 42161, Name: "Arbitrum One", RPCURL: "https://arb1.arbitrum.io/rpc", Explorer: "https://arbiscan.io", NativeToken: "ETH", Decimals: 18},
	"optimism":  {ChainID: 10, Name: "Optimism", RPCURL: "https://mainnet.optimism.io", Explorer: "https://optimistic.etherscan.io", NativeToken: "ETH", Decimals: 18},
	"bsc":       {ChainID: 56, Name: "Binance Smart Chain", RPCURL: "https://bsc-dataseed1.binance.org", Explorer: "https://bscscan.com", NativeToken: "BNB", Decimals: 18},
	"avalanche": {ChainID: 43114, Name: "Avalanche", RPCURL: "https://api.avax.network/ext/bc/C/rpc", Explorer: "https://snowtrace.io", NativeToken: "AVAX", Decimals: 18},
}
