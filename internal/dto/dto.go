package dto

import "time"

type Attachment struct {
	Name    string `json:"name"`
	Content []byte `json:"content"`
}

type EmailData struct {
	FromAddress string       `json:"from_address"`
	ToAddresses []string     `json:"to_addresses"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type SendEmailRequest struct {
	EmailData EmailData `json:"email_data"`
}

type SendEmailResponse struct {
	EmailID          string `json:"email_id"`
	ContentHash      string `json:"content_hash"`
	StorageCID       string `json:"storage_cid"`
	LedgerTxID       string `json:"ledger_transaction_id"`
	LedgerTopicID    string `json:"ledger_topic_id"`
	SequenceNumber   int64  `json:"sequence_number"`
	CreditsRemaining int64  `json:"credits_remaining"`
}

type VerifyEmailRequest struct {
	EmailData  EmailData `json:"email_data"`
	StoredHash string    `json:"stored_hash"`
}

type VerifyEmailResponse struct {
	Valid                 bool      `json:"valid"`
	VerificationTimestamp time.Time `json:"verification_timestamp"`
}

type AuthChallengeRequest struct {
	WalletAddress string `json:"wallet_address"`
	WalletType    string `json:"wallet_type"`
}

type AuthChallengeResponse struct {
	Message   string `json:"message"`
	Nonce     string `json:"nonce"`
	Timestamp string `json:"timestamp"`
}

type AuthVerifyRequest struct {
	WalletAddress string            `json:"wallet_address"`
	Signature     string            `json:"signature"`
	ChallengeData map[string]string `json:"challenge_data"`
	WalletType    string            `json:"wallet_type"`
}

type AuthVerifyResponse struct {
	AccessToken   string `json:"access_token"`
	TokenType     string `json:"token_type"`
	WalletAddress string `json:"wallet_address"`
	WalletType    string `json:"wallet_type"`
	ExpiresIn     int    `json:"expires_in"`
}

type CreatePaymentRequest struct {
	PackageName string `json:"package_name"`
	OriginURL   string `json:"origin_url"`
}

type CreatePaymentResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

type PaymentStatusResponse struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	Applied   bool   `json:"applied"`
}

type UserProfileResponse struct {
	WalletAddress    string   `json:"wallet_address"`
	WalletType       string   `json:"wallet_type"`
	SubscriptionTier string   `json:"subscription_tier"`
	EmailCredits     int64    `json:"email_credits"`
	PremiumFeatures  []string `json:"premium_features"`
	MaxAttachmentMiB int64    `json:"max_attachment_mib"`
}

type DraftRequest struct {
	Recipient     string            `json:"recipient"`
	SubjectHint   string            `json:"subject_hint"`
	Tone          string            `json:"tone"`
	CryptoContext map[string]string `json:"crypto_context,omitempty"`
}

type DraftResponse struct {
	Subject    string  `json:"subject"`
	Body       string  `json:"body"`
	Tone       string  `json:"tone"`
	Confidence float64 `json:"confidence"`
}

type ChainBalanceResponse struct {
	Chain        string  `json:"chain"`
	ChainID      int64   `json:"chain_id"`
	Address      string  `json:"address"`
	NativeToken  string  `json:"native_token"`
	Balance      float64 `json:"balance"`
	GasPriceGwei float64 `json:"gas_price_gwei"`
}
