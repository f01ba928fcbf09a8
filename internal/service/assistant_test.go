package service

import (
	"testing"

	"github.com/cuongnguyenngoc/web3mail/internal/dto"
	"github.com/stretchr/testify/assert"
)

func TestAssistant_CryptoTransferDraft(t *testing.T) {
	svc := NewAssistantService()

	draft := svc.GenerateDraft(&dto.DraftRequest{
		Recipient: "Alice",
		Tone:      "casual",
		CryptoContext: map[string]string{
			"amount":           "0.5",
			"symbol":           "ETH",
			"transaction_hash": "0xabc",
		},
	})

	assert.Equal(t, "Crypto Transfer: 0.5 ETH", draft.Subject)
	assert.Contains(t, draft.Body, "Hey Alice!")
	assert.Contains(t, draft.Body, "0.5 ETH")
	assert.Contains(t, draft.Body, "0xabc")
	assert.Equal(t, "casual", draft.Tone)
}

func TestAssistant_DefaultsApplied(t *testing.T) {
	svc := NewAssistantService()

	draft := svc.GenerateDraft(&dto.DraftRequest{})
	assert.Equal(t, "Important Web3 Communication", draft.Subject)
	assert.Contains(t, draft.Body, "Hi there,")
	assert.Equal(t, "professional", draft.Tone)
}

func TestAssistant_SubjectHint(t *testing.T) {
	svc := NewAssistantService()

	draft := svc.GenerateDraft(&dto.DraftRequest{SubjectHint: "contract renewal", Tone: "formal"})
	assert.Equal(t, "Re: contract renewal", draft.Subject)
	assert.Contains(t, draft.Body, "Sincerely,")
}
