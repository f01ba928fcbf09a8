package service

import (
	"fmt"
	"strings"

	"github.com/cuongnguyenngoc/web3mail/internal/dto"
)

// AssistantService produces templated email drafts. Purely rule-based; no
// model calls.
type AssistantService interface {
	GenerateDraft(req *dto.DraftRequest) *dto.DraftResponse
}

type assistantServiceImpl struct{}

func NewAssistantService() AssistantService {
	return &assistantServiceImpl{}
}

func (s *assistantServiceImpl) GenerateDraft(req *dto.DraftRequest) *dto.DraftResponse {
	recipient := req.Recipient
	if recipient == "" {
		recipient = "there"
	}
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}

	subject := s.buildSubject(req)
	body := s.buildBody(recipient, tone, req)

	return &dto.DraftResponse{
		Subject:    subject,
		Body:       body,
		Tone:       tone,
		Confidence: 0.85,
	}
}

func (s *assistantServiceImpl) buildSubject(req *dto.DraftRequest) string {
	if len(req.CryptoContext) > 0 {
		if req.CryptoContext["type"] == "nft" {
			name := req.CryptoContext["token_name"]
			if name == "" {
				name = "Digital Asset"
			}
			return "NFT Transfer: " + name
		}
		amount := req.CryptoContext["amount"]
		symbol := req.CryptoContext["symbol"]
		if symbol == "" {
			symbol = "ETH"
		}
		return fmt.Sprintf("Crypto Transfer: %s %s", amount, symbol)
	}
	if req.SubjectHint != "" {
		return "Re: " + req.SubjectHint
	}
	return "Important Web3 Communication"
}

func (s *assistantServiceImpl) buildBody(recipient, tone string, req *dto.DraftRequest) string {
	var greeting, closing string
	switch tone {
	case "casual":
		greeting = "Hey " + recipient + "!"
		closing = "Cheers!"
	case "formal":
		greeting = "Dear " + recipient + ","
		closing = "Sincerely,"
	default:
		greeting = "Hi " + recipient + ","
		closing = "Best regards,"
	}

	var middle string
	if len(req.CryptoContext) > 0 {
		amount := req.CryptoContext["amount"]
		symbol := req.CryptoContext["symbol"]
		if symbol == "" {
			symbol = "ETH"
		}
		middle = fmt.Sprintf(
			"I've sent you %s %s. The transfer is recorded on-chain and you should see it in your wallet shortly.",
			amount, symbol,
		)
		if hash := req.CryptoContext["transaction_hash"]; hash != "" {
			middle += "\n\nTransaction hash: " + hash
		}
	} else {
		middle = "I hope this message finds you well."
		if req.SubjectHint != "" {
			middle += " I'm writing regarding " + strings.TrimSpace(req.SubjectHint) + "."
		}
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", greeting, middle, closing)
}
