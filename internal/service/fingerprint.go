package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"github.com/cuongnguyenngoc/web3mail/internal/dto"
)

// canonicalEmail is the normalized form an email is hashed over. Fields are
// declared in sorted key order so the serialized JSON is canonical.
type canonicalEmail struct {
	Attachments []string `json:"attachments"`
	Body        string   `json:"body"`
	From        string   `json:"from"`
	Subject     string   `json:"subject"`
	To          []string `json:"to"`
}

func canonicalize(email *dto.EmailData) *canonicalEmail {
	to := make([]string, 0, len(email.ToAddresses))
	for _, addr := range email.ToAddresses {
		to = append(to, strings.ToLower(strings.TrimSpace(addr)))
	}
	sort.Strings(to)

	attachments := make([]string, 0, len(email.Attachments))
	for _, a := range email.Attachments {
		attachments = append(attachments, a.Name)
	}
	sort.Strings(attachments)

	return &canonicalEmail{
		Attachments: attachments,
		Body:        strings.TrimSpace(email.Body),
		From:        strings.ToLower(strings.TrimSpace(email.FromAddress)),
		Subject:     strings.TrimSpace(email.Subject),
		To:          to,
	}
}

// Fingerprint derives the content hash of an email. It is a pure function of
// the normalized content: recipient order and surrounding whitespace never
// change the result, so sender and verifier always agree on the digest.
func Fingerprint(email *dto.EmailData) string {
	content, _ := json.Marshal(canonicalize(email)) // canonicalEmail cannot fail to marshal
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
