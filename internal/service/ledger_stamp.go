package service

import (
	"context"
	"fmt"
	"time"
)

// LedgerStamp is an opaque reference to a consensus-ledger submission of a
// content hash.
type LedgerStamp struct {
	TransactionID  string
	TopicID        string
	SequenceNumber int64
}

// LedgerStamper is the extension point for real distributed-ledger
// submission. The platform currently ships only the simulated implementation.
type LedgerStamper interface {
	Stamp(ctx context.Context, contentHash string) (*LedgerStamp, error)
}

type simulatedStamper struct {
	topicID string
}

func NewSimulatedStamper() LedgerStamper {
	return &simulatedStamper{topicID: "0.0.123456"}
}

func (s *simulatedStamper) Stamp(ctx context.Context, contentHash string) (*LedgerStamp, error) {
	now := time.Now().Unix()
	return &LedgerStamp{
		TransactionID:  fmt.Sprintf("0.0.%d", now),
		TopicID:        s.topicID,
		SequenceNumber: now % 1000,
	}, nil
}
