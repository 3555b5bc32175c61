package model

import "context"

// MulticastMessage - one notification addressed to many device tokens
type MulticastMessage struct {
	Tokens []string
	Title  string
	Body   string
}

// BatchResponse - per-call outcome of a multicast send
type BatchResponse struct {
	SuccessCount int
	FailureCount int
}

// PushSender - push provider; one call fans out to every token
type PushSender interface {
	SendMulticast(ctx context.Context, msg *MulticastMessage) (*BatchResponse, error)
}
