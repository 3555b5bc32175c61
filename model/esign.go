package model

import "context"

// Caller - authenticated identity of a callable request
type Caller struct {
	UserID string
	Email  string
}

// Signer - one party of a signature request
type Signer struct {
	Name         string
	EmailAddress string
}

// EmbeddedSignatureRequest - payload for an embedded signature request
type EmbeddedSignatureRequest struct {
	Title    string
	Subject  string
	Message  string
	Signers  []Signer
	FileURLs []string
	TestMode bool
}

// SignatureRequest - provider identifiers of a created request
type SignatureRequest struct {
	SignatureRequestID string
	SignatureIDs       []string
}

// SignatureURL - response of the create lease signature call
type SignatureURL struct {
	URL string `json:"url"`
}

// SignatureEvent - webhook callback payload
type SignatureEvent struct {
	Event struct {
		EventType string `json:"event_type"`
		EventTime string `json:"event_time"`
		EventHash string `json:"event_hash"`
	} `json:"event"`
	SignatureRequest *SignatureRequestRef `json:"signature_request"`
}

// SignatureRequestRef - signature request reference carried by callbacks
type SignatureRequestRef struct {
	SignatureRequestID string `json:"signature_request_id"`
}

// RequestID returns the signature request id carried by the event, if any.
func (e *SignatureEvent) RequestID() string {
	if e.SignatureRequest == nil {
		return ""
	}
	return e.SignatureRequest.SignatureRequestID
}

// SignatureProvider - e-signature provider
type SignatureProvider interface {
	Configured() bool
	VerifyEventHash(eventTime, eventType, eventHash string) bool
	CreateEmbeddedSignatureRequest(ctx context.Context, req *EmbeddedSignatureRequest) (*SignatureRequest, error)
	GetEmbeddedSignURL(ctx context.Context, signatureID string) (string, error)
	DownloadSignedFiles(ctx context.Context, signatureRequestID, fileType string) ([]byte, error)
}
