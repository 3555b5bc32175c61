package hellosign

import "fmt"

// APIError - error body returned by the HelloSign API
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error_msg"`
	Name       string `json:"error_name"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hellosign %d %s: %s", e.StatusCode, e.Name, e.Message)
}

type errorResponse struct {
	Error *APIError `json:"error"`
}

type signatureRequestResponse struct {
	SignatureRequest struct {
		SignatureRequestID string `json:"signature_request_id"`
		Signatures         []struct {
			SignatureID string `json:"signature_id"`
		} `json:"signatures"`
	} `json:"signature_request"`
}

type embeddedResponse struct {
	Embedded struct {
		SignURL   string `json:"sign_url"`
		ExpiresAt int64  `json:"expires_at"`
	} `json:"embedded"`
}
