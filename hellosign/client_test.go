package hellosign

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govindrajkumar/easy-lease-sub000/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(&Config{APIKey: "key", ClientID: "client", BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func TestCreateEmbeddedSignatureRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3/signature_request/create_embedded", r.URL.Path)
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client", r.PostForm.Get("client_id"))
		assert.Equal(t, "Lease Agreement", r.PostForm.Get("title"))
		assert.Equal(t, "Ada Lovelace", r.PostForm.Get("signers[0][name]"))
		assert.Equal(t, "ada@example.com", r.PostForm.Get("signers[0][email_address]"))
		assert.Equal(t, "https://docs.example/lease.pdf", r.PostForm.Get("file_url[0]"))
		assert.Equal(t, "1", r.PostForm.Get("test_mode"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"signature_request":{"signature_request_id":"R1","signatures":[{"signature_id":"S1"},{"signature_id":"S2"}]}}`))
	})

	req, err := c.CreateEmbeddedSignatureRequest(context.Background(), &model.EmbeddedSignatureRequest{
		Title:    "Lease Agreement",
		Signers:  []model.Signer{{Name: "Ada Lovelace", EmailAddress: "ada@example.com"}},
		FileURLs: []string{"https://docs.example/lease.pdf"},
		TestMode: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "R1", req.SignatureRequestID)
	assert.Equal(t, []string{"S1", "S2"}, req.SignatureIDs)
}

func TestGetEmbeddedSignURL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/embedded/sign_url/S1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"embedded":{"sign_url":"https://app.hellosign.com/editor/embeddedSign?signature_id=S1","expires_at":1700000000}}`))
	})

	url, err := c.GetEmbeddedSignURL(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, "https://app.hellosign.com/editor/embeddedSign?signature_id=S1", url)
}

func TestDownloadSignedFiles(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/signature_request/files/R1", r.URL.Path)
		assert.Equal(t, "pdf", r.URL.Query().Get("file_type"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 signed"))
	})

	data, err := c.DownloadSignedFiles(context.Background(), "R1", "pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 signed"), data)
}

func TestAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"error_msg":"Signature not found","error_name":"not_found"}}`))
	})

	_, err := c.GetEmbeddedSignURL(context.Background(), "S404")
	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "not_found", apiErr.Name)
	assert.Equal(t, "Signature not found", apiErr.Message)
}

func TestVerifyEventHash(t *testing.T) {
	c := New(&Config{APIKey: "key", VerifyEventHash: true})
	hash := ComputeEventHash("key", "1700000000", "signature_request_all_signed")

	assert.True(t, c.VerifyEventHash("1700000000", "signature_request_all_signed", hash))
	assert.False(t, c.VerifyEventHash("1700000001", "signature_request_all_signed", hash))
	assert.False(t, c.VerifyEventHash("1700000000", "signature_request_all_signed", ""))

	disabled := New(&Config{APIKey: "key"})
	assert.True(t, disabled.VerifyEventHash("t", "e", "anything"))
}

func TestConfigured(t *testing.T) {
	assert.True(t, New(&Config{APIKey: "k", ClientID: "c"}).Configured())
	assert.False(t, New(&Config{APIKey: "k"}).Configured())
	assert.False(t, New(&Config{ClientID: "c"}).Configured())
}
