package hellosign

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/govindrajkumar/easy-lease-sub000/model"
)

// Client HelloSign API client
type Client struct {
	httpClient *resty.Client
	config     *Config
}

// New create a HelloSign client
func New(conf *Config) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(conf.BaseURL, "/")).
		SetTimeout(conf.Timeout).
		SetBasicAuth(conf.APIKey, "").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		config:     conf,
	}
}

// Configured reports whether credentials are present
func (c *Client) Configured() bool {
	return c.config.APIKey != "" && c.config.ClientID != ""
}

// ComputeEventHash returns hex(HMAC-SHA256(apiKey, eventTime+eventType))
func ComputeEventHash(apiKey, eventTime, eventType string) string {
	mac := hmac.New(sha256.New, []byte(apiKey))
	mac.Write([]byte(eventTime + eventType))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyEventHash checks a callback hash; it always passes when verification is disabled
func (c *Client) VerifyEventHash(eventTime, eventType, eventHash string) bool {
	if !c.config.VerifyEventHash {
		return true
	}
	expected := ComputeEventHash(c.config.APIKey, eventTime, eventType)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(eventHash)))
}

func (c *Client) CreateEmbeddedSignatureRequest(ctx context.Context, req *model.EmbeddedSignatureRequest) (*model.SignatureRequest, error) {
	form := map[string]string{
		"client_id": c.config.ClientID,
		"title":     req.Title,
		"subject":   req.Subject,
		"message":   req.Message,
		"test_mode": "0",
	}
	if req.TestMode {
		form["test_mode"] = "1"
	}
	for i, signer := range req.Signers {
		form[fmt.Sprintf("signers[%d][name]", i)] = signer.Name
		form[fmt.Sprintf("signers[%d][email_address]", i)] = signer.EmailAddress
	}
	for i, url := range req.FileURLs {
		form[fmt.Sprintf("file_url[%d]", i)] = url
	}

	result := &signatureRequestResponse{}
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(result).
		SetError(&errorResponse{}).
		Post("/v3/signature_request/create_embedded")
	if err := checkResponse(resp, err); err != nil {
		return nil, errors.Wrap(err, "create embedded signature request")
	}

	out := &model.SignatureRequest{SignatureRequestID: result.SignatureRequest.SignatureRequestID}
	for _, s := range result.SignatureRequest.Signatures {
		out.SignatureIDs = append(out.SignatureIDs, s.SignatureID)
	}
	logrus.WithField("signature_request_id", out.SignatureRequestID).Debug("hellosign signature request created")
	return out, nil
}

func (c *Client) GetEmbeddedSignURL(ctx context.Context, signatureID string) (string, error) {
	result := &embeddedResponse{}
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("signatureID", signatureID).
		SetResult(result).
		SetError(&errorResponse{}).
		Get("/v3/embedded/sign_url/{signatureID}")
	if err := checkResponse(resp, err); err != nil {
		return "", errors.Wrap(err, "get embedded sign url")
	}
	if result.Embedded.SignURL == "" {
		return "", errors.New("hellosign returned an empty sign url")
	}
	return result.Embedded.SignURL, nil
}

func (c *Client) DownloadSignedFiles(ctx context.Context, signatureRequestID, fileType string) ([]byte, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("requestID", signatureRequestID).
		SetQueryParam("file_type", fileType).
		SetHeader("Accept", "application/pdf, application/zip, application/json").
		SetError(&errorResponse{}).
		Get("/v3/signature_request/files/{requestID}")
	if err := checkResponse(resp, err); err != nil {
		return nil, errors.Wrap(err, "download signed files")
	}
	return resp.Body(), nil
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !resp.IsError() {
		return nil
	}
	if body, ok := resp.Error().(*errorResponse); ok && body.Error != nil {
		body.Error.StatusCode = resp.StatusCode()
		return body.Error
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: resp.Status()}
}
