package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	retry "github.com/appleboy/go-httpretry"

	"github.com/kleinsmk/Pode/internal/core"
	"github.com/kleinsmk/Pode/internal/models"
)

// HTTPAPIValidator verifies credentials against an external HTTP API.
type HTTPAPIValidator struct {
	url         string
	retryClient *retry.Client
	metrics     core.Recorder
}

// NewHTTPAPIValidator creates an HTTP API credential validator. The
// retry client carries the authentication mode, timeout, and backoff
// settings for the outbound call.
func NewHTTPAPIValidator(url string, retryClient *retry.Client, rec core.Recorder) *HTTPAPIValidator {
	return &HTTPAPIValidator{
		url:         url,
		retryClient: retryClient,
		metrics:     rec,
	}
}

// APIAuthRequest is the request payload sent to the external API.
type APIAuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// APIAuthResponse is the expected response from the external API.
type APIAuthResponse struct {
	Success  bool   `json:"success"`
	UserID   string `json:"user_id,omitempty"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Validate verifies credentials against the external HTTP API.
// Rejected credentials come back as a failure Result; transport and
// protocol problems are errors.
func (p *HTTPAPIValidator) Validate(
	ctx context.Context,
	username, password string,
) (*Result, error) {
	reqBody := APIAuthRequest{
		Username: username,
		Password: password,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	start := time.Now()
	resp, err := p.retryClient.Post(
		ctx,
		p.url,
		retry.WithBody("application/json", bytes.NewBuffer(jsonData)),
	)
	if p.metrics != nil {
		p.metrics.RecordExternalAPICall(p.Name(), time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTTPAPIConnection, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response", ErrHTTPAPIInvalidResp)
	}

	// 401/403 means the API judged and rejected the credentials. That
	// is an expected outcome, not a fault.
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &Result{Message: rejectionMessage(body)}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Limit body preview to 200 characters to avoid overwhelming logs
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		return nil, fmt.Errorf(
			"%w: HTTP %d - %s",
			ErrHTTPAPIInvalidResp,
			resp.StatusCode,
			bodyPreview,
		)
	}

	var authResp APIAuthResponse
	if err := json.Unmarshal(body, &authResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTTPAPIInvalidResp, err)
	}

	if !authResp.Success {
		message := authResp.Message
		if message == "" {
			message = "Invalid credentials supplied"
		}
		return &Result{Message: message}, nil
	}

	// Validate that user_id is provided when authentication succeeds
	if authResp.UserID == "" {
		return nil, fmt.Errorf(
			"%w: external API returned success=true but missing user_id",
			ErrHTTPAPIInvalidResp,
		)
	}

	return &Result{User: &models.PublicUser{
		Username:   username,
		ExternalID: authResp.UserID,
		Email:      authResp.Email,
		FullName:   authResp.FullName,
		AuthSource: "http_api",
	}}, nil
}

// Name returns the validator name for logging.
func (p *HTTPAPIValidator) Name() string {
	return "http_api"
}

// rejectionMessage extracts a client-facing message from a rejection body.
func rejectionMessage(body []byte) string {
	var authResp APIAuthResponse
	if err := json.Unmarshal(body, &authResp); err == nil && authResp.Message != "" {
		return authResp.Message
	}
	return "Invalid credentials supplied"
}
