package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tokenforge/tokenops/record"
)

// HTTPVerifier talks to a verification service over its JSON HTTP API.
type HTTPVerifier struct {
	apiURL  string
	network string
	client  *http.Client
}

// NewHTTPVerifier creates a verifier for the service at apiURL. The network
// name is forwarded so the service can resolve the right chain.
func NewHTTPVerifier(apiURL, network string) (*HTTPVerifier, error) {
	if apiURL == "" {
		return nil, errors.New("verifier API URL is required")
	}

	return &HTTPVerifier{
		apiURL:  apiURL,
		network: network,
		client:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type verifyRequest struct {
	Address         string      `json:"address"`
	Network         string      `json:"network"`
	ConstructorArgs record.Args `json:"constructorArguments"`
}

type verifyResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Verify submits the contract for verification. A service response indicating
// the contract is already verified is surfaced as ErrAlreadyVerified so the
// caller can normalize it to success.
func (v *HTTPVerifier) Verify(ctx context.Context, address string, args record.Args) error {
	body, err := json.Marshal(verifyRequest{
		Address:         address,
		Network:         v.network,
		ConstructorArgs: args,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal verification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("verification request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read verification response: %w", err)
	}

	var vr verifyResponse
	// Fall back to the raw body when the service does not answer JSON.
	if err := json.Unmarshal(respBody, &vr); err != nil {
		vr.Message = string(respBody)
	}

	if isAlreadyVerified(vr.Message) {
		return fmt.Errorf("%s: %w", address, ErrAlreadyVerified)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("verification of %s failed: status %d: %s", address, resp.StatusCode, vr.Message)
	}

	return nil
}

func isAlreadyVerified(message string) bool {
	return strings.Contains(strings.ToLower(message), "already verified")
}
