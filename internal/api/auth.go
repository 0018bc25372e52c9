package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fintrackapp/fintrack-go/internal/errors"
	"github.com/fintrackapp/fintrack-go/internal/types"
)

// AuthWithPassword exchanges credentials for a token and the matching
// user record. Invalid credentials surface as *errors.AuthError.
func AuthWithPassword(ctx context.Context, httpClient HTTPClient, baseURL string, req types.AuthWithPasswordRequest) (*types.AuthResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/collections/users/records/auth-with-password", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	raw, err := doJSON(httpClient, httpReq, "authenticate", http.StatusOK)
	if err != nil {
		// The auth endpoint answers 400 for bad credentials; report it
		// as a credential rejection, not a generic remote failure.
		if re, ok := err.(*errors.RemoteError); ok && re.Status == http.StatusBadRequest {
			return nil, &errors.AuthError{Message: re.Message}
		}
		if ve, ok := err.(*errors.ValidationError); ok {
			return nil, &errors.AuthError{Message: ve.Message}
		}
		return nil, err
	}

	var ar types.AuthResponse
	if err := json.Unmarshal(raw, &ar); err != nil {
		return nil, err
	}
	return &ar, nil
}

// CreateUser registers a new user record. The store answers field-level
// rejections (duplicate email, weak password) with a 400 that becomes
// *errors.ValidationError.
func CreateUser(ctx context.Context, httpClient HTTPClient, baseURL string, req types.CreateAccountRequest) (*types.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/collections/users/records", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	raw, err := doJSON(httpClient, httpReq, "create account", http.StatusOK, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	var s types.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
