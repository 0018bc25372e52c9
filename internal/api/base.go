// Package api builds and executes the HTTP requests the SDK issues
// against the record store. Each call is a single request/response;
// failures are converted into the shared error taxonomy and surfaced
// to the caller unchanged.
package api

import (
	"io"
	"net/http"

	"github.com/fintrackapp/fintrack-go/internal/errors"
)

// HTTPClient interface for dependency injection in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// doJSON executes req and enforces the expected success status.
// A transport failure becomes *errors.NetworkError; a non-2xx response
// is decoded through errors.FromResponse. On success the raw body is
// returned for the caller to decode.
func doJSON(httpClient HTTPClient, req *http.Request, op string, wantStatus ...int) ([]byte, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, &errors.NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.NetworkError{Op: op, Err: err}
	}

	for _, s := range wantStatus {
		if resp.StatusCode == s {
			return body, nil
		}
	}
	return nil, errors.FromResponse(op, resp.StatusCode, body)
}
