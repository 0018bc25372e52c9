package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"network", &NetworkError{Op: "list", Err: stderrors.New("refused")}, Recoverable},
		{"auth", &AuthError{Message: "bad credentials"}, Irrecoverable},
		{"validation", &ValidationError{Message: "bad field"}, Irrecoverable},
		{"remote 400", &RemoteError{Status: 400}, Irrecoverable},
		{"remote 401", &RemoteError{Status: 401}, Irrecoverable},
		{"remote 404", &RemoteError{Status: 404}, Irrecoverable},
		{"remote 408", &RemoteError{Status: 408}, Recoverable},
		{"remote 429", &RemoteError{Status: 429}, Recoverable},
		{"remote 500", &RemoteError{Status: 500}, Recoverable},
		{"remote 503", &RemoteError{Status: 503}, Recoverable},
		{"unknown", stderrors.New("mystery"), Recoverable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Category(tc.err))
			assert.Equal(t, tc.want == Irrecoverable, IsIrrecoverable(tc.err))
		})
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "Recoverable", Recoverable.String())
	assert.Equal(t, "Irrecoverable", Irrecoverable.String())
	assert.Equal(t, "Unknown(42)", ErrorCategory(42).String())
}

func TestNetworkError_Unwrap(t *testing.T) {
	inner := stderrors.New("connection reset")
	err := &NetworkError{Op: "create expense", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "create expense")
}

func TestFromResponse_ValidationError(t *testing.T) {
	body := []byte(`{"code":400,"message":"Failed to create record.","data":{"email":{"code":"validation_not_unique","message":"Value must be unique."}}}`)
	err := FromResponse("create user", 400, body)

	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
	assert.Equal(t, "Failed to create record.", valErr.Message)
	assert.Equal(t, "Value must be unique.", valErr.Fields["email"])
}

func TestFromResponse_RemoteError(t *testing.T) {
	body := []byte(`{"code":404,"message":"The requested resource wasn't found."}`)
	err := FromResponse("delete expense", 404, body)

	var remoteErr *RemoteError
	assert.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, 404, remoteErr.Status)
	assert.Equal(t, "delete expense", remoteErr.Op)
	assert.Equal(t, "The requested resource wasn't found.", remoteErr.Message)
}

func TestFromResponse_BadRequestWithoutData(t *testing.T) {
	// A 400 with no per-field data is a plain remote error, not a
	// validation error.
	err := FromResponse("auth", 400, []byte(`{"code":400,"message":"Failed to authenticate."}`))
	var remoteErr *RemoteError
	assert.ErrorAs(t, err, &remoteErr)
}

func TestFromResponse_UndecodableBody(t *testing.T) {
	err := FromResponse("list", 502, []byte("<html>bad gateway</html>"))
	var remoteErr *RemoteError
	assert.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, 502, remoteErr.Status)
}
