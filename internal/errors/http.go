package errors

import "encoding/json"

// remoteFailure mirrors the record store's error body:
// {"code":400,"message":"...","data":{"field":{"code":"...","message":"..."}}}
type remoteFailure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    map[string]struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"data"`
}

// FromResponse converts a non-2xx response into the taxonomy. A 400
// carrying per-field data becomes a ValidationError; everything else
// is a RemoteError with the backend's message when one was decodable.
func FromResponse(op string, status int, body []byte) error {
	var rf remoteFailure
	_ = json.Unmarshal(body, &rf) // best effort; a bare status is still useful

	if status == 400 && len(rf.Data) > 0 {
		fields := make(map[string]string, len(rf.Data))
		for name, fe := range rf.Data {
			fields[name] = fe.Message
		}
		return &ValidationError{Message: rf.Message, Fields: fields}
	}
	return &RemoteError{Op: op, Status: status, Message: rf.Message}
}
