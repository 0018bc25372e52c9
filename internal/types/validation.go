package types

import (
	"fmt"
	"strings"
)

// ------------------------------
// Shared Validation
// ------------------------------

// ValidateIDPresent rejects an empty identifier before a request is built.
func ValidateIDPresent(id, field string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	return nil
}

// ValidateCollection rejects collection names the record store would
// reject anyway, before a request is built.
func ValidateCollection(name string) error {
	if name == "" {
		return fmt.Errorf("collection name must not be empty")
	}
	for _, r := range name {
		ok := r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
		if !ok {
			return fmt.Errorf("invalid collection name %q", name)
		}
	}
	return nil
}

// ValidateCredentials checks the minimal shape of login input; the
// server remains the authority on whether they authenticate.
func ValidateCredentials(email, password string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("email %q is not an address", email)
	}
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}
	return nil
}
