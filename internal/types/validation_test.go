package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateIDPresent(t *testing.T) {
	assert.NoError(t, ValidateIDPresent("rec1", "record id"))
	assert.Error(t, ValidateIDPresent("", "record id"))
	assert.Error(t, ValidateIDPresent("   ", "record id"))
}

func TestValidateCollection(t *testing.T) {
	for _, name := range []string{"expenses", "savingGoals", "a_b_c", "v2"} {
		assert.NoError(t, ValidateCollection(name), name)
	}
	for _, name := range []string{"", "bad name", "bad/name", "bad-name", "ünïcode"} {
		assert.Error(t, ValidateCollection(name), name)
	}
}

func TestValidateCredentials(t *testing.T) {
	assert.NoError(t, ValidateCredentials("ana@example.com", "pw"))
	assert.Error(t, ValidateCredentials("not-an-address", "pw"))
	assert.Error(t, ValidateCredentials("ana@example.com", ""))
}
