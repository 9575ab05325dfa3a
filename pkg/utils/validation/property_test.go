package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePropertyID(t *testing.T) {
	valid := []string{"42", "a1b2c3", "6f1c2d9e-1b7a-4c1e-9a3f-2f1d2c3b4a5e", "sunset_villa"}
	for _, id := range valid {
		assert.NoError(t, ValidatePropertyID(id), id)
	}

	assert.ErrorIs(t, ValidatePropertyID(""), ErrPropertyIDRequired)
	invalid := []string{"../etc", "42?x=1", "a b", strings.Repeat("9", MaxPropertyIDLength+1)}
	for _, id := range invalid {
		assert.ErrorIs(t, ValidatePropertyID(id), ErrPropertyIDInvalid, id)
	}
}
