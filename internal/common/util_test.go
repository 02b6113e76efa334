package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("secret")
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestBlank(t *testing.T) {
	assert.True(t, Blank(""))
	assert.True(t, Blank(" \t\n"))
	assert.False(t, Blank(" x "))
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("paper form: %w", Required("title"))

	require.ErrorIs(t, err, ErrValidation)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "title", ve.Field)
	assert.Equal(t, "title: is required", ve.Error())
}

func TestValidationError_WithoutField(t *testing.T) {
	err := Invalid("", "passwords do not match")
	assert.Equal(t, "passwords do not match", err.Error())
	assert.ErrorIs(t, err, ErrValidation)
}
