package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2", 4)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, VerifyPassword(hash, "hunter2hunter2"))
	assert.False(t, VerifyPassword(hash, "wrong-password"))
	assert.False(t, VerifyPassword("not-a-bcrypt-hash", "hunter2hunter2"))
}
