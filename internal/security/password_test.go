package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, IsHashed(hash))
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, VerifyPassword("hunter2", hash))
	assert.False(t, VerifyPassword("hunter3", hash))
}

func TestIsHashed(t *testing.T) {
	assert.False(t, IsHashed("plaintext"))
	assert.False(t, IsHashed(""))
	assert.False(t, IsHashed("123456"))
	assert.True(t, IsHashed("$2a$12$abcdefghijklmnopqrstuv"))
	assert.True(t, IsHashed("$2b$10$abcdefghijklmnopqrstuv"))
	assert.True(t, IsHashed("$2y$10$abcdefghijklmnopqrstuv"))
}

func TestVerifyPasswordRejectsGarbageHash(t *testing.T) {
	assert.False(t, VerifyPassword("anything", "not-a-bcrypt-hash"))
}
