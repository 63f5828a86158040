package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHMAC256(t *testing.T) {
	sig := ComputeHMAC256([]byte("hello"), "secret")
	assert.Len(t, sig, 64)
	assert.Equal(t, sig, ComputeHMAC256([]byte("hello"), "secret"))
	assert.NotEqual(t, sig, ComputeHMAC256([]byte("hello"), "other"))
}

func TestVerifyHMAC(t *testing.T) {
	sig := ComputeHMAC256([]byte("payload"), "k")
	assert.True(t, VerifyHMAC("k", []byte("payload"), sig))
	assert.False(t, VerifyHMAC("k", []byte("payload2"), sig))
	assert.False(t, VerifyHMAC("k", []byte("payload"), sig[:10]))
}

func TestSignedValue(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		token := SignValue("session-1", "k")
		value, err := VerifySignedValue(token, "k")
		require.NoError(t, err)
		assert.Equal(t, "session-1", value)
	})

	t.Run("value containing dots", func(t *testing.T) {
		token := SignValue("a.b.c", "k")
		value, err := VerifySignedValue(token, "k")
		require.NoError(t, err)
		assert.Equal(t, "a.b.c", value)
	})

	t.Run("tampered", func(t *testing.T) {
		token := SignValue("session-1", "k")
		_, err := VerifySignedValue(strings.Replace(token, "session-1", "session-2", 1), "k")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("wrong key", func(t *testing.T) {
		_, err := VerifySignedValue(SignValue("x", "k"), "other")
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, token := range []string{"", "nodot", ".sig", "value."} {
			_, err := VerifySignedValue(token, "k")
			assert.ErrorIs(t, err, ErrInvalidSignature, token)
		}
	})
}

func TestRandomHex(t *testing.T) {
	a, err := RandomHex(16)
	require.NoError(t, err)
	b, err := RandomHex(16)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("admin123")
	require.NoError(t, err)
	assert.NotEqual(t, "admin123", hash)
	assert.True(t, CheckPasswordHash("admin123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("admin123", "not-a-hash"))
}
