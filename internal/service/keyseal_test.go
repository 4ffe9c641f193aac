package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeySealer(t *testing.T) {
	k := NewKeySealer("secret")

	sealed, err := k.Seal("sk-abc123")
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "sk-abc123")

	again, err := k.Seal("sk-abc123")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "fresh nonce per seal")

	plain, err := k.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "sk-abc123", plain)

	_, err = NewKeySealer("other").Open(sealed)
	assert.Error(t, err)

	sealed[len(sealed)-1] ^= 0xff
	_, err = k.Open(sealed)
	assert.Error(t, err)

	_, err = k.Open([]byte("short"))
	assert.Error(t, err)
}
