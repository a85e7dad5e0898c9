package auth

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasherGenerateSalt(t *testing.T) {
	h := NewBcryptHasher(4)
	hexRe := regexp.MustCompile(`^[0-9a-f]{64}$`)

	a, err := h.GenerateSalt()
	require.NoError(t, err)
	b, err := h.GenerateSalt()
	require.NoError(t, err)

	assert.Regexp(t, hexRe, a)
	assert.Regexp(t, hexRe, b)
	assert.NotEqual(t, a, b)
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptHasher(4)
	salt, err := h.GenerateSalt()
	require.NoError(t, err)

	hash, err := h.Hash(salt, "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.NoError(t, h.Compare(hash, salt, "hunter22"))
	assert.Error(t, h.Compare(hash, salt, "hunter23"))

	otherSalt, err := h.GenerateSalt()
	require.NoError(t, err)
	assert.Error(t, h.Compare(hash, otherSalt, "hunter22"))
}

func TestBcryptHasherLongPassword(t *testing.T) {
	// The SHA256 pre-hash keeps inputs under bcrypt's 72-byte limit, so
	// every character of a long passphrase still matters.
	h := NewBcryptHasher(4)
	salt, err := h.GenerateSalt()
	require.NoError(t, err)

	long := strings.Repeat("correct horse battery staple ", 5)
	hash, err := h.Hash(salt, long)
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, salt, long))
	assert.Error(t, h.Compare(hash, salt, long+"x"))
}
