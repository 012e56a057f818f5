package auth

import (
	"strings"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	for _, pw := range []string{"pw", "correct horse battery staple", "ünïcødé", " "} {
		hash, err := h.Hash(pw)
		require.NoError(t, err)

		assert.True(t, h.Verify(pw, hash), "own password must verify")
		assert.False(t, h.Verify(pw+"x", hash), "different password must not verify")
	}
}

func TestBcryptHasher_Salted(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("same", a))
	assert.True(t, h.Verify("same", b))
}

func TestBcryptHasher_MalformedHashDoesNotMatch(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	assert.False(t, h.Verify("pw", ""))
	assert.False(t, h.Verify("pw", "not-a-hash"))
	assert.False(t, h.Verify("pw", "$2a$10$short"))
}

func TestBcryptHasher_CostClamped(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(1).Cost())
	assert.Equal(t, bcrypt.MaxCost, NewBcryptHasher(99).Cost())
	assert.Equal(t, DefaultHashCost, NewBcryptHasher(DefaultHashCost).Cost())

	h := NewBcryptHasher(5)
	hash, err := h.Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)
}

func TestBcryptHasher_TooLong(t *testing.T) {
	t.Parallel()

	_, err := NewBcryptHasher(bcrypt.MinCost).Hash(strings.Repeat("a", MaxPasswordBytes+1))
	require.Error(t, err)

	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.Equal(t, "AUTH_PASSWORD_TOO_LONG", oopsErr.Code())
}
