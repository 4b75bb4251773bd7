package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
)

func TestTokens_RoundTrip(t *testing.T) {
	tk := NewTokens("s3cret", time.Hour)

	raw, err := tk.Issue(42, identity.RoleAdmin)
	require.NoError(t, err)

	caller, err := tk.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, identity.Caller{UserID: 42, Role: identity.RoleAdmin}, caller)
}

func TestTokens_Rejects(t *testing.T) {
	tk := NewTokens("s3cret", time.Hour)
	raw, err := tk.Issue(7, identity.RolePatient)
	require.NoError(t, err)

	_, err = NewTokens("other", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokens("s3cret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = tk.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: 4}
	hash, err := h.Hash([]byte("admin123"))
	require.NoError(t, err)

	assert.NoError(t, h.Compare(hash, []byte("admin123")))
	assert.Error(t, h.Compare(hash, []byte("nope")))
}
