package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSignup(t *testing.T) {
	assert.NoError(t, ValidateSignup("player_1", "password1"))
	assert.ErrorIs(t, ValidateSignup("ab", "password1"), ErrUsername)
	assert.ErrorIs(t, ValidateSignup(strings.Repeat("a", 25), "password1"), ErrUsername)
	assert.ErrorIs(t, ValidateSignup("bad name", "password1"), ErrUsername)
	assert.ErrorIs(t, ValidateSignup("player", "short"), ErrPassword)
	assert.Equal(t, "bob", NormalizeUsername("  bob "))
}

func TestPasswordHash(t *testing.T) {
	h, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPassword(h, "correct horse"))
	assert.False(t, CheckPassword(h, "wrong horse"))
}

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner("secret", time.Hour)
	tok, exp, err := s.Sign("id-1", "alice")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	c, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "id-1", c.ID)
	assert.Equal(t, "alice", c.Username)
}

func TestSigner_Rejects(t *testing.T) {
	s := NewSigner("secret", time.Hour)
	tok, _, err := s.Sign("id-1", "alice")
	require.NoError(t, err)

	_, err = NewSigner("other", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewSigner("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Sign("id-1", "alice")
	require.NoError(t, err)
	_, err = s.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, _, err = s.Sign("", "")
	require.NoError(t, err)
	blank, _, _ := s.Sign("", "")
	_, err = s.Parse(blank)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
