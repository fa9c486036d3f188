package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute)

	token, err := svc.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue("alice")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTamperedSignature(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute)

	token, err := svc.Issue("alice")
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Validate(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one", 30*time.Minute)
	verifier := NewTokenService("secret-two", 30*time.Minute)

	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateMalformed(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute)

	for _, input := range []string{"", "garbage", "a.b.c", "one.two"} {
		_, err := svc.Validate(input)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", input)
	}
}

// All failure modes must surface as the same sentinel so the boundary
// cannot leak which check failed.
func TestFailuresAreIndistinguishable(t *testing.T) {
	svc := NewTokenService("test-secret", 30*time.Minute)
	expired := NewTokenService("test-secret", -time.Minute)

	expiredToken, err := expired.Issue("alice")
	require.NoError(t, err)
	foreignToken, err := NewTokenService("other", time.Minute).Issue("alice")
	require.NoError(t, err)

	for _, input := range []string{expiredToken, foreignToken, "not-a-token"} {
		_, err := svc.Validate(input)
		assert.Equal(t, ErrInvalidToken, err)
	}
}
