package auth

import (
	"strings"
	"testing"
	"time"

	"keeper/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const testSecret = "test_session_secret_key_very_long_for_testing"

var issuedAt = time.Unix(1_700_000_000, 0)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestNewJWTService(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{TokenTTL: time.Hour}}

	_, err := NewJWTService(cfg)
	require.ErrorContains(t, err, "jwt secret must be provided")

	cfg.SecretKey.Session = testSecret
	svc, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.NotNil(t, svc)

	cfg.Auth.TokenTTL = 0
	_, err = NewJWTService(cfg)
	require.ErrorContains(t, err, "token ttl must be positive")
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := newJWTService(testSecret, 7*24*time.Hour, func() time.Time { return issuedAt })

	token, err := svc.Issue(42, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, issuedAt.Add(7*24*time.Hour), claims.ExpiresAt.Time)
}

func TestJWTService_Expiry(t *testing.T) {
	clock := &fakeClock{t: issuedAt}
	svc := newJWTService(testSecret, time.Hour, clock.Now)

	token, err := svc.Issue(1, "a@example.com")
	require.NoError(t, err)

	clock.t = issuedAt.Add(time.Hour - time.Second)
	_, err = svc.Verify(token)
	require.NoError(t, err, "token must be accepted before expiry")

	clock.t = issuedAt.Add(time.Hour)
	_, err = svc.Verify(token)
	require.ErrorIs(t, err, jwt.ErrTokenExpired, "token must be rejected at expiry")

	clock.t = issuedAt.Add(2 * time.Hour)
	_, err = svc.Verify(token)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_RejectsMalformedAndForeignTokens(t *testing.T) {
	svc := newJWTService(testSecret, time.Hour, func() time.Time { return issuedAt })

	_, err := svc.Verify("clearly-not-a-jwt-token-format")
	assert.Error(t, err)

	other := newJWTService("another-secret", time.Hour, func() time.Time { return issuedAt })
	foreign, err := other.Issue(1, "a@example.com")
	require.NoError(t, err)
	_, err = svc.Verify(foreign)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": 1,
		"iss":    tokenIssuer,
		"exp":    issuedAt.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(none)
	assert.Error(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss": tokenIssuer,
		"exp": issuedAt.Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(noUser)
	assert.ErrorContains(t, err, "missing user id")
}

func TestJWTService_StateTokenIsNotASessionToken(t *testing.T) {
	now := func() time.Time { return issuedAt }
	svc := newJWTService(testSecret, time.Hour, now)
	signer := newStateSigner(testSecret, time.Minute, now)

	state, err := signer.Sign("github")
	require.NoError(t, err)

	_, err = svc.Verify(state)
	assert.Error(t, err)
}

func TestJWTService_RoundTripProperty(t *testing.T) {
	svc := newJWTService(testSecret, time.Hour, func() time.Time { return issuedAt })

	rapid.Check(t, func(t *rapid.T) {
		userID := rapid.Int64Range(1, 1<<53).Draw(t, "userID")
		email := rapid.StringMatching(`[a-z0-9.]{1,16}@[a-z]{1,10}\.(com|org|io)`).Draw(t, "email")

		token, err := svc.Issue(userID, email)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		claims, err := svc.Verify(token)
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if claims.UserID != userID || claims.Email != email {
			t.Fatalf("claims mismatch: got (%d, %q), want (%d, %q)", claims.UserID, claims.Email, userID, email)
		}
	})
}

func TestJWTService_SplicedPayloadProperty(t *testing.T) {
	svc := newJWTService(testSecret, time.Hour, func() time.Time { return issuedAt })

	rapid.Check(t, func(t *rapid.T) {
		victim := rapid.Int64Range(1, 1<<31).Draw(t, "victim")
		attacker := rapid.Int64Range(1, 1<<31).Filter(func(id int64) bool { return id != victim }).Draw(t, "attacker")

		victimToken, err := svc.Issue(victim, "victim@example.com")
		if err != nil {
			t.Fatalf("issue victim: %v", err)
		}
		attackerToken, err := svc.Issue(attacker, "attacker@example.com")
		if err != nil {
			t.Fatalf("issue attacker: %v", err)
		}

		v := strings.Split(victimToken, ".")
		a := strings.Split(attackerToken, ".")
		forged := strings.Join([]string{a[0], v[1], a[2]}, ".")

		if _, err := svc.Verify(forged); err == nil {
			t.Fatalf("forged token for user %d verified with user %d's signature", victim, attacker)
		}
	})
}
