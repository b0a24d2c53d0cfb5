package auth

import (
	"time"

	"keeper/config"
	"keeper/internal/domain/entity"
	"keeper/internal/domain/service"
	"keeper/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const stateAudience = "keeper-oauth-state"

type stateClaims struct {
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// jwtStateSigner signs OAuth state values as short-lived JWTs so no
// server-side state store is needed between redirect and callback.
type jwtStateSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewStateSigner creates a StateSigner keyed by the session secret.
func NewStateSigner(cfg *config.Config) (service.StateSigner, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("state secret must be provided")
	}
	if cfg.Auth == nil || cfg.Auth.StateTTL <= 0 {
		return nil, errors.New("state ttl must be positive")
	}

	return newStateSigner(cfg.SecretKey.Session, cfg.Auth.StateTTL, time.Now), nil
}

func newStateSigner(secret string, ttl time.Duration, now func() time.Time) *jwtStateSigner {
	return &jwtStateSigner{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

func (s *jwtStateSigner) Sign(provider entity.ProviderType) (string, error) {
	now := s.now()
	claims := stateClaims{
		Provider: provider.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Audience:  jwt.ClaimStrings{stateAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign state")
	}

	return signed, nil
}

func (s *jwtStateSigner) Verify(state string, provider entity.ProviderType) error {
	claims := &stateClaims{}
	_, err := jwt.ParseWithClaims(state, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(stateAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return errors.Wrap(err, "verify state")
	}
	if claims.Provider != provider.String() {
		return errors.Errorf("verify state: issued for %q, got %q", claims.Provider, provider)
	}

	return nil
}
