package teaser

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "visionnaires/teaser"

var ErrTokenProject = errors.New("token issued for another project")

type downloadClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Tokens issues and checks the short-lived proof that the email step was
// completed for a project.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) Issue(projectID, email string) (string, error) {
	now := t.now().UTC()
	claims := downloadClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   projectID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Email: email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify checks the token's signature and expiry and that it was issued
// for projectID.
func (t *Tokens) Verify(token, projectID string) error {
	claims := &downloadClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return fmt.Errorf("parse download token: %w", err)
	}
	if claims.Subject != projectID {
		return ErrTokenProject
	}
	return nil
}
