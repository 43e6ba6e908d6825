// Package auth issues and verifies signed access tokens.
//
// Tokens are RSA-signed JWTs bound to a configured issuer and algorithm. The
// private key is needed only to issue; verification uses the public key.
package auth

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/triviaquiz/internal/common"
	"github.com/dmitrijs2005/triviaquiz/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultAlgorithm is used when IssuerConfig.Algorithm is empty.
const DefaultAlgorithm = "RS256"

// Claims are the registered claims plus the subject's email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// AuthToken is returned to a client after a successful login. ExpiresIn is
// the token lifetime in whole seconds.
type AuthToken struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// TokenPayload is what a verified token asserts.
type TokenPayload struct {
	Subject   string
	Email     string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssuerConfig carries PEM-encoded keys and token parameters.
type IssuerConfig struct {
	PrivateKeyPEM []byte
	PublicKeyPEM  []byte
	Issuer        string
	Algorithm     string
	TTL           time.Duration
}

// Verifier checks tokens with a public key.
type Verifier struct {
	publicKey *rsa.PublicKey
	method    *jwt.SigningMethodRSA
	issuer    string
	now       func() time.Time
}

// Issuer signs tokens and can verify its own output.
type Issuer struct {
	*Verifier
	privateKey *rsa.PrivateKey
	ttl        time.Duration
}

// NewVerifier builds a Verifier from a PEM public key.
func NewVerifier(publicKeyPEM []byte, issuer, algorithm string) (*Verifier, error) {
	method, err := signingMethod(algorithm)
	if err != nil {
		return nil, err
	}
	if issuer == "" {
		return nil, errors.New("auth: issuer is required")
	}

	pub, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("auth: parse public key: %w", err)
	}

	return &Verifier{publicKey: pub, method: method, issuer: issuer, now: time.Now}, nil
}

// NewIssuer builds an Issuer from cfg. Non-RSA algorithms are rejected.
func NewIssuer(cfg IssuerConfig) (*Issuer, error) {
	if cfg.TTL <= 0 {
		return nil, errors.New("auth: token ttl must be positive")
	}

	v, err := NewVerifier(cfg.PublicKeyPEM, cfg.Issuer, cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	priv, err := jwt.ParseRSAPrivateKeyFromPEM(cfg.PrivateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("auth: parse private key: %w", err)
	}

	return &Issuer{Verifier: v, privateKey: priv, ttl: cfg.TTL}, nil
}

// Issue signs a token for identity.
func (i *Issuer) Issue(identity *models.Identity) (AuthToken, error) {
	if identity == nil || identity.ID == "" {
		return AuthToken{}, errors.New("auth: identity is required")
	}

	now := i.now()
	token := jwt.NewWithClaims(i.method, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Email: identity.Email,
	})

	signed, err := token.SignedString(i.privateKey)
	if err != nil {
		return AuthToken{}, fmt.Errorf("auth: sign token: %w", err)
	}

	return AuthToken{AccessToken: signed, ExpiresIn: int64(i.ttl / time.Second)}, nil
}

// Verify checks signature, algorithm, issuer and expiry. Expired tokens yield
// common.ErrTokenExpired; any other failure yields common.ErrInvalidToken.
func (v *Verifier) Verify(tokenString string) (*TokenPayload, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return v.publicKey, nil },
		jwt.WithValidMethods([]string{v.method.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	p := &TokenPayload{Subject: claims.Subject, Email: claims.Email, Issuer: claims.Issuer}
	if claims.IssuedAt != nil {
		p.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Time
	}
	return p, nil
}

func signingMethod(alg string) (*jwt.SigningMethodRSA, error) {
	switch alg {
	case "", DefaultAlgorithm:
		return jwt.SigningMethodRS256, nil
	case "RS384":
		return jwt.SigningMethodRS384, nil
	case "RS512":
		return jwt.SigningMethodRS512, nil
	default:
		return nil, fmt.Errorf("auth: unsupported signing algorithm %q", alg)
	}
}
