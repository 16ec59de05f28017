package jwtx

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string, expected TokenType) (Claims, error)
}

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrWrongType    = errors.New("jwtx: wrong token type")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// HS256Verifier validates tokens minted by HS256Signer.
type HS256Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// VerifierOption tweaks an HS256Verifier.
type VerifierOption func(*HS256Verifier)

// WithLeeway allows small clock skew when checking exp.
func WithLeeway(d time.Duration) VerifierOption {
	return func(v *HS256Verifier) { v.leeway = d }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *HS256Verifier) { v.now = now }
}

// NewVerifierHS256 creates a verifier for the given secret. An empty issuer
// disables the iss check.
func NewVerifierHS256(secret []byte, issuer string, opts ...VerifierOption) (*HS256Verifier, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}

	v := &HS256Verifier{
		secret: append([]byte(nil), secret...),
		issuer: issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Verify checks the signature, then expiry, identity, issuer and type, in
// that order. Every failure wraps exactly one of the package errors. The MAC
// is checked before anything is decoded, so an edit anywhere in a token that
// still has three segments reports ErrInvalidSig.
func (v *HS256Verifier) Verify(tokenStr string, expected TokenType) (Claims, error) {
	if err := v.checkMAC(tokenStr); err != nil {
		return Claims{}, err
	}

	// Time based checks are done below against our own clock.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithoutClaimsValidation(),
	)

	var claims Claims
	token, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, fmt.Errorf("%w: %w", ErrInvalidSig, err)
		default:
			return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}
	if !token.Valid {
		return Claims{}, ErrInvalidSig
	}

	now := v.now().Add(-v.leeway)
	if err := claims.ValidateExpiry(now); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateIdentity(); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateType(expected); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// checkMAC verifies the HMAC over header.payload. The signature must be
// canonical unpadded base64url: non-zero trailing bits in the last character
// are rejected, otherwise several spellings would carry the same MAC.
func (v *HS256Verifier) checkMAC(tokenStr string) error {
	header, rest, ok := strings.Cut(tokenStr, ".")
	if !ok {
		return ErrMalformed
	}
	payload, sigPart, ok := strings.Cut(rest, ".")
	if !ok || strings.Contains(sigPart, ".") {
		return ErrMalformed
	}

	sig, err := base64.RawURLEncoding.Strict().DecodeString(sigPart)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	}
	if err := jwt.SigningMethodHS256.Verify(header+"."+payload, sig, v.secret); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	}
	return nil
}
