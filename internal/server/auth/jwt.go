package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/avagulans/inkpost/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Codec signs and verifies stateless access tokens. The secret, the signing
// algorithm and the token validity are fixed at construction time; absence of
// any of them is a startup error, never a runtime one.
type Codec struct {
	secret   []byte
	method   jwt.SigningMethod
	validity time.Duration
}

// NewCodec builds a Codec for the given HMAC algorithm (HS256, HS384 or
// HS512). It fails on an empty secret, an unknown or non-HMAC algorithm, and
// a non-positive validity.
func NewCodec(secret string, algorithm string, validity time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("signing secret must not be empty")
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if validity <= 0 {
		return nil, fmt.Errorf("token validity must be positive, got %v", validity)
	}
	return &Codec{secret: []byte(secret), method: method, validity: validity}, nil
}

// Validity returns the configured token lifetime.
func (c *Codec) Validity() time.Duration {
	return c.validity
}

// Issue copies the caller claims, sets the "exp" claim to now (UTC) plus the
// configured validity, and returns the signed token. The caller map is never
// mutated.
func (c *Codec) Issue(claims map[string]any) (string, error) {
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["exp"] = jwt.NewNumericDate(time.Now().UTC().Add(c.validity))

	token := jwt.NewWithClaims(c.method, mc)
	return token.SignedString(c.secret)
}

// Verify checks the signature and expiry of tokenString and returns its
// claims. Verification is binary: an expired token yields
// common.ErrTokenExpired, any other failure (bad signature, malformed input,
// wrong algorithm) yields common.ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (map[string]any, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{c.method.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
