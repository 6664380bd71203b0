package matrix

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// SignAssertion signs claims with the shared client secret and returns the
// compact JWS form. Equal claims and secret always produce the same string.
func SignAssertion(claims *Claims, secret string) (string, error) {
	if claims == nil {
		return "", fmt.Errorf("claims are required")
	}
	if secret == "" {
		return "", fmt.Errorf("signing secret is required")
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign client assertion: %w", err)
	}

	return signed, nil
}
