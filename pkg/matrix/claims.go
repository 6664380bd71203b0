package matrix

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AssertionAudience is the audience of every client assertion. The token
// endpoint only accepts the production URL here, whatever host is called.
const AssertionAudience = "https://api.careerbuilder.com/oauth/token"

// AssertionLifetime is how long a client assertion stays valid.
const AssertionLifetime = 30 * time.Minute

// Claims is the payload of a JWT-bearer client assertion.
//
// The audience is serialized as a single string rather than the array form
// jwt.RegisteredClaims produces, matching what the token endpoint expects.
type Claims struct {
	Issuer    string           `json:"iss"`
	Subject   string           `json:"sub"`
	Audience  string           `json:"aud"`
	ExpiresAt *jwt.NumericDate `json:"exp"`
}

var _ jwt.Claims = (*Claims)(nil)

// BuildClaims creates the assertion claims for clientID, expiring
// AssertionLifetime after now (whole seconds).
func BuildClaims(clientID string, now time.Time) *Claims {
	return &Claims{
		Issuer:    clientID,
		Subject:   clientID,
		Audience:  AssertionAudience,
		ExpiresAt: jwt.NewNumericDate(now.Add(AssertionLifetime).Truncate(time.Second)),
	}
}

func (c *Claims) GetExpirationTime() (*jwt.NumericDate, error) { return c.ExpiresAt, nil }
func (c *Claims) GetIssuedAt() (*jwt.NumericDate, error)       { return nil, nil }
func (c *Claims) GetNotBefore() (*jwt.NumericDate, error)      { return nil, nil }
func (c *Claims) GetIssuer() (string, error)                   { return c.Issuer, nil }
func (c *Claims) GetSubject() (string, error)                  { return c.Subject, nil }

func (c *Claims) GetAudience() (jwt.ClaimStrings, error) {
	if c.Audience == "" {
		return nil, nil
	}
	return jwt.ClaimStrings{c.Audience}, nil
}
