/*
Package claims extracts identity hints from a stored session token.

The decoder reads the token's payload segment without verifying its signature
or expiry. The result is a display hint only: it selects which screens and
query filters the client shows, while every privileged operation is still
authorized server-side. It must never be treated as an access-control boundary.
*/
package claims

import (
	"github.com/golang-jwt/jwt/v5"
)

// User role codes carried in the token payload.
const (
	// RoleCustomer marks a regular user; "my orders" are orders they initiated.
	RoleCustomer = 1

	// RoleMerchant marks a merchant; "my orders" are orders they received.
	RoleMerchant = 2
)

// Payload is the decoded token payload. Only the custom identity fields are
// of interest; the registered claims are carried solely so the payload
// satisfies the jwt.Claims interface during parsing.
type Payload struct {
	jwt.RegisteredClaims

	// UserID is the numeric identifier of the session's user.
	UserID int64 `json:"user_id"`

	// UserType is the role code (RoleCustomer or RoleMerchant).
	UserType int `json:"user_type"`
}

// HasIdentity reports whether the payload carries a usable user identifier.
func (p *Payload) HasIdentity() bool {
	return p != nil && p.UserID > 0
}

// IsMerchant reports whether the payload's role code marks a merchant.
func (p *Payload) IsMerchant() bool {
	return p != nil && p.UserType == RoleMerchant
}

// Decode splits the token into its segments, base64-decodes the payload
// segment, and parses it. It returns nil for any malformed input: wrong
// segment count, invalid base64, or an unparsable payload. No signature or
// expiry check is performed; callers must treat nil as "no usable identity".
func Decode(token string) *Payload {
	if token == "" {
		return nil
	}

	payload := &Payload{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, payload); err != nil {
		return nil
	}

	return payload
}
