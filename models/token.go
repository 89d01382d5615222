package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set carried by every bearer token.
// ID and Email duplicate the subject so that clients decoding the token get
// the same {id, email} pair the API returns.
type TokenClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`

	jwt.RegisteredClaims
}

// Token wraps a signed JWT together with the identity it was issued for.
type Token struct {
	// Token is the underlying JWT. Excluded from JSON serialization because
	// only the compact string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SignedString is the compact JWS representation
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// Identity is the {id, email} pair embedded in the claims.
	Identity Identity `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
