package tokenizer

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the standard claims for a verification session token;
// the session id travels in the subject.
type SessionClaims struct {
	jwt.RegisteredClaims
}
