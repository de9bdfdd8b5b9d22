package ports

import "time"

// Tokenizer converts between session identity and opaque tokens. Only the
// development backend mints tokens; the client treats them as opaque strings.
type Tokenizer interface {
	SessionToToken(sessionID string, expiresAt time.Time) (string, error)

	// TokenToSessionID validates the token and returns the session id it
	// was minted for.
	TokenToSessionID(token string) (string, error)
}
