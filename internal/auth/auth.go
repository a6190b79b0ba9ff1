// Package auth holds the bearer credential issued by the identity provider.
// The CLI never mints or validates tokens itself; it only stores one and
// attaches it to analysis requests.
package auth

import "context"

// EnvToken is the environment variable that overrides the stored credential.
const EnvToken = "TRUSTLENS_API_TOKEN"

// TokenSource is the identity-provider surface the analysis flow consumes:
// whether a session is active, and the current credential.
type TokenSource interface {
	// Active reports whether an authenticated session exists.
	Active() bool
	// Token returns the current bearer credential.
	Token(ctx context.Context) (string, error)
}
