package identity

import "errors"

// ErrUnauthenticated covers every token verification failure: malformed,
// expired or signature mismatch. The middleware maps it to 401.
var ErrUnauthenticated = errors.New("bearer token could not be verified")
