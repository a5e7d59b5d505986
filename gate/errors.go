package gate

import "errors"

// ErrUnauthorized is returned by Gate.Authorize when the subject is missing,
// has no profile, or the profile lacks the requested permission.
var ErrUnauthorized = errors.New("unauthorized")
