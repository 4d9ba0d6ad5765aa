package errs

import "errors"

// ErrDomainValidation marks entity invariant failures surfaced by command use
// cases. Handlers answer it with 400.
var ErrDomainValidation = errors.New("domain validation error")
