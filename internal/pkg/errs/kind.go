package errs

import "errors"

// Kind is the failure class reported across the application boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindPolicyDenied
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindValidation:
		return "ValidationFailure"
	case KindPolicyDenied:
		return "PolicyDenied"
	default:
		return "Internal"
	}
}

// KindOf classifies err. A nil error and any error outside the package
// taxonomy are reported as KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrPolicyDenied):
		return KindPolicyDenied
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange),
		errors.Is(err, ErrValueIsRequired):
		return KindValidation
	default:
		return KindInternal
	}
}
