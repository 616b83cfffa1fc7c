package auth

import "errors"

type Kind int

const (
	KindInvalidCredentials Kind = iota + 1
	KindDuplicateAccount
	KindRegistrationFailed
	KindServiceUnavailable
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindDuplicateAccount:
		return "duplicate_account"
	case KindRegistrationFailed:
		return "registration_failed"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindValidation:
		return "validation_error"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateAccount   = errors.New("duplicate account")
	ErrRegistrationFailed = errors.New("registration failed")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrValidation         = errors.New("validation error")

	// ErrBusy rejects a submission while another one is still pending.
	ErrBusy = errors.New("auth request already pending")
)

// Error is an auth failure whose Message can be shown to the shopper as is.
// errors.Is matches the sentinel of its Kind; a duplicate account also
// matches ErrRegistrationFailed.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidCredentials:
		return e.Kind == KindInvalidCredentials
	case ErrDuplicateAccount:
		return e.Kind == KindDuplicateAccount
	case ErrRegistrationFailed:
		return e.Kind == KindRegistrationFailed || e.Kind == KindDuplicateAccount
	case ErrServiceUnavailable:
		return e.Kind == KindServiceUnavailable
	case ErrValidation:
		return e.Kind == KindValidation
	}
	return false
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// Message extracts the displayable text of err.
func Message(err error) string {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr.Message
	}
	return "An error occurred"
}
