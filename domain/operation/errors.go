package operation

import "errors"

var (
	// ErrInvalidInput indicates the operation payload failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUpstream indicates a dependency (service call or external API) failed.
	ErrUpstream = errors.New("upstream failure")
)

// InputError carries a client-facing validation message.
// errors.Is(err, ErrInvalidInput) reports true for it.
type InputError struct {
	Message string
}

// NewInputError returns an InputError with msg.
func NewInputError(msg string) *InputError {
	return &InputError{Message: msg}
}

func (e *InputError) Error() string {
	return e.Message
}

// Is makes InputError match ErrInvalidInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UpstreamError carries the client-facing message of a dependency failure.
// Error returns only Message; the underlying cause stays reachable through Unwrap.
// errors.Is(err, ErrUpstream) reports true for it.
type UpstreamError struct {
	Message string
	Cause   error
}

// NewUpstreamError returns an UpstreamError with msg and an optional cause.
func NewUpstreamError(msg string, cause error) *UpstreamError {
	return &UpstreamError{Message: msg, Cause: cause}
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// Is makes UpstreamError match ErrUpstream.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
