package operation

import (
	"errors"
	"strings"
)

// RateLimitMarker is the text an external failure carries when the remote side throttled the call.
const RateLimitMarker = "429"

// DefaultRateLimitMessage is shown for throttled calls unless a form overrides it.
const DefaultRateLimitMessage = "Rate limit exceeded. Please try again later."

var (
	// ErrDisabled is returned when a form is pending or succeeded and cannot accept input.
	ErrDisabled = errors.New("form is disabled")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("form is closed")
	// ErrSignatureUnavailable is returned when a wallet produced no signature.
	ErrSignatureUnavailable = errors.New("signature could not be generated")
	// ErrVerificationFailed is returned when a produced signature does not verify.
	ErrVerificationFailed = errors.New("signature verification failed")
)

// Kind classifies why a submission did not succeed.
type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindRateLimit
	KindOperation
	KindVerification
	KindSignatureUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRateLimit:
		return "rate_limit"
	case KindOperation:
		return "operation"
	case KindVerification:
		return "verification"
	case KindSignatureUnavailable:
		return "signature_unavailable"
	default:
		return "none"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ValidationError is a local precondition failure. It never changes the phase.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid returns a ValidationError carrying the user-facing message.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}

// VerificationError reports a signature that was produced but failed verification.
type VerificationError struct {
	Signer string
}

func (e *VerificationError) Error() string {
	if e.Signer == "" {
		return ErrVerificationFailed.Error()
	}
	return ErrVerificationFailed.Error() + " for " + e.Signer
}

// Unwrap lets errors.Is match ErrVerificationFailed.
func (e *VerificationError) Unwrap() error {
	return ErrVerificationFailed
}

// Messages holds the user-facing failure texts of one form.
type Messages struct {
	// Failure is the generic text for any unclassified failure. Required.
	Failure string
	// RateLimited defaults to DefaultRateLimitMessage.
	RateLimited string
	// SignatureUnavailable defaults to Failure.
	SignatureUnavailable string
	// VerificationFailed defaults to Failure.
	VerificationFailed string
}

// RateLimiter is implemented by errors that know whether the remote side
// throttled the call.
type RateLimiter interface {
	RateLimited() bool
}

// IsRateLimited reports whether err was caused by remote throttling. The first
// RateLimiter in the chain decides. Otherwise only root causes are matched
// against RateLimitMarker: text added while wrapping (addresses, amounts,
// transaction IDs) never counts.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var rl RateLimiter
	if errors.As(err, &rl) {
		return rl.RateLimited()
	}
	return rootContains(err, RateLimitMarker)
}

func rootContains(err error, marker string) bool {
	switch x := err.(type) {
	case interface{ Unwrap() error }:
		if inner := x.Unwrap(); inner != nil {
			return rootContains(inner, marker)
		}
	case interface{ Unwrap() []error }:
		for _, inner := range x.Unwrap() {
			if inner != nil && rootContains(inner, marker) {
				return true
			}
		}
		return false
	}
	return strings.Contains(err.Error(), marker)
}

// Classify maps an external-call failure to its kind and user-facing message.
// Rate limiting wins over every other classification.
func Classify(err error, msgs Messages) (Kind, string) {
	var verr *ValidationError
	switch {
	case err == nil:
		return KindNone, ""
	case errors.As(err, &verr):
		return KindValidation, verr.Message
	case IsRateLimited(err):
		return KindRateLimit, orDefault(msgs.RateLimited, DefaultRateLimitMessage)
	case errors.Is(err, ErrSignatureUnavailable):
		return KindSignatureUnavailable, orDefault(msgs.SignatureUnavailable, msgs.Failure)
	case errors.Is(err, ErrVerificationFailed):
		return KindVerification, orDefault(msgs.VerificationFailed, msgs.Failure)
	default:
		return KindOperation, msgs.Failure
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
