package billing

import "errors"

var (
	// ErrMissingSignature indicates the signature header was absent or empty.
	ErrMissingSignature = errors.New("missing billing signature")

	// ErrSignatureMismatch indicates the computed HMAC did not match the header.
	ErrSignatureMismatch = errors.New("billing signature mismatch")

	// ErrSignatureExpired indicates the signed timestamp fell outside the
	// accepted replay window.
	ErrSignatureExpired = errors.New("billing signature timestamp outside accepted window")

	// ErrMalformedPayload indicates the body could not be decoded into an event.
	ErrMalformedPayload = errors.New("malformed billing event payload")

	// ErrMissingSecret indicates the verifier was called without a shared secret.
	ErrMissingSecret = errors.New("billing webhook secret is required")
)

// IsVerificationError reports whether err belongs to the terminal
// client-fault class that must produce a 4xx and never be retried.
func IsVerificationError(err error) bool {
	return errors.Is(err, ErrMissingSignature) ||
		errors.Is(err, ErrSignatureMismatch) ||
		errors.Is(err, ErrSignatureExpired) ||
		errors.Is(err, ErrMalformedPayload)
}
