package email

import "errors"

var (
	// ErrInvalidConfig indicates missing or malformed email configuration.
	ErrInvalidConfig = errors.New("invalid email configuration")

	// ErrInvalidParams indicates send parameters that fail validation.
	ErrInvalidParams = errors.New("invalid email parameters")

	// ErrSendFailed indicates the transport rejected or failed the send.
	ErrSendFailed = errors.New("failed to send email")
)
