package types

import "errors"

var (
	ErrUnsupportedFormat  = errors.New("unsupported report format")
	ErrUnknownDataset     = errors.New("unknown dataset")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrInvalidFilter      = errors.New("invalid table filter")
	ErrUnknownUserType    = errors.New("unknown user type")
	ErrMissingRecipient   = errors.New("please enter an email address")
	ErrInvalidRecipient   = errors.New("please enter a valid email address")
	ErrMissingCredentials = errors.New("please enter both email and password")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrIncompleteForm     = errors.New("please fill in all fields")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrAccountExists      = errors.New("an account with this email already exists")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrRelayRejected      = errors.New("mail relay rejected the request")
)
