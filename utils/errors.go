package utils

import "errors"

var (
	// ErrInvalidToken is returned for any bearer token that fails verification.
	ErrInvalidToken = errors.New("invalid id token")
	// ErrUnknownKeyID is returned when a token names a signing key that is not published.
	ErrUnknownKeyID = errors.New("unknown signing key id")
	// ErrInvalidAmount is returned for charge amounts that are not positive.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrGateway is returned when the payment processor rejects a request.
	ErrGateway = errors.New("payment gateway error")
)
