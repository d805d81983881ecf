package config

import "errors"

// Validation errors returned by Load
var (
	ErrInvalidServerConfigs   = errors.New("invalid server configuration")
	ErrInvalidDBConfigs       = errors.New("invalid database configuration")
	ErrInvalidPaymentConfigs  = errors.New("invalid payment gateway configuration")
	ErrInvalidFirebaseConfigs = errors.New("invalid firebase configuration")
)
