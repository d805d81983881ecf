package config

import (
	"fmt"
	"strconv"
	"strings"
)

func (c *Config) validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("%w: PORT %q", ErrInvalidServerConfigs, c.Port)
	}
	if c.RequestTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: timeouts must be positive", ErrInvalidServerConfigs)
	}

	if c.DB.RawURI == "" && (c.DB.User == "" || c.DB.Pass == "" || c.DB.Host == "") {
		return fmt.Errorf("%w: set DB_URI or DB_USER, DB_PASS and DB_HOST", ErrInvalidDBConfigs)
	}
	if strings.TrimSpace(c.DB.Name) == "" {
		return fmt.Errorf("%w: empty DB_NAME", ErrInvalidDBConfigs)
	}

	if c.Payment.GatewayKey == "" || c.Payment.GatewayURL == "" || c.Payment.Currency == "" {
		return fmt.Errorf("%w: PAYMENT_GATEWAY_KEY is required", ErrInvalidPaymentConfigs)
	}

	if c.Firebase.ProjectID == "" || c.Firebase.CertsURL == "" {
		return fmt.Errorf("%w: FIREBASE_PROJECT_ID is required", ErrInvalidFirebaseConfigs)
	}
	return nil
}
