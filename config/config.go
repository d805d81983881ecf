// Package config loads the service configuration from the environment.
//
// A .env file in the working directory is loaded first when present; real
// environment variables always win over it. Values are then mapped onto
// [Config] through the `env` and `envPrefix` struct tags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the top-level configuration of the parcel API
type Config struct {
	// Port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"5000"`

	// RequestTimeout bounds each store call made while serving a request.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	// ShutdownTimeout bounds graceful shutdown of the HTTP server.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// LogLevel is a zerolog level name.
	LogLevel string `env:"LOG_LEVEL" envDefault:"debug"`

	DB       DB       `envPrefix:"DB_"`
	Payment  Payment  `envPrefix:"PAYMENT_"`
	Firebase Firebase `envPrefix:"FIREBASE_"`
	Email    Email
}

// DB holds the MongoDB connection settings
type DB struct {
	// RawURI, when set, is used as-is and the credential fields are ignored.
	RawURI         string        `env:"URI"`
	User           string        `env:"USER"`
	Pass           string        `env:"PASS"`
	Host           string        `env:"HOST" envDefault:"cluster0.mk63pzz.mongodb.net"`
	Name           string        `env:"NAME" envDefault:"parcelDB"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s"`
}

// Payment holds the payment gateway settings
type Payment struct {
	GatewayKey string `env:"GATEWAY_KEY"`
	GatewayURL string `env:"GATEWAY_URL" envDefault:"https://api.stripe.com"`
	Currency   string `env:"CURRENCY" envDefault:"usd"`
}

// Firebase holds the identity provider settings
type Firebase struct {
	ProjectID string `env:"PROJECT_ID"`
	CertsURL  string `env:"CERTS_URL" envDefault:"https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"`
}

// Email holds the receipt mailer settings. Receipts are off when APIToken is empty.
type Email struct {
	APIToken string `env:"POSTMARK_API_TOKEN"`
	Sender   string `env:"EMAIL_SENDER"`
}

// URI returns the MongoDB connection string
func (d DB) URI() string {
	if d.RawURI != "" {
		return d.RawURI
	}

	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     d.Host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority&appName=Cluster0",
	}
	return u.String()
}

// Load reads the optional .env file and the environment into a validated
// Config. envFiles defaults to ".env". The returned bool reports whether a
// .env file was found.
func Load(envFiles ...string) (*Config, bool, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	found := true
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, false, fmt.Errorf("error loading env file: %w", err)
		}
		found = false
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, found, fmt.Errorf("error getting env configs: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, found, err
	}
	return cfg, found, nil
}
