package utils

import (
	"context"
	"crypto/rsa"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go-parcel/config"
	"go-parcel/models"

	"github.com/dgrijalva/jwt-go"
)

const (
	firebaseIssuerPrefix = "https://securetoken.google.com/"
	defaultCertsMaxAge   = time.Hour
	certsFetchTimeout    = 10 * time.Second
)

// firebaseClaims represents the claims of a Firebase ID token
type firebaseClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	jwt.StandardClaims
}

// FirebaseVerifier verifies Firebase ID tokens: RS256 signatures checked
// against Google's published certificates, audience and issuer bound to the
// project. Certificates are cached for the max-age the endpoint returns;
// verification results are never cached.
type FirebaseVerifier struct {
	projectID string
	certsURL  string
	client    *HTTPClient

	mu      sync.RWMutex
	keys    map[string]*rsa.PublicKey
	expires time.Time
}

// NewFirebaseVerifier creates a verifier for the configured project
func NewFirebaseVerifier(cfg config.Firebase) *FirebaseVerifier {
	client := NewHTTPClient()
	client.SetTimeout(certsFetchTimeout)

	return &FirebaseVerifier{
		projectID: cfg.ProjectID,
		certsURL:  cfg.CertsURL,
		client:    client,
	}
}

// Verify checks tokenString and returns the identity it was issued to
func (v *FirebaseVerifier) Verify(ctx context.Context, tokenString string) (models.Identity, error) {
	claims := &firebaseClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodRS256 {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		kid, _ := token.Header["kid"].(string)
		return v.publicKey(ctx, kid)
	})
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return models.Identity{}, ErrInvalidToken
	}

	now := time.Now().Unix()
	switch {
	case !claims.VerifyExpiresAt(now, true):
		return models.Identity{}, fmt.Errorf("%w: missing expiry", ErrInvalidToken)
	case !claims.VerifyAudience(v.projectID, true):
		return models.Identity{}, fmt.Errorf("%w: audience %q", ErrInvalidToken, claims.Audience)
	case !claims.VerifyIssuer(firebaseIssuerPrefix+v.projectID, true):
		return models.Identity{}, fmt.Errorf("%w: issuer %q", ErrInvalidToken, claims.Issuer)
	case claims.Subject == "":
		return models.Identity{}, fmt.Errorf("%w: empty subject", ErrInvalidToken)
	}

	return models.Identity{
		UID:           claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
	}, nil
}

func (v *FirebaseVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	fresh := time.Now().Before(v.expires)
	v.mu.RUnlock()

	if !fresh {
		if err := v.refreshKeys(ctx); err != nil {
			return nil, err
		}
		v.mu.RLock()
		key, ok = v.keys[kid]
		v.mu.RUnlock()
	}

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKeyID, kid)
	}
	return key, nil
}

func (v *FirebaseVerifier) refreshKeys(ctx context.Context) error {
	var certs map[string]string
	resp, err := v.client.R().
		SetContext(ctx).
		SetResult(&certs).
		Get(v.certsURL)
	if err != nil {
		return fmt.Errorf("fetch signing certs: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("fetch signing certs: unexpected status %d", resp.StatusCode())
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, cert := range certs {
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cert))
		if err != nil {
			return fmt.Errorf("parse signing cert %q: %w", kid, err)
		}
		keys[kid] = key
	}

	v.mu.Lock()
	v.keys = keys
	v.expires = time.Now().Add(cacheMaxAge(resp.Header().Get("Cache-Control")))
	v.mu.Unlock()
	return nil
}

// cacheMaxAge reads max-age from a Cache-Control header value
func cacheMaxAge(header string) time.Duration {
	for _, directive := range strings.Split(header, ",") {
		name, value, found := strings.Cut(strings.TrimSpace(directive), "=")
		if !found || !strings.EqualFold(name, "max-age") {
			continue
		}
		if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultCertsMaxAge
}
