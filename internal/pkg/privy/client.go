// Package privy verifies Privy access tokens the way Privy's own SDKs do:
// the app's ES256 verification key is fetched once from the Privy API (or
// supplied directly via config) and tokens are checked locally against it.
package privy

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultAPIURL is the Privy auth API base.
	DefaultAPIURL = "https://auth.privy.io"

	expectedIssuer = "privy.io"
)

// ErrInvalidToken marks a token that failed verification for credential
// reasons (bad signature, expired, wrong issuer or audience). Everything else
// returned by the client is a provider-side fault.
var ErrInvalidToken = errors.New("invalid privy access token")

// AccessTokenClaims is the decoded assertion set of a verified access token.
type AccessTokenClaims struct {
	AppID      string
	UserID     string
	SessionID  string
	Issuer     string
	Expiration time.Time
}

// Config holds the credentials and endpoints for a Client.
type Config struct {
	AppID     string
	AppSecret string
	// VerificationKey is the ES256 public key in PEM form. When empty the
	// client fetches it from the Privy API on first use and caches it.
	VerificationKey string
	// APIURL overrides the Privy API base (tests, proxies).
	APIURL string
	// HTTPClient overrides the client used for key fetching.
	HTTPClient *http.Client
}

// Client verifies Privy access tokens. Construct once at startup and inject;
// it is safe for concurrent use.
type Client struct {
	appID      string
	appSecret  string
	apiURL     string
	httpClient *http.Client

	mu  sync.Mutex
	key *ecdsa.PublicKey
}

// New builds a Client. A configured verification key is parsed eagerly so a
// malformed key fails at startup, not on the first exchange.
func New(cfg Config) (*Client, error) {
	if cfg.AppID == "" || cfg.AppSecret == "" {
		return nil, errors.New("privy credentials are not configured")
	}

	c := &Client{
		appID:      cfg.AppID,
		appSecret:  cfg.AppSecret,
		apiURL:     cfg.APIURL,
		httpClient: cfg.HTTPClient,
	}
	if c.apiURL == "" {
		c.apiURL = DefaultAPIURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	if cfg.VerificationKey != "" {
		key, err := jwtlib.ParseECPublicKeyFromPEM([]byte(cfg.VerificationKey))
		if err != nil {
			return nil, fmt.Errorf("parse privy verification key: %w", err)
		}
		c.key = key
	}
	return c, nil
}

// VerifyAccessToken validates the bearer token and returns its raw claims as
// *AccessTokenClaims. Credential failures wrap ErrInvalidToken; key-fetch and
// provider faults are returned as-is for the caller to classify.
func (c *Client) VerifyAccessToken(ctx context.Context, token string) (any, error) {
	key, err := c.verificationKey(ctx)
	if err != nil {
		return nil, err
	}

	parser := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodES256.Alg()}),
		jwtlib.WithIssuer(expectedIssuer),
		jwtlib.WithAudience(c.appID),
		jwtlib.WithExpirationRequired(),
	)

	parsed, err := parser.ParseWithClaims(token, jwtlib.MapClaims{}, func(*jwtlib.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	mc, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims type", ErrInvalidToken)
	}

	claims := &AccessTokenClaims{AppID: c.appID}
	if sub, err := mc.GetSubject(); err == nil {
		claims.UserID = sub
	}
	if iss, err := mc.GetIssuer(); err == nil {
		claims.Issuer = iss
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		claims.Expiration = exp.Time
	}
	if sid, ok := mc["sid"].(string); ok {
		claims.SessionID = sid
	}
	return claims, nil
}

// verificationKey returns the cached key, fetching it from the Privy API on
// first use.
func (c *Client) verificationKey(ctx context.Context) (*ecdsa.PublicKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.key != nil {
		return c.key, nil
	}

	pem, err := c.fetchVerificationKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch privy verification key: %w", err)
	}
	key, err := jwtlib.ParseECPublicKeyFromPEM([]byte(pem))
	if err != nil {
		return nil, fmt.Errorf("parse fetched privy verification key: %w", err)
	}
	c.key = key
	return key, nil
}

func (c *Client) fetchVerificationKey(ctx context.Context) (string, error) {
	url := fmt.Sprintf("%s/api/v1/apps/%s", c.apiURL, c.appID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.appID, c.appSecret)
	req.Header.Set("privy-app-id", c.appID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("privy api returned status %d", resp.StatusCode)
	}

	var body struct {
		VerificationKey string `json:"verification_key"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.VerificationKey == "" {
		return "", errors.New("privy api response missing verification_key")
	}
	return body.VerificationKey, nil
}
