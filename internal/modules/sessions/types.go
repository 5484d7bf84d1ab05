package sessions

import (
	"fmt"
	"strings"
)

type exchangeDTO struct {
	Token string `json:"token" binding:"required"`
}

type exchangeResponse struct {
	AppID     string `json:"app_id"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

// ClaimsIncompleteError reports every required claim field that could not be
// resolved. It signals a contract breach with the verifier, not a client
// error, so it maps to a 500.
type ClaimsIncompleteError struct {
	Missing []string
}

func (e *ClaimsIncompleteError) Error() string {
	return "privy claims missing required fields: " + strings.Join(e.Missing, ", ")
}

// VerificationError marks a verifier-side fault distinct from bad
// credentials. The cause is kept for logs and never shown to the caller.
type VerificationError struct {
	Cause error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("privy token verification failed: %v", e.Cause)
}

func (e *VerificationError) Unwrap() error { return e.Cause }
