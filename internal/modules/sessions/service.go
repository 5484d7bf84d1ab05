package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/axis-labs/axis-backend/internal/models"
	"github.com/axis-labs/axis-backend/internal/pkg/privy"
	sessionpkg "github.com/axis-labs/axis-backend/internal/pkg/session"
)

// Verifier is the external token verifier collaborator. Credential failures
// must wrap privy.ErrInvalidToken; anything else is a provider fault.
type Verifier interface {
	VerifyAccessToken(ctx context.Context, token string) (any, error)
}

// Service is the sole mutating entry point turning a Privy bearer token into
// a local session.
type Service struct {
	store    Store
	verifier Verifier
	ttl      time.Duration
}

func NewService(store Store, verifier Verifier) *Service {
	return &Service{store: store, verifier: verifier, ttl: sessionpkg.DefaultTTL}
}

// Exchange verifies the token, normalizes its claims, and atomically upserts
// the user, replaces any session bound to the same Privy session id, and
// inserts the new session row. The returned Claims come from the token, the
// SessionModel from the freshly committed row.
//
// Exchanging twice for the same Privy session id is safe: the second call
// deletes the first call's row, so the first session id stops resolving.
func (s *Service) Exchange(ctx context.Context, token string) (*Claims, *models.SessionModel, error) {
	raw, err := s.verifier.VerifyAccessToken(ctx, token)
	if err != nil {
		if errors.Is(err, privy.ErrInvalidToken) {
			return nil, nil, err
		}
		return nil, nil, &VerificationError{Cause: err}
	}

	claims, err := NormalizeClaims(raw)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	created := &models.SessionModel{
		UserID:         claims.UserID,
		PrivySessionID: claims.SessionID,
	}
	created.CreatedAt = now
	created.ExpiresAt = now.Add(s.ttl)

	err = s.store.Transaction(ctx, func(tx Store) error {
		user, err := tx.GetUser(ctx, claims.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			if err := tx.CreateUser(ctx, &models.UserModel{ID: claims.UserID}); err != nil {
				return err
			}
		} else if err := tx.TouchUser(ctx, claims.UserID, now); err != nil {
			return err
		}

		if err := tx.DeleteSessionsByPrivyID(ctx, claims.SessionID); err != nil {
			return err
		}
		return tx.CreateSession(ctx, created)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("persist session exchange: %w", err)
	}
	return claims, created, nil
}

// TTL is the fixed session lifetime used for cookie max-age.
func (s *Service) TTL() time.Duration { return s.ttl }
