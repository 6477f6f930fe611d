package auth

import (
	"context"
	"strings"
	"time"

	"workhub-service/internal/domain/identity"
	xerrors "workhub-service/internal/pkg/errors"
	"workhub-service/internal/pkg/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// IdentityStore is the persistence surface the auth flow needs.
type IdentityStore interface {
	FindByEmail(ctx context.Context, email string) (*identity.Identity, error)
	FindByID(ctx context.Context, id int64) (*identity.Identity, error)
	FindBySessionToken(ctx context.Context, tok string) (*identity.Identity, error)
	SetSession(ctx context.Context, id int64, tok string) error
	ClearSessionToken(ctx context.Context, id int64) error
	EndSession(ctx context.Context, id int64) error
}

// LoginLimiter throttles credential attempts per source.
type LoginLimiter interface {
	CheckLoginAttempt(ctx context.Context, ip, email string) (bool, int64, error)
	ResetLoginAttempts(ctx context.Context, ip, email string) error
}

// PresenceNotifier pushes presence transitions to connected clients.
type PresenceNotifier interface {
	BroadcastPresence(userID int64, status identity.Presence)
}

type noopNotifier struct{}

func (noopNotifier) BroadcastPresence(int64, identity.Presence) {}

type AuthService struct {
	store    IdentityStore
	tokens   *token.Manager
	limiter  LoginLimiter
	notifier PresenceNotifier
	logger   *zap.Logger
}

func NewAuthService(store IdentityStore, tokens *token.Manager, limiter LoginLimiter, notifier PresenceNotifier, logger *zap.Logger) *AuthService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &AuthService{
		store:    store,
		tokens:   tokens,
		limiter:  limiter,
		notifier: notifier,
		logger:   logger,
	}
}

// Login verifies the credentials, mints a session token and stores it on
// the identity. Unknown email and wrong password are indistinguishable to
// the caller. Issuing a new token displaces any previous session: one live
// session per identity.
func (s *AuthService) Login(ctx context.Context, req identity.LoginRequest) (*identity.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if s.limiter != nil {
		allowed, remaining, err := s.limiter.CheckLoginAttempt(ctx, req.IPAddress, email)
		if err != nil {
			s.logger.Warn("login rate limit check failed", zap.Error(err))
		} else if !allowed {
			s.logger.Warn("login rate limited",
				zap.String("ip", req.IPAddress),
				zap.Int64("remaining", remaining))
			return nil, xerrors.ErrRateLimited
		}
	}

	id, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			// Indistinguishable from a bad password
			return nil, xerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(id.PasswordHash), []byte(req.Password)); err != nil {
		return nil, xerrors.ErrInvalidCredentials
	}

	signed, jti, err := s.tokens.Generator.Generate(id.ID, id.Email, id.RoleID)
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrInternal, "failed to mint session token")
	}

	if err := s.store.SetSession(ctx, id.ID, signed); err != nil {
		return nil, err
	}
	id.Status = identity.StatusOnline

	if s.limiter != nil {
		if err := s.limiter.ResetLoginAttempts(ctx, req.IPAddress, email); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	s.notifier.BroadcastPresence(id.ID, identity.StatusOnline)

	s.logger.Info("login",
		zap.Int64("identity_id", id.ID),
		zap.String("jti", jti))

	return &identity.LoginResponse{
		Token:     signed,
		TokenType: "Bearer",
		ExpiresAt: time.Now().Add(s.tokens.Generator.TTL),
		User:      identity.NewUserView(id),
	}, nil
}

// ResolveToken maps a presented token back to its identity. A token is live
// only if it matches the stored session token AND carries a valid unexpired
// signature. The storage check runs first: a signature-valid token that no
// longer matches the stored one (displaced or logged out) is plain
// unauthenticated, not expired. When the stored token itself has expired,
// the stored copy is cleared so the dead credential cannot linger.
func (s *AuthService) ResolveToken(ctx context.Context, tok string) (*identity.Identity, error) {
	if tok == "" {
		return nil, xerrors.ErrUnauthenticated
	}

	id, err := s.store.FindBySessionToken(ctx, tok)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return nil, xerrors.ErrUnauthenticated
		}
		return nil, err
	}

	claims, err := s.tokens.Verifier.Verify(tok)
	if err != nil {
		if clearErr := s.store.ClearSessionToken(ctx, id.ID); clearErr != nil {
			s.logger.Warn("failed to clear expired session token",
				zap.Int64("identity_id", id.ID), zap.Error(clearErr))
		}
		return nil, xerrors.ErrTokenExpired
	}

	if claims.IdentityID != id.ID {
		return nil, xerrors.ErrUnauthenticated
	}

	return id, nil
}

// Logout ends the identity's session and flips presence offline. Calling it
// with no live session is not an error.
func (s *AuthService) Logout(ctx context.Context, identityID int64) error {
	if err := s.store.EndSession(ctx, identityID); err != nil {
		return err
	}

	s.notifier.BroadcastPresence(identityID, identity.StatusOffline)

	s.logger.Info("logout", zap.Int64("identity_id", identityID))
	return nil
}
