package user

import (
	"context"

	"workhub-service/internal/domain/identity"
	xerrors "workhub-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// UserStore is the persistence surface user management needs.
type UserStore interface {
	List(ctx context.Context) ([]identity.UserSummary, error)
	FindByID(ctx context.Context, id int64) (*identity.Identity, error)
	UpdateStatus(ctx context.Context, id int64, status identity.Presence) error
}

// PresenceNotifier pushes presence transitions to connected clients.
type PresenceNotifier interface {
	BroadcastPresence(userID int64, status identity.Presence)
}

type noopNotifier struct{}

func (noopNotifier) BroadcastPresence(int64, identity.Presence) {}

type UserService struct {
	store    UserStore
	notifier PresenceNotifier
	logger   *zap.Logger
}

func NewUserService(store UserStore, notifier PresenceNotifier, logger *zap.Logger) *UserService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &UserService{store: store, notifier: notifier, logger: logger}
}

// List returns every identity with its role.
func (s *UserService) List(ctx context.Context) ([]identity.UserSummary, error) {
	users, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []identity.UserSummary{}
	}
	return users, nil
}

// Me returns the sanitized view of the calling identity.
func (s *UserService) Me(ctx context.Context, identityID int64) (*identity.UserView, error) {
	id, err := s.store.FindByID(ctx, identityID)
	if err != nil {
		return nil, err
	}
	view := identity.NewUserView(id)
	return &view, nil
}

// UpdateStatus sets an identity's presence. Any authenticated caller may
// update any identity's presence; no capability is required.
func (s *UserService) UpdateStatus(ctx context.Context, id int64, status identity.Presence) error {
	if !status.Valid() {
		return xerrors.Wrap(xerrors.ErrValidation, "invalid status value")
	}

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	s.notifier.BroadcastPresence(id, status)

	s.logger.Info("presence updated",
		zap.Int64("identity_id", id),
		zap.String("status", string(status)))
	return nil
}
