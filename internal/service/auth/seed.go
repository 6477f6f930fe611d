package auth

import (
	"context"
	"fmt"

	"workhub-service/internal/domain/identity"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SeedStore is the surface needed to provision the default accounts.
type SeedStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	RoleByName(ctx context.Context, name string) (*identity.Role, error)
	Create(ctx context.Context, id *identity.Identity) error
}

// SeedConfig controls the default account topology.
type SeedConfig struct {
	Password   string
	MailDomain string
}

// EnsureSeedAccounts provisions one account per role so a fresh deployment
// is usable immediately. Existing accounts are left untouched.
func EnsureSeedAccounts(ctx context.Context, store SeedStore, cfg SeedConfig, logger *zap.Logger) error {
	accounts := []struct {
		name string
		role string
	}{
		{"Admin User", "admin"},
		{"Manager User", "manager"},
		{"Regular User", "user"},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	for _, acc := range accounts {
		email := fmt.Sprintf("%s@%s", acc.role, cfg.MailDomain)

		exists, err := store.ExistsByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to check seed account %s: %w", email, err)
		}
		if exists {
			continue
		}

		role, err := store.RoleByName(ctx, acc.role)
		if err != nil {
			return fmt.Errorf("failed to resolve role %s: %w", acc.role, err)
		}

		id := &identity.Identity{
			Name:         acc.name,
			Email:        email,
			PasswordHash: string(hash),
			RoleID:       role.ID,
		}
		if err := store.Create(ctx, id); err != nil {
			return fmt.Errorf("failed to create seed account %s: %w", email, err)
		}

		logger.Info("seeded account",
			zap.String("email", email),
			zap.String("role", acc.role))
	}

	return nil
}
