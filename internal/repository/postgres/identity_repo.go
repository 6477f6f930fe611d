package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workhub-service/internal/domain/identity"
	xerrors "workhub-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IdentityRepository struct {
	db *pgxpool.Pool
}

func NewIdentityRepository(db *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{db: db}
}

const identityColumns = `
	i.id, i.name, i.email, i.password_hash, i.status, i.session_token,
	i.role_id, i.created_at, i.updated_at, r.name
`

func (r *IdentityRepository) findOne(ctx context.Context, where string, arg interface{}) (*identity.Identity, error) {
	query := `
		SELECT ` + identityColumns + `
		FROM identities i
		JOIN roles r ON r.id = i.role_id
		WHERE ` + where

	var id identity.Identity
	var status string
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&id.ID, &id.Name, &id.Email, &id.PasswordHash, &status, &id.SessionToken,
		&id.RoleID, &id.CreatedAt, &id.UpdatedAt, &id.Role.Name,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find identity: %w", err)
	}

	id.Status = identity.Presence(status)
	id.Role.ID = id.RoleID

	perms, err := r.RolePermissions(ctx, id.RoleID)
	if err != nil {
		return nil, err
	}
	id.Role.Permissions = perms

	return &id, nil
}

// FindByEmail retrieves an identity with its role and flattened permission
// set, matching email case-insensitively.
func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (*identity.Identity, error) {
	return r.findOne(ctx, "LOWER(i.email) = LOWER($1)", email)
}

// FindByID retrieves an identity with role and permissions.
func (r *IdentityRepository) FindByID(ctx context.Context, id int64) (*identity.Identity, error) {
	return r.findOne(ctx, "i.id = $1", id)
}

// FindBySessionToken retrieves the identity whose stored token equals the
// presented one. This is the first leg of the dual session check; a miss
// here means the request is unauthenticated regardless of the signature.
func (r *IdentityRepository) FindBySessionToken(ctx context.Context, tok string) (*identity.Identity, error) {
	return r.findOne(ctx, "i.session_token = $1", tok)
}

// RolePermissions returns the flattened permission set granted to a role.
// Unknown capability names in the store are skipped rather than surfaced.
func (r *IdentityRepository) RolePermissions(ctx context.Context, roleID int64) ([]identity.Permission, error) {
	query := `
		SELECT p.name
		FROM role_permissions rp
		JOIN permissions p ON p.id = rp.permission_id
		WHERE rp.role_id = $1
		ORDER BY p.id
	`

	rows, err := r.db.Query(ctx, query, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role permissions: %w", err)
	}
	defer rows.Close()

	var perms []identity.Permission
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		if p, ok := identity.ParsePermission(name); ok {
			perms = append(perms, p)
		}
	}

	return perms, rows.Err()
}

// SetSession stores the freshly issued token and flips presence online.
// Any previously stored token is overwritten: one live session per identity.
func (r *IdentityRepository) SetSession(ctx context.Context, id int64, tok string) error {
	query := `
		UPDATE identities
		SET session_token = $1, status = $2, updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.Exec(ctx, query, tok, identity.StatusOnline, time.Now(), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// ClearSessionToken nulls the stored token without touching presence.
// Used for the expiry revocation side effect.
func (r *IdentityRepository) ClearSessionToken(ctx context.Context, id int64) error {
	query := `UPDATE identities SET session_token = NULL, updated_at = $1 WHERE id = $2`
	_, err := r.db.Exec(ctx, query, time.Now(), id)
	return err
}

// EndSession nulls the stored token and flips presence offline (logout).
func (r *IdentityRepository) EndSession(ctx context.Context, id int64) error {
	query := `
		UPDATE identities
		SET session_token = NULL, status = $1, updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, identity.StatusOffline, time.Now(), id)
	return err
}

// UpdateStatus sets an explicit presence value.
func (r *IdentityRepository) UpdateStatus(ctx context.Context, id int64, status identity.Presence) error {
	query := `UPDATE identities SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.Exec(ctx, query, status, time.Now(), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// List returns all identities with their role names (no permission fan-out).
func (r *IdentityRepository) List(ctx context.Context) ([]identity.UserSummary, error) {
	query := `
		SELECT i.id, i.name, i.email, i.status, r.id, r.name
		FROM identities i
		JOIN roles r ON r.id = i.role_id
		ORDER BY i.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}
	defer rows.Close()

	var users []identity.UserSummary
	for rows.Next() {
		var u identity.UserSummary
		var status string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &status, &u.Role.ID, &u.Role.Name); err != nil {
			return nil, fmt.Errorf("failed to scan identity: %w", err)
		}
		u.Status = identity.Presence(status)
		users = append(users, u)
	}

	return users, rows.Err()
}

// Create provisions a new identity. Unique email violations surface as
// ErrConflict, unknown roles as ErrInvalidReference.
func (r *IdentityRepository) Create(ctx context.Context, id *identity.Identity) error {
	query := `
		INSERT INTO identities (name, email, password_hash, status, role_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		id.Name, id.Email, id.PasswordHash, identity.StatusOffline, id.RoleID,
	).Scan(&id.ID, &id.CreatedAt, &id.UpdatedAt)
	if err != nil {
		return translateError(err)
	}
	id.Status = identity.StatusOffline
	return nil
}

// ExistsByEmail checks if an identity with the email exists.
func (r *IdentityRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM identities WHERE LOWER(email) = LOWER($1))`
	var exists bool
	err := r.db.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}

// RoleByName looks up a role (seed helper).
func (r *IdentityRepository) RoleByName(ctx context.Context, name string) (*identity.Role, error) {
	query := `SELECT id, name FROM roles WHERE name = $1`

	var role identity.Role
	err := r.db.QueryRow(ctx, query, name).Scan(&role.ID, &role.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find role: %w", err)
	}
	return &role, nil
}

// Count returns the total number of identities.
func (r *IdentityRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM identities`).Scan(&n)
	return n, err
}
