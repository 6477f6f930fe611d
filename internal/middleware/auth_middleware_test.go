package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"workhub-service/internal/domain/identity"
	xerrors "workhub-service/internal/pkg/errors"
	"workhub-service/internal/pkg/token"
	"workhub-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubStore struct {
	identities map[string]*identity.Identity // keyed by session token
}

func (s *stubStore) FindByEmail(context.Context, string) (*identity.Identity, error) {
	return nil, xerrors.ErrNotFound
}

func (s *stubStore) FindByID(context.Context, int64) (*identity.Identity, error) {
	return nil, xerrors.ErrNotFound
}

func (s *stubStore) FindBySessionToken(_ context.Context, tok string) (*identity.Identity, error) {
	if id, ok := s.identities[tok]; ok {
		return id, nil
	}
	return nil, xerrors.ErrNotFound
}

func (s *stubStore) SetSession(context.Context, int64, string) error { return nil }
func (s *stubStore) ClearSessionToken(context.Context, int64) error  { return nil }
func (s *stubStore) EndSession(context.Context, int64) error         { return nil }

func newTestRouter(t *testing.T, perms []identity.Permission) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mgr, err := token.NewManager(token.Config{Secret: "test-secret", Issuer: "workhub", TTL: time.Hour})
	if err != nil {
		t.Fatalf("failed to build token manager: %v", err)
	}

	signed, _, err := mgr.Generator.Generate(1, "admin@workhub.local", 1)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}

	store := &stubStore{identities: map[string]*identity.Identity{
		signed: {
			ID:           1,
			Email:        "admin@workhub.local",
			SessionToken: sql.NullString{String: signed, Valid: true},
			RoleID:       1,
			Role:         identity.Role{ID: 1, Name: "test", Permissions: perms},
		},
	}}

	svc := auth.NewAuthService(store, mgr, nil, nil, zap.NewNop())
	authMW := NewAuthMiddleware(svc)

	r := gin.New()
	r.GET("/open", authMW.Auth(), func(c *gin.Context) {
		id := MustGetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": id.ID})
	})
	r.GET("/gated", append(
		authMW.WithPermission(identity.PermManageUsers, identity.PermManageTasks),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)...)

	return r, signed
}

func doRequest(r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMissingToken(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	if w := doRequest(r, "/open", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthGarbageToken(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	if w := doRequest(r, "/open", "not-a-token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthValidToken(t *testing.T) {
	r, tok := newTestRouter(t, nil)

	if w := doRequest(r, "/open", tok); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestAuthQueryParamFallback(t *testing.T) {
	r, tok := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/open?token="+tok, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRequirePermissionDenied(t *testing.T) {
	r, tok := newTestRouter(t, []identity.Permission{identity.PermViewReports})

	if w := doRequest(r, "/gated", tok); w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestRequirePermissionAnyOf(t *testing.T) {
	// Holding just one of the route's permissions is enough
	r, tok := newTestRouter(t, []identity.Permission{identity.PermManageTasks})

	if w := doRequest(r, "/gated", tok); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRequirePermissionNoPermissions(t *testing.T) {
	r, tok := newTestRouter(t, nil)

	if w := doRequest(r, "/gated", tok); w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}
