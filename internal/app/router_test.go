package app

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"workhub-service/internal/domain/identity"
	"workhub-service/internal/domain/job"
	"workhub-service/internal/domain/task"
	authHandler "workhub-service/internal/handlers/auth"
	jobHandler "workhub-service/internal/handlers/job"
	reportHandler "workhub-service/internal/handlers/report"
	taskHandler "workhub-service/internal/handlers/task"
	userHandler "workhub-service/internal/handlers/user"
	wsHandler "workhub-service/internal/handlers/websocket"
	"workhub-service/internal/middleware"
	xerrors "workhub-service/internal/pkg/errors"
	"workhub-service/internal/pkg/token"
	authUsecase "workhub-service/internal/service/auth"
	jobUsecase "workhub-service/internal/service/job"
	reportUsecase "workhub-service/internal/service/report"
	taskUsecase "workhub-service/internal/service/task"
	userUsecase "workhub-service/internal/service/user"
	"workhub-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ---------- fakes ----------

type fakeIdentityStore struct {
	identities map[int64]*identity.Identity
}

func (f *fakeIdentityStore) FindByEmail(_ context.Context, email string) (*identity.Identity, error) {
	for _, id := range f.identities {
		if strings.EqualFold(id.Email, email) {
			cp := *id
			return &cp, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeIdentityStore) FindByID(_ context.Context, id int64) (*identity.Identity, error) {
	if found, ok := f.identities[id]; ok {
		cp := *found
		return &cp, nil
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeIdentityStore) FindBySessionToken(_ context.Context, tok string) (*identity.Identity, error) {
	for _, id := range f.identities {
		if id.SessionToken.Valid && id.SessionToken.String == tok {
			cp := *id
			return &cp, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeIdentityStore) SetSession(_ context.Context, id int64, tok string) error {
	found, ok := f.identities[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	found.SessionToken = sql.NullString{String: tok, Valid: true}
	found.Status = identity.StatusOnline
	return nil
}

func (f *fakeIdentityStore) ClearSessionToken(_ context.Context, id int64) error {
	if found, ok := f.identities[id]; ok {
		found.SessionToken = sql.NullString{}
	}
	return nil
}

func (f *fakeIdentityStore) EndSession(_ context.Context, id int64) error {
	if found, ok := f.identities[id]; ok {
		found.SessionToken = sql.NullString{}
		found.Status = identity.StatusOffline
	}
	return nil
}

func (f *fakeIdentityStore) List(_ context.Context) ([]identity.UserSummary, error) {
	var users []identity.UserSummary
	for _, id := range f.identities {
		users = append(users, identity.UserSummary{
			ID: id.ID, Name: id.Name, Email: id.Email, Status: id.Status,
			Role: identity.RoleView{ID: id.Role.ID, Name: id.Role.Name},
		})
	}
	return users, nil
}

func (f *fakeIdentityStore) UpdateStatus(_ context.Context, id int64, status identity.Presence) error {
	found, ok := f.identities[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	found.Status = status
	return nil
}

type fakeTaskStore struct {
	tasks  map[int64]*task.Task
	nextID int64
}

func (f *fakeTaskStore) List(_ context.Context, filter task.ListFilter) ([]task.Task, error) {
	var out []task.Task
	for _, t := range f.tasks {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.AssignedTo > 0 && t.AssignedToID != filter.AssignedTo {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTaskStore) FindByID(_ context.Context, id int64) (*task.Task, error) {
	if t, ok := f.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeTaskStore) Create(_ context.Context, t *task.Task) error {
	f.nextID++
	t.ID = f.nextID
	t.AssignedTo = task.UserRef{ID: t.AssignedToID}
	t.CreatedBy = task.UserRef{ID: t.CreatedByID}
	cp := *t
	f.tasks[t.ID] = &cp
	return nil
}

func (f *fakeTaskStore) Update(_ context.Context, id int64, req task.UpdateTaskRequest) (*task.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	cp := *t
	return &cp, nil
}

type fakeJobStore struct {
	jobs       map[int64]*job.Job
	applicants map[int64]*job.Applicant
	nextJob    int64
	nextApp    int64
}

func (f *fakeJobStore) List(_ context.Context, status string) ([]job.Job, error) {
	var out []job.Job
	for _, j := range f.jobs {
		if status != "" && j.Status != status {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

func (f *fakeJobStore) FindWithApplicants(_ context.Context, id int64) (*job.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *j
	for _, a := range f.applicants {
		if a.AppliedJobID == id {
			cp.Applicants = append(cp.Applicants, *a)
		}
	}
	return &cp, nil
}

func (f *fakeJobStore) Create(_ context.Context, j *job.Job) error {
	f.nextJob++
	j.ID = f.nextJob
	cp := *j
	f.jobs[j.ID] = &cp
	return nil
}

func (f *fakeJobStore) CreateApplicant(_ context.Context, a *job.Applicant) error {
	if _, ok := f.jobs[a.AppliedJobID]; !ok {
		return xerrors.ErrInvalidReference
	}
	for _, existing := range f.applicants {
		if existing.Email == a.Email {
			return xerrors.ErrConflict
		}
	}
	f.nextApp++
	a.ID = f.nextApp
	cp := *a
	f.applicants[a.ID] = &cp
	return nil
}

func (f *fakeJobStore) ListApplicants(_ context.Context) ([]job.Applicant, error) {
	var out []job.Applicant
	for _, a := range f.applicants {
		out = append(out, *a)
	}
	return out, nil
}

type fakeCounters struct{}

func (fakeCounters) CountUsers(context.Context) (int64, error)                 { return 3, nil }
func (fakeCounters) CountTasks(context.Context) (int64, error)                 { return 0, nil }
func (fakeCounters) CountTasksByStatus(context.Context, string) (int64, error) { return 0, nil }
func (fakeCounters) CountJobs(context.Context) (int64, error)                  { return 0, nil }
func (fakeCounters) CountJobsByStatus(context.Context, string) (int64, error)  { return 0, nil }
func (fakeCounters) CountApplicants(context.Context) (int64, error)            { return 0, nil }

// ---------- harness ----------

type testEnv struct {
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()

	mgr, err := token.NewManager(token.Config{Secret: "test-secret", Issuer: "workhub", TTL: time.Hour})
	if err != nil {
		t.Fatalf("failed to build token manager: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	roles := map[string]identity.Role{
		"admin":   {ID: 1, Name: "admin", Permissions: identity.AllPermissions()},
		"manager": {ID: 2, Name: "manager", Permissions: []identity.Permission{identity.PermManageTasks, identity.PermManageJobs, identity.PermReviewApplicants, identity.PermViewReports}},
		"user":    {ID: 3, Name: "user", Permissions: []identity.Permission{identity.PermViewReports}},
	}

	identityStore := &fakeIdentityStore{identities: map[int64]*identity.Identity{}}
	for i, name := range []string{"admin", "manager", "user"} {
		role := roles[name]
		id := int64(i + 1)
		identityStore.identities[id] = &identity.Identity{
			ID: id, Name: name, Email: name + "@workhub.local",
			PasswordHash: string(hash), Status: identity.StatusOffline,
			RoleID: role.ID, Role: role,
		}
	}

	taskStore := &fakeTaskStore{tasks: map[int64]*task.Task{}}
	jobStore := &fakeJobStore{jobs: map[int64]*job.Job{}, applicants: map[int64]*job.Applicant{}}

	hub := websocket.NewHub(logger)
	go hub.Run(context.Background())

	authService := authUsecase.NewAuthService(identityStore, mgr, nil, hub, logger)
	userService := userUsecase.NewUserService(identityStore, hub, logger)
	taskService := taskUsecase.NewTaskService(taskStore, logger)
	jobService := jobUsecase.NewJobService(jobStore, logger)
	reportService := reportUsecase.NewReportService(fakeCounters{}, nil, logger)

	r := gin.New()
	SetupRouter(r, &Handlers{
		AuthHandler:    authHandler.NewAuthHandler(authService, logger),
		UserHandler:    userHandler.NewUserHandler(userService, logger),
		TaskHandler:    taskHandler.NewTaskHandler(taskService, logger),
		JobHandler:     jobHandler.NewJobHandler(jobService, logger),
		ReportHandler:  reportHandler.NewReportHandler(reportService, logger),
		WSHandler:      wsHandler.NewWebSocketHandler(hub, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(authService),
	})

	return &testEnv{router: r}
}

func (e *testEnv) do(method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()

	w := e.do(http.MethodPost, "/api/login", "", gin.H{
		"email": email, "password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status = %d: %s", email, w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if resp.Data.Token == "" {
		t.Fatal("login returned no token")
	}
	return resp.Data.Token
}

// ---------- tests ----------

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	if w := env.do(http.MethodGet, "/healthz", "", nil); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestLoginBadPassword(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodPost, "/api/login", "", gin.H{
		"email": "admin@workhub.local", "password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestUserListRequiresManageUsers(t *testing.T) {
	env := newTestEnv(t)

	if w := env.do(http.MethodGet, "/api/users", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status = %d, want 401", w.Code)
	}

	userTok := env.login(t, "user@workhub.local")
	if w := env.do(http.MethodGet, "/api/users", userTok, nil); w.Code != http.StatusForbidden {
		t.Fatalf("user role: status = %d, want 403", w.Code)
	}

	managerTok := env.login(t, "manager@workhub.local")
	if w := env.do(http.MethodGet, "/api/users", managerTok, nil); w.Code != http.StatusForbidden {
		t.Fatalf("manager role: status = %d, want 403", w.Code)
	}

	adminTok := env.login(t, "admin@workhub.local")
	if w := env.do(http.MethodGet, "/api/users", adminTok, nil); w.Code != http.StatusOK {
		t.Fatalf("admin role: status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestTaskCreateRequiresManageTasks(t *testing.T) {
	env := newTestEnv(t)

	body := gin.H{
		"title":       "Quarterly report",
		"description": "Compile the quarterly numbers",
		"assigned_to": 3,
		"due_date":    time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}

	userTok := env.login(t, "user@workhub.local")
	if w := env.do(http.MethodPost, "/api/tasks", userTok, body); w.Code != http.StatusForbidden {
		t.Fatalf("user role: status = %d, want 403", w.Code)
	}

	managerTok := env.login(t, "manager@workhub.local")
	w := env.do(http.MethodPost, "/api/tasks", managerTok, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("manager role: status = %d, want 201: %s", w.Code, w.Body.String())
	}
}

func TestTaskUpdateAuthedOnly(t *testing.T) {
	env := newTestEnv(t)

	managerTok := env.login(t, "manager@workhub.local")
	w := env.do(http.MethodPost, "/api/tasks", managerTok, gin.H{
		"title":       "Ship release",
		"description": "Cut and ship the next release",
		"assigned_to": 3,
		"due_date":    time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d: %s", w.Code, w.Body.String())
	}

	// Plain user can move their task along without manage_tasks
	userTok := env.login(t, "user@workhub.local")
	w = env.do(http.MethodPut, "/api/tasks/1", userTok, gin.H{"status": "in_progress"})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d, want 200: %s", w.Code, w.Body.String())
	}

	if w := env.do(http.MethodPut, "/api/tasks/1", "", gin.H{"status": "completed"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous update: status = %d, want 401", w.Code)
	}
}

func TestJobsPublicListAndApply(t *testing.T) {
	env := newTestEnv(t)

	if w := env.do(http.MethodGet, "/api/jobs", "", nil); w.Code != http.StatusOK {
		t.Fatalf("public list: status = %d, want 200", w.Code)
	}

	managerTok := env.login(t, "manager@workhub.local")
	w := env.do(http.MethodPost, "/api/jobs", managerTok, gin.H{
		"title":       "Backend engineer",
		"description": "Build and run our services",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create job: status = %d: %s", w.Code, w.Body.String())
	}

	apply := gin.H{
		"name":             "Jane Doe",
		"email":            "jane@example.com",
		"skills":           "Go, Postgres, Redis",
		"experience_years": 4,
		"applied_job_id":   1,
	}
	if w := env.do(http.MethodPost, "/api/job-seekers", "", apply); w.Code != http.StatusCreated {
		t.Fatalf("apply: status = %d: %s", w.Code, w.Body.String())
	}

	// Applicant emails are unique across postings
	if w := env.do(http.MethodPost, "/api/job-seekers", "", apply); w.Code != http.StatusConflict {
		t.Fatalf("duplicate apply: status = %d, want 409", w.Code)
	}

	// Reviewing applicants needs review_applicants
	userTok := env.login(t, "user@workhub.local")
	if w := env.do(http.MethodGet, "/api/jobs/1/applicants", userTok, nil); w.Code != http.StatusForbidden {
		t.Fatalf("user review: status = %d, want 403", w.Code)
	}
	if w := env.do(http.MethodGet, "/api/jobs/1/applicants", managerTok, nil); w.Code != http.StatusOK {
		t.Fatalf("manager review: status = %d, want 200", w.Code)
	}
}

func TestDashboardVisibleToAllRoles(t *testing.T) {
	env := newTestEnv(t)

	for _, email := range []string{"admin@workhub.local", "manager@workhub.local", "user@workhub.local"} {
		tok := env.login(t, email)
		if w := env.do(http.MethodGet, "/api/reports/dashboard", tok, nil); w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want 200", email, w.Code)
		}
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	env := newTestEnv(t)

	tok := env.login(t, "admin@workhub.local")

	if w := env.do(http.MethodGet, "/api/users/me", tok, nil); w.Code != http.StatusOK {
		t.Fatalf("me before logout: status = %d, want 200", w.Code)
	}

	if w := env.do(http.MethodPost, "/api/logout", tok, nil); w.Code != http.StatusOK {
		t.Fatalf("logout: status = %d, want 200", w.Code)
	}

	if w := env.do(http.MethodGet, "/api/users/me", tok, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout: status = %d, want 401", w.Code)
	}
}

func TestUpdateStatusAuthedOnly(t *testing.T) {
	env := newTestEnv(t)

	if w := env.do(http.MethodPut, "/api/users/2/status", "", gin.H{"status": "away"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: status = %d, want 401", w.Code)
	}

	tok := env.login(t, "user@workhub.local")
	if w := env.do(http.MethodPut, "/api/users/2/status", tok, gin.H{"status": "away"}); w.Code != http.StatusOK {
		t.Fatalf("authed: status = %d, want 200", w.Code)
	}

	if w := env.do(http.MethodPut, "/api/users/2/status", tok, gin.H{"status": "bogus"}); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid status: status = %d, want 400", w.Code)
	}
}
