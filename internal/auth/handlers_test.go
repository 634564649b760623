package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shoplite/backend/internal/role"
	"github.com/shoplite/backend/internal/user"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUsers struct {
	byEmail map[string]*user.User
}

func (s *stubUsers) Create(_ context.Context, u *user.User) error {
	if _, ok := s.byEmail[u.Email]; ok {
		return user.ErrAlreadyExist
	}
	s.byEmail[u.Email] = u
	return nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (s *stubUsers) GetByID(context.Context, string) (*user.User, error) {
	return nil, user.ErrNotFound
}
func (s *stubUsers) List(context.Context) ([]user.User, error)      { return nil, nil }
func (s *stubUsers) Update(context.Context, *user.User, bool) error { return user.ErrNotFound }
func (s *stubUsers) Delete(context.Context, string) (bool, error)   { return false, nil }

type stubRoles struct {
	userRoleID string
}

func (s *stubRoles) GetByName(_ context.Context, name string) (*role.Role, error) {
	if name != "user" {
		return nil, role.ErrNotFound
	}
	return &role.Role{ID: s.userRoleID, RoleName: "user"}, nil
}

func (s *stubRoles) Create(context.Context, *role.Role) error            { return nil }
func (s *stubRoles) GetByID(context.Context, string) (*role.Role, error) { return nil, role.ErrNotFound }
func (s *stubRoles) List(context.Context) ([]role.Role, error)           { return nil, nil }
func (s *stubRoles) Update(context.Context, *role.Role) error            { return role.ErrNotFound }
func (s *stubRoles) Delete(context.Context, string) (bool, error)        { return false, nil }

func newTestRouter(t *testing.T, users user.Repository) (*gin.Engine, *Tokens) {
	t.Helper()
	tokens := NewTokens("test-secret")
	r := gin.New()
	Register(r, users, &stubRoles{userRoleID: uuid.NewString()}, tokens)
	return r, tokens
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedUser(t *testing.T, email, password, roleName string) *user.User {
	t.Helper()
	hash, err := user.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &user.User{
		ID:           uuid.NewString(),
		RoleID:       uuid.NewString(),
		RoleName:     roleName,
		Email:        email,
		PasswordHash: hash,
	}
}

func TestLogin(t *testing.T) {
	u := seedUser(t, "ivan@shop.ru", "secret123", "admin")
	users := &stubUsers{byEmail: map[string]*user.User{u.Email: u}}
	r, tokens := newTestRouter(t, users)

	w := doJSON(t, r, http.MethodPost, "/login", `{"email":"ivan@shop.ru","password":"secret123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		ID    string `json:"id"`
		Role  string `json:"role"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != u.ID || resp.Role != "admin" {
		t.Fatalf("resp=%+v", resp)
	}
	claims, err := tokens.Parse(resp.Token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Subject != u.ID || claims.Role != "admin" {
		t.Fatalf("claims=%+v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	u := seedUser(t, "ivan@shop.ru", "secret123", "user")
	users := &stubUsers{byEmail: map[string]*user.User{u.Email: u}}
	r, _ := newTestRouter(t, users)

	w := doJSON(t, r, http.MethodPost, "/login", `{"email":"ivan@shop.ru","password":"wrong"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	r, _ := newTestRouter(t, &stubUsers{byEmail: map[string]*user.User{}})

	w := doJSON(t, r, http.MethodPost, "/login", `{"email":"nobody@shop.ru","password":"secret123"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
}

func TestRegister(t *testing.T) {
	users := &stubUsers{byEmail: map[string]*user.User{}}
	r, _ := newTestRouter(t, users)

	w := doJSON(t, r, http.MethodPost, "/register", `{"email":"new@shop.ru","password":"secret123","phone":"+79990000000"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	u, ok := users.byEmail["new@shop.ru"]
	if !ok {
		t.Fatalf("user not stored")
	}
	if !user.CheckPassword(u.PasswordHash, "secret123") {
		t.Fatalf("stored hash does not match password")
	}

	// duplicate email
	w = doJSON(t, r, http.MethodPost, "/register", `{"email":"new@shop.ru","password":"other"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d, want 409", w.Code)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	r, _ := newTestRouter(t, &stubUsers{byEmail: map[string]*user.User{}})

	w := doJSON(t, r, http.MethodPost, "/register", `{"email":"new@shop.ru"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", w.Code)
	}
}
