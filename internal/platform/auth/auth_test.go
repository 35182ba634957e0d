package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type mockUserRepo struct {
	byName map[string]*User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byName: make(map[string]*User)}
}

func (m *mockUserRepo) Create(_ context.Context, u *User) error {
	if _, ok := m.byName[u.Username]; ok {
		return fmt.Errorf("duplicate username")
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.byName[u.Username] = u
	return nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*User, error) {
	u, ok := m.byName[username]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return u, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	for _, u := range m.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (m *mockUserRepo) List(_ context.Context, limit, offset int) ([]*User, int, error) {
	var out []*User
	for _, u := range m.byName {
		out = append(out, u)
	}
	return out, len(out), nil
}

func TestNewUser(t *testing.T) {
	u, err := NewUser("carla", "s3cret-pass", "")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if u.Role != "staff" {
		t.Errorf("default role = %q, want staff", u.Role)
	}
	if !CheckPassword(u.PasswordHash, "s3cret-pass") {
		t.Error("stored hash does not match password")
	}

	if _, err := NewUser("", "s3cret-pass", "staff"); err == nil {
		t.Error("expected error for empty username")
	}
	if _, err := NewUser("carla", "short", "staff"); err == nil {
		t.Error("expected error for short password")
	}
	if _, err := NewUser("carla", "s3cret-pass", "superuser"); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	u := &User{ID: uuid.New(), Username: "carla", Role: "staff"}

	token, err := IssueToken(secret, time.Hour, u)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := ParseToken(secret, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Subject != u.ID.String() {
		t.Errorf("subject = %q, want %q", claims.Subject, u.ID.String())
	}
	if claims.Role != "staff" {
		t.Errorf("role = %q, want staff", claims.Role)
	}

	if _, err := ParseToken([]byte("other-secret"), token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	secret := []byte("test-secret")
	u := &User{ID: uuid.New(), Username: "carla", Role: "staff"}

	token, err := IssueToken(secret, -time.Minute, u)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := ParseToken(secret, token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestJWTMiddleware(t *testing.T) {
	secret := []byte("test-secret")
	u := &User{ID: uuid.New(), Username: "carla", Role: "staff"}
	token, _ := IssueToken(secret, time.Hour, u)

	e := echo.New()
	handler := JWTMiddleware(secret)(func(c echo.Context) error {
		return c.String(http.StatusOK, UserIDFromContext(c.Request().Context()))
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := handler(c)
			if tt.status == http.StatusOK {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if rec.Body.String() != u.ID.String() {
					t.Errorf("body = %q, want user id", rec.Body.String())
				}
				return
			}
			he, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("expected HTTPError, got %v", err)
			}
			if he.Code != tt.status {
				t.Errorf("status = %d, want %d", he.Code, tt.status)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	call := func(role string, required ...string) error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if role != "" {
			ctx := context.WithValue(req.Context(), UserRoleKey, role)
			req = req.WithContext(ctx)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		return RequireRole(required...)(next)(c)
	}

	if err := call("staff", "staff"); err != nil {
		t.Errorf("staff should pass staff check: %v", err)
	}
	if err := call("admin", "staff"); err != nil {
		t.Errorf("admin should pass every check: %v", err)
	}
	if err := call("staff", "admin"); err == nil {
		t.Error("staff should not pass admin check")
	}
	if err := call("", "staff"); err == nil {
		t.Error("anonymous should not pass")
	}
}

func TestLoginHandler(t *testing.T) {
	repo := newMockUserRepo()
	u, err := NewUser("carla", "s3cret-pass", "staff")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	h := NewHandler(repo, []byte("test-secret"), time.Hour)
	e := echo.New()

	login := func(username, password string) (*httptest.ResponseRecorder, error) {
		body, _ := json.Marshal(map[string]string{"username": username, "password": password})
		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		return rec, h.Login(e.NewContext(req, rec))
	}

	rec, err := login("carla", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	claims, err := ParseToken([]byte("test-secret"), resp.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.Username != "carla" {
		t.Errorf("claims username = %q, want carla", claims.Username)
	}

	for _, tt := range []struct{ user, pass string }{
		{"carla", "wrong-pass"},
		{"nobody", "s3cret-pass"},
	} {
		_, err := login(tt.user, tt.pass)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Errorf("login(%q, %q) = %v, want 401", tt.user, tt.pass, err)
		}
	}
}
