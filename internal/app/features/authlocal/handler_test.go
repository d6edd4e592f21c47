package authlocal_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authlocalfeature "github.com/yvelmence/tissuefinder/internal/app/features/authlocal"
	"github.com/yvelmence/tissuefinder/internal/app/system/auth"
	"github.com/yvelmence/tissuefinder/internal/app/system/indexes"
	"github.com/yvelmence/tissuefinder/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*authlocalfeature.Handler, *auth.TokenManager) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return authlocalfeature.NewHandler(db, tokens, zap.NewNop()), tokens
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(b)
}

func TestRegister_ThenLogin(t *testing.T) {
	h, tokens := newTestHandler(t)

	body := jsonBody(t, map[string]any{
		"email":    "new@example.edu",
		"password": "correct-horse",
		"fullName": "New Student",
	})
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, httptest.NewRequest("POST", "/register", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var regResp struct {
		Token string `json:"token"`
		User  struct {
			ID       string `json:"_id"`
			Email    string `json:"email"`
			FullName string `json:"fullName"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &regResp); err != nil {
		t.Fatalf("unmarshal register response: %v", err)
	}
	if regResp.Token == "" {
		t.Error("expected a token from register")
	}
	if regResp.User.Role != "member" {
		t.Errorf("role: got %q, want member", regResp.User.Role)
	}

	// The issued token verifies back to the same user.
	claims, err := tokens.Parse(regResp.Token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.UserID != regResp.User.ID {
		t.Errorf("token uid %q != user id %q", claims.UserID, regResp.User.ID)
	}

	// And the credentials work for login.
	body = jsonBody(t, map[string]any{"email": "new@example.edu", "password": "correct-horse"})
	rec = httptest.NewRecorder()
	h.HandleLogin(rec, httptest.NewRequest("POST", "/login", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var loginResp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &loginResp); err != nil {
		t.Fatalf("unmarshal login response: %v", err)
	}
	if loginResp["token"] == "" {
		t.Error("expected a token from login")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	reg := func() *httptest.ResponseRecorder {
		body := jsonBody(t, map[string]any{
			"email":    "taken@example.edu",
			"password": "long-enough-pw",
		})
		rec := httptest.NewRecorder()
		h.HandleRegister(rec, httptest.NewRequest("POST", "/register", body))
		return rec
	}

	if rec := reg(); rec.Code != http.StatusCreated {
		t.Fatalf("first register: expected %d, got %d", http.StatusCreated, rec.Code)
	}
	if rec := reg(); rec.Code != http.StatusConflict {
		t.Errorf("second register: expected %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	h, _ := newTestHandler(t)

	body := jsonBody(t, map[string]any{"email": "x@example.edu", "password": "short"})
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, httptest.NewRequest("POST", "/register", body))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h, _ := newTestHandler(t)

	body := jsonBody(t, map[string]any{
		"email":    "victim@example.edu",
		"password": "right-password",
	})
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, httptest.NewRequest("POST", "/register", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", rec.Code)
	}

	body = jsonBody(t, map[string]any{"email": "victim@example.edu", "password": "wrong-password"})
	rec = httptest.NewRecorder()
	h.HandleLogin(rec, httptest.NewRequest("POST", "/login", body))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	h, _ := newTestHandler(t)

	body := jsonBody(t, map[string]any{"email": "ghost@example.edu", "password": "whatever-pass"})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, httptest.NewRequest("POST", "/login", body))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestLogin_AcceptsUsernameField(t *testing.T) {
	h, _ := newTestHandler(t)

	body := jsonBody(t, map[string]any{
		"email":    "legacy@example.edu",
		"password": "legacy-password",
	})
	rec := httptest.NewRecorder()
	h.HandleRegister(rec, httptest.NewRequest("POST", "/register", body))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", rec.Code)
	}

	// The old login form posts the address under "username".
	body = jsonBody(t, map[string]any{"username": "legacy@example.edu", "password": "legacy-password"})
	rec = httptest.NewRecorder()
	h.HandleLogin(rec, httptest.NewRequest("POST", "/login", body))

	if rec.Code != http.StatusOK {
		t.Errorf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
}

func TestLogin_RateLimited(t *testing.T) {
	h, _ := newTestHandler(t)

	// The per-email window allows 5 attempts; the 6th is blocked even
	// though the account does not exist.
	for i := 0; i < 5; i++ {
		body := jsonBody(t, map[string]any{"email": "target@example.edu", "password": "guess"})
		rec := httptest.NewRecorder()
		h.HandleLogin(rec, httptest.NewRequest("POST", "/login", body))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected %d, got %d", i+1, http.StatusUnauthorized, rec.Code)
		}
	}

	body := jsonBody(t, map[string]any{"email": "target@example.edu", "password": "guess"})
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, httptest.NewRequest("POST", "/login", body))
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected %d after repeated failures, got %d", http.StatusTooManyRequests, rec.Code)
	}
}

func TestServeProtected(t *testing.T) {
	h, _ := newTestHandler(t)

	// Without a caller in context: 401.
	rec := httptest.NewRecorder()
	h.ServeProtected(rec, httptest.NewRequest("GET", "/protected", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected %d without a caller, got %d", http.StatusUnauthorized, rec.Code)
	}

	// With one: the claims echo back.
	req := auth.WithTestUser(httptest.NewRequest("GET", "/protected", nil),
		&auth.SessionUser{ID: "u-1", Name: "Sam", Role: "member"})
	rec = httptest.NewRecorder()
	h.ServeProtected(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["userId"] != "u-1" || resp["role"] != "member" {
		t.Errorf("unexpected claims echo: %v", resp)
	}
}
