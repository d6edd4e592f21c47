// internal/app/features/authlocal/handler.go
package authlocal

import (
	"context"
	"net/http"
	"strings"

	userstore "github.com/yvelmence/tissuefinder/internal/app/store/users"
	"github.com/yvelmence/tissuefinder/internal/app/system/auth"
	"github.com/yvelmence/tissuefinder/internal/app/system/httpjson"
	"github.com/yvelmence/tissuefinder/internal/app/system/ratelimit"
	"github.com/yvelmence/tissuefinder/internal/app/system/timeouts"
	"github.com/yvelmence/tissuefinder/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler implements the local email/password account routes.
type Handler struct {
	Users  *userstore.Store
	Tokens *auth.TokenManager
	Log    *zap.Logger

	loginLimiter *ratelimit.LoginLimiter
}

func NewHandler(db *mongo.Database, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:        userstore.New(db),
		Tokens:       tokens,
		Log:          logger,
		loginLimiter: ratelimit.NewLoginLimiter(),
	}
}

// userResponse is the trimmed account shape returned to the client.
type userResponse struct {
	ID       string `json:"_id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{
		ID:       u.ID.Hex(),
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

// HandleRegister creates a local account and signs the caller straight in.
//
// Route: POST /register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Email == "" || req.Password == "" {
		httpjson.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if len(req.Password) < 8 {
		httpjson.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("hash password failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Error creating account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
	})
	if err == userstore.ErrDuplicateEmail {
		httpjson.Error(w, http.StatusConflict, "an account with this email already exists")
		return
	}
	if err != nil {
		h.Log.Error("create user failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Error creating account")
		return
	}

	token, err := h.Tokens.Sign(user.ID.Hex(), user.FullName, user.Role)
	if err != nil {
		h.Log.Error("sign token failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Error creating account")
		return
	}

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  toUserResponse(user),
	})
}

// HandleLogin verifies credentials and issues a bearer token. The login
// form historically posted the email under "username", so both keys are
// accepted. Failures are a bare-text 401 with no detail about which field
// was wrong. Repeated failures against one address or from one IP trip the
// login limiter and get a 429 until the window passes.
//
// Route: POST /login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = strings.TrimSpace(req.Username)
	}
	if email == "" || req.Password == "" {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if allowed, reason := h.loginLimiter.Check(r, email); !allowed {
		httpjson.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		h.Log.Error("load user failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Error signing in")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := h.Tokens.Sign(user.ID.Hex(), user.FullName, user.Role)
	if err != nil {
		h.Log.Error("sign token failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "Error signing in")
		return
	}

	h.loginLimiter.ResetEmail(email)
	httpjson.Write(w, http.StatusOK, map[string]string{"token": token})
}

// ServeProtected echoes the verified caller back, as a token check the SPA
// runs on load.
//
// Route: GET /protected (behind RequireSignedIn)
func (h *Handler) ServeProtected(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{
		"userId": u.ID,
		"name":   u.Name,
		"role":   u.Role,
	})
}
