package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"codepair/internal/models"
	"codepair/internal/utils"
)

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing_fields", "username, email and password are required")
		return
	}

	if existing, _ := h.users.GetUserByEmail(req.Email); existing != nil {
		writeError(w, http.StatusConflict, "email_taken", "email already registered")
		return
	}
	if existing, _ := h.users.GetUserByUsername(req.Username); existing != nil {
		writeError(w, http.StatusConflict, "username_taken", "username already taken")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash_error", "failed to hash password")
		return
	}
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := h.users.CreateUser(user); err != nil {
		h.log.Error("user creation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "create_error", "failed to create user")
		return
	}

	h.issueAuthResponse(w, http.StatusCreated, user)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}

	user, err := h.users.GetUserByEmail(req.Email)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "incorrect email or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "incorrect email or password")
		return
	}

	h.issueAuthResponse(w, http.StatusOK, user)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}
	utils.JSON(w, http.StatusOK, models.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}

func (h *Handlers) issueAuthResponse(w http.ResponseWriter, status int, user *models.User) {
	token, err := utils.IssueToken(h.jwtSecret, user.ID, user.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token_error", "failed to sign token")
		return
	}
	utils.JSON(w, status, models.AuthResponse{
		Token: token,
		User: models.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}
