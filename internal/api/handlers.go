package api

import (
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"codepair/internal/exec"
	"codepair/internal/llm"
	"codepair/internal/models"
	"codepair/internal/prompts"
	"codepair/internal/repositories"
	"codepair/internal/session"
	"codepair/internal/utils"
)

type Handlers struct {
	log       *zap.Logger
	users     *repositories.UserRepository
	rooms     *repositories.RoomRepository
	manager   *session.Manager
	runner    *exec.Runner
	provider  llm.Provider
	prompts   *prompts.Manager
	jwtSecret []byte
}

func NewHandlers(
	log *zap.Logger,
	db *gorm.DB,
	docs session.DocumentStore,
	provider llm.Provider,
	runner *exec.Runner,
	jwtSecret []byte,
) (*Handlers, error) {
	promptManager, err := prompts.NewManager()
	if err != nil {
		return nil, err
	}
	rooms := &repositories.RoomRepository{DB: db}
	return &Handlers{
		log:       log,
		users:     &repositories.UserRepository{DB: db},
		rooms:     rooms,
		manager:   session.NewManager(rooms, rooms, docs, log),
		runner:    runner,
		provider:  provider,
		prompts:   promptManager,
		jwtSecret: jwtSecret,
	}, nil
}

func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	utils.JSON(w, status, models.ErrorResponse{Code: code, Message: message})
}

// principal derives the connection's authenticated state from the bearer
// credential, if any. An invalid token downgrades to anonymous; the gate
// decides whether that matters for the requested room.
func (h *Handlers) principal(r *http.Request) session.Principal {
	token, ok := utils.BearerToken(r)
	if !ok {
		return session.Principal{}
	}
	claims, err := utils.VerifyToken(h.jwtSecret, token)
	if err != nil {
		return session.Principal{BadCredential: true}
	}
	return session.Principal{
		Identity: &session.Identity{UserID: claims.Subject, Username: claims.Username},
	}
}

// currentUser resolves the authenticated user for endpoints that require
// one, or writes a 401 and returns nil.
func (h *Handlers) currentUser(w http.ResponseWriter, r *http.Request) *models.User {
	p := h.principal(r)
	if p.Identity == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return nil
	}
	user, err := h.users.GetUserByID(p.Identity.UserID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "unknown user")
		return nil
	}
	return user
}
