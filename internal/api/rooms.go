package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"codepair/internal/models"
	"codepair/internal/repositories"
	"codepair/internal/session"
	"codepair/internal/utils"
)

func (h *Handlers) roomResponse(room *models.Room) models.RoomResponse {
	ownerName := "unknown"
	if owner, err := h.users.GetUserByID(room.OwnerID); err == nil {
		ownerName = owner.Username
	}
	return models.RoomResponse{
		RoomID:                room.ID,
		Name:                  room.Name,
		Code:                  room.Code,
		OwnerID:               room.OwnerID,
		OwnerUsername:         ownerName,
		IsPrivate:             room.IsPrivate,
		AIAutocompleteEnabled: room.AIAutocompleteEnabled,
	}
}

func (h *Handlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}

	var req models.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing_fields", "room name is required")
		return
	}
	if req.IsPrivate && (req.Password == nil || *req.Password == "") {
		writeError(w, http.StatusBadRequest, "password_required", "password is required for private rooms")
		return
	}

	var passwordHash string
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "hash_error", "failed to hash password")
			return
		}
		passwordHash = string(hash)
	}

	autocomplete := true
	if req.AIAutocompleteEnabled != nil {
		autocomplete = *req.AIAutocompleteEnabled
	}

	room := &models.Room{
		ID:                    uuid.New().String()[:8],
		Name:                  req.Name,
		Code:                  "",
		OwnerID:               user.ID,
		IsPrivate:             req.IsPrivate,
		PasswordHash:          passwordHash,
		AIAutocompleteEnabled: autocomplete,
	}
	if err := h.rooms.CreateRoom(room); err != nil {
		h.log.Error("room creation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "create_error", "failed to create room")
		return
	}
	if err := h.rooms.AddMember(r.Context(), room.ID, user.ID); err != nil {
		h.log.Warn("creator membership write failed", zap.String("room", room.ID), zap.Error(err))
	}

	utils.JSON(w, http.StatusCreated, h.roomResponse(room))
}

func (h *Handlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	ownerID := ""
	if p := h.principal(r); p.Identity != nil {
		ownerID = p.Identity.UserID
	}
	rooms, err := h.rooms.ListRooms(ownerID)
	if err != nil {
		h.log.Error("room listing failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list_error", "failed to list rooms")
		return
	}
	out := make([]models.RoomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, h.roomResponse(&rooms[i]))
	}
	utils.JSON(w, http.StatusOK, out)
}

func (h *Handlers) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, ok := h.lookupRoom(w, r)
	if !ok {
		return
	}
	utils.JSON(w, http.StatusOK, h.roomResponse(room))
}

func (h *Handlers) JoinRoom(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}
	room, ok := h.lookupRoom(w, r)
	if !ok {
		return
	}

	isMember, err := h.rooms.IsMember(r.Context(), room.ID, user.ID)
	if err == nil && isMember {
		utils.JSON(w, http.StatusOK, map[string]string{"message": "already a participant", "roomId": room.ID})
		return
	}

	if room.IsPrivate {
		var req models.JoinRoomRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password == nil || *req.Password == "" {
			writeError(w, http.StatusBadRequest, "password_required", "password required for private room")
			return
		}
		if room.PasswordHash == "" ||
			bcrypt.CompareHashAndPassword([]byte(room.PasswordHash), []byte(*req.Password)) != nil {
			writeError(w, http.StatusUnauthorized, "incorrect_password", "incorrect password")
			return
		}
	}

	if err := h.rooms.AddMember(r.Context(), room.ID, user.ID); err != nil {
		h.log.Error("join failed", zap.String("room", room.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "join_error", "failed to join room")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "joined room successfully", "roomId": room.ID})
}

func (h *Handlers) LeaveRoom(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}
	room, ok := h.lookupRoom(w, r)
	if !ok {
		return
	}
	if room.OwnerID == user.ID {
		writeError(w, http.StatusBadRequest, "owner_cannot_leave", "room owner cannot leave; delete the room instead")
		return
	}
	if err := h.rooms.RemoveMember(r.Context(), room.ID, user.ID); err != nil {
		if errors.Is(err, repositories.ErrNotParticipant) {
			writeError(w, http.StatusBadRequest, "not_participant", "not a participant of this room")
			return
		}
		writeError(w, http.StatusInternalServerError, "leave_error", "failed to leave room")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "left room successfully"})
}

func (h *Handlers) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}
	room, ok := h.lookupRoom(w, r)
	if !ok {
		return
	}
	if room.OwnerID != user.ID {
		writeError(w, http.StatusForbidden, "forbidden", "only the room owner can update settings")
		return
	}

	var req models.UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.IsPrivate != nil {
		room.IsPrivate = *req.IsPrivate
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "hash_error", "failed to hash password")
			return
		}
		room.PasswordHash = string(hash)
	}
	if req.AIAutocompleteEnabled != nil {
		room.AIAutocompleteEnabled = *req.AIAutocompleteEnabled
	}

	if err := h.rooms.UpdateRoom(room); err != nil {
		h.log.Error("room update failed", zap.String("room", room.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "update_error", "failed to update room")
		return
	}
	utils.JSON(w, http.StatusOK, h.roomResponse(room))
}

func (h *Handlers) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	user := h.currentUser(w, r)
	if user == nil {
		return
	}
	room, ok := h.lookupRoom(w, r)
	if !ok {
		return
	}
	if room.OwnerID != user.ID {
		writeError(w, http.StatusForbidden, "forbidden", "only the room owner can delete the room")
		return
	}
	if err := h.rooms.DeleteRoom(room.ID); err != nil {
		h.log.Error("room deletion failed", zap.String("room", room.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "delete_error", "failed to delete room")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "room deleted successfully"})
}

func (h *Handlers) ListParticipants(w http.ResponseWriter, r *http.Request) {
	room, ok := h.lookupRoom(w, r)
	if !ok {
		return
	}
	participants, err := h.rooms.ListParticipants(room.ID)
	if err != nil {
		h.log.Error("participant listing failed", zap.String("room", room.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "list_error", "failed to list participants")
		return
	}
	if participants == nil {
		participants = []models.ParticipantResponse{}
	}
	utils.JSON(w, http.StatusOK, participants)
}

func (h *Handlers) lookupRoom(w http.ResponseWriter, r *http.Request) (*models.Room, bool) {
	roomID := chi.URLParam(r, "roomID")
	room, err := h.rooms.GetRoom(roomID)
	if err != nil {
		if errors.Is(err, session.ErrRoomNotFound) {
			writeError(w, http.StatusNotFound, "room_not_found", "room not found")
		} else {
			writeError(w, http.StatusInternalServerError, "lookup_error", "failed to load room")
		}
		return nil, false
	}
	return room, true
}
