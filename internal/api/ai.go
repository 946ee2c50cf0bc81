package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"codepair/internal/models"
	"codepair/internal/utils"
)

// Autocomplete returns a short LLM-generated continuation for the code at
// the cursor. When the request names a room, the room's autocomplete flag
// is honored.
func (h *Handlers) Autocomplete(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		writeError(w, http.StatusServiceUnavailable, "ai_disabled", "no AI provider configured")
		return
	}

	var req models.AutocompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}
	if req.CursorPosition < 0 || req.CursorPosition > len(req.Code) {
		writeError(w, http.StatusBadRequest, "invalid_cursor", "cursor position out of range")
		return
	}

	if req.RoomID != "" {
		room, err := h.rooms.GetRoom(req.RoomID)
		if err == nil && !room.AIAutocompleteEnabled {
			writeError(w, http.StatusForbidden, "ai_disabled", "autocomplete is disabled for this room")
			return
		}
	}

	prompt, err := h.prompts.Build("autocomplete", map[string]string{
		"Language": req.Language,
		"Before":   req.Code[:req.CursorPosition],
		"After":    req.Code[req.CursorPosition:],
	})
	if err != nil {
		h.log.Error("failed to build prompt", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "prompt_error", "failed to build AI prompt")
		return
	}

	suggestion, err := h.provider.Complete(r.Context(), prompt)
	if err != nil {
		h.log.Error("AI provider error",
			zap.String("provider", h.provider.GetProviderName()),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "ai_error", "autocomplete service error")
		return
	}

	utils.JSON(w, http.StatusOK, models.AutocompleteResponse{
		Suggestion: strings.TrimSpace(suggestion),
	})
}
