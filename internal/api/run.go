package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"codepair/internal/models"
	"codepair/internal/utils"
)

// RunCode proxies a snippet to the remote execution service and returns
// its captured output.
func (h *Handlers) RunCode(w http.ResponseWriter, r *http.Request) {
	var req models.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "invalid request body")
		return
	}
	if req.Language == "" {
		writeError(w, http.StatusBadRequest, "missing_fields", "language is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 12*time.Second)
	defer cancel()

	result, err := h.runner.Run(ctx, req.Language, req.Code)
	if err != nil {
		h.log.Error("code execution failed", zap.String("language", req.Language), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "run_error", err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, models.RunResponse{Stdout: result.Stdout, Stderr: result.Stderr})
}
