package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pathlight-lab/pathlight/pkg/domain/model"
	"github.com/pathlight-lab/pathlight/pkg/domain/types"
	"github.com/pathlight-lab/pathlight/pkg/usecase"
	"github.com/pathlight-lab/pathlight/pkg/utils/errutil"
)

type chatRequest struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string         `json:"sessionId"`
	Content   string         `json:"content"`
	Source    string         `json:"source"`
	Actions   []model.Action `json:"actions"`
}

// handleChat processes one conversation turn. A second submission for the
// same session while one is in flight is rejected with 409; the engine
// itself holds no queue.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid chat request body"), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("message is required"), http.StatusBadRequest)
		return
	}

	entry := s.sessions.getOrCreate(types.SessionID(req.SessionID), s.systemPrompt)

	if !entry.mu.TryLock() {
		errutil.HandleHTTP(ctx, w, usecase.ErrSessionBusy, http.StatusConflict)
		return
	}
	defer entry.mu.Unlock()

	envelope := s.uc.Chat.Chat(ctx, entry.session, req.UserID, req.Message)

	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: entry.session.ID.String(),
		Content:   envelope.Content,
		Source:    envelope.Source.String(),
		Actions:   envelope.Actions,
	})
}

type resetRequest struct {
	SessionID string `json:"sessionId"`
}

// handleReset restores a session to its initial state
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid reset request body"), http.StatusBadRequest)
		return
	}

	entry := s.sessions.get(types.SessionID(req.SessionID))
	if entry == nil {
		errutil.HandleHTTP(ctx, w, goerr.New("session not found", goerr.V("sessionId", req.SessionID)), http.StatusNotFound)
		return
	}

	if !entry.mu.TryLock() {
		errutil.HandleHTTP(ctx, w, usecase.ErrSessionBusy, http.StatusConflict)
		return
	}
	defer entry.mu.Unlock()

	entry.session.Reset()
	writeJSON(w, http.StatusOK, map[string]string{"sessionId": req.SessionID, "status": "reset"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
