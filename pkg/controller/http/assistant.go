package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/tailkeep-lab/tailkeep/pkg/domain/types"
	"github.com/tailkeep-lab/tailkeep/pkg/utils/errutil"
	"github.com/tailkeep-lab/tailkeep/pkg/utils/safe"
)

type sendMessageRequest struct {
	Message       string `json:"message"`
	SelectedPetID string `json:"selectedPetId,omitempty"`
}

// sendMessageHandler drives one assistant exchange. The empty-message
// guard lives here at the boundary; the facade itself does not enforce
// it.
func (s *Server) sendMessageHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profileID := types.ProfileID(chi.URLParam(r, "profileID"))
	if err := profileID.Validate(); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("message must not be empty"), http.StatusBadRequest)
		return
	}

	session := s.uc.Assistant(ctx, profileID)
	resp, err := session.SendMessage(ctx, req.Message, types.PetID(req.SelectedPetID))
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, resp)
}

func (s *Server) resetConversationHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profileID := types.ProfileID(chi.URLParam(r, "profileID"))
	if err := profileID.Validate(); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	session := s.uc.Assistant(ctx, profileID)
	if err := session.ResetConversation(ctx); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type historyMessage struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IsUser    bool      `json:"isUser"`
	Timestamp time.Time `json:"timestamp"`
}

type historyResponse struct {
	Messages []historyMessage `json:"messages"`
	Length   int              `json:"length"`
}

func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profileID := types.ProfileID(chi.URLParam(r, "profileID"))
	if err := profileID.Validate(); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	session := s.uc.Assistant(ctx, profileID)
	history := session.History()

	resp := historyResponse{
		Messages: make([]historyMessage, 0, len(history)),
		Length:   session.ConversationLength(),
	}
	for _, msg := range history {
		resp.Messages = append(resp.Messages, historyMessage{
			ID:        msg.ID.String(),
			Content:   msg.Content,
			IsUser:    msg.IsUser,
			Timestamp: msg.Timestamp,
		})
	}

	writeJSON(w, r, resp)
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	PetID     string    `json:"petId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Server) notificationsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid limit"), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	notifications, err := s.uc.Notifications(ctx, limit)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
		return
	}

	resp := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, notificationResponse{
			ID:        n.ID.String(),
			Kind:      n.Kind.String(),
			PetID:     n.PetID.String(),
			Title:     n.Title,
			Body:      n.Body,
			CreatedAt: n.CreatedAt,
		})
	}

	writeJSON(w, r, struct {
		Notifications []notificationResponse `json:"notifications"`
	}{Notifications: resp})
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	safe.Write(r.Context(), w, data)
}
