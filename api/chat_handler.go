package api

import (
	"encoding/json"
	"net/http"

	"github.com/peaks-ai/peaks-backend/database"
	"github.com/peaks-ai/peaks-backend/errs"
	"github.com/peaks-ai/peaks-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type chatHandler struct {
	responder      Responder
	logger         zerolog.Logger
	projectHandler projectHandler
	messageRepo    *database.ChatMessageRepo
}

func newChatHandler(projectHandler projectHandler, messageRepo *database.ChatMessageRepo) chatHandler {
	logger := log.With().Str("handlerName", "chatHandler").Logger()

	return chatHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		projectHandler: projectHandler,
		messageRepo:    messageRepo,
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

// getMessages returns a project's chat log in creation order. Owner or
// public project only.
func (h chatHandler) getMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projectHandler.loadProject(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		userID, _ := ctxGetUserID(r.Context())
		if !project.VisibleTo(userID) {
			h.responder.WriteError(w, errs.NewAccessDeniedError("project"))
			return
		}

		messages, err := h.messageRepo.FindByProject(project.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "chat messages", err))
			return
		}

		h.responder.WriteJSON(w, messages)
	}
}

// postMessage appends a user message to the log. Owner only.
func (h chatHandler) postMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projectHandler.loadProject(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		userID, _ := ctxGetUserID(r.Context())
		if !project.OwnedBy(userID) {
			h.responder.WriteError(w, errs.NewAccessDeniedError("project"))
			return
		}

		var payload chatRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode chat request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("chat message", err))
			return
		}
		if payload.Message == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("message"))
			return
		}

		message := &models.ChatMessage{
			ProjectID: project.ID,
			Sender:    models.SenderUser,
			Content:   payload.Message,
		}
		if err := h.messageRepo.Add(message); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "chat message", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"message": message,
		})
	}
}
