package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/peaks-ai/peaks-backend/database"
	"github.com/peaks-ai/peaks-backend/errs"
	"github.com/peaks-ai/peaks-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type aiHandler struct {
	responder   Responder
	logger      zerolog.Logger
	aiService   *services.AIService
	generator   *services.Generator
	projectRepo *database.ProjectRepo
}

func newAIHandler(aiService *services.AIService, generator *services.Generator, projectRepo *database.ProjectRepo) aiHandler {
	logger := log.With().Str("handlerName", "aiHandler").Logger()

	return aiHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		aiService:   aiService,
		generator:   generator,
		projectRepo: projectRepo,
	}
}

type analyzeRequest struct {
	Message string `json:"message"`
}

type generateRequest struct {
	ProjectID   uuid.UUID `json:"projectId"`
	Message     string    `json:"message"`
	ProjectType string    `json:"projectType"`
}

// analyze classifies a free-form request. Classification never fails: oracle
// failures are absorbed into the generic fallback analysis.
func (h aiHandler) analyze() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("analyze", err))
			return
		}
		if payload.Message == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("message"))
			return
		}

		analysis := h.aiService.AnalyzeRequest(r.Context(), payload.Message)
		h.responder.WriteJSON(w, analysis)
	}
}

// generate runs the create or enhance flow for the caller's project and
// returns the updated project and tree. Chat log writes (user message, AI
// summary) happen inside the generator, behind its in-flight guard.
func (h aiHandler) generate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := ctxGetUserID(r.Context())

		var payload generateRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("generate", err))
			return
		}
		if payload.Message == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("message"))
			return
		}
		if payload.ProjectID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("projectId"))
			return
		}

		project, err := h.projectRepo.FindByID(payload.ProjectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}
		if !project.OwnedBy(userID) {
			h.responder.WriteError(w, errs.NewAccessDeniedError("project"))
			return
		}

		updated, err := h.generator.Run(r.Context(), project, payload.Message, payload.ProjectType)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"project": updated,
			"files":   updated.Files,
		})
	}
}
