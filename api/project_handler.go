package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/peaks-ai/peaks-backend/database"
	"github.com/peaks-ai/peaks-backend/errs"
	"github.com/peaks-ai/peaks-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// createProjectRequest is the accepted payload for creating a project. Files
// are always created empty; the first generation cycle fills them.
type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	IsPublic    bool   `json:"isPublic"`
}

// loadProject parses the projectID URL param and fetches the record, mapping
// the missing cases onto the right API errors.
func (h projectHandler) loadProject(r *http.Request) (*models.Project, error) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		return nil, errs.NewBadRequestError("missing projectID")
	}

	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return nil, errs.NewBadRequestError("invalid projectID")
	}

	project, err := h.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, wrapDatabaseError("find", "project", err)
	}
	if project == nil {
		return nil, errs.NewNotFoundError("project not found")
	}
	return project, nil
}

// getProjects lists the caller's projects, most recently updated first.
func (h projectHandler) getProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := ctxGetUserID(r.Context())

		projects, err := h.projectRepo.FindByOwner(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// createProject creates a new, empty project owned by the caller.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := ctxGetUserID(r.Context())

		var payload createProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		if payload.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}
		if payload.Type == "" {
			payload.Type = "Web Application"
		}

		project := &models.Project{
			OwnerID:     userID,
			Name:        payload.Name,
			Description: payload.Description,
			Type:        payload.Type,
			Files:       models.FileNodeList{},
			IsPublic:    payload.IsPublic,
		}

		if err := h.projectRepo.Add(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// getProject fetches one project; the owner always may, anyone else only when
// the project is public.
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.loadProject(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		userID, _ := ctxGetUserID(r.Context())
		if !project.VisibleTo(userID) {
			h.responder.WriteError(w, errs.NewAccessDeniedError("project"))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// updateProject replaces a project wholesale. Owner only.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.loadProject(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		userID, _ := ctxGetUserID(r.Context())
		if !project.OwnedBy(userID) {
			h.responder.WriteError(w, errs.NewAccessDeniedError("project"))
			return
		}

		var updated models.Project
		if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		if err := updated.Files.Validate(); err != nil {
			h.responder.WriteError(w, errs.NewInvalidFileTreeError(err))
			return
		}

		// Identity and ownership are never taken from the payload.
		updated.ID = project.ID
		updated.OwnerID = project.OwnerID
		updated.CreatedAt = project.CreatedAt

		if err := h.projectRepo.Update(&updated); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, &updated)
	}
}

// deleteProject removes a project and its chat log. Owner only.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.loadProject(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		userID, _ := ctxGetUserID(r.Context())
		if !project.OwnedBy(userID) {
			h.responder.WriteError(w, errs.NewAccessDeniedError("project"))
			return
		}

		if err := h.projectRepo.Delete(project.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}
