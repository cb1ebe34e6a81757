package api

import (
	"fmt"
	"net/http"

	"github.com/peaks-ai/peaks-backend/errs"
	"github.com/peaks-ai/peaks-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type exportHandler struct {
	responder      Responder
	logger         zerolog.Logger
	projectHandler projectHandler
}

func newExportHandler(projectHandler projectHandler) exportHandler {
	logger := log.With().Str("handlerName", "exportHandler").Logger()

	return exportHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		projectHandler: projectHandler,
	}
}

// download streams the project tree as a zip archive. Owner only; an empty
// project fails fast rather than producing an empty archive.
func (h exportHandler) download() http.HandlerFunc {
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

		if !project.HasFiles() {
			h.responder.WriteError(w, errs.NewNothingToExportError())
			return
		}

		archive, err := services.BuildArchive(project.Files, project.Name)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.zip"`, project.Name))
		if _, err := w.Write(archive); err != nil {
			h.logger.Error().Err(err).Msg("error writing archive response")
		}
	}
}

// preview renders the project as a self-contained HTML document. Public
// projects are previewable by anyone; private ones by their owner.
func (h exportHandler) preview() http.HandlerFunc {
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

		doc := services.RenderPreview(project.Files, project.Type)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte(doc)); err != nil {
			h.logger.Error().Err(err).Msg("error writing preview response")
		}
	}
}
