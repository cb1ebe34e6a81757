package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/peaks-ai/peaks-backend/ws"
)

// setupRoutes wires the HTTP surface. Three tiers: authenticated routes,
// optional-auth routes whose resources may be public, and the realtime
// socket.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, hub *ws.Hub) {
	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/api/auth/user", handlers.userHandler.getCurrentUser())

		r.Get("/api/projects", handlers.projectHandler.getProjects())
		r.Post("/api/projects", handlers.projectHandler.createProject())
		r.Put("/api/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/api/projects/{projectID}", handlers.projectHandler.deleteProject())

		r.Post("/api/projects/{projectID}/chat", handlers.chatHandler.postMessage())

		r.Post("/api/ai/analyze", handlers.aiHandler.analyze())
		r.Post("/api/ai/generate", handlers.aiHandler.generate())

		r.Get("/api/projects/{projectID}/download", handlers.exportHandler.download())
	})

	// Owner-or-public routes: identity attached when present, anonymous
	// callers reach public projects only.
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticateOptional)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/api/projects/{projectID}", handlers.projectHandler.getProject())
		r.Get("/api/projects/{projectID}/messages", handlers.chatHandler.getMessages())
		r.Get("/api/projects/{projectID}/preview", handlers.exportHandler.preview())
	})

	// Realtime channel
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, w, r)
	})
}
