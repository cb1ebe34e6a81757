package api

import (
	"github.com/peaks-ai/peaks-backend/database"
	"github.com/peaks-ai/peaks-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, aiService *services.AIService, generator *services.Generator) *routeHandlers {
	projectHandler := newProjectHandler(db.ProjectRepo())

	return &routeHandlers{
		userHandler:    newUserHandler(db.UserRepo()),
		projectHandler: projectHandler,
		chatHandler:    newChatHandler(projectHandler, db.ChatMessageRepo()),
		aiHandler:      newAIHandler(aiService, generator, db.ProjectRepo()),
		exportHandler:  newExportHandler(projectHandler),
	}
}
