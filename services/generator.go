package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/peaks-ai/peaks-backend/errs"
	"github.com/peaks-ai/peaks-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ProjectStore is the slice of the persistence layer the generator writes
// through. Updates are wholesale: the whole project row is replaced.
type ProjectStore interface {
	Update(project *models.Project) error
}

// MessageStore appends to a project's chat log.
type MessageStore interface {
	Add(message *models.ChatMessage) error
}

// Notifier fans generation progress out to realtime subscribers of a project.
type Notifier interface {
	NotifyTyping(projectID string, isTyping bool)
	NotifyMessage(projectID string, content string)
}

// Generator drives one user message through the classify-free part of the
// pipeline: pick create or enhance flow, call the oracle (with its fallbacks),
// replace the project tree, append the AI summary message, and notify
// subscribers. At most one generation may be in flight per project; a second
// submission is rejected, not queued.
type Generator struct {
	ai       *AIService
	projects ProjectStore
	messages MessageStore
	notifier Notifier

	mu       sync.Mutex
	inFlight map[uuid.UUID]bool

	logger zerolog.Logger
}

func NewGenerator(ai *AIService, projects ProjectStore, messages MessageStore, notifier Notifier) *Generator {
	return &Generator{
		ai:       ai,
		projects: projects,
		messages: messages,
		notifier: notifier,
		inFlight: map[uuid.UUID]bool{},
		logger:   log.With().Str("serviceName", "generator").Logger(),
	}
}

// Run executes the create or enhance flow for one user message. The project
// must already be loaded and ownership-checked by the caller. The user message
// is appended to the chat log only once the in-flight guard admits the run; a
// rejected submission leaves no trace in the log. On success the project's
// tree has been replaced, the update persisted, and the AI summary appended.
// Oracle failures never reach here: they are absorbed into fallbacks inside
// AIService.
func (g *Generator) Run(ctx context.Context, project *models.Project, userMessage, projectType string) (*models.Project, error) {
	if !g.begin(project.ID) {
		return nil, errs.NewGenerationInFlightError(project.ID.String())
	}
	defer g.end(project.ID)

	if err := g.messages.Add(&models.ChatMessage{
		ProjectID: project.ID,
		Sender:    models.SenderUser,
		Content:   userMessage,
	}); err != nil {
		return nil, errs.NewDatabaseError("create", "chat message", err)
	}

	if g.notifier != nil {
		g.notifier.NotifyTyping(project.ID.String(), true)
		defer g.notifier.NotifyTyping(project.ID.String(), false)
	}

	if projectType == "" {
		projectType = project.Type
	}

	enhancing := project.HasFiles()
	var files models.FileNodeList
	if enhancing {
		files = g.ai.EnhanceStructure(ctx, project.Files, userMessage, projectType)
	} else {
		result := g.ai.GenerateStructure(ctx, userMessage, projectType)
		files = result.Files
	}

	if err := files.Validate(); err != nil {
		return nil, errs.NewInvalidFileTreeError(err)
	}

	project.Files = files
	project.Type = projectType
	if err := g.projects.Update(project); err != nil {
		return nil, errs.NewDatabaseError("update", "project", err)
	}

	summary := g.summaryMessage(enhancing, projectType)
	aiMessage := &models.ChatMessage{
		ProjectID: project.ID,
		Sender:    models.SenderAI,
		Content:   summary,
	}
	if err := g.messages.Add(aiMessage); err != nil {
		// The tree update already landed; losing the summary message is
		// logged but does not fail the generation.
		g.logger.Error().Err(err).Str("projectID", project.ID.String()).Msg("Failed to append AI summary message")
	} else if g.notifier != nil {
		g.notifier.NotifyMessage(project.ID.String(), summary)
	}

	return project, nil
}

func (g *Generator) summaryMessage(enhanced bool, projectType string) string {
	verb := "created"
	if enhanced {
		verb = "enhanced"
	}
	return fmt.Sprintf("I've %s your %s! The project structure has been updated with new files and functionality.", verb, projectType)
}

// begin marks a project as having a generation in flight. Returns false when
// one is already running.
func (g *Generator) begin(projectID uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight[projectID] {
		return false
	}
	g.inFlight[projectID] = true
	return true
}

func (g *Generator) end(projectID uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.inFlight, projectID)
}
