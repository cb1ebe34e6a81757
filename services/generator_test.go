package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/peaks-ai/peaks-backend/errs"
	"github.com/peaks-ai/peaks-backend/models"
	"github.com/stretchr/testify/require"
)

type fakeProjectStore struct {
	updated *models.Project
	err     error
}

func (f *fakeProjectStore) Update(project *models.Project) error {
	if f.err != nil {
		return f.err
	}
	f.updated = project
	return nil
}

type fakeMessageStore struct {
	added []*models.ChatMessage

	// err is returned for every Add, or only for messages from failSender
	// when that is set.
	err        error
	failSender string
}

func (f *fakeMessageStore) Add(message *models.ChatMessage) error {
	if f.err != nil && (f.failSender == "" || f.failSender == message.Sender) {
		return f.err
	}
	f.added = append(f.added, message)
	return nil
}

type fakeNotifier struct {
	typing   []bool
	messages []string
}

func (f *fakeNotifier) NotifyTyping(projectID string, isTyping bool) {
	f.typing = append(f.typing, isTyping)
}

func (f *fakeNotifier) NotifyMessage(projectID string, content string) {
	f.messages = append(f.messages, content)
}

func newTestGenerator(t *testing.T) (*Generator, *fakeProjectStore, *fakeMessageStore, *fakeNotifier) {
	t.Helper()
	projects := &fakeProjectStore{}
	messages := &fakeMessageStore{}
	notifier := &fakeNotifier{}
	return NewGenerator(deadOracle(t), projects, messages, notifier), projects, messages, notifier
}

func TestRunCreateFlowWritesTemplateAndChatLog(t *testing.T) {
	generator, projects, messages, notifier := newTestGenerator(t)

	project := &models.Project{ID: uuid.New(), OwnerID: uuid.New(), Name: "Demo", Type: "Website"}
	updated, err := generator.Run(context.Background(), project, "build me a react app", ProjectTypeReactApp)
	require.NoError(t, err)

	// Oracle is down, so the create flow lands the baked-in template.
	require.NotNil(t, updated.Files.FindByPath("package.json"))
	require.Equal(t, ProjectTypeReactApp, updated.Type)
	require.Same(t, updated, projects.updated)

	// The run writes the user message first, then the AI summary.
	require.Len(t, messages.added, 2)
	require.Equal(t, models.SenderUser, messages.added[0].Sender)
	require.Equal(t, "build me a react app", messages.added[0].Content)
	require.Equal(t, models.SenderAI, messages.added[1].Sender)
	require.Equal(t, "I've created your React App! The project structure has been updated with new files and functionality.", messages.added[1].Content)

	require.Equal(t, []bool{true, false}, notifier.typing)
	require.Equal(t, []string{messages.added[1].Content}, notifier.messages)
}

func TestRunEnhanceFlowKeepsTreeWhenOracleIsDown(t *testing.T) {
	generator, projects, messages, _ := newTestGenerator(t)

	original := models.FileNodeList{{Name: "index.html", Type: models.NodeFile, Content: "v1"}}
	project := &models.Project{ID: uuid.New(), Name: "Demo", Type: "Website", Files: original.Clone()}

	updated, err := generator.Run(context.Background(), project, "add dark mode", "")
	require.NoError(t, err)

	// Failed enhancement may never lose data.
	require.Equal(t, original, updated.Files)
	require.NotNil(t, projects.updated)

	require.Len(t, messages.added, 2)
	require.Equal(t, "I've enhanced your Website! The project structure has been updated with new files and functionality.", messages.added[1].Content)
}

func TestRunRejectsConcurrentGeneration(t *testing.T) {
	generator, _, messages, _ := newTestGenerator(t)

	project := &models.Project{ID: uuid.New(), Name: "Demo", Type: "Website"}
	require.True(t, generator.begin(project.ID))

	_, err := generator.Run(context.Background(), project, "hello", "")
	require.Error(t, err)
	require.True(t, errs.IsGenerationInFlightError(err))

	var apiErr *errs.ApiErr
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, 409, apiErr.StatusCode)

	// A rejected submission leaves no trace in the append-only chat log.
	require.Empty(t, messages.added)

	// A different project is unaffected.
	other := &models.Project{ID: uuid.New(), Name: "Other", Type: "Website"}
	_, err = generator.Run(context.Background(), other, "hello", "")
	require.NoError(t, err)

	// Once released the original project can generate again.
	generator.end(project.ID)
	_, err = generator.Run(context.Background(), project, "hello", "")
	require.NoError(t, err)
}

func TestRunUserMessageFailureAbortsBeforeGeneration(t *testing.T) {
	generator, projects, messages, notifier := newTestGenerator(t)
	messages.err = errors.New("connection reset")
	messages.failSender = models.SenderUser

	project := &models.Project{ID: uuid.New(), Name: "Demo", Type: "Website"}
	_, err := generator.Run(context.Background(), project, "hello", "")
	require.Error(t, err)
	require.Nil(t, projects.updated)
	require.Empty(t, messages.added)
	require.Empty(t, notifier.typing)
}

func TestRunUpdateFailureSkipsSummary(t *testing.T) {
	generator, projects, messages, notifier := newTestGenerator(t)
	projects.err = errors.New("connection reset")

	project := &models.Project{ID: uuid.New(), Name: "Demo", Type: "Website"}
	_, err := generator.Run(context.Background(), project, "hello", "")
	require.Error(t, err)

	// The user message is already in the log; the AI summary never lands.
	require.Len(t, messages.added, 1)
	require.Equal(t, models.SenderUser, messages.added[0].Sender)
	require.Empty(t, notifier.messages)
}

func TestRunSummaryFailureDoesNotFailGeneration(t *testing.T) {
	generator, projects, messages, notifier := newTestGenerator(t)
	messages.err = errors.New("connection reset")
	messages.failSender = models.SenderAI

	project := &models.Project{ID: uuid.New(), Name: "Demo", Type: "Website"}
	updated, err := generator.Run(context.Background(), project, "hello", "")
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.NotNil(t, projects.updated)
	require.Len(t, messages.added, 1)
	require.Empty(t, notifier.messages)
}

func TestRunDefaultsProjectTypeFromProject(t *testing.T) {
	generator, projects, _, _ := newTestGenerator(t)

	project := &models.Project{ID: uuid.New(), Name: "Demo", Type: ProjectTypeReactApp}
	updated, err := generator.Run(context.Background(), project, "hello", "")
	require.NoError(t, err)
	require.Equal(t, ProjectTypeReactApp, updated.Type)
	require.NotNil(t, projects.updated.Files.FindByPath("src/App.jsx"))
}
