package database

import (
	"github.com/google/uuid"
	"github.com/peaks-ai/peaks-backend/models"
	"gorm.io/gorm"
)

type ChatMessageRepo struct {
	db *gorm.DB
}

func NewChatMessageRepo(db *gorm.DB) *ChatMessageRepo {
	return &ChatMessageRepo{db}
}

// FindByProject returns a project's chat log ordered by creation time.
func (r *ChatMessageRepo) FindByProject(projectID uuid.UUID) ([]*models.ChatMessage, error) {
	var messages []*models.ChatMessage
	err := r.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&messages).Error
	return messages, err
}

// Add appends a message to the log. The log is append-only: there is no
// update or single-message delete.
func (r *ChatMessageRepo) Add(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}
