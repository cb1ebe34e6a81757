package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Message senders. The chat log only ever contains these two.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// ChatMessage is one entry in a project's append-only chat log, ordered by
// creation time. Messages are never mutated or deleted in normal flow.
type ChatMessage struct {
	ID        uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID uuid.UUID      `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index"`
	Sender    string         `json:"sender" db:"sender" gorm:"type:text;not null"`
	Content   string         `json:"content" db:"content" gorm:"type:text;not null"`
	Metadata  datatypes.JSON `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
}
