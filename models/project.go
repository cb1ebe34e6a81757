package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is the persisted unit owning a generated file tree, a type label and
// a chat history. The tree is replaced wholesale after each successful
// generation or enhancement cycle, never patched at the node level.
type Project struct {
	ID          uuid.UUID    `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	OwnerID     uuid.UUID    `json:"ownerId" db:"owner_id" gorm:"type:uuid;not null;index"`
	Name        string       `json:"name" db:"name" gorm:"type:text;not null"`
	Description string       `json:"description" db:"description" gorm:"type:text"`
	Type        string       `json:"type" db:"type" gorm:"type:text;not null"`
	Files       FileNodeList `json:"files" gorm:"type:jsonb;not null;default:'[]'"`
	IsPublic    bool         `json:"isPublic" db:"is_public" gorm:"not null;default:false"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`
}

// HasFiles reports whether the project already carries a generated tree,
// which selects the enhance flow over the create flow.
func (p *Project) HasFiles() bool {
	return len(p.Files) > 0
}

// VisibleTo reports whether a caller may read the project: the owner always
// can, everyone else only when the project is public.
func (p *Project) VisibleTo(userID uuid.UUID) bool {
	return p.IsPublic || p.OwnerID == userID
}

// OwnedBy reports whether the caller owns the project.
func (p *Project) OwnedBy(userID uuid.UUID) bool {
	return p.OwnerID == userID
}
