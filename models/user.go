package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the account record projects belong to. Session issuance lives in an
// external identity service; this backend only validates bearer tokens and
// reads the user record they point at.
type User struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Email           string    `json:"email" db:"email" gorm:"type:text;unique"`
	FirstName       string    `json:"firstName" db:"first_name" gorm:"type:text"`
	LastName        string    `json:"lastName" db:"last_name" gorm:"type:text"`
	ProfileImageURL string    `json:"profileImageUrl" db:"profile_image_url" gorm:"type:text"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}
