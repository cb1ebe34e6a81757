package database

import (
	"github.com/peaks-ai/peaks-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	projectRepo     *ProjectRepo
	chatMessageRepo *ChatMessageRepo
	userRepo        *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:     NewProjectRepo(db),
		chatMessageRepo: NewChatMessageRepo(db),
		userRepo:        NewUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ChatMessageRepo() *ChatMessageRepo {
	return d.chatMessageRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ChatMessage{},
	)
}
