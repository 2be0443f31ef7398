package database

import (
	"fmt"
	"log"

	"github.com/sloppysaint/mcqSurgery/internal/config"
	"github.com/sloppysaint/mcqSurgery/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey so services can surface them as conflicts.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	log.Println("database connected")
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.MCQ{},
		&models.MockTest{},
		&models.MockTestQuestion{},
		&models.MCQAttempt{},
		&models.MockTestAttempt{},
		&models.Bookmark{},
		&models.Discussion{},
		&models.DiscussionReply{},
		&models.DiscussionLike{},
	)
	if err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}
	log.Println("database migrated")
}
