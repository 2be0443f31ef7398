package services_test

import (
	"testing"
	"time"

	"github.com/sloppysaint/mcqSurgery/internal/models"
	"github.com/sloppysaint/mcqSurgery/internal/services"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
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
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string, premium bool) *models.User {
	t.Helper()

	user := models.User{
		Name:             name,
		Email:            name + "@test.local",
		PasswordHash:     "x",
		SubscriptionType: models.SubscriptionFree,
		IsActive:         true,
	}
	if premium {
		expiry := time.Now().Add(30 * 24 * time.Hour)
		user.SubscriptionType = models.SubscriptionPremium
		user.SubscriptionExpiresAt = &expiry
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func createMCQ(t *testing.T, db *gorm.DB, correct int, premium bool) *models.MCQ {
	t.Helper()

	mcq := models.MCQ{
		Question:      "Which structure passes through the foramen ovale?",
		Options:       []string{"Mandibular nerve", "Maxillary nerve", "Facial nerve", "Optic nerve"},
		CorrectAnswer: correct,
		Explanation:   "The mandibular division of the trigeminal nerve passes through the foramen ovale.",
		Topic:         "Surgical Anatomy",
		Difficulty:    "Basic",
		IsPremium:     premium,
		IsActive:      true,
	}
	if err := db.Create(&mcq).Error; err != nil {
		t.Fatalf("create mcq: %v", err)
	}
	return &mcq
}

func createMockTest(t *testing.T, db *gorm.DB, premium bool, questionIDs ...uint) *models.MockTest {
	t.Helper()

	test := models.MockTest{
		Title:          "Anatomy Mock",
		Duration:       30,
		TotalQuestions: len(questionIDs),
		PassingScore:   60,
		IsPremium:      premium,
		IsActive:       true,
		Category:       models.TestCategoryMixed,
		Statistics:     models.MockTestStatistics{LowestScore: 100},
	}
	if err := db.Create(&test).Error; err != nil {
		t.Fatalf("create mock test: %v", err)
	}
	for i, id := range questionIDs {
		ref := models.MockTestQuestion{MockTestID: test.ID, MCQID: id, Position: i}
		if err := db.Create(&ref).Error; err != nil {
			t.Fatalf("create question ref: %v", err)
		}
	}
	return &test
}

func submitInput(answers ...services.SubmittedAnswer) services.SubmitTestInput {
	return services.SubmitTestInput{
		Answers:   answers,
		StartTime: time.Now().Add(-10 * time.Minute),
	}
}
