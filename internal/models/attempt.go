package models

import "time"

// MCQAttempt is one user's answer to one question. Practice attempts use
// MockTestID 0 so the composite unique index still holds a single practice
// row per (user, mcq).
type MCQAttempt struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_attempt_unique;index:idx_attempt_user_type" json:"user_id"`
	MCQID          uint      `gorm:"not null;uniqueIndex:idx_attempt_unique" json:"mcq_id"`
	SelectedAnswer int       `gorm:"not null" json:"selected_answer"`
	IsCorrect      bool      `gorm:"not null" json:"is_correct"`
	TimeSpent      int       `gorm:"not null;default:0" json:"time_spent"` // seconds
	MockTestID     uint      `gorm:"not null;default:0;uniqueIndex:idx_attempt_unique" json:"mock_test_id,omitempty"`
	AttemptType    string    `gorm:"size:20;not null;default:'practice';index:idx_attempt_user_type" json:"attempt_type"`
	MCQ            MCQ       `gorm:"foreignKey:MCQID" json:"mcq,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const (
	AttemptTypePractice = "practice"
	AttemptTypeMockTest = "mock_test"
)
