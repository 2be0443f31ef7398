package models

import "time"

// TestAnswer is one graded answer inside a mock test submission.
type TestAnswer struct {
	MCQID          uint `json:"mcq_id"`
	SelectedAnswer int  `json:"selected_answer"`
	IsCorrect      bool `json:"is_correct"`
	TimeSpent      int  `json:"time_spent"` // seconds
}

// MockTestAttempt is one user's complete run through a mock test. The record
// is immutable after creation except for rank assignment.
type MockTestAttempt struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	UserID         uint         `gorm:"not null;index:idx_test_attempt_user" json:"user_id"`
	MockTestID     uint         `gorm:"not null;index:idx_test_attempt_score" json:"mock_test_id"`
	Answers        []TestAnswer `gorm:"serializer:json" json:"answers"`
	Score          float64      `gorm:"not null;index:idx_test_attempt_score" json:"score"`
	TotalQuestions int          `gorm:"not null" json:"total_questions"`
	CorrectAnswers int          `gorm:"not null" json:"correct_answers"`
	WrongAnswers   int          `gorm:"not null" json:"wrong_answers"`
	Unanswered     int          `gorm:"not null;default:0" json:"unanswered"`
	TotalTimeSpent int          `gorm:"not null" json:"total_time_spent"` // seconds
	StartedAt      time.Time    `gorm:"not null" json:"started_at"`
	CompletedAt    time.Time    `gorm:"not null" json:"completed_at"`
	IsCompleted    bool         `gorm:"not null;default:true" json:"is_completed"`
	Rank           *int         `json:"rank"`
	User           User         `gorm:"foreignKey:UserID" json:"-"`
	MockTest       MockTest     `gorm:"foreignKey:MockTestID" json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
}
