package models

import "time"

// MockTestStatistics is the running aggregate kept on each mock test.
// LowestScore starts at 100 and HighestScore at 0 so the first attempt sets
// both bounds.
type MockTestStatistics struct {
	TotalAttempts int     `gorm:"not null;default:0" json:"total_attempts"`
	AverageScore  float64 `gorm:"not null;default:0" json:"average_score"`
	HighestScore  float64 `gorm:"not null;default:0" json:"highest_score"`
	LowestScore   float64 `gorm:"not null;default:100" json:"lowest_score"`
}

// ApplyScore folds one submission score into the running mean and bounds.
func (s *MockTestStatistics) ApplyScore(score float64) {
	s.TotalAttempts++
	s.AverageScore = (s.AverageScore*float64(s.TotalAttempts-1) + score) / float64(s.TotalAttempts)
	if score > s.HighestScore {
		s.HighestScore = score
	}
	if score < s.LowestScore {
		s.LowestScore = score
	}
}

type MockTest struct {
	ID             uint               `gorm:"primaryKey" json:"id"`
	Title          string             `gorm:"size:255;not null" json:"title"`
	Description    string             `gorm:"type:text" json:"description,omitempty"`
	Duration       int                `gorm:"not null" json:"duration"` // minutes
	TotalQuestions int                `gorm:"not null;default:0" json:"total_questions"`
	PassingScore   int                `gorm:"not null;default:60" json:"passing_score"`
	IsPremium      bool               `gorm:"not null;default:false;index:idx_test_category_premium" json:"is_premium"`
	// No column default: a scheduled test is created inactive and gorm
	// would otherwise overwrite the explicit false on insert.
	IsActive       bool               `gorm:"not null;index" json:"is_active"`
	ScheduledAt    *time.Time         `gorm:"index" json:"scheduled_at,omitempty"`
	Category       string             `gorm:"size:20;not null;default:'Mixed';index:idx_test_category_premium" json:"category"`
	Topics         []string           `gorm:"serializer:json" json:"topics,omitempty"`
	Difficulty     string             `gorm:"size:20;not null;default:'Mixed'" json:"difficulty"`
	Instructions   []string           `gorm:"serializer:json" json:"instructions,omitempty"`
	CreatedByID    uint               `gorm:"index" json:"created_by_id,omitempty"`
	Statistics     MockTestStatistics `gorm:"embedded;embeddedPrefix:stat_" json:"statistics"`
	Questions      []MCQ              `gorm:"-" json:"questions,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// MockTestQuestion keeps the ordered question list of a mock test.
type MockTestQuestion struct {
	MockTestID uint `gorm:"primaryKey" json:"mock_test_id"`
	MCQID      uint `gorm:"primaryKey" json:"mcq_id"`
	Position   int  `gorm:"not null" json:"position"`
}

const (
	TestCategoryNEETSS    = "NEET SS"
	TestCategoryINISS     = "INI SS"
	TestCategoryMCH       = "MCH"
	TestCategoryTopicWise = "Topic Wise"
	TestCategoryMixed     = "Mixed"
)

func ValidTestCategory(category string) bool {
	switch category {
	case TestCategoryNEETSS, TestCategoryINISS, TestCategoryMCH, TestCategoryTopicWise, TestCategoryMixed:
		return true
	}
	return false
}
