package models

import "time"

type Reference struct {
	Book    string `json:"book,omitempty"`
	Chapter string `json:"chapter,omitempty"`
	Page    string `json:"page,omitempty"`
}

// MCQStatistics is the running aggregate kept on each question. Updates are
// incremental so no attempt history rescan is ever needed.
type MCQStatistics struct {
	TotalAttempts   int     `gorm:"not null;default:0" json:"total_attempts"`
	CorrectAttempts int     `gorm:"not null;default:0" json:"correct_attempts"`
	AverageTime     float64 `gorm:"not null;default:0" json:"average_time"`
}

// ApplyAttempt folds one attempt into the running totals and mean.
func (s *MCQStatistics) ApplyAttempt(isCorrect bool, timeSpent int) {
	s.TotalAttempts++
	if isCorrect {
		s.CorrectAttempts++
	}
	s.AverageTime = (s.AverageTime*float64(s.TotalAttempts-1) + float64(timeSpent)) / float64(s.TotalAttempts)
}

// SuccessRate returns the percentage of correct attempts, 0 when unattempted.
func (s MCQStatistics) SuccessRate() float64 {
	if s.TotalAttempts == 0 {
		return 0
	}
	return float64(s.CorrectAttempts) / float64(s.TotalAttempts) * 100
}

type MCQ struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Question      string        `gorm:"type:text;not null" json:"question"`
	Options       []string      `gorm:"serializer:json;not null" json:"options"`
	CorrectAnswer int           `gorm:"not null" json:"correct_answer"`
	Explanation   string        `gorm:"type:text" json:"explanation"`
	Topic         string        `gorm:"size:100;not null;index:idx_mcq_topic_difficulty" json:"topic"`
	Difficulty    string        `gorm:"size:20;not null;index:idx_mcq_topic_difficulty" json:"difficulty"`
	References    []Reference   `gorm:"serializer:json" json:"references,omitempty"`
	Tags          []string      `gorm:"serializer:json" json:"tags,omitempty"`
	IsPremium     bool          `gorm:"not null;default:false;index" json:"is_premium"`
	IsActive      bool          `gorm:"not null;default:true" json:"is_active"`
	CreatedByID   uint          `gorm:"index" json:"created_by_id,omitempty"`
	Statistics    MCQStatistics `gorm:"embedded;embeddedPrefix:stat_" json:"statistics"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

const (
	DifficultyBasic        = "Basic"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
	DifficultyMixed        = "Mixed"
)

var Topics = []string{
	"General Surgery",
	"GI Surgery",
	"Urology",
	"Pediatric Surgery",
	"Cardiothoracic Surgery",
	"Neurosurgery",
	"Orthopedics",
	"Plastic Surgery",
	"Vascular Surgery",
	"Trauma Surgery",
	"Oncology",
	"Endocrine Surgery",
	"Hepatobiliary Surgery",
	"Transplant Surgery",
	"Emergency Surgery",
	"Surgical Anatomy",
	"Surgical Pathology",
	"Surgical Physiology",
	"Pre and Post Operative Care",
	"Surgical Instruments",
	"Anesthesia",
	"Other",
}

func ValidTopic(topic string) bool {
	for _, t := range Topics {
		if t == topic {
			return true
		}
	}
	return false
}

func ValidDifficulty(difficulty string) bool {
	switch difficulty {
	case DifficultyBasic, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}
