package models

import "time"

type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_bookmark_unique" json:"user_id"`
	MCQID     uint      `gorm:"not null;uniqueIndex:idx_bookmark_unique" json:"mcq_id"`
	Notes     string    `gorm:"size:500" json:"notes,omitempty"`
	MCQ       MCQ       `gorm:"foreignKey:MCQID" json:"mcq,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
