package models

import "time"

type Discussion struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	UserID       uint              `gorm:"not null;index" json:"user_id"`
	Title        string            `gorm:"size:200;not null" json:"title"`
	Content      string            `gorm:"type:text;not null" json:"content"`
	Category     string            `gorm:"size:20;not null;default:'doubt';index:idx_discussion_cat_topic" json:"category"`
	Topic        string            `gorm:"size:100;index:idx_discussion_cat_topic" json:"topic,omitempty"`
	RelatedMCQID *uint             `json:"related_mcq_id,omitempty"`
	IsResolved   bool              `gorm:"not null;default:false" json:"is_resolved"`
	IsPinned     bool              `gorm:"not null;default:false;index:idx_discussion_pinned" json:"is_pinned"`
	Views        int               `gorm:"not null;default:0" json:"views"`
	User         User              `gorm:"foreignKey:UserID" json:"-"`
	Replies      []DiscussionReply `gorm:"foreignKey:DiscussionID" json:"replies,omitempty"`
	Likes        []DiscussionLike  `gorm:"foreignKey:DiscussionID" json:"likes,omitempty"`
	CreatedAt    time.Time         `gorm:"index:idx_discussion_pinned" json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type DiscussionReply struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DiscussionID  uint      `gorm:"not null;index" json:"discussion_id"`
	UserID        uint      `gorm:"not null" json:"user_id"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	IsExpertReply bool      `gorm:"not null;default:false" json:"is_expert_reply"`
	CreatedAt     time.Time `json:"created_at"`
}

// DiscussionLike holds one like per (discussion, user); the unique index
// rejects duplicates at the storage boundary.
type DiscussionLike struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	DiscussionID uint      `gorm:"not null;uniqueIndex:idx_like_unique" json:"discussion_id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_like_unique" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	DiscussionCategoryDoubt         = "doubt"
	DiscussionCategoryGeneral       = "general"
	DiscussionCategoryStudyMaterial = "study_material"
	DiscussionCategoryExamStrategy  = "exam_strategy"
	DiscussionCategoryOther         = "other"
)

func ValidDiscussionCategory(category string) bool {
	switch category {
	case DiscussionCategoryDoubt, DiscussionCategoryGeneral, DiscussionCategoryStudyMaterial,
		DiscussionCategoryExamStrategy, DiscussionCategoryOther:
		return true
	}
	return false
}
