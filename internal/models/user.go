package models

import "time"

type User struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	Name                  string     `gorm:"size:50;not null" json:"name"`
	Email                 string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash          string     `gorm:"size:255;not null" json:"-"`
	SubscriptionType      string     `gorm:"size:10;not null;default:'free'" json:"subscription_type"`
	SubscriptionExpiresAt *time.Time `json:"subscription_expires_at,omitempty"`
	Phone                 string     `gorm:"size:20" json:"phone,omitempty"`
	College               string     `gorm:"size:255" json:"college,omitempty"`
	YearOfStudy           string     `gorm:"size:50" json:"year_of_study,omitempty"`
	TargetExam            string     `gorm:"size:20" json:"target_exam,omitempty"`
	Avatar                string     `gorm:"size:500" json:"avatar,omitempty"`
	IsActive              bool       `gorm:"not null;default:true" json:"is_active"`
	LastLogin             *time.Time `json:"last_login,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

const (
	SubscriptionFree    = "free"
	SubscriptionPremium = "premium"
)

// HasPremiumAccess reports whether the user can see premium content right now.
// A nil expiry on a premium account means a lifetime subscription.
func (u *User) HasPremiumAccess() bool {
	if u.SubscriptionType != SubscriptionPremium {
		return false
	}
	return u.SubscriptionExpiresAt == nil || u.SubscriptionExpiresAt.After(time.Now())
}
