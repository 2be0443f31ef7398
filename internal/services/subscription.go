package services

import (
	"math"
	"time"

	"github.com/sloppysaint/mcqSurgery/internal/models"

	"gorm.io/gorm"
)

type SubscriptionService struct {
	db *gorm.DB
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db}
}

type Plan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Price        int      `json:"price"`
	Currency     string   `json:"currency"`
	DurationDays int      `json:"duration_days,omitempty"` // 0 = lifetime
	Features     []string `json:"features"`
}

var subscriptionPlans = []Plan{
	{
		ID:           "monthly",
		Name:         "Monthly Premium",
		Price:        299,
		Currency:     "INR",
		DurationDays: 30,
		Features: []string{
			"Access to 9000+ Premium MCQs",
			"Unlimited Mock Tests",
			"Detailed Performance Analytics",
			"WhatsApp Group Access",
			"Expert Doubt Resolution",
			"Mobile App Access",
		},
	},
	{
		ID:           "yearly",
		Name:         "Yearly Premium",
		Price:        2999,
		Currency:     "INR",
		DurationDays: 365,
		Features: []string{
			"Access to 9000+ Premium MCQs",
			"Unlimited Mock Tests",
			"Detailed Performance Analytics",
			"WhatsApp Group Access",
			"Expert Doubt Resolution",
			"Mobile App Access",
			"Priority Support",
			"2 Months Free (Best Value)",
		},
	},
	{
		ID:       "lifetime",
		Name:     "Lifetime Premium",
		Price:    9999,
		Currency: "INR",
		Features: []string{
			"Access to 9000+ Premium MCQs",
			"Unlimited Mock Tests",
			"Detailed Performance Analytics",
			"WhatsApp Group Access",
			"Expert Doubt Resolution",
			"Mobile App Access",
			"Priority Support",
			"Lifetime Updates",
			"One-time Payment",
		},
	},
}

func (s *SubscriptionService) Plans() []Plan {
	return subscriptionPlans
}

func (s *SubscriptionService) plan(planID string) *Plan {
	for i := range subscriptionPlans {
		if subscriptionPlans[i].ID == planID {
			return &subscriptionPlans[i]
		}
	}
	return nil
}

type SubscriptionStatus struct {
	Type          string     `json:"type"`
	IsActive      bool       `json:"is_active"`
	ExpiresAt     *time.Time `json:"expires_at"`
	DaysRemaining *int       `json:"days_remaining"`
}

func (s *SubscriptionService) Status(userID uint) (*SubscriptionStatus, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, notFound("user not found")
	}

	status := &SubscriptionStatus{
		Type:      user.SubscriptionType,
		IsActive:  user.HasPremiumAccess(),
		ExpiresAt: user.SubscriptionExpiresAt,
	}
	if user.SubscriptionType == models.SubscriptionPremium && user.SubscriptionExpiresAt != nil {
		days := int(math.Ceil(time.Until(*user.SubscriptionExpiresAt).Hours() / 24))
		status.DaysRemaining = &days
	}
	return status, nil
}

// Subscribe activates a premium plan. Payment is simulated: real gateway
// integration is out of scope and always reported as successful.
func (s *SubscriptionService) Subscribe(userID uint, planID string) (*SubscriptionStatus, *Plan, error) {
	plan := s.plan(planID)
	if plan == nil {
		return nil, nil, invalid("invalid subscription plan")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, nil, notFound("user not found")
	}

	user.SubscriptionType = models.SubscriptionPremium
	if plan.DurationDays > 0 {
		expiry := time.Now().AddDate(0, 0, plan.DurationDays)
		user.SubscriptionExpiresAt = &expiry
	} else {
		user.SubscriptionExpiresAt = nil
	}
	if err := s.db.Save(&user).Error; err != nil {
		return nil, nil, err
	}

	status, err := s.Status(userID)
	return status, plan, err
}

// Renew extends the subscription. When the current subscription is still
// active the new period starts at the current expiry, not today.
func (s *SubscriptionService) Renew(userID uint, planID string) (*SubscriptionStatus, *Plan, error) {
	plan := s.plan(planID)
	if plan == nil {
		return nil, nil, invalid("invalid subscription plan")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, nil, notFound("user not found")
	}

	user.SubscriptionType = models.SubscriptionPremium
	if plan.DurationDays > 0 {
		start := time.Now()
		if user.SubscriptionExpiresAt != nil && user.SubscriptionExpiresAt.After(start) {
			start = *user.SubscriptionExpiresAt
		}
		expiry := start.AddDate(0, 0, plan.DurationDays)
		user.SubscriptionExpiresAt = &expiry
	} else {
		user.SubscriptionExpiresAt = nil
	}
	if err := s.db.Save(&user).Error; err != nil {
		return nil, nil, err
	}

	status, err := s.Status(userID)
	return status, plan, err
}

func (s *SubscriptionService) Cancel(userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return notFound("user not found")
	}

	if user.SubscriptionType != models.SubscriptionPremium {
		return invalid("no active subscription to cancel")
	}

	user.SubscriptionType = models.SubscriptionFree
	user.SubscriptionExpiresAt = nil
	return s.db.Save(&user).Error
}
