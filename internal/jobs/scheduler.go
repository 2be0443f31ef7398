package jobs

import (
	"log"
	"time"

	"github.com/sloppysaint/mcqSurgery/internal/models"

	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

// Scheduler runs background maintenance tasks.
type Scheduler struct {
	scheduler *gocron.Scheduler
	db        *gorm.DB
}

func New(db *gorm.DB) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		db:        db,
	}
}

func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.activateScheduledTests)
	s.scheduler.StartAsync()
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// activateScheduledTests flips mock tests live once their scheduled time has
// passed.
func (s *Scheduler) activateScheduledTests() {
	result := s.db.Model(&models.MockTest{}).
		Where("is_active = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?", false, time.Now()).
		Update("is_active", true)
	if result.Error != nil {
		log.Printf("scheduled test activation failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("activated %d scheduled mock tests", result.RowsAffected)
	}
}
