package jobs

import (
	"testing"
	"time"

	"github.com/sloppysaint/mcqSurgery/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestActivateScheduledTests(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.MockTest{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	due := models.MockTest{Title: "due", Duration: 30, IsActive: false, ScheduledAt: &past}
	notDue := models.MockTest{Title: "not due", Duration: 30, IsActive: false, ScheduledAt: &future}
	unscheduled := models.MockTest{Title: "draft", Duration: 30, IsActive: false}
	for _, test := range []*models.MockTest{&due, &notDue, &unscheduled} {
		if err := db.Create(test).Error; err != nil {
			t.Fatalf("seed test: %v", err)
		}
	}

	New(db).activateScheduledTests()

	var reloaded models.MockTest
	if err := db.First(&reloaded, due.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.IsActive {
		t.Fatalf("expected the due test activated")
	}

	if err := db.First(&reloaded, notDue.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.IsActive {
		t.Fatalf("expected the future test untouched")
	}

	if err := db.First(&reloaded, unscheduled.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.IsActive {
		t.Fatalf("expected the unscheduled test untouched")
	}
}
