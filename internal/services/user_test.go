package services_test

import (
	"testing"
	"time"

	"github.com/sloppysaint/mcqSurgery/internal/models"
	"github.com/sloppysaint/mcqSurgery/internal/services"

	"gorm.io/gorm"
)

func seedPracticeAttempt(t *testing.T, db *gorm.DB, userID, mcqID uint, correct bool) {
	t.Helper()

	attempt := models.MCQAttempt{
		UserID:         userID,
		MCQID:          mcqID,
		SelectedAnswer: 0,
		IsCorrect:      correct,
		TimeSpent:      30,
		AttemptType:    models.AttemptTypePractice,
	}
	if err := db.Create(&attempt).Error; err != nil {
		t.Fatalf("seed attempt: %v", err)
	}
}

func TestDashboardAggregates(t *testing.T) {
	db := newTestDB(t)
	service := services.NewUserService(db)

	user := createUser(t, db, "alice", false)
	q1 := createMCQ(t, db, 0, false)
	q2 := createMCQ(t, db, 0, false)
	q3 := createMCQ(t, db, 0, false)

	seedPracticeAttempt(t, db, user.ID, q1.ID, true)
	seedPracticeAttempt(t, db, user.ID, q2.ID, true)
	seedPracticeAttempt(t, db, user.ID, q3.ID, false)

	bookmark := models.Bookmark{UserID: user.ID, MCQID: q1.ID}
	if err := db.Create(&bookmark).Error; err != nil {
		t.Fatalf("seed bookmark: %v", err)
	}

	dash, err := service.Dashboard(user.ID)
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}

	if dash.Stats.TotalAttempted != 3 || dash.Stats.CorrectAnswers != 2 {
		t.Fatalf("expected 3 attempts with 2 correct, got %+v", dash.Stats)
	}
	if dash.Stats.Accuracy != 66.67 {
		t.Fatalf("expected accuracy 66.67, got %v", dash.Stats.Accuracy)
	}
	if dash.Stats.TotalBookmarks != 1 {
		t.Fatalf("expected 1 bookmark, got %d", dash.Stats.TotalBookmarks)
	}

	if len(dash.TopicPerformance) != 1 {
		t.Fatalf("expected a single topic bucket, got %+v", dash.TopicPerformance)
	}
	topic := dash.TopicPerformance[0]
	if topic.Topic != "Surgical Anatomy" || topic.Total != 3 || topic.Correct != 2 {
		t.Fatalf("unexpected topic performance: %+v", topic)
	}
}

func TestProgressGroupsByDayAndWeek(t *testing.T) {
	db := newTestDB(t)
	service := services.NewUserService(db)

	user := createUser(t, db, "alice", false)
	q1 := createMCQ(t, db, 0, false)
	q2 := createMCQ(t, db, 0, false)

	seedPracticeAttempt(t, db, user.ID, q1.ID, true)
	seedPracticeAttempt(t, db, user.ID, q2.ID, false)

	test := createMockTest(t, db, false, q1.ID, q2.ID)
	now := time.Now()
	attempt := models.MockTestAttempt{
		UserID:      user.ID,
		MockTestID:  test.ID,
		Score:       50,
		StartedAt:   now.Add(-time.Hour),
		CompletedAt: now,
		IsCompleted: true,
	}
	if err := db.Create(&attempt).Error; err != nil {
		t.Fatalf("seed test attempt: %v", err)
	}

	progress, err := service.Progress(user.ID, 30)
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}

	if len(progress.DailyProgress) != 1 {
		t.Fatalf("expected one daily bucket, got %+v", progress.DailyProgress)
	}
	day := progress.DailyProgress[0]
	if day.Date != now.Format("2006-01-02") || day.Total != 2 || day.Correct != 1 || day.Accuracy != 50 {
		t.Fatalf("unexpected daily bucket: %+v", day)
	}

	if len(progress.WeeklyMockTests) != 1 {
		t.Fatalf("expected one weekly bucket, got %+v", progress.WeeklyMockTests)
	}
	week := progress.WeeklyMockTests[0]
	if week.Count != 1 || week.AverageScore != 50 {
		t.Fatalf("unexpected weekly bucket: %+v", week)
	}
}

func TestUpdateProfileKeepsNameWhenEmpty(t *testing.T) {
	db := newTestDB(t)
	service := services.NewUserService(db)
	user := createUser(t, db, "alice", false)

	updated, err := service.UpdateProfile(user.ID, services.ProfileInput{
		College:    "AIIMS Delhi",
		TargetExam: "NEET SS",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "alice" {
		t.Fatalf("expected the name preserved, got %q", updated.Name)
	}
	if updated.College != "AIIMS Delhi" || updated.TargetExam != "NEET SS" {
		t.Fatalf("unexpected profile: %+v", updated)
	}
}

func TestAttemptsPagination(t *testing.T) {
	db := newTestDB(t)
	service := services.NewUserService(db)

	user := createUser(t, db, "alice", false)
	for i := 0; i < 5; i++ {
		q := createMCQ(t, db, 0, false)
		seedPracticeAttempt(t, db, user.ID, q.ID, i%2 == 0)
	}

	attempts, total, err := service.Attempts(user.ID, 1, 3)
	if err != nil {
		t.Fatalf("attempts failed: %v", err)
	}
	if total != 5 || len(attempts) != 3 {
		t.Fatalf("expected page of 3 out of 5, got %d of %d", len(attempts), total)
	}

	attempts, _, err = service.Attempts(user.ID, 2, 3)
	if err != nil {
		t.Fatalf("attempts failed: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 on the last page, got %d", len(attempts))
	}
}
