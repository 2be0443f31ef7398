package services_test

import (
	"errors"
	"testing"

	"github.com/sloppysaint/mcqSurgery/internal/models"
	"github.com/sloppysaint/mcqSurgery/internal/services"

	"gorm.io/gorm"
)

type testFixture struct {
	db        *gorm.DB
	service   *services.MockTestService
	test      *models.MockTest
	questions []*models.MCQ
}

// setupMockTest builds a three-question test with correct answers 1, 0, 2.
func setupMockTest(t *testing.T) *testFixture {
	db := newTestDB(t)
	service := services.NewMockTestService(db, services.NewScoringService())

	q1 := createMCQ(t, db, 1, false)
	q2 := createMCQ(t, db, 0, false)
	q3 := createMCQ(t, db, 2, false)
	test := createMockTest(t, db, false, q1.ID, q2.ID, q3.ID)

	return &testFixture{db: db, service: service, test: test, questions: []*models.MCQ{q1, q2, q3}}
}

func TestStartTestReturnsOrderedQuestionsWithoutAnswers(t *testing.T) {
	f := setupMockTest(t)
	user := createUser(t, f.db, "alice", false)

	result, err := f.service.StartTest(f.test.ID, user)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if len(result.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(result.Questions))
	}
	for i, q := range result.Questions {
		if q.ID != f.questions[i].ID {
			t.Fatalf("expected question %d at position %d, got %d", f.questions[i].ID, i, q.ID)
		}
	}
	if result.MockTest.TotalQuestions != 3 {
		t.Fatalf("expected delivered count 3, got %d", result.MockTest.TotalQuestions)
	}
	if result.StartTime.IsZero() {
		t.Fatalf("expected a server-side start time")
	}
}

func TestStartTestFiltersPremiumQuestionsForFreeUsers(t *testing.T) {
	f := setupMockTest(t)
	premiumQ := createMCQ(t, f.db, 0, true)
	ref := models.MockTestQuestion{MockTestID: f.test.ID, MCQID: premiumQ.ID, Position: 3}
	if err := f.db.Create(&ref).Error; err != nil {
		t.Fatalf("add premium question: %v", err)
	}

	free := createUser(t, f.db, "free", false)
	result, err := f.service.StartTest(f.test.ID, free)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if len(result.Questions) != 3 {
		t.Fatalf("expected premium question dropped, got %d questions", len(result.Questions))
	}
	// The delivered count follows the filtered set, not the stored nominal.
	if result.MockTest.TotalQuestions != 3 {
		t.Fatalf("expected delivered count 3, got %d", result.MockTest.TotalQuestions)
	}

	premium := createUser(t, f.db, "premium", true)
	result, err = f.service.StartTest(f.test.ID, premium)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if len(result.Questions) != 4 {
		t.Fatalf("expected all 4 questions for premium user, got %d", len(result.Questions))
	}
}

func TestStartPremiumTestGated(t *testing.T) {
	db := newTestDB(t)
	service := services.NewMockTestService(db, services.NewScoringService())

	q := createMCQ(t, db, 0, false)
	test := createMockTest(t, db, true, q.ID)
	free := createUser(t, db, "free", false)

	if _, err := service.StartTest(test.ID, free); !errors.Is(err, services.ErrPremiumRequired) {
		t.Fatalf("expected premium gate, got %v", err)
	}
	if _, err := service.SubmitTest(test.ID, free, submitInput()); !errors.Is(err, services.ErrPremiumRequired) {
		t.Fatalf("expected premium gate on submit, got %v", err)
	}
}

func TestSubmitTestGradesAndRecordsAttempts(t *testing.T) {
	f := setupMockTest(t)
	user := createUser(t, f.db, "alice", false)

	result, err := f.service.SubmitTest(f.test.ID, user, submitInput(
		services.SubmittedAnswer{MCQID: f.questions[0].ID, SelectedAnswer: 1, TimeSpent: 40},
		services.SubmittedAnswer{MCQID: f.questions[1].ID, SelectedAnswer: 1, TimeSpent: 35},
	))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if result.CorrectAnswers != 1 || result.WrongAnswers != 1 || result.Unanswered != 1 {
		t.Fatalf("expected 1/1/1, got %d/%d/%d",
			result.CorrectAnswers, result.WrongAnswers, result.Unanswered)
	}
	if result.Score != 33.33 {
		t.Fatalf("expected score 33.33, got %v", result.Score)
	}
	if result.Rank == nil || *result.Rank != 1 {
		t.Fatalf("expected rank 1 for the first attempt, got %v", result.Rank)
	}
	if result.TotalTimeSpent < 590 || result.TotalTimeSpent > 610 {
		t.Fatalf("expected roughly 600s elapsed, got %d", result.TotalTimeSpent)
	}

	var rows int64
	f.db.Model(&models.MCQAttempt{}).
		Where("user_id = ? AND mock_test_id = ? AND attempt_type = ?",
			user.ID, f.test.ID, models.AttemptTypeMockTest).
		Count(&rows)
	if rows != 2 {
		t.Fatalf("expected 2 per-question rows, got %d", rows)
	}

	var q1 models.MCQ
	if err := f.db.First(&q1, f.questions[0].ID).Error; err != nil {
		t.Fatalf("reload question: %v", err)
	}
	if q1.Statistics.TotalAttempts != 1 || q1.Statistics.CorrectAttempts != 1 {
		t.Fatalf("expected question stats updated, got %+v", q1.Statistics)
	}

	var test models.MockTest
	if err := f.db.First(&test, f.test.ID).Error; err != nil {
		t.Fatalf("reload test: %v", err)
	}
	if test.Statistics.TotalAttempts != 1 {
		t.Fatalf("expected test stats updated, got %+v", test.Statistics)
	}
	// The running aggregate holds the unrounded score.
	if test.Statistics.AverageScore <= 33.33 || test.Statistics.AverageScore >= 33.34 {
		t.Fatalf("expected unrounded average near 33.333, got %v", test.Statistics.AverageScore)
	}
	if test.Statistics.HighestScore != test.Statistics.AverageScore {
		t.Fatalf("expected a single attempt to set the highest score")
	}
	if test.Statistics.LowestScore != test.Statistics.AverageScore {
		t.Fatalf("expected a single attempt to set the lowest score")
	}
}

func TestSubmitTestRanksAgainstEarlierAttempts(t *testing.T) {
	f := setupMockTest(t)
	alice := createUser(t, f.db, "alice", false)
	bob := createUser(t, f.db, "bob", false)
	carol := createUser(t, f.db, "carol", false)

	perfect := submitInput(
		services.SubmittedAnswer{MCQID: f.questions[0].ID, SelectedAnswer: 1},
		services.SubmittedAnswer{MCQID: f.questions[1].ID, SelectedAnswer: 0},
		services.SubmittedAnswer{MCQID: f.questions[2].ID, SelectedAnswer: 2},
	)
	partial := submitInput(
		services.SubmittedAnswer{MCQID: f.questions[0].ID, SelectedAnswer: 1},
	)

	first, err := f.service.SubmitTest(f.test.ID, alice, perfect)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if *first.Rank != 1 {
		t.Fatalf("expected rank 1, got %d", *first.Rank)
	}

	second, err := f.service.SubmitTest(f.test.ID, bob, partial)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if *second.Rank != 2 {
		t.Fatalf("expected rank 2 below a perfect score, got %d", *second.Rank)
	}

	// A tied score shares the rank: one attempt is strictly higher.
	third, err := f.service.SubmitTest(f.test.ID, carol, partial)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if *third.Rank != 2 {
		t.Fatalf("expected tied rank 2, got %d", *third.Rank)
	}

	// Earlier ranks are never refreshed.
	var aliceAttempt models.MockTestAttempt
	if err := f.db.Where("user_id = ?", alice.ID).First(&aliceAttempt).Error; err != nil {
		t.Fatalf("load attempt: %v", err)
	}
	if aliceAttempt.Rank == nil || *aliceAttempt.Rank != 1 {
		t.Fatalf("expected the first rank to stay 1, got %v", aliceAttempt.Rank)
	}
}

func TestSubmitTestRetakeConflicts(t *testing.T) {
	f := setupMockTest(t)
	user := createUser(t, f.db, "alice", false)

	in := submitInput(services.SubmittedAnswer{MCQID: f.questions[0].ID, SelectedAnswer: 1})
	if _, err := f.service.SubmitTest(f.test.ID, user, in); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := f.service.SubmitTest(f.test.ID, user, in); !errors.Is(err, services.ErrConflict) {
		t.Fatalf("expected conflict on retake, got %v", err)
	}
}

func TestLeaderboardOrdersByScore(t *testing.T) {
	f := setupMockTest(t)
	alice := createUser(t, f.db, "alice", false)
	bob := createUser(t, f.db, "bob", false)

	if _, err := f.service.SubmitTest(f.test.ID, alice, submitInput(
		services.SubmittedAnswer{MCQID: f.questions[0].ID, SelectedAnswer: 1},
	)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := f.service.SubmitTest(f.test.ID, bob, submitInput(
		services.SubmittedAnswer{MCQID: f.questions[0].ID, SelectedAnswer: 1},
		services.SubmittedAnswer{MCQID: f.questions[1].ID, SelectedAnswer: 0},
	)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	entries, err := f.service.Leaderboard(f.test.ID, 10)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != bob.ID || entries[1].UserID != alice.ID {
		t.Fatalf("expected bob to lead, got %+v", entries)
	}
	if entries[0].Name != "bob" {
		t.Fatalf("expected the user name preloaded, got %q", entries[0].Name)
	}
}

func TestGetResultsOwnAttemptsOnly(t *testing.T) {
	f := setupMockTest(t)
	alice := createUser(t, f.db, "alice", false)
	bob := createUser(t, f.db, "bob", false)

	result, err := f.service.SubmitTest(f.test.ID, alice, submitInput(
		services.SubmittedAnswer{MCQID: f.questions[0].ID, SelectedAnswer: 1},
	))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	attempt, err := f.service.GetResults(result.AttemptID, alice.ID)
	if err != nil {
		t.Fatalf("get results failed: %v", err)
	}
	if len(attempt.Answers) != 1 || !attempt.Answers[0].IsCorrect {
		t.Fatalf("expected the stored answer detail, got %+v", attempt.Answers)
	}

	if _, err := f.service.GetResults(result.AttemptID, bob.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found for another user's attempt, got %v", err)
	}
}
