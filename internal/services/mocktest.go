package services

import (
	"errors"
	"time"

	"github.com/sloppysaint/mcqSurgery/internal/models"

	"gorm.io/gorm"
)

type MockTestService struct {
	db      *gorm.DB
	scoring *ScoringService
}

func NewMockTestService(db *gorm.DB, scoring *ScoringService) *MockTestService {
	return &MockTestService{db: db, scoring: scoring}
}

// loadQuestions resolves a test's question list in its stored order.
func (s *MockTestService) loadQuestions(testID uint) []models.MCQ {
	var refs []models.MockTestQuestion
	s.db.Where("mock_test_id = ?", testID).Order("position ASC").Find(&refs)
	if len(refs) == 0 {
		return nil
	}

	ids := make([]uint, len(refs))
	for i, ref := range refs {
		ids[i] = ref.MCQID
	}

	var mcqs []models.MCQ
	s.db.Where("id IN ?", ids).Find(&mcqs)

	byID := make(map[uint]models.MCQ, len(mcqs))
	for _, m := range mcqs {
		byID[m.ID] = m
	}

	ordered := make([]models.MCQ, 0, len(refs))
	for _, ref := range refs {
		if m, ok := byID[ref.MCQID]; ok {
			ordered = append(ordered, m)
		}
	}
	return ordered
}

type MockTestFilter struct {
	Category   string
	Difficulty string
	Page       int
	Limit      int
}

// List returns active mock tests visible to the caller, without question
// lists. The premium filter runs inside the query so pagination counts stay
// correct.
func (s *MockTestService) List(user *models.User, filter MockTestFilter) ([]models.MockTest, int64, error) {
	query := s.db.Model(&models.MockTest{}).Where("is_active = ?", true)

	if user == nil || !user.HasPremiumAccess() {
		query = query.Where("is_premium = ?", false)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit, 25)
	var tests []models.MockTest
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&tests).Error
	if err != nil {
		return nil, 0, err
	}
	return tests, total, nil
}

// Get returns a mock test (question contents excluded) plus the caller's
// previous attempts.
func (s *MockTestService) Get(testID uint, user *models.User) (*models.MockTest, []models.MockTestAttempt, error) {
	var test models.MockTest
	if err := s.db.First(&test, testID).Error; err != nil {
		return nil, nil, notFound("mock test not found")
	}

	if test.IsPremium && (user == nil || !user.HasPremiumAccess()) {
		return nil, nil, premiumRequired("premium subscription required to access this mock test")
	}

	var attempts []models.MockTestAttempt
	if user != nil {
		s.db.Where("user_id = ? AND mock_test_id = ?", user.ID, testID).
			Order("completed_at DESC").
			Find(&attempts)
	}

	return &test, attempts, nil
}

type MockTestInput struct {
	Title        string
	Description  string
	Duration     int
	QuestionIDs  []uint
	PassingScore int
	IsPremium    bool
	ScheduledAt  *time.Time
	Category     string
	Topics       []string
	Difficulty   string
	Instructions []string
}

func (s *MockTestService) validateQuestionIDs(ids []uint) error {
	if len(ids) == 0 {
		return invalid("at least one question is required")
	}
	var count int64
	if err := s.db.Model(&models.MCQ{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != len(ids) {
		return invalid("one or more questions do not exist")
	}
	return nil
}

func (s *MockTestService) Create(userID uint, in MockTestInput) (*models.MockTest, error) {
	if in.Category != "" && !models.ValidTestCategory(in.Category) {
		return nil, invalid("invalid category")
	}
	if err := s.validateQuestionIDs(in.QuestionIDs); err != nil {
		return nil, err
	}

	test := models.MockTest{
		Title:          in.Title,
		Description:    in.Description,
		Duration:       in.Duration,
		TotalQuestions: len(in.QuestionIDs),
		PassingScore:   in.PassingScore,
		IsPremium:      in.IsPremium,
		IsActive:       in.ScheduledAt == nil,
		ScheduledAt:    in.ScheduledAt,
		Category:       in.Category,
		Topics:         in.Topics,
		Difficulty:     in.Difficulty,
		Instructions:   in.Instructions,
		CreatedByID:    userID,
		Statistics:     models.MockTestStatistics{LowestScore: 100},
	}
	if test.Category == "" {
		test.Category = models.TestCategoryMixed
	}
	if test.Difficulty == "" {
		test.Difficulty = models.DifficultyMixed
	}
	if test.PassingScore == 0 {
		test.PassingScore = 60
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&test).Error; err != nil {
			return err
		}
		return replaceQuestionRefs(tx, test.ID, in.QuestionIDs)
	})
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func (s *MockTestService) Update(testID uint, in MockTestInput) (*models.MockTest, error) {
	var test models.MockTest
	if err := s.db.First(&test, testID).Error; err != nil {
		return nil, notFound("mock test not found")
	}
	if in.Category != "" && !models.ValidTestCategory(in.Category) {
		return nil, invalid("invalid category")
	}

	test.Title = in.Title
	test.Description = in.Description
	test.Duration = in.Duration
	test.PassingScore = in.PassingScore
	test.IsPremium = in.IsPremium
	test.ScheduledAt = in.ScheduledAt
	if in.Category != "" {
		test.Category = in.Category
	}
	test.Topics = in.Topics
	if in.Difficulty != "" {
		test.Difficulty = in.Difficulty
	}
	test.Instructions = in.Instructions

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(in.QuestionIDs) > 0 {
			if err := s.validateQuestionIDs(in.QuestionIDs); err != nil {
				return err
			}
			if err := replaceQuestionRefs(tx, test.ID, in.QuestionIDs); err != nil {
				return err
			}
			// totalQuestions always tracks the question list.
			test.TotalQuestions = len(in.QuestionIDs)
		}
		return tx.Save(&test).Error
	})
	if err != nil {
		return nil, err
	}
	return &test, nil
}

func replaceQuestionRefs(tx *gorm.DB, testID uint, ids []uint) error {
	if err := tx.Where("mock_test_id = ?", testID).Delete(&models.MockTestQuestion{}).Error; err != nil {
		return err
	}
	refs := make([]models.MockTestQuestion, len(ids))
	for i, id := range ids {
		refs[i] = models.MockTestQuestion{MockTestID: testID, MCQID: id, Position: i}
	}
	return tx.Create(&refs).Error
}

func (s *MockTestService) Delete(testID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.MockTest{}, testID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return notFound("mock test not found")
		}
		return tx.Where("mock_test_id = ?", testID).Delete(&models.MockTestQuestion{}).Error
	})
}

type TestQuestionView struct {
	ID         uint     `json:"id"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Topic      string   `json:"topic"`
	Difficulty string   `json:"difficulty"`
}

type TestMeta struct {
	ID             uint     `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Duration       int      `json:"duration"`
	TotalQuestions int      `json:"total_questions"`
	Instructions   []string `json:"instructions,omitempty"`
}

type StartTestResult struct {
	MockTest  TestMeta           `json:"mock_test"`
	Questions []TestQuestionView `json:"questions"`
	StartTime time.Time          `json:"start_time"`
}

// StartTest materializes the test into an answer-free client view. Premium
// questions are silently dropped for callers without premium access, and the
// returned question count always matches the delivered set, never the stored
// nominal count. Nothing is persisted: the session lives on the client until
// submission.
func (s *MockTestService) StartTest(testID uint, user *models.User) (*StartTestResult, error) {
	var test models.MockTest
	if err := s.db.First(&test, testID).Error; err != nil {
		return nil, notFound("mock test not found")
	}

	if test.IsPremium && !user.HasPremiumAccess() {
		return nil, premiumRequired("premium subscription required to access this mock test")
	}

	questions := s.loadQuestions(testID)
	if !user.HasPremiumAccess() {
		filtered := questions[:0]
		for _, q := range questions {
			if !q.IsPremium {
				filtered = append(filtered, q)
			}
		}
		questions = filtered
	}

	views := make([]TestQuestionView, len(questions))
	for i, q := range questions {
		views[i] = TestQuestionView{
			ID:         q.ID,
			Question:   q.Question,
			Options:    q.Options,
			Topic:      q.Topic,
			Difficulty: q.Difficulty,
		}
	}

	return &StartTestResult{
		MockTest: TestMeta{
			ID:             test.ID,
			Title:          test.Title,
			Description:    test.Description,
			Duration:       test.Duration,
			TotalQuestions: len(views),
			Instructions:   test.Instructions,
		},
		Questions: views,
		StartTime: time.Now(),
	}, nil
}

type SubmitTestInput struct {
	Answers   []SubmittedAnswer
	StartTime time.Time
	EndTime   *time.Time
}

type SubmitTestResult struct {
	AttemptID      uint    `json:"attempt_id"`
	Score          float64 `json:"score"`
	Rank           *int    `json:"rank"`
	CorrectAnswers int     `json:"correct_answers"`
	WrongAnswers   int     `json:"wrong_answers"`
	Unanswered     int     `json:"unanswered"`
	TotalTimeSpent int     `json:"total_time_spent"`
}

// SubmitTest grades a full submission, records per-question attempts, the
// aggregate attempt and its rank, and feeds both statistics accumulators.
// Everything is written inside one transaction so a duplicate submission
// leaves no partial rows behind.
func (s *MockTestService) SubmitTest(testID uint, user *models.User, in SubmitTestInput) (*SubmitTestResult, error) {
	var test models.MockTest
	if err := s.db.First(&test, testID).Error; err != nil {
		return nil, notFound("mock test not found")
	}

	if test.IsPremium && !user.HasPremiumAccess() {
		return nil, premiumRequired("premium subscription required to access this mock test")
	}

	questions := s.loadQuestions(testID)

	startedAt := in.StartTime
	completedAt := time.Now()
	if in.EndTime != nil {
		completedAt = *in.EndTime
	}
	totalTimeSpent := int(completedAt.Sub(startedAt).Seconds())

	grade := s.scoring.Grade(questions, in.Answers, test.TotalQuestions)

	byID := make(map[uint]*models.MCQ, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	attempt := models.MockTestAttempt{
		UserID:         user.ID,
		MockTestID:     test.ID,
		Answers:        grade.ProcessedAnswers,
		Score:          grade.Score,
		TotalQuestions: test.TotalQuestions,
		CorrectAnswers: grade.CorrectAnswers,
		WrongAnswers:   grade.WrongAnswers,
		Unanswered:     grade.Unanswered,
		TotalTimeSpent: totalTimeSpent,
		StartedAt:      startedAt,
		CompletedAt:    completedAt,
		IsCompleted:    true,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, pa := range grade.ProcessedAnswers {
			row := models.MCQAttempt{
				UserID:         user.ID,
				MCQID:          pa.MCQID,
				SelectedAnswer: pa.SelectedAnswer,
				IsCorrect:      pa.IsCorrect,
				TimeSpent:      pa.TimeSpent,
				MockTestID:     test.ID,
				AttemptType:    models.AttemptTypeMockTest,
			}
			if err := tx.Create(&row).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return conflict("question already attempted in this mock test")
				}
				return err
			}

			mcq := byID[pa.MCQID]
			mcq.Statistics.ApplyAttempt(pa.IsCorrect, pa.TimeSpent)
			if err := tx.Save(mcq).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		if err := computeRank(tx, &attempt); err != nil {
			return err
		}

		// The running statistics take the unrounded score.
		test.Statistics.ApplyScore(grade.RawScore)
		return tx.Save(&test).Error
	})
	if err != nil {
		return nil, err
	}

	return &SubmitTestResult{
		AttemptID:      attempt.ID,
		Score:          attempt.Score,
		Rank:           attempt.Rank,
		CorrectAnswers: grade.CorrectAnswers,
		WrongAnswers:   grade.WrongAnswers,
		Unanswered:     grade.Unanswered,
		TotalTimeSpent: totalTimeSpent,
	}, nil
}

// computeRank assigns the dense higher-only rank: one plus the number of
// attempts on the same test with a strictly higher score, so tied scores
// share a rank. Computed once at submission time and never refreshed.
func computeRank(tx *gorm.DB, attempt *models.MockTestAttempt) error {
	var higher int64
	err := tx.Model(&models.MockTestAttempt{}).
		Where("mock_test_id = ? AND score > ?", attempt.MockTestID, attempt.Score).
		Count(&higher).Error
	if err != nil {
		return err
	}

	rank := int(higher) + 1
	attempt.Rank = &rank
	return tx.Model(attempt).Update("rank", rank).Error
}

// GetResults returns one of the caller's own attempts with answer details.
func (s *MockTestService) GetResults(attemptID, userID uint) (*models.MockTestAttempt, error) {
	var attempt models.MockTestAttempt
	err := s.db.Where("id = ? AND user_id = ?", attemptID, userID).
		Preload("MockTest").
		First(&attempt).Error
	if err != nil {
		return nil, notFound("mock test attempt not found")
	}
	return &attempt, nil
}

type LeaderboardEntry struct {
	UserID      uint      `json:"user_id"`
	Name        string    `json:"name"`
	College     string    `json:"college,omitempty"`
	Score       float64   `json:"score"`
	CompletedAt time.Time `json:"completed_at"`
	Rank        *int      `json:"rank"`
}

func (s *MockTestService) Leaderboard(testID uint, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	var attempts []models.MockTestAttempt
	err := s.db.Where("mock_test_id = ?", testID).
		Order("score DESC, completed_at DESC").
		Limit(limit).
		Preload("User").
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(attempts))
	for i, a := range attempts {
		entries[i] = LeaderboardEntry{
			UserID:      a.UserID,
			Name:        a.User.Name,
			College:     a.User.College,
			Score:       a.Score,
			CompletedAt: a.CompletedAt,
			Rank:        a.Rank,
		}
	}
	return entries, nil
}
