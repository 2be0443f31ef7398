package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sloppysaint/mcqSurgery/internal/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Profile(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, notFound("user not found")
	}
	return &user, nil
}

type ProfileInput struct {
	Name        string
	Phone       string
	College     string
	YearOfStudy string
	TargetExam  string
	Avatar      string
}

func (s *UserService) UpdateProfile(userID uint, in ProfileInput) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, notFound("user not found")
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	user.Phone = in.Phone
	user.College = in.College
	user.YearOfStudy = in.YearOfStudy
	user.TargetExam = in.TargetExam
	user.Avatar = in.Avatar
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type RecentMockTest struct {
	AttemptID   uint      `json:"attempt_id"`
	TestTitle   string    `json:"test_title"`
	Score       float64   `json:"score"`
	CompletedAt time.Time `json:"completed_at"`
}

type TopicPerformance struct {
	Topic    string  `json:"topic"`
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

type DashboardStats struct {
	TotalAttempted     int64   `json:"total_attempted"`
	CorrectAnswers     int64   `json:"correct_answers"`
	Accuracy           float64 `json:"accuracy"`
	TotalBookmarks     int64   `json:"total_bookmarks"`
	MockTestsAttempted int64   `json:"mock_tests_attempted"`
}

type Dashboard struct {
	Stats            DashboardStats     `json:"stats"`
	RecentMockTests  []RecentMockTest   `json:"recent_mock_tests"`
	TopicPerformance []TopicPerformance `json:"topic_performance"`
}

// Dashboard aggregates practice and mock test activity for one user. The
// independent counts are fanned out concurrently.
func (s *UserService) Dashboard(userID uint) (*Dashboard, error) {
	var (
		dash    Dashboard
		recents []models.MockTestAttempt
	)

	g := new(errgroup.Group)

	g.Go(func() error {
		return s.db.Model(&models.MCQAttempt{}).
			Where("user_id = ? AND attempt_type = ?", userID, models.AttemptTypePractice).
			Count(&dash.Stats.TotalAttempted).Error
	})
	g.Go(func() error {
		return s.db.Model(&models.MCQAttempt{}).
			Where("user_id = ? AND attempt_type = ? AND is_correct = ?", userID, models.AttemptTypePractice, true).
			Count(&dash.Stats.CorrectAnswers).Error
	})
	g.Go(func() error {
		return s.db.Model(&models.Bookmark{}).
			Where("user_id = ?", userID).
			Count(&dash.Stats.TotalBookmarks).Error
	})
	g.Go(func() error {
		return s.db.Model(&models.MockTestAttempt{}).
			Where("user_id = ?", userID).
			Count(&dash.Stats.MockTestsAttempted).Error
	})
	g.Go(func() error {
		return s.db.Where("user_id = ?", userID).
			Order("completed_at DESC").
			Limit(5).
			Preload("MockTest").
			Find(&recents).Error
	})
	g.Go(func() error {
		return s.topicPerformance(userID, &dash.TopicPerformance)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if dash.Stats.TotalAttempted > 0 {
		accuracy := float64(dash.Stats.CorrectAnswers) / float64(dash.Stats.TotalAttempted) * 100
		dash.Stats.Accuracy = math.Round(accuracy*100) / 100
	}

	dash.RecentMockTests = make([]RecentMockTest, len(recents))
	for i, a := range recents {
		dash.RecentMockTests[i] = RecentMockTest{
			AttemptID:   a.ID,
			TestTitle:   a.MockTest.Title,
			Score:       a.Score,
			CompletedAt: a.CompletedAt,
		}
	}
	return &dash, nil
}

func (s *UserService) topicPerformance(userID uint, out *[]TopicPerformance) error {
	var rows []TopicPerformance
	err := s.db.Model(&models.MCQAttempt{}).
		Select("mcqs.topic AS topic, COUNT(*) AS total, SUM(CASE WHEN mcq_attempts.is_correct THEN 1 ELSE 0 END) AS correct").
		Joins("JOIN mcqs ON mcqs.id = mcq_attempts.mcq_id").
		Where("mcq_attempts.user_id = ? AND mcq_attempts.attempt_type = ?", userID, models.AttemptTypePractice).
		Group("mcqs.topic").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	for i := range rows {
		if rows[i].Total > 0 {
			rows[i].Accuracy = math.Round(float64(rows[i].Correct)/float64(rows[i].Total)*100*100) / 100
		}
	}
	*out = rows
	return nil
}

type DailyProgress struct {
	Date     string  `json:"date"`
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

type WeeklyMockTests struct {
	Week         string  `json:"week"`
	AverageScore float64 `json:"average_score"`
	Count        int     `json:"count"`
}

type Progress struct {
	DailyProgress   []DailyProgress   `json:"daily_progress"`
	WeeklyMockTests []WeeklyMockTests `json:"weekly_mock_tests"`
}

// Progress buckets practice attempts by day and mock test scores by ISO week
// over the given timeframe. Grouping happens in Go so the query stays
// portable across drivers.
func (s *UserService) Progress(userID uint, days int) (*Progress, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	var attempts []models.MCQAttempt
	err := s.db.Where("user_id = ? AND attempt_type = ? AND created_at >= ?",
		userID, models.AttemptTypePractice, since).
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}

	daily := make(map[string]*DailyProgress)
	for _, a := range attempts {
		day := a.CreatedAt.Format("2006-01-02")
		entry, ok := daily[day]
		if !ok {
			entry = &DailyProgress{Date: day}
			daily[day] = entry
		}
		entry.Total++
		if a.IsCorrect {
			entry.Correct++
		}
	}

	progress := &Progress{}
	for _, entry := range daily {
		entry.Accuracy = math.Round(float64(entry.Correct)/float64(entry.Total)*100*100) / 100
		progress.DailyProgress = append(progress.DailyProgress, *entry)
	}
	sort.Slice(progress.DailyProgress, func(i, j int) bool {
		return progress.DailyProgress[i].Date < progress.DailyProgress[j].Date
	})

	var testAttempts []models.MockTestAttempt
	err = s.db.Where("user_id = ? AND completed_at >= ?", userID, since).
		Find(&testAttempts).Error
	if err != nil {
		return nil, err
	}

	type weekAgg struct {
		sum   float64
		count int
	}
	weekly := make(map[string]*weekAgg)
	for _, a := range testAttempts {
		year, week := a.CompletedAt.ISOWeek()
		key := fmt.Sprintf("%d-W%02d", year, week)
		agg, ok := weekly[key]
		if !ok {
			agg = &weekAgg{}
			weekly[key] = agg
		}
		agg.sum += a.Score
		agg.count++
	}

	for key, agg := range weekly {
		progress.WeeklyMockTests = append(progress.WeeklyMockTests, WeeklyMockTests{
			Week:         key,
			AverageScore: math.Round(agg.sum/float64(agg.count)*100) / 100,
			Count:        agg.count,
		})
	}
	sort.Slice(progress.WeeklyMockTests, func(i, j int) bool {
		return progress.WeeklyMockTests[i].Week < progress.WeeklyMockTests[j].Week
	})

	return progress, nil
}

func (s *UserService) Attempts(userID uint, page, limit int) ([]models.MCQAttempt, int64, error) {
	query := s.db.Model(&models.MCQAttempt{}).
		Where("user_id = ? AND attempt_type = ?", userID, models.AttemptTypePractice)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit = normalizePage(page, limit, 25)
	var attempts []models.MCQAttempt
	err := s.db.Where("user_id = ? AND attempt_type = ?", userID, models.AttemptTypePractice).
		Preload("MCQ").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&attempts).Error
	if err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}

func (s *UserService) TestHistory(userID uint, page, limit int) ([]models.MockTestAttempt, int64, error) {
	var total int64
	if err := s.db.Model(&models.MockTestAttempt{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit = normalizePage(page, limit, 10)
	var attempts []models.MockTestAttempt
	err := s.db.Where("user_id = ?", userID).
		Preload("MockTest").
		Order("completed_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&attempts).Error
	if err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}
