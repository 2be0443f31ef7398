package services

import (
	"errors"

	"github.com/sloppysaint/mcqSurgery/internal/models"

	"gorm.io/gorm"
)

type MCQService struct {
	db *gorm.DB
}

func NewMCQService(db *gorm.DB) *MCQService {
	return &MCQService{db: db}
}

type MCQFilter struct {
	Topic      string
	Difficulty string
	Tag        string
	Page       int
	Limit      int
}

// List returns MCQs visible to the caller. Premium items are excluded at the
// query level for callers without premium access so pagination counts stay
// correct.
func (s *MCQService) List(user *models.User, filter MCQFilter) ([]models.MCQ, int64, error) {
	query := s.db.Model(&models.MCQ{}).Where("is_active = ?", true)

	if user == nil || !user.HasPremiumAccess() {
		query = query.Where("is_premium = ?", false)
	}
	if filter.Topic != "" {
		query = query.Where("topic = ?", filter.Topic)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit, 25)
	var mcqs []models.MCQ
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&mcqs).Error
	if err != nil {
		return nil, 0, err
	}
	return mcqs, total, nil
}

// Random returns up to limit random active MCQs matching the filters,
// premium-gated the same way as List.
func (s *MCQService) Random(user *models.User, limit int, topic, difficulty string) ([]models.MCQ, error) {
	if limit <= 0 {
		limit = 10
	}
	query := s.db.Where("is_active = ?", true)
	if user == nil || !user.HasPremiumAccess() {
		query = query.Where("is_premium = ?", false)
	}
	if topic != "" {
		query = query.Where("topic = ?", topic)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var mcqs []models.MCQ
	if err := query.Order("RANDOM()").Limit(limit).Find(&mcqs).Error; err != nil {
		return nil, err
	}
	return mcqs, nil
}

// Get returns a single MCQ plus the caller's practice attempt, if any.
// Premium items are never returned to callers without access.
func (s *MCQService) Get(mcqID uint, user *models.User) (*models.MCQ, *models.MCQAttempt, error) {
	var mcq models.MCQ
	if err := s.db.First(&mcq, mcqID).Error; err != nil {
		return nil, nil, notFound("MCQ not found")
	}

	if mcq.IsPremium && (user == nil || !user.HasPremiumAccess()) {
		return nil, nil, premiumRequired("premium subscription required to access this MCQ")
	}

	var attempt *models.MCQAttempt
	if user != nil {
		var existing models.MCQAttempt
		err := s.db.Where("user_id = ? AND mcq_id = ? AND attempt_type = ?",
			user.ID, mcqID, models.AttemptTypePractice).First(&existing).Error
		if err == nil {
			attempt = &existing
		}
	}

	return &mcq, attempt, nil
}

type MCQInput struct {
	Question      string
	Options       []string
	CorrectAnswer int
	Explanation   string
	Topic         string
	Difficulty    string
	References    []models.Reference
	Tags          []string
	IsPremium     bool
}

func (in MCQInput) validate() error {
	if len(in.Options) < 2 || len(in.Options) > 6 {
		return invalid("MCQ must have between 2 and 6 options")
	}
	if in.CorrectAnswer < 0 || in.CorrectAnswer >= len(in.Options) {
		return invalid("correct answer index must be a valid option index")
	}
	if !models.ValidTopic(in.Topic) {
		return invalid("invalid topic")
	}
	if !models.ValidDifficulty(in.Difficulty) {
		return invalid("difficulty must be Basic, Intermediate, or Advanced")
	}
	return nil
}

func (s *MCQService) Create(userID uint, in MCQInput) (*models.MCQ, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	mcq := models.MCQ{
		Question:      in.Question,
		Options:       in.Options,
		CorrectAnswer: in.CorrectAnswer,
		Explanation:   in.Explanation,
		Topic:         in.Topic,
		Difficulty:    in.Difficulty,
		References:    in.References,
		Tags:          in.Tags,
		IsPremium:     in.IsPremium,
		IsActive:      true,
		CreatedByID:   userID,
	}
	if err := s.db.Create(&mcq).Error; err != nil {
		return nil, err
	}
	return &mcq, nil
}

func (s *MCQService) Update(mcqID uint, in MCQInput) (*models.MCQ, error) {
	var mcq models.MCQ
	if err := s.db.First(&mcq, mcqID).Error; err != nil {
		return nil, notFound("MCQ not found")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	mcq.Question = in.Question
	mcq.Options = in.Options
	mcq.CorrectAnswer = in.CorrectAnswer
	mcq.Explanation = in.Explanation
	mcq.Topic = in.Topic
	mcq.Difficulty = in.Difficulty
	mcq.References = in.References
	mcq.Tags = in.Tags
	mcq.IsPremium = in.IsPremium
	if err := s.db.Save(&mcq).Error; err != nil {
		return nil, err
	}
	return &mcq, nil
}

func (s *MCQService) Delete(mcqID uint) error {
	result := s.db.Delete(&models.MCQ{}, mcqID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("MCQ not found")
	}
	return nil
}

type PracticeResult struct {
	IsCorrect     bool               `json:"is_correct"`
	CorrectAnswer int                `json:"correct_answer"`
	Explanation   string             `json:"explanation"`
	References    []models.Reference `json:"references,omitempty"`
}

// SubmitAnswer grades a practice answer. A user has at most one practice
// attempt per MCQ: re-submitting updates the existing row instead of
// creating a second one.
func (s *MCQService) SubmitAnswer(mcqID uint, user *models.User, selectedAnswer, timeSpent int) (*PracticeResult, error) {
	var mcq models.MCQ
	if err := s.db.First(&mcq, mcqID).Error; err != nil {
		return nil, notFound("MCQ not found")
	}

	if mcq.IsPremium && !user.HasPremiumAccess() {
		return nil, premiumRequired("premium subscription required to access this MCQ")
	}

	isCorrect := selectedAnswer == mcq.CorrectAnswer

	var existing models.MCQAttempt
	err := s.db.Where("user_id = ? AND mcq_id = ? AND attempt_type = ?",
		user.ID, mcqID, models.AttemptTypePractice).First(&existing).Error
	if err == nil {
		existing.SelectedAnswer = selectedAnswer
		existing.IsCorrect = isCorrect
		existing.TimeSpent = timeSpent
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, err
		}
	} else {
		attempt := models.MCQAttempt{
			UserID:         user.ID,
			MCQID:          mcqID,
			SelectedAnswer: selectedAnswer,
			IsCorrect:      isCorrect,
			TimeSpent:      timeSpent,
			AttemptType:    models.AttemptTypePractice,
		}
		if err := s.db.Create(&attempt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, conflict("practice attempt already recorded")
			}
			return nil, err
		}
	}

	mcq.Statistics.ApplyAttempt(isCorrect, timeSpent)
	if err := s.db.Save(&mcq).Error; err != nil {
		return nil, err
	}

	return &PracticeResult{
		IsCorrect:     isCorrect,
		CorrectAnswer: mcq.CorrectAnswer,
		Explanation:   mcq.Explanation,
		References:    mcq.References,
	}, nil
}

func (s *MCQService) Bookmark(userID, mcqID uint, notes string) (*models.Bookmark, error) {
	var mcq models.MCQ
	if err := s.db.First(&mcq, mcqID).Error; err != nil {
		return nil, notFound("MCQ not found")
	}

	bookmark := models.Bookmark{
		UserID: userID,
		MCQID:  mcqID,
		Notes:  notes,
	}
	if err := s.db.Create(&bookmark).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("MCQ already bookmarked")
		}
		return nil, err
	}
	return &bookmark, nil
}

func (s *MCQService) RemoveBookmark(userID, mcqID uint) error {
	result := s.db.Where("user_id = ? AND mcq_id = ?", userID, mcqID).Delete(&models.Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("bookmark not found")
	}
	return nil
}

func (s *MCQService) ListBookmarks(userID uint, page, limit int) ([]models.Bookmark, int64, error) {
	var total int64
	if err := s.db.Model(&models.Bookmark{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit = normalizePage(page, limit, 25)
	var bookmarks []models.Bookmark
	err := s.db.Where("user_id = ?", userID).
		Preload("MCQ").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bookmarks).Error
	if err != nil {
		return nil, 0, err
	}
	return bookmarks, total, nil
}

func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}
