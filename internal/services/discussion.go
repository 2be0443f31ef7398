package services

import (
	"errors"

	"github.com/sloppysaint/mcqSurgery/internal/models"

	"gorm.io/gorm"
)

type DiscussionService struct {
	db *gorm.DB
}

func NewDiscussionService(db *gorm.DB) *DiscussionService {
	return &DiscussionService{db: db}
}

type DiscussionFilter struct {
	Category string
	Topic    string
	Page     int
	Limit    int
}

func (s *DiscussionService) List(filter DiscussionFilter) ([]models.Discussion, int64, error) {
	query := s.db.Model(&models.Discussion{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Topic != "" {
		query = query.Where("topic = ?", filter.Topic)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(filter.Page, filter.Limit, 25)
	var discussions []models.Discussion
	err := query.Order("is_pinned DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&discussions).Error
	if err != nil {
		return nil, 0, err
	}
	return discussions, total, nil
}

// Get returns one discussion with its replies and likes, bumping the view
// counter with an atomic increment.
func (s *DiscussionService) Get(discussionID uint) (*models.Discussion, error) {
	var discussion models.Discussion
	err := s.db.Preload("Replies", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).
		Preload("Likes").
		First(&discussion, discussionID).Error
	if err != nil {
		return nil, notFound("discussion not found")
	}

	s.db.Model(&discussion).Update("views", gorm.Expr("views + 1"))
	discussion.Views++
	return &discussion, nil
}

type DiscussionInput struct {
	Title        string
	Content      string
	Category     string
	Topic        string
	RelatedMCQID *uint
}

func (s *DiscussionService) Create(userID uint, in DiscussionInput) (*models.Discussion, error) {
	if in.Category != "" && !models.ValidDiscussionCategory(in.Category) {
		return nil, invalid("invalid category")
	}

	discussion := models.Discussion{
		UserID:       userID,
		Title:        in.Title,
		Content:      in.Content,
		Category:     in.Category,
		Topic:        in.Topic,
		RelatedMCQID: in.RelatedMCQID,
	}
	if discussion.Category == "" {
		discussion.Category = models.DiscussionCategoryDoubt
	}
	if err := s.db.Create(&discussion).Error; err != nil {
		return nil, err
	}
	return &discussion, nil
}

func (s *DiscussionService) Update(discussionID, userID uint, in DiscussionInput) (*models.Discussion, error) {
	var discussion models.Discussion
	if err := s.db.First(&discussion, discussionID).Error; err != nil {
		return nil, notFound("discussion not found")
	}
	if discussion.UserID != userID {
		return nil, notOwner("not authorized to update this discussion")
	}
	if in.Category != "" && !models.ValidDiscussionCategory(in.Category) {
		return nil, invalid("invalid category")
	}

	discussion.Title = in.Title
	discussion.Content = in.Content
	if in.Category != "" {
		discussion.Category = in.Category
	}
	discussion.Topic = in.Topic
	discussion.RelatedMCQID = in.RelatedMCQID
	if err := s.db.Save(&discussion).Error; err != nil {
		return nil, err
	}
	return &discussion, nil
}

func (s *DiscussionService) Delete(discussionID, userID uint) error {
	var discussion models.Discussion
	if err := s.db.First(&discussion, discussionID).Error; err != nil {
		return notFound("discussion not found")
	}
	if discussion.UserID != userID {
		return notOwner("not authorized to delete this discussion")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("discussion_id = ?", discussionID).Delete(&models.DiscussionReply{}).Error; err != nil {
			return err
		}
		if err := tx.Where("discussion_id = ?", discussionID).Delete(&models.DiscussionLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&discussion).Error
	})
}

func (s *DiscussionService) AddReply(discussionID, userID uint, content string, isExpertReply bool) (*models.DiscussionReply, error) {
	var discussion models.Discussion
	if err := s.db.First(&discussion, discussionID).Error; err != nil {
		return nil, notFound("discussion not found")
	}

	reply := models.DiscussionReply{
		DiscussionID:  discussionID,
		UserID:        userID,
		Content:       content,
		IsExpertReply: isExpertReply,
	}
	if err := s.db.Create(&reply).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

// Like records one like per user; the unique index rejects duplicates.
func (s *DiscussionService) Like(discussionID, userID uint) (int64, error) {
	var discussion models.Discussion
	if err := s.db.First(&discussion, discussionID).Error; err != nil {
		return 0, notFound("discussion not found")
	}

	like := models.DiscussionLike{DiscussionID: discussionID, UserID: userID}
	if err := s.db.Create(&like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, conflict("discussion already liked")
		}
		return 0, err
	}

	return s.likeCount(discussionID)
}

func (s *DiscussionService) Unlike(discussionID, userID uint) (int64, error) {
	var discussion models.Discussion
	if err := s.db.First(&discussion, discussionID).Error; err != nil {
		return 0, notFound("discussion not found")
	}

	result := s.db.Where("discussion_id = ? AND user_id = ?", discussionID, userID).
		Delete(&models.DiscussionLike{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, invalid("discussion not liked yet")
	}

	return s.likeCount(discussionID)
}

func (s *DiscussionService) likeCount(discussionID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.DiscussionLike{}).
		Where("discussion_id = ?", discussionID).
		Count(&count).Error
	return count, err
}

type GroupLinks struct {
	WhatsApp map[string]string `json:"whatsapp"`
	Telegram map[string]string `json:"telegram"`
}

func (s *DiscussionService) GroupLinks() GroupLinks {
	return GroupLinks{
		WhatsApp: map[string]string{
			"general": "https://chat.whatsapp.com/general-surgery-group",
			"neetss":  "https://chat.whatsapp.com/neet-ss-surgery-group",
			"iniss":   "https://chat.whatsapp.com/ini-ss-surgery-group",
		},
		Telegram: map[string]string{
			"general": "https://t.me/mcqsurgery_general",
			"neetss":  "https://t.me/mcqsurgery_neetss",
			"iniss":   "https://t.me/mcqsurgery_iniss",
		},
	}
}
