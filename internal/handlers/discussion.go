package handlers

import (
	"net/http"

	"github.com/sloppysaint/mcqSurgery/internal/services"

	"github.com/gin-gonic/gin"
)

type DiscussionHandler struct {
	discussionService *services.DiscussionService
}

func NewDiscussionHandler(discussionService *services.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{discussionService: discussionService}
}

func (h *DiscussionHandler) ListDiscussions(c *gin.Context) {
	filter := services.DiscussionFilter{
		Category: c.Query("category"),
		Topic:    c.Query("topic"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 25),
	}

	discussions, total, err := h.discussionService.List(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, len(discussions), paginationInfo(filter.Page, filter.Limit, total), gin.H{"discussions": discussions})
}

func (h *DiscussionHandler) GetDiscussion(c *gin.Context) {
	discussionID, ok := parseID(c)
	if !ok {
		return
	}

	discussion, err := h.discussionService.Get(discussionID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"discussion": discussion})
}

type DiscussionRequest struct {
	Title        string `json:"title" binding:"required"`
	Content      string `json:"content" binding:"required"`
	Category     string `json:"category"`
	Topic        string `json:"topic"`
	RelatedMCQID *uint  `json:"related_mcq"`
}

func (r DiscussionRequest) toInput() services.DiscussionInput {
	return services.DiscussionInput{
		Title:        r.Title,
		Content:      r.Content,
		Category:     r.Category,
		Topic:        r.Topic,
		RelatedMCQID: r.RelatedMCQID,
	}
}

func (h *DiscussionHandler) CreateDiscussion(c *gin.Context) {
	var req DiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	discussion, err := h.discussionService.Create(currentUser(c).ID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"discussion": discussion})
}

func (h *DiscussionHandler) UpdateDiscussion(c *gin.Context) {
	discussionID, ok := parseID(c)
	if !ok {
		return
	}

	var req DiscussionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	discussion, err := h.discussionService.Update(discussionID, currentUser(c).ID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"discussion": discussion})
}

func (h *DiscussionHandler) DeleteDiscussion(c *gin.Context) {
	discussionID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.discussionService.Delete(discussionID, currentUser(c).ID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "discussion deleted successfully")
}

type ReplyRequest struct {
	Content       string `json:"content" binding:"required"`
	IsExpertReply bool   `json:"is_expert_reply"`
}

func (h *DiscussionHandler) AddReply(c *gin.Context) {
	discussionID, ok := parseID(c)
	if !ok {
		return
	}

	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	reply, err := h.discussionService.AddReply(discussionID, currentUser(c).ID, req.Content, req.IsExpertReply)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"reply": reply})
}

func (h *DiscussionHandler) LikeDiscussion(c *gin.Context) {
	discussionID, ok := parseID(c)
	if !ok {
		return
	}

	likes, err := h.discussionService.Like(discussionID, currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessageData(c, http.StatusOK, "discussion liked", gin.H{"likes": likes})
}

func (h *DiscussionHandler) UnlikeDiscussion(c *gin.Context) {
	discussionID, ok := parseID(c)
	if !ok {
		return
	}

	likes, err := h.discussionService.Unlike(discussionID, currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessageData(c, http.StatusOK, "discussion unliked", gin.H{"likes": likes})
}

func (h *DiscussionHandler) GetGroupLinks(c *gin.Context) {
	respondData(c, http.StatusOK, gin.H{"groups": h.discussionService.GroupLinks()})
}
