package handlers

import (
	"net/http"

	"github.com/sloppysaint/mcqSurgery/internal/models"
	"github.com/sloppysaint/mcqSurgery/internal/services"

	"github.com/gin-gonic/gin"
)

type MCQHandler struct {
	mcqService *services.MCQService
}

func NewMCQHandler(mcqService *services.MCQService) *MCQHandler {
	return &MCQHandler{mcqService: mcqService}
}

// ListMCQs godoc
// @Summary      List MCQs
// @Description  Premium MCQs are hidden from callers without premium access
// @Tags         mcqs
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/mcqs [get]
func (h *MCQHandler) ListMCQs(c *gin.Context) {
	filter := services.MCQFilter{
		Topic:      c.Query("topic"),
		Difficulty: c.Query("difficulty"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 25),
	}

	mcqs, total, err := h.mcqService.List(currentUser(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, len(mcqs), paginationInfo(filter.Page, filter.Limit, total), gin.H{"mcqs": mcqs})
}

// GetRandomMCQs godoc
// @Summary      Get random MCQs
// @Tags         mcqs
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/mcqs/random [get]
func (h *MCQHandler) GetRandomMCQs(c *gin.Context) {
	mcqs, err := h.mcqService.Random(currentUser(c), queryInt(c, "limit", 10),
		c.Query("topic"), c.Query("difficulty"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, len(mcqs), nil, gin.H{"mcqs": mcqs})
}

// GetMCQ godoc
// @Summary      Get a single MCQ
// @Tags         mcqs
// @Produce      json
// @Param        id path int true "MCQ ID"
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/mcqs/{id} [get]
func (h *MCQHandler) GetMCQ(c *gin.Context) {
	mcqID, ok := parseID(c)
	if !ok {
		return
	}

	mcq, attempt, err := h.mcqService.Get(mcqID, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"mcq": mcq, "user_attempt": attempt})
}

type MCQRequest struct {
	Question      string             `json:"question" binding:"required"`
	Options       []string           `json:"options" binding:"required,min=2,max=6"`
	CorrectAnswer *int               `json:"correct_answer" binding:"required,min=0"`
	Explanation   string             `json:"explanation" binding:"required"`
	Topic         string             `json:"topic" binding:"required"`
	Difficulty    string             `json:"difficulty" binding:"required"`
	References    []models.Reference `json:"references"`
	Tags          []string           `json:"tags"`
	IsPremium     bool               `json:"is_premium"`
}

func (r MCQRequest) toInput() services.MCQInput {
	return services.MCQInput{
		Question:      r.Question,
		Options:       r.Options,
		CorrectAnswer: *r.CorrectAnswer,
		Explanation:   r.Explanation,
		Topic:         r.Topic,
		Difficulty:    r.Difficulty,
		References:    r.References,
		Tags:          r.Tags,
		IsPremium:     r.IsPremium,
	}
}

// CreateMCQ godoc
// @Summary      Create an MCQ
// @Tags         mcqs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body MCQRequest true "MCQ data"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /api/mcqs [post]
func (h *MCQHandler) CreateMCQ(c *gin.Context) {
	var req MCQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	mcq, err := h.mcqService.Create(currentUser(c).ID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"mcq": mcq})
}

func (h *MCQHandler) UpdateMCQ(c *gin.Context) {
	mcqID, ok := parseID(c)
	if !ok {
		return
	}

	var req MCQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	mcq, err := h.mcqService.Update(mcqID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"mcq": mcq})
}

func (h *MCQHandler) DeleteMCQ(c *gin.Context) {
	mcqID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.mcqService.Delete(mcqID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "MCQ deleted successfully")
}

type SubmitAnswerRequest struct {
	SelectedAnswer *int `json:"selected_answer" binding:"required,min=0"`
	TimeSpent      int  `json:"time_spent" binding:"min=0"`
}

// SubmitAnswer godoc
// @Summary      Submit a practice answer
// @Description  Re-submitting updates the existing practice attempt
// @Tags         mcqs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "MCQ ID"
// @Param        request body SubmitAnswerRequest true "Answer"
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/mcqs/{id}/submit [post]
func (h *MCQHandler) SubmitAnswer(c *gin.Context) {
	mcqID, ok := parseID(c)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	result, err := h.mcqService.SubmitAnswer(mcqID, currentUser(c), *req.SelectedAnswer, req.TimeSpent)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"is_correct":     result.IsCorrect,
		"correct_answer": result.CorrectAnswer,
		"explanation":    result.Explanation,
		"references":     result.References,
	})
}

type BookmarkRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

func (h *MCQHandler) BookmarkMCQ(c *gin.Context) {
	mcqID, ok := parseID(c)
	if !ok {
		return
	}

	var req BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondValidation(c, err)
		return
	}

	bookmark, err := h.mcqService.Bookmark(currentUser(c).ID, mcqID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"bookmark": bookmark})
}

func (h *MCQHandler) RemoveBookmark(c *gin.Context) {
	mcqID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.mcqService.RemoveBookmark(currentUser(c).ID, mcqID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "bookmark removed successfully")
}

func (h *MCQHandler) GetBookmarkedMCQs(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 25)

	bookmarks, total, err := h.mcqService.ListBookmarks(currentUser(c).ID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, len(bookmarks), paginationInfo(page, limit, total), gin.H{"bookmarks": bookmarks})
}
