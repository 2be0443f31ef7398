package handlers

import (
	"net/http"
	"time"

	"github.com/sloppysaint/mcqSurgery/internal/services"

	"github.com/gin-gonic/gin"
)

type MockTestHandler struct {
	testService *services.MockTestService
}

func NewMockTestHandler(testService *services.MockTestService) *MockTestHandler {
	return &MockTestHandler{testService: testService}
}

// ListMockTests godoc
// @Summary      List mock tests
// @Description  Premium tests are hidden from callers without premium access
// @Tags         mock-tests
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/mock-tests [get]
func (h *MockTestHandler) ListMockTests(c *gin.Context) {
	filter := services.MockTestFilter{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 25),
	}

	tests, total, err := h.testService.List(currentUser(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, len(tests), paginationInfo(filter.Page, filter.Limit, total), gin.H{"mock_tests": tests})
}

func (h *MockTestHandler) GetMockTest(c *gin.Context) {
	testID, ok := parseID(c)
	if !ok {
		return
	}

	test, attempts, err := h.testService.Get(testID, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"mock_test": test, "user_attempts": attempts})
}

type MockTestRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description"`
	Duration     int        `json:"duration" binding:"required,min=1"`
	QuestionIDs  []uint     `json:"questions" binding:"required,min=1"`
	PassingScore int        `json:"passing_score" binding:"min=0,max=100"`
	IsPremium    bool       `json:"is_premium"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	Category     string     `json:"category"`
	Topics       []string   `json:"topics"`
	Difficulty   string     `json:"difficulty"`
	Instructions []string   `json:"instructions"`
}

func (r MockTestRequest) toInput() services.MockTestInput {
	return services.MockTestInput{
		Title:        r.Title,
		Description:  r.Description,
		Duration:     r.Duration,
		QuestionIDs:  r.QuestionIDs,
		PassingScore: r.PassingScore,
		IsPremium:    r.IsPremium,
		ScheduledAt:  r.ScheduledAt,
		Category:     r.Category,
		Topics:       r.Topics,
		Difficulty:   r.Difficulty,
		Instructions: r.Instructions,
	}
}

func (h *MockTestHandler) CreateMockTest(c *gin.Context) {
	var req MockTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	test, err := h.testService.Create(currentUser(c).ID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"mock_test": test})
}

func (h *MockTestHandler) UpdateMockTest(c *gin.Context) {
	testID, ok := parseID(c)
	if !ok {
		return
	}

	var req MockTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	test, err := h.testService.Update(testID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"mock_test": test})
}

func (h *MockTestHandler) DeleteMockTest(c *gin.Context) {
	testID, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.testService.Delete(testID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "mock test deleted successfully")
}

// StartMockTest godoc
// @Summary      Start a mock test
// @Description  Returns the question set without answers or explanations
// @Tags         mock-tests
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Mock test ID"
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/mock-tests/{id}/start [post]
func (h *MockTestHandler) StartMockTest(c *gin.Context) {
	testID, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.testService.StartTest(testID, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"mock_test":  result.MockTest,
		"questions":  result.Questions,
		"start_time": result.StartTime,
	})
}

type SubmitTestAnswer struct {
	MCQID          uint `json:"mcq" binding:"required"`
	SelectedAnswer *int `json:"selected_answer" binding:"required,min=0"`
	TimeSpent      int  `json:"time_spent" binding:"min=0"`
}

type SubmitTestRequest struct {
	Answers   []SubmitTestAnswer `json:"answers" binding:"required,dive"`
	StartTime time.Time          `json:"start_time" binding:"required"`
	EndTime   *time.Time         `json:"end_time"`
}

// SubmitMockTest godoc
// @Summary      Submit a mock test
// @Description  Grades the submission, records attempts and assigns a rank
// @Tags         mock-tests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Mock test ID"
// @Param        request body SubmitTestRequest true "Submission"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /api/mock-tests/{id}/submit [post]
func (h *MockTestHandler) SubmitMockTest(c *gin.Context) {
	testID, ok := parseID(c)
	if !ok {
		return
	}

	var req SubmitTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	answers := make([]services.SubmittedAnswer, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = services.SubmittedAnswer{
			MCQID:          a.MCQID,
			SelectedAnswer: *a.SelectedAnswer,
			TimeSpent:      a.TimeSpent,
		}
	}

	result, err := h.testService.SubmitTest(testID, currentUser(c), services.SubmitTestInput{
		Answers:   answers,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"attempt_id":       result.AttemptID,
		"score":            result.Score,
		"rank":             result.Rank,
		"correct_answers":  result.CorrectAnswers,
		"wrong_answers":    result.WrongAnswers,
		"unanswered":       result.Unanswered,
		"total_time_spent": result.TotalTimeSpent,
	})
}

func (h *MockTestHandler) GetMockTestResults(c *gin.Context) {
	if _, ok := parseID(c); !ok {
		return
	}

	attemptID := queryInt(c, "attempt_id", 0)
	if attemptID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "attempt_id is required"})
		return
	}

	attempt, err := h.testService.GetResults(uint(attemptID), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"attempt": attempt})
}

// GetLeaderboard godoc
// @Summary      Mock test leaderboard
// @Tags         mock-tests
// @Produce      json
// @Param        id path int true "Mock test ID"
// @Param        limit query int false "Max entries" default(10)
// @Success      200 {object} map[string]interface{}
// @Router       /api/mock-tests/{id}/leaderboard [get]
func (h *MockTestHandler) GetLeaderboard(c *gin.Context) {
	testID, ok := parseID(c)
	if !ok {
		return
	}

	entries, err := h.testService.Leaderboard(testID, queryInt(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, len(entries), nil, gin.H{"leaderboard": entries})
}
