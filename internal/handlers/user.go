package handlers

import (
	"net/http"

	"github.com/sloppysaint/mcqSurgery/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.Profile(currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"user": user})
}

type ProfileRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	College     string `json:"college"`
	YearOfStudy string `json:"year_of_study"`
	TargetExam  string `json:"target_exam"`
	Avatar      string `json:"avatar"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(currentUser(c).ID, services.ProfileInput{
		Name:        req.Name,
		Phone:       req.Phone,
		College:     req.College,
		YearOfStudy: req.YearOfStudy,
		TargetExam:  req.TargetExam,
		Avatar:      req.Avatar,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessageData(c, http.StatusOK, "profile updated successfully", gin.H{"user": user})
}

// GetDashboard godoc
// @Summary      User dashboard
// @Description  Aggregated practice and mock test statistics for the caller
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /api/user/dashboard [get]
func (h *UserHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.userService.Dashboard(currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"dashboard": dashboard})
}

func (h *UserHandler) GetProgress(c *gin.Context) {
	progress, err := h.userService.Progress(currentUser(c).ID, queryInt(c, "days", 30))
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"progress": progress})
}

func (h *UserHandler) GetAttempts(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 25)

	attempts, total, err := h.userService.Attempts(currentUser(c).ID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, len(attempts), paginationInfo(page, limit, total), gin.H{"attempts": attempts})
}

func (h *UserHandler) GetTestHistory(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 25)

	history, total, err := h.userService.TestHistory(currentUser(c).ID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respondList(c, len(history), paginationInfo(page, limit, total), gin.H{"test_history": history})
}
