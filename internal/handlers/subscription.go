package handlers

import (
	"net/http"

	"github.com/sloppysaint/mcqSurgery/internal/services"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService *services.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) GetPlans(c *gin.Context) {
	respondData(c, http.StatusOK, gin.H{"plans": h.subscriptionService.Plans()})
}

func (h *SubscriptionHandler) GetStatus(c *gin.Context) {
	status, err := h.subscriptionService.Status(currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"subscription": status})
}

type SubscribeRequest struct {
	PlanID string `json:"plan_id" binding:"required"`
}

// Subscribe godoc
// @Summary      Activate a subscription plan
// @Tags         subscription
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body SubscribeRequest true "Plan selection"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /api/subscription/subscribe [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	status, plan, err := h.subscriptionService.Subscribe(currentUser(c).ID, req.PlanID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessageData(c, http.StatusOK, "subscription activated successfully", gin.H{
		"subscription": status,
		"plan":         plan,
	})
}

func (h *SubscriptionHandler) Renew(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	status, plan, err := h.subscriptionService.Renew(currentUser(c).ID, req.PlanID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondMessageData(c, http.StatusOK, "subscription renewed successfully", gin.H{
		"subscription": status,
		"plan":         plan,
	})
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	if err := h.subscriptionService.Cancel(currentUser(c).ID); err != nil {
		respondError(c, err)
		return
	}

	respondMessage(c, http.StatusOK, "subscription cancelled successfully")
}
