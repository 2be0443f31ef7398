package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sloppysaint/mcqSurgery/internal/models"
	"github.com/sloppysaint/mcqSurgery/internal/services"

	"github.com/gin-gonic/gin"
)

// All responses share the {status, data?, message?, errors?} envelope.

func respondData(c *gin.Context, code int, data gin.H) {
	c.JSON(code, gin.H{"status": "success", "data": data})
}

func respondList(c *gin.Context, count int, pagination gin.H, data gin.H) {
	body := gin.H{"status": "success", "count": count, "data": data}
	if pagination != nil {
		body["pagination"] = pagination
	}
	c.JSON(http.StatusOK, body)
}

func respondMessage(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"status": "success", "message": message})
}

func respondMessageData(c *gin.Context, code int, message string, data gin.H) {
	c.JSON(code, gin.H{"status": "success", "message": message, "data": data})
}

func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Validation failed",
		"errors":  err.Error(),
	})
}

// respondError maps domain error kinds onto HTTP statuses. Premium denials
// carry a machine-readable code so clients can render an upsell path apart
// from a generic 403.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondErrorStatus(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrPremiumRequired):
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": err.Error(),
			"code":    "PREMIUM_REQUIRED",
		})
	case errors.Is(err, services.ErrNotOwner), errors.Is(err, services.ErrBadCredentials):
		respondErrorStatus(c, http.StatusUnauthorized, err)
	case errors.Is(err, services.ErrConflict):
		respondErrorStatus(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrInvalid):
		respondErrorStatus(c, http.StatusBadRequest, err)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "internal server error",
		})
	}
}

func respondErrorStatus(c *gin.Context, code int, err error) {
	c.JSON(code, gin.H{"status": "error", "message": err.Error()})
}

func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get("user"); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if raw := c.Query(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}

func paginationInfo(page, limit int, total int64) gin.H {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 25
	}
	pagination := gin.H{}
	if int64(page*limit) < total {
		pagination["next"] = gin.H{"page": page + 1, "limit": limit}
	}
	if page > 1 {
		pagination["prev"] = gin.H{"page": page - 1, "limit": limit}
	}
	return pagination
}
