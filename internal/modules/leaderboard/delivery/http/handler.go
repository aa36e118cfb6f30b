package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	leaderboardService "learnly.id/gamification/internal/modules/leaderboard/service"
	"learnly.id/gamification/pkg/response"
)

type LeaderboardHandler struct {
	service leaderboardService.LeaderboardService
}

func NewLeaderboardHandler(service leaderboardService.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	leaderboardType := c.DefaultQuery("type", "total") // "total", "weekly", "monthly"
	limitStr := c.DefaultQuery("limit", "50")
	limit, _ := strconv.Atoi(limitStr)

	leaderboard, err := h.service.GetLeaderboard(c.Request.Context(), leaderboardType, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": leaderboard})
}

func (h *LeaderboardHandler) GetMyRank(c *gin.Context) {
	studentID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	leaderboardType := c.DefaultQuery("type", "total")
	rank, err := h.service.GetStudentRank(c.Request.Context(), studentID, leaderboardType)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	// rank is nil when the student is outside the board, the client shows
	// an unranked state for that.
	c.JSON(http.StatusOK, gin.H{"data": rank})
}
