package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"learnly.id/gamification/internal/modules/gamification/dto"
	gamificationService "learnly.id/gamification/internal/modules/gamification/service"
	"learnly.id/gamification/pkg/response"
	"learnly.id/gamification/pkg/validator"
)

type GamificationHandler struct {
	service gamificationService.GamificationService
}

func NewGamificationHandler(service gamificationService.GamificationService) *GamificationHandler {
	return &GamificationHandler{service: service}
}

// AwardPoints credits the authenticated student for one activity event.
func (h *GamificationHandler) AwardPoints(c *gin.Context) {
	studentID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.AwardRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.service.AwardPoints(c.Request.Context(), studentID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// AdminAwardPoints is the staff variant that names the target student.
func (h *GamificationHandler) AdminAwardPoints(c *gin.Context) {
	var input dto.AdminAwardRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	studentID, err := uuid.Parse(input.StudentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student_id"})
		return
	}

	result, err := h.service.AwardPoints(c.Request.Context(), studentID, dto.AwardRequest{
		Activity: input.Activity,
		Points:   input.Points,
		Metadata: input.Metadata,
	})
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (h *GamificationHandler) GetProfile(c *gin.Context) {
	studentID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), studentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profile})
}

func (h *GamificationHandler) GetAchievementsProgress(c *gin.Context) {
	studentID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	progress, err := h.service.GetAchievementsProgress(c.Request.Context(), studentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": progress})
}

func (h *GamificationHandler) GetStatistics(c *gin.Context) {
	studentID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	stats, err := h.service.GetStatistics(c.Request.Context(), studentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

func (h *GamificationHandler) GetStreak(c *gin.Context) {
	studentID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	streak, err := h.service.GetStreak(c.Request.Context(), studentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": streak})
}

func (h *GamificationHandler) GetRecentActivity(c *gin.Context) {
	studentID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	activity, err := h.service.GetRecentActivity(c.Request.Context(), studentID, limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": activity})
}

func (h *GamificationHandler) GetDailyChallenges(c *gin.Context) {
	studentID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	challenges, err := h.service.GetDailyChallenges(c.Request.Context(), studentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": challenges})
}

func (h *GamificationHandler) GetDashboard(c *gin.Context) {
	studentID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	dashboard, err := h.service.GetDashboard(c.Request.Context(), studentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dashboard})
}

func (h *GamificationHandler) UpdatePreferences(c *gin.Context) {
	studentID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input dto.PreferencesRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	prefs, err := h.service.UpdatePreferences(c.Request.Context(), studentID, input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": prefs})
}

func (h *GamificationHandler) GetLevelInfo(c *gin.Context) {
	level, err := strconv.Atoi(c.Param("level"))
	if err != nil || level < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid level"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": h.service.LevelInfo(level)})
}
