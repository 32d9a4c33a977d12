package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prompthub-dev/prompthub/db"
	"github.com/prompthub-dev/prompthub/internal/models"
	"github.com/prompthub-dev/prompthub/internal/services"
	"github.com/prompthub-dev/prompthub/internal/utils"
)

// GetUserReport returns per-project prompt counts and last activity for one
// user, recomputed from the source rows.
func GetUserReport(ctx *gin.Context) {
	userID, err := utils.GetUserIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		}
		return
	}

	reports, err := services.UserProjectReport(db.DB, userID)

	if err != nil {
		log.Printf("Failed to build report for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":     userResponse(user),
		"projects": reports,
	})
}

// GetUserProjectAnalytics returns day/category/level breakdowns for one
// user-project pair.
func GetUserProjectAnalytics(ctx *gin.Context) {
	userID, err := utils.GetUserIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analytics, err := services.UserProjectAnalytics(db.DB, userID, projectID)

	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User project not found"})
			return
		}
		log.Printf("Failed to build analytics for user %d project %d: %v", userID, projectID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build analytics"})
		return
	}

	var user models.User
	var project models.Project

	if err := db.DB.First(&user, userID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	if err := db.DB.First(&project, projectID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":      userResponse(user),
		"project":   projectResponse(project),
		"analytics": analytics,
	})
}

// GetUserStats lists every user with assignment and prompt totals.
func GetUserStats(ctx *gin.Context) {
	stats, err := services.AllUserStats(db.DB)

	if err != nil {
		log.Printf("Failed to compute user stats: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute user stats"})
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
