package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prompthub-dev/prompthub/db"
	"github.com/prompthub-dev/prompthub/internal/models"
	"github.com/prompthub-dev/prompthub/internal/services"
	"github.com/prompthub-dev/prompthub/internal/utils"
)

type UserProjectResponse struct {
	ID        uint               `json:"id"`
	ProjectID uint               `json:"project_id"`
	CreatedAt time.Time          `json:"created_at"`
	Project   GetProjectResponse `json:"project"`
}

type ProjectUserResponse struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	Email       string    `json:"email"`
	FullName    *string   `json:"full_name"`
	Admin       bool      `json:"admin"`
	PromptCount int64     `json:"prompt_count"`
}

func AssignUserToProject(ctx *gin.Context) {
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

	assignment, err := services.AssignUserToProject(db.DB, userID, projectID)

	if err != nil {
		switch {
		case errors.Is(err, services.ErrConflict):
			ctx.JSON(http.StatusConflict, gin.H{"error": "User is already assigned to this project"})
		case errors.Is(err, services.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User or project not found"})
		default:
			log.Printf("Failed to assign user %d to project %d: %v", userID, projectID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign user to project"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"id":         assignment.ID,
		"user_id":    assignment.UserID,
		"project_id": assignment.ProjectID,
		"created_at": assignment.CreatedAt,
	})
}

func RemoveUserFromProject(ctx *gin.Context) {
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

	if err := services.RemoveUserFromProject(db.DB, userID, projectID); err != nil {
		log.Printf("Failed to remove user %d from project %d: %v", userID, projectID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove user from project"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func GetUserProjects(ctx *gin.Context) {
	userID, err := utils.GetUserIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var assignments []models.UserProject

	if err := db.DB.Preload("Project").Where("user_id = ?", userID).Find(&assignments).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve assignments"})
		return
	}

	response := make([]UserProjectResponse, 0, len(assignments))

	for _, assignment := range assignments {
		response = append(response, UserProjectResponse{
			ID:        assignment.ID,
			ProjectID: assignment.ProjectID,
			CreatedAt: assignment.CreatedAt,
			Project:   projectResponse(assignment.Project),
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProjectUsers(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var assignments []models.UserProject

	if err := db.DB.Preload("User").Where("project_id = ?", projectID).Find(&assignments).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve assignments"})
		return
	}

	response := make([]ProjectUserResponse, 0, len(assignments))

	for _, assignment := range assignments {
		var promptCount int64

		if err := db.DB.Model(&models.UserProjectPrompt{}).
			Where("user_project_id = ?", assignment.ID).
			Count(&promptCount).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count prompts"})
			return
		}

		response = append(response, ProjectUserResponse{
			ID:          assignment.ID,
			UserID:      assignment.UserID,
			CreatedAt:   assignment.CreatedAt,
			Email:       assignment.User.Email,
			FullName:    assignment.User.FullName,
			Admin:       assignment.User.Admin,
			PromptCount: promptCount,
		})
	}

	ctx.JSON(http.StatusOK, response)
}
