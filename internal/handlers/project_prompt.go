package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prompthub-dev/prompthub/db"
	"github.com/prompthub-dev/prompthub/internal/models"
	"github.com/prompthub-dev/prompthub/internal/services"
	"github.com/prompthub-dev/prompthub/internal/utils"
)

// GetMyProjects lists the caller's own assignments with project details.
func GetMyProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var assignments []models.UserProject

	if err := db.DB.Preload("Project").Where("user_id = ?", userID).Find(&assignments).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
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

func GetProjectPrompts(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prompts, err := services.GetProjectPrompts(db.DB, userID, projectID)

	if err != nil {
		if errors.Is(err, services.ErrAccessDenied) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found or not assigned to you"})
			return
		}
		log.Printf("Failed to list prompts for project %d: %v", projectID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve prompts"})
		return
	}

	ctx.JSON(http.StatusOK, promptResponses(prompts))
}

func CreatePromptInProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body CreatePromptRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prompt, err := services.CreatePromptInProject(db.DB, userID, projectID, services.PromptInput{
		Title:          body.Title,
		Description:    body.Description,
		PromptText:     body.PromptText,
		Category:       body.Category,
		Subcategory:    body.Subcategory,
		Tags:           body.Tags,
		Level:          body.Level,
		ExampleContext: body.ExampleContext,
	})

	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccessDenied):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found or not assigned to you"})
		case errors.Is(err, services.ErrLinkFailed):
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link prompt to project"})
		default:
			log.Printf("Failed to create prompt in project %d: %v", projectID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prompt"})
		}
		return
	}

	ctx.JSON(http.StatusCreated, promptResponse(prompt))
}

func UpdatePromptInProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promptID, err := utils.GetPromptID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdatePromptRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prompt, err := services.UpdatePromptInProject(db.DB, userID, projectID, promptID, body.toServiceUpdate())

	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccessDenied):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found or not assigned to you"})
		case errors.Is(err, services.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Prompt not found in this project"})
		default:
			log.Printf("Failed to update prompt %d in project %d: %v", promptID, projectID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prompt"})
		}
		return
	}

	ctx.JSON(http.StatusOK, promptResponse(prompt))
}

func DeletePromptFromProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promptID, err := utils.GetPromptID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.DeletePromptFromProject(db.DB, userID, projectID, promptID); err != nil {
		switch {
		case errors.Is(err, services.ErrAccessDenied):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found or not assigned to you"})
		case errors.Is(err, services.ErrNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Prompt not found in this project"})
		default:
			log.Printf("Failed to delete prompt %d in project %d: %v", promptID, projectID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prompt"})
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
