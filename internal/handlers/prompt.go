package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prompthub-dev/prompthub/db"
	"github.com/prompthub-dev/prompthub/internal/models"
	"github.com/prompthub-dev/prompthub/internal/services"
	"github.com/prompthub-dev/prompthub/internal/utils"
)

type CreatePromptRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	PromptText     string   `json:"prompt_text" binding:"required"`
	Category       string   `json:"category" binding:"required,oneof=database integration ui-ux content"`
	Subcategory    *string  `json:"subcategory"`
	Tags           []string `json:"tags"`
	Level          *string  `json:"level" binding:"omitempty,oneof=junior mid senior"`
	ExampleContext *string  `json:"example_context"`
}

type UpdatePromptRequest struct {
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	PromptText     *string   `json:"prompt_text"`
	Category       *string   `json:"category" binding:"omitempty,oneof=database integration ui-ux content"`
	Subcategory    *string   `json:"subcategory"`
	Tags           *[]string `json:"tags"`
	Level          *string   `json:"level" binding:"omitempty,oneof=junior mid senior"`
	ExampleContext *string   `json:"example_context"`
}

type PromptResponse struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	PromptText     string    `json:"prompt_text"`
	Category       string    `json:"category"`
	Subcategory    *string   `json:"subcategory"`
	Tags           []string  `json:"tags"`
	Level          *string   `json:"level"`
	ExampleContext *string   `json:"example_context"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func promptResponse(prompt models.Prompt) PromptResponse {
	return PromptResponse{
		ID:             prompt.ID,
		Title:          prompt.Title,
		Description:    prompt.Description,
		PromptText:     prompt.PromptText,
		Category:       prompt.Category,
		Subcategory:    prompt.Subcategory,
		Tags:           prompt.TagList(),
		Level:          prompt.Level,
		ExampleContext: prompt.ExampleContext,
		CreatedAt:      prompt.CreatedAt,
		UpdatedAt:      prompt.UpdatedAt,
	}
}

func promptResponses(prompts []models.Prompt) []PromptResponse {
	response := make([]PromptResponse, 0, len(prompts))

	for _, prompt := range prompts {
		response = append(response, promptResponse(prompt))
	}

	return response
}

func (r UpdatePromptRequest) toServiceUpdate() services.PromptUpdate {
	return services.PromptUpdate{
		Title:          r.Title,
		Description:    r.Description,
		PromptText:     r.PromptText,
		Category:       r.Category,
		Subcategory:    r.Subcategory,
		Tags:           r.Tags,
		Level:          r.Level,
		ExampleContext: r.ExampleContext,
	}
}

func (r UpdatePromptRequest) toUpdatesMap() map[string]interface{} {
	updates := make(map[string]interface{})

	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.PromptText != nil {
		updates["prompt_text"] = *r.PromptText
	}
	if r.Category != nil {
		updates["category"] = *r.Category
	}
	if r.Subcategory != nil {
		updates["subcategory"] = *r.Subcategory
	}
	if r.Tags != nil {
		updates["tags"] = models.TagsJSON(*r.Tags)
	}
	if r.Level != nil {
		updates["level"] = *r.Level
	}
	if r.ExampleContext != nil {
		updates["example_context"] = *r.ExampleContext
	}

	return updates
}

func ListPrompts(ctx *gin.Context) {
	query := db.DB.Order("created_at DESC")

	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var prompts []models.Prompt

	if err := query.Find(&prompts).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve prompts"})
		return
	}

	ctx.JSON(http.StatusOK, promptResponses(prompts))
}

func SearchPrompts(ctx *gin.Context) {
	term := ctx.Query("q")

	if term == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing search query"})
		return
	}

	pattern := "%" + term + "%"
	query := db.DB.Where(
		"LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(prompt_text) LIKE LOWER(?)",
		pattern, pattern, pattern,
	).Order("created_at DESC")

	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var prompts []models.Prompt

	if err := query.Find(&prompts).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search prompts"})
		return
	}

	ctx.JSON(http.StatusOK, promptResponses(prompts))
}

func GetPrompt(ctx *gin.Context) {
	promptID, err := utils.GetPromptID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var prompt models.Prompt

	if err := db.DB.First(&prompt, promptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Prompt not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve prompt"})
		}
		return
	}

	ctx.JSON(http.StatusOK, promptResponse(prompt))
}

func CreatePrompt(ctx *gin.Context) {
	var body CreatePromptRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prompt := models.Prompt{
		Title:          body.Title,
		Description:    body.Description,
		PromptText:     body.PromptText,
		Category:       body.Category,
		Subcategory:    body.Subcategory,
		Tags:           models.TagsJSON(body.Tags),
		Level:          body.Level,
		ExampleContext: body.ExampleContext,
	}

	if err := db.DB.Create(&prompt).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prompt"})
		return
	}

	ctx.JSON(http.StatusCreated, promptResponse(prompt))
}

func UpdatePrompt(ctx *gin.Context) {
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

	var prompt models.Prompt

	if err := db.DB.First(&prompt, promptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Prompt not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve prompt"})
		}
		return
	}

	updates := body.toUpdatesMap()

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&prompt).Updates(updates).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prompt"})
		return
	}

	if err := db.DB.First(&prompt, promptID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve prompt"})
		return
	}

	ctx.JSON(http.StatusOK, promptResponse(prompt))
}

func DeletePrompt(ctx *gin.Context) {
	promptID, err := utils.GetPromptID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var prompt models.Prompt

	if err := db.DB.First(&prompt, promptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Prompt not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve prompt"})
		}
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prompt_id = ?", promptID).Delete(&models.UserProjectPrompt{}).Error; err != nil {
			return err
		}

		return tx.Delete(&prompt).Error
	})

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prompt"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
