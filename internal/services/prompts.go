package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/prompthub-dev/prompthub/internal/models"
)

type PromptInput struct {
	Title          string
	Description    string
	PromptText     string
	Category       string
	Subcategory    *string
	Tags           []string
	Level          *string
	ExampleContext *string
}

type PromptUpdate struct {
	Title          *string
	Description    *string
	PromptText     *string
	Category       *string
	Subcategory    *string
	Tags           *[]string
	Level          *string
	ExampleContext *string
}

// CreatePromptInProject inserts the prompt and its scope link in a single
// transaction: a failed link insert rolls the prompt back so no orphan
// prompt survives.
func CreatePromptInProject(db *gorm.DB, userID uint, projectID uint, input PromptInput) (models.Prompt, error) {
	userProjectID, err := ResolveUserProjectID(db, userID, projectID)

	if err != nil {
		return models.Prompt{}, err
	}

	prompt := models.Prompt{
		Title:          input.Title,
		Description:    input.Description,
		PromptText:     input.PromptText,
		Category:       input.Category,
		Subcategory:    input.Subcategory,
		Tags:           models.TagsJSON(input.Tags),
		Level:          input.Level,
		ExampleContext: input.ExampleContext,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&prompt).Error; err != nil {
			return err
		}

		link := models.UserProjectPrompt{
			UserProjectID: userProjectID,
			PromptID:      prompt.ID,
		}

		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrLinkFailed, err)
		}

		return nil
	})

	if err != nil {
		return models.Prompt{}, err
	}

	return prompt, nil
}

// UpdatePromptInProject mutates a prompt only when it is linked to the
// caller's assignment. A prompt reachable through some other project yields
// ErrNotFound, never the row itself.
func UpdatePromptInProject(db *gorm.DB, userID uint, projectID uint, promptID uint, update PromptUpdate) (models.Prompt, error) {
	userProjectID, err := ResolveUserProjectID(db, userID, projectID)

	if err != nil {
		return models.Prompt{}, err
	}

	linked, err := PromptLinked(db, userProjectID, promptID)

	if err != nil {
		return models.Prompt{}, err
	}

	if !linked {
		return models.Prompt{}, ErrNotFound
	}

	var prompt models.Prompt

	if err := db.First(&prompt, promptID).Error; err != nil {
		return models.Prompt{}, err
	}

	updates := make(map[string]interface{})

	if update.Title != nil {
		updates["title"] = *update.Title
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}
	if update.PromptText != nil {
		updates["prompt_text"] = *update.PromptText
	}
	if update.Category != nil {
		updates["category"] = *update.Category
	}
	if update.Subcategory != nil {
		updates["subcategory"] = *update.Subcategory
	}
	if update.Tags != nil {
		updates["tags"] = models.TagsJSON(*update.Tags)
	}
	if update.Level != nil {
		updates["level"] = *update.Level
	}
	if update.ExampleContext != nil {
		updates["example_context"] = *update.ExampleContext
	}

	if len(updates) > 0 {
		if err := db.Model(&prompt).Updates(updates).Error; err != nil {
			return models.Prompt{}, err
		}
	}

	if err := db.First(&prompt, promptID).Error; err != nil {
		return models.Prompt{}, err
	}

	return prompt, nil
}

// DeletePromptFromProject removes a prompt reachable through the caller's
// assignment, along with every link pointing at it.
func DeletePromptFromProject(db *gorm.DB, userID uint, projectID uint, promptID uint) error {
	userProjectID, err := ResolveUserProjectID(db, userID, projectID)

	if err != nil {
		return err
	}

	linked, err := PromptLinked(db, userProjectID, promptID)

	if err != nil {
		return err
	}

	if !linked {
		return ErrNotFound
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prompt_id = ?", promptID).Delete(&models.UserProjectPrompt{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Prompt{}, promptID).Error
	})
}

// GetProjectPrompts returns the prompts linked to the caller's assignment.
// Visibility is always a function of the link, never the global prompt set.
func GetProjectPrompts(db *gorm.DB, userID uint, projectID uint) ([]models.Prompt, error) {
	userProjectID, err := ResolveUserProjectID(db, userID, projectID)

	if err != nil {
		return nil, err
	}

	var prompts []models.Prompt

	err = db.Joins("JOIN user_project_prompts ON user_project_prompts.prompt_id = prompts.id").
		Where("user_project_prompts.user_project_id = ?", userProjectID).
		Order("prompts.created_at DESC").
		Find(&prompts).Error

	if err != nil {
		return nil, err
	}

	return prompts, nil
}
