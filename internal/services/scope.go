package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/prompthub-dev/prompthub/internal/models"
)

// ResolveUserProjectID looks up the assignment row scoping every
// project-bound prompt operation. Absence is ErrAccessDenied regardless of
// whether the project itself exists.
func ResolveUserProjectID(db *gorm.DB, userID uint, projectID uint) (uint, error) {
	var userProject models.UserProject

	err := db.Where("user_id = ? AND project_id = ?", userID, projectID).First(&userProject).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrAccessDenied
		}
		return 0, err
	}

	return userProject.ID, nil
}

// PromptLinked reports whether the prompt is visible inside the given
// assignment scope.
func PromptLinked(db *gorm.DB, userProjectID uint, promptID uint) (bool, error) {
	var count int64

	err := db.Model(&models.UserProjectPrompt{}).
		Where("user_project_id = ? AND prompt_id = ?", userProjectID, promptID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
