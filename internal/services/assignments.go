package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/prompthub-dev/prompthub/internal/models"
)

// AssignUserToProject creates the access grant. An existing pair is a
// Conflict, surfaced rather than silently ignored; the unique index on
// (user_id, project_id) backstops concurrent assigns.
func AssignUserToProject(db *gorm.DB, userID uint, projectID uint) (models.UserProject, error) {
	var user models.User

	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UserProject{}, ErrNotFound
		}
		return models.UserProject{}, err
	}

	var project models.Project

	if err := db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.UserProject{}, ErrNotFound
		}
		return models.UserProject{}, err
	}

	var existing models.UserProject

	err := db.Where("user_id = ? AND project_id = ?", userID, projectID).First(&existing).Error

	if err == nil {
		return models.UserProject{}, ErrConflict
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.UserProject{}, err
	}

	assignment := models.UserProject{
		UserID:    userID,
		ProjectID: projectID,
	}

	if err := db.Create(&assignment).Error; err != nil {
		return models.UserProject{}, err
	}

	return assignment, nil
}

// RemoveUserFromProject deletes the grant and its prompt links. Removing an
// absent pair succeeds; the operation is idempotent.
func RemoveUserFromProject(db *gorm.DB, userID uint, projectID uint) error {
	var assignment models.UserProject

	err := db.Where("user_id = ? AND project_id = ?", userID, projectID).First(&assignment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_project_id = ?", assignment.ID).Delete(&models.UserProjectPrompt{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.UserProject{}, assignment.ID).Error
	})
}
