package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prompthub-dev/prompthub/internal/models"
)

func TestAssignUserToProject(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "dev@example.com", false)
	project := createTestProject(t, db, "Website Relaunch")

	assignment, err := AssignUserToProject(db, user.ID, project.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, assignment.UserID)
	assert.Equal(t, project.ID, assignment.ProjectID)
	assert.False(t, assignment.CreatedAt.IsZero())
}

func TestAssignUserToProjectTwiceConflicts(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "dev@example.com", false)
	project := createTestProject(t, db, "Website Relaunch")

	_, err := AssignUserToProject(db, user.ID, project.ID)
	require.NoError(t, err)

	_, err = AssignUserToProject(db, user.ID, project.ID)
	assert.ErrorIs(t, err, ErrConflict)

	var count int64
	require.NoError(t, db.Model(&models.UserProject{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "second assign must not add a row")
}

func TestAssignUnknownUserOrProject(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "dev@example.com", false)
	project := createTestProject(t, db, "Website Relaunch")

	_, err := AssignUserToProject(db, user.ID+999, project.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = AssignUserToProject(db, user.ID, project.ID+999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveUserFromProjectIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "dev@example.com", false)
	project := createTestProject(t, db, "Website Relaunch")

	// Removing a pair that never existed succeeds.
	require.NoError(t, RemoveUserFromProject(db, user.ID, project.ID))

	assignTestUser(t, db, user.ID, project.ID)
	require.NoError(t, RemoveUserFromProject(db, user.ID, project.ID))
	require.NoError(t, RemoveUserFromProject(db, user.ID, project.ID))

	var count int64
	require.NoError(t, db.Model(&models.UserProject{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRemoveUserFromProjectCascadesLinks(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "dev@example.com", false)
	project := createTestProject(t, db, "Website Relaunch")
	assignTestUser(t, db, user.ID, project.ID)

	_, err := CreatePromptInProject(db, user.ID, project.ID, PromptInput{
		Title:      "Schema Gen",
		PromptText: "Generate a schema for...",
		Category:   models.CategoryDatabase,
	})
	require.NoError(t, err)

	require.NoError(t, RemoveUserFromProject(db, user.ID, project.ID))

	var links int64
	require.NoError(t, db.Model(&models.UserProjectPrompt{}).Count(&links).Error)
	assert.Equal(t, int64(0), links)
}

func TestReassignAfterRemove(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "dev@example.com", false)
	project := createTestProject(t, db, "Website Relaunch")

	assignTestUser(t, db, user.ID, project.ID)
	require.NoError(t, RemoveUserFromProject(db, user.ID, project.ID))

	// The unique pair index must not block a fresh grant.
	_, err := AssignUserToProject(db, user.ID, project.ID)
	assert.NoError(t, err)
}
