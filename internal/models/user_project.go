package models

import "time"

// UserProject grants a user access to a project. Association rows are
// hard-deleted so a removed pair can be re-assigned without tripping the
// unique index.
type UserProject struct {
	ID        uint `gorm:"primarykey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_user_project"`
	ProjectID uint `gorm:"not null;uniqueIndex:idx_user_project"`
	CreatedAt time.Time

	// Relationships
	User        User                `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project     Project             `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	PromptLinks []UserProjectPrompt `gorm:"foreignKey:UserProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
