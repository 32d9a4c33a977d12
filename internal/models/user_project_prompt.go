package models

import "time"

// UserProjectPrompt makes a prompt visible inside one user's view of one
// project. Links are hard-deleted alongside their assignment or prompt.
type UserProjectPrompt struct {
	ID            uint `gorm:"primarykey"`
	UserProjectID uint `gorm:"not null;index"`
	PromptID      uint `gorm:"not null;index"`
	CreatedAt     time.Time

	// Relationships
	UserProject UserProject `gorm:"foreignKey:UserProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Prompt      Prompt      `gorm:"foreignKey:PromptID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
