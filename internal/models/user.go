package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Email        string  `gorm:"uniqueIndex;not null"`
	PasswordHash string  `gorm:"not null"`
	FullName     *string // optional display name
	Admin        bool    `gorm:"not null;default:false"`

	// Relationships
	UserProjects []UserProject `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
