package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	CategoryDatabase    = "database"
	CategoryIntegration = "integration"
	CategoryUIUX        = "ui-ux"
	CategoryContent     = "content"

	LevelJunior = "junior"
	LevelMid    = "mid"
	LevelSenior = "senior"
)

type Prompt struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Description string
	PromptText  string  `gorm:"not null"`
	Category    string  `gorm:"not null;index"`
	Subcategory *string // nil means unset, distinct from ""
	// Tags is a JSON string array: order preserved, duplicates allowed.
	Tags           datatypes.JSON
	Level          *string
	ExampleContext *string

	// Relationships
	Links []UserProjectPrompt `gorm:"foreignKey:PromptID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// TagList decodes the stored tag array. A missing or malformed column
// yields an empty slice.
func (p *Prompt) TagList() []string {
	if len(p.Tags) == 0 {
		return []string{}
	}

	var tags []string

	if err := json.Unmarshal(p.Tags, &tags); err != nil {
		return []string{}
	}

	return tags
}

// TagsJSON encodes a tag slice for storage, keeping entry order as given.
func TagsJSON(tags []string) datatypes.JSON {
	if tags == nil {
		tags = []string{}
	}

	raw, err := json.Marshal(tags)

	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}

	return datatypes.JSON(raw)
}
