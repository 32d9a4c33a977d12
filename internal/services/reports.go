package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/prompthub-dev/prompthub/internal/models"
)

type ProjectReport struct {
	ProjectID          uint      `json:"project_id"`
	ProjectName        string    `json:"project_name"`
	ProjectDescription string    `json:"project_description"`
	PromptCount        int64     `json:"prompt_count"`
	LastPromptAt       time.Time `json:"last_prompt_at"`
}

type BucketCount struct {
	Count      int `json:"count"`
	Percentage int `json:"percentage"`
}

type AnalyticsPrompt struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Level     *string   `json:"level"`
	CreatedAt time.Time `json:"created_at"`
	LinkedAt  time.Time `json:"linked_at"`
}

type PairAnalytics struct {
	UserProjectID     uint                   `json:"user_project_id"`
	Prompts           []AnalyticsPrompt      `json:"prompts"`
	PromptsByDay      map[string]int         `json:"prompts_by_day"`
	PromptsByCategory map[string]BucketCount `json:"prompts_by_category"`
	PromptsByLevel    map[string]BucketCount `json:"prompts_by_level"`
}

type UserStats struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	FullName      *string   `json:"full_name"`
	Admin         bool      `json:"admin"`
	CreatedAt     time.Time `json:"created_at"`
	TotalProjects int64     `json:"total_projects"`
	TotalPrompts  int64     `json:"total_prompts"`
}

// levelUnspecified buckets prompts that carry no level.
const levelUnspecified = "unspecified"

// UserProjectReport lists, per assignment of the user, the linked prompt
// count and the last-activity timestamp. With zero prompts the assignment's
// own creation time stands in for last activity. Everything is recomputed
// from source rows on each call.
func UserProjectReport(db *gorm.DB, userID uint) ([]ProjectReport, error) {
	var assignments []models.UserProject

	if err := db.Preload("Project").Where("user_id = ?", userID).Find(&assignments).Error; err != nil {
		return nil, err
	}

	reports := make([]ProjectReport, 0, len(assignments))

	for _, assignment := range assignments {
		var count int64

		if err := db.Model(&models.UserProjectPrompt{}).
			Where("user_project_id = ?", assignment.ID).
			Count(&count).Error; err != nil {
			return nil, err
		}

		lastPromptAt := assignment.CreatedAt

		if count > 0 {
			var latest models.UserProjectPrompt

			if err := db.Where("user_project_id = ?", assignment.ID).
				Order("created_at DESC").
				First(&latest).Error; err != nil {
				return nil, err
			}

			lastPromptAt = latest.CreatedAt
		}

		reports = append(reports, ProjectReport{
			ProjectID:          assignment.ProjectID,
			ProjectName:        assignment.Project.Name,
			ProjectDescription: assignment.Project.Description,
			PromptCount:        count,
			LastPromptAt:       lastPromptAt,
		})
	}

	return reports, nil
}

// UserProjectAnalytics buckets the pair's linked prompts by UTC calendar
// day, by category, and by level. Category and level buckets carry a
// percentage of the total, rounded to whole percent.
func UserProjectAnalytics(db *gorm.DB, userID uint, projectID uint) (PairAnalytics, error) {
	var assignment models.UserProject

	err := db.Where("user_id = ? AND project_id = ?", userID, projectID).First(&assignment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PairAnalytics{}, ErrNotFound
		}
		return PairAnalytics{}, err
	}

	var links []models.UserProjectPrompt

	err = db.Preload("Prompt").
		Where("user_project_id = ?", assignment.ID).
		Order("created_at ASC").
		Find(&links).Error

	if err != nil {
		return PairAnalytics{}, err
	}

	analytics := PairAnalytics{
		UserProjectID:     assignment.ID,
		Prompts:           make([]AnalyticsPrompt, 0, len(links)),
		PromptsByDay:      make(map[string]int),
		PromptsByCategory: make(map[string]BucketCount),
		PromptsByLevel:    make(map[string]BucketCount),
	}

	byCategory := make(map[string]int)
	byLevel := make(map[string]int)

	for _, link := range links {
		analytics.Prompts = append(analytics.Prompts, AnalyticsPrompt{
			ID:        link.Prompt.ID,
			Title:     link.Prompt.Title,
			Category:  link.Prompt.Category,
			Level:     link.Prompt.Level,
			CreatedAt: link.Prompt.CreatedAt,
			LinkedAt:  link.CreatedAt,
		})

		// Day buckets use UTC so the report does not depend on server locale.
		day := link.Prompt.CreatedAt.UTC().Format("2006-01-02")
		analytics.PromptsByDay[day]++

		byCategory[link.Prompt.Category]++

		level := levelUnspecified
		if link.Prompt.Level != nil {
			level = *link.Prompt.Level
		}
		byLevel[level]++
	}

	total := len(links)
	analytics.PromptsByCategory = bucketize(byCategory, total)
	analytics.PromptsByLevel = bucketize(byLevel, total)

	return analytics, nil
}

func bucketize(counts map[string]int, total int) map[string]BucketCount {
	buckets := make(map[string]BucketCount, len(counts))

	for key, count := range counts {
		percentage := 0
		if total > 0 {
			percentage = int(math.Round(float64(count) / float64(total) * 100))
		}
		buckets[key] = BucketCount{Count: count, Percentage: percentage}
	}

	return buckets
}

// AllUserStats computes assignment and prompt totals for every user by
// summing per-assignment link counts. Full scan, no pagination; fine at the
// scale this runs at.
func AllUserStats(db *gorm.DB) ([]UserStats, error) {
	var users []models.User

	if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	stats := make([]UserStats, 0, len(users))

	for _, user := range users {
		var assignments []models.UserProject

		if err := db.Where("user_id = ?", user.ID).Find(&assignments).Error; err != nil {
			return nil, err
		}

		var totalPrompts int64

		for _, assignment := range assignments {
			var count int64

			if err := db.Model(&models.UserProjectPrompt{}).
				Where("user_project_id = ?", assignment.ID).
				Count(&count).Error; err != nil {
				return nil, err
			}

			totalPrompts += count
		}

		stats = append(stats, UserStats{
			ID:            user.ID,
			Email:         user.Email,
			FullName:      user.FullName,
			Admin:         user.Admin,
			CreatedAt:     user.CreatedAt,
			TotalProjects: int64(len(assignments)),
			TotalPrompts:  totalPrompts,
		})
	}

	return stats, nil
}
