package db

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prompthub-dev/prompthub/internal/models"
)

func TestSeedAdminIdempotent(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "admin@example.com")
	t.Setenv("ADMIN_PASSWORD", "seed-password")

	d, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.AutoMigrate(&models.User{}); err != nil {
		t.Fatal(err)
	}

	if err := SeedAdmin(d); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := SeedAdmin(d); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var count int64
	d.Model(&models.User{}).Where("email = ?", "admin@example.com").Count(&count)
	if count != 1 {
		t.Fatalf("admin seeded %d times, want 1", count)
	}

	var admin models.User
	if err := d.Where("email = ?", "admin@example.com").First(&admin).Error; err != nil {
		t.Fatal(err)
	}
	if !admin.Admin {
		t.Fatal("seeded account must be an admin")
	}
	if admin.PasswordHash == "seed-password" {
		t.Fatal("password must be stored hashed")
	}
}

func TestSeedAdminSkipsWithoutEnv(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "")
	t.Setenv("ADMIN_PASSWORD", "")

	d, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.AutoMigrate(&models.User{}); err != nil {
		t.Fatal(err)
	}

	if err := SeedAdmin(d); err != nil {
		t.Fatalf("seed without env: %v", err)
	}

	var count int64
	d.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no users, got %d", count)
	}
}
