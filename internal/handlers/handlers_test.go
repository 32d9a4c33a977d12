package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prompthub-dev/prompthub/db"
	"github.com/prompthub-dev/prompthub/internal/auth"
	"github.com/prompthub-dev/prompthub/internal/models"
	"github.com/prompthub-dev/prompthub/internal/router"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())
	gin.SetMode(gin.TestMode)

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.UserProject{},
		&models.Prompt{},
		&models.UserProjectPrompt{},
	))

	db.DB = gdb
	return router.NewRouter()
}

func seedUser(t *testing.T, email, password string, admin bool) (models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Email: email, PasswordHash: string(hash), Admin: admin}
	require.NoError(t, db.DB.Create(&user).Error)
	token, err := auth.GenerateJWT(user.ID, user.Email)
	require.NoError(t, err)
	return user, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), "body: %s", w.Body.String())
}

func TestAuthGates(t *testing.T) {
	r := setupRouter(t)
	_, userToken := seedUser(t, "user@example.com", "password123", false)

	// No token.
	w := doJSON(t, r, http.MethodGet, "/api/me/projects", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token.
	w = doJSON(t, r, http.MethodGet, "/api/me/projects", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Authenticated but not admin.
	w = doJSON(t, r, http.MethodGet, "/api/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogin(t *testing.T) {
	r := setupRouter(t)
	seedUser(t, "user@example.com", "password123", false)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "user@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Admin bool   `json:"admin"`
		} `json:"user"`
	}
	decode(t, w, &body)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "user@example.com", body.User.Email)

	// The minted token works against guarded routes.
	w = doJSON(t, r, http.MethodGet, "/api/auth/me", body.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Wrong password.
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "user@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminEndToEndScenario(t *testing.T) {
	r := setupRouter(t)
	_, adminToken := seedUser(t, "admin@example.com", "admin-password", true)

	// Admin creates project P.
	w := doJSON(t, r, http.MethodPost, "/api/admin/projects", adminToken, gin.H{
		"name": "Project P",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var project struct {
		ID uint `json:"id"`
	}
	decode(t, w, &project)

	// Admin creates user U.
	w = doJSON(t, r, http.MethodPost, "/api/admin/users", adminToken, gin.H{
		"email":    "u@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uint `json:"id"`
	}
	decode(t, w, &created)

	// Duplicate email conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/admin/users", adminToken, gin.H{
		"email":    "u@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Assign U to P.
	assignPath := "/api/admin/users/" + itoa(created.ID) + "/projects/" + itoa(project.ID)
	w = doJSON(t, r, http.MethodPost, assignPath, adminToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Assigning again conflicts.
	w = doJSON(t, r, http.MethodPost, assignPath, adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// U logs in and creates a prompt inside P.
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "u@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	decode(t, w, &login)

	promptsPath := "/api/projects/" + itoa(project.ID) + "/prompts"
	w = doJSON(t, r, http.MethodPost, promptsPath, login.Token, gin.H{
		"title":       "Schema Gen",
		"prompt_text": "Generate a schema for...",
		"category":    "database",
		"tags":        []string{"sql", "ddl"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// U sees exactly the one prompt.
	w = doJSON(t, r, http.MethodGet, promptsPath, login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var prompts []struct {
		Title string   `json:"title"`
		Tags  []string `json:"tags"`
	}
	decode(t, w, &prompts)
	require.Len(t, prompts, 1)
	assert.Equal(t, "Schema Gen", prompts[0].Title)
	assert.Equal(t, []string{"sql", "ddl"}, prompts[0].Tags)

	// Global user stats: U has one project and one prompt.
	w = doJSON(t, r, http.MethodGet, "/api/admin/reports/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats []struct {
		Email         string `json:"email"`
		TotalProjects int64  `json:"total_projects"`
		TotalPrompts  int64  `json:"total_prompts"`
	}
	decode(t, w, &stats)
	found := false
	for _, s := range stats {
		if s.Email == "u@example.com" {
			found = true
			assert.Equal(t, int64(1), s.TotalProjects)
			assert.Equal(t, int64(1), s.TotalPrompts)
		}
	}
	assert.True(t, found, "stats must include u@example.com")

	// Removing a pair that does not exist is an idempotent no-op.
	w = doJSON(t, r, http.MethodDelete, "/api/admin/users/"+itoa(created.ID)+"/projects/99999", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestScopedPromptNotReachableFromOtherProject(t *testing.T) {
	r := setupRouter(t)
	_, adminToken := seedUser(t, "admin@example.com", "admin-password", true)
	owner, ownerToken := seedUser(t, "owner@example.com", "password123", false)
	intruder, intruderToken := seedUser(t, "intruder@example.com", "password123", false)

	projectA := models.Project{Name: "A"}
	projectB := models.Project{Name: "B"}
	require.NoError(t, db.DB.Create(&projectA).Error)
	require.NoError(t, db.DB.Create(&projectB).Error)

	w := doJSON(t, r, http.MethodPost, "/api/admin/users/"+itoa(owner.ID)+"/projects/"+itoa(projectA.ID), adminToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/admin/users/"+itoa(intruder.ID)+"/projects/"+itoa(projectB.ID), adminToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/projects/"+itoa(projectA.ID)+"/prompts", ownerToken, gin.H{
		"title":       "Owner Only",
		"prompt_text": "private",
		"category":    "content",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var prompt struct {
		ID uint `json:"id"`
	}
	decode(t, w, &prompt)

	// The intruder knows the prompt id but has no link to it.
	w = doJSON(t, r, http.MethodPatch,
		"/api/projects/"+itoa(projectB.ID)+"/prompts/"+itoa(prompt.ID),
		intruderToken, gin.H{"title": "Hijacked"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// And the owner's prompt is unchanged.
	var stored models.Prompt
	require.NoError(t, db.DB.First(&stored, prompt.ID).Error)
	assert.Equal(t, "Owner Only", stored.Title)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
