package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/prompthub-dev/prompthub/db"
	"github.com/prompthub-dev/prompthub/internal/auth"
	"github.com/prompthub-dev/prompthub/internal/handlers"
	"github.com/prompthub-dev/prompthub/internal/middleware"
	"github.com/prompthub-dev/prompthub/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	resolver := auth.NewDBResolver(db.DB)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", handlers.LoginUser)
			authRoutes.POST("/logout", handlers.LogoutUser)
			authRoutes.GET("/me", middleware.RequireAuth(resolver), handlers.Me)
			authRoutes.PUT("/password", middleware.RequireAuth(resolver), handlers.UpdatePassword)
		}

		me := api.Group("/me", middleware.RequireAuth(resolver))
		{
			me.GET("/projects", handlers.GetMyProjects)
		}

		projects := api.Group("/projects", middleware.RequireAuth(resolver))
		{
			projects.GET("/:project_id/prompts", handlers.GetProjectPrompts)
			projects.POST("/:project_id/prompts", handlers.CreatePromptInProject)
			projects.PATCH("/:project_id/prompts/:prompt_id", handlers.UpdatePromptInProject)
			projects.DELETE("/:project_id/prompts/:prompt_id", handlers.DeletePromptFromProject)
		}

		admin := api.Group("/admin", middleware.RequireAdmin(resolver))
		{
			admin.GET("/users", handlers.ListUsers)
			admin.POST("/users", handlers.CreateUser)
			admin.GET("/users/:user_id", handlers.GetUser)
			admin.DELETE("/users/:user_id", handlers.DeleteUser)

			admin.GET("/projects", handlers.ListProjects)
			admin.POST("/projects", handlers.CreateProject)
			admin.GET("/projects/:project_id", handlers.GetProject)
			admin.PATCH("/projects/:project_id", handlers.UpdateProject)
			admin.DELETE("/projects/:project_id", handlers.DeleteProject)

			admin.POST("/users/:user_id/projects/:project_id", handlers.AssignUserToProject)
			admin.DELETE("/users/:user_id/projects/:project_id", handlers.RemoveUserFromProject)
			admin.GET("/users/:user_id/projects", handlers.GetUserProjects)
			admin.GET("/projects/:project_id/users", handlers.GetProjectUsers)

			admin.GET("/prompts", handlers.ListPrompts)
			admin.GET("/prompts/search", handlers.SearchPrompts)
			admin.POST("/prompts", handlers.CreatePrompt)
			admin.GET("/prompts/:prompt_id", handlers.GetPrompt)
			admin.PATCH("/prompts/:prompt_id", handlers.UpdatePrompt)
			admin.DELETE("/prompts/:prompt_id", handlers.DeletePrompt)

			admin.GET("/users/:user_id/report", handlers.GetUserReport)
			admin.GET("/users/:user_id/projects/:project_id/analytics", handlers.GetUserProjectAnalytics)
			admin.GET("/reports/users", handlers.GetUserStats)
		}
	}

	return r
}
