package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/devrajsawant/dev-scrum/internal/conf"
	"github.com/devrajsawant/dev-scrum/internal/data"
	"github.com/devrajsawant/dev-scrum/internal/handler"
	"github.com/devrajsawant/dev-scrum/internal/identity"
	"github.com/devrajsawant/dev-scrum/internal/middleware"
	"github.com/devrajsawant/dev-scrum/internal/repository"
	"github.com/devrajsawant/dev-scrum/internal/service"
)

func main() {
	// 1. configuration
	cfg := conf.LoadConfig()

	// 2. data layer (Postgres)
	d, cleanup, err := data.NewData(cfg)
	if err != nil {
		log.Fatalf("data layer init failed: %v", err)
	}
	defer cleanup()

	userRepo := repository.NewUserRepository(d.DB)

	// 3. identity provider adapter
	provider := identity.NewClient(cfg.Identity.BaseURL, cfg.Identity.APIKey, cfg.Identity.Timeout)

	// 4. services
	userSvc := service.NewUserService(userRepo)
	orgSvc := service.NewOrgService(userRepo, provider)
	projectSvc := service.NewProjectService(d, userRepo)
	sprintSvc := service.NewSprintService(d)
	issueSvc := service.NewIssueService(d, userRepo, cfg.Board.Columns)

	// 5. handlers
	userH := handler.NewUserHandler(userSvc)
	orgH := handler.NewOrgHandler(orgSvc)
	projectH := handler.NewProjectHandler(projectSvc)
	sprintH := handler.NewSprintHandler(sprintSvc)
	issueH := handler.NewIssueHandler(issueSvc)

	// 6. gin server
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 7. routes
	api := r.Group("/api/v1")
	protected := api.Group("/")
	protected.Use(middleware.SessionAuth(provider))
	{
		protected.GET("/me", userH.Me)

		protected.GET("/organizations/:org", orgH.Get)
		protected.GET("/organizations/:org/users", orgH.Users)

		protected.POST("/projects", projectH.Create)
		protected.GET("/projects", projectH.List)
		protected.GET("/projects/:projectId", projectH.Get)
		protected.DELETE("/projects/:projectId", projectH.Delete)

		protected.POST("/projects/:projectId/sprints", sprintH.Create)
		protected.PATCH("/sprints/:sprintId/status", sprintH.UpdateStatus)

		protected.POST("/projects/:projectId/issues", issueH.Create)
		protected.GET("/sprints/:sprintId/issues", issueH.ListForSprint)
		protected.PUT("/issues/order", issueH.UpdateOrder)
		protected.PATCH("/issues/:issueId", issueH.Update)
		protected.DELETE("/issues/:issueId", issueH.Delete)
	}

	log.Printf("dev-scrum backend listening on :%s", cfg.App.Port)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
