package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devrajsawant/dev-scrum/internal/dto"
	"github.com/devrajsawant/dev-scrum/internal/middleware"
	"github.com/devrajsawant/dev-scrum/internal/service"
)

type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// Create
// POST /api/v1/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	var req dto.CreateProjectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.svc.Create(c.Request.Context(), caller, req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": project})
}

// Get
// GET /api/v1/projects/:projectId
func (h *ProjectHandler) Get(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	project, err := h.svc.Get(c.Request.Context(), caller, c.Param("projectId"))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": project})
}

// List
// GET /api/v1/projects
func (h *ProjectHandler) List(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	projects, err := h.svc.ListForOrganization(c.Request.Context(), caller)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": projects})
}

// Delete
// DELETE /api/v1/projects/:projectId
func (h *ProjectHandler) Delete(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), caller, c.Param("projectId")); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"success": true}})
}
