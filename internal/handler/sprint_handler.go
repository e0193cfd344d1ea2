package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devrajsawant/dev-scrum/internal/dto"
	"github.com/devrajsawant/dev-scrum/internal/middleware"
	"github.com/devrajsawant/dev-scrum/internal/model"
	"github.com/devrajsawant/dev-scrum/internal/service"
)

type SprintHandler struct {
	svc *service.SprintService
}

func NewSprintHandler(svc *service.SprintService) *SprintHandler {
	return &SprintHandler{svc: svc}
}

// Create
// POST /api/v1/projects/:projectId/sprints
func (h *SprintHandler) Create(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	var req dto.CreateSprintReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sprint, err := h.svc.Create(c.Request.Context(), caller, c.Param("projectId"), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": sprint})
}

// UpdateStatus
// PATCH /api/v1/sprints/:sprintId/status
func (h *SprintHandler) UpdateStatus(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	var req dto.UpdateSprintStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sprint, err := h.svc.UpdateStatus(c.Request.Context(), caller, c.Param("sprintId"), model.SprintStatus(req.Status))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sprint})
}
