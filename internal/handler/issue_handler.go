package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devrajsawant/dev-scrum/internal/dto"
	"github.com/devrajsawant/dev-scrum/internal/middleware"
	"github.com/devrajsawant/dev-scrum/internal/service"
)

type IssueHandler struct {
	svc *service.IssueService
}

func NewIssueHandler(svc *service.IssueService) *IssueHandler {
	return &IssueHandler{svc: svc}
}

// ListForSprint
// GET /api/v1/sprints/:sprintId/issues
func (h *IssueHandler) ListForSprint(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	issues, err := h.svc.ListForSprint(c.Request.Context(), caller, c.Param("sprintId"))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": issues})
}

// Create
// POST /api/v1/projects/:projectId/issues
func (h *IssueHandler) Create(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	var req dto.CreateIssueReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := h.svc.Create(c.Request.Context(), caller, c.Param("projectId"), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": issue})
}

// UpdateOrder persists a full board reorder in one transaction.
// PUT /api/v1/issues/order
func (h *IssueHandler) UpdateOrder(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	var req dto.UpdateIssueOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.UpdateOrder(c.Request.Context(), caller, req.Issues); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"success": true}})
}

// Update applies a partial status/priority change.
// PATCH /api/v1/issues/:issueId
func (h *IssueHandler) Update(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	var req dto.UpdateIssueReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := h.svc.Update(c.Request.Context(), caller, c.Param("issueId"), req)
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": issue})
}

// Delete
// DELETE /api/v1/issues/:issueId
func (h *IssueHandler) Delete(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), caller, c.Param("issueId")); err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"success": true}})
}
