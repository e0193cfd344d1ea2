package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devrajsawant/dev-scrum/internal/middleware"
	"github.com/devrajsawant/dev-scrum/internal/service"
)

type OrgHandler struct {
	svc *service.OrgService
}

func NewOrgHandler(svc *service.OrgService) *OrgHandler {
	return &OrgHandler{svc: svc}
}

// Get resolves an organization by slug. Responds with data: null when the
// slug is unknown or the caller is not a member.
// GET /api/v1/organizations/:org
func (h *OrgHandler) Get(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	org, err := h.svc.GetOrganization(c.Request.Context(), caller, c.Param("org"))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": org})
}

// Users lists the organization members that exist as local users. The :org
// parameter is the provider-side organization id here.
// GET /api/v1/organizations/:org/users
func (h *OrgHandler) Users(c *gin.Context) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
		return
	}

	users, err := h.svc.GetOrganizationUsers(c.Request.Context(), caller, c.Param("org"))
	if err != nil {
		WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}
