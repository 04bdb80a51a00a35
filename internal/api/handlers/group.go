package handlers

import (
	"net/http"
	"strconv"

	"study-archive-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// GroupHandler handles HTTP requests for the group directory
type GroupHandler struct {
	service service.GroupServiceInterface
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(service service.GroupServiceInterface) *GroupHandler {
	return &GroupHandler{service: service}
}

// ListGroups returns the public directory
// @Summary List groups
// @Description List every approved study group. Never fails; an unavailable store yields an empty list.
// @Tags groups
// @Produce json
// @Success 200 {array} models.GroupRecord "Approved groups"
// @Router /groups [get]
func (h *GroupHandler) ListGroups(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List(c.Request.Context()))
}

// ListAllGroups returns the directory for moderators
// @Summary List groups (admin)
// @Description List groups, including broken ones when include_broken=true
// @Tags admin
// @Produce json
// @Param include_broken query bool false "Include groups whose link was marked broken"
// @Success 200 {array} models.GroupRecord "Groups"
// @Failure 400 {object} ErrorResponse "Invalid include_broken value"
// @Security BearerAuth
// @Router /admin/groups [get]
func (h *GroupHandler) ListAllGroups(c *gin.Context) {
	includeBroken := false
	if raw := c.Query("include_broken"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "include_broken must be a boolean"})
			return
		}
		includeBroken = v
	}

	if includeBroken {
		c.JSON(http.StatusOK, h.service.ListAll(c.Request.Context()))
		return
	}
	c.JSON(http.StatusOK, h.service.List(c.Request.Context()))
}

// CreateGroup adds a group directly to the directory
// @Summary Create a group
// @Description Create an approved group. Rejected when its name or link duplicates an existing group.
// @Tags admin
// @Accept json
// @Produce json
// @Param group body service.CreateGroupRequest true "Group data"
// @Success 201 {object} models.GroupRecord "Created group"
// @Failure 400 {object} DuplicateResponse "Invalid or duplicate group"
// @Failure 500 {object} ErrorResponse "Storage unavailable"
// @Security BearerAuth
// @Router /admin/groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req service.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	group, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

// UpdateGroup merges the given fields into a group
// @Summary Update a group
// @Description Partially update a group. id and createdAt cannot change.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Group ID"
// @Param group body service.UpdateGroupRequest true "Fields to change"
// @Success 200 {object} models.GroupRecord "Updated group"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "Group not found"
// @Failure 500 {object} ErrorResponse "Storage unavailable"
// @Security BearerAuth
// @Router /admin/groups/{id} [put]
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	var req service.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	group, err := h.service.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// DeleteGroup removes a group
// @Summary Delete a group
// @Description Delete a group by ID. Deleting an unknown ID succeeds.
// @Tags admin
// @Param id path string true "Group ID"
// @Success 204 "Deleted"
// @Failure 500 {object} ErrorResponse "Storage unavailable"
// @Security BearerAuth
// @Router /admin/groups/{id} [delete]
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
