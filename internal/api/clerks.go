package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postalclerk/clerk-server/internal/models"
)

// Register handles clerk registration
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles clerk login
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListClerks(c *gin.Context) {
	clerks, err := h.service.ListClerks(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ClerksResponse{Success: true, Clerks: clerks})
}

// DeleteClerk removes the clerk whose id is given in the body
func (h *Handler) DeleteClerk(c *gin.Context) {
	var req models.DeleteClerkRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID <= 0 {
		fail(c, http.StatusBadRequest, "Clerk id is required")
		return
	}

	if err := h.service.DeleteClerk(c.Request.Context(), req.ID); err != nil {
		h.respondError(c, err)
		return
	}

	ok(c, "Clerk deleted successfully")
}
