package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postalclerk/clerk-server/internal/models"
)

// CreateMail records a mail item for the authenticated clerk
func (h *Handler) CreateMail(c *gin.Context) {
	var req models.CreateMailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	mail, err := h.service.CreateMail(c.Request.Context(), ClerkID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.MailResponse{
		Success: true,
		Message: "Mail created successfully",
		Mail:    mail,
	})
}

func (h *Handler) ListMails(c *gin.Context) {
	mails, err := h.service.ListMails(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MailsResponse{Success: true, Mails: mails})
}

func (h *Handler) GetMail(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	mail, err := h.service.GetMail(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MailResponse{Success: true, Mail: mail})
}

func (h *Handler) UpdateMailStatus(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var req models.UpdateMailStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Status is required")
		return
	}

	if err := h.service.UpdateMailStatus(c.Request.Context(), id, req.Status); err != nil {
		h.respondError(c, err)
		return
	}

	ok(c, "Status updated")
}

func (h *Handler) DeleteMail(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	if err := h.service.DeleteMail(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	ok(c, "Mail deleted successfully")
}
