package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postalclerk/clerk-server/internal/models"
)

// ListBills returns all bills, optionally narrowed by ?type=
func (h *Handler) ListBills(c *gin.Context) {
	bills, err := h.service.ListBills(c.Request.Context(), c.Query("type"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BillsResponse{Success: true, Bills: bills})
}

func (h *Handler) CreateBill(c *gin.Context) {
	var req models.BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	bill, err := h.service.CreateBill(c.Request.Context(), ClerkID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.BillResponse{
		Success: true,
		Message: "Bill created successfully",
		Bill:    bill,
	})
}

func (h *Handler) UpdateBill(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var req models.BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	bill, err := h.service.UpdateBill(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BillResponse{
		Success: true,
		Message: "Bill updated successfully",
		Bill:    bill,
	})
}

func (h *Handler) DeleteBill(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	if err := h.service.DeleteBill(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	ok(c, "Bill deleted successfully")
}
