package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/postalclerk/clerk-server/internal/models"
)

func (h *Handler) ListInventoryItems(c *gin.Context) {
	items, err := h.service.ListInventoryItems(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InventoryItemsResponse{Success: true, Items: items})
}

func (h *Handler) ListLowStockItems(c *gin.Context) {
	items, err := h.service.ListLowStockItems(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InventoryItemsResponse{Success: true, Items: items})
}

// AddInventoryItem creates an item and its opening purchase transaction
func (h *Handler) AddInventoryItem(c *gin.Context) {
	var req models.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.service.AddInventoryItem(c.Request.Context(), ClerkID(c), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.InventoryItemCreatedResponse{
		Success: true,
		Message: "Inventory item added successfully",
		ItemID:  item.ID,
	})
}

// UpdateInventoryItem overwrites an item; quantity changes land in the
// transaction log.
func (h *Handler) UpdateInventoryItem(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	var req models.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.service.UpdateInventoryItem(c.Request.Context(), ClerkID(c), id, req); err != nil {
		h.respondError(c, err)
		return
	}

	ok(c, "Inventory item updated successfully")
}

func (h *Handler) DeleteInventoryItem(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	if err := h.service.DeleteInventoryItem(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	ok(c, "Inventory item deleted successfully")
}

func (h *Handler) ListInventoryTransactions(c *gin.Context) {
	id, valid := parseID(c)
	if !valid {
		return
	}

	transactions, err := h.service.ListInventoryTransactions(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TransactionsResponse{Success: true, Transactions: transactions})
}
