package api

import (
	"net/http"

	"order-service/internal/service"

	"github.com/gin-gonic/gin"
)

// createItem handles POST /items/add
func (h *Handler) createItem(c *gin.Context) {
	var req service.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	item, err := h.items.CreateItem(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// getItemByID handles GET /items/get/:id
func (h *Handler) getItemByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.items.GetItemByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// getItemsByIDs handles GET /items/get?ids=
func (h *Handler) getItemsByIDs(c *gin.Context) {
	ids, ok := queryIDs(c)
	if !ok {
		return
	}

	items, err := h.items.GetItemsByIDs(c.Request.Context(), ids)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// updateItemByID handles PUT /items/update/:id
func (h *Handler) updateItemByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	item, err := h.items.UpdateItemByID(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// deleteItemByID handles DELETE /items/delete/:id
func (h *Handler) deleteItemByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.items.DeleteItemByID(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
