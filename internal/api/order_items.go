package api

import (
	"net/http"

	"order-service/internal/service"

	"github.com/gin-gonic/gin"
)

// createOrderItem handles POST /order-items/add
func (h *Handler) createOrderItem(c *gin.Context) {
	var req service.OrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	item, err := h.orderItems.CreateOrderItem(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// getOrderItemByID handles GET /order-items/get/:id
func (h *Handler) getOrderItemByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.orderItems.GetOrderItemByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// getOrderItemsByIDs handles GET /order-items/get?ids=
func (h *Handler) getOrderItemsByIDs(c *gin.Context) {
	ids, ok := queryIDs(c)
	if !ok {
		return
	}

	items, err := h.orderItems.GetOrderItemsByIDs(c.Request.Context(), ids)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// getOrderItemsByOrderID handles GET /order-items/get/order-id/:orderId
func (h *Handler) getOrderItemsByOrderID(c *gin.Context) {
	orderID, ok := pathID(c, "orderId")
	if !ok {
		return
	}

	items, err := h.orderItems.GetOrderItemsByOrderID(c.Request.Context(), orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// getOrderItemsByItemID handles GET /order-items/get/item-id/:itemId
func (h *Handler) getOrderItemsByItemID(c *gin.Context) {
	itemID, ok := pathID(c, "itemId")
	if !ok {
		return
	}

	items, err := h.orderItems.GetOrderItemsByItemID(c.Request.Context(), itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// updateOrderItemByID handles PUT /order-items/update/:id
func (h *Handler) updateOrderItemByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.OrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	item, err := h.orderItems.UpdateOrderItemByID(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// deleteOrderItemByID handles DELETE /order-items/delete/:id
func (h *Handler) deleteOrderItemByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.orderItems.DeleteOrderItemByID(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
