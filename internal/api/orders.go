package api

import (
	"net/http"

	"order-service/internal/models"
	"order-service/internal/service"

	"github.com/gin-gonic/gin"
)

// createOrder handles POST /orders/add
func (h *Handler) createOrder(c *gin.Context) {
	var req service.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.orders.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// getOrderByID handles GET /orders/get/:id
func (h *Handler) getOrderByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.orders.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getOrdersByIDs handles GET /orders/get?ids=
func (h *Handler) getOrdersByIDs(c *gin.Context) {
	ids, ok := queryIDs(c)
	if !ok {
		return
	}

	resp, err := h.orders.GetOrdersByIDs(c.Request.Context(), ids)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getOrdersByStatus handles GET /orders/get/status?status=
func (h *Handler) getOrdersByStatus(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))

	resp, err := h.orders.GetOrdersByStatus(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getOrdersByUserID handles GET /orders/get/user_id?userId=
func (h *Handler) getOrdersByUserID(c *gin.Context) {
	userID, ok := queryID(c, "userId")
	if !ok {
		return
	}

	resp, err := h.orders.GetOrdersByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getOrdersByEmail handles GET /orders/get/email?email=
func (h *Handler) getOrdersByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter required"})
		return
	}

	resp, err := h.orders.GetOrdersByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getUserByEmail handles GET /orders/users/get/email?email=
func (h *Handler) getUserByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter required"})
		return
	}

	user, err := h.orders.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// updateOrderByID handles PUT /orders/update/:id
func (h *Handler) updateOrderByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req service.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	resp, err := h.orders.UpdateOrderByID(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// deleteOrderByID handles DELETE /orders/delete/:id
func (h *Handler) deleteOrderByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.orders.DeleteOrderByID(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
