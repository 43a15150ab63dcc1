package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"order-service/internal/auth"
	"order-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	orders     *service.OrderService
	items      *service.ItemService
	orderItems *service.OrderItemService
	policy     auth.Policy
	parser     *auth.TokenParser
}

// NewHandler creates a new HTTP handler
func NewHandler(
	orders *service.OrderService,
	items *service.ItemService,
	orderItems *service.OrderItemService,
	policy auth.Policy,
	parser *auth.TokenParser,
) *Handler {
	return &Handler{
		orders:     orders,
		items:      items,
		orderItems: orderItems,
		policy:     policy,
		parser:     parser,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())
	router.Use(Authenticate(h.parser))

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	orders := router.Group("/orders")
	{
		orders.POST("/add", requireRole(auth.RoleUser, auth.RoleAdmin), h.createOrder)
		orders.GET("/get/:id", requirePolicy(h.orderOwnerOrAdmin), h.getOrderByID)
		orders.GET("/get", requireRole(auth.RoleAdmin), h.getOrdersByIDs)
		orders.GET("/get/status", requireRole(auth.RoleAdmin), h.getOrdersByStatus)
		orders.GET("/get/user_id", requirePolicy(h.ownerOrAdminByUserID), h.getOrdersByUserID)
		orders.GET("/get/email", requirePolicy(h.ownerOrAdminByEmail), h.getOrdersByEmail)
		orders.GET("/users/get/email", requirePolicy(h.ownerOrAdminByEmail), h.getUserByEmail)
		orders.PUT("/update/:id", requirePolicy(h.orderOwnerOrAdmin), h.updateOrderByID)
		orders.DELETE("/delete/:id", requirePolicy(h.orderOwnerOrAdmin), h.deleteOrderByID)
	}

	items := router.Group("/items")
	{
		items.POST("/add", requireRole(auth.RoleUser, auth.RoleAdmin), h.createItem)
		items.GET("/get/:id", requireRole(auth.RoleUser, auth.RoleAdmin), h.getItemByID)
		items.GET("/get", requireRole(auth.RoleUser, auth.RoleAdmin), h.getItemsByIDs)
		items.PUT("/update/:id", requireRole(auth.RoleAdmin), h.updateItemByID)
		items.DELETE("/delete/:id", requireRole(auth.RoleAdmin), h.deleteItemByID)
	}

	orderItems := router.Group("/order-items")
	{
		orderItems.POST("/add", requireRole(auth.RoleAdmin), h.createOrderItem)
		orderItems.GET("/get/:id", requirePolicy(h.orderItemOwnerOrAdmin), h.getOrderItemByID)
		orderItems.GET("/get", requireRole(auth.RoleAdmin), h.getOrderItemsByIDs)
		orderItems.GET("/get/order-id/:orderId", requirePolicy(h.parentOrderOwnerOrAdmin), h.getOrderItemsByOrderID)
		orderItems.GET("/get/item-id/:itemId", requireRole(auth.RoleAdmin), h.getOrderItemsByItemID)
		orderItems.PUT("/update/:id", requireRole(auth.RoleAdmin), h.updateOrderItemByID)
		orderItems.DELETE("/delete/:id", requireRole(auth.RoleAdmin), h.deleteOrderItemByID)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// Policy adapters binding route parameters to ownership predicates.

func (h *Handler) orderOwnerOrAdmin(c *gin.Context, id *auth.Identity) bool {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return false
	}
	return h.policy.IsOrderOwnerOrAdmin(c.Request.Context(), id, orderID)
}

func (h *Handler) orderItemOwnerOrAdmin(c *gin.Context, id *auth.Identity) bool {
	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return false
	}
	return h.policy.IsOrderItemOwnerOrAdmin(c.Request.Context(), id, itemID)
}

func (h *Handler) parentOrderOwnerOrAdmin(c *gin.Context, id *auth.Identity) bool {
	orderID, err := strconv.ParseInt(c.Param("orderId"), 10, 64)
	if err != nil {
		return false
	}
	return h.policy.IsOrderOwnerOrAdmin(c.Request.Context(), id, orderID)
}

func (h *Handler) ownerOrAdminByEmail(c *gin.Context, id *auth.Identity) bool {
	return h.policy.IsOwnerOrAdminByEmail(id, c.Query("email"))
}

func (h *Handler) ownerOrAdminByUserID(c *gin.Context, id *auth.Identity) bool {
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil {
		return false
	}
	return h.policy.IsOwnerOrAdminByUserID(c.Request.Context(), id, userID)
}

// pathID parses the numeric :id path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// queryID parses a numeric query parameter.
func queryID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// queryIDs parses the comma-separated ids query parameter.
func queryIDs(c *gin.Context) ([]int64, bool) {
	raw := c.Query("ids")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids query parameter required"})
		return nil, false
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ids query parameter"})
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// respondError maps domain errors onto stable HTTP statuses. Messages embed
// the identifying keys for diagnostics; consumers branch on status codes.
func respondError(c *gin.Context, err error) {
	var (
		notFound   *service.EntityNotFoundError
		emptySet   *service.EmptyResultSetError
		noStatus   *service.NoOrdersWithStatusError
		noUser     *service.NoOrdersForUserError
		refMissing *service.ReferencedEntityNotFoundError
		validation *service.ValidationError
	)

	switch {
	case errors.As(err, &notFound),
		errors.As(err, &emptySet),
		errors.As(err, &noStatus),
		errors.As(err, &noUser),
		errors.As(err, &refMissing):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
