package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"shophub/internal/cart"
	"shophub/internal/chat"
	"shophub/internal/service"
	"shophub/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Session and user identity arrive as headers: the cart session id is minted
// by the storefront client, the user id by the external identity provider at
// the edge.
const (
	headerSessionID = "X-Session-ID"
	headerUserID    = "X-User-ID"
)

// Handler contains HTTP handlers
type Handler struct {
	catalog    *service.CatalogService
	orders     *service.OrderService
	carts      *cart.Manager
	matcher    *chat.Matcher
	chats      *chat.Registry
	pricing    service.Pricing
	replyDelay time.Duration
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *service.CatalogService,
	orders *service.OrderService,
	carts *cart.Manager,
	matcher *chat.Matcher,
	chats *chat.Registry,
	pricing service.Pricing,
	replyDelay time.Duration,
) *Handler {
	return &Handler{
		catalog:    catalog,
		orders:     orders,
		carts:      carts,
		matcher:    matcher,
		chats:      chats,
		pricing:    pricing,
		replyDelay: replyDelay,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.GET("/products/:id", h.getProduct)
		v1.POST("/admin/seed", h.seedProducts)

		v1.GET("/cart", h.getCart)
		v1.POST("/cart/items", h.addCartItem)
		v1.PUT("/cart/items/:productID", h.updateCartItem)
		v1.DELETE("/cart/items/:productID", h.removeCartItem)
		v1.DELETE("/cart", h.clearCart)

		v1.POST("/checkout", h.checkout)
		v1.GET("/orders", h.listOrders)
		v1.GET("/orders/:id", h.getOrder)

		v1.POST("/chat/sessions", h.openChat)
		v1.GET("/chat/sessions/:id/messages", h.chatTranscript)
		v1.POST("/chat/sessions/:id/messages", h.postChatMessage)
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// listProducts handles catalog listing with optional category and search
func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list products",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// getProduct handles product detail lookup
func (h *Handler) getProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Product not found",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, product)
}

// seedProducts loads the sample catalog
func (h *Handler) seedProducts(c *gin.Context) {
	count, err := h.catalog.SeedProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to seed products",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// sessionCart resolves the caller's cart, or fails the request.
func (h *Handler) sessionCart(c *gin.Context) (*cart.Cart, bool) {
	sessionID := c.GetHeader(headerSessionID)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing " + headerSessionID + " header"})
		return nil, false
	}
	return h.carts.Cart(sessionID), true
}

type cartView struct {
	Lines     []cart.Line   `json:"lines"`
	ItemCount int           `json:"item_count"`
	Quote     service.Quote `json:"quote"`
}

func (h *Handler) cartState(crt *cart.Cart) cartView {
	return cartView{
		Lines:     crt.Lines(),
		ItemCount: crt.ItemCount(),
		Quote:     h.pricing.QuoteFor(crt.Subtotal()),
	}
}

// getCart returns the session cart with its quote
func (h *Handler) getCart(c *gin.Context) {
	crt, ok := h.sessionCart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.cartState(crt))
}

// addCartItem adds one unit of a product to the session cart
func (h *Handler) addCartItem(c *gin.Context) {
	crt, ok := h.sessionCart(c)
	if !ok {
		return
	}

	var req struct {
		ProductID int64 `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Product not found",
			"details": err.Error(),
		})
		return
	}

	crt.Add(*product)
	util.CartOperationsTotal.WithLabelValues("add").Inc()
	c.JSON(http.StatusOK, h.cartState(crt))
}

// updateCartItem sets the quantity of a cart line; zero removes it
func (h *Handler) updateCartItem(c *gin.Context) {
	crt, ok := h.sessionCart(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	crt.SetQuantity(productID, req.Quantity)
	util.CartOperationsTotal.WithLabelValues("update").Inc()
	c.JSON(http.StatusOK, h.cartState(crt))
}

// removeCartItem deletes a cart line
func (h *Handler) removeCartItem(c *gin.Context) {
	crt, ok := h.sessionCart(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	crt.Remove(productID)
	util.CartOperationsTotal.WithLabelValues("remove").Inc()
	c.JSON(http.StatusOK, h.cartState(crt))
}

// clearCart empties the session cart
func (h *Handler) clearCart(c *gin.Context) {
	crt, ok := h.sessionCart(c)
	if !ok {
		return
	}

	crt.Clear()
	util.CartOperationsTotal.WithLabelValues("clear").Inc()
	c.JSON(http.StatusOK, h.cartState(crt))
}

// checkout converts the session cart into an order
func (h *Handler) checkout(c *gin.Context) {
	sessionID := c.GetHeader(headerSessionID)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing " + headerSessionID + " header"})
		return
	}
	userID := c.GetHeader(headerUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	var body struct {
		ShippingAddress string `json:"shipping_address"`
		PaymentMethod   string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	order, err := h.orders.Checkout(c.Request.Context(), &service.CheckoutRequest{
		SessionID:       sessionID,
		UserID:          userID,
		ShippingAddress: body.ShippingAddress,
		PaymentMethod:   body.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart),
			errors.Is(err, service.ErrMissingAddress),
			errors.Is(err, service.ErrInvalidPaymentMethod):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to place order",
				"details": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusCreated, order)
}

// listOrders returns the caller's order history
func (h *Handler) listOrders(c *gin.Context) {
	userID := c.GetHeader(headerUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
		return
	}

	orders, err := h.orders.ListUserOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list orders",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// getOrder returns one order with its items
func (h *Handler) getOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, items, err := h.orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Order not found",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
		"items": items,
	})
}

// openChat starts a chat session seeded with the assistant greeting
func (h *Handler) openChat(c *gin.Context) {
	s := h.chats.Open()
	c.JSON(http.StatusCreated, gin.H{
		"session_id": s.ID,
		"messages":   s.Messages(),
	})
}

// chatTranscript returns the session transcript
func (h *Handler) chatTranscript(c *gin.Context) {
	s := h.chats.Get(c.Param("id"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": s.Messages()})
}

// postChatMessage appends a user message and returns the bot reply; the
// reply appears in the transcript after the configured delay.
func (h *Handler) postChatMessage(c *gin.Context) {
	s := h.chats.Get(c.Param("id"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chat session not found"})
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	reply := s.Post(req.Text, h.matcher, h.replyDelay)
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
