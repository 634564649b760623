package order

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func Register(r gin.IRouter, store Store, svc *Service, authed, admin gin.HandlerFunc) {
	r.GET("/orders", admin, listOrdersHandler(store))
	r.GET("/orders/user/:user_id", authed, listOrdersByUserHandler(store))
	r.GET("/orders/:id", authed, getOrderHandler(store))
	r.GET("/orders/:id/items", authed, getOrderItemsHandler(store))
	r.POST("/orders", authed, createOrderHandler(svc, store))
	r.PUT("/orders/:id", authed, checkoutHandler(svc, store))
	r.DELETE("/orders/:id", admin, deleteOrderHandler(store))

	r.GET("/cart/:user_id", authed, getCartHandler(store))
	r.POST("/cart", authed, addItemHandler(svc, store))
	r.PUT("/cart/:id", authed, updateQuantityHandler(svc))
	r.DELETE("/cart/:id", authed, removeItemHandler(svc))
}

func listOrdersHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := store.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list orders failed"})
			return
		}
		if out == nil {
			out = []Order{}
		}
		c.JSON(http.StatusOK, out)
	}
}

func listOrdersByUserHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))
		out, err := store.ListByUser(c.Request.Context(), c.Param("user_id"), limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list orders failed"})
			return
		}
		if out == nil {
			out = []Order{}
		}
		c.JSON(http.StatusOK, out)
	}
}

func getOrderHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := store.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func getOrderItemsHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := store.GetByID(c.Request.Context(), c.Param("id")); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		items, err := store.GetItems(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list items failed"})
			return
		}
		if items == nil {
			items = []CartItem{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// createOrderHandler godoc
// @Summary Create an order with initial items
// @Accept json
// @Produce json
// @Param order body CreateOrderRequest true "order"
// @Success 201 {object} Order
// @Router /orders [post]
func createOrderHandler(svc *Service, store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}
		for _, it := range req.Items {
			if it.ProductID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "every item needs a product_id"})
				return
			}
		}
		id, err := svc.CreateOrder(c.Request.Context(), req.UserID, req.Items)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create order failed"})
			return
		}
		o, err := store.GetByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order not found after create"})
			return
		}
		c.JSON(http.StatusCreated, o)
	}
}

// checkoutHandler finalizes the order: PUT /orders/:id with the
// delivery address and payment type records the payment and completes
// the order.
func checkoutHandler(svc *Service, store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Address == "" || req.PaymentType == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "address and payment_type are required"})
			return
		}
		err := svc.Checkout(c.Request.Context(), c.Param("id"), req.Address, req.PaymentType)
		switch {
		case err == nil:
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		case errors.Is(err, ErrOrderCompleted):
			c.JSON(http.StatusForbidden, gin.H{"error": "cannot modify completed order"})
			return
		case errors.Is(err, ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
			return
		}
		o, err := store.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order not found after checkout"})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func deleteOrderHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := store.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete order failed"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}

func getCartHandler(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := store.ActiveCart(c.Request.Context(), c.Param("user_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "fetch cart failed"})
			return
		}
		if items == nil {
			items = []CartItem{}
		}
		c.JSON(http.StatusOK, items)
	}
}

// addItemHandler godoc
// @Summary Add a product to the user's open cart
// @Accept json
// @Produce json
// @Param item body AddItemRequest true "item"
// @Success 200 {object} Order
// @Router /cart [post]
func addItemHandler(svc *Service, store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id and product_id are required"})
			return
		}
		orderID, err := svc.AddItem(c.Request.Context(), req.UserID, req.ProductID, req.Quantity)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "add to cart failed"})
			return
		}
		o, err := store.GetByID(c.Request.Context(), orderID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order not found after add"})
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func updateQuantityHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
			return
		}
		err := svc.UpdateQuantity(c.Request.Context(), c.Param("id"), *req.Quantity)
		switch {
		case err == nil:
		case errors.Is(err, ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be non-negative"})
			return
		case errors.Is(err, ErrLineNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "cart line not found"})
			return
		case errors.Is(err, ErrOrderCompleted):
			c.JSON(http.StatusForbidden, gin.H{"error": "cannot modify completed order"})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update cart failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "updated"})
	}
}

func removeItemHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := svc.RemoveItem(c.Request.Context(), c.Param("id"))
		switch {
		case err == nil:
		case errors.Is(err, ErrLineNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "cart line not found"})
			return
		case errors.Is(err, ErrOrderCompleted):
			c.JSON(http.StatusForbidden, gin.H{"error": "cannot modify completed order"})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete from cart failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}
