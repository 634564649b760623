package discount

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func Register(r gin.IRouter, repo Repository, admin gin.HandlerFunc) {
	r.GET("/discounts", listHandler(repo))
	r.GET("/discounts/user/:id", userSumHandler(repo))
	r.GET("/discounts/:id", getHandler(repo))
	r.POST("/discounts", admin, createHandler(repo))
	r.PUT("/discounts/:id", admin, updateHandler(repo))
	r.DELETE("/discounts/:id", admin, deleteHandler(repo))
}

func listHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list discounts failed"})
			return
		}
		if out == nil {
			out = []Discount{}
		}
		c.JSON(http.StatusOK, out)
	}
}

func getHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "discount not found"})
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// userSumHandler reports the user's personal discount percent, the sum
// over all discount rows owned by that user.
func userSumHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		sum, err := repo.SumForUser(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "discount lookup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": c.Param("id"), "discount": sum.String()})
	}
}

func validValue(raw string) bool {
	_, err := decimal.NewFromString(raw)
	return err == nil
}

func createHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpsertDiscountRequest
		if err := c.ShouldBindJSON(&req); err != nil || !validValue(req.DiscountValue) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discount_name and numeric discount_value are required"})
			return
		}
		d := &Discount{
			ID:            uuid.NewString(),
			DiscountName:  req.DiscountName,
			DiscountValue: req.DiscountValue,
			UserID:        req.UserID,
		}
		if err := repo.Create(c.Request.Context(), d); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create discount failed"})
			return
		}
		c.JSON(http.StatusCreated, d)
	}
}

func updateHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpsertDiscountRequest
		if err := c.ShouldBindJSON(&req); err != nil || !validValue(req.DiscountValue) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discount_name and numeric discount_value are required"})
			return
		}
		d := &Discount{
			ID:            c.Param("id"),
			DiscountName:  req.DiscountName,
			DiscountValue: req.DiscountValue,
			UserID:        req.UserID,
		}
		if err := repo.Update(c.Request.Context(), d); err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "discount not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update discount failed"})
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

func deleteHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete discount failed"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "discount not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}
