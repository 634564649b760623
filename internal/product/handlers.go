package product

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func Register(r gin.IRouter, repo Repository, admin gin.HandlerFunc) {
	r.GET("/products", listHandler(repo))
	r.GET("/products/:id", getHandler(repo))
	r.POST("/products", admin, createHandler(repo))
	r.PUT("/products/:id", admin, updateHandler(repo))
	r.DELETE("/products/:id", admin, deleteHandler(repo))
}

// listHandler godoc
// @Summary List products with category and discount joined in
// @Produce json
// @Param q query string false "search in name/description"
// @Success 200 {array} Product
// @Router /products [get]
func listHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))
		out, err := repo.List(c.Request.Context(), Query{Q: c.Query("q"), Limit: limit, Offset: offset})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list products failed"})
			return
		}
		if out == nil {
			out = []Product{}
		}
		c.JSON(http.StatusOK, out)
	}
}

func getHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func validPrice(raw string) bool {
	d, err := decimal.NewFromString(raw)
	return err == nil && !d.IsNegative()
}

func createHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpsertProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if req.ProductName == "" || !validPrice(req.Price) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_name and a non-negative price are required"})
			return
		}
		if req.Weight == "" {
			req.Weight = "0"
		}
		p := &Product{
			ID:          uuid.NewString(),
			ProductName: req.ProductName,
			Description: req.Description,
			Price:       req.Price,
			Weight:      req.Weight,
			CategoryID:  req.CategoryID,
			DiscountID:  req.DiscountID,
			PictureURL:  req.PictureURL,
		}
		if err := repo.Create(c.Request.Context(), p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create product failed"})
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func updateHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpsertProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if req.Price != "" && !validPrice(req.Price) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a non-negative number"})
			return
		}
		p := &Product{
			ID:          c.Param("id"),
			ProductName: req.ProductName, // empty => unchanged
			Description: req.Description,
			Price:       req.Price,
			Weight:      req.Weight,
			CategoryID:  req.CategoryID,
			DiscountID:  req.DiscountID,
			PictureURL:  req.PictureURL,
		}
		if err := repo.Update(c.Request.Context(), p); err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update product failed"})
			return
		}
		out, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found after update"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func deleteHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete product failed"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}
