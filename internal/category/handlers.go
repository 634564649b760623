package category

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type upsertRequest struct {
	CategoryName string `json:"category_name" binding:"required"`
}

func Register(r gin.IRouter, repo Repository, admin gin.HandlerFunc) {
	r.GET("/categories", listHandler(repo))
	r.GET("/categories/:id", getHandler(repo))
	r.POST("/categories", admin, createHandler(repo))
	r.PUT("/categories/:id", admin, updateHandler(repo))
	r.DELETE("/categories/:id", admin, deleteHandler(repo))
}

func listHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list categories failed"})
			return
		}
		if out == nil {
			out = []Category{}
		}
		c.JSON(http.StatusOK, out)
	}
}

func getHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ca, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusOK, ca)
	}
}

func createHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req upsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category_name is required"})
			return
		}
		ca := &Category{ID: uuid.NewString(), CategoryName: req.CategoryName}
		if err := repo.Create(c.Request.Context(), ca); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create category failed"})
			return
		}
		c.JSON(http.StatusCreated, ca)
	}
}

func updateHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req upsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category_name is required"})
			return
		}
		ca := &Category{ID: c.Param("id"), CategoryName: req.CategoryName}
		if err := repo.Update(c.Request.Context(), ca); err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update category failed"})
			return
		}
		c.JSON(http.StatusOK, ca)
	}
}

func deleteHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete category failed"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}
