package role

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type upsertRequest struct {
	RoleName string `json:"role_name" binding:"required"`
}

func Register(r gin.IRouter, repo Repository, admin gin.HandlerFunc) {
	r.GET("/roles", listHandler(repo))
	r.GET("/roles/:id", getHandler(repo))
	r.POST("/roles", admin, createHandler(repo))
	r.PUT("/roles/:id", admin, updateHandler(repo))
	r.DELETE("/roles/:id", admin, deleteHandler(repo))
}

func listHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list roles failed"})
			return
		}
		if out == nil {
			out = []Role{}
		}
		c.JSON(http.StatusOK, out)
	}
}

func getHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ro, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
			return
		}
		c.JSON(http.StatusOK, ro)
	}
}

func createHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req upsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role_name is required"})
			return
		}
		ro := &Role{ID: uuid.NewString(), RoleName: req.RoleName}
		if err := repo.Create(c.Request.Context(), ro); err != nil {
			if errors.Is(err, ErrAlreadyExist) {
				c.JSON(http.StatusConflict, gin.H{"error": "role already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create role failed"})
			return
		}
		c.JSON(http.StatusCreated, ro)
	}
}

func updateHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req upsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role_name is required"})
			return
		}
		ro := &Role{ID: c.Param("id"), RoleName: req.RoleName}
		if err := repo.Update(c.Request.Context(), ro); err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update role failed"})
			return
		}
		c.JSON(http.StatusOK, ro)
	}
}

func deleteHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete role failed"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}
