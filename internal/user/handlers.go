package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func Register(r gin.IRouter, repo Repository, admin gin.HandlerFunc) {
	r.GET("/users", admin, listHandler(repo))
	r.GET("/users/:id", getHandler(repo))
	r.POST("/users", admin, createHandler(repo))
	r.PUT("/users/:id", admin, updateHandler(repo))
	r.DELETE("/users/:id", admin, deleteHandler(repo))
}

func listHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list users failed"})
			return
		}
		if out == nil {
			out = []User{}
		}
		c.JSON(http.StatusOK, out)
	}
}

func getHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

func createHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		if req.RoleID == "" || req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role_id, email and password are required"})
			return
		}
		hash, err := HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "hash error"})
			return
		}
		u := &User{
			ID:           uuid.NewString(),
			RoleID:       req.RoleID,
			Phone:        req.Phone,
			Email:        req.Email,
			PasswordHash: hash,
		}
		if err := repo.Create(c.Request.Context(), u); err != nil {
			if errors.Is(err, ErrAlreadyExist) {
				c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "create user failed"})
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

func updateHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		updatePassword := false
		var newHash string
		if req.Password != "" {
			h, err := HashPassword(req.Password)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "hash error"})
				return
			}
			newHash = h
			updatePassword = true
		}
		u := &User{
			ID:           c.Param("id"),
			RoleID:       req.RoleID, // empty => unchanged
			Phone:        req.Phone,
			Email:        req.Email,
			PasswordHash: newHash,
		}
		if err := repo.Update(c.Request.Context(), u, updatePassword); err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update user failed"})
			return
		}
		out, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found after update"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func deleteHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "delete user failed"})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}
