package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shoplite/backend/internal/role"
	"github.com/shoplite/backend/internal/user"
)

// LoginRequest payload for /login.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest payload for /register.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Phone    string `json:"phone"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(r gin.IRouter, users user.Repository, roles role.Repository, tokens *Tokens) {
	r.POST("/login", loginHandler(users, tokens))
	r.POST("/register", registerHandler(users, roles))
}

func loginHandler(users user.Repository, tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}
		u, err := users.GetByEmail(c.Request.Context(), req.Email)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
			return
		}
		if !user.CheckPassword(u.PasswordHash, req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid password"})
			return
		}
		token, err := tokens.Issue(u.ID, u.RoleName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "role": u.RoleName, "token": token})
	}
}

// New accounts always get the plain "user" role; admins are promoted
// through the users CRUD.
func registerHandler(users user.Repository, roles role.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}
		ro, err := roles.GetByName(c.Request.Context(), "user")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "default role missing"})
			return
		}
		hash, err := user.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "hash error"})
			return
		}
		u := &user.User{
			ID:           uuid.NewString(),
			RoleID:       ro.ID,
			Phone:        req.Phone,
			Email:        req.Email,
			PasswordHash: hash,
		}
		if err := users.Create(c.Request.Context(), u); err != nil {
			if errors.Is(err, user.ErrAlreadyExist) {
				c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "register failed"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": u.ID, "email": u.Email})
	}
}
