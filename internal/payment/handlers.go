package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Payments are written only by checkout; the HTTP surface is read-only.
func Register(r gin.IRouter, repo Repository, admin gin.HandlerFunc) {
	r.GET("/payments", admin, listHandler(repo))
	r.GET("/payments/:id", admin, getHandler(repo))
}

func listHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			out []Payment
			err error
		)
		if orderID := c.Query("order_id"); orderID != "" {
			out, err = repo.ListByOrder(c.Request.Context(), orderID)
		} else {
			out, err = repo.List(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "list payments failed"})
			return
		}
		if out == nil {
			out = []Payment{}
		}
		c.JSON(http.StatusOK, out)
	}
}

func getHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "payment not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
