package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/shoplite/backend/docs"
	"github.com/shoplite/backend/internal/auth"
	"github.com/shoplite/backend/internal/category"
	"github.com/shoplite/backend/internal/config"
	"github.com/shoplite/backend/internal/db"
	"github.com/shoplite/backend/internal/discount"
	"github.com/shoplite/backend/internal/httpx"
	"github.com/shoplite/backend/internal/order"
	"github.com/shoplite/backend/internal/payment"
	"github.com/shoplite/backend/internal/product"
	"github.com/shoplite/backend/internal/role"
	"github.com/shoplite/backend/internal/user"
)

// @title Shoplite API
// @version 1.0
// @description REST backend for the shoplite store demo.
// @BasePath /
func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[db] connect: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(pool); err != nil {
		log.Fatalf("[db] migrate: %v", err)
	}
	adminHash, err := user.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("[db] admin hash: %v", err)
	}
	if err := db.Seed(ctx, pool, cfg.AdminEmail, cfg.AdminPhone, adminHash); err != nil {
		log.Fatalf("[db] seed: %v", err)
	}

	tokens := auth.NewTokens(cfg.JWTSecret)
	authed := auth.RequireAuth(tokens)
	admin := auth.RequireAdmin(tokens)

	roles := role.NewPGRepo(pool)
	users := user.NewPGRepo(pool)
	categories := category.NewPGRepo(pool)
	discounts := discount.NewPGRepo(pool)
	products := product.NewPGRepo(pool)
	orders := order.NewPGStore(pool)
	payments := payment.NewPGRepo(pool)
	cart := order.NewService(orders)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), httpx.CORS())

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth.Register(r, users, roles, tokens)
	role.Register(r, roles, admin)
	user.Register(r, users, admin)
	category.Register(r, categories, admin)
	discount.Register(r, discounts, admin)
	product.Register(r, products, admin)
	order.Register(r, orders, cart, authed, admin)
	payment.Register(r, payments, admin)

	log.Printf("api listening on %s", cfg.HTTPAddr)
	log.Fatal(r.Run(cfg.HTTPAddr))
}
