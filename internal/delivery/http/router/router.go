// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tsmarket/internal/delivery/http/middleware"
	"tsmarket/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	OrderHandler   *handler.OrderHandler
	CatalogHandler *handler.CatalogHandler
	RewardHandler  *handler.RewardHandler
	WheelHandler   *handler.WheelHandler
	TopUpHandler   *handler.TopUpHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	orderHandler   *handler.OrderHandler
	catalogHandler *handler.CatalogHandler
	rewardHandler  *handler.RewardHandler
	wheelHandler   *handler.WheelHandler
	topUpHandler   *handler.TopUpHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		orderHandler:   params.OrderHandler,
		catalogHandler: params.CatalogHandler,
		rewardHandler:  params.RewardHandler,
		wheelHandler:   params.WheelHandler,
		topUpHandler:   params.TopUpHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public storefront browsing
	e.GET("/products", r.catalogHandler.ListProducts)
	e.GET("/products/:id", r.catalogHandler.GetProduct)
	e.GET("/categories", r.catalogHandler.ListCategories)
	e.GET("/wheel/prizes", r.wheelHandler.ListPrizes)
	e.GET("/topup/settings", r.topUpHandler.PaymentSettings)
	e.GET("/topup/settings/qr", r.topUpHandler.PaymentSettingsQR)

	// Customer routes that require authentication
	authGroup := e.Group("")
	authGroup.Use(r.authMiddleware.Authenticate)
	{
		authGroup.POST("/orders", r.orderHandler.Checkout)
		authGroup.GET("/orders", r.orderHandler.ListOrders)

		authGroup.GET("/rewards", r.rewardHandler.ListRewards)
		authGroup.POST("/rewards/claim/:level", r.rewardHandler.ClaimReward)

		authGroup.POST("/wheel/spin", r.wheelHandler.Spin)

		authGroup.POST("/topup/redeem", r.topUpHandler.RedeemCode)
		authGroup.POST("/topup/requests", r.topUpHandler.CreateRequest)
		authGroup.GET("/topup/requests", r.topUpHandler.ListRequests)
	}

	// Admin routes that require authentication and the admin flag
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		adminGroup.GET("/stats", r.adminHandler.Stats)

		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.PUT("/users/:id/balance", r.adminHandler.AdjustBalance)
		adminGroup.PUT("/users/:id/xp", r.adminHandler.AdjustXP)
		adminGroup.PUT("/users/:id/admin", r.adminHandler.SetAdmin)
		adminGroup.DELETE("/users/:id", r.adminHandler.DeleteUser)

		adminGroup.GET("/orders", r.adminHandler.ListAllOrders)

		adminGroup.POST("/products", r.catalogHandler.CreateProduct)
		adminGroup.PUT("/products/:id", r.catalogHandler.UpdateProduct)
		adminGroup.DELETE("/products/:id", r.catalogHandler.DeleteProduct)
		adminGroup.POST("/categories", r.catalogHandler.CreateCategory)
		adminGroup.DELETE("/categories/:id", r.catalogHandler.DeleteCategory)

		adminGroup.POST("/rewards", r.adminHandler.CreateReward)
		adminGroup.DELETE("/rewards/:id", r.adminHandler.DeleteReward)
		adminGroup.POST("/wheel-prizes", r.adminHandler.CreateWheelPrize)
		adminGroup.DELETE("/wheel-prizes/:id", r.adminHandler.DeleteWheelPrize)

		adminGroup.GET("/topup-requests", r.adminHandler.ListTopUpRequests)
		adminGroup.POST("/topup-requests/:id/approve", r.adminHandler.ApproveTopUpRequest)
		adminGroup.POST("/topup-requests/:id/reject", r.adminHandler.RejectTopUpRequest)
		adminGroup.PUT("/settings/payment", r.adminHandler.SavePaymentSettings)
		adminGroup.POST("/topup-codes", r.adminHandler.CreateTopUpCode)
		adminGroup.GET("/topup-codes", r.adminHandler.ListTopUpCodes)
		adminGroup.DELETE("/topup-codes/:id", r.adminHandler.DeleteTopUpCode)
	}
}
