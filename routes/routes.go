package routes

import (
	"github.com/HamidAbid/modifyx-backend/handlers"
	"github.com/HamidAbid/modifyx-backend/metrics"
	customMiddleware "github.com/HamidAbid/modifyx-backend/middleware"
	"github.com/labstack/echo/v4"
)

func SetupRoutes(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api")

	// Auth routes
	api.POST("/auth/register", handlers.RegisterUser)
	api.POST("/auth/login", handlers.LoginUser)
	api.GET("/users/me", handlers.GetUserProfile, customMiddleware.AuthMiddleware)

	// Product routes (reads public, writes admin)
	api.GET("/products", handlers.GetProducts)
	api.GET("/products/:id", handlers.GetProduct)
	api.POST("/products", handlers.CreateProduct, customMiddleware.AuthMiddleware, customMiddleware.AdminMiddleware)
	api.PUT("/products/:id", handlers.UpdateProduct, customMiddleware.AuthMiddleware, customMiddleware.AdminMiddleware)
	api.DELETE("/products/:id", handlers.DeleteProduct, customMiddleware.AuthMiddleware, customMiddleware.AdminMiddleware)

	// Cart routes
	api.GET("/cart", handlers.GetCart, customMiddleware.AuthMiddleware)
	api.POST("/cart", handlers.AddToCart, customMiddleware.AuthMiddleware)
	api.PUT("/cart/quantity", handlers.UpdateCartItemQuantity, customMiddleware.AuthMiddleware)
	api.DELETE("/cart/clear", handlers.ClearCart, customMiddleware.AuthMiddleware)
	api.DELETE("/cart/:productId", handlers.RemoveFromCart, customMiddleware.AuthMiddleware)

	// Order routes
	orders := api.Group("/orders")
	orders.GET("/track/:trackingId", handlers.TrackOrder) // public
	orders.GET("", handlers.GetOrders, customMiddleware.AuthMiddleware, customMiddleware.AdminMiddleware)
	orders.GET("/myorders", handlers.GetMyOrders, customMiddleware.AuthMiddleware)
	orders.GET("/:id", handlers.GetOrderByID, customMiddleware.AuthMiddleware)
	orders.PUT("/:id/pay", handlers.UpdateOrderToPaid, customMiddleware.AuthMiddleware)
	orders.PUT("/:id/process", handlers.UpdateOrderToProcessing, customMiddleware.AuthMiddleware, customMiddleware.AdminMiddleware)
	orders.PUT("/:id/ship", handlers.UpdateOrderToShipped, customMiddleware.AuthMiddleware, customMiddleware.AdminMiddleware)
	orders.PUT("/:id/deliver", handlers.UpdateOrderToDelivered, customMiddleware.AuthMiddleware, customMiddleware.AdminMiddleware)
	orders.POST("/:id/tracking", handlers.AddTrackingEvent, customMiddleware.AuthMiddleware, customMiddleware.AdminMiddleware)
	orders.POST("/payment", handlers.SubmitOrder, customMiddleware.AuthMiddleware)

	// Blog routes (reads public)
	api.GET("/blogs", handlers.GetBlogs)
	api.GET("/blogs/:id", handlers.GetBlog)

	// Car modification package requests
	api.POST("/package", handlers.CreateCarModRequest, customMiddleware.AuthMiddleware)

	// Admin routes
	admin := api.Group("/admin", customMiddleware.AuthMiddleware, customMiddleware.AdminMiddleware)
	admin.GET("/dashboard", handlers.GetDashboardData)
	admin.GET("/products", handlers.GetPaginatedProducts)
	admin.GET("/users", handlers.GetUsers)
	admin.DELETE("/users/:id", handlers.DeleteUser)
	admin.POST("/blogs", handlers.CreateBlog)
	admin.PUT("/blogs/:id", handlers.UpdateBlog)
	admin.DELETE("/blogs/:id", handlers.DeleteBlog)
	admin.GET("/carmodrequests", handlers.GetCarModRequests)
	admin.PUT("/carmodrequests/:id/status", handlers.UpdateCarModRequestStatus)
	admin.DELETE("/carmodrequests/:id", handlers.DeleteCarModRequest)

	// OTP routes
	api.POST("/otp/send", handlers.SendOTP)
	api.POST("/otp/verify", handlers.VerifyOTP)

	// Chat routes
	api.GET("/chat/:chatId/messages", handlers.GetChatMessages, customMiddleware.AuthMiddleware)
	e.GET("/ws/chat/:chatId", handlers.ChatSocket)
}
