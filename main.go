package main

import (
	"log"
	"time"

	"github.com/HamidAbid/modifyx-backend/chat"
	"github.com/HamidAbid/modifyx-backend/config"
	"github.com/HamidAbid/modifyx-backend/database"
	"github.com/HamidAbid/modifyx-backend/handlers"
	"github.com/HamidAbid/modifyx-backend/metrics"
	"github.com/HamidAbid/modifyx-backend/repository"
	"github.com/HamidAbid/modifyx-backend/routes"
	"github.com/HamidAbid/modifyx-backend/services"
	"github.com/HamidAbid/modifyx-backend/utils"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	// Initialize Echo
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	metrics.Register()
	e.Use(metrics.Middleware())

	// Connect to MongoDB
	if err := database.ConnectDB(); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Wire repositories, services and collaborators
	orderRepo := repository.NewOrderRepository(database.DB)
	cartRepo := repository.NewCartRepository(database.DB)
	productRepo := repository.NewProductRepository(database.DB)
	blogRepo := repository.NewBlogRepository(database.DB)
	carModRepo := repository.NewCarModRepository(database.DB)

	mailer := utils.NewMailer()
	gateway := utils.NewStripeGateway()

	handlers.OrderSvc = services.NewOrderService(orderRepo, cartRepo, productRepo, gateway, mailer)
	handlers.Carts = cartRepo
	handlers.Products = productRepo
	handlers.Blogs = blogRepo
	handlers.CarMods = carModRepo
	handlers.Mail = mailer
	handlers.OTPs = utils.NewOTPStore(5 * time.Minute)
	handlers.ChatHub = chat.NewHub()

	// Setup routes
	routes.SetupRoutes(e)

	// Start the server
	port := config.GetEnv("PORT", "3000")
	e.Logger.Fatal(e.Start(":" + port))
}
