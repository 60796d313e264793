package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"

	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/config"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/database"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/handlers"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/middleware"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/scheduler"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/services"
	"github.com/SamH135/CMS-API-Server-PostgreSQL/internal/types"

	_ "github.com/SamH135/CMS-API-Server-PostgreSQL/docs/api" // Swagger docs
)

// @title Recycling CMS API
// @version 1.0.0
// @description Back-office API for a scrap metal recycling operation: clients, receipts, pickup requests, prices, and users

// @contact.name API Support
// @contact.url https://github.com/SamH135/CMS-API-Server-PostgreSQL

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("recycling-cms")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health endpoint, unauthenticated for load balancer probes
	app.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(cfg, db)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg}
	clientHandler := &handlers.ClientHandler{DB: db}
	receiptHandler := &handlers.ReceiptHandler{DB: db, Cfg: cfg}
	requestHandler := &handlers.RequestHandler{DB: db}
	userHandler := &handlers.UserHandler{DB: db}
	priceHandler := &handlers.PriceHandler{DB: db}
	exportHandler := &handlers.ExportHandler{DB: db}

	authAny := middleware.AuthAny(cfg.JWTSecret)
	authUser := middleware.AuthUser(cfg.JWTSecret)
	authAdmin := middleware.AuthAdmin(cfg.JWTSecret)

	// Auth routes (no token required; register is admin-gated)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/device", authHandler.DeviceLogin)
	auth.Post("/register", authAdmin, authHandler.Register)
	auth.Get("/me", authAny, authHandler.Me)

	// Client routes
	clients := api.Group("/clients")
	clients.Get("/", authUser, clientHandler.List)
	clients.Get("/search", authUser, clientHandler.Search)
	clients.Get("/pickup-info", authAny, clientHandler.PickupInfo)
	clients.Get("/top/metal", authUser, clientHandler.TopByMetal)
	clients.Get("/top/volume", authUser, clientHandler.TopByVolume)
	clients.Post("/", authUser, clientHandler.Create)
	clients.Get("/:clientID", authAny, clientHandler.Get)
	clients.Put("/:clientID", authUser, clientHandler.Update)
	clients.Delete("/:clientID", authAdmin, clientHandler.Delete)
	clients.Get("/:clientID/totals", authUser, clientHandler.Totals)
	clients.Get("/:clientID/metals", authUser, clientHandler.Metals)
	clients.Get("/:clientID/requests", authAny, clientHandler.Requests)
	clients.Post("/:clientID/last-pickup/sync", authUser, clientHandler.SyncLastPickup)
	clients.Put("/:clientID/last-pickup", authUser, clientHandler.SetLastPickup)

	// Receipt routes. Creation is open to devices in the field.
	receipts := api.Group("/receipts")
	receipts.Get("/", authUser, receiptHandler.List)
	receipts.Get("/search", authUser, receiptHandler.Search)
	receipts.Post("/", authAny, receiptHandler.Create)
	receipts.Get("/:receiptID", authUser, receiptHandler.Get)
	receipts.Delete("/:receiptID", authAdmin, receiptHandler.Delete)
	receipts.Get("/:receiptID/metals", authUser, receiptHandler.Metals)
	receipts.Get("/:receiptID/custom-metals", authUser, receiptHandler.CustomMetals)
	receipts.Get("/:receiptID/converters", authUser, receiptHandler.Converters)
	receipts.Put("/:receiptID/check-number", authUser, receiptHandler.SetCheckNumber)

	// Pickup request routes
	requests := api.Group("/requests")
	requests.Get("/", authAny, requestHandler.List)
	requests.Post("/", authAny, requestHandler.Create)
	requests.Delete("/", authUser, requestHandler.DeleteByTerm)
	requests.Get("/:requestID", authAny, requestHandler.Get)
	requests.Put("/:requestID", authUser, requestHandler.Update)
	requests.Delete("/:requestID", authUser, requestHandler.Delete)

	// Admin user management
	users := api.Group("/users", authAdmin)
	users.Get("/", userHandler.List)
	users.Get("/search", userHandler.Search)
	users.Get("/:userID", userHandler.Get)
	users.Put("/:userID", userHandler.Update)
	users.Delete("/:userID", userHandler.Delete)

	// Price sheets: readable by devices, writable by admins
	prices := api.Group("/prices")
	prices.Get("/:clientType", authAny, priceHandler.Get)
	prices.Put("/:clientType", authAdmin, priceHandler.Set)

	// Bookkeeping export
	api.Get("/export/receipts", authAdmin, exportHandler.ReceiptsCSV)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Nightly pickup flag recalculation
	sched, err := scheduler.New(db)
	if err != nil {
		log.Fatalf("Failed to build scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	var customErr *types.CustomError
	if errors.As(err, &customErr) {
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	}

	return c.Status(code).JSON(fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}
