package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"beavernorth-backend/pkg/api"
	"beavernorth-backend/pkg/clients/blog"
	"beavernorth-backend/pkg/clients/mailer"
	"beavernorth-backend/pkg/clients/twilio"
	"beavernorth-backend/pkg/config"
	"beavernorth-backend/pkg/middleware"
	"beavernorth-backend/pkg/services"
	"beavernorth-backend/pkg/store"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	// Initialize configuration
	cfg := config.LoadConfig()

	// Each provider is chosen once at startup: live when configured,
	// demo otherwise, so the workflow stays usable without credentials.
	var twilioClient twilio.Client
	if cfg.TwilioConfigured() {
		twilioClient = twilio.NewClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioVerifyServiceID, cfg.TwilioFromNumber)
	} else {
		log.Println("Twilio credentials not configured, OTP verification running in demo mode")
		twilioClient = twilio.NewDemoClient()
	}

	var leadMailer mailer.Mailer
	if cfg.SMTPConfigured() {
		leadMailer = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	} else {
		log.Println("SMTP credentials not configured, email notifications running in demo mode")
		leadMailer = mailer.NewDemoMailer()
	}

	var leadStore store.LeadStore
	if cfg.DatabaseConfigured() {
		leadStore, err = store.NewPostgresStore(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Printf("Error connecting to database, falling back to in-memory store: %v", err)
			leadStore = store.NewMemoryStore()
		}
	} else {
		log.Println("Database not configured, leads stored in memory only")
		leadStore = store.NewMemoryStore()
	}
	defer leadStore.Close()

	var blogClient blog.Client
	if cfg.BlogFeedURL != "" {
		blogClient = blog.NewClient(cfg.BlogFeedURL)
	} else {
		blogClient = blog.NewDemoClient()
	}

	// Initialize services
	verificationService := services.NewVerificationService(twilioClient, !cfg.TwilioConfigured())
	notificationService := services.NewNotificationService(leadMailer, twilioClient, cfg.NotificationEmails, cfg.NotificationPhones)
	leadService := services.NewLeadService(leadStore, notificationService)

	// Rate limiter: Redis when available, in-process counters otherwise
	var counter middleware.Counter
	if cfg.RedisConfigured() {
		counter = middleware.NewRedisCounter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	} else {
		counter = middleware.NewMemoryCounter()
	}

	limit := 50
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		limit = 5
	}

	// Create a new Gin router with default middleware
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Initialize handlers
	handlers := api.NewHandlers(verificationService, notificationService, leadService, blogClient)

	// Register routes; only the OTP endpoints are rate-limited
	otp := router.Group("/api", middleware.RateLimit(counter, limit, 15*time.Minute))
	otp.POST("/send-otp", handlers.SendOTP)
	otp.POST("/verify-otp", handlers.VerifyOTP)

	router.POST("/api/submit-lead", handlers.SubmitLead)
	router.POST("/api/send-lead-notification", handlers.SendLeadNotification)
	router.POST("/api/send-lead-sms", handlers.SendLeadSMS)
	router.GET("/api/blog-posts", handlers.BlogPosts)
	router.GET("/api/health", handlers.HealthCheck)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	// Start the server
	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
