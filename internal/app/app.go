package app

import (
	"database/sql"
	"fmt"
	"log"

	"tbexpert/internal/cache"
	"tbexpert/internal/config"
	"tbexpert/internal/handlers"
	"tbexpert/internal/middleware"
	"tbexpert/internal/pdf"
	"tbexpert/internal/repositories"
	"tbexpert/internal/routes"
	"tbexpert/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "tbexpert/docs"
)

func Run() {
	cfg := config.LoadConfig()

	if cfg.JWTSecret != "" {
		middleware.JWTKey = []byte(cfg.JWTSecret)
	}

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	verificationRepo := repositories.NewEmailVerificationRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	lawRepo := repositories.NewLawRepository(db)
	checklistRepo := repositories.NewChecklistRepository(db)
	instructionRepo := repositories.NewInstructionRepository(db)
	faqRepo := repositories.NewFAQRepository(db)
	webinarRepo := repositories.NewWebinarRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	authorRepo := repositories.NewAuthorRepository(db)
	forumRepo := repositories.NewForumRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	registrationService := services.NewRegistrationService(
		userRepo,
		verificationRepo,
		sessionRepo,
		emailService,
		authService,
		cfg.CodeTTL(),
	)

	// redis необязателен: без адреса кэш просто выключен
	articleCache := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.CacheTTL())

	newsService := services.NewNewsService(articleRepo, articleCache)
	catalogService := services.NewCatalogService(
		documentRepo, lawRepo, checklistRepo, instructionRepo, faqRepo, webinarRepo,
	)
	calendarService := services.NewCalendarService(eventRepo)
	sitemapService := services.NewSitemapService(articleRepo, cfg.Server.BaseURL)

	notifier := services.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID)
	forumService := services.NewForumService(
		authorRepo, articleRepo, documentRepo, checklistRepo, forumRepo, notifier,
	)

	// PDF выгрузка чек-листов (TTF с кириллицей)
	exporter := pdf.NewChecklistExporter(cfg.Files.RootDir, cfg.Files.FontPath)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userRepo, authService, registrationService)
	newsHandler := handlers.NewNewsHandler(newsService, catalogService, calendarService, sitemapService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, exporter)
	eventsHandler := handlers.NewEventsHandler(calendarService)
	forumHandler := handlers.NewForumHandler(forumService, userRepo)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		authHandler,
		newsHandler,
		catalogHandler,
		eventsHandler,
		forumHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
