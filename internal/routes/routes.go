package routes

import (
	"github.com/gin-gonic/gin"

	"tbexpert/internal/handlers"
	"tbexpert/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	newsHandler *handlers.NewsHandler,
	catalogHandler *handlers.CatalogHandler,
	eventsHandler *handlers.EventsHandler,
	forumHandler *handlers.ForumHandler,
) *gin.Engine {

	// серверная сессия нужна всем: регистрация живёт между запросами
	r.Use(middleware.SessionMiddleware())

	// ---- auth
	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/register/confirm", authHandler.ConfirmRegistration)
	r.POST("/auth/register/resend", authHandler.ResendCode)
	r.POST("/auth/register/abort", authHandler.AbortRegistration)

	// ---- публичная часть портала
	r.GET("/", newsHandler.Index)
	r.GET("/news", newsHandler.AllNews)
	r.GET("/news/:alias", newsHandler.Detail)
	r.GET("/search_results", newsHandler.Search)
	r.GET("/category/:slug", newsHandler.Category)
	r.GET("/tag/:slug", newsHandler.Tag)
	r.GET("/author/:uid", newsHandler.Author)
	r.GET("/sitemap.xml", newsHandler.Sitemap)

	r.GET("/documents", catalogHandler.Documents)
	r.GET("/documents/:id", catalogHandler.Document)
	r.GET("/laws", catalogHandler.Laws)
	r.GET("/laws/:id", catalogHandler.Law)
	r.GET("/checklists", catalogHandler.Checklists)
	r.GET("/checklists/:id", catalogHandler.Checklist)
	r.GET("/checklists/:id/pdf", catalogHandler.ChecklistPDF)
	r.GET("/instructions", catalogHandler.Instructions)
	r.GET("/instructions/:id", catalogHandler.Instruction)
	r.GET("/faqs", catalogHandler.FAQs)
	r.GET("/faqs/:id", catalogHandler.FAQ)
	r.GET("/webinars", catalogHandler.Webinars)
	r.GET("/webinars/:id", catalogHandler.Webinar)

	r.GET("/events", eventsHandler.List)
	r.GET("/events/calendar", eventsHandler.Calendar)
	r.GET("/events/:id", eventsHandler.Detail)

	r.GET("/forum", forumHandler.Page)

	// ---- protected: чат и вопросы экспертам только после входа
	forum := r.Group("/forum", middleware.AuthMiddleware())
	{
		forum.POST("/messages", forumHandler.PostMessage)
		forum.POST("/questions", forumHandler.AskQuestion)
		forum.DELETE("/questions/:id", forumHandler.DeleteQuestion)
	}

	return r
}
