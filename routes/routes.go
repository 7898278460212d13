package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/0607rj/NoteForge-AI/controllers"
	"github.com/0607rj/NoteForge-AI/middleware"
	"github.com/0607rj/NoteForge-AI/services"
	"github.com/0607rj/NoteForge-AI/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB, svc *services.StudyService, hub *ws.Hub) *gin.Engine {
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "NoteForge AI Backend Running"})
	})
	r.GET("/health", controllers.HealthCheck(db, hub))

	// Kênh realtime riêng của user (event note_created)
	r.GET("/ws/user", ws.HandleUserWebSocket(hub))

	api := r.Group("/api")
	api.Use(middleware.DBMiddleware(db), middleware.StudyMiddleware(svc))

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logingoogle", controllers.GoogleLogin)
		auth.GET("/me", middleware.AuthMiddleware(db), controllers.Me)
	}

	notes := api.Group("/notes")
	{
		notes.POST("/generate", middleware.OptionalAuthMiddleware(), controllers.GenerateNotes)
		notes.GET("", middleware.AuthMiddleware(db), controllers.GetMyNotes)
		notes.GET("/:id", middleware.OptionalAuthMiddleware(), controllers.GetNoteDetail)
	}

	tools := api.Group("/tools")
	tools.Use(middleware.OptionalAuthMiddleware())
	{
		tools.POST("/youtube-summarize", controllers.SummarizeYouTube)
		tools.POST("/voice-transcribe", controllers.TranscribeVoice)
		tools.POST("/formula-sheet", controllers.GenerateFormulaSheet)
	}

	return r
}
