package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/0607rj/NoteForge-AI/config"
	"github.com/0607rj/NoteForge-AI/routes"
	"github.com/0607rj/NoteForge-AI/services"
	"github.com/0607rj/NoteForge-AI/ws"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("Không tìm thấy file .env")
	}

	db := config.InitDB()

	// Wiring pipeline: Gemini client + gorm store + hub realtime
	hub := ws.NewHub()
	study := services.NewStudyService(
		services.NewGeminiClientFromEnv(),
		services.NewGormNoteStore(db),
		hub,
		os.Getenv("TRANSCRIPT_MODE"),
	)

	r := gin.Default()

	//Bật CORS
	allowOrigin := os.Getenv("CLIENT_URL")
	if allowOrigin == "" {
		allowOrigin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowOrigin, "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r = routes.SetupRouter(r, db, study, hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // mặc định nếu không có PORT
	}

	log.Println("Server running at Port:" + port)
	r.Run(":" + port)
}
