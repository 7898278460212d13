package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/0607rj/NoteForge-AI/services"
)

// DBMiddleware gắn *gorm.DB vào context cho controller
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

// StudyMiddleware gắn StudyService vào context cho controller
func StudyMiddleware(svc *services.StudyService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("study", svc)
		c.Next()
	}
}
