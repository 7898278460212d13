package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/0607rj/NoteForge-AI/services"
)

// GET /api/notes — lịch sử ghi chú của user đang đăng nhập, mới nhất trước
func GetMyNotes(c *gin.Context) {
	svc := c.MustGet("study").(*services.StudyService)

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id không hợp lệ"})
		return
	}

	notes, err := svc.Store.NotesByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lấy danh sách ghi chú"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// GET /api/notes/:id — chi tiết một ghi chú. Ghi chú có chủ thì chỉ chủ xem được.
func GetNoteDetail(c *gin.Context) {
	svc := c.MustGet("study").(*services.StudyService)

	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id không hợp lệ"})
		return
	}

	note, err := svc.Store.NoteByID(c.Request.Context(), noteID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Không tìm thấy ghi chú"})
		return
	}

	if note.UserID != nil && note.UserID.String() != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Không có quyền xem ghi chú này"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"note": note})
}
