package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/0607rj/NoteForge-AI/services"
)

type GenerateNotesRequest struct {
	Topic          string `json:"topic"`
	ClassLevel     string `json:"classLevel"`
	ExamType       string `json:"examType"`
	RevisionMode   bool   `json:"revisionMode"`
	IncludeDiagram bool   `json:"includeDiagram"`
	IncludeChart   bool   `json:"includeChart"`
	UserID         string `json:"userId"`
}

// POST /api/notes/generate
func GenerateNotes(c *gin.Context) {
	svc := c.MustGet("study").(*services.StudyService)

	var req GenerateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body", "message": err.Error()})
		return
	}

	result, err := svc.GenerateTopicNotes(c.Request.Context(), services.TopicNotesRequest{
		Topic:          req.Topic,
		ClassLevel:     req.ClassLevel,
		ExamType:       req.ExamType,
		RevisionMode:   req.RevisionMode,
		IncludeDiagram: req.IncludeDiagram,
		IncludeChart:   req.IncludeChart,
		UserID:         requesterID(c, req.UserID),
	})
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	resp := gin.H{"data": result.Artifact, "saved": result.Saved}
	if result.Saved {
		resp["noteId"] = result.NoteID
	}
	c.JSON(http.StatusOK, resp)
}

// requesterID ưu tiên userId trong body, fallback user đã đăng nhập.
// Giá trị không parse được coi như anonymous.
func requesterID(c *gin.Context, bodyUserID string) *uuid.UUID {
	if bodyUserID != "" {
		if id, err := uuid.Parse(bodyUserID); err == nil {
			return &id
		}
		return nil
	}
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok {
			if id, err := uuid.Parse(s); err == nil {
				return &id
			}
		}
	}
	return nil
}

// Map lỗi pipeline sang status + error kind ổn định. Không bao giờ trả
// nguyên văn lỗi upstream cho client.
func respondPipelineError(c *gin.Context, err error) {
	var reqErr *services.RequestError
	if errors.As(err, &reqErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": reqErr.Reason, "message": reqErr.Message})
		return
	}

	var transcriptErr *services.TranscriptUnavailableError
	if errors.As(err, &transcriptErr) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "transcript_unavailable",
			"message": "No real transcript source is configured for this input",
		})
		return
	}

	var valErr *services.ValidationError
	if errors.As(err, &valErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "validation_failed",
			"reason":  string(valErr.Reason),
			"message": "AI response did not match the expected format",
		})
		return
	}

	var genErr *services.GenerationError
	if errors.As(err, &genErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "generation_failed",
			"message": "AI generation failed",
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error", "message": "Something went wrong"})
}
