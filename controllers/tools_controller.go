package controllers

import (
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/0607rj/NoteForge-AI/services"
	"github.com/0607rj/NoteForge-AI/utils"
)

const maxAudioSize = 25 * 1024 * 1024 // 25MB

// Indirection để test được đường upload/dọn dẹp file ghi âm
var (
	uploadAudio = utils.UploadAudioToSupabase
	deleteAudio = utils.DeleteFileFromSupabase
)

type YouTubeSummarizeRequest struct {
	YouTubeURL   string `json:"youtubeUrl"`
	GenerateQuiz *bool  `json:"generateQuiz"`
	UserID       string `json:"userId"`
}

// POST /api/tools/youtube-summarize
func SummarizeYouTube(c *gin.Context) {
	svc := c.MustGet("study").(*services.StudyService)

	var req YouTubeSummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body", "message": err.Error()})
		return
	}

	// Quiz mặc định bật
	generateQuiz := true
	if req.GenerateQuiz != nil {
		generateQuiz = *req.GenerateQuiz
	}

	result, err := svc.SummarizeYouTube(c.Request.Context(), services.YouTubeSummaryRequest{
		YouTubeURL:   req.YouTubeURL,
		GenerateQuiz: generateQuiz,
		UserID:       requesterID(c, req.UserID),
	})
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	resp := gin.H{"data": result.Artifact, "saved": result.Saved, "source": result.Source}
	if result.Saved {
		resp["noteId"] = result.NoteID
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/tools/voice-transcribe (multipart)
func TranscribeVoice(c *gin.Context) {
	svc := c.MustGet("study").(*services.StudyService)

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ReasonMissingInput, "message": "Audio file is required"})
		return
	}
	if fileHeader.Size > maxAudioSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_too_large", "message": "Audio file must be at most 25MB"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ReasonMissingInput, "message": "Audio file could not be read"})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ReasonMissingInput, "message": "Audio file could not be read"})
		return
	}

	subject := c.PostForm("subject")
	classLevel := c.PostForm("classLevel")
	generateQuiz := c.PostForm("generateQuiz") == "true"

	// Lưu file ghi âm lên Supabase, lỗi chỉ log — không chặn pipeline.
	// Strict mode chắc chắn trả 503 nên không upload gì cả.
	var audioURL *string
	if svc.TranscriptMode != services.TranscriptModeStrict {
		label := subject
		if label == "" {
			label = "lecture"
		}
		if url, err := uploadAudio(
			audio,
			label,
			filepath.Ext(fileHeader.Filename),
			fileHeader.Header.Get("Content-Type"),
		); err != nil {
			log.Println("Không upload được file ghi âm:", err)
		} else {
			audioURL = &url
		}
	}

	result, err := svc.TranscribeVoice(c.Request.Context(), services.VoiceTranscriptRequest{
		Audio:        audio,
		Subject:      subject,
		ClassLevel:   classLevel,
		GenerateQuiz: generateQuiz,
		AudioURL:     audioURL,
		UserID:       requesterID(c, c.PostForm("userId")),
	})
	if err != nil {
		// Run fail thì không note nào tham chiếu file vừa upload -> xoá luôn
		cleanupOrphanAudio(audioURL)
		respondPipelineError(c, err)
		return
	}
	if !result.Saved {
		cleanupOrphanAudio(audioURL)
	}

	resp := gin.H{"data": result.Artifact, "saved": result.Saved, "source": result.Source}
	if result.Saved {
		resp["noteId"] = result.NoteID
	}
	c.JSON(http.StatusOK, resp)
}

func cleanupOrphanAudio(audioURL *string) {
	if audioURL == nil {
		return
	}
	if err := deleteAudio(*audioURL); err != nil {
		log.Println("Không xoá được file ghi âm mồ côi:", err)
	}
}

type FormulaSheetHTTPRequest struct {
	Subject    string `json:"subject"`
	Chapters   string `json:"chapters"`
	ClassLevel string `json:"classLevel"`
	ExamType   string `json:"examType"`
	UserID     string `json:"userId"`
}

// POST /api/tools/formula-sheet
func GenerateFormulaSheet(c *gin.Context) {
	svc := c.MustGet("study").(*services.StudyService)

	var req FormulaSheetHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body", "message": err.Error()})
		return
	}

	result, err := svc.GenerateFormulaSheet(c.Request.Context(), services.FormulaSheetRequest{
		Subject:    req.Subject,
		Chapters:   req.Chapters,
		ClassLevel: req.ClassLevel,
		ExamType:   req.ExamType,
		UserID:     requesterID(c, req.UserID),
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
