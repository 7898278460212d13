package controllers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0607rj/NoteForge-AI/middleware"
	"github.com/0607rj/NoteForge-AI/models"
	"github.com/0607rj/NoteForge-AI/services"
)

type stubGen struct {
	resp string
	err  error
}

func (g *stubGen) GenerateText(context.Context, string) (string, error) {
	return g.resp, g.err
}

type stubStore struct {
	createErr error
	notes     []*models.StudyNote
}

func (s *stubStore) FindUserByID(context.Context, uuid.UUID) (*models.User, error) {
	return nil, errors.New("user not found")
}

func (s *stubStore) CreateNote(_ context.Context, note *models.StudyNote) error {
	if s.createErr != nil {
		return s.createErr
	}
	note.ID = uuid.New()
	s.notes = append(s.notes, note)
	return nil
}

func (s *stubStore) NotesByUser(context.Context, uuid.UUID) ([]models.StudyNote, error) {
	return nil, nil
}

func (s *stubStore) NoteByID(context.Context, uuid.UUID) (*models.StudyNote, error) {
	return nil, errors.New("note not found")
}

// audioHookRecorder thay uploadAudio/deleteAudio trong phạm vi một test.
type audioHookRecorder struct {
	uploadCalls int
	uploadedURL string
	deletedURLs []string
}

func installAudioHooks(t *testing.T) *audioHookRecorder {
	t.Helper()

	rec := &audioHookRecorder{
		uploadedURL: "https://cdn.example.com/storage/v1/object/public/uploads/audio/lec.webm",
	}
	origUpload, origDelete := uploadAudio, deleteAudio
	uploadAudio = func([]byte, string, string, string) (string, error) {
		rec.uploadCalls++
		return rec.uploadedURL, nil
	}
	deleteAudio = func(url string) error {
		rec.deletedURLs = append(rec.deletedURLs, url)
		return nil
	}
	t.Cleanup(func() {
		uploadAudio, deleteAudio = origUpload, origDelete
	})
	return rec
}

func newToolsRouter(svc *services.StudyService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/tools/voice-transcribe", middleware.StudyMiddleware(svc), TranscribeVoice)
	return r
}

func voiceRequest(t *testing.T, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("audio", "lec.webm")
	require.NoError(t, err)
	_, err = fw.Write([]byte{0x1a, 0x45, 0xdf, 0xa3})
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/tools/voice-transcribe", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func minimalStudyJSON() string {
	return `{"subTopics": {"⭐": [], "⭐⭐": [], "⭐⭐⭐": []}, "notes": "## Notes", "revisionPoints": [], "questions": {"short": [], "long": [], "diagram": ""}}`
}

func TestTranscribeVoice_KeepsAudioOnSuccess(t *testing.T) {
	rec := installAudioHooks(t)
	svc := services.NewStudyService(&stubGen{resp: minimalStudyJSON()}, &stubStore{}, nil, "")
	r := newToolsRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, voiceRequest(t, map[string]string{"subject": "Biology"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, rec.uploadCalls)
	assert.Empty(t, rec.deletedURLs, "run thành công thì file phải được giữ lại")
}

func TestTranscribeVoice_CleansUpAudioOnGenerationFailure(t *testing.T) {
	rec := installAudioHooks(t)
	svc := services.NewStudyService(&stubGen{err: errors.New("model down")}, &stubStore{}, nil, "")
	r := newToolsRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, voiceRequest(t, map[string]string{"subject": "Biology"}))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "generation_failed")
	// File đã upload trước khi pipeline fail -> phải bị xoá, không để mồ côi
	assert.Equal(t, 1, rec.uploadCalls)
	assert.Equal(t, []string{rec.uploadedURL}, rec.deletedURLs)
}

func TestTranscribeVoice_CleansUpAudioOnValidationFailure(t *testing.T) {
	rec := installAudioHooks(t)
	svc := services.NewStudyService(&stubGen{resp: "not json at all"}, &stubStore{}, nil, "")
	r := newToolsRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, voiceRequest(t, nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "validation_failed")
	assert.Equal(t, []string{rec.uploadedURL}, rec.deletedURLs)
}

func TestTranscribeVoice_CleansUpAudioWhenSaveFails(t *testing.T) {
	rec := installAudioHooks(t)
	store := &stubStore{createErr: errors.New("db down")}
	svc := services.NewStudyService(&stubGen{resp: minimalStudyJSON()}, store, nil, "")
	r := newToolsRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, voiceRequest(t, nil))

	// Lưu fail vẫn trả artifact, nhưng không note nào giữ URL -> xoá file
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"saved":false`)
	assert.Equal(t, []string{rec.uploadedURL}, rec.deletedURLs)
}

func TestTranscribeVoice_StrictModeSkipsUpload(t *testing.T) {
	rec := installAudioHooks(t)
	svc := services.NewStudyService(&stubGen{resp: minimalStudyJSON()}, &stubStore{}, nil, services.TranscriptModeStrict)
	r := newToolsRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, voiceRequest(t, map[string]string{"subject": "Biology"}))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "transcript_unavailable")
	// Request chắc chắn bị từ chối -> không upload, không có gì để xoá
	assert.Zero(t, rec.uploadCalls)
	assert.Empty(t, rec.deletedURLs)
}
