package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/0607rj/NoteForge-AI/models"
)

// Chế độ xử lý nguồn youtube/voice khi chưa có transcript thật
const (
	TranscriptModeTemplate = "template" // sinh nội dung placeholder có gắn nhãn
	TranscriptModeStrict   = "strict"   // từ chối request thay vì sinh template
)

// Notifier đẩy event realtime cho user sở hữu. nil = tắt.
type Notifier interface {
	NotifyUser(userID string, event any)
}

// NoteCreatedEvent gửi qua websocket sau mỗi lần sinh thành công có chủ.
type NoteCreatedEvent struct {
	Type   string    `json:"type"`
	NoteID uuid.UUID `json:"note_id"`
	Kind   string    `json:"kind"`
	Topic  string    `json:"topic"`
}

// StudyService ghép pipeline: build prompt -> gọi model -> validate/chuẩn hoá
// -> lưu. Mỗi request là một chuỗi tuần tự độc lập; state chia sẻ duy nhất
// là store.
type StudyService struct {
	Gen            TextGenerator
	Store          NoteStore
	Notify         Notifier
	TranscriptMode string
}

func NewStudyService(gen TextGenerator, store NoteStore, notify Notifier, transcriptMode string) *StudyService {
	if transcriptMode != TranscriptModeStrict {
		transcriptMode = TranscriptModeTemplate
	}
	return &StudyService{Gen: gen, Store: store, Notify: notify, TranscriptMode: transcriptMode}
}

// StudyResult: artifact + id bản ghi. Saved=false nghĩa là sinh thành công
// nhưng lưu thất bại — artifact vẫn trả cho caller, lịch sử không đổi.
type StudyResult struct {
	Artifact *StudyArtifact
	NoteID   uuid.UUID
	Saved    bool
	Source   string
}

type FormulaResult struct {
	Artifact *FormulaSheetArtifact
	NoteID   uuid.UUID
	Saved    bool
}

type TopicNotesRequest struct {
	Topic          string
	ClassLevel     string
	ExamType       string
	RevisionMode   bool
	IncludeDiagram bool
	IncludeChart   bool
	UserID         *uuid.UUID
}

func (s *StudyService) GenerateTopicNotes(ctx context.Context, req TopicNotesRequest) (*StudyResult, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, &RequestError{Reason: ReasonMissingTopic, Message: "Topic is required"}
	}

	prompt := BuildTopicNotesPrompt(TopicNotesInput{
		Topic:          req.Topic,
		ClassLevel:     req.ClassLevel,
		ExamType:       req.ExamType,
		RevisionMode:   req.RevisionMode,
		IncludeDiagram: req.IncludeDiagram,
		IncludeChart:   req.IncludeChart,
	})

	// Topic notes luôn kèm MCQ (client có Quiz Mode riêng)
	opts := StudyOptions{
		GenerateQuiz:   true,
		IncludeDiagram: req.IncludeDiagram,
		IncludeChart:   req.IncludeChart,
	}

	note := &models.StudyNote{
		Kind:           models.NoteKindTopic,
		Topic:          req.Topic,
		ClassLevel:     req.ClassLevel,
		ExamType:       req.ExamType,
		RevisionMode:   req.RevisionMode,
		IncludeDiagram: req.IncludeDiagram,
		IncludeChart:   req.IncludeChart,
	}
	return s.runStudyPipeline(ctx, prompt, opts, note, req.UserID)
}

type YouTubeSummaryRequest struct {
	YouTubeURL   string
	GenerateQuiz bool
	UserID       *uuid.UUID
}

func (s *StudyService) SummarizeYouTube(ctx context.Context, req YouTubeSummaryRequest) (*StudyResult, error) {
	if strings.TrimSpace(req.YouTubeURL) == "" {
		return nil, &RequestError{Reason: ReasonInvalidReference, Message: "YouTube URL is required"}
	}
	videoID, err := ExtractYouTubeID(req.YouTubeURL)
	if err != nil {
		return nil, err
	}
	if s.TranscriptMode == TranscriptModeStrict {
		return nil, &TranscriptUnavailableError{Kind: KindYouTubeSummary}
	}

	prompt := BuildYouTubeSummaryPrompt(videoID, req.GenerateQuiz)
	opts := StudyOptions{GenerateQuiz: req.GenerateQuiz}

	note := &models.StudyNote{
		Kind:       models.NoteKindYouTube,
		Topic:      "YouTube: " + videoID,
		ClassLevel: "N/A",
		ExamType:   "Video Summary",
		Source:     TranscriptModeTemplate,
	}
	return s.runStudyPipeline(ctx, prompt, opts, note, req.UserID)
}

type VoiceTranscriptRequest struct {
	Audio        []byte
	Subject      string
	ClassLevel   string
	GenerateQuiz bool
	AudioURL     *string
	UserID       *uuid.UUID
}

func (s *StudyService) TranscribeVoice(ctx context.Context, req VoiceTranscriptRequest) (*StudyResult, error) {
	if len(req.Audio) == 0 {
		return nil, &RequestError{Reason: ReasonMissingInput, Message: "Audio file is required"}
	}
	if s.TranscriptMode == TranscriptModeStrict {
		return nil, &TranscriptUnavailableError{Kind: KindVoiceTranscript}
	}

	prompt := BuildVoiceTranscriptPrompt(VoiceTranscriptInput{
		Subject:      req.Subject,
		ClassLevel:   req.ClassLevel,
		GenerateQuiz: req.GenerateQuiz,
	})
	opts := StudyOptions{GenerateQuiz: req.GenerateQuiz}

	note := &models.StudyNote{
		Kind:       models.NoteKindVoice,
		Topic:      "Voice Recording: " + orDefault(req.Subject, "Lecture"),
		ClassLevel: orDefault(req.ClassLevel, "N/A"),
		ExamType:   "Transcribed Lecture",
		Source:     TranscriptModeTemplate,
		AudioURL:   req.AudioURL,
	}
	return s.runStudyPipeline(ctx, prompt, opts, note, req.UserID)
}

type FormulaSheetRequest struct {
	Subject    string
	Chapters   string
	ClassLevel string
	ExamType   string
	UserID     *uuid.UUID
}

func (s *StudyService) GenerateFormulaSheet(ctx context.Context, req FormulaSheetRequest) (*FormulaResult, error) {
	if strings.TrimSpace(req.Subject) == "" {
		return nil, &RequestError{Reason: ReasonMissingSubject, Message: "Subject is required"}
	}

	in := FormulaSheetInput{
		Subject:    req.Subject,
		Chapters:   req.Chapters,
		ClassLevel: req.ClassLevel,
		ExamType:   req.ExamType,
	}

	raw, err := s.Gen.GenerateText(ctx, BuildFormulaSheetPrompt(in))
	if err != nil {
		return nil, &GenerationError{Err: err}
	}
	art, err := ParseFormulaSheet(raw, in)
	if err != nil {
		return nil, err
	}

	content, _ := json.Marshal(art)
	note := &models.StudyNote{
		Kind:       models.NoteKindFormulaSheet,
		Topic:      "Formula Sheet: " + req.Subject,
		ClassLevel: orDefault(req.ClassLevel, "N/A"),
		ExamType:   orDefault(req.ExamType, "General"),
		Content:    string(content),
	}

	user := s.resolveUser(ctx, req.UserID)
	if user != nil {
		note.UserID = &user.ID
	}
	if err := s.Store.CreateNote(ctx, note); err != nil {
		log.Println("Không lưu được formula sheet:", err)
		return &FormulaResult{Artifact: art, Saved: false}, nil
	}
	s.notifyOwner(user, note)
	return &FormulaResult{Artifact: art, NoteID: note.ID, Saved: true}, nil
}

// runStudyPipeline chạy phần chung cho ba kind dùng StudyArtifact.
// Validate fail -> không lưu gì; lưu fail -> vẫn trả artifact với Saved=false.
func (s *StudyService) runStudyPipeline(ctx context.Context, prompt string, opts StudyOptions, note *models.StudyNote, userID *uuid.UUID) (*StudyResult, error) {
	raw, err := s.Gen.GenerateText(ctx, prompt)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	art, err := ParseStudyArtifact(raw, opts)
	if err != nil {
		return nil, err
	}

	content, _ := json.Marshal(art)
	note.Content = string(content)

	user := s.resolveUser(ctx, userID)
	if user != nil {
		note.UserID = &user.ID
	}

	if err := s.Store.CreateNote(ctx, note); err != nil {
		log.Println("Không lưu được ghi chú:", err)
		return &StudyResult{Artifact: art, Saved: false, Source: note.Source}, nil
	}
	s.notifyOwner(user, note)
	return &StudyResult{Artifact: art, NoteID: note.ID, Saved: true, Source: note.Source}, nil
}

// User không tồn tại thì chạy tiếp ẩn danh, không fail run.
func (s *StudyService) resolveUser(ctx context.Context, userID *uuid.UUID) *models.User {
	if userID == nil {
		return nil
	}
	user, err := s.Store.FindUserByID(ctx, *userID)
	if err != nil {
		log.Printf("Không tìm thấy user %s, lưu ẩn danh\n", userID)
		return nil
	}
	return user
}

func (s *StudyService) notifyOwner(user *models.User, note *models.StudyNote) {
	if user == nil || s.Notify == nil {
		return
	}
	s.Notify.NotifyUser(user.ID.String(), NoteCreatedEvent{
		Type:   "note_created",
		NoteID: note.ID,
		Kind:   note.Kind,
		Topic:  note.Topic,
	})
}
