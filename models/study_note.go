package models

import (
	"time"

	"github.com/google/uuid"
)

// Loại nguồn sinh ghi chú
const (
	NoteKindTopic        = "topic_notes"
	NoteKindYouTube      = "youtube_summary"
	NoteKindVoice        = "voice_transcript"
	NoteKindFormulaSheet = "formula_sheet"
)

// StudyNote lưu một lần sinh thành công: artifact JSON + metadata của request.
// UserID nullable: request ẩn danh vẫn được lưu, chỉ không vào lịch sử ai cả.
// Bản ghi không bao giờ bị sửa sau khi tạo.
type StudyNote struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User   *User      `gorm:"constraint:OnDelete:SET NULL;" json:"-"`

	Kind           string `gorm:"size:30;not null" json:"kind"`
	Topic          string `gorm:"size:255;not null" json:"topic"`
	ClassLevel     string `gorm:"size:100" json:"class_level"`
	ExamType       string `gorm:"size:100" json:"exam_type"`
	RevisionMode   bool   `json:"revision_mode"`
	IncludeDiagram bool   `json:"include_diagram"`
	IncludeChart   bool   `json:"include_chart"`

	// "template" khi nội dung là placeholder (youtube/voice chưa có transcript thật)
	Source string `gorm:"size:20" json:"source,omitempty"`

	// Artifact đã chuẩn hoá, serialize sẵn thành JSON
	Content string `gorm:"type:jsonb;not null" json:"content"`

	// URL file ghi âm trên Supabase (chỉ voice notes)
	AudioURL *string `gorm:"type:text" json:"audio_url,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
