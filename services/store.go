package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/0607rj/NoteForge-AI/models"
)

// NoteStore là capability lưu trữ của pipeline. Lịch sử của user là foreign
// key trên study_notes: một INSERT là một lần append, atomic sẵn, hai request
// song song của cùng user không thể ghi đè nhau.
type NoteStore interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateNote(ctx context.Context, note *models.StudyNote) error
	NotesByUser(ctx context.Context, userID uuid.UUID) ([]models.StudyNote, error)
	NoteByID(ctx context.Context, id uuid.UUID) (*models.StudyNote, error)
}

type GormNoteStore struct {
	DB *gorm.DB
}

func NewGormNoteStore(db *gorm.DB) *GormNoteStore {
	return &GormNoteStore{DB: db}
}

func (s *GormNoteStore) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormNoteStore) CreateNote(ctx context.Context, note *models.StudyNote) error {
	return s.DB.WithContext(ctx).Create(note).Error
}

func (s *GormNoteStore) NotesByUser(ctx context.Context, userID uuid.UUID) ([]models.StudyNote, error) {
	var notes []models.StudyNote
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

func (s *GormNoteStore) NoteByID(ctx context.Context, id uuid.UUID) (*models.StudyNote, error) {
	var note models.StudyNote
	if err := s.DB.WithContext(ctx).First(&note, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &note, nil
}
