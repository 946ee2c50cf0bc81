package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"codepair/internal/models"
)

// Database persists documents on the rooms table, so the live document and
// the room metadata share one durable record.
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

func (s *Database) Read(ctx context.Context, roomID string) (string, error) {
	var room models.Room
	err := s.db.WithContext(ctx).Select("code").First(&room, "id = ?", roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return room.Code, nil
}

func (s *Database) Write(ctx context.Context, roomID, text string) error {
	result := s.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ?", roomID).
		Update("code", text)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
