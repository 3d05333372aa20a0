package repository

import (
	"context"

	"dyslexibrowse/internal/database"
	"dyslexibrowse/internal/models"
)

// SessionLog is the gorm-backed durable session log. It satisfies the
// metrics tracker's store interface.
type SessionLog struct{}

// Append adds a finalized session record to the log.
func (SessionLog) Append(ctx context.Context, session *models.ReadingSession) error {
	return database.DB.WithContext(ctx).Create(session).Error
}

// List returns all recorded sessions in insertion order.
func (SessionLog) List(ctx context.Context) ([]models.ReadingSession, error) {
	var sessions []models.ReadingSession
	err := database.DB.WithContext(ctx).Order("created_at ASC, id ASC").Find(&sessions).Error
	return sessions, err
}
