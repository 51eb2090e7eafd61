package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fastplan/internal/models/db_models"
)

type NoteRepository interface {
	Insert(ctx context.Context, note *db_models.ActivityNote) error
	Update(ctx context.Context, note *db_models.ActivityNote) error
	FindBySlot(ctx context.Context, accountId, tripId string, dayIndex, activityIndex int) (*db_models.ActivityNote, error)
	ListByTrip(ctx context.Context, accountId, tripId string) ([]db_models.ActivityNote, error)
}

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{
		db: db,
	}
}

func (n *noteRepository) Insert(ctx context.Context, note *db_models.ActivityNote) error {
	return n.db.WithContext(ctx).Create(note).Error
}

func (n *noteRepository) Update(ctx context.Context, note *db_models.ActivityNote) error {
	return n.db.WithContext(ctx).Save(note).Error
}

func (n *noteRepository) FindBySlot(ctx context.Context, accountId, tripId string, dayIndex, activityIndex int) (*db_models.ActivityNote, error) {
	var note db_models.ActivityNote
	err := n.db.WithContext(ctx).
		First(&note, "account_id = ? AND trip_id = ? AND day_index = ? AND activity_index = ?",
			accountId, tripId, dayIndex, activityIndex).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &note, nil
}

func (n *noteRepository) ListByTrip(ctx context.Context, accountId, tripId string) ([]db_models.ActivityNote, error) {
	var notes []db_models.ActivityNote
	err := n.db.WithContext(ctx).
		Where("account_id = ? AND trip_id = ?", accountId, tripId).
		Order("day_index, activity_index").
		Find(&notes).Error

	if err != nil {
		return nil, err
	}

	return notes, nil
}
