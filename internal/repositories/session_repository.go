package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fastplan/internal/models/db_models"
)

type SessionRepository interface {
	Insert(ctx context.Context, session *db_models.WizardSession) error
	FindById(ctx context.Context, id string) (*db_models.WizardSession, error)
	Update(ctx context.Context, session *db_models.WizardSession) error
	Delete(ctx context.Context, id string) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{
		db: db,
	}
}

func (s *sessionRepository) Insert(ctx context.Context, session *db_models.WizardSession) error {
	return s.db.WithContext(ctx).Create(session).Error
}

func (s *sessionRepository) FindById(ctx context.Context, id string) (*db_models.WizardSession, error) {
	var session db_models.WizardSession
	err := s.db.WithContext(ctx).First(&session, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

func (s *sessionRepository) Update(ctx context.Context, session *db_models.WizardSession) error {
	return s.db.WithContext(ctx).Save(session).Error
}

func (s *sessionRepository) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&db_models.WizardSession{}, "id = ?", id).Error
}
