package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fastplan/internal/models/db_models"
)

type TripRepository interface {
	Insert(ctx context.Context, trip *db_models.SavedTrip) error
	FindById(ctx context.Context, id string) (*db_models.SavedTrip, error)
	ListByAccountId(ctx context.Context, page, pageSize int, accountId string) ([]db_models.SavedTrip, error)
	UpdatePlanJSON(ctx context.Context, id string, planJSON []byte) error
	Delete(ctx context.Context, id string) error
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{
		db: db,
	}
}

func (t *tripRepository) Insert(ctx context.Context, trip *db_models.SavedTrip) error {
	return t.db.WithContext(ctx).Create(trip).Error
}

func (t *tripRepository) FindById(ctx context.Context, id string) (*db_models.SavedTrip, error) {
	var trip db_models.SavedTrip
	err := t.db.WithContext(ctx).First(&trip, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &trip, nil
}

func (t *tripRepository) ListByAccountId(ctx context.Context, page, pageSize int, accountId string) ([]db_models.SavedTrip, error) {
	var trips []db_models.SavedTrip
	err := t.db.WithContext(ctx).
		Where("account_id = ?", accountId).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&trips).Error

	if err != nil {
		return nil, err
	}

	return trips, nil
}

func (t *tripRepository) UpdatePlanJSON(ctx context.Context, id string, planJSON []byte) error {
	return t.db.WithContext(ctx).
		Model(&db_models.SavedTrip{}).
		Where("id = ?", id).
		Update("plan_json", planJSON).Error
}

func (t *tripRepository) Delete(ctx context.Context, id string) error {
	return t.db.WithContext(ctx).Delete(&db_models.SavedTrip{}, "id = ?", id).Error
}
