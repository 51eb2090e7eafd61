package repositories

import (
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"fastplan/internal/models/db_models"
)

type DestinationRepository interface {
	SearchByVector(vector pgvector.Vector, limit int) ([]db_models.Destination, error)
	SearchByName(name string, limit int) ([]db_models.Destination, error)
	Create(destination db_models.Destination) error
}

type destinationRepository struct {
	db *gorm.DB
}

func NewDestinationRepository(db *gorm.DB) DestinationRepository {
	return &destinationRepository{
		db: db,
	}
}

func (d *destinationRepository) SearchByVector(vector pgvector.Vector, limit int) ([]db_models.Destination, error) {
	var results []db_models.Destination

	if limit <= 0 {
		limit = 8
	}

	query := `
        SELECT *, (1 - (embedding <=> $1)) as similarity
        FROM destinations
        WHERE (1 - (embedding <=> $1)) > 0.5
        ORDER BY embedding <=> $1
        LIMIT $2
    `

	err := d.db.Raw(query, vector.String(), limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (d *destinationRepository) SearchByName(name string, limit int) ([]db_models.Destination, error) {
	var results []db_models.Destination

	if limit <= 0 {
		limit = 8
	}

	err := d.db.
		Where("name ILIKE ?", "%"+name+"%").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (d *destinationRepository) Create(destination db_models.Destination) error {
	return d.db.Create(&destination).Error
}
