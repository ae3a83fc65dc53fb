package patients

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no patient matches the given identifier.
var ErrNotFound = errors.New("patient not found")

// Store is the patient lookup consumed by the inference service.
type Store interface {
	FindByID(ctx context.Context, id string) (*Record, error)
	FindByUserID(ctx context.Context, userID string) (*Record, error)
	Ready(ctx context.Context) bool
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&Record{})
}

func (r *Repository) FindByID(ctx context.Context, id string) (*Record, error) {
	var record Record
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID string) (*Record, error) {
	var record Record
	if err := r.db.WithContext(ctx).First(&record, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *Repository) Ready(ctx context.Context) bool {
	sqlDB, err := r.db.DB()
	if err != nil {
		return false
	}
	return sqlDB.PingContext(ctx) == nil
}
