package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

// CatalogGormRepository resolves the reference entities an appointment
// points at: client, therapist, service.
type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &schedule.NotFoundError{Entity: "client", ID: id}
		}
		return nil, &schedule.StorageError{Op: "get_client", Err: err}
	}
	return &client, nil
}

func (r *CatalogGormRepository) GetTherapist(ctx context.Context, id uint) (*models.Therapist, error) {
	var therapist models.Therapist
	if err := r.db.WithContext(ctx).First(&therapist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &schedule.NotFoundError{Entity: "therapist", ID: id}
		}
		return nil, &schedule.StorageError{Op: "get_therapist", Err: err}
	}
	return &therapist, nil
}

func (r *CatalogGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &schedule.NotFoundError{Entity: "service", ID: id}
		}
		return nil, &schedule.StorageError{Op: "get_service", Err: err}
	}
	return &service, nil
}
