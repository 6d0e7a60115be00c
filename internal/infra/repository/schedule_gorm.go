package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aurelia-labs/salon-scheduler/internal/domain/schedule"
	"github.com/aurelia-labs/salon-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Weekly rules
// --------------------------------------------------

func (r *ScheduleGormRepository) GetRuleForDay(
	ctx context.Context,
	weekday int,
) (*models.ScheduleSettings, error) {

	var rule models.ScheduleSettings
	err := r.db.WithContext(ctx).
		Where("weekday = ?", weekday).
		First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// absent rule means closed, not an error
			return nil, nil
		}
		return nil, &schedule.StorageError{Op: "get_rule_for_day", Err: err}
	}
	return &rule, nil
}

func (r *ScheduleGormRepository) HasAnyRule(ctx context.Context) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ScheduleSettings{}).
		Count(&count).Error
	if err != nil {
		return false, &schedule.StorageError{Op: "has_any_rule", Err: err}
	}
	return count > 0, nil
}

func (r *ScheduleGormRepository) ListRules(ctx context.Context) ([]models.ScheduleSettings, error) {
	var rules []models.ScheduleSettings
	err := r.db.WithContext(ctx).
		Order("weekday ASC").
		Find(&rules).Error
	if err != nil {
		return nil, &schedule.StorageError{Op: "list_rules", Err: err}
	}
	return rules, nil
}

// ReplaceAllRules is an atomic full replace: delete everything, then
// bulk-insert the new set.
func (r *ScheduleGormRepository) ReplaceAllRules(
	ctx context.Context,
	rules []models.ScheduleSettings,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ScheduleSettings{}).Error; err != nil {
			return err
		}
		if len(rules) > 0 {
			if err := tx.Create(&rules).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &schedule.StorageError{Op: "replace_all_rules", Err: err}
	}
	return nil
}

// --------------------------------------------------
// Date exceptions
// --------------------------------------------------

func (r *ScheduleGormRepository) GetExceptionForDate(
	ctx context.Context,
	date string,
	therapistID uint,
) (*models.ScheduleException, error) {

	// therapist-scoped exception wins over the salon-wide one
	var exc models.ScheduleException
	err := r.db.WithContext(ctx).
		Where("date = ? AND therapist_id = ?", date, therapistID).
		First(&exc).Error
	if err == nil {
		return &exc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &schedule.StorageError{Op: "get_exception_for_date", Err: err}
	}

	err = r.db.WithContext(ctx).
		Where("date = ? AND therapist_id IS NULL", date).
		First(&exc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &schedule.StorageError{Op: "get_exception_for_date", Err: err}
	}
	return &exc, nil
}

func (r *ScheduleGormRepository) CreateException(
	ctx context.Context,
	exc *models.ScheduleException,
) error {
	if err := r.db.WithContext(ctx).Create(exc).Error; err != nil {
		return &schedule.StorageError{Op: "create_exception", Err: err}
	}
	return nil
}

func (r *ScheduleGormRepository) DeleteException(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.ScheduleException{}, id)
	if res.Error != nil {
		return &schedule.StorageError{Op: "delete_exception", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &schedule.NotFoundError{Entity: "schedule exception", ID: id}
	}
	return nil
}

func (r *ScheduleGormRepository) ListExceptions(ctx context.Context) ([]models.ScheduleException, error) {
	var excs []models.ScheduleException
	err := r.db.WithContext(ctx).
		Order("date ASC").
		Find(&excs).Error
	if err != nil {
		return nil, &schedule.StorageError{Op: "list_exceptions", Err: err}
	}
	return excs, nil
}

// Compile-time check
var _ schedule.ConfigStore = (*ScheduleGormRepository)(nil)
