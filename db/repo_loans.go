package db

import (
	"context"
	"errors"
	"time"

	"Gin_postgres_redis_library_lending/models"
	"Gin_postgres_redis_library_lending/services"

	"gorm.io/gorm"
)

type LoanRepo struct{ DB *gorm.DB }

var _ services.LoanRepository = (*LoanRepo)(nil)

func (r *LoanRepo) FindAll(ctx context.Context) ([]models.LoanRecord, error) {
	var loans []models.LoanRecord
	err := r.DB.WithContext(ctx).Order("borrowed_at DESC").Find(&loans).Error
	return loans, err
}

func (r *LoanRepo) FindByID(ctx context.Context, id string) (*models.LoanRecord, error) {
	var l models.LoanRecord
	if err := r.DB.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *LoanRepo) FindActive(ctx context.Context) ([]models.LoanRecord, error) {
	var loans []models.LoanRecord
	err := r.DB.WithContext(ctx).
		Where("returned_at IS NULL").
		Order("borrowed_at DESC").
		Find(&loans).Error
	return loans, err
}

// The partial unique index guarantees at most one row matches.
func (r *LoanRepo) FindActiveByBookID(ctx context.Context, bookID string) (*models.LoanRecord, error) {
	var l models.LoanRecord
	if err := r.DB.WithContext(ctx).
		First(&l, "book_id = ? AND returned_at IS NULL", bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (r *LoanRepo) FindActiveByEmployeeID(ctx context.Context, employeeID string) ([]models.LoanRecord, error) {
	var loans []models.LoanRecord
	err := r.DB.WithContext(ctx).
		Where("employee_id = ? AND returned_at IS NULL", employeeID).
		Order("borrowed_at DESC").
		Find(&loans).Error
	return loans, err
}

func (r *LoanRepo) FindByBookID(ctx context.Context, bookID string) ([]models.LoanRecord, error) {
	var loans []models.LoanRecord
	err := r.DB.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("borrowed_at DESC").
		Find(&loans).Error
	return loans, err
}

func (r *LoanRepo) FindByEmployeeID(ctx context.Context, employeeID string) ([]models.LoanRecord, error) {
	var loans []models.LoanRecord
	err := r.DB.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("borrowed_at DESC").
		Find(&loans).Error
	return loans, err
}

func (r *LoanRepo) Create(ctx context.Context, l *models.LoanRecord) error {
	return r.DB.WithContext(ctx).Create(l).Error
}

func (r *LoanRepo) MarkReturned(ctx context.Context, id string, at time.Time) (*models.LoanRecord, error) {
	if err := r.DB.WithContext(ctx).Model(&models.LoanRecord{}).
		Where("id = ? AND returned_at IS NULL", id).
		Updates(map[string]any{
			"returned_at": at,
			"status":      models.LoanStatusReturned,
		}).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *LoanRepo) SetDueDate(ctx context.Context, id string, due time.Time) (*models.LoanRecord, error) {
	if err := r.DB.WithContext(ctx).Model(&models.LoanRecord{}).
		Where("id = ?", id).
		Update("due_date", due).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}
