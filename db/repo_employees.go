package db

import (
	"context"
	"errors"

	"Gin_postgres_redis_library_lending/models"
	"Gin_postgres_redis_library_lending/services"

	"gorm.io/gorm"
)

type EmployeeRepo struct{ DB *gorm.DB }

var _ services.EmployeeRepository = (*EmployeeRepo)(nil)

func (r *EmployeeRepo) FindAll(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepo) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	var e models.Employee
	if err := r.DB.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepo) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var e models.Employee
	if err := r.DB.WithContext(ctx).First(&e, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepo) FindByBarcode(ctx context.Context, barcode string) (*models.Employee, error) {
	var e models.Employee
	if err := r.DB.WithContext(ctx).First(&e, "barcode = ?", barcode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepo) Create(ctx context.Context, e *models.Employee) error {
	return r.DB.WithContext(ctx).Create(e).Error
}

func (r *EmployeeRepo) UpdateDetails(ctx context.Context, id string, upd services.EmployeeUpdate) (*models.Employee, error) {
	fields := map[string]any{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Email != nil {
		fields["email"] = *upd.Email
	}
	if len(fields) > 0 {
		if err := r.DB.WithContext(ctx).Model(&models.Employee{}).
			Where("id = ?", id).
			Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&models.Employee{}, "id = ?", id).Error
}

// TouchLastActive stamps badge activity; used by the kiosk middleware with a
// redis throttle in front, so errors are the caller's to ignore.
func (r *EmployeeRepo) TouchLastActive(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Model(&models.Employee{}).
		Where("id = ?", id).
		Update("last_active_at", gorm.Expr("NOW()")).Error
}
