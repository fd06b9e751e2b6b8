package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"Gin_postgres_redis_library_lending/models"
	"Gin_postgres_redis_library_lending/services"

	"gorm.io/gorm"
)

type BookRepo struct{ DB *gorm.DB }

var _ services.BookRepository = (*BookRepo)(nil)

func (r *BookRepo) FindAll(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := r.DB.WithContext(ctx).Order("registered_at DESC").Find(&books).Error
	return books, err
}

func (r *BookRepo) FindByID(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookRepo) FindByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).First(&b, "isbn = ?", isbn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookRepo) FindAvailable(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	err := r.DB.WithContext(ctx).
		Where("status = ?", models.BookStatusAvailable).
		Order("registered_at DESC").
		Find(&books).Error
	return books, err
}

func (r *BookRepo) Search(ctx context.Context, query string) ([]models.Book, error) {
	like := "%" + strings.ToLower(query) + "%"
	var books []models.Book
	err := r.DB.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", like, like).
		Order("registered_at DESC").
		Find(&books).Error
	return books, err
}

func (r *BookRepo) Create(ctx context.Context, b *models.Book) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *BookRepo) UpdateDetails(ctx context.Context, id string, upd services.BookUpdate) (*models.Book, error) {
	fields := map[string]any{}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Author != nil {
		fields["author"] = *upd.Author
	}
	if upd.ISBN != nil {
		fields["isbn"] = *upd.ISBN
	}
	if upd.CoverImageURL != nil {
		fields["cover_image_url"] = *upd.CoverImageURL
	}
	if len(fields) > 0 {
		if err := r.DB.WithContext(ctx).Model(&models.Book{}).
			Where("id = ?", id).
			Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

// MarkBorrowed flips the book only when it is still available, so a racing
// writer that slipped past the engine's lock loses here instead of
// double-lending.
func (r *BookRepo) MarkBorrowed(ctx context.Context, id, employeeID string) error {
	res := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("id = ? AND status = ?", id, models.BookStatusAvailable).
		Updates(map[string]any{
			"status":              models.BookStatusBorrowed,
			"current_borrower_id": employeeID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("book %s is not available", id)
	}
	return nil
}

func (r *BookRepo) MarkAvailable(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":              models.BookStatusAvailable,
			"current_borrower_id": nil,
		}).Error
}

func (r *BookRepo) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&models.Book{}, "id = ?", id).Error
}
