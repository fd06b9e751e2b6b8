package services

import (
	"context"
	"strings"
	"time"

	"Gin_postgres_redis_library_lending/models"
	"Gin_postgres_redis_library_lending/validation"

	"github.com/google/uuid"
)

// BookService covers catalog CRUD; lending state changes stay with
// LoanService.
type BookService struct {
	books BookRepository
}

func NewBookService(books BookRepository) *BookService {
	return &BookService{books: books}
}

// AddBook registers a book. The ISBN is checksum-validated, normalized and
// must be unique across the catalog.
func (s *BookService) AddBook(ctx context.Context, title, author, isbn, coverImageURL string) (*models.Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" {
		return nil, &ValidationError{Field: "title", Reason: "required"}
	}
	if author == "" {
		return nil, &ValidationError{Field: "author", Reason: "required"}
	}
	if !validation.ValidateISBN(isbn) {
		return nil, &ValidationError{Field: "isbn", Reason: "not a valid ISBN-10/13"}
	}
	norm := validation.NormalizeIdentifier(isbn)

	existing, err := s.books.FindByISBN(ctx, norm)
	if err != nil {
		return nil, &StorageError{Op: "find book by isbn", Err: err}
	}
	if existing != nil {
		return nil, &DuplicateError{Field: "isbn", Value: norm}
	}

	book := &models.Book{
		ID:            uuid.NewString(),
		Title:         title,
		Author:        author,
		ISBN:          norm,
		CoverImageURL: strings.TrimSpace(coverImageURL),
		Status:        models.BookStatusAvailable,
		RegisteredAt:  time.Now(),
	}
	if err := s.books.Create(ctx, book); err != nil {
		return nil, &StorageError{Op: "create book", Err: err}
	}
	return book, nil
}

// UpdateBook edits catalog fields. ID, registration time and lending status
// are not editable through here.
func (s *BookService) UpdateBook(ctx context.Context, id string, upd BookUpdate) (*models.Book, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, &StorageError{Op: "find book", Err: err}
	}
	if book == nil {
		return nil, &BookNotFoundError{BookID: id}
	}

	if upd.Title != nil {
		t := strings.TrimSpace(*upd.Title)
		if t == "" {
			return nil, &ValidationError{Field: "title", Reason: "required"}
		}
		upd.Title = &t
	}
	if upd.Author != nil {
		a := strings.TrimSpace(*upd.Author)
		if a == "" {
			return nil, &ValidationError{Field: "author", Reason: "required"}
		}
		upd.Author = &a
	}
	if upd.ISBN != nil {
		if !validation.ValidateISBN(*upd.ISBN) {
			return nil, &ValidationError{Field: "isbn", Reason: "not a valid ISBN-10/13"}
		}
		norm := validation.NormalizeIdentifier(*upd.ISBN)
		if norm != book.ISBN {
			existing, err := s.books.FindByISBN(ctx, norm)
			if err != nil {
				return nil, &StorageError{Op: "find book by isbn", Err: err}
			}
			if existing != nil && existing.ID != id {
				return nil, &DuplicateError{Field: "isbn", Value: norm}
			}
		}
		upd.ISBN = &norm
	}

	updated, err := s.books.UpdateDetails(ctx, id, upd)
	if err != nil {
		return nil, &StorageError{Op: "update book", Err: err}
	}
	return updated, nil
}

// DeleteBook removes a shelved book; a borrowed one must come back first.
func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return &StorageError{Op: "find book", Err: err}
	}
	if book == nil {
		return &BookNotFoundError{BookID: id}
	}
	if book.Status == models.BookStatusBorrowed {
		return &BorrowedBookDeleteError{BookID: id}
	}
	if err := s.books.Delete(ctx, id); err != nil {
		return &StorageError{Op: "delete book", Err: err}
	}
	return nil
}

func (s *BookService) GetAllBooks(ctx context.Context) ([]models.Book, error) {
	books, err := s.books.FindAll(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list books", Err: err}
	}
	return books, nil
}

func (s *BookService) GetAvailableBooks(ctx context.Context) ([]models.Book, error) {
	books, err := s.books.FindAvailable(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list available books", Err: err}
	}
	return books, nil
}

func (s *BookService) GetBookByID(ctx context.Context, id string) (*models.Book, error) {
	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, &StorageError{Op: "find book", Err: err}
	}
	if book == nil {
		return nil, &BookNotFoundError{BookID: id}
	}
	return book, nil
}

func (s *BookService) GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	norm := validation.NormalizeIdentifier(isbn)
	book, err := s.books.FindByISBN(ctx, norm)
	if err != nil {
		return nil, &StorageError{Op: "find book by isbn", Err: err}
	}
	if book == nil {
		return nil, &BookNotFoundError{ISBN: norm}
	}
	return book, nil
}

// SearchBooks matches title or author; a blank query lists everything.
func (s *BookService) SearchBooks(ctx context.Context, query string) ([]models.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.GetAllBooks(ctx)
	}
	books, err := s.books.Search(ctx, query)
	if err != nil {
		return nil, &StorageError{Op: "search books", Err: err}
	}
	return books, nil
}
