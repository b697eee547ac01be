package database

import (
	"context"
	"errors"
	"time"

	"github.com/rpupo63/readinglog/errs"
	"github.com/rpupo63/readinglog/models"
	"gorm.io/gorm"
)

const (
	saveBookFailedMessage   = "Failed to save book."
	updateBookFailedMessage = "Failed to update book."
)

type BookRepo struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBookRepo(db *gorm.DB) *BookRepo {
	return &BookRepo{db: db, now: time.Now}
}

// FindAll returns every book in the order selected by sort
func (r *BookRepo) FindAll(ctx context.Context, sort models.SortKey) ([]models.Book, error) {
	var books []models.Book
	if err := r.listQuery(r.db.WithContext(ctx), sort).Find(&books).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "books", err)
	}
	return books, nil
}

func (r *BookRepo) listQuery(tx *gorm.DB, sort models.SortKey) *gorm.DB {
	return tx.Model(&models.Book{}).Order(sort.OrderBy())
}

// FindByID returns a book by its ID, or nil when no row matches
func (r *BookRepo) FindByID(ctx context.Context, id int64) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "book", err)
	}
	return &book, nil
}

// Create validates the submission and inserts a new row
func (r *BookRepo) Create(ctx context.Context, in models.BookInput) models.Result[models.Book] {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return models.Rejected[models.Book](validationMessage(err))
	}

	book := in.Book()
	if err := r.db.WithContext(ctx).Create(&book).Error; err != nil {
		return models.StoreFailed[models.Book](saveBookFailedMessage, errs.NewDatabaseError("create", "book", err))
	}
	return models.Persisted(book)
}

// Update validates the submission and rewrites every editable column in one statement
func (r *BookRepo) Update(ctx context.Context, id int64, in models.BookInput) models.Result[models.Book] {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return models.Rejected[models.Book](validationMessage(err))
	}

	book := in.Book()
	book.ID = id
	book.UpdatedAt = r.now()

	res := r.db.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id).Updates(updateColumns(book))
	if res.Error != nil {
		return models.StoreFailed[models.Book](updateBookFailedMessage, errs.NewDatabaseError("update", "book", res.Error))
	}
	if res.RowsAffected == 0 {
		return models.NotFound[models.Book]()
	}
	return models.Persisted(book)
}

// updateColumns uses a map so that cleared optional fields are written as NULL
func updateColumns(book models.Book) map[string]interface{} {
	return map[string]interface{}{
		"title":      book.Title,
		"author":     book.Author,
		"isbn":       book.ISBN,
		"rating":     book.Rating,
		"notes":      book.Notes,
		"date_read":  book.DateRead,
		"updated_at": book.UpdatedAt,
	}
}

// Delete removes a book by id; deleting a missing id is not an error
func (r *BookRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Book{}).Error; err != nil {
		return errs.NewDatabaseError("delete", "book", err)
	}
	return nil
}

func validationMessage(err error) string {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}
