package models

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rpupo63/readinglog/errs"
	"gorm.io/datatypes"
)

const (
	BookTitleRequiredMessage = "Title is required."
	dateReadLayout           = "2006-01-02"
)

// Book is a row of the books table. Every column except title is nullable.
type Book struct {
	ID        int64           `json:"id" db:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Title     string          `json:"title" db:"title" gorm:"column:title;type:text;not null"`
	Author    *string         `json:"author" db:"author" gorm:"column:author;type:text"`
	ISBN      *string         `json:"isbn" db:"isbn" gorm:"column:isbn;type:text"`
	Rating    *float64        `json:"rating" db:"rating" gorm:"column:rating;type:numeric"`
	Notes     *string         `json:"notes" db:"notes" gorm:"column:notes;type:text"`
	DateRead  *datatypes.Date `json:"date_read" db:"date_read" gorm:"column:date_read"`
	CreatedAt time.Time       `json:"created_at" db:"created_at" gorm:"column:created_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at" gorm:"column:updated_at;type:timestamptz;not null;default:CURRENT_TIMESTAMP"`
}

func (Book) TableName() string {
	return "books"
}

// DateReadString formats DateRead the way the date input expects it, or "".
func (b Book) DateReadString() string {
	if b.DateRead == nil {
		return ""
	}
	return time.Time(*b.DateRead).Format(dateReadLayout)
}

// RatingString renders Rating without trailing zeros, or "".
func (b Book) RatingString() string {
	if b.Rating == nil {
		return ""
	}
	return strconv.FormatFloat(*b.Rating, 'f', -1, 64)
}

// Input turns a stored book back into form values.
func (b Book) Input() BookInput {
	return BookInput{
		Title:    b.Title,
		Author:   deref(b.Author),
		ISBN:     deref(b.ISBN),
		Rating:   b.RatingString(),
		Notes:    deref(b.Notes),
		DateRead: b.DateReadString(),
	}
}

// BookInput is the raw form submission for a book.
type BookInput struct {
	Title    string
	Author   string
	ISBN     string
	Rating   string
	Notes    string
	DateRead string
}

// Normalize trims surrounding whitespace from every field.
func (in BookInput) Normalize() BookInput {
	return BookInput{
		Title:    strings.TrimSpace(in.Title),
		Author:   strings.TrimSpace(in.Author),
		ISBN:     strings.TrimSpace(in.ISBN),
		Rating:   strings.TrimSpace(in.Rating),
		Notes:    strings.TrimSpace(in.Notes),
		DateRead: strings.TrimSpace(in.DateRead),
	}
}

// Validate expects a normalized input.
func (in BookInput) Validate() error {
	if in.Title == "" {
		return errs.NewMissingRequiredFieldError("title", BookTitleRequiredMessage)
	}
	return nil
}

// Book converts a normalized input into column values. Empty optional fields,
// ratings that are not finite numbers and dates not in YYYY-MM-DD become NULL.
func (in BookInput) Book() Book {
	return Book{
		Title:    in.Title,
		Author:   optional(in.Author),
		ISBN:     optional(in.ISBN),
		Rating:   parseRating(in.Rating),
		Notes:    optional(in.Notes),
		DateRead: parseDateRead(in.DateRead),
	}
}

func parseRating(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func parseDateRead(s string) *datatypes.Date {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateReadLayout, s)
	if err != nil {
		return nil
	}
	d := datatypes.Date(t)
	return &d
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
