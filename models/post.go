package models

import (
	"strings"
	"time"

	"github.com/rpupo63/readinglog/errs"
)

const PostRequiredMessage = "Title and content are required."

// Post is a blog entry held by the in-memory store.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostInput is the raw form submission for a post.
type PostInput struct {
	Title   string
	Content string
}

// Normalize trims surrounding whitespace from every field.
func (in PostInput) Normalize() PostInput {
	return PostInput{
		Title:   strings.TrimSpace(in.Title),
		Content: strings.TrimSpace(in.Content),
	}
}

// Validate expects a normalized input.
func (in PostInput) Validate() error {
	if in.Title == "" {
		return errs.NewMissingRequiredFieldError("title", PostRequiredMessage)
	}
	if in.Content == "" {
		return errs.NewMissingRequiredFieldError("content", PostRequiredMessage)
	}
	return nil
}
