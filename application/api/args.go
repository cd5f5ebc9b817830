package api

import (
	"io"

	pkgerrors "sayitloud/pkg/errors"
)

// Upload is a binary attachment supplied by the caller. Validation here is
// structural only: the parts must be well-formed, nothing more.
type Upload struct {
	FileName    string
	ContentType string
	Reader      io.Reader
}

func (u *Upload) validate() error {
	if u == nil {
		return nil
	}
	if u.FileName == "" {
		return pkgerrors.NewValidationError("upload file name is required")
	}
	if u.Reader == nil {
		return pkgerrors.NewValidationError("upload content is required")
	}
	return nil
}

// SignupArgs registers a new identity.
type SignupArgs struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginArgs authenticates an existing identity.
type LoginArgs struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreatePostArgs creates a new post; Image selects multipart encoding.
type CreatePostArgs struct {
	Content string `json:"content" validate:"required"`
	Image   *Upload `json:"-"`
}

// CommentArgs adds a comment to a post; Image selects multipart encoding.
type CommentArgs struct {
	Text  string `json:"text" validate:"required"`
	Image *Upload `json:"-"`
}
