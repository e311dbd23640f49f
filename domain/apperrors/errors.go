// Package apperrors รวม sentinel errors ของ upload/list/delete workflows
// handlers ใช้ errors.Is เพื่อ map ไปเป็น HTTP status
package apperrors

import "errors"

var (
	// validation — ตรวจก่อนเรียก remote store เสมอ
	ErrNoFile               = errors.New("no file provided")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrFileTooLarge         = errors.New("file exceeds the upload size limit")

	// lookup
	ErrUserNotFound = errors.New("user not found")
	ErrFileNotFound = errors.New("file not found")

	// registration conflicts
	ErrEmailTaken    = errors.New("email already exists")
	ErrUsernameTaken = errors.New("username already exists")

	// store failures
	ErrBlobStore     = errors.New("blob store operation failed")
	ErrMetadataStore = errors.New("metadata store operation failed")
)
