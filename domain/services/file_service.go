package services

import (
	"context"
	"mime/multipart"

	"filevault/domain/models"

	"github.com/google/uuid"
)

type FileService interface {
	UploadFile(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*models.File, error)
	GetUserFiles(ctx context.Context, userID uuid.UUID) ([]*models.File, error)
	DeleteFile(ctx context.Context, userID, fileID uuid.UUID) error
}
