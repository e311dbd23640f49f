package dto

import (
	"time"

	"github.com/google/uuid"
)

type FileResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	BlobKey    string    `json:"blobKey"`
	URL        string    `json:"url"`
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	MimeType   string    `json:"mimeType"`
	UploadedAt time.Time `json:"uploadedAt"`
}
