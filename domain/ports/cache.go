package ports

import (
	"context"

	"filevault/domain/models"

	"github.com/google/uuid"
)

// FileListCache คือ cache ของผลลัพธ์ "list my files" ต่อ user
// cache miss หรือ cache error ให้ fallback ไปที่ database เสมอ
type FileListCache interface {
	Get(ctx context.Context, userID uuid.UUID) ([]*models.File, bool)
	Set(ctx context.Context, userID uuid.UUID, files []*models.File)
	Invalidate(ctx context.Context, userID uuid.UUID)
}
