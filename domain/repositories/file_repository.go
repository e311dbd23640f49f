package repositories

import (
	"context"

	"filevault/domain/models"

	"github.com/google/uuid"
)

type FileRepository interface {
	Create(ctx context.Context, file *models.File) error

	// GetByIDAndUserID คือ ownership check + lookup ในคำสั่งเดียว
	// record ของคนอื่นกับ record ที่ไม่มีอยู่ ต้อง error แบบเดียวกัน
	GetByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*models.File, error)

	// GetByUserID เรียงจากใหม่ไปเก่า (uploaded_at DESC)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.File, error)

	Delete(ctx context.Context, id uuid.UUID) error

	ExistsByBlobKey(ctx context.Context, blobKey string) (bool, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}
