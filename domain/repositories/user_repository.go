package repositories

import (
	"context"

	"filevault/domain/models"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// AppendFileRef / RemoveFileRefByBlobKey แก้ไข jsonb list ใน statement เดียว
	// ห้ามทำแบบ read-modify-write (lost update จาก concurrent upload/delete)
	AppendFileRef(ctx context.Context, userID uuid.UUID, ref models.FileRef) error
	RemoveFileRefByBlobKey(ctx context.Context, userID uuid.UUID, blobKey string) error

	// ReplaceFileRefs เขียนทับทั้ง list (ใช้ตอน reconcile drift)
	ReplaceFileRefs(ctx context.Context, userID uuid.UUID, refs models.FileRefList) error

	// ListIDs คืน id ของ user ทั้งหมด (สำหรับ reconcile ทุก user)
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}
