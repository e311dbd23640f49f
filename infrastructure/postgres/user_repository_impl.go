package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"filevault/domain/models"
	"filevault/domain/repositories"
)

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AppendFileRef ต่อท้าย jsonb array ใน UPDATE เดียว
// สองคน (upload + delete) แก้ list พร้อมกันได้โดยไม่ lost update
func (r *UserRepositoryImpl) AppendFileRef(ctx context.Context, userID uuid.UUID, ref models.FileRef) error {
	refJSON, err := models.FileRefList{ref}.Value()
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Exec(
		`UPDATE users SET file_refs = COALESCE(file_refs, '[]'::jsonb) || ?::jsonb, updated_at = NOW() WHERE id = ?`,
		refJSON, userID,
	).Error
}

// RemoveFileRefByBlobKey ตัด entry ที่ blobKey ตรงออกจาก jsonb array ใน UPDATE เดียว
// ลบ key ที่ไม่มีอยู่เป็น no-op (delete ซ้ำจาก concurrent requests)
func (r *UserRepositoryImpl) RemoveFileRefByBlobKey(ctx context.Context, userID uuid.UUID, blobKey string) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE users
		 SET file_refs = COALESCE(
		     (SELECT jsonb_agg(elem) FROM jsonb_array_elements(file_refs) AS elem WHERE elem->>'blobKey' <> ?),
		     '[]'::jsonb
		 ), updated_at = NOW()
		 WHERE id = ?`,
		blobKey, userID,
	).Error
}

func (r *UserRepositoryImpl) ReplaceFileRefs(ctx context.Context, userID uuid.UUID, refs models.FileRefList) error {
	refsJSON, err := refs.Value()
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Exec(
		`UPDATE users SET file_refs = ?::jsonb, updated_at = NOW() WHERE id = ?`,
		refsJSON, userID,
	).Error
}

func (r *UserRepositoryImpl) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.User{}).Pluck("id", &ids).Error
	return ids, err
}
