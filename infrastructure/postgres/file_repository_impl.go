package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"filevault/domain/models"
	"filevault/domain/repositories"
)

type FileRepositoryImpl struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) repositories.FileRepository {
	return &FileRepositoryImpl{db: db}
}

func (r *FileRepositoryImpl) Create(ctx context.Context, file *models.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

// GetByIDAndUserID — ownership อยู่ใน WHERE clause
// ไฟล์ของคนอื่นจึง ErrRecordNotFound เหมือนไฟล์ที่ไม่มีอยู่
func (r *FileRepositoryImpl) GetByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*models.File, error) {
	var file models.File
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *FileRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.File, error) {
	var files []*models.File
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("uploaded_at DESC").
		Find(&files).Error
	return files, err
}

func (r *FileRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.File{}).Error
}

func (r *FileRepositoryImpl) ExistsByBlobKey(ctx context.Context, blobKey string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.File{}).Where("blob_key = ?", blobKey).Count(&count).Error
	return count > 0, err
}

func (r *FileRepositoryImpl) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.File{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
