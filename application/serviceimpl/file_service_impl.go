package serviceimpl

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"filevault/domain/apperrors"
	"filevault/domain/models"
	"filevault/domain/ports"
	"filevault/domain/repositories"
	"filevault/domain/services"
	"filevault/pkg/logger"
	"filevault/pkg/utils"
)

// เพดานเวลาต่อหนึ่ง remote call (blob store)
const storeCallTimeout = 30 * time.Second

// เพดานเวลาทั้ง workflow — metadata write ก็ต้องมี deadline
// ไม่ใช่แค่ blob call ไม่งั้น request ค้างได้ไม่จำกัดถ้า db hang
const workflowTimeout = 60 * time.Second

type FileServiceImpl struct {
	fileRepo repositories.FileRepository
	userRepo repositories.UserRepository
	storage  ports.StoragePort
	cache    ports.FileListCache      // nil = ปิด cache
	events   ports.FileEventPublisher // nil = ไม่ publish

	maxUploadSize int64
	allowedTypes  map[string]struct{}
}

func NewFileService(
	fileRepo repositories.FileRepository,
	userRepo repositories.UserRepository,
	storage ports.StoragePort,
	cache ports.FileListCache,
	events ports.FileEventPublisher,
	maxUploadSize int64,
	allowedTypes []string,
) services.FileService {
	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}

	return &FileServiceImpl{
		fileRepo:      fileRepo,
		userRepo:      userRepo,
		storage:       storage,
		cache:         cache,
		events:        events,
		maxUploadSize: maxUploadSize,
		allowedTypes:  allowed,
	}
}

// UploadFile ลำดับตายตัว: validate → resolve owner → blob store → file record → file ref
// ถ้า metadata write ล้มหลัง blob ขึ้นไปแล้ว จะไม่ rollback blob —
// ปล่อยเป็น orphan ให้ ReconcileService เก็บกวาด (แลกกับการไม่มี
// metadata ที่ชี้ไป blob ที่ไม่มีอยู่จริง)
func (s *FileServiceImpl) UploadFile(ctx context.Context, userID uuid.UUID, fileHeader *multipart.FileHeader) (*models.File, error) {
	ctx, cancel := context.WithTimeout(ctx, workflowTimeout)
	defer cancel()

	// validation ทั้งหมดมาก่อน remote call ใดๆ (รวม owner lookup)
	if fileHeader == nil || fileHeader.Size == 0 {
		return nil, apperrors.ErrNoFile
	}

	mimeType := resolveMimeType(fileHeader)
	if _, ok := s.allowedTypes[mimeType]; !ok {
		logger.WarnContext(ctx, "Rejected upload with unsupported media type",
			"user_id", userID, "mime_type", mimeType, "filename", fileHeader.Filename)
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedMediaType, mimeType)
	}

	if fileHeader.Size > s.maxUploadSize {
		logger.WarnContext(ctx, "Rejected oversized upload",
			"user_id", userID, "size", fileHeader.Size, "limit", s.maxUploadSize)
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", apperrors.ErrFileTooLarge, fileHeader.Size, s.maxUploadSize)
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		logger.WarnContext(ctx, "User not found for file upload", "user_id", userID)
		return nil, apperrors.ErrUserNotFound
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.ErrorContext(ctx, "Failed to open uploaded file", "filename", fileHeader.Filename, "error", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrNoFile, err)
	}
	defer file.Close()

	sanitizedName := utils.SanitizeFileName(fileHeader.Filename)
	key := buildObjectKey(userID, sanitizedName)

	logger.InfoContext(ctx, "Uploading file to blob store",
		"user_id", userID, "key", key, "size", fileHeader.Size)

	storeCtx, cancel := context.WithTimeout(ctx, storeCallTimeout)
	defer cancel()

	url, err := s.storage.UploadFile(storeCtx, file, key, mimeType)
	if err != nil {
		logger.ErrorContext(ctx, "Blob store upload failed", "key", key, "error", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrBlobStore, err)
	}

	record := &models.File{
		ID:         uuid.New(),
		UserID:     userID,
		BlobKey:    key,
		URL:        url,
		FileName:   sanitizedName,
		FileSize:   fileHeader.Size,
		MimeType:   mimeType,
		UploadedAt: time.Now().UTC(),
	}

	if err := s.fileRepo.Create(ctx, record); err != nil {
		// blob ขึ้นไปแล้ว — รายงานเป็น orphan candidate แล้ว surface error
		logger.ErrorContext(ctx, "File record insert failed after blob write, blob left for sweep",
			"key", key, "user_id", userID, "error", err)
		s.publishEvent(ctx, &ports.FileEvent{
			Type:     ports.FileEventOrphaned,
			UserID:   userID.String(),
			BlobKey:  key,
			URL:      url,
			Occurred: time.Now().Unix(),
		})
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMetadataStore, err)
	}

	if err := s.userRepo.AppendFileRef(ctx, userID, models.FileRef{
		BlobKey:  key,
		URL:      url,
		FileName: sanitizedName,
	}); err != nil {
		// record มีแล้วแต่ ref หาย — RebuildFileRefs ซ่อมได้
		logger.ErrorContext(ctx, "File ref append failed", "file_id", record.ID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMetadataStore, err)
	}

	s.invalidateListCache(ctx, userID)
	s.publishEvent(ctx, &ports.FileEvent{
		Type:     ports.FileEventUploaded,
		FileID:   record.ID.String(),
		UserID:   userID.String(),
		BlobKey:  key,
		URL:      url,
		Occurred: time.Now().Unix(),
	})

	logger.InfoContext(ctx, "File uploaded", "file_id", record.ID, "user_id", userID, "key", key)

	return record, nil
}

// GetUserFiles คืนไฟล์ของ user เรียงจากใหม่ไปเก่า
// ไม่มีไฟล์ = slice ว่าง ไม่ใช่ error
func (s *FileServiceImpl) GetUserFiles(ctx context.Context, userID uuid.UUID) ([]*models.File, error) {
	ctx, cancel := context.WithTimeout(ctx, workflowTimeout)
	defer cancel()

	if s.cache != nil {
		if files, ok := s.cache.Get(ctx, userID); ok {
			return files, nil
		}
	}

	files, err := s.fileRepo.GetByUserID(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list user files", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMetadataStore, err)
	}

	if files == nil {
		files = []*models.File{}
	}

	if s.cache != nil {
		s.cache.Set(ctx, userID, files)
	}

	return files, nil
}

// DeleteFile ลำดับตายตัว: locate → blob delete → record delete → ref remove
// blob delete ล้มเหลวไม่หยุด local cleanup — local consistency มาก่อน
// blob ที่ค้าง (ถ้ายังอยู่จริง) ให้ sweep จัดการ
func (s *FileServiceImpl) DeleteFile(ctx context.Context, userID, fileID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, workflowTimeout)
	defer cancel()

	file, err := s.fileRepo.GetByIDAndUserID(ctx, fileID, userID)
	if err != nil {
		// ของคนอื่นหรือไม่มีอยู่ — แยกไม่ออกโดยตั้งใจ
		logger.WarnContext(ctx, "File not found for deletion", "file_id", fileID, "user_id", userID)
		return apperrors.ErrFileNotFound
	}

	storeCtx, cancel := context.WithTimeout(ctx, storeCallTimeout)
	defer cancel()

	if err := s.storage.DeleteFile(storeCtx, file.BlobKey); err != nil {
		logger.WarnContext(ctx, "Blob delete failed, proceeding with metadata cleanup",
			"file_id", fileID, "key", file.BlobKey, "error", err)
		s.publishEvent(ctx, &ports.FileEvent{
			Type:     ports.FileEventOrphaned,
			FileID:   file.ID.String(),
			UserID:   userID.String(),
			BlobKey:  file.BlobKey,
			Occurred: time.Now().Unix(),
		})
	}

	if err := s.fileRepo.Delete(ctx, file.ID); err != nil {
		logger.ErrorContext(ctx, "File record delete failed", "file_id", fileID, "error", err)
		return fmt.Errorf("%w: %v", apperrors.ErrMetadataStore, err)
	}

	if err := s.userRepo.RemoveFileRefByBlobKey(ctx, userID, file.BlobKey); err != nil {
		logger.ErrorContext(ctx, "File ref removal failed", "file_id", fileID, "user_id", userID, "error", err)
		return fmt.Errorf("%w: %v", apperrors.ErrMetadataStore, err)
	}

	s.invalidateListCache(ctx, userID)
	s.publishEvent(ctx, &ports.FileEvent{
		Type:     ports.FileEventDeleted,
		FileID:   file.ID.String(),
		UserID:   userID.String(),
		BlobKey:  file.BlobKey,
		Occurred: time.Now().Unix(),
	})

	logger.InfoContext(ctx, "File deleted", "file_id", fileID, "user_id", userID)
	return nil
}

func (s *FileServiceImpl) invalidateListCache(ctx context.Context, userID uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}

// publishEvent best-effort — event หายไม่ทำให้ workflow พัง
func (s *FileServiceImpl) publishEvent(ctx context.Context, event *ports.FileEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishFileEvent(ctx, event); err != nil {
		logger.WarnContext(ctx, "File event publish failed", "type", event.Type, "blob_key", event.BlobKey, "error", err)
	}
}

// buildObjectKey สร้าง object key: uploads/<userID>/<uuid>-<slug><ext>
// uuid กันชนกัน, slug ทำให้ debug จาก bucket listing ง่ายขึ้น
func buildObjectKey(userID uuid.UUID, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	stem := slug.Make(strings.TrimSuffix(fileName, filepath.Ext(fileName)))
	if stem == "" {
		stem = "file"
	}
	return fmt.Sprintf("uploads/%s/%s-%s%s", userID, uuid.New(), stem, ext)
}

// resolveMimeType อ่านจาก Content-Type header ของ part, fallback เป็นนามสกุลไฟล์
// (declared type ใช้แค่ตรวจ allow-list — blob store adapter detect จริงตอนเก็บ)
func resolveMimeType(fileHeader *multipart.FileHeader) string {
	if raw := fileHeader.Header.Get("Content-Type"); raw != "" {
		if mediaType, _, err := mime.ParseMediaType(raw); err == nil {
			return strings.ToLower(mediaType)
		}
	}
	return mimeTypeFromExtension(filepath.Ext(fileHeader.Filename))
}

func mimeTypeFromExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".xls":
		return "application/vnd.ms-excel"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
