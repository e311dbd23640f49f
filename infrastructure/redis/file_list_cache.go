package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"filevault/domain/models"
	"filevault/domain/ports"
	"filevault/pkg/logger"
)

const (
	fileListKeyPrefix = "files:"
	fileListTTL       = 60 * time.Second
)

// FileListCache cache ผลลัพธ์ "list my files" ต่อ user ใน Redis
// cache error ไม่ทำให้ request พัง — fallback ไป database เสมอ
type FileListCache struct {
	client *Client
}

func NewFileListCache(client *Client) ports.FileListCache {
	return &FileListCache{client: client}
}

// cachedFile คือ subset ของ models.File ที่ serialize ลง Redis
// (ไม่เก็บ gorm association และ password ของ owner)
type cachedFile struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	BlobKey    string    `json:"blobKey"`
	URL        string    `json:"url"`
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	MimeType   string    `json:"mimeType"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func (c *FileListCache) Get(ctx context.Context, userID uuid.UUID) ([]*models.File, bool) {
	raw, err := c.client.Get(ctx, fileListKeyPrefix+userID.String())
	if err != nil {
		if err != redis.Nil {
			logger.WarnContext(ctx, "File list cache read failed", "user_id", userID, "error", err)
		}
		return nil, false
	}

	var cached []cachedFile
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		logger.WarnContext(ctx, "File list cache entry corrupted", "user_id", userID, "error", err)
		c.Invalidate(ctx, userID)
		return nil, false
	}

	files := make([]*models.File, len(cached))
	for i, cf := range cached {
		files[i] = &models.File{
			ID:         cf.ID,
			UserID:     cf.UserID,
			BlobKey:    cf.BlobKey,
			URL:        cf.URL,
			FileName:   cf.FileName,
			FileSize:   cf.FileSize,
			MimeType:   cf.MimeType,
			UploadedAt: cf.UploadedAt,
		}
	}

	return files, true
}

func (c *FileListCache) Set(ctx context.Context, userID uuid.UUID, files []*models.File) {
	cached := make([]cachedFile, len(files))
	for i, f := range files {
		cached[i] = cachedFile{
			ID:         f.ID,
			UserID:     f.UserID,
			BlobKey:    f.BlobKey,
			URL:        f.URL,
			FileName:   f.FileName,
			FileSize:   f.FileSize,
			MimeType:   f.MimeType,
			UploadedAt: f.UploadedAt,
		}
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, fileListKeyPrefix+userID.String(), data, fileListTTL); err != nil {
		logger.WarnContext(ctx, "File list cache write failed", "user_id", userID, "error", err)
	}
}

func (c *FileListCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := c.client.Del(ctx, fileListKeyPrefix+userID.String()); err != nil {
		logger.WarnContext(ctx, "File list cache invalidation failed", "user_id", userID, "error", err)
	}
}
