package ports

import "context"

// Event types ที่ publish ออกไปหลัง workflow เปลี่ยน state
const (
	FileEventUploaded = "uploaded"
	FileEventDeleted  = "deleted"
	// orphaned = blob ถูกเขียนแล้วแต่ metadata write ล้มเหลว
	// sweep job ใช้เป็น hint สำหรับเก็บกวาด
	FileEventOrphaned = "orphaned"
)

type FileEvent struct {
	Type     string `json:"type"`
	FileID   string `json:"file_id,omitempty"`
	UserID   string `json:"user_id"`
	BlobKey  string `json:"blob_key"`
	URL      string `json:"url,omitempty"`
	Occurred int64  `json:"occurred"` // unix seconds
}

// FileEventPublisher ส่ง file lifecycle events ไปยัง out-of-band consumers
// implementation เป็น optional — ถ้าไม่มี broker ให้ข้ามไปเลย
type FileEventPublisher interface {
	PublishFileEvent(ctx context.Context, event *FileEvent) error
}
