package ports

import (
	"context"
	"io"
	"time"
)

// StoragePort คือ interface หลักสำหรับ blob store
// ทำให้เปลี่ยน storage provider ได้ง่าย (Local, MinIO, R2, etc.)
type StoragePort interface {
	// UploadFile อัปโหลดไฟล์ไปยัง storage
	// key: object key ที่จะเก็บไฟล์ (เช่น "uploads/<userID>/<uuid>.pdf")
	// contentType: MIME type ของไฟล์ ("" = ให้ adapter เดาเอง)
	// return: URL ที่เข้าถึงไฟล์ได้
	UploadFile(ctx context.Context, file io.Reader, key string, contentType string) (string, error)

	// DeleteFile ลบไฟล์จาก storage
	// ลบ object ที่ไม่มีอยู่แล้วต้องไม่ error (delete ซ้ำเกิดได้จาก concurrent requests)
	DeleteFile(ctx context.Context, key string) error

	// ListFiles คืน objects ทั้งหมดใต้ prefix (สำหรับ reconciliation sweep)
	ListFiles(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// GetFileURL รับ URL สำหรับเข้าถึงไฟล์
	GetFileURL(key string) string

	// GetProviderName ชื่อ provider (local, s3)
	GetProviderName() string
}

// ObjectInfo ข้อมูลของ object ใน blob store
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}
