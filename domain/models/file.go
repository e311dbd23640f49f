package models

import (
	"time"

	"github.com/google/uuid"
)

// File คือ metadata record ของไฟล์ที่อัปโหลดแล้ว
// ไฟล์จริงอยู่ใน blob store (อ้างอิงผ่าน BlobKey)
type File struct {
	ID         uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID     uuid.UUID `gorm:"not null;index"`
	User       User      `gorm:"foreignKey:UserID"`
	BlobKey    string    `gorm:"not null;uniqueIndex"`
	URL        string    `gorm:"not null"`
	FileName   string    `gorm:"not null"`
	FileSize   int64
	MimeType   string
	UploadedAt time.Time `gorm:"not null;index"`
}

func (File) TableName() string {
	return "files"
}
