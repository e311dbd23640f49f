package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Username string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`
	Role     string    `gorm:"default:'user'"` // user, admin
	IsActive bool      `gorm:"default:true"`

	// FileRefs คือ denormalized list ของไฟล์ที่ user เป็นเจ้าของ
	// เก็บเป็น JSONB เพื่อให้ append/remove เป็น atomic single-row update
	// source of truth จริงคือตาราง files (ดู ReconcileService)
	FileRefs FileRefList `gorm:"type:jsonb;not null;default:'[]'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}

// IsAdmin ตรวจสอบว่าเป็น admin
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
