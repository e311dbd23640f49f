package services

import (
	"context"

	"github.com/google/uuid"
)

// ReconcileService เก็บกวาดความไม่ consistent ระหว่าง blob store กับ metadata store
// upload workflow ยอมให้เกิด orphaned blob ได้ (ดู FileService) — ตัวนี้คือฝั่งเก็บกวาด
type ReconcileService interface {
	// SweepOrphanedBlobs ลบ blob ที่ไม่มี FileRecord คู่กัน
	// คืนจำนวน object ที่ลบไป
	SweepOrphanedBlobs(ctx context.Context) (int, error)

	// RebuildFileRefs สร้าง file_refs ของ user ใหม่จากตาราง files
	RebuildFileRefs(ctx context.Context, userID uuid.UUID) error

	// RebuildAllFileRefs ทำ RebuildFileRefs ให้ user ทุกคน
	RebuildAllFileRefs(ctx context.Context) error

	// RegisterSweepJob ลงตาราง sweep กับ scheduler ตาม cron จาก config
	RegisterSweepJob() error
}
