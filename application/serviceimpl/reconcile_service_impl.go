package serviceimpl

import (
	"context"
	"time"

	"github.com/google/uuid"

	"filevault/domain/models"
	"filevault/domain/ports"
	"filevault/domain/repositories"
	"filevault/domain/services"
	"filevault/pkg/logger"
	"filevault/pkg/scheduler"
)

// sweepPrefix คือ prefix ใน blob store ที่ upload workflow เขียนลง
const sweepPrefix = "uploads/"

// sweep รันจาก background ไม่มี request deadline มาคุม — ใส่เองกันค้างข้ามวัน
const sweepTimeout = 15 * time.Minute

type ReconcileConfig struct {
	Cron        string        // default: ตีสามทุกวัน
	GraceWindow time.Duration // ไม่แตะ object ที่ใหม่กว่านี้
}

// ReconcileServiceImpl เก็บกวาด drift ระหว่าง blob store กับ metadata store:
// blob ที่ไม่มี FileRecord (เกิดจาก upload ที่ metadata write ล้ม หรือ delete
// ที่ blob delete ล้ม แล้ว retry สำเร็จฝั่งเดียว) และ file_refs ที่หลุด sync
type ReconcileServiceImpl struct {
	config    ReconcileConfig
	fileRepo  repositories.FileRepository
	userRepo  repositories.UserRepository
	storage   ports.StoragePort
	scheduler scheduler.EventScheduler
}

var _ services.ReconcileService = (*ReconcileServiceImpl)(nil)

func NewReconcileService(
	config ReconcileConfig,
	fileRepo repositories.FileRepository,
	userRepo repositories.UserRepository,
	storage ports.StoragePort,
	eventScheduler scheduler.EventScheduler,
) services.ReconcileService {
	if config.Cron == "" {
		config.Cron = "0 3 * * *"
	}
	if config.GraceWindow == 0 {
		config.GraceWindow = time.Hour
	}

	return &ReconcileServiceImpl{
		config:    config,
		fileRepo:  fileRepo,
		userRepo:  userRepo,
		storage:   storage,
		scheduler: eventScheduler,
	}
}

// RegisterSweepJob ลงตาราง sweep กับ scheduler
func (s *ReconcileServiceImpl) RegisterSweepJob() error {
	return s.scheduler.AddJob("orphaned_blob_sweep", s.config.Cron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		deleted, err := s.SweepOrphanedBlobs(ctx)
		if err != nil {
			logger.Error("Orphaned blob sweep failed", "error", err)
			return
		}
		logger.Info("Orphaned blob sweep completed", "deleted", deleted)
	})
}

// SweepOrphanedBlobs ลบ blob ที่ไม่มี FileRecord คู่กัน
// เว้น object ที่อายุน้อยกว่า grace window — อาจเป็น upload ที่กำลังวิ่งอยู่
// (blob เขียนเสร็จแล้วแต่ metadata ยังไม่ commit)
func (s *ReconcileServiceImpl) SweepOrphanedBlobs(ctx context.Context) (int, error) {
	objects, err := s.storage.ListFiles(ctx, sweepPrefix)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-s.config.GraceWindow)
	deleted := 0

	for _, obj := range objects {
		if obj.LastModified.After(cutoff) {
			continue
		}

		exists, err := s.fileRepo.ExistsByBlobKey(ctx, obj.Key)
		if err != nil {
			logger.WarnContext(ctx, "Sweep record lookup failed, skipping object", "key", obj.Key, "error", err)
			continue
		}
		if exists {
			continue
		}

		if err := s.storage.DeleteFile(ctx, obj.Key); err != nil {
			logger.WarnContext(ctx, "Sweep blob delete failed", "key", obj.Key, "error", err)
			continue
		}

		logger.InfoContext(ctx, "Orphaned blob reclaimed", "key", obj.Key, "size", obj.Size)
		deleted++
	}

	return deleted, nil
}

// RebuildFileRefs สร้าง file_refs ของ user ใหม่จากตาราง files (source of truth)
func (s *ReconcileServiceImpl) RebuildFileRefs(ctx context.Context, userID uuid.UUID) error {
	files, err := s.fileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	refs := make(models.FileRefList, len(files))
	for i, f := range files {
		refs[i] = models.FileRef{
			BlobKey:  f.BlobKey,
			URL:      f.URL,
			FileName: f.FileName,
		}
	}

	if err := s.userRepo.ReplaceFileRefs(ctx, userID, refs); err != nil {
		return err
	}

	logger.InfoContext(ctx, "File refs rebuilt", "user_id", userID, "count", len(refs))
	return nil
}

// RebuildAllFileRefs ทำ RebuildFileRefs ให้ user ทุกคน
func (s *ReconcileServiceImpl) RebuildAllFileRefs(ctx context.Context) error {
	ids, err := s.userRepo.ListIDs(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := s.RebuildFileRefs(ctx, id); err != nil {
			logger.WarnContext(ctx, "File ref rebuild failed for user", "user_id", id, "error", err)
		}
	}

	return nil
}
