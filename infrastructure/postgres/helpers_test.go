package postgres_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"filevault/domain/models"
	"filevault/infrastructure/postgres"
)

var (
	testDB      *gorm.DB
	testDBOnce  sync.Once
	testCleanup func()
)

// getSharedTestDatabase คืน gorm.DB ที่ต่อกับ postgres container ตัวเดียว
// ใช้ร่วมกันทุก test — แต่ละ test แยก state กันด้วย user/file ของตัวเอง
func getSharedTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	testDBOnce.Do(func() {
		ctx := context.Background()

		pgContainer, err := pgcontainer.Run(ctx,
			"postgres:18-alpine",
			pgcontainer.WithDatabase("filevault_test"),
			pgcontainer.WithUsername("testuser"),
			pgcontainer.WithPassword("testpass"),
			pgcontainer.BasicWaitStrategies(),
		)
		if err != nil {
			t.Fatalf("failed to start postgres container: %v", err)
		}

		testCleanup = func() {
			if err := testcontainers.TerminateContainer(pgContainer); err != nil {
				t.Logf("failed to terminate container: %s", err)
			}
		}

		connectionStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			testCleanup()
			t.Fatalf("failed to get connection string: %v", err)
		}

		db, err := gorm.Open(gormpg.Open(connectionStr), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			testCleanup()
			t.Fatalf("could not connect to database: %v", err)
		}

		if err := postgres.Migrate(db); err != nil {
			testCleanup()
			t.Fatalf("failed to migrate: %v", err)
		}

		testDB = db
	})

	return testDB
}

// createTestUser สร้าง user ใหม่ที่ email/username ไม่ชนกับ test อื่น
func createTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	suffix := uuid.New().String()[:8]
	user := &models.User{
		Email:    fmt.Sprintf("somchai-%s@example.com", suffix),
		Username: fmt.Sprintf("somchai%s", suffix),
		Password: "hashed-password",
	}
	assert.NoError(t, db.Create(user).Error)
	return user
}

// createTestFile แทรก file record ของ user ที่กำหนด พร้อมเวลาที่สั่งได้
func createTestFile(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, uploadedAt time.Time) *models.File {
	t.Helper()

	file := &models.File{
		UserID:     userID,
		BlobKey:    fmt.Sprintf("uploads/%s/%s-%s", userID, uuid.New(), name),
		URL:        "https://cdn.example.com/" + name,
		FileName:   name,
		FileSize:   int64(len(name)),
		MimeType:   "image/png",
		UploadedAt: uploadedAt,
	}
	assert.NoError(t, db.Create(file).Error)
	return file
}
