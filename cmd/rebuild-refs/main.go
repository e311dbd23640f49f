package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"filevault/application/serviceimpl"
	"filevault/infrastructure/postgres"
	"filevault/pkg/config"

	"github.com/google/uuid"
)

// เครื่องมือซ่อม file_refs ที่หลุด sync จากตาราง files (source of truth)
// ใช้: go run ./cmd/rebuild-refs [user-id]
// ไม่ระบุ user-id = rebuild ทุก user
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.NewDatabase(postgres.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	fileRepo := postgres.NewFileRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// sweep ไม่เกี่ยวกับ tool นี้ — ไม่ต้องมี storage/scheduler
	svc := serviceimpl.NewReconcileService(serviceimpl.ReconcileConfig{}, fileRepo, userRepo, nil, nil)

	ctx := context.Background()

	if len(os.Args) > 1 {
		userID, err := uuid.Parse(os.Args[1])
		if err != nil {
			log.Fatalf("Invalid user id %q: %v", os.Args[1], err)
		}
		if err := svc.RebuildFileRefs(ctx, userID); err != nil {
			log.Fatalf("Rebuild failed: %v", err)
		}
		fmt.Printf("✓ File refs rebuilt for user %s\n", userID)
		return
	}

	if err := svc.RebuildAllFileRefs(ctx); err != nil {
		log.Fatalf("Rebuild failed: %v", err)
	}
	fmt.Println("✓ File refs rebuilt for all users")
}
