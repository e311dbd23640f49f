package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filevault/domain/ports"
	"filevault/pkg/utils"
)

// LocalStorage implements StoragePort สำหรับเก็บไฟล์ใน local filesystem
// ใช้สำหรับ development — production ใช้ S3Storage
type LocalStorage struct {
	basePath string // เส้นทางหลักที่เก็บไฟล์ (เช่น ./uploads)
	baseURL  string // URL สำหรับเข้าถึงไฟล์ (เช่น http://localhost:8080/files)
}

type LocalStorageConfig struct {
	BasePath string
	BaseURL  string
}

// NewLocalStorage สร้าง LocalStorage instance
func NewLocalStorage(config LocalStorageConfig) (ports.StoragePort, error) {
	if err := os.MkdirAll(config.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: config.BasePath,
		baseURL:  strings.TrimSuffix(config.BaseURL, "/"),
	}, nil
}

// UploadFile เขียนไฟล์ลง local filesystem
func (l *LocalStorage) UploadFile(ctx context.Context, file io.Reader, key string, contentType string) (string, error) {
	key = normalizeKey(key)
	fullPath := filepath.Join(l.basePath, key)

	// กันเขียนจน disk เต็ม (ประมาณจากพื้นที่ที่เหลือ ไม่รู้ขนาดไฟล์ล่วงหน้า)
	if ok, info, err := utils.CheckDiskSpace(l.basePath, 0, 5.0); err == nil && !ok {
		return "", &utils.DiskSpaceError{Required: 0, Available: info.Free}
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		// ลบไฟล์ที่เขียนไม่สำเร็จ
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return l.GetFileURL(key), nil
}

// DeleteFile ลบไฟล์จาก local filesystem
// ไฟล์ที่ไม่มีอยู่แล้วถือว่าสำเร็จ
func (l *LocalStorage) DeleteFile(ctx context.Context, key string) error {
	key = normalizeKey(key)
	fullPath := filepath.Join(l.basePath, key)

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	l.cleanupEmptyDirs(filepath.Dir(fullPath))

	return nil
}

// ListFiles เดิน directory tree ใต้ prefix
func (l *LocalStorage) ListFiles(ctx context.Context, prefix string) ([]ports.ObjectInfo, error) {
	prefix = normalizeKey(prefix)
	root := filepath.Join(l.basePath, prefix)

	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil, nil
	}

	var objects []ports.ObjectInfo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(l.basePath, path)
		if err != nil {
			return err
		}

		objects = append(objects, ports.ObjectInfo{
			Key:          strings.ReplaceAll(rel, string(filepath.Separator), "/"),
			Size:         info.Size(),
			LastModified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk storage directory: %w", err)
	}

	return objects, nil
}

// GetFileURL สร้าง URL สำหรับเข้าถึงไฟล์
func (l *LocalStorage) GetFileURL(key string) string {
	key = normalizeKey(key)
	return l.baseURL + "/" + key
}

func (l *LocalStorage) GetProviderName() string {
	return "local"
}

// cleanupEmptyDirs ลบ directory ว่างไล่ขึ้นไปจนถึง basePath
func (l *LocalStorage) cleanupEmptyDirs(dir string) {
	base, err := filepath.Abs(l.basePath)
	if err != nil {
		return
	}

	for {
		abs, err := filepath.Abs(dir)
		if err != nil || abs == base || !strings.HasPrefix(abs, base) {
			return
		}

		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}

		if err := os.Remove(dir); err != nil {
			return
		}

		dir = filepath.Dir(dir)
	}
}
