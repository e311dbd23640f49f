package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func main() {
	// Load .env
	godotenv.Load()

	endpoint := os.Getenv("S3_ENDPOINT")
	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")
	bucket := os.Getenv("S3_BUCKET")
	useSSL := os.Getenv("S3_USE_SSL") == "true"
	region := os.Getenv("S3_REGION")

	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("  FileVault Bucket Setup")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("\nEndpoint: %s\n", endpoint)
	fmt.Printf("Bucket: %s\n", bucket)
	fmt.Printf("Region: %s\n", region)

	// Create MinIO client
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	ctx := context.Background()

	// Check / create bucket
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		log.Fatalf("Failed to check bucket: %v", err)
	}
	if !exists {
		fmt.Printf("\nBucket '%s' does not exist, creating...\n", bucket)
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			log.Fatalf("Failed to create bucket: %v", err)
		}
		fmt.Printf("✓ Bucket '%s' created\n", bucket)
	} else {
		fmt.Printf("\n✓ Bucket '%s' exists\n", bucket)
	}

	// Test basic operations
	fmt.Println("\n--- Testing Basic Operations ---")

	// Test list (check read permission)
	fmt.Print("Testing ListObjects... ")
	objCh := client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: "uploads/", MaxKeys: 1})
	listOK := true
	for obj := range objCh {
		if obj.Err != nil {
			fmt.Printf("❌ Failed: %v\n", obj.Err)
			listOK = false
			break
		}
	}
	if listOK {
		fmt.Println("✓ OK")
	}

	// Test PutObject (upload permission)
	fmt.Print("Testing PutObject... ")
	testContent := []byte("test content for upload permission check")
	_, err = client.PutObject(ctx, bucket, "test/upload-test.txt",
		bytes.NewReader(testContent), int64(len(testContent)),
		minio.PutObjectOptions{ContentType: "text/plain"})
	if err != nil {
		fmt.Printf("❌ Failed: %v\n", err)
		fmt.Println("\n⚠️  Upload ไม่ทำงาน — ตรวจสอบสิทธิ์ของ Access Key:")
		fmt.Println("   - s3:PutObject (สำหรับ upload)")
		fmt.Println("   - s3:GetObject (สำหรับ download)")
		fmt.Println("   - s3:DeleteObject (สำหรับลบ)")
		fmt.Println("   - s3:ListBucket (สำหรับ orphan sweep)")
		os.Exit(1)
	}
	fmt.Println("✓ OK")

	// Test RemoveObject (delete permission — delete workflow ต้องใช้)
	fmt.Print("Testing RemoveObject... ")
	err = client.RemoveObject(ctx, bucket, "test/upload-test.txt", minio.RemoveObjectOptions{})
	if err != nil {
		fmt.Printf("❌ Failed: %v\n", err)
	} else {
		fmt.Println("✓ OK")
	}

	fmt.Println("\n═══════════════════════════════════════════════════════════════")
	fmt.Println("  Setup Complete!")
	fmt.Println("═══════════════════════════════════════════════════════════════")
}
