package utils

import (
	"fmt"
)

// DiskInfo ข้อมูลพื้นที่ disk
type DiskInfo struct {
	Total       uint64  // bytes
	Free        uint64  // bytes
	Used        uint64  // bytes
	UsedPercent float64 // %
}

// CheckDiskSpace ตรวจสอบว่ามีพื้นที่ว่างพอสำหรับ requiredBytes หรือไม่
// minFreePercent: % พื้นที่ว่างขั้นต่ำที่ต้องเหลือหลังเขียน (default: 10%)
func CheckDiskSpace(path string, requiredBytes int64, minFreePercent float64) (bool, *DiskInfo, error) {
	if minFreePercent == 0 {
		minFreePercent = 10.0
	}

	info, err := GetDiskInfo(path)
	if err != nil {
		return false, nil, err
	}

	if int64(info.Free) < requiredBytes {
		return false, info, nil
	}

	remainingFree := int64(info.Free) - requiredBytes
	remainingPercent := float64(remainingFree) / float64(info.Total) * 100
	if remainingPercent < minFreePercent {
		return false, info, nil
	}

	return true, info, nil
}

// FormatBytes แปลง bytes เป็น human-readable format
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// DiskSpaceError error สำหรับ disk space ไม่พอ
type DiskSpaceError struct {
	Required  int64
	Available uint64
}

func (e *DiskSpaceError) Error() string {
	return fmt.Sprintf("insufficient disk space: required %s, available %s",
		FormatBytes(uint64(e.Required)),
		FormatBytes(e.Available),
	)
}
