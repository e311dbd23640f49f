package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// FileRef คือ cache entry ใน profile ของ user (subset ของ File)
type FileRef struct {
	BlobKey  string `json:"blobKey"`
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

// FileRefList เก็บใน column jsonb ของตาราง users
type FileRefList []FileRef

func (l FileRefList) Value() (driver.Value, error) {
	if l == nil {
		l = FileRefList{}
	}
	return json.Marshal(l)
}

func (l *FileRefList) Scan(value any) error {
	if value == nil {
		*l = FileRefList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FileRefList", value)
	}

	return json.Unmarshal(data, l)
}
