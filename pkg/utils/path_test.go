package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name kept", "photo.png", "photo.png"},
		{"path components stripped", "../../etc/passwd", "passwd"},
		{"dangerous characters replaced", `re<po>rt:"2024".pdf`, "re_po_rt__2024_.pdf"},
		{"control characters replaced", "doc\x00ume\x1fnt.txt", "doc_ume_nt.txt"},
		{"empty falls back", "", "file"},
		{"dot falls back", ".", "file"},
		{"dotdot falls back", "..", "file"},
		{"spaces trimmed", "  report.pdf  ", "report.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFileName(tt.input))
		})
	}
}
