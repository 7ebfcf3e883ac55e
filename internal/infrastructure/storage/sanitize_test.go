package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "report.pdf", "report.pdf"},
		{"spaces collapse", "Quarterly   Report (v2).pdf", "Quarterly_Report_v2_.pdf"},
		{"accents folded", "Résumé-Çà.docx", "Resume-Ca.docx"},
		{"path stripped", "../../etc/passwd", "passwd"},
		{"windows path stripped", `C:\Users\me\plan.xlsx`, "plan.xlsx"},
		{"only symbols", "###", "file"},
		{"empty", "", "file"},
		{"leading dots trimmed", "..hidden", "hidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFileName(tt.in))
		})
	}
}

func TestSanitizeFileName_CapsLengthAndKeepsExtension(t *testing.T) {
	got := SanitizeFileName(strings.Repeat("a", 300) + ".pdf")

	assert.LessOrEqual(t, len(got), maxFileNameBytes)
	assert.True(t, strings.HasSuffix(got, ".pdf"))
}
