package entity

import (
	"io"
	"strings"
	"time"
)

// MaxUploadBytes bounds attachment size; it also keeps every file_size
// exactly representable as a JSON number.
const MaxUploadBytes int64 = 50 << 20

// SignedURLTTL is how long a presigned download URL stays valid.
const SignedURLTTL = time.Hour

// Attachment is the current file of a record.
type Attachment struct {
	FileURL    string    `json:"file_url"`
	FileName   string    `json:"file_name"`
	FileSize   int64     `json:"file_size"`
	FileType   string    `json:"file_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// FileUpload is an incoming file destined for object storage.
type FileUpload struct {
	Body         io.Reader
	FileName     string
	ContentType  string
	Size         int64
	BusinessArea string
	DocumentType string
	RecordID     *uint
}

// StoredFile is the outcome of an upload.
type StoredFile struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize"`
	ContentType string `json:"fileType"`
}

// DownloadLink is a presigned URL and its expiry.
type DownloadLink struct {
	URL       string    `json:"url"`
	FileName  string    `json:"fileName,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// KindForObjectKey resolves the kind from the first segment of a storage
// key such as "risks/Finance/12_1700000000000_register.xlsx".
func KindForObjectKey(key string) (Kind, bool) {
	segment, rest, found := strings.Cut(key, "/")
	if !found || rest == "" {
		return "", false
	}
	return KindBySegment(segment)
}
