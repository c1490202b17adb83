package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	FileTypeImage = "image"
	FileTypeVideo = "video"
)

// Post is one uploaded media item. A row exists only for uploads the media
// host accepted; id and created_at are assigned by the application.
type Post struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Caption   string    `db:"caption" json:"caption"`
	URL       string    `db:"url" json:"url"`
	FileType  string    `db:"file_type" json:"file_type"`
	FileName  string    `db:"file_name" json:"file_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FileTypeFor classifies an upload by its declared content type.
func FileTypeFor(contentType string) string {
	if strings.HasPrefix(contentType, "video") {
		return FileTypeVideo
	}
	return FileTypeImage
}
