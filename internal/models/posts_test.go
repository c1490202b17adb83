package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileTypeFor(t *testing.T) {
	cases := map[string]string{
		"image/png":       FileTypeImage,
		"image/jpeg":      FileTypeImage,
		"video/mp4":       FileTypeVideo,
		"video/quicktime": FileTypeVideo,
		"application/pdf": FileTypeImage,
		"":                FileTypeImage,
	}

	for contentType, want := range cases {
		assert.Equal(t, want, FileTypeFor(contentType), contentType)
	}
}
