package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 8 byte đầu của file PNG thật
var pngHead = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func TestValidateImageSizeBoundary(t *testing.T) {
	// đúng 5MB: chấp nhận
	_, err := ValidateImage("anh.png", 5242880, pngHead)
	assert.NoError(t, err)

	// 5MB + 1 byte: từ chối
	_, err = ValidateImage("anh.png", 5242881, pngHead)
	assert.Error(t, err)
}

func TestValidateImageType(t *testing.T) {
	_, err := ValidateImage("tailieu.pdf", 1024, []byte("%PDF-1.7"))
	assert.Error(t, err)

	// đuôi hợp lệ nhưng nội dung là HTML → sniff ra text/html, từ chối
	_, err = ValidateImage("gia.png", 1024, []byte("<html><script>alert(1)</script>"))
	assert.Error(t, err)

	ct, err := ValidateImage("anh.PNG", 1024, pngHead)
	assert.NoError(t, err)
	assert.Equal(t, "image/png", ct)
}

func TestBuildObjectKey(t *testing.T) {
	t.Setenv("SUPABASE_FOLDER", "clinic")

	key := BuildObjectKey(7, "team", "bac-si.jpg")
	assert.Contains(t, key, "images/clinic/7/team/")
	assert.Contains(t, key, ".jpg")
}
