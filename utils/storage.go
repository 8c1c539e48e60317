package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

// Giới hạn upload 5MB
const MaxUploadSize = 5 * 1024 * 1024

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedImageMime = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ValidateImage kiểm tra kích thước, đuôi file và MIME thật (sniff từ các byte đầu).
// Trả về content type phát hiện được hoặc lỗi.
func ValidateImage(filename string, size int64, head []byte) (string, error) {
	if size > MaxUploadSize {
		return "", errors.New("File vượt quá giới hạn 5MB")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExt[ext] {
		return "", errors.New("Chỉ hỗ trợ ảnh JPG, JPEG, PNG, GIF, WEBP")
	}

	detected := http.DetectContentType(head)
	if allowedImageMime[detected] {
		return detected, nil
	}
	// Một số định dạng có thể bị nhận là octet-stream tuỳ phiên bản Go
	if detected == "application/octet-stream" && allowedImageExt[ext] {
		return detected, nil
	}
	return "", errors.New("Định dạng file không được hỗ trợ")
}

// SupabaseConfigured: cần đủ cả 4 biến mới dùng object storage, thiếu thì fallback đĩa local
func SupabaseConfigured() bool {
	return os.Getenv("SUPABASE_URL") != "" &&
		os.Getenv("SUPABASE_KEY") != "" &&
		os.Getenv("SUPABASE_BUCKET") != "" &&
		os.Getenv("SUPABASE_FOLDER") != ""
}

// BuildObjectKey tạo key dạng images/<app>/<userID>/<prefix>/<timestamp>-<id><ext>
func BuildObjectKey(userID uint, prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)
	if prefix == "" {
		prefix = "general"
	}
	return fmt.Sprintf("images/%s/%d/%s/%s", os.Getenv("SUPABASE_FOLDER"), userID, prefix, name)
}

// UploadImage upload file lên Supabase storage, hoặc ghi vào thư mục uploads local
// nếu chưa cấu hình storage. Trả về public URL và tên file đã lưu.
func UploadImage(fh *multipart.FileHeader, userID uint, prefix string, contentType string) (string, string, error) {
	if SupabaseConfigured() {
		return uploadToSupabase(fh, userID, prefix, contentType)
	}
	return uploadToLocal(fh, userID, prefix)
}

func uploadToSupabase(fh *multipart.FileHeader, userID uint, prefix string, contentType string) (string, string, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")
	bucket := os.Getenv("SUPABASE_BUCKET")

	storageClient := storage.NewClient(supabaseURL+"/storage/v1", supabaseKey, nil)

	f, err := fh.Open()
	if err != nil {
		return "", "", err
	}
	defer f.Close()
	if _, err := f.Seek(0, 0); err != nil {
		return "", "", err
	}

	if contentType == "" {
		contentType = fh.Header.Get("Content-Type")
	}

	objectPath := BuildObjectKey(userID, prefix, fh.Filename)

	upsert := true
	cacheControl := "31536000" // 1 năm, nội dung bất biến theo tên file
	options := storage.FileOptions{
		ContentType:  &contentType,
		Upsert:       &upsert,
		CacheControl: &cacheControl,
	}

	if _, err := storageClient.UploadFile(bucket, objectPath, f, options); err != nil {
		return "", "", err
	}

	publicURL := storageClient.GetPublicUrl(bucket, objectPath)
	return publicURL.SignedURL, objectPath, nil
}

func uploadToLocal(fh *multipart.FileHeader, userID uint, prefix string) (string, string, error) {
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "./uploads"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", err
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := fmt.Sprintf("%d-%d-%s%s", userID, time.Now().UnixNano(), uuid.NewString()[:8], ext)
	dst := filepath.Join(dir, name)

	src, err := fh.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", "", err
	}
	defer out.Close()

	if _, err := out.ReadFrom(src); err != nil {
		return "", "", err
	}

	return "/uploads/" + name, name, nil
}
