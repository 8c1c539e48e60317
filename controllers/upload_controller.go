package controllers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/clinic-server/config"
	"github.com/vnkhanh/clinic-server/middleware"
	"github.com/vnkhanh/clinic-server/models"
	"github.com/vnkhanh/clinic-server/utils"
)

// handleImageUpload validate + upload một file ảnh và ghi Media row.
// Ghi metadata là best-effort: nếu insert DB lỗi sau khi upload đã thành công
// thì vẫn trả URL kèm warning thay vì fail cả request.
// Tự trả JSON lỗi khi thất bại; trả ok=false trong trường hợp đó.
func handleImageUpload(c *gin.Context, fh *multipart.FileHeader, userID uint, prefix string) (url string, media *models.Media, warning string, ok bool) {
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không đọc được file"})
		return "", nil, "", false
	}
	head := make([]byte, 512)
	n, _ := f.Read(head)
	f.Close()

	contentType, err := utils.ValidateImage(fh.Filename, fh.Size, head[:n])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", nil, "", false
	}

	url, fileName, err := utils.UploadImage(fh, userID, prefix, contentType)
	if err != nil {
		log.Printf("upload ảnh thất bại: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Không thể lưu file"})
		return "", nil, "", false
	}

	m := models.Media{
		URL:          url,
		FileName:     fileName,
		OriginalName: fh.Filename,
		FileType:     contentType,
		FileSize:     fh.Size,
	}
	// Chỉ link uploadedById khi user còn tồn tại (phòng session cũ trỏ vào user đã xoá)
	var count int64
	config.DB.Model(&models.NguoiDung{}).Where("id = ?", userID).Count(&count)
	if count > 0 {
		m.UploadedByID = &userID
	}

	if err := config.DB.Create(&m).Error; err != nil {
		log.Printf("ghi media metadata thất bại: %v", err)
		return url, nil, "Upload thành công nhưng không lưu được metadata", true
	}
	return url, &m, "", true
}

// POST /api/upload_image và POST /api/media/upload (EDITOR trở lên, multipart)
func UploadImage(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không nhận được file"})
		return
	}

	prefix := c.DefaultPostForm("prefix", "general")

	url, media, warning, ok := handleImageUpload(c, fh, u.ID, prefix)
	if !ok {
		return
	}

	resp := gin.H{"url": url}
	if media != nil {
		resp["mediaId"] = media.ID
	}
	if warning != "" {
		resp["warning"] = warning
	}

	utils.GhiAuditLog(config.DB, u.ID, "UPLOAD", "media", mediaID(media), fmt.Sprintf("Upload %q", fh.Filename))
	c.JSON(http.StatusOK, resp)
}

func mediaID(m *models.Media) uint {
	if m == nil {
		return 0
	}
	return m.ID
}

// GET /api/media?page&limit&search (EDITOR trở lên)
func ListMedia(c *gin.Context) {
	query := config.DB.Model(&models.Media{})

	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(original_name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	page, limit, offset := parsePaging(c)

	var total int64
	query.Count(&total)

	var media []models.Media
	if err := query.Order("ngay_tao desc").Offset(offset).Limit(limit).Find(&media).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy danh sách media"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"media": media,
		"meta":  pagingMeta(total, page, limit),
	})
}

// DELETE /api/media/:id (ADMIN trở lên). Xoá row + best-effort xoá file local;
// object trên storage ngoài được giữ lại (chính sách retain).
func DeleteMedia(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var m models.Media
	if e := config.DB.First(&m, id).Error; e != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Media not found"})
		return
	}

	if err := config.DB.Delete(&m).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Xoá thất bại"})
		return
	}

	if strings.HasPrefix(m.URL, "/uploads/") {
		dir := os.Getenv("UPLOAD_DIR")
		if dir == "" {
			dir = "./uploads"
		}
		if err := os.Remove(filepath.Join(dir, m.FileName)); err != nil {
			log.Printf("xoá file local %s thất bại: %v", m.FileName, err)
		}
	}

	utils.GhiAuditLog(config.DB, u.ID, "DELETE", "media", m.ID, fmt.Sprintf("Xoá media %q", m.OriginalName))
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// formImage lấy file tuỳ chọn từ multipart form, nil nếu không gửi
func formImage(c *gin.Context, field string) *multipart.FileHeader {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return fh
}
