package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/clinic-server/models"
	"github.com/vnkhanh/clinic-server/utils"
)

// parsePaging đọc ?page=&limit= với mặc định 1/10, limit tối đa 100
func parsePaging(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset = (page - 1) * limit
	return
}

// pagingMeta dựng khối meta chuẩn {total, page, limit, totalPages}
func pagingMeta(total int64, page, limit int) gin.H {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return gin.H{
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": totalPages,
	}
}

// requestLocale đọc ?lang=, chỉ chấp nhận "en", mặc định "vi"
func requestLocale(c *gin.Context) string {
	return utils.NormalizeLocale(c.Query("lang"))
}

// uniqueSlug sinh slug từ tiêu đề, thêm hậu tố -2, -3... nếu đã tồn tại trong bảng
func uniqueSlug(db *gorm.DB, table, title, requested string) string {
	base := requested
	if base == "" {
		base = utils.Slugify(title)
	}
	if base == "" {
		base = "bai"
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		db.Table(table).Where("slug = ?", slug).Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// mediaURL trả URL của media đã preload, rỗng nếu nil
func mediaURL(m *models.Media) string {
	if m == nil {
		return ""
	}
	return m.URL
}
