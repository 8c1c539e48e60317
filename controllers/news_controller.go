package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/clinic-server/config"
	"github.com/vnkhanh/clinic-server/middleware"
	"github.com/vnkhanh/clinic-server/models"
	"github.com/vnkhanh/clinic-server/utils"
)

func baiVietJSON(p models.BaiViet, locale string) gin.H {
	return gin.H{
		"id":             p.ID,
		"slug":           p.Slug,
		"title":          utils.ResolveLocale(locale, p.Title, p.TitleEn),
		"titleEn":        p.TitleEn,
		"content":        p.Content,
		"excerpt":        utils.ResolveLocalePtr(locale, p.Excerpt, ""),
		"status":         p.TrangThai,
		"featured":       p.NoiBat,
		"showOnHomepage": p.ShowOnHomepage,
		"pin":            p.Pin,
		"publishedAt":    p.PublishedAt,
		"authorId":       p.AuthorID,
		"categories":     p.DanhMucs,
		"featureImage":   mediaURL(p.FeatureImage),
		"createdAt":      p.NgayTao,
		"updatedAt":      p.NgayCapNhat,
	}
}

// GET /api/news?page&limit&search&status&categoryId
func ListNews(c *gin.Context) {
	locale := requestLocale(c)
	query := config.DB.Model(&models.BaiViet{})

	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(title) LIKE ? OR LOWER(title_en) LIKE ?",
			"%"+strings.ToLower(search)+"%", "%"+strings.ToLower(search)+"%")
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("trang_thai = ?", status)
	}
	if categoryID := c.Query("categoryId"); categoryID != "" {
		query = query.
			Joins("JOIN bai_viet_danh_muc ON bai_viet_danh_muc.bai_viet_id = bai_viet.id").
			Where("bai_viet_danh_muc.danh_muc_id = ?", categoryID)
	}

	page, limit, offset := parsePaging(c)

	var total int64
	query.Count(&total)

	var posts []models.BaiViet
	if err := query.Preload("DanhMucs").Preload("FeatureImage").
		Order("ngay_tao desc").Offset(offset).Limit(limit).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy danh sách bài viết"})
		return
	}

	items := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		items = append(items, baiVietJSON(p, locale))
	}
	c.JSON(http.StatusOK, gin.H{
		"news": items,
		"meta": pagingMeta(total, page, limit),
	})
}

// GET /api/news/by-slug/:slug - chỉ trả bài PUBLISHED
func GetNewsBySlug(c *gin.Context) {
	locale := requestLocale(c)

	var p models.BaiViet
	err := config.DB.Preload("DanhMucs").Preload("FeatureImage").
		Where("slug = ? AND trang_thai = ?", c.Param("slug"), models.StatusPublished).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy bài viết"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"news": baiVietJSON(p, locale)})
}

// GET /api/news/homepage - tối đa 3 bài, bài ghim trước, trong mỗi nhóm mới nhất trước
func HomepageNews(c *gin.Context) {
	locale := requestLocale(c)

	var posts []models.BaiViet
	if err := config.DB.Preload("DanhMucs").Preload("FeatureImage").
		Where("show_on_homepage = ? AND trang_thai = ?", true, models.StatusPublished).
		Order("pin desc, ngay_tao desc").Limit(3).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy bài viết trang chủ"})
		return
	}

	items := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		items = append(items, baiVietJSON(p, locale))
	}
	c.JSON(http.StatusOK, gin.H{"news": items})
}

// GET /api/news/featured?limit
func FeaturedNews(c *gin.Context) {
	locale := requestLocale(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if limit <= 0 || limit > models.MaxFeaturedPosts {
		limit = models.MaxFeaturedPosts
	}

	var posts []models.BaiViet
	if err := config.DB.Preload("DanhMucs").Preload("FeatureImage").
		Where("noi_bat = ? AND trang_thai = ?", true, models.StatusPublished).
		Order("ngay_tao desc").Limit(limit).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy bài viết nổi bật"})
		return
	}

	items := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		items = append(items, baiVietJSON(p, locale))
	}
	c.JSON(http.StatusOK, gin.H{"news": items})
}

type newsReq struct {
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	TitleEn        string `json:"titleEn"`
	Content        string `json:"content"`
	Excerpt        string `json:"excerpt"`
	Status         string `json:"status"`
	ShowOnHomepage *bool  `json:"showOnHomepage"`
	Pin            *bool  `json:"pin"`
	FeatureImageID *uint  `json:"featureImageId"`
	CategoryIDs    []uint `json:"categoryIds"`
}

// POST /api/news (EDITOR trở lên)
func CreateNews(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var req newsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload không hợp lệ"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu trường bắt buộc: title"})
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu trường bắt buộc: content"})
		return
	}
	if req.Status == "" {
		req.Status = models.StatusDraft
	}
	if !models.AllowedPostStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status không hợp lệ"})
		return
	}

	p := models.BaiViet{
		Slug:           uniqueSlug(config.DB, "bai_viet", req.Title, req.Slug),
		Title:          req.Title,
		TitleEn:        req.TitleEn,
		Content:        req.Content,
		Excerpt:        req.Excerpt,
		TrangThai:      req.Status,
		AuthorID:       &u.ID,
		FeatureImageID: req.FeatureImageID,
	}
	if req.ShowOnHomepage != nil {
		p.ShowOnHomepage = *req.ShowOnHomepage
	}
	if req.Pin != nil {
		p.Pin = *req.Pin
	}
	if req.Status == models.StatusPublished {
		now := time.Now()
		p.PublishedAt = &now
	}

	if len(req.CategoryIDs) > 0 {
		var cats []models.DanhMuc
		if err := config.DB.Find(&cats, req.CategoryIDs).Error; err != nil || len(cats) != len(req.CategoryIDs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "categoryIds chứa danh mục không tồn tại"})
			return
		}
		p.DanhMucs = cats
	}

	if err := config.DB.Create(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo bài viết"})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "CREATE", "bai_viet", p.ID, fmt.Sprintf("Tạo bài viết %q", p.Title))
	c.JSON(http.StatusCreated, gin.H{"news": p})
}

// PUT /api/news/:id (EDITOR trở lên)
func UpdateNews(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var p models.BaiViet
	if e := config.DB.First(&p, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc bài viết"})
		return
	}

	var req struct {
		Title          *string `json:"title"`
		TitleEn        *string `json:"titleEn"`
		Content        *string `json:"content"`
		Excerpt        *string `json:"excerpt"`
		Status         *string `json:"status"`
		ShowOnHomepage *bool   `json:"showOnHomepage"`
		Pin            *bool   `json:"pin"`
		FeatureImageID *uint   `json:"featureImageId"`
		CategoryIDs    *[]uint `json:"categoryIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload không hợp lệ"})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title không được rỗng"})
			return
		}
		updates["title"] = *req.Title
	}
	if req.TitleEn != nil {
		updates["title_en"] = *req.TitleEn
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.Status != nil {
		if !models.AllowedPostStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status không hợp lệ"})
			return
		}
		updates["trang_thai"] = *req.Status
		if *req.Status == models.StatusPublished && p.PublishedAt == nil {
			updates["published_at"] = time.Now()
		}
	}
	if req.ShowOnHomepage != nil {
		updates["show_on_homepage"] = *req.ShowOnHomepage
	}
	if req.Pin != nil {
		updates["pin"] = *req.Pin
	}
	if req.FeatureImageID != nil {
		updates["feature_image_id"] = *req.FeatureImageID
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&p).Updates(updates).Error; err != nil {
				return err
			}
		}
		if req.CategoryIDs != nil {
			var cats []models.DanhMuc
			if len(*req.CategoryIDs) > 0 {
				if err := tx.Find(&cats, *req.CategoryIDs).Error; err != nil {
					return err
				}
			}
			if err := tx.Model(&p).Association("DanhMucs").Replace(cats); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cập nhật thất bại"})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "UPDATE", "bai_viet", p.ID, fmt.Sprintf("Cập nhật bài viết #%d", p.ID))
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// DELETE /api/news/:id (EDITOR trở lên)
func DeleteNews(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var p models.BaiViet
	if e := config.DB.First(&p, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc bài viết"})
		return
	}

	if err := config.DB.Select("DanhMucs").Delete(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Xoá thất bại"})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "DELETE", "bai_viet", p.ID, fmt.Sprintf("Xoá bài viết %q", p.Title))
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// PUT /api/news/:id/featured (EDITOR trở lên) - bật/tắt bài nổi bật.
// Bật chỉ thành công khi đang có dưới MaxFeaturedPosts bài nổi bật. Check và
// ghi chạy trong một transaction có khoá ghi trên nhóm bài nổi bật, nên hai
// request bật đồng thời phải xếp hàng và không thể vượt trần.
func ToggleFeaturedNews(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var p models.BaiViet
	if e := config.DB.First(&p, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc bài viết"})
		return
	}

	if p.NoiBat {
		// true -> false luôn được phép
		if err := config.DB.Model(&p).Update("noi_bat", false).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Cập nhật thất bại"})
			return
		}
		utils.GhiAuditLog(config.DB, u.ID, "TOGGLE_FEATURED", "bai_viet", p.ID, "Bỏ nổi bật")
		c.JSON(http.StatusOK, gin.H{"featured": false})
		return
	}

	var capped bool
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// Chạm vào các bài đang nổi bật trước để giữ khoá ghi trên cả nhóm
		// tới khi commit. Ở READ COMMITTED, hai câu UPDATE có subquery đếm
		// chạy song song đều thấy snapshot cũ và cùng qua được check < 5;
		// khoá này buộc request sau chờ, và câu đếm của nó (statement mới,
		// snapshot mới) thấy trạng thái đã commit của request trước.
		if err := tx.Exec("UPDATE bai_viet SET noi_bat = noi_bat WHERE noi_bat = ?", true).Error; err != nil {
			return err
		}
		res := tx.Exec(
			"UPDATE bai_viet SET noi_bat = ? WHERE id = ? AND (SELECT COUNT(*) FROM bai_viet WHERE noi_bat = ? AND id <> ?) < ?",
			true, p.ID, true, p.ID, models.MaxFeaturedPosts,
		)
		if res.Error != nil {
			return res.Error
		}
		capped = res.RowsAffected == 0
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cập nhật thất bại"})
		return
	}
	if capped {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("Đã đạt giới hạn %d bài nổi bật", models.MaxFeaturedPosts),
		})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "TOGGLE_FEATURED", "bai_viet", p.ID, "Đặt nổi bật")
	c.JSON(http.StatusOK, gin.H{"featured": true})
}
