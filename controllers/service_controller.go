package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/clinic-server/config"
	"github.com/vnkhanh/clinic-server/middleware"
	"github.com/vnkhanh/clinic-server/models"
	"github.com/vnkhanh/clinic-server/utils"
)

// dichVuJSON serialize dịch vụ với nội dung đã resolve theo locale.
// Các trường ...En vẫn trả về nguyên bản để admin form sửa được cả hai ngôn ngữ.
func dichVuJSON(s models.DichVu, locale string) gin.H {
	image := s.FeatureImage
	if locale == utils.LocaleEN && s.FeatureImageEn != nil {
		image = s.FeatureImageEn
	}
	return gin.H{
		"id":                 s.ID,
		"slug":               s.Slug,
		"title":              utils.ResolveLocale(locale, s.Title, s.TitleEn),
		"titleEn":            s.TitleEn,
		"description":        utils.ResolveLocale(locale, s.Description, s.DescriptionEn),
		"descriptionEn":      s.DescriptionEn,
		"shortDescription":   utils.ResolveLocalePtr(locale, s.ShortDescription, s.ShortDescriptionEn),
		"shortDescriptionEn": s.ShortDescriptionEn,
		"status":             s.TrangThai,
		"showOnHomepage":     s.ShowOnHomepage,
		"featureImageId":     s.FeatureImageID,
		"featureImageEnId":   s.FeatureImageEnID,
		"featureImage":       mediaURL(image),
		"createdAt":          s.NgayTao,
		"updatedAt":          s.NgayCapNhat,
	}
}

// GET /api/services?page&limit&search&status
func ListServices(c *gin.Context) {
	locale := requestLocale(c)
	query := config.DB.Model(&models.DichVu{})

	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(title) LIKE ? OR LOWER(title_en) LIKE ?",
			"%"+strings.ToLower(search)+"%", "%"+strings.ToLower(search)+"%")
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("trang_thai = ?", status)
	}

	page, limit, offset := parsePaging(c)

	var total int64
	query.Count(&total)

	var services []models.DichVu
	if err := query.Preload("FeatureImage").Preload("FeatureImageEn").
		Order("ngay_tao desc").Offset(offset).Limit(limit).
		Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy danh sách dịch vụ"})
		return
	}

	items := make([]gin.H, 0, len(services))
	for _, s := range services {
		items = append(items, dichVuJSON(s, locale))
	}

	c.JSON(http.StatusOK, gin.H{
		"services": items,
		"meta":     pagingMeta(total, page, limit),
	})
}

// GET /api/services/by-slug/:slug - chỉ trả dịch vụ PUBLISHED
func GetServiceBySlug(c *gin.Context) {
	locale := requestLocale(c)

	var s models.DichVu
	err := config.DB.Preload("FeatureImage").Preload("FeatureImageEn").
		Where("slug = ? AND trang_thai = ?", c.Param("slug"), models.StatusPublished).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy dịch vụ"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"service": dichVuJSON(s, locale)})
}

// GET /api/services/homepage - tối đa 4 dịch vụ PUBLISHED gắn cờ trang chủ, mới nhất trước
func HomepageServices(c *gin.Context) {
	locale := requestLocale(c)

	var services []models.DichVu
	if err := config.DB.Preload("FeatureImage").Preload("FeatureImageEn").
		Where("show_on_homepage = ? AND trang_thai = ?", true, models.StatusPublished).
		Order("ngay_tao desc").Limit(4).
		Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy dịch vụ trang chủ"})
		return
	}

	items := make([]gin.H, 0, len(services))
	for _, s := range services {
		items = append(items, dichVuJSON(s, locale))
	}
	c.JSON(http.StatusOK, gin.H{"services": items})
}

type serviceReq struct {
	Slug               string `json:"slug"`
	Title              string `json:"title"`
	TitleEn            string `json:"titleEn"`
	Description        string `json:"description"`
	DescriptionEn      string `json:"descriptionEn"`
	ShortDescription   string `json:"shortDescription"`
	ShortDescriptionEn string `json:"shortDescriptionEn"`
	Status             string `json:"status"`
	ShowOnHomepage     *bool  `json:"showOnHomepage"`
	FeatureImageID     *uint  `json:"featureImageId"`
	FeatureImageEnID   *uint  `json:"featureImageEnId"`
}

// POST /api/services (EDITOR trở lên)
func CreateService(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var req serviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload không hợp lệ"})
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu trường bắt buộc: title"})
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu trường bắt buộc: description"})
		return
	}
	if req.Status == "" {
		req.Status = models.StatusDraft
	}
	if !models.AllowedServiceStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status phải là DRAFT hoặc PUBLISHED"})
		return
	}

	s := models.DichVu{
		Slug:               uniqueSlug(config.DB, "dich_vu", req.Title, req.Slug),
		Title:              req.Title,
		TitleEn:            req.TitleEn,
		Description:        req.Description,
		DescriptionEn:      req.DescriptionEn,
		ShortDescription:   req.ShortDescription,
		ShortDescriptionEn: req.ShortDescriptionEn,
		TrangThai:          req.Status,
		FeatureImageID:     req.FeatureImageID,
		FeatureImageEnID:   req.FeatureImageEnID,
	}
	if req.ShowOnHomepage != nil {
		s.ShowOnHomepage = *req.ShowOnHomepage
	}

	if err := config.DB.Create(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo dịch vụ"})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "CREATE", "dich_vu", s.ID, fmt.Sprintf("Tạo dịch vụ %q", s.Title))
	c.JSON(http.StatusCreated, gin.H{"service": s})
}

// PUT /api/services/:id (EDITOR trở lên) - cập nhật từng phần
func UpdateService(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var s models.DichVu
	if e := config.DB.First(&s, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc dịch vụ"})
		return
	}

	var req struct {
		Title              *string `json:"title"`
		TitleEn            *string `json:"titleEn"`
		Description        *string `json:"description"`
		DescriptionEn      *string `json:"descriptionEn"`
		ShortDescription   *string `json:"shortDescription"`
		ShortDescriptionEn *string `json:"shortDescriptionEn"`
		Status             *string `json:"status"`
		ShowOnHomepage     *bool   `json:"showOnHomepage"`
		FeatureImageID     *uint   `json:"featureImageId"`
		FeatureImageEnID   *uint   `json:"featureImageEnId"`
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
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DescriptionEn != nil {
		updates["description_en"] = *req.DescriptionEn
	}
	if req.ShortDescription != nil {
		updates["short_description"] = *req.ShortDescription
	}
	if req.ShortDescriptionEn != nil {
		updates["short_description_en"] = *req.ShortDescriptionEn
	}
	if req.Status != nil {
		if !models.AllowedServiceStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status phải là DRAFT hoặc PUBLISHED"})
			return
		}
		updates["trang_thai"] = *req.Status
	}
	if req.ShowOnHomepage != nil {
		updates["show_on_homepage"] = *req.ShowOnHomepage
	}
	if req.FeatureImageID != nil {
		updates["feature_image_id"] = *req.FeatureImageID
	}
	if req.FeatureImageEnID != nil {
		updates["feature_image_en_id"] = *req.FeatureImageEnID
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không có gì để cập nhật"})
		return
	}

	if err := config.DB.Model(&s).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cập nhật thất bại"})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "UPDATE", "dich_vu", s.ID, fmt.Sprintf("Cập nhật dịch vụ #%d", s.ID))
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// DELETE /api/services/:id (EDITOR trở lên). Media liên quan được giữ lại.
func DeleteService(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var s models.DichVu
	if e := config.DB.First(&s, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc dịch vụ"})
		return
	}

	if err := config.DB.Delete(&s).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Xoá thất bại"})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "DELETE", "dich_vu", s.ID, fmt.Sprintf("Xoá dịch vụ %q", s.Title))
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
