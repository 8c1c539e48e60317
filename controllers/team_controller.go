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

func thanhVienJSON(m models.ThanhVien, locale string) gin.H {
	image := m.Image
	if locale == utils.LocaleEN && m.ImageEn != nil {
		image = m.ImageEn
	}
	return gin.H{
		"id":            m.ID,
		"name":          utils.ResolveLocale(locale, m.Name, m.NameEn),
		"nameEn":        m.NameEn,
		"title":         utils.ResolveLocale(locale, m.Title, m.TitleEn),
		"titleEn":       m.TitleEn,
		"description":   utils.ResolveLocale(locale, m.Description, m.DescriptionEn),
		"descriptionEn": m.DescriptionEn,
		"order":         m.ThuTu,
		"status":        m.TrangThai,
		"imageId":       m.ImageID,
		"imageEnId":     m.ImageEnID,
		"image":         mediaURL(image),
		"createdAt":     m.NgayTao,
	}
}

// GET /api/team?page&limit&search&status - public trả ACTIVE theo thứ tự hiển thị
func ListTeam(c *gin.Context) {
	locale := requestLocale(c)
	query := config.DB.Model(&models.ThanhVien{})

	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(name) LIKE ? OR LOWER(name_en) LIKE ?",
			"%"+strings.ToLower(search)+"%", "%"+strings.ToLower(search)+"%")
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("trang_thai = ?", status)
	} else {
		query = query.Where("trang_thai = ?", models.StatusActive)
	}

	page, limit, offset := parsePaging(c)

	var total int64
	query.Count(&total)

	var members []models.ThanhVien
	if err := query.Preload("Image").Preload("ImageEn").
		Order("thu_tu asc, id asc").Offset(offset).Limit(limit).
		Find(&members).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy danh sách đội ngũ"})
		return
	}

	items := make([]gin.H, 0, len(members))
	for _, m := range members {
		items = append(items, thanhVienJSON(m, locale))
	}
	c.JSON(http.StatusOK, gin.H{
		"team": items,
		"meta": pagingMeta(total, page, limit),
	})
}

// POST /api/team (EDITOR trở lên) - multipart form, ảnh VN/EN tuỳ chọn
func CreateTeamMember(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	name := strings.TrimSpace(c.PostForm("name"))
	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu trường bắt buộc: name"})
		return
	}
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu trường bắt buộc: title"})
		return
	}
	if description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu trường bắt buộc: description"})
		return
	}

	status := c.DefaultPostForm("status", models.StatusActive)
	if status != models.StatusActive && status != models.StatusInactive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status phải là ACTIVE hoặc INACTIVE"})
		return
	}
	order, _ := strconv.Atoi(c.DefaultPostForm("order", "0"))

	member := models.ThanhVien{
		Name:          name,
		NameEn:        c.PostForm("nameEn"),
		Title:         title,
		TitleEn:       c.PostForm("titleEn"),
		Description:   description,
		DescriptionEn: c.PostForm("descriptionEn"),
		ThuTu:         order,
		TrangThai:     status,
	}

	if fh := formImage(c, "image"); fh != nil {
		_, media, _, ok := handleImageUpload(c, fh, u.ID, "team")
		if !ok {
			return
		}
		if media != nil {
			member.ImageID = &media.ID
		}
	}
	if fh := formImage(c, "imageEn"); fh != nil {
		_, media, _, ok := handleImageUpload(c, fh, u.ID, "team")
		if !ok {
			return
		}
		if media != nil {
			member.ImageEnID = &media.ID
		}
	}

	if err := config.DB.Create(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo thành viên"})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "CREATE", "thanh_vien", member.ID, fmt.Sprintf("Tạo thành viên %q", member.Name))
	c.JSON(http.StatusCreated, gin.H{"member": member})
}

// PUT /api/team/:id (EDITOR trở lên)
func UpdateTeamMember(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var member models.ThanhVien
	if e := config.DB.First(&member, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc thành viên"})
		return
	}

	var req struct {
		Name          *string `json:"name"`
		NameEn        *string `json:"nameEn"`
		Title         *string `json:"title"`
		TitleEn       *string `json:"titleEn"`
		Description   *string `json:"description"`
		DescriptionEn *string `json:"descriptionEn"`
		Order         *int    `json:"order"`
		Status        *string `json:"status"`
		ImageID       *uint   `json:"imageId"`
		ImageEnID     *uint   `json:"imageEnId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload không hợp lệ"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name không được rỗng"})
			return
		}
		updates["name"] = *req.Name
	}
	if req.NameEn != nil {
		updates["name_en"] = *req.NameEn
	}
	if req.Title != nil {
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
	if req.Order != nil {
		updates["thu_tu"] = *req.Order
	}
	if req.Status != nil {
		if *req.Status != models.StatusActive && *req.Status != models.StatusInactive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status phải là ACTIVE hoặc INACTIVE"})
			return
		}
		updates["trang_thai"] = *req.Status
	}
	if req.ImageID != nil {
		updates["image_id"] = *req.ImageID
	}
	if req.ImageEnID != nil {
		updates["image_en_id"] = *req.ImageEnID
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không có gì để cập nhật"})
		return
	}

	if err := config.DB.Model(&member).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cập nhật thất bại"})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "UPDATE", "thanh_vien", member.ID, fmt.Sprintf("Cập nhật thành viên #%d", member.ID))
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// DELETE /api/team/:id (EDITOR trở lên)
func DeleteTeamMember(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var member models.ThanhVien
	if e := config.DB.First(&member, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Team member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc thành viên"})
		return
	}

	if err := config.DB.Delete(&member).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Xoá thất bại"})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "DELETE", "thanh_vien", member.ID, fmt.Sprintf("Xoá thành viên %q", member.Name))
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
