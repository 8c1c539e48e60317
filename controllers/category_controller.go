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

// GET /api/categories
func ListCategories(c *gin.Context) {
	locale := requestLocale(c)

	var cats []models.DanhMuc
	if err := config.DB.Order("name asc").Find(&cats).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy danh mục"})
		return
	}

	items := make([]gin.H, 0, len(cats))
	for _, cat := range cats {
		items = append(items, gin.H{
			"id":        cat.ID,
			"slug":      cat.Slug,
			"name":      utils.ResolveLocale(locale, cat.Name, cat.NameEn),
			"nameEn":    cat.NameEn,
			"createdAt": cat.NgayTao,
		})
	}
	c.JSON(http.StatusOK, gin.H{"categories": items})
}

type categoryReq struct {
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	NameEn string `json:"nameEn"`
}

// POST /api/categories (EDITOR trở lên)
func CreateCategory(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload không hợp lệ"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Thiếu trường bắt buộc: name"})
		return
	}

	cat := models.DanhMuc{
		Slug:   uniqueSlug(config.DB, "danh_muc", req.Name, req.Slug),
		Name:   req.Name,
		NameEn: req.NameEn,
	}
	if err := config.DB.Create(&cat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo danh mục"})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "CREATE", "danh_muc", cat.ID, fmt.Sprintf("Tạo danh mục %q", cat.Name))
	c.JSON(http.StatusCreated, gin.H{"category": cat})
}

// PUT /api/categories/:id (EDITOR trở lên)
func UpdateCategory(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var cat models.DanhMuc
	if e := config.DB.First(&cat, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc danh mục"})
		return
	}

	var req struct {
		Name   *string `json:"name"`
		NameEn *string `json:"nameEn"`
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
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không có gì để cập nhật"})
		return
	}

	if err := config.DB.Model(&cat).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cập nhật thất bại"})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "UPDATE", "danh_muc", cat.ID, fmt.Sprintf("Cập nhật danh mục #%d", cat.ID))
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// DELETE /api/categories/:id (EDITOR trở lên) - gỡ liên kết bài viết trước khi xoá
func DeleteCategory(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var cat models.DanhMuc
	if e := config.DB.First(&cat, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc danh mục"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&cat).Association("BaiViets").Clear(); err != nil {
			return err
		}
		return tx.Delete(&cat).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Xoá thất bại"})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "DELETE", "danh_muc", cat.ID, fmt.Sprintf("Xoá danh mục %q", cat.Name))
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
