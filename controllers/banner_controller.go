package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/clinic-server/config"
	"github.com/vnkhanh/clinic-server/middleware"
	"github.com/vnkhanh/clinic-server/models"
	"github.com/vnkhanh/clinic-server/utils"
)

// GET /api/banners (ADMIN trở lên) - danh sách đầy đủ cho dashboard
func ListBanners(c *gin.Context) {
	var banners []models.Banner
	if err := config.DB.Preload("Image").Order("type asc").Find(&banners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy danh sách banner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

// GET /api/banners/public?type= - chỉ banner ACTIVE, cho trang marketing
func PublicBanners(c *gin.Context) {
	query := config.DB.Preload("Image").Where("trang_thai = ?", models.StatusActive)

	if t := c.Query("type"); t != "" {
		if !models.AllowedBannerType(t) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "type không hợp lệ"})
			return
		}
		query = query.Where("type = ?", t)
	}

	var banners []models.Banner
	if err := query.Order("type asc").Find(&banners).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy banner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

type bannerReq struct {
	Type    string `json:"type"`
	Link    string `json:"link"`
	Status  string `json:"status"`
	ImageID *uint  `json:"imageId"`
}

// POST /api/banners (ADMIN trở lên) - upsert theo type: mỗi loại tối đa một banner
func CreateBanner(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var req bannerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload không hợp lệ"})
		return
	}
	if !models.AllowedBannerType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type phải là HOMEPAGE, SERVICE, NEWS hoặc ABOUT"})
		return
	}
	if req.Status == "" {
		req.Status = models.StatusActive
	}
	if req.Status != models.StatusActive && req.Status != models.StatusInactive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status phải là ACTIVE hoặc INACTIVE"})
		return
	}

	var banner models.Banner
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("type = ?", req.Type).First(&banner).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		banner.Type = req.Type
		banner.Link = req.Link
		banner.TrangThai = req.Status
		banner.ImageID = req.ImageID
		return tx.Save(&banner).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lưu banner"})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "CREATE", "banner", banner.ID, fmt.Sprintf("Upsert banner %s", banner.Type))
	c.JSON(http.StatusCreated, gin.H{"banner": banner})
}

// PUT /api/banners/:id (ADMIN trở lên)
func UpdateBanner(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var banner models.Banner
	if e := config.DB.First(&banner, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc banner"})
		return
	}

	var req struct {
		Link    *string `json:"link"`
		Status  *string `json:"status"`
		ImageID *uint   `json:"imageId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload không hợp lệ"})
		return
	}

	updates := map[string]interface{}{}
	if req.Link != nil {
		updates["link"] = *req.Link
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
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không có gì để cập nhật"})
		return
	}

	if err := config.DB.Model(&banner).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cập nhật thất bại"})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "UPDATE", "banner", banner.ID, fmt.Sprintf("Cập nhật banner %s", banner.Type))
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// DELETE /api/banners/:id (ADMIN trở lên)
func DeleteBanner(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var banner models.Banner
	if e := config.DB.First(&banner, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc banner"})
		return
	}

	if err := config.DB.Delete(&banner).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Xoá thất bại"})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "DELETE", "banner", banner.ID, fmt.Sprintf("Xoá banner %s", banner.Type))
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
