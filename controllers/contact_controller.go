package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/clinic-server/config"
	"github.com/vnkhanh/clinic-server/middleware"
	"github.com/vnkhanh/clinic-server/models"
	"github.com/vnkhanh/clinic-server/utils"
)

// GET /api/contact - thông tin liên hệ public: dòng ACTIVE mới nhất
func GetContact(c *gin.Context) {
	locale := requestLocale(c)

	var lh models.LienHe
	err := config.DB.Where("trang_thai = ?", models.StatusActive).
		Order("ngay_cap_nhat desc").First(&lh).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy thông tin liên hệ"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"contact": gin.H{
		"id":              lh.ID,
		"phone":           lh.Phone,
		"address":         utils.ResolveLocale(locale, lh.Address, lh.AddressEn),
		"addressEn":       lh.AddressEn,
		"businessHours":   utils.ResolveLocale(locale, lh.BusinessHours, lh.BusinessHoursEn),
		"businessHoursEn": lh.BusinessHoursEn,
		"facebookUrl":     lh.FacebookURL,
		"zaloUrl":         lh.ZaloURL,
		"instagramUrl":    lh.InstagramURL,
		"appointmentLink": lh.AppointmentLink,
		"updatedAt":       lh.NgayCapNhat,
	}})
}

type contactReq struct {
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	AddressEn       string `json:"addressEn"`
	BusinessHours   string `json:"businessHours"`
	BusinessHoursEn string `json:"businessHoursEn"`
	FacebookURL     string `json:"facebookUrl"`
	ZaloURL         string `json:"zaloUrl"`
	InstagramURL    string `json:"instagramUrl"`
	AppointmentLink string `json:"appointmentLink"`
}

// PUT /api/contact (ADMIN trở lên) - upsert: ghi đè dòng ACTIVE hiện tại
// thay vì tạo bản ghi trùng
func UpsertContact(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var req contactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload không hợp lệ"})
		return
	}
	if req.Phone == "" && req.Address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cần ít nhất phone hoặc address"})
		return
	}

	var lh models.LienHe
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("trang_thai = ?", models.StatusActive).
			Order("ngay_cap_nhat desc").First(&lh).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		lh.Phone = req.Phone
		lh.Address = req.Address
		lh.AddressEn = req.AddressEn
		lh.BusinessHours = req.BusinessHours
		lh.BusinessHoursEn = req.BusinessHoursEn
		lh.FacebookURL = req.FacebookURL
		lh.ZaloURL = req.ZaloURL
		lh.InstagramURL = req.InstagramURL
		lh.AppointmentLink = req.AppointmentLink
		lh.TrangThai = models.StatusActive
		return tx.Save(&lh).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lưu thông tin liên hệ"})
		return
	}

	utils.GhiAuditLog(config.DB, u.ID, "UPDATE", "lien_he", lh.ID, "Cập nhật thông tin liên hệ")
	c.JSON(http.StatusOK, gin.H{"contact": lh})
}
