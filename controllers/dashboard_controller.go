package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/clinic-server/config"
	"github.com/vnkhanh/clinic-server/models"
)

// GET /api/dashboard/stats (đã đăng nhập) - số liệu tổng quan cho dashboard
func DashboardStats(c *gin.Context) {
	var totalServices, totalTeamMembers, totalMedia, totalBanners int64

	config.DB.Model(&models.DichVu{}).Count(&totalServices)
	config.DB.Model(&models.ThanhVien{}).Count(&totalTeamMembers)
	config.DB.Model(&models.Media{}).Count(&totalMedia)
	config.DB.Model(&models.Banner{}).Count(&totalBanners)

	c.JSON(http.StatusOK, gin.H{
		"totalServices":    totalServices,
		"totalTeamMembers": totalTeamMembers,
		"totalMedia":       totalMedia,
		"totalBanners":     totalBanners,
	})
}
