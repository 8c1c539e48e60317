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

// GET /api/users (SUPER_ADMIN)
func ListUsers(c *gin.Context) {
	page, limit, offset := parsePaging(c)

	var total int64
	config.DB.Model(&models.NguoiDung{}).Count(&total)

	var users []models.NguoiDung
	if err := config.DB.Order("id asc").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy danh sách tài khoản"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"meta":  pagingMeta(total, page, limit),
	})
}

type createUserReq struct {
	Name     string `json:"name" binding:"required,min=1"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

// POST /api/users (SUPER_ADMIN)
func CreateUser(c *gin.Context) {
	actor := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}
	if !models.IsValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role phải là EDITOR, ADMIN hoặc SUPER_ADMIN"})
		return
	}

	var count int64
	config.DB.Model(&models.NguoiDung{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Email đã tồn tại"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể mã hóa mật khẩu"})
		return
	}

	user := models.NguoiDung{
		Ten:     req.Name,
		Email:   req.Email,
		MatKhau: hash,
		VaiTro:  req.Role,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo tài khoản"})
		return
	}

	utils.GhiAuditLog(config.DB, actor.ID, "CREATE", "nguoi_dung", user.ID, fmt.Sprintf("Tạo tài khoản %s (%s)", user.Email, user.VaiTro))
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// PUT /api/users/:id (SUPER_ADMIN) - đổi tên/role/mật khẩu
func UpdateUser(c *gin.Context) {
	actor := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}

	var user models.NguoiDung
	if e := config.DB.First(&user, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc tài khoản"})
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Role     *string `json:"role"`
		Password *string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payload không hợp lệ"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["ten"] = *req.Name
	}
	if req.Role != nil {
		if !models.IsValidRole(*req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role phải là EDITOR, ADMIN hoặc SUPER_ADMIN"})
			return
		}
		updates["vai_tro"] = *req.Role
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mật khẩu tối thiểu 6 ký tự"})
			return
		}
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể mã hóa mật khẩu"})
			return
		}
		updates["mat_khau"] = hash
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không có gì để cập nhật"})
		return
	}

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cập nhật thất bại"})
		return
	}

	utils.GhiAuditLog(config.DB, actor.ID, "UPDATE", "nguoi_dung", user.ID, fmt.Sprintf("Cập nhật tài khoản %s", user.Email))
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// DELETE /api/users/:id (SUPER_ADMIN) - không cho tự xoá chính mình
func DeleteUser(c *gin.Context) {
	actor := c.MustGet(middleware.CtxUser).(models.NguoiDung)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID không hợp lệ"})
		return
	}
	if uint(id) == actor.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Không thể tự xoá tài khoản của mình"})
		return
	}

	var user models.NguoiDung
	if e := config.DB.First(&user, id).Error; e != nil {
		if errors.Is(e, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể đọc tài khoản"})
		return
	}

	if err := config.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Xoá thất bại"})
		return
	}

	utils.GhiAuditLog(config.DB, actor.ID, "DELETE", "nguoi_dung", user.ID, fmt.Sprintf("Xoá tài khoản %s", user.Email))
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
