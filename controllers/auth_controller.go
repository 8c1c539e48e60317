package controllers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"google.golang.org/api/idtoken"

	"github.com/vnkhanh/clinic-server/config"
	"github.com/vnkhanh/clinic-server/middleware"
	"github.com/vnkhanh/clinic-server/models"
	"github.com/vnkhanh/clinic-server/utils"
)

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	var user models.NguoiDung
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Email hoặc mật khẩu không đúng"})
		return
	}
	if !utils.CheckPassword(user.MatKhau, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Email hoặc mật khẩu không đúng"})
		return
	}

	issueSession(c, user)
}

type googleLoginReq struct {
	IDToken string `json:"id_token" binding:"required"`
}

// POST /api/auth/google/login - đăng nhập bằng Google cho tài khoản nhân viên
// đã tồn tại. Không tự tạo tài khoản mới.
func GoogleLoginHandler(c *gin.Context) {
	var req googleLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Payload không hợp lệ", "error": err.Error()})
		return
	}

	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	if clientID == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Google login chưa được cấu hình"})
		return
	}

	payload, err := idtoken.Validate(c.Request.Context(), req.IDToken, clientID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Google token không hợp lệ"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Google token không có email"})
		return
	}

	var user models.NguoiDung
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Tài khoản chưa được cấp quyền truy cập"})
		return
	}

	issueSession(c, user)
}

func issueSession(c *gin.Context, user models.NguoiDung) {
	token, err := utils.GenerateToken(fmt.Sprintf("%d", user.ID), user.VaiTro)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể tạo phiên đăng nhập"})
		return
	}

	// Cookie httpOnly cho dashboard, token trong body cho client dùng Bearer
	c.SetCookie(middleware.TokenCookie, token, int(utils.SessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// GET /api/me
func Me(c *gin.Context) {
	u := c.MustGet(middleware.CtxUser).(models.NguoiDung)
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// POST /api/auth/logout - idempotent, chỉ xoá cookie phía server
func Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Đã đăng xuất"})
}
