package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/clinic-server/config"
	"github.com/vnkhanh/clinic-server/models"
	"github.com/vnkhanh/clinic-server/utils"
)

const (
	CtxUser = "user"
	// Tên cookie chứa JWT cho admin dashboard (fallback khi không có Bearer header)
	TokenCookie = "clinic_token"
)

// AuthJWT kiểm tra Authorization: Bearer <token> (hoặc cookie), validate JWT,
// lấy user từ DB và inject vào context.
func AuthJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			rawToken = strings.TrimSpace(authHeader[7:])
		} else if cookie, err := c.Cookie(TokenCookie); err == nil {
			rawToken = cookie
		}

		if rawToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header"})
			return
		}

		claims, err := utils.VerifyToken(rawToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		// UserID trong claims là string → parse ra uint64 để tìm DB theo primary key
		uid, err := strconv.ParseUint(claims.UserID, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid subject"})
			return
		}

		var user models.NguoiDung
		if err := config.DB.First(&user, uid).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			return
		}

		c.Set(CtxUser, user)
		c.Next()
	}
}

// RequireRole chặn route theo danh sách vai trò cho phép. Luôn dùng sau AuthJWT.
// Khai báo role ngay tại route để khỏi lặp check trong từng handler.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(CtxUser)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		u := v.(models.NguoiDung)
		for _, role := range allowed {
			if u.VaiTro == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
	}
}
