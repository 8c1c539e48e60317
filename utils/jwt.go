package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Phiên dashboard sống 24h, hết hạn thì đăng nhập lại
const SessionTTL = 24 * time.Hour

// SessionClaims là payload JWT của phiên nhân viên: id + vai trò,
// đủ cho check phân quyền mà không phải query role mỗi request.
type SessionClaims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Đọc secret tại thời điểm gọi để test có thể đổi qua env
func sessionKey() ([]byte, error) {
	key := []byte(os.Getenv("JWT_SECRET"))
	if len(key) == 0 {
		return nil, errors.New("JWT_SECRET không được thiết lập")
	}
	return key, nil
}

// GenerateToken ký JWT HS256 cho phiên đăng nhập của nhân viên
func GenerateToken(userID string, role string) (string, error) {
	key, err := sessionKey()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := SessionClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// VerifyToken parse và validate token phiên; chỉ chấp nhận HS256
func VerifyToken(tokenStr string) (*SessionClaims, error) {
	key, err := sessionKey()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{},
		func(token *jwt.Token) (interface{}, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("token không hợp lệ")
	}
	return claims, nil
}
