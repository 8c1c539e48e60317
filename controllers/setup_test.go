package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vnkhanh/clinic-server/config"
	"github.com/vnkhanh/clinic-server/models"
	"github.com/vnkhanh/clinic-server/routes"
	"github.com/vnkhanh/clinic-server/utils"
)

// newTestEnv dựng DB SQLite in-memory + router đầy đủ route cho mỗi test
func newTestEnv(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	// SQLite shared-cache trả lỗi "table is locked" khi nhiều connection ghi
	// cùng lúc; gom về một connection để request song song xếp hàng thay vì lỗi
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.MigrateModels(db))
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)
	return db, r
}

// newUser tạo tài khoản với vai trò cho trước và trả kèm JWT
func newUser(t *testing.T, db *gorm.DB, role string) (models.NguoiDung, string) {
	hash, err := utils.HashPassword("matkhau123")
	require.NoError(t, err)

	u := models.NguoiDung{
		Ten:     "Test " + role,
		Email:   strings.ToLower(role) + "-" + uuid.NewString()[:8] + "@clinic.vn",
		MatKhau: hash,
		VaiTro:  role,
	}
	require.NoError(t, db.Create(&u).Error)

	token, err := utils.GenerateToken(fmt.Sprintf("%d", u.ID), u.VaiTro)
	require.NoError(t, err)
	return u, token
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
