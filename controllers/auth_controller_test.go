package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/clinic-server/models"
)

func TestLogin(t *testing.T) {
	db, r := newTestEnv(t)
	u, _ := newUser(t, db, models.RoleEditor)

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    u.Email,
		"password": "matkhau123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, u.Email, user["email"])
	// mật khẩu không bao giờ xuất hiện trong response
	assert.NotContains(t, w.Body.String(), "mat_khau")

	// sai mật khẩu → 401
	w = doJSON(r, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    u.Email,
		"password": "sai-mat-khau",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutIdempotent(t *testing.T) {
	_, r := newTestEnv(t)

	// logout không cần session, gọi nhiều lần vẫn 200
	w := doJSON(r, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMeRequiresAuth(t *testing.T) {
	db, r := newTestEnv(t)
	u, token := newUser(t, db, models.RoleAdmin)

	w := doJSON(r, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, u.Email, user["email"])
	assert.Equal(t, models.RoleAdmin, user["role"])
}

func TestUserManagementSuperAdminOnly(t *testing.T) {
	db, r := newTestEnv(t)
	_, adminToken := newUser(t, db, models.RoleAdmin)
	_, superToken := newUser(t, db, models.RoleSuperAdmin)

	// ADMIN không đủ quyền tạo tài khoản
	w := doJSON(r, http.MethodPost, "/api/users", adminToken, map[string]interface{}{
		"name":     "Biên tập viên",
		"email":    "bt@clinic.vn",
		"password": "matkhau123",
		"role":     models.RoleEditor,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/users", superToken, map[string]interface{}{
		"name":     "Biên tập viên",
		"email":    "bt@clinic.vn",
		"password": "matkhau123",
		"role":     models.RoleEditor,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// role lạ bị từ chối
	w = doJSON(r, http.MethodPost, "/api/users", superToken, map[string]interface{}{
		"name":     "Ai đó",
		"email":    "aido@clinic.vn",
		"password": "matkhau123",
		"role":     "OWNER",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
