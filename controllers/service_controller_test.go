package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/clinic-server/models"
)

func TestGetServiceBySlugNotFound(t *testing.T) {
	_, r := newTestEnv(t)

	w := doJSON(r, http.MethodGet, "/api/services/by-slug/nonexistent-slug", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Service not found", decodeBody(t, w)["error"])
}

func TestGetServiceBySlugHidesDrafts(t *testing.T) {
	db, r := newTestEnv(t)

	require.NoError(t, db.Create(&models.DichVu{
		Slug:        "kham-tong-quat",
		Title:       "Khám tổng quát",
		Description: "Mô tả",
		TrangThai:   models.StatusDraft,
	}).Error)

	w := doJSON(r, http.MethodGet, "/api/services/by-slug/kham-tong-quat", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateServiceRequiresTitle(t *testing.T) {
	db, r := newTestEnv(t)
	_, token := newUser(t, db, models.RoleEditor)

	w := doJSON(r, http.MethodPost, "/api/services", token, map[string]interface{}{
		"description": "Mô tả dịch vụ",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "title")

	// không có row nào được ghi
	var count int64
	db.Model(&models.DichVu{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestCreateServiceUnauthenticated(t *testing.T) {
	_, r := newTestEnv(t)

	w := doJSON(r, http.MethodPost, "/api/services", "", map[string]interface{}{
		"title":       "Khám tổng quát",
		"description": "Mô tả",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateServiceGeneratesUniqueSlug(t *testing.T) {
	db, r := newTestEnv(t)
	_, token := newUser(t, db, models.RoleEditor)

	body := map[string]interface{}{
		"title":       "Khám Tổng Quát",
		"description": "Mô tả",
		"status":      models.StatusPublished,
	}
	w1 := doJSON(r, http.MethodPost, "/api/services", token, body)
	require.Equal(t, http.StatusCreated, w1.Code)
	w2 := doJSON(r, http.MethodPost, "/api/services", token, body)
	require.Equal(t, http.StatusCreated, w2.Code)

	var services []models.DichVu
	db.Order("id asc").Find(&services)
	require.Len(t, services, 2)
	assert.Equal(t, "kham-tong-quat", services[0].Slug)
	assert.Equal(t, "kham-tong-quat-2", services[1].Slug)
}

func TestCreateServiceRejectsBadStatus(t *testing.T) {
	db, r := newTestEnv(t)
	_, token := newUser(t, db, models.RoleEditor)

	w := doJSON(r, http.MethodPost, "/api/services", token, map[string]interface{}{
		"title":       "Khám tổng quát",
		"description": "Mô tả",
		"status":      "PENDING_REVIEW", // hợp lệ cho bài viết, không hợp lệ cho dịch vụ
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHomepageServicesCap(t *testing.T) {
	db, r := newTestEnv(t)

	for i := 0; i < 6; i++ {
		require.NoError(t, db.Create(&models.DichVu{
			Slug:           "dich-vu-" + string(rune('a'+i)),
			Title:          "Dịch vụ",
			Description:    "Mô tả",
			TrangThai:      models.StatusPublished,
			ShowOnHomepage: true,
			NgayTao:        time.Date(2025, 1, 1+i, 0, 0, 0, 0, time.UTC),
		}).Error)
	}

	w := doJSON(r, http.MethodGet, "/api/services/homepage", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	services := decodeBody(t, w)["services"].([]interface{})
	assert.Len(t, services, 4)

	// mới nhất trước
	first := services[0].(map[string]interface{})
	assert.Equal(t, "dich-vu-f", first["slug"])
}

func TestServiceLocaleResolution(t *testing.T) {
	db, r := newTestEnv(t)

	require.NoError(t, db.Create(&models.DichVu{
		Slug:        "nha-khoa",
		Title:       "Nha khoa",
		TitleEn:     "Dental care",
		Description: "Mô tả",
		TrangThai:   models.StatusPublished,
	}).Error)

	w := doJSON(r, http.MethodGet, "/api/services/by-slug/nha-khoa?lang=en", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	svc := decodeBody(t, w)["service"].(map[string]interface{})
	assert.Equal(t, "Dental care", svc["title"])
	// chưa dịch description → fallback tiếng Việt
	assert.Equal(t, "Mô tả", svc["description"])

	w = doJSON(r, http.MethodGet, "/api/services/by-slug/nha-khoa", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	svc = decodeBody(t, w)["service"].(map[string]interface{})
	assert.Equal(t, "Nha khoa", svc["title"])
}

func TestListServicesPaginationMeta(t *testing.T) {
	db, r := newTestEnv(t)

	for i := 0; i < 12; i++ {
		require.NoError(t, db.Create(&models.DichVu{
			Slug:        "dv-" + string(rune('a'+i)),
			Title:       "Dịch vụ",
			Description: "Mô tả",
			TrangThai:   models.StatusPublished,
		}).Error)
	}

	w := doJSON(r, http.MethodGet, "/api/services?page=2&limit=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	meta := body["meta"].(map[string]interface{})
	assert.EqualValues(t, 12, meta["total"])
	assert.EqualValues(t, 2, meta["page"])
	assert.EqualValues(t, 5, meta["limit"])
	assert.EqualValues(t, 3, meta["totalPages"])
	assert.Len(t, body["services"].([]interface{}), 5)
}
