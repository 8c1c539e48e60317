package controllers_test

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/clinic-server/models"
)

func TestHomepageNewsPinnedFirstCapThree(t *testing.T) {
	db, r := newTestEnv(t)

	// 5 bài đủ điều kiện: 2 ghim, 3 thường
	for i := 0; i < 5; i++ {
		p := models.BaiViet{
			Slug:           fmt.Sprintf("bai-%d", i),
			Title:          fmt.Sprintf("Bài %d", i),
			Content:        "<p>Nội dung</p>",
			TrangThai:      models.StatusPublished,
			ShowOnHomepage: true,
			Pin:            i >= 3, // bài 3, 4 được ghim
			NgayTao:        time.Date(2025, 2, 1+i, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, db.Create(&p).Error)
	}

	w := doJSON(r, http.MethodGet, "/api/news/homepage", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	news := decodeBody(t, w)["news"].([]interface{})
	require.Len(t, news, 3)

	// hai bài ghim trước (mới hơn trước), rồi tới bài thường mới nhất
	assert.Equal(t, "bai-4", news[0].(map[string]interface{})["slug"])
	assert.Equal(t, "bai-3", news[1].(map[string]interface{})["slug"])
	assert.Equal(t, "bai-2", news[2].(map[string]interface{})["slug"])
}

func TestToggleFeaturedCap(t *testing.T) {
	db, r := newTestEnv(t)
	_, token := newUser(t, db, models.RoleEditor)

	var ids []uint
	for i := 0; i < 6; i++ {
		p := models.BaiViet{
			Slug:      fmt.Sprintf("noi-bat-%d", i),
			Title:     "Bài viết",
			Content:   "<p>Nội dung</p>",
			TrangThai: models.StatusPublished,
		}
		require.NoError(t, db.Create(&p).Error)
		ids = append(ids, p.ID)
	}

	// bật nổi bật 5 bài đầu: ok
	for i := 0; i < 5; i++ {
		w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/news/%d/featured", ids[i]), token, nil)
		require.Equal(t, http.StatusOK, w.Code, "bài thứ %d phải bật được", i+1)
	}

	// bài thứ 6: chạm trần → 409, không ghi thêm
	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/news/%d/featured", ids[5]), token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.BaiViet{}).Where("noi_bat = ?", true).Count(&count)
	assert.EqualValues(t, models.MaxFeaturedPosts, count)

	// tắt một bài rồi bật lại bài thứ 6: ok
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/news/%d/featured", ids[0]), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/news/%d/featured", ids[5]), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	db.Model(&models.BaiViet{}).Where("noi_bat = ?", true).Count(&count)
	assert.EqualValues(t, models.MaxFeaturedPosts, count)
}

func TestToggleFeaturedConcurrent(t *testing.T) {
	db, r := newTestEnv(t)
	_, token := newUser(t, db, models.RoleEditor)

	// 4 bài đã nổi bật sẵn, còn đúng một suất
	var ids []uint
	for i := 0; i < 6; i++ {
		p := models.BaiViet{
			Slug:      fmt.Sprintf("dong-thoi-%d", i),
			Title:     "Bài viết",
			Content:   "<p>Nội dung</p>",
			TrangThai: models.StatusPublished,
			NoiBat:    i < 4,
		}
		require.NoError(t, db.Create(&p).Error)
		ids = append(ids, p.ID)
	}

	// hai request bật đồng thời trên hai bài khác nhau: đúng một request
	// lấy được suất cuối, request kia nhận 409
	var wg sync.WaitGroup
	codes := make([]int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/news/%d/featured", ids[4+i]), token, nil)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	sort.Ints(codes)
	assert.Equal(t, []int{http.StatusOK, http.StatusConflict}, codes)

	var count int64
	db.Model(&models.BaiViet{}).Where("noi_bat = ?", true).Count(&count)
	assert.EqualValues(t, models.MaxFeaturedPosts, count)
}

func TestCreateNewsRequiresContent(t *testing.T) {
	db, r := newTestEnv(t)
	_, token := newUser(t, db, models.RoleEditor)

	w := doJSON(r, http.MethodPost, "/api/news", token, map[string]interface{}{
		"title": "Bài viết thiếu nội dung",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.BaiViet{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestCreateNewsWithCategories(t *testing.T) {
	db, r := newTestEnv(t)
	u, token := newUser(t, db, models.RoleEditor)

	cat := models.DanhMuc{Slug: "suc-khoe", Name: "Sức khỏe"}
	require.NoError(t, db.Create(&cat).Error)

	w := doJSON(r, http.MethodPost, "/api/news", token, map[string]interface{}{
		"title":       "Phòng bệnh mùa mưa",
		"content":     "<p>Nội dung</p>",
		"status":      models.StatusPublished,
		"categoryIds": []uint{cat.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var p models.BaiViet
	require.NoError(t, db.Preload("DanhMucs").First(&p, "slug = ?", "phong-benh-mua-mua").Error)
	assert.Len(t, p.DanhMucs, 1)
	assert.NotNil(t, p.PublishedAt)
	require.NotNil(t, p.AuthorID)
	assert.Equal(t, u.ID, *p.AuthorID)

	// mutation phải ghi audit log
	var logCount int64
	db.Model(&models.AuditLog{}).Where("entity = ? AND action = ?", "bai_viet", "CREATE").Count(&logCount)
	assert.EqualValues(t, 1, logCount)
}

func TestCreateNewsRejectsUnknownCategory(t *testing.T) {
	db, r := newTestEnv(t)
	_, token := newUser(t, db, models.RoleEditor)

	w := doJSON(r, http.MethodPost, "/api/news", token, map[string]interface{}{
		"title":       "Bài viết",
		"content":     "<p>Nội dung</p>",
		"categoryIds": []uint{999},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
