package controllers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/clinic-server/models"
)

var pngBytes = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}

func uploadFile(t *testing.T, r http.Handler, token, field, filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload_image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadImageRoundTrip(t *testing.T) {
	db, r := newTestEnv(t)
	t.Setenv("UPLOAD_DIR", t.TempDir()) // fallback đĩa local, không cần Supabase
	u, token := newUser(t, db, models.RoleEditor)

	w := uploadFile(t, r, token, "file", "banner.png", pngBytes)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		URL     string `json:"url"`
		MediaID uint   `json:"mediaId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.URL)
	require.NotZero(t, resp.MediaID)

	// tra lại Media row theo mediaId phải ra đúng URL
	var m models.Media
	require.NoError(t, db.First(&m, resp.MediaID).Error)
	assert.Equal(t, resp.URL, m.URL)
	assert.Equal(t, "banner.png", m.OriginalName)
	require.NotNil(t, m.UploadedByID)
	assert.Equal(t, u.ID, *m.UploadedByID)
}

func TestUploadImageRejectsBadType(t *testing.T) {
	db, r := newTestEnv(t)
	t.Setenv("UPLOAD_DIR", t.TempDir())
	_, token := newUser(t, db, models.RoleEditor)

	w := uploadFile(t, r, token, "file", "script.html", []byte("<html></html>"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.Media{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestUploadImageRequiresAuth(t *testing.T) {
	_, r := newTestEnv(t)

	w := uploadFile(t, r, "", "file", "banner.png", pngBytes)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
