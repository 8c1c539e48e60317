package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "kham-tong-quat", Slugify("Khám Tổng Quát"))
	assert.Equal(t, "dich-vu-rang-ham-mat", Slugify("Dịch vụ Răng - Hàm - Mặt"))
	assert.Equal(t, "tin-tuc-2025", Slugify("  Tin tức 2025!  "))
	assert.Equal(t, "", Slugify("***"))
}
