package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLocale(t *testing.T) {
	// en: ưu tiên bản dịch, fallback về tiếng Việt khi chưa dịch
	assert.Equal(t, "General checkup", ResolveLocale("en", "Khám tổng quát", "General checkup"))
	assert.Equal(t, "Khám tổng quát", ResolveLocale("en", "Khám tổng quát", ""))

	// vi: luôn trả bản gốc, kể cả khi có bản dịch
	assert.Equal(t, "Khám tổng quát", ResolveLocale("vi", "Khám tổng quát", "General checkup"))

	// locale lạ cũng coi như ngôn ngữ gốc
	assert.Equal(t, "Khám tổng quát", ResolveLocale("fr", "Khám tổng quát", "General checkup"))
}

func TestResolveLocalePtr(t *testing.T) {
	v := ResolveLocalePtr("en", "", "Short intro")
	assert.NotNil(t, v)
	assert.Equal(t, "Short intro", *v)

	assert.Nil(t, ResolveLocalePtr("en", "", ""))
	assert.Nil(t, ResolveLocalePtr("vi", "", "Short intro"))
}

func TestNormalizeLocale(t *testing.T) {
	assert.Equal(t, "en", NormalizeLocale("en"))
	assert.Equal(t, "vi", NormalizeLocale("vi"))
	assert.Equal(t, "vi", NormalizeLocale(""))
	assert.Equal(t, "vi", NormalizeLocale("EN"))
}
