package utils

const (
	LocaleVI = "vi"
	LocaleEN = "en"
)

// ResolveLocale chọn nội dung theo ngôn ngữ yêu cầu. Tiếng Việt là ngôn ngữ
// gốc: locale "en" trả về bản dịch nếu có, không thì fallback về tiếng Việt;
// mọi locale khác luôn trả về bản gốc.
func ResolveLocale(locale, base, en string) string {
	if locale == LocaleEN && en != "" {
		return en
	}
	return base
}

// ResolveLocalePtr: như ResolveLocale nhưng trả về nil khi cả hai đều rỗng,
// dùng cho các trường tuỳ chọn.
func ResolveLocalePtr(locale, base, en string) *string {
	v := ResolveLocale(locale, base, en)
	if v == "" {
		return nil
	}
	return &v
}

// NormalizeLocale: chỉ chấp nhận "en", còn lại coi là "vi"
func NormalizeLocale(lang string) string {
	if lang == LocaleEN {
		return LocaleEN
	}
	return LocaleVI
}
