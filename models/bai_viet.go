package models

import "time"

// Số bài viết nổi bật tối đa được phép cùng lúc
const MaxFeaturedPosts = 5

type BaiViet struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug           string     `gorm:"size:255;unique;not null" json:"slug"`
	Title          string     `gorm:"size:255;not null" json:"title"`
	TitleEn        string     `gorm:"size:255" json:"titleEn"`
	Content        string     `gorm:"type:text;not null" json:"content"` // HTML
	Excerpt        string     `gorm:"type:text" json:"excerpt"`
	TrangThai      string     `gorm:"column:trang_thai;size:20;default:'DRAFT'" json:"status"`
	NoiBat         bool       `gorm:"column:noi_bat;default:false" json:"featured"`
	ShowOnHomepage bool       `gorm:"default:false" json:"showOnHomepage"`
	Pin            bool       `gorm:"default:false" json:"pin"`
	PublishedAt    *time.Time `json:"publishedAt"`
	AuthorID       *uint      `json:"authorId"`
	FeatureImageID *uint      `json:"featureImageId"`
	NgayTao        time.Time  `gorm:"column:ngay_tao;autoCreateTime" json:"createdAt"`
	NgayCapNhat    time.Time  `gorm:"column:ngay_cap_nhat;autoUpdateTime" json:"updatedAt"`

	Author       *NguoiDung `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"author,omitempty"`
	FeatureImage *Media     `gorm:"foreignKey:FeatureImageID" json:"featureImage,omitempty"`
	DanhMucs     []DanhMuc  `gorm:"many2many:bai_viet_danh_muc;" json:"categories"`
}

func (BaiViet) TableName() string {
	return "bai_viet"
}

// AllowedPostStatus kiểm tra enum trạng thái của bài viết
func AllowedPostStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusPendingReview, StatusScheduled, StatusArchived:
		return true
	}
	return false
}
