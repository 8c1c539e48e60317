package models

import "time"

// Loại banner - mỗi loại chỉ có tối đa một banner (upsert theo type)
const (
	BannerHomepage = "HOMEPAGE"
	BannerService  = "SERVICE"
	BannerNews     = "NEWS"
	BannerAbout    = "ABOUT"
)

type Banner struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Type        string    `gorm:"size:20;unique;not null" json:"type"`
	Link        string    `gorm:"size:500" json:"link"`
	TrangThai   string    `gorm:"column:trang_thai;size:20;default:'ACTIVE'" json:"status"`
	ImageID     *uint     `json:"imageId"`
	NgayTao     time.Time `gorm:"column:ngay_tao;autoCreateTime" json:"createdAt"`
	NgayCapNhat time.Time `gorm:"column:ngay_cap_nhat;autoUpdateTime" json:"updatedAt"`

	Image *Media `gorm:"foreignKey:ImageID" json:"image,omitempty"`
}

func (Banner) TableName() string {
	return "banner"
}

func AllowedBannerType(t string) bool {
	switch t {
	case BannerHomepage, BannerService, BannerNews, BannerAbout:
		return true
	}
	return false
}
