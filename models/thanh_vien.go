package models

import "time"

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type ThanhVien struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	NameEn        string    `gorm:"size:255" json:"nameEn"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	TitleEn       string    `gorm:"size:255" json:"titleEn"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	DescriptionEn string    `gorm:"type:text" json:"descriptionEn"`
	ThuTu         int       `gorm:"column:thu_tu;default:0" json:"order"` // thứ tự hiển thị, không bắt buộc duy nhất
	TrangThai     string    `gorm:"column:trang_thai;size:20;default:'ACTIVE'" json:"status"`
	ImageID       *uint     `json:"imageId"`
	ImageEnID     *uint     `json:"imageEnId"`
	NgayTao       time.Time `gorm:"column:ngay_tao;autoCreateTime" json:"createdAt"`
	NgayCapNhat   time.Time `gorm:"column:ngay_cap_nhat;autoUpdateTime" json:"updatedAt"`

	Image   *Media `gorm:"foreignKey:ImageID" json:"image,omitempty"`
	ImageEn *Media `gorm:"foreignKey:ImageEnID" json:"imageEn,omitempty"`
}

func (ThanhVien) TableName() string {
	return "thanh_vien"
}
