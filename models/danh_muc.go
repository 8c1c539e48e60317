package models

import "time"

type DanhMuc struct {
	ID      uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug    string    `gorm:"size:255;unique;not null" json:"slug"`
	Name    string    `gorm:"size:255;not null" json:"name"`
	NameEn  string    `gorm:"size:255" json:"nameEn"`
	NgayTao time.Time `gorm:"column:ngay_tao;autoCreateTime" json:"createdAt"`

	BaiViets []BaiViet `gorm:"many2many:bai_viet_danh_muc;" json:"-"`
}

func (DanhMuc) TableName() string {
	return "danh_muc"
}
