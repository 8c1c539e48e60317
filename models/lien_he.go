package models

import "time"

// LienHe: thông tin liên hệ của phòng khám. Theo quy ước chỉ có một dòng
// ACTIVE tại một thời điểm, đọc bằng bản ghi ACTIVE mới nhất.
type LienHe struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Phone           string    `gorm:"size:50" json:"phone"`
	Address         string    `gorm:"size:500" json:"address"`
	AddressEn       string    `gorm:"size:500" json:"addressEn"`
	BusinessHours   string    `gorm:"size:255" json:"businessHours"`
	BusinessHoursEn string    `gorm:"size:255" json:"businessHoursEn"`
	FacebookURL     string    `gorm:"size:500" json:"facebookUrl"`
	ZaloURL         string    `gorm:"size:500" json:"zaloUrl"`
	InstagramURL    string    `gorm:"size:500" json:"instagramUrl"`
	AppointmentLink string    `gorm:"size:500" json:"appointmentLink"`
	TrangThai       string    `gorm:"column:trang_thai;size:20;default:'ACTIVE'" json:"status"`
	NgayTao         time.Time `gorm:"column:ngay_tao;autoCreateTime" json:"createdAt"`
	NgayCapNhat     time.Time `gorm:"column:ngay_cap_nhat;autoUpdateTime" json:"updatedAt"`
}

func (LienHe) TableName() string {
	return "lien_he"
}
