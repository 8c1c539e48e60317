package models

import "time"

// Media: metadata của file đã upload. Các entity khác chỉ tham chiếu (không sở hữu);
// xoá entity tham chiếu không xoá Media.
type Media struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	URL          string    `gorm:"size:1000;not null" json:"url"`
	FileName     string    `gorm:"size:500;not null" json:"fileName"`
	OriginalName string    `gorm:"size:500" json:"originalName"`
	FileType     string    `gorm:"size:100" json:"fileType"`
	FileSize     int64     `json:"fileSize"`
	UploadedByID *uint     `json:"uploadedById"`
	NgayTao      time.Time `gorm:"column:ngay_tao;autoCreateTime" json:"createdAt"`

	UploadedBy *NguoiDung `gorm:"foreignKey:UploadedByID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

func (Media) TableName() string {
	return "media"
}
