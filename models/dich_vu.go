package models

import "time"

// Trạng thái nội dung dùng chung cho dịch vụ và bài viết
const (
	StatusDraft         = "DRAFT"
	StatusPublished     = "PUBLISHED"
	StatusPendingReview = "PENDING_REVIEW"
	StatusScheduled     = "SCHEDULED"
	StatusArchived      = "ARCHIVED"
)

type DichVu struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug               string    `gorm:"size:255;unique;not null" json:"slug"`
	Title              string    `gorm:"size:255;not null" json:"title"`
	TitleEn            string    `gorm:"size:255" json:"titleEn"`
	Description        string    `gorm:"type:text" json:"description"`
	DescriptionEn      string    `gorm:"type:text" json:"descriptionEn"`
	ShortDescription   string    `gorm:"type:text" json:"shortDescription"`
	ShortDescriptionEn string    `gorm:"type:text" json:"shortDescriptionEn"`
	TrangThai          string    `gorm:"column:trang_thai;size:20;default:'DRAFT'" json:"status"`
	ShowOnHomepage     bool      `gorm:"default:false" json:"showOnHomepage"`
	FeatureImageID     *uint     `json:"featureImageId"`
	FeatureImageEnID   *uint     `json:"featureImageEnId"`
	NgayTao            time.Time `gorm:"column:ngay_tao;autoCreateTime" json:"createdAt"`
	NgayCapNhat        time.Time `gorm:"column:ngay_cap_nhat;autoUpdateTime" json:"updatedAt"`

	FeatureImage   *Media `gorm:"foreignKey:FeatureImageID" json:"featureImage,omitempty"`
	FeatureImageEn *Media `gorm:"foreignKey:FeatureImageEnID" json:"featureImageEn,omitempty"`
}

func (DichVu) TableName() string {
	return "dich_vu"
}

// AllowedServiceStatus: dịch vụ chỉ có DRAFT | PUBLISHED
func AllowedServiceStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished
}
