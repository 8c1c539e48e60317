package models

import "time"

// AuditLog: nhật ký thao tác quản trị, chỉ ghi thêm, không sửa/xoá.
type AuditLog struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint      `gorm:"index" json:"userId"`
	Action   string    `gorm:"size:50;not null" json:"action"` // CREATE | UPDATE | DELETE | TOGGLE_FEATURED | UPLOAD
	Entity   string    `gorm:"size:50;not null" json:"entity"`
	EntityID uint      `json:"entityId"`
	Details  string    `gorm:"type:text" json:"details"`
	NgayTao  time.Time `gorm:"column:ngay_tao;autoCreateTime" json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}
