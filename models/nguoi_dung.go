package models

import "time"

// Vai trò của nhân viên quản trị. SUPER_ADMIN bao trùm ADMIN, ADMIN bao trùm EDITOR.
const (
	RoleEditor     = "EDITOR"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

var AllRoles = []string{RoleEditor, RoleAdmin, RoleSuperAdmin}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

type NguoiDung struct {
	ID      uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Ten     string    `gorm:"size:100;not null" json:"name"`
	Email   string    `gorm:"size:100;unique;not null" json:"email"`
	MatKhau string    `gorm:"size:255;not null" json:"-"` // ẩn khi trả JSON
	VaiTro  string    `gorm:"size:20;not null;default:'EDITOR'" json:"role"`
	NgayTao time.Time `gorm:"autoCreateTime" json:"createdAt"`

	BaiViets []BaiViet `gorm:"foreignKey:AuthorID" json:"-"`
}

func (NguoiDung) TableName() string {
	return "nguoi_dung"
}
