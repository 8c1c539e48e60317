package utils

import (
	"log"

	"github.com/vnkhanh/clinic-server/models"
	"gorm.io/gorm"
)

// GhiAuditLog ghi một dòng nhật ký thao tác. Ghi best-effort: lỗi chỉ log ra
// server, không làm fail request đang xử lý.
func GhiAuditLog(db *gorm.DB, userID uint, action, entity string, entityID uint, details string) {
	entry := models.AuditLog{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Details:  details,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("audit log (%s %s #%d) thất bại: %v", action, entity, entityID, err)
	}
}
