package config

import (
	"fmt"
	"log"
	"os"

	"github.com/vnkhanh/clinic-server/models"
	"github.com/vnkhanh/clinic-server/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB khởi tạo kết nối PostgreSQL và migrate bảng
func ConnectDB() {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Ho_Chi_Minh",
		host, user, password, dbName, port)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := MigrateModels(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	DB = db
	log.Println("Connected to PostgreSQL & migrated successfully")

	SeedSuperAdmin(db)
}

// MigrateModels auto migrate toàn bộ bảng (tách riêng để test dùng lại với SQLite)
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.NguoiDung{},
		&models.Media{},
		&models.DichVu{},
		&models.DanhMuc{},
		&models.BaiViet{},
		&models.ThanhVien{},
		&models.Banner{},
		&models.LienHe{},
		&models.AuditLog{},
		&models.ExportJob{},
	)
}

// SeedSuperAdmin tạo tài khoản SUPER_ADMIN đầu tiên từ env khi bảng user còn trống
func SeedSuperAdmin(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	db.Model(&models.NguoiDung{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("seed admin: không thể mã hóa mật khẩu: %v", err)
		return
	}

	admin := models.NguoiDung{
		Ten:     "Super Admin",
		Email:   email,
		MatKhau: hash,
		VaiTro:  models.RoleSuperAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("seed admin thất bại: %v", err)
		return
	}
	log.Printf("Đã tạo tài khoản SUPER_ADMIN %s", email)
}
