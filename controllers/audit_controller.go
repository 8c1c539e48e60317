package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vnkhanh/clinic-server/config"
	"github.com/vnkhanh/clinic-server/models"
)

// GET /api/logs?page&limit&entity&userId (ADMIN trở lên)
func ListAuditLogs(c *gin.Context) {
	query := config.DB.Model(&models.AuditLog{})

	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}
	if userID := c.Query("userId"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	page, limit, offset := parsePaging(c)

	var total int64
	query.Count(&total)

	var logs []models.AuditLog
	if err := query.Order("ngay_tao desc").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Không thể lấy nhật ký"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs": logs,
		"meta": pagingMeta(total, page, limit),
	})
}

type exportLogsReq struct {
	Format    string  `json:"format"`
	RangeFrom *string `json:"range_from,omitempty"`
	RangeTo   *string `json:"range_to,omitempty"`
}

// POST /api/logs/export (ADMIN trở lên) - tạo job xuất CSV chạy nền
func CreateAuditExport(c *gin.Context) {
	var req exportLogsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Payload không hợp lệ"})
		return
	}
	if req.Format == "" {
		req.Format = "csv"
	}
	if req.Format != "csv" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Hiện chỉ hỗ trợ format csv"})
		return
	}

	var fromPtr, toPtr *time.Time
	if req.RangeFrom != nil {
		if t, err := time.Parse(time.RFC3339, *req.RangeFrom); err == nil {
			fromPtr = &t
		}
	}
	if req.RangeTo != nil {
		if t, err := time.Parse(time.RFC3339, *req.RangeTo); err == nil {
			toPtr = &t
		}
	}

	jobID := uuid.New().String()
	job := models.ExportJob{
		JobID:     jobID,
		Entity:    "audit_log",
		Format:    req.Format,
		RangeFrom: fromPtr,
		RangeTo:   toPtr,
		Status:    "queued",
	}
	config.DB.Create(&job)

	go processAuditExportJob(jobID)

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": jobID,
		"status": "queued",
	})
}

// GET /api/exports/:job_id (ADMIN trở lên)
func GetExport(c *gin.Context) {
	jobID := c.Param("job_id")
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"message": "Job không tìm thấy"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Lỗi DB"})
		return
	}

	if job.Status == "done" && job.FilePath != nil {
		c.FileAttachment(*job.FilePath, path.Base(*job.FilePath))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id": job.JobID,
		"status": job.Status,
		"error":  job.ErrorMsg,
	})
}

// xử lý job xuất nhật ký
func processAuditExportJob(jobID string) {
	var job models.ExportJob
	if err := config.DB.First(&job, "job_id = ?", jobID).Error; err != nil {
		return
	}
	config.DB.Model(&job).Update("status", "processing")

	outDir := "./exports"
	os.MkdirAll(outDir, 0755)

	filename := fmt.Sprintf("audit_%s.csv", job.JobID)
	outPath := path.Join(outDir, filename)

	f, err := os.Create(outPath)
	if err != nil {
		em := err.Error()
		config.DB.Model(&job).Updates(map[string]interface{}{"status": "failed", "error_msg": em})
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	w.Write([]string{"id", "user_id", "action", "entity", "entity_id", "details", "created_at"})

	q := config.DB.Model(&models.AuditLog{})
	if job.RangeFrom != nil {
		q = q.Where("ngay_tao >= ?", job.RangeFrom)
	}
	if job.RangeTo != nil {
		q = q.Where("ngay_tao <= ?", job.RangeTo)
	}

	var logs []models.AuditLog
	if err := q.Order("ngay_tao asc").Find(&logs).Error; err != nil {
		em := err.Error()
		config.DB.Model(&job).Updates(map[string]interface{}{"status": "failed", "error_msg": em})
		return
	}

	for _, l := range logs {
		w.Write([]string{
			fmt.Sprintf("%d", l.ID),
			fmt.Sprintf("%d", l.UserID),
			l.Action,
			l.Entity,
			fmt.Sprintf("%d", l.EntityID),
			l.Details,
			l.NgayTao.Format(time.RFC3339),
		})
	}

	fp := outPath
	config.DB.Model(&job).Updates(map[string]interface{}{"status": "done", "file_path": fp})
}
