package mysql

import (
	"context"

	"github.com/wyfcoding/bankingrisk/internal/reporting/domain"
	"gorm.io/gorm"
)

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建并返回一个新的 ReportRepository 实例。
func NewReportRepository(db *gorm.DB) domain.ReportRepository {
	return &reportRepository{db: db}
}

// Save 保存报告
func (r *reportRepository) Save(ctx context.Context, report *domain.RegulatoryReport) error {
	return r.db.WithContext(ctx).Save(report).Error
}

// GetByReportID 按报告编号查询
func (r *reportRepository) GetByReportID(ctx context.Context, reportID string) (*domain.RegulatoryReport, error) {
	var report domain.RegulatoryReport
	if err := r.db.WithContext(ctx).Where("report_id = ?", reportID).First(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// List 查询最近的报告
func (r *reportRepository) List(ctx context.Context, limit int) ([]*domain.RegulatoryReport, error) {
	if limit <= 0 {
		limit = 20
	}
	var reports []*domain.RegulatoryReport
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}
