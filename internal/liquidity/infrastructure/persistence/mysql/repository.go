package mysql

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/bankingrisk/internal/liquidity/domain"
	"gorm.io/gorm"
)

// LiquidityResultModel MySQL 流动性指标结果表映射。
// ALMM 档位明细以 JSON 形式存储，供导出层原样消费。
type LiquidityResultModel struct {
	gorm.Model
	RunID      string          `gorm:"column:run_id;type:varchar(64);index;not null"`
	EntityID   string          `gorm:"column:entity_id;type:varchar(64);index;not null"`
	HQLATotal  decimal.Decimal `gorm:"column:hqla_total;type:decimal(24,4);not null"`
	NetOutflow decimal.Decimal `gorm:"column:net_outflow;type:decimal(24,4);not null"`
	LCR        float64         `gorm:"column:lcr;type:decimal(10,4);not null"`
	ASFTotal   decimal.Decimal `gorm:"column:asf_total;type:decimal(24,4);not null"`
	RSFTotal   decimal.Decimal `gorm:"column:rsf_total;type:decimal(24,4);not null"`
	NSFR       float64         `gorm:"column:nsfr;type:decimal(10,4);not null"`
	Detail     string          `gorm:"column:detail;type:longtext"`
}

func (LiquidityResultModel) TableName() string { return "liquidity_results" }

type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository 创建并返回一个新的 ResultRepository 实例。
func NewResultRepository(db *gorm.DB) domain.ResultRepository {
	return &resultRepository{db: db}
}

// SaveBatch 批量保存一次计算的实体级结果
func (r *resultRepository) SaveBatch(ctx context.Context, runID string, results []domain.LiquidityResult) error {
	if len(results) == 0 {
		return nil
	}
	models := make([]LiquidityResultModel, 0, len(results))
	for _, result := range results {
		detail, err := json.Marshal(result)
		if err != nil {
			return err
		}
		models = append(models, LiquidityResultModel{
			RunID:      runID,
			EntityID:   result.EntityID,
			HQLATotal:  result.LCR.HQLATotal,
			NetOutflow: result.LCR.NetOutflow,
			LCR:        result.LCR.LCR,
			ASFTotal:   result.NSFR.ASFTotal,
			RSFTotal:   result.NSFR.RSFTotal,
			NSFR:       result.NSFR.NSFR,
			Detail:     string(detail),
		})
	}
	return r.db.WithContext(ctx).CreateInBatches(models, 200).Error
}

// GetByRunID 查询一次计算的全部实体级结果
func (r *resultRepository) GetByRunID(ctx context.Context, runID string) ([]domain.LiquidityResult, error) {
	var models []LiquidityResultModel
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).Find(&models).Error; err != nil {
		return nil, err
	}
	results := make([]domain.LiquidityResult, 0, len(models))
	for _, m := range models {
		var result domain.LiquidityResult
		if err := json.Unmarshal([]byte(m.Detail), &result); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}
