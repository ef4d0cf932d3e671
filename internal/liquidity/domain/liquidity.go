package domain

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	portfolio "github.com/wyfcoding/bankingrisk/internal/portfolio/domain"
)

// 分母非正时的哨兵值（视为天然合规，不作为错误）
const (
	lcrDefaultRatio  = 200.0
	nsfrDefaultRatio = 150.0
)

// NSFR 的实体资本估算系数：资本 ≈ 总资产 × 10%
const capitalEstimateRate = 0.10

// LCRResult 单实体流动性覆盖率结果
type LCRResult struct {
	EntityID   string          `json:"entity_id"`
	Level1     decimal.Decimal `json:"level1_hqla"`
	Level2A    decimal.Decimal `json:"level2a_hqla"`
	Level2B    decimal.Decimal `json:"level2b_hqla"`
	HQLATotal  decimal.Decimal `json:"hqla_total"`
	Outflows   decimal.Decimal `json:"outflows"`
	Inflows    decimal.Decimal `json:"inflows"`
	NetOutflow decimal.Decimal `json:"net_outflow"`
	LCR        float64         `json:"lcr"`
	Surplus    float64         `json:"surplus"`
}

// NSFRResult 单实体净稳定资金比率结果
type NSFRResult struct {
	EntityID string          `json:"entity_id"`
	ASFTotal decimal.Decimal `json:"asf_total"`
	RSFTotal decimal.Decimal `json:"rsf_total"`
	NSFR     float64         `json:"nsfr"`
	Surplus  float64         `json:"surplus"`
}

// MaturityBucketGap 单个期限档的错配缺口
type MaturityBucketGap struct {
	Bucket        string          `json:"bucket"`
	Assets        decimal.Decimal `json:"assets"`
	Liabilities   decimal.Decimal `json:"liabilities"`
	Gap           decimal.Decimal `json:"gap"`
	CumulativeGap decimal.Decimal `json:"cumulative_gap"`
}

// ALMMResult 单实体期限错配分析结果
type ALMMResult struct {
	EntityID string              `json:"entity_id"`
	Buckets  []MaturityBucketGap `json:"buckets"`
}

// LiquidityResult 单实体流动性指标汇总
type LiquidityResult struct {
	EntityID string     `json:"entity_id"`
	LCR      LCRResult  `json:"lcr"`
	NSFR     NSFRResult `json:"nsfr"`
	ALMM     ALMMResult `json:"almm"`
}

// LiquidityCalculator 流动性指标计算器
type LiquidityCalculator struct {
	logger *slog.Logger
}

// NewLiquidityCalculator 创建流动性计算器
func NewLiquidityCalculator(logger *slog.Logger) *LiquidityCalculator {
	return &LiquidityCalculator{logger: logger.With("module", "liquidity_calculator")}
}

func mulRate(d decimal.Decimal, rate float64) decimal.Decimal {
	return d.Mul(decimal.NewFromFloat(rate))
}

func decimalMin(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

func decimalMax(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// hqla 分层：Level1 = 10% 总资产；Level2A = 5% × 85%；
// Level2B = min(3% × 50%, 15% × (L1+L2A))，上限按该顺序生效
func hqla(total decimal.Decimal) (l1, l2a, l2b decimal.Decimal) {
	l1 = mulRate(total, 0.10)
	l2a = mulRate(mulRate(total, 0.05), 0.85)
	l2b = decimalMin(mulRate(mulRate(total, 0.03), 0.50), mulRate(l1.Add(l2a), 0.15))
	return
}

// CalculateLCR 计算单实体的 LCR
func (c *LiquidityCalculator) CalculateLCR(ctx context.Context, entityID string, exposures []portfolio.Exposure) LCRResult {
	bs := classify(exposures)
	l1, l2a, l2b := hqla(bs.TotalAssets)
	hqlaTotal := l1.Add(l2a).Add(l2b)

	// 流出：零售存款 5%、公司存款 25%、其余资产 3%
	otherAssets := decimalMax(bs.TotalAssets.Sub(bs.TotalDeposits()), decimal.Zero)
	outflows := mulRate(bs.RetailDeposits, 0.05).
		Add(mulRate(bs.CorporateDeposits, 0.25)).
		Add(mulRate(otherAssets, 0.03))

	// 流入上限 min(2% 贷款余额, 75% 流出)
	inflows := decimalMin(mulRate(bs.TotalLoans(), 0.02), mulRate(outflows, 0.75))

	// 净流出下限：总资产的 5%，该下限不可穿透
	netOutflow := decimalMax(outflows.Sub(inflows), mulRate(bs.TotalAssets, 0.05))

	result := LCRResult{
		EntityID:   entityID,
		Level1:     l1,
		Level2A:    l2a,
		Level2B:    l2b,
		HQLATotal:  hqlaTotal,
		Outflows:   outflows,
		Inflows:    inflows,
		NetOutflow: netOutflow,
	}

	if !netOutflow.IsPositive() {
		c.logger.WarnContext(ctx, "degenerate net outflow, defaulting lcr",
			"entity_id", entityID, "net_outflow", netOutflow.String())
		result.LCR = lcrDefaultRatio
	} else {
		h, _ := hqlaTotal.Float64()
		n, _ := netOutflow.Float64()
		result.LCR = h / n * 100
	}
	result.Surplus = result.LCR - 100
	return result
}

// CalculateNSFR 计算单实体的 NSFR
func (c *LiquidityCalculator) CalculateNSFR(ctx context.Context, entityID string, exposures []portfolio.Exposure) NSFRResult {
	bs := classify(exposures)
	l1, l2a, l2b := hqla(bs.TotalAssets)
	hqlaTotal := l1.Add(l2a).Add(l2b)

	// ASF：资本 100% + 零售存款 95% + 公司存款 50% + 一年期以上批发资金 100%
	capital := mulRate(bs.TotalAssets, capitalEstimateRate)
	asf := capital.
		Add(mulRate(bs.RetailDeposits, 0.95)).
		Add(mulRate(bs.CorporateDeposits, 0.50)).
		Add(bs.WholesaleLongTerm)

	// RSF：HQLA 5% + 按揭 65% + 其他零售贷款 85% + 公司贷款 100% + 残余资产 100%
	residual := bs.TotalAssets.
		Sub(hqlaTotal).
		Sub(bs.Mortgages).
		Sub(bs.RetailLoans).
		Sub(bs.CorporateLoans)
	residual = decimalMax(residual, decimal.Zero)
	rsf := mulRate(hqlaTotal, 0.05).
		Add(mulRate(bs.Mortgages, 0.65)).
		Add(mulRate(bs.RetailLoans, 0.85)).
		Add(bs.CorporateLoans).
		Add(residual)

	result := NSFRResult{EntityID: entityID, ASFTotal: asf, RSFTotal: rsf}
	if !rsf.IsPositive() {
		c.logger.WarnContext(ctx, "degenerate rsf total, defaulting nsfr",
			"entity_id", entityID, "rsf_total", rsf.String())
		result.NSFR = nsfrDefaultRatio
	} else {
		a, _ := asf.Float64()
		r, _ := rsf.Float64()
		result.NSFR = a / r * 100
	}
	result.Surplus = result.NSFR - 100
	return result
}

// 七个固定期限档（上界，年）
var maturityBuckets = []struct {
	Name  string
	Upper float64
}{
	{"0-1M", 1.0 / 12},
	{"1-3M", 0.25},
	{"3-6M", 0.5},
	{"6-12M", 1},
	{"1-2Y", 2},
	{"2-5Y", 5},
	{"5Y+", -1}, // 无上界
}

// 估算负债在前三个短期档的分配比例：40% / 30% / 10%
var liabilityAllocation = []float64{0.40, 0.30, 0.10}

// CalculateALMM 计算单实体的期限错配缺口，累计缺口为有序档位的滚动求和
func (c *LiquidityCalculator) CalculateALMM(_ context.Context, entityID string, exposures []portfolio.Exposure) ALMMResult {
	bs := classify(exposures)
	totalDeposits := bs.TotalDeposits()

	assets := make([]decimal.Decimal, len(maturityBuckets))
	for i := range assets {
		assets[i] = decimal.Zero
	}
	for _, e := range exposures {
		assets[bucketIndex(e.MaturityYears)] = assets[bucketIndex(e.MaturityYears)].Add(e.EAD)
	}

	buckets := make([]MaturityBucketGap, 0, len(maturityBuckets))
	cumulative := decimal.Zero
	for i, b := range maturityBuckets {
		liabilities := decimal.Zero
		if i < len(liabilityAllocation) {
			liabilities = mulRate(totalDeposits, liabilityAllocation[i])
		}
		gap := assets[i].Sub(liabilities)
		cumulative = cumulative.Add(gap)
		buckets = append(buckets, MaturityBucketGap{
			Bucket:        b.Name,
			Assets:        assets[i],
			Liabilities:   liabilities,
			Gap:           gap,
			CumulativeGap: cumulative,
		})
	}
	return ALMMResult{EntityID: entityID, Buckets: buckets}
}

func bucketIndex(maturityYears float64) int {
	for i, b := range maturityBuckets {
		if b.Upper < 0 || maturityYears < b.Upper {
			return i
		}
	}
	return len(maturityBuckets) - 1
}

// CalculateAll 按实体计算全部流动性指标
func (c *LiquidityCalculator) CalculateAll(ctx context.Context, exposures []portfolio.Exposure) []LiquidityResult {
	ids, groups := GroupByEntity(exposures)
	results := make([]LiquidityResult, 0, len(ids))
	for _, id := range ids {
		subset := groups[id]
		results = append(results, LiquidityResult{
			EntityID: id,
			LCR:      c.CalculateLCR(ctx, id, subset),
			NSFR:     c.CalculateNSFR(ctx, id, subset),
			ALMM:     c.CalculateALMM(ctx, id, subset),
		})
	}
	return results
}
