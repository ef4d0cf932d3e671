// 入库边界归一化：所有可选字段的默认值在此一次性声明，
// 计算器内部不再各自推导默认值。
package domain

import "github.com/shopspring/decimal"

// RawExposure 外部生成器产出的原始敞口记录，可选字段用指针表达缺失
type RawExposure struct {
	ID               string           `json:"id"`
	EntityID         string           `json:"entity_id"`
	ProductType      string           `json:"product_type"`
	ExposureClass    string           `json:"exposure_class"`
	Currency         string           `json:"currency"`
	EAD              *decimal.Decimal `json:"ead"`
	PD               *float64         `json:"pd"`
	LGD              *float64         `json:"lgd"`
	MaturityYears    *float64         `json:"maturity_years"`
	CCF              *float64         `json:"ccf"`
	CommitmentAmount *decimal.Decimal `json:"commitment_amount"`
	DrawnAmount      *decimal.Decimal `json:"drawn_amount"`
	IsRetail         *bool            `json:"is_retail"`
	Rating           string           `json:"rating"`
	IsSpeculative    *bool            `json:"is_speculative"`
}

// RawDerivative 外部生成器产出的原始衍生品记录
type RawDerivative struct {
	ID                 string           `json:"id"`
	EntityID           string           `json:"entity_id"`
	DerivativeType     string           `json:"derivative_type"`
	AssetClass         string           `json:"asset_class"`
	NotionalAmount     *decimal.Decimal `json:"notional_amount"`
	MaturityYears      *float64         `json:"maturity_years"`
	MTMValue           *decimal.Decimal `json:"mtm_value"`
	CounterpartyID     string           `json:"counterparty_id"`
	CounterpartyRating string           `json:"counterparty_rating"`
	CounterpartyPD     *float64         `json:"counterparty_pd"`
	CounterpartyLGD    *float64         `json:"counterparty_lgd"`
	NettingSetID       string           `json:"netting_set_id"`
	HasCollateral      *bool            `json:"has_collateral"`
	CollateralAmount   *decimal.Decimal `json:"collateral_amount"`
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// NormalizeExposures 归一化一批原始敞口。
// EAD 字段在整个集合中缺失时返回 SchemaError；其余缺失字段按 0 填充。
// is_retail 缺失时按可参与 IRB 处理（有意的宽松口径，而非数据错误）。
func NormalizeExposures(raws []RawExposure) ([]Exposure, error) {
	if len(raws) > 0 {
		missing := true
		for _, r := range raws {
			if r.EAD != nil {
				missing = false
				break
			}
		}
		if missing {
			return nil, NewMissingFieldError("ead")
		}
	}

	exposures := make([]Exposure, 0, len(raws))
	for _, r := range raws {
		e := Exposure{
			ID:               r.ID,
			EntityID:         r.EntityID,
			ProductType:      r.ProductType,
			ExposureClass:    ExposureClass(r.ExposureClass),
			Currency:         r.Currency,
			EAD:              decimalOrZero(r.EAD),
			PD:               floatOrZero(r.PD),
			LGD:              floatOrZero(r.LGD),
			MaturityYears:    floatOrZero(r.MaturityYears),
			CCF:              floatOrZero(r.CCF),
			CommitmentAmount: decimalOrZero(r.CommitmentAmount),
			DrawnAmount:      decimalOrZero(r.DrawnAmount),
			IsRetail:         r.IsRetail == nil || *r.IsRetail,
			Rating:           r.Rating,
			IsSpeculative:    r.IsSpeculative != nil && *r.IsSpeculative,
		}
		e.Stage = StageFromPD(e.PD)
		if e.CCF > 0 {
			e.EAD = EffectiveEAD(e.DrawnAmount, e.CommitmentAmount, e.CCF)
		}
		exposures = append(exposures, e)
	}
	return exposures, nil
}

// NormalizeDerivatives 归一化一批原始衍生品记录，缺失字段按 0 填充
func NormalizeDerivatives(raws []RawDerivative) []Derivative {
	derivatives := make([]Derivative, 0, len(raws))
	for _, r := range raws {
		derivatives = append(derivatives, Derivative{
			ID:                 r.ID,
			EntityID:           r.EntityID,
			DerivativeType:     DerivativeType(r.DerivativeType),
			AssetClass:         r.AssetClass,
			NotionalAmount:     decimalOrZero(r.NotionalAmount),
			MaturityYears:      floatOrZero(r.MaturityYears),
			MTMValue:           decimalOrZero(r.MTMValue),
			CounterpartyID:     r.CounterpartyID,
			CounterpartyRating: r.CounterpartyRating,
			CounterpartyPD:     floatOrZero(r.CounterpartyPD),
			CounterpartyLGD:    floatOrZero(r.CounterpartyLGD),
			NettingSetID:       r.NettingSetID,
			HasCollateral:      r.HasCollateral != nil && *r.HasCollateral,
			CollateralAmount:   decimalOrZero(r.CollateralAmount),
		})
	}
	return derivatives
}
