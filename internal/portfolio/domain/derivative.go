package domain

import "github.com/shopspring/decimal"

// DerivativeType 衍生品类型
type DerivativeType string

const (
	DerivativeIRS           DerivativeType = "INTEREST_RATE_SWAP"
	DerivativeFXForward     DerivativeType = "FX_FORWARD"
	DerivativeCDS           DerivativeType = "CDS"
	DerivativeEquityOption  DerivativeType = "EQUITY_OPTION"
	DerivativeCommoditySwap DerivativeType = "COMMODITY_SWAP"
)

// Derivative 单笔场外衍生品合约
type Derivative struct {
	ID                 string          `json:"id"`
	EntityID           string          `json:"entity_id"`
	DerivativeType     DerivativeType  `json:"derivative_type"`
	AssetClass         string          `json:"asset_class"`
	NotionalAmount     decimal.Decimal `json:"notional_amount"`
	MaturityYears      float64         `json:"maturity_years"`
	MTMValue           decimal.Decimal `json:"mtm_value"`
	CounterpartyID     string          `json:"counterparty_id"`
	CounterpartyRating string          `json:"counterparty_rating"`
	CounterpartyPD     float64         `json:"counterparty_pd"`
	CounterpartyLGD    float64         `json:"counterparty_lgd"`
	NettingSetID       string          `json:"netting_set_id"`
	HasCollateral      bool            `json:"has_collateral"`
	CollateralAmount   decimal.Decimal `json:"collateral_amount"`
}

// ReplacementCost 重置成本 = max(mtm, 0)
func (d Derivative) ReplacementCost() decimal.Decimal {
	if d.MTMValue.IsNegative() {
		return decimal.Zero
	}
	return d.MTMValue
}
