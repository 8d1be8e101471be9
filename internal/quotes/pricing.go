package quotes

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jmcalloway/insuquote-backend/pkg/config"
)

// PriceBreakdown carries the computed cost components for a quote.
type PriceBreakdown struct {
	MaterialCost decimal.Decimal
	LaborCost    decimal.Decimal
	Subtotal     decimal.Decimal
	RebateAmount decimal.Decimal
	Total        decimal.Decimal
}

// Pricer computes quote amounts from square footage. Rates come from
// configuration so regional pricing can change without a deploy.
type Pricer struct {
	materialRate  decimal.Decimal
	laborRate     decimal.Decimal
	rebatePercent decimal.Decimal
}

// NewPricer parses the configured rates into exact decimals.
func NewPricer(cfg config.PricingConfig) (*Pricer, error) {
	material, err := decimal.NewFromString(cfg.MaterialRatePerSqFt)
	if err != nil {
		return nil, fmt.Errorf("invalid material rate %q: %w", cfg.MaterialRatePerSqFt, err)
	}
	labor, err := decimal.NewFromString(cfg.LaborRatePerSqFt)
	if err != nil {
		return nil, fmt.Errorf("invalid labor rate %q: %w", cfg.LaborRatePerSqFt, err)
	}
	rebate, err := decimal.NewFromString(cfg.RebatePercent)
	if err != nil {
		return nil, fmt.Errorf("invalid rebate percent %q: %w", cfg.RebatePercent, err)
	}
	if material.IsNegative() || labor.IsNegative() || rebate.IsNegative() {
		return nil, fmt.Errorf("pricing rates must be non-negative")
	}
	return &Pricer{
		materialRate:  material,
		laborRate:     labor,
		rebatePercent: rebate,
	}, nil
}

// Compute derives the full breakdown. The rebate applies only when the
// client supplied a postal code, since rebate programs are postal-gated.
func (p *Pricer) Compute(squareFootage float64, hasPostalCode bool) PriceBreakdown {
	sqft := decimal.NewFromFloat(squareFootage)

	material := sqft.Mul(p.materialRate).Round(2)
	labor := sqft.Mul(p.laborRate).Round(2)
	subtotal := material.Add(labor)

	rebate := decimal.Zero
	if hasPostalCode {
		rebate = subtotal.Mul(p.rebatePercent).Div(decimal.NewFromInt(100)).Round(2)
	}

	return PriceBreakdown{
		MaterialCost: material,
		LaborCost:    labor,
		Subtotal:     subtotal,
		RebateAmount: rebate,
		Total:        subtotal.Sub(rebate),
	}
}
