package takehome

import (
	"github.com/shopspring/decimal"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/region"
)

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithStateRates replaces the state rate table. Keys may be state names or
// postal codes; rates are percentages. Unrecognised keys are ignored.
func WithStateRates(rates map[string]float64) Option {
	return func(c *Calculator) {
		if len(rates) == 0 {
			return
		}
		c.stateRates = make(map[string]decimal.Decimal, len(rates))
		for k, v := range rates {
			if name, ok := region.CanonicalState(k); ok && v >= 0 {
				c.stateRates[name] = decimal.NewFromFloat(v).Div(hundred)
			}
		}
	}
}
