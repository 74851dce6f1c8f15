// Package takehome estimates a physician's net pay after federal, state and
// payroll taxes.
package takehome

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/domain/region"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Input is one take-home request.
type Input struct {
	GrossSalary decimal.Decimal `json:"gross_salary"`
	Status      FilingStatus    `json:"filing_status"`
	// State is a state name or postal code; empty skips state tax.
	State string `json:"state,omitempty"`
	// RetirementContribution is pre-tax for income tax but not payroll tax.
	RetirementContribution decimal.Decimal `json:"retirement_contribution"`
}

// Result is the tax breakdown, rounded to cents.
type Result struct {
	GrossSalary    decimal.Decimal `json:"gross_salary"`
	FederalTax     decimal.Decimal `json:"federal_tax"`
	StateTax       decimal.Decimal `json:"state_tax"`
	SocialSecurity decimal.Decimal `json:"social_security"`
	Medicare       decimal.Decimal `json:"medicare"`
	TotalTax       decimal.Decimal `json:"total_tax"`
	NetAnnual      decimal.Decimal `json:"net_annual"`
	NetMonthly     decimal.Decimal `json:"net_monthly"`
	// EffectiveRate is total tax over gross, in percent.
	EffectiveRate decimal.Decimal `json:"effective_rate"`
}

// Calculator holds the state rate table.
type Calculator struct {
	stateRates map[string]decimal.Decimal
}

// New creates a Calculator with DefaultStateRates.
func New(opts ...Option) *Calculator {
	c := &Calculator{}
	WithStateRates(DefaultStateRates)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate computes the breakdown for in.
func (c *Calculator) Calculate(in Input) (Result, error) {
	status := in.Status
	if status == "" {
		status = Single
	}
	sched, ok := schedules[FilingStatus(strings.ToLower(string(status)))]
	if !ok {
		return Result{}, fmt.Errorf("%w: filing status %q", ErrInvalidInput, in.Status)
	}
	gross := in.GrossSalary
	if !gross.IsPositive() {
		return Result{}, fmt.Errorf("%w: gross salary must be positive", ErrInvalidInput)
	}
	contribution := in.RetirementContribution
	if contribution.IsNegative() || contribution.GreaterThan(gross) {
		return Result{}, fmt.Errorf("%w: retirement contribution must be between 0 and the gross salary", ErrInvalidInput)
	}

	stateRate, err := c.stateRate(in.State)
	if err != nil {
		return Result{}, err
	}

	wages := gross.Sub(contribution)
	taxable := decimal.Max(decimal.Zero, wages.Sub(sched.standardDeduction))

	federal := progressive(taxable, sched.brackets).Round(2)
	state := wages.Mul(stateRate).Round(2)
	social := decimal.Min(gross, socialSecurityWageCap).Mul(socialSecurityRate).Round(2)
	medicare := gross.Mul(medicareRate).
		Add(decimal.Max(decimal.Zero, gross.Sub(sched.medicareAdditional)).Mul(medicareAdditional)).
		Round(2)

	total := federal.Add(state).Add(social).Add(medicare)
	net := gross.Sub(total)

	return Result{
		GrossSalary:    gross.Round(2),
		FederalTax:     federal,
		StateTax:       state,
		SocialSecurity: social,
		Medicare:       medicare,
		TotalTax:       total,
		NetAnnual:      net.Round(2),
		NetMonthly:     net.Div(twelve).Round(2),
		EffectiveRate:  total.Div(gross).Mul(hundred).Round(2),
	}, nil
}

func (c *Calculator) stateRate(st string) (decimal.Decimal, error) {
	if strings.TrimSpace(st) == "" {
		return decimal.Zero, nil
	}
	name, ok := region.CanonicalState(st)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownState, st)
	}
	rate, ok := c.stateRates[name]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rate configured for %s", ErrUnknownState, name)
	}
	return rate, nil
}

func progressive(income decimal.Decimal, brackets []bracket) decimal.Decimal {
	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range brackets {
		if !income.GreaterThan(lower) {
			break
		}
		upper := income
		if !b.upTo.IsZero() && b.upTo.LessThan(income) {
			upper = b.upTo
		}
		tax = tax.Add(upper.Sub(lower).Mul(b.rate))
		lower = b.upTo
		if b.upTo.IsZero() {
			break
		}
	}
	return tax
}
