package domain

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

const (
	millisPerDay = 86_400_000.0
	daysPerYear  = 365.0

	RiskFactorTerm     = 0.03
	RiskFactorRevolver = 0.01
	RiskFactorAdvised  = 0.03

	// AdvisedLineUnusedPercentage is the share of an advised line assumed to stay undrawn.
	AdvisedLineUnusedPercentage = 0.10
)

// Variant tags the kind of credit instrument a Loan represents.
type Variant int

const (
	TermLoan Variant = iota + 1
	Revolver
	AdvisedLine
)

var variantTags = map[Variant]string{
	TermLoan:    "term_loan",
	Revolver:    "revolver",
	AdvisedLine: "advised_line",
}

func (v Variant) String() string {
	if tag, ok := variantTags[v]; ok {
		return tag
	}
	return "unknown"
}

// ParseVariant maps a wire tag such as "revolver" to its Variant.
func ParseVariant(tag string) (Variant, error) {
	for v, t := range variantTags {
		if t == tag {
			return v, nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownVariant, "%q", tag)
}

// Loan is a credit facility whose capital requirement depends on its variant.
//
// end holds the maturity of a term loan or the expiry of a revolver or
// advised line. A zero end means the facility has no temporal bound, in
// which case both Duration and Capital are zero.
//
// A Loan is not safe for concurrent use: callers recording payments from
// several goroutines must synchronize.
type Loan struct {
	variant          Variant
	commitment       float64
	start            time.Time
	end              time.Time
	unusedPercentage float64
	payments         []Payment
}

func (l *Loan) Variant() Variant {
	return l.variant
}

func (l *Loan) Commitment() float64 {
	return l.commitment
}

func (l *Loan) Start() time.Time {
	return l.start
}

func (l *Loan) End() time.Time {
	return l.end
}

func (l *Loan) HasEnd() bool {
	return !l.end.IsZero()
}

func (l *Loan) UnusedPercentage() float64 {
	return l.unusedPercentage
}

// RiskFactor returns the capital multiplier applied to the variant.
func (l *Loan) RiskFactor() float64 {
	switch l.variant {
	case TermLoan:
		return RiskFactorTerm
	case Revolver:
		return RiskFactorRevolver
	case AdvisedLine:
		return RiskFactorAdvised
	}
	return 0
}

// Payments returns a copy of the recorded payments in recording order.
func (l *Loan) Payments() []Payment {
	payments := make([]Payment, len(l.payments))
	copy(payments, l.payments)
	return payments
}

// Payment records an amount paid on date. Amounts must be finite and dates
// may not precede the loan start; negative amounts are accepted as reversals.
func (l *Loan) Payment(amount float64, date time.Time) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return errors.Wrapf(ErrInvalidPayment, "amount %v is not finite", amount)
	}
	if date.Before(l.start) {
		return errors.Wrapf(ErrInvalidPayment, "date %s precedes loan start %s",
			date.Format(time.DateOnly), l.start.Format(time.DateOnly))
	}
	l.payments = append(l.payments, NewPayment(amount, date))
	return nil
}

// YearsTo returns the fractional number of 365-day years between the loan
// start and endDate. Unix milliseconds are subtracted directly because a
// time.Duration saturates after about 292 years.
func (l *Loan) YearsTo(endDate time.Time) float64 {
	return float64(endDate.UnixMilli()-l.start.UnixMilli()) / millisPerDay / daysPerYear
}

// Duration returns the loan duration in years. Term loans weight the
// recorded payments by amount; revolvers and advised lines run to expiry.
func (l *Loan) Duration() (float64, error) {
	if !l.HasEnd() {
		return 0, nil
	}
	switch l.variant {
	case TermLoan:
		return l.weightedAverageDuration()
	case Revolver, AdvisedLine:
		return l.YearsTo(l.end), nil
	}
	return 0, errors.Wrapf(ErrUnknownVariant, "variant %d", l.variant)
}

// Capital returns the risk-adjusted capital required for the loan.
func (l *Loan) Capital() (float64, error) {
	if !l.HasEnd() {
		return 0, nil
	}
	duration, err := l.Duration()
	if err != nil {
		return 0, err
	}
	switch l.variant {
	case TermLoan:
		return l.commitment * duration * RiskFactorTerm, nil
	case Revolver:
		return l.commitment * duration * RiskFactorRevolver, nil
	case AdvisedLine:
		return l.commitment * l.unusedPercentage * duration * RiskFactorAdvised, nil
	}
	return 0, errors.Wrapf(ErrUnknownVariant, "variant %d", l.variant)
}

func (l *Loan) weightedAverageDuration() (float64, error) {
	if l.commitment == 0 {
		return 0, nil
	}

	var weighted, total float64
	for _, p := range l.payments {
		weighted += l.YearsTo(p.date) * p.amount
		total += p.amount
	}

	if total == 0 {
		return 0, errors.Wrapf(ErrInvalidState,
			"payments on a %s with commitment %v sum to zero", l.variant, l.commitment)
	}
	return weighted / total, nil
}
