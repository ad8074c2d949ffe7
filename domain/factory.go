package domain

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

// MaxAdvisedLineRiskRating is the first risk rating at which advised lines are refused.
const MaxAdvisedLineRiskRating = 3

// Create builds a loan of the requested variant. end is the maturity of a
// term loan or the expiry of a revolver or advised line; a zero end leaves
// the loan unbounded. riskRating is only consulted for advised lines.
func Create(
	variant Variant,
	commitment float64,
	start, end time.Time,
	riskRating int,
) (*Loan, error) {
	switch variant {
	case TermLoan:
		return NewTermLoan(commitment, start, end)
	case Revolver:
		return NewRevolver(commitment, start, end)
	case AdvisedLine:
		return NewAdvisedLine(commitment, start, end, riskRating)
	}
	return nil, errors.Wrapf(ErrUnknownVariant, "variant %d", variant)
}

func NewTermLoan(commitment float64, start, maturity time.Time) (*Loan, error) {
	return newLoan(TermLoan, commitment, start, maturity, 0)
}

func NewRevolver(commitment float64, start, expiry time.Time) (*Loan, error) {
	return newLoan(Revolver, commitment, start, expiry, 0)
}

// NewAdvisedLine refuses borrowers rated MaxAdvisedLineRiskRating or worse.
func NewAdvisedLine(commitment float64, start, expiry time.Time, riskRating int) (*Loan, error) {
	if riskRating >= MaxAdvisedLineRiskRating {
		return nil, errors.Wrapf(ErrRejectedByPolicy,
			"advised line requires risk rating below %d, got %d", MaxAdvisedLineRiskRating, riskRating)
	}
	return newLoan(AdvisedLine, commitment, start, expiry, AdvisedLineUnusedPercentage)
}

func newLoan(variant Variant, commitment float64, start, end time.Time, unusedPercentage float64) (*Loan, error) {
	if commitment < 0 || math.IsNaN(commitment) || math.IsInf(commitment, 0) {
		return nil, errors.Wrapf(ErrInvalidCommitment, "%v", commitment)
	}
	return &Loan{
		variant:          variant,
		commitment:       commitment,
		start:            start,
		end:              end,
		unusedPercentage: unusedPercentage,
	}, nil
}
