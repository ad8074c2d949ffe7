package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"loan-capital/domain"
	"loan-capital/repository"
)

var ErrInvalidInput = errors.New("invalid input")

func roundTo(value float64, places int32) float64 {
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}

type CapitalService struct {
	cache repository.CacheRepository
	newID func() string
}

// NewCapitalService creates a CapitalService memoizing quotes in cache.
func NewCapitalService(cache repository.CacheRepository) *CapitalService {
	return &CapitalService{cache: cache, newID: uuid.NewString}
}

// Quote builds the requested loan, replays its payments and reports
// duration and capital. Identical requests are answered from the cache,
// but every quote, cached or not, gets its own QuoteID.
func (s *CapitalService) Quote(
	ctx context.Context,
	input domain.CapitalInput,
) (domain.CapitalResult, error) {
	input = normalize(input)

	if err := validate(input); err != nil {
		return domain.CapitalResult{}, err
	}

	key, cacheable := cacheKey(input)
	if cacheable {
		if cached, ok := s.cache.Get(ctx, key); ok {
			var result domain.CapitalResult
			err := json.Unmarshal([]byte(cached), &result)
			if err == nil {
				result.QuoteID = s.newID()
				return result, nil
			}
			log.Printf("Warning: discarding unreadable cached quote %s: %v", key, err)
		}
	}

	loan, err := buildLoan(input)
	if err != nil {
		return domain.CapitalResult{}, err
	}

	duration, err := loan.Duration()
	if err != nil {
		return domain.CapitalResult{}, errors.Wrap(err, "duration")
	}
	capital, err := loan.Capital()
	if err != nil {
		return domain.CapitalResult{}, errors.Wrap(err, "capital")
	}

	result := domain.CapitalResult{
		QuoteID:    s.newID(),
		Variant:    loan.Variant().String(),
		Commitment: loan.Commitment(),
		RiskFactor: loan.RiskFactor(),
		Duration:   roundTo(duration, DurationDecimals),
		Capital:    roundTo(capital, CapitalDecimals),
	}

	if cacheable {
		// Caching is best effort
		data, err := json.Marshal(result)
		if err == nil {
			err = s.cache.Set(ctx, key, string(data))
		}
		if err != nil {
			log.Printf("Warning: failed to cache capital quote: %v", err)
		}
	}

	return result, nil
}

func normalize(input domain.CapitalInput) domain.CapitalInput {
	input.Variant = strings.ToLower(strings.TrimSpace(input.Variant))
	input.Start = strings.TrimSpace(input.Start)
	input.End = strings.TrimSpace(input.End)
	return input
}

func validate(input domain.CapitalInput) error {
	if _, err := domain.ParseVariant(input.Variant); err != nil {
		return err
	}
	if input.Commitment > MaxCommitment {
		return errors.Wrapf(ErrInvalidInput, "commitment exceeds the maximum of %.2f", MaxCommitment)
	}
	if input.RiskRating < MinRiskRating || input.RiskRating > MaxRiskRating {
		return errors.Wrapf(ErrInvalidInput, "risk rating must be between %d and %d", MinRiskRating, MaxRiskRating)
	}
	if len(input.Payments) > MaxPaymentsPerRequest {
		return errors.Wrapf(ErrInvalidInput, "more than %d payments", MaxPaymentsPerRequest)
	}
	if input.Start == "" {
		return errors.Wrap(ErrInvalidInput, "start date is required")
	}
	return nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, errors.Wrapf(ErrInvalidInput, "%s: %q is not a YYYY-MM-DD date", field, value)
	}
	return t, nil
}

func buildLoan(input domain.CapitalInput) (*domain.Loan, error) {
	variant, err := domain.ParseVariant(input.Variant)
	if err != nil {
		return nil, err
	}

	start, err := parseDate("start", input.Start)
	if err != nil {
		return nil, err
	}

	var end time.Time
	if input.End != "" {
		if end, err = parseDate("end", input.End); err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, errors.Wrapf(ErrInvalidInput, "end %s precedes start %s", input.End, input.Start)
		}
	}

	loan, err := domain.Create(variant, input.Commitment, start, end, input.RiskRating)
	if err != nil {
		return nil, err
	}

	for i, p := range input.Payments {
		date, err := parseDate(fmt.Sprintf("payments[%d].date", i), p.Date)
		if err != nil {
			return nil, err
		}
		if err := loan.Payment(p.Amount, date); err != nil {
			return nil, errors.Wrapf(err, "payments[%d]", i)
		}
	}

	return loan, nil
}

// cacheKey hashes the normalized request. Requests that cannot be
// serialized, such as those carrying NaN amounts, are not cacheable.
func cacheKey(input domain.CapitalInput) (string, bool) {
	data, err := json.Marshal(input)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), true
}
