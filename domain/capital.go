package domain

// CapitalInput is a capital quote request. Dates use the YYYY-MM-DD layout;
// an empty End leaves the facility without maturity or expiry.
type CapitalInput struct {
	Variant    string         `json:"variant"`
	Commitment float64        `json:"commitment"`
	Start      string         `json:"start"`
	End        string         `json:"end,omitempty"`
	RiskRating int            `json:"risk_rating"`
	Payments   []PaymentInput `json:"payments,omitempty"`
}

type PaymentInput struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
}

type CapitalResult struct {
	QuoteID    string  `json:"quote_id"`
	Variant    string  `json:"variant"`
	Commitment float64 `json:"commitment"`
	RiskFactor float64 `json:"risk_factor"`
	Duration   float64 `json:"duration_years"`
	Capital    float64 `json:"capital"`
}
