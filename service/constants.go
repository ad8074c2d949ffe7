package service

const (
	MaxCommitment         = 1_000_000_000_000.0 // one trillion
	MaxPaymentsPerRequest = 1_200               // a century of monthly payments
	MinRiskRating         = 0
	MaxRiskRating         = 10

	DurationDecimals = 4
	CapitalDecimals  = 2

	dateLayout = "2006-01-02"
)
