package domain

import "time"

// Payment is an amount disbursed or repaid on a given date.
type Payment struct {
	amount float64
	date   time.Time
}

func NewPayment(amount float64, date time.Time) Payment {
	return Payment{amount: amount, date: date}
}

func (p Payment) Amount() float64 {
	return p.amount
}

func (p Payment) Date() time.Time {
	return p.date
}
