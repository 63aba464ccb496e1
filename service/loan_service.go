package service

import (
	"math"
)

// roundTo2Decimals rounds a float64 to cents.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// amortizedPayment is the unrounded fixed payment of an amortizing loan.
func amortizedPayment(principal, monthlyRate float64, termMonths int) float64 {
	if principal <= 0 || termMonths <= 0 {
		return 0
	}
	n := float64(termMonths)
	if monthlyRate == 0 {
		return principal / n
	}
	growth := math.Pow(1+monthlyRate, n)
	return principal * monthlyRate * growth / (growth - 1)
}

// MonthlyPayment returns the fixed monthly payment of a standard amortizing
// loan, rounded to whole currency units. It is 0 when there is nothing to
// finance or no term to spread it over.
func MonthlyPayment(principal, monthlyRate float64, termMonths int) float64 {
	return math.Round(amortizedPayment(principal, monthlyRate, termMonths))
}

// LoanTotals is the cost breakdown of an amortizing loan.
type LoanTotals struct {
	MonthlyPayment float64
	TotalPayment   float64
	TotalInterest  float64
}

// CalculateTotals computes the payment and the total cost over the whole term.
func CalculateTotals(principal, monthlyRate float64, termMonths int) LoanTotals {
	cuota := amortizedPayment(principal, monthlyRate, termMonths)
	if cuota == 0 {
		return LoanTotals{}
	}

	total := cuota * float64(termMonths)
	return LoanTotals{
		MonthlyPayment: roundTo2Decimals(cuota),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(total - principal),
	}
}
