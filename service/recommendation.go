package service

import (
	"fmt"

	"car-finance/domain"
)

const (
	MessageSignIn          = "Sign in to see personalized financing predictions."
	MessageAddCreditScore  = "Add your credit score to your profile to see personalized financing predictions."
	MessagePredictionError = "Failed to fetch financing prediction"
	MessageSessionClosed   = "Estimation session is closed; showing the local estimate."
)

// localRecommendation writes the advice shown when the backend did not supply one.
func localRecommendation(price float64, params domain.LoanParameters, est domain.FinancingEstimate) string {
	share := DownPaymentShare(price, params.DownPayment)

	switch {
	case est.MonthlyPayment == 0:
		return "The down payment covers the full price; no financing is needed."
	case share < int(DownPaymentDiscountPct):
		return fmt.Sprintf("A down payment above %.0f%% of the price would lower the estimated APR of %.1f%%. "+
			"At %d months the payment is about $%.0f per month.",
			DownPaymentDiscountPct, est.PredictedAPR, params.TermMonths, est.MonthlyPayment)
	case params.TermMonths > 48:
		return fmt.Sprintf("A shorter term than %d months reduces total interest and the estimated APR of %.1f%%, "+
			"at the cost of a higher monthly payment than $%.0f.",
			params.TermMonths, est.PredictedAPR, est.MonthlyPayment)
	default:
		return fmt.Sprintf("A %d%% down payment over %d months is a balanced plan: about $%.0f per month at an estimated %.1f%% APR.",
			share, params.TermMonths, est.MonthlyPayment, est.PredictedAPR)
	}
}

// termReason explains why a term scored the way it did for a preference.
func termReason(preference string) string {
	switch preference {
	case "minimize_interest":
		return "Term chosen to minimize total interest"
	case "minimize_payment":
		return "Term chosen to minimize the monthly payment"
	case "balanced":
		return "Best balance between monthly payment and total cost"
	}
	return "Recommendation based on the provided parameters"
}

// termExplanation is the text attached to the top term recommendation.
func termExplanation(top domain.TermRecommendation, preference string, budget float64) string {
	switch preference {
	case "minimize_interest":
		return fmt.Sprintf("%d months keeps total interest at $%.2f while staying under your $%.0f monthly budget with a $%.2f payment.",
			top.TermMonths, top.TotalInterest, budget, top.MonthlyPayment)
	case "minimize_payment":
		return fmt.Sprintf("%d months gives the lowest payment, $%.2f per month, leaving room in your $%.0f budget.",
			top.TermMonths, top.MonthlyPayment, budget)
	default:
		return fmt.Sprintf("%d months balances a $%.2f monthly payment against $%.2f of total interest at an estimated %.1f%% APR.",
			top.TermMonths, top.MonthlyPayment, top.TotalInterest, top.PredictedAPR)
	}
}
