package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"car-finance/domain"
)

// MaxAlternatives caps how many runner-up terms are returned.
const MaxAlternatives = 5

type TermRecommendationService struct {
	risk RiskModel
	log  *logrus.Logger
}

func NewTermRecommendationService(risk RiskModel, log *logrus.Logger) *TermRecommendationService {
	if risk == nil {
		risk = NewHeuristicRiskModel()
	}
	return &TermRecommendationService{risk: risk, log: log}
}

var preferences = map[string]bool{
	"minimize_interest": true,
	"minimize_payment":  true,
	"balanced":          true,
}

// RecommendTerm evaluates every term the slider allows, keeps those whose
// payment fits the monthly budget, and ranks them by preference.
func (s *TermRecommendationService) RecommendTerm(
	input domain.TermRecommendationInput,
) (domain.TermRecommendationResult, error) {

	if input.Quote.Price <= 0 || math.IsNaN(input.Quote.Price) {
		return domain.TermRecommendationResult{}, domain.ErrInvalidQuote
	}
	if input.MonthlyBudget <= 0 {
		return domain.TermRecommendationResult{}, domain.ErrInvalidBudget
	}
	if input.Preference == "" {
		input.Preference = "balanced"
	}
	if !preferences[input.Preference] {
		return domain.TermRecommendationResult{}, fmt.Errorf("%w: %q", domain.ErrInvalidPreference, input.Preference)
	}

	downPayment := clampFloat(input.DownPayment, 0, input.Quote.Price)
	candidates := []domain.TermRecommendation{}

	for term := MinTermMonths; term <= MaxTermMonths; term++ {
		params := domain.LoanParameters{TermMonths: term, DownPayment: downPayment}
		apr := s.risk.PredictAPR(input.Quote.Price, params)
		totals := CalculateTotals(params.Principal(input.Quote.Price), apr/100/12, term)

		if totals.MonthlyPayment > input.MonthlyBudget {
			continue
		}

		candidates = append(candidates, domain.TermRecommendation{
			TermMonths:     term,
			MonthlyPayment: totals.MonthlyPayment,
			TotalInterest:  totals.TotalInterest,
			PredictedAPR:   roundTo2Decimals(apr),
			Reason:         termReason(input.Preference),
		})
	}

	if len(candidates) == 0 {
		return domain.TermRecommendationResult{}, domain.ErrNoTermWithinBudget
	}

	scoreCandidates(candidates, input.Preference)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > MaxAlternatives+1 {
		candidates = candidates[:MaxAlternatives+1]
	}
	candidates[0].Reason = termExplanation(candidates[0], input.Preference, input.MonthlyBudget)

	s.log.WithFields(logrus.Fields{
		"price":       input.Quote.Price,
		"budget":      input.MonthlyBudget,
		"preference":  input.Preference,
		"recommended": candidates[0].TermMonths,
	}).Debug("term recommended")

	return domain.TermRecommendationResult{
		RecommendedTerm: candidates[0].TermMonths,
		Recommendations: candidates,
	}, nil
}

// scoreCandidates rates each term 0-10 on interest, payment and term length,
// normalized over the candidates, and weights them by preference.
func scoreCandidates(candidates []domain.TermRecommendation, preference string) {
	minI, maxI := math.Inf(1), math.Inf(-1)
	minP, maxP := math.Inf(1), math.Inf(-1)
	minT, maxT := math.MaxInt, math.MinInt
	for _, c := range candidates {
		minI, maxI = math.Min(minI, c.TotalInterest), math.Max(maxI, c.TotalInterest)
		minP, maxP = math.Min(minP, c.MonthlyPayment), math.Max(maxP, c.MonthlyPayment)
		minT, maxT = min(minT, c.TermMonths), max(maxT, c.TermMonths)
	}

	normalized := func(v, lo, hi float64) float64 {
		if hi <= lo {
			return 10
		}
		return 10 * (1 - (v-lo)/(hi-lo))
	}

	for i := range candidates {
		c := &candidates[i]
		interestScore := normalized(c.TotalInterest, minI, maxI)
		paymentScore := normalized(c.MonthlyPayment, minP, maxP)
		termScore := normalized(float64(c.TermMonths), float64(minT), float64(maxT))

		var score float64
		switch preference {
		case "minimize_interest":
			score = 0.6*interestScore + 0.2*paymentScore + 0.2*termScore
		case "minimize_payment":
			score = 0.2*interestScore + 0.6*paymentScore + 0.2*termScore
		default:
			score = 0.4*interestScore + 0.4*paymentScore + 0.2*termScore
		}
		c.Score = roundTo2Decimals(score)
	}
}
