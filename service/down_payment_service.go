package service

import (
	"math"
	"strings"
	"time"
	"unicode"

	"car-finance/domain"
)

const (
	baseDownPaymentRate = 0.10
	minDownPaymentRate  = 0.05
	maxDownPaymentRate  = 0.30
	defaultVehicleType  = "Sedan"
)

var modelCategory = map[string]string{
	"camry":            "Sedan",
	"corolla":          "Sedan",
	"prius":            "Sedan",
	"prius prime":      "Sedan",
	"mirai":            "Sedan",
	"avalon":           "Luxury",
	"crown":            "Luxury",
	"century":          "Luxury",
	"rav4":             "SUV",
	"rav4 hybrid":      "SUV",
	"rav4 prime":       "SUV",
	"highlander":       "SUV",
	"grand highlander": "SUV",
	"4runner":          "SUV",
	"venza":            "SUV",
	"land cruiser":     "SUV",
	"sequoia":          "SUV",
	"sienna":           "SUV",
	"corolla cross":    "SUV",
	"bz4x":             "SUV",
	"tacoma":           "Truck",
	"tundra":           "Truck",
	"gr86":             "Sports",
	"gr 86":            "Sports",
	"supra":            "Sports",
	"gr supra":         "Sports",
	"gr corolla":       "Sports",
}

var vehicleTypeAdjustment = map[string]float64{
	"Sedan":  0.00,
	"SUV":    0.02,
	"Truck":  0.03,
	"Luxury": 0.05,
	"Sports": 0.07,
}

func normalizeModelName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, name)
	return strings.Join(strings.Fields(mapped), " ")
}

// VehicleTypeForModel maps a model name to a body type. Exact matches win,
// then the longest known prefix, then Sedan.
func VehicleTypeForModel(model string) string {
	normalized := normalizeModelName(model)
	if normalized == "" {
		return defaultVehicleType
	}
	if category, ok := modelCategory[normalized]; ok {
		return category
	}

	best, bestLen := defaultVehicleType, 0
	for key, category := range modelCategory {
		if strings.HasPrefix(normalized, key) && len(key) > bestLen {
			best, bestLen = category, len(key)
		}
	}
	return best
}

// DownPaymentService suggests a realistic down payment for a purchase.
type DownPaymentService struct {
	referenceYear int
}

// NewDownPaymentService uses the current year when referenceYear is zero.
func NewDownPaymentService(referenceYear int) *DownPaymentService {
	return &DownPaymentService{referenceYear: referenceYear}
}

func creditAdjustment(score int) float64 {
	switch {
	case score >= 750:
		return -0.02
	case score >= 700:
		return 0
	case score >= 650:
		return 0.03
	default:
		return 0.07
	}
}

func termAdjustment(months int) float64 {
	switch {
	case months <= 24:
		return -0.01
	case months <= 36:
		return 0
	case months <= 48:
		return 0.02
	default:
		return 0.04
	}
}

func ageAdjustment(age int) float64 {
	switch {
	case age <= 1:
		return 0.02
	case age <= 5:
		return 0
	default:
		return -0.02
	}
}

// Suggest combines credit, term, body type and age adjustments over a 10%
// base rate, bounded to [5%, 30%] of the price.
func (s *DownPaymentService) Suggest(input domain.DownPaymentInput) domain.DownPaymentSuggestion {
	ref := s.referenceYear
	if ref == 0 {
		ref = time.Now().Year()
	}
	year := input.VehicleYear
	if year == 0 {
		year = ref
	}

	vehicleType := strings.TrimSpace(input.VehicleType)
	if vehicleType != "" {
		vehicleType = strings.ToUpper(vehicleType[:1]) + strings.ToLower(vehicleType[1:])
		if strings.EqualFold(vehicleType, "suv") {
			vehicleType = "SUV"
		}
	} else {
		vehicleType = VehicleTypeForModel(input.VehicleModel)
	}

	rate := baseDownPaymentRate +
		creditAdjustment(input.CreditScore) +
		termAdjustment(input.LoanTerm) +
		vehicleTypeAdjustment[vehicleType] +
		ageAdjustment(ref-year)
	rate = clampFloat(rate, minDownPaymentRate, maxDownPaymentRate)

	price := math.Max(input.CarPrice, 0)
	return domain.DownPaymentSuggestion{
		DownPayment: roundTo2Decimals(price * rate),
		RatePercent: math.Round(rate*1000) / 10,
		VehicleType: vehicleType,
	}
}
