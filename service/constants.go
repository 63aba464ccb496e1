package service

import "time"

const (
	MinTermMonths = 10
	MaxTermMonths = 60

	// Down-payment range floor, in currency units.
	DownPaymentFloor       = 1000.0
	MinDownPaymentFraction = 0.10
	MaxDownPaymentFraction = 0.90

	SliderMin = 0
	SliderMax = 100
	// Position used when a range is degenerate.
	SliderMidpoint = 50

	// 6% APR / 12, simplified nominal rate used for local payments.
	NominalMonthlyRate = 0.005

	BaseAPR                = 8.0
	MinAPR                 = 3.0
	MaxAPR                 = 15.0
	DownPaymentDiscountPct = 20.0
	DownPaymentDiscountPer = 0.1
	TermDiscountPerMonth   = 0.02

	DefaultDebounceDelay     = 300 * time.Millisecond
	DefaultPredictionTimeout = 5 * time.Second
)
