package main

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"car-finance/config"
	"car-finance/domain"
	"car-finance/service"
)

func newEstimateCmd() *cobra.Command {
	var (
		quote       domain.VehicleQuote
		slider      domain.SliderState
		creditScore int
		useInitial  bool
	)

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Print the financing estimate for one vehicle and slider position",
		RunE: func(cmd *cobra.Command, _ []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			cfg, err := config.Load(envFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger := config.NewLogger(cfg.LogLevel)

			if quote.Price <= 0 || math.IsNaN(quote.Price) || math.IsInf(quote.Price, 0) {
				return fmt.Errorf("%w: got %v", domain.ErrInvalidQuote, quote.Price)
			}
			if useInitial {
				slider = service.InitialSliderState(quote)
			}

			req := domain.EstimateRequest{Quote: quote, Slider: slider}
			if cmd.Flags().Changed("credit-score") {
				req.Profile = &domain.CreditProfile{CreditScore: &creditScore}
			}

			var predictor service.Predictor
			if cfg.PredictionURL != "" {
				predictor = service.NewBackendClient(cfg.PredictionURL, cfg.PredictionTimeout, logger)
			}
			estimator := service.NewEstimator(predictor, nil, cfg.PredictionTimeout, cfg.ReferenceYear, logger)
			result := estimator.Estimate(cmd.Context(), req)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&quote.Price, "price", 0, "vehicle price")
	f.IntVar(&quote.Year, "year", 0, "model year")
	f.StringVar(&quote.Model, "model", "", "model name")
	f.Float64Var(&quote.SuggestedDownPayment, "suggested-down-payment", 0, "advisory down payment")
	f.IntVar(&slider.TermPosition, "term", service.SliderMidpoint, "loan term slider position (0-100)")
	f.IntVar(&slider.DownPaymentPosition, "down-payment", service.SliderMidpoint, "down payment slider position (0-100)")
	f.BoolVar(&useInitial, "initial", false, "place the sliders at their initial positions for the quote")
	f.IntVar(&creditScore, "credit-score", 0, "credit score; enables a backend prediction")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}
