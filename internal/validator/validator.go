// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"wheeltradr/internal/metrics"
	"wheeltradr/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// tickerRegex accepts exchange symbols such as AMD, BRK.B and ^VIX.
var tickerRegex = regexp.MustCompile(`^\^?[A-Za-z0-9]{1,10}([.\-][A-Za-z0-9]{1,4})?$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn adds the journal's validations to v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("strategy", validateStrategy)
	_ = v.RegisterValidation("trade_status", validateTradeStatus)
	_ = v.RegisterValidation("strategy_filter", validateStrategyFilter)
	_ = v.RegisterValidation("ticker", validateTicker)
	_ = v.RegisterValidation("date_range", validateDateRange)
}

func validateStrategy(fl validator.FieldLevel) bool {
	return models.StrategyType(fl.Field().String()).Valid()
}

func validateTradeStatus(fl validator.FieldLevel) bool {
	return models.TradeStatus(fl.Field().String()).Valid()
}

// validateStrategyFilter also accepts STOCK, the group of assigned and sold
// stock.
func validateStrategyFilter(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "STOCK" || models.StrategyType(s).Valid()
}

func validateTicker(fl validator.FieldLevel) bool {
	return tickerRegex.MatchString(fl.Field().String())
}

func validateDateRange(fl validator.FieldLevel) bool {
	return metrics.Range(fl.Field().String()).Valid()
}
