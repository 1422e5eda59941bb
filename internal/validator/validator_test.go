package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Strategy string `validate:"omitempty,strategy"`
	Status   string `validate:"omitempty,trade_status"`
	Filter   string `validate:"omitempty,strategy_filter"`
	Ticker   string `validate:"omitempty,ticker"`
	Range    string `validate:"omitempty,date_range"`
}

func TestCustomValidations(t *testing.T) {
	v := validator.New()
	RegisterOn(v)

	valid := []sample{
		{Strategy: "Cash-Secured Put"},
		{Strategy: "LEAPS"},
		{Status: "Expired Worthless"},
		{Filter: "STOCK"},
		{Filter: "Covered Call"},
		{Ticker: "AMD"},
		{Ticker: "BRK.B"},
		{Ticker: "^VIX"},
		{Range: "last_3_months"},
		{Range: "trailing_months"},
	}
	for _, s := range valid {
		if err := v.Struct(s); err != nil {
			t.Errorf("%+v: unexpected error: %v", s, err)
		}
	}

	invalid := []sample{
		{Strategy: "CSP"},
		{Status: "Expired"},
		{Filter: "stock"},
		{Ticker: "AMD; DROP TABLE"},
		{Ticker: "WAYTOOLONGTICKER"},
		{Range: "last_week"},
	}
	for _, s := range invalid {
		if err := v.Struct(s); err == nil {
			t.Errorf("%+v: expected validation error", s)
		}
	}
}
