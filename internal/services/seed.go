package services

import "wheeltradr/internal/models"

func float(v float64) *float64 { return &v }

// demoTrades is a small journal showing a full AMD wheel and an open PLTR put.
func demoTrades() []models.Trade {
	return []models.Trade{
		{
			Ticker:          "AMD",
			Strategy:        models.StrategyCSP,
			Status:          models.StatusAssigned,
			EntryDate:       models.MustParseDate("2023-11-01"),
			ExpirationDate:  models.MustParseDate("2023-11-17"),
			CloseDate:       models.MustParseDate("2023-11-17"),
			StrikePrice:     110,
			Premium:         1.50,
			Contracts:       1,
			UnderlyingPrice: 112.50,
			Fees:            0.65,
			ClosePrice:      float(0),
			PnL:             float(149.35),
			Notes:           "Starting the wheel on AMD. Bullish long term.",
			Tags:            []string{"tech", "wheel-start"},
			CycleID:         "cycle_amd_1",
		},
		{
			Ticker:          "AMD",
			Strategy:        models.StrategyStockBuy,
			Status:          models.StatusOpen,
			EntryDate:       models.MustParseDate("2023-11-17"),
			Contracts:       1,
			UnderlyingPrice: 110,
			Notes:           "Assigned at 110 strike.",
			Tags:            []string{"assignment"},
			CycleID:         "cycle_amd_1",
		},
		{
			Ticker:          "AMD",
			Strategy:        models.StrategyCC,
			Status:          models.StatusExpired,
			EntryDate:       models.MustParseDate("2023-11-20"),
			ExpirationDate:  models.MustParseDate("2023-12-15"),
			CloseDate:       models.MustParseDate("2023-12-15"),
			StrikePrice:     120,
			Premium:         2.10,
			Contracts:       1,
			UnderlyingPrice: 111,
			Fees:            0.65,
			ClosePrice:      float(0),
			PnL:             float(209.35),
			Notes:           "Selling calls against assigned shares.",
			Tags:            []string{"income"},
			CycleID:         "cycle_amd_1",
		},
		{
			Ticker:          "PLTR",
			Strategy:        models.StrategyCSP,
			Status:          models.StatusOpen,
			EntryDate:       models.MustParseDate("2024-01-05"),
			ExpirationDate:  models.MustParseDate("2024-02-16"),
			StrikePrice:     15,
			Premium:         0.45,
			Contracts:       5,
			UnderlyingPrice: 16.20,
			Fees:            3.25,
			Notes:           "IV high before earnings. Selling OTM puts.",
			Tags:            []string{"earnings", "high-iv"},
			CycleID:         "cycle_pltr_1",
		},
	}
}
