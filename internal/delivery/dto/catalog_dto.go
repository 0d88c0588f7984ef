package dto

import "github.com/shopspring/decimal"

type ServiceResponse struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// WidgetSettingsResponse tells the booking widget how to behave.
type WidgetSettingsResponse struct {
	MinDate          string `json:"min_date"`
	CloseDelayMs     int64  `json:"close_delay_ms"`
	MessageTimeoutMs int64  `json:"message_timeout_ms"`
	CurrencyPrefix   string `json:"currency_prefix"`
}
