package entity

import "github.com/shopspring/decimal"

// CatalogService is a bookable salon service shown in the widget's service list.
type CatalogService struct {
	Name            string
	Description     string
	Price           decimal.Decimal
	DurationMinutes int
}
