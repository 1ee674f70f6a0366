// Package api - API types for tax calculation
// These types define the contract for the JSON endpoints.
// The API is stateless and deterministic.
package api

import (
	"github.com/shopspring/decimal"

	"tax-dashboard/core/indicator"
	"tax-dashboard/core/tax"
)

// TaxRequest is the input to POST /tax
type TaxRequest struct {
	// Income to assess; must not be negative
	Income decimal.Decimal `json:"income"`

	// Schedule names a registered schedule (optional, default schedule if empty)
	Schedule string `json:"schedule,omitempty"`

	// Brackets supplies an ad-hoc table instead of a named schedule
	Brackets tax.Table `json:"brackets,omitempty"`

	// Currency for ad-hoc tables (optional)
	Currency string `json:"currency,omitempty"`
}

// TaxResponse is the output of POST /tax
type TaxResponse struct {
	Assessment *tax.Assessment `json:"assessment"`
	Display    Display         `json:"display"`
}

// Display holds currency strings ready to show
type Display struct {
	Income    string `json:"income"`
	Tax       string `json:"tax,omitempty"`
	NetIncome string `json:"net_income,omitempty"`
	Delta     string `json:"delta,omitempty"`
}

// CompareRequest is the input to POST /compare
type CompareRequest struct {
	Income   decimal.Decimal `json:"income"`
	Base     string          `json:"base,omitempty"`
	Proposed string          `json:"proposed,omitempty"`
}

// CompareResponse is the output of POST /compare
type CompareResponse struct {
	Comparison *tax.Comparison `json:"comparison"`
	Display    Display         `json:"display"`
}

// SchedulesResponse is the output of GET /schedules
type SchedulesResponse struct {
	Default   string         `json:"default"`
	Schedules []tax.Schedule `json:"schedules"`
}

// SMARequest is the input to POST /sma
type SMARequest struct {
	Closes      []indicator.Close `json:"closes"`
	ShortWindow int               `json:"short_window,omitempty"`
	LongWindow  int               `json:"long_window,omitempty"`
}

// ErrorBody is the error envelope
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}
