package api

import (
	"context"

	"go.uber.org/zap"

	"tax-dashboard/core/indicator"
	"tax-dashboard/core/output"
	"tax-dashboard/core/tax"
	"tax-dashboard/internal/errors"
)

// customSchedule names assessments made with an ad-hoc bracket table
const customSchedule = "custom"

// Handler executes requests against the calculator. It holds no cost logic of its own.
type Handler struct {
	registry    *tax.Registry
	metrics     *Metrics
	logger      *zap.Logger
	shortWindow int
	longWindow  int
}

// NewHandler creates a handler over a schedule registry
func NewHandler(registry *tax.Registry, metrics *Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		registry:    registry,
		metrics:     metrics,
		logger:      logger,
		shortWindow: indicator.DefaultShortWindow,
		longWindow:  indicator.DefaultLongWindow,
	}
}

// SetWindows changes the default moving-average windows
func (h *Handler) SetWindows(short, long int) {
	h.shortWindow = short
	h.longWindow = long
}

func (h *Handler) assess(ctx context.Context, req *TaxRequest) (*TaxResponse, error) {
	schedule, err := h.scheduleFor(req)
	if err != nil {
		return nil, err
	}

	a, err := schedule.Assess(req.Income)
	if err != nil {
		return nil, err
	}
	h.metrics.Calculations.WithLabelValues(a.Schedule).Inc()
	h.logger.Debug("tax assessed",
		zap.String("request_id", requestID(ctx)),
		zap.String("schedule", a.Schedule),
		zap.String("income", a.Income.String()),
		zap.String("tax", a.Tax.String()),
	)

	return &TaxResponse{
		Assessment: a,
		Display: Display{
			Income:    output.FormatMoney(a.Income, a.Currency),
			Tax:       output.FormatMoney(a.Tax, a.Currency),
			NetIncome: output.FormatMoney(a.NetIncome(), a.Currency),
		},
	}, nil
}

func (h *Handler) scheduleFor(req *TaxRequest) (tax.Schedule, error) {
	if len(req.Brackets) == 0 {
		return h.registry.Resolve(req.Schedule)
	}
	if req.Schedule != "" {
		return tax.Schedule{}, errors.InvalidInput("give either schedule or brackets, not both")
	}

	currency := req.Currency
	if currency == "" {
		if s, err := h.registry.Resolve(""); err == nil {
			currency = s.Currency
		}
	}
	return tax.Schedule{Name: customSchedule, Currency: currency, Brackets: req.Brackets}, nil
}

func (h *Handler) compare(ctx context.Context, req *CompareRequest) (*CompareResponse, error) {
	base, proposed, err := h.registry.Pair(req.Base, req.Proposed)
	if err != nil {
		return nil, err
	}

	c, err := tax.Compare(req.Income, base, proposed)
	if err != nil {
		return nil, err
	}
	h.metrics.Calculations.WithLabelValues(base.Name).Inc()
	h.metrics.Calculations.WithLabelValues(proposed.Name).Inc()
	h.logger.Debug("schedules compared",
		zap.String("request_id", requestID(ctx)),
		zap.String("base", base.Name),
		zap.String("proposed", proposed.Name),
		zap.String("delta", c.Delta.String()),
	)

	return &CompareResponse{
		Comparison: c,
		Display: Display{
			Income: output.FormatMoney(c.Income, base.Currency),
			Delta:  output.FormatSignedMoney(c.Delta, base.Currency),
		},
	}, nil
}

func (h *Handler) schedules() *SchedulesResponse {
	return &SchedulesResponse{
		Default:   h.registry.Default(),
		Schedules: h.registry.All(),
	}
}

func (h *Handler) sma(req *SMARequest) (*indicator.Analysis, error) {
	short, long := req.ShortWindow, req.LongWindow
	if short == 0 {
		short = h.shortWindow
	}
	if long == 0 {
		long = h.longWindow
	}
	return indicator.Analyze(req.Closes, short, long)
}
